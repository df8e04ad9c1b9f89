// Package services – HistoryService
//
// Read-side views over what a child has said: negative talks with their
// chat room topic, a one-line parent-facing reading of each, and analyses
// grouped by calendar day.
package services

import (
	"context"
	"time"

	"github.com/rs/zerolog/log"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
	"gorm.io/gorm"

	"github.com/tbourn/kids-talk-backend/internal/repo"
)

// Insighter turns a negative utterance into a note for the parent.
type Insighter interface {
	NegativeInsight(ctx context.Context, text string) (string, error)
}

// HistoryService serves history lookups for one profile.
type HistoryService struct {
	DB       *gorm.DB
	LLM      Insighter
	Location *time.Location
}

// NewHistoryService wires a HistoryService.
func NewHistoryService(db *gorm.DB, in Insighter, loc *time.Location) *HistoryService {
	if loc == nil {
		loc = time.UTC
	}
	return &HistoryService{DB: db, LLM: in, Location: loc}
}

// NegativeTalks returns the negative user talks of profileID, most recent
// first, or ErrNoRecords.
func (s *HistoryService) NegativeTalks(ctx context.Context, profileID int64) ([]repo.NegativeTalk, error) {
	tr := otel.Tracer("services/HistoryService")
	ctx, span := tr.Start(ctx, "NegativeTalks",
		trace.WithAttributes(attribute.Int64("profile.id", profileID)),
	)
	defer span.End()

	rows, err := repo.ListNegativeTalksByProfile(ctx, s.DB, profileID)
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, ErrNoRecords
	}
	return rows, nil
}

// NegativeInsight pairs a negative talk with its generated reading.
type NegativeInsight struct {
	repo.NegativeTalk
	Insight string `json:"insight"`
}

// NegativeInsights explains every negative talk of profileID. A failed
// generation leaves that talk's Insight empty.
func (s *HistoryService) NegativeInsights(ctx context.Context, profileID int64) ([]NegativeInsight, error) {
	rows, err := s.NegativeTalks(ctx, profileID)
	if err != nil {
		return nil, err
	}

	tr := otel.Tracer("services/HistoryService")
	ctx, span := tr.Start(ctx, "NegativeInsights",
		trace.WithAttributes(
			attribute.Int64("profile.id", profileID),
			attribute.Int("talks.count", len(rows)),
		),
	)
	defer span.End()

	out := make([]NegativeInsight, 0, len(rows))
	for _, r := range rows {
		text, err := s.LLM.NegativeInsight(ctx, r.Content)
		if err != nil {
			log.Warn().Err(err).Str("talk_id", r.ID).Msg("negative insight failed")
		}
		out = append(out, NegativeInsight{NegativeTalk: r, Insight: text})
	}
	return out, nil
}

// SentimentEntry is one analysed talk in the sentiment summary.
type SentimentEntry struct {
	TalkID   string `json:"talk_id"`
	Text     string `json:"text"`
	Positive bool   `json:"positive"`
}

// SentimentSummary groups every analysis of profileID by "YYYY-MM-DD" in
// the service's location. Entries within a day keep creation order.
func (s *HistoryService) SentimentSummary(ctx context.Context, profileID int64) (map[string][]SentimentEntry, error) {
	tr := otel.Tracer("services/HistoryService")
	ctx, span := tr.Start(ctx, "SentimentSummary",
		trace.WithAttributes(attribute.Int64("profile.id", profileID)),
	)
	defer span.End()

	rows, err := repo.ListAnalysesByProfile(ctx, s.DB, profileID)
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, ErrNoRecords
	}

	out := make(map[string][]SentimentEntry)
	for i := len(rows) - 1; i >= 0; i-- {
		a := rows[i]
		day := a.CreatedAt.In(s.Location).Format(dateLayout)
		out[day] = append(out[day], SentimentEntry{TalkID: a.TalkID, Text: a.Summary, Positive: a.IsPositive})
	}
	return out, nil
}
