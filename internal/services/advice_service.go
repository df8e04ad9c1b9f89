// Package services – AdviceService
//
// Relationship advice for a parent, drawn from what the child said in
// today's free conversation.
package services

import (
	"context"
	"time"

	"github.com/rs/zerolog/log"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
	"gorm.io/gorm"

	"github.com/tbourn/kids-talk-backend/internal/domain"
	"github.com/tbourn/kids-talk-backend/internal/repo"
)

// Advice replies that do not come from the model.
const (
	MsgNoTalksToday      = "오늘의 대화 내용이 없어 조언을 생성할 수 없습니다."
	MsgNoChildTalksToday = "오늘 아이의 대화 내용이 없어 조언을 생성할 수 없습니다."
	MsgAdviceFailure     = "죄송해요, 지금은 조언을 만들 수 없어요. 잠시 후 다시 시도해 주세요."
)

// Adviser writes parent advice from the child's lines.
type Adviser interface {
	Advice(ctx context.Context, childLines []string) (string, error)
}

// AdviceService produces relationship advice.
type AdviceService struct {
	DB       *gorm.DB
	LLM      Adviser
	Location *time.Location
	Now      func() time.Time
}

// NewAdviceService wires an AdviceService.
func NewAdviceService(db *gorm.DB, a Adviser, loc *time.Location) *AdviceService {
	if loc == nil {
		loc = time.UTC
	}
	return &AdviceService{DB: db, LLM: a, Location: loc, Now: time.Now}
}

// Today returns advice based on today's conversation talks of profileID.
// Missing talks and generation failures yield a fixed explanatory text
// rather than an error; only store failures are returned.
func (s *AdviceService) Today(ctx context.Context, profileID int64) (string, error) {
	tr := otel.Tracer("services/AdviceService")
	ctx, span := tr.Start(ctx, "Today",
		trace.WithAttributes(attribute.Int64("profile.id", profileID)),
	)
	defer span.End()

	from, to := dayBounds(s.Now(), s.Location)
	talks, err := repo.ListTalksBetween(ctx, s.DB, profileID, domain.ActivityConversation.Category(), from, to)
	if err != nil {
		return "", err
	}
	if len(talks) == 0 {
		return MsgNoTalksToday, nil
	}

	var lines []string
	for _, t := range talks {
		if t.Role == domain.RoleUser {
			lines = append(lines, "- "+t.Content)
		}
	}
	if len(lines) == 0 {
		return MsgNoChildTalksToday, nil
	}

	advice, err := s.LLM.Advice(ctx, lines)
	if err != nil {
		log.Error().Err(err).Int64("profile_id", profileID).Msg("advice generation failed")
		return MsgAdviceFailure, nil
	}
	return advice, nil
}
