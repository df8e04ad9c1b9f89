// Package repo implements the data persistence layer for domain entities,
// backed by GORM. This file provides repository functions for the Analysis
// model, the at-most-one-per-talk sentiment summary.
package repo

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/tbourn/kids-talk-backend/internal/domain"
)

// CreateAnalysis inserts the analysis of talkID. A second analysis for the
// same talk yields ErrDuplicate.
func CreateAnalysis(ctx context.Context, db *gorm.DB, talkID string, profileID int64, summary string, keyword *string, isPositive bool) (*domain.Analysis, error) {
	a := &domain.Analysis{
		ID:         uuid.NewString(),
		TalkID:     talkID,
		ProfileID:  profileID,
		Summary:    summary,
		Keyword:    keyword,
		IsPositive: isPositive,
		CreatedAt:  time.Now().UTC(),
	}
	if err := db.WithContext(ctx).Create(a).Error; err != nil {
		return nil, mapDuplicate(err)
	}
	return a, nil
}

// ListAnalysesBetween returns the analyses of profileID created in
// [from, to), oldest first. Callers express exact dates, ranges and months
// as half-open intervals in their own time zone.
func ListAnalysesBetween(ctx context.Context, db *gorm.DB, profileID int64, from, to time.Time) ([]domain.Analysis, error) {
	var out []domain.Analysis
	err := db.WithContext(ctx).
		Where("profile_id = ? AND created_at >= ? AND created_at < ?", profileID, from.UTC(), to.UTC()).
		Order("created_at ASC, id ASC").
		Find(&out).Error
	return out, err
}

// ListAnalysesByProfile returns every analysis of profileID, most recent
// first.
func ListAnalysesByProfile(ctx context.Context, db *gorm.DB, profileID int64) ([]domain.Analysis, error) {
	var out []domain.Analysis
	err := db.WithContext(ctx).
		Where("profile_id = ?", profileID).
		Order("created_at DESC").
		Find(&out).Error
	return out, err
}
