// Package services – FeedbackService
//
// This file implements the FeedbackService, which records a like or dislike
// on a persisted talk. A later call overwrites the earlier value, and the
// talk's UpdatedAt moves so cached histories become stale.
package services

import (
	"context"
	"errors"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
	"gorm.io/gorm"

	"github.com/tbourn/kids-talk-backend/internal/repo"
)

// FeedbackService implements the like/dislike use-case on talks.
type FeedbackService struct {
	// DB is the database handle used for all feedback operations.
	DB *gorm.DB
}

// SetLike stores like on talkID. It returns ErrTalkNotFound when the talk
// does not exist and the underlying DB error for unexpected failures.
func (s *FeedbackService) SetLike(ctx context.Context, talkID string, like bool) error {
	tr := otel.Tracer("services/FeedbackService")
	ctx, span := tr.Start(ctx, "SetLike",
		trace.WithAttributes(
			attribute.String("talk.id", talkID),
			attribute.Bool("talk.like", like),
		),
	)
	defer span.End()

	if err := repo.UpdateTalkLike(ctx, s.DB, talkID, like); err != nil {
		if isNotFound(err) {
			return ErrTalkNotFound
		}
		return err
	}
	return nil
}

// isNotFound treats repo-level not found sentinels as "not found" in a
// driver-agnostic way. It also checks gorm.ErrRecordNotFound for safety.
func isNotFound(err error) bool {
	if errors.Is(err, repo.ErrNotFound) {
		return true
	}
	return errors.Is(err, gorm.ErrRecordNotFound)
}
