package repo

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/tbourn/kids-talk-backend/internal/domain"
)

// GetWeeklyReport returns the cached report of profileID for the week
// starting at start, or ErrNotFound.
func GetWeeklyReport(ctx context.Context, db *gorm.DB, profileID int64, start time.Time) (*domain.WeeklyReport, error) {
	var r domain.WeeklyReport
	err := db.WithContext(ctx).
		Where("profile_id = ? AND start_date = ?", profileID, start.UTC()).
		First(&r).Error
	if err != nil {
		return nil, err
	}
	return &r, nil
}

// CreateWeeklyReport caches a report. A concurrent writer for the same
// (profile, start) makes this return ErrDuplicate.
func CreateWeeklyReport(ctx context.Context, db *gorm.DB, profileID int64, start, end time.Time, content string) (*domain.WeeklyReport, error) {
	r := &domain.WeeklyReport{
		ID:        uuid.NewString(),
		ProfileID: profileID,
		StartDate: start.UTC(),
		EndDate:   end.UTC(),
		Content:   content,
		CreatedAt: time.Now().UTC(),
	}
	if err := db.WithContext(ctx).Create(r).Error; err != nil {
		return nil, mapDuplicate(err)
	}
	return r, nil
}
