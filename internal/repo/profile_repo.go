package repo

import (
	"context"

	"gorm.io/gorm"

	"github.com/tbourn/kids-talk-backend/internal/domain"
)

// GetProfileFirstName returns the display name of a profile, or ErrNotFound.
func GetProfileFirstName(ctx context.Context, db *gorm.DB, profileID int64) (string, error) {
	var p domain.Profile
	if err := db.WithContext(ctx).Select("id", "profile_first_name").Where("id = ?", profileID).First(&p).Error; err != nil {
		return "", err
	}
	return p.FirstName, nil
}
