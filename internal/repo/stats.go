package repo

import (
	"context"
	"time"

	"gorm.io/gorm"

	"github.com/tbourn/kids-talk-backend/internal/domain"
)

// TalksStats reports how many talks a chatroom holds and when the newest
// of them was last touched. Feedback bumps updated_at, so the pair moves
// whenever a client's copy of the history goes stale. An empty room yields
// (0, nil, nil).
func TalksStats(ctx context.Context, db *gorm.DB, chatroomID string) (int64, *time.Time, error) {
	scope := func() *gorm.DB {
		return db.WithContext(ctx).Model(&domain.Talk{}).Where("chatroom_id = ?", chatroomID)
	}

	var n int64
	if err := scope().Count(&n).Error; err != nil {
		return 0, nil, err
	}
	if n == 0 {
		return 0, nil, nil
	}

	// SQLite returns MAX(updated_at) as TEXT, so read the newest row instead.
	var newest domain.Talk
	if err := scope().Select("updated_at").Order("updated_at DESC").Limit(1).Scan(&newest).Error; err != nil {
		return 0, nil, err
	}
	return n, &newest.UpdatedAt, nil
}
