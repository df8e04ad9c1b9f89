// Package repo implements the data persistence layer for domain entities,
// backed by GORM. This file provides repository functions for the Chatroom
// model.
//
// All functions are context-aware and accept a *gorm.DB handle, making them
// safe for use within transactions or connection-scoped operations.
// They follow the "thin repository" approach: no business logic, only CRUD
// persistence and query composition.
//
// Error semantics:
//   - When a chatroom is not found, functions return gorm.ErrRecordNotFound
//     (also exported here as ErrNotFound for convenience).
//   - On DB errors (constraint violations, connectivity issues, etc.),
//     the raw gorm error is propagated.
package repo

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/tbourn/kids-talk-backend/internal/domain"
)

// CreateChatroom inserts a new Chatroom for profileID carrying the given
// placeholder topic. The ID is a random UUID and CreatedAt is set to UTC.
func CreateChatroom(ctx context.Context, db *gorm.DB, profileID int64, topic string) (*domain.Chatroom, error) {
	c := &domain.Chatroom{
		ID:        uuid.NewString(),
		ProfileID: profileID,
		Topic:     &topic,
		CreatedAt: time.Now().UTC(),
	}
	if err := db.WithContext(ctx).Create(c).Error; err != nil {
		return nil, err
	}
	return c, nil
}

// GetChatroom fetches a single chatroom by id, or ErrNotFound.
func GetChatroom(ctx context.Context, db *gorm.DB, id string) (*domain.Chatroom, error) {
	var c domain.Chatroom
	if err := db.WithContext(ctx).Where("id = ?", id).First(&c).Error; err != nil {
		return nil, err
	}
	return &c, nil
}

// ListChatroomsByProfile returns every chatroom owned by profileID, most
// recent first.
func ListChatroomsByProfile(ctx context.Context, db *gorm.DB, profileID int64) ([]domain.Chatroom, error) {
	var out []domain.Chatroom
	err := db.WithContext(ctx).
		Where("profile_id = ?", profileID).
		Order("created_at desc").
		Find(&out).Error
	return out, err
}

// UpdateChatroomTopic writes the final topic of a chatroom. It returns
// ErrNotFound when no row matched.
func UpdateChatroomTopic(ctx context.Context, db *gorm.DB, id, topic string) error {
	res := db.WithContext(ctx).
		Model(&domain.Chatroom{}).
		Where("id = ?", id).
		Update("topic", topic)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// CountChatroomsCreatedBetween counts chatrooms of profileID created in
// [from, to).
func CountChatroomsCreatedBetween(ctx context.Context, db *gorm.DB, profileID int64, from, to time.Time) (int64, error) {
	var n int64
	err := db.WithContext(ctx).
		Model(&domain.Chatroom{}).
		Where("profile_id = ? AND created_at >= ? AND created_at < ?", profileID, from.UTC(), to.UTC()).
		Count(&n).Error
	return n, err
}
