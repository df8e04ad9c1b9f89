// Package repo implements the data persistence layer for domain entities,
// backed by GORM. This file provides repository functions for the Talk model:
// one row per utterance, user or bot.
package repo

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/tbourn/kids-talk-backend/internal/domain"
)

// NewTalk carries the caller-provided fields of a talk row.
type NewTalk struct {
	ChatroomID string
	ProfileID  int64
	SessionID  string
	Category   string
	Role       string
	Content    string
	Sentiment  domain.Sentiment
	Keywords   []string
}

// CreateTalk inserts a single talk row. Empty sentiment is stored as
// neutral and nil keywords as an empty JSON array.
func CreateTalk(ctx context.Context, db *gorm.DB, in NewTalk) (*domain.Talk, error) {
	if in.Sentiment == "" {
		in.Sentiment = domain.SentimentNeutral
	}
	if in.Keywords == nil {
		in.Keywords = []string{}
	}
	now := time.Now().UTC()
	t := &domain.Talk{
		ID:         uuid.NewString(),
		ChatroomID: in.ChatroomID,
		ProfileID:  in.ProfileID,
		SessionID:  in.SessionID,
		Category:   in.Category,
		Role:       in.Role,
		Content:    in.Content,
		Sentiment:  in.Sentiment,
		Keywords:   in.Keywords,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	if err := db.WithContext(ctx).Create(t).Error; err != nil {
		return nil, err
	}
	return t, nil
}

// GetTalk fetches a talk by id, or ErrNotFound.
func GetTalk(ctx context.Context, db *gorm.DB, id string) (*domain.Talk, error) {
	var t domain.Talk
	if err := db.WithContext(ctx).Where("id = ?", id).First(&t).Error; err != nil {
		return nil, err
	}
	return &t, nil
}

// ListTalksByChatroom returns the talks of a chatroom in chronological order.
func ListTalksByChatroom(ctx context.Context, db *gorm.DB, chatroomID string) ([]domain.Talk, error) {
	var out []domain.Talk
	err := db.WithContext(ctx).
		Where("chatroom_id = ?", chatroomID).
		Order("created_at ASC, role DESC").
		Find(&out).Error
	return out, err
}

// UpdateTalkLike sets the like/dislike feedback of a talk. It returns
// ErrNotFound when no row matched.
func UpdateTalkLike(ctx context.Context, db *gorm.DB, id string, like bool) error {
	res := db.WithContext(ctx).
		Model(&domain.Talk{}).
		Where("id = ?", id).
		Updates(map[string]any{"like": like, "updated_at": time.Now().UTC()})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// NegativeTalk is a negative user talk joined with its chatroom topic.
type NegativeTalk struct {
	ID        string    `json:"id"`
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"created_at"`
	Topic     *string   `json:"topic"`
}

// ListNegativeTalksByProfile returns the negative user talks of profileID,
// most recent first.
func ListNegativeTalksByProfile(ctx context.Context, db *gorm.DB, profileID int64) ([]NegativeTalk, error) {
	var out []NegativeTalk
	err := db.WithContext(ctx).
		Table("talks AS t").
		Select("t.id, t.content, t.created_at, c.topic").
		Joins("JOIN chatrooms AS c ON c.id = t.chatroom_id").
		Where("t.profile_id = ? AND t.role = ? AND t.sentiment = ?", profileID, domain.RoleUser, domain.SentimentNegative).
		Order("t.created_at DESC").
		Scan(&out).Error
	return out, err
}

// ListTalksBetween returns the talks of profileID in category created in
// [from, to), oldest first. Both roles are included.
func ListTalksBetween(ctx context.Context, db *gorm.DB, profileID int64, category string, from, to time.Time) ([]domain.Talk, error) {
	var out []domain.Talk
	err := db.WithContext(ctx).
		Where("profile_id = ? AND category = ? AND created_at >= ? AND created_at < ?",
			profileID, category, from.UTC(), to.UTC()).
		Order("created_at ASC, role DESC").
		Find(&out).Error
	return out, err
}
