package repo

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/tbourn/kids-talk-backend/internal/domain"
)

func TestCreateTalk_DefaultsNeutralAndEmptyKeywords(t *testing.T) {
	db := newTestDB(t, allModels()...)
	seedRoom(t, db, "r1", 1)

	got, err := CreateTalk(context.Background(), db, NewTalk{
		ChatroomID: "r1", ProfileID: 1, SessionID: "s1",
		Category: "LIFESTYLEHABIT", Role: domain.RoleBot, Content: "안녕!",
	})
	if err != nil {
		t.Fatalf("CreateTalk: %v", err)
	}
	if got.Sentiment != domain.SentimentNeutral || got.Keywords == nil || len(got.Keywords) != 0 {
		t.Fatalf("unexpected defaults: %+v", got)
	}

	loaded, err := GetTalk(context.Background(), db, got.ID)
	if err != nil {
		t.Fatalf("GetTalk: %v", err)
	}
	if loaded.Content != "안녕!" || loaded.Role != domain.RoleBot {
		t.Fatalf("round-trip mismatch: %+v", loaded)
	}
}

func TestCreateTalk_RequiresExistingChatroom(t *testing.T) {
	db := newTestDB(t, allModels()...)
	_, err := CreateTalk(context.Background(), db, NewTalk{
		ChatroomID: "nope", ProfileID: 1, SessionID: "s", Category: "C", Role: domain.RoleUser, Content: "x",
	})
	if err == nil {
		t.Fatalf("expected FK violation for unknown chatroom")
	}
}

func TestListTalksByChatroom_ChronologicalOrder(t *testing.T) {
	db := newTestDB(t, allModels()...)
	seedRoom(t, db, "r1", 1)
	base := time.Date(2025, 6, 1, 9, 0, 0, 0, time.UTC)
	rows := []domain.Talk{
		{ID: "b", ChatroomID: "r1", ProfileID: 1, SessionID: "s", Category: "C", Role: domain.RoleBot, Content: "2", CreatedAt: base.Add(time.Second)},
		{ID: "a", ChatroomID: "r1", ProfileID: 1, SessionID: "s", Category: "C", Role: domain.RoleUser, Content: "1", CreatedAt: base},
	}
	for i := range rows {
		if err := db.Create(&rows[i]).Error; err != nil {
			t.Fatalf("seed: %v", err)
		}
	}
	got, err := ListTalksByChatroom(context.Background(), db, "r1")
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(got) != 2 || got[0].ID != "a" || got[1].ID != "b" {
		t.Fatalf("unexpected order: %+v", got)
	}
}

func TestUpdateTalkLike_SuccessAndNotFound(t *testing.T) {
	db := newTestDB(t, allModels()...)
	seedRoom(t, db, "r1", 1)
	talk, err := CreateTalk(context.Background(), db, NewTalk{ChatroomID: "r1", ProfileID: 1, SessionID: "s", Category: "C", Role: domain.RoleBot, Content: "x"})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if err := UpdateTalkLike(context.Background(), db, talk.ID, false); err != nil {
		t.Fatalf("UpdateTalkLike: %v", err)
	}
	got, _ := GetTalk(context.Background(), db, talk.ID)
	if got.Like == nil || *got.Like {
		t.Fatalf("like not stored: %+v", got.Like)
	}
	if err := UpdateTalkLike(context.Background(), db, "missing", true); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestListNegativeTalksByProfile_JoinsTopicAndFilters(t *testing.T) {
	db := newTestDB(t, allModels()...)
	ctx := context.Background()
	room, err := CreateChatroom(ctx, db, 5, "[일상대화] 학교")
	if err != nil {
		t.Fatalf("room: %v", err)
	}
	mk := func(role string, s domain.Sentiment, content string) {
		if _, err := CreateTalk(ctx, db, NewTalk{ChatroomID: room.ID, ProfileID: 5, SessionID: "s", Category: "C", Role: role, Content: content, Sentiment: s}); err != nil {
			t.Fatalf("talk: %v", err)
		}
	}
	mk(domain.RoleUser, domain.SentimentNegative, "속상해")
	mk(domain.RoleUser, domain.SentimentPositive, "좋아")
	mk(domain.RoleBot, domain.SentimentNegative, "bot never counts")

	got, err := ListNegativeTalksByProfile(ctx, db, 5)
	if err != nil {
		t.Fatalf("ListNegativeTalksByProfile: %v", err)
	}
	if len(got) != 1 || got[0].Content != "속상해" || got[0].Topic == nil || *got[0].Topic != "[일상대화] 학교" {
		t.Fatalf("unexpected negative talks: %+v", got)
	}
}

func TestListTalksBetween_FiltersCategoryAndRange(t *testing.T) {
	db := newTestDB(t, allModels()...)
	seedRoom(t, db, "r1", 9)
	day := time.Date(2025, 7, 7, 0, 0, 0, 0, time.UTC)
	rows := []domain.Talk{
		{ID: "keep", ChatroomID: "r1", ProfileID: 9, SessionID: "s", Category: "LIFESTYLEHABIT", Role: domain.RoleUser, Content: "k", CreatedAt: day.Add(time.Hour)},
		{ID: "bot", ChatroomID: "r1", ProfileID: 9, SessionID: "s", Category: "LIFESTYLEHABIT", Role: domain.RoleBot, Content: "b", CreatedAt: day.Add(time.Hour)},
		{ID: "quiz", ChatroomID: "r1", ProfileID: 9, SessionID: "s", Category: "SAFETYSTUDY", Role: domain.RoleUser, Content: "q", CreatedAt: day.Add(time.Hour)},
		{ID: "yesterday", ChatroomID: "r1", ProfileID: 9, SessionID: "s", Category: "LIFESTYLEHABIT", Role: domain.RoleUser, Content: "y", CreatedAt: day.Add(-time.Hour)},
	}
	for i := range rows {
		if err := db.Create(&rows[i]).Error; err != nil {
			t.Fatalf("seed: %v", err)
		}
	}
	got, err := ListTalksBetween(context.Background(), db, 9, "LIFESTYLEHABIT", day, day.Add(24*time.Hour))
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(got) != 2 || got[0].ID != "keep" || got[1].ID != "bot" {
		t.Fatalf("unexpected talks: %+v", got)
	}
}
