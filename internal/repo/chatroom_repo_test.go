package repo

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/tbourn/kids-talk-backend/internal/domain"
)

func TestCreateChatroom_Error_NoTable(t *testing.T) {
	db := newTestDB(t /* no migrations */)
	room, err := CreateChatroom(context.Background(), db, 1, "새로운 대화")
	if err == nil || room != nil {
		t.Fatalf("expected error creating without table, got room=%v err=%v", room, err)
	}
}

func TestCreateChatroom_PersistsPlaceholder(t *testing.T) {
	db := newTestDB(t, allModels()...)
	start := time.Now().UTC().Add(-time.Minute)

	room, err := CreateChatroom(context.Background(), db, 42, "새로운 퀴즈")
	if err != nil {
		t.Fatalf("CreateChatroom: %v", err)
	}
	if room.ID == "" || room.ProfileID != 42 || room.Topic == nil || *room.Topic != "새로운 퀴즈" {
		t.Fatalf("unexpected fields: %+v", room)
	}
	if room.CreatedAt.Before(start) {
		t.Fatalf("CreatedAt seems unset: %v", room.CreatedAt)
	}

	got, err := GetChatroom(context.Background(), db, room.ID)
	if err != nil || got.ProfileID != 42 {
		t.Fatalf("round-trip mismatch: got=%+v err=%v", got, err)
	}
}

func TestGetChatroom_NotFound(t *testing.T) {
	db := newTestDB(t, allModels()...)
	if _, err := GetChatroom(context.Background(), db, "missing"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestListChatroomsByProfile_OrderDescendingAndFilter(t *testing.T) {
	db := newTestDB(t, allModels()...)
	t1 := time.Date(2025, 1, 1, 10, 0, 0, 0, time.UTC)
	rows := []domain.Chatroom{
		{ID: "a", ProfileID: 1, CreatedAt: t1},
		{ID: "b", ProfileID: 1, CreatedAt: t1.Add(time.Hour)},
		{ID: "c", ProfileID: 2, CreatedAt: t1.Add(2 * time.Hour)},
	}
	for i := range rows {
		if err := db.Create(&rows[i]).Error; err != nil {
			t.Fatalf("seed: %v", err)
		}
	}

	got, err := ListChatroomsByProfile(context.Background(), db, 1)
	if err != nil {
		t.Fatalf("ListChatroomsByProfile: %v", err)
	}
	if len(got) != 2 || got[0].ID != "b" || got[1].ID != "a" {
		t.Fatalf("unexpected order/filter: %+v", got)
	}
}

func TestUpdateChatroomTopic_SuccessAndNotFound(t *testing.T) {
	db := newTestDB(t, allModels()...)
	room, err := CreateChatroom(context.Background(), db, 1, "새로운 대화")
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if err := UpdateChatroomTopic(context.Background(), db, room.ID, "[일상대화] 공룡 이야기"); err != nil {
		t.Fatalf("UpdateChatroomTopic: %v", err)
	}
	got, _ := GetChatroom(context.Background(), db, room.ID)
	if got.Topic == nil || *got.Topic != "[일상대화] 공룡 이야기" {
		t.Fatalf("topic not updated: %+v", got)
	}
	if err := UpdateChatroomTopic(context.Background(), db, "missing", "x"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestCountChatroomsCreatedBetween(t *testing.T) {
	db := newTestDB(t, allModels()...)
	day := time.Date(2025, 5, 5, 0, 0, 0, 0, time.UTC)
	rows := []domain.Chatroom{
		{ID: "in1", ProfileID: 1, CreatedAt: day.Add(time.Hour)},
		{ID: "in2", ProfileID: 1, CreatedAt: day.Add(23 * time.Hour)},
		{ID: "before", ProfileID: 1, CreatedAt: day.Add(-time.Second)},
		{ID: "after", ProfileID: 1, CreatedAt: day.Add(24 * time.Hour)},
		{ID: "other", ProfileID: 2, CreatedAt: day.Add(time.Hour)},
	}
	for i := range rows {
		if err := db.Create(&rows[i]).Error; err != nil {
			t.Fatalf("seed: %v", err)
		}
	}
	n, err := CountChatroomsCreatedBetween(context.Background(), db, 1, day, day.Add(24*time.Hour))
	if err != nil {
		t.Fatalf("count: %v", err)
	}
	if n != 2 {
		t.Fatalf("expected 2 rooms in range, got %d", n)
	}
}
