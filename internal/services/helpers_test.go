package services

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	sqlite "github.com/glebarez/sqlite"
	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/tbourn/kids-talk-backend/internal/domain"
	"github.com/tbourn/kids-talk-backend/internal/llm"
	"github.com/tbourn/kids-talk-backend/internal/llm/llmtest"
	"github.com/tbourn/kids-talk-backend/internal/repo"
	"github.com/tbourn/kids-talk-backend/internal/session"
)

// ---------- test helpers ----------

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:svc_%s?mode=memory&cache=shared&_pragma=foreign_keys(1)", uuid.NewString())

	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	db.Exec("PRAGMA foreign_keys=ON;")
	if err := repo.AutoMigrate(db); err != nil {
		t.Fatalf("automigrate: %v", err)
	}
	return db
}

// dbRooms satisfies ChatroomRepo with the repo package functions.
type dbRooms struct{}

func (dbRooms) CreateChatroom(ctx context.Context, db *gorm.DB, profileID int64, topic string) (*domain.Chatroom, error) {
	return repo.CreateChatroom(ctx, db, profileID, topic)
}
func (dbRooms) UpdateChatroomTopic(ctx context.Context, db *gorm.DB, id, topic string) error {
	return repo.UpdateChatroomTopic(ctx, db, id, topic)
}
func (dbRooms) ListChatroomsByProfile(ctx context.Context, db *gorm.DB, profileID int64) ([]domain.Chatroom, error) {
	return repo.ListChatroomsByProfile(ctx, db, profileID)
}
func (dbRooms) ListTalksByChatroom(ctx context.Context, db *gorm.DB, chatroomID string) ([]domain.Talk, error) {
	return repo.ListTalksByChatroom(ctx, db, chatroomID)
}
func (dbRooms) CountChatroomsCreatedBetween(ctx context.Context, db *gorm.DB, profileID int64, from, to time.Time) (int64, error) {
	return repo.CountChatroomsCreatedBetween(ctx, db, profileID, from, to)
}

// brokenRooms fails every room creation.
type brokenRooms struct{ dbRooms }

var errStoreDown = errors.New("store down")

func (brokenRooms) CreateChatroom(context.Context, *gorm.DB, int64, string) (*domain.Chatroom, error) {
	return nil, errStoreDown
}

// fixture bundles the collaborators most service tests need.
type fixture struct {
	db    *gorm.DB
	store *session.Store
	model *llmtest.ScriptedModel
	gw    *llm.Gateway
	rooms *ChatroomService
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	db := newTestDB(t)
	store := session.NewStore()
	model := &llmtest.ScriptedModel{}
	gw := llm.NewGateway(model)
	return &fixture{
		db:    db,
		store: store,
		model: model,
		gw:    gw,
		rooms: NewChatroomService(db, dbRooms{}, store, gw, time.UTC),
	}
}

func (f *fixture) topic(t *testing.T, roomID string) string {
	t.Helper()
	room, err := repo.GetChatroom(context.Background(), f.db, roomID)
	if err != nil {
		t.Fatalf("GetChatroom(%s): %v", roomID, err)
	}
	if room.Topic == nil {
		return ""
	}
	return *room.Topic
}

// seedAnalysis stores a room, a user talk and its analysis at a fixed time.
func seedAnalysis(t *testing.T, db *gorm.DB, profileID int64, at time.Time, positive bool, keyword string) *domain.Analysis {
	t.Helper()
	room := &domain.Chatroom{ID: uuid.NewString(), ProfileID: profileID, CreatedAt: at}
	if err := db.Create(room).Error; err != nil {
		t.Fatalf("seed room: %v", err)
	}
	s := domain.SentimentNegative
	if positive {
		s = domain.SentimentPositive
	}
	talk := &domain.Talk{
		ID: uuid.NewString(), ChatroomID: room.ID, ProfileID: profileID, SessionID: "s",
		Category: "LIFESTYLEHABIT", Role: domain.RoleUser, Content: "말 " + keyword, Sentiment: s,
		CreatedAt: at, UpdatedAt: at,
	}
	if err := db.Create(talk).Error; err != nil {
		t.Fatalf("seed talk: %v", err)
	}
	a := &domain.Analysis{
		ID: uuid.NewString(), TalkID: talk.ID, ProfileID: profileID,
		Summary: "요약 " + keyword, IsPositive: positive, CreatedAt: at,
	}
	if keyword != "" {
		kw := keyword
		a.Keyword = &kw
	}
	if err := db.Create(a).Error; err != nil {
		t.Fatalf("seed analysis: %v", err)
	}
	return a
}
