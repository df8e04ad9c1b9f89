// Package services – ChatroomService
//
// This file implements ChatroomService, which owns the lifecycle of chat
// rooms: opening a room for a session (closing any previous one first) and
// closing it with a topic that summarizes what happened. A session holds at
// most one open room at any time.
package services

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog/log"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
	"gorm.io/gorm"

	"github.com/tbourn/kids-talk-backend/internal/domain"
	"github.com/tbourn/kids-talk-backend/internal/llm"
	"github.com/tbourn/kids-talk-backend/internal/session"
)

// ChatroomRepo defines the repository contract required by ChatroomService.
type ChatroomRepo interface {
	// CreateChatroom inserts a room with a placeholder topic.
	CreateChatroom(ctx context.Context, db *gorm.DB, profileID int64, topic string) (*domain.Chatroom, error)

	// UpdateChatroomTopic writes the final topic of a room.
	UpdateChatroomTopic(ctx context.Context, db *gorm.DB, id, topic string) error

	// ListChatroomsByProfile returns the rooms of a profile, newest first.
	ListChatroomsByProfile(ctx context.Context, db *gorm.DB, profileID int64) ([]domain.Chatroom, error)

	// ListTalksByChatroom returns the talks of a room in order.
	ListTalksByChatroom(ctx context.Context, db *gorm.DB, chatroomID string) ([]domain.Talk, error)

	// CountChatroomsCreatedBetween counts rooms created in [from, to).
	CountChatroomsCreatedBetween(ctx context.Context, db *gorm.DB, profileID int64, from, to time.Time) (int64, error)
}

// Summarizer condenses a conversation history into one line.
type Summarizer interface {
	Summarize(ctx context.Context, history []llm.Message) (string, error)
}

// ChatroomService opens and closes chat rooms on behalf of sessions.
type ChatroomService struct {
	DB         *gorm.DB
	Repo       ChatroomRepo
	Sessions   *session.Store
	Summarizer Summarizer

	// Location is the calendar used for "today".
	Location *time.Location
	// Now is overridable in tests.
	Now func() time.Time
}

// NewChatroomService wires a ChatroomService.
func NewChatroomService(db *gorm.DB, r ChatroomRepo, store *session.Store, sum Summarizer, loc *time.Location) *ChatroomService {
	if loc == nil {
		loc = time.UTC
	}
	return &ChatroomService{DB: db, Repo: r, Sessions: store, Summarizer: sum, Location: loc, Now: time.Now}
}

// Open closes any room the session still has, creates a new room for
// activity and binds it to the session. On store failure it returns "" and
// the error; the session is left without a room.
func (s *ChatroomService) Open(ctx context.Context, sessionID string, profileID int64, activity domain.ActivityType) (string, error) {
	tr := otel.Tracer("services/ChatroomService")
	ctx, span := tr.Start(ctx, "Open",
		trace.WithAttributes(
			attribute.String("session.id", sessionID),
			attribute.Int64("profile.id", profileID),
			attribute.String("activity", string(activity)),
		),
	)
	defer span.End()

	if err := s.Close(ctx, sessionID, ""); err != nil {
		// Close already reset the session; the new room is still opened.
		log.Warn().Err(err).Str("session_id", sessionID).Msg("closing previous chat room failed")
	}

	room, err := s.Repo.CreateChatroom(ctx, s.DB, profileID, activity.PlaceholderTopic())
	if err != nil {
		log.Error().Err(err).Str("session_id", sessionID).Int64("profile_id", profileID).Msg("create chat room failed")
		span.RecordError(err)
		return "", fmt.Errorf("%w: %v", ErrChatroomUnavailable, err)
	}

	s.Sessions.GetOrCreate(sessionID).Bind(room.ID, activity)
	log.Info().Str("session_id", sessionID).Str("chatroom_id", room.ID).Str("activity", string(activity)).Msg("chat room opened")
	return room.ID, nil
}

// Close finalizes the session's open room, if any. finalInput, when not
// empty, is appended to the history before summarizing. The topic write may
// fail; the session is reset regardless and the write error returned.
func (s *ChatroomService) Close(ctx context.Context, sessionID, finalInput string) error {
	tr := otel.Tracer("services/ChatroomService")
	ctx, span := tr.Start(ctx, "Close",
		trace.WithAttributes(attribute.String("session.id", sessionID)),
	)
	defer span.End()

	sess, ok := s.Sessions.Get(sessionID)
	if !ok || !sess.HasRoom() {
		return nil
	}
	defer s.Sessions.Reset(sessionID)

	if finalInput != "" {
		sess.Append(llm.User(finalInput))
	}

	topic := s.closingTopic(ctx, sess)
	if topic == "" {
		return nil
	}
	span.SetAttributes(attribute.String("chatroom.id", sess.ChatroomID))
	if err := s.Repo.UpdateChatroomTopic(ctx, s.DB, sess.ChatroomID, topic); err != nil {
		log.Error().Err(err).Str("session_id", sessionID).Str("chatroom_id", sess.ChatroomID).Msg("write chat room topic failed")
		span.RecordError(err)
		return err
	}
	log.Info().Str("session_id", sessionID).Str("chatroom_id", sess.ChatroomID).Msg("chat room closed")
	return nil
}

// closingTopic is a fixed line for quizzes and an LLM summary for
// conversation and roleplay. It returns "" when nothing should be written.
func (s *ChatroomService) closingTopic(ctx context.Context, sess *session.Session) string {
	switch sess.Activity {
	case domain.ActivityTopicQuiz:
		key := "안전 퀴즈"
		if p, ok := sess.Quiz(domain.ActivityTopicQuiz); ok && p.Key != "" {
			key = p.Key
		}
		return fmt.Sprintf("[%s] 퀴즈를 완료했어요.", key)
	case domain.ActivitySyllableQuiz:
		return "[초성퀴즈]를 완료했어요."
	case domain.ActivityAnimalQuiz:
		return "[동물퀴즈]를 완료했어요."
	}

	if len(sess.History) == 0 || s.Summarizer == nil {
		return ""
	}
	summary, err := s.Summarizer.Summarize(ctx, sess.History)
	if err != nil {
		log.Error().Err(err).Str("session_id", sess.ID).Msg("summarize chat room failed")
		return ""
	}
	if summary == "" {
		return ""
	}
	if _, ok := sess.Roleplay(); ok {
		return "[역할놀이] " + summary
	}
	return "[일상대화] " + summary
}

// ListByProfile returns the rooms of profileID, newest first, or
// ErrNoRecords.
func (s *ChatroomService) ListByProfile(ctx context.Context, profileID int64) ([]domain.Chatroom, error) {
	tr := otel.Tracer("services/ChatroomService")
	ctx, span := tr.Start(ctx, "ListByProfile",
		trace.WithAttributes(attribute.Int64("profile.id", profileID)),
	)
	defer span.End()

	rooms, err := s.Repo.ListChatroomsByProfile(ctx, s.DB, profileID)
	if err != nil {
		return nil, err
	}
	if len(rooms) == 0 {
		return nil, ErrNoRecords
	}
	return rooms, nil
}

// Talks returns the talks of a room in order, or ErrNoRecords.
func (s *ChatroomService) Talks(ctx context.Context, chatroomID string) ([]domain.Talk, error) {
	tr := otel.Tracer("services/ChatroomService")
	ctx, span := tr.Start(ctx, "Talks",
		trace.WithAttributes(attribute.String("chatroom.id", chatroomID)),
	)
	defer span.End()

	talks, err := s.Repo.ListTalksByChatroom(ctx, s.DB, chatroomID)
	if err != nil {
		return nil, err
	}
	if len(talks) == 0 {
		return nil, ErrNoRecords
	}
	return talks, nil
}

// CreatedToday reports whether profileID opened any room today.
func (s *ChatroomService) CreatedToday(ctx context.Context, profileID int64) (bool, error) {
	tr := otel.Tracer("services/ChatroomService")
	ctx, span := tr.Start(ctx, "CreatedToday",
		trace.WithAttributes(attribute.Int64("profile.id", profileID)),
	)
	defer span.End()

	from, to := dayBounds(s.Now(), s.Location)
	n, err := s.Repo.CountChatroomsCreatedBetween(ctx, s.DB, profileID, from, to)
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

// dayBounds returns [midnight, next midnight) of t's day in loc.
func dayBounds(t time.Time, loc *time.Location) (time.Time, time.Time) {
	t = t.In(loc)
	start := time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, loc)
	return start, start.AddDate(0, 0, 1)
}
