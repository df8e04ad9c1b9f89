// Package services – ConversationService
//
// This file implements free conversation: stop-phrase handling, topic drift
// detection over the trailing history, and persona-conditioned replies.
package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/rs/zerolog/log"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
	"gorm.io/gorm"

	"github.com/tbourn/kids-talk-backend/internal/domain"
	"github.com/tbourn/kids-talk-backend/internal/llm"
	"github.com/tbourn/kids-talk-backend/internal/repo"
	"github.com/tbourn/kids-talk-backend/internal/session"
)

// DefaultDisplayName is used when the profile name cannot be looked up.
const DefaultDisplayName = "친구"

// Responder generates a reply from an instruction, history and input.
type Responder interface {
	Reply(ctx context.Context, instruction string, history []llm.Message, input string) (string, error)
}

// DriftDetector decides whether input leaves the subject of recent.
type DriftDetector interface {
	Drifted(ctx context.Context, recent []llm.Message, input string) (bool, error)
}

// ConversationService runs the free conversation activity.
type ConversationService struct {
	DB       *gorm.DB
	Rooms    *ChatroomService
	Sessions *session.Store
	LLM      interface {
		Responder
		DriftDetector
	}

	// DriftWindow is the number of trailing history messages given to the
	// drift classifier.
	DriftWindow int
}

// Talk handles one conversation turn.
func (s *ConversationService) Talk(ctx context.Context, req TalkRequest) Result {
	tr := otel.Tracer("services/ConversationService")
	ctx, span := tr.Start(ctx, "Talk",
		trace.WithAttributes(
			attribute.String("session.id", req.SessionID),
			attribute.Int64("profile.id", req.ProfileID),
		),
	)
	defer span.End()

	const activity = domain.ActivityConversation
	name := s.displayName(ctx, req.ProfileID)

	if IsStopPhrase(req.Input) {
		_ = s.Rooms.Close(ctx, req.SessionID, "")
		return observeTurn(Result{
			Reply:    fmt.Sprintf("알겠어, %s! 대화를 종료할게. 다음에 또 이야기하자!", name),
			Status:   StatusEnd,
			Activity: activity,
		})
	}

	sess := s.Sessions.GetOrCreate(req.SessionID)
	roomID := ""
	switch {
	case !sess.HasRoom() || sess.Activity != activity:
		roomID, _ = s.Rooms.Open(ctx, req.SessionID, req.ProfileID, activity)
	case len(sess.History) > 0 && s.drifted(ctx, sess, req.Input):
		span.AddEvent("topic drift")
		roomID, _ = s.Rooms.Open(ctx, req.SessionID, req.ProfileID, activity)
	default:
		roomID = sess.ChatroomID
	}
	if roomID == "" {
		return observeTurn(errorResult(activity, msgRoomFailure, ErrChatroomUnavailable))
	}

	reply, err := s.LLM.Reply(ctx, llm.ConversationInstruction(name), sess.History, req.Input)
	if err != nil {
		log.Error().Err(err).Str("session_id", req.SessionID).Msg("conversation reply failed")
		span.RecordError(err)
		return observeTurn(errorResult(activity, msgGenerationFailure, fmt.Errorf("%w: %v", ErrGeneration, err)))
	}
	sess.Append(llm.User(req.Input), llm.Assistant(reply))

	return observeTurn(Result{Reply: reply, Status: StatusContinue, ChatroomID: roomID, Activity: activity})
}

func (s *ConversationService) drifted(ctx context.Context, sess *session.Session, input string) bool {
	window := s.DriftWindow
	if window <= 0 {
		window = 4
	}
	drift, err := s.LLM.Drifted(ctx, sess.Recent(window), input)
	if err != nil {
		log.Warn().Err(err).Str("session_id", sess.ID).Msg("drift check failed; staying in room")
		return false
	}
	return drift
}

func (s *ConversationService) displayName(ctx context.Context, profileID int64) string {
	if s.DB == nil {
		return DefaultDisplayName
	}
	name, err := repo.GetProfileFirstName(ctx, s.DB, profileID)
	if err != nil {
		log.Debug().Err(err).Int64("profile_id", profileID).Msg("profile name lookup failed")
		return DefaultDisplayName
	}
	if name = strings.TrimSpace(name); name == "" {
		return DefaultDisplayName
	}
	return name
}
