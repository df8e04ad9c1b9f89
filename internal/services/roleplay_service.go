// Package services – RoleplayService
//
// This file implements roleplay: the child picks a persona for themselves
// and one for the bot, and the bot stays in character until a stop phrase.
package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/rs/zerolog/log"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/tbourn/kids-talk-backend/internal/domain"
	"github.com/tbourn/kids-talk-backend/internal/llm"
	"github.com/tbourn/kids-talk-backend/internal/session"
)

// RoleplayService runs the roleplay activity.
type RoleplayService struct {
	Rooms    *ChatroomService
	Sessions *session.Store
	LLM      Responder
}

// Start opens a roleplay room and stores both personas.
func (s *RoleplayService) Start(ctx context.Context, req StartRoleplayRequest) Result {
	tr := otel.Tracer("services/RoleplayService")
	ctx, span := tr.Start(ctx, "Start",
		trace.WithAttributes(
			attribute.String("session.id", req.SessionID),
			attribute.String("roleplay.user_role", req.UserRole),
			attribute.String("roleplay.bot_role", req.BotRole),
		),
	)
	defer span.End()

	const activity = domain.ActivityRoleplay
	userRole, botRole := strings.TrimSpace(req.UserRole), strings.TrimSpace(req.BotRole)
	if userRole == "" || botRole == "" {
		return observeTurn(errorResult(activity, "누가 어떤 역할을 할지 정해줘!", ErrMissingRoles))
	}

	roomID, err := s.Rooms.Open(ctx, req.SessionID, req.ProfileID, activity)
	if roomID == "" {
		return observeTurn(errorResult(activity, msgRoomFailure, err))
	}
	s.Sessions.GetOrCreate(req.SessionID).Progress = &session.RoleplayProgress{UserRole: userRole, BotRole: botRole}

	return observeTurn(Result{
		Reply:      fmt.Sprintf("좋아! 지금부터 너는 '%s', 나는 '%s'이야. 역할에 맞춰 이야기해보자!", userRole, botRole),
		Status:     StatusStart,
		ChatroomID: roomID,
		Activity:   activity,
		UserRole:   userRole,
		BotRole:    botRole,
	})
}

// Talk handles one roleplay turn. Stop phrases are honored even when no
// roleplay is running.
func (s *RoleplayService) Talk(ctx context.Context, req TalkRequest) Result {
	tr := otel.Tracer("services/RoleplayService")
	ctx, span := tr.Start(ctx, "Talk",
		trace.WithAttributes(attribute.String("session.id", req.SessionID)),
	)
	defer span.End()

	const activity = domain.ActivityRoleplay
	sess := s.Sessions.GetOrCreate(req.SessionID)
	p, ok := sess.Roleplay()

	if IsStopPhrase(req.Input) {
		res := Result{Reply: "알겠어! 역할놀이를 종료할게. 재미있었어!", Status: StatusEnd, Activity: activity}
		if ok {
			res.UserRole, res.BotRole = p.UserRole, p.BotRole
		}
		_ = s.Rooms.Close(ctx, req.SessionID, "")
		return observeTurn(res)
	}

	if !ok || !sess.HasRoom() {
		return observeTurn(errorResult(activity, "역할놀이가 시작되지 않았습니다. 먼저 역할놀이를 시작해주세요.", ErrRoleplayNotStarted))
	}

	reply, err := s.LLM.Reply(ctx, llm.RoleplayInstruction(p.BotRole, p.UserRole), sess.History, req.Input)
	if err != nil {
		log.Error().Err(err).Str("session_id", req.SessionID).Msg("roleplay reply failed")
		span.RecordError(err)
		return observeTurn(errorResult(activity, msgGenerationFailure, fmt.Errorf("%w: %v", ErrGeneration, err)))
	}
	sess.Append(llm.User(req.Input), llm.Assistant(reply))

	return observeTurn(Result{
		Reply:      reply,
		Status:     StatusContinue,
		ChatroomID: sess.ChatroomID,
		Activity:   activity,
		UserRole:   p.UserRole,
		BotRole:    p.BotRole,
	})
}
