// Activity HTTP handlers.
//
// This file exposes the turn endpoints of every activity:
//   - POST /conversation/talk
//   - POST /quiz/talk
//   - POST /syllable-quiz/talk
//   - POST /animal-quiz/talk
//   - POST /roleplay/start
//   - POST /roleplay/talk
//   - POST /conversation/end
//
// Turns of one session run strictly one at a time. A turn that left its room
// open is handed to the analysis pipeline after the reply is computed.
package handlers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/tbourn/kids-talk-backend/internal/http/middleware"
	"github.com/tbourn/kids-talk-backend/internal/services"
)

// MsgConversationEnded is the reply to an explicit end of conversation.
const MsgConversationEnded = "대화가 종료되고 요약되었습니다."

//
// DTOs
//

// TalkRequest is the JSON payload of one activity turn.
type TalkRequest struct {
	SessionID string `json:"session_id" binding:"required,max=128" example:"7d0c3e0e-6f0e-4a53-a0b4-0c6ad8f1d2a1"`
	ProfileID int64  `json:"profile_id" binding:"required,gt=0" example:"42"`
	Input     string `json:"input" binding:"max=2000" example:"오늘 학교에서 친구랑 놀았어"`
	// Topic selects the quiz pool on the first quiz turn: a safety topic or
	// an animal name.
	Topic string `json:"topic,omitempty" binding:"max=100" example:"횡단보도"`
}

// StartRoleplayRequest is the JSON payload that opens a roleplay.
type StartRoleplayRequest struct {
	SessionID string `json:"session_id" binding:"required,max=128" example:"7d0c3e0e-6f0e-4a53-a0b4-0c6ad8f1d2a1"`
	ProfileID int64  `json:"profile_id" binding:"required,gt=0" example:"42"`
	UserRole  string `json:"user_role" binding:"max=50" example:"환자"`
	BotRole   string `json:"bot_role" binding:"max=50" example:"의사"`
}

// EndConversationRequest closes the session's open room.
type EndConversationRequest struct {
	SessionID string `json:"session_id" binding:"required,max=128" example:"7d0c3e0e-6f0e-4a53-a0b4-0c6ad8f1d2a1"`
	ProfileID int64  `json:"profile_id" example:"42"`
	// Input, when present, is added to the history before summarizing.
	Input string `json:"input,omitempty" binding:"max=2000" example:"이제 잘게"`
}

// TurnResponse is the outcome of one turn. ChatroomID is null once the turn
// closed its room.
type TurnResponse struct {
	Reply      string  `json:"reply" example:"딩동댕! 정답이에요."`
	Status     string  `json:"status" example:"continue" enums:"start,continue,hint,answer_and_next,end,error"`
	ChatroomID *string `json:"chatroom_id" example:"141add05-4415-4938-b5a1-17e0d3171aff"`
	Activity   string  `json:"activity,omitempty" example:"topic_quiz"`
	Step       int     `json:"step,omitempty" example:"2"`
	Score      int     `json:"score,omitempty" example:"1"`
	Total      int     `json:"total,omitempty" example:"5"`
	UserRole   string  `json:"user_role,omitempty" example:"환자"`
	BotRole    string  `json:"bot_role,omitempty" example:"의사"`
	// Code is set on error turns (see errors.go).
	Code string `json:"code,omitempty" example:"missing_topic"`
}

func toTurnResponse(r services.Result) TurnResponse {
	out := TurnResponse{
		Reply:    r.Reply,
		Status:   string(r.Status),
		Activity: string(r.Activity),
		Step:     r.Step,
		Score:    r.Score,
		Total:    r.Total,
		UserRole: r.UserRole,
		BotRole:  r.BotRole,
	}
	if r.ChatroomID != "" {
		id := r.ChatroomID
		out.ChatroomID = &id
	}
	return out
}

//
// Helpers
//

// bindTalk decodes a TalkRequest and trims its text fields.
func bindTalk(c *gin.Context) (services.TalkRequest, bool) {
	var req TalkRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, ErrCodeBadRequest, "session_id and profile_id are required")
		return services.TalkRequest{}, false
	}
	return services.TalkRequest{
		SessionID: strings.TrimSpace(req.SessionID),
		ProfileID: req.ProfileID,
		Input:     strings.TrimSpace(req.Input),
		Topic:     strings.TrimSpace(req.Topic),
	}, true
}

// writeTurn renders a turn. Error turns keep the reply in the body so the
// client can show it, under a non-2xx status so they are never replayed.
func writeTurn(c *gin.Context, res services.Result) {
	body := toTurnResponse(res)
	if res.Status != services.StatusError {
		ok(c, http.StatusOK, body)
		return
	}
	status, code := turnError(res.Err)
	body.Code = code
	if status >= http.StatusInternalServerError {
		middleware.LoggerFrom(c).Warn().Err(res.Err).Str("code", code).Msg("activity turn failed")
	}
	c.AbortWithStatusJSON(status, body)
}

// submit hands a persisted turn to the pipeline.
func (h *Handlers) submit(c *gin.Context, req services.TalkRequest, res services.Result) {
	if !res.Persist() || h.d.Sink == nil {
		return
	}
	if !h.d.Sink.Submit(services.NewTurnRecord(req, res)) {
		middleware.LoggerFrom(c).Warn().Str("chatroom_id", res.ChatroomID).Msg("analysis queue full, turn dropped")
	}
}

// turn returns the handler of one activity's talk endpoint.
func (h *Handlers) turn(a Activity) gin.HandlerFunc {
	return func(c *gin.Context) {
		req, okBind := bindTalk(c)
		if !okBind {
			return
		}
		unlock := h.locks.Lock(req.SessionID)
		defer unlock()

		res := a.Talk(c.Request.Context(), req)
		h.submit(c, req, res)
		writeTurn(c, res)
	}
}

//
// Handlers
//

// ConversationTalk godoc
// @ID          conversationTalk
// @Summary     Free conversation turn
// @Description Replies to the child. Stop phrases end the conversation; a topic change closes the room and opens a new one.
// @Tags        Activities
// @Accept      json
// @Produce     json
// @Param       Idempotency-Key  header  string  false  "Replays the stored reply on retry"
// @Param       body  body  handlers.TalkRequest  true  "Turn"
// @Success     200  {object}  handlers.TurnResponse
// @Failure     400  {object}  handlers.ErrorResponse  "Bad request"
// @Failure     503  {object}  handlers.TurnResponse   "Chat room or model unavailable"
// @Router      /conversation/talk [post]
func (h *Handlers) ConversationTalk(c *gin.Context) { h.turn(h.d.Conversation)(c) }

// TopicQuizTalk godoc
// @ID          topicQuizTalk
// @Summary     Topic quiz turn
// @Description The first turn needs a topic and draws five questions; later turns are graded answers.
// @Tags        Activities
// @Accept      json
// @Produce     json
// @Param       Idempotency-Key  header  string  false  "Replays the stored reply on retry"
// @Param       body  body  handlers.TalkRequest  true  "Turn"
// @Success     200  {object}  handlers.TurnResponse
// @Failure     400  {object}  handlers.ErrorResponse  "Bad request"
// @Failure     422  {object}  handlers.TurnResponse   "Missing topic or too few questions"
// @Failure     503  {object}  handlers.TurnResponse   "Chat room or model unavailable"
// @Router      /quiz/talk [post]
func (h *Handlers) TopicQuizTalk(c *gin.Context) { h.turn(h.d.TopicQuiz)(c) }

// SyllableQuizTalk godoc
// @ID          syllableQuizTalk
// @Summary     Syllable-initial quiz turn
// @Description Guess the word from its initial consonants; answers match exactly, without the model.
// @Tags        Activities
// @Accept      json
// @Produce     json
// @Param       Idempotency-Key  header  string  false  "Replays the stored reply on retry"
// @Param       body  body  handlers.TalkRequest  true  "Turn"
// @Success     200  {object}  handlers.TurnResponse
// @Failure     400  {object}  handlers.ErrorResponse  "Bad request"
// @Failure     422  {object}  handlers.TurnResponse   "Too few words"
// @Failure     503  {object}  handlers.TurnResponse   "Chat room unavailable"
// @Router      /syllable-quiz/talk [post]
func (h *Handlers) SyllableQuizTalk(c *gin.Context) { h.turn(h.d.SyllableQuiz)(c) }

// AnimalQuizTalk godoc
// @ID          animalQuizTalk
// @Summary     Animal quiz turn
// @Description The first turn needs an animal name as topic.
// @Tags        Activities
// @Accept      json
// @Produce     json
// @Param       Idempotency-Key  header  string  false  "Replays the stored reply on retry"
// @Param       body  body  handlers.TalkRequest  true  "Turn"
// @Success     200  {object}  handlers.TurnResponse
// @Failure     400  {object}  handlers.ErrorResponse  "Bad request"
// @Failure     422  {object}  handlers.TurnResponse   "Missing animal or too few questions"
// @Failure     503  {object}  handlers.TurnResponse   "Chat room or model unavailable"
// @Router      /animal-quiz/talk [post]
func (h *Handlers) AnimalQuizTalk(c *gin.Context) { h.turn(h.d.AnimalQuiz)(c) }

// RoleplayTalk godoc
// @ID          roleplayTalk
// @Summary     Roleplay turn
// @Description The bot answers in its persona. Requires a started roleplay.
// @Tags        Activities
// @Accept      json
// @Produce     json
// @Param       Idempotency-Key  header  string  false  "Replays the stored reply on retry"
// @Param       body  body  handlers.TalkRequest  true  "Turn"
// @Success     200  {object}  handlers.TurnResponse
// @Failure     400  {object}  handlers.ErrorResponse  "Bad request"
// @Failure     409  {object}  handlers.TurnResponse   "Roleplay not started"
// @Failure     503  {object}  handlers.TurnResponse   "Model unavailable"
// @Router      /roleplay/talk [post]
func (h *Handlers) RoleplayTalk(c *gin.Context) { h.turn(h.d.Roleplay)(c) }

// StartRoleplay godoc
// @ID          startRoleplay
// @Summary     Start a roleplay
// @Description Opens a roleplay room with both personas and returns the opening line.
// @Tags        Activities
// @Accept      json
// @Produce     json
// @Param       body  body  handlers.StartRoleplayRequest  true  "Personas"
// @Success     200  {object}  handlers.TurnResponse
// @Failure     400  {object}  handlers.ErrorResponse  "Bad request"
// @Failure     422  {object}  handlers.TurnResponse   "Missing roles"
// @Failure     503  {object}  handlers.TurnResponse   "Chat room unavailable"
// @Router      /roleplay/start [post]
func (h *Handlers) StartRoleplay(c *gin.Context) {
	var req StartRoleplayRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, ErrCodeBadRequest, "session_id and profile_id are required")
		return
	}
	sid := strings.TrimSpace(req.SessionID)
	unlock := h.locks.Lock(sid)
	defer unlock()

	res := h.d.RoleplayStart.Start(c.Request.Context(), services.StartRoleplayRequest{
		SessionID: sid,
		ProfileID: req.ProfileID,
		UserRole:  strings.TrimSpace(req.UserRole),
		BotRole:   strings.TrimSpace(req.BotRole),
	})
	writeTurn(c, res)
}

// EndConversation godoc
// @ID          endConversation
// @Summary     End the current conversation
// @Description Summarizes and closes the session's open room. A no-op when nothing is open.
// @Tags        Activities
// @Accept      json
// @Produce     json
// @Param       body  body  handlers.EndConversationRequest  true  "Session"
// @Success     200  {object}  handlers.TurnResponse
// @Failure     400  {object}  handlers.ErrorResponse  "Bad request"
// @Router      /conversation/end [post]
func (h *Handlers) EndConversation(c *gin.Context) {
	var req EndConversationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, ErrCodeBadRequest, "session_id is required")
		return
	}
	sid := strings.TrimSpace(req.SessionID)
	unlock := h.locks.Lock(sid)
	defer unlock()

	// The session is reset even when the topic write fails.
	if err := h.d.Rooms.Close(c.Request.Context(), sid, strings.TrimSpace(req.Input)); err != nil {
		middleware.LoggerFrom(c).Warn().Err(err).Msg("close conversation failed")
	}
	ok(c, http.StatusOK, TurnResponse{Reply: MsgConversationEnded, Status: string(services.StatusEnd)})
}
