// History HTTP handlers.
//
//   - GET  /history/chatrooms/{profile_id}
//   - GET  /history/talks/{chatroom_id}          (weak ETag)
//   - GET  /history/negative-talks/{profile_id}  (?insight=true)
//   - GET  /analysis/sentiment-summary/{profile_id}
//   - GET  /chatrooms/check-today/{profile_id}
//   - POST /relationship-advice
package handlers

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/tbourn/kids-talk-backend/internal/domain"
	"github.com/tbourn/kids-talk-backend/internal/repo"
	"github.com/tbourn/kids-talk-backend/internal/services"
)

//
// DTOs
//

// ChatroomsResponse lists a profile's rooms, newest first.
type ChatroomsResponse struct {
	Chatrooms []domain.Chatroom `json:"chatrooms"`
}

// TalksResponse lists a room's talks in order.
type TalksResponse struct {
	Talks []domain.Talk `json:"talks"`
}

// NegativeTalksResponse lists negative talks, optionally with insights.
type NegativeTalksResponse struct {
	Talks    []repo.NegativeTalk        `json:"talks,omitempty"`
	Insights []services.NegativeInsight `json:"insights,omitempty"`
}

// CheckTodayResponse tells whether a room was opened today.
type CheckTodayResponse struct {
	CreatedToday bool `json:"created_today" example:"true"`
}

// AdviceRequest asks for today's relationship advice.
type AdviceRequest struct {
	ProfileID int64 `json:"profile_id" binding:"required,gt=0" example:"42"`
}

// AdviceResponse carries the advice text.
type AdviceResponse struct {
	Advice string `json:"advice" example:"아이가 오늘 친구 이야기를 많이 했어요. 저녁에 함께 이야기해 보세요."`
}

//
// Handlers
//

// ListChatrooms godoc
// @ID          listChatrooms
// @Summary     List a profile's chat rooms
// @Tags        History
// @Produce     json
// @Param       profile_id  path  int  true  "Profile ID"  minimum(1)
// @Success     200  {object}  handlers.ChatroomsResponse
// @Failure     400  {object}  handlers.ErrorResponse  "Bad request"
// @Failure     404  {object}  handlers.ErrorResponse  "No rooms"
// @Failure     500  {object}  handlers.ErrorResponse  "Internal error"
// @Router      /history/chatrooms/{profile_id} [get]
func (h *Handlers) ListChatrooms(c *gin.Context) {
	pid, okID := profileParam(c)
	if !okID {
		return
	}
	rooms, err := h.d.Rooms.ListByProfile(c.Request.Context(), pid)
	if err != nil {
		readFailed(c, err, ErrCodeListFailed)
		return
	}
	ok(c, http.StatusOK, ChatroomsResponse{Chatrooms: rooms})
}

// ListTalks godoc
// @ID          listTalks
// @Summary     List the talks of a chat room
// @Description Supports a weak ETag via If-None-Match and may return 304.
// @Tags        History
// @Produce     json
// @Param       chatroom_id    path    string  true   "Chat room ID (UUID)"  format(uuid)
// @Param       If-None-Match  header  string  false  "Return 304 if ETag matches"
// @Success     200  {object}  handlers.TalksResponse
// @Header      200  {string}  ETag  "Weak ETag for current result"
// @Success     304  {string}  string  "Not Modified"
// @Failure     400  {object}  handlers.ErrorResponse  "Bad request"
// @Failure     404  {object}  handlers.ErrorResponse  "No talks"
// @Failure     500  {object}  handlers.ErrorResponse  "Internal error"
// @Router      /history/talks/{chatroom_id} [get]
func (h *Handlers) ListTalks(c *gin.Context) {
	roomID := c.Param("chatroom_id")
	if _, err := uuid.Parse(roomID); err != nil {
		fail(c, http.StatusBadRequest, ErrCodeBadRequest, "chatroom_id must be a UUID")
		return
	}
	ctx := c.Request.Context()

	// ETag pre-check (best effort).
	if h.d.TalkStats != nil {
		if count, maxTS, err := h.d.TalkStats(ctx, roomID); err == nil {
			var ts int64
			if maxTS != nil {
				ts = maxTS.UnixNano()
			}
			etag := fmt.Sprintf(`W/"talks:%s:%d:%d"`, roomID, count, ts)
			c.Header("ETag", etag)
			c.Header("Cache-Control", "private, no-cache")
			if inm := c.GetHeader("If-None-Match"); inm != "" && inm == etag {
				c.Status(http.StatusNotModified)
				return
			}
		}
	}

	talks, err := h.d.Rooms.Talks(ctx, roomID)
	if err != nil {
		readFailed(c, err, ErrCodeListFailed)
		return
	}
	ok(c, http.StatusOK, TalksResponse{Talks: talks})
}

// NegativeTalks godoc
// @ID          negativeTalks
// @Summary     List a profile's negative talks
// @Description With insight=true each talk comes with a short generated reading for the parent.
// @Tags        History
// @Produce     json
// @Param       profile_id  path   int   true   "Profile ID"  minimum(1)
// @Param       insight     query  bool  false  "Include generated insights"
// @Success     200  {object}  handlers.NegativeTalksResponse
// @Failure     400  {object}  handlers.ErrorResponse  "Bad request"
// @Failure     404  {object}  handlers.ErrorResponse  "No negative talks"
// @Failure     500  {object}  handlers.ErrorResponse  "Internal error"
// @Router      /history/negative-talks/{profile_id} [get]
func (h *Handlers) NegativeTalks(c *gin.Context) {
	pid, okID := profileParam(c)
	if !okID {
		return
	}
	withInsight, _ := strconv.ParseBool(c.DefaultQuery("insight", "false"))

	if withInsight {
		rows, err := h.d.History.NegativeInsights(c.Request.Context(), pid)
		if err != nil {
			readFailed(c, err, ErrCodeListFailed)
			return
		}
		ok(c, http.StatusOK, NegativeTalksResponse{Insights: rows})
		return
	}
	rows, err := h.d.History.NegativeTalks(c.Request.Context(), pid)
	if err != nil {
		readFailed(c, err, ErrCodeListFailed)
		return
	}
	ok(c, http.StatusOK, NegativeTalksResponse{Talks: rows})
}

// SentimentSummary godoc
// @ID          sentimentSummary
// @Summary     Analysed talks grouped by day
// @Tags        History
// @Produce     json
// @Param       profile_id  path  int  true  "Profile ID"  minimum(1)
// @Success     200  {object}  map[string][]services.SentimentEntry
// @Failure     400  {object}  handlers.ErrorResponse  "Bad request"
// @Failure     404  {object}  handlers.ErrorResponse  "No analyses"
// @Failure     500  {object}  handlers.ErrorResponse  "Internal error"
// @Router      /analysis/sentiment-summary/{profile_id} [get]
func (h *Handlers) SentimentSummary(c *gin.Context) {
	pid, okID := profileParam(c)
	if !okID {
		return
	}
	sum, err := h.d.History.SentimentSummary(c.Request.Context(), pid)
	if err != nil {
		readFailed(c, err, ErrCodeListFailed)
		return
	}
	ok(c, http.StatusOK, sum)
}

// CheckToday godoc
// @ID          checkToday
// @Summary     Whether the profile talked today
// @Tags        History
// @Produce     json
// @Param       profile_id  path  int  true  "Profile ID"  minimum(1)
// @Success     200  {object}  handlers.CheckTodayResponse
// @Failure     400  {object}  handlers.ErrorResponse  "Bad request"
// @Failure     500  {object}  handlers.ErrorResponse  "Internal error"
// @Router      /chatrooms/check-today/{profile_id} [get]
func (h *Handlers) CheckToday(c *gin.Context) {
	pid, okID := profileParam(c)
	if !okID {
		return
	}
	created, err := h.d.Rooms.CreatedToday(c.Request.Context(), pid)
	if err != nil {
		fail(c, http.StatusInternalServerError, ErrCodeListFailed, err.Error())
		return
	}
	ok(c, http.StatusOK, CheckTodayResponse{CreatedToday: created})
}

// RelationshipAdvice godoc
// @ID          relationshipAdvice
// @Summary     Parenting advice from today's conversation
// @Description Reads the child's conversation turns of today. Without any, a fixed notice is returned as advice.
// @Tags        History
// @Accept      json
// @Produce     json
// @Param       body  body  handlers.AdviceRequest  true  "Profile"
// @Success     200  {object}  handlers.AdviceResponse
// @Failure     400  {object}  handlers.ErrorResponse  "Bad request"
// @Failure     500  {object}  handlers.ErrorResponse  "Internal error"
// @Router      /relationship-advice [post]
func (h *Handlers) RelationshipAdvice(c *gin.Context) {
	var req AdviceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, ErrCodeBadRequest, "profile_id is required")
		return
	}
	text, err := h.d.Advice.Today(c.Request.Context(), req.ProfileID)
	if err != nil {
		fail(c, http.StatusInternalServerError, ErrCodeInternal, err.Error())
		return
	}
	ok(c, http.StatusOK, AdviceResponse{Advice: text})
}
