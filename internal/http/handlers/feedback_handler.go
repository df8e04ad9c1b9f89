// Feedback HTTP handler.
//
//   - PUT /talks/{id}/feedback
package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/tbourn/kids-talk-backend/internal/services"
)

// FeedbackRequest is the JSON payload for liking or disliking a talk.
type FeedbackRequest struct {
	// Like is required; false records a dislike.
	Like *bool `json:"like" binding:"required" example:"true"`
}

// SetFeedback godoc
// @ID          setFeedback
// @Summary     Like or dislike a talk
// @Description Stores the parent's reaction to a bot talk. Repeated calls overwrite.
// @Tags        Feedback
// @Accept      json
// @Produce     json
// @Param       id    path  string                     true  "Talk ID (UUID)"  format(uuid)
// @Param       body  body  handlers.FeedbackRequest  true  "Reaction"
// @Success     204  {string}  string  "No Content"
// @Failure     400  {object}  handlers.ErrorResponse  "Bad request"
// @Failure     404  {object}  handlers.ErrorResponse  "Talk not found"
// @Failure     500  {object}  handlers.ErrorResponse  "Internal error"
// @Router      /talks/{id}/feedback [put]
func (h *Handlers) SetFeedback(c *gin.Context) {
	talkID := c.Param("id")
	if _, err := uuid.Parse(talkID); err != nil {
		fail(c, http.StatusBadRequest, ErrCodeBadRequest, "talk id must be a UUID")
		return
	}
	var req FeedbackRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, ErrCodeBadRequest, "like must be true or false")
		return
	}

	err := h.d.Feedback.SetLike(c.Request.Context(), talkID, *req.Like)
	switch {
	case errors.Is(err, services.ErrTalkNotFound):
		fail(c, http.StatusNotFound, ErrCodeNotFound, "talk not found")
	case err != nil:
		fail(c, http.StatusInternalServerError, ErrCodeUpdateFailed, err.Error())
	default:
		noContent(c)
	}
}
