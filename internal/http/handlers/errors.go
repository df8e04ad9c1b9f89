// Package handlers defines HTTP-layer error codes used across all API endpoints.
//
// Codes are lowercase snake_case. Generic codes mirror HTTP status semantics;
// domain codes name the activity precondition or collaborator that failed.
// Clients branch on the code, never on the message.
//
//	{
//	  "request_id": "e1b9be03-4999-4289-9f03-999b042d65d6",
//	  "code": "not_found",
//	  "message": "no records found"
//	}
package handlers

import (
	"errors"
	"net/http"

	"github.com/tbourn/kids-talk-backend/internal/services"
)

const (
	ErrCodeBadRequest       = "bad_request"
	ErrCodeNotFound         = "not_found"
	ErrCodeMethodNotAllowed = "method_not_allowed"
	ErrCodeRateLimited      = "rate_limited"
	ErrCodeInternal         = "internal_error"

	// Domain-specific:
	ErrCodeMissingTopic          = "missing_topic"
	ErrCodeInsufficientQuestions = "insufficient_questions"
	ErrCodeMissingRoles          = "missing_roles"
	ErrCodeRoleplayNotStarted    = "roleplay_not_started"
	ErrCodeChatroomUnavailable   = "chatroom_unavailable"
	ErrCodeGenerationFailed      = "generation_failed"
	ErrCodeReportFailed          = "report_failed"
	ErrCodeListFailed            = "list_failed"
	ErrCodeUpdateFailed          = "update_failed"
)

// turnError maps the error behind an error-status turn to an HTTP status and
// code. Precondition violations are the caller's to fix (422); collaborator
// failures are transient (503).
func turnError(err error) (int, string) {
	switch {
	case errors.Is(err, services.ErrMissingTopic):
		return http.StatusUnprocessableEntity, ErrCodeMissingTopic
	case errors.Is(err, services.ErrInsufficientQuestions):
		return http.StatusUnprocessableEntity, ErrCodeInsufficientQuestions
	case errors.Is(err, services.ErrMissingRoles):
		return http.StatusUnprocessableEntity, ErrCodeMissingRoles
	case errors.Is(err, services.ErrRoleplayNotStarted):
		return http.StatusConflict, ErrCodeRoleplayNotStarted
	case errors.Is(err, services.ErrGeneration):
		return http.StatusServiceUnavailable, ErrCodeGenerationFailed
	default:
		return http.StatusServiceUnavailable, ErrCodeChatroomUnavailable
	}
}
