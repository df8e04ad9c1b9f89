// Package services defines the business logic for chat rooms, activities,
// the analysis pipeline and reports.
// This file centralizes common service-level error values so that they can be
// consistently returned by service methods and checked by callers.
//
// Activity turns never return these as Go errors; they travel in Result.Err
// next to a user-facing reply. Read-side methods return them directly so the
// handler layer can map them to HTTP status codes.
package services

import "errors"

var (
	// ErrMissingTopic is returned when a quiz is started without its topic
	// or animal name.
	ErrMissingTopic = errors.New("quiz topic is required")

	// ErrInsufficientQuestions indicates that the selected pool holds fewer
	// questions than one quiz run needs.
	ErrInsufficientQuestions = errors.New("not enough questions for this topic")

	// ErrMissingRoles is returned when a roleplay is started without both
	// persona labels.
	ErrMissingRoles = errors.New("user and bot roles are required")

	// ErrRoleplayNotStarted is returned when a roleplay turn arrives for a
	// session without roleplay state.
	ErrRoleplayNotStarted = errors.New("roleplay not started")

	// ErrChatroomUnavailable indicates that a chat room could not be opened.
	ErrChatroomUnavailable = errors.New("chat room could not be opened")

	// ErrGeneration wraps a failed language model call on the reply path.
	ErrGeneration = errors.New("reply generation failed")

	// ErrNoRecords is returned by read-side methods when nothing matched.
	ErrNoRecords = errors.New("no records found")

	// ErrTalkNotFound indicates that the requested talk does not exist.
	ErrTalkNotFound = errors.New("talk not found")

	// ErrInvalidMonth is returned for a month outside 1..12.
	ErrInvalidMonth = errors.New("month must be between 1 and 12")
)

// User-facing replies.
const (
	msgRoomFailure       = "채팅방을 만들거나 찾는 데 문제가 발생했어요."
	msgGenerationFailure = "미안, 지금은 대답하기가 좀 힘들어."
)
