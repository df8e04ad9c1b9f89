package services

import (
	"strings"

	"github.com/tbourn/kids-talk-backend/internal/domain"
)

// Status tells the caller how an activity turn ended.
type Status string

const (
	StatusStart         Status = "start"
	StatusContinue      Status = "continue"
	StatusHint          Status = "hint"
	StatusAnswerAndNext Status = "answer_and_next"
	StatusEnd           Status = "end"
	StatusError         Status = "error"
)

// Result is the outcome of one activity turn.
//
// ChatroomID is set only while the turn belongs to a room that is still
// open. Turns that closed their room already had the room summarized and
// must not be persisted against it.
type Result struct {
	Reply      string
	Status     Status
	ChatroomID string
	Activity   domain.ActivityType

	// Quiz fields. Step is 1-based.
	Step  int
	Score int
	Total int

	// Roleplay fields.
	UserRole string
	BotRole  string

	// Err carries the precondition or collaborator failure behind an error
	// status.
	Err error
}

// Persist reports whether the turn should be saved and analyzed.
func (r Result) Persist() bool {
	return r.ChatroomID != "" && r.Status != StatusError && r.Status != StatusEnd
}

func errorResult(activity domain.ActivityType, reply string, err error) Result {
	return Result{Reply: reply, Status: StatusError, Activity: activity, Err: err}
}

// TalkRequest is one inbound activity turn.
type TalkRequest struct {
	SessionID string
	ProfileID int64
	Input     string
	// Topic selects the quiz pool: a safety topic or an animal name. It is
	// read only on the first turn of a quiz.
	Topic string
}

// StartRoleplayRequest opens a roleplay.
type StartRoleplayRequest struct {
	SessionID string
	ProfileID int64
	UserRole  string
	BotRole   string
}

// StopPhrases end a conversation or roleplay when contained in the input.
var StopPhrases = []string{"그만", "끝", "종료", "이제 그만", "그만하고 싶어"}

// IsStopPhrase reports whether input contains any stop phrase.
func IsStopPhrase(input string) bool {
	for _, p := range StopPhrases {
		if strings.Contains(input, p) {
			return true
		}
	}
	return false
}

// TurnRecord is a finished turn handed to the analysis pipeline.
type TurnRecord struct {
	SessionID  string
	ProfileID  int64
	ChatroomID string
	Category   string
	UserText   string
	BotText    string
}

// NewTurnRecord builds the record of a persisted turn.
func NewTurnRecord(req TalkRequest, res Result) TurnRecord {
	return TurnRecord{
		SessionID:  req.SessionID,
		ProfileID:  req.ProfileID,
		ChatroomID: res.ChatroomID,
		Category:   res.Activity.Category(),
		UserText:   req.Input,
		BotText:    res.Reply,
	}
}
