// Package handlers provides HTTP handler implementations for the public API.
//
// Handlers are transport-thin: they bind and validate input, serialize turns
// per session, call the services, hand persisted turns to the analysis
// pipeline and translate results into HTTP responses.
package handlers

import (
	"context"
	"time"

	"github.com/tbourn/kids-talk-backend/internal/domain"
	"github.com/tbourn/kids-talk-backend/internal/http/middleware"
	"github.com/tbourn/kids-talk-backend/internal/repo"
	"github.com/tbourn/kids-talk-backend/internal/services"
)

//
// Service contracts (context-aware)
//

// Activity is one activity state machine.
type Activity interface {
	Talk(ctx context.Context, req services.TalkRequest) services.Result
}

// RoleplayStarter opens a roleplay.
type RoleplayStarter interface {
	Start(ctx context.Context, req services.StartRoleplayRequest) services.Result
}

// Chatrooms covers room closing and the room read side.
type Chatrooms interface {
	Close(ctx context.Context, sessionID, finalInput string) error
	ListByProfile(ctx context.Context, profileID int64) ([]domain.Chatroom, error)
	Talks(ctx context.Context, chatroomID string) ([]domain.Talk, error)
	CreatedToday(ctx context.Context, profileID int64) (bool, error)
}

// TurnSink receives persisted turns; Submit reports false when dropped.
type TurnSink interface {
	Submit(rec services.TurnRecord) bool
}

// Reports serves the sentiment reports.
type Reports interface {
	Daily(ctx context.Context, profileID int64, date time.Time) (*services.DailyReport, error)
	Weekly(ctx context.Context, profileID int64) (*services.WeeklySummary, error)
	WeeklyReport(ctx context.Context, profileID int64) (*domain.WeeklyReport, error)
	Monthly(ctx context.Context, profileID int64, year, month int) (*services.MonthlyReport, error)
}

// History serves negative talks and the per-day sentiment summary.
type History interface {
	NegativeTalks(ctx context.Context, profileID int64) ([]repo.NegativeTalk, error)
	NegativeInsights(ctx context.Context, profileID int64) ([]services.NegativeInsight, error)
	SentimentSummary(ctx context.Context, profileID int64) (map[string][]services.SentimentEntry, error)
}

// Advice produces today's relationship advice.
type Advice interface {
	Today(ctx context.Context, profileID int64) (string, error)
}

// Feedback stores likes on talks.
type Feedback interface {
	SetLike(ctx context.Context, talkID string, like bool) error
}

// TalkStatsFunc returns a room's talk count and latest update, for ETags.
type TalkStatsFunc func(ctx context.Context, chatroomID string) (int64, *time.Time, error)

//
// Handler wiring
//

// Deps lists the collaborators of Handlers. A nil TalkStats disables ETags
// on room talks.
type Deps struct {
	Conversation  Activity
	TopicQuiz     Activity
	SyllableQuiz  Activity
	AnimalQuiz    Activity
	Roleplay      Activity
	RoleplayStart RoleplayStarter

	Rooms    Chatrooms
	Sink     TurnSink
	Reports  Reports
	History  History
	Advice   Advice
	Feedback Feedback

	TalkStats TalkStatsFunc
	Location  *time.Location
	Now       func() time.Time
}

// Handlers groups every HTTP endpoint.
type Handlers struct {
	d     Deps
	locks *middleware.KeyLocks
}

// New constructs Handlers bound to d.
func New(d Deps) *Handlers {
	if d.Location == nil {
		d.Location = time.UTC
	}
	if d.Now == nil {
		d.Now = time.Now
	}
	return &Handlers{d: d, locks: middleware.NewKeyLocks()}
}
