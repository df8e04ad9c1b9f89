// Package domain defines the persistence models for chat rooms, talks,
// per-talk analyses, and cached weekly reports. These types are mapped with
// GORM and form the core data layer of the kids talk backend.
package domain

import (
	"time"

	"gorm.io/datatypes"
)

// ActivityType names the conversational mode that owns a session.
type ActivityType string

const (
	ActivityConversation ActivityType = "conversation"
	ActivityTopicQuiz    ActivityType = "topic_quiz"
	ActivitySyllableQuiz ActivityType = "syllable_quiz"
	ActivityAnimalQuiz   ActivityType = "animal_quiz"
	ActivityRoleplay     ActivityType = "roleplay"
)

// IsQuiz reports whether the activity follows the quiz progression.
func (a ActivityType) IsQuiz() bool {
	switch a {
	case ActivityTopicQuiz, ActivitySyllableQuiz, ActivityAnimalQuiz:
		return true
	}
	return false
}

// Category is the talk category stored alongside each persisted turn. The
// values match the categories the parent app already reports on.
func (a ActivityType) Category() string {
	switch a {
	case ActivityTopicQuiz:
		return "SAFETYSTUDY"
	case ActivitySyllableQuiz:
		return "WORDPLAY"
	case ActivityAnimalQuiz:
		return "ANIMALQUIZ"
	case ActivityRoleplay:
		return "ROLEPLAY"
	default:
		return "LIFESTYLEHABIT"
	}
}

// PlaceholderTopic is written to a chat room when it is opened; the real
// topic replaces it at close time.
func (a ActivityType) PlaceholderTopic() string {
	switch a {
	case ActivityTopicQuiz, ActivityAnimalQuiz, ActivitySyllableQuiz:
		return "새로운 퀴즈"
	case ActivityRoleplay:
		return "새로운 역할놀이"
	default:
		return "새로운 대화"
	}
}

// Sentiment is the ternary sentiment tag of a user talk.
type Sentiment string

const (
	SentimentPositive Sentiment = "positive"
	SentimentNegative Sentiment = "negative"
	SentimentNeutral  Sentiment = "neutral"
)

// Talk roles.
const (
	RoleUser = "user"
	RoleBot  = "bot"
)

// Chatroom is a durable conversation container. Its topic holds a
// placeholder while open and the final summary once closed.
type Chatroom struct {
	ID        string    `json:"id"         gorm:"type:char(36);primaryKey"`
	ProfileID int64     `json:"profile_id" gorm:"not null;index:idx_profile_rooms,priority:1"`
	Topic     *string   `json:"topic"      gorm:"type:text"`
	CreatedAt time.Time `json:"created_at" gorm:"index:idx_profile_rooms,priority:2"`
}

// TableName returns the database table name for Chatroom.
func (Chatroom) TableName() string { return "chatrooms" }

// Talk is one persisted utterance within a chat room. User talks carry a
// sentiment tag and extracted keywords; bot talks are always neutral.
//
// Fields:
//   - Like: optional like/dislike feedback set after the fact.
//   - Keywords: stored as a JSON array.
//   - Chatroom: FK association; talks are cascade-deleted with their room.
type Talk struct {
	ID         string                      `json:"id"          gorm:"type:char(36);primaryKey"`
	ChatroomID string                      `json:"chatroom_id" gorm:"type:char(36);not null;index:idx_room_talks,priority:1"`
	ProfileID  int64                       `json:"profile_id"  gorm:"not null;index:idx_profile_talks,priority:1"`
	SessionID  string                      `json:"session_id"  gorm:"type:varchar(128);not null"`
	Category   string                      `json:"category"    gorm:"type:varchar(32);not null"`
	Role       string                      `json:"role"        gorm:"type:varchar(8);not null;check:role IN ('user','bot')"`
	Content    string                      `json:"content"     gorm:"type:text;not null"`
	Sentiment  Sentiment                   `json:"sentiment"   gorm:"type:varchar(16);not null;default:'neutral'"`
	Keywords   datatypes.JSONSlice[string] `json:"keywords"`
	Like       *bool                       `json:"like"`
	CreatedAt  time.Time                   `json:"created_at"  gorm:"index:idx_room_talks,priority:2;index:idx_profile_talks,priority:2"`
	UpdatedAt  time.Time                   `json:"updated_at"`

	Chatroom Chatroom `json:"-" gorm:"foreignKey:ChatroomID;references:ID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE"`
}

// TableName returns the database table name for Talk.
func (Talk) TableName() string { return "talks" }

// Analysis is the deeper single-talk analysis of a non-neutral user talk.
// At most one exists per talk (unique index on talk_id).
type Analysis struct {
	ID         string    `json:"id"          gorm:"type:char(36);primaryKey"`
	TalkID     string    `json:"talk_id"     gorm:"type:char(36);not null;uniqueIndex:ux_analysis_talk"`
	ProfileID  int64     `json:"profile_id"  gorm:"not null;index:idx_profile_analyses,priority:1"`
	Summary    string    `json:"summary"     gorm:"type:text;not null"`
	Keyword    *string   `json:"keyword"     gorm:"type:varchar(128)"`
	IsPositive bool      `json:"is_positive" gorm:"not null"`
	CreatedAt  time.Time `json:"created_at"  gorm:"index:idx_profile_analyses,priority:2"`

	Talk Talk `json:"-" gorm:"foreignKey:TalkID;references:ID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE"`
}

// TableName returns the database table name for Analysis.
func (Analysis) TableName() string { return "analyses" }

// WeeklyReport caches the generated narrative for one profile and week.
type WeeklyReport struct {
	ID        string    `json:"id"         gorm:"type:char(36);primaryKey"`
	ProfileID int64     `json:"profile_id" gorm:"not null;uniqueIndex:ux_weekly_profile_start,priority:1"`
	StartDate time.Time `json:"start_date" gorm:"not null;uniqueIndex:ux_weekly_profile_start,priority:2"`
	EndDate   time.Time `json:"end_date"   gorm:"not null"`
	Content   string    `json:"content"    gorm:"type:text;not null"`
	CreatedAt time.Time `json:"created_at"`
}

// TableName returns the database table name for WeeklyReport.
func (WeeklyReport) TableName() string { return "weekly_reports" }

// Profile is the read-only child profile owned by the parent application.
type Profile struct {
	ID        int64  `json:"id"         gorm:"primaryKey"`
	FirstName string `json:"first_name" gorm:"column:profile_first_name;type:varchar(64)"`
}

// TableName returns the database table name for Profile.
func (Profile) TableName() string { return "profiles" }
