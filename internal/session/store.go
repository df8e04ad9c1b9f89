// Package session keeps per-conversation state in memory. State is lost on
// restart; durable data lives in chat rooms and talks.
package session

import (
	"sync"

	"github.com/tbourn/kids-talk-backend/internal/domain"
	"github.com/tbourn/kids-talk-backend/internal/llm"
)

// Session is the state of one conversation. A session is driven by one turn
// at a time; callers serialize turns per ID.
type Session struct {
	ID         string
	History    []llm.Message
	ChatroomID string
	Activity   domain.ActivityType
	Progress   Progress
}

// HasRoom reports whether a chat room is bound to the session.
func (s *Session) HasRoom() bool { return s.ChatroomID != "" }

// Bind attaches a freshly opened chat room.
func (s *Session) Bind(chatroomID string, activity domain.ActivityType) {
	s.ChatroomID = chatroomID
	s.Activity = activity
	s.History = []llm.Message{}
	s.Progress = nil
}

// Append adds messages to the history.
func (s *Session) Append(msgs ...llm.Message) {
	s.History = append(s.History, msgs...)
}

// Recent returns up to the last n history messages.
func (s *Session) Recent(n int) []llm.Message {
	if n <= 0 || len(s.History) == 0 {
		return nil
	}
	if n > len(s.History) {
		n = len(s.History)
	}
	return append([]llm.Message(nil), s.History[len(s.History)-n:]...)
}

// Quiz returns the quiz progress when the session is running activity.
func (s *Session) Quiz(activity domain.ActivityType) (*QuizProgress, bool) {
	p, ok := s.Progress.(*QuizProgress)
	if !ok || p.Activity != activity || s.Activity != activity {
		return nil, false
	}
	return p, true
}

// Roleplay returns the roleplay progress, if any.
func (s *Session) Roleplay() (*RoleplayProgress, bool) {
	if s.Activity != domain.ActivityRoleplay {
		return nil, false
	}
	p, ok := s.Progress.(*RoleplayProgress)
	return p, ok
}

func (s *Session) clear() {
	s.History = []llm.Message{}
	s.ChatroomID = ""
	s.Activity = ""
	s.Progress = nil
}

// Store maps session IDs to sessions. The mutex guards the map only.
type Store struct {
	mu       sync.Mutex
	sessions map[string]*Session
}

// NewStore returns an empty store.
func NewStore() *Store {
	return &Store{sessions: make(map[string]*Session)}
}

// GetOrCreate returns the session for id, creating an empty one if needed.
func (st *Store) GetOrCreate(id string) *Session {
	st.mu.Lock()
	defer st.mu.Unlock()
	s, ok := st.sessions[id]
	if !ok {
		s = &Session{ID: id, History: []llm.Message{}}
		st.sessions[id] = s
	}
	return s
}

// Get returns the session for id without creating it.
func (st *Store) Get(id string) (*Session, bool) {
	st.mu.Lock()
	defer st.mu.Unlock()
	s, ok := st.sessions[id]
	return s, ok
}

// Reset clears the chat room binding, activity and progress of id and
// installs an empty history. Holders of the *Session see the reset.
func (st *Store) Reset(id string) {
	st.mu.Lock()
	defer st.mu.Unlock()
	if s, ok := st.sessions[id]; ok {
		s.clear()
	}
}

// Len returns the number of known sessions.
func (st *Store) Len() int {
	st.mu.Lock()
	defer st.mu.Unlock()
	return len(st.sessions)
}
