package session

import (
	"github.com/tbourn/kids-talk-backend/internal/domain"
	"github.com/tbourn/kids-talk-backend/internal/quizbank"
)

// Progress is the activity-specific state of a session. The set of
// implementations is closed: QuizProgress and RoleplayProgress.
type Progress interface {
	progress()
}

// MaxAttempts is the number of wrong answers after which a quiz question is
// revealed and skipped.
const MaxAttempts = 2

// QuizProgress tracks a run through a fixed list of quiz questions.
// Step never exceeds len(Questions); Attempts is reset only when Step moves.
type QuizProgress struct {
	Activity  domain.ActivityType
	Key       string
	Questions []quizbank.Question
	Step      int
	Attempts  int
	Score     int
}

func (*QuizProgress) progress() {}

// Current returns the question at Step, or false once the quiz is done.
func (p *QuizProgress) Current() (quizbank.Question, bool) {
	if p.Done() {
		return quizbank.Question{}, false
	}
	return p.Questions[p.Step], true
}

// Done reports whether every question has been served.
func (p *QuizProgress) Done() bool { return p.Step >= len(p.Questions) }

// Total is the number of questions in the run.
func (p *QuizProgress) Total() int { return len(p.Questions) }

// Correct records a right answer and moves to the next question.
func (p *QuizProgress) Correct() {
	p.Score++
	p.advance()
}

// Miss records a wrong answer. It returns true when the attempt ceiling was
// reached, in which case the quiz has already moved to the next question.
func (p *QuizProgress) Miss() (revealed bool) {
	p.Attempts++
	if p.Attempts < MaxAttempts {
		return false
	}
	p.advance()
	return true
}

func (p *QuizProgress) advance() {
	if p.Step < len(p.Questions) {
		p.Step++
	}
	p.Attempts = 0
}

// RoleplayProgress holds the two persona labels of a roleplay.
type RoleplayProgress struct {
	UserRole string
	BotRole  string
}

func (*RoleplayProgress) progress() {}
