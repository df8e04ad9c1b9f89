package session

import (
	"fmt"
	"sync"
	"testing"

	"github.com/tbourn/kids-talk-backend/internal/domain"
	"github.com/tbourn/kids-talk-backend/internal/llm"
	"github.com/tbourn/kids-talk-backend/internal/quizbank"
)

func TestStore_GetOrCreateIsStable(t *testing.T) {
	st := NewStore()
	a := st.GetOrCreate("s1")
	b := st.GetOrCreate("s1")
	if a != b {
		t.Fatalf("expected the same session pointer")
	}
	if a.HasRoom() || len(a.History) != 0 {
		t.Fatalf("new session should be empty: %+v", a)
	}
	if _, ok := st.Get("nope"); ok {
		t.Fatalf("Get should not create")
	}
	if st.Len() != 1 {
		t.Fatalf("Len = %d", st.Len())
	}
}

func TestStore_ResetClearsInPlace(t *testing.T) {
	st := NewStore()
	s := st.GetOrCreate("s1")
	s.Bind("room-1", domain.ActivityRoleplay)
	s.Progress = &RoleplayProgress{UserRole: "학생", BotRole: "선생님"}
	s.Append(llm.User("안녕"), llm.Assistant("반가워"))

	st.Reset("s1")

	if s.HasRoom() || s.Activity != "" || s.Progress != nil || len(s.History) != 0 || s.History == nil {
		t.Fatalf("reset left state behind: %+v", s)
	}
	st.Reset("unknown") // no-op
}

func TestSession_Recent(t *testing.T) {
	s := &Session{}
	for i := 0; i < 6; i++ {
		s.Append(llm.User(fmt.Sprint(i)))
	}
	got := s.Recent(4)
	if len(got) != 4 || got[0].Content != "2" || got[3].Content != "5" {
		t.Fatalf("Recent(4) = %+v", got)
	}
	got[0].Content = "changed"
	if s.History[2].Content != "2" {
		t.Fatalf("Recent must return a copy")
	}
	if len(s.Recent(10)) != 6 || s.Recent(0) != nil {
		t.Fatalf("Recent bounds wrong")
	}
}

func TestSession_TypedProgressAccessors(t *testing.T) {
	s := &Session{}
	s.Bind("r", domain.ActivityTopicQuiz)
	s.Progress = &QuizProgress{Activity: domain.ActivityTopicQuiz}

	if _, ok := s.Quiz(domain.ActivityTopicQuiz); !ok {
		t.Fatalf("topic quiz progress not visible")
	}
	if _, ok := s.Quiz(domain.ActivityAnimalQuiz); ok {
		t.Fatalf("animal quiz must not see topic quiz progress")
	}
	if _, ok := s.Roleplay(); ok {
		t.Fatalf("roleplay must not see quiz progress")
	}

	s.Bind("r2", domain.ActivityRoleplay)
	if s.Progress != nil {
		t.Fatalf("Bind should drop previous progress")
	}
	s.Progress = &RoleplayProgress{UserRole: "손님", BotRole: "점원"}
	if p, ok := s.Roleplay(); !ok || p.BotRole != "점원" {
		t.Fatalf("roleplay progress not visible")
	}
	if _, ok := s.Quiz(domain.ActivityTopicQuiz); ok {
		t.Fatalf("quiz must not see roleplay progress")
	}
}

func TestQuizProgress_HintPolicy(t *testing.T) {
	p := &QuizProgress{Questions: make([]quizbank.Question, 2)}

	if revealed := p.Miss(); revealed || p.Step != 0 || p.Attempts != 1 {
		t.Fatalf("first miss should only hint: %+v", p)
	}
	if revealed := p.Miss(); !revealed || p.Step != 1 || p.Attempts != 0 {
		t.Fatalf("second miss should reveal and advance: %+v", p)
	}
	p.Correct()
	if p.Step != 2 || p.Score != 1 || p.Attempts != 0 || !p.Done() {
		t.Fatalf("correct on last question should finish: %+v", p)
	}
	p.Correct()
	if p.Step != 2 {
		t.Fatalf("step must never exceed question count: %d", p.Step)
	}
	if _, ok := p.Current(); ok {
		t.Fatalf("Current should be empty when done")
	}
}

func TestStore_ConcurrentDistinctSessions(t *testing.T) {
	st := NewStore()
	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			s := st.GetOrCreate(fmt.Sprintf("s%d", i))
			s.Append(llm.User("hi"))
		}(i)
	}
	wg.Wait()
	if st.Len() != 50 {
		t.Fatalf("Len = %d; want 50", st.Len())
	}
}
