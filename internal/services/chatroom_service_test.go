package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/tbourn/kids-talk-backend/internal/domain"
	"github.com/tbourn/kids-talk-backend/internal/llm"
	"github.com/tbourn/kids-talk-backend/internal/llm/llmtest"
	"github.com/tbourn/kids-talk-backend/internal/session"
)

func TestChatroom_Open_BindsSessionWithPlaceholder(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	id, err := f.rooms.Open(ctx, "s1", 7, domain.ActivityRoleplay)
	if err != nil || id == "" {
		t.Fatalf("Open: id=%q err=%v", id, err)
	}
	sess, ok := f.store.Get("s1")
	if !ok || sess.ChatroomID != id || sess.Activity != domain.ActivityRoleplay {
		t.Fatalf("session not bound: %+v", sess)
	}
	if got := f.topic(t, id); got != "새로운 역할놀이" {
		t.Fatalf("placeholder = %q", got)
	}
}

func TestChatroom_Open_ClosesPreviousRoom(t *testing.T) {
	f := newFixture(t)
	f.model.On(llmtest.SummaryPrompt, "[요약]: 공룡 이야기를 했어요.")
	ctx := context.Background()

	first, _ := f.rooms.Open(ctx, "s1", 7, domain.ActivityConversation)
	f.store.GetOrCreate("s1").Append(llm.User("공룡 좋아"), llm.Assistant("나도!"))

	second, err := f.rooms.Open(ctx, "s1", 7, domain.ActivityConversation)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	if first == second {
		t.Fatalf("expected a new room")
	}
	if got := f.topic(t, first); got != "[일상대화] 공룡 이야기를 했어요." {
		t.Fatalf("first topic = %q", got)
	}
	sess, _ := f.store.Get("s1")
	if len(sess.History) != 0 || sess.ChatroomID != second {
		t.Fatalf("session not rebound: %+v", sess)
	}
}

func TestChatroom_Open_StoreFailure(t *testing.T) {
	f := newFixture(t)
	f.rooms.Repo = brokenRooms{}

	id, err := f.rooms.Open(context.Background(), "s1", 1, domain.ActivityConversation)
	if id != "" || !errors.Is(err, ErrChatroomUnavailable) {
		t.Fatalf("expected ErrChatroomUnavailable, got id=%q err=%v", id, err)
	}
	if sess, ok := f.store.Get("s1"); ok && sess.HasRoom() {
		t.Fatalf("session must stay without a room")
	}
}

func TestChatroom_Close_QuizTemplates(t *testing.T) {
	cases := []struct {
		activity domain.ActivityType
		key      string
		want     string
	}{
		{domain.ActivityTopicQuiz, "횡단보도", "[횡단보도] 퀴즈를 완료했어요."},
		{domain.ActivityTopicQuiz, "", "[안전 퀴즈] 퀴즈를 완료했어요."},
		{domain.ActivitySyllableQuiz, "", "[초성퀴즈]를 완료했어요."},
		{domain.ActivityAnimalQuiz, "사자", "[동물퀴즈]를 완료했어요."},
	}
	for _, tc := range cases {
		t.Run(string(tc.activity)+tc.key, func(t *testing.T) {
			f := newFixture(t)
			ctx := context.Background()
			id, _ := f.rooms.Open(ctx, "s", 1, tc.activity)
			f.store.GetOrCreate("s").Progress = &session.QuizProgress{Activity: tc.activity, Key: tc.key}

			if err := f.rooms.Close(ctx, "s", ""); err != nil {
				t.Fatalf("Close: %v", err)
			}
			if got := f.topic(t, id); got != tc.want {
				t.Fatalf("topic = %q, want %q", got, tc.want)
			}
			if len(f.model.Calls()) != 0 {
				t.Fatalf("quiz close must not call the model")
			}
		})
	}
}

func TestChatroom_Close_RoleplaySummaryAndFinalInput(t *testing.T) {
	f := newFixture(t)
	f.model.On(llmtest.SummaryPrompt, "[요약]:   병원 놀이를\n했어요.")
	ctx := context.Background()

	id, _ := f.rooms.Open(ctx, "s", 1, domain.ActivityRoleplay)
	f.store.GetOrCreate("s").Progress = &session.RoleplayProgress{UserRole: "환자", BotRole: "의사"}

	if err := f.rooms.Close(ctx, "s", "주사 싫어"); err != nil {
		t.Fatalf("Close: %v", err)
	}
	if got := f.topic(t, id); got != "[역할놀이] 병원 놀이를 했어요." {
		t.Fatalf("topic = %q", got)
	}
	if f.model.CountContaining("주사 싫어") != 1 {
		t.Fatalf("final input not summarized")
	}
	if sess, _ := f.store.Get("s"); sess.HasRoom() || sess.Progress != nil {
		t.Fatalf("session not reset: %+v", sess)
	}
}

func TestChatroom_Close_SummaryFailureKeepsPlaceholder(t *testing.T) {
	f := newFixture(t)
	f.model.Fail(llmtest.SummaryPrompt, errors.New("boom"))
	ctx := context.Background()

	id, _ := f.rooms.Open(ctx, "s", 1, domain.ActivityConversation)
	f.store.GetOrCreate("s").Append(llm.User("안녕"))

	if err := f.rooms.Close(ctx, "s", ""); err != nil {
		t.Fatalf("Close: %v", err)
	}
	if got := f.topic(t, id); got != "새로운 대화" {
		t.Fatalf("topic = %q", got)
	}
	if sess, _ := f.store.Get("s"); sess.HasRoom() {
		t.Fatalf("session must be reset even when summary fails")
	}
}

func TestChatroom_Close_NoRoomIsNoop(t *testing.T) {
	f := newFixture(t)
	if err := f.rooms.Close(context.Background(), "ghost", ""); err != nil {
		t.Fatalf("Close: %v", err)
	}
	if f.store.Len() != 0 {
		t.Fatalf("Close must not create sessions")
	}
}

func TestChatroom_ReadSide(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	if _, err := f.rooms.ListByProfile(ctx, 3); !errors.Is(err, ErrNoRecords) {
		t.Fatalf("expected ErrNoRecords, got %v", err)
	}
	if ok, err := f.rooms.CreatedToday(ctx, 3); err != nil || ok {
		t.Fatalf("CreatedToday before = %v, %v", ok, err)
	}

	id, _ := f.rooms.Open(ctx, "s", 3, domain.ActivityConversation)

	rooms, err := f.rooms.ListByProfile(ctx, 3)
	if err != nil || len(rooms) != 1 || rooms[0].ID != id {
		t.Fatalf("ListByProfile = %+v, %v", rooms, err)
	}
	if ok, err := f.rooms.CreatedToday(ctx, 3); err != nil || !ok {
		t.Fatalf("CreatedToday after = %v, %v", ok, err)
	}
	f.rooms.Now = func() time.Time { return time.Now().AddDate(0, 0, 2) }
	if ok, _ := f.rooms.CreatedToday(ctx, 3); ok {
		t.Fatalf("room must not count for another day")
	}
	if _, err := f.rooms.Talks(ctx, id); !errors.Is(err, ErrNoRecords) {
		t.Fatalf("expected ErrNoRecords for empty room, got %v", err)
	}
}
