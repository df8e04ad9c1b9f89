package services

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/tbourn/kids-talk-backend/internal/domain"
	"github.com/tbourn/kids-talk-backend/internal/llm/llmtest"
	"github.com/tbourn/kids-talk-backend/internal/repo"
)

func seedTalk(t *testing.T, f *fixture, category, role, content string) {
	t.Helper()
	ctx := context.Background()
	room, err := repo.CreateChatroom(ctx, f.db, 1, "새로운 대화")
	if err != nil {
		t.Fatalf("room: %v", err)
	}
	if _, err := repo.CreateTalk(ctx, f.db, repo.NewTalk{
		ChatroomID: room.ID, ProfileID: 1, SessionID: "s", Category: category, Role: role, Content: content,
	}); err != nil {
		t.Fatalf("talk: %v", err)
	}
}

func TestAdvice_NoTalksToday(t *testing.T) {
	f := newFixture(t)
	got, err := NewAdviceService(f.db, f.gw, time.UTC).Today(context.Background(), 1)
	if err != nil || got != MsgNoTalksToday {
		t.Fatalf("Today = %q, %v", got, err)
	}
}

func TestAdvice_OnlyBotTalks(t *testing.T) {
	f := newFixture(t)
	seedTalk(t, f, "LIFESTYLEHABIT", domain.RoleBot, "안녕!")
	got, err := NewAdviceService(f.db, f.gw, time.UTC).Today(context.Background(), 1)
	if err != nil || got != MsgNoChildTalksToday {
		t.Fatalf("Today = %q, %v", got, err)
	}
	if len(f.model.Calls()) != 0 {
		t.Fatalf("model must not be called")
	}
}

func TestAdvice_UsesTodaysConversationLines(t *testing.T) {
	f := newFixture(t)
	f.model.On(llmtest.AdvicePrompt, "오늘 저녁엔 친구 이야기를 물어봐 주세요.")
	seedTalk(t, f, "LIFESTYLEHABIT", domain.RoleUser, "친구랑 싸웠어")
	seedTalk(t, f, "LIFESTYLEHABIT", domain.RoleBot, "속상했겠다")
	seedTalk(t, f, "SAFETYSTUDY", domain.RoleUser, "초록불")

	got, err := NewAdviceService(f.db, f.gw, time.UTC).Today(context.Background(), 1)
	if err != nil || got != "오늘 저녁엔 친구 이야기를 물어봐 주세요." {
		t.Fatalf("Today = %q, %v", got, err)
	}
	prompt := f.model.Calls()[0][0].Content
	if !strings.Contains(prompt, "- 친구랑 싸웠어") || strings.Contains(prompt, "초록불") || strings.Contains(prompt, "속상했겠다") {
		t.Fatalf("unexpected prompt:\n%s", prompt)
	}
}

func TestAdvice_GenerationFailureApologizes(t *testing.T) {
	f := newFixture(t)
	f.model.Fail(llmtest.AdvicePrompt, errors.New("down"))
	seedTalk(t, f, "LIFESTYLEHABIT", domain.RoleUser, "심심해")

	got, err := NewAdviceService(f.db, f.gw, time.UTC).Today(context.Background(), 1)
	if err != nil || got != MsgAdviceFailure {
		t.Fatalf("Today = %q, %v", got, err)
	}
}
