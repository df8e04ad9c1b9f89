// Package llmtest provides a scripted llm.Model for tests.
package llmtest

import (
	"context"
	"errors"
	"strings"
	"sync"

	"github.com/tbourn/kids-talk-backend/internal/llm"
)

// ErrNoRule is returned when no rule matched and no fallback is set.
var ErrNoRule = errors.New("llmtest: no scripted reply")

type rule struct {
	contains string
	replies  []string
	err      error
}

// ScriptedModel answers by matching a substring of the last message.
// Rules are checked in the order they were added. A rule with several
// replies hands them out in turn and then repeats the last one.
type ScriptedModel struct {
	mu       sync.Mutex
	rules    []*rule
	Fallback string
	calls    [][]llm.Message
}

// On registers replies for prompts whose last message contains substr.
func (m *ScriptedModel) On(substr string, replies ...string) *ScriptedModel {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.rules = append(m.rules, &rule{contains: substr, replies: replies})
	return m
}

// Fail makes prompts containing substr return err.
func (m *ScriptedModel) Fail(substr string, err error) *ScriptedModel {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.rules = append(m.rules, &rule{contains: substr, err: err})
	return m
}

// Complete implements llm.Model.
func (m *ScriptedModel) Complete(_ context.Context, msgs []llm.Message) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	cp := append([]llm.Message(nil), msgs...)
	m.calls = append(m.calls, cp)

	last := ""
	if len(msgs) > 0 {
		last = msgs[len(msgs)-1].Content
	}
	prompt := last
	if len(msgs) > 0 && msgs[0].Role == llm.RoleSystem {
		prompt = msgs[0].Content + "\n" + last
	}
	for _, r := range m.rules {
		if !strings.Contains(prompt, r.contains) {
			continue
		}
		if r.err != nil {
			return "", r.err
		}
		out := r.replies[0]
		if len(r.replies) > 1 {
			r.replies = r.replies[1:]
		}
		return out, nil
	}
	if m.Fallback != "" {
		return m.Fallback, nil
	}
	return "", ErrNoRule
}

// Calls returns a copy of every message list received so far.
func (m *ScriptedModel) Calls() [][]llm.Message {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([][]llm.Message(nil), m.calls...)
}

// CountContaining returns how many calls had a last message containing substr.
func (m *ScriptedModel) CountContaining(substr string) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	n := 0
	for _, c := range m.calls {
		if len(c) > 0 && strings.Contains(c[len(c)-1].Content, substr) {
			n++
		}
	}
	return n
}

// Substrings that identify each prompt, for use with On and Fail.
const (
	SentimentPrompt        = "감정과 핵심 키워드"
	DriftPrompt            = "NEW_TOPIC 이라고만"
	GradePrompt            = "퀴즈 채점관"
	SummaryPrompt          = "한 문장으로 요약해"
	PositiveAnalysisPrompt = "긍정적인 감정으로 한 말"
	NegativeAnalysisPrompt = "부정적인 감정으로 한 말"
	WeeklyPrompt           = "주간 리포트"
	AdvicePrompt           = "관계 상담"
	InsightPrompt          = "마음을 한 문장으로"
	ConversationPersona    = "다정한 친구"
	RoleplayPersona        = "역할에서 벗어나지"
)
