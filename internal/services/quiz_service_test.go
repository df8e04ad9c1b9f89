package services

import (
	"context"
	"errors"
	"fmt"
	"math/rand/v2"
	"strings"
	"testing"

	"github.com/tbourn/kids-talk-backend/internal/domain"
	"github.com/tbourn/kids-talk-backend/internal/llm/llmtest"
	"github.com/tbourn/kids-talk-backend/internal/quizbank"
	"github.com/tbourn/kids-talk-backend/internal/session"
)

func topicBank(topic string, n int) *quizbank.Bank {
	var qs []quizbank.Question
	for i := 0; i < n; i++ {
		qs = append(qs, quizbank.Question{
			Topic:  topic,
			Prompt: fmt.Sprintf("%s 문제 %d", topic, i),
			Answer: fmt.Sprintf("답%d", i),
			Hint:   fmt.Sprintf("힌트%d", i),
		})
	}
	return quizbank.New(qs)
}

func seededRand() *rand.Rand { return rand.New(rand.NewPCG(1, 2)) }

// gradeByAnswer marks "정답" correct and anything else wrong.
func gradeByAnswer(f *fixture) {
	f.model.On("아이의 답: 정답", "[판단: 참]").On(llmtest.GradePrompt, "[판단: 거짓]")
}

func currentQuiz(t *testing.T, f *fixture, sid string, a domain.ActivityType) *session.QuizProgress {
	t.Helper()
	sess, ok := f.store.Get(sid)
	if !ok {
		t.Fatalf("no session %s", sid)
	}
	p, ok := sess.Quiz(a)
	if !ok {
		t.Fatalf("no %s progress", a)
	}
	return p
}

func TestTopicQuiz_RequiresTopic(t *testing.T) {
	f := newFixture(t)
	svc := NewTopicQuizService(topicBank("횡단보도", 5), f.rooms, f.store, f.gw, seededRand())

	res := svc.Talk(context.Background(), TalkRequest{SessionID: "s", ProfileID: 1, Input: "시작"})
	if res.Status != StatusError || !errors.Is(res.Err, ErrMissingTopic) {
		t.Fatalf("unexpected result: %+v", res)
	}
	if sess, ok := f.store.Get("s"); ok && sess.HasRoom() {
		t.Fatalf("no room should be opened")
	}
}

func TestTopicQuiz_InsufficientPool(t *testing.T) {
	f := newFixture(t)
	svc := NewTopicQuizService(topicBank("횡단보도", 4), f.rooms, f.store, f.gw, seededRand())

	res := svc.Talk(context.Background(), TalkRequest{SessionID: "s", ProfileID: 1, Topic: "횡단보도"})
	if res.Status != StatusError || !errors.Is(res.Err, ErrInsufficientQuestions) {
		t.Fatalf("unexpected result: %+v", res)
	}
	if !strings.Contains(res.Reply, "횡단보도") {
		t.Fatalf("reply should name the topic: %q", res.Reply)
	}
}

func TestTopicQuiz_HintThenRevealThenScore(t *testing.T) {
	f := newFixture(t)
	gradeByAnswer(f)
	svc := NewTopicQuizService(topicBank("횡단보도", 7), f.rooms, f.store, f.gw, seededRand())
	ctx := context.Background()
	talk := func(in string) Result {
		return svc.Talk(ctx, TalkRequest{SessionID: "s", ProfileID: 1, Input: in, Topic: "횡단보도"})
	}

	start := talk("시작")
	if start.Status != StatusStart || start.Step != 1 || start.Total != QuizLength || start.ChatroomID == "" {
		t.Fatalf("unexpected start: %+v", start)
	}
	room := start.ChatroomID
	first, _ := currentQuiz(t, f, "s", domain.ActivityTopicQuiz).Current()
	if !strings.Contains(start.Reply, first.Prompt) {
		t.Fatalf("start must show the first question: %q", start.Reply)
	}

	// Question 1: wrong, wrong -> hint then reveal.
	hint := talk("몰라")
	if hint.Status != StatusHint || !strings.Contains(hint.Reply, first.Hint) || hint.Step != 1 {
		t.Fatalf("unexpected hint: %+v", hint)
	}
	reveal := talk("모르겠어")
	if reveal.Status != StatusAnswerAndNext || !strings.Contains(reveal.Reply, first.Answer) || reveal.Step != 2 {
		t.Fatalf("unexpected reveal: %+v", reveal)
	}

	// Questions 2-4 correct on the first try.
	for i := 0; i < 3; i++ {
		res := talk("정답")
		if res.Status != StatusContinue || res.Score != i+1 || res.ChatroomID != room {
			t.Fatalf("turn %d: %+v", i, res)
		}
	}

	// Question 5 correct ends the quiz.
	end := talk("정답")
	if end.Status != StatusEnd || end.Score != 4 || !strings.Contains(end.Reply, "오늘의 점수: 4/5") {
		t.Fatalf("unexpected end: %+v", end)
	}
	if end.Persist() {
		t.Fatalf("final turn belongs to a closed room")
	}
	if got := f.topic(t, room); got != "[횡단보도] 퀴즈를 완료했어요." {
		t.Fatalf("topic = %q", got)
	}
	if sess, _ := f.store.Get("s"); sess.HasRoom() || sess.Progress != nil {
		t.Fatalf("session not reset")
	}
}

func TestTopicQuiz_GraderFailureDoesNotCountAttempt(t *testing.T) {
	f := newFixture(t)
	f.model.Fail(llmtest.GradePrompt, errors.New("down"))
	svc := NewTopicQuizService(topicBank("불조심", 5), f.rooms, f.store, f.gw, seededRand())
	ctx := context.Background()

	svc.Talk(ctx, TalkRequest{SessionID: "s", ProfileID: 1, Topic: "불조심"})
	res := svc.Talk(ctx, TalkRequest{SessionID: "s", ProfileID: 1, Input: "음"})
	if res.Status != StatusError || !errors.Is(res.Err, ErrGeneration) {
		t.Fatalf("unexpected result: %+v", res)
	}
	if p := currentQuiz(t, f, "s", domain.ActivityTopicQuiz); p.Attempts != 0 || p.Step != 0 {
		t.Fatalf("progress moved: %+v", p)
	}
}

func TestAnimalQuiz_LastQuestionRevealEnds(t *testing.T) {
	f := newFixture(t)
	gradeByAnswer(f)
	svc := NewAnimalQuizService(topicBank("사자", 5), f.rooms, f.store, f.gw, seededRand())
	ctx := context.Background()
	talk := func(in string) Result {
		return svc.Talk(ctx, TalkRequest{SessionID: "s", ProfileID: 1, Input: in, Topic: "사자"})
	}

	start := talk("")
	if start.Status != StatusStart || !strings.Contains(start.Reply, "동물 퀴즈") {
		t.Fatalf("unexpected start: %+v", start)
	}
	for i := 0; i < 4; i++ {
		talk("정답")
	}
	hint := talk("호랑이")
	if hint.Status != StatusHint || !strings.Contains(hint.Reply, "'호랑이'(은)는 정답이 아니야") {
		t.Fatalf("unexpected hint: %+v", hint)
	}
	end := talk("고양이")
	if end.Status != StatusEnd || !strings.Contains(end.Reply, "이걸로 퀴즈가 모두 끝났어!") || !strings.Contains(end.Reply, "4/5") {
		t.Fatalf("unexpected end: %+v", end)
	}
	if got := f.topic(t, start.ChatroomID); got != "[동물퀴즈]를 완료했어요." {
		t.Fatalf("topic = %q", got)
	}
}

func TestAnimalQuiz_RequiresAnimal(t *testing.T) {
	f := newFixture(t)
	svc := NewAnimalQuizService(topicBank("사자", 5), f.rooms, f.store, f.gw, seededRand())

	res := svc.Talk(context.Background(), TalkRequest{SessionID: "s", ProfileID: 1, Topic: "  "})
	if res.Status != StatusError || !errors.Is(res.Err, ErrMissingTopic) {
		t.Fatalf("unexpected result: %+v", res)
	}
}

func TestSyllableQuiz_ExactMatchWithoutModel(t *testing.T) {
	f := newFixture(t)
	bank := quizbank.New([]quizbank.Question{
		{Answer: "사과", Hint: "빨간 과일"},
		{Answer: "바나나", Hint: "노란 과일"},
		{Answer: "기차", Hint: "칙칙폭폭"},
		{Answer: "나무", Hint: "숲"},
		{Answer: "하늘", Hint: "파란색"},
	})
	svc := NewSyllableQuizService(bank, f.rooms, f.store, seededRand())
	ctx := context.Background()
	talk := func(in string) Result {
		return svc.Talk(ctx, TalkRequest{SessionID: "s", ProfileID: 1, Input: in})
	}

	start := talk("")
	if start.Status != StatusStart {
		t.Fatalf("unexpected start: %+v", start)
	}
	for i := 0; i < QuizLength; i++ {
		q, _ := currentQuiz(t, f, "s", domain.ActivitySyllableQuiz).Current()
		res := talk("  " + q.Answer + " ")
		if i < QuizLength-1 && res.Status != StatusContinue {
			t.Fatalf("turn %d: %+v", i, res)
		}
		if i == QuizLength-1 && (res.Status != StatusEnd || res.Score != QuizLength) {
			t.Fatalf("last turn: %+v", res)
		}
	}
	if len(f.model.Calls()) != 0 {
		t.Fatalf("syllable quiz must not call the model")
	}
}

func TestSyllableQuiz_PromptShowsInitials(t *testing.T) {
	f := newFixture(t)
	var qs []quizbank.Question
	for i := 0; i < QuizLength; i++ {
		qs = append(qs, quizbank.Question{Answer: "사과", Hint: "빨간 과일"})
	}
	svc := NewSyllableQuizService(quizbank.New(qs), f.rooms, f.store, seededRand())

	res := svc.Talk(context.Background(), TalkRequest{SessionID: "s", ProfileID: 1})
	if !strings.Contains(res.Reply, "'ㅅㄱ'") || !strings.Contains(res.Reply, "빨간 과일") {
		t.Fatalf("unexpected intro: %q", res.Reply)
	}
	hint := svc.Talk(context.Background(), TalkRequest{SessionID: "s", ProfileID: 1, Input: "수건"})
	if hint.Status != StatusHint {
		t.Fatalf("unexpected hint: %+v", hint)
	}
}

func TestQuiz_SwitchingActivityStartsFresh(t *testing.T) {
	f := newFixture(t)
	gradeByAnswer(f)
	topic := NewTopicQuizService(topicBank("횡단보도", 5), f.rooms, f.store, f.gw, seededRand())
	animal := NewAnimalQuizService(topicBank("사자", 5), f.rooms, f.store, f.gw, seededRand())
	ctx := context.Background()

	first := topic.Talk(ctx, TalkRequest{SessionID: "s", ProfileID: 1, Topic: "횡단보도"})
	second := animal.Talk(ctx, TalkRequest{SessionID: "s", ProfileID: 1, Topic: "사자"})
	if second.Status != StatusStart || second.ChatroomID == first.ChatroomID {
		t.Fatalf("expected a fresh animal quiz: %+v", second)
	}
	if got := f.topic(t, first.ChatroomID); got != "[횡단보도] 퀴즈를 완료했어요." {
		t.Fatalf("topic quiz room not closed: %q", got)
	}
}
