// Package services – quiz activities
//
// This file implements the three quiz activities on top of one shared
// progression: five questions sampled without replacement, a hint after the
// first wrong answer, and the answer revealed and skipped after the second.
// The variants differ in how a pool is chosen, how a question is shown and
// how an answer is checked.
package services

import (
	"context"
	"fmt"
	"math/rand/v2"
	"strings"

	"github.com/rs/zerolog/log"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/tbourn/kids-talk-backend/internal/domain"
	"github.com/tbourn/kids-talk-backend/internal/hangul"
	"github.com/tbourn/kids-talk-backend/internal/quizbank"
	"github.com/tbourn/kids-talk-backend/internal/session"
)

// QuizLength is the number of questions in one quiz run.
const QuizLength = 5

// Grader judges a free-text answer against the reference answer.
type Grader interface {
	GradeAnswer(ctx context.Context, question, answer, childAnswer string) (bool, error)
}

// quizRunner drives one quiz variant. The function fields are the variant's
// texts and answer check.
type quizRunner struct {
	activity domain.ActivityType
	bank     *quizbank.Bank
	rooms    *ChatroomService
	sessions *session.Store
	rng      *rand.Rand

	// poolKey picks the pool on the first turn. A non-nil Result aborts.
	poolKey      func(req TalkRequest) (string, *Result)
	insufficient func(key string) string
	intro        func(key string, q quizbank.Question) string
	ask          func(q quizbank.Question) string
	check        func(ctx context.Context, q quizbank.Question, input string) (bool, error)
	hint         func(input string, q quizbank.Question) string
	finished     string
}

func (r *quizRunner) talk(ctx context.Context, req TalkRequest) Result {
	sess := r.sessions.GetOrCreate(req.SessionID)
	p, ok := sess.Quiz(r.activity)
	if !ok {
		return r.start(ctx, req, sess)
	}

	q, ok := p.Current()
	if !ok {
		// A finished run always closes its room; this only guards the index.
		_ = r.rooms.Close(ctx, req.SessionID, "")
		return errorResult(r.activity, msgGenerationFailure, ErrInsufficientQuestions)
	}

	correct, err := r.check(ctx, q, req.Input)
	if err != nil {
		log.Error().Err(err).Str("session_id", req.SessionID).Str("activity", string(r.activity)).Msg("grade answer failed")
		return errorResult(r.activity, msgGenerationFailure, fmt.Errorf("%w: %v", ErrGeneration, err))
	}

	if correct {
		p.Correct()
		if p.Done() {
			return r.finish(ctx, req.SessionID, p, "대단해! "+r.finished)
		}
		next, _ := p.Current()
		return r.progressResult(sess, p, StatusContinue, "딩동댕! 정답이야! 다음 문제!\n\n"+r.ask(next))
	}

	if revealed := p.Miss(); !revealed {
		return r.progressResult(sess, p, StatusHint, r.hint(req.Input, q))
	}
	reveal := fmt.Sprintf("아쉽다! 정답은 '%s'이었어.", q.Answer)
	if p.Done() {
		return r.finish(ctx, req.SessionID, p, reveal+" 이걸로 퀴즈가 모두 끝났어!")
	}
	next, _ := p.Current()
	return r.progressResult(sess, p, StatusAnswerAndNext, reveal+" 다음 문제야!\n\n"+r.ask(next))
}

func (r *quizRunner) start(ctx context.Context, req TalkRequest, sess *session.Session) Result {
	key, abort := r.poolKey(req)
	if abort != nil {
		return *abort
	}
	qs, err := r.bank.Sample(key, QuizLength, r.rng)
	if err != nil {
		return errorResult(r.activity, r.insufficient(key), ErrInsufficientQuestions)
	}
	roomID, err := r.rooms.Open(ctx, req.SessionID, req.ProfileID, r.activity)
	if roomID == "" {
		return errorResult(r.activity, msgRoomFailure, err)
	}
	p := &session.QuizProgress{Activity: r.activity, Key: key, Questions: qs}
	sess.Progress = p
	return Result{
		Reply:      r.intro(key, qs[0]),
		Status:     StatusStart,
		ChatroomID: roomID,
		Activity:   r.activity,
		Step:       1,
		Total:      p.Total(),
	}
}

func (r *quizRunner) progressResult(sess *session.Session, p *session.QuizProgress, st Status, reply string) Result {
	return Result{
		Reply:      reply,
		Status:     st,
		ChatroomID: sess.ChatroomID,
		Activity:   r.activity,
		Step:       p.Step + 1,
		Score:      p.Score,
		Total:      p.Total(),
	}
}

// finish closes the room. Score and total are read before Close resets
// the session.
func (r *quizRunner) finish(ctx context.Context, sessionID string, p *session.QuizProgress, lead string) Result {
	score, total := p.Score, p.Total()
	_ = r.rooms.Close(ctx, sessionID, "")
	return Result{
		Reply:    fmt.Sprintf("%s\n오늘의 점수: %d/%d", lead, score, total),
		Status:   StatusEnd,
		Activity: r.activity,
		Step:     total,
		Score:    score,
		Total:    total,
	}
}

func requireKey(activity domain.ActivityType, missing string) func(TalkRequest) (string, *Result) {
	return func(req TalkRequest) (string, *Result) {
		key := strings.TrimSpace(req.Topic)
		if key == "" {
			res := errorResult(activity, missing, ErrMissingTopic)
			return "", &res
		}
		return key, nil
	}
}

func gradeWith(g Grader) func(context.Context, quizbank.Question, string) (bool, error) {
	return func(ctx context.Context, q quizbank.Question, input string) (bool, error) {
		return g.GradeAnswer(ctx, q.Prompt, q.Answer, input)
	}
}

func runQuiz(ctx context.Context, r *quizRunner, name string, req TalkRequest) Result {
	tr := otel.Tracer("services/" + name)
	ctx, span := tr.Start(ctx, "Talk",
		trace.WithAttributes(
			attribute.String("session.id", req.SessionID),
			attribute.Int64("profile.id", req.ProfileID),
		),
	)
	defer span.End()

	res := r.talk(ctx, req)
	span.SetAttributes(attribute.String("quiz.status", string(res.Status)))
	return observeTurn(res)
}

// TopicQuizService runs the safety quiz, keyed by topic.
type TopicQuizService struct {
	runner *quizRunner
}

// NewTopicQuizService wires the safety quiz. rng may be nil.
func NewTopicQuizService(bank *quizbank.Bank, rooms *ChatroomService, store *session.Store, g Grader, rng *rand.Rand) *TopicQuizService {
	const activity = domain.ActivityTopicQuiz
	return &TopicQuizService{runner: &quizRunner{
		activity: activity,
		bank:     bank,
		rooms:    rooms,
		sessions: store,
		rng:      rng,
		poolKey:  requireKey(activity, "퀴즈 주제를 알려주세요! (예: 횡단보도, 낯선 사람)"),
		insufficient: func(key string) string {
			return fmt.Sprintf("'%s'에 대한 퀴즈가 아직 부족해요. 다른 주제를 말해줄래?", key)
		},
		intro: func(key string, q quizbank.Question) string {
			return fmt.Sprintf("좋아, '%s'에 대한 안전 퀴즈 시간!\n\n%s", key, q.Prompt)
		},
		ask:   func(q quizbank.Question) string { return q.Prompt },
		check: gradeWith(g),
		hint: func(_ string, q quizbank.Question) string {
			return fmt.Sprintf("음... 조금 더 생각해볼까? 힌트는 '%s'이야. 다시 한번 생각해볼래?", q.Hint)
		},
		finished: "안전 퀴즈를 모두 풀었어!",
	}}
}

// Talk handles one safety quiz turn. req.Topic is required on the first turn.
func (s *TopicQuizService) Talk(ctx context.Context, req TalkRequest) Result {
	return runQuiz(ctx, s.runner, "TopicQuizService", req)
}

// AnimalQuizService runs the animal quiz, keyed by animal name.
type AnimalQuizService struct {
	runner *quizRunner
}

// NewAnimalQuizService wires the animal quiz. rng may be nil.
func NewAnimalQuizService(bank *quizbank.Bank, rooms *ChatroomService, store *session.Store, g Grader, rng *rand.Rand) *AnimalQuizService {
	const activity = domain.ActivityAnimalQuiz
	return &AnimalQuizService{runner: &quizRunner{
		activity: activity,
		bank:     bank,
		rooms:    rooms,
		sessions: store,
		rng:      rng,
		poolKey:  requireKey(activity, "어떤 동물 퀴즈를 시작할까요?"),
		insufficient: func(key string) string {
			return fmt.Sprintf("'%s'에 대한 퀴즈가 아직 부족해요.", key)
		},
		intro: func(key string, q quizbank.Question) string {
			return fmt.Sprintf("좋아, '%s'에 대한 동물 퀴즈 시간이야!\n\n%s", key, q.Prompt)
		},
		ask:   func(q quizbank.Question) string { return q.Prompt },
		check: gradeWith(g),
		hint: func(input string, q quizbank.Question) string {
			return fmt.Sprintf("'%s'(은)는 정답이 아니야. 힌트를 잘 보고 다시 생각해볼까?\n힌트: %s", input, q.Hint)
		},
		finished: "모든 동물 퀴즈를 풀었어!",
	}}
}

// Talk handles one animal quiz turn. req.Topic carries the animal name on
// the first turn.
func (s *AnimalQuizService) Talk(ctx context.Context, req TalkRequest) Result {
	return runQuiz(ctx, s.runner, "AnimalQuizService", req)
}

// SyllableQuizService runs the initial-consonant word quiz. Answers are
// compared exactly after NFC normalization; no model call is made.
type SyllableQuizService struct {
	runner *quizRunner
}

// NewSyllableQuizService wires the syllable quiz. rng may be nil.
func NewSyllableQuizService(bank *quizbank.Bank, rooms *ChatroomService, store *session.Store, rng *rand.Rand) *SyllableQuizService {
	const activity = domain.ActivitySyllableQuiz
	ask := func(q quizbank.Question) string {
		return fmt.Sprintf("초성은 '%s', 힌트는 '%s'이야.", hangul.Initials(q.Answer), q.Hint)
	}
	return &SyllableQuizService{runner: &quizRunner{
		activity: activity,
		bank:     bank,
		rooms:    rooms,
		sessions: store,
		rng:      rng,
		poolKey:  func(TalkRequest) (string, *Result) { return quizbank.WordsKey, nil },
		insufficient: func(string) string {
			return "초성 퀴즈가 아직 부족해요. 다음에 다시 시도해줘!"
		},
		intro: func(_ string, q quizbank.Question) string {
			return fmt.Sprintf("좋아, 초성 퀴즈 시간이야!\n\n제시된 초성은 '%s'이야. 힌트는 '%s'!", hangul.Initials(q.Answer), q.Hint)
		},
		ask: ask,
		check: func(_ context.Context, q quizbank.Question, input string) (bool, error) {
			return hangul.Equal(input, q.Answer), nil
		},
		hint: func(input string, _ quizbank.Question) string {
			return fmt.Sprintf("'%s'(은)는 정답이 아니야.\n다시 생각해볼까?", strings.TrimSpace(input))
		},
		finished: "오늘 준비된 단어를 다 풀었어!",
	}}
}

// Talk handles one syllable quiz turn.
func (s *SyllableQuizService) Talk(ctx context.Context, req TalkRequest) Result {
	return runQuiz(ctx, s.runner, "SyllableQuizService", req)
}
