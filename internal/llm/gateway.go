package llm

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

var (
	llmReqs = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "llm_requests_total",
			Help: "Total number of language model calls by purpose and outcome.",
		},
		[]string{"purpose", "outcome"},
	)

	llmLat = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "llm_request_duration_seconds",
			Help:    "Duration of language model calls in seconds.",
			Buckets: []float64{0.1, 0.25, 0.5, 1, 2, 4, 8, 15, 30, 60},
		},
		[]string{"purpose"},
	)
)

func init() {
	prometheus.MustRegister(llmReqs, llmLat)
}

// Call purposes, used as metric labels and span names.
const (
	PurposeReply     = "reply"
	PurposeSentiment = "sentiment"
	PurposeDrift     = "drift"
	PurposeGrade     = "grade"
	PurposeSummary   = "summary"
	PurposeAnalysis  = "talk_analysis"
	PurposeWeekly    = "weekly_narrative"
	PurposeAdvice    = "advice"
	PurposeInsight   = "negative_insight"
)

// Gateway exposes one method per capability on top of a Model. Classifier
// methods return parsed values; raw model text never leaves this package
// except for free-form replies.
type Gateway struct {
	Model Model
}

// NewGateway wraps m.
func NewGateway(m Model) *Gateway { return &Gateway{Model: m} }

func (g *Gateway) complete(ctx context.Context, purpose string, msgs []Message) (string, error) {
	tr := otel.Tracer("llm/Gateway")
	ctx, span := tr.Start(ctx, purpose,
		trace.WithAttributes(attribute.Int("llm.messages", len(msgs))),
	)
	defer span.End()

	start := time.Now()
	out, err := g.Model.Complete(ctx, msgs)
	llmLat.WithLabelValues(purpose).Observe(time.Since(start).Seconds())
	if err != nil {
		llmReqs.WithLabelValues(purpose, "error").Inc()
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return "", fmt.Errorf("llm %s: %w", purpose, err)
	}
	llmReqs.WithLabelValues(purpose, "ok").Inc()
	return out, nil
}

func (g *Gateway) ask(ctx context.Context, purpose, prompt string) (string, error) {
	return g.complete(ctx, purpose, []Message{User(prompt)})
}

// Reply generates a free-form answer to input given a system instruction and
// the prior history.
func (g *Gateway) Reply(ctx context.Context, instruction string, history []Message, input string) (string, error) {
	msgs := make([]Message, 0, len(history)+2)
	msgs = append(msgs, System(instruction))
	msgs = append(msgs, history...)
	msgs = append(msgs, User(input))
	out, err := g.complete(ctx, PurposeReply, msgs)
	if err != nil {
		return "", err
	}
	if strings.TrimSpace(out) == "" {
		return "", ErrEmptyCompletion
	}
	return out, nil
}

// SentimentKeywords classifies a child's utterance. On error the neutral
// default is returned alongside the error.
func (g *Gateway) SentimentKeywords(ctx context.Context, text string) (SentimentResult, error) {
	out, err := g.ask(ctx, PurposeSentiment, fmt.Sprintf(sentimentPrompt, text))
	if err != nil {
		return ParseSentiment(""), err
	}
	return ParseSentiment(out), nil
}

// Drifted reports whether input changes the subject of the recent history.
func (g *Gateway) Drifted(ctx context.Context, recent []Message, input string) (bool, error) {
	out, err := g.ask(ctx, PurposeDrift, fmt.Sprintf(driftPrompt, Transcript(recent), input))
	if err != nil {
		return false, err
	}
	return ParseDrift(out), nil
}

// GradeAnswer reports whether childAnswer means the same as answer.
func (g *Gateway) GradeAnswer(ctx context.Context, question, answer, childAnswer string) (bool, error) {
	out, err := g.ask(ctx, PurposeGrade, fmt.Sprintf(gradePrompt, question, answer, childAnswer))
	if err != nil {
		return false, err
	}
	return ParseGrade(out), nil
}

// Summarize condenses a conversation into one sentence.
func (g *Gateway) Summarize(ctx context.Context, history []Message) (string, error) {
	out, err := g.ask(ctx, PurposeSummary, fmt.Sprintf(summaryPrompt, Transcript(history)))
	if err != nil {
		return "", err
	}
	return ParseSummary(out), nil
}

// AnalyzeTalk runs the sentiment-specific single-talk analysis.
func (g *Gateway) AnalyzeTalk(ctx context.Context, text string, positive bool) (TalkAnalysis, error) {
	tmpl := negativeTalkPrompt
	if positive {
		tmpl = positiveTalkPrompt
	}
	out, err := g.ask(ctx, PurposeAnalysis, fmt.Sprintf(tmpl, text))
	if err != nil {
		return TalkAnalysis{}, err
	}
	return ParseTalkAnalysis(out), nil
}

// NarrativeInput carries the weekly aggregates fed to the narrative prompt.
type NarrativeInput struct {
	Start, End       string
	PositiveKeywords []string
	NegativeKeywords []string
	WeekdaySummary   string
	TimeOfDaySummary string
}

// WeeklyNarrative writes the parent-facing weekly report.
func (g *Gateway) WeeklyNarrative(ctx context.Context, in NarrativeInput) (string, error) {
	prompt := fmt.Sprintf(weeklyPrompt,
		in.Start, in.End,
		joinOrNone(in.PositiveKeywords), joinOrNone(in.NegativeKeywords),
		in.WeekdaySummary, in.TimeOfDaySummary,
	)
	out, err := g.ask(ctx, PurposeWeekly, prompt)
	if err != nil {
		return "", err
	}
	if out == "" {
		return "", ErrEmptyCompletion
	}
	return out, nil
}

// Advice suggests how a parent could talk with the child about today's
// utterances, given as one line per utterance.
func (g *Gateway) Advice(ctx context.Context, childLines []string) (string, error) {
	return g.ask(ctx, PurposeAdvice, fmt.Sprintf(advicePrompt, strings.Join(childLines, "\n")))
}

// NegativeInsight explains a negative utterance to a parent in one sentence.
func (g *Gateway) NegativeInsight(ctx context.Context, text string) (string, error) {
	out, err := g.ask(ctx, PurposeInsight, fmt.Sprintf(negativeInsightPrompt, text))
	if err != nil {
		return "", err
	}
	return collapse(out), nil
}

// ConversationInstruction is the persona instruction for free conversation
// with a child called name.
func ConversationInstruction(name string) string {
	return fmt.Sprintf(conversationInstruction, name)
}

// RoleplayInstruction locks the model into botRole while the child plays
// userRole.
func RoleplayInstruction(botRole, userRole string) string {
	return fmt.Sprintf(roleplayInstruction, botRole, userRole, botRole, registerRule(botRole, userRole))
}

// Transcript renders messages as "아이: ..." / "토리: ..." lines.
func Transcript(msgs []Message) string {
	var b strings.Builder
	for i, m := range msgs {
		if i > 0 {
			b.WriteByte('\n')
		}
		switch m.Role {
		case RoleAssistant:
			b.WriteString("토리: ")
		case RoleSystem:
			b.WriteString("지시: ")
		default:
			b.WriteString("아이: ")
		}
		b.WriteString(m.Content)
	}
	return b.String()
}

func joinOrNone(ks []string) string {
	if len(ks) == 0 {
		return "없음"
	}
	return strings.Join(ks, ", ")
}
