// Package llm is the language model gateway. A Model turns a list of chat
// messages into generated text; the Gateway layers the app's prompts and
// the marker parsers on top so callers only see structured results.
package llm

import (
	"context"
	"errors"
	"net/http"
	"strings"

	openaigo "github.com/openai/openai-go/v3"
	"github.com/openai/openai-go/v3/option"

	"github.com/tbourn/kids-talk-backend/internal/config"
)

// Role tags a chat message.
type Role string

const (
	RoleSystem    Role = "system"
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// Message is one role-tagged chat message.
type Message struct {
	Role    Role   `json:"role"`
	Content string `json:"content"`
}

// System, User and Assistant build messages of the matching role.
func System(s string) Message    { return Message{Role: RoleSystem, Content: s} }
func User(s string) Message      { return Message{Role: RoleUser, Content: s} }
func Assistant(s string) Message { return Message{Role: RoleAssistant, Content: s} }

// Model is an opaque text completion service.
type Model interface {
	Complete(ctx context.Context, msgs []Message) (string, error)
}

// ErrEmptyCompletion is returned when the endpoint answered without choices.
var ErrEmptyCompletion = errors.New("llm: empty completion")

// OpenAIModel talks to any OpenAI-compatible chat completion endpoint.
type OpenAIModel struct {
	client      openaigo.Client
	model       string
	temperature float64
}

// NewOpenAIModel builds a client from cfg. httpClient may be nil.
func NewOpenAIModel(cfg config.LLMConfig, httpClient *http.Client) *OpenAIModel {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: cfg.Timeout}
	}
	client := openaigo.NewClient(
		option.WithBaseURL(strings.TrimRight(strings.TrimSpace(cfg.BaseURL), "/")),
		option.WithAPIKey(strings.TrimSpace(cfg.APIKey)),
		option.WithHTTPClient(httpClient),
		option.WithMaxRetries(cfg.MaxRetries),
		option.WithRequestTimeout(cfg.Timeout),
	)
	return &OpenAIModel{client: client, model: cfg.Model, temperature: cfg.Temperature}
}

// Complete sends msgs and returns the first choice's trimmed content.
func (m *OpenAIModel) Complete(ctx context.Context, msgs []Message) (string, error) {
	params := openaigo.ChatCompletionNewParams{
		Model:       openaigo.ChatModel(m.model),
		Messages:    toOpenAI(msgs),
		Temperature: openaigo.Float(m.temperature),
	}
	resp, err := m.client.Chat.Completions.New(ctx, params)
	if err != nil {
		return "", err
	}
	if len(resp.Choices) == 0 {
		return "", ErrEmptyCompletion
	}
	return strings.TrimSpace(resp.Choices[0].Message.Content), nil
}

func toOpenAI(msgs []Message) []openaigo.ChatCompletionMessageParamUnion {
	out := make([]openaigo.ChatCompletionMessageParamUnion, 0, len(msgs))
	for _, m := range msgs {
		switch m.Role {
		case RoleSystem:
			out = append(out, openaigo.SystemMessage(m.Content))
		case RoleAssistant:
			out = append(out, openaigo.AssistantMessage(m.Content))
		default:
			out = append(out, openaigo.UserMessage(m.Content))
		}
	}
	return out
}
