// internal/common/llm/client.go
package llm

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	openai "github.com/sashabaranov/go-openai"

	apperrors "salamatbot/internal/common/errors"
	"salamatbot/internal/common/metrics"
)

var (
	ErrNoAPIKey        = errors.New("NO_API_KEY")
	ErrEmptyCompletion = errors.New("EMPTY_COMPLETION")
)

// Message is a minimal chat message sent to the completion endpoint.
// Role must be one of: "system", "user", or "assistant".
type Message struct {
	Role    string
	Content string
}

// Request carries one chat-completion call. Purpose labels the call for
// metrics ("triage", "intent_classification", "final_response", ...).
type Request struct {
	Messages    []Message
	Temperature float32
	MaxTokens   int
	Purpose     string
}

// Client is the single outbound dependency of the chat core: a
// chat-completion endpoint that turns a message history into assistant text.
type Client interface {
	Chat(ctx context.Context, req Request) (string, error)
}

// Options configures the OpenAI-compatible client. BaseURL may point at any
// OpenAI-compatible gateway (OpenRouter in the reference deployment).
type Options struct {
	BaseURL string
	APIKey  string
	Model   string
	Timeout time.Duration
}

// OpenAIClient calls an OpenAI-compatible chat-completion API. The API key is
// forwarded as a bearer credential on every call and never logged.
type OpenAIClient struct {
	client  *openai.Client
	model   string
	timeout time.Duration
}

// NewOpenAIClient constructs a chat-completion client. Returns ErrNoAPIKey
// when no credential was supplied, so callers can degrade to rule-only paths.
func NewOpenAIClient(opts Options) (*OpenAIClient, error) {
	if opts.APIKey == "" {
		return nil, ErrNoAPIKey
	}

	cfg := openai.DefaultConfig(opts.APIKey)
	if opts.BaseURL != "" {
		cfg.BaseURL = opts.BaseURL
	}

	timeout := opts.Timeout
	if timeout == 0 {
		timeout = 30 * time.Second
	}
	cfg.HTTPClient = &http.Client{Timeout: timeout}

	model := opts.Model
	if model == "" {
		model = "openai/gpt-4o-mini"
	}

	return &OpenAIClient{
		client:  openai.NewClientWithConfig(cfg),
		model:   model,
		timeout: timeout,
	}, nil
}

// Chat sends the message history to the completion endpoint and returns the
// assistant's raw text. Every call is bounded by the configured timeout.
func (c *OpenAIClient) Chat(ctx context.Context, req Request) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	oaMsgs := make([]openai.ChatCompletionMessage, 0, len(req.Messages))
	for _, m := range req.Messages {
		role := m.Role
		switch role {
		case openai.ChatMessageRoleSystem, openai.ChatMessageRoleUser, openai.ChatMessageRoleAssistant:
		default:
			role = openai.ChatMessageRoleUser
		}
		oaMsgs = append(oaMsgs, openai.ChatCompletionMessage{Role: role, Content: m.Content})
	}

	start := time.Now()
	resp, err := c.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model:       c.model,
		Messages:    oaMsgs,
		Temperature: req.Temperature,
		MaxTokens:   req.MaxTokens,
	})
	metrics.LLMRequestDuration.WithLabelValues(req.Purpose).Observe(time.Since(start).Seconds())

	if err != nil {
		if ctx.Err() != nil || errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled) {
			metrics.LLMRequestErrors.WithLabelValues(req.Purpose, "timeout").Inc()
			return "", apperrors.Wrap(apperrors.ErrCodeUpstreamTimeout, "chat completion timed out", err)
		}
		metrics.LLMRequestErrors.WithLabelValues(req.Purpose, "upstream").Inc()
		return "", apperrors.Wrap(apperrors.ErrCodeUpstreamFailed, "chat completion failed", err)
	}

	if len(resp.Choices) == 0 || resp.Choices[0].Message.Content == "" {
		metrics.LLMRequestErrors.WithLabelValues(req.Purpose, "empty").Inc()
		return "", apperrors.Wrap(apperrors.ErrCodeUpstreamFailed, "no content in completion response", ErrEmptyCompletion)
	}

	return resp.Choices[0].Message.Content, nil
}

// String implements fmt.Stringer without exposing the credential.
func (c *OpenAIClient) String() string {
	return fmt.Sprintf("llm.OpenAIClient{model: %s}", c.model)
}
