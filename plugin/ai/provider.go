// Package ai provides the chat-completion provider for the bot.
package ai

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"math"
	"time"

	"github.com/sashabaranov/go-openai"

	boterrors "github.com/glavbukh/glavbukh-bot/internal/errors"
)

// Message represents a chat message.
type Message struct {
	Role    string // system, user, assistant
	Content string
}

// Helper constructors for prompt assembly.

// SystemPrompt creates a system message.
func SystemPrompt(content string) Message {
	return Message{Role: "system", Content: content}
}

// UserMessage creates a user message.
func UserMessage(content string) Message {
	return Message{Role: "user", Content: content}
}

// AssistantMessage creates an assistant message.
func AssistantMessage(content string) Message {
	return Message{Role: "assistant", Content: content}
}

// Completer performs a chat completion.
type Completer interface {
	Chat(ctx context.Context, messages []Message) (string, error)
}

// Config holds the completion provider configuration.
type Config struct {
	BaseURL    string
	APIKey     string
	ChatModel  string
	MaxRetries int
	Timeout    time.Duration
}

// DefaultConfig returns the default configuration.
func DefaultConfig() *Config {
	return &Config{
		BaseURL:    "https://api.openai.com/v1",
		APIKey:     "",
		ChatModel:  "gpt-4.1-mini",
		MaxRetries: 3,
		Timeout:    60 * time.Second,
	}
}

// Provider performs chat completions against an OpenAI-compatible API.
type Provider struct {
	client *openai.Client
	config *Config
	logger *slog.Logger
}

// NewProvider creates a new completion provider.
func NewProvider(cfg *Config, logger *slog.Logger) *Provider {
	if cfg == nil {
		cfg = DefaultConfig()
	}
	if cfg.MaxRetries == 0 {
		cfg.MaxRetries = 3
	}
	if cfg.Timeout == 0 {
		cfg.Timeout = 60 * time.Second
	}
	if cfg.ChatModel == "" {
		cfg.ChatModel = "gpt-4.1-mini"
	}
	if logger == nil {
		logger = slog.Default()
	}

	clientConfig := openai.DefaultConfig(cfg.APIKey)
	if cfg.BaseURL != "" {
		clientConfig.BaseURL = cfg.BaseURL
	}

	return &Provider{
		client: openai.NewClientWithConfig(clientConfig),
		config: cfg,
		logger: logger,
	}
}

// Chat performs a chat completion and returns the first choice's content.
// All fault classes resolve to a coded error so the caller can choose a
// user-facing diagnostic.
func (p *Provider) Chat(ctx context.Context, messages []Message) (string, error) {
	llmMessages := make([]openai.ChatCompletionMessage, len(messages))
	for i, msg := range messages {
		llmMessages[i] = openai.ChatCompletionMessage{
			Role:    msg.Role,
			Content: msg.Content,
		}
	}

	req := openai.ChatCompletionRequest{
		Model:    p.config.ChatModel,
		Messages: llmMessages,
	}

	var result string
	err := p.doWithRetry(ctx, func() error {
		callCtx, cancel := context.WithTimeout(ctx, p.config.Timeout)
		defer cancel()

		resp, err := p.client.CreateChatCompletion(callCtx, req)
		if err != nil {
			return classifyCompletionError(err)
		}
		if len(resp.Choices) == 0 {
			return boterrors.EmptyCompletion()
		}
		result = resp.Choices[0].Message.Content
		return nil
	})
	if err != nil {
		return "", err
	}

	return result, nil
}

// doWithRetry executes a function with exponential backoff retry.
// Non-success API statuses below 500 are not retried; they reflect the
// request, not transient conditions.
func (p *Provider) doWithRetry(ctx context.Context, fn func() error) error {
	var lastErr error
	for attempt := 0; attempt < p.config.MaxRetries; attempt++ {
		err := fn()
		if err == nil {
			return nil
		}
		lastErr = err

		if !isRetryable(err) || attempt == p.config.MaxRetries-1 {
			return lastErr
		}

		waitTime := time.Duration(math.Pow(2, float64(attempt))) * time.Second
		p.logger.Debug("completion request failed, retrying",
			"attempt", attempt+1,
			"wait_time", waitTime,
			"error", err)
		select {
		case <-time.After(waitTime):
		case <-ctx.Done():
			return boterrors.ContextCanceled(ctx.Err())
		}
	}
	return lastErr
}

func isRetryable(err error) bool {
	switch boterrors.GetCodeFromError(err, boterrors.ErrCodeInternal) {
	case boterrors.ErrCodeConnectivity:
		return true
	case boterrors.ErrCodeBadStatus:
		status := boterrors.StatusFromError(err)
		return status >= 500 || status == 429
	default:
		return false
	}
}

// classifyCompletionError maps go-openai errors onto the coded taxonomy.
func classifyCompletionError(err error) error {
	var apiErr *openai.APIError
	if errors.As(err, &apiErr) {
		return boterrors.BadStatus(apiErr.HTTPStatusCode, err)
	}

	var reqErr *openai.RequestError
	if errors.As(err, &reqErr) {
		if reqErr.HTTPStatusCode > 0 {
			return boterrors.BadStatus(reqErr.HTTPStatusCode, err)
		}
		return boterrors.Connectivity(err)
	}

	var syntaxErr *json.SyntaxError
	var typeErr *json.UnmarshalTypeError
	if errors.As(err, &syntaxErr) || errors.As(err, &typeErr) {
		return boterrors.BadPayload(err)
	}

	return boterrors.Connectivity(err)
}
