package telegram

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	"golang.org/x/time/rate"

	boterrors "github.com/glavbukh/glavbukh-bot/internal/errors"
)

// Messenger delivers replies to a conversation.
type Messenger interface {
	SendMessage(ctx context.Context, chatID int64, text string) error
}

// SenderConfig holds configuration for the Bot API sender.
type SenderConfig struct {
	Token   string
	BaseURL string // default https://api.telegram.org
	Timeout time.Duration
	// RateLimit caps outbound sends per second. The Bot API allows
	// roughly 30 messages per second across all chats.
	RateLimit rate.Limit
	Burst     int
}

// Sender posts sendMessage requests to the Bot API.
// Delivery failures are logged, not propagated; the caller treats
// delivery as fire-and-forget.
type Sender struct {
	token   string
	baseURL string
	client  *http.Client
	limiter *rate.Limiter
	logger  *slog.Logger
}

// NewSender creates a Bot API sender.
func NewSender(cfg SenderConfig, logger *slog.Logger) *Sender {
	baseURL := cfg.BaseURL
	if baseURL == "" {
		baseURL = "https://api.telegram.org"
	}
	timeout := cfg.Timeout
	if timeout == 0 {
		timeout = 20 * time.Second
	}
	limit := cfg.RateLimit
	if limit == 0 {
		limit = rate.Limit(25)
	}
	burst := cfg.Burst
	if burst == 0 {
		burst = 5
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Sender{
		token:   cfg.Token,
		baseURL: baseURL,
		client:  &http.Client{Timeout: timeout},
		limiter: rate.NewLimiter(limit, burst),
		logger:  logger,
	}
}

type sendMessageRequest struct {
	ChatID    int64  `json:"chat_id"`
	Text      string `json:"text"`
	ParseMode string `json:"parse_mode,omitempty"`
}

// SendMessage delivers one text message to a chat with HTML parse mode.
func (s *Sender) SendMessage(ctx context.Context, chatID int64, text string) error {
	if err := s.limiter.Wait(ctx); err != nil {
		return boterrors.ContextCanceled(err)
	}

	payload, err := json.Marshal(sendMessageRequest{
		ChatID:    chatID,
		Text:      text,
		ParseMode: "HTML",
	})
	if err != nil {
		return boterrors.Internal("marshal sendMessage payload", err)
	}

	url := fmt.Sprintf("%s/bot%s/sendMessage", s.baseURL, s.token)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(payload))
	if err != nil {
		return boterrors.Internal("build sendMessage request", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.client.Do(req)
	if err != nil {
		s.logger.Error("telegram sendMessage failed", "chat_id", chatID, "error", err)
		return boterrors.Connectivity(err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		s.logger.Error("telegram sendMessage error",
			"chat_id", chatID,
			"status", resp.StatusCode,
			"body", string(body))
		return boterrors.BadStatus(resp.StatusCode, nil)
	}

	return nil
}
