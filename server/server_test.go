package server

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/glavbukh/glavbukh-bot/internal/observability"
	"github.com/glavbukh/glavbukh-bot/internal/profile"
	"github.com/glavbukh/glavbukh-bot/plugin/ai"
	"github.com/glavbukh/glavbukh-bot/server/assistant"
)

type stubCompleter struct{}

func (stubCompleter) Chat(context.Context, []ai.Message) (string, error) {
	return "ответ", nil
}

type recordingMessenger struct {
	mu   sync.Mutex
	sent []string
}

func (m *recordingMessenger) SendMessage(_ context.Context, _ int64, text string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sent = append(m.sent, text)
	return nil
}

func newTestServer() (*Server, *recordingMessenger) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	messenger := &recordingMessenger{}
	metrics := observability.NewMetrics()

	p := &profile.Profile{
		Mode:          "dev",
		Port:          5000,
		TelegramToken: "123:abc",
		WebhookSecret: "s3cret",
	}

	bot := assistant.New(assistant.Config{}, stubCompleter{}, messenger, logger, metrics)
	return New(p, bot, metrics, logger), messenger
}

func postWebhook(s *Server, token, secret, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, "/webhook/"+token, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	if secret != "" {
		req.Header.Set(secretTokenHeader, secret)
	}
	rec := httptest.NewRecorder()
	s.echo.ServeHTTP(rec, req)
	return rec
}

const sampleUpdate = `{"update_id":1,"message":{"message_id":1,"chat":{"id":42},"text":"/start"}}`

func TestWebhook_HandlesUpdate(t *testing.T) {
	s, messenger := newTestServer()

	rec := postWebhook(s, "123:abc", "s3cret", sampleUpdate)

	assert.Equal(t, http.StatusOK, rec.Code)
	require.Len(t, messenger.sent, 1)
	assert.Contains(t, messenger.sent[0], "виртуальный Главбух")
}

func TestWebhook_WrongToken(t *testing.T) {
	s, messenger := newTestServer()

	rec := postWebhook(s, "wrong", "s3cret", sampleUpdate)

	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Empty(t, messenger.sent)
}

func TestWebhook_WrongSecret(t *testing.T) {
	s, messenger := newTestServer()

	rec := postWebhook(s, "123:abc", "nope", sampleUpdate)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Empty(t, messenger.sent)
}

func TestWebhook_UndecodableBodyAnswersOK(t *testing.T) {
	s, messenger := newTestServer()

	rec := postWebhook(s, "123:abc", "s3cret", "{not json")

	assert.Equal(t, http.StatusOK, rec.Code, "broken updates must not be redelivered")
	assert.Empty(t, messenger.sent)
}

func TestWebhook_UpdateWithoutMessage(t *testing.T) {
	s, messenger := newTestServer()

	rec := postWebhook(s, "123:abc", "s3cret", `{"update_id":2}`)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Empty(t, messenger.sent)
}

func TestHealthz(t *testing.T) {
	s, _ := newTestServer()

	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	rec := httptest.NewRecorder()
	s.echo.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"status":"ok"`)
}

func TestMetricsz(t *testing.T) {
	s, _ := newTestServer()

	postWebhook(s, "123:abc", "s3cret", sampleUpdate)

	req := httptest.NewRequest(http.MethodGet, "/metricsz", nil)
	rec := httptest.NewRecorder()
	s.echo.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)

	var snap observability.Snapshot
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &snap))
	assert.Equal(t, int64(1), snap.UpdatesReceived)
	assert.Equal(t, int64(1), snap.RepliesSent)
}
