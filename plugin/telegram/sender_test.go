package telegram

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	boterrors "github.com/glavbukh/glavbukh-bot/internal/errors"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestSender_SendMessage(t *testing.T) {
	var gotPath string
	var gotBody sendMessageRequest

	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		body, _ := io.ReadAll(r.Body)
		require.NoError(t, json.Unmarshal(body, &gotBody))
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"ok":true}`))
	}))
	defer ts.Close()

	sender := NewSender(SenderConfig{Token: "123:abc", BaseURL: ts.URL}, discardLogger())
	err := sender.SendMessage(context.Background(), 42, "привет")

	require.NoError(t, err)
	assert.Equal(t, "/bot123:abc/sendMessage", gotPath)
	assert.Equal(t, int64(42), gotBody.ChatID)
	assert.Equal(t, "привет", gotBody.Text)
	assert.Equal(t, "HTML", gotBody.ParseMode)
}

func TestSender_NonSuccessStatus(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		w.Write([]byte(`{"ok":false,"description":"Bad Request"}`))
	}))
	defer ts.Close()

	sender := NewSender(SenderConfig{Token: "t", BaseURL: ts.URL}, discardLogger())
	err := sender.SendMessage(context.Background(), 1, "x")

	require.Error(t, err)
	assert.True(t, boterrors.IsCode(err, boterrors.ErrCodeBadStatus))
	assert.Equal(t, http.StatusBadRequest, boterrors.StatusFromError(err))
}

func TestSender_Unreachable(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {}))
	ts.Close()

	sender := NewSender(SenderConfig{Token: "t", BaseURL: ts.URL}, discardLogger())
	err := sender.SendMessage(context.Background(), 1, "x")

	require.Error(t, err)
	assert.True(t, boterrors.IsCode(err, boterrors.ErrCodeConnectivity))
}

func TestMessage_IsText(t *testing.T) {
	text := "hello"
	assert.True(t, (&Message{Text: &text}).IsText())
	assert.False(t, (&Message{}).IsText())
	assert.False(t, (*Message)(nil).IsText())
	assert.Equal(t, "hello", (&Message{Text: &text}).TextContent())
	assert.Equal(t, "", (&Message{}).TextContent())
}

func TestUpdate_Decode(t *testing.T) {
	raw := `{"update_id":7,"message":{"message_id":1,"chat":{"id":99,"type":"private"},"from":{"id":5,"first_name":"Николай"},"text":"привет"}}`

	var update Update
	require.NoError(t, json.Unmarshal([]byte(raw), &update))
	require.NotNil(t, update.Message)
	assert.Equal(t, int64(99), update.Message.Chat.ID)
	assert.True(t, update.Message.IsText())
	assert.Equal(t, "привет", update.Message.TextContent())

	rawPhoto := `{"update_id":8,"message":{"message_id":2,"chat":{"id":99},"photo":[{}]}}`
	var photoUpdate Update
	require.NoError(t, json.Unmarshal([]byte(rawPhoto), &photoUpdate))
	require.NotNil(t, photoUpdate.Message)
	assert.False(t, photoUpdate.Message.IsText())
}
