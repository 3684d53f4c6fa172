package profile

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFromEnv_Defaults(t *testing.T) {
	t.Setenv("GLAVBUKH_TELEGRAM_TOKEN", "123:abc")
	t.Setenv("GLAVBUKH_OPENAI_API_KEY", "sk-test")

	p, err := FromEnv("test")
	require.NoError(t, err)

	assert.Equal(t, "dev", p.Mode)
	assert.Equal(t, 5000, p.Port)
	assert.Equal(t, "https://api.telegram.org", p.TelegramAPIURL)
	assert.Equal(t, "https://api.openai.com/v1", p.OpenAIBaseURL)
	assert.Equal(t, "gpt-4.1-mini", p.ChatModel)
	assert.Equal(t, 10, p.HistoryWindow)
	assert.Equal(t, 50, p.MemoryLimit)
	assert.NotEmpty(t, p.WebhookSecret, "secret generated when unset")
	assert.True(t, p.IsDev())

	require.NoError(t, p.Validate())
}

func TestFromEnv_Overrides(t *testing.T) {
	t.Setenv("GLAVBUKH_MODE", "prod")
	t.Setenv("GLAVBUKH_PORT", "8080")
	t.Setenv("GLAVBUKH_CHAT_MODEL", "gpt-4o")
	t.Setenv("GLAVBUKH_WEBHOOK_SECRET", "fixed")
	t.Setenv("GLAVBUKH_TELEGRAM_TOKEN", "t")
	t.Setenv("GLAVBUKH_OPENAI_API_KEY", "k")

	p, err := FromEnv("test")
	require.NoError(t, err)

	assert.Equal(t, "prod", p.Mode)
	assert.False(t, p.IsDev())
	assert.Equal(t, 8080, p.Port)
	assert.Equal(t, "gpt-4o", p.ChatModel)
	assert.Equal(t, "fixed", p.WebhookSecret)
	assert.Equal(t, ":8080", p.ListenAddr())
}

func TestFromEnv_BadMode(t *testing.T) {
	t.Setenv("GLAVBUKH_MODE", "staging")

	_, err := FromEnv("test")
	assert.Error(t, err)
}

func TestValidate_MissingSecrets(t *testing.T) {
	p := &Profile{Mode: "dev", Port: 5000}
	assert.Error(t, p.Validate())

	p.TelegramToken = "t"
	assert.Error(t, p.Validate())

	p.OpenAIAPIKey = "k"
	assert.NoError(t, p.Validate())
}
