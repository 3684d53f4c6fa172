package profile

import (
	"fmt"

	"github.com/lithammer/shortuuid/v4"
	"github.com/pkg/errors"
	"github.com/spf13/viper"
)

// Profile is the configuration to start the bot server.
type Profile struct {
	// Mode can be "prod" or "dev"
	Mode string
	// Addr is the binding address for the webhook server
	Addr string
	// Port is the binding port for the webhook server
	Port int
	// Version is the current version of the server
	Version string

	// TelegramToken is the bot token used for outbound sendMessage calls
	// and as the webhook path segment.
	TelegramToken string
	// TelegramAPIURL is the Telegram Bot API base URL.
	TelegramAPIURL string
	// WebhookSecret is matched against the X-Telegram-Bot-Api-Secret-Token
	// header on inbound updates. Generated at startup when unset.
	WebhookSecret string

	// OpenAIAPIKey is the completion service API key.
	OpenAIAPIKey string
	// OpenAIBaseURL is the completion service base URL.
	OpenAIBaseURL string
	// ChatModel is the completion model.
	ChatModel string

	// HistoryWindow is the max dialogue turns kept per conversation.
	HistoryWindow int
	// MemoryLimit is the max remembered facts per conversation.
	MemoryLimit int
	// MaxConcurrentCompletions caps in-flight completion calls.
	MaxConcurrentCompletions int
}

func (p *Profile) IsDev() bool {
	return p.Mode != "prod"
}

// Validate checks that the profile is complete enough to start serving.
func (p *Profile) Validate() error {
	if p.TelegramToken == "" {
		return errors.New("telegram token is required, set GLAVBUKH_TELEGRAM_TOKEN")
	}
	if p.OpenAIAPIKey == "" {
		return errors.New("completion API key is required, set GLAVBUKH_OPENAI_API_KEY")
	}
	if p.Port <= 0 || p.Port > 65535 {
		return errors.Errorf("invalid port %d", p.Port)
	}
	return nil
}

// ListenAddr returns the address for the HTTP server to bind.
func (p *Profile) ListenAddr() string {
	return fmt.Sprintf("%s:%d", p.Addr, p.Port)
}

// FromEnv loads configuration from environment variables with the
// GLAVBUKH_ prefix, applying defaults for unset values.
func FromEnv(version string) (*Profile, error) {
	v := viper.New()
	v.SetEnvPrefix("glavbukh")
	v.AutomaticEnv()

	v.SetDefault("mode", "dev")
	v.SetDefault("addr", "")
	v.SetDefault("port", 5000)
	v.SetDefault("telegram_api_url", "https://api.telegram.org")
	v.SetDefault("openai_base_url", "https://api.openai.com/v1")
	v.SetDefault("chat_model", "gpt-4.1-mini")
	v.SetDefault("history_window", 10)
	v.SetDefault("memory_limit", 50)
	v.SetDefault("max_concurrent_completions", 8)

	p := &Profile{
		Mode:                     v.GetString("mode"),
		Addr:                     v.GetString("addr"),
		Port:                     v.GetInt("port"),
		Version:                  version,
		TelegramToken:            v.GetString("telegram_token"),
		TelegramAPIURL:           v.GetString("telegram_api_url"),
		WebhookSecret:            v.GetString("webhook_secret"),
		OpenAIAPIKey:             v.GetString("openai_api_key"),
		OpenAIBaseURL:            v.GetString("openai_base_url"),
		ChatModel:                v.GetString("chat_model"),
		HistoryWindow:            v.GetInt("history_window"),
		MemoryLimit:              v.GetInt("memory_limit"),
		MaxConcurrentCompletions: v.GetInt("max_concurrent_completions"),
	}

	if p.Mode != "prod" && p.Mode != "dev" {
		return nil, errors.Errorf("unsupported mode %q", p.Mode)
	}
	if p.WebhookSecret == "" {
		p.WebhookSecret = shortuuid.New()
	}

	return p, nil
}
