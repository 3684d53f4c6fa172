package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/glavbukh/glavbukh-bot/internal/observability"
	"github.com/glavbukh/glavbukh-bot/internal/profile"
	"github.com/glavbukh/glavbukh-bot/plugin/ai"
	"github.com/glavbukh/glavbukh-bot/plugin/telegram"
	"github.com/glavbukh/glavbukh-bot/server"
	"github.com/glavbukh/glavbukh-bot/server/assistant"
)

var version = "0.1.0"

func main() {
	rootCmd := &cobra.Command{
		Use:   "glavbukh",
		Short: "Telegram accounting assistant bot",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return run(cmd.Context())
		},
	}

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		slog.Error("server exited", "error", err)
		os.Exit(1)
	}
}

func run(ctx context.Context) error {
	p, err := profile.FromEnv(version)
	if err != nil {
		return err
	}

	logger := newLogger(p)
	slog.SetDefault(logger)

	if err := p.Validate(); err != nil {
		return err
	}

	metrics := observability.NewMetrics()

	completer := ai.NewProvider(&ai.Config{
		BaseURL:   p.OpenAIBaseURL,
		APIKey:    p.OpenAIAPIKey,
		ChatModel: p.ChatModel,
	}, logger)

	sender := telegram.NewSender(telegram.SenderConfig{
		Token:   p.TelegramToken,
		BaseURL: p.TelegramAPIURL,
	}, logger)

	bot := assistant.New(assistant.Config{
		HistoryWindow:            p.HistoryWindow,
		MemoryLimit:              p.MemoryLimit,
		MaxConcurrentCompletions: p.MaxConcurrentCompletions,
	}, completer, sender, logger, metrics)

	srv := server.New(p, bot, metrics, logger)

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.Start()
	}()

	logger.Info("server started",
		"addr", p.ListenAddr(),
		"mode", p.Mode,
		"model", p.ChatModel,
		"version", version)

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}

func newLogger(p *profile.Profile) *slog.Logger {
	level := slog.LevelInfo
	if p.IsDev() {
		level = slog.LevelDebug
	}

	var handler slog.Handler
	if p.IsDev() {
		handler = slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: level})
	} else {
		handler = slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: level})
	}
	return slog.New(handler)
}
