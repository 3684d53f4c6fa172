// Package server hosts the webhook HTTP server.
package server

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	"github.com/glavbukh/glavbukh-bot/internal/observability"
	"github.com/glavbukh/glavbukh-bot/internal/profile"
	"github.com/glavbukh/glavbukh-bot/plugin/telegram"
	"github.com/glavbukh/glavbukh-bot/server/assistant"
)

const secretTokenHeader = "X-Telegram-Bot-Api-Secret-Token"

// Server wires the webhook route to the bot router.
type Server struct {
	echo    *echo.Echo
	profile *profile.Profile
	bot     *assistant.Bot
	metrics *observability.Metrics
	logger  *slog.Logger
}

// New creates the HTTP server.
func New(p *profile.Profile, bot *assistant.Bot, metrics *observability.Metrics, logger *slog.Logger) *Server {
	if logger == nil {
		logger = slog.Default()
	}

	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Use(middleware.Recover())
	e.Use(requestLogger(logger))

	s := &Server{
		echo:    e,
		profile: p,
		bot:     bot,
		metrics: metrics,
		logger:  logger,
	}

	e.POST("/webhook/:token", s.handleWebhook)
	e.GET("/healthz", s.handleHealthz)
	e.GET("/metricsz", s.handleMetricsz)

	return s
}

// Start begins serving and blocks until the listener fails or closes.
func (s *Server) Start() error {
	err := s.echo.Start(s.profile.ListenAddr())
	if err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// Shutdown stops the server gracefully.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.echo.Shutdown(ctx)
}

// handleWebhook consumes one Bot API update. It always answers 200 for
// accepted requests, including undecodable bodies, so the Bot API does
// not redeliver a permanently broken update forever.
func (s *Server) handleWebhook(c echo.Context) error {
	if c.Param("token") != s.profile.TelegramToken {
		return c.NoContent(http.StatusNotFound)
	}
	if s.profile.WebhookSecret != "" && c.Request().Header.Get(secretTokenHeader) != s.profile.WebhookSecret {
		return c.NoContent(http.StatusUnauthorized)
	}

	var update telegram.Update
	if err := c.Bind(&update); err != nil {
		s.logger.Warn("undecodable webhook update", "error", err)
		return c.String(http.StatusOK, "ok")
	}

	s.bot.HandleUpdate(c.Request().Context(), &update)
	return c.String(http.StatusOK, "ok")
}

func (s *Server) handleHealthz(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]string{
		"status":  "ok",
		"version": s.profile.Version,
	})
}

func (s *Server) handleMetricsz(c echo.Context) error {
	return c.JSON(http.StatusOK, s.metrics.Snapshot())
}

// requestLogger logs one line per HTTP request with method, path,
// status, and duration. Webhook bodies are never logged.
func requestLogger(logger *slog.Logger) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			start := time.Now()
			err := next(c)
			logger.Info("http request",
				"method", c.Request().Method,
				"path", c.Path(),
				"status", c.Response().Status,
				"duration_ms", time.Since(start).Milliseconds(),
			)
			return err
		}
	}
}
