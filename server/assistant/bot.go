// Package assistant routes inbound chat messages: it classifies each
// message, mutates per-conversation state, and calls the completion
// service for the model-backed modes.
package assistant

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"sync/atomic"

	"golang.org/x/sync/semaphore"

	boterrors "github.com/glavbukh/glavbukh-bot/internal/errors"
	"github.com/glavbukh/glavbukh-bot/internal/observability"
	"github.com/glavbukh/glavbukh-bot/plugin/ai"
	"github.com/glavbukh/glavbukh-bot/plugin/telegram"
	"github.com/glavbukh/glavbukh-bot/server/assistant/intent"
	"github.com/glavbukh/glavbukh-bot/server/assistant/prompt"
	"github.com/glavbukh/glavbukh-bot/server/assistant/session"
)

// Config holds the bot's tunables.
type Config struct {
	HistoryWindow            int
	MemoryLimit              int
	MaxConcurrentCompletions int
}

// Bot is the top-level message router. One HandleUpdate call fully
// resolves one inbound update: every text message gets exactly one reply
// except when an unexpected internal fault is swallowed after logging.
type Bot struct {
	store     *session.Store
	completer ai.Completer
	messenger telegram.Messenger
	logger    *slog.Logger
	metrics   *observability.Metrics

	// completionSem bounds in-flight completion calls; a slow model must
	// not let webhook goroutines pile up without limit.
	completionSem *semaphore.Weighted
}

// New creates a bot router.
func New(cfg Config, completer ai.Completer, messenger telegram.Messenger, logger *slog.Logger, metrics *observability.Metrics) *Bot {
	if logger == nil {
		logger = slog.Default()
	}
	if metrics == nil {
		metrics = observability.NewMetrics()
	}
	maxConcurrent := cfg.MaxConcurrentCompletions
	if maxConcurrent <= 0 {
		maxConcurrent = 8
	}
	return &Bot{
		store:         session.NewStore(cfg.HistoryWindow, cfg.MemoryLimit, &atomic.Int64{}),
		completer:     completer,
		messenger:     messenger,
		logger:        logger,
		metrics:       metrics,
		completionSem: semaphore.NewWeighted(int64(maxConcurrent)),
	}
}

// Store exposes the session store, primarily for tests.
func (b *Bot) Store() *session.Store {
	return b.store
}

// HandleUpdate processes one webhook update. It never panics outward:
// an unexpected fault is logged with full context and the update is
// dropped so one malformed message cannot take the process down.
func (b *Bot) HandleUpdate(ctx context.Context, update *telegram.Update) {
	if update == nil || update.Message == nil {
		return
	}

	b.metrics.RecordUpdate()
	msg := update.Message
	reqCtx := observability.NewRequestContext(b.logger, msg.Chat.ID)
	ctx = observability.WithRequestContext(ctx, reqCtx)

	defer func() {
		if r := recover(); r != nil {
			reqCtx.Error("panic while handling update",
				fmt.Errorf("panic: %v", r),
				slog.Int64("update_id", update.UpdateID))
		}
	}()

	if !msg.IsText() {
		reqCtx.SetIntent("non_text")
		b.reply(ctx, reqCtx, msg.Chat.ID, replyNonText)
		return
	}

	text := strings.TrimSpace(msg.TextContent())
	cls := intent.Classify(text)
	reqCtx.SetIntent(string(cls.Kind))
	reqCtx.Debug("update classified", slog.Int(observability.LogFieldMessageLen, len(text)))

	reply := b.dispatch(ctx, reqCtx, msg.Chat.ID, text, cls)
	if reply == "" {
		return
	}
	b.reply(ctx, reqCtx, msg.Chat.ID, reply)

	b.metrics.RecordIntent(string(cls.Kind), reqCtx.Duration())
	reqCtx.Info("update handled", slog.Int64(observability.LogFieldDuration, reqCtx.DurationMs()))
}

// dispatch executes the classified mode and returns the reply text.
// State mutations happen after validation, so one operation is never
// partially applied.
func (b *Bot) dispatch(ctx context.Context, reqCtx *observability.RequestContext, chatID int64, text string, cls intent.Classification) string {
	switch cls.Kind {
	case intent.KindStart:
		return replyStart

	case intent.KindHelp:
		return replyHelp

	case intent.KindReset:
		b.store.Reset(chatID)
		return replyReset

	case intent.KindListTasks:
		return b.store.ListTasks(chatID)

	case intent.KindCompleteTask:
		return b.store.CompleteTask(chatID, cls.TaskID)

	case intent.KindMalformedCompleteTask:
		return replyDoneUsage

	case intent.KindRememberFact:
		b.store.Remember(chatID, cls.Payload)
		return replyFactSaved

	case intent.KindAddTask:
		task := b.store.AddTask(chatID, cls.Payload)
		if task == nil {
			return replyTaskEmpty
		}
		return fmt.Sprintf("Задача #%d добавлена:\n%s", task.ID, task.Text)

	case intent.KindPayment:
		return b.askPayment(ctx, reqCtx, text)

	default:
		return b.askConsultation(ctx, reqCtx, chatID, text)
	}
}

// askConsultation runs the consultation mode. The prompt inputs are
// snapshotted before the completion call so no session lock is held for
// the call's duration; the exchange is appended afterwards.
func (b *Bot) askConsultation(ctx context.Context, reqCtx *observability.RequestContext, chatID int64, text string) string {
	factsBlock := b.store.FactsBlock(chatID)
	history := b.store.History(chatID)

	messages := prompt.Consultation(factsBlock, history, text)
	reply := b.complete(ctx, reqCtx, messages)

	// The diagnostic text for a failed call is still the conversation's
	// assistant turn, matching what the user saw.
	b.store.AppendExchange(chatID, text, reply)
	return reply
}

// askPayment runs the stateless payment-order mode. The dialogue window
// is neither read nor written: a machine-oriented schema response must
// not pollute the conversational context.
func (b *Bot) askPayment(ctx context.Context, reqCtx *observability.RequestContext, text string) string {
	return b.complete(ctx, reqCtx, prompt.Payment(text))
}

// complete calls the completion service and resolves every fault class
// to a diagnostic reply string.
func (b *Bot) complete(ctx context.Context, reqCtx *observability.RequestContext, messages []ai.Message) string {
	if err := b.completionSem.Acquire(ctx, 1); err != nil {
		reqCtx.Error("completion slot acquire failed", err)
		return replyModelNetwork
	}
	defer b.completionSem.Release(1)

	b.metrics.RecordCompletionCall()
	reply, err := b.completer.Chat(ctx, messages)
	if err != nil {
		b.metrics.RecordCompletionFailure()
		b.metrics.RecordIntentError(reqCtx.Intent)
		code := boterrors.GetCodeFromError(err, boterrors.ErrCodeInternal)
		reqCtx.Error("completion call failed", err,
			slog.String(observability.LogFieldErrorCode, string(code)))
		return diagnosticFor(code, err)
	}
	return reply
}

// diagnosticFor maps a fault class onto the user-facing diagnostic text.
func diagnosticFor(code boterrors.ErrorCode, err error) string {
	switch code {
	case boterrors.ErrCodeBadStatus:
		return fmt.Sprintf("OpenAI вернул ошибку %d. Подробности смотри в логах сервера.", boterrors.StatusFromError(err))
	case boterrors.ErrCodeBadPayload:
		return replyModelBadPayload
	case boterrors.ErrCodeEmptyCompletion:
		return replyModelBadFormat
	default:
		return replyModelNetwork
	}
}

// reply sends the outbound text. Delivery is fire-and-forget from the
// router's perspective; the sender logs failures.
func (b *Bot) reply(ctx context.Context, reqCtx *observability.RequestContext, chatID int64, text string) {
	if err := b.messenger.SendMessage(ctx, chatID, text); err != nil {
		reqCtx.Error("reply delivery failed", err)
		return
	}
	b.metrics.RecordReply()
}
