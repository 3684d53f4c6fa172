package observability

import (
	"sync"
	"sync/atomic"
	"time"
)

// Metrics collects counters for the bot's request handling.
type Metrics struct {
	mu sync.Mutex

	updatesReceived    atomic.Int64
	repliesSent        atomic.Int64
	completionCalls    atomic.Int64
	completionFailures atomic.Int64

	intentMetrics map[string]*IntentMetrics
}

// IntentMetrics represents counters for one classified intent.
type IntentMetrics struct {
	handledCount  atomic.Int64
	totalDuration atomic.Int64 // milliseconds
	errorCount    atomic.Int64
}

// NewMetrics creates a new metrics collector.
func NewMetrics() *Metrics {
	return &Metrics{
		intentMetrics: make(map[string]*IntentMetrics),
	}
}

// RecordUpdate records one inbound update.
func (m *Metrics) RecordUpdate() {
	m.updatesReceived.Add(1)
}

// RecordReply records one outbound reply.
func (m *Metrics) RecordReply() {
	m.repliesSent.Add(1)
}

// RecordCompletionCall records one call to the completion service.
func (m *Metrics) RecordCompletionCall() {
	m.completionCalls.Add(1)
}

// RecordCompletionFailure records a failed completion call.
func (m *Metrics) RecordCompletionFailure() {
	m.completionFailures.Add(1)
}

// RecordIntent records one handled message for an intent with its duration.
func (m *Metrics) RecordIntent(intent string, duration time.Duration) {
	im := m.getIntentMetrics(intent)
	im.handledCount.Add(1)
	im.totalDuration.Add(duration.Milliseconds())
}

// RecordIntentError records a handling failure for an intent.
func (m *Metrics) RecordIntentError(intent string) {
	m.getIntentMetrics(intent).errorCount.Add(1)
}

func (m *Metrics) getIntentMetrics(intent string) *IntentMetrics {
	m.mu.Lock()
	defer m.mu.Unlock()

	im, ok := m.intentMetrics[intent]
	if !ok {
		im = &IntentMetrics{}
		m.intentMetrics[intent] = im
	}
	return im
}

// IntentSnapshot is a point-in-time view of one intent's counters.
type IntentSnapshot struct {
	Handled       int64 `json:"handled"`
	Errors        int64 `json:"errors"`
	AvgDurationMs int64 `json:"avg_duration_ms"`
}

// Snapshot is a point-in-time view of all counters.
type Snapshot struct {
	UpdatesReceived    int64                     `json:"updates_received"`
	RepliesSent        int64                     `json:"replies_sent"`
	CompletionCalls    int64                     `json:"completion_calls"`
	CompletionFailures int64                     `json:"completion_failures"`
	Intents            map[string]IntentSnapshot `json:"intents"`
}

// Snapshot returns a copy of the current counters.
func (m *Metrics) Snapshot() Snapshot {
	s := Snapshot{
		UpdatesReceived:    m.updatesReceived.Load(),
		RepliesSent:        m.repliesSent.Load(),
		CompletionCalls:    m.completionCalls.Load(),
		CompletionFailures: m.completionFailures.Load(),
		Intents:            make(map[string]IntentSnapshot),
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	for intent, im := range m.intentMetrics {
		count := im.handledCount.Load()
		avg := int64(0)
		if count > 0 {
			avg = im.totalDuration.Load() / count
		}
		s.Intents[intent] = IntentSnapshot{
			Handled:       count,
			Errors:        im.errorCount.Load(),
			AvgDurationMs: avg,
		}
	}
	return s
}

// Reset resets all counters. Useful for tests.
func (m *Metrics) Reset() {
	m.updatesReceived.Store(0)
	m.repliesSent.Store(0)
	m.completionCalls.Store(0)
	m.completionFailures.Store(0)

	m.mu.Lock()
	m.intentMetrics = make(map[string]*IntentMetrics)
	m.mu.Unlock()
}
