package observability

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMetrics_Counters(t *testing.T) {
	m := NewMetrics()

	m.RecordUpdate()
	m.RecordUpdate()
	m.RecordReply()
	m.RecordCompletionCall()
	m.RecordCompletionFailure()

	snap := m.Snapshot()
	assert.Equal(t, int64(2), snap.UpdatesReceived)
	assert.Equal(t, int64(1), snap.RepliesSent)
	assert.Equal(t, int64(1), snap.CompletionCalls)
	assert.Equal(t, int64(1), snap.CompletionFailures)
}

func TestMetrics_PerIntent(t *testing.T) {
	m := NewMetrics()

	m.RecordIntent("consult", 100*time.Millisecond)
	m.RecordIntent("consult", 300*time.Millisecond)
	m.RecordIntent("payment", 50*time.Millisecond)
	m.RecordIntentError("payment")

	snap := m.Snapshot()
	require.Contains(t, snap.Intents, "consult")
	require.Contains(t, snap.Intents, "payment")
	assert.Equal(t, int64(2), snap.Intents["consult"].Handled)
	assert.Equal(t, int64(200), snap.Intents["consult"].AvgDurationMs)
	assert.Equal(t, int64(1), snap.Intents["payment"].Errors)
}

func TestMetrics_Reset(t *testing.T) {
	m := NewMetrics()
	m.RecordUpdate()
	m.RecordIntent("consult", time.Millisecond)

	m.Reset()

	snap := m.Snapshot()
	assert.Zero(t, snap.UpdatesReceived)
	assert.Empty(t, snap.Intents)
}
