// Package intent classifies inbound message text into a handling mode.
// Classification is a pure function of the text so the routing decision
// is testable apart from its side effects.
package intent

import (
	"strconv"
	"strings"
)

// Kind is the handling mode for one inbound message.
type Kind string

const (
	// KindStart is the /start command.
	KindStart Kind = "start"
	// KindHelp is the /help command.
	KindHelp Kind = "help"
	// KindReset is the /reset command.
	KindReset Kind = "reset"
	// KindListTasks is the /tasks command.
	KindListTasks Kind = "list_tasks"
	// KindCompleteTask is a well-formed /done command with a numeric ID.
	KindCompleteTask Kind = "complete_task"
	// KindMalformedCompleteTask is /done without a numeric ID; it gets a
	// usage hint, not an error.
	KindMalformedCompleteTask Kind = "complete_task_malformed"
	// KindRememberFact is the "запомни:" directive.
	KindRememberFact Kind = "remember_fact"
	// KindAddTask is the "задача:" directive.
	KindAddTask Kind = "add_task"
	// KindPayment is a payment-order generation request.
	KindPayment Kind = "payment"
	// KindConsult is the default consultation mode.
	KindConsult Kind = "consult"
)

const (
	factMarker = "запомни:"
	taskMarker = "задача:"
)

// Command prefixes are matched case-sensitively against the trimmed text.
var commandPrefixes = []struct {
	prefix string
	kind   Kind
}{
	{"/start", KindStart},
	{"/help", KindHelp},
	{"/reset", KindReset},
	{"/tasks", KindListTasks},
}

// Payment keywords are matched as case-insensitive substrings, not whole
// words, so a keyword embedded in a longer word still matches.
var paymentKeywords = []string{
	"платежку",
	"платёжку",
	"платежка",
	"платёжка",
	"платежное поручение",
	"платежным поручением",
	"сделай платеж",
	"сделай платёж",
	"оплата",
	"переведи",
	"перечислить",
}

// Classification is the routing decision for one message.
type Classification struct {
	Kind Kind
	// Payload is the fact or task text for the directive kinds.
	Payload string
	// TaskID is the parsed task ID for KindCompleteTask.
	TaskID int64
}

// Classify inspects trimmed message text and decides the handling mode.
// Precedence: structural commands, then the fact marker, then the task
// marker, then payment keywords, then consultation. First match wins, so
// a command that also contains a payment keyword is still a command.
func Classify(text string) Classification {
	for _, cmd := range commandPrefixes {
		if strings.HasPrefix(text, cmd.prefix) {
			return Classification{Kind: cmd.kind}
		}
	}

	if strings.HasPrefix(text, "/done") {
		return classifyDone(text)
	}

	lower := strings.ToLower(text)

	if strings.HasPrefix(lower, factMarker) {
		return Classification{Kind: KindRememberFact, Payload: payloadAfterColon(text)}
	}

	if strings.HasPrefix(lower, taskMarker) {
		return Classification{Kind: KindAddTask, Payload: payloadAfterColon(text)}
	}

	for _, kw := range paymentKeywords {
		if strings.Contains(lower, kw) {
			return Classification{Kind: KindPayment}
		}
	}

	return Classification{Kind: KindConsult}
}

func classifyDone(text string) Classification {
	parts := strings.Fields(text)
	if len(parts) < 2 || !isDigits(parts[1]) {
		return Classification{Kind: KindMalformedCompleteTask}
	}
	id, err := strconv.ParseInt(parts[1], 10, 64)
	if err != nil {
		return Classification{Kind: KindMalformedCompleteTask}
	}
	return Classification{Kind: KindCompleteTask, TaskID: id}
}

// payloadAfterColon returns everything after the first colon of the
// original (non-lowered) text. Further colons belong to the payload.
func payloadAfterColon(text string) string {
	_, rest, ok := strings.Cut(text, ":")
	if !ok {
		return ""
	}
	return rest
}

func isDigits(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}
