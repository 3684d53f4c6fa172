// Package session keeps per-conversation state: the rolling dialogue
// window, remembered business facts, and the task ledger. All state is
// in-process and volatile; a restart starts from scratch.
package session

// Turn is one dialogue entry.
type Turn struct {
	Role    string `json:"role"` // "user" | "assistant"
	Content string `json:"content"`
}

// TaskStatus is the lifecycle state of a task.
type TaskStatus string

const (
	// TaskOpen is the initial status of every task.
	TaskOpen TaskStatus = "open"
	// TaskDone is terminal; tasks are never reopened or deleted.
	TaskDone TaskStatus = "done"
)

// Task is one tracked work item. IDs are allocated from a process-wide
// counter, so they are unique across conversations even though tasks are
// only listed and completed within their owning conversation.
type Task struct {
	ID     int64      `json:"id"`
	Text   string     `json:"text"`
	Status TaskStatus `json:"status"`
}

// Session is the aggregate state of one conversation.
// Access goes through Store, which serializes operations per conversation.
type Session struct {
	turns []Turn
	facts []string
	tasks []*Task
}
