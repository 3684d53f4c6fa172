package session

import (
	"fmt"
	"strings"
	"sync"
	"sync/atomic"
)

const (
	// DefaultHistoryWindow is the max dialogue turns kept per conversation.
	// Each exchange is two turns, so this remembers ~5 prior exchanges.
	DefaultHistoryWindow = 10
	// DefaultMemoryLimit is the max remembered facts per conversation.
	DefaultMemoryLimit = 50
)

const (
	factsHeader  = "Факты о бизнесе Николая, которые нужно учитывать:\n"
	noTasksReply = "У тебя пока нет активных задач."
	tasksHeader  = "Твои задачи:\n"
)

// Store holds all conversation sessions, keyed by chat ID.
// Sessions are created lazily on first reference. Operations on the same
// conversation are serialized by a per-session mutex; the task ID counter
// is shared across all conversations.
type Store struct {
	mu       sync.RWMutex
	sessions map[int64]*entry

	historyWindow int
	memoryLimit   int
	taskCounter   *atomic.Int64
}

type entry struct {
	mu      sync.Mutex
	session Session
}

// NewStore creates a session store. The task counter is injected so tests
// can reset it and so the single counter is shared explicitly.
func NewStore(historyWindow, memoryLimit int, taskCounter *atomic.Int64) *Store {
	if historyWindow <= 0 {
		historyWindow = DefaultHistoryWindow
	}
	if memoryLimit <= 0 {
		memoryLimit = DefaultMemoryLimit
	}
	if taskCounter == nil {
		taskCounter = &atomic.Int64{}
	}
	return &Store{
		sessions:      make(map[int64]*entry),
		historyWindow: historyWindow,
		memoryLimit:   memoryLimit,
		taskCounter:   taskCounter,
	}
}

func (s *Store) getOrCreate(chatID int64) *entry {
	s.mu.RLock()
	e, ok := s.sessions[chatID]
	s.mu.RUnlock()
	if ok {
		return e
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if e, ok = s.sessions[chatID]; ok {
		return e
	}
	e = &entry{}
	s.sessions[chatID] = e
	return e
}

// Remember appends a fact to the conversation's memory.
// Whitespace-only facts are silently ignored. The memory keeps the most
// recent facts only, dropping the oldest on overflow.
func (s *Store) Remember(chatID int64, fact string) {
	fact = strings.TrimSpace(fact)
	if fact == "" {
		return
	}

	e := s.getOrCreate(chatID)
	e.mu.Lock()
	defer e.mu.Unlock()

	e.session.facts = append(e.session.facts, fact)
	if len(e.session.facts) > s.memoryLimit {
		e.session.facts = e.session.facts[len(e.session.facts)-s.memoryLimit:]
	}
}

// Facts returns a copy of the conversation's remembered facts.
func (s *Store) Facts(chatID int64) []string {
	e := s.getOrCreate(chatID)
	e.mu.Lock()
	defer e.mu.Unlock()

	out := make([]string, len(e.session.facts))
	copy(out, e.session.facts)
	return out
}

// FactsBlock renders the memory as a numbered block for prompt inclusion.
// Returns "" when the conversation has no facts; callers must then omit
// the section entirely.
func (s *Store) FactsBlock(chatID int64) string {
	e := s.getOrCreate(chatID)
	e.mu.Lock()
	defer e.mu.Unlock()

	if len(e.session.facts) == 0 {
		return ""
	}

	var b strings.Builder
	b.WriteString(factsHeader)
	for i, fact := range e.session.facts {
		fmt.Fprintf(&b, "%d. %s\n", i+1, fact)
	}
	return b.String()
}

// AddTask creates a task with the next global ID and status open.
// Returns nil without mutating state when the text is whitespace-only.
func (s *Store) AddTask(chatID int64, text string) *Task {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil
	}

	e := s.getOrCreate(chatID)
	e.mu.Lock()
	defer e.mu.Unlock()

	task := &Task{
		ID:     s.taskCounter.Add(1),
		Text:   text,
		Status: TaskOpen,
	}
	e.session.tasks = append(e.session.tasks, task)
	return &Task{ID: task.ID, Text: task.Text, Status: task.Status}
}

// ListTasks renders the conversation's tasks, one line per task in
// creation order, with a status glyph.
func (s *Store) ListTasks(chatID int64) string {
	e := s.getOrCreate(chatID)
	e.mu.Lock()
	defer e.mu.Unlock()

	if len(e.session.tasks) == 0 {
		return noTasksReply
	}

	lines := make([]string, 0, len(e.session.tasks))
	for _, t := range e.session.tasks {
		glyph := "🔸"
		if t.Status == TaskDone {
			glyph = "✅"
		}
		lines = append(lines, fmt.Sprintf("%s #%d: %s", glyph, t.ID, t.Text))
	}
	return tasksHeader + strings.Join(lines, "\n")
}

// CompleteTask marks the matching task done and returns a confirmation.
// The lookup is scoped to the conversation: an ID belonging to another
// conversation reports not found and mutates nothing.
func (s *Store) CompleteTask(chatID int64, taskID int64) string {
	e := s.getOrCreate(chatID)
	e.mu.Lock()
	defer e.mu.Unlock()

	for _, t := range e.session.tasks {
		if t.ID == taskID {
			t.Status = TaskDone
			return fmt.Sprintf("Задача #%d помечена как выполненная ✅", taskID)
		}
	}
	return fmt.Sprintf("Задача #%d не найдена.", taskID)
}

// Tasks returns a copy of the conversation's tasks.
func (s *Store) Tasks(chatID int64) []Task {
	e := s.getOrCreate(chatID)
	e.mu.Lock()
	defer e.mu.Unlock()

	out := make([]Task, 0, len(e.session.tasks))
	for _, t := range e.session.tasks {
		out = append(out, *t)
	}
	return out
}

// History returns a copy of the conversation's dialogue window.
func (s *Store) History(chatID int64) []Turn {
	e := s.getOrCreate(chatID)
	e.mu.Lock()
	defer e.mu.Unlock()

	out := make([]Turn, len(e.session.turns))
	copy(out, e.session.turns)
	return out
}

// AppendExchange appends one completed user/assistant exchange to the
// dialogue window, then evicts the oldest turns past the window size.
// Appending the pair under one lock keeps the window consistent when the
// same conversation is handled concurrently.
func (s *Store) AppendExchange(chatID int64, userText, assistantText string) {
	e := s.getOrCreate(chatID)
	e.mu.Lock()
	defer e.mu.Unlock()

	e.session.turns = append(e.session.turns,
		Turn{Role: "user", Content: userText},
		Turn{Role: "assistant", Content: assistantText},
	)
	if len(e.session.turns) > s.historyWindow {
		e.session.turns = e.session.turns[len(e.session.turns)-s.historyWindow:]
	}
}

// Reset clears the dialogue window only. Facts and tasks survive a reset:
// forgetting the chat context must not forget the business.
func (s *Store) Reset(chatID int64) {
	e := s.getOrCreate(chatID)
	e.mu.Lock()
	defer e.mu.Unlock()

	e.session.turns = nil
}

// SessionCount returns the number of known conversations.
func (s *Store) SessionCount() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.sessions)
}
