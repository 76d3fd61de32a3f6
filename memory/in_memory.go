package memory

import (
	"strings"
	"sync"
)

// InMemory is a naive process-local Memory holding the entire conversation
// as an append-only list of "User: …" / "Agent: …" lines. There is no
// eviction: unbounded growth is accepted for this minimal core. Swap in a
// bounded or retrieval-backed implementation for long-running agents.
//
// Concurrency: protected by RWMutex so a memory can be inspected while an
// agent run is in flight.
type InMemory struct {
	mu      sync.RWMutex
	history []string
}

// NewInMemory creates an empty in-memory conversation log.
func NewInMemory() *InMemory {
	return &InMemory{}
}

// Context returns the full history joined by newlines.
func (m *InMemory) Context() string {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return strings.Join(m.history, "\n")
}

// SaveInteraction appends the input and output as two history lines.
func (m *InMemory) SaveInteraction(input, output string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.history = append(m.history, "User: "+input, "Agent: "+output)
}

// Len returns the number of stored history lines.
func (m *InMemory) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.history)
}

// Windowed is a Memory that keeps only the most recent entries. It trades
// recall for a bounded prompt size, useful when provider context windows are
// small.
type Windowed struct {
	mu      sync.RWMutex
	history []string
	limit   int
}

// NewWindowed creates a memory keeping at most limit history lines. A limit
// of 0 or less falls back to 20 lines (10 interactions).
func NewWindowed(limit int) *Windowed {
	if limit <= 0 {
		limit = 20
	}
	return &Windowed{limit: limit}
}

// Context returns the retained history joined by newlines.
func (m *Windowed) Context() string {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return strings.Join(m.history, "\n")
}

// SaveInteraction appends the pair and discards the oldest lines beyond the limit.
func (m *Windowed) SaveInteraction(input, output string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.history = append(m.history, "User: "+input, "Agent: "+output)
	if excess := len(m.history) - m.limit; excess > 0 {
		m.history = append([]string(nil), m.history[excess:]...)
	}
}
