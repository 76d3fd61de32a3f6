package provider

import (
	"context"
	"fmt"
	"strings"
	"sync"
)

// scripted is one queued mock outcome: either a response or an error.
type scripted struct {
	text string
	err  error
}

// containsRule maps a substring of the incoming prompt to a canned response.
type containsRule struct {
	substr   string
	response string
}

// MockProvider is a deterministic in-memory Provider for tests and examples.
//
// Responses are resolved in order:
//  1. the scripted queue (Enqueue / EnqueueError), consumed front to back
//  2. exact-match canned responses keyed by the last user message
//  3. substring rules registered with RespondWhenContains
//  4. a deterministic fallback "Mock response to: <input>"
type MockProvider struct {
	mu        sync.Mutex
	info      Info
	responses map[string]string
	rules     []containsRule
	queue     []scripted
	calls     int
}

// NewMockProvider constructs a chat-capable mock provider.
func NewMockProvider(optFns ...func(o *MockOptions)) *MockProvider {
	opts := MockOptions{Name: "mock-model", ChatModel: true}
	for _, fn := range optFns {
		fn(&opts)
	}
	return &MockProvider{
		info:      Info{Name: opts.Name, Vendor: "mock", ChatModel: opts.ChatModel},
		responses: make(map[string]string),
	}
}

// MockOptions configures a MockProvider.
type MockOptions struct {
	Name      string
	ChatModel bool
}

// AddResponse registers a canned completion for an exact input prompt.
func (m *MockProvider) AddResponse(input, response string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.responses[input] = response
}

// RespondWhenContains registers a canned completion returned whenever the
// incoming prompt contains substr. Rules are checked in registration order.
func (m *MockProvider) RespondWhenContains(substr, response string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.rules = append(m.rules, containsRule{substr: substr, response: response})
}

// Enqueue appends responses to the scripted queue. Queued items take
// precedence over canned responses and are consumed one per Generate call.
func (m *MockProvider) Enqueue(responses ...string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, r := range responses {
		m.queue = append(m.queue, scripted{text: r})
	}
}

// EnqueueError appends an error outcome to the scripted queue.
func (m *MockProvider) EnqueueError(err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.queue = append(m.queue, scripted{err: err})
}

// Calls reports how many Generate calls the provider has served.
func (m *MockProvider) Calls() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.calls
}

// Generate implements Provider.
func (m *MockProvider) Generate(ctx context.Context, input Input) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	m.calls++

	if len(m.queue) > 0 {
		next := m.queue[0]
		m.queue = m.queue[1:]
		return next.text, next.err
	}

	key := m.inputKey(input)
	if resp, ok := m.responses[key]; ok {
		return resp, nil
	}

	full := m.fullText(input)
	for _, rule := range m.rules {
		if strings.Contains(full, rule.substr) {
			return rule.response, nil
		}
	}

	return fmt.Sprintf("Mock response to: %s", key), nil
}

// Info implements Provider.
func (m *MockProvider) Info() Info { return m.info }

// inputKey selects the lookup key: the last user message for chat input,
// the raw text otherwise.
func (m *MockProvider) inputKey(input Input) string {
	if len(input.Messages) == 0 {
		return input.Text
	}
	for i := len(input.Messages) - 1; i >= 0; i-- {
		if input.Messages[i].Role == "user" {
			return input.Messages[i].Content
		}
	}
	return input.Messages[len(input.Messages)-1].Content
}

func (m *MockProvider) fullText(input Input) string {
	if len(input.Messages) == 0 {
		return input.Text
	}
	var b strings.Builder
	for _, msg := range input.Messages {
		b.WriteString(msg.Content)
		b.WriteString("\n")
	}
	return b.String()
}
