// Package prompt models role-tagged conversations sent to providers. A Prompt
// holds an ordered list of role/content messages and can render itself either
// as a message list (chat models) or as a single flattened string (text
// completion models).
package prompt

import (
	"strings"
)

// Message is one role-tagged entry of a prompt.
type Message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// Prompt is an ordered, append-only list of messages.
type Prompt struct {
	messages []Message
}

// New returns an empty prompt.
func New() *Prompt { return &Prompt{} }

// Add appends a message with the given role and content.
func (p *Prompt) Add(role, content string) {
	p.messages = append(p.messages, Message{Role: role, Content: content})
}

// AddSystem appends a system message.
func (p *Prompt) AddSystem(content string) { p.Add("system", content) }

// AddUser appends a user message.
func (p *Prompt) AddUser(content string) { p.Add("user", content) }

// AddAssistant appends an assistant message.
func (p *Prompt) AddAssistant(content string) { p.Add("assistant", content) }

// Messages returns the messages in chat form. The returned slice is a copy.
func (p *Prompt) Messages() []Message {
	out := make([]Message, len(p.messages))
	copy(out, p.messages)
	return out
}

// Text flattens the prompt into a single string for text completion models.
// Each message is rendered as "Role:\n<content>\n".
func (p *Prompt) Text() string {
	var b strings.Builder
	for i, msg := range p.messages {
		if i > 0 {
			b.WriteString("\n")
		}
		b.WriteString(capitalize(msg.Role))
		b.WriteString(":\n")
		b.WriteString(msg.Content)
		b.WriteString("\n")
	}
	return b.String()
}

// Len returns the number of messages.
func (p *Prompt) Len() int { return len(p.messages) }

// Clear removes all messages.
func (p *Prompt) Clear() { p.messages = nil }

func capitalize(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}

// Template is a single-string template with {placeholder} substitution.
type Template struct {
	template string
}

// NewTemplate creates a template from a format string using {name} placeholders.
func NewTemplate(template string) *Template {
	return &Template{template: template}
}

// Format replaces every {key} placeholder with its value. Placeholders
// without a matching value are left intact.
func (t *Template) Format(values map[string]string) string {
	out := t.template
	for k, v := range values {
		out = strings.ReplaceAll(out, "{"+k+"}", v)
	}
	return out
}

// MultiRoleTemplate builds a Prompt from a set of per-role templates.
type MultiRoleTemplate struct {
	entries []struct {
		role     string
		template *Template
	}
}

// NewMultiRoleTemplate returns an empty multi-role template.
func NewMultiRoleTemplate() *MultiRoleTemplate { return &MultiRoleTemplate{} }

// AddTemplate registers a template for a role. Order is preserved.
func (m *MultiRoleTemplate) AddTemplate(role, template string) {
	m.entries = append(m.entries, struct {
		role     string
		template *Template
	}{role: role, template: NewTemplate(template)})
}

// Format fills all templates and returns the populated Prompt.
func (m *MultiRoleTemplate) Format(values map[string]string) *Prompt {
	p := New()
	for _, e := range m.entries {
		p.Add(e.role, e.template.Format(values))
	}
	return p
}
