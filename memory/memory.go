// Package memory contains conversation memory implementations. Agents read
// memory in the think phase to build context and append to it in the observe
// phase after every step. Each agent owns its memory exclusively; memories
// are never shared across agents.
package memory

// Memory is the contract agents use to persist and recall interactions.
// Implementations may store entries in a slice, a database, or a semantic
// index; the agent loop only depends on these two operations.
type Memory interface {
	// Context renders the stored history as a single text block for prompts.
	Context() string

	// SaveInteraction appends one (input, output) pair to the history.
	SaveInteraction(input, output string)
}
