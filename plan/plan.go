// Package plan contains the step/plan data model and the planner family that
// produces and revises plans. A plan is an ordered list of steps; execution
// order is list order, which after a revision is not necessarily index order.
package plan

import (
	"fmt"
	"strings"
)

// Status is the execution state of a single step.
type Status string

const (
	// StatusPending marks a step that has not started.
	StatusPending Status = "pending"
	// StatusInProgress marks the step currently being executed.
	StatusInProgress Status = "in_progress"
	// StatusCompleted marks a successfully finished step.
	StatusCompleted Status = "completed"
	// StatusFailed marks a step whose think/act phase returned an error.
	StatusFailed Status = "failed"
)

// Step is one unit of plan execution. Steps are created by planners and
// mutated only by the executing loop via Update. Indices are unique and
// monotonically non-decreasing in list order; completed steps are never
// resequenced within a plan instance.
type Step struct {
	Index       int    `json:"index"`
	Description string `json:"description"`
	Status      Status `json:"status"`
	Result      string `json:"result,omitempty"`
}

// NewStep creates a pending step.
func NewStep(index int, description string) *Step {
	return &Step{Index: index, Description: description, Status: StatusPending}
}

// Update sets the step status and, when result is non-empty, the result.
func (s *Step) Update(status Status, result string) {
	s.Status = status
	if result != "" {
		s.Result = result
	}
}

// String renders the step for logs and revision prompts.
func (s *Step) String() string {
	return fmt.Sprintf("Step %d: %s [%s]", s.Index, s.Description, s.Status)
}

// NextStep returns the first step in list order whose status is pending, or
// nil when no step is pending. Steps already in_progress or failed are not
// re-selected.
func NextStep(steps []*Step) *Step {
	for _, s := range steps {
		if s.Status == StatusPending {
			return s
		}
	}
	return nil
}

// IsComplete reports whether every step is completed. An empty plan is
// complete.
func IsComplete(steps []*Step) bool {
	for _, s := range steps {
		if s.Status != StatusCompleted {
			return false
		}
	}
	return true
}

// Clone deep-copies a plan so callers can snapshot state before mutating it.
func Clone(steps []*Step) []*Step {
	out := make([]*Step, len(steps))
	for i, s := range steps {
		c := *s
		out[i] = &c
	}
	return out
}

// Describe serializes the plan for revision prompts: one line per step, with
// the result appended when present.
func Describe(steps []*Step) string {
	lines := make([]string, 0, len(steps))
	for _, s := range steps {
		line := s.String()
		if s.Result != "" {
			line += "\nResult: " + s.Result
		}
		lines = append(lines, line)
	}
	return strings.Join(lines, "\n")
}
