package agent

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/cortexai/cortexai/plan"
	"github.com/cortexai/cortexai/provider"
)

// EventKind identifies one lifecycle event in an execution log.
type EventKind string

// Execution log event vocabulary.
const (
	EventTaskStart          EventKind = "task_start"
	EventPlanCreated        EventKind = "plan_created"
	EventStepStart          EventKind = "step_start"
	EventStepComplete       EventKind = "step_complete"
	EventStepError          EventKind = "step_error"
	EventPlanRevision       EventKind = "plan_revision"
	EventPlanRevised        EventKind = "plan_revised"
	EventPlanRevisionFailed EventKind = "plan_revision_failed"
	EventTimeout            EventKind = "timeout"
	EventTaskAbort          EventKind = "task_abort"
	EventTaskComplete       EventKind = "task_complete"
	EventUnexpectedError    EventKind = "unexpected_error"
)

// Abort reasons surfaced in reports.
const (
	ReasonTimeout         = "timeout"
	ReasonTooManyFailures = "too_many_failures"
	ReasonUnexpectedError = "unexpected_error"
)

// LogEntry is one append-only execution log record, scoped to a single
// RunTask call.
type LogEntry struct {
	Event     EventKind      `json:"event"`
	Timestamp time.Time      `json:"timestamp"`
	Message   string         `json:"message,omitempty"`
	Data      map[string]any `json:"data,omitempty"`
}

// AutonomousOptions configure an Autonomous agent on top of the base Options.
type AutonomousOptions struct {
	Options
	MaxConsecutiveFailures int
	ExecutionTimeout       time.Duration
}

// Autonomous executes tasks with self-monitoring: a wall-clock timeout
// checked at every step boundary, a consecutive-failure budget, plan
// revision after step failures when the planner supports it, and a
// structured execution log. RunTask always returns a formatted report and
// never propagates an error; this is the top-level error barrier.
type Autonomous struct {
	*Agent
	maxConsecutiveFailures int
	executionTimeout       time.Duration

	runID               string
	consecutiveFailures int
	lastError           string
	executionLog        []LogEntry
}

// NewAutonomous constructs an Autonomous agent. When no planner is supplied
// an AdaptivePlanner backed by the same provider is used, enabling plan
// revision after failures. Defaults: 3 consecutive failures, 300s timeout.
func NewAutonomous(name string, p provider.Provider, optFns ...func(o *AutonomousOptions)) *Autonomous {
	opts := AutonomousOptions{
		MaxConsecutiveFailures: 3,
		ExecutionTimeout:       5 * time.Minute,
	}
	for _, fn := range optFns {
		fn(&opts)
	}
	if opts.Planner == nil && p != nil {
		opts.Planner = plan.NewAdaptivePlanner(p)
	}

	base := New(name, p, func(o *Options) {
		if opts.Memory != nil {
			o.Memory = opts.Memory
		}
		if opts.Registry != nil {
			o.Registry = opts.Registry
		}
		if opts.Planner != nil {
			o.Planner = opts.Planner
		}
		if opts.Policy.SystemTemplate != "" {
			o.Policy = opts.Policy
		}
		if opts.Logger != nil {
			o.Logger = opts.Logger
		}
	})
	return &Autonomous{
		Agent:                  base,
		maxConsecutiveFailures: opts.MaxConsecutiveFailures,
		executionTimeout:       opts.ExecutionTimeout,
	}
}

// ExecutionLog returns a copy of the last run's execution log.
func (a *Autonomous) ExecutionLog() []LogEntry {
	out := make([]LogEntry, len(a.executionLog))
	copy(out, a.executionLog)
	return out
}

// LastError returns the text of the most recent step error, if any.
func (a *Autonomous) LastError() string { return a.lastError }

// RunID returns the identifier assigned to the last run.
func (a *Autonomous) RunID() string { return a.runID }

// RunTask executes the goal autonomously and returns a formatted execution
// report. All failures — step errors, budget exhaustion, timeouts, even
// panics — are converted into report text rather than returned.
func (a *Autonomous) RunTask(ctx context.Context, goal string) (report string) {
	a.executionLog = nil
	a.consecutiveFailures = 0
	a.lastError = ""
	a.runID = uuid.NewString()

	defer func() {
		if r := recover(); r != nil {
			a.lastError = fmt.Sprintf("%v", r)
			a.logEvent(EventUnexpectedError, fmt.Sprintf("Unexpected error: %v", r), nil)
			report = a.generateReport(goal, nil, false, ReasonUnexpectedError)
		}
	}()

	start := time.Now()
	a.logEvent(EventTaskStart, "Starting task: "+goal, map[string]any{"run_id": a.runID})

	steps := a.planner.CreatePlan(ctx, goal)
	a.logEvent(EventPlanCreated, "", map[string]any{"steps": snapshotSteps(steps)})

	for !plan.IsComplete(steps) {
		if time.Since(start) > a.executionTimeout {
			a.logEvent(EventTimeout, fmt.Sprintf("Execution timed out after %s", a.executionTimeout), nil)
			return a.generateReport(goal, steps, false, ReasonTimeout)
		}

		step := plan.NextStep(steps)
		if step == nil {
			break
		}

		step.Update(plan.StatusInProgress, "")
		a.logEvent(EventStepStart, fmt.Sprintf("Starting step %d: %s", step.Index, step.Description), nil)

		result, err := a.executeStep(ctx, step)
		if err == nil {
			a.consecutiveFailures = 0
			step.Update(plan.StatusCompleted, result)
			a.logEvent(EventStepComplete, fmt.Sprintf("Completed step %d", step.Index), map[string]any{"result": result})
			continue
		}

		a.consecutiveFailures++
		a.lastError = err.Error()
		step.Update(plan.StatusFailed, "Error: "+err.Error())
		a.logEvent(EventStepError, fmt.Sprintf("Error in step %d: %s", step.Index, err), nil)

		if a.consecutiveFailures >= a.maxConsecutiveFailures {
			a.logEvent(EventTaskAbort, fmt.Sprintf("Aborting after %d consecutive failures", a.consecutiveFailures), nil)
			return a.generateReport(goal, steps, false, ReasonTooManyFailures)
		}

		steps = a.maybeRevise(ctx, goal, steps, err)
	}

	a.logEvent(EventTaskComplete, "Task completed successfully", nil)
	return a.generateReport(goal, steps, true, "")
}

// executeStep runs one think/act/observe cycle for a step.
func (a *Autonomous) executeStep(ctx context.Context, step *plan.Step) (string, error) {
	reasoning, err := a.Think(ctx, step.Description)
	if err != nil {
		return "", err
	}
	result, err := a.Act(ctx, reasoning)
	if err != nil {
		return "", err
	}
	a.Observe(step.Description, result)
	return result, nil
}

// maybeRevise asks the planner to revise the remaining steps after a
// failure. A revision error is logged and the pre-revision steps are kept;
// it is never fatal.
func (a *Autonomous) maybeRevise(ctx context.Context, goal string, steps []*plan.Step, stepErr error) []*plan.Step {
	reviser, ok := a.planner.(plan.Reviser)
	if !ok {
		return steps
	}

	a.logEvent(EventPlanRevision, "Attempting to revise plan after failure", nil)

	revised, err := reviser.RevisePlan(ctx, goal, steps, "Error encountered: "+stepErr.Error())
	if err != nil {
		a.logEvent(EventPlanRevisionFailed, "Failed to revise plan: "+err.Error(), nil)
		return steps
	}

	a.logEvent(EventPlanRevised, "", map[string]any{"steps": snapshotSteps(revised)})
	return revised
}

// logEvent appends an execution log entry with a monotonic timestamp.
func (a *Autonomous) logEvent(event EventKind, message string, data map[string]any) {
	entry := LogEntry{Event: event, Timestamp: time.Now(), Message: message, Data: data}
	a.executionLog = append(a.executionLog, entry)
	a.logger.Info("agent.event", "agent", a.name, "run_id", a.runID, "event", string(event), "message", message)
}

// snapshotSteps copies step state for log entries so later mutations don't
// rewrite history.
func snapshotSteps(steps []*plan.Step) []plan.Step {
	out := make([]plan.Step, len(steps))
	for i, s := range steps {
		out[i] = *s
	}
	return out
}

const resultPreviewLimit = 200

// generateReport formats the human-facing execution report. The layout is
// illustrative, not a stable machine contract.
func (a *Autonomous) generateReport(goal string, steps []*plan.Step, success bool, reason string) string {
	var b strings.Builder

	fmt.Fprintf(&b, "# Execution Report for: %s\n", goal)
	if success {
		b.WriteString("Status: SUCCESS\n")
	} else {
		b.WriteString("Status: FAILURE\n")
		if reason != "" {
			fmt.Fprintf(&b, "Failure Reason: %s\n", reason)
		}
	}
	if a.lastError != "" {
		fmt.Fprintf(&b, "Last Error: %s\n", a.lastError)
	}

	b.WriteString("\n## Execution Plan\n")
	for _, step := range steps {
		fmt.Fprintf(&b, "%s Step %d: %s\n", statusIcon(step.Status), step.Index, step.Description)
		if step.Result != "" {
			fmt.Fprintf(&b, "   Result: %s\n", truncate(step.Result, resultPreviewLimit))
		}
	}

	b.WriteString("\n## Summary\n")
	if success {
		b.WriteString("The task was completed successfully.\n")
		if len(steps) > 0 && steps[len(steps)-1].Result != "" {
			b.WriteString("\nFinal Output:\n")
			b.WriteString(steps[len(steps)-1].Result)
			b.WriteString("\n")
		}
		return b.String()
	}

	b.WriteString("The task could not be completed.\n")
	switch reason {
	case ReasonTimeout:
		fmt.Fprintf(&b, "The execution timed out after %s.\n", a.executionTimeout)
	case ReasonTooManyFailures:
		fmt.Fprintf(&b, "The agent encountered %d consecutive failures.\n", a.maxConsecutiveFailures)
	case ReasonUnexpectedError:
		b.WriteString("An unexpected error occurred during execution.\n")
	}

	b.WriteString("\nSuggested Actions:\n")
	b.WriteString("1. Try breaking down the task into smaller steps\n")
	b.WriteString("2. Check if external resources/APIs are available\n")
	b.WriteString("3. Provide more specific instructions\n")

	return b.String()
}

func statusIcon(status plan.Status) string {
	switch status {
	case plan.StatusCompleted:
		return "✅"
	case plan.StatusFailed:
		return "❌"
	default:
		return "⏳"
	}
}

func truncate(s string, limit int) string {
	runes := []rune(s)
	if len(runes) <= limit {
		return s
	}
	return string(runes[:limit]) + "..."
}
