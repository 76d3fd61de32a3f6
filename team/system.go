package team

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/cortexai/cortexai/agent"
	"github.com/cortexai/cortexai/logging"
	"github.com/cortexai/cortexai/parse"
	"github.com/cortexai/cortexai/provider"
)

// Subtask result statuses.
const (
	SubtaskCompleted = "completed"
	SubtaskFailed    = "failed"
)

// SubtaskResult records the outcome of one delegated subtask.
type SubtaskResult struct {
	Agent       string `json:"agent"`
	Description string `json:"description"`
	Status      string `json:"status"`
	Result      string `json:"result"`
}

// Trace records everything a System run did, for inspection and debugging.
type Trace struct {
	ID              string             `json:"id"`
	Task            string             `json:"task"`
	AgentsInvolved  []string           `json:"agents_involved"`
	CoordinatorPlan string             `json:"coordinator_plan"`
	Delegations     []parse.Delegation `json:"delegations"`
	SubtaskResults  []SubtaskResult    `json:"subtask_results"`
	FinalResult     string             `json:"final_result"`
}

// Coordinator plans delegations and synthesizes results. Its RunTask never
// fails; failures surface inside the returned text. *agent.Autonomous
// satisfies this.
type Coordinator interface {
	RunTask(ctx context.Context, goal string) string
}

// SystemOptions configure a multi-agent System.
type SystemOptions struct {
	// Coordinator overrides the default coordinator agent.
	Coordinator Coordinator
	Logger      logging.Logger
}

// System delegates a task across a pool of agents. A coordinator agent
// plans which pool members should handle which subtasks, the subtasks run
// sequentially in delegation order, and the coordinator then synthesizes
// the sub-results into a final answer. A failed subtask is recorded and
// never aborts its siblings.
type System struct {
	pool        *Pool
	coordinator Coordinator
	logger      logging.Logger
}

// NewSystem creates a multi-agent system around the given pool. When no
// coordinator is supplied, an autonomous agent with an adaptive planner is
// built on the provider.
func NewSystem(p provider.Provider, pool *Pool, optFns ...func(o *SystemOptions)) *System {
	opts := SystemOptions{
		Logger: logging.NoOpLogger{},
	}
	for _, fn := range optFns {
		fn(&opts)
	}
	if opts.Coordinator == nil {
		opts.Coordinator = agent.NewAutonomous("Coordinator", p, func(o *agent.AutonomousOptions) {
			o.Logger = opts.Logger
		})
	}
	if pool == nil {
		pool = NewPool()
	}
	return &System{
		pool:        pool,
		coordinator: opts.Coordinator,
		logger:      opts.Logger,
	}
}

// Pool returns the system's agent pool.
func (s *System) Pool() *Pool { return s.pool }

// Run delegates the task across the pool and returns the synthesized final
// answer together with a full trace of the run. When the coordinator's plan
// names no known agents, no subtasks run and the coordinator's own output
// stands as the result.
func (s *System) Run(ctx context.Context, task string) (string, *Trace) {
	trace := &Trace{
		ID:   uuid.NewString(),
		Task: task,
	}

	names := s.pool.Names()
	s.logger.Info("team.run", "trace_id", trace.ID, "task", task, "agents", strings.Join(names, ","))

	planText := s.coordinator.RunTask(ctx, s.planningPrompt(task, names))
	trace.CoordinatorPlan = planText

	delegations := parse.Delegations(planText, names)
	trace.Delegations = delegations

	if len(delegations) == 0 {
		s.logger.Info("team.no_delegations", "trace_id", trace.ID)
		trace.FinalResult = planText
		return planText, trace
	}

	seen := make(map[string]bool)
	for _, d := range delegations {
		result := s.runSubtask(ctx, d)
		trace.SubtaskResults = append(trace.SubtaskResults, result)
		if !seen[d.Agent] {
			seen[d.Agent] = true
			trace.AgentsInvolved = append(trace.AgentsInvolved, d.Agent)
		}
	}

	final := s.coordinator.RunTask(ctx, s.synthesisPrompt(task, trace.SubtaskResults))
	trace.FinalResult = final

	s.logger.Info("team.complete", "trace_id", trace.ID, "subtasks", len(trace.SubtaskResults))
	return final, trace
}

// runSubtask executes one delegation. Failures become a failed subtask
// record rather than an error.
func (s *System) runSubtask(ctx context.Context, d parse.Delegation) SubtaskResult {
	s.logger.Info("team.delegate", "agent", d.Agent, "description", d.Description)

	member, err := s.pool.Get(d.Agent)
	if err != nil {
		return SubtaskResult{Agent: d.Agent, Description: d.Description, Status: SubtaskFailed, Result: "Failed: " + err.Error()}
	}

	out, err := member.RunTask(ctx, d.Description)
	if err != nil {
		s.logger.Warn("team.subtask_failed", "agent", d.Agent, "error", err.Error())
		return SubtaskResult{Agent: d.Agent, Description: d.Description, Status: SubtaskFailed, Result: "Failed: " + err.Error()}
	}
	return SubtaskResult{Agent: d.Agent, Description: d.Description, Status: SubtaskCompleted, Result: out}
}

func (s *System) planningPrompt(task string, names []string) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Break down the following task into subtasks and assign each subtask to one of the available agents.\n\nTask: %s\n\nAvailable agents: %s\n\n", task, strings.Join(names, ", "))
	b.WriteString("Respond with a JSON array of objects with \"agent\" and \"description\" keys, for example:\n")
	b.WriteString("```json\n[{\"agent\": \"Researcher\", \"description\": \"Gather background material\"}]\n```")
	return b.String()
}

func (s *System) synthesisPrompt(task string, results []SubtaskResult) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Combine the following subtask results into a single final answer for the task.\n\nTask: %s\n\n", task)
	for _, r := range results {
		fmt.Fprintf(&b, "Agent %s (%s): %s\n%s\n\n", r.Agent, r.Status, r.Description, r.Result)
	}
	b.WriteString("Provide the final, consolidated answer.")
	return b.String()
}
