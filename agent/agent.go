// Package agent implements the plan-execute-observe loops that drive a task
// from goal to answer. Agent is the base loop with no failure recovery;
// Autonomous wraps the same think/act/observe cycle with timeout and
// failure-budget policy, plan revision and execution reporting.
//
// An agent is assembled by composition: a provider, a memory, a tool
// registry, a planner strategy and a PromptPolicy are injected at
// construction. There are no override chains; specialization is
// configuration.
package agent

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/cortexai/cortexai/logging"
	"github.com/cortexai/cortexai/memory"
	"github.com/cortexai/cortexai/parse"
	"github.com/cortexai/cortexai/plan"
	"github.com/cortexai/cortexai/provider"
	"github.com/cortexai/cortexai/tool"
)

// Options configure an Agent. Unset fields get safe in-memory defaults.
type Options struct {
	Memory   memory.Memory
	Registry *tool.Registry
	Planner  plan.Planner
	Policy   PromptPolicy
	Logger   logging.Logger
}

// Agent executes a goal as a sequential plan of think/act/observe steps.
// It has no internal failure recovery: an error inside think or act
// propagates to the caller. Use Autonomous for self-monitoring execution.
type Agent struct {
	name     string
	provider provider.Provider
	memory   memory.Memory
	registry *tool.Registry
	planner  plan.Planner
	policy   PromptPolicy
	logger   logging.Logger
}

// New constructs an Agent around a provider with optional overrides.
func New(name string, p provider.Provider, optFns ...func(o *Options)) *Agent {
	opts := Options{
		Memory:   memory.NewInMemory(),
		Registry: tool.NewRegistry(),
		Planner:  plan.NewStaticPlanner(),
		Policy:   DefaultPromptPolicy(),
		Logger:   logging.NoOpLogger{},
	}
	for _, fn := range optFns {
		fn(&opts)
	}
	return &Agent{
		name:     name,
		provider: p,
		memory:   opts.Memory,
		registry: opts.Registry,
		planner:  opts.Planner,
		policy:   opts.Policy,
		logger:   opts.Logger,
	}
}

// Name returns the agent's name.
func (a *Agent) Name() string { return a.name }

// Memory returns the agent's conversation memory.
func (a *Agent) Memory() memory.Memory { return a.memory }

// Registry returns the agent's tool registry.
func (a *Agent) Registry() *tool.Registry { return a.registry }

// Planner returns the agent's planner strategy.
func (a *Agent) Planner() plan.Planner { return a.planner }

// RunTask creates a plan for the goal and executes its steps in sequence,
// returning the last step's output. Errors inside think/act propagate.
func (a *Agent) RunTask(ctx context.Context, goal string) (string, error) {
	steps := a.planner.CreatePlan(ctx, goal)

	var lastOutput string
	for !plan.IsComplete(steps) {
		step := plan.NextStep(steps)
		if step == nil {
			break
		}

		step.Update(plan.StatusInProgress, "")

		reasoning, err := a.Think(ctx, step.Description)
		if err != nil {
			return "", err
		}
		result, err := a.Act(ctx, reasoning)
		if err != nil {
			return "", err
		}
		a.Observe(step.Description, result)

		lastOutput = result
		step.Update(plan.StatusCompleted, result)
	}

	return lastOutput, nil
}

// Think is the reason phase: build a role-tagged prompt from memory context,
// system instructions and the step description, then ask the provider how to
// proceed. The prompt is passed in chat form or text form according to the
// provider's capability flag.
func (a *Agent) Think(ctx context.Context, stepDescription string) (string, error) {
	pr := buildThinkPrompt(a.policy, a.name, a.memory.Context(), stepDescription)
	return a.provider.Generate(ctx, provider.NewInput(pr, a.provider.Info()))
}

// Act is the act phase: parse a tool call from the reasoning and execute it
// through the registry, or treat the reasoning as the final answer when no
// call is present.
func (a *Agent) Act(ctx context.Context, reasoning string) (string, error) {
	call, ok := parse.ParseToolCall(reasoning)
	if !ok {
		return reasoning, nil
	}

	a.logger.Debug("agent.act.tool_call", "agent", a.name, "tool", call.Name)

	output, err := a.registry.Execute(ctx, call.Name, call.Args, nil)
	if err != nil {
		return "", err
	}
	return "Tool output:\n" + stringify(output), nil
}

// Observe stores the interaction in memory so future steps see the context.
func (a *Agent) Observe(input, output string) {
	a.memory.SaveInteraction(input, output)
}

// stringify renders a tool result for memory and reports. Structured results
// are JSON-encoded so they stay readable in prompt context.
func stringify(result any) string {
	switch v := result.(type) {
	case string:
		return v
	case nil:
		return ""
	default:
		if encoded, err := json.Marshal(v); err == nil {
			return string(encoded)
		}
		return fmt.Sprintf("%v", v)
	}
}
