package plan

import (
	"context"
	"fmt"

	"github.com/cortexai/cortexai/logging"
	"github.com/cortexai/cortexai/parse"
	"github.com/cortexai/cortexai/prompt"
	"github.com/cortexai/cortexai/provider"
)

// Planner produces an execution plan for a goal. CreatePlan never fails:
// model-backed planners absorb generation and parse errors by falling back
// to a single-step plan, so planning is always available to the caller.
type Planner interface {
	CreatePlan(ctx context.Context, goal string) []*Step
}

// Reviser is the optional capability to revise a plan mid-execution. An
// unparseable revision response is a no-op, not an error: the current steps
// come back unchanged. Only a failed generation call returns an error, which
// callers log and survive by keeping their pre-revision steps.
type Reviser interface {
	Planner
	RevisePlan(ctx context.Context, goal string, current []*Step, latestResult string) ([]*Step, error)
}

// StaticPlanner turns the goal into a single-step plan. Deterministic, no
// failure modes.
type StaticPlanner struct{}

// NewStaticPlanner returns a StaticPlanner.
func NewStaticPlanner() *StaticPlanner { return &StaticPlanner{} }

// CreatePlan implements Planner.
func (p *StaticPlanner) CreatePlan(_ context.Context, goal string) []*Step {
	return []*Step{NewStep(0, goal)}
}

const planInstruction = "You are an expert task planner. Break down the following goal into a series of " +
	"clear, logical steps that would be needed to accomplish it successfully.\n\n" +
	"GOAL: %s\n\n" +
	"Return your answer as a JSON list of steps in the following format:\n" +
	"```json\n" +
	"[\n" +
	"  {\"description\": \"First step description\"},\n" +
	"  {\"description\": \"Second step description\"},\n" +
	"  ...\n" +
	"]\n" +
	"```\n" +
	"Be specific, actionable, and comprehensive, but limit your plan to 3-7 steps."

const reviseInstruction = "You are an expert task planner. Given the following information, revise the " +
	"remaining steps in the plan to better accomplish the goal.\n\n" +
	"GOAL: %s\n\n" +
	"CURRENT PLAN:\n%s\n\n" +
	"LATEST RESULT: %s\n\n" +
	"Return your answer as a JSON list of NEW OR REVISED steps in the following format:\n" +
	"```json\n" +
	"[\n" +
	"  {\"description\": \"First step description\"},\n" +
	"  {\"description\": \"Second step description\"},\n" +
	"  ...\n" +
	"]\n" +
	"```\n" +
	"Only include steps that haven't been completed yet. Be specific and actionable."

// LLMPlannerOptions configure model-backed planners.
type LLMPlannerOptions struct {
	Logger logging.Logger
}

// LLMPlanner asks a provider to decompose a goal into 3-7 steps (a soft
// convention carried in the instruction, not enforced). Any generation or
// parse failure falls back to the StaticPlanner result.
type LLMPlanner struct {
	provider provider.Provider
	static   *StaticPlanner
	logger   logging.Logger
}

// NewLLMPlanner creates a model-backed planner.
func NewLLMPlanner(p provider.Provider, optFns ...func(o *LLMPlannerOptions)) *LLMPlanner {
	opts := LLMPlannerOptions{Logger: logging.NoOpLogger{}}
	for _, fn := range optFns {
		fn(&opts)
	}
	return &LLMPlanner{provider: p, static: NewStaticPlanner(), logger: opts.Logger}
}

// CreatePlan implements Planner.
func (p *LLMPlanner) CreatePlan(ctx context.Context, goal string) []*Step {
	text, err := p.generate(ctx, fmt.Sprintf(planInstruction, goal))
	if err != nil {
		p.logger.Warn("plan.create.fallback", "error", err.Error())
		return p.static.CreatePlan(ctx, goal)
	}

	descriptions := parse.StepDescriptions(text)
	if len(descriptions) == 0 {
		p.logger.Warn("plan.create.fallback", "reason", "unparseable plan response")
		return p.static.CreatePlan(ctx, goal)
	}

	steps := make([]*Step, len(descriptions))
	for i, d := range descriptions {
		steps[i] = NewStep(i, d)
	}
	return steps
}

func (p *LLMPlanner) generate(ctx context.Context, instruction string) (string, error) {
	pr := prompt.New()
	pr.AddUser(instruction)
	return p.provider.Generate(ctx, provider.NewInput(pr, p.provider.Info()))
}

// AdaptivePlanner extends LLMPlanner with mid-execution plan revision.
type AdaptivePlanner struct {
	LLMPlanner
}

// NewAdaptivePlanner creates a model-backed planner that supports revision.
func NewAdaptivePlanner(p provider.Provider, optFns ...func(o *LLMPlannerOptions)) *AdaptivePlanner {
	return &AdaptivePlanner{LLMPlanner: *NewLLMPlanner(p, optFns...)}
}

// RevisePlan asks the provider for replacement steps given the current plan
// state and the latest (usually failing) result. Completed steps are
// preserved verbatim and prepended; new steps are renumbered starting at
// max(completed index)+1, or 0 when nothing has completed, keeping indices
// unique and monotonic with the preserved prefix. When the response cannot
// be parsed the current steps are returned unchanged; only a failed
// generation call is an error.
func (p *AdaptivePlanner) RevisePlan(ctx context.Context, goal string, current []*Step, latestResult string) ([]*Step, error) {
	text, err := p.generate(ctx, fmt.Sprintf(reviseInstruction, goal, Describe(current), latestResult))
	if err != nil {
		return current, fmt.Errorf("revision generation failed: %w", err)
	}

	descriptions := parse.StepDescriptions(text)
	if len(descriptions) == 0 {
		p.logger.Warn("plan.revise.noop", "reason", "unparseable revision response")
		return current, nil
	}

	var completed []*Step
	nextIndex := 0
	for _, s := range current {
		if s.Status == StatusCompleted {
			completed = append(completed, s)
			if s.Index >= nextIndex {
				nextIndex = s.Index + 1
			}
		}
	}

	revised := make([]*Step, 0, len(completed)+len(descriptions))
	revised = append(revised, completed...)
	for i, d := range descriptions {
		revised = append(revised, NewStep(nextIndex+i, d))
	}
	return revised, nil
}
