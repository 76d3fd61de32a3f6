// Package cortexai provides a high-level façade over the agent, plan, tool
// and team packages for building autonomous LLM agents. Most applications
// interact with this package by:
//  1. Creating a CortexAI via New() with a model provider (optionally
//     overriding the default registry, memory or logger)
//  2. Building agents (NewAgent, NewAutonomousAgent) or teams (NewTeam)
//  3. Running tasks (agent.RunTask) or delegating them (system.Run)
//
// The façade keeps setup concise while delegating orchestration to the
// underlying packages. All defaults are safe for local development and
// testing; production deployments typically supply a real provider and a
// structured logger.
package cortexai

import (
	"github.com/cortexai/cortexai/agent"
	"github.com/cortexai/cortexai/logging"
	"github.com/cortexai/cortexai/memory"
	"github.com/cortexai/cortexai/plan"
	"github.com/cortexai/cortexai/provider"
	"github.com/cortexai/cortexai/team"
	"github.com/cortexai/cortexai/tool"
)

// Options configures a CortexAI instance.
type Options struct {
	// Registry holds the tools shared by agents built through the façade.
	// Defaults to an empty registry.
	Registry *tool.Registry

	// NewMemory builds a fresh memory for each agent. Defaults to unbounded
	// in-memory conversation history.
	NewMemory func() memory.Memory

	// Logger (defaults to NoOp logger if nil).
	Logger logging.Logger
}

// CortexAI is the high-level façade aggregating a provider and the shared
// services agents are built from.
type CortexAI struct {
	provider provider.Provider
	registry *tool.Registry
	memory   func() memory.Memory
	logger   logging.Logger
}

// New creates a CortexAI façade around the given provider with optional
// overrides. Any unset service is initialized with an in-memory
// implementation.
func New(p provider.Provider, optFns ...func(o *Options)) *CortexAI {
	opts := Options{
		Registry:  tool.NewRegistry(),
		NewMemory: func() memory.Memory { return memory.NewInMemory() },
		Logger:    logging.NoOpLogger{},
	}
	for _, fn := range optFns {
		fn(&opts)
	}
	return &CortexAI{
		provider: p,
		registry: opts.Registry,
		memory:   opts.NewMemory,
		logger:   opts.Logger,
	}
}

// Registry returns the shared tool registry.
func (c *CortexAI) Registry() *tool.Registry { return c.registry }

// RegisterTool adds a tool to the shared registry.
func (c *CortexAI) RegisterTool(t tool.Tool) error { return c.registry.Register(t) }

// NewAgent builds a basic agent wired to the façade's provider, registry,
// memory and logger.
func (c *CortexAI) NewAgent(name string, optFns ...func(o *agent.Options)) *agent.Agent {
	all := append([]func(o *agent.Options){c.baseOptions()}, optFns...)
	return agent.New(name, c.provider, all...)
}

// NewAutonomousAgent builds a self-monitoring agent with an adaptive
// planner, wired to the façade's services.
func (c *CortexAI) NewAutonomousAgent(name string, optFns ...func(o *agent.AutonomousOptions)) *agent.Autonomous {
	all := append([]func(o *agent.AutonomousOptions){func(o *agent.AutonomousOptions) {
		c.baseOptions()(&o.Options)
		o.Planner = plan.NewAdaptivePlanner(c.provider, func(po *plan.LLMPlannerOptions) {
			po.Logger = c.logger
		})
	}}, optFns...)
	return agent.NewAutonomous(name, c.provider, all...)
}

// NewTeam builds a multi-agent system around the given pool. When pool is
// nil an empty pool is created.
func (c *CortexAI) NewTeam(pool *team.Pool, optFns ...func(o *team.SystemOptions)) *team.System {
	all := append([]func(o *team.SystemOptions){func(o *team.SystemOptions) {
		o.Logger = c.logger
	}}, optFns...)
	return team.NewSystem(c.provider, pool, all...)
}

func (c *CortexAI) baseOptions() func(o *agent.Options) {
	return func(o *agent.Options) {
		o.Registry = c.registry
		o.Memory = c.memory()
		o.Logger = c.logger
	}
}
