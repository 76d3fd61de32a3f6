// Package team coordinates multiple agents: a named pool of members and a
// system whose coordinator plans delegations across them, runs the
// delegated subtasks and synthesizes a final answer.
package team

import (
	"context"
	"errors"
	"fmt"
	"sync"
)

var (
	// ErrDuplicateAgent is returned when registering an agent whose name is
	// already taken.
	ErrDuplicateAgent = errors.New("duplicate agent")

	// ErrAgentNotFound is returned when looking up an unknown agent name.
	ErrAgentNotFound = errors.New("agent not found")
)

// Member is an agent that can be delegated a subtask.
type Member interface {
	Name() string
	RunTask(ctx context.Context, goal string) (string, error)
}

// SelfMonitoring is the run surface of a self-monitoring agent: RunTask
// always returns an execution report instead of an error.
type SelfMonitoring interface {
	Name() string
	RunTask(ctx context.Context, goal string) string
}

// Monitored adapts a self-monitoring agent into a pool Member. The report
// text becomes the member result; the returned error is always nil, since
// failures are captured inside the report.
func Monitored(a SelfMonitoring) Member {
	return monitoredMember{agent: a}
}

type monitoredMember struct {
	agent SelfMonitoring
}

func (m monitoredMember) Name() string { return m.agent.Name() }

func (m monitoredMember) RunTask(ctx context.Context, goal string) (string, error) {
	return m.agent.RunTask(ctx, goal), nil
}

// Pool is a registry of agents keyed by name. It is safe for concurrent use.
type Pool struct {
	mu     sync.RWMutex
	agents map[string]Member
	order  []string
}

// NewPool returns an empty agent pool.
func NewPool() *Pool {
	return &Pool{agents: make(map[string]Member)}
}

// Register adds an agent to the pool. Names must be unique.
func (p *Pool) Register(m Member) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	name := m.Name()
	if _, ok := p.agents[name]; ok {
		return fmt.Errorf("%w: %s", ErrDuplicateAgent, name)
	}
	p.agents[name] = m
	p.order = append(p.order, name)
	return nil
}

// Get returns the agent registered under name.
func (p *Pool) Get(name string) (Member, error) {
	p.mu.RLock()
	defer p.mu.RUnlock()

	m, ok := p.agents[name]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrAgentNotFound, name)
	}
	return m, nil
}

// Remove deletes the agent registered under name, if present.
func (p *Pool) Remove(name string) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if _, ok := p.agents[name]; !ok {
		return
	}
	delete(p.agents, name)
	for i, n := range p.order {
		if n == name {
			p.order = append(p.order[:i], p.order[i+1:]...)
			break
		}
	}
}

// Names returns the registered agent names in registration order.
func (p *Pool) Names() []string {
	p.mu.RLock()
	defer p.mu.RUnlock()

	out := make([]string, len(p.order))
	copy(out, p.order)
	return out
}

// Len returns the number of registered agents.
func (p *Pool) Len() int {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return len(p.agents)
}
