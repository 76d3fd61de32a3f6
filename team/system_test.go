package team

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cortexai/cortexai/agent"
	"github.com/cortexai/cortexai/plan"
	"github.com/cortexai/cortexai/provider"
)

// stubMember returns a canned result or error for every subtask.
type stubMember struct {
	name   string
	result string
	err    error
	tasks  []string
}

func (m *stubMember) Name() string { return m.name }

func (m *stubMember) RunTask(_ context.Context, goal string) (string, error) {
	m.tasks = append(m.tasks, goal)
	return m.result, m.err
}

// stubCoordinator answers the planning prompt with planText and every other
// prompt with synthesis.
type stubCoordinator struct {
	planText  string
	synthesis string
	prompts   []string
}

func (c *stubCoordinator) RunTask(_ context.Context, goal string) string {
	c.prompts = append(c.prompts, goal)
	if strings.Contains(goal, "Available agents:") {
		return c.planText
	}
	return c.synthesis
}

// -------------------- Pool Tests --------------------

func TestPool_RegisterDuplicate(t *testing.T) {
	p := NewPool()
	require.NoError(t, p.Register(&stubMember{name: "A"}))
	assert.ErrorIs(t, p.Register(&stubMember{name: "A"}), ErrDuplicateAgent)
	assert.Equal(t, 1, p.Len())
}

func TestPool_GetNotFound(t *testing.T) {
	p := NewPool()
	_, err := p.Get("ghost")
	assert.ErrorIs(t, err, ErrAgentNotFound)
}

func TestPool_NamesStableOrderAndRemove(t *testing.T) {
	p := NewPool()
	require.NoError(t, p.Register(&stubMember{name: "C"}))
	require.NoError(t, p.Register(&stubMember{name: "A"}))
	require.NoError(t, p.Register(&stubMember{name: "B"}))
	assert.Equal(t, []string{"C", "A", "B"}, p.Names())

	p.Remove("A")
	assert.Equal(t, []string{"C", "B"}, p.Names())

	// Removing an unknown name is a no-op.
	p.Remove("ghost")
	assert.Equal(t, 2, p.Len())
}

// -------------------- System Tests --------------------

func TestSystem_RunDelegatesInOrder(t *testing.T) {
	researcher := &stubMember{name: "Researcher", result: "facts gathered"}
	writer := &stubMember{name: "Writer", result: "report written"}

	pool := NewPool()
	require.NoError(t, pool.Register(researcher))
	require.NoError(t, pool.Register(writer))

	coord := &stubCoordinator{
		planText: "```json\n[{\"agent\": \"Researcher\", \"description\": \"gather facts\"}, " +
			"{\"agent\": \"Writer\", \"description\": \"write it up\"}]\n```",
		synthesis: "the final brief",
	}

	system := NewSystem(nil, pool, func(o *SystemOptions) { o.Coordinator = coord })
	final, trace := system.Run(context.Background(), "produce a brief")

	assert.Equal(t, "the final brief", final)
	assert.Equal(t, "the final brief", trace.FinalResult)
	assert.Equal(t, "produce a brief", trace.Task)
	assert.NotEmpty(t, trace.ID)
	assert.Equal(t, []string{"Researcher", "Writer"}, trace.AgentsInvolved)

	require.Len(t, trace.SubtaskResults, 2)
	assert.Equal(t, "Researcher", trace.SubtaskResults[0].Agent)
	assert.Equal(t, SubtaskCompleted, trace.SubtaskResults[0].Status)
	assert.Equal(t, "facts gathered", trace.SubtaskResults[0].Result)
	assert.Equal(t, "Writer", trace.SubtaskResults[1].Agent)

	assert.Equal(t, []string{"gather facts"}, researcher.tasks)
	assert.Equal(t, []string{"write it up"}, writer.tasks)

	// Planning first, synthesis second; synthesis sees the sub-results.
	require.Len(t, coord.prompts, 2)
	assert.Contains(t, coord.prompts[0], "Available agents: Researcher, Writer")
	assert.Contains(t, coord.prompts[1], "facts gathered")
	assert.Contains(t, coord.prompts[1], "report written")
}

func TestSystem_SubtaskFailureIsIsolated(t *testing.T) {
	broken := &stubMember{name: "Broken", err: errors.New("no can do")}
	steady := &stubMember{name: "Steady", result: "still did my part"}

	pool := NewPool()
	require.NoError(t, pool.Register(broken))
	require.NoError(t, pool.Register(steady))

	coord := &stubCoordinator{
		planText: "Agent: Broken Task: try something\nAgent: Steady Task: do the rest",
		synthesis: "combined anyway",
	}

	system := NewSystem(nil, pool, func(o *SystemOptions) { o.Coordinator = coord })
	final, trace := system.Run(context.Background(), "task")

	assert.Equal(t, "combined anyway", final)
	require.Len(t, trace.SubtaskResults, 2)
	assert.Equal(t, SubtaskFailed, trace.SubtaskResults[0].Status)
	assert.Equal(t, "Failed: no can do", trace.SubtaskResults[0].Result)
	assert.Equal(t, SubtaskCompleted, trace.SubtaskResults[1].Status)
	// The sibling still ran.
	assert.Equal(t, []string{"do the rest"}, steady.tasks)
}

func TestSystem_UnknownAgentRecordedAsFailed(t *testing.T) {
	pool := NewPool()
	require.NoError(t, pool.Register(&stubMember{name: "Known", result: "ok"}))

	coord := &stubCoordinator{
		planText:  "```json\n[{\"agent\": \"Ghost\", \"description\": \"haunt\"}]\n```",
		synthesis: "done",
	}

	system := NewSystem(nil, pool, func(o *SystemOptions) { o.Coordinator = coord })
	_, trace := system.Run(context.Background(), "task")

	require.Len(t, trace.SubtaskResults, 1)
	assert.Equal(t, SubtaskFailed, trace.SubtaskResults[0].Status)
	assert.Contains(t, trace.SubtaskResults[0].Result, "Failed:")
	assert.Contains(t, trace.SubtaskResults[0].Result, "agent not found")
}

func TestSystem_NoDelegationsUsesCoordinatorOutput(t *testing.T) {
	pool := NewPool()
	require.NoError(t, pool.Register(&stubMember{name: "Idle"}))

	coord := &stubCoordinator{planText: "I can handle this myself."}
	system := NewSystem(nil, pool, func(o *SystemOptions) { o.Coordinator = coord })

	final, trace := system.Run(context.Background(), "small task")
	assert.Equal(t, "I can handle this myself.", final)
	assert.Empty(t, trace.SubtaskResults)
	assert.Empty(t, trace.AgentsInvolved)
	// No synthesis call happened.
	assert.Len(t, coord.prompts, 1)
}

func TestNewResearchTeam_PoolMembers(t *testing.T) {
	system := NewResearchTeam(nil)
	assert.Equal(t, []string{"Researcher", "Analyst", "Writer"}, system.Pool().Names())
}

func TestNewSoftwareTeam_PoolMembers(t *testing.T) {
	system := NewSoftwareTeam(nil)
	assert.Equal(t, []string{"Architect", "Developer", "Reviewer"}, system.Pool().Names())
}

func TestNewContentTeam_PoolMembers(t *testing.T) {
	system := NewContentTeam(nil)
	assert.Equal(t, []string{"Strategist", "Writer", "Editor"}, system.Pool().Names())
}

// -------------------- Monitored Tests --------------------

func TestMonitored_AutonomousAsPoolMember(t *testing.T) {
	mock := provider.NewMockProvider()
	mock.RespondWhenContains("compile the findings", "findings compiled")

	auto := agent.NewAutonomous("Researcher", mock, func(o *agent.AutonomousOptions) {
		o.Planner = plan.NewStaticPlanner()
	})

	p := NewPool()
	require.NoError(t, p.Register(Monitored(auto)))

	m, err := p.Get("Researcher")
	require.NoError(t, err)

	out, err := m.RunTask(context.Background(), "compile the findings")
	require.NoError(t, err)
	assert.Contains(t, out, "# Execution Report for: compile the findings")
	assert.Contains(t, out, "Status: SUCCESS")
	assert.Contains(t, out, "findings compiled")
}
