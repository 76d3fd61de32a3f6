package agent

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cortexai/cortexai/plan"
	"github.com/cortexai/cortexai/provider"
	"github.com/cortexai/cortexai/tool"
)

// scriptedPlanner returns a fixed list of steps, rebuilt per call so test
// runs don't share mutable state.
type scriptedPlanner struct {
	descriptions []string
}

func (p *scriptedPlanner) CreatePlan(_ context.Context, goal string) []*plan.Step {
	if len(p.descriptions) == 0 {
		return []*plan.Step{plan.NewStep(0, goal)}
	}
	steps := make([]*plan.Step, len(p.descriptions))
	for i, d := range p.descriptions {
		steps[i] = plan.NewStep(i, d)
	}
	return steps
}

func echoTool() tool.Tool {
	return tool.NewFunctionTool("echo", "echoes its query",
		map[string]any{
			"type":       "object",
			"properties": map[string]any{"query": map[string]any{"type": "string"}},
			"required":   []string{"query"},
		},
		func(_ context.Context, args map[string]any) (any, error) {
			return "echo:" + args["query"].(string), nil
		})
}

func TestAgent_RunTask_DirectAnswer(t *testing.T) {
	mock := provider.NewMockProvider()
	mock.AddResponse("say hi", "Hello there!")

	a := New("Tester", mock)
	result, err := a.RunTask(context.Background(), "say hi")
	require.NoError(t, err)
	assert.Equal(t, "Hello there!", result)

	// The interaction was observed into memory.
	assert.Contains(t, a.Memory().Context(), "User: say hi")
	assert.Contains(t, a.Memory().Context(), "Agent: Hello there!")
}

func TestAgent_RunTask_ToolCall(t *testing.T) {
	mock := provider.NewMockProvider()
	mock.AddResponse("use the tool", `I will call it now. [UseTool:echo query="ping"]`)

	registry := tool.NewRegistry()
	require.NoError(t, registry.Register(echoTool()))

	a := New("Tester", mock, func(o *Options) { o.Registry = registry })
	result, err := a.RunTask(context.Background(), "use the tool")
	require.NoError(t, err)
	assert.Equal(t, "Tool output:\necho:ping", result)
}

func TestAgent_RunTask_UnknownToolPropagates(t *testing.T) {
	mock := provider.NewMockProvider()
	mock.AddResponse("use the tool", `[UseTool:ghost x=1]`)

	a := New("Tester", mock)
	_, err := a.RunTask(context.Background(), "use the tool")
	assert.ErrorIs(t, err, tool.ErrToolNotFound)
}

func TestAgent_RunTask_MultiStepReturnsLastOutput(t *testing.T) {
	mock := provider.NewMockProvider()
	mock.AddResponse("step one", "first result")
	mock.AddResponse("step two", "second result")

	a := New("Tester", mock, func(o *Options) {
		o.Planner = &scriptedPlanner{descriptions: []string{"step one", "step two"}}
	})
	result, err := a.RunTask(context.Background(), "goal")
	require.NoError(t, err)
	assert.Equal(t, "second result", result)
	assert.Equal(t, 2, mock.Calls())
}

func TestAgent_ThinkSeesMemoryContext(t *testing.T) {
	mock := provider.NewMockProvider()
	mock.RespondWhenContains("previously established fact", "context made it through")

	a := New("Tester", mock)
	a.Observe("remember this", "previously established fact")

	out, err := a.Think(context.Background(), "anything")
	require.NoError(t, err)
	assert.Equal(t, "context made it through", out)
}

func TestAgent_ActWithoutToolCallReturnsReasoning(t *testing.T) {
	a := New("Tester", provider.NewMockProvider())
	out, err := a.Act(context.Background(), "just an answer, no brackets")
	require.NoError(t, err)
	assert.Equal(t, "just an answer, no brackets", out)
}

func TestSpecializedPromptPolicy_RendersDomain(t *testing.T) {
	policy := SpecializedPromptPolicy("research", "web search", "summarization")
	prompt := policy.SystemPrompt("Scout")
	assert.Contains(t, prompt, "Scout")
	assert.Contains(t, prompt, "research")
}

func TestNewResearchAgent_UsesAdaptivePlanner(t *testing.T) {
	a := NewResearchAgent("Scout", provider.NewMockProvider())
	_, ok := a.Planner().(plan.Reviser)
	assert.True(t, ok)
}
