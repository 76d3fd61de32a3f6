package parse

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

// -------------------- Tool Call Tests --------------------

func TestParseToolCall_MixedQuoting(t *testing.T) {
	call, ok := ParseToolCall(`[UseTool:Foo a=1 b="two words" c='three']`)
	assert.True(t, ok)
	assert.Equal(t, "Foo", call.Name)
	assert.Equal(t, map[string]string{"a": "1", "b": "two words", "c": "three"}, call.Args)
}

func TestParseToolCall_NoCall(t *testing.T) {
	_, ok := ParseToolCall("This is just a final answer with no brackets.")
	assert.False(t, ok)
}

func TestParseToolCall_FirstSpanWins(t *testing.T) {
	call, ok := ParseToolCall(`first [UseTool:One x=1] then [UseTool:Two y=2]`)
	assert.True(t, ok)
	assert.Equal(t, "One", call.Name)
	assert.Equal(t, map[string]string{"x": "1"}, call.Args)
}

func TestParseToolCall_NoArgs(t *testing.T) {
	call, ok := ParseToolCall(`[UseTool:Ping]`)
	assert.True(t, ok)
	assert.Equal(t, "Ping", call.Name)
	assert.Empty(t, call.Args)
}

func TestParseToolCall_DuplicateKeysLastWins(t *testing.T) {
	call, ok := ParseToolCall(`[UseTool:Foo a=1 a=2]`)
	assert.True(t, ok)
	assert.Equal(t, map[string]string{"a": "2"}, call.Args)
}

func TestParseToolCall_EmptyQuotedValue(t *testing.T) {
	call, ok := ParseToolCall(`[UseTool:Foo a="" b=x]`)
	assert.True(t, ok)
	assert.Equal(t, map[string]string{"a": "", "b": "x"}, call.Args)
}

func TestParseToolCall_MalformedFragmentsIgnored(t *testing.T) {
	call, ok := ParseToolCall(`[UseTool:Foo good=yes =broken also bad]`)
	assert.True(t, ok)
	assert.Equal(t, "yes", call.Args["good"])
	assert.NotContains(t, call.Args, "")
}

func TestParseToolCall_SurroundingText(t *testing.T) {
	call, ok := ParseToolCall(`I should search. [UseTool:WebSearchTool query="golang concurrency"] and wait.`)
	assert.True(t, ok)
	assert.Equal(t, "WebSearchTool", call.Name)
	assert.Equal(t, "golang concurrency", call.Args["query"])
}

// -------------------- JSON Array Extraction Tests --------------------

func TestExtractJSONArray_Fenced(t *testing.T) {
	text := "Here is the plan:\n```json\n[{\"description\": \"one\"}]\n```\nDone."
	raw, ok := ExtractJSONArray(text)
	assert.True(t, ok)
	assert.Equal(t, `[{"description": "one"}]`, raw)
}

func TestExtractJSONArray_FencePreferredOverBrackets(t *testing.T) {
	text := "[not json]\n```json\n[1, 2]\n```"
	raw, ok := ExtractJSONArray(text)
	assert.True(t, ok)
	assert.Equal(t, "[1, 2]", raw)
}

func TestExtractJSONArray_BareBrackets(t *testing.T) {
	raw, ok := ExtractJSONArray(`The plan is [{"description": "a"}] as requested.`)
	assert.True(t, ok)
	assert.Equal(t, `[{"description": "a"}]`, raw)
}

func TestExtractJSONArray_None(t *testing.T) {
	_, ok := ExtractJSONArray("no arrays here")
	assert.False(t, ok)
}

func TestExtractJSONArray_ClosingBeforeOpening(t *testing.T) {
	_, ok := ExtractJSONArray("] stray then [")
	assert.False(t, ok)
}

// -------------------- Step Description Tests --------------------

func TestStepDescriptions_Valid(t *testing.T) {
	text := "```json\n[{\"description\": \"first\"}, {\"description\": \"second\"}]\n```"
	assert.Equal(t, []string{"first", "second"}, StepDescriptions(text))
}

func TestStepDescriptions_MissingKey(t *testing.T) {
	text := `[{"description": "ok"}, {"note": "missing"}]`
	assert.Nil(t, StepDescriptions(text))
}

func TestStepDescriptions_InvalidJSON(t *testing.T) {
	assert.Nil(t, StepDescriptions("[{not json]"))
}

func TestStepDescriptions_EmptyArray(t *testing.T) {
	assert.Nil(t, StepDescriptions("[]"))
}

func TestStepDescriptions_NoArray(t *testing.T) {
	assert.Nil(t, StepDescriptions("I could not produce a plan."))
}

// -------------------- Delegation Tests --------------------

func TestDelegations_FencedJSON(t *testing.T) {
	text := "Plan:\n```json\n[{\"agent\": \"Researcher\", \"description\": \"find sources\"}, {\"agent\": \"Writer\", \"description\": \"draft report\"}]\n```"
	ds := Delegations(text, []string{"Researcher", "Writer"})
	assert.Equal(t, []Delegation{
		{Agent: "Researcher", Description: "find sources"},
		{Agent: "Writer", Description: "draft report"},
	}, ds)
}

func TestDelegations_FencedSkipsIncompleteObjects(t *testing.T) {
	text := "```json\n[{\"agent\": \"Researcher\"}, {\"agent\": \"Writer\", \"description\": \"draft\"}]\n```"
	ds := Delegations(text, nil)
	assert.Equal(t, []Delegation{{Agent: "Writer", Description: "draft"}}, ds)
}

func TestDelegations_AgentTaskLines(t *testing.T) {
	text := "Here is my breakdown:\n- Agent: Researcher Task: gather background\nAgent: Writer Task: write the summary\n"
	ds := Delegations(text, nil)
	assert.Equal(t, []Delegation{
		{Agent: "Researcher", Description: "gather background"},
		{Agent: "Writer", Description: "write the summary"},
	}, ds)
}

func TestDelegations_KnownNameColon(t *testing.T) {
	text := "Researcher: dig into the topic\nSomeoneElse: ignore this\nWriter: produce the final text"
	ds := Delegations(text, []string{"Researcher", "Writer"})
	assert.Equal(t, []Delegation{
		{Agent: "Researcher", Description: "dig into the topic"},
		{Agent: "Writer", Description: "produce the final text"},
	}, ds)
}

func TestDelegations_StageOrder(t *testing.T) {
	// Fenced JSON wins even when Agent:/Task: lines are also present.
	text := "Agent: Writer Task: should not be used\n```json\n[{\"agent\": \"Researcher\", \"description\": \"json wins\"}]\n```"
	ds := Delegations(text, []string{"Researcher", "Writer"})
	assert.Equal(t, []Delegation{{Agent: "Researcher", Description: "json wins"}}, ds)
}

func TestDelegations_None(t *testing.T) {
	assert.Empty(t, Delegations("no structure at all", []string{"Researcher"}))
}
