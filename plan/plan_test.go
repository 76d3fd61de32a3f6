package plan

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewStep_Defaults(t *testing.T) {
	s := NewStep(2, "do the thing")
	assert.Equal(t, 2, s.Index)
	assert.Equal(t, "do the thing", s.Description)
	assert.Equal(t, StatusPending, s.Status)
	assert.Empty(t, s.Result)
}

func TestStep_UpdateKeepsResultWhenEmpty(t *testing.T) {
	s := NewStep(0, "x")
	s.Update(StatusCompleted, "output")
	assert.Equal(t, StatusCompleted, s.Status)
	assert.Equal(t, "output", s.Result)

	// Empty result must not clear the previous one.
	s.Update(StatusFailed, "")
	assert.Equal(t, StatusFailed, s.Status)
	assert.Equal(t, "output", s.Result)
}

func TestStep_String(t *testing.T) {
	s := NewStep(1, "fetch data")
	assert.Equal(t, "Step 1: fetch data [pending]", s.String())
}

func TestNextStep_FirstPendingInListOrder(t *testing.T) {
	steps := []*Step{
		{Index: 0, Status: StatusCompleted},
		{Index: 1, Status: StatusFailed},
		{Index: 2, Status: StatusPending},
		{Index: 3, Status: StatusPending},
	}
	next := NextStep(steps)
	assert.NotNil(t, next)
	assert.Equal(t, 2, next.Index)
}

func TestNextStep_SkipsInProgressAndFailed(t *testing.T) {
	steps := []*Step{
		{Index: 0, Status: StatusInProgress},
		{Index: 1, Status: StatusFailed},
	}
	assert.Nil(t, NextStep(steps))
}

func TestNextStep_Empty(t *testing.T) {
	assert.Nil(t, NextStep(nil))
}

func TestIsComplete(t *testing.T) {
	assert.True(t, IsComplete(nil))
	assert.True(t, IsComplete([]*Step{{Status: StatusCompleted}}))
	assert.False(t, IsComplete([]*Step{{Status: StatusCompleted}, {Status: StatusPending}}))
	assert.False(t, IsComplete([]*Step{{Status: StatusFailed}}))
}

func TestClone_IsIndependent(t *testing.T) {
	orig := []*Step{NewStep(0, "a")}
	copied := Clone(orig)
	copied[0].Update(StatusCompleted, "done")
	assert.Equal(t, StatusPending, orig[0].Status)
	assert.Empty(t, orig[0].Result)
}

func TestDescribe_IncludesResults(t *testing.T) {
	steps := []*Step{
		{Index: 0, Description: "a", Status: StatusCompleted, Result: "done"},
		{Index: 1, Description: "b", Status: StatusPending},
	}
	out := Describe(steps)
	assert.Contains(t, out, "Step 0: a [completed]")
	assert.Contains(t, out, "Result: done")
	assert.Contains(t, out, "Step 1: b [pending]")
}
