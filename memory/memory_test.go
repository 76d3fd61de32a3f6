package memory

import (
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestInMemory_SaveAndContext(t *testing.T) {
	m := NewInMemory()
	assert.Empty(t, m.Context())

	m.SaveInteraction("hello", "hi there")
	m.SaveInteraction("how are you", "fine")

	ctx := m.Context()
	assert.Equal(t, "User: hello\nAgent: hi there\nUser: how are you\nAgent: fine", ctx)
	assert.Equal(t, 4, m.Len())
}

func TestWindowed_EvictsOldest(t *testing.T) {
	m := NewWindowed(4)
	for i := 1; i <= 4; i++ {
		m.SaveInteraction(fmt.Sprintf("in%d", i), fmt.Sprintf("out%d", i))
	}

	ctx := m.Context()
	lines := strings.Split(ctx, "\n")
	assert.Len(t, lines, 4)
	assert.Equal(t, "User: in3", lines[0])
	assert.Equal(t, "Agent: out4", lines[3])
	assert.NotContains(t, ctx, "in1")
}

func TestWindowed_DefaultLimit(t *testing.T) {
	m := NewWindowed(0)
	for i := 0; i < 30; i++ {
		m.SaveInteraction("q", "a")
	}
	assert.Len(t, strings.Split(m.Context(), "\n"), 20)
}
