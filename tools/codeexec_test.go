//go:build !windows

package tools

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func shellExec() *CodeExec {
	return NewCodeExec(func(o *CodeExecOptions) {
		o.Interpreter = []string{"sh", "-c"}
	})
}

func TestCodeExec_CapturesStdout(t *testing.T) {
	out, err := shellExec().Call(context.Background(), map[string]any{"code": "echo hello"})
	require.NoError(t, err)
	assert.Equal(t, "hello\n", out)
}

func TestCodeExec_NonZeroExitIsTextPayload(t *testing.T) {
	out, err := shellExec().Call(context.Background(), map[string]any{"code": "echo oops >&2; exit 3"})
	require.NoError(t, err)
	assert.Contains(t, out.(string), "exit status 3")
	assert.Contains(t, out.(string), "oops")
}

func TestCodeExec_Timeout(t *testing.T) {
	out, err := shellExec().Call(context.Background(), map[string]any{"code": "sleep 5", "timeout": "1"})
	require.NoError(t, err)
	assert.Equal(t, "Execution timed out after 1 seconds", out)
}
