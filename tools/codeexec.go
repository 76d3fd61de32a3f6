//go:build !windows

package tools

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os/exec"
	"strings"
	"syscall"
	"time"
)

const (
	defaultExecTimeout = 5 * time.Second
	maxExecTimeout     = 30 * time.Second
)

// CodeExecOptions configure a CodeExec tool.
type CodeExecOptions struct {
	// Interpreter is the executable invoked for each snippet, e.g.
	// {"python3", "-c"} or {"sh", "-c"}.
	Interpreter []string
	// Dir is the working directory for the subprocess.
	Dir string
}

// CodeExec runs code snippets through an interpreter subprocess with a hard
// timeout, capturing combined output. The timeout is local to the tool and
// independent of any agent-level budget. There is no isolation beyond the
// process boundary; point it at a sandboxed interpreter for untrusted input.
type CodeExec struct {
	interpreter []string
	dir         string
}

// NewCodeExec creates a code execution tool. The default interpreter is
// "python3 -c".
func NewCodeExec(optFns ...func(o *CodeExecOptions)) *CodeExec {
	opts := CodeExecOptions{
		Interpreter: []string{"python3", "-c"},
	}
	for _, fn := range optFns {
		fn(&opts)
	}
	return &CodeExec{interpreter: opts.Interpreter, dir: opts.Dir}
}

// Name implements the Tool interface.
func (c *CodeExec) Name() string { return "CodeExecTool" }

// Description implements the Tool interface.
func (c *CodeExec) Description() string {
	return "Executes code and returns the output. Only printed output is captured; use print statements to see results."
}

// Parameters implements the Tool interface.
func (c *CodeExec) Parameters() map[string]any {
	return map[string]any{
		"type": "object",
		"properties": map[string]any{
			"code": map[string]any{
				"type":        "string",
				"description": "Code to execute",
			},
			"timeout": map[string]any{
				"type":        "integer",
				"description": "Maximum execution time in seconds",
				"default":     5,
				"minimum":     1,
				"maximum":     30,
			},
		},
		"required": []string{"code"},
	}
}

// Call implements the Tool interface.
func (c *CodeExec) Call(ctx context.Context, args map[string]any) (any, error) {
	code := stringArg(args, "code")
	timeout := time.Duration(intArg(args, "timeout", int(defaultExecTimeout/time.Second))) * time.Second
	if timeout < time.Second {
		timeout = time.Second
	}
	if timeout > maxExecTimeout {
		timeout = maxExecTimeout
	}

	cctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	argv := append(append([]string{}, c.interpreter...), code)
	cmd := exec.Command(argv[0], argv[1:]...)
	cmd.Dir = c.dir
	// New process group so the whole tree dies on timeout.
	cmd.SysProcAttr = &syscall.SysProcAttr{Setpgid: true}

	var out bytes.Buffer
	cmd.Stdout = &out
	cmd.Stderr = &out

	if err := cmd.Start(); err != nil {
		return fmt.Sprintf("Error: %v", err), nil
	}

	done := make(chan struct{})
	go func() {
		select {
		case <-cctx.Done():
			if cmd.Process != nil {
				syscall.Kill(-cmd.Process.Pid, syscall.SIGKILL)
			}
		case <-done:
		}
	}()

	waitErr := cmd.Wait()
	close(done)

	if errors.Is(cctx.Err(), context.DeadlineExceeded) {
		return fmt.Sprintf("Execution timed out after %d seconds", int(timeout/time.Second)), nil
	}
	if waitErr != nil {
		var exitErr *exec.ExitError
		if errors.As(waitErr, &exitErr) {
			return fmt.Sprintf("Error: exit status %d\n%s", exitErr.ExitCode(), strings.TrimRight(out.String(), "\n")), nil
		}
		return fmt.Sprintf("Error: %v", waitErr), nil
	}
	return out.String(), nil
}
