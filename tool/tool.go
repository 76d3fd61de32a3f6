// Package tool implements the tool subsystem: the Tool contract, a
// FunctionTool adapter for plain Go functions, and the Registry that
// validates and dispatches calls parsed from model output.
//
// By convention tools do not return Go errors for expected failure modes
// (missing file, HTTP 404, subprocess timeout); they return descriptive
// text payloads instead so the agent can observe the failure and continue.
// Go errors are reserved for contract violations: unknown tool names,
// missing required parameters, broken invariants.
package tool

import (
	"context"
	"errors"
	"fmt"
)

// ErrDuplicateTool signals a Register call with an already-registered name.
var ErrDuplicateTool = errors.New("tool already registered")

// ErrToolNotFound signals a lookup for an unknown tool name.
var ErrToolNotFound = errors.New("tool not found")

// Tool is a named callable capability with a declared input schema.
//
// Tool implementations should:
//   - Provide clear, descriptive names and descriptions
//   - Define a proper JSON schema for parameters
//   - Return failures as descriptive text payloads, not errors
//   - Be safe for concurrent use
type Tool interface {
	// Name returns the unique identifier for this tool.
	Name() string

	// Description returns a human-readable description of what this tool
	// does. It is surfaced to models to guide tool selection.
	Description() string

	// Parameters returns a JSON-Schema-shaped description of the expected
	// input ({type, properties, required}).
	Parameters() map[string]any

	// Call executes the tool with already-validated arguments.
	Call(ctx context.Context, args map[string]any) (any, error)
}

// InvalidInputError reports a missing required parameter for a tool call.
type InvalidInputError struct {
	Tool  string // Tool that rejected the input
	Param string // Name of the missing required parameter
}

func (e *InvalidInputError) Error() string {
	return fmt.Sprintf("invalid input for tool '%s': missing required parameter: %s", e.Tool, e.Param)
}

// ToolError represents errors that occur during tool execution.
type ToolError struct {
	Tool    string `json:"tool"`    // Name of the tool that failed
	Message string `json:"message"` // Error message
	Code    string `json:"code"`    // Error code for categorization
}

func (e *ToolError) Error() string {
	if e.Code != "" {
		return fmt.Sprintf("tool error [%s] in %s: %s", e.Code, e.Tool, e.Message)
	}
	return fmt.Sprintf("tool error in %s: %s", e.Tool, e.Message)
}

// NewToolError creates a new ToolError with the specified details.
func NewToolError(tool, message, code string) *ToolError {
	return &ToolError{Tool: tool, Message: message, Code: code}
}
