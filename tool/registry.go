package tool

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"

	"github.com/cortexai/cortexai/internal/util"
)

// Summary is the name/description pair returned by Registry.List.
type Summary struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}

// Definition declaratively exposes a tool to a model for function-calling
// style descriptions.
type Definition struct {
	Type     string             `json:"type"` // "function"
	Function FunctionDefinition `json:"function"`
}

// FunctionDefinition describes an individual tool exposed to the model.
type FunctionDefinition struct {
	Name        string         `json:"name"`
	Description string         `json:"description"`
	Parameters  map[string]any `json:"parameters"` // JSON Schema
}

// Registry maps tool names to tools, validates inputs and dispatches calls.
// It preserves registration order for listings. Safe for concurrent use.
type Registry struct {
	mu    sync.RWMutex
	tools map[string]Tool
	order []string
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{tools: make(map[string]Tool)}
}

// Register adds a tool. It fails with ErrDuplicateTool when the name is
// already taken.
func (r *Registry) Register(t Tool) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.tools[t.Name()]; exists {
		return fmt.Errorf("%w: %s", ErrDuplicateTool, t.Name())
	}
	r.tools[t.Name()] = t
	r.order = append(r.order, t.Name())
	return nil
}

// Remove deletes a tool by name, failing with ErrToolNotFound when absent.
func (r *Registry) Remove(name string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.tools[name]; !exists {
		return fmt.Errorf("%w: %s", ErrToolNotFound, name)
	}
	delete(r.tools, name)
	for i, n := range r.order {
		if n == name {
			r.order = append(r.order[:i], r.order[i+1:]...)
			break
		}
	}
	return nil
}

// Get returns the tool registered under name, failing with ErrToolNotFound
// when absent.
func (r *Registry) Get(name string) (Tool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	t, exists := r.tools[name]
	if !exists {
		return nil, fmt.Errorf("%w: %s", ErrToolNotFound, name)
	}
	return t, nil
}

// List returns name/description pairs in registration order.
func (r *Registry) List() []Summary {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]Summary, 0, len(r.order))
	for _, name := range r.order {
		t := r.tools[name]
		out = append(out, Summary{Name: t.Name(), Description: t.Description()})
	}
	return out
}

// Definitions returns each tool's declared schema in a function-calling
// shape, in registration order.
func (r *Registry) Definitions() []Definition {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]Definition, 0, len(r.order))
	for _, name := range r.order {
		t := r.tools[name]
		out = append(out, Definition{
			Type: "function",
			Function: FunctionDefinition{
				Name:        t.Name(),
				Description: t.Description(),
				Parameters:  t.Parameters(),
			},
		})
	}
	return out
}

// Len returns the number of registered tools.
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.tools)
}

// Execute resolves a tool by name, normalizes and validates its input, then
// invokes it and returns the result verbatim.
//
// input may be a map[string]any, a JSON-encoded string, or nil. A string
// that fails to decode as a JSON object degrades to {"input": <raw string>}
// rather than erroring: tool arguments come from model text and are treated
// best-effort. overrides are merged on top of the decoded input and win on
// key collisions.
//
// Execute fails with ErrToolNotFound for unknown names and with
// *InvalidInputError naming the first missing required parameter.
func (r *Registry) Execute(ctx context.Context, name string, input any, overrides map[string]any) (any, error) {
	t, err := r.Get(name)
	if err != nil {
		return nil, err
	}

	args := normalizeInput(input)
	for k, v := range overrides {
		args[k] = v
	}

	if err := util.ValidateRequired(args, t.Parameters()); err != nil {
		var vErr *util.ValidationError
		if errors.As(err, &vErr) {
			return nil, &InvalidInputError{Tool: name, Param: vErr.Field}
		}
		return nil, err
	}

	return t.Call(ctx, args)
}

// normalizeInput coerces the supported input shapes into an argument map.
func normalizeInput(input any) map[string]any {
	switch in := input.(type) {
	case nil:
		return map[string]any{}
	case map[string]any:
		args := make(map[string]any, len(in))
		for k, v := range in {
			args[k] = v
		}
		return args
	case map[string]string:
		args := make(map[string]any, len(in))
		for k, v := range in {
			args[k] = v
		}
		return args
	case string:
		var decoded map[string]any
		if err := json.Unmarshal([]byte(in), &decoded); err != nil {
			return map[string]any{"input": in}
		}
		return decoded
	default:
		return map[string]any{"input": input}
	}
}
