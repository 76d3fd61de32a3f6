// Package parse isolates every free-text grammar the toolkit speaks with a
// model: the bracketed tool-call pattern, fenced / bracketed JSON plan
// arrays, and the delegation formats produced by a coordinator. The rest of
// the system depends only on the structured results returned here, never on
// raw text matching.
//
// All grammars are deliberately permissive. Model output is unreliable free
// text, not a strict protocol, so parsing degrades to "no result" instead of
// failing hard; callers fall back on documented defaults.
package parse

import (
	"encoding/json"
	"regexp"
	"strings"
)

// ToolCall is a structured tool invocation extracted from model text.
type ToolCall struct {
	Name string            // Tool name as written inside the bracket
	Args map[string]string // key=value arguments, last duplicate key wins
}

var (
	// Matches the first [UseTool:Name <args>] span. Name is a run of word
	// characters, args any run of non-"]" characters.
	toolCallPattern = regexp.MustCompile(`\[UseTool:(\w+)([^\]]*)\]`)

	// Matches key=value pairs inside the args run. Values are double-quoted,
	// single-quoted, or a bare run of non-whitespace. Quoted alternatives come
	// first so a quoted value with spaces is not truncated at the first space.
	argPattern = regexp.MustCompile(`(\w+)=(?:"([^"]*)"|'([^']*)'|(\S+))`)
)

// ParseToolCall extracts at most one tool call from text. The second return
// is false when no [UseTool:...] span exists, in which case the text should
// be treated as a final answer. Malformed argument fragments inside the span
// are silently ignored.
func ParseToolCall(text string) (ToolCall, bool) {
	m := toolCallPattern.FindStringSubmatch(text)
	if m == nil {
		return ToolCall{}, false
	}

	args := map[string]string{}
	for _, am := range argPattern.FindAllStringSubmatch(strings.TrimSpace(m[2]), -1) {
		val := am[2]
		if val == "" {
			val = am[3]
		}
		if val == "" {
			val = am[4]
		}
		args[am[1]] = val
	}

	return ToolCall{Name: m[1], Args: args}, true
}

// ExtractJSONArray locates the JSON array payload inside model text. A fenced
// ```json block is preferred; failing that, the outermost [...] span is used.
// The second return is false when neither exists.
func ExtractJSONArray(text string) (string, bool) {
	if inner, ok := fencedJSON(text); ok {
		return inner, true
	}

	start := strings.Index(text, "[")
	end := strings.LastIndex(text, "]")
	if start == -1 || end == -1 || end <= start {
		return "", false
	}
	return strings.TrimSpace(text[start : end+1]), true
}

// fencedJSON returns the content between the first ```json marker and the
// last ``` fence, if both exist in that order.
func fencedJSON(text string) (string, bool) {
	start := strings.Index(text, "```json")
	end := strings.LastIndex(text, "```")
	if start == -1 || end <= start {
		return "", false
	}
	return strings.TrimSpace(text[start+len("```json") : end]), true
}

// StepDescriptions decodes a plan response into step descriptions. It returns
// nil when no JSON array is found, the array fails to decode, any element
// lacks a "description" key, or the result is empty — callers fall back to a
// static plan in all of those cases.
func StepDescriptions(text string) []string {
	raw, ok := ExtractJSONArray(text)
	if !ok {
		return nil
	}

	var items []struct {
		Description *string `json:"description"`
	}
	if err := json.Unmarshal([]byte(raw), &items); err != nil {
		return nil
	}

	descriptions := make([]string, 0, len(items))
	for _, item := range items {
		if item.Description == nil {
			return nil
		}
		descriptions = append(descriptions, *item.Description)
	}
	if len(descriptions) == 0 {
		return nil
	}
	return descriptions
}

// Delegation assigns a sub-task description to a named agent.
type Delegation struct {
	Agent       string `json:"agent"`
	Description string `json:"description"`
}

// Delegations extracts delegation instructions from a coordinator's plan
// text. Three strategies are tried in order and the first non-empty result
// wins:
//
//  1. a fenced ```json array of {agent, description} objects
//  2. lines containing both "Agent:" and "Task:"
//  3. for every known agent name, lines of the form "<name> ...: <task>"
//
// An empty slice means no delegations could be recovered and no sub-agent
// should run.
func Delegations(text string, knownAgents []string) []Delegation {
	if ds := fencedDelegations(text); len(ds) > 0 {
		return ds
	}

	lines := strings.Split(text, "\n")

	var delegations []Delegation
	for _, line := range lines {
		if !strings.Contains(line, "Agent:") || !strings.Contains(line, "Task:") {
			continue
		}
		parts := strings.SplitN(line, "Task:", 2)
		if len(parts) != 2 {
			continue
		}
		agent := strings.TrimSpace(strings.ReplaceAll(parts[0], "Agent:", ""))
		delegations = append(delegations, Delegation{
			Agent:       strings.Trim(agent, "-– "),
			Description: strings.TrimSpace(parts[1]),
		})
	}
	if len(delegations) > 0 {
		return delegations
	}

	for _, name := range knownAgents {
		for _, line := range lines {
			if !strings.Contains(line, name) || !strings.Contains(line, ":") {
				continue
			}
			parts := strings.SplitN(line, ":", 2)
			if len(parts) != 2 || !strings.Contains(parts[0], name) {
				continue
			}
			delegations = append(delegations, Delegation{
				Agent:       name,
				Description: strings.TrimSpace(parts[1]),
			})
		}
	}
	return delegations
}

// fencedDelegations decodes a fenced JSON array of delegation objects,
// skipping elements that lack either key.
func fencedDelegations(text string) []Delegation {
	raw, ok := fencedJSON(text)
	if !ok {
		return nil
	}

	var items []map[string]any
	if err := json.Unmarshal([]byte(raw), &items); err != nil {
		return nil
	}

	var delegations []Delegation
	for _, item := range items {
		agent, okA := item["agent"].(string)
		desc, okD := item["description"].(string)
		if okA && okD {
			delegations = append(delegations, Delegation{Agent: agent, Description: desc})
		}
	}
	return delegations
}
