package tools

import (
	"context"
	"fmt"
	"net/url"
	"strconv"
	"strings"
)

const (
	defaultSearchResults = 5
	maxSearchResults     = 10
)

// WebSearch performs a web search and returns titled results with URLs and
// snippets. Results are deterministic mock data; swap in a real search API
// client for production use.
type WebSearch struct{}

// NewWebSearch creates a web search tool.
func NewWebSearch() *WebSearch { return &WebSearch{} }

// Name implements the Tool interface.
func (w *WebSearch) Name() string { return "WebSearchTool" }

// Description implements the Tool interface.
func (w *WebSearch) Description() string {
	return "Performs a web search and returns relevant results"
}

// Parameters implements the Tool interface.
func (w *WebSearch) Parameters() map[string]any {
	return map[string]any{
		"type": "object",
		"properties": map[string]any{
			"query": map[string]any{
				"type":        "string",
				"description": "The search query to submit",
			},
			"num_results": map[string]any{
				"type":        "integer",
				"description": "The number of search results to return",
				"default":     defaultSearchResults,
				"minimum":     1,
				"maximum":     20,
			},
		},
		"required": []string{"query"},
	}
}

// Call implements the Tool interface.
func (w *WebSearch) Call(ctx context.Context, args map[string]any) (any, error) {
	query := strings.TrimSpace(stringArg(args, "query"))
	n := intArg(args, "num_results", defaultSearchResults)
	if n < 1 {
		n = 1
	}
	if n > maxSearchResults {
		n = maxSearchResults
	}

	if query == "" {
		return "Found 0 results for ''", nil
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Found %d results for '%s'\n\n", n, query)
	for i := 1; i <= n; i++ {
		fmt.Fprintf(&b, "%d. Result %d for %s\n", i, i, query)
		fmt.Fprintf(&b, "   https://example.com/search/%s/%d\n", url.QueryEscape(query), i)
		fmt.Fprintf(&b, "   This is a mock search result %d for the query: %s.\n", i, query)
	}
	return b.String(), nil
}

// stringArg returns the named argument as a string, tolerating non-string
// values from loosely parsed tool calls.
func stringArg(args map[string]any, key string) string {
	v, ok := args[key]
	if !ok {
		return ""
	}
	if s, ok := v.(string); ok {
		return s
	}
	return fmt.Sprintf("%v", v)
}

// intArg returns the named argument as an int, accepting string and float
// encodings. The tool-call grammar delivers every value as a string.
func intArg(args map[string]any, key string, def int) int {
	v, ok := args[key]
	if !ok {
		return def
	}
	switch t := v.(type) {
	case int:
		return t
	case float64:
		return int(t)
	case string:
		if n, err := strconv.Atoi(strings.TrimSpace(t)); err == nil {
			return n
		}
	}
	return def
}
