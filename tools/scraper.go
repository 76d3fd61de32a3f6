// Package tools provides the built-in tool implementations: web scraping,
// web search, local file access and sandboxed code execution. Per the tool
// contract, expected failures (unreachable hosts, missing files, non-zero
// exits) come back as descriptive text payloads rather than Go errors.
package tools

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"time"

	readability "github.com/go-shiori/go-readability"
	"github.com/microcosm-cc/bluemonday"
)

const (
	scraperUserAgent    = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/91.0.4472.124 Safari/537.36"
	scraperContentLimit = 50000
)

// ScraperOptions configure a Scraper.
type ScraperOptions struct {
	UserAgent string
	Timeout   time.Duration
	// HTTPClient overrides the default client, mainly for tests.
	HTTPClient *http.Client
}

// Scraper fetches a web page and extracts its readable main content,
// sanitized to plain text.
type Scraper struct {
	userAgent string
	client    *http.Client
}

// NewScraper creates a web scraping tool.
func NewScraper(optFns ...func(o *ScraperOptions)) *Scraper {
	opts := ScraperOptions{
		UserAgent: scraperUserAgent,
		Timeout:   30 * time.Second,
	}
	for _, fn := range optFns {
		fn(&opts)
	}
	client := opts.HTTPClient
	if client == nil {
		client = &http.Client{Timeout: opts.Timeout}
	}
	return &Scraper{userAgent: opts.UserAgent, client: client}
}

// Name implements the Tool interface.
func (s *Scraper) Name() string { return "scraper" }

// Description implements the Tool interface.
func (s *Scraper) Description() string {
	return "Fetch a webpage URL and extract the main content as clean, sanitized text."
}

// Parameters implements the Tool interface.
func (s *Scraper) Parameters() map[string]any {
	return map[string]any{
		"type": "object",
		"properties": map[string]any{
			"url": map[string]any{
				"type":        "string",
				"description": "The full URL of the webpage to scrape (e.g., https://example.com/article)",
			},
		},
		"required": []string{"url"},
	}
}

// Call implements the Tool interface.
func (s *Scraper) Call(ctx context.Context, args map[string]any) (any, error) {
	rawURL, _ := args["url"].(string)

	parsedURL, err := url.Parse(rawURL)
	if err != nil {
		return fmt.Sprintf("Error: invalid URL %q: %v", rawURL, err), nil
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return fmt.Sprintf("Error: could not build request for %q: %v", rawURL, err), nil
	}
	req.Header.Set("User-Agent", s.userAgent)

	resp, err := s.client.Do(req)
	if err != nil {
		return fmt.Sprintf("Error: failed to fetch URL: %v", err), nil
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Sprintf("Error: failed to fetch URL: status code %d", resp.StatusCode), nil
	}

	article, err := readability.FromReader(resp.Body, parsedURL)
	if err != nil {
		return fmt.Sprintf("Error: failed to parse article: %v", err), nil
	}

	// Strip any tags readability leaves behind.
	sanitized := bluemonday.StrictPolicy().Sanitize(article.TextContent)
	if len(sanitized) > scraperContentLimit {
		sanitized = sanitized[:scraperContentLimit] + "\n... (content truncated) ..."
	}

	out := fmt.Sprintf("TITLE: %s\n", article.Title)
	if article.Excerpt != "" {
		out += fmt.Sprintf("EXCERPT: %s\n", article.Excerpt)
	}
	out += "\n-- CONTENT --\n" + sanitized
	return out, nil
}
