// AngelaMos | 2026
// client.go

package webcontext

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"strings"

	"github.com/carterperez-dev/insighthub/internal/config"
)

// Client fetches live web context for a research query from the
// Firecrawl search API. Context is an enrichment, not a dependency:
// every failure path degrades to an empty string and the caller
// proceeds on model knowledge alone.
type Client struct {
	httpClient  *http.Client
	apiKey      string
	baseURL     string
	resultLimit int
	language    string
}

func NewClient(cfg config.FirecrawlConfig) *Client {
	return &Client{
		httpClient:  &http.Client{Timeout: cfg.Timeout},
		apiKey:      cfg.APIKey,
		baseURL:     strings.TrimRight(cfg.BaseURL, "/"),
		resultLimit: cfg.ResultLimit,
		language:    cfg.Language,
	}
}

type searchRequest struct {
	Query string `json:"query"`
	Limit int    `json:"limit"`
	Lang  string `json:"lang"`
}

type searchResult struct {
	URL      string `json:"url"`
	Title    string `json:"title"`
	Markdown string `json:"markdown"`
	Snippet  string `json:"snippet"`
}

type searchResponse struct {
	Success bool           `json:"success"`
	Data    []searchResult `json:"data"`
}

// FetchContext searches the live web and returns the results formatted
// as a single context block, in API order. Any failure (no key, HTTP
// error, bad payload, zero results) yields "" after one attempt.
func (c *Client) FetchContext(ctx context.Context, query string) string {
	if c.apiKey == "" {
		return ""
	}

	results, err := c.search(ctx, query)
	if err != nil {
		slog.Warn("web context fetch failed",
			slog.String("query", query),
			slog.String("error", err.Error()),
		)
		return ""
	}

	if len(results) == 0 {
		return ""
	}

	return formatResults(results)
}

func (c *Client) search(
	ctx context.Context,
	query string,
) ([]searchResult, error) {
	body, err := json.Marshal(searchRequest{
		Query: query,
		Limit: c.resultLimit,
		Lang:  c.language,
	})
	if err != nil {
		return nil, fmt.Errorf("marshal search request: %w", err)
	}

	req, err := http.NewRequestWithContext(
		ctx,
		http.MethodPost,
		c.baseURL+"/v1/search",
		bytes.NewReader(body),
	)
	if err != nil {
		return nil, fmt.Errorf("build search request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.apiKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("search request: %w", err)
	}
	defer resp.Body.Close() //nolint:errcheck // response body close

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("search returned status %d", resp.StatusCode)
	}

	var parsed searchResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return nil, fmt.Errorf("decode search response: %w", err)
	}

	if !parsed.Success {
		return nil, fmt.Errorf("search reported failure")
	}

	return parsed.Data, nil
}

// formatResults renders each hit as a source block. Markdown content
// is preferred; the snippet stands in when the page scrape is empty.
func formatResults(results []searchResult) string {
	blocks := make([]string, 0, len(results))
	for _, r := range results {
		content := r.Markdown
		if content == "" {
			content = r.Snippet
		}

		blocks = append(blocks, fmt.Sprintf(
			"Source: %s\nTitle: %s\nContent: %s",
			r.URL, r.Title, content,
		))
	}

	return strings.Join(blocks, "\n\n---\n\n")
}
