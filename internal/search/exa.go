// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package search

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/pdiddy/medblog-engine/internal/httputil"
	"github.com/pdiddy/medblog-engine/pkg/types"
)

// exaAPIBase is the Exa search endpoint. Declared as a var so tests can
// substitute an httptest server.
var exaAPIBase = "https://api.exa.ai/search"

const (
	defaultNumResults = 10
	defaultDateWindow = 5 * 365 * 24 * time.Hour
	dateFmt           = "2006-01-02"
)

// ExaBackend queries the Exa keyword search API and renders the hits into
// the block format the article parser consumes.
type ExaBackend struct {
	Client *http.Client
	APIKey string
}

// Name returns the backend identifier.
func (b *ExaBackend) Name() string { return "exa" }

// exaRequest is the request body for the Exa search API.
type exaRequest struct {
	Query              string `json:"query"`
	Type               string `json:"type"`
	NumResults         int    `json:"numResults"`
	StartPublishedDate string `json:"startPublishedDate,omitempty"`
}

// exaResponse is the response body from the Exa search API.
type exaResponse struct {
	Results []exaResult `json:"results"`
}

type exaResult struct {
	Title         string `json:"title"`
	URL           string `json:"url"`
	PublishedDate string `json:"publishedDate"`
	Author        string `json:"author"`
}

// Search posts the query to Exa and returns the hits as "---"-delimited
// "Key: value" blocks. Hits older than the configured date window are
// excluded server-side.
func (b *ExaBackend) Search(ctx context.Context, query string, cfg types.SearchConfig) (string, error) {
	numResults := cfg.NumResults
	if numResults <= 0 {
		numResults = defaultNumResults
	}
	window := cfg.DateWindow
	if window <= 0 {
		window = defaultDateWindow
	}

	reqBody := exaRequest{
		Query:              query,
		Type:               "keyword",
		NumResults:         numResults,
		StartPublishedDate: time.Now().Add(-window).Format(dateFmt),
	}

	bodyBytes, err := json.Marshal(reqBody)
	if err != nil {
		return "", fmt.Errorf("marshaling request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, exaAPIBase, bytes.NewReader(bodyBytes))
	if err != nil {
		return "", fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("User-Agent", cfg.UserAgent)
	if b.APIKey != "" {
		req.Header.Set("x-api-key", b.APIKey)
	}

	client := b.Client
	if client == nil {
		client = http.DefaultClient
	}

	resp, err := httputil.DoWithRetry(ctx, client, req, 0)
	if err != nil {
		return "", fmt.Errorf("Exa API request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("Exa API returned HTTP %d", resp.StatusCode)
	}

	var er exaResponse
	if err := json.NewDecoder(resp.Body).Decode(&er); err != nil {
		return "", fmt.Errorf("parsing Exa response: %w", err)
	}

	return formatResults(er.Results), nil
}

// formatResults renders Exa hits as parser-ready blocks. Hits without a
// title or URL are rendered anyway; the parser drops them.
func formatResults(results []exaResult) string {
	var b bytes.Buffer
	for _, r := range results {
		fmt.Fprintf(&b, "Title: %s\n", r.Title)
		if r.Author != "" {
			fmt.Fprintf(&b, "Authors: %s\n", r.Author)
		}
		if d := formatPublishedDate(r.PublishedDate); d != "" {
			fmt.Fprintf(&b, "Date: %s\n", d)
		}
		fmt.Fprintf(&b, "URL: %s\n---\n", r.URL)
	}
	return b.String()
}

// formatPublishedDate normalizes Exa's RFC 3339 timestamps to YYYY-MM-DD.
// Unparseable values pass through unchanged; the parser treats dates as
// free-form text.
func formatPublishedDate(published string) string {
	if published == "" {
		return ""
	}
	if t, err := time.Parse(time.RFC3339, published); err == nil {
		return t.Format(dateFmt)
	}
	return published
}
