package searxng

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/websuite/web-mcp/pkg/upstream"
)

const (
	// DefaultTimeout is the fixed connect/read timeout for search requests.
	// The search schema does not carry a per-request timeout.
	DefaultTimeout = 10 * time.Second

	noDescription = "No description available"
)

// Loader defines the interface for querying SearxNG
type Loader interface {
	Search(ctx context.Context, params SearchParams) (*SearchResponse, error)
	Close() error
}

// RealLoader implements Loader over the SearxNG JSON API
type RealLoader struct {
	client  *http.Client
	baseURL string
}

// Ensure RealLoader implements Loader at compile time
var _ Loader = (*RealLoader)(nil)

func NewSearchClient(cfg Config) *RealLoader {
	return &RealLoader{
		client:  &http.Client{Timeout: DefaultTimeout},
		baseURL: cfg.BaseURL,
	}
}

// searchEntry mirrors one raw result entry. Pointer fields distinguish an
// absent key from a present empty string during per-entry validation.
type searchEntry struct {
	Title   *string `json:"title"`
	URL     *string `json:"url"`
	Content *string `json:"content"`
}

type searchPayload struct {
	Results []searchEntry `json:"results"`
}

// Search performs one search against the SearxNG API. Malformed entries in
// the upstream result list are skipped, not failed; TotalCount still counts
// them.
func (s *RealLoader) Search(ctx context.Context, params SearchParams) (*SearchResponse, error) {
	slog.Info("Starting search", "query", params.Query, "page", params.Page)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.baseURL+"/search", http.NoBody)
	if err != nil {
		return nil, fmt.Errorf("error building search request: %w", err)
	}

	q := req.URL.Query()
	q.Set("q", params.Query)
	q.Set("format", "json")
	q.Set("pageno", strconv.Itoa(params.Page))
	if params.TimeRange != "" {
		q.Set("time_range", params.TimeRange)
	}
	req.URL.RawQuery = q.Encode()

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("search request failed: %w", err)
	}
	defer resp.Body.Close()

	bodyBytes, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("error reading search response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, &upstream.StatusError{Code: resp.StatusCode, Body: string(bodyBytes)}
	}

	var payload searchPayload
	if err := json.Unmarshal(bodyBytes, &payload); err != nil {
		return nil, &upstream.FormatError{Err: err}
	}

	response := &SearchResponse{
		Results:    make([]SearchResult, 0, len(payload.Results)),
		TotalCount: len(payload.Results),
	}

	for i, entry := range payload.Results {
		result, err := validateEntry(entry)
		if err != nil {
			slog.Warn("Skipping malformed search result", "index", i, "err", err)
			response.Skipped++
			continue
		}
		response.Results = append(response.Results, result)
	}

	slog.Info("Search completed", "total", response.TotalCount, "returned", len(response.Results), "skipped", response.Skipped)
	return response, nil
}

// validateEntry turns one raw upstream entry into a SearchResult or reports
// why it should be discarded.
func validateEntry(entry searchEntry) (SearchResult, error) {
	if entry.Title == nil {
		return SearchResult{}, fmt.Errorf("missing title")
	}
	if entry.URL == nil {
		return SearchResult{}, fmt.Errorf("missing url")
	}

	u, err := url.Parse(*entry.URL)
	if err != nil {
		return SearchResult{}, fmt.Errorf("unparsable url %q: %w", *entry.URL, err)
	}
	if (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return SearchResult{}, fmt.Errorf("url %q is not an absolute http(s) URL", *entry.URL)
	}

	snippet := noDescription
	if entry.Content != nil {
		snippet = *entry.Content
	}

	return SearchResult{
		Title:   *entry.Title,
		URL:     *entry.URL,
		Snippet: snippet,
	}, nil
}

// Close releases the loader's HTTP connections.
func (s *RealLoader) Close() error {
	s.client.CloseIdleConnections()
	return nil
}
