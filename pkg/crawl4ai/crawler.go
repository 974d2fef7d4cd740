package crawl4ai

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"time"

	"github.com/websuite/web-mcp/pkg/upstream"
)

// Loader defines the interface for crawling through Crawl4AI. Crawl never
// returns a Go error: every failure is folded into a failed CrawlResponse.
type Loader interface {
	Crawl(ctx context.Context, params CrawlParams) *CrawlResponse
	Close() error
}

// RealLoader implements Loader over the Crawl4AI direct-crawl API
type RealLoader struct {
	client *http.Client
	cfg    Config
}

// Ensure RealLoader implements Loader at compile time
var _ Loader = (*RealLoader)(nil)

func NewCrawlClient(cfg Config) *RealLoader {
	// Per-call deadlines are applied through the request context, so the
	// client itself carries no timeout.
	return &RealLoader{
		client: &http.Client{},
		cfg:    cfg,
	}
}

// buildRequestBody combines the caller's parameters with the static
// crawler-behavior block from configuration.
func (c *RealLoader) buildRequestBody(params CrawlParams) map[string]any {
	cacheMode := params.CacheMode
	if cacheMode == "" {
		cacheMode = DefaultCacheMode
	}

	body := map[string]any{
		"urls":       params.URL,
		"priority":   5,
		"cache_mode": cacheMode,
		"crawler_params": map[string]any{
			"headless":             c.cfg.Headless,
			"verbose":              c.cfg.Verbose,
			"word_count_threshold": c.cfg.WordCountThreshold,
		},
	}

	if c.cfg.WaitFor != "" {
		body["wait_for"] = c.cfg.WaitFor
	}
	if len(c.cfg.JSCode) > 0 {
		body["js_code"] = c.cfg.JSCode
	}
	if len(params.ExtraHeaders) > 0 {
		body["headers"] = params.ExtraHeaders
	}

	return body
}

// Crawl performs one crawl. The per-call timeout is the request timeout if
// given, else the configured default.
func (c *RealLoader) Crawl(ctx context.Context, params CrawlParams) *CrawlResponse {
	timeout := c.cfg.Timeout
	if params.TimeoutSeconds > 0 {
		timeout = time.Duration(params.TimeoutSeconds) * time.Second
	}
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	slog.Info("Starting crawl", "url", params.URL, "timeout", timeout)

	bodyBytes, err := json.Marshal(c.buildRequestBody(params))
	if err != nil {
		return c.failedResponse(params.URL, fmt.Sprintf("Crawl operation failed: %v", err))
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.cfg.BaseURL+"/crawl_direct", bytes.NewReader(bodyBytes))
	if err != nil {
		return c.failedResponse(params.URL, fmt.Sprintf("Crawl operation failed: %v", err))
	}
	req.Header.Set("Content-Type", "application/json")
	if c.cfg.APIToken != "" {
		req.Header.Set("Authorization", "Bearer "+c.cfg.APIToken)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) || os.IsTimeout(err) {
			return c.failedResponse(params.URL, fmt.Sprintf("Request timed out: %v", err))
		}
		return c.failedResponse(params.URL, fmt.Sprintf("HTTP request failed: %v", err))
	}
	defer resp.Body.Close()

	respBytes, err := io.ReadAll(resp.Body)
	if err != nil {
		return c.failedResponse(params.URL, fmt.Sprintf("HTTP request failed: %v", err))
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		statusErr := &upstream.StatusError{Code: resp.StatusCode, Body: string(respBytes)}
		return c.failedResponse(params.URL, fmt.Sprintf("HTTP request failed: %v", statusErr))
	}

	result, err := parseCrawlResponse(params.URL, respBytes)
	if err != nil {
		var shapeErr *upstream.ShapeError
		if errors.As(err, &shapeErr) {
			return c.failedResponse(params.URL, fmt.Sprintf("Malformed crawl response: %v", err))
		}
		return c.failedResponse(params.URL, fmt.Sprintf("Invalid JSON response: %v", err))
	}

	slog.Info("Crawl completed", "url", params.URL, "success", result.Success)
	return &CrawlResponse{Results: []CrawlResult{*result}, TotalCount: 1}
}

// rawLink reads one raw link entry with per-field defaulting: href/text fall
// back to the empty string, title stays optional.
type rawLink struct {
	Href  *string `json:"href"`
	Text  *string `json:"text"`
	Title *string `json:"title"`
}

// parseCrawlResponse validates the decoded body before any result object is
// built: the body must carry a result mapping with markdown, success, and
// links all present.
func parseCrawlResponse(url string, body []byte) (*CrawlResult, error) {
	var envelope map[string]json.RawMessage
	if err := json.Unmarshal(body, &envelope); err != nil {
		return nil, &upstream.FormatError{Err: err}
	}

	rawResult, ok := envelope["result"]
	if !ok {
		return nil, &upstream.ShapeError{Missing: "result"}
	}

	var inner map[string]json.RawMessage
	if err := json.Unmarshal(rawResult, &inner); err != nil {
		return nil, &upstream.FormatError{Err: err}
	}
	for _, field := range []string{"markdown", "success", "links"} {
		if _, ok := inner[field]; !ok {
			return nil, &upstream.ShapeError{Missing: "result." + field}
		}
	}

	// Null markdown defaults to the empty string.
	var markdown *string
	if err := json.Unmarshal(inner["markdown"], &markdown); err != nil {
		return nil, &upstream.FormatError{Err: err}
	}
	content := ""
	if markdown != nil {
		content = *markdown
	}

	var success bool
	if err := json.Unmarshal(inner["success"], &success); err != nil {
		return nil, &upstream.FormatError{Err: err}
	}

	var rawLinks map[string][]rawLink
	if err := json.Unmarshal(inner["links"], &rawLinks); err != nil {
		return nil, &upstream.FormatError{Err: err}
	}

	var topError string
	if raw, ok := envelope["error"]; ok {
		_ = json.Unmarshal(raw, &topError)
	}

	return &CrawlResult{
		URL:     url,
		Content: content,
		Status:  "completed",
		Success: success,
		Error:   topError,
		Links: Links{
			Internal: reshapeLinks(rawLinks["internal"]),
			External: reshapeLinks(rawLinks["external"]),
		},
	}, nil
}

func reshapeLinks(raw []rawLink) []LinkRef {
	links := make([]LinkRef, 0, len(raw))
	for _, l := range raw {
		ref := LinkRef{}
		if l.Href != nil {
			ref.Href = *l.Href
		}
		if l.Text != nil {
			ref.Text = *l.Text
		}
		if l.Title != nil {
			ref.Title = *l.Title
		}
		links = append(links, ref)
	}
	return links
}

// failedResponse is the single error-response builder every failure path
// converges on.
func (c *RealLoader) failedResponse(url, message string) *CrawlResponse {
	slog.Error("Crawl failed", "url", url, "err", message)
	return &CrawlResponse{
		Results: []CrawlResult{{
			URL:     url,
			Content: "",
			Status:  "failed",
			Success: false,
			Error:   message,
			Links:   emptyLinks(),
		}},
		TotalCount: 1,
	}
}

// Close releases the loader's HTTP connections.
func (c *RealLoader) Close() error {
	c.client.CloseIdleConnections()
	return nil
}
