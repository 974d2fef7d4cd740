package mcp

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/websuite/web-mcp/pkg/crawl4ai"
	"github.com/websuite/web-mcp/pkg/searxng"
	"github.com/websuite/web-mcp/pkg/youtube"
)

// MockedSearchLoader implements searxng.Loader with overridable functions
// and records whether Search was invoked.
type MockedSearchLoader struct {
	SearchFunc func(ctx context.Context, params searxng.SearchParams) (*searxng.SearchResponse, error)
	Called     bool
	GotParams  searxng.SearchParams
}

var _ searxng.Loader = (*MockedSearchLoader)(nil)

func (m *MockedSearchLoader) Search(ctx context.Context, params searxng.SearchParams) (*searxng.SearchResponse, error) {
	m.Called = true
	m.GotParams = params
	return m.SearchFunc(ctx, params)
}

func (m *MockedSearchLoader) Close() error { return nil }

// MockedCrawlLoader implements crawl4ai.Loader.
type MockedCrawlLoader struct {
	CrawlFunc func(ctx context.Context, params crawl4ai.CrawlParams) *crawl4ai.CrawlResponse
	Called    bool
	GotParams crawl4ai.CrawlParams
}

var _ crawl4ai.Loader = (*MockedCrawlLoader)(nil)

func (m *MockedCrawlLoader) Crawl(ctx context.Context, params crawl4ai.CrawlParams) *crawl4ai.CrawlResponse {
	m.Called = true
	m.GotParams = params
	return m.CrawlFunc(ctx, params)
}

func (m *MockedCrawlLoader) Close() error { return nil }

// MockedTrackLoader implements youtube.Loader for building test extractors.
type MockedTrackLoader struct {
	ListTracksFunc func(ctx context.Context, videoID string) ([]youtube.TranscriptTrack, error)
	FetchTrackFunc func(ctx context.Context, track youtube.TranscriptTrack, translateTo string) ([]youtube.TranscriptSegment, error)
	Called         bool
}

var _ youtube.Loader = (*MockedTrackLoader)(nil)

func (m *MockedTrackLoader) ListTracks(ctx context.Context, videoID string) ([]youtube.TranscriptTrack, error) {
	m.Called = true
	return m.ListTracksFunc(ctx, videoID)
}

func (m *MockedTrackLoader) FetchTrack(ctx context.Context, track youtube.TranscriptTrack, translateTo string) ([]youtube.TranscriptSegment, error) {
	return m.FetchTrackFunc(ctx, track, translateTo)
}

func (m *MockedTrackLoader) Close() error { return nil }

func newMockRequest(name string, args map[string]any) mcp.CallToolRequest {
	return mcp.CallToolRequest{
		Params: mcp.CallToolParams{
			Name:      name,
			Arguments: args,
		},
	}
}

func resultText(t *testing.T, result *mcp.CallToolResult) string {
	t.Helper()
	if len(result.Content) == 0 {
		t.Fatal("result has no content")
	}
	text, ok := result.Content[0].(mcp.TextContent)
	if !ok {
		t.Fatalf("expected text content, got %T", result.Content[0])
	}
	return text.Text
}

func TestSearchHandlerMissingQuery(t *testing.T) {
	loader := &MockedSearchLoader{}
	handler := SearchHandler(loader)

	result, err := handler(context.Background(), newMockRequest("search", map[string]any{}))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !result.IsError {
		t.Fatal("expected an error result")
	}
	if got := resultText(t, result); got != "Missing required parameter: 'query'" {
		t.Errorf("unexpected message: %q", got)
	}
	if loader.Called {
		t.Error("upstream must not be invoked when the query is missing")
	}
}

func TestSearchHandlerRejectsInvalidArgs(t *testing.T) {
	tests := []struct {
		name string
		args map[string]any
	}{
		{"limit above maximum", map[string]any{"query": "go", "limit": 100}},
		{"limit not integral", map[string]any{"query": "go", "limit": 2.5}},
		{"bad time_range", map[string]any{"query": "go", "time_range": "decade"}},
		{"page below minimum", map[string]any{"query": "go", "page": 0}},
		{"query wrong type", map[string]any{"query": 7}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			loader := &MockedSearchLoader{}
			result, err := SearchHandler(loader)(context.Background(), newMockRequest("search", tt.args))
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if !result.IsError {
				t.Fatal("expected an error result")
			}
			if loader.Called {
				t.Error("upstream must not be invoked for invalid arguments")
			}
		})
	}
}

func TestSearchHandlerSuccess(t *testing.T) {
	loader := &MockedSearchLoader{
		SearchFunc: func(ctx context.Context, params searxng.SearchParams) (*searxng.SearchResponse, error) {
			return &searxng.SearchResponse{
				Results: []searxng.SearchResult{
					{Title: "Go", URL: "https://go.dev", Snippet: "The Go language"},
				},
				TotalCount: 42,
			}, nil
		},
	}

	result, err := SearchHandler(loader)(context.Background(), newMockRequest("search", map[string]any{
		"query": "golang", "limit": 5, "time_range": "week", "page": 2,
	}))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.IsError {
		t.Fatalf("unexpected error result: %s", resultText(t, result))
	}
	if loader.GotParams.Query != "golang" || loader.GotParams.Limit != 5 ||
		loader.GotParams.TimeRange != "week" || loader.GotParams.Page != 2 {
		t.Errorf("params not forwarded: %+v", loader.GotParams)
	}

	text := resultText(t, result)
	if !strings.Contains(text, "Found 42 results (showing top 1)") {
		t.Errorf("missing count line: %q", text)
	}
	if !strings.Contains(text, "1. Go\nURL: https://go.dev\nDescription: The Go language") {
		t.Errorf("missing result entry: %q", text)
	}
	if result.StructuredContent == nil {
		t.Error("expected structured content alongside the text")
	}
}

func TestSearchHandlerDefaults(t *testing.T) {
	loader := &MockedSearchLoader{
		SearchFunc: func(ctx context.Context, params searxng.SearchParams) (*searxng.SearchResponse, error) {
			return &searxng.SearchResponse{Results: []searxng.SearchResult{}}, nil
		},
	}

	_, err := SearchHandler(loader)(context.Background(), newMockRequest("search", map[string]any{"query": "golang"}))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if loader.GotParams.Limit != 3 || loader.GotParams.Page != 1 {
		t.Errorf("expected limit 3 and page 1 defaults, got %+v", loader.GotParams)
	}
}

func TestSearchHandlerUpstreamError(t *testing.T) {
	loader := &MockedSearchLoader{
		SearchFunc: func(ctx context.Context, params searxng.SearchParams) (*searxng.SearchResponse, error) {
			return nil, errors.New("searxng returned HTTP status 502")
		},
	}

	result, err := SearchHandler(loader)(context.Background(), newMockRequest("search", map[string]any{"query": "golang"}))
	if err != nil {
		t.Fatalf("handler must not raise, got %v", err)
	}
	if !result.IsError {
		t.Fatal("expected an error result")
	}
	if got := resultText(t, result); !strings.Contains(got, "Search failed: searxng returned HTTP status 502") {
		t.Errorf("unexpected message: %q", got)
	}
}

func TestCrawlHandlerMissingURL(t *testing.T) {
	loader := &MockedCrawlLoader{}
	result, err := CrawlHandler(loader)(context.Background(), newMockRequest("crawl_extract", map[string]any{}))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !result.IsError {
		t.Fatal("expected an error result")
	}
	if got := resultText(t, result); got != "Missing required parameter: 'url'" {
		t.Errorf("unexpected message: %q", got)
	}
	if loader.Called {
		t.Error("upstream must not be invoked when the url is missing")
	}
}

func TestCrawlHandlerRejectsNonHTTPURL(t *testing.T) {
	loader := &MockedCrawlLoader{}
	result, err := CrawlHandler(loader)(context.Background(), newMockRequest("crawl_extract", map[string]any{
		"url": "ftp://example.com/file",
	}))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !result.IsError {
		t.Fatal("expected an error result")
	}
	if loader.Called {
		t.Error("upstream must not be invoked for an invalid URL")
	}
}

func TestCrawlHandlerSuccess(t *testing.T) {
	loader := &MockedCrawlLoader{
		CrawlFunc: func(ctx context.Context, params crawl4ai.CrawlParams) *crawl4ai.CrawlResponse {
			return &crawl4ai.CrawlResponse{
				Results: []crawl4ai.CrawlResult{{
					URL:     params.URL,
					Content: "page body",
					Status:  "completed",
					Success: true,
					Links: crawl4ai.Links{
						Internal: []crawl4ai.LinkRef{{Href: "/a", Text: "A", Title: "Page A"}},
						External: []crawl4ai.LinkRef{{Href: "https://b.example", Text: "B"}},
					},
				}},
				TotalCount: 1,
			}
		},
	}

	result, err := CrawlHandler(loader)(context.Background(), newMockRequest("crawl_extract", map[string]any{
		"url":           "https://example.com",
		"timeout":       15,
		"cache_mode":    "bypass",
		"extra_headers": map[string]any{"X-Custom": "1"},
	}))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.IsError {
		t.Fatalf("unexpected error result: %s", resultText(t, result))
	}
	if loader.GotParams.TimeoutSeconds != 15 || loader.GotParams.CacheMode != "bypass" {
		t.Errorf("params not forwarded: %+v", loader.GotParams)
	}
	if loader.GotParams.ExtraHeaders["X-Custom"] != "1" {
		t.Errorf("extra headers not forwarded: %+v", loader.GotParams.ExtraHeaders)
	}

	text := resultText(t, result)
	if !strings.Contains(text, "URL: https://example.com\n\nContent:\npage body") {
		t.Errorf("missing content block: %q", text)
	}
	if !strings.Contains(text, "- A (/a) [Page A]") {
		t.Errorf("missing internal link line: %q", text)
	}
	if !strings.Contains(text, "- B (https://b.example)") {
		t.Errorf("missing external link line: %q", text)
	}
}

func TestCrawlHandlerFailedResultIsNotAnError(t *testing.T) {
	loader := &MockedCrawlLoader{
		CrawlFunc: func(ctx context.Context, params crawl4ai.CrawlParams) *crawl4ai.CrawlResponse {
			return &crawl4ai.CrawlResponse{
				Results: []crawl4ai.CrawlResult{{
					URL:     params.URL,
					Status:  "failed",
					Success: false,
					Error:   "Request timed out: context deadline exceeded",
					Links:   crawl4ai.Links{Internal: []crawl4ai.LinkRef{}, External: []crawl4ai.LinkRef{}},
				}},
				TotalCount: 1,
			}
		},
	}

	result, err := CrawlHandler(loader)(context.Background(), newMockRequest("crawl_extract", map[string]any{
		"url": "https://example.com",
	}))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.IsError {
		t.Fatal("a failed crawl is data, not a tool error")
	}
	text := resultText(t, result)
	if !strings.Contains(text, "Failed to crawl https://example.com\nError: Request timed out") {
		t.Errorf("missing failure text: %q", text)
	}
}

func TestTranscriptHandlerMissingURL(t *testing.T) {
	tracks := &MockedTrackLoader{}
	extractor := youtube.NewExtractor(youtube.Config{DefaultLanguage: "en"}, tracks)

	result, err := TranscriptHandler(extractor)(context.Background(), newMockRequest("youtube_transcript", map[string]any{}))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !result.IsError {
		t.Fatal("expected an error result")
	}
	if got := resultText(t, result); got != "Missing required parameter: 'url'" {
		t.Errorf("unexpected message: %q", got)
	}
	if tracks.Called {
		t.Error("upstream must not be invoked when the url is missing")
	}
}

func TestTranscriptHandlerSuccess(t *testing.T) {
	tracks := &MockedTrackLoader{
		ListTracksFunc: func(ctx context.Context, videoID string) ([]youtube.TranscriptTrack, error) {
			return []youtube.TranscriptTrack{{LanguageCode: "en"}}, nil
		},
		FetchTrackFunc: func(ctx context.Context, track youtube.TranscriptTrack, translateTo string) ([]youtube.TranscriptSegment, error) {
			return []youtube.TranscriptSegment{
				{Text: "hello", Start: 0, Duration: 1.5},
				{Text: "world", Start: 1.5, Duration: 2},
			}, nil
		},
	}
	extractor := youtube.NewExtractor(youtube.Config{DefaultLanguage: "en"}, tracks)

	result, err := TranscriptHandler(extractor)(context.Background(), newMockRequest("youtube_transcript", map[string]any{
		"url": "https://youtu.be/dQw4w9WgXcQ",
	}))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.IsError {
		t.Fatalf("unexpected error result: %s", resultText(t, result))
	}

	text := resultText(t, result)
	if !strings.Contains(text, "Language: en") {
		t.Errorf("missing language line: %q", text)
	}
	if !strings.Contains(text, "Transcript:\nhello world") {
		t.Errorf("missing joined transcript: %q", text)
	}
	if !strings.Contains(text, "[0.0s - 1.5s] hello") || !strings.Contains(text, "[1.5s - 3.5s] world") {
		t.Errorf("missing timestamped segments: %q", text)
	}
}

func TestTranscriptHandlerInvalidVideoURL(t *testing.T) {
	tracks := &MockedTrackLoader{}
	extractor := youtube.NewExtractor(youtube.Config{DefaultLanguage: "en"}, tracks)

	result, err := TranscriptHandler(extractor)(context.Background(), newMockRequest("youtube_transcript", map[string]any{
		"url": "https://example.com/not-a-video",
	}))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !result.IsError {
		t.Fatal("expected an error result")
	}
	if got := resultText(t, result); !strings.Contains(got, "Transcript extraction failed: could not extract video ID from URL") {
		t.Errorf("unexpected message: %q", got)
	}
}

func TestTranscriptHandlerDisabledTranscripts(t *testing.T) {
	tracks := &MockedTrackLoader{
		ListTracksFunc: func(ctx context.Context, videoID string) ([]youtube.TranscriptTrack, error) {
			return nil, &youtube.TranscriptError{
				Kind:    youtube.KindDisabled,
				VideoID: videoID,
				Msg:     "no caption data",
			}
		},
	}
	extractor := youtube.NewExtractor(youtube.Config{DefaultLanguage: "en"}, tracks)

	result, err := TranscriptHandler(extractor)(context.Background(), newMockRequest("youtube_transcript", map[string]any{
		"url": "dQw4w9WgXcQ",
	}))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !result.IsError {
		t.Fatal("expected an error result")
	}
	if got := resultText(t, result); !strings.Contains(got, "transcripts are disabled for video dQw4w9WgXcQ") {
		t.Errorf("unexpected message: %q", got)
	}
}

func TestStringMapArg(t *testing.T) {
	args := map[string]any{
		"headers": map[string]any{"A": "1", "B": "2"},
	}
	got := stringMapArg(args, "headers")
	if len(got) != 2 || got["A"] != "1" || got["B"] != "2" {
		t.Errorf("unexpected map: %v", got)
	}
	if stringMapArg(args, "missing") != nil {
		t.Error("expected nil for an absent key")
	}
}
