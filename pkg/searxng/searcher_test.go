package searxng

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/websuite/web-mcp/pkg/upstream"
)

func newTestLoader(handler http.HandlerFunc) (*RealLoader, *httptest.Server) {
	ts := httptest.NewServer(handler)
	return NewSearchClient(Config{BaseURL: ts.URL}), ts
}

func TestSearchBuildsQueryParams(t *testing.T) {
	var gotQuery, gotFormat, gotPage, gotTimeRange string
	loader, ts := newTestLoader(func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		gotQuery = q.Get("q")
		gotFormat = q.Get("format")
		gotPage = q.Get("pageno")
		gotTimeRange = q.Get("time_range")
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"results": []}`))
	})
	defer ts.Close()
	defer loader.Close()

	_, err := loader.Search(context.Background(), SearchParams{
		Query:     "golang testing",
		Page:      2,
		TimeRange: "week",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if gotQuery != "golang testing" {
		t.Errorf("expected q=golang testing, got %q", gotQuery)
	}
	if gotFormat != "json" {
		t.Errorf("expected format=json, got %q", gotFormat)
	}
	if gotPage != "2" {
		t.Errorf("expected pageno=2, got %q", gotPage)
	}
	if gotTimeRange != "week" {
		t.Errorf("expected time_range=week, got %q", gotTimeRange)
	}
}

func TestSearchOmitsEmptyTimeRange(t *testing.T) {
	var hasTimeRange bool
	loader, ts := newTestLoader(func(w http.ResponseWriter, r *http.Request) {
		hasTimeRange = r.URL.Query().Has("time_range")
		_, _ = w.Write([]byte(`{"results": []}`))
	})
	defer ts.Close()
	defer loader.Close()

	if _, err := loader.Search(context.Background(), SearchParams{Query: "go", Page: 1}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if hasTimeRange {
		t.Error("time_range must not be sent when unset")
	}
}

// Malformed entries are skipped, not failed, while TotalCount still counts
// them: the reported total deliberately reflects the upstream's count, not
// the number of validated results.
func TestSearchSkipsMalformedEntries(t *testing.T) {
	body := `{"results": [
		{"title": "First", "url": "https://example.com/1", "content": "one"},
		{"title": "No URL here"},
		{"title": "Third", "url": "https://example.com/3", "content": "three"}
	]}`
	loader, ts := newTestLoader(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(body))
	})
	defer ts.Close()
	defer loader.Close()

	resp, err := loader.Search(context.Background(), SearchParams{Query: "go", Page: 1})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(resp.Results) != 2 {
		t.Errorf("expected 2 surviving results, got %d", len(resp.Results))
	}
	if resp.TotalCount != 3 {
		t.Errorf("expected total_count 3, got %d", resp.TotalCount)
	}
	if resp.Skipped != 1 {
		t.Errorf("expected 1 skipped entry, got %d", resp.Skipped)
	}
	if resp.Results[0].Title != "First" || resp.Results[1].Title != "Third" {
		t.Errorf("expected upstream order preserved, got %+v", resp.Results)
	}
}

func TestSearchSkipsEntriesWithBadURLs(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"missing title", `{"results": [{"url": "https://example.com"}]}`},
		{"non-http scheme", `{"results": [{"title": "x", "url": "ftp://example.com"}]}`},
		{"relative url", `{"results": [{"title": "x", "url": "/relative/path"}]}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			loader, ts := newTestLoader(func(w http.ResponseWriter, r *http.Request) {
				_, _ = w.Write([]byte(tt.body))
			})
			defer ts.Close()
			defer loader.Close()

			resp, err := loader.Search(context.Background(), SearchParams{Query: "go", Page: 1})
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if len(resp.Results) != 0 {
				t.Errorf("expected entry to be skipped, got %+v", resp.Results)
			}
			if resp.TotalCount != 1 {
				t.Errorf("expected total_count 1, got %d", resp.TotalCount)
			}
		})
	}
}

func TestSearchDefaultsMissingSnippet(t *testing.T) {
	loader, ts := newTestLoader(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"results": [{"title": "x", "url": "https://example.com"}]}`))
	})
	defer ts.Close()
	defer loader.Close()

	resp, err := loader.Search(context.Background(), SearchParams{Query: "go", Page: 1})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if resp.Results[0].Snippet != "No description available" {
		t.Errorf("expected default snippet, got %q", resp.Results[0].Snippet)
	}
}

func TestSearchHTTPStatusError(t *testing.T) {
	loader, ts := newTestLoader(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusBadGateway)
	})
	defer ts.Close()
	defer loader.Close()

	_, err := loader.Search(context.Background(), SearchParams{Query: "go", Page: 1})
	var statusErr *upstream.StatusError
	if !errors.As(err, &statusErr) {
		t.Fatalf("expected *upstream.StatusError, got %v", err)
	}
	if statusErr.Code != http.StatusBadGateway {
		t.Errorf("expected status 502, got %d", statusErr.Code)
	}
}

func TestSearchInvalidJSONBody(t *testing.T) {
	loader, ts := newTestLoader(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("<html>not json</html>"))
	})
	defer ts.Close()
	defer loader.Close()

	_, err := loader.Search(context.Background(), SearchParams{Query: "go", Page: 1})
	var formatErr *upstream.FormatError
	if !errors.As(err, &formatErr) {
		t.Fatalf("expected *upstream.FormatError, got %v", err)
	}
}

func TestConfigFromEnvRequiresBaseURL(t *testing.T) {
	t.Setenv("SEARXNG_URL", "")
	if _, err := ConfigFromEnv(); err == nil {
		t.Fatal("expected error when SEARXNG_URL is unset")
	}

	t.Setenv("SEARXNG_URL", "http://localhost:8888/")
	cfg, err := ConfigFromEnv()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.BaseURL != "http://localhost:8888" {
		t.Errorf("expected trailing slash trimmed, got %q", cfg.BaseURL)
	}
}
