package mcp

import (
	"context"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/websuite/web-mcp/pkg/crawl4ai"
	"github.com/websuite/web-mcp/pkg/resultutil"
	"github.com/websuite/web-mcp/pkg/searxng"
	"github.com/websuite/web-mcp/pkg/tooldef"
	"github.com/websuite/web-mcp/pkg/youtube"
)

// requirePrimary checks the tool's identifying parameter ahead of full
// schema validation, mirroring the dispatch-level missing-parameter check.
func requirePrimary(args map[string]any, name string) *mcp.CallToolResult {
	if _, ok := args[name]; !ok {
		return mcp.NewToolResultError(fmt.Sprintf("Missing required parameter: '%s'", name))
	}
	return nil
}

// validateArgs runs the declared schema over the raw arguments, returning
// an error result before any upstream call fires.
func validateArgs(def tooldef.ToolDef, args map[string]any) *mcp.CallToolResult {
	if err := def.ValidateArgs(args); err != nil {
		return mcp.NewToolResultError(err.Error())
	}
	return nil
}

// SearchHandler handles search tool calls against the given loader.
func SearchHandler(loader searxng.Loader) func(context.Context, mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		args := req.GetArguments()
		if res := requirePrimary(args, "query"); res != nil {
			return res, nil
		}
		if res := validateArgs(SearchToolDef(), args); res != nil {
			return res, nil
		}

		params := searxng.SearchParams{
			Query:     req.GetString("query", ""),
			Limit:     req.GetInt("limit", 3),
			TimeRange: req.GetString("time_range", ""),
			Page:      req.GetInt("page", 1),
		}

		response, err := instrumented(ctx, "search", func(ctx context.Context) (*searxng.SearchResponse, error) {
			return loader.Search(ctx, params)
		})
		if err != nil {
			return resultutil.NewErrorResult(fmt.Errorf("Search failed: %w", err)).ToMCPResult()
		}

		return resultutil.NewStructuredResult(response, renderSearchResults(response)).ToMCPResult()
	}
}

// CrawlHandler handles crawl tool calls against the given loader. The
// loader folds every upstream failure into a failed result, so the handler
// only ever renders data.
func CrawlHandler(loader crawl4ai.Loader) func(context.Context, mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		args := req.GetArguments()
		if res := requirePrimary(args, "url"); res != nil {
			return res, nil
		}
		if res := validateArgs(CrawlToolDef(), args); res != nil {
			return res, nil
		}

		params := crawl4ai.CrawlParams{
			URL:            req.GetString("url", ""),
			TimeoutSeconds: req.GetInt("timeout", 0),
			CacheMode:      req.GetString("cache_mode", ""),
			ExtraHeaders:   stringMapArg(args, "extra_headers"),
		}

		response, _ := instrumented(ctx, "crawl_extract", func(ctx context.Context) (*crawl4ai.CrawlResponse, error) {
			return loader.Crawl(ctx, params), nil
		})

		return resultutil.NewStructuredResult(response, renderCrawlResults(response)).ToMCPResult()
	}
}

// TranscriptHandler handles transcript tool calls against the given
// extractor.
func TranscriptHandler(extractor *youtube.Extractor) func(context.Context, mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		args := req.GetArguments()
		if res := requirePrimary(args, "url"); res != nil {
			return res, nil
		}
		if res := validateArgs(TranscriptToolDef(), args); res != nil {
			return res, nil
		}

		url := req.GetString("url", "")
		language := req.GetString("language", "")

		response, err := instrumented(ctx, "youtube_transcript", func(ctx context.Context) (*youtube.TranscriptResponse, error) {
			return extractor.GetTranscript(ctx, url, language)
		})
		if err != nil {
			return resultutil.NewErrorResult(fmt.Errorf("Transcript extraction failed: %w", err)).ToMCPResult()
		}

		return resultutil.NewStructuredResult(response, renderTranscript(response)).ToMCPResult()
	}
}

// stringMapArg extracts an optional string-map argument. Non-string values
// were already rejected by schema validation.
func stringMapArg(args map[string]any, key string) map[string]string {
	raw, ok := args[key]
	if !ok {
		return nil
	}
	switch m := raw.(type) {
	case map[string]string:
		return m
	case map[string]any:
		out := make(map[string]string, len(m))
		for k, v := range m {
			if s, ok := v.(string); ok {
				out[k] = s
			}
		}
		return out
	default:
		return nil
	}
}
