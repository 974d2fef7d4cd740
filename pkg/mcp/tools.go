package mcp

import (
	"github.com/mark3labs/mcp-go/mcp"

	"github.com/websuite/web-mcp/pkg/crawl4ai"
	"github.com/websuite/web-mcp/pkg/searxng"
	"github.com/websuite/web-mcp/pkg/tooldef"
	"github.com/websuite/web-mcp/pkg/youtube"
)

// SearchToolDef declares the search tool's parameter schema.
func SearchToolDef() tooldef.ToolDef {
	return tooldef.ToolDef{
		Name:        "search",
		Title:       "Web Search",
		Description: "Search the web using SearxNG",
		ReadOnly:    true,
		Idempotent:  true,
		OpenWorld:   true,
		Params: []tooldef.ParamDef{
			{
				Name:        "query",
				Type:        tooldef.ParamTypeString,
				Description: "Search query string",
				Required:    true,
			},
			{
				Name:          "limit",
				Type:          tooldef.ParamTypeInteger,
				Description:   "Number of results (1-50, default 3)",
				Minimum:       tooldef.Float(1),
				Maximum:       tooldef.Float(50),
				DefaultNumber: tooldef.Float(3),
			},
			{
				Name:        "time_range",
				Type:        tooldef.ParamTypeString,
				Description: "Time range filter. Filter data from selected time range to now",
				Enum:        []string{"day", "week", "month", "year"},
			},
			{
				Name:          "page",
				Type:          tooldef.ParamTypeInteger,
				Description:   "Page number for pagination",
				Minimum:       tooldef.Float(1),
				DefaultNumber: tooldef.Float(1),
			},
		},
	}
}

// CrawlToolDef declares the crawl tool's parameter schema.
func CrawlToolDef() tooldef.ToolDef {
	return tooldef.ToolDef{
		Name:        "crawl_extract",
		Title:       "Web Content Extraction",
		Description: "Extract content from web pages using Crawl4AI",
		ReadOnly:    true,
		OpenWorld:   true,
		Params: []tooldef.ParamDef{
			{
				Name:        "url",
				Type:        tooldef.ParamTypeURL,
				Description: "URL to crawl",
				Required:    true,
			},
			{
				Name:        "timeout",
				Type:        tooldef.ParamTypeInteger,
				Description: "Request timeout in seconds",
				Minimum:     tooldef.Float(1),
			},
			{
				Name:          "cache_mode",
				Type:          tooldef.ParamTypeString,
				Description:   "Cache mode for crawling, the default value is 'enabled'",
				Enum:          crawl4ai.CacheModes,
				DefaultString: crawl4ai.DefaultCacheMode,
			},
			{
				Name:        "extra_headers",
				Type:        tooldef.ParamTypeStringMap,
				Description: "Additional HTTP headers for the request",
			},
		},
	}
}

// TranscriptToolDef declares the transcript tool's parameter schema. The
// url parameter is a plain string because a bare 11-character video ID is
// accepted too.
func TranscriptToolDef() tooldef.ToolDef {
	return tooldef.ToolDef{
		Name:        "youtube_transcript",
		Title:       "YouTube Transcript",
		Description: "Extract transcript from YouTube videos",
		ReadOnly:    true,
		Idempotent:  true,
		OpenWorld:   true,
		Params: []tooldef.ParamDef{
			{
				Name:        "url",
				Type:        tooldef.ParamTypeString,
				Description: "YouTube video URL or ID",
				Required:    true,
			},
			{
				Name:        "language",
				Type:        tooldef.ParamTypeString,
				Description: "Preferred language code (e.g., 'en', 'es'). If not available, will try to translate from available languages.",
			},
		},
	}
}

// AllToolDefs returns the declared tools in their stable registration order.
func AllToolDefs() []tooldef.ToolDef {
	return []tooldef.ToolDef{
		SearchToolDef(),
		CrawlToolDef(),
		TranscriptToolDef(),
	}
}

func CreateSearchTool() mcp.Tool {
	def := SearchToolDef()
	tool := def.ToMCPTool()
	applyOutputSchema[searxng.SearchResponse](&tool)
	return tool
}

func CreateCrawlTool() mcp.Tool {
	def := CrawlToolDef()
	tool := def.ToMCPTool()
	applyOutputSchema[crawl4ai.CrawlResponse](&tool)
	return tool
}

func CreateTranscriptTool() mcp.Tool {
	def := TranscriptToolDef()
	tool := def.ToMCPTool()
	applyOutputSchema[youtube.TranscriptResponse](&tool)
	return tool
}

func applyOutputSchema[T any](tool *mcp.Tool) {
	mcp.WithOutputSchema[T]()(tool)
}

// AllTools returns every tool this server registers, in a stable order.
// When adding a new tool, register it here and in SetupTools.
func AllTools() []mcp.Tool {
	return []mcp.Tool{
		CreateSearchTool(),
		CreateCrawlTool(),
		CreateTranscriptTool(),
	}
}
