package mcp

import (
	"fmt"
	"strings"

	"github.com/websuite/web-mcp/pkg/crawl4ai"
	"github.com/websuite/web-mcp/pkg/searxng"
	"github.com/websuite/web-mcp/pkg/youtube"
)

// renderSearchResults formats a search response as a ranked list summary.
func renderSearchResults(response *searxng.SearchResponse) string {
	var b strings.Builder

	fmt.Fprintf(&b, "Found %d results (showing top %d)\n", response.TotalCount, len(response.Results))

	for i, result := range response.Results {
		fmt.Fprintf(&b, "\n%d. %s\nURL: %s\nDescription: %s\n", i+1, result.Title, result.URL, result.Snippet)
	}

	return b.String()
}

// renderCrawlResults formats crawl results; failed results render as
// failure text rather than an error.
func renderCrawlResults(response *crawl4ai.CrawlResponse) string {
	var b strings.Builder

	for _, result := range response.Results {
		if result.Success {
			fmt.Fprintf(&b, "URL: %s\n\nContent:\n%s\n---\n", result.URL, result.Content)
			b.WriteString("\nInternal Links:\n")
			writeLinks(&b, result.Links.Internal)
			b.WriteString("\nExternal Links:\n")
			writeLinks(&b, result.Links.External)
		} else {
			fmt.Fprintf(&b, "Failed to crawl %s\nError: %s\n---\n", result.URL, result.Error)
		}
	}

	return b.String()
}

func writeLinks(b *strings.Builder, links []crawl4ai.LinkRef) {
	for _, link := range links {
		fmt.Fprintf(b, "- %s (%s)", link.Text, link.Href)
		if link.Title != "" {
			fmt.Fprintf(b, " [%s]", link.Title)
		}
		b.WriteString("\n")
	}
}

// renderTranscript formats a transcript with its timestamped segments.
func renderTranscript(response *youtube.TranscriptResponse) string {
	var b strings.Builder

	fmt.Fprintf(&b, "Language: %s\n\nTranscript:\n%s\n\nTimestamped Segments:\n", response.Language, response.Text)

	for _, segment := range response.Segments {
		fmt.Fprintf(&b, "[%.1fs - %.1fs] %s\n", segment.Start, segment.Start+segment.Duration, segment.Text)
	}

	return b.String()
}
