package searxng

// SearchParams are the validated inputs for a search.
type SearchParams struct {
	Query     string
	Limit     int
	TimeRange string
	Page      int
}

// SearchResult is a single search hit.
type SearchResult struct {
	Title   string `json:"title" jsonschema:"description=Title of the search result"`
	URL     string `json:"url" jsonschema:"description=URL of the search result"`
	Snippet string `json:"snippet" jsonschema:"description=Snippet/description of the search result"`
}

// SearchResponse holds the validated results of one search.
//
// TotalCount is the number of entries the upstream reported, which may
// exceed len(Results) when malformed entries were skipped. The mismatch is
// the upstream's reported-total semantic and is preserved as-is.
type SearchResponse struct {
	Results    []SearchResult `json:"results" jsonschema:"description=Search results in upstream rank order"`
	TotalCount int            `json:"total_count" jsonschema:"description=Number of results the upstream reported"`
	// Skipped counts entries discarded during per-entry validation.
	Skipped int `json:"-"`
}
