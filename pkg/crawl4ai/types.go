package crawl4ai

// CacheModes are the cache modes accepted by the crawl service.
var CacheModes = []string{"bypass", "enabled", "disabled", "read_only", "write_only"}

// DefaultCacheMode is applied when the caller does not pick one.
const DefaultCacheMode = "enabled"

// CrawlParams are the validated inputs for one crawl.
type CrawlParams struct {
	URL string
	// TimeoutSeconds overrides the configured request timeout when > 0.
	TimeoutSeconds int
	CacheMode      string
	ExtraHeaders   map[string]string
}

// LinkRef is one link found on the crawled page.
type LinkRef struct {
	Href  string `json:"href" jsonschema:"description=Link URL"`
	Text  string `json:"text" jsonschema:"description=Link text content"`
	Title string `json:"title,omitempty" jsonschema:"description=Link title attribute"`
}

// Links groups the links found on a page by locality.
type Links struct {
	Internal []LinkRef `json:"internal"`
	External []LinkRef `json:"external"`
}

// CrawlResult is the outcome for one URL. Status and Success are set
// independently: a "completed" crawl can still report Success=false when
// the crawler reached the page but extraction failed.
type CrawlResult struct {
	URL     string `json:"url" jsonschema:"description=Crawled URL"`
	Content string `json:"content" jsonschema:"description=Extracted content in markdown format"`
	Status  string `json:"status" jsonschema:"description=Crawl status (completed or failed)"`
	Success bool   `json:"success" jsonschema:"description=Whether the crawl succeeded"`
	Error   string `json:"error,omitempty" jsonschema:"description=Error message if the crawl failed"`
	Links   Links  `json:"links" jsonschema:"description=Internal and external links with metadata"`
}

// CrawlResponse holds the crawl outcome; currently always one result.
type CrawlResponse struct {
	Results    []CrawlResult `json:"results"`
	TotalCount int           `json:"total_count" jsonschema:"description=Number of URLs crawled"`
}

func emptyLinks() Links {
	return Links{Internal: []LinkRef{}, External: []LinkRef{}}
}
