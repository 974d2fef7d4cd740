package crawl4ai

import (
	"encoding/json"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

const (
	defaultBaseURL = "http://localhost:11235"
	defaultTimeout = 300 * time.Second
)

// Config holds the Crawl4AI connection settings and the static
// crawler-behavior parameters forwarded with every request.
type Config struct {
	BaseURL  string
	APIToken string

	// Crawler behavior params
	Headless           bool
	Verbose            bool
	WordCountThreshold int
	WaitFor            string
	JSCode             []string
	Timeout            time.Duration
}

// ConfigFromEnv builds a Config from environment variables.
func ConfigFromEnv() (Config, error) {
	cfg := Config{
		BaseURL:  defaultBaseURL,
		Headless: true,
		Timeout:  defaultTimeout,
	}

	if v := os.Getenv("CRAWL4AI_URL"); v != "" {
		cfg.BaseURL = strings.TrimRight(v, "/")
	}
	cfg.APIToken = os.Getenv("CRAWL4AI_API_TOKEN")
	if v := os.Getenv("CRAWL4AI_HEADLESS"); v != "" {
		cfg.Headless = strings.EqualFold(v, "true")
	}
	if v := os.Getenv("CRAWL4AI_VERBOSE"); v != "" {
		cfg.Verbose = strings.EqualFold(v, "true")
	}
	if v := os.Getenv("CRAWL4AI_WORD_COUNT_THRESHOLD"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return Config{}, fmt.Errorf("invalid CRAWL4AI_WORD_COUNT_THRESHOLD %q: %w", v, err)
		}
		cfg.WordCountThreshold = n
	}
	cfg.WaitFor = os.Getenv("CRAWL4AI_WAIT_FOR")
	if v := os.Getenv("CRAWL4AI_JS_CODE"); v != "" {
		if err := json.Unmarshal([]byte(v), &cfg.JSCode); err != nil {
			return Config{}, fmt.Errorf("invalid CRAWL4AI_JS_CODE (expected a JSON array of strings): %w", err)
		}
	}
	if v := os.Getenv("CRAWL4AI_TIMEOUT"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return Config{}, fmt.Errorf("invalid CRAWL4AI_TIMEOUT %q: %w", v, err)
		}
		cfg.Timeout = time.Duration(n) * time.Second
	}

	return cfg, nil
}
