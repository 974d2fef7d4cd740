package searxng

import (
	"fmt"
	"os"
	"strings"
)

// Config holds the SearxNG connection settings.
type Config struct {
	// BaseURL is the address of the SearxNG instance. Required.
	BaseURL string
}

// ConfigFromEnv builds a Config from environment variables.
func ConfigFromEnv() (Config, error) {
	baseURL := os.Getenv("SEARXNG_URL")
	if baseURL == "" {
		return Config{}, fmt.Errorf("SEARXNG_URL environment variable is required")
	}
	return Config{BaseURL: strings.TrimRight(baseURL, "/")}, nil
}
