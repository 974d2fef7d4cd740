package youtube

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

const (
	defaultMaxRetries = 3
	defaultTimeout    = 30 * time.Second
	defaultLanguage   = "en"
)

// Config holds the transcript client settings.
type Config struct {
	// MaxRetries is parsed for parity with the original deployment knobs
	// but no request is retried automatically.
	MaxRetries      int
	Timeout         time.Duration
	CookiesEnabled  bool
	DefaultLanguage string
	Proxy           string
	// APIKey is reserved for the Data API; transcript retrieval does not
	// need it.
	APIKey string
}

// ConfigFromEnv builds a Config from environment variables.
func ConfigFromEnv() (Config, error) {
	cfg := Config{
		MaxRetries:      defaultMaxRetries,
		Timeout:         defaultTimeout,
		DefaultLanguage: defaultLanguage,
	}

	if v := os.Getenv("YOUTUBE_MAX_RETRIES"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return Config{}, fmt.Errorf("invalid YOUTUBE_MAX_RETRIES %q: %w", v, err)
		}
		cfg.MaxRetries = n
	}
	if v := os.Getenv("YOUTUBE_TIMEOUT"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return Config{}, fmt.Errorf("invalid YOUTUBE_TIMEOUT %q: %w", v, err)
		}
		cfg.Timeout = time.Duration(n) * time.Second
	}
	if v := os.Getenv("YOUTUBE_COOKIES_ENABLED"); v != "" {
		cfg.CookiesEnabled = strings.EqualFold(v, "true")
	}
	if v := os.Getenv("YOUTUBE_DEFAULT_LANGUAGE"); v != "" {
		cfg.DefaultLanguage = v
	}
	cfg.Proxy = os.Getenv("YOUTUBE_PROXY")
	cfg.APIKey = os.Getenv("YOUTUBE_API_KEY")

	return cfg, nil
}
