package main

import (
	"context"
	"flag"
	"log"
	"log/slog"
	"os"

	"github.com/prometheus/common/promslog"

	"github.com/mark3labs/mcp-go/server"

	"github.com/websuite/web-mcp/pkg/crawl4ai"
	"github.com/websuite/web-mcp/pkg/mcp"
	"github.com/websuite/web-mcp/pkg/searxng"
	"github.com/websuite/web-mcp/pkg/youtube"
)

func main() {
	// Parse command line flags
	var listen = flag.String("listen", "", "Listen address for HTTP mode (e.g., :9100, 127.0.0.1:8080); stdio mode when empty")
	var logLevel = flag.String("log-level", "info", "Log level: debug, info, warn, error")

	var searxngURL = flag.String("searxng-url", "", "SearxNG instance URL (overrides SEARXNG_URL)")
	var crawl4aiURL = flag.String("crawl4ai-url", "", "Crawl4AI service URL (overrides CRAWL4AI_URL)")
	var youtubeLanguage = flag.String("youtube-language", "", "Default transcript language (overrides YOUTUBE_DEFAULT_LANGUAGE)")
	flag.Parse()

	// Configure slog with specified log level
	configureLogging(*logLevel)

	// Flags override the corresponding environment variable before adapter
	// construction.
	applyEnvOverride("SEARXNG_URL", *searxngURL)
	applyEnvOverride("CRAWL4AI_URL", *crawl4aiURL)
	applyEnvOverride("YOUTUBE_DEFAULT_LANGUAGE", *youtubeLanguage)

	// Construct all adapters up front; either every configured adapter
	// starts or the process exits non-zero.
	opts, err := buildAdapters()
	if err != nil {
		log.Fatalf("Failed to initialize adapters: %v", err)
	}
	defer mcp.CloseAdapters(opts)

	mcpServer, err := mcp.NewMCPServer(opts)
	if err != nil {
		log.Fatalf("Failed to create MCP server: %v", err)
	}

	slog.Info("Starting server", "listen", *listen)

	// Choose server mode based on flags
	if *listen != "" {
		// HTTP mode
		ctx := context.Background()
		if err := mcp.Serve(ctx, mcpServer, *listen); err != nil {
			log.Fatalf("HTTP server failed: %v", err)
		}
	} else {
		// Start server on stdio (default mode)
		stdioServer := server.NewStdioServer(mcpServer)
		if err := stdioServer.Listen(context.Background(), os.Stdin, os.Stdout); err != nil {
			log.Fatalf("Server failed: %v", err)
		}
	}
}

func applyEnvOverride(key, value string) {
	if value == "" {
		return
	}
	if err := os.Setenv(key, value); err != nil {
		log.Fatalf("Failed to set %s: %v", key, err)
	}
}

// buildAdapters constructs the three upstream adapters from the
// environment.
func buildAdapters() (mcp.WebMCPOptions, error) {
	searxngCfg, err := searxng.ConfigFromEnv()
	if err != nil {
		return mcp.WebMCPOptions{}, err
	}

	crawlCfg, err := crawl4ai.ConfigFromEnv()
	if err != nil {
		return mcp.WebMCPOptions{}, err
	}

	youtubeCfg, err := youtube.ConfigFromEnv()
	if err != nil {
		return mcp.WebMCPOptions{}, err
	}

	transcriptAPI, err := youtube.NewInnertubeLoader(youtubeCfg)
	if err != nil {
		return mcp.WebMCPOptions{}, err
	}

	return mcp.WebMCPOptions{
		Searcher:    searxng.NewSearchClient(searxngCfg),
		Crawler:     crawl4ai.NewCrawlClient(crawlCfg),
		Transcripts: youtube.NewExtractor(youtubeCfg, transcriptAPI),
	}, nil
}

// configureLogging sets up the slog logger with the specified log level
func configureLogging(levelStr string) {
	level := promslog.NewLevel()
	err := level.Set(levelStr)
	if err != nil {
		log.Fatal(err.Error())
	}

	format := promslog.NewFormat()
	err = format.Set("logfmt")
	if err != nil {
		log.Fatal(err.Error())
	}

	logger := promslog.New(&promslog.Config{
		Level:  level,
		Format: format,
		Style:  promslog.GoKitStyle,
	})
	slog.SetDefault(logger)
}
