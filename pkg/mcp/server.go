package mcp

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/mark3labs/mcp-go/server"

	"github.com/websuite/web-mcp/pkg/crawl4ai"
	"github.com/websuite/web-mcp/pkg/searxng"
	"github.com/websuite/web-mcp/pkg/youtube"
)

// WebMCPOptions carries the upstream adapters the server dispatches to.
// All adapters are constructed once at startup and live for the process
// lifetime; there is no mid-run reconfiguration.
type WebMCPOptions struct {
	Searcher    searxng.Loader
	Crawler     crawl4ai.Loader
	Transcripts *youtube.Extractor
}

const (
	mcpEndpoint            = "/mcp"
	healthEndpoint         = "/health"
	metricsEndpoint        = "/metrics"
	serverName             = "web-mcp"
	serverVersion          = "1.0.0"
	defaultShutdownTimeout = 10 * time.Second

	serverInstructions = `You are connected to a web-data server with three tools.

- search: full-text web search through a SearxNG instance. Use limit to
  bound the number of results and time_range (day/week/month/year) to
  restrict recency.
- crawl_extract: fetch a single page through Crawl4AI and return its
  content as markdown plus the internal and external links found on it.
  A failed crawl is reported as failure text, not an error.
- youtube_transcript: fetch the transcript of a YouTube video from its URL
  or bare 11-character ID, optionally translated into a requested language.

Prefer search to discover pages, then crawl_extract to read a specific one.`
)

func NewMCPServer(opts WebMCPOptions) (*server.MCPServer, error) {
	mcpServer := server.NewMCPServer(
		serverName,
		serverVersion,
		server.WithLogging(),
		server.WithToolCapabilities(true),
		server.WithInstructions(serverInstructions),
	)

	if err := SetupTools(mcpServer, opts); err != nil {
		return nil, err
	}

	return mcpServer, nil
}

func SetupTools(mcpServer *server.MCPServer, opts WebMCPOptions) error {
	if opts.Searcher == nil || opts.Crawler == nil || opts.Transcripts == nil {
		return errors.New("all adapters must be configured before the server starts")
	}

	mcpServer.AddTool(CreateSearchTool(), SearchHandler(opts.Searcher))
	mcpServer.AddTool(CreateCrawlTool(), CrawlHandler(opts.Crawler))
	mcpServer.AddTool(CreateTranscriptTool(), TranscriptHandler(opts.Transcripts))

	return nil
}

// CloseAdapters releases every adapter's resources. A failure closing one
// adapter is logged and does not prevent closing the others.
func CloseAdapters(opts WebMCPOptions) {
	type namedCloser struct {
		name  string
		close func() error
	}

	closers := []namedCloser{}
	if opts.Searcher != nil {
		closers = append(closers, namedCloser{"searxng", opts.Searcher.Close})
	}
	if opts.Crawler != nil {
		closers = append(closers, namedCloser{"crawl4ai", opts.Crawler.Close})
	}
	if opts.Transcripts != nil {
		closers = append(closers, namedCloser{"youtube", opts.Transcripts.Close})
	}

	for _, c := range closers {
		if err := c.close(); err != nil {
			slog.Error("Failed to close adapter", "adapter", c.name, "err", err)
		}
	}
}

func loggingMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		slog.Info("Incoming request", "method", r.Method, "path", r.URL.Path, "remote_addr", r.RemoteAddr)
		next.ServeHTTP(w, r)
	})
}

// Serve runs the server in streamable HTTP mode until a signal or context
// cancellation triggers a graceful shutdown.
func Serve(ctx context.Context, mcpServer *server.MCPServer, listenAddr string) error {
	mux := http.NewServeMux()

	httpServer := &http.Server{
		Addr:    listenAddr,
		Handler: loggingMiddleware(mux),
	}

	streamableHTTPServer := server.NewStreamableHTTPServer(mcpServer,
		server.WithStreamableHTTPServer(httpServer),
		server.WithStateLess(true),
	)
	mux.Handle(mcpEndpoint, streamableHTTPServer)
	mux.Handle("/", streamableHTTPServer)

	mux.Handle(metricsEndpoint, promhttp.Handler())

	mux.HandleFunc(healthEndpoint, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("OK"))
	})

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGHUP, syscall.SIGTERM)

	serverErr := make(chan error, 1)
	go func() {
		slog.Info("HTTP server starting", "listen_addr", listenAddr, "mcp_endpoint", mcpEndpoint)
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
	}()

	select {
	case sig := <-sigChan:
		slog.Warn("Received signal, initiating graceful shutdown", "signal", sig)
		cancel()
	case <-ctx.Done():
		slog.Warn("Context cancelled, initiating graceful shutdown")
	case err := <-serverErr:
		slog.Error("HTTP server error", "error", err)
		return err
	}

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), defaultShutdownTimeout)
	defer shutdownCancel()

	slog.Info("Shutting down HTTP server gracefully")
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		slog.Error("HTTP server shutdown error", "error", err)
		return err
	}

	slog.Info("HTTP server shutdown complete")
	return nil
}
