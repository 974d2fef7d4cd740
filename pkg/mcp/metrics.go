package mcp

import (
	"context"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	toolCallsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "web_mcp_tool_calls_total",
			Help: "Number of tool invocations by tool and outcome.",
		},
		[]string{"tool", "outcome"},
	)

	toolCallDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "web_mcp_tool_call_duration_seconds",
			Help:    "Tool invocation duration including the upstream call.",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"tool"},
	)
)

// instrumented wraps one upstream invocation with call/duration metrics.
func instrumented[T any](ctx context.Context, tool string, fn func(context.Context) (T, error)) (T, error) {
	start := time.Now()
	result, err := fn(ctx)
	toolCallDuration.WithLabelValues(tool).Observe(time.Since(start).Seconds())

	outcome := "success"
	if err != nil {
		outcome = "error"
	}
	toolCallsTotal.WithLabelValues(tool, outcome).Inc()

	return result, err
}
