// Package upstream defines the error kinds shared by the upstream HTTP
// clients: a non-2xx response, an unparsable body, and a parsed but
// structurally incomplete body.
package upstream

import (
	"fmt"
	"strings"
)

// StatusError reports a non-2xx HTTP status from an upstream service.
type StatusError struct {
	Code int
	Body string
}

func (e *StatusError) Error() string {
	if e.Body == "" {
		return fmt.Sprintf("upstream returned HTTP %d", e.Code)
	}
	return fmt.Sprintf("upstream returned HTTP %d: %s", e.Code, truncate(e.Body, 200))
}

// FormatError reports an upstream body that could not be decoded.
type FormatError struct {
	Err error
}

func (e *FormatError) Error() string {
	return fmt.Sprintf("invalid upstream response body: %v", e.Err)
}

func (e *FormatError) Unwrap() error { return e.Err }

// ShapeError reports a decoded body that is missing a required field.
// It fails before any result object is constructed, so partial results
// never leak downstream.
type ShapeError struct {
	Missing string
}

func (e *ShapeError) Error() string {
	return fmt.Sprintf("upstream response is missing required field %q", e.Missing)
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return strings.TrimSpace(s[:n]) + "..."
}
