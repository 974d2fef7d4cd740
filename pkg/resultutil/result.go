package resultutil

import (
	"github.com/mark3labs/mcp-go/mcp"
)

// Result represents a common tool execution result that is converted to an
// MCP result at the handler boundary.
type Result struct {
	// Data holds the structured result data (only set for successful results)
	Data any
	// Text holds the human-readable rendering of Data
	Text string
	// Error holds any error that occurred (nil for successful results)
	Error error
}

// NewTextResult creates a successful result carrying rendered text only.
func NewTextResult(text string) *Result {
	return &Result{Text: text}
}

// NewStructuredResult creates a successful result carrying both the
// structured response object and its rendered text.
func NewStructuredResult(data any, text string) *Result {
	return &Result{Data: data, Text: text}
}

// NewErrorResult creates an error result with the given error.
func NewErrorResult(err error) *Result {
	return &Result{Error: err}
}

// ToMCPResult converts the Result to an MCP CallToolResult.
// Returns (result, nil) following the MCP pattern where errors
// are encoded in the result, not the error return value.
func (r *Result) ToMCPResult() (*mcp.CallToolResult, error) {
	if r.Error != nil {
		//nolint:nilerr // MCP pattern encodes errors in result, not error return
		return mcp.NewToolResultError(r.Error.Error()), nil
	}
	if r.Data != nil {
		return mcp.NewToolResultStructured(r.Data, r.Text), nil
	}
	return mcp.NewToolResultText(r.Text), nil
}

// IsError returns true if the result represents an error.
func (r *Result) IsError() bool {
	return r.Error != nil
}
