// Package tools implements the MCP tool handlers for mindframe.
//
// Each tool is a struct that receives its dependencies via the
// constructor and exposes Definition() for registration plus Handle()
// compatible with mcp-go's CallToolRequest signature.
//
// Design principles:
// - SRP: each file = one tool
// - DIP: tools depend on the managers, never on the blobstore directly
// - Error split: domain validation/not-found conditions become caller-facing
//   error results; only internal faults surface as Go errors
package tools

import (
	"fmt"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/mindframe-mcp/mindframe/internal/faults"
	"github.com/mindframe-mcp/mindframe/internal/thinking"
	"github.com/mindframe-mcp/mindframe/internal/verification"
)

// toolError converts a domain error into the right MCP shape: validation
// and not-found conditions are reported to the caller as error results,
// anything else propagates as an internal error.
func toolError(err error) (*mcp.CallToolResult, error) {
	if faults.IsValidation(err) || faults.IsNotFound(err) {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return nil, err
}

// optionalString returns the argument value if the caller supplied it,
// nil otherwise. The distinction carries merge semantics: an absent
// argument preserves stored state, an empty string overwrites it.
func optionalString(req mcp.CallToolRequest, key string) *string {
	raw, ok := req.GetArguments()[key]
	if !ok {
		return nil
	}
	s, ok := raw.(string)
	if !ok {
		return nil
	}
	return &s
}

// optionalFloat returns the argument value if supplied, nil otherwise.
func optionalFloat(req mcp.CallToolRequest, key string) *float64 {
	raw, ok := req.GetArguments()[key]
	if !ok {
		return nil
	}
	switch v := raw.(type) {
	case float64:
		return &v
	case int:
		f := float64(v)
		return &f
	}
	return nil
}

// renderSessionProgress renders the step list of a session with
// completion markers and the cursor position.
func renderSessionProgress(sess *thinking.Session) string {
	var b strings.Builder
	for i, step := range sess.Steps {
		marker := "⬜"
		if step.IsComplete {
			marker = "✅"
		} else if i == sess.CurrentStepIndex {
			marker = "🔄"
		}
		fmt.Fprintf(&b, "  %s %d. %s\n", marker, step.Order, step.Content)
	}
	return b.String()
}

// renderChainSteps renders the step list of a verification chain.
func renderChainSteps(chain *verification.Chain) string {
	if len(chain.Steps) == 0 {
		return "  (no steps yet)\n"
	}
	var b strings.Builder
	for i, step := range chain.Steps {
		fmt.Fprintf(&b, "  %s %d. [%s] %s (confidence %.2f)\n",
			stepMarker(step.Status), i+1, step.Type, step.Claim, step.Confidence)
		if step.Verification != "" {
			fmt.Fprintf(&b, "       %s\n", step.Verification)
		}
		if step.CounterExample != "" {
			fmt.Fprintf(&b, "       counterexample: %s\n", step.CounterExample)
		}
	}
	return b.String()
}

func stepMarker(status verification.StepStatus) string {
	switch status {
	case verification.StatusVerified:
		return "✅"
	case verification.StatusFailed:
		return "❌"
	case verification.StatusInProgress:
		return "🔄"
	case verification.StatusSkipped:
		return "⏭️"
	default:
		return "⬜"
	}
}
