package tools

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/mindframe-mcp/mindframe/internal/verification"
)

// ChainShowTool handles the verify_chain_show MCP tool.
type ChainShowTool struct {
	manager *verification.Manager
}

// NewChainShowTool creates a ChainShowTool.
func NewChainShowTool(manager *verification.Manager) *ChainShowTool {
	return &ChainShowTool{manager: manager}
}

// Definition returns the MCP tool definition for registration.
func (t *ChainShowTool) Definition() mcp.Tool {
	return mcp.NewTool("verify_chain_show",
		mcp.WithDescription("Show a verification chain in full: every step with status, confidence, evidence, and counterexamples."),
		mcp.WithString("chain_id",
			mcp.Required(),
			mcp.Description("The chain to show"),
		),
	)
}

// Handle processes the verify_chain_show tool call.
func (t *ChainShowTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	chainID := req.GetString("chain_id", "")
	if strings.TrimSpace(chainID) == "" {
		return mcp.NewToolResultError("'chain_id' is required"), nil
	}

	chain, err := t.manager.Chain(chainID)
	if err != nil {
		return toolError(err)
	}

	var b strings.Builder
	fmt.Fprintf(&b, "# Chain `%s`\n\n", chain.ID)
	fmt.Fprintf(&b, "**Subject:** %s\n", chain.Subject)
	fmt.Fprintf(&b, "**Status:** %s\n", chain.OverallStatus)
	fmt.Fprintf(&b, "**Started:** %s\n", chain.StartTime.Format(time.RFC3339))
	if chain.EndTime != nil {
		fmt.Fprintf(&b, "**Verified:** %s\n", chain.EndTime.Format(time.RFC3339))
	}

	b.WriteString("\n## Steps\n\n")
	if len(chain.Steps) == 0 {
		b.WriteString("(no steps yet)\n")
	}
	for i, step := range chain.Steps {
		fmt.Fprintf(&b, "### %d. %s [%s] (`%s`)\n\n", i+1, step.Claim, step.Type, step.ID)
		fmt.Fprintf(&b, "- Status: %s %s\n- Confidence: %.2f\n", stepMarker(step.Status), step.Status, step.Confidence)
		if step.Verification != "" {
			fmt.Fprintf(&b, "- Verification: %s\n", step.Verification)
		}
		if step.Evidence != "" {
			fmt.Fprintf(&b, "- Evidence: %s\n", step.Evidence)
		}
		if step.CounterExample != "" {
			fmt.Fprintf(&b, "- Counterexample: %s\n", step.CounterExample)
		}
		b.WriteString("\n")
	}

	return mcp.NewToolResultText(b.String()), nil
}
