package tools

import (
	"context"
	"fmt"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/mindframe-mcp/mindframe/internal/verification"
)

// ChainListTool handles the verify_chain_list MCP tool.
type ChainListTool struct {
	manager *verification.Manager
}

// NewChainListTool creates a ChainListTool.
func NewChainListTool(manager *verification.Manager) *ChainListTool {
	return &ChainListTool{manager: manager}
}

// Definition returns the MCP tool definition for registration.
func (t *ChainListTool) Definition() mcp.Tool {
	return mcp.NewTool("verify_chain_list",
		mcp.WithDescription("List all verification chains with their overall status."),
	)
}

// Handle processes the verify_chain_list tool call.
func (t *ChainListTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	chains := t.manager.Chains()
	if len(chains) == 0 {
		return mcp.NewToolResultText("No verification chains yet. Create one with `verify_chain_create`."), nil
	}

	var b strings.Builder
	fmt.Fprintf(&b, "# Verification Chains (%d)\n\n", len(chains))
	for _, chain := range chains {
		fmt.Fprintf(&b, "- %s `%s` — %s (%d steps, %s)\n",
			stepMarker(chain.OverallStatus), chain.ID, chain.Subject, len(chain.Steps), chain.OverallStatus)
	}
	b.WriteString("\nShow a chain in full with `verify_chain_show`.")

	return mcp.NewToolResultText(b.String()), nil
}
