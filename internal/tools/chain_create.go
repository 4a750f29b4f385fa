package tools

import (
	"context"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/mindframe-mcp/mindframe/internal/verification"
)

// ChainCreateTool handles the verify_chain_create MCP tool.
type ChainCreateTool struct {
	manager *verification.Manager
}

// NewChainCreateTool creates a ChainCreateTool.
func NewChainCreateTool(manager *verification.Manager) *ChainCreateTool {
	return &ChainCreateTool{manager: manager}
}

// Definition returns the MCP tool definition for registration.
func (t *ChainCreateTool) Definition() mcp.Tool {
	return mcp.NewTool("verify_chain_create",
		mcp.WithDescription(
			"Start a verification chain for a subject: an ordered list of "+
				"claim/verification steps with a derived overall status. "+
				"Add steps with verify_step_add, then update each as you verify it.",
		),
		mcp.WithString("subject",
			mcp.Required(),
			mcp.Description("What is being verified, e.g. 'migration plan for the orders table'"),
		),
	)
}

// Handle processes the verify_chain_create tool call.
func (t *ChainCreateTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	subject := req.GetString("subject", "")

	chain, err := t.manager.CreateChain(subject)
	if err != nil {
		return toolError(err)
	}

	response := fmt.Sprintf(
		"# Verification Chain Created\n\n"+
			"**ID:** `%s`\n"+
			"**Subject:** %s\n"+
			"**Status:** %s\n\n"+
			"Add the first claim with `verify_step_add` using chain_id `%s`.",
		chain.ID, chain.Subject, chain.OverallStatus, chain.ID,
	)
	return mcp.NewToolResultText(response), nil
}
