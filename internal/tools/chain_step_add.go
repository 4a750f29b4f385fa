package tools

import (
	"context"
	"fmt"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/mindframe-mcp/mindframe/internal/verification"
)

// ChainStepAddTool handles the verify_step_add MCP tool.
type ChainStepAddTool struct {
	manager *verification.Manager
}

// NewChainStepAddTool creates a ChainStepAddTool.
func NewChainStepAddTool(manager *verification.Manager) *ChainStepAddTool {
	return &ChainStepAddTool{manager: manager}
}

// Definition returns the MCP tool definition for registration.
func (t *ChainStepAddTool) Definition() mcp.Tool {
	return mcp.NewTool("verify_step_add",
		mcp.WithDescription(
			"Append a claim/verification step to a chain. "+
				"Status defaults to pending and confidence to 0.5; "+
				"the chain's overall status is recomputed after every change.",
		),
		mcp.WithString("chain_id",
			mcp.Required(),
			mcp.Description("The chain to extend"),
		),
		mcp.WithString("type",
			mcp.Required(),
			mcp.Description("What kind of claim this is"),
			mcp.Enum("logical", "factual", "code", "mathematical", "consistency", "completeness", "custom"),
		),
		mcp.WithString("claim",
			mcp.Required(),
			mcp.Description("The claim being verified, stated precisely"),
		),
		mcp.WithString("verification",
			mcp.Description("How the claim was (or will be) checked"),
		),
		mcp.WithString("status",
			mcp.Description("Initial status (default: pending)"),
			mcp.Enum("pending", "in_progress", "verified", "failed", "skipped"),
		),
		mcp.WithNumber("confidence",
			mcp.Description("Confidence in the verification, 0..1 (default: 0.5)"),
		),
		mcp.WithString("evidence",
			mcp.Description("Supporting evidence, if any"),
		),
		mcp.WithString("counter_example",
			mcp.Description("A counterexample that weakens or refutes the claim, if found"),
		),
	)
}

// Handle processes the verify_step_add tool call.
func (t *ChainStepAddTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	chainID := req.GetString("chain_id", "")
	if strings.TrimSpace(chainID) == "" {
		return mcp.NewToolResultError("'chain_id' is required"), nil
	}

	params := verification.AddStepParams{
		Type:           verification.StepType(req.GetString("type", "")),
		Claim:          req.GetString("claim", ""),
		Verification:   req.GetString("verification", ""),
		Status:         verification.StepStatus(req.GetString("status", "")),
		Confidence:     optionalFloat(req, "confidence"),
		Evidence:       req.GetString("evidence", ""),
		CounterExample: req.GetString("counter_example", ""),
	}

	step, chain, err := t.manager.AddStep(chainID, params)
	if err != nil {
		return toolError(err)
	}

	response := fmt.Sprintf(
		"# Step Added\n\n"+
			"**Step ID:** `%s`\n"+
			"**Chain:** `%s`\n"+
			"**Overall status:** %s\n\n"+
			"## Chain\n\n%s\n"+
			"Update this step as verification progresses with `verify_step_update`.",
		step.ID, chain.ID, chain.OverallStatus,
		renderChainSteps(chain),
	)
	return mcp.NewToolResultText(response), nil
}
