package tools

import (
	"context"
	"fmt"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/mindframe-mcp/mindframe/internal/verification"
)

// ChainStepUpdateTool handles the verify_step_update MCP tool.
//
// Evidence and counter_example follow merge semantics: omitting them
// keeps what is stored, passing them (even as "") overwrites.
type ChainStepUpdateTool struct {
	manager *verification.Manager
}

// NewChainStepUpdateTool creates a ChainStepUpdateTool.
func NewChainStepUpdateTool(manager *verification.Manager) *ChainStepUpdateTool {
	return &ChainStepUpdateTool{manager: manager}
}

// Definition returns the MCP tool definition for registration.
func (t *ChainStepUpdateTool) Definition() mcp.Tool {
	return mcp.NewTool("verify_step_update",
		mcp.WithDescription(
			"Update a verification step with the result of checking its claim. "+
				"Omitted evidence/counter_example fields keep their stored values; "+
				"pass an empty string to clear one.",
		),
		mcp.WithString("chain_id",
			mcp.Required(),
			mcp.Description("The chain containing the step"),
		),
		mcp.WithString("step_id",
			mcp.Required(),
			mcp.Description("The step to update"),
		),
		mcp.WithString("verification",
			mcp.Required(),
			mcp.Description("The rationale: how the claim was checked and what was found"),
		),
		mcp.WithString("status",
			mcp.Required(),
			mcp.Description("Outcome of the check"),
			mcp.Enum("pending", "in_progress", "verified", "failed", "skipped"),
		),
		mcp.WithNumber("confidence",
			mcp.Description("Confidence in the outcome, 0..1 (unchanged when omitted)"),
		),
		mcp.WithString("evidence",
			mcp.Description("Supporting evidence (unchanged when omitted)"),
		),
		mcp.WithString("counter_example",
			mcp.Description("Counterexample found during verification (unchanged when omitted)"),
		),
	)
}

// Handle processes the verify_step_update tool call.
func (t *ChainStepUpdateTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	chainID := req.GetString("chain_id", "")
	stepID := req.GetString("step_id", "")
	if strings.TrimSpace(chainID) == "" || strings.TrimSpace(stepID) == "" {
		return mcp.NewToolResultError("'chain_id' and 'step_id' are required"), nil
	}

	params := verification.UpdateStepParams{
		Verification:   req.GetString("verification", ""),
		Status:         verification.StepStatus(req.GetString("status", "")),
		Confidence:     optionalFloat(req, "confidence"),
		Evidence:       optionalString(req, "evidence"),
		CounterExample: optionalString(req, "counter_example"),
	}

	step, chain, err := t.manager.UpdateStep(chainID, stepID, params)
	if err != nil {
		return toolError(err)
	}

	var closing string
	if chain.OverallStatus == verification.StatusVerified {
		closing = "\n🎉 **All claims verified — the chain is complete.**"
	} else if chain.OverallStatus == verification.StatusFailed {
		closing = "\n❌ **The chain has a failed claim.** Review it before relying on the subject."
	}

	response := fmt.Sprintf(
		"# Step Updated\n\n"+
			"**Step:** `%s` → %s (confidence %.2f)\n"+
			"**Overall status:** %s\n\n"+
			"## Chain\n\n%s%s",
		step.ID, step.Status, step.Confidence, chain.OverallStatus,
		renderChainSteps(chain), closing,
	)
	return mcp.NewToolResultText(response), nil
}
