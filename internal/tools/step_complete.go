package tools

import (
	"context"
	"fmt"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/mindframe-mcp/mindframe/internal/thinking"
)

// StepCompleteTool handles the think_step_complete MCP tool.
// It is the workhorse of the session flow: records the thinking for a
// step, marks it complete, and advances the forward-only cursor.
type StepCompleteTool struct {
	manager *thinking.Manager
}

// NewStepCompleteTool creates a StepCompleteTool.
func NewStepCompleteTool(manager *thinking.Manager) *StepCompleteTool {
	return &StepCompleteTool{manager: manager}
}

// Definition returns the MCP tool definition for registration.
func (t *StepCompleteTool) Definition() mcp.Tool {
	return mcp.NewTool("think_step_complete",
		mcp.WithDescription(
			"Record your thinking for a session step and mark it complete. "+
				"Completing a step moves the session cursor forward; completing the "+
				"last step closes the session. Re-submitting an earlier step rewrites "+
				"its content without moving the cursor back.",
		),
		mcp.WithString("session_id",
			mcp.Required(),
			mcp.Description("The session being worked through"),
		),
		mcp.WithString("step_id",
			mcp.Required(),
			mcp.Description("The step to complete (ids are shown by think_session_show)"),
		),
		mcp.WithString("content",
			mcp.Required(),
			mcp.Description("Your actual thinking for this step — not a placeholder"),
		),
	)
}

// Handle processes the think_step_complete tool call.
func (t *StepCompleteTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	sessionID := req.GetString("session_id", "")
	stepID := req.GetString("step_id", "")
	content := req.GetString("content", "")

	if strings.TrimSpace(sessionID) == "" || strings.TrimSpace(stepID) == "" {
		return mcp.NewToolResultError("'session_id' and 'step_id' are required"), nil
	}
	if strings.TrimSpace(content) == "" {
		return mcp.NewToolResultError("'content' is required — record your actual thinking for the step"), nil
	}

	step, sess, err := t.manager.UpdateStep(sessionID, stepID, content)
	if err != nil {
		return toolError(err)
	}

	if sess.EndTime != nil {
		response := fmt.Sprintf(
			"# Step Completed: %d\n\n"+
				"🎉 **Session complete!**\n\n"+
				"**ID:** `%s`\n"+
				"**Steps:** %d/%d done\n\n"+
				"## Final State\n\n%s\n"+
				"Review the full session with `think_session_show`.",
			step.Order, sess.ID, len(sess.Steps), len(sess.Steps),
			renderSessionProgress(sess),
		)
		return mcp.NewToolResultText(response), nil
	}

	current := sess.Steps[sess.CurrentStepIndex]
	response := fmt.Sprintf(
		"# Step Completed: %d\n\n"+
			"## Progress\n\n%s\n"+
			"## Next Step\n\n"+
			"Work on step %d: %s\n\n"+
			"Then call `think_step_complete` with step_id `%s`.",
		step.Order,
		renderSessionProgress(sess),
		current.Order, current.Content, current.ID,
	)
	return mcp.NewToolResultText(response), nil
}
