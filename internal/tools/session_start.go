package tools

import (
	"context"
	"fmt"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/mindframe-mcp/mindframe/internal/thinking"
)

// SessionStartTool handles the think_session_start MCP tool.
// It instantiates a template into a fresh session with its own copy of
// the steps.
type SessionStartTool struct {
	manager *thinking.Manager
}

// NewSessionStartTool creates a SessionStartTool.
func NewSessionStartTool(manager *thinking.Manager) *SessionStartTool {
	return &SessionStartTool{manager: manager}
}

// Definition returns the MCP tool definition for registration.
func (t *SessionStartTool) Definition() mcp.Tool {
	return mcp.NewTool("think_session_start",
		mcp.WithDescription(
			"Start a thinking session from a template. The session gets its own "+
				"copy of the template steps; work through them in order with "+
				"think_step_complete. Completing the last step closes the session.",
		),
		mcp.WithString("template_id",
			mcp.Required(),
			mcp.Description("Template to instantiate, e.g. 'first-principles'"),
		),
	)
}

// Handle processes the think_session_start tool call.
func (t *SessionStartTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	templateID := req.GetString("template_id", "")
	if strings.TrimSpace(templateID) == "" {
		return mcp.NewToolResultError("'template_id' is required — list templates with think_template_list"), nil
	}

	sess, err := t.manager.CreateSession(templateID)
	if err != nil {
		return toolError(err)
	}

	first := sess.Steps[sess.CurrentStepIndex]
	response := fmt.Sprintf(
		"# Session Started\n\n"+
			"**ID:** `%s`\n"+
			"**Template:** `%s`\n"+
			"**Steps:** %d\n\n"+
			"## Progress\n\n%s\n"+
			"## Next Step\n\n"+
			"Work on step %d: %s\n\n"+
			"When done, call `think_step_complete` with session_id `%s`, step_id `%s`, "+
			"and your thinking as content.",
		sess.ID, sess.TemplateID, len(sess.Steps),
		renderSessionProgress(sess),
		first.Order, first.Content,
		sess.ID, first.ID,
	)
	return mcp.NewToolResultText(response), nil
}
