package tools

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/mindframe-mcp/mindframe/internal/thinking"
)

// SessionShowTool handles the think_session_show MCP tool.
type SessionShowTool struct {
	manager *thinking.Manager
}

// NewSessionShowTool creates a SessionShowTool.
func NewSessionShowTool(manager *thinking.Manager) *SessionShowTool {
	return &SessionShowTool{manager: manager}
}

// Definition returns the MCP tool definition for registration.
func (t *SessionShowTool) Definition() mcp.Tool {
	return mcp.NewTool("think_session_show",
		mcp.WithDescription("Show a session's progress: step states, recorded content, and the current cursor."),
		mcp.WithString("session_id",
			mcp.Required(),
			mcp.Description("The session to show"),
		),
	)
}

// Handle processes the think_session_show tool call.
func (t *SessionShowTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	sessionID := req.GetString("session_id", "")
	if strings.TrimSpace(sessionID) == "" {
		return mcp.NewToolResultError("'session_id' is required"), nil
	}

	sess, err := t.manager.Session(sessionID)
	if err != nil {
		return toolError(err)
	}

	var b strings.Builder
	fmt.Fprintf(&b, "# Session `%s`\n\n", sess.ID)
	fmt.Fprintf(&b, "**Template:** `%s`\n", sess.TemplateID)
	fmt.Fprintf(&b, "**Started:** %s\n", sess.StartTime.Format(time.RFC3339))
	if sess.EndTime != nil {
		fmt.Fprintf(&b, "**Completed:** %s\n", sess.EndTime.Format(time.RFC3339))
	} else {
		fmt.Fprintf(&b, "**Current step:** %d of %d\n", sess.CurrentStepIndex+1, len(sess.Steps))
	}

	b.WriteString("\n## Steps\n\n")
	for i, step := range sess.Steps {
		marker := "⬜"
		if step.IsComplete {
			marker = "✅"
		} else if i == sess.CurrentStepIndex {
			marker = "🔄"
		}
		// A completed step's content is the recorded thinking; an
		// incomplete step still shows the template prompt.
		fmt.Fprintf(&b, "%s **%d.** (`%s`)\n", marker, step.Order, step.ID)
		fmt.Fprintf(&b, "   > %s\n", strings.ReplaceAll(step.Content, "\n", "\n   > "))
	}

	return mcp.NewToolResultText(b.String()), nil
}
