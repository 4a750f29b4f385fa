package tools

import (
	"context"
	"fmt"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/mindframe-mcp/mindframe/internal/recommend"
	"github.com/mindframe-mcp/mindframe/internal/thinking"
)

// RecommendFeedbackTool handles the think_recommend_feedback MCP tool.
// Outcomes feed the acceptance reports only — never the scoring weights.
type RecommendFeedbackTool struct {
	manager *thinking.Manager
	history *recommend.History
}

// NewRecommendFeedbackTool creates a RecommendFeedbackTool.
func NewRecommendFeedbackTool(manager *thinking.Manager, history *recommend.History) *RecommendFeedbackTool {
	return &RecommendFeedbackTool{manager: manager, history: history}
}

// Definition returns the MCP tool definition for registration.
func (t *RecommendFeedbackTool) Definition() mcp.Tool {
	return mcp.NewTool("think_recommend_feedback",
		mcp.WithDescription(
			"Record whether a recommended template was accepted or rejected. "+
				"This feeds the acceptance-rate reports (think_recommend_stats); "+
				"it does not change future scoring.",
		),
		mcp.WithString("template_id",
			mcp.Required(),
			mcp.Description("The template that was recommended"),
		),
		mcp.WithString("subject",
			mcp.Required(),
			mcp.Description("The problem description the recommendation was for"),
		),
		mcp.WithBoolean("accepted",
			mcp.Required(),
			mcp.Description("Whether the user went with the recommendation"),
		),
	)
}

// Handle processes the think_recommend_feedback tool call.
func (t *RecommendFeedbackTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	templateID := req.GetString("template_id", "")
	subject := req.GetString("subject", "")
	accepted := req.GetBool("accepted", false)

	if strings.TrimSpace(templateID) == "" || strings.TrimSpace(subject) == "" {
		return mcp.NewToolResultError("'template_id' and 'subject' are required"), nil
	}

	tpl, err := t.manager.Template(templateID)
	if err != nil {
		return toolError(err)
	}

	t.history.Record(recommend.Outcome{
		Subject:    subject,
		TemplateID: tpl.ID,
		Category:   tpl.Category,
		Accepted:   accepted,
		At:         timeNow().UTC(),
	})

	verdict := "rejected"
	if accepted {
		verdict = "accepted"
	}
	return mcp.NewToolResultText(fmt.Sprintf(
		"Recorded: `%s` %s for %q. %d outcome(s) on record.",
		tpl.ID, verdict, subject, t.history.Len(),
	)), nil
}
