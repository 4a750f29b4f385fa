package tools

import (
	"context"
	"fmt"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/mindframe-mcp/mindframe/internal/recommend"
	"github.com/mindframe-mcp/mindframe/internal/thinking"
)

// RecommendTool handles the think_template_recommend MCP tool.
// It turns a free-text problem description into a ranked, category-
// diversified list of template candidates.
type RecommendTool struct {
	manager *thinking.Manager
}

// NewRecommendTool creates a RecommendTool.
func NewRecommendTool(manager *thinking.Manager) *RecommendTool {
	return &RecommendTool{manager: manager}
}

// Definition returns the MCP tool definition for registration.
func (t *RecommendTool) Definition() mcp.Tool {
	return mcp.NewTool("think_template_recommend",
		mcp.WithDescription(
			"Recommend thinking templates for a problem described in free text. "+
				"Scoring is keyword/pattern based and deterministic. "+
				"After the user picks (or rejects) a template, report it with "+
				"think_recommend_feedback so acceptance statistics stay meaningful.",
		),
		mcp.WithString("description",
			mcp.Required(),
			mcp.Description("The problem in the user's own words, e.g. 'our importer is not working after the schema change'"),
		),
		mcp.WithNumber("max_results",
			mcp.Description("How many candidates to return (default 3)"),
		),
	)
}

// Handle processes the think_template_recommend tool call.
func (t *RecommendTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	description := req.GetString("description", "")
	if strings.TrimSpace(description) == "" {
		return mcp.NewToolResultError("'description' is required — describe the problem in free text"), nil
	}
	maxResults := int(req.GetFloat("max_results", 3))

	candidates := t.manager.Templates()
	if len(candidates) == 0 {
		return mcp.NewToolResultError("no templates available — create one with think_template_create"), nil
	}

	match := recommend.Identify(description)
	factors := recommend.DetectFactors(description)
	ranked := recommend.RecommendTop(description, candidates, maxResults)
	ranked = recommend.AdjustForFactors(ranked, factors)

	var b strings.Builder
	fmt.Fprintf(&b, "# Template Recommendations\n\n")
	fmt.Fprintf(&b, "**Detected category:** %s (confidence %.2f)\n", match.Category, match.Confidence)
	if len(match.Keywords) > 0 {
		fmt.Fprintf(&b, "**Matched keywords:** %s\n", strings.Join(match.Keywords, ", "))
	}

	if len(factors) > 0 {
		b.WriteString("\n## Context Signals\n\n")
		for _, f := range factors {
			fmt.Fprintf(&b, "- %s (%s, weight %.1f) — triggered by %q\n", f.Kind, f.Impact, f.Weight, f.Trigger)
		}
	}

	b.WriteString("\n## Candidates\n\n")
	for i, rec := range ranked {
		fmt.Fprintf(&b, "%d. **%s** (`%s`, %s, score %.1f)\n   %s\n",
			i+1, rec.Template.Name, rec.Template.ID, rec.Template.Category, rec.Score, rec.Reason)
	}

	fmt.Fprintf(&b, "\nStart the chosen one with `think_session_start`, "+
		"then record the choice with `think_recommend_feedback`.")

	return mcp.NewToolResultText(b.String()), nil
}
