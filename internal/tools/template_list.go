package tools

import (
	"context"
	"fmt"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/mindframe-mcp/mindframe/internal/thinking"
)

// TemplateListTool handles the think_template_list MCP tool.
type TemplateListTool struct {
	manager *thinking.Manager
}

// NewTemplateListTool creates a TemplateListTool.
func NewTemplateListTool(manager *thinking.Manager) *TemplateListTool {
	return &TemplateListTool{manager: manager}
}

// Definition returns the MCP tool definition for registration.
func (t *TemplateListTool) Definition() mcp.Tool {
	return mcp.NewTool("think_template_list",
		mcp.WithDescription(
			"List available thinking templates (built-in and custom), "+
				"optionally filtered by category.",
		),
		mcp.WithString("category",
			mcp.Description("Filter by category"),
			mcp.Enum("analysis", "planning", "debugging", "decision", "research", "verification", "custom"),
		),
	)
}

// Handle processes the think_template_list tool call.
func (t *TemplateListTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	category := req.GetString("category", "")

	var templates []thinking.Template
	if category != "" {
		cat := thinking.Category(category)
		if err := thinking.ValidateCategory(cat); err != nil {
			return toolError(err)
		}
		templates = t.manager.TemplatesByCategory(cat)
	} else {
		templates = t.manager.Templates()
	}

	if len(templates) == 0 {
		return mcp.NewToolResultText("No templates found for that filter."), nil
	}

	var b strings.Builder
	fmt.Fprintf(&b, "# Thinking Templates (%d)\n\n", len(templates))
	for _, tpl := range templates {
		origin := "custom"
		if tpl.IsBuiltIn {
			origin = "built-in"
		}
		fmt.Fprintf(&b, "- **%s** (`%s`, %s, %s) — %s [%d steps", tpl.Name, tpl.ID, tpl.Category, origin, tpl.Description, len(tpl.Steps))
		if tpl.UsageCount > 0 {
			fmt.Fprintf(&b, ", used %d time(s)", tpl.UsageCount)
		}
		b.WriteString("]\n")
	}
	b.WriteString("\nShow a template with `think_template_show`, or describe your problem to `think_template_recommend`.")

	return mcp.NewToolResultText(b.String()), nil
}
