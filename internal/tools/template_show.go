package tools

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/mindframe-mcp/mindframe/internal/thinking"
)

// TemplateShowTool handles the think_template_show MCP tool.
type TemplateShowTool struct {
	manager *thinking.Manager
}

// NewTemplateShowTool creates a TemplateShowTool.
func NewTemplateShowTool(manager *thinking.Manager) *TemplateShowTool {
	return &TemplateShowTool{manager: manager}
}

// Definition returns the MCP tool definition for registration.
func (t *TemplateShowTool) Definition() mcp.Tool {
	return mcp.NewTool("think_template_show",
		mcp.WithDescription("Show a template's full step list, metadata, and available artifacts."),
		mcp.WithString("template_id",
			mcp.Required(),
			mcp.Description("Template id, e.g. 'root-cause' or 'template-3'"),
		),
	)
}

// Handle processes the think_template_show tool call.
func (t *TemplateShowTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	id := req.GetString("template_id", "")
	if strings.TrimSpace(id) == "" {
		return mcp.NewToolResultError("'template_id' is required"), nil
	}

	tpl, err := t.manager.Template(id)
	if err != nil {
		return toolError(err)
	}

	var b strings.Builder
	fmt.Fprintf(&b, "# %s\n\n", tpl.Name)
	fmt.Fprintf(&b, "**ID:** `%s`\n**Category:** %s\n**Description:** %s\n", tpl.ID, tpl.Category, tpl.Description)
	if tpl.IsBuiltIn {
		b.WriteString("**Origin:** built-in\n")
	}
	if tpl.UsageCount > 0 {
		fmt.Fprintf(&b, "**Used:** %d time(s)\n", tpl.UsageCount)
	}

	b.WriteString("\n## Steps\n\n")
	for _, step := range tpl.Steps {
		fmt.Fprintf(&b, "%d. %s\n", step.Order, step.Content)
	}

	if len(tpl.Artifacts) > 0 {
		b.WriteString("\n## Artifacts\n\n")
		names := make([]string, 0, len(tpl.Artifacts))
		for name := range tpl.Artifacts {
			names = append(names, name)
		}
		sort.Strings(names)
		for _, name := range names {
			fmt.Fprintf(&b, "- `%s` — %s\n", name, tpl.Artifacts[name].Description)
		}
		b.WriteString("\nFetch an artifact verbatim with `think_artifact_show`.")
	}

	return mcp.NewToolResultText(b.String()), nil
}
