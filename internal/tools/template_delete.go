package tools

import (
	"context"
	"fmt"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/mindframe-mcp/mindframe/internal/thinking"
)

// TemplateDeleteTool handles the think_template_delete MCP tool.
// Built-in templates are protected — only custom templates can go.
type TemplateDeleteTool struct {
	manager *thinking.Manager
}

// NewTemplateDeleteTool creates a TemplateDeleteTool.
func NewTemplateDeleteTool(manager *thinking.Manager) *TemplateDeleteTool {
	return &TemplateDeleteTool{manager: manager}
}

// Definition returns the MCP tool definition for registration.
func (t *TemplateDeleteTool) Definition() mcp.Tool {
	return mcp.NewTool("think_template_delete",
		mcp.WithDescription(
			"Delete a custom thinking template. Built-in templates cannot be deleted. "+
				"Existing sessions keep their own copy of the steps and are unaffected.",
		),
		mcp.WithString("template_id",
			mcp.Required(),
			mcp.Description("Id of the custom template to delete"),
		),
	)
}

// Handle processes the think_template_delete tool call.
func (t *TemplateDeleteTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	id := req.GetString("template_id", "")
	if strings.TrimSpace(id) == "" {
		return mcp.NewToolResultError("'template_id' is required"), nil
	}

	if err := t.manager.DeleteTemplate(id); err != nil {
		return toolError(err)
	}

	return mcp.NewToolResultText(fmt.Sprintf("Template `%s` deleted.", id)), nil
}
