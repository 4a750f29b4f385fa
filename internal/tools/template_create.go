package tools

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/mindframe-mcp/mindframe/internal/thinking"
)

// TemplateCreateTool handles the think_template_create MCP tool.
type TemplateCreateTool struct {
	manager *thinking.Manager
}

// NewTemplateCreateTool creates a TemplateCreateTool.
func NewTemplateCreateTool(manager *thinking.Manager) *TemplateCreateTool {
	return &TemplateCreateTool{manager: manager}
}

// Definition returns the MCP tool definition for registration.
func (t *TemplateCreateTool) Definition() mcp.Tool {
	return mcp.NewTool("think_template_create",
		mcp.WithDescription(
			"Create a custom thinking template: a named, ordered list of steps "+
				"that can later be instantiated into sessions. "+
				"Use this when none of the built-in templates fits the problem shape.",
		),
		mcp.WithString("name",
			mcp.Required(),
			mcp.Description("Template name, e.g. 'API Migration Checklist'"),
		),
		mcp.WithString("category",
			mcp.Required(),
			mcp.Description("Problem category this template addresses"),
			mcp.Enum("analysis", "planning", "debugging", "decision", "research", "verification", "custom"),
		),
		mcp.WithString("description",
			mcp.Required(),
			mcp.Description("One or two sentences on when to reach for this template"),
		),
		mcp.WithString("steps",
			mcp.Required(),
			mcp.Description("JSON array of steps, e.g. "+
				`"[{\"content\": \"State the goal\", \"order\": 1}, {\"content\": \"List risks\", \"order\": 2}]". `+
				"Order is 1-based and defines the walk sequence."),
		),
	)
}

// Handle processes the think_template_create tool call.
func (t *TemplateCreateTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	name := req.GetString("name", "")
	category := thinking.Category(req.GetString("category", ""))
	description := req.GetString("description", "")
	stepsRaw := req.GetString("steps", "")

	var steps []thinking.NewStepInput
	if stepsRaw != "" {
		if err := json.Unmarshal([]byte(stepsRaw), &steps); err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("'steps' is not a valid JSON array: %v", err)), nil
		}
	}

	tpl, err := t.manager.CreateTemplate(name, category, description, steps)
	if err != nil {
		return toolError(err)
	}

	response := fmt.Sprintf(
		"# Template Created\n\n"+
			"**ID:** `%s`\n"+
			"**Name:** %s\n"+
			"**Category:** %s\n"+
			"**Steps:** %d\n\n"+
			"Start a session with `think_session_start` using template_id `%s`.",
		tpl.ID, tpl.Name, tpl.Category, len(tpl.Steps), tpl.ID,
	)
	return mcp.NewToolResultText(response), nil
}
