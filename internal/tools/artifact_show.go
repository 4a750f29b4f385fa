package tools

import (
	"context"
	"fmt"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/mindframe-mcp/mindframe/internal/thinking"
)

// ArtifactShowTool handles the think_artifact_show MCP tool.
// Artifacts are static document skeletons attached to a template; the
// tool returns them verbatim, placeholders included.
type ArtifactShowTool struct {
	manager *thinking.Manager
}

// NewArtifactShowTool creates an ArtifactShowTool.
func NewArtifactShowTool(manager *thinking.Manager) *ArtifactShowTool {
	return &ArtifactShowTool{manager: manager}
}

// Definition returns the MCP tool definition for registration.
func (t *ArtifactShowTool) Definition() mcp.Tool {
	return mcp.NewTool("think_artifact_show",
		mcp.WithDescription(
			"Fetch a template's artifact document skeleton verbatim. "+
				"Fill in the {{placeholders}} yourself — the server never synthesizes content.",
		),
		mcp.WithString("template_id",
			mcp.Required(),
			mcp.Description("Template id the artifact belongs to"),
		),
		mcp.WithString("filename",
			mcp.Required(),
			mcp.Description("Artifact filename as listed by think_template_show, e.g. 'plan.md'"),
		),
	)
}

// Handle processes the think_artifact_show tool call.
func (t *ArtifactShowTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	templateID := req.GetString("template_id", "")
	filename := req.GetString("filename", "")
	if strings.TrimSpace(templateID) == "" || strings.TrimSpace(filename) == "" {
		return mcp.NewToolResultError("'template_id' and 'filename' are required"), nil
	}

	art, err := t.manager.Artifact(templateID, filename)
	if err != nil {
		return toolError(err)
	}

	response := fmt.Sprintf(
		"# Artifact: %s\n\n%s\n\n---\n\n```markdown\n%s\n```",
		filename, art.Description, art.Content,
	)
	return mcp.NewToolResultText(response), nil
}
