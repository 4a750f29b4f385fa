package prompts

import (
	"context"

	"github.com/mark3labs/mcp-go/mcp"
)

// StatusPrompt handles the mindframe-status MCP prompt.
type StatusPrompt struct{}

// NewStatusPrompt creates a StatusPrompt.
func NewStatusPrompt() *StatusPrompt {
	return &StatusPrompt{}
}

// Definition returns the MCP prompt definition for registration.
func (p *StatusPrompt) Definition() mcp.Prompt {
	return mcp.NewPrompt("mindframe-status",
		mcp.WithPromptDescription(
			"Summarize the current mindframe state: open thinking sessions "+
				"and verification chains, and what to do next on each.",
		),
	)
}

// Handle processes the mindframe-status prompt request.
func (p *StatusPrompt) Handle(ctx context.Context, req mcp.GetPromptRequest) (*mcp.GetPromptResult, error) {
	return &mcp.GetPromptResult{
		Description: "Mindframe status overview",
		Messages: []mcp.PromptMessage{
			{
				Role: mcp.RoleUser,
				Content: mcp.NewTextContent(
					"Give me a status overview of my structured thinking work.\n\n" +
						"Please:\n" +
						"1. Read the `mindframe://state/summary` resource\n" +
						"2. For each incomplete session, show which step is current (`think_session_show`)\n" +
						"3. For each chain that is not verified, show what remains (`verify_chain_show`)\n" +
						"4. Suggest the single most useful next action",
				),
			},
		},
	}, nil
}
