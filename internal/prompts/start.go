// Package prompts implements MCP prompt handlers for mindframe.
//
// MCP prompts are user-triggered workflows (like slash commands) that
// instruct the AI to execute a specific sequence. Unlike tools (which
// the AI calls), prompts are initiated by the user.
package prompts

import (
	"context"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"
)

// StartPrompt handles the mindframe-start MCP prompt.
// It guides the AI from a problem description to a running session.
type StartPrompt struct{}

// NewStartPrompt creates a StartPrompt.
func NewStartPrompt() *StartPrompt {
	return &StartPrompt{}
}

// Definition returns the MCP prompt definition for registration.
func (p *StartPrompt) Definition() mcp.Prompt {
	return mcp.NewPrompt("mindframe-start",
		mcp.WithPromptDescription(
			"Start structured thinking about a problem. "+
				"Gets a template recommendation for your description and walks "+
				"you through the chosen template step by step.",
		),
		mcp.WithArgument("problem",
			mcp.ArgumentDescription("The problem you want to think through"),
		),
	)
}

// Handle processes the mindframe-start prompt request.
func (p *StartPrompt) Handle(ctx context.Context, req mcp.GetPromptRequest) (*mcp.GetPromptResult, error) {
	problem := "my problem"
	if args := req.Params.Arguments; args != nil {
		if v, ok := args["problem"]; ok && v != "" {
			problem = v
		}
	}

	return &mcp.GetPromptResult{
		Description: fmt.Sprintf("Structured thinking: %s", problem),
		Messages: []mcp.PromptMessage{
			{
				Role: mcp.RoleUser,
				Content: mcp.NewTextContent(fmt.Sprintf(
					"I want to think through this problem in a structured way: %q\n\n"+
						"Please:\n"+
						"1. Call `think_template_recommend` with my problem description\n"+
						"2. Present the top candidates and let me pick one (record my choice with `think_recommend_feedback`)\n"+
						"3. Start a session with `think_session_start`\n"+
						"4. Walk me through the steps one at a time — discuss each step with me, "+
						"then save our conclusions with `think_step_complete`\n"+
						"5. If we produce claims worth checking, track them in a chain via `verify_chain_create`",
					problem,
				)),
			},
		},
	}, nil
}
