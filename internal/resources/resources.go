// Package resources implements MCP resource handlers for mindframe.
//
// Resources provide read-only data that the host can consume for context.
// They use URI-based addressing (mindframe://...) following MCP conventions.
package resources

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/mindframe-mcp/mindframe/internal/thinking"
	"github.com/mindframe-mcp/mindframe/internal/verification"
)

// Handler manages mindframe resource endpoints.
type Handler struct {
	thinking *thinking.Manager
	chains   *verification.Manager
}

// NewHandler creates a resource Handler with its dependencies.
func NewHandler(t *thinking.Manager, v *verification.Manager) *Handler {
	return &Handler{thinking: t, chains: v}
}

// SummaryResource returns the MCP resource definition for the state summary.
func (h *Handler) SummaryResource() mcp.Resource {
	return mcp.NewResource(
		"mindframe://state/summary",
		"Mindframe State Summary",
		mcp.WithResourceDescription("Counts and ids of templates, sessions, and verification chains"),
		mcp.WithMIMEType("application/json"),
	)
}

// summary is the JSON shape of the state summary resource.
type summary struct {
	Templates struct {
		Total   int `json:"total"`
		BuiltIn int `json:"built_in"`
		Custom  int `json:"custom"`
	} `json:"templates"`
	Sessions struct {
		Total  int      `json:"total"`
		Open   []string `json:"open"`
		Closed int      `json:"closed"`
	} `json:"sessions"`
	Chains struct {
		Total      int      `json:"total"`
		Unverified []string `json:"unverified"`
	} `json:"chains"`
}

// HandleSummary returns the current state summary as JSON.
func (h *Handler) HandleSummary(ctx context.Context, req mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
	var s summary
	s.Sessions.Open = []string{}
	s.Chains.Unverified = []string{}

	for _, tpl := range h.thinking.Templates() {
		s.Templates.Total++
		if tpl.IsBuiltIn {
			s.Templates.BuiltIn++
		} else {
			s.Templates.Custom++
		}
	}

	for _, sess := range h.thinking.Sessions() {
		s.Sessions.Total++
		if sess.IsComplete() {
			s.Sessions.Closed++
		} else {
			s.Sessions.Open = append(s.Sessions.Open, sess.ID)
		}
	}

	for _, chain := range h.chains.Chains() {
		s.Chains.Total++
		if chain.OverallStatus != verification.StatusVerified {
			s.Chains.Unverified = append(s.Chains.Unverified, chain.ID)
		}
	}

	data, err := json.MarshalIndent(s, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshaling summary: %w", err)
	}

	return []mcp.ResourceContents{
		mcp.TextResourceContents{
			URI:      req.Params.URI,
			MIMEType: "application/json",
			Text:     string(data),
		},
	}, nil
}
