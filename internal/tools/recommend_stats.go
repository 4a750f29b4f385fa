package tools

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/mindframe-mcp/mindframe/internal/recommend"
	"github.com/mindframe-mcp/mindframe/internal/thinking"
)

// RecommendStatsTool handles the think_recommend_stats MCP tool.
type RecommendStatsTool struct {
	history *recommend.History
}

// NewRecommendStatsTool creates a RecommendStatsTool.
func NewRecommendStatsTool(history *recommend.History) *RecommendStatsTool {
	return &RecommendStatsTool{history: history}
}

// Definition returns the MCP tool definition for registration.
func (t *RecommendStatsTool) Definition() mcp.Tool {
	return mcp.NewTool("think_recommend_stats",
		mcp.WithDescription(
			"Show recommendation acceptance statistics: overall rate, per-category "+
				"rates, and the recent trend. Purely observational.",
		),
	)
}

// Handle processes the think_recommend_stats tool call.
func (t *RecommendStatsTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	if t.history.Len() == 0 {
		return mcp.NewToolResultText("No recommendation outcomes recorded yet."), nil
	}

	var b strings.Builder
	fmt.Fprintf(&b, "# Recommendation Stats\n\n")
	fmt.Fprintf(&b, "**Outcomes recorded:** %d\n", t.history.Len())
	fmt.Fprintf(&b, "**Overall acceptance:** %.0f%%\n", t.history.AcceptanceRate()*100)

	byCat := t.history.AcceptanceByCategory()
	if len(byCat) > 0 {
		b.WriteString("\n## By Category\n\n")
		cats := make([]thinking.Category, 0, len(byCat))
		for cat := range byCat {
			cats = append(cats, cat)
		}
		sort.Slice(cats, func(i, j int) bool { return cats[i] < cats[j] })
		for _, cat := range cats {
			fmt.Fprintf(&b, "- %s: %.0f%%\n", cat, byCat[cat]*100)
		}
	}

	trend := t.history.Trend()
	b.WriteString("\n## Trend\n\n")
	if trend.Direction == "insufficient_data" {
		b.WriteString("Not enough outcomes for a trend yet.\n")
	} else {
		fmt.Fprintf(&b, "**Direction:** %s (recent %.0f%% vs prior %.0f%%)\n",
			trend.Direction, trend.RecentRate*100, trend.PriorRate*100)
	}

	return mcp.NewToolResultText(b.String()), nil
}
