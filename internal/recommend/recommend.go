// Package recommend implements the template recommendation engine.
//
// The engine is deliberately dumb: hand-written keyword and regex scoring
// over a lowercased problem description, plus a per-template relevance
// score. No model, no learned weights, no hidden state — the same input
// always produces the same ranking.
package recommend

import (
	"fmt"
	"sort"
	"strings"

	"github.com/mindframe-mcp/mindframe/internal/thinking"
)

// Confidence bounds: never report zero confidence for a returned
// recommendation, never report near-certainty from keyword matching.
const (
	confidenceFloor = 0.3
	confidenceCap   = 0.95
)

// Template scoring weights.
const (
	categoryBonus    = 5.0
	nameBonus        = 4.0
	wordOverlapBonus = 0.5
	stepMatchBonus   = 1.5
	usageBonusPer    = 0.2
	usageBonusCap    = 2.0
)

// CategoryMatch is the result of category identification.
type CategoryMatch struct {
	Category   thinking.Category `json:"category"`
	Score      float64           `json:"score"`
	Confidence float64           `json:"confidence"`
	Keywords   []string          `json:"keywords,omitempty"`
}

// Recommendation pairs a candidate template with its relevance score.
type Recommendation struct {
	Template thinking.Template `json:"template"`
	Score    float64           `json:"score"`
	Reason   string            `json:"reason"`
}

// Identify maps a free-text problem description to the best-matching
// category. Ties and the zero-match case resolve to analysis.
func Identify(description string) CategoryMatch {
	desc := strings.ToLower(description)
	words := wordSet(desc)

	scores := make(map[thinking.Category]float64)
	kwHits := make(map[thinking.Category][]string)

	for _, cat := range scoredCategories {
		for _, kw := range categoryKeywords[cat] {
			if words[kw] {
				scores[cat] += wholeWordWeight
				kwHits[cat] = append(kwHits[cat], kw)
			} else if strings.Contains(desc, kw) {
				scores[cat] += substringWeight
				kwHits[cat] = append(kwHits[cat], kw)
			}
		}
	}

	patternWeight := make(map[thinking.Category]float64)
	for _, p := range patterns {
		if p.re.MatchString(desc) {
			scores[p.category] += p.weight
			patternWeight[p.category] += p.weight
		}
	}

	// Fixed iteration order with analysis first and strict comparison:
	// ties default to analysis.
	best := thinking.CategoryAnalysis
	for _, cat := range scoredCategories {
		if scores[cat] > scores[best] {
			best = cat
		}
	}

	return CategoryMatch{
		Category:   best,
		Score:      scores[best],
		Confidence: confidence(len(kwHits[best]), patternWeight[best]),
		Keywords:   kwHits[best],
	}
}

// confidence is a bounded function of keyword-match count and total
// matched-pattern weight for the winning category.
func confidence(keywordMatches int, patternWeight float64) float64 {
	c := confidenceFloor + 0.12*float64(keywordMatches) + 0.1*patternWeight
	if c > confidenceCap {
		return confidenceCap
	}
	return c
}

// Recommend scores every candidate template against the description and
// returns them ranked best-first. Purely a function of its inputs (usage
// counters are read from the candidates themselves), so repeated calls
// return identical orderings.
func Recommend(description string, candidates []thinking.Template) []Recommendation {
	desc := strings.ToLower(description)
	descWords := wordSet(desc)
	match := Identify(description)

	result := make([]Recommendation, 0, len(candidates))
	for _, tpl := range candidates {
		score := scoreTemplate(desc, descWords, match.Category, tpl)
		result = append(result, Recommendation{
			Template: tpl,
			Score:    score,
			Reason:   reason(match, tpl),
		})
	}

	sort.SliceStable(result, func(i, j int) bool {
		if result[i].Score != result[j].Score {
			return result[i].Score > result[j].Score
		}
		return result[i].Template.ID < result[j].Template.ID
	})
	return result
}

// RecommendTop returns up to k recommendations, diversified by category:
// the single best match always comes first, then unrepresented categories
// are preferred over more variants of one already in the result.
func RecommendTop(description string, candidates []thinking.Template, k int) []Recommendation {
	ranked := Recommend(description, candidates)
	if k <= 0 {
		k = 3
	}
	if len(ranked) <= 1 {
		return ranked
	}

	picked := make([]Recommendation, 0, k)
	seen := make(map[thinking.Category]bool)
	used := make(map[string]bool)

	picked = append(picked, ranked[0])
	seen[ranked[0].Template.Category] = true
	used[ranked[0].Template.ID] = true

	for len(picked) < k && len(picked) < len(ranked) {
		// Prefer the next-best candidate from a category not yet present.
		next := -1
		for i, rec := range ranked {
			if used[rec.Template.ID] {
				continue
			}
			if !seen[rec.Template.Category] {
				next = i
				break
			}
		}
		// Fall back to the next-best overall.
		if next < 0 {
			for i, rec := range ranked {
				if !used[rec.Template.ID] {
					next = i
					break
				}
			}
		}
		if next < 0 {
			break
		}
		picked = append(picked, ranked[next])
		seen[ranked[next].Template.Category] = true
		used[ranked[next].Template.ID] = true
	}

	return picked
}

// scoreTemplate computes the relevance of one candidate.
func scoreTemplate(desc string, descWords map[string]bool, category thinking.Category, tpl thinking.Template) float64 {
	var score float64

	if tpl.Category == category {
		score += categoryBonus
	}

	if strings.Contains(desc, strings.ToLower(tpl.Name)) {
		score += nameBonus
	}

	// Small credit per shared substantial word (>4 chars) between the
	// description and the template's own description.
	for w := range wordSet(strings.ToLower(tpl.Description)) {
		if len(w) > 4 && descWords[w] {
			score += wordOverlapBonus
		}
	}

	for _, step := range tpl.Steps {
		if strings.Contains(desc, strings.ToLower(step.Content)) {
			score += stepMatchBonus
		}
	}

	// Historical usage nudges the score but is capped so heavy prior use
	// cannot dominate relevance.
	usage := float64(tpl.UsageCount) * usageBonusPer
	if usage > usageBonusCap {
		usage = usageBonusCap
	}
	score += usage

	return score
}

// reason builds the human-readable justification for a recommendation.
func reason(match CategoryMatch, tpl thinking.Template) string {
	var b strings.Builder
	if len(match.Keywords) > 0 {
		fmt.Fprintf(&b, "matched keywords: %s", strings.Join(match.Keywords, ", "))
	} else {
		fmt.Fprintf(&b, "for %s tasks", match.Category)
	}
	if tpl.UsageCount > 0 {
		fmt.Fprintf(&b, "; used %d time(s) before", tpl.UsageCount)
	}
	return b.String()
}

// wordSet tokenizes lowercased text into its set of words.
func wordSet(text string) map[string]bool {
	words := strings.FieldsFunc(text, func(r rune) bool {
		return !(r >= 'a' && r <= 'z') && !(r >= '0' && r <= '9')
	})
	set := make(map[string]bool, len(words))
	for _, w := range words {
		set[w] = true
	}
	return set
}
