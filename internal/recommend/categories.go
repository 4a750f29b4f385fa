package recommend

import (
	"regexp"

	"github.com/mindframe-mcp/mindframe/internal/thinking"
)

// Keyword and pattern tables for category identification. Whole-word
// keyword hits weigh 1.5, substring hits 0.7 — a whole word is a much
// stronger signal than an accidental substring. Patterns contribute
// their full weight additively.

const (
	wholeWordWeight = 1.5
	substringWeight = 0.7
)

// scoredCategories is the fixed identification order. Analysis comes
// first so that ties (and the zero-match case) resolve to it.
var scoredCategories = []thinking.Category{
	thinking.CategoryAnalysis,
	thinking.CategoryPlanning,
	thinking.CategoryDebugging,
	thinking.CategoryDecision,
	thinking.CategoryResearch,
	thinking.CategoryVerification,
}

var categoryKeywords = map[thinking.Category][]string{
	thinking.CategoryAnalysis: {
		"analyze", "analysis", "understand", "examine", "investigate",
		"breakdown", "structure", "assumptions",
	},
	thinking.CategoryPlanning: {
		"plan", "planning", "roadmap", "milestone", "schedule",
		"organize", "strategy", "timeline", "prepare",
	},
	thinking.CategoryDebugging: {
		"bug", "debug", "error", "crash", "broken", "fix",
		"failure", "regression", "reproduce",
	},
	thinking.CategoryDecision: {
		"decide", "decision", "choose", "choice", "option",
		"tradeoff", "compare", "select", "alternative",
	},
	thinking.CategoryResearch: {
		"research", "learn", "explore", "discover", "sources",
		"survey", "study", "literature",
	},
	thinking.CategoryVerification: {
		"verify", "validate", "check", "confirm", "proof",
		"correctness", "audit", "sound",
	},
}

// pattern is a weighted regex tagged with the category it signals.
type pattern struct {
	re       *regexp.Regexp
	category thinking.Category
	weight   float64
}

var patterns = []pattern{
	// Debugging: failure language.
	{regexp.MustCompile(`not working`), thinking.CategoryDebugging, 2.0},
	{regexp.MustCompile(`stopped working`), thinking.CategoryDebugging, 2.0},
	{regexp.MustCompile(`\bfail(s|ed|ing)?\b`), thinking.CategoryDebugging, 1.5},
	{regexp.MustCompile(`\bbroken\b`), thinking.CategoryDebugging, 1.5},
	{regexp.MustCompile(`throws? (an )?(error|exception)`), thinking.CategoryDebugging, 2.0},
	{regexp.MustCompile(`\bcrash(es|ed|ing)?\b`), thinking.CategoryDebugging, 1.5},

	// Decision: choice language.
	{regexp.MustCompile(`should (i|we) (choose|pick|use|go with)`), thinking.CategoryDecision, 2.0},
	{regexp.MustCompile(`pros and cons`), thinking.CategoryDecision, 2.0},
	{regexp.MustCompile(`(which|what) (one|option|approach)`), thinking.CategoryDecision, 1.5},
	{regexp.MustCompile(`\bversus\b|\bvs\.?\b`), thinking.CategoryDecision, 1.0},

	// Verification: validation language.
	{regexp.MustCompile(`\bverify\b`), thinking.CategoryVerification, 1.5},
	{regexp.MustCompile(`\bvalidate\b`), thinking.CategoryVerification, 1.5},
	{regexp.MustCompile(`double[- ]check`), thinking.CategoryVerification, 1.5},
	{regexp.MustCompile(`is (this|it|that) (correct|right|true|valid)`), thinking.CategoryVerification, 2.0},

	// Planning: sequencing language.
	{regexp.MustCompile(`how (do|should) (i|we) (start|begin|approach)`), thinking.CategoryPlanning, 1.5},
	{regexp.MustCompile(`step[- ]by[- ]step`), thinking.CategoryPlanning, 1.5},
	{regexp.MustCompile(`\broll ?out\b`), thinking.CategoryPlanning, 1.0},
	{regexp.MustCompile(`break (this|it) (down|up) into`), thinking.CategoryPlanning, 1.5},

	// Analysis: sense-making language.
	{regexp.MustCompile(`what('s| is) (causing|driving|behind)`), thinking.CategoryAnalysis, 1.5},
	{regexp.MustCompile(`make sense of`), thinking.CategoryAnalysis, 1.5},
	{regexp.MustCompile(`\bwhy (does|is|did|would)\b`), thinking.CategoryAnalysis, 1.0},

	// Research: discovery language.
	{regexp.MustCompile(`find out`), thinking.CategoryResearch, 1.5},
	{regexp.MustCompile(`state of the art`), thinking.CategoryResearch, 1.5},
	{regexp.MustCompile(`best practices`), thinking.CategoryResearch, 1.0},
	{regexp.MustCompile(`what (do we|is) know(n)? about`), thinking.CategoryResearch, 1.5},
}
