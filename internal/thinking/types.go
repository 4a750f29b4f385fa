// Package thinking implements the template catalog and session manager.
//
// A template is a named, ordered list of thinking-process steps used as a
// blueprint. A session is one walk through a deep copy of a template's
// steps — completing a step advances a forward-only cursor until the last
// step closes the session.
//
// Design principles follow the rest of the codebase:
// - SRP: types, built-in seeds, and the manager live in separate files
// - DIP: persistence goes through blobstore.Store; the manager never
//   touches the filesystem directly
package thinking

import (
	"strings"
	"time"

	"github.com/mindframe-mcp/mindframe/internal/faults"
)

// --- Category enum ---

// Category tags a template with the kind of problem it addresses.
type Category string

const (
	CategoryAnalysis     Category = "analysis"
	CategoryPlanning     Category = "planning"
	CategoryDebugging    Category = "debugging"
	CategoryDecision     Category = "decision"
	CategoryResearch     Category = "research"
	CategoryVerification Category = "verification"
	CategoryCustom       Category = "custom"
)

// validCategories is the set of allowed template categories.
var validCategories = map[Category]bool{
	CategoryAnalysis:     true,
	CategoryPlanning:     true,
	CategoryDebugging:    true,
	CategoryDecision:     true,
	CategoryResearch:     true,
	CategoryVerification: true,
	CategoryCustom:       true,
}

// ValidateCategory returns an error if the category is not recognized.
func ValidateCategory(c Category) error {
	if !validCategories[c] {
		return faults.Validationf("invalid category %q: must be one of: analysis, planning, debugging, decision, research, verification, custom", c)
	}
	return nil
}

// --- Core data structures ---

// TemplateStep is one step of a template blueprint. Order is 1-based and
// dense within a template; it defines the only valid walk sequence.
type TemplateStep struct {
	ID      string `json:"id"`
	Content string `json:"content"`
	Order   int    `json:"order"`
}

// Artifact is a static document skeleton associated with a template,
// returned verbatim on request — never synthesized.
type Artifact struct {
	Description string `json:"description"`
	Content     string `json:"content"`
}

// Template is a named, ordered list of thinking steps plus metadata.
type Template struct {
	ID          string              `json:"id"`
	Name        string              `json:"name"`
	Category    Category            `json:"category"`
	Description string              `json:"description"`
	Steps       []TemplateStep      `json:"steps"`
	IsBuiltIn   bool                `json:"is_built_in"`
	UsageCount  int                 `json:"usage_count"`
	LastUsed    *time.Time          `json:"last_used,omitempty"`
	Artifacts   map[string]Artifact `json:"artifacts,omitempty"`
}

// SessionStep is a template step copied into a session, augmented with
// completion state.
type SessionStep struct {
	ID         string `json:"id"`
	Content    string `json:"content"`
	Order      int    `json:"order"`
	IsComplete bool   `json:"is_complete"`
	Notes      string `json:"notes,omitempty"`
}

// Session is one in-progress or completed walk through a template.
// CurrentStepIndex is a 0-based cursor into Steps; it only ever moves
// forward. EndTime is set exactly once, when the last step completes.
type Session struct {
	ID               string        `json:"id"`
	TemplateID       string        `json:"template_id"`
	Steps            []SessionStep `json:"steps"`
	CurrentStepIndex int           `json:"current_step_index"`
	StartTime        time.Time     `json:"start_time"`
	EndTime          *time.Time    `json:"end_time,omitempty"`
}

// IsComplete reports whether every step of the session is done.
func (s *Session) IsComplete() bool {
	for _, step := range s.Steps {
		if !step.IsComplete {
			return false
		}
	}
	return len(s.Steps) > 0
}

// NewStepInput is the caller-supplied shape for one step of a new template.
type NewStepInput struct {
	Content string `json:"content"`
	Order   int    `json:"order"`
}

// validateTemplateInput checks the CreateTemplate arguments: non-empty
// required strings, at least one step, every order >= 1.
func validateTemplateInput(name string, category Category, description string, steps []NewStepInput) error {
	if strings.TrimSpace(name) == "" {
		return faults.Validationf("'name' is required")
	}
	if strings.TrimSpace(description) == "" {
		return faults.Validationf("'description' is required")
	}
	if err := ValidateCategory(category); err != nil {
		return err
	}
	if len(steps) == 0 {
		return faults.Validationf("a template needs at least one step")
	}
	for i, step := range steps {
		if strings.TrimSpace(step.Content) == "" {
			return faults.Validationf("step %d has empty content", i+1)
		}
		if step.Order < 1 {
			return faults.Validationf("step %d has order %d: order must be >= 1", i+1, step.Order)
		}
	}
	return nil
}
