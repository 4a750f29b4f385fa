// Package verification implements the verification chain manager.
//
// A chain is a named subject plus an ordered list of claim/verification
// steps. Each step carries a status and a confidence; the chain's overall
// status is derived from the step statuses after every mutation. Chains
// are independent of thinking sessions — there are no cross-references.
package verification

import (
	"time"

	"github.com/mindframe-mcp/mindframe/internal/faults"
)

// --- Step type enum ---

// StepType classifies what kind of claim a verification step checks.
type StepType string

const (
	TypeLogical      StepType = "logical"
	TypeFactual      StepType = "factual"
	TypeCode         StepType = "code"
	TypeMathematical StepType = "mathematical"
	TypeConsistency  StepType = "consistency"
	TypeCompleteness StepType = "completeness"
	TypeCustom       StepType = "custom"
)

// validTypes is the set of allowed step types.
var validTypes = map[StepType]bool{
	TypeLogical:      true,
	TypeFactual:      true,
	TypeCode:         true,
	TypeMathematical: true,
	TypeConsistency:  true,
	TypeCompleteness: true,
	TypeCustom:       true,
}

// ValidateType returns an error if the step type is not recognized.
func ValidateType(t StepType) error {
	if !validTypes[t] {
		return faults.Validationf("invalid verification type %q: must be one of: logical, factual, code, mathematical, consistency, completeness, custom", t)
	}
	return nil
}

// --- Step status enum ---

// StepStatus tracks the verification state of a single step.
type StepStatus string

const (
	StatusPending    StepStatus = "pending"
	StatusInProgress StepStatus = "in_progress"
	StatusVerified   StepStatus = "verified"
	StatusFailed     StepStatus = "failed"
	StatusSkipped    StepStatus = "skipped"
)

// validStatuses is the set of allowed step statuses.
var validStatuses = map[StepStatus]bool{
	StatusPending:    true,
	StatusInProgress: true,
	StatusVerified:   true,
	StatusFailed:     true,
	StatusSkipped:    true,
}

// ValidateStatus returns an error if the status is not recognized.
func ValidateStatus(s StepStatus) error {
	if !validStatuses[s] {
		return faults.Validationf("invalid verification status %q: must be one of: pending, in_progress, verified, failed, skipped", s)
	}
	return nil
}

// ValidateConfidence rejects confidence values outside [0,1].
func ValidateConfidence(c float64) error {
	if c < 0 || c > 1 {
		return faults.Validationf("confidence %.2f is out of range: must be between 0 and 1", c)
	}
	return nil
}

// --- Core data structures ---

// Step is one claim/verification pair within a chain. Evidence and
// CounterExample are optional free text; confidence is caller-supplied,
// never derived by the manager.
type Step struct {
	ID             string     `json:"id"`
	Type           StepType   `json:"type"`
	Claim          string     `json:"claim"`
	Verification   string     `json:"verification"`
	Status         StepStatus `json:"status"`
	Confidence     float64    `json:"confidence"`
	Evidence       string     `json:"evidence,omitempty"`
	CounterExample string     `json:"counter_example,omitempty"`
}

// Chain is a named sequence of verification steps with a derived overall
// status. EndTime is stamped once, on the first transition to verified.
type Chain struct {
	ID            string     `json:"id"`
	Subject       string     `json:"subject"`
	Steps         []Step     `json:"steps"`
	OverallStatus StepStatus `json:"overall_status"`
	StartTime     time.Time  `json:"start_time"`
	EndTime       *time.Time `json:"end_time,omitempty"`
}

// deriveStatus computes the chain's overall status from its step statuses.
// Priority order matters: pending work beats a failure in the report
// because the overall verdict is not final while steps remain pending.
//
//  1. no steps            → pending
//  2. any step pending    → in_progress
//  3. any step failed     → failed
//  4. all steps verified  → verified
//  5. otherwise           → in_progress
func deriveStatus(steps []Step) StepStatus {
	if len(steps) == 0 {
		return StatusPending
	}

	anyFailed := false
	allVerified := true
	for _, s := range steps {
		switch s.Status {
		case StatusPending:
			return StatusInProgress
		case StatusFailed:
			anyFailed = true
			allVerified = false
		case StatusVerified:
			// keeps allVerified true
		default:
			allVerified = false
		}
	}

	if anyFailed {
		return StatusFailed
	}
	if allVerified {
		return StatusVerified
	}
	return StatusInProgress
}
