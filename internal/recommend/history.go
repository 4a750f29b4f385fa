package recommend

import (
	"sync"
	"time"

	"github.com/mindframe-mcp/mindframe/internal/thinking"
)

// Outcome records whether the caller accepted a recommendation.
type Outcome struct {
	Subject    string            `json:"subject"`
	TemplateID string            `json:"template_id"`
	Category   thinking.Category `json:"category"`
	Accepted   bool              `json:"accepted"`
	At         time.Time         `json:"at"`
}

// Trend compares recent acceptance against the prior baseline. It is
// observational only — nothing feeds back into the scoring weights.
type Trend struct {
	RecentRate float64 `json:"recent_rate"`
	PriorRate  float64 `json:"prior_rate"`
	Direction  string  `json:"direction"` // improving | declining | steady | insufficient_data
}

// trendWindow is how many recent outcomes the trend report compares
// against everything before them.
const trendWindow = 10

// defaultHistoryCap bounds the in-memory log so a long-running server
// does not grow without limit.
const defaultHistoryCap = 200

// History is an append-only, bounded log of recommendation outcomes.
// When the capacity is reached the oldest entries are dropped.
type History struct {
	mu      sync.Mutex
	entries []Outcome
	cap     int
}

// NewHistory creates a history log. capacity <= 0 selects the default.
func NewHistory(capacity int) *History {
	if capacity <= 0 {
		capacity = defaultHistoryCap
	}
	return &History{cap: capacity}
}

// Record appends an outcome, evicting the oldest entry at capacity.
func (h *History) Record(o Outcome) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if len(h.entries) >= h.cap {
		h.entries = h.entries[1:]
	}
	h.entries = append(h.entries, o)
}

// Len returns the number of recorded outcomes.
func (h *History) Len() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.entries)
}

// AcceptanceRate returns the overall fraction of accepted outcomes,
// or 0 when nothing has been recorded.
func (h *History) AcceptanceRate() float64 {
	h.mu.Lock()
	defer h.mu.Unlock()
	return rate(h.entries)
}

// AcceptanceByCategory returns the acceptance rate per category.
func (h *History) AcceptanceByCategory() map[thinking.Category]float64 {
	h.mu.Lock()
	defer h.mu.Unlock()

	buckets := make(map[thinking.Category][]Outcome)
	for _, o := range h.entries {
		buckets[o.Category] = append(buckets[o.Category], o)
	}

	result := make(map[thinking.Category]float64, len(buckets))
	for cat, outcomes := range buckets {
		result[cat] = rate(outcomes)
	}
	return result
}

// Trend compares the acceptance rate of the most recent entries against
// all prior entries. With too little data the direction is
// "insufficient_data".
func (h *History) Trend() Trend {
	h.mu.Lock()
	defer h.mu.Unlock()

	if len(h.entries) <= trendWindow {
		return Trend{Direction: "insufficient_data"}
	}

	split := len(h.entries) - trendWindow
	prior := rate(h.entries[:split])
	recent := rate(h.entries[split:])

	direction := "steady"
	switch {
	case recent > prior:
		direction = "improving"
	case recent < prior:
		direction = "declining"
	}

	return Trend{RecentRate: recent, PriorRate: prior, Direction: direction}
}

func rate(outcomes []Outcome) float64 {
	if len(outcomes) == 0 {
		return 0
	}
	accepted := 0
	for _, o := range outcomes {
		if o.Accepted {
			accepted++
		}
	}
	return float64(accepted) / float64(len(outcomes))
}
