package verification

import (
	"encoding/json"
	"fmt"
	"sort"
	"strings"
	"sync"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/mindframe-mcp/mindframe/internal/blobstore"
	"github.com/mindframe-mcp/mindframe/internal/faults"
)

// state is the persisted shape of the chains dataset.
type state struct {
	Chains   map[string]*Chain `json:"chains"`
	ChainSeq int               `json:"chain_seq"`
}

// Manager owns all verification chains. Same persistence model as the
// thinking manager: mutate in memory, then flush; a failed flush is
// logged and the server keeps running.
type Manager struct {
	mu    sync.Mutex
	store blobstore.Store
	log   *zap.Logger

	chains   map[string]*Chain
	chainSeq int
}

// NewManager loads the chains dataset.
func NewManager(store blobstore.Store, log *zap.Logger) *Manager {
	m := &Manager{
		store:  store,
		log:    log,
		chains: make(map[string]*Chain),
	}

	var persisted state
	if data, err := store.Get(blobstore.DatasetChains); err != nil {
		log.Warn("loading chains dataset failed, starting empty", zap.Error(err))
	} else if data != nil {
		if err := json.Unmarshal(data, &persisted); err != nil {
			log.Warn("chains dataset is corrupt, starting empty", zap.Error(err))
			persisted = state{}
		}
	}

	for id, chain := range persisted.Chains {
		m.chains[id] = chain
	}
	m.chainSeq = persisted.ChainSeq

	return m
}

// CreateChain starts a new, empty chain for the given subject.
func (m *Manager) CreateChain(subject string) (*Chain, error) {
	if strings.TrimSpace(subject) == "" {
		return nil, faults.Validationf("'subject' is required — what claim set is being verified?")
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	m.chainSeq++
	chain := &Chain{
		ID:            fmt.Sprintf("chain-%d", m.chainSeq),
		Subject:       subject,
		Steps:         []Step{},
		OverallStatus: StatusPending,
		StartTime:     timeNow().UTC(),
	}

	m.chains[chain.ID] = chain
	m.persist()
	return cloneChain(chain), nil
}

// AddStepParams holds the input for appending a verification step.
// Status defaults to pending and confidence to 0.5 when unset.
type AddStepParams struct {
	Type           StepType
	Claim          string
	Verification   string
	Status         StepStatus
	Confidence     *float64
	Evidence       string
	CounterExample string
}

// AddStep appends a step to a chain and recomputes the overall status.
func (m *Manager) AddStep(chainID string, p AddStepParams) (*Step, *Chain, error) {
	if err := ValidateType(p.Type); err != nil {
		return nil, nil, err
	}
	if strings.TrimSpace(p.Claim) == "" {
		return nil, nil, faults.Validationf("'claim' is required — state what is being verified")
	}

	status := p.Status
	if status == "" {
		status = StatusPending
	}
	if err := ValidateStatus(status); err != nil {
		return nil, nil, err
	}

	confidence := 0.5
	if p.Confidence != nil {
		confidence = *p.Confidence
	}
	if err := ValidateConfidence(confidence); err != nil {
		return nil, nil, err
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	chain, ok := m.chains[chainID]
	if !ok {
		return nil, nil, faults.NotFound("chain", chainID)
	}

	step := Step{
		ID:             uuid.NewString(),
		Type:           p.Type,
		Claim:          p.Claim,
		Verification:   p.Verification,
		Status:         status,
		Confidence:     confidence,
		Evidence:       p.Evidence,
		CounterExample: p.CounterExample,
	}
	chain.Steps = append(chain.Steps, step)
	m.refreshStatus(chain)

	m.persist()
	return &step, cloneChain(chain), nil
}

// UpdateStepParams holds the partial update for an existing step.
// Evidence and CounterExample are pointers: nil leaves the stored value
// untouched (merge semantics), a non-nil value — including an empty
// string — overwrites it.
type UpdateStepParams struct {
	Verification   string
	Status         StepStatus
	Confidence     *float64
	Evidence       *string
	CounterExample *string
}

// UpdateStep overwrites a step's verification text, status, and
// confidence, merges evidence/counter-example, and recomputes the
// chain's overall status.
func (m *Manager) UpdateStep(chainID, stepID string, p UpdateStepParams) (*Step, *Chain, error) {
	if err := ValidateStatus(p.Status); err != nil {
		return nil, nil, err
	}
	if p.Confidence != nil {
		if err := ValidateConfidence(*p.Confidence); err != nil {
			return nil, nil, err
		}
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	chain, ok := m.chains[chainID]
	if !ok {
		return nil, nil, faults.NotFound("chain", chainID)
	}

	pos := -1
	for i := range chain.Steps {
		if chain.Steps[i].ID == stepID {
			pos = i
			break
		}
	}
	if pos < 0 {
		return nil, nil, faults.NotFound("step", stepID)
	}

	step := &chain.Steps[pos]
	step.Verification = p.Verification
	step.Status = p.Status
	if p.Confidence != nil {
		step.Confidence = *p.Confidence
	}
	if p.Evidence != nil {
		step.Evidence = *p.Evidence
	}
	if p.CounterExample != nil {
		step.CounterExample = *p.CounterExample
	}

	m.refreshStatus(chain)

	m.persist()
	out := *step
	return &out, cloneChain(chain), nil
}

// Chain returns a copy of the chain with the given id.
func (m *Manager) Chain(id string) (*Chain, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	chain, ok := m.chains[id]
	if !ok {
		return nil, faults.NotFound("chain", id)
	}
	return cloneChain(chain), nil
}

// Chains returns all chains, oldest first.
func (m *Manager) Chains() []Chain {
	m.mu.Lock()
	defer m.mu.Unlock()

	result := make([]Chain, 0, len(m.chains))
	for _, chain := range m.chains {
		result = append(result, *cloneChain(chain))
	}
	sort.Slice(result, func(i, j int) bool {
		if !result[i].StartTime.Equal(result[j].StartTime) {
			return result[i].StartTime.Before(result[j].StartTime)
		}
		return result[i].ID < result[j].ID
	})
	return result
}

// refreshStatus re-derives the overall status and stamps the end time on
// the first transition to verified. The stamp is idempotent: once set it
// is never overwritten, even if the chain later leaves and re-enters the
// verified state. Callers must hold m.mu.
func (m *Manager) refreshStatus(chain *Chain) {
	chain.OverallStatus = deriveStatus(chain.Steps)
	if chain.OverallStatus == StatusVerified && chain.EndTime == nil {
		done := timeNow().UTC()
		chain.EndTime = &done
	}
}

// persist flushes the chains dataset; failures are logged, never fatal.
// Callers must hold m.mu.
func (m *Manager) persist() {
	snapshot := state{Chains: m.chains, ChainSeq: m.chainSeq}
	data, err := json.MarshalIndent(snapshot, "", "  ")
	if err != nil {
		m.log.Warn("marshaling chains dataset", zap.Error(err))
		return
	}
	if err := m.store.Put(blobstore.DatasetChains, data); err != nil {
		perr := &faults.PersistenceError{Dataset: blobstore.DatasetChains, Err: err}
		m.log.Warn("chains dataset not saved, continuing in-memory", zap.Error(perr))
	}
}

func cloneChain(chain *Chain) *Chain {
	out := *chain
	out.Steps = make([]Step, len(chain.Steps))
	copy(out.Steps, chain.Steps)
	if chain.EndTime != nil {
		end := *chain.EndTime
		out.EndTime = &end
	}
	return &out
}
