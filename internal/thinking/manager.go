package thinking

import (
	"encoding/json"
	"fmt"
	"sort"
	"sync"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/mindframe-mcp/mindframe/internal/blobstore"
	"github.com/mindframe-mcp/mindframe/internal/faults"
)

// state is the persisted shape of the templates dataset: the catalog,
// all sessions, and the monotonic id counters.
type state struct {
	Templates   map[string]*Template `json:"templates"`
	Sessions    map[string]*Session  `json:"sessions"`
	TemplateSeq int                  `json:"template_seq"`
	SessionSeq  int                  `json:"session_seq"`
}

// Manager owns the template catalog and all sessions. It is the only
// mutator of both collections. State is updated in memory first, then
// flushed to the blobstore; a failed flush is logged and the manager
// keeps serving from memory.
type Manager struct {
	mu    sync.Mutex
	store blobstore.Store
	log   *zap.Logger

	templates   map[string]*Template
	sessions    map[string]*Session
	templateSeq int
	sessionSeq  int
}

// NewManager loads the templates dataset and merges the built-in seed
// catalog into it. For built-ins only the usage counters survive from the
// persisted state — the step content always comes from the seed, so
// upgrades can fix wording without a migration.
func NewManager(store blobstore.Store, log *zap.Logger) *Manager {
	m := &Manager{
		store:     store,
		log:       log,
		templates: make(map[string]*Template),
		sessions:  make(map[string]*Session),
	}

	var persisted state
	if data, err := store.Get(blobstore.DatasetTemplates); err != nil {
		log.Warn("loading templates dataset failed, starting empty", zap.Error(err))
	} else if data != nil {
		if err := json.Unmarshal(data, &persisted); err != nil {
			log.Warn("templates dataset is corrupt, starting empty", zap.Error(err))
			persisted = state{}
		}
	}

	for _, seed := range builtinSeeds() {
		tpl := cloneTemplate(&seed)
		if prev, ok := persisted.Templates[tpl.ID]; ok {
			tpl.UsageCount = prev.UsageCount
			tpl.LastUsed = prev.LastUsed
		}
		m.templates[tpl.ID] = tpl
	}

	for id, tpl := range persisted.Templates {
		if tpl.IsBuiltIn {
			continue // already merged above
		}
		m.templates[id] = tpl
	}
	for id, sess := range persisted.Sessions {
		m.sessions[id] = sess
	}
	m.templateSeq = persisted.TemplateSeq
	m.sessionSeq = persisted.SessionSeq

	return m
}

// --- Catalog operations ---

// CreateTemplate adds a user-defined template to the catalog. Step ids are
// freshly generated; input steps are sorted by their order value and
// renumbered densely from 1 so the catalog invariant holds even for
// sparse input.
func (m *Manager) CreateTemplate(name string, category Category, description string, steps []NewStepInput) (*Template, error) {
	if err := validateTemplateInput(name, category, description, steps); err != nil {
		return nil, err
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	sorted := make([]NewStepInput, len(steps))
	copy(sorted, steps)
	sort.SliceStable(sorted, func(i, j int) bool { return sorted[i].Order < sorted[j].Order })

	m.templateSeq++
	tpl := &Template{
		ID:          fmt.Sprintf("template-%d", m.templateSeq),
		Name:        name,
		Category:    category,
		Description: description,
		Steps:       make([]TemplateStep, len(sorted)),
	}
	for i, in := range sorted {
		tpl.Steps[i] = TemplateStep{
			ID:      uuid.NewString(),
			Content: in.Content,
			Order:   i + 1,
		}
	}

	m.templates[tpl.ID] = tpl
	m.persist()
	return cloneTemplate(tpl), nil
}

// Template returns a copy of the template with the given id.
func (m *Manager) Template(id string) (*Template, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	tpl, ok := m.templates[id]
	if !ok {
		return nil, faults.NotFound("template", id)
	}
	return cloneTemplate(tpl), nil
}

// Templates returns all templates, sorted by name for stable listings.
func (m *Manager) Templates() []Template {
	m.mu.Lock()
	defer m.mu.Unlock()

	result := make([]Template, 0, len(m.templates))
	for _, tpl := range m.templates {
		result = append(result, *cloneTemplate(tpl))
	}
	sort.Slice(result, func(i, j int) bool {
		if result[i].Name != result[j].Name {
			return result[i].Name < result[j].Name
		}
		return result[i].ID < result[j].ID
	})
	return result
}

// TemplatesByCategory returns the templates tagged with the given category.
func (m *Manager) TemplatesByCategory(category Category) []Template {
	all := m.Templates()
	result := make([]Template, 0, len(all))
	for _, tpl := range all {
		if tpl.Category == category {
			result = append(result, tpl)
		}
	}
	return result
}

// DeleteTemplate removes a user-defined template. Built-ins are protected.
func (m *Manager) DeleteTemplate(id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	tpl, ok := m.templates[id]
	if !ok {
		return faults.NotFound("template", id)
	}
	if tpl.IsBuiltIn {
		return faults.Validationf("template %q is built-in and cannot be deleted", id)
	}

	delete(m.templates, id)
	m.persist()
	return nil
}

// Artifact returns the named artifact of a template, verbatim.
func (m *Manager) Artifact(templateID, filename string) (*Artifact, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	tpl, ok := m.templates[templateID]
	if !ok {
		return nil, faults.NotFound("template", templateID)
	}
	art, ok := tpl.Artifacts[filename]
	if !ok {
		return nil, faults.NotFound("artifact", filename)
	}
	return &art, nil
}

// --- Session operations ---

// CreateSession instantiates a template into a new session. The session
// gets its own deep copy of the template steps so later edits cannot
// reach back into the catalog. Creating a session bumps the template's
// usage counter and stamps its last-used time.
func (m *Manager) CreateSession(templateID string) (*Session, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	tpl, ok := m.templates[templateID]
	if !ok {
		return nil, faults.NotFound("template", templateID)
	}

	now := timeNow().UTC()
	m.sessionSeq++
	sess := &Session{
		ID:               fmt.Sprintf("session-%d", m.sessionSeq),
		TemplateID:       templateID,
		Steps:            make([]SessionStep, len(tpl.Steps)),
		CurrentStepIndex: 0,
		StartTime:        now,
	}
	for i, step := range tpl.Steps {
		sess.Steps[i] = SessionStep{
			ID:      step.ID,
			Content: step.Content,
			Order:   step.Order,
		}
	}

	tpl.UsageCount++
	used := now
	tpl.LastUsed = &used

	m.sessions[sess.ID] = sess
	m.persist()
	return cloneSession(sess), nil
}

// Session returns a copy of the session with the given id.
func (m *Manager) Session(id string) (*Session, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	sess, ok := m.sessions[id]
	if !ok {
		return nil, faults.NotFound("session", id)
	}
	return cloneSession(sess), nil
}

// Sessions returns all sessions, oldest first.
func (m *Manager) Sessions() []Session {
	m.mu.Lock()
	defer m.mu.Unlock()

	result := make([]Session, 0, len(m.sessions))
	for _, sess := range m.sessions {
		result = append(result, *cloneSession(sess))
	}
	sort.Slice(result, func(i, j int) bool {
		if !result[i].StartTime.Equal(result[j].StartTime) {
			return result[i].StartTime.Before(result[j].StartTime)
		}
		return result[i].ID < result[j].ID
	})
	return result
}

// UpdateStep records content for a step and marks it complete.
//
// The cursor is forward-only: completing a non-final step moves the cursor
// to the following position only if that is ahead of where it already is.
// Re-editing an earlier, already-complete step rewrites its content but
// leaves the flow position alone. Completing the final step stamps the
// session's end time exactly once.
func (m *Manager) UpdateStep(sessionID, stepID, content string) (*SessionStep, *Session, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	sess, ok := m.sessions[sessionID]
	if !ok {
		return nil, nil, faults.NotFound("session", sessionID)
	}

	pos := -1
	for i := range sess.Steps {
		if sess.Steps[i].ID == stepID {
			pos = i
			break
		}
	}
	if pos < 0 {
		return nil, nil, faults.NotFound("step", stepID)
	}

	sess.Steps[pos].Content = content
	sess.Steps[pos].IsComplete = true

	last := len(sess.Steps) - 1
	if pos < last {
		if pos+1 > sess.CurrentStepIndex {
			sess.CurrentStepIndex = pos + 1
		}
	} else {
		sess.CurrentStepIndex = last
		if sess.EndTime == nil {
			done := timeNow().UTC()
			sess.EndTime = &done
		}
	}

	m.persist()
	step := sess.Steps[pos]
	return &step, cloneSession(sess), nil
}

// --- Persistence ---

// persist flushes the full dataset. Failures are logged, never fatal:
// the in-memory state is already updated and the server keeps running.
// Callers must hold m.mu.
func (m *Manager) persist() {
	snapshot := state{
		Templates:   m.templates,
		Sessions:    m.sessions,
		TemplateSeq: m.templateSeq,
		SessionSeq:  m.sessionSeq,
	}
	data, err := json.MarshalIndent(snapshot, "", "  ")
	if err != nil {
		m.log.Warn("marshaling templates dataset", zap.Error(err))
		return
	}
	if err := m.store.Put(blobstore.DatasetTemplates, data); err != nil {
		perr := &faults.PersistenceError{Dataset: blobstore.DatasetTemplates, Err: err}
		m.log.Warn("templates dataset not saved, continuing in-memory", zap.Error(perr))
	}
}

// --- Cloning ---

func cloneTemplate(tpl *Template) *Template {
	out := *tpl
	out.Steps = make([]TemplateStep, len(tpl.Steps))
	copy(out.Steps, tpl.Steps)
	if tpl.Artifacts != nil {
		out.Artifacts = make(map[string]Artifact, len(tpl.Artifacts))
		for name, art := range tpl.Artifacts {
			out.Artifacts[name] = art
		}
	}
	if tpl.LastUsed != nil {
		used := *tpl.LastUsed
		out.LastUsed = &used
	}
	return &out
}

func cloneSession(sess *Session) *Session {
	out := *sess
	out.Steps = make([]SessionStep, len(sess.Steps))
	copy(out.Steps, sess.Steps)
	if sess.EndTime != nil {
		end := *sess.EndTime
		out.EndTime = &end
	}
	return &out
}
