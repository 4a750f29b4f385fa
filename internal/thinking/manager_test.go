package thinking

import (
	"testing"
	"time"

	"go.uber.org/zap"

	"github.com/mindframe-mcp/mindframe/internal/blobstore"
	"github.com/mindframe-mcp/mindframe/internal/faults"
)

func init() {
	// Freeze time for deterministic tests.
	timeNow = func() time.Time {
		return time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	}
}

// --- Helpers ---

func newTestManager(t *testing.T) *Manager {
	t.Helper()
	return NewManager(blobstore.NewFileStore(t.TempDir()), zap.NewNop())
}

func createTestTemplate(t *testing.T, m *Manager, steps int) *Template {
	t.Helper()
	in := make([]NewStepInput, steps)
	for i := range in {
		in[i] = NewStepInput{Content: "step content", Order: i + 1}
	}
	tpl, err := m.CreateTemplate("Test Template", CategoryCustom, "a test template", in)
	if err != nil {
		t.Fatalf("CreateTemplate failed: %v", err)
	}
	return tpl
}

// --- Built-in catalog ---

func TestNewManager_SeedsBuiltins(t *testing.T) {
	m := newTestManager(t)

	for _, id := range []string{"first-principles", "project-planning", "root-cause", "decision-matrix", "research-scan", "claim-check"} {
		tpl, err := m.Template(id)
		if err != nil {
			t.Fatalf("built-in %q missing: %v", id, err)
		}
		if !tpl.IsBuiltIn {
			t.Errorf("template %q should be marked built-in", id)
		}
		if len(tpl.Steps) == 0 {
			t.Errorf("built-in %q has no steps", id)
		}
	}
}

func TestNewManager_BuiltinUsageSurvivesReload(t *testing.T) {
	dir := t.TempDir()
	store := blobstore.NewFileStore(dir)

	m := NewManager(store, zap.NewNop())
	if _, err := m.CreateSession("root-cause"); err != nil {
		t.Fatalf("CreateSession failed: %v", err)
	}

	m2 := NewManager(store, zap.NewNop())
	tpl, err := m2.Template("root-cause")
	if err != nil {
		t.Fatalf("Template failed after reload: %v", err)
	}
	if tpl.UsageCount != 1 {
		t.Errorf("UsageCount = %d after reload, want 1", tpl.UsageCount)
	}
	if tpl.LastUsed == nil {
		t.Error("LastUsed should survive reload")
	}
}

// --- CreateTemplate ---

func TestCreateTemplate_SequentialIDs(t *testing.T) {
	m := newTestManager(t)

	first := createTestTemplate(t, m, 2)
	second := createTestTemplate(t, m, 2)

	if first.ID != "template-1" {
		t.Errorf("first template ID = %s, want template-1", first.ID)
	}
	if second.ID != "template-2" {
		t.Errorf("second template ID = %s, want template-2", second.ID)
	}
}

func TestCreateTemplate_RenumbersSparseOrders(t *testing.T) {
	m := newTestManager(t)

	tpl, err := m.CreateTemplate("Sparse", CategoryCustom, "sparse orders", []NewStepInput{
		{Content: "third", Order: 30},
		{Content: "first", Order: 5},
		{Content: "second", Order: 10},
	})
	if err != nil {
		t.Fatalf("CreateTemplate failed: %v", err)
	}

	wantContent := []string{"first", "second", "third"}
	for i, step := range tpl.Steps {
		if step.Order != i+1 {
			t.Errorf("step %d order = %d, want %d", i, step.Order, i+1)
		}
		if step.Content != wantContent[i] {
			t.Errorf("step %d content = %q, want %q", i, step.Content, wantContent[i])
		}
		if step.ID == "" {
			t.Errorf("step %d should have a generated id", i)
		}
	}
}

func TestCreateTemplate_RejectsZeroSteps(t *testing.T) {
	m := newTestManager(t)

	_, err := m.CreateTemplate("Empty", CategoryCustom, "no steps", nil)
	if err == nil {
		t.Fatal("CreateTemplate with zero steps should fail")
	}
	if !faults.IsValidation(err) {
		t.Errorf("error should be a ValidationError, got: %v", err)
	}
}

func TestCreateTemplate_NotBuiltIn(t *testing.T) {
	m := newTestManager(t)
	tpl := createTestTemplate(t, m, 1)
	if tpl.IsBuiltIn {
		t.Error("user-created template should not be built-in")
	}
}

// --- Templates / TemplatesByCategory ---

func TestTemplates_SortedByName(t *testing.T) {
	m := newTestManager(t)
	all := m.Templates()
	for i := 1; i < len(all); i++ {
		if all[i-1].Name > all[i].Name {
			t.Fatalf("templates not sorted by name: %q before %q", all[i-1].Name, all[i].Name)
		}
	}
}

func TestTemplatesByCategory(t *testing.T) {
	m := newTestManager(t)
	for _, tpl := range m.TemplatesByCategory(CategoryDebugging) {
		if tpl.Category != CategoryDebugging {
			t.Errorf("template %q has category %s, want debugging", tpl.ID, tpl.Category)
		}
	}
	if len(m.TemplatesByCategory(CategoryDebugging)) == 0 {
		t.Error("expected at least one debugging built-in")
	}
}

// --- DeleteTemplate ---

func TestDeleteTemplate_Custom(t *testing.T) {
	m := newTestManager(t)
	tpl := createTestTemplate(t, m, 1)

	if err := m.DeleteTemplate(tpl.ID); err != nil {
		t.Fatalf("DeleteTemplate failed: %v", err)
	}
	if _, err := m.Template(tpl.ID); !faults.IsNotFound(err) {
		t.Errorf("deleted template should be gone, got: %v", err)
	}
}

func TestDeleteTemplate_BuiltinProtected(t *testing.T) {
	m := newTestManager(t)

	err := m.DeleteTemplate("first-principles")
	if err == nil {
		t.Fatal("deleting a built-in should fail")
	}
	if !faults.IsValidation(err) {
		t.Errorf("error should be a ValidationError, got: %v", err)
	}
	if _, err := m.Template("first-principles"); err != nil {
		t.Errorf("built-in should still exist after failed delete: %v", err)
	}
}

func TestDeleteTemplate_Unknown(t *testing.T) {
	m := newTestManager(t)
	if err := m.DeleteTemplate("template-999"); !faults.IsNotFound(err) {
		t.Errorf("deleting unknown template should be NotFound, got: %v", err)
	}
}

// --- Artifact ---

func TestArtifact_Found(t *testing.T) {
	m := newTestManager(t)

	art, err := m.Artifact("project-planning", "plan.md")
	if err != nil {
		t.Fatalf("Artifact failed: %v", err)
	}
	if art.Content == "" {
		t.Error("artifact content should not be empty")
	}
}

func TestArtifact_UnknownFilename(t *testing.T) {
	m := newTestManager(t)
	if _, err := m.Artifact("project-planning", "nope.md"); !faults.IsNotFound(err) {
		t.Errorf("unknown artifact should be NotFound, got: %v", err)
	}
}

func TestArtifact_UnknownTemplate(t *testing.T) {
	m := newTestManager(t)
	if _, err := m.Artifact("template-999", "plan.md"); !faults.IsNotFound(err) {
		t.Errorf("unknown template should be NotFound, got: %v", err)
	}
}

// --- CreateSession ---

func TestCreateSession_CopiesSteps(t *testing.T) {
	m := newTestManager(t)
	tpl := createTestTemplate(t, m, 3)

	sess, err := m.CreateSession(tpl.ID)
	if err != nil {
		t.Fatalf("CreateSession failed: %v", err)
	}

	if sess.ID != "session-1" {
		t.Errorf("session ID = %s, want session-1", sess.ID)
	}
	if sess.TemplateID != tpl.ID {
		t.Errorf("TemplateID = %s, want %s", sess.TemplateID, tpl.ID)
	}
	if len(sess.Steps) != 3 {
		t.Fatalf("session has %d steps, want 3", len(sess.Steps))
	}
	if sess.CurrentStepIndex != 0 {
		t.Errorf("CurrentStepIndex = %d, want 0", sess.CurrentStepIndex)
	}
	if sess.EndTime != nil {
		t.Error("a fresh session should have no end time")
	}
	for i, step := range sess.Steps {
		if step.IsComplete {
			t.Errorf("step %d should start incomplete", i)
		}
		if step.ID != tpl.Steps[i].ID {
			t.Errorf("step %d id = %s, want %s", i, step.ID, tpl.Steps[i].ID)
		}
	}
}

func TestCreateSession_BumpsUsage(t *testing.T) {
	m := newTestManager(t)
	tpl := createTestTemplate(t, m, 1)

	_, _ = m.CreateSession(tpl.ID)
	_, _ = m.CreateSession(tpl.ID)

	got, err := m.Template(tpl.ID)
	if err != nil {
		t.Fatalf("Template failed: %v", err)
	}
	if got.UsageCount != 2 {
		t.Errorf("UsageCount = %d, want 2", got.UsageCount)
	}
	if got.LastUsed == nil {
		t.Fatal("LastUsed should be set after session creation")
	}
	if !got.LastUsed.Equal(timeNow().UTC()) {
		t.Errorf("LastUsed = %v, want %v", got.LastUsed, timeNow().UTC())
	}
}

func TestCreateSession_UnknownTemplate(t *testing.T) {
	m := newTestManager(t)
	if _, err := m.CreateSession("template-999"); !faults.IsNotFound(err) {
		t.Errorf("unknown template should be NotFound, got: %v", err)
	}
}

func TestCreateSession_DetachedFromTemplate(t *testing.T) {
	m := newTestManager(t)
	tpl := createTestTemplate(t, m, 2)

	sess, _ := m.CreateSession(tpl.ID)

	// Deleting the template must not touch the session.
	if err := m.DeleteTemplate(tpl.ID); err != nil {
		t.Fatalf("DeleteTemplate failed: %v", err)
	}
	got, err := m.Session(sess.ID)
	if err != nil {
		t.Fatalf("Session failed after template delete: %v", err)
	}
	if len(got.Steps) != 2 {
		t.Errorf("session has %d steps after template delete, want 2", len(got.Steps))
	}
}

// --- UpdateStep ---

func TestUpdateStep_AdvancesCursor(t *testing.T) {
	m := newTestManager(t)
	tpl := createTestTemplate(t, m, 3)
	sess, _ := m.CreateSession(tpl.ID)

	step, updated, err := m.UpdateStep(sess.ID, sess.Steps[0].ID, "my conclusions")
	if err != nil {
		t.Fatalf("UpdateStep failed: %v", err)
	}
	if !step.IsComplete {
		t.Error("step should be marked complete")
	}
	if step.Content != "my conclusions" {
		t.Errorf("step content = %q, want recorded thinking", step.Content)
	}
	if updated.CurrentStepIndex != 1 {
		t.Errorf("CurrentStepIndex = %d, want 1", updated.CurrentStepIndex)
	}
	if updated.EndTime != nil {
		t.Error("EndTime should not be set before the final step")
	}
}

func TestUpdateStep_CursorNeverRewinds(t *testing.T) {
	m := newTestManager(t)
	tpl := createTestTemplate(t, m, 4)
	sess, _ := m.CreateSession(tpl.ID)

	// Jump ahead: completing step 3 (index 2) moves the cursor to 3.
	_, updated, err := m.UpdateStep(sess.ID, sess.Steps[2].ID, "done third")
	if err != nil {
		t.Fatalf("UpdateStep failed: %v", err)
	}
	if updated.CurrentStepIndex != 3 {
		t.Fatalf("CurrentStepIndex = %d after step 3, want 3", updated.CurrentStepIndex)
	}

	// Going back to step 1 rewrites content but leaves the cursor alone.
	step, updated, err := m.UpdateStep(sess.ID, sess.Steps[0].ID, "revised first")
	if err != nil {
		t.Fatalf("UpdateStep failed: %v", err)
	}
	if step.Content != "revised first" {
		t.Errorf("re-edit content = %q, want %q", step.Content, "revised first")
	}
	if updated.CurrentStepIndex != 3 {
		t.Errorf("CurrentStepIndex = %d after revisiting step 1, want 3", updated.CurrentStepIndex)
	}
}

func TestUpdateStep_FinalStepClosesSession(t *testing.T) {
	m := newTestManager(t)
	tpl := createTestTemplate(t, m, 2)
	sess, _ := m.CreateSession(tpl.ID)

	_, _, _ = m.UpdateStep(sess.ID, sess.Steps[0].ID, "first")
	_, updated, err := m.UpdateStep(sess.ID, sess.Steps[1].ID, "last")
	if err != nil {
		t.Fatalf("UpdateStep failed: %v", err)
	}

	if updated.CurrentStepIndex != 1 {
		t.Errorf("CurrentStepIndex = %d, want 1 (last index)", updated.CurrentStepIndex)
	}
	if updated.EndTime == nil {
		t.Fatal("EndTime should be stamped on final step completion")
	}
	if !updated.IsComplete() {
		t.Error("session should report complete")
	}
}

func TestUpdateStep_EndTimeStampedOnce(t *testing.T) {
	m := newTestManager(t)
	tpl := createTestTemplate(t, m, 1)
	sess, _ := m.CreateSession(tpl.ID)

	_, first, err := m.UpdateStep(sess.ID, sess.Steps[0].ID, "done")
	if err != nil {
		t.Fatalf("UpdateStep failed: %v", err)
	}

	// Advance the clock; re-completing the final step must not restamp.
	orig := timeNow
	defer func() { timeNow = orig }()
	timeNow = func() time.Time {
		return time.Date(2026, 3, 2, 9, 0, 0, 0, time.UTC)
	}

	_, second, err := m.UpdateStep(sess.ID, sess.Steps[0].ID, "done again")
	if err != nil {
		t.Fatalf("second UpdateStep failed: %v", err)
	}
	if !second.EndTime.Equal(*first.EndTime) {
		t.Errorf("EndTime changed on re-completion: %v → %v", first.EndTime, second.EndTime)
	}
}

func TestUpdateStep_UnknownSession(t *testing.T) {
	m := newTestManager(t)
	if _, _, err := m.UpdateStep("session-999", "step", "content"); !faults.IsNotFound(err) {
		t.Errorf("unknown session should be NotFound, got: %v", err)
	}
}

func TestUpdateStep_UnknownStep(t *testing.T) {
	m := newTestManager(t)
	tpl := createTestTemplate(t, m, 1)
	sess, _ := m.CreateSession(tpl.ID)

	if _, _, err := m.UpdateStep(sess.ID, "no-such-step", "content"); !faults.IsNotFound(err) {
		t.Errorf("unknown step should be NotFound, got: %v", err)
	}
}

// --- Persistence round trip ---

func TestManager_PersistenceRoundTrip(t *testing.T) {
	dir := t.TempDir()
	store := blobstore.NewFileStore(dir)

	m := NewManager(store, zap.NewNop())
	tpl := createTestTemplate(t, m, 2)
	sess, _ := m.CreateSession(tpl.ID)
	_, _, _ = m.UpdateStep(sess.ID, sess.Steps[0].ID, "recorded")

	m2 := NewManager(store, zap.NewNop())

	gotTpl, err := m2.Template(tpl.ID)
	if err != nil {
		t.Fatalf("custom template lost across reload: %v", err)
	}
	if gotTpl.Name != tpl.Name {
		t.Errorf("template name = %q, want %q", gotTpl.Name, tpl.Name)
	}

	gotSess, err := m2.Session(sess.ID)
	if err != nil {
		t.Fatalf("session lost across reload: %v", err)
	}
	if !gotSess.Steps[0].IsComplete {
		t.Error("step completion lost across reload")
	}
	if gotSess.CurrentStepIndex != 1 {
		t.Errorf("CurrentStepIndex = %d after reload, want 1", gotSess.CurrentStepIndex)
	}
	if !gotSess.StartTime.Equal(sess.StartTime) {
		t.Errorf("StartTime = %v after reload, want %v", gotSess.StartTime, sess.StartTime)
	}

	// Id counters continue, never restart.
	next := createTestTemplate(t, m2, 1)
	if next.ID != "template-2" {
		t.Errorf("template ID after reload = %s, want template-2", next.ID)
	}
}

func TestManager_ReturnsCopies(t *testing.T) {
	m := newTestManager(t)
	tpl := createTestTemplate(t, m, 1)

	// Mutating a returned template must not reach the catalog.
	got, _ := m.Template(tpl.ID)
	got.Steps[0].Content = "mutated"

	fresh, _ := m.Template(tpl.ID)
	if fresh.Steps[0].Content == "mutated" {
		t.Error("Template should return a defensive copy")
	}
}
