package tools

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/mark3labs/mcp-go/mcp"
	"go.uber.org/zap"

	"github.com/mindframe-mcp/mindframe/internal/blobstore"
	"github.com/mindframe-mcp/mindframe/internal/recommend"
	"github.com/mindframe-mcp/mindframe/internal/thinking"
	"github.com/mindframe-mcp/mindframe/internal/verification"
)

func init() {
	// Freeze time for deterministic tests.
	timeNow = func() time.Time {
		return time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	}
}

// --- Test helpers ---

func newThinkingManager(t *testing.T) *thinking.Manager {
	t.Helper()
	return thinking.NewManager(blobstore.NewFileStore(t.TempDir()), zap.NewNop())
}

func newVerificationManager(t *testing.T) *verification.Manager {
	t.Helper()
	return verification.NewManager(blobstore.NewFileStore(t.TempDir()), zap.NewNop())
}

func makeRequest(args map[string]interface{}) mcp.CallToolRequest {
	req := mcp.CallToolRequest{}
	req.Params.Arguments = args
	return req
}

// isErrorResult checks if the result is a tool error.
func isErrorResult(result *mcp.CallToolResult) bool {
	return result != nil && result.IsError
}

// getResultText extracts the text content from a CallToolResult.
func getResultText(result *mcp.CallToolResult) string {
	if result == nil || len(result.Content) == 0 {
		return ""
	}
	for _, c := range result.Content {
		if tc, ok := c.(mcp.TextContent); ok {
			return tc.Text
		}
	}
	return ""
}

// --- TemplateCreateTool ---

func TestTemplateCreateTool_Success(t *testing.T) {
	tool := NewTemplateCreateTool(newThinkingManager(t))

	req := makeRequest(map[string]interface{}{
		"name":        "API Migration Checklist",
		"category":    "planning",
		"description": "walks an API migration from inventory to cutover",
		"steps":       `[{"content": "Inventory the endpoints", "order": 1}, {"content": "Plan the cutover", "order": 2}]`,
	})

	result, err := tool.Handle(context.Background(), req)
	if err != nil {
		t.Fatalf("Handle failed: %v", err)
	}
	if isErrorResult(result) {
		t.Fatalf("expected success, got error: %s", getResultText(result))
	}

	text := getResultText(result)
	if !strings.Contains(text, "Template Created") {
		t.Errorf("result should announce the creation, got: %s", text)
	}
	if !strings.Contains(text, "template-1") {
		t.Errorf("result should show the new template id, got: %s", text)
	}
}

func TestTemplateCreateTool_BadStepsJSON(t *testing.T) {
	tool := NewTemplateCreateTool(newThinkingManager(t))

	req := makeRequest(map[string]interface{}{
		"name":        "Broken",
		"category":    "custom",
		"description": "broken steps",
		"steps":       `not json`,
	})

	result, err := tool.Handle(context.Background(), req)
	if err != nil {
		t.Fatalf("Handle returned internal error: %v", err)
	}
	if !isErrorResult(result) {
		t.Fatal("invalid steps JSON should produce an error result")
	}
	if !strings.Contains(getResultText(result), "JSON") {
		t.Errorf("error should mention JSON, got: %s", getResultText(result))
	}
}

func TestTemplateCreateTool_ValidationError(t *testing.T) {
	tool := NewTemplateCreateTool(newThinkingManager(t))

	req := makeRequest(map[string]interface{}{
		"name":        "",
		"category":    "custom",
		"description": "no name",
		"steps":       `[{"content": "a step", "order": 1}]`,
	})

	result, err := tool.Handle(context.Background(), req)
	if err != nil {
		t.Fatalf("validation failures must not surface as Go errors: %v", err)
	}
	if !isErrorResult(result) {
		t.Fatal("missing name should produce an error result")
	}
}

// --- TemplateListTool / TemplateShowTool / TemplateDeleteTool ---

func TestTemplateListTool_ShowsBuiltins(t *testing.T) {
	tool := NewTemplateListTool(newThinkingManager(t))

	result, err := tool.Handle(context.Background(), makeRequest(map[string]interface{}{}))
	if err != nil {
		t.Fatalf("Handle failed: %v", err)
	}
	text := getResultText(result)
	for _, id := range []string{"first-principles", "root-cause", "decision-matrix"} {
		if !strings.Contains(text, id) {
			t.Errorf("listing should include built-in %q", id)
		}
	}
}

func TestTemplateShowTool_UnknownTemplate(t *testing.T) {
	tool := NewTemplateShowTool(newThinkingManager(t))

	result, err := tool.Handle(context.Background(), makeRequest(map[string]interface{}{
		"template_id": "template-999",
	}))
	if err != nil {
		t.Fatalf("not-found must not surface as a Go error: %v", err)
	}
	if !isErrorResult(result) {
		t.Fatal("unknown template should produce an error result")
	}
	if !strings.Contains(getResultText(result), "not found") {
		t.Errorf("error should say not found, got: %s", getResultText(result))
	}
}

func TestTemplateDeleteTool_BuiltinProtected(t *testing.T) {
	tool := NewTemplateDeleteTool(newThinkingManager(t))

	result, err := tool.Handle(context.Background(), makeRequest(map[string]interface{}{
		"template_id": "first-principles",
	}))
	if err != nil {
		t.Fatalf("Handle failed: %v", err)
	}
	if !isErrorResult(result) {
		t.Fatal("deleting a built-in should produce an error result")
	}
	if !strings.Contains(getResultText(result), "built-in") {
		t.Errorf("error should explain the built-in guard, got: %s", getResultText(result))
	}
}

// --- ArtifactShowTool ---

func TestArtifactShowTool_ReturnsVerbatimContent(t *testing.T) {
	m := newThinkingManager(t)
	tool := NewArtifactShowTool(m)

	result, err := tool.Handle(context.Background(), makeRequest(map[string]interface{}{
		"template_id": "project-planning",
		"filename":    "plan.md",
	}))
	if err != nil {
		t.Fatalf("Handle failed: %v", err)
	}
	if isErrorResult(result) {
		t.Fatalf("expected success, got error: %s", getResultText(result))
	}

	art, err := m.Artifact("project-planning", "plan.md")
	if err != nil {
		t.Fatalf("Artifact lookup failed: %v", err)
	}
	if !strings.Contains(getResultText(result), art.Content) {
		t.Error("artifact content should be returned verbatim")
	}
}

// --- Session flow: start → complete steps → show ---

func TestSessionFlow_EndToEnd(t *testing.T) {
	m := newThinkingManager(t)
	start := NewSessionStartTool(m)
	complete := NewStepCompleteTool(m)
	show := NewSessionShowTool(m)

	result, err := start.Handle(context.Background(), makeRequest(map[string]interface{}{
		"template_id": "claim-check",
	}))
	if err != nil {
		t.Fatalf("session start failed: %v", err)
	}
	if isErrorResult(result) {
		t.Fatalf("expected success, got error: %s", getResultText(result))
	}
	if !strings.Contains(getResultText(result), "session-1") {
		t.Fatalf("start should report the session id, got: %s", getResultText(result))
	}

	sess, err := m.Session("session-1")
	if err != nil {
		t.Fatalf("Session lookup failed: %v", err)
	}

	// Complete every step in order; the last one closes the session.
	for i, step := range sess.Steps {
		result, err = complete.Handle(context.Background(), makeRequest(map[string]interface{}{
			"session_id": sess.ID,
			"step_id":    step.ID,
			"content":    "thinking recorded for this step",
		}))
		if err != nil {
			t.Fatalf("step %d complete failed: %v", i, err)
		}
		if isErrorResult(result) {
			t.Fatalf("step %d complete errored: %s", i, getResultText(result))
		}
	}
	if !strings.Contains(getResultText(result), "Session complete") {
		t.Errorf("final completion should announce the close, got: %s", getResultText(result))
	}

	result, err = show.Handle(context.Background(), makeRequest(map[string]interface{}{
		"session_id": sess.ID,
	}))
	if err != nil {
		t.Fatalf("session show failed: %v", err)
	}
	text := getResultText(result)
	if !strings.Contains(text, "thinking recorded for this step") {
		t.Error("session show should render the recorded thinking")
	}
	if strings.Contains(text, "⬜") {
		t.Error("a closed session should have no unstarted steps")
	}
}

func TestStepCompleteTool_RequiresContent(t *testing.T) {
	m := newThinkingManager(t)
	sess, err := m.CreateSession("root-cause")
	if err != nil {
		t.Fatalf("CreateSession failed: %v", err)
	}

	tool := NewStepCompleteTool(m)
	result, err := tool.Handle(context.Background(), makeRequest(map[string]interface{}{
		"session_id": sess.ID,
		"step_id":    sess.Steps[0].ID,
		"content":    "   ",
	}))
	if err != nil {
		t.Fatalf("Handle failed: %v", err)
	}
	if !isErrorResult(result) {
		t.Fatal("blank content should produce an error result")
	}
}

// --- Recommendation flow: recommend → feedback → stats ---

func TestRecommendTool_DebuggingProblem(t *testing.T) {
	tool := NewRecommendTool(newThinkingManager(t))

	result, err := tool.Handle(context.Background(), makeRequest(map[string]interface{}{
		"description": "the importer crashes and is not working since the schema change",
	}))
	if err != nil {
		t.Fatalf("Handle failed: %v", err)
	}
	if isErrorResult(result) {
		t.Fatalf("expected success, got error: %s", getResultText(result))
	}

	text := getResultText(result)
	if !strings.Contains(text, "**Detected category:** debugging") {
		t.Errorf("should detect debugging, got: %s", text)
	}
	if !strings.Contains(text, "root-cause") {
		t.Errorf("the debugging built-in should be a candidate, got: %s", text)
	}
}

func TestRecommendTool_ContextSignals(t *testing.T) {
	tool := NewRecommendTool(newThinkingManager(t))

	result, err := tool.Handle(context.Background(), makeRequest(map[string]interface{}{
		"description": "urgent: decide between two database options before the deadline",
	}))
	if err != nil {
		t.Fatalf("Handle failed: %v", err)
	}
	text := getResultText(result)
	if !strings.Contains(text, "Context Signals") {
		t.Errorf("detected factors should be reported, got: %s", text)
	}
	if !strings.Contains(text, "time_pressure") {
		t.Errorf("time pressure factor missing, got: %s", text)
	}
}

func TestRecommendTool_RequiresDescription(t *testing.T) {
	tool := NewRecommendTool(newThinkingManager(t))

	result, err := tool.Handle(context.Background(), makeRequest(map[string]interface{}{}))
	if err != nil {
		t.Fatalf("Handle failed: %v", err)
	}
	if !isErrorResult(result) {
		t.Fatal("missing description should produce an error result")
	}
}

func TestRecommendFeedbackAndStats(t *testing.T) {
	m := newThinkingManager(t)
	history := recommend.NewHistory(0)
	feedback := NewRecommendFeedbackTool(m, history)
	stats := NewRecommendStatsTool(history)

	result, err := feedback.Handle(context.Background(), makeRequest(map[string]interface{}{
		"template_id": "root-cause",
		"subject":     "importer crash",
		"accepted":    true,
	}))
	if err != nil {
		t.Fatalf("feedback failed: %v", err)
	}
	if isErrorResult(result) {
		t.Fatalf("expected success, got error: %s", getResultText(result))
	}
	if history.Len() != 1 {
		t.Fatalf("history Len = %d, want 1", history.Len())
	}

	result, err = stats.Handle(context.Background(), makeRequest(map[string]interface{}{}))
	if err != nil {
		t.Fatalf("stats failed: %v", err)
	}
	text := getResultText(result)
	if !strings.Contains(text, "debugging") {
		t.Errorf("stats should break acceptance down by category, got: %s", text)
	}
}

func TestRecommendFeedbackTool_UnknownTemplate(t *testing.T) {
	m := newThinkingManager(t)
	tool := NewRecommendFeedbackTool(m, recommend.NewHistory(0))

	result, err := tool.Handle(context.Background(), makeRequest(map[string]interface{}{
		"template_id": "template-999",
		"subject":     "anything",
		"accepted":    false,
	}))
	if err != nil {
		t.Fatalf("Handle failed: %v", err)
	}
	if !isErrorResult(result) {
		t.Fatal("unknown template should produce an error result")
	}
}

// --- Verification flow: create → add steps → update → show ---

func TestVerificationFlow_EndToEnd(t *testing.T) {
	m := newVerificationManager(t)
	create := NewChainCreateTool(m)
	add := NewChainStepAddTool(m)
	update := NewChainStepUpdateTool(m)
	show := NewChainShowTool(m)

	result, err := create.Handle(context.Background(), makeRequest(map[string]interface{}{
		"subject": "the cache invalidation design is sound",
	}))
	if err != nil {
		t.Fatalf("chain create failed: %v", err)
	}
	if !strings.Contains(getResultText(result), "chain-1") {
		t.Fatalf("create should report the chain id, got: %s", getResultText(result))
	}

	result, err = add.Handle(context.Background(), makeRequest(map[string]interface{}{
		"chain_id": "chain-1",
		"type":     "logical",
		"claim":    "every write path invalidates the cache key",
	}))
	if err != nil {
		t.Fatalf("step add failed: %v", err)
	}
	if isErrorResult(result) {
		t.Fatalf("step add errored: %s", getResultText(result))
	}

	chain, err := m.Chain("chain-1")
	if err != nil {
		t.Fatalf("Chain lookup failed: %v", err)
	}
	stepID := chain.Steps[0].ID

	result, err = update.Handle(context.Background(), makeRequest(map[string]interface{}{
		"chain_id":     "chain-1",
		"step_id":      stepID,
		"verification": "traced all four write paths in the handler layer",
		"status":       "verified",
		"confidence":   0.9,
		"evidence":     "each path calls invalidate()",
	}))
	if err != nil {
		t.Fatalf("step update failed: %v", err)
	}
	text := getResultText(result)
	if !strings.Contains(text, "All claims verified") {
		t.Errorf("a fully verified chain should be celebrated, got: %s", text)
	}

	result, err = show.Handle(context.Background(), makeRequest(map[string]interface{}{
		"chain_id": "chain-1",
	}))
	if err != nil {
		t.Fatalf("chain show failed: %v", err)
	}
	text = getResultText(result)
	if !strings.Contains(text, "each path calls invalidate()") {
		t.Error("chain show should render the evidence")
	}
	if !strings.Contains(text, "**Status:** verified") {
		t.Errorf("chain show should report the derived status, got: %s", text)
	}
}

func TestChainStepUpdateTool_FailedChainWarning(t *testing.T) {
	m := newVerificationManager(t)
	chain, err := m.CreateChain("a shaky subject")
	if err != nil {
		t.Fatalf("CreateChain failed: %v", err)
	}
	step, _, err := m.AddStep(chain.ID, verification.AddStepParams{
		Type:  verification.TypeFactual,
		Claim: "the docs say so",
	})
	if err != nil {
		t.Fatalf("AddStep failed: %v", err)
	}

	tool := NewChainStepUpdateTool(m)
	result, err := tool.Handle(context.Background(), makeRequest(map[string]interface{}{
		"chain_id":        chain.ID,
		"step_id":         step.ID,
		"verification":    "the docs say the opposite",
		"status":          "failed",
		"counter_example": "section 2.3 contradicts the claim",
	}))
	if err != nil {
		t.Fatalf("Handle failed: %v", err)
	}
	text := getResultText(result)
	if !strings.Contains(text, "failed claim") {
		t.Errorf("a failed chain should carry a warning, got: %s", text)
	}
	if !strings.Contains(text, "section 2.3 contradicts the claim") {
		t.Errorf("the counterexample should be rendered, got: %s", text)
	}
}

func TestChainStepUpdateTool_MergeOmittedEvidence(t *testing.T) {
	m := newVerificationManager(t)
	chain, _ := m.CreateChain("merge semantics")
	step, _, _ := m.AddStep(chain.ID, verification.AddStepParams{
		Type:     verification.TypeCode,
		Claim:    "the handler is idempotent",
		Evidence: "replayed the request twice",
	})

	tool := NewChainStepUpdateTool(m)
	// No evidence argument at all: the stored value must survive.
	_, err := tool.Handle(context.Background(), makeRequest(map[string]interface{}{
		"chain_id":     chain.ID,
		"step_id":      step.ID,
		"verification": "re-checked",
		"status":       "verified",
	}))
	if err != nil {
		t.Fatalf("Handle failed: %v", err)
	}

	got, _ := m.Chain(chain.ID)
	if got.Steps[0].Evidence != "replayed the request twice" {
		t.Errorf("omitted evidence should keep stored value, got %q", got.Steps[0].Evidence)
	}

	// An explicit empty string clears it.
	_, err = tool.Handle(context.Background(), makeRequest(map[string]interface{}{
		"chain_id":     chain.ID,
		"step_id":      step.ID,
		"verification": "evidence withdrawn",
		"status":       "in_progress",
		"evidence":     "",
	}))
	if err != nil {
		t.Fatalf("Handle failed: %v", err)
	}
	got, _ = m.Chain(chain.ID)
	if got.Steps[0].Evidence != "" {
		t.Errorf("explicit empty evidence should clear, got %q", got.Steps[0].Evidence)
	}
}

func TestChainListTool_EmptyAndPopulated(t *testing.T) {
	m := newVerificationManager(t)
	tool := NewChainListTool(m)

	result, err := tool.Handle(context.Background(), makeRequest(map[string]interface{}{}))
	if err != nil {
		t.Fatalf("Handle failed: %v", err)
	}
	if !strings.Contains(getResultText(result), "No verification chains yet") {
		t.Errorf("empty listing should say so, got: %s", getResultText(result))
	}

	_, _ = m.CreateChain("subject one")
	result, _ = tool.Handle(context.Background(), makeRequest(map[string]interface{}{}))
	if !strings.Contains(getResultText(result), "chain-1") {
		t.Errorf("listing should include chain-1, got: %s", getResultText(result))
	}
}
