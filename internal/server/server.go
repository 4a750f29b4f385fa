// Package server wires all MCP components and creates the server instance.
//
// This is the composition root: it creates concrete implementations and
// injects them into the tools/prompts/resources that depend on abstractions.
// No business logic lives here — only wiring.
package server

import (
	"fmt"

	"github.com/mark3labs/mcp-go/server"
	"go.uber.org/zap"

	"github.com/mindframe-mcp/mindframe/internal/blobstore"
	"github.com/mindframe-mcp/mindframe/internal/config"
	"github.com/mindframe-mcp/mindframe/internal/prompts"
	"github.com/mindframe-mcp/mindframe/internal/recommend"
	"github.com/mindframe-mcp/mindframe/internal/resources"
	"github.com/mindframe-mcp/mindframe/internal/thinking"
	"github.com/mindframe-mcp/mindframe/internal/tools"
	"github.com/mindframe-mcp/mindframe/internal/verification"
)

// Version is set at build time via ldflags.
var Version = "dev"

// New creates and configures the MCP server with all tools, prompts,
// and resources registered. This is the single place where all
// dependencies are resolved.
//
// The returned cleanup function flushes the logger and closes the
// SQLite store when that backend is selected. It is always non-nil
// and must be called on shutdown (typically via defer).
func New(cfg config.Config) (*server.MCPServer, func(), error) {
	// Logging goes to stderr so it never interferes with the MCP
	// stdio transport on stdout.
	log, err := zap.NewProduction()
	if err != nil {
		return nil, noop, fmt.Errorf("creating logger: %w", err)
	}

	// --- Create shared dependencies ---

	var store blobstore.Store
	cleanup := func() { _ = log.Sync() }
	switch cfg.Backend {
	case config.BackendSQLite:
		sqlStore, err := blobstore.NewSQLiteStore(cfg.DataDir)
		if err != nil {
			return nil, cleanup, fmt.Errorf("opening sqlite store: %w", err)
		}
		cleanup = func() {
			if err := sqlStore.Close(); err != nil {
				log.Warn("closing sqlite store", zap.Error(err))
			}
			_ = log.Sync()
		}
		store = sqlStore
	default:
		store = blobstore.NewFileStore(cfg.DataDir)
	}

	thinkingMgr := thinking.NewManager(store, log)
	chainMgr := verification.NewManager(store, log)
	history := recommend.NewHistory(0)

	// --- Create the MCP server ---

	s := server.NewMCPServer(
		"mindframe",
		Version,
		server.WithToolCapabilities(true),
		server.WithResourceCapabilities(false, true),
		server.WithPromptCapabilities(true),
		server.WithRecovery(),
		server.WithInstructions(serverInstructions()),
	)

	// --- Register template tools ---

	templateCreate := tools.NewTemplateCreateTool(thinkingMgr)
	s.AddTool(templateCreate.Definition(), templateCreate.Handle)

	templateList := tools.NewTemplateListTool(thinkingMgr)
	s.AddTool(templateList.Definition(), templateList.Handle)

	templateShow := tools.NewTemplateShowTool(thinkingMgr)
	s.AddTool(templateShow.Definition(), templateShow.Handle)

	templateDelete := tools.NewTemplateDeleteTool(thinkingMgr)
	s.AddTool(templateDelete.Definition(), templateDelete.Handle)

	artifactShow := tools.NewArtifactShowTool(thinkingMgr)
	s.AddTool(artifactShow.Definition(), artifactShow.Handle)

	// --- Register session tools ---

	sessionStart := tools.NewSessionStartTool(thinkingMgr)
	s.AddTool(sessionStart.Definition(), sessionStart.Handle)

	stepComplete := tools.NewStepCompleteTool(thinkingMgr)
	s.AddTool(stepComplete.Definition(), stepComplete.Handle)

	sessionShow := tools.NewSessionShowTool(thinkingMgr)
	s.AddTool(sessionShow.Definition(), sessionShow.Handle)

	// --- Register recommendation tools ---

	recommendTool := tools.NewRecommendTool(thinkingMgr)
	s.AddTool(recommendTool.Definition(), recommendTool.Handle)

	feedback := tools.NewRecommendFeedbackTool(thinkingMgr, history)
	s.AddTool(feedback.Definition(), feedback.Handle)

	stats := tools.NewRecommendStatsTool(history)
	s.AddTool(stats.Definition(), stats.Handle)

	// --- Register verification tools ---

	chainCreate := tools.NewChainCreateTool(chainMgr)
	s.AddTool(chainCreate.Definition(), chainCreate.Handle)

	stepAdd := tools.NewChainStepAddTool(chainMgr)
	s.AddTool(stepAdd.Definition(), stepAdd.Handle)

	stepUpdate := tools.NewChainStepUpdateTool(chainMgr)
	s.AddTool(stepUpdate.Definition(), stepUpdate.Handle)

	chainList := tools.NewChainListTool(chainMgr)
	s.AddTool(chainList.Definition(), chainList.Handle)

	chainShow := tools.NewChainShowTool(chainMgr)
	s.AddTool(chainShow.Definition(), chainShow.Handle)

	// --- Register prompts ---

	startPrompt := prompts.NewStartPrompt()
	s.AddPrompt(startPrompt.Definition(), startPrompt.Handle)

	statusPrompt := prompts.NewStatusPrompt()
	s.AddPrompt(statusPrompt.Definition(), statusPrompt.Handle)

	// --- Register resources ---

	resourceHandler := resources.NewHandler(thinkingMgr, chainMgr)
	s.AddResource(resourceHandler.SummaryResource(), resourceHandler.HandleSummary)

	return s, cleanup, nil
}

// noop is the default cleanup function, used before any resource that
// needs closing has been created.
func noop() {}

// serverInstructions returns the system instructions that tell the AI
// how to use mindframe effectively.
func serverInstructions() string {
	return `You have access to mindframe, a structured thinking MCP server.

## WHEN TO ACTIVATE mindframe

Proactively suggest structured thinking when the user:
- Faces a complex problem with no obvious starting point
- Needs to make a decision between several options
- Is debugging something and going in circles
- Asks you to plan, architect, or research something
- Makes a chain of claims that should be verified before acting on them

You do NOT need mindframe for simple questions, one-liner changes, or
tasks with an obvious single path.

## CRITICAL: How Tools Work

mindframe tools are STATE tools, not AI tools. They store thinking YOU
produce. The workflow for each step is:

1. THINK about the step with the user — the template prompt tells you what
2. WRITE your actual conclusions
3. CALL think_step_complete with the real content
4. The tool records it and advances the session

NEVER complete a step with placeholder text. The value of a session is
the recorded reasoning, not the checkmarks.

## Thinking Workflow

1. Call think_template_recommend with the user's problem description.
   It scores built-in and custom templates and returns ranked candidates
   with confidence and reasons.
2. Record which candidate was chosen with think_recommend_feedback —
   this feeds the acceptance statistics.
3. Start a session with think_session_start. The session copies the
   template's steps; later template edits do not affect it.
4. Work through steps in order with think_step_complete. Steps record
   your reasoning and can be completed in any order, but the session
   cursor only moves forward — revisiting an old step never rewinds it.
5. Review the full session with think_session_show.

Custom templates: create with think_template_create when a recurring
workflow isn't covered by the built-ins. Built-in templates cannot be
deleted. Some templates carry output artifacts (think_artifact_show)
you can use as scaffolds for deliverables.

## Verification Chains

When reasoning produces claims that matter, track them:

1. verify_chain_create with the subject under scrutiny
2. verify_step_add for each claim (types: logical, factual, consistency,
   completeness, assumption)
3. Check each claim, then verify_step_update with the outcome, your
   confidence, evidence, and any counterexample found
4. The chain's overall status is derived: one failed claim fails the
   chain; it is verified only when every step is verified

Treat a failed chain as a stop sign — surface it to the user before
building on the subject.

## Recommendation Feedback Loop

Always report back with think_recommend_feedback after a recommendation,
whether accepted or rejected. think_recommend_stats shows acceptance
rates by category and whether recommendations are trending better or
worse — use it to calibrate how much weight to give future suggestions.`
}
