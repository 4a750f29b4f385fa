package thinking

// Built-in templates seeded into the catalog at construction. They cannot
// be deleted; only their usage counters persist across restarts. Step ids
// are stable strings so sessions created from built-ins survive upgrades.

// builtinSeeds returns fresh copies of the built-in templates. Callers get
// their own slice — the seed data itself is never aliased into the catalog.
func builtinSeeds() []Template {
	return []Template{
		{
			ID:          "first-principles",
			Name:        "First Principles Analysis",
			Category:    CategoryAnalysis,
			Description: "Break a problem down to fundamental truths and rebuild from there",
			IsBuiltIn:   true,
			Steps: []TemplateStep{
				{ID: "first-principles-1", Order: 1, Content: "State the problem in one sentence without jargon"},
				{ID: "first-principles-2", Order: 2, Content: "List every assumption you are making about the problem"},
				{ID: "first-principles-3", Order: 3, Content: "For each assumption, ask: is this demonstrably true, or inherited?"},
				{ID: "first-principles-4", Order: 4, Content: "Identify the fundamental constraints that cannot be changed"},
				{ID: "first-principles-5", Order: 5, Content: "Rebuild a solution using only verified facts and hard constraints"},
				{ID: "first-principles-6", Order: 6, Content: "Compare the rebuilt solution against the conventional approach"},
			},
		},
		{
			ID:          "project-planning",
			Name:        "Project Planning Breakdown",
			Category:    CategoryPlanning,
			Description: "Turn a goal into milestones, tasks, dependencies, and risks",
			IsBuiltIn:   true,
			Steps: []TemplateStep{
				{ID: "project-planning-1", Order: 1, Content: "Define the goal and the measurable outcome that means done"},
				{ID: "project-planning-2", Order: 2, Content: "List the major deliverables needed to reach the goal"},
				{ID: "project-planning-3", Order: 3, Content: "Break each deliverable into concrete tasks"},
				{ID: "project-planning-4", Order: 4, Content: "Map dependencies between tasks and find the critical path"},
				{ID: "project-planning-5", Order: 5, Content: "Identify the top risks and a mitigation for each"},
				{ID: "project-planning-6", Order: 6, Content: "Estimate effort and assign a rough timeline to milestones"},
				{ID: "project-planning-7", Order: 7, Content: "Define checkpoints where the plan gets re-evaluated"},
			},
			Artifacts: map[string]Artifact{
				"plan.md": {
					Description: "Project plan skeleton with milestones and task tables",
					Content: "# Project Plan: {{project_name}}\n\n## Goal\n\n{{goal}}\n\n" +
						"## Milestones\n\n| Milestone | Deliverables | Target |\n|---|---|---|\n\n" +
						"## Tasks\n\n| ID | Task | Depends on | Estimate |\n|---|---|---|---|\n\n" +
						"## Checkpoints\n\n- [ ] \n",
				},
				"risks.md": {
					Description: "Risk register skeleton",
					Content: "# Risk Register: {{project_name}}\n\n" +
						"| Risk | Likelihood | Impact | Mitigation |\n|---|---|---|---|\n",
				},
			},
		},
		{
			ID:          "root-cause",
			Name:        "Root Cause Investigation",
			Category:    CategoryDebugging,
			Description: "Systematically isolate the cause of a failure or bug",
			IsBuiltIn:   true,
			Steps: []TemplateStep{
				{ID: "root-cause-1", Order: 1, Content: "Describe the observed failure precisely: what happens vs what should happen"},
				{ID: "root-cause-2", Order: 2, Content: "Establish when it last worked and what changed since"},
				{ID: "root-cause-3", Order: 3, Content: "Reproduce the failure with the smallest possible input"},
				{ID: "root-cause-4", Order: 4, Content: "Form a hypothesis and design a test that could falsify it"},
				{ID: "root-cause-5", Order: 5, Content: "Run the test; if the hypothesis survives, narrow it further, otherwise form a new one"},
				{ID: "root-cause-6", Order: 6, Content: "State the root cause and why the fix addresses it rather than the symptom"},
			},
		},
		{
			ID:          "decision-matrix",
			Name:        "Weighted Decision Matrix",
			Category:    CategoryDecision,
			Description: "Choose between options using explicit criteria and weights",
			IsBuiltIn:   true,
			Steps: []TemplateStep{
				{ID: "decision-matrix-1", Order: 1, Content: "List the options under consideration, including doing nothing"},
				{ID: "decision-matrix-2", Order: 2, Content: "Define the criteria that matter and weight them by importance"},
				{ID: "decision-matrix-3", Order: 3, Content: "Score each option against each criterion"},
				{ID: "decision-matrix-4", Order: 4, Content: "Compute weighted totals and rank the options"},
				{ID: "decision-matrix-5", Order: 5, Content: "Sanity-check the winner: does the ranking survive small weight changes?"},
				{ID: "decision-matrix-6", Order: 6, Content: "Record the decision, the runner-up, and the conditions that would reverse it"},
			},
		},
		{
			ID:          "research-scan",
			Name:        "Research Question Scan",
			Category:    CategoryResearch,
			Description: "Structure an open question into sources, findings, and synthesis",
			IsBuiltIn:   true,
			Steps: []TemplateStep{
				{ID: "research-scan-1", Order: 1, Content: "Phrase the research question so a yes/no or ranked answer is possible"},
				{ID: "research-scan-2", Order: 2, Content: "List what is already known and what is assumed"},
				{ID: "research-scan-3", Order: 3, Content: "Identify candidate sources and rank them by reliability"},
				{ID: "research-scan-4", Order: 4, Content: "Collect findings per source, noting contradictions"},
				{ID: "research-scan-5", Order: 5, Content: "Synthesize an answer and state the remaining unknowns"},
			},
		},
		{
			ID:          "claim-check",
			Name:        "Claim Verification Walkthrough",
			Category:    CategoryVerification,
			Description: "Validate a claim or result before relying on it",
			IsBuiltIn:   true,
			Steps: []TemplateStep{
				{ID: "claim-check-1", Order: 1, Content: "State the claim exactly as it would need to hold"},
				{ID: "claim-check-2", Order: 2, Content: "Classify the claim: logical, factual, code, mathematical, or consistency"},
				{ID: "claim-check-3", Order: 3, Content: "Gather the evidence that supports it, with sources"},
				{ID: "claim-check-4", Order: 4, Content: "Actively search for a counterexample or conflicting evidence"},
				{ID: "claim-check-5", Order: 5, Content: "Assign a confidence level and state what would change it"},
			},
		},
	}
}
