package decision

// Params holds the tunable constants of the decision engine's XP and
// health-score rules.
type Params struct {
	// XPBase is added to the knowledge gain before clamping, guaranteeing a
	// non-trivial award for every decision.
	XPBase int

	// MinDecisionXP and MaxDecisionXP bound the XP awarded per decision,
	// preventing runaway XP farming from scenario replay.
	MinDecisionXP int
	MaxDecisionXP int

	// ScenarioCompletionXP is the fixed bonus for completing a scenario,
	// independent of the path taken.
	ScenarioCompletionXP int

	// MaxLessonXP is the award for a perfect lesson quiz score; lower scores
	// scale proportionally.
	MaxLessonXP int

	// HealthBase and HealthPerKnowledge define the financial-health
	// recomputation at scenario completion:
	// health = clamp(HealthBase + knowledge*HealthPerKnowledge, 0, 100).
	HealthBase         int
	HealthPerKnowledge int
}

// NewDefaultParams returns the standard engine parameters.
func NewDefaultParams() *Params {
	return &Params{
		XPBase:               20,
		MinDecisionXP:        10,
		MaxDecisionXP:        50,
		ScenarioCompletionXP: 100,
		MaxLessonXP:          50,
		HealthBase:           50,
		HealthPerKnowledge:   5,
	}
}
