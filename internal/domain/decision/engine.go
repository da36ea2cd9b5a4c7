// Package decision implements the scenario decision engine: the pure state
// machine that applies a chosen option's effects to a simulated financial
// state and derives XP and health-score awards from the outcome.
package decision

import (
	"math"

	"github.com/empowermint/empowermint-api/internal/domain"
)

// applyChoice computes the new state from the current one by summing both
// impact deltas per field and clamping the result. The short-term and
// long-term labels are descriptive only; both impacts are applied together,
// never sequenced or deferred.
func applyChoice(state domain.ScenarioState, choice *domain.Choice) domain.ScenarioState {
	short := choice.ShortTermImpact
	long := choice.LongTermImpact

	return domain.ScenarioState{
		Savings:         clampFloor(state.Savings+short.SavingsChange+long.SavingsChange, 0),
		Debt:            clampFloor(state.Debt+short.DebtChange+long.DebtChange, 0),
		MonthlyIncome:   state.MonthlyIncome, // passthrough, unmodified by any choice
		MonthlyExpenses: clampFloor(state.MonthlyExpenses+short.ExpenseChange+long.ExpenseChange, 0),
		StressLevel: clampRange(
			state.StressLevel+short.StressChange+long.StressChange,
			domain.MinRating, domain.MaxRating,
		),
		FinancialKnowledge: clampRange(
			state.FinancialKnowledge+short.KnowledgeChange+long.KnowledgeChange,
			domain.MinRating, domain.MaxRating,
		),
	}
}

// decisionXP derives the XP award for a single decision from the knowledge
// gain it produced. The base keeps the minimum meaningful, the clamp bounds
// the maximum.
func decisionXP(oldState, newState domain.ScenarioState, params *Params) int {
	gain := newState.FinancialKnowledge - oldState.FinancialKnowledge
	xp := int(math.Round(gain)) + params.XPBase
	return clampInt(xp, params.MinDecisionXP, params.MaxDecisionXP)
}

// completionHealthScore recomputes the financial health score from the
// knowledge reached at the end of a scenario. Knowledge stays fractional
// through the multiplication; only the final score is rounded.
func completionHealthScore(finalState domain.ScenarioState, params *Params) int {
	score := float64(params.HealthBase) + finalState.FinancialKnowledge*float64(params.HealthPerKnowledge)
	return clampInt(int(math.Round(score)), domain.MinHealthScore, domain.MaxHealthScore)
}

// lessonXP scales the maximum lesson award by the quiz score.
func lessonXP(score float64, params *Params) int {
	return int(math.Round(score / 100 * float64(params.MaxLessonXP)))
}

// lessonHealthScore maps a quiz score onto the health scale. The formula is
// kept distinct from a plain passthrough for symmetry with the scenario path.
func lessonHealthScore(score float64) int {
	return clampInt(int(math.Round(score/100*100)), domain.MinHealthScore, domain.MaxHealthScore)
}

func clampFloor(v, min float64) float64 {
	if v < min {
		return min
	}
	return v
}

func clampRange(v, min, max float64) float64 {
	if v < min {
		return min
	}
	if v > max {
		return max
	}
	return v
}

func clampInt(v, min, max int) int {
	if v < min {
		return min
	}
	if v > max {
		return max
	}
	return v
}
