package domain

import (
	"errors"
	"fmt"
	"math"
)

// ScenarioCategory classifies a scenario by the financial situation it
// simulates.
type ScenarioCategory string

// Known scenario categories.
const (
	ScenarioCategoryFirstJob    ScenarioCategory = "first-job"
	ScenarioCategoryRent        ScenarioCategory = "rent"
	ScenarioCategoryDebt        ScenarioCategory = "debt"
	ScenarioCategoryMarketCrash ScenarioCategory = "market-crash"
	ScenarioCategoryEmergency   ScenarioCategory = "emergency"
)

// Difficulty bounds shared by scenarios and lessons.
const (
	MinDifficulty = 1
	MaxDifficulty = 3
)

// Bounds for the rating-scale state fields.
const (
	MinRating = 1
	MaxRating = 10
)

// Bounds for the financial health score.
const (
	MinHealthScore = 0
	MaxHealthScore = 100
)

// Common validation errors for scenario catalog entries.
var (
	ErrEmptyScenarioID     = errors.New("scenario ID cannot be empty")
	ErrEmptyScenarioTitle  = errors.New("scenario title cannot be empty")
	ErrInvalidDifficulty   = errors.New("difficulty must be between 1 and 3")
	ErrNoDecisionPoints    = errors.New("scenario must have at least one decision point")
	ErrNoChoices           = errors.New("decision point must have at least one choice")
	ErrDuplicateChoiceID   = errors.New("choice IDs must be unique within a decision point")
	ErrNonFiniteStateField = errors.New("state field must be a finite number")
)

// ScenarioState is the simulated financial snapshot carried between decisions
// within one playthrough. It is session-scoped: the client round-trips it
// between decision calls and it is never persisted on its own.
type ScenarioState struct {
	Savings            float64 `json:"savings"`
	Debt               float64 `json:"debt"`
	MonthlyIncome      float64 `json:"monthlyIncome"`
	MonthlyExpenses    float64 `json:"monthlyExpenses"`
	StressLevel        float64 `json:"stressLevel"`
	FinancialKnowledge float64 `json:"financialKnowledge"`
}

// Validate checks that every field of the state is a finite number. A state
// assembled from untrusted JSON can carry NaN or infinities through float
// fields, which would poison every later computation.
func (s ScenarioState) Validate() error {
	fields := map[string]float64{
		"savings":            s.Savings,
		"debt":               s.Debt,
		"monthlyIncome":      s.MonthlyIncome,
		"monthlyExpenses":    s.MonthlyExpenses,
		"stressLevel":        s.StressLevel,
		"financialKnowledge": s.FinancialKnowledge,
	}
	for name, v := range fields {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return fmt.Errorf("%w: %s", ErrNonFiniteStateField, name)
		}
	}
	return nil
}

// ImpactDelta carries the signed state changes a choice applies. A choice has
// two of these, labelled short-term and long-term; both are applied together
// when the choice is made.
type ImpactDelta struct {
	SavingsChange   float64 `json:"savingsChange"`
	DebtChange      float64 `json:"debtChange"`
	ExpenseChange   float64 `json:"expenseChange"`
	StressChange    float64 `json:"stressChange"`
	KnowledgeChange float64 `json:"knowledgeChange"`
}

// Choice is a selectable option within a decision point. Choices are
// immutable reference data owned by the catalog.
type Choice struct {
	ID              string      `json:"id"`
	Text            string      `json:"text"`
	ShortTermImpact ImpactDelta `json:"shortTermImpact"`
	LongTermImpact  ImpactDelta `json:"longTermImpact"`
}

// DecisionPoint is one ordered step within a scenario: a prompt plus a
// non-empty set of mutually exclusive choices.
type DecisionPoint struct {
	ID      string   `json:"id"`
	Prompt  string   `json:"prompt"`
	Choices []Choice `json:"choices"`
}

// FindChoice returns the choice with the given ID, or nil if absent.
func (dp *DecisionPoint) FindChoice(choiceID string) *Choice {
	for i := range dp.Choices {
		if dp.Choices[i].ID == choiceID {
			return &dp.Choices[i]
		}
	}
	return nil
}

// Scenario is an immutable catalog entry describing a branching
// financial-decision simulation.
type Scenario struct {
	ID             string           `json:"id"`
	Title          string           `json:"title"`
	Description    string           `json:"description"`
	Category       ScenarioCategory `json:"category"`
	Difficulty     int              `json:"difficultyLevel"`
	DecisionPoints []DecisionPoint  `json:"decisionPoints"`
	InitialState   ScenarioState    `json:"initialState"`
}

// FindDecisionPoint returns the decision point with the given ID, or nil if
// absent.
func (s *Scenario) FindDecisionPoint(decisionPointID string) *DecisionPoint {
	for i := range s.DecisionPoints {
		if s.DecisionPoints[i].ID == decisionPointID {
			return &s.DecisionPoints[i]
		}
	}
	return nil
}

// Validate checks the structural invariants of a scenario catalog entry.
// It is called once at catalog load; a scenario that fails validation is a
// content-authoring bug, not a runtime condition.
func (s *Scenario) Validate() error {
	if s.ID == "" {
		return ErrEmptyScenarioID
	}
	if s.Title == "" {
		return fmt.Errorf("%w: scenario %s", ErrEmptyScenarioTitle, s.ID)
	}
	if s.Difficulty < MinDifficulty || s.Difficulty > MaxDifficulty {
		return fmt.Errorf("%w: scenario %s has difficulty %d", ErrInvalidDifficulty, s.ID, s.Difficulty)
	}
	if len(s.DecisionPoints) == 0 {
		return fmt.Errorf("%w: scenario %s", ErrNoDecisionPoints, s.ID)
	}
	for i := range s.DecisionPoints {
		dp := &s.DecisionPoints[i]
		if len(dp.Choices) == 0 {
			return fmt.Errorf("%w: decision point %s in scenario %s", ErrNoChoices, dp.ID, s.ID)
		}
		seen := make(map[string]bool, len(dp.Choices))
		for _, c := range dp.Choices {
			if seen[c.ID] {
				return fmt.Errorf("%w: choice %s in decision point %s", ErrDuplicateChoiceID, c.ID, dp.ID)
			}
			seen[c.ID] = true
		}
	}
	if err := s.InitialState.Validate(); err != nil {
		return fmt.Errorf("scenario %s initial state: %w", s.ID, err)
	}
	return nil
}

// TerminalDecisionPoint returns the last decision point in the scenario's
// ordered sequence. Reaching it and submitting a final state completes the
// scenario.
func (s *Scenario) TerminalDecisionPoint() *DecisionPoint {
	if len(s.DecisionPoints) == 0 {
		return nil
	}
	return &s.DecisionPoints[len(s.DecisionPoints)-1]
}
