package api

import (
	"math"

	"github.com/empowermint/empowermint-api/internal/domain"
)

// Common request/response structures

// ScenarioStateModel is the wire form of a simulated financial state. Every
// field is a pointer so a missing field is distinguishable from a zero value;
// a request that omits any of the six fields is malformed.
type ScenarioStateModel struct {
	Savings            *float64 `json:"savings"            validate:"required"`
	Debt               *float64 `json:"debt"               validate:"required"`
	MonthlyIncome      *float64 `json:"monthlyIncome"      validate:"required"`
	MonthlyExpenses    *float64 `json:"monthlyExpenses"    validate:"required"`
	StressLevel        *float64 `json:"stressLevel"        validate:"required"`
	FinancialKnowledge *float64 `json:"financialKnowledge" validate:"required"`
}

// toDomain converts the wire state to a domain state. Callers must have
// validated the model first; nil fields would panic here.
func (m ScenarioStateModel) toDomain() domain.ScenarioState {
	return domain.ScenarioState{
		Savings:            *m.Savings,
		Debt:               *m.Debt,
		MonthlyIncome:      *m.MonthlyIncome,
		MonthlyExpenses:    *m.MonthlyExpenses,
		StressLevel:        *m.StressLevel,
		FinancialKnowledge: *m.FinancialKnowledge,
	}
}

// isComplete reports whether every field is present and finite. It backs the
// malformed-state check before the engine ever sees the values.
func (m ScenarioStateModel) isComplete() bool {
	for _, f := range []*float64{m.Savings, m.Debt, m.MonthlyIncome, m.MonthlyExpenses, m.StressLevel, m.FinancialKnowledge} {
		if f == nil || math.IsNaN(*f) || math.IsInf(*f, 0) {
			return false
		}
	}
	return true
}

// stateToModel converts a domain state to its wire form.
func stateToModel(s domain.ScenarioState) ScenarioStateModel {
	return ScenarioStateModel{
		Savings:            &s.Savings,
		Debt:               &s.Debt,
		MonthlyIncome:      &s.MonthlyIncome,
		MonthlyExpenses:    &s.MonthlyExpenses,
		StressLevel:        &s.StressLevel,
		FinancialKnowledge: &s.FinancialKnowledge,
	}
}

// DecisionRequest defines the payload for making a decision within a scenario.
type DecisionRequest struct {
	UserID          string             `json:"userId"          validate:"required,uuid"`
	DecisionPointID string             `json:"decisionPointId" validate:"required"`
	ChoiceID        string             `json:"choiceId"        validate:"required"`
	CurrentState    ScenarioStateModel `json:"currentState"    validate:"required"`
}

// DecisionResponse defines the successful response for a decision.
type DecisionResponse struct {
	NewState        ScenarioStateModel    `json:"newState"`
	AIReflection    generationResultModel `json:"aiReflection"`
	XPEarned        int                   `json:"xpEarned"`
	IsFinalDecision bool                  `json:"isFinalDecision"`
	Progress        *ProgressResponse     `json:"progress,omitempty"`
	ProgressSaved   bool                  `json:"progressSaved"`
}

// CompleteScenarioRequest defines the payload for finishing a scenario.
type CompleteScenarioRequest struct {
	UserID     string             `json:"userId"     validate:"required,uuid"`
	FinalState ScenarioStateModel `json:"finalState" validate:"required"`
}

// CompleteScenarioResponse defines the successful response for a scenario completion.
type CompleteScenarioResponse struct {
	XPEarned      int               `json:"xpEarned"`
	HealthScore   int               `json:"financialHealthScore"`
	Progress      *ProgressResponse `json:"progress,omitempty"`
	ProgressSaved bool              `json:"progressSaved"`
}

// CompleteLessonRequest defines the payload for completing a lesson quiz.
// Score is a pointer so that an omitted score fails validation instead of
// silently reading as a perfect-looking zero.
type CompleteLessonRequest struct {
	UserID  string         `json:"userId"  validate:"required,uuid"`
	Score   *float64       `json:"score"   validate:"required,gte=0,lte=100"`
	Answers map[string]int `json:"answers,omitempty"`
}

// CompleteLessonResponse defines the successful response for a lesson completion.
type CompleteLessonResponse struct {
	XPEarned      int               `json:"xpEarned"`
	HealthScore   int               `json:"financialHealthScore"`
	Progress      *ProgressResponse `json:"progress,omitempty"`
	ProgressSaved bool              `json:"progressSaved"`
}

// OnboardingRequest defines the payload for the onboarding endpoint.
type OnboardingRequest struct {
	ExperienceLevel string   `json:"experienceLevel" validate:"required,oneof=beginner intermediate advanced"`
	FinancialGoals  []string `json:"financialGoals"  validate:"required,min=1,dive,required"`
	RiskComfort     int      `json:"riskComfort"     validate:"required,gte=1,lte=10"`
	LearningStyle   string   `json:"learningStyle"   validate:"required,oneof=visual textual interactive"`
}

// OnboardingResponse defines the successful response for onboarding.
type OnboardingResponse struct {
	UserProfile          *domain.UserProfile `json:"userProfile"`
	RecommendedLessons   []string            `json:"recommendedLessons"`
	RecommendedScenarios []string            `json:"recommendedScenarios"`
}

// AccessibilityRequest defines the payload for updating accessibility settings.
type AccessibilityRequest struct {
	FontSize       string `json:"fontSize"       validate:"required,oneof=small medium large"`
	HighContrast   bool   `json:"highContrast"`
	ColorblindMode string `json:"colorblindMode" validate:"required,oneof=none protanopia deuteranopia tritanopia"`
}

// ProgressResponse is the wire form of a progress record.
type ProgressResponse struct {
	UserID               string   `json:"userId"`
	XP                   int      `json:"xp"`
	Level                int      `json:"level"`
	CompletedLessonIDs   []string `json:"completedLessonIds"`
	CompletedScenarioIDs []string `json:"completedScenarioIds"`
	FinancialHealthScore int      `json:"financialHealthScore"`
	LastActivity         string   `json:"lastActivity"`
}

// progressToResponse converts a domain progress record to its wire form.
// Returns nil for a nil record so handlers can pass it straight through.
func progressToResponse(p *domain.Progress) *ProgressResponse {
	if p == nil {
		return nil
	}
	lessons := p.CompletedLessonIDs
	if lessons == nil {
		lessons = []string{}
	}
	scenarios := p.CompletedScenarioIDs
	if scenarios == nil {
		scenarios = []string{}
	}
	return &ProgressResponse{
		UserID:               p.UserID.String(),
		XP:                   p.XP,
		Level:                p.Level,
		CompletedLessonIDs:   lessons,
		CompletedScenarioIDs: scenarios,
		FinancialHealthScore: p.FinancialHealthScore,
		LastActivity:         p.LastActivity.UTC().Format("2006-01-02T15:04:05.000Z"),
	}
}

// generationResultModel is the wire form of generated explanatory text.
type generationResultModel struct {
	Text   string `json:"text"`
	Source string `json:"source"`
}

// ExplainRequest defines the payload for the concept explanation endpoint.
type ExplainRequest struct {
	Concept         string `json:"concept" validate:"required,min=1"`
	Context         string `json:"context,omitempty"`
	ExperienceLevel string `json:"experienceLevel,omitempty" validate:"omitempty,oneof=beginner intermediate advanced"`
	LearningStyle   string `json:"learningStyle,omitempty"   validate:"omitempty,oneof=visual textual interactive"`
}

// ExplainResponse defines the successful response for a concept explanation.
type ExplainResponse struct {
	Explanation generationResultModel `json:"explanation"`
}

// SimulateWealthRequest defines the payload for the wealth projection endpoint.
type SimulateWealthRequest struct {
	InitialAmount       float64 `json:"initialAmount"       validate:"gte=0"`
	MonthlyContribution float64 `json:"monthlyContribution" validate:"gte=0"`
	AnnualReturn        float64 `json:"annualReturn"        validate:"gte=0,lte=100"`
	Years               int     `json:"years"               validate:"required,gte=1,lte=100"`
	ExperienceLevel     string  `json:"experienceLevel,omitempty" validate:"omitempty,oneof=beginner intermediate advanced"`
	LearningStyle       string  `json:"learningStyle,omitempty"   validate:"omitempty,oneof=visual textual interactive"`
}

// WealthDataPointModel is one year of a wealth projection.
type WealthDataPointModel struct {
	Year  int     `json:"year"`
	Value float64 `json:"value"`
}

// SimulateWealthResponse defines the successful response for a wealth projection.
type SimulateWealthResponse struct {
	DataPoints         []WealthDataPointModel `json:"dataPoints"`
	FinalValue         float64                `json:"finalValue"`
	TotalContributions float64                `json:"totalContributions"`
	Gains              float64                `json:"gains"`
	Explanation        generationResultModel  `json:"explanation"`
}

// ScenarioListResponse wraps the scenario catalog listing.
type ScenarioListResponse struct {
	Scenarios []domain.Scenario `json:"scenarios"`
}

// ScenarioResponse wraps a single scenario.
type ScenarioResponse struct {
	Scenario *domain.Scenario `json:"scenario"`
}

// LessonListResponse wraps the lesson catalog listing.
type LessonListResponse struct {
	Lessons []domain.Lesson `json:"lessons"`
}

// LessonResponse wraps a single lesson.
type LessonResponse struct {
	Lesson *domain.Lesson `json:"lesson"`
}
