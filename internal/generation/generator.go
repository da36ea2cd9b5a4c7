package generation

import (
	"context"

	"github.com/empowermint/empowermint-api/internal/domain"
)

// Source identifies where a piece of generated text came from.
type Source string

// Known sources.
const (
	// SourceGenerated means the text came from the language model.
	SourceGenerated Source = "generated"

	// SourceFallback means the model was unavailable or failed and the text
	// is deterministic template output.
	SourceFallback Source = "fallback"
)

// Reflection is a piece of generated explanatory text together with its origin.
type Reflection struct {
	Text   string `json:"text"`
	Source Source `json:"source"`
}

// PromptProfile carries the user attributes that personalize prompt wording.
// Both fields are optional; zero values produce neutral guidance.
type PromptProfile struct {
	ExperienceLevel domain.ExperienceLevel
	LearningStyle   domain.LearningStyle
}

// StateDelta summarizes how a decision moved the simulated financial state.
type StateDelta struct {
	Savings   float64
	Debt      float64
	Stress    float64
	Knowledge float64
}

// ReflectionInput describes a decision to reflect on.
type ReflectionInput struct {
	ScenarioTitle  string
	DecisionPrompt string
	ChoiceText     string
	Delta          StateDelta
	Profile        PromptProfile
}

// ExplainInput describes a financial concept to explain.
type ExplainInput struct {
	Concept string
	Context string
	Profile PromptProfile
}

// SimulationInput describes a completed wealth projection to summarize.
type SimulationInput struct {
	InitialAmount       float64
	MonthlyContribution float64
	AnnualReturn        float64
	Years               int
	FinalValue          float64
	TotalContributions  float64
	Gains               float64
	Profile             PromptProfile
}

// Generator produces explanatory text for the learning flows. Implementations
// must never return an error: when the model is unavailable or a call fails,
// they return deterministic fallback text with Source set to SourceFallback.
type Generator interface {
	// Reflect produces a short reflection on a scenario decision.
	Reflect(ctx context.Context, input ReflectionInput) Reflection

	// Explain produces an explanation of a financial concept.
	Explain(ctx context.Context, input ExplainInput) Reflection

	// ExplainSimulation produces a narrative summary of a wealth projection.
	ExplainSimulation(ctx context.Context, input SimulationInput) Reflection
}
