package generation

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFallbackReflection(t *testing.T) {
	t.Parallel()

	got := FallbackReflection(ReflectionInput{
		ScenarioTitle: "Your First Paycheck",
		ChoiceText:    "Set up a monthly budget",
	})

	assert.Equal(t, SourceFallback, got.Source)
	assert.Contains(t, got.Text, "Set up a monthly budget")
	assert.NotEmpty(t, got.Text)
}

func TestFallbackExplanation(t *testing.T) {
	t.Parallel()

	got := FallbackExplanation(ExplainInput{Concept: "compound interest"})

	assert.Equal(t, SourceFallback, got.Source)
	assert.Contains(t, got.Text, "compound interest")
}

func TestFallbackSimulationSummary(t *testing.T) {
	t.Parallel()

	got := FallbackSimulationSummary(SimulationInput{
		InitialAmount:       1000,
		MonthlyContribution: 100,
		AnnualReturn:        7,
		Years:               10,
		FinalValue:          19350.25,
		TotalContributions:  13000,
		Gains:               6350.25,
	})

	assert.Equal(t, SourceFallback, got.Source)
	for _, fragment := range []string{"$1000.00", "$100.00", "7.0%", "10 years", "$19350.25"} {
		assert.True(t, strings.Contains(got.Text, fragment),
			"summary should contain %q, got: %s", fragment, got.Text)
	}
}
