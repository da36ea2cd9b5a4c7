package generation

import "fmt"

// FallbackReflection returns the deterministic reflection text used when the
// language model cannot be reached. It always references the choice the user
// made so the response stays meaningful without model output.
func FallbackReflection(input ReflectionInput) Reflection {
	text := fmt.Sprintf(
		"You chose: %s. This decision reflects thoughtful consideration of your financial situation. "+
			"Remember that financial decisions have both short-term and long-term impacts. "+
			"Keep learning and building your financial knowledge!",
		input.ChoiceText,
	)
	return Reflection{Text: text, Source: SourceFallback}
}

// FallbackExplanation returns the deterministic explanation text used when the
// language model cannot be reached.
func FallbackExplanation(input ExplainInput) Reflection {
	text := fmt.Sprintf(
		"Here's a simple explanation of %s: AI-powered explanations are temporarily unavailable. "+
			"In the meantime, consider exploring this concept through our lessons.",
		input.Concept,
	)
	return Reflection{Text: text, Source: SourceFallback}
}

// FallbackSimulationSummary returns the deterministic summary text used when
// the language model cannot be reached. The numbers come straight from the
// projection, so the response is still accurate.
func FallbackSimulationSummary(input SimulationInput) Reflection {
	text := fmt.Sprintf(
		"Based on your simulation: starting with $%.2f and contributing $%.2f monthly at %.1f%% "+
			"annual return for %d years, you would have approximately $%.2f. Of that, $%.2f would be "+
			"your own contributions and $%.2f investment gains.",
		input.InitialAmount,
		input.MonthlyContribution,
		input.AnnualReturn,
		input.Years,
		input.FinalValue,
		input.TotalContributions,
		input.Gains,
	)
	return Reflection{Text: text, Source: SourceFallback}
}
