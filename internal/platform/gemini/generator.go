package gemini

import (
	"bytes"
	"context"
	"embed"
	"fmt"
	"log/slog"
	"text/template"
	"time"

	"google.golang.org/genai"

	"github.com/empowermint/empowermint-api/internal/config"
	"github.com/empowermint/empowermint-api/internal/domain"
	"github.com/empowermint/empowermint-api/internal/generation"
)

//go:embed prompts/*.tmpl
var promptFS embed.FS

// Generator implements the generation.Generator interface using
// Google's Gemini API.
type Generator struct {
	// logger is used for structured logging
	logger *slog.Logger

	// config contains LLM-specific configuration
	config config.LLMConfig

	// templates holds the parsed prompt templates, keyed by file name
	templates *template.Template

	// client is the Gemini API client; nil when no API key is configured,
	// in which case every call returns fallback text
	client *genai.Client

	// model is the name of the Gemini model to use
	model string

	// timeout bounds each individual API call
	timeout time.Duration
}

// NewGenerator creates a new Gemini-backed Generator.
//
// When cfg.GeminiAPIKey is empty the generator still constructs successfully
// but operates in fallback-only mode; this keeps local development working
// without credentials.
func NewGenerator(ctx context.Context, logger *slog.Logger, cfg config.LLMConfig) (*Generator, error) {
	if logger == nil {
		logger = slog.Default()
	}
	logger = logger.With(slog.String("component", "gemini_generator"))

	if cfg.ModelName == "" {
		return nil, fmt.Errorf("%w: model name cannot be empty", generation.ErrInvalidConfig)
	}
	if cfg.RequestTimeoutSeconds <= 0 {
		return nil, fmt.Errorf("%w: request timeout must be positive", generation.ErrInvalidConfig)
	}

	templates, err := template.ParseFS(promptFS, "prompts/*.tmpl")
	if err != nil {
		return nil, fmt.Errorf("%w: failed to parse prompt templates: %v",
			generation.ErrInvalidConfig, err)
	}

	g := &Generator{
		logger:    logger,
		config:    cfg,
		templates: templates,
		model:     cfg.ModelName,
		timeout:   time.Duration(cfg.RequestTimeoutSeconds) * time.Second,
	}

	if cfg.GeminiAPIKey == "" {
		logger.Warn("no Gemini API key configured, generated content will use fallback text")
		return g, nil
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  cfg.GeminiAPIKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("%w: failed to create Gemini client: %v",
			generation.ErrInvalidConfig, err)
	}
	g.client = client

	return g, nil
}

// Ensure Generator implements the generation.Generator interface
var _ generation.Generator = (*Generator)(nil)

// Reflect implements generation.Generator.Reflect
func (g *Generator) Reflect(ctx context.Context, input generation.ReflectionInput) generation.Reflection {
	prompt, err := g.renderPrompt("reflection.tmpl", reflectionPromptData(input))
	if err != nil {
		g.logger.Error("failed to render reflection prompt", slog.String("error", err.Error()))
		return generation.FallbackReflection(input)
	}

	text, err := g.generate(ctx, prompt)
	if err != nil {
		g.logger.Warn("reflection generation failed, using fallback",
			slog.String("error", err.Error()),
			slog.String("scenario", input.ScenarioTitle))
		return generation.FallbackReflection(input)
	}

	return generation.Reflection{Text: text, Source: generation.SourceGenerated}
}

// Explain implements generation.Generator.Explain
func (g *Generator) Explain(ctx context.Context, input generation.ExplainInput) generation.Reflection {
	prompt, err := g.renderPrompt("explain.tmpl", map[string]string{
		"StyleGuidance": styleGuidance(input.Profile),
		"Concept":       input.Concept,
		"Context":       input.Context,
	})
	if err != nil {
		g.logger.Error("failed to render explain prompt", slog.String("error", err.Error()))
		return generation.FallbackExplanation(input)
	}

	text, err := g.generate(ctx, prompt)
	if err != nil {
		g.logger.Warn("explanation generation failed, using fallback",
			slog.String("error", err.Error()),
			slog.String("concept", input.Concept))
		return generation.FallbackExplanation(input)
	}

	return generation.Reflection{Text: text, Source: generation.SourceGenerated}
}

// ExplainSimulation implements generation.Generator.ExplainSimulation
func (g *Generator) ExplainSimulation(ctx context.Context, input generation.SimulationInput) generation.Reflection {
	prompt, err := g.renderPrompt("simulation.tmpl", struct {
		StyleGuidance       string
		InitialAmount       float64
		MonthlyContribution float64
		AnnualReturn        float64
		Years               int
		FinalValue          float64
		TotalContributions  float64
		Gains               float64
	}{
		StyleGuidance:       styleGuidance(input.Profile),
		InitialAmount:       input.InitialAmount,
		MonthlyContribution: input.MonthlyContribution,
		AnnualReturn:        input.AnnualReturn,
		Years:               input.Years,
		FinalValue:          input.FinalValue,
		TotalContributions:  input.TotalContributions,
		Gains:               input.Gains,
	})
	if err != nil {
		g.logger.Error("failed to render simulation prompt", slog.String("error", err.Error()))
		return generation.FallbackSimulationSummary(input)
	}

	text, err := g.generate(ctx, prompt)
	if err != nil {
		g.logger.Warn("simulation summary generation failed, using fallback",
			slog.String("error", err.Error()))
		return generation.FallbackSimulationSummary(input)
	}

	return generation.Reflection{Text: text, Source: generation.SourceGenerated}
}

// generate runs a single bounded model call and returns its text output.
func (g *Generator) generate(ctx context.Context, prompt string) (string, error) {
	if g.client == nil {
		return "", fmt.Errorf("%w: no API key configured", generation.ErrInvalidConfig)
	}

	callCtx, cancel := context.WithTimeout(ctx, g.timeout)
	defer cancel()

	resp, err := g.client.Models.GenerateContent(callCtx, g.model, genai.Text(prompt), nil)
	if err != nil {
		return "", fmt.Errorf("gemini API call failed: %w", err)
	}

	text := resp.Text()
	if text == "" {
		return "", fmt.Errorf("%w: empty response text", generation.ErrInvalidResponse)
	}

	return text, nil
}

// renderPrompt executes the named embedded template with the given data.
func (g *Generator) renderPrompt(name string, data any) (string, error) {
	var buf bytes.Buffer
	if err := g.templates.ExecuteTemplate(&buf, name, data); err != nil {
		return "", err
	}
	return buf.String(), nil
}

// reflectionPromptData flattens a ReflectionInput into template fields,
// formatting each state change as human-readable text.
func reflectionPromptData(input generation.ReflectionInput) map[string]string {
	return map[string]string{
		"StyleGuidance":   styleGuidance(input.Profile),
		"ScenarioTitle":   input.ScenarioTitle,
		"DecisionPrompt":  input.DecisionPrompt,
		"ChoiceText":      input.ChoiceText,
		"SavingsChange":   formatChange(input.Delta.Savings, "Savings"),
		"DebtChange":      formatChange(input.Delta.Debt, "Debt"),
		"StressChange":    formatChange(input.Delta.Stress, "Stress Level"),
		"KnowledgeChange": formatChange(input.Delta.Knowledge, "Financial Knowledge"),
	}
}

func formatChange(change float64, label string) string {
	switch {
	case change > 0:
		return fmt.Sprintf("%s increased by %.1f", label, change)
	case change < 0:
		return fmt.Sprintf("%s decreased by %.1f", label, -change)
	default:
		return fmt.Sprintf("%s stayed the same", label)
	}
}

// styleGuidance maps the user's experience level and learning style onto
// prompt wording instructions.
func styleGuidance(profile generation.PromptProfile) string {
	var levelContext string
	switch profile.ExperienceLevel {
	case domain.ExperienceBeginner:
		levelContext = "Use simple, everyday language. Avoid financial jargon. Use analogies and real-world examples."
	case domain.ExperienceIntermediate:
		levelContext = "You can use some financial terms, but explain them briefly. Provide practical insights."
	default:
		levelContext = "You can use technical terms and provide deeper analysis."
	}

	var styleContext string
	switch profile.LearningStyle {
	case domain.LearningStyleVisual:
		styleContext = "Focus on visual comparisons and concrete examples that help visualize the concept."
	case domain.LearningStyleTextual:
		styleContext = "Provide clear written explanations with structured information."
	default:
		styleContext = "Make it interactive and engaging, connecting to practical scenarios."
	}

	return levelContext + " " + styleContext
}
