package api

import (
	"log/slog"
	"net/http"

	"github.com/empowermint/empowermint-api/internal/api/shared"
	"github.com/empowermint/empowermint-api/internal/domain"
	"github.com/empowermint/empowermint-api/internal/domain/wealth"
	"github.com/empowermint/empowermint-api/internal/generation"
)

// AIHandler handles the generation-backed helper endpoints: concept
// explanations and wealth projection narratives. Neither endpoint can fail
// because of the language model; generation always degrades to fallback text.
type AIHandler struct {
	generator generation.Generator
	logger    *slog.Logger
}

// NewAIHandler creates a new AIHandler.
func NewAIHandler(generator generation.Generator, log *slog.Logger) *AIHandler {
	return &AIHandler{
		generator: generator,
		logger:    log.With(slog.String("component", "ai_handler")),
	}
}

// Explain handles POST /ai/explain requests.
func (h *AIHandler) Explain(w http.ResponseWriter, r *http.Request) {
	var req ExplainRequest
	if err := shared.DecodeJSON(w, r, &req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, err.Error())
		return
	}
	if err := shared.ValidateRequest(&req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, err.Error())
		return
	}

	result := h.generator.Explain(r.Context(), generation.ExplainInput{
		Concept: req.Concept,
		Context: req.Context,
		Profile: generation.PromptProfile{
			ExperienceLevel: domain.ExperienceLevel(req.ExperienceLevel),
			LearningStyle:   domain.LearningStyle(req.LearningStyle),
		},
	})

	shared.RespondWithJSON(w, http.StatusOK, ExplainResponse{
		Explanation: generationResultModel{
			Text:   result.Text,
			Source: string(result.Source),
		},
	})
}

// SimulateWealth handles POST /ai/simulate-wealth requests. The projection
// itself is deterministic; only the narrative summary involves generation.
func (h *AIHandler) SimulateWealth(w http.ResponseWriter, r *http.Request) {
	var req SimulateWealthRequest
	if err := shared.DecodeJSON(w, r, &req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, err.Error())
		return
	}
	if err := shared.ValidateRequest(&req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, err.Error())
		return
	}

	projection := wealth.Project(req.InitialAmount, req.MonthlyContribution, req.AnnualReturn, req.Years)

	explanation := h.generator.ExplainSimulation(r.Context(), generation.SimulationInput{
		InitialAmount:       req.InitialAmount,
		MonthlyContribution: req.MonthlyContribution,
		AnnualReturn:        req.AnnualReturn,
		Years:               req.Years,
		FinalValue:          projection.FinalValue,
		TotalContributions:  projection.TotalContributions,
		Gains:               projection.Gains,
		Profile: generation.PromptProfile{
			ExperienceLevel: domain.ExperienceLevel(req.ExperienceLevel),
			LearningStyle:   domain.LearningStyle(req.LearningStyle),
		},
	})

	dataPoints := make([]WealthDataPointModel, 0, len(projection.DataPoints))
	for _, dp := range projection.DataPoints {
		dataPoints = append(dataPoints, WealthDataPointModel{Year: dp.Year, Value: dp.Value})
	}

	shared.RespondWithJSON(w, http.StatusOK, SimulateWealthResponse{
		DataPoints:         dataPoints,
		FinalValue:         projection.FinalValue,
		TotalContributions: projection.TotalContributions,
		Gains:              projection.Gains,
		Explanation: generationResultModel{
			Text:   explanation.Text,
			Source: string(explanation.Source),
		},
	})
}
