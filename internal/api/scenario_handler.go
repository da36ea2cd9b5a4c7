// Package api contains the HTTP handlers exposing the learning flows:
// catalog browsing, scenario decisions and completions, lesson completions,
// onboarding, progress retrieval, and the generation-backed helpers.
package api

import (
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/empowermint/empowermint-api/internal/api/shared"
	"github.com/empowermint/empowermint-api/internal/catalog"
	"github.com/empowermint/empowermint-api/internal/domain"
	"github.com/empowermint/empowermint-api/internal/domain/decision"
	"github.com/empowermint/empowermint-api/internal/generation"
	"github.com/empowermint/empowermint-api/internal/platform/logger"
	"github.com/empowermint/empowermint-api/internal/service"
)

// ScenarioHandler handles scenario catalog and gameplay requests.
type ScenarioHandler struct {
	catalog         *catalog.Store
	engine          decision.Service
	generator       generation.Generator
	progressService service.ProgressService
	profileService  service.OnboardingService
	logger          *slog.Logger
	env             string
}

// NewScenarioHandler creates a new ScenarioHandler.
func NewScenarioHandler(
	catalogStore *catalog.Store,
	engine decision.Service,
	generator generation.Generator,
	progressService service.ProgressService,
	profileService service.OnboardingService,
	log *slog.Logger,
	env string,
) *ScenarioHandler {
	return &ScenarioHandler{
		catalog:         catalogStore,
		engine:          engine,
		generator:       generator,
		progressService: progressService,
		profileService:  profileService,
		logger:          log.With(slog.String("component", "scenario_handler")),
		env:             env,
	}
}

// List handles GET /scenarios requests, with optional category and
// difficulty query filters.
func (h *ScenarioHandler) List(w http.ResponseWriter, r *http.Request) {
	filter := catalog.ScenarioFilter{
		Category: domain.ScenarioCategory(r.URL.Query().Get("category")),
	}

	if raw := r.URL.Query().Get("difficulty"); raw != "" {
		difficulty, err := strconv.Atoi(raw)
		if err != nil || difficulty < domain.MinDifficulty || difficulty > domain.MaxDifficulty {
			shared.RespondWithError(w, r, http.StatusBadRequest, "difficulty must be an integer between 1 and 3")
			return
		}
		filter.Difficulty = difficulty
	}

	shared.RespondWithJSON(w, http.StatusOK, ScenarioListResponse{Scenarios: h.catalog.Scenarios(filter)})
}

// Get handles GET /scenarios/{id} requests.
func (h *ScenarioHandler) Get(w http.ResponseWriter, r *http.Request) {
	scenario, err := h.catalog.ScenarioByID(chi.URLParam(r, "id"))
	if err != nil {
		shared.RespondWithError(w, r, MapErrorToStatusCode(err), GetSafeErrorMessage(err))
		return
	}

	shared.RespondWithJSON(w, http.StatusOK, ScenarioResponse{Scenario: scenario})
}

// MakeDecision handles POST /scenarios/{id}/decision requests. It applies the
// chosen option to the submitted state, generates a reflection, and credits
// the earned XP. A failed progress write degrades to progressSaved=false
// rather than discarding the computed outcome.
func (h *ScenarioHandler) MakeDecision(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	var req DecisionRequest
	if err := shared.DecodeJSON(w, r, &req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, err.Error())
		return
	}
	if err := shared.ValidateRequest(&req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, err.Error())
		return
	}
	if !req.CurrentState.isComplete() {
		shared.RespondWithError(w, r, http.StatusBadRequest, "currentState must supply all six numeric fields")
		return
	}

	scenario, err := h.catalog.ScenarioByID(chi.URLParam(r, "id"))
	if err != nil {
		shared.RespondWithError(w, r, MapErrorToStatusCode(err), GetSafeErrorMessage(err))
		return
	}

	currentState := req.CurrentState.toDomain()
	outcome, err := h.engine.ApplyChoice(scenario, req.DecisionPointID, req.ChoiceID, currentState)
	if err != nil {
		shared.RespondWithErrorAndLog(w, r, log, err, errorMessage(err, h.env), MapErrorToStatusCode(err))
		return
	}

	decisionPoint := scenario.FindDecisionPoint(req.DecisionPointID)
	choice := decisionPoint.FindChoice(req.ChoiceID)

	userID, err := uuid.Parse(req.UserID)
	if err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "userId must be a valid UUID")
		return
	}

	reflection := h.generator.Reflect(r.Context(), generation.ReflectionInput{
		ScenarioTitle:  scenario.Title,
		DecisionPrompt: decisionPoint.Prompt,
		ChoiceText:     choice.Text,
		Delta: generation.StateDelta{
			Savings:   outcome.NewState.Savings - currentState.Savings,
			Debt:      outcome.NewState.Debt - currentState.Debt,
			Stress:    outcome.NewState.StressLevel - currentState.StressLevel,
			Knowledge: outcome.NewState.FinancialKnowledge - currentState.FinancialKnowledge,
		},
		Profile: h.promptProfile(r, userID),
	})

	terminal := scenario.TerminalDecisionPoint()
	resp := DecisionResponse{
		NewState: stateToModel(outcome.NewState),
		AIReflection: generationResultModel{
			Text:   reflection.Text,
			Source: string(reflection.Source),
		},
		XPEarned:        outcome.XPEarned,
		IsFinalDecision: terminal != nil && terminal.ID == decisionPoint.ID,
	}

	progress, err := h.progressService.AddXP(r.Context(), userID, outcome.XPEarned)
	if err != nil {
		log.Warn("failed to save decision XP, returning unsaved outcome",
			slog.String("error", err.Error()),
			slog.String("user_id", userID.String()),
			slog.String("scenario_id", scenario.ID))
	} else {
		resp.Progress = progressToResponse(progress)
		resp.ProgressSaved = true
	}

	shared.RespondWithJSON(w, http.StatusOK, resp)
}

// Complete handles POST /scenarios/{id}/complete requests. The completion
// bonus and health recomputation are path-independent; repeating the call
// re-credits XP but never duplicates the completed-set entry.
func (h *ScenarioHandler) Complete(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	var req CompleteScenarioRequest
	if err := shared.DecodeJSON(w, r, &req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, err.Error())
		return
	}
	if err := shared.ValidateRequest(&req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, err.Error())
		return
	}
	if !req.FinalState.isComplete() {
		shared.RespondWithError(w, r, http.StatusBadRequest, "finalState must supply all six numeric fields")
		return
	}

	scenario, err := h.catalog.ScenarioByID(chi.URLParam(r, "id"))
	if err != nil {
		shared.RespondWithError(w, r, MapErrorToStatusCode(err), GetSafeErrorMessage(err))
		return
	}

	userID, err := uuid.Parse(req.UserID)
	if err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "userId must be a valid UUID")
		return
	}

	result, err := h.engine.CompleteScenario(req.FinalState.toDomain())
	if err != nil {
		shared.RespondWithErrorAndLog(w, r, log, err, errorMessage(err, h.env), MapErrorToStatusCode(err))
		return
	}

	resp := CompleteScenarioResponse{
		XPEarned:    result.XPEarned,
		HealthScore: result.HealthScore,
	}

	progress, err := h.progressService.MarkScenarioComplete(r.Context(), userID, scenario.ID, result.XPEarned, result.HealthScore)
	if err != nil {
		log.Warn("failed to record scenario completion, returning unsaved awards",
			slog.String("error", err.Error()),
			slog.String("user_id", userID.String()),
			slog.String("scenario_id", scenario.ID))
	} else {
		resp.Progress = progressToResponse(progress)
		resp.ProgressSaved = true
	}

	shared.RespondWithJSON(w, http.StatusOK, resp)
}

// promptProfile looks up the user's profile to personalize generated text.
// Personalization is best effort; an unknown user gets neutral wording.
func (h *ScenarioHandler) promptProfile(r *http.Request, userID uuid.UUID) generation.PromptProfile {
	profile, err := h.profileService.GetProfile(r.Context(), userID)
	if err != nil {
		return generation.PromptProfile{}
	}
	return generation.PromptProfile{
		ExperienceLevel: profile.ExperienceLevel,
		LearningStyle:   profile.LearningStyle,
	}
}
