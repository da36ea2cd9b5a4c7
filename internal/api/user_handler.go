package api

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/empowermint/empowermint-api/internal/api/shared"
	"github.com/empowermint/empowermint-api/internal/domain"
	"github.com/empowermint/empowermint-api/internal/platform/logger"
	"github.com/empowermint/empowermint-api/internal/service"
)

// UserHandler handles onboarding and user profile requests.
type UserHandler struct {
	onboardingService service.OnboardingService
	progressService   service.ProgressService
	logger            *slog.Logger
	env               string
}

// NewUserHandler creates a new UserHandler.
func NewUserHandler(
	onboardingService service.OnboardingService,
	progressService service.ProgressService,
	log *slog.Logger,
	env string,
) *UserHandler {
	return &UserHandler{
		onboardingService: onboardingService,
		progressService:   progressService,
		logger:            log.With(slog.String("component", "user_handler")),
		env:               env,
	}
}

// Onboard handles POST /onboarding requests. It creates the profile and its
// initial progress record atomically and returns starter recommendations.
func (h *UserHandler) Onboard(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	var req OnboardingRequest
	if err := shared.DecodeJSON(w, r, &req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, err.Error())
		return
	}
	if err := shared.ValidateRequest(&req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, err.Error())
		return
	}

	result, err := h.onboardingService.Onboard(
		r.Context(),
		domain.ExperienceLevel(req.ExperienceLevel),
		req.FinancialGoals,
		req.RiskComfort,
		domain.LearningStyle(req.LearningStyle),
	)
	if err != nil {
		shared.RespondWithErrorAndLog(w, r, log, err, errorMessage(err, h.env), MapErrorToStatusCode(err))
		return
	}

	shared.RespondWithJSON(w, http.StatusOK, OnboardingResponse{
		UserProfile:          result.Profile,
		RecommendedLessons:   result.RecommendedLessons,
		RecommendedScenarios: result.RecommendedScenarios,
	})
}

// GetProfile handles GET /users/{id} requests.
func (h *UserHandler) GetProfile(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	userID, ok := h.parseUserID(w, r)
	if !ok {
		return
	}

	profile, err := h.onboardingService.GetProfile(r.Context(), userID)
	if err != nil {
		shared.RespondWithErrorAndLog(w, r, log, err, errorMessage(err, h.env), MapErrorToStatusCode(err))
		return
	}

	shared.RespondWithJSON(w, http.StatusOK, profile)
}

// UpdateAccessibility handles PUT /users/{id}/accessibility requests.
func (h *UserHandler) UpdateAccessibility(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	userID, ok := h.parseUserID(w, r)
	if !ok {
		return
	}

	var req AccessibilityRequest
	if err := shared.DecodeJSON(w, r, &req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, err.Error())
		return
	}
	if err := shared.ValidateRequest(&req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, err.Error())
		return
	}

	settings := domain.AccessibilitySettings{
		FontSize:       domain.FontSize(req.FontSize),
		HighContrast:   req.HighContrast,
		ColorblindMode: domain.ColorblindMode(req.ColorblindMode),
	}

	if err := h.onboardingService.UpdateAccessibility(r.Context(), userID, settings); err != nil {
		shared.RespondWithErrorAndLog(w, r, log, err, errorMessage(err, h.env), MapErrorToStatusCode(err))
		return
	}

	shared.RespondWithJSON(w, http.StatusOK, settings)
}

// Delete handles DELETE /users/{id} requests, removing the profile and its
// progress record together.
func (h *UserHandler) Delete(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	userID, ok := h.parseUserID(w, r)
	if !ok {
		return
	}

	if err := h.onboardingService.DeleteUser(r.Context(), userID); err != nil {
		shared.RespondWithErrorAndLog(w, r, log, err, errorMessage(err, h.env), MapErrorToStatusCode(err))
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// GetProgress handles GET /users/{id}/progress requests.
func (h *UserHandler) GetProgress(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	userID, ok := h.parseUserID(w, r)
	if !ok {
		return
	}

	progress, err := h.progressService.GetProgress(r.Context(), userID)
	if err != nil {
		shared.RespondWithErrorAndLog(w, r, log, err, errorMessage(err, h.env), MapErrorToStatusCode(err))
		return
	}

	shared.RespondWithJSON(w, http.StatusOK, progressToResponse(progress))
}

// parseUserID extracts and parses the {id} path parameter, writing a 400
// response and returning ok=false when it is not a valid UUID.
func (h *UserHandler) parseUserID(w http.ResponseWriter, r *http.Request) (uuid.UUID, bool) {
	userID, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "user ID must be a valid UUID")
		return uuid.Nil, false
	}
	return userID, true
}
