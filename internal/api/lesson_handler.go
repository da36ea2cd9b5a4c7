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
	"github.com/empowermint/empowermint-api/internal/platform/logger"
	"github.com/empowermint/empowermint-api/internal/service"
)

// LessonHandler handles lesson catalog and completion requests.
type LessonHandler struct {
	catalog         *catalog.Store
	engine          decision.Service
	progressService service.ProgressService
	logger          *slog.Logger
	env             string
}

// NewLessonHandler creates a new LessonHandler.
func NewLessonHandler(
	catalogStore *catalog.Store,
	engine decision.Service,
	progressService service.ProgressService,
	log *slog.Logger,
	env string,
) *LessonHandler {
	return &LessonHandler{
		catalog:         catalogStore,
		engine:          engine,
		progressService: progressService,
		logger:          log.With(slog.String("component", "lesson_handler")),
		env:             env,
	}
}

// List handles GET /lessons requests, with optional category and difficulty
// query filters.
func (h *LessonHandler) List(w http.ResponseWriter, r *http.Request) {
	filter := catalog.LessonFilter{
		Category: domain.LessonCategory(r.URL.Query().Get("category")),
	}

	if raw := r.URL.Query().Get("difficulty"); raw != "" {
		difficulty, err := strconv.Atoi(raw)
		if err != nil || difficulty < domain.MinDifficulty || difficulty > domain.MaxDifficulty {
			shared.RespondWithError(w, r, http.StatusBadRequest, "difficulty must be an integer between 1 and 3")
			return
		}
		filter.Difficulty = difficulty
	}

	shared.RespondWithJSON(w, http.StatusOK, LessonListResponse{Lessons: h.catalog.Lessons(filter)})
}

// Get handles GET /lessons/{id} requests.
func (h *LessonHandler) Get(w http.ResponseWriter, r *http.Request) {
	lesson, err := h.catalog.LessonByID(chi.URLParam(r, "id"))
	if err != nil {
		shared.RespondWithError(w, r, MapErrorToStatusCode(err), GetSafeErrorMessage(err))
		return
	}

	shared.RespondWithJSON(w, http.StatusOK, LessonResponse{Lesson: lesson})
}

// Complete handles POST /lessons/{id}/complete requests. The quiz score is
// converted into XP and health awards; an out-of-range score is rejected
// before any progress mutation.
func (h *LessonHandler) Complete(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	var req CompleteLessonRequest
	if err := shared.DecodeJSON(w, r, &req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, err.Error())
		return
	}
	if err := shared.ValidateRequest(&req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, err.Error())
		return
	}

	lesson, err := h.catalog.LessonByID(chi.URLParam(r, "id"))
	if err != nil {
		shared.RespondWithError(w, r, MapErrorToStatusCode(err), GetSafeErrorMessage(err))
		return
	}

	userID, err := uuid.Parse(req.UserID)
	if err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "userId must be a valid UUID")
		return
	}

	result, err := h.engine.CompleteLesson(*req.Score)
	if err != nil {
		shared.RespondWithErrorAndLog(w, r, log, err, errorMessage(err, h.env), MapErrorToStatusCode(err))
		return
	}

	resp := CompleteLessonResponse{
		XPEarned:    result.XPEarned,
		HealthScore: result.HealthScore,
	}

	progress, err := h.progressService.MarkLessonComplete(r.Context(), userID, lesson.ID, result.XPEarned, result.HealthScore)
	if err != nil {
		log.Warn("failed to record lesson completion, returning unsaved awards",
			slog.String("error", err.Error()),
			slog.String("user_id", userID.String()),
			slog.String("lesson_id", lesson.ID))
	} else {
		resp.Progress = progressToResponse(progress)
		resp.ProgressSaved = true
	}

	shared.RespondWithJSON(w, http.StatusOK, resp)
}
