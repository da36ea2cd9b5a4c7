// Package service contains the application services orchestrating the domain
// logic, stores, and external adapters.
package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/empowermint/empowermint-api/internal/domain"
	"github.com/empowermint/empowermint-api/internal/platform/logger"
	"github.com/empowermint/empowermint-api/internal/store"
)

// ProgressService provides the progress accounting operations. Every award
// goes through here so XP, level, and health-score rules are applied in
// exactly one place.
type ProgressService interface {
	// GetProgress retrieves a user's progress record.
	// Returns ErrProgressNotFound if the user has no progress record.
	GetProgress(ctx context.Context, userID uuid.UUID) (*domain.Progress, error)

	// AddXP credits a non-negative XP amount and returns the updated record.
	// Lazily creates the progress record on first use.
	AddXP(ctx context.Context, userID uuid.UUID, amount int) (*domain.Progress, error)

	// MarkLessonComplete records a lesson completion with its XP and health
	// awards. A repeat completion credits the XP again but does not duplicate
	// the completed-set entry.
	MarkLessonComplete(
		ctx context.Context,
		userID uuid.UUID,
		lessonID string,
		xp int,
		healthScore int,
	) (*domain.Progress, error)

	// MarkScenarioComplete records a scenario completion with its XP and
	// health awards, mirroring MarkLessonComplete.
	MarkScenarioComplete(
		ctx context.Context,
		userID uuid.UUID,
		scenarioID string,
		xp int,
		healthScore int,
	) (*domain.Progress, error)

	// SetHealthScore replaces the user's financial health score.
	SetHealthScore(ctx context.Context, userID uuid.UUID, score int) (*domain.Progress, error)
}

// Common sentinel errors for ProgressService
var (
	// ErrProgressNotFound indicates that the user has no progress record
	ErrProgressNotFound = errors.New("progress not found")
)

// ProgressServiceError wraps errors from the progress service with context.
type ProgressServiceError struct {
	// Operation is the operation that failed (e.g., "add_xp", "mark_lesson_complete")
	Operation string
	// Message is a human-readable description of the error
	Message string
	// Err is the underlying error that caused the failure
	Err error
}

// Error implements the error interface for ProgressServiceError.
func (e *ProgressServiceError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("progress service %s failed: %s: %v", e.Operation, e.Message, e.Err)
	}
	return fmt.Sprintf("progress service %s failed: %s", e.Operation, e.Message)
}

// Unwrap returns the wrapped error to support errors.Is/errors.As.
func (e *ProgressServiceError) Unwrap() error {
	return e.Err
}

// NewProgressServiceError creates a new ProgressServiceError.
// It returns known sentinel errors directly without wrapping.
func NewProgressServiceError(operation, message string, err error) error {
	if err == nil {
		return nil
	}

	if errors.Is(err, ErrProgressNotFound) {
		return ErrProgressNotFound
	}

	if errors.Is(err, store.ErrProgressNotFound) {
		return ErrProgressNotFound
	}

	// Validation sentinels pass through untouched so the API layer can map
	// them to 400 responses.
	if errors.Is(err, domain.ErrValidation) {
		return err
	}

	return &ProgressServiceError{
		Operation: operation,
		Message:   message,
		Err:       err,
	}
}

// progressServiceImpl implements the ProgressService interface
type progressServiceImpl struct {
	progressStore store.ProgressStore
	logger        *slog.Logger
	now           func() time.Time
}

// NewProgressService creates a new ProgressService.
// It returns an error if any of the required dependencies are nil.
func NewProgressService(
	progressStore store.ProgressStore,
	logger *slog.Logger,
) (ProgressService, error) {
	if progressStore == nil {
		return nil, &ProgressServiceError{
			Operation: "create_service",
			Message:   "progressStore cannot be nil",
		}
	}
	if logger == nil {
		return nil, &ProgressServiceError{
			Operation: "create_service",
			Message:   "logger cannot be nil",
		}
	}

	return &progressServiceImpl{
		progressStore: progressStore,
		logger:        logger.With(slog.String("component", "progress_service")),
		now:           func() time.Time { return time.Now().UTC() },
	}, nil
}

// GetProgress implements ProgressService.GetProgress
func (s *progressServiceImpl) GetProgress(ctx context.Context, userID uuid.UUID) (*domain.Progress, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	progress, err := s.progressStore.Get(ctx, userID)
	if err != nil {
		if store.IsNotFoundError(err) {
			return nil, ErrProgressNotFound
		}
		log.Error("failed to get progress",
			slog.String("error", err.Error()),
			slog.String("user_id", userID.String()))
		return nil, NewProgressServiceError("get_progress", "failed to get progress", err)
	}

	return progress, nil
}

// AddXP implements ProgressService.AddXP
func (s *progressServiceImpl) AddXP(ctx context.Context, userID uuid.UUID, amount int) (*domain.Progress, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if amount < 0 {
		return nil, fmt.Errorf("%w: %w", domain.ErrValidation, domain.ErrInvalidXPAmount)
	}

	progress, err := s.progressStore.AddXP(ctx, userID, amount, s.now())
	if err != nil {
		log.Error("failed to add XP",
			slog.String("error", err.Error()),
			slog.String("user_id", userID.String()),
			slog.Int("amount", amount))
		return nil, NewProgressServiceError("add_xp", "failed to add XP", err)
	}

	return progress, nil
}

// MarkLessonComplete implements ProgressService.MarkLessonComplete
func (s *progressServiceImpl) MarkLessonComplete(
	ctx context.Context,
	userID uuid.UUID,
	lessonID string,
	xp int,
	healthScore int,
) (*domain.Progress, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := validateAward(lessonID, xp, healthScore); err != nil {
		return nil, err
	}

	progress, err := s.progressStore.RecordLessonCompletion(ctx, userID, lessonID, xp, healthScore, s.now())
	if err != nil {
		log.Error("failed to mark lesson complete",
			slog.String("error", err.Error()),
			slog.String("user_id", userID.String()),
			slog.String("lesson_id", lessonID))
		return nil, NewProgressServiceError("mark_lesson_complete", "failed to record lesson completion", err)
	}

	return progress, nil
}

// MarkScenarioComplete implements ProgressService.MarkScenarioComplete
func (s *progressServiceImpl) MarkScenarioComplete(
	ctx context.Context,
	userID uuid.UUID,
	scenarioID string,
	xp int,
	healthScore int,
) (*domain.Progress, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := validateAward(scenarioID, xp, healthScore); err != nil {
		return nil, err
	}

	progress, err := s.progressStore.RecordScenarioCompletion(ctx, userID, scenarioID, xp, healthScore, s.now())
	if err != nil {
		log.Error("failed to mark scenario complete",
			slog.String("error", err.Error()),
			slog.String("user_id", userID.String()),
			slog.String("scenario_id", scenarioID))
		return nil, NewProgressServiceError("mark_scenario_complete", "failed to record scenario completion", err)
	}

	return progress, nil
}

// SetHealthScore implements ProgressService.SetHealthScore
func (s *progressServiceImpl) SetHealthScore(ctx context.Context, userID uuid.UUID, score int) (*domain.Progress, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if score < domain.MinHealthScore || score > domain.MaxHealthScore {
		return nil, fmt.Errorf("%w: %w", domain.ErrValidation, domain.ErrInvalidHealthScore)
	}

	progress, err := s.progressStore.SetHealthScore(ctx, userID, score, s.now())
	if err != nil {
		log.Error("failed to set health score",
			slog.String("error", err.Error()),
			slog.String("user_id", userID.String()),
			slog.Int("score", score))
		return nil, NewProgressServiceError("set_health_score", "failed to set health score", err)
	}

	return progress, nil
}

// validateAward checks the common inputs of the completion operations.
func validateAward(contentID string, xp, healthScore int) error {
	if contentID == "" {
		return fmt.Errorf("%w: content ID cannot be empty", domain.ErrValidation)
	}
	if xp < 0 {
		return fmt.Errorf("%w: %w", domain.ErrValidation, domain.ErrInvalidXPAmount)
	}
	if healthScore < domain.MinHealthScore || healthScore > domain.MaxHealthScore {
		return fmt.Errorf("%w: %w", domain.ErrValidation, domain.ErrInvalidHealthScore)
	}
	return nil
}
