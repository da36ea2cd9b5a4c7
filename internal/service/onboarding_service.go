package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/empowermint/empowermint-api/internal/catalog"
	"github.com/empowermint/empowermint-api/internal/domain"
	"github.com/empowermint/empowermint-api/internal/platform/logger"
	"github.com/empowermint/empowermint-api/internal/store"
)

// OnboardingResult is what a new learner gets back: their profile plus
// starter content picked for their experience level.
type OnboardingResult struct {
	Profile              *domain.UserProfile
	RecommendedLessons   []string
	RecommendedScenarios []string
}

// OnboardingService provides user profile lifecycle operations.
type OnboardingService interface {
	// Onboard creates a user profile and its initial progress record
	// atomically, then returns the profile with content recommendations.
	Onboard(
		ctx context.Context,
		experienceLevel domain.ExperienceLevel,
		financialGoals []string,
		riskComfort int,
		learningStyle domain.LearningStyle,
	) (*OnboardingResult, error)

	// GetProfile retrieves a user profile by ID.
	// Returns ErrUserNotFound if the profile does not exist.
	GetProfile(ctx context.Context, userID uuid.UUID) (*domain.UserProfile, error)

	// UpdateAccessibility replaces the accessibility settings of a profile.
	// Returns ErrUserNotFound if the profile does not exist.
	UpdateAccessibility(ctx context.Context, userID uuid.UUID, settings domain.AccessibilitySettings) error

	// DeleteUser removes a user profile and its progress record in one
	// transaction. A missing progress record is not an error; a missing
	// profile is ErrUserNotFound.
	DeleteUser(ctx context.Context, userID uuid.UUID) error
}

// Common sentinel errors for OnboardingService
var (
	// ErrUserNotFound indicates that the user profile does not exist
	ErrUserNotFound = errors.New("user not found")
)

// OnboardingServiceError wraps errors from the onboarding service with context.
type OnboardingServiceError struct {
	Operation string
	Message   string
	Err       error
}

// Error implements the error interface for OnboardingServiceError.
func (e *OnboardingServiceError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("onboarding service %s failed: %s: %v", e.Operation, e.Message, e.Err)
	}
	return fmt.Sprintf("onboarding service %s failed: %s", e.Operation, e.Message)
}

// Unwrap returns the wrapped error to support errors.Is/errors.As.
func (e *OnboardingServiceError) Unwrap() error {
	return e.Err
}

// NewOnboardingServiceError creates a new OnboardingServiceError.
// It returns known sentinel errors directly without wrapping.
func NewOnboardingServiceError(operation, message string, err error) error {
	if err == nil {
		return nil
	}

	if errors.Is(err, ErrUserNotFound) || errors.Is(err, store.ErrUserNotFound) {
		return ErrUserNotFound
	}

	if errors.Is(err, domain.ErrValidation) {
		return err
	}

	return &OnboardingServiceError{
		Operation: operation,
		Message:   message,
		Err:       err,
	}
}

// onboardingServiceImpl implements the OnboardingService interface
type onboardingServiceImpl struct {
	db            *sql.DB
	userStore     store.UserProfileStore
	progressStore store.ProgressStore
	catalog       *catalog.Store
	logger        *slog.Logger
	now           func() time.Time
}

// NewOnboardingService creates a new OnboardingService.
// It returns an error if any of the required dependencies are nil.
func NewOnboardingService(
	db *sql.DB,
	userStore store.UserProfileStore,
	progressStore store.ProgressStore,
	catalogStore *catalog.Store,
	logger *slog.Logger,
) (OnboardingService, error) {
	if db == nil {
		return nil, &OnboardingServiceError{Operation: "create_service", Message: "db cannot be nil"}
	}
	if userStore == nil {
		return nil, &OnboardingServiceError{Operation: "create_service", Message: "userStore cannot be nil"}
	}
	if progressStore == nil {
		return nil, &OnboardingServiceError{Operation: "create_service", Message: "progressStore cannot be nil"}
	}
	if catalogStore == nil {
		return nil, &OnboardingServiceError{Operation: "create_service", Message: "catalog cannot be nil"}
	}
	if logger == nil {
		return nil, &OnboardingServiceError{Operation: "create_service", Message: "logger cannot be nil"}
	}

	return &onboardingServiceImpl{
		db:            db,
		userStore:     userStore,
		progressStore: progressStore,
		catalog:       catalogStore,
		logger:        logger.With(slog.String("component", "onboarding_service")),
		now:           func() time.Time { return time.Now().UTC() },
	}, nil
}

// Onboard implements OnboardingService.Onboard
func (s *onboardingServiceImpl) Onboard(
	ctx context.Context,
	experienceLevel domain.ExperienceLevel,
	financialGoals []string,
	riskComfort int,
	learningStyle domain.LearningStyle,
) (*OnboardingResult, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	now := s.now()
	profile, err := domain.NewUserProfile(experienceLevel, financialGoals, riskComfort, learningStyle, now)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", domain.ErrValidation, err)
	}

	progress, err := domain.NewProgress(profile.ID, now)
	if err != nil {
		return nil, NewOnboardingServiceError("onboard", "failed to build initial progress", err)
	}

	// Profile and progress either both land or neither does.
	err = store.RunInTransaction(ctx, s.db, func(ctx context.Context, tx *sql.Tx) error {
		if err := s.userStore.WithTx(tx).Create(ctx, profile); err != nil {
			return err
		}
		return s.progressStore.WithTx(tx).Create(ctx, progress)
	})
	if err != nil {
		log.Error("failed to onboard user",
			slog.String("error", err.Error()),
			slog.String("user_id", profile.ID.String()))
		return nil, NewOnboardingServiceError("onboard", "failed to persist new user", err)
	}

	lessons, scenarios := s.catalog.Recommendations(experienceLevel)

	log.Info("user onboarded",
		slog.String("user_id", profile.ID.String()),
		slog.String("experience_level", string(experienceLevel)),
		slog.Int("recommended_lessons", len(lessons)),
		slog.Int("recommended_scenarios", len(scenarios)))

	return &OnboardingResult{
		Profile:              profile,
		RecommendedLessons:   lessons,
		RecommendedScenarios: scenarios,
	}, nil
}

// GetProfile implements OnboardingService.GetProfile
func (s *onboardingServiceImpl) GetProfile(ctx context.Context, userID uuid.UUID) (*domain.UserProfile, error) {
	profile, err := s.userStore.GetByID(ctx, userID)
	if err != nil {
		if store.IsNotFoundError(err) {
			return nil, ErrUserNotFound
		}
		return nil, NewOnboardingServiceError("get_profile", "failed to get user profile", err)
	}
	return profile, nil
}

// UpdateAccessibility implements OnboardingService.UpdateAccessibility
func (s *onboardingServiceImpl) UpdateAccessibility(
	ctx context.Context,
	userID uuid.UUID,
	settings domain.AccessibilitySettings,
) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := settings.Validate(); err != nil {
		return fmt.Errorf("%w: %w", domain.ErrValidation, err)
	}

	if err := s.userStore.UpdateAccessibility(ctx, userID, settings); err != nil {
		if store.IsNotFoundError(err) {
			return ErrUserNotFound
		}
		log.Error("failed to update accessibility settings",
			slog.String("error", err.Error()),
			slog.String("user_id", userID.String()))
		return NewOnboardingServiceError("update_accessibility", "failed to update settings", err)
	}

	return nil
}

// DeleteUser implements OnboardingService.DeleteUser
func (s *onboardingServiceImpl) DeleteUser(ctx context.Context, userID uuid.UUID) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	err := store.RunInTransaction(ctx, s.db, func(ctx context.Context, tx *sql.Tx) error {
		if err := s.userStore.WithTx(tx).Delete(ctx, userID); err != nil {
			return err
		}
		// Progress is lazily created, so a user may legitimately have none.
		if err := s.progressStore.WithTx(tx).Delete(ctx, userID); err != nil &&
			!store.IsNotFoundError(err) {
			return err
		}
		return nil
	})
	if err != nil {
		if store.IsNotFoundError(err) {
			return ErrUserNotFound
		}
		log.Error("failed to delete user",
			slog.String("error", err.Error()),
			slog.String("user_id", userID.String()))
		return NewOnboardingServiceError("delete_user", "failed to delete user", err)
	}

	log.Info("user deleted", slog.String("user_id", userID.String()))
	return nil
}
