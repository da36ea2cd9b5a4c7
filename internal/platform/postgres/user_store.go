package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/empowermint/empowermint-api/internal/domain"
	"github.com/empowermint/empowermint-api/internal/platform/logger"
	"github.com/empowermint/empowermint-api/internal/store"
)

// PostgresUserProfileStore implements the store.UserProfileStore interface
// using a PostgreSQL database as the storage backend.
type PostgresUserProfileStore struct {
	db     store.DBTX
	logger *slog.Logger
}

// NewPostgresUserProfileStore creates a new PostgreSQL implementation of the UserProfileStore interface.
// It accepts a database connection or transaction that should be initialized and managed by the caller.
// If logger is nil, a default logger will be used.
func NewPostgresUserProfileStore(db store.DBTX, logger *slog.Logger) *PostgresUserProfileStore {
	if db == nil {
		panic("db cannot be nil")
	}

	if logger == nil {
		logger = slog.Default()
	}

	return &PostgresUserProfileStore{
		db:     db,
		logger: logger.With(slog.String("component", "user_store")),
	}
}

// Ensure PostgresUserProfileStore implements store.UserProfileStore interface
var _ store.UserProfileStore = (*PostgresUserProfileStore)(nil)

// Create implements store.UserProfileStore.Create
// It saves a new user profile, validating it first.
// Returns store.ErrUserExists if a profile with the same ID already exists.
func (s *PostgresUserProfileStore) Create(ctx context.Context, profile *domain.UserProfile) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := profile.Validate(); err != nil {
		log.Warn("user profile validation failed during create",
			slog.String("error", err.Error()),
			slog.String("user_id", profile.ID.String()))
		return err
	}

	goals, err := json.Marshal(profile.FinancialGoals)
	if err != nil {
		return fmt.Errorf("failed to encode financial goals: %w", err)
	}

	query := `
		INSERT INTO users (
			id, created_at, experience_level, financial_goals, risk_comfort,
			learning_style, accessibility_font_size, accessibility_high_contrast,
			accessibility_colorblind_mode
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	`
	_, err = s.db.ExecContext(
		ctx,
		query,
		profile.ID,
		profile.CreatedAt,
		profile.ExperienceLevel,
		goals,
		profile.RiskComfort,
		profile.LearningStyle,
		profile.Accessibility.FontSize,
		profile.Accessibility.HighContrast,
		profile.Accessibility.ColorblindMode,
	)
	if err != nil {
		if IsUniqueViolation(err) {
			log.Warn("user profile already exists",
				slog.String("user_id", profile.ID.String()))
			return store.ErrUserExists
		}
		if IsCheckConstraintViolation(err) {
			log.Warn("user profile violates a column constraint",
				slog.String("error", err.Error()),
				slog.String("user_id", profile.ID.String()))
			return fmt.Errorf("%w: %v", store.ErrInvalidEntity, err)
		}
		log.Error("failed to create user profile",
			slog.String("error", err.Error()),
			slog.String("user_id", profile.ID.String()))
		return err
	}

	log.Info("user profile created successfully",
		slog.String("user_id", profile.ID.String()),
		slog.String("experience_level", string(profile.ExperienceLevel)))
	return nil
}

// GetByID implements store.UserProfileStore.GetByID
// It retrieves a user profile by its unique ID.
// Returns store.ErrUserNotFound if the profile does not exist.
func (s *PostgresUserProfileStore) GetByID(ctx context.Context, id uuid.UUID) (*domain.UserProfile, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	log.Debug("retrieving user profile by ID", slog.String("user_id", id.String()))

	query := `
		SELECT id, created_at, experience_level, financial_goals, risk_comfort,
		       learning_style, accessibility_font_size, accessibility_high_contrast,
		       accessibility_colorblind_mode
		FROM users
		WHERE id = $1
	`

	var profile domain.UserProfile
	var goals []byte

	err := s.db.QueryRowContext(ctx, query, id).Scan(
		&profile.ID,
		&profile.CreatedAt,
		&profile.ExperienceLevel,
		&goals,
		&profile.RiskComfort,
		&profile.LearningStyle,
		&profile.Accessibility.FontSize,
		&profile.Accessibility.HighContrast,
		&profile.Accessibility.ColorblindMode,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			log.Debug("user profile not found", slog.String("user_id", id.String()))
			return nil, store.ErrUserNotFound
		}
		log.Error("failed to get user profile by ID",
			slog.String("error", err.Error()),
			slog.String("user_id", id.String()))
		return nil, err
	}

	if err := json.Unmarshal(goals, &profile.FinancialGoals); err != nil {
		return nil, fmt.Errorf("failed to decode financial goals: %w", err)
	}

	return &profile, nil
}

// UpdateAccessibility implements store.UserProfileStore.UpdateAccessibility
// It replaces the accessibility settings of an existing profile.
// Returns store.ErrUserNotFound if the profile does not exist.
func (s *PostgresUserProfileStore) UpdateAccessibility(
	ctx context.Context,
	id uuid.UUID,
	settings domain.AccessibilitySettings,
) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := settings.Validate(); err != nil {
		log.Warn("accessibility settings validation failed",
			slog.String("error", err.Error()),
			slog.String("user_id", id.String()))
		return err
	}

	query := `
		UPDATE users
		SET accessibility_font_size = $1,
		    accessibility_high_contrast = $2,
		    accessibility_colorblind_mode = $3
		WHERE id = $4
	`

	result, err := s.db.ExecContext(
		ctx,
		query,
		settings.FontSize,
		settings.HighContrast,
		settings.ColorblindMode,
		id,
	)
	if err != nil {
		log.Error("failed to update accessibility settings",
			slog.String("error", err.Error()),
			slog.String("user_id", id.String()))
		return fmt.Errorf("%w: %w", store.ErrUpdateFailed, MapError(err))
	}

	if err := CheckRowsAffected(result, "user"); err != nil {
		log.Debug("user profile not found for accessibility update",
			slog.String("user_id", id.String()))
		return store.ErrUserNotFound
	}

	log.Info("accessibility settings updated",
		slog.String("user_id", id.String()),
		slog.String("font_size", string(settings.FontSize)),
		slog.String("colorblind_mode", string(settings.ColorblindMode)))
	return nil
}

// Delete implements store.UserProfileStore.Delete
// It removes a user profile by its ID.
// Returns store.ErrUserNotFound if the profile does not exist.
func (s *PostgresUserProfileStore) Delete(ctx context.Context, id uuid.UUID) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := `DELETE FROM users WHERE id = $1`

	result, err := s.db.ExecContext(ctx, query, id)
	if err != nil {
		log.Error("failed to delete user profile",
			slog.String("error", err.Error()),
			slog.String("user_id", id.String()))
		return fmt.Errorf("%w: %w", store.ErrDeleteFailed, MapError(err))
	}

	if err := CheckRowsAffected(result, "user"); err != nil {
		log.Debug("user profile not found for delete",
			slog.String("user_id", id.String()))
		return store.ErrUserNotFound
	}

	log.Info("user profile deleted",
		slog.String("user_id", id.String()))
	return nil
}

// WithTx implements store.UserProfileStore.WithTx
// It returns a new store instance bound to the provided transaction.
func (s *PostgresUserProfileStore) WithTx(tx *sql.Tx) store.UserProfileStore {
	return &PostgresUserProfileStore{
		db:     tx,
		logger: s.logger,
	}
}
