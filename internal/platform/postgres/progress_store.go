package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/empowermint/empowermint-api/internal/domain"
	"github.com/empowermint/empowermint-api/internal/platform/logger"
	"github.com/empowermint/empowermint-api/internal/store"
)

// PostgresProgressStore implements the store.ProgressStore interface
// using a PostgreSQL database as the storage backend.
//
// All award methods are single-statement upserts. The database applies the
// XP delta and recomputes the level inside one atomic write, so concurrent
// awards for the same user never lose updates and never need SELECT ... FOR
// UPDATE. Levels use integer division, which truncates toward zero and so
// matches floor for the non-negative XP totals the schema enforces.
type PostgresProgressStore struct {
	db     store.DBTX
	logger *slog.Logger
}

// NewPostgresProgressStore creates a new PostgreSQL implementation of the ProgressStore interface.
// It accepts a database connection or transaction that should be initialized and managed by the caller.
// If logger is nil, a default logger will be used.
func NewPostgresProgressStore(db store.DBTX, logger *slog.Logger) *PostgresProgressStore {
	if db == nil {
		panic("db cannot be nil")
	}

	if logger == nil {
		logger = slog.Default()
	}

	return &PostgresProgressStore{
		db:     db,
		logger: logger.With(slog.String("component", "progress_store")),
	}
}

// Ensure PostgresProgressStore implements store.ProgressStore interface
var _ store.ProgressStore = (*PostgresProgressStore)(nil)

const progressColumns = `user_id, xp, level, completed_lesson_ids, completed_scenario_ids, financial_health_score, last_activity`

// scanProgress maps a single progress row onto the domain type,
// decoding the jsonb completed-content sets.
func scanProgress(row *sql.Row) (*domain.Progress, error) {
	var progress domain.Progress
	var lessonIDs, scenarioIDs []byte

	err := row.Scan(
		&progress.UserID,
		&progress.XP,
		&progress.Level,
		&lessonIDs,
		&scenarioIDs,
		&progress.FinancialHealthScore,
		&progress.LastActivity,
	)
	if err != nil {
		return nil, err
	}

	if err := json.Unmarshal(lessonIDs, &progress.CompletedLessonIDs); err != nil {
		return nil, fmt.Errorf("failed to decode completed lesson IDs: %w", err)
	}
	if err := json.Unmarshal(scenarioIDs, &progress.CompletedScenarioIDs); err != nil {
		return nil, fmt.Errorf("failed to decode completed scenario IDs: %w", err)
	}

	return &progress, nil
}

// Get implements store.ProgressStore.Get
// It retrieves the progress record for a user.
// Returns store.ErrProgressNotFound if the user has no progress record.
func (s *PostgresProgressStore) Get(ctx context.Context, userID uuid.UUID) (*domain.Progress, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	log.Debug("retrieving progress", slog.String("user_id", userID.String()))

	query := `
		SELECT ` + progressColumns + `
		FROM progress
		WHERE user_id = $1
	`

	progress, err := scanProgress(s.db.QueryRowContext(ctx, query, userID))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			log.Debug("progress not found", slog.String("user_id", userID.String()))
			return nil, store.ErrProgressNotFound
		}
		log.Error("failed to get progress",
			slog.String("error", err.Error()),
			slog.String("user_id", userID.String()))
		return nil, err
	}

	return progress, nil
}

// Create implements store.ProgressStore.Create
// It saves a fresh progress record, validating it first.
// Returns store.ErrDuplicate if a record already exists for the user.
func (s *PostgresProgressStore) Create(ctx context.Context, progress *domain.Progress) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := progress.Validate(); err != nil {
		log.Warn("progress validation failed during create",
			slog.String("error", err.Error()),
			slog.String("user_id", progress.UserID.String()))
		return fmt.Errorf("%w: %v", store.ErrInvalidEntity, err)
	}

	lessonIDs, err := json.Marshal(completedSet(progress.CompletedLessonIDs))
	if err != nil {
		return fmt.Errorf("failed to encode completed lesson IDs: %w", err)
	}
	scenarioIDs, err := json.Marshal(completedSet(progress.CompletedScenarioIDs))
	if err != nil {
		return fmt.Errorf("failed to encode completed scenario IDs: %w", err)
	}

	query := `
		INSERT INTO progress (` + progressColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`
	_, err = s.db.ExecContext(
		ctx,
		query,
		progress.UserID,
		progress.XP,
		progress.Level,
		lessonIDs,
		scenarioIDs,
		progress.FinancialHealthScore,
		progress.LastActivity,
	)
	if err != nil {
		if IsUniqueViolation(err) {
			log.Warn("progress record already exists",
				slog.String("user_id", progress.UserID.String()))
			return store.ErrDuplicate
		}
		log.Error("failed to create progress",
			slog.String("error", err.Error()),
			slog.String("user_id", progress.UserID.String()))
		return err
	}

	log.Info("progress created successfully",
		slog.String("user_id", progress.UserID.String()))
	return nil
}

// completedSet normalizes a nil slice to an empty one so jsonb columns
// always hold an array, never null.
func completedSet(ids []string) []string {
	if ids == nil {
		return []string{}
	}
	return ids
}

// AddXP implements store.ProgressStore.AddXP
// It atomically credits XP and recomputes the level in a single upsert,
// lazily creating the progress record on first use.
func (s *PostgresProgressStore) AddXP(
	ctx context.Context,
	userID uuid.UUID,
	amount int,
	now time.Time,
) (*domain.Progress, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := `
		INSERT INTO progress (` + progressColumns + `)
		VALUES ($1, $2, $2 / 100, '[]'::jsonb, '[]'::jsonb, $3, $4)
		ON CONFLICT (user_id) DO UPDATE SET
			xp = progress.xp + EXCLUDED.xp,
			level = (progress.xp + EXCLUDED.xp) / 100,
			last_activity = EXCLUDED.last_activity
		RETURNING ` + progressColumns

	progress, err := scanProgress(s.db.QueryRowContext(
		ctx,
		query,
		userID,
		amount,
		domain.DefaultHealthScore,
		now,
	))
	if err != nil {
		log.Error("failed to add XP",
			slog.String("error", err.Error()),
			slog.String("user_id", userID.String()),
			slog.Int("amount", amount))
		return nil, MapError(err)
	}

	log.Debug("XP added",
		slog.String("user_id", userID.String()),
		slog.Int("amount", amount),
		slog.Int("total_xp", progress.XP),
		slog.Int("level", progress.Level))
	return progress, nil
}

// RecordLessonCompletion implements store.ProgressStore.RecordLessonCompletion
// It atomically inserts the lesson into the completed set (a repeat completion
// leaves the set unchanged), credits the XP, updates the health score, and
// recomputes the level.
func (s *PostgresProgressStore) RecordLessonCompletion(
	ctx context.Context,
	userID uuid.UUID,
	lessonID string,
	xp int,
	healthScore int,
	now time.Time,
) (*domain.Progress, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := `
		INSERT INTO progress (` + progressColumns + `)
		VALUES ($1, $3, $3 / 100, to_jsonb(ARRAY[$2::text]), '[]'::jsonb, $4, $5)
		ON CONFLICT (user_id) DO UPDATE SET
			xp = progress.xp + EXCLUDED.xp,
			level = (progress.xp + EXCLUDED.xp) / 100,
			completed_lesson_ids = CASE
				WHEN progress.completed_lesson_ids ? $2 THEN progress.completed_lesson_ids
				ELSE progress.completed_lesson_ids || to_jsonb($2::text)
			END,
			financial_health_score = EXCLUDED.financial_health_score,
			last_activity = EXCLUDED.last_activity
		RETURNING ` + progressColumns

	progress, err := scanProgress(s.db.QueryRowContext(
		ctx,
		query,
		userID,
		lessonID,
		xp,
		healthScore,
		now,
	))
	if err != nil {
		log.Error("failed to record lesson completion",
			slog.String("error", err.Error()),
			slog.String("user_id", userID.String()),
			slog.String("lesson_id", lessonID))
		return nil, MapError(err)
	}

	log.Info("lesson completion recorded",
		slog.String("user_id", userID.String()),
		slog.String("lesson_id", lessonID),
		slog.Int("xp_awarded", xp),
		slog.Int("total_xp", progress.XP))
	return progress, nil
}

// RecordScenarioCompletion implements store.ProgressStore.RecordScenarioCompletion
// It mirrors RecordLessonCompletion for the completed-scenario set.
func (s *PostgresProgressStore) RecordScenarioCompletion(
	ctx context.Context,
	userID uuid.UUID,
	scenarioID string,
	xp int,
	healthScore int,
	now time.Time,
) (*domain.Progress, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := `
		INSERT INTO progress (` + progressColumns + `)
		VALUES ($1, $3, $3 / 100, '[]'::jsonb, to_jsonb(ARRAY[$2::text]), $4, $5)
		ON CONFLICT (user_id) DO UPDATE SET
			xp = progress.xp + EXCLUDED.xp,
			level = (progress.xp + EXCLUDED.xp) / 100,
			completed_scenario_ids = CASE
				WHEN progress.completed_scenario_ids ? $2 THEN progress.completed_scenario_ids
				ELSE progress.completed_scenario_ids || to_jsonb($2::text)
			END,
			financial_health_score = EXCLUDED.financial_health_score,
			last_activity = EXCLUDED.last_activity
		RETURNING ` + progressColumns

	progress, err := scanProgress(s.db.QueryRowContext(
		ctx,
		query,
		userID,
		scenarioID,
		xp,
		healthScore,
		now,
	))
	if err != nil {
		log.Error("failed to record scenario completion",
			slog.String("error", err.Error()),
			slog.String("user_id", userID.String()),
			slog.String("scenario_id", scenarioID))
		return nil, MapError(err)
	}

	log.Info("scenario completion recorded",
		slog.String("user_id", userID.String()),
		slog.String("scenario_id", scenarioID),
		slog.Int("xp_awarded", xp),
		slog.Int("total_xp", progress.XP))
	return progress, nil
}

// SetHealthScore implements store.ProgressStore.SetHealthScore
// It atomically replaces the financial health score, lazily creating the
// progress record with default values on first use.
func (s *PostgresProgressStore) SetHealthScore(
	ctx context.Context,
	userID uuid.UUID,
	score int,
	now time.Time,
) (*domain.Progress, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := `
		INSERT INTO progress (` + progressColumns + `)
		VALUES ($1, 0, $3, '[]'::jsonb, '[]'::jsonb, $2, $4)
		ON CONFLICT (user_id) DO UPDATE SET
			financial_health_score = EXCLUDED.financial_health_score,
			last_activity = EXCLUDED.last_activity
		RETURNING ` + progressColumns

	progress, err := scanProgress(s.db.QueryRowContext(
		ctx,
		query,
		userID,
		score,
		domain.DefaultLevel,
		now,
	))
	if err != nil {
		log.Error("failed to set health score",
			slog.String("error", err.Error()),
			slog.String("user_id", userID.String()),
			slog.Int("score", score))
		return nil, MapError(err)
	}

	log.Debug("health score updated",
		slog.String("user_id", userID.String()),
		slog.Int("score", score))
	return progress, nil
}

// Delete implements store.ProgressStore.Delete
// It removes a user's progress record.
// Returns store.ErrProgressNotFound if the record does not exist.
func (s *PostgresProgressStore) Delete(ctx context.Context, userID uuid.UUID) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := `DELETE FROM progress WHERE user_id = $1`

	result, err := s.db.ExecContext(ctx, query, userID)
	if err != nil {
		log.Error("failed to delete progress",
			slog.String("error", err.Error()),
			slog.String("user_id", userID.String()))
		return fmt.Errorf("%w: %w", store.ErrDeleteFailed, MapError(err))
	}

	if err := CheckRowsAffected(result, "progress"); err != nil {
		log.Debug("progress not found for delete",
			slog.String("user_id", userID.String()))
		return store.ErrProgressNotFound
	}

	log.Info("progress deleted",
		slog.String("user_id", userID.String()))
	return nil
}

// WithTx implements store.ProgressStore.WithTx
// It returns a new store instance bound to the provided transaction.
func (s *PostgresProgressStore) WithTx(tx *sql.Tx) store.ProgressStore {
	return &PostgresProgressStore{
		db:     tx,
		logger: s.logger,
	}
}
