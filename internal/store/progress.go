package store

import (
	"context"
	"database/sql"
	"time"

	"github.com/google/uuid"

	"github.com/empowermint/empowermint-api/internal/domain"
)

// ProgressStore defines the interface for progress accounting persistence.
//
// Award methods (AddXP, RecordLessonCompletion, RecordScenarioCompletion,
// SetHealthScore) must be atomic with respect to concurrent calls for the
// same user: two simultaneous awards both land, and the level is always
// recomputed from the resulting XP total. They create the progress record
// on first use, so callers never need to pre-create one.
type ProgressStore interface {
	// Get retrieves the progress record for a user.
	// Returns ErrProgressNotFound if the user has no progress record.
	Get(ctx context.Context, userID uuid.UUID) (*domain.Progress, error)

	// Create saves a fresh progress record with default values.
	// Returns ErrDuplicate if a record already exists for the user.
	Create(ctx context.Context, progress *domain.Progress) error

	// AddXP atomically adds the given XP amount to a user's total,
	// recomputes the level, and stamps the activity time.
	// The amount must be non-negative; validation happens in the service layer.
	// Returns the updated progress record.
	AddXP(ctx context.Context, userID uuid.UUID, amount int, now time.Time) (*domain.Progress, error)

	// RecordLessonCompletion atomically adds the lesson to the completed set,
	// credits the XP award, updates the health score, and recomputes the level.
	// Adding an already-completed lesson is a no-op for the completed set but
	// still credits the XP.
	// Returns the updated progress record.
	RecordLessonCompletion(
		ctx context.Context,
		userID uuid.UUID,
		lessonID string,
		xp int,
		healthScore int,
		now time.Time,
	) (*domain.Progress, error)

	// RecordScenarioCompletion atomically adds the scenario to the completed
	// set, credits the XP award, updates the health score, and recomputes the
	// level. Adding an already-completed scenario is a no-op for the completed
	// set but still credits the XP.
	// Returns the updated progress record.
	RecordScenarioCompletion(
		ctx context.Context,
		userID uuid.UUID,
		scenarioID string,
		xp int,
		healthScore int,
		now time.Time,
	) (*domain.Progress, error)

	// SetHealthScore atomically replaces the user's financial health score.
	// Returns the updated progress record.
	SetHealthScore(ctx context.Context, userID uuid.UUID, score int, now time.Time) (*domain.Progress, error)

	// Delete removes a user's progress record.
	// Returns ErrProgressNotFound if the record does not exist.
	Delete(ctx context.Context, userID uuid.UUID) error

	// WithTx returns a new ProgressStore instance that uses the provided transaction.
	// This allows for multiple operations to be executed within a single transaction.
	// The transaction should be created and managed by the caller (typically a service).
	WithTx(tx *sql.Tx) ProgressStore
}
