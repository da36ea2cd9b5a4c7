package postgres_test

import (
	"context"
	"database/sql"
	"testing"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"

	"github.com/empowermint/empowermint-api/internal/domain"
	"github.com/empowermint/empowermint-api/internal/platform/postgres"
	"github.com/empowermint/empowermint-api/internal/store"
)

// failingDBTX satisfies store.DBTX and returns a fixed error from every
// statement, standing in for a database that rejects writes.
type failingDBTX struct {
	err error
}

func (f *failingDBTX) ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error) {
	return nil, f.err
}

func (f *failingDBTX) PrepareContext(ctx context.Context, query string) (*sql.Stmt, error) {
	return nil, f.err
}

func (f *failingDBTX) QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error) {
	return nil, f.err
}

func (f *failingDBTX) QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row {
	return nil
}

func TestUserProfileStore_CreateCheckViolation(t *testing.T) {
	db := &failingDBTX{err: &pgconn.PgError{Code: "23514", ConstraintName: "users_risk_comfort_check"}}
	s := postgres.NewPostgresUserProfileStore(db, nil)

	err := s.Create(context.Background(), newTestProfile(t))
	assert.ErrorIs(t, err, store.ErrInvalidEntity)
}

func TestUserProfileStore_UpdateAccessibilityExecFailure(t *testing.T) {
	db := &failingDBTX{err: assert.AnError}
	s := postgres.NewPostgresUserProfileStore(db, nil)

	settings := domain.AccessibilitySettings{
		FontSize:       domain.FontSizeMedium,
		ColorblindMode: domain.ColorblindModeNone,
	}
	err := s.UpdateAccessibility(context.Background(), uuid.New(), settings)
	assert.ErrorIs(t, err, store.ErrUpdateFailed)
	assert.ErrorIs(t, err, assert.AnError)
}

func TestUserProfileStore_DeleteExecFailure(t *testing.T) {
	db := &failingDBTX{err: assert.AnError}
	s := postgres.NewPostgresUserProfileStore(db, nil)

	err := s.Delete(context.Background(), uuid.New())
	assert.ErrorIs(t, err, store.ErrDeleteFailed)
	assert.ErrorIs(t, err, assert.AnError)
}

func TestProgressStore_DeleteExecFailure(t *testing.T) {
	db := &failingDBTX{err: assert.AnError}
	s := postgres.NewPostgresProgressStore(db, nil)

	err := s.Delete(context.Background(), uuid.New())
	assert.ErrorIs(t, err, store.ErrDeleteFailed)
	assert.ErrorIs(t, err, assert.AnError)
}
