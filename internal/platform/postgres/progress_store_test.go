package postgres_test

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	_ "github.com/jackc/pgx/v5/stdlib" // pgx driver
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/empowermint/empowermint-api/internal/domain"
	"github.com/empowermint/empowermint-api/internal/platform/postgres"
	"github.com/empowermint/empowermint-api/internal/store"
)

// testDB is a package-level variable that holds a shared database connection
// for all tests in this package.
var testDB *sql.DB

// TestMain sets up the database and runs all tests once, rather than for each test.
// Database-backed tests skip themselves when DATABASE_URL is not set; the
// fake-backed unit tests in this package run either way.
func TestMain(m *testing.M) {
	dbURL := os.Getenv("DATABASE_URL")
	if dbURL == "" {
		os.Exit(m.Run())
	}

	var err error
	testDB, err = sql.Open("pgx", dbURL)
	if err != nil {
		fmt.Printf("Failed to open database connection: %v\n", err)
		os.Exit(1)
	}

	testDB.SetMaxOpenConns(5)
	testDB.SetMaxIdleConns(5)
	testDB.SetConnMaxLifetime(5 * time.Minute)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := testDB.PingContext(ctx); err != nil {
		fmt.Printf("Failed to ping database: %v\n", err)
		os.Exit(1)
	}

	if err := postgres.Migrate(testDB); err != nil {
		fmt.Printf("Failed to setup test database schema: %v\n", err)
		os.Exit(1)
	}

	exitCode := m.Run()

	if err := testDB.Close(); err != nil {
		fmt.Printf("Failed to close database connection in TestMain: %v\n", err)
	}

	os.Exit(exitCode)
}

// requireDB skips the calling test when no database is configured.
func requireDB(t *testing.T) {
	t.Helper()
	if testDB == nil {
		t.Skip("DATABASE_URL not set; skipping database-backed test")
	}
}

func newProgressStore(t *testing.T) store.ProgressStore {
	t.Helper()
	requireDB(t)
	return postgres.NewPostgresProgressStore(testDB, nil)
}

func TestProgressStore_LazyCreateOnAddXP(t *testing.T) {
	s := newProgressStore(t)
	ctx := context.Background()
	userID := uuid.New()
	now := time.Now().UTC()

	// No record exists yet.
	_, err := s.Get(ctx, userID)
	assert.ErrorIs(t, err, store.ErrProgressNotFound)

	progress, err := s.AddXP(ctx, userID, 30, now)
	require.NoError(t, err)
	assert.Equal(t, 30, progress.XP)
	assert.Equal(t, 0, progress.Level)
	assert.Equal(t, domain.DefaultHealthScore, progress.FinancialHealthScore)
	assert.Empty(t, progress.CompletedLessonIDs)
	assert.Empty(t, progress.CompletedScenarioIDs)

	// Subsequent awards accumulate and recompute the level.
	progress, err = s.AddXP(ctx, userID, 80, now)
	require.NoError(t, err)
	assert.Equal(t, 110, progress.XP)
	assert.Equal(t, 1, progress.Level)

	progress, err = s.AddXP(ctx, userID, 250, now)
	require.NoError(t, err)
	assert.Equal(t, 360, progress.XP)
	assert.Equal(t, 3, progress.Level)
}

func TestProgressStore_ConcurrentAddXP(t *testing.T) {
	s := newProgressStore(t)
	ctx := context.Background()
	userID := uuid.New()

	const workers = 20
	var wg sync.WaitGroup
	errs := make(chan error, workers)

	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := s.AddXP(ctx, userID, 10, time.Now().UTC())
			errs <- err
		}()
	}
	wg.Wait()
	close(errs)
	for err := range errs {
		require.NoError(t, err)
	}

	progress, err := s.Get(ctx, userID)
	require.NoError(t, err)
	assert.Equal(t, workers*10, progress.XP, "concurrent awards must not lose updates")
	assert.Equal(t, workers*10/100, progress.Level)
}

func TestProgressStore_RecordLessonCompletion(t *testing.T) {
	s := newProgressStore(t)
	ctx := context.Background()
	userID := uuid.New()
	now := time.Now().UTC()

	progress, err := s.RecordLessonCompletion(ctx, userID, "lesson-1-compound-interest", 40, 80, now)
	require.NoError(t, err)
	assert.Equal(t, 40, progress.XP)
	assert.Equal(t, 80, progress.FinancialHealthScore)
	assert.Equal(t, []string{"lesson-1-compound-interest"}, progress.CompletedLessonIDs)

	// Completing the same lesson again credits XP but does not duplicate the set entry.
	progress, err = s.RecordLessonCompletion(ctx, userID, "lesson-1-compound-interest", 40, 80, now)
	require.NoError(t, err)
	assert.Equal(t, 80, progress.XP)
	assert.Equal(t, []string{"lesson-1-compound-interest"}, progress.CompletedLessonIDs)

	progress, err = s.RecordLessonCompletion(ctx, userID, "lesson-2-budgeting-basics", 50, 100, now)
	require.NoError(t, err)
	assert.Equal(t, 130, progress.XP)
	assert.Equal(t, 1, progress.Level)
	assert.ElementsMatch(t,
		[]string{"lesson-1-compound-interest", "lesson-2-budgeting-basics"},
		progress.CompletedLessonIDs)
}

func TestProgressStore_RecordScenarioCompletion(t *testing.T) {
	s := newProgressStore(t)
	ctx := context.Background()
	userID := uuid.New()
	now := time.Now().UTC()

	progress, err := s.RecordScenarioCompletion(ctx, userID, "scenario-1-first-job", 100, 85, now)
	require.NoError(t, err)
	assert.Equal(t, 100, progress.XP)
	assert.Equal(t, 1, progress.Level)
	assert.Equal(t, 85, progress.FinancialHealthScore)
	assert.Equal(t, []string{"scenario-1-first-job"}, progress.CompletedScenarioIDs)
	assert.Empty(t, progress.CompletedLessonIDs)

	progress, err = s.RecordScenarioCompletion(ctx, userID, "scenario-1-first-job", 100, 85, now)
	require.NoError(t, err)
	assert.Equal(t, 200, progress.XP)
	assert.Equal(t, []string{"scenario-1-first-job"}, progress.CompletedScenarioIDs)
}

func TestProgressStore_SetHealthScore(t *testing.T) {
	s := newProgressStore(t)
	ctx := context.Background()
	userID := uuid.New()
	now := time.Now().UTC()

	// Lazy-creates with defaults when absent.
	progress, err := s.SetHealthScore(ctx, userID, 70, now)
	require.NoError(t, err)
	assert.Equal(t, 70, progress.FinancialHealthScore)
	assert.Equal(t, 0, progress.XP)
	assert.Equal(t, domain.DefaultLevel, progress.Level)

	// Replaces the score on an existing record without touching XP.
	_, err = s.AddXP(ctx, userID, 50, now)
	require.NoError(t, err)

	progress, err = s.SetHealthScore(ctx, userID, 30, now)
	require.NoError(t, err)
	assert.Equal(t, 30, progress.FinancialHealthScore)
	assert.Equal(t, 50, progress.XP)
}

func TestProgressStore_CreateAndDelete(t *testing.T) {
	s := newProgressStore(t)
	ctx := context.Background()
	now := time.Now().UTC()

	progress, err := domain.NewProgress(uuid.New(), now)
	require.NoError(t, err)

	require.NoError(t, s.Create(ctx, progress))
	assert.ErrorIs(t, s.Create(ctx, progress), store.ErrDuplicate)

	got, err := s.Get(ctx, progress.UserID)
	require.NoError(t, err)
	assert.Equal(t, 0, got.XP)
	assert.Equal(t, domain.DefaultLevel, got.Level)
	assert.Equal(t, domain.DefaultHealthScore, got.FinancialHealthScore)

	require.NoError(t, s.Delete(ctx, progress.UserID))
	assert.ErrorIs(t, s.Delete(ctx, progress.UserID), store.ErrProgressNotFound)
}
