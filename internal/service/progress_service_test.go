package service

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/empowermint/empowermint-api/internal/domain"
)

func newProgressService(t *testing.T, fake *fakeProgressStore) ProgressService {
	t.Helper()
	svc, err := NewProgressService(fake, slog.Default())
	require.NoError(t, err)
	return svc
}

func TestNewProgressService_Validation(t *testing.T) {
	t.Parallel()

	_, err := NewProgressService(nil, slog.Default())
	assert.Error(t, err)

	_, err = NewProgressService(newFakeProgressStore(), nil)
	assert.Error(t, err)
}

func TestProgressService_AddXP(t *testing.T) {
	t.Parallel()

	fake := newFakeProgressStore()
	svc := newProgressService(t, fake)
	ctx := context.Background()
	userID := uuid.New()

	progress, err := svc.AddXP(ctx, userID, 30)
	require.NoError(t, err)
	assert.Equal(t, 30, progress.XP)
	assert.Equal(t, 0, progress.Level)

	progress, err = svc.AddXP(ctx, userID, 90)
	require.NoError(t, err)
	assert.Equal(t, 120, progress.XP)
	assert.Equal(t, 1, progress.Level, "level must track floor(xp/100)")

	// Negative awards are rejected before reaching the store.
	_, err = svc.AddXP(ctx, userID, -5)
	assert.ErrorIs(t, err, domain.ErrValidation)
	assert.ErrorIs(t, err, domain.ErrInvalidXPAmount)

	progress, err = svc.GetProgress(ctx, userID)
	require.NoError(t, err)
	assert.Equal(t, 120, progress.XP, "rejected award must not mutate progress")
}

func TestProgressService_ConcurrentAddXP(t *testing.T) {
	t.Parallel()

	fake := newFakeProgressStore()
	svc := newProgressService(t, fake)
	ctx := context.Background()
	userID := uuid.New()

	const workers = 50
	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := svc.AddXP(ctx, userID, 10)
			assert.NoError(t, err)
		}()
	}
	wg.Wait()

	progress, err := svc.GetProgress(ctx, userID)
	require.NoError(t, err)
	assert.Equal(t, workers*10, progress.XP, "concurrent awards must all land")
	assert.Equal(t, workers*10/100, progress.Level)
}

func TestProgressService_GetProgress_NotFound(t *testing.T) {
	t.Parallel()

	svc := newProgressService(t, newFakeProgressStore())

	_, err := svc.GetProgress(context.Background(), uuid.New())
	assert.ErrorIs(t, err, ErrProgressNotFound)
}

func TestProgressService_MarkLessonComplete(t *testing.T) {
	t.Parallel()

	fake := newFakeProgressStore()
	svc := newProgressService(t, fake)
	ctx := context.Background()
	userID := uuid.New()

	progress, err := svc.MarkLessonComplete(ctx, userID, "lesson-1-compound-interest", 40, 80)
	require.NoError(t, err)
	assert.Equal(t, 40, progress.XP)
	assert.Equal(t, 80, progress.FinancialHealthScore)
	assert.Equal(t, []string{"lesson-1-compound-interest"}, progress.CompletedLessonIDs)

	// Repeat completion: XP credited again, set unchanged.
	progress, err = svc.MarkLessonComplete(ctx, userID, "lesson-1-compound-interest", 40, 80)
	require.NoError(t, err)
	assert.Equal(t, 80, progress.XP)
	assert.Equal(t, []string{"lesson-1-compound-interest"}, progress.CompletedLessonIDs)
}

func TestProgressService_MarkScenarioComplete(t *testing.T) {
	t.Parallel()

	fake := newFakeProgressStore()
	svc := newProgressService(t, fake)
	ctx := context.Background()
	userID := uuid.New()

	progress, err := svc.MarkScenarioComplete(ctx, userID, "scenario-1-first-job", 100, 85)
	require.NoError(t, err)
	assert.Equal(t, 100, progress.XP)
	assert.Equal(t, 1, progress.Level)
	assert.Equal(t, []string{"scenario-1-first-job"}, progress.CompletedScenarioIDs)
}

func TestProgressService_AwardValidation(t *testing.T) {
	t.Parallel()

	svc := newProgressService(t, newFakeProgressStore())
	ctx := context.Background()
	userID := uuid.New()

	tests := []struct {
		name        string
		contentID   string
		xp          int
		healthScore int
	}{
		{name: "empty content ID", contentID: "", xp: 10, healthScore: 50},
		{name: "negative XP", contentID: "lesson-1", xp: -1, healthScore: 50},
		{name: "health score above range", contentID: "lesson-1", xp: 10, healthScore: 101},
		{name: "health score below range", contentID: "lesson-1", xp: 10, healthScore: -1},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			_, err := svc.MarkLessonComplete(ctx, userID, tc.contentID, tc.xp, tc.healthScore)
			assert.ErrorIs(t, err, domain.ErrValidation)
		})
	}
}

func TestProgressService_SetHealthScore(t *testing.T) {
	t.Parallel()

	fake := newFakeProgressStore()
	svc := newProgressService(t, fake)
	ctx := context.Background()
	userID := uuid.New()

	progress, err := svc.SetHealthScore(ctx, userID, 70)
	require.NoError(t, err)
	assert.Equal(t, 70, progress.FinancialHealthScore)

	_, err = svc.SetHealthScore(ctx, userID, 120)
	assert.ErrorIs(t, err, domain.ErrValidation)
	assert.ErrorIs(t, err, domain.ErrInvalidHealthScore)
}

func TestProgressService_StoreFailureWrapped(t *testing.T) {
	t.Parallel()

	fake := newFakeProgressStore()
	svc := newProgressService(t, fake)

	fake.failNext = errors.New("connection reset")
	_, err := svc.AddXP(context.Background(), uuid.New(), 10)
	require.Error(t, err)

	var svcErr *ProgressServiceError
	assert.ErrorAs(t, err, &svcErr)
	assert.Equal(t, "add_xp", svcErr.Operation)
}
