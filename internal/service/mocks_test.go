package service

import (
	"context"
	"database/sql"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/empowermint/empowermint-api/internal/domain"
	"github.com/empowermint/empowermint-api/internal/store"
)

// fakeProgressStore is an in-memory ProgressStore that mirrors the atomic
// semantics of the real implementation: every award mutates under a single
// lock and recomputes the level from the resulting XP total.
type fakeProgressStore struct {
	mu      sync.Mutex
	records map[uuid.UUID]*domain.Progress

	// failNext forces the next mutating call to return this error.
	failNext error
}

func newFakeProgressStore() *fakeProgressStore {
	return &fakeProgressStore{records: make(map[uuid.UUID]*domain.Progress)}
}

var _ store.ProgressStore = (*fakeProgressStore)(nil)

func (f *fakeProgressStore) takeFailure() error {
	err := f.failNext
	f.failNext = nil
	return err
}

// getOrCreateLocked lazily creates a default record. Callers hold the lock.
func (f *fakeProgressStore) getOrCreateLocked(userID uuid.UUID, now time.Time) *domain.Progress {
	if p, ok := f.records[userID]; ok {
		return p
	}
	p := &domain.Progress{
		UserID:               userID,
		XP:                   0,
		Level:                domain.DefaultLevel,
		CompletedLessonIDs:   []string{},
		CompletedScenarioIDs: []string{},
		FinancialHealthScore: domain.DefaultHealthScore,
		LastActivity:         now,
	}
	f.records[userID] = p
	return p
}

func cloneProgress(p *domain.Progress) *domain.Progress {
	clone := *p
	clone.CompletedLessonIDs = append([]string{}, p.CompletedLessonIDs...)
	clone.CompletedScenarioIDs = append([]string{}, p.CompletedScenarioIDs...)
	return &clone
}

func (f *fakeProgressStore) Get(ctx context.Context, userID uuid.UUID) (*domain.Progress, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	p, ok := f.records[userID]
	if !ok {
		return nil, store.ErrProgressNotFound
	}
	return cloneProgress(p), nil
}

func (f *fakeProgressStore) Create(ctx context.Context, progress *domain.Progress) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.takeFailure(); err != nil {
		return err
	}
	if _, ok := f.records[progress.UserID]; ok {
		return store.ErrDuplicate
	}
	f.records[progress.UserID] = cloneProgress(progress)
	return nil
}

func (f *fakeProgressStore) AddXP(ctx context.Context, userID uuid.UUID, amount int, now time.Time) (*domain.Progress, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.takeFailure(); err != nil {
		return nil, err
	}
	p := f.getOrCreateLocked(userID, now)
	p.XP += amount
	p.Level = p.XP / domain.XPPerLevel
	p.LastActivity = now
	return cloneProgress(p), nil
}

func (f *fakeProgressStore) RecordLessonCompletion(
	ctx context.Context,
	userID uuid.UUID,
	lessonID string,
	xp int,
	healthScore int,
	now time.Time,
) (*domain.Progress, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.takeFailure(); err != nil {
		return nil, err
	}
	p := f.getOrCreateLocked(userID, now)
	p.XP += xp
	p.Level = p.XP / domain.XPPerLevel
	if !contains(p.CompletedLessonIDs, lessonID) {
		p.CompletedLessonIDs = append(p.CompletedLessonIDs, lessonID)
	}
	p.FinancialHealthScore = healthScore
	p.LastActivity = now
	return cloneProgress(p), nil
}

func (f *fakeProgressStore) RecordScenarioCompletion(
	ctx context.Context,
	userID uuid.UUID,
	scenarioID string,
	xp int,
	healthScore int,
	now time.Time,
) (*domain.Progress, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.takeFailure(); err != nil {
		return nil, err
	}
	p := f.getOrCreateLocked(userID, now)
	p.XP += xp
	p.Level = p.XP / domain.XPPerLevel
	if !contains(p.CompletedScenarioIDs, scenarioID) {
		p.CompletedScenarioIDs = append(p.CompletedScenarioIDs, scenarioID)
	}
	p.FinancialHealthScore = healthScore
	p.LastActivity = now
	return cloneProgress(p), nil
}

func (f *fakeProgressStore) SetHealthScore(ctx context.Context, userID uuid.UUID, score int, now time.Time) (*domain.Progress, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.takeFailure(); err != nil {
		return nil, err
	}
	p := f.getOrCreateLocked(userID, now)
	p.FinancialHealthScore = score
	p.LastActivity = now
	return cloneProgress(p), nil
}

func (f *fakeProgressStore) Delete(ctx context.Context, userID uuid.UUID) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.records[userID]; !ok {
		return store.ErrProgressNotFound
	}
	delete(f.records, userID)
	return nil
}

func (f *fakeProgressStore) WithTx(tx *sql.Tx) store.ProgressStore {
	return f
}

func contains(ids []string, id string) bool {
	for _, existing := range ids {
		if existing == id {
			return true
		}
	}
	return false
}

// fakeUserProfileStore is an in-memory UserProfileStore.
type fakeUserProfileStore struct {
	mu       sync.Mutex
	profiles map[uuid.UUID]*domain.UserProfile
}

func newFakeUserProfileStore() *fakeUserProfileStore {
	return &fakeUserProfileStore{profiles: make(map[uuid.UUID]*domain.UserProfile)}
}

var _ store.UserProfileStore = (*fakeUserProfileStore)(nil)

func (f *fakeUserProfileStore) Create(ctx context.Context, profile *domain.UserProfile) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.profiles[profile.ID]; ok {
		return store.ErrUserExists
	}
	clone := *profile
	f.profiles[profile.ID] = &clone
	return nil
}

func (f *fakeUserProfileStore) GetByID(ctx context.Context, id uuid.UUID) (*domain.UserProfile, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	p, ok := f.profiles[id]
	if !ok {
		return nil, store.ErrUserNotFound
	}
	clone := *p
	return &clone, nil
}

func (f *fakeUserProfileStore) UpdateAccessibility(ctx context.Context, id uuid.UUID, settings domain.AccessibilitySettings) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	p, ok := f.profiles[id]
	if !ok {
		return store.ErrUserNotFound
	}
	p.Accessibility = settings
	return nil
}

func (f *fakeUserProfileStore) Delete(ctx context.Context, id uuid.UUID) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.profiles[id]; !ok {
		return store.ErrUserNotFound
	}
	delete(f.profiles, id)
	return nil
}

func (f *fakeUserProfileStore) WithTx(tx *sql.Tx) store.UserProfileStore {
	return f
}
