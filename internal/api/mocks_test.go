package api_test

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/empowermint/empowermint-api/internal/domain"
	"github.com/empowermint/empowermint-api/internal/generation"
	"github.com/empowermint/empowermint-api/internal/service"
)

// fakeProgressService is an in-memory ProgressService for handler tests.
type fakeProgressService struct {
	mu       sync.Mutex
	records  map[uuid.UUID]*domain.Progress
	failNext error
}

func newFakeProgressService() *fakeProgressService {
	return &fakeProgressService{records: make(map[uuid.UUID]*domain.Progress)}
}

func (f *fakeProgressService) takeFailure() error {
	err := f.failNext
	f.failNext = nil
	return err
}

func (f *fakeProgressService) getOrCreateLocked(userID uuid.UUID) *domain.Progress {
	if p, ok := f.records[userID]; ok {
		return p
	}
	p := &domain.Progress{
		UserID:               userID,
		Level:                domain.DefaultLevel,
		CompletedLessonIDs:   []string{},
		CompletedScenarioIDs: []string{},
		FinancialHealthScore: domain.DefaultHealthScore,
		LastActivity:         time.Now().UTC(),
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

func (f *fakeProgressService) GetProgress(_ context.Context, userID uuid.UUID) (*domain.Progress, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.takeFailure(); err != nil {
		return nil, err
	}
	p, ok := f.records[userID]
	if !ok {
		return nil, service.ErrProgressNotFound
	}
	return cloneProgress(p), nil
}

func (f *fakeProgressService) AddXP(_ context.Context, userID uuid.UUID, amount int) (*domain.Progress, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.takeFailure(); err != nil {
		return nil, err
	}
	p := f.getOrCreateLocked(userID)
	p.XP += amount
	p.Level = p.XP / domain.XPPerLevel
	return cloneProgress(p), nil
}

func (f *fakeProgressService) MarkLessonComplete(_ context.Context, userID uuid.UUID, lessonID string, xp, healthScore int) (*domain.Progress, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.takeFailure(); err != nil {
		return nil, err
	}
	p := f.getOrCreateLocked(userID)
	p.XP += xp
	p.Level = p.XP / domain.XPPerLevel
	p.FinancialHealthScore = healthScore
	if !p.HasCompletedLesson(lessonID) {
		p.CompletedLessonIDs = append(p.CompletedLessonIDs, lessonID)
	}
	return cloneProgress(p), nil
}

func (f *fakeProgressService) MarkScenarioComplete(_ context.Context, userID uuid.UUID, scenarioID string, xp, healthScore int) (*domain.Progress, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.takeFailure(); err != nil {
		return nil, err
	}
	p := f.getOrCreateLocked(userID)
	p.XP += xp
	p.Level = p.XP / domain.XPPerLevel
	p.FinancialHealthScore = healthScore
	if !p.HasCompletedScenario(scenarioID) {
		p.CompletedScenarioIDs = append(p.CompletedScenarioIDs, scenarioID)
	}
	return cloneProgress(p), nil
}

func (f *fakeProgressService) SetHealthScore(_ context.Context, userID uuid.UUID, score int) (*domain.Progress, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.takeFailure(); err != nil {
		return nil, err
	}
	p := f.getOrCreateLocked(userID)
	p.FinancialHealthScore = score
	return cloneProgress(p), nil
}

// fakeOnboardingService is an in-memory OnboardingService for handler tests.
type fakeOnboardingService struct {
	mu       sync.Mutex
	profiles map[uuid.UUID]*domain.UserProfile
	failNext error
}

func newFakeOnboardingService() *fakeOnboardingService {
	return &fakeOnboardingService{profiles: make(map[uuid.UUID]*domain.UserProfile)}
}

func (f *fakeOnboardingService) Onboard(
	_ context.Context,
	experienceLevel domain.ExperienceLevel,
	financialGoals []string,
	riskComfort int,
	learningStyle domain.LearningStyle,
) (*service.OnboardingResult, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.failNext; err != nil {
		f.failNext = nil
		return nil, err
	}
	profile, err := domain.NewUserProfile(experienceLevel, financialGoals, riskComfort, learningStyle, time.Now())
	if err != nil {
		return nil, fmt.Errorf("%w: %w", domain.ErrValidation, err)
	}
	f.profiles[profile.ID] = profile
	return &service.OnboardingResult{
		Profile:              profile,
		RecommendedLessons:   []string{"lesson-2-budgeting-basics"},
		RecommendedScenarios: []string{"scenario-1-first-job"},
	}, nil
}

func (f *fakeOnboardingService) GetProfile(_ context.Context, userID uuid.UUID) (*domain.UserProfile, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	p, ok := f.profiles[userID]
	if !ok {
		return nil, service.ErrUserNotFound
	}
	return p, nil
}

func (f *fakeOnboardingService) UpdateAccessibility(_ context.Context, userID uuid.UUID, settings domain.AccessibilitySettings) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := settings.Validate(); err != nil {
		return fmt.Errorf("%w: %w", domain.ErrValidation, err)
	}
	p, ok := f.profiles[userID]
	if !ok {
		return service.ErrUserNotFound
	}
	p.Accessibility = settings
	return nil
}

func (f *fakeOnboardingService) DeleteUser(_ context.Context, userID uuid.UUID) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.profiles[userID]; !ok {
		return service.ErrUserNotFound
	}
	delete(f.profiles, userID)
	return nil
}

// fakeGenerator records its inputs and returns canned text.
type fakeGenerator struct {
	mu             sync.Mutex
	lastReflection *generation.ReflectionInput
	lastExplain    *generation.ExplainInput
	lastSimulation *generation.SimulationInput
	source         generation.Source
}

func newFakeGenerator() *fakeGenerator {
	return &fakeGenerator{source: generation.SourceGenerated}
}

func (f *fakeGenerator) Reflect(_ context.Context, input generation.ReflectionInput) generation.Reflection {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.lastReflection = &input
	return generation.Reflection{Text: "a thoughtful reflection", Source: f.source}
}

func (f *fakeGenerator) Explain(_ context.Context, input generation.ExplainInput) generation.Reflection {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.lastExplain = &input
	return generation.Reflection{Text: "a clear explanation", Source: f.source}
}

func (f *fakeGenerator) ExplainSimulation(_ context.Context, input generation.SimulationInput) generation.Reflection {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.lastSimulation = &input
	return generation.Reflection{Text: "a projection summary", Source: f.source}
}
