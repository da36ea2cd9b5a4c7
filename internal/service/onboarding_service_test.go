package service

import (
	"context"
	"database/sql"
	"log/slog"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/empowermint/empowermint-api/internal/catalog"
	"github.com/empowermint/empowermint-api/internal/domain"
)

func newOnboardingService(t *testing.T, users *fakeUserProfileStore) OnboardingService {
	t.Helper()

	catalogStore, err := catalog.Load()
	require.NoError(t, err)

	svc, err := NewOnboardingService(&sql.DB{}, users, newFakeProgressStore(), catalogStore, slog.Default())
	require.NoError(t, err)
	return svc
}

func TestNewOnboardingService_Validation(t *testing.T) {
	t.Parallel()

	catalogStore, err := catalog.Load()
	require.NoError(t, err)

	users := newFakeUserProfileStore()
	progress := newFakeProgressStore()
	log := slog.Default()

	tests := []struct {
		name string
		call func() (OnboardingService, error)
	}{
		{"nil db", func() (OnboardingService, error) {
			return NewOnboardingService(nil, users, progress, catalogStore, log)
		}},
		{"nil user store", func() (OnboardingService, error) {
			return NewOnboardingService(&sql.DB{}, nil, progress, catalogStore, log)
		}},
		{"nil progress store", func() (OnboardingService, error) {
			return NewOnboardingService(&sql.DB{}, users, nil, catalogStore, log)
		}},
		{"nil catalog", func() (OnboardingService, error) {
			return NewOnboardingService(&sql.DB{}, users, progress, nil, log)
		}},
		{"nil logger", func() (OnboardingService, error) {
			return NewOnboardingService(&sql.DB{}, users, progress, catalogStore, nil)
		}},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			_, err := tc.call()
			assert.Error(t, err)
		})
	}
}

func TestOnboard_InvalidInput(t *testing.T) {
	t.Parallel()

	svc := newOnboardingService(t, newFakeUserProfileStore())
	ctx := context.Background()

	tests := []struct {
		name        string
		level       domain.ExperienceLevel
		goals       []string
		riskComfort int
		style       domain.LearningStyle
	}{
		{
			name:        "unknown experience level",
			level:       "expert",
			goals:       []string{"save more"},
			riskComfort: 5,
			style:       domain.LearningStyleVisual,
		},
		{
			name:        "empty goals",
			level:       domain.ExperienceBeginner,
			goals:       nil,
			riskComfort: 5,
			style:       domain.LearningStyleVisual,
		},
		{
			name:        "risk comfort out of range",
			level:       domain.ExperienceBeginner,
			goals:       []string{"save more"},
			riskComfort: 11,
			style:       domain.LearningStyleVisual,
		},
		{
			name:        "unknown learning style",
			level:       domain.ExperienceBeginner,
			goals:       []string{"save more"},
			riskComfort: 5,
			style:       "auditory",
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			_, err := svc.Onboard(ctx, tc.level, tc.goals, tc.riskComfort, tc.style)
			assert.ErrorIs(t, err, domain.ErrValidation)
		})
	}
}

func TestGetProfile(t *testing.T) {
	t.Parallel()

	users := newFakeUserProfileStore()
	svc := newOnboardingService(t, users)
	ctx := context.Background()

	profile, err := domain.NewUserProfile(
		domain.ExperienceIntermediate,
		[]string{"pay down debt"},
		6,
		domain.LearningStyleTextual,
		time.Now().UTC(),
	)
	require.NoError(t, err)
	require.NoError(t, users.Create(ctx, profile))

	got, err := svc.GetProfile(ctx, profile.ID)
	require.NoError(t, err)
	assert.Equal(t, profile.ID, got.ID)
	assert.Equal(t, domain.ExperienceIntermediate, got.ExperienceLevel)

	_, err = svc.GetProfile(ctx, uuid.New())
	assert.ErrorIs(t, err, ErrUserNotFound)
}

func TestUpdateAccessibility(t *testing.T) {
	t.Parallel()

	users := newFakeUserProfileStore()
	svc := newOnboardingService(t, users)
	ctx := context.Background()

	profile, err := domain.NewUserProfile(
		domain.ExperienceBeginner,
		[]string{"build savings"},
		3,
		domain.LearningStyleInteractive,
		time.Now().UTC(),
	)
	require.NoError(t, err)
	require.NoError(t, users.Create(ctx, profile))

	settings := domain.AccessibilitySettings{
		FontSize:       domain.FontSizeLarge,
		HighContrast:   true,
		ColorblindMode: domain.ColorblindModeTritanopia,
	}
	require.NoError(t, svc.UpdateAccessibility(ctx, profile.ID, settings))

	got, err := svc.GetProfile(ctx, profile.ID)
	require.NoError(t, err)
	assert.Equal(t, settings, got.Accessibility)

	// Invalid settings never reach the store.
	err = svc.UpdateAccessibility(ctx, profile.ID, domain.AccessibilitySettings{
		FontSize:       "giant",
		ColorblindMode: domain.ColorblindModeNone,
	})
	assert.ErrorIs(t, err, domain.ErrValidation)

	// Unknown user.
	err = svc.UpdateAccessibility(ctx, uuid.New(), settings)
	assert.ErrorIs(t, err, ErrUserNotFound)
}
