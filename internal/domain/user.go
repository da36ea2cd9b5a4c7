package domain

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

// ExperienceLevel is a user's self-reported familiarity with personal finance.
type ExperienceLevel string

// Known experience levels.
const (
	ExperienceBeginner     ExperienceLevel = "beginner"
	ExperienceIntermediate ExperienceLevel = "intermediate"
	ExperienceAdvanced     ExperienceLevel = "advanced"
)

// LearningStyle is a user's preferred way of consuming content.
type LearningStyle string

// Known learning styles.
const (
	LearningStyleVisual      LearningStyle = "visual"
	LearningStyleTextual     LearningStyle = "textual"
	LearningStyleInteractive LearningStyle = "interactive"
)

// FontSize is an accessibility font-size preference.
type FontSize string

// Known font sizes.
const (
	FontSizeSmall  FontSize = "small"
	FontSizeMedium FontSize = "medium"
	FontSizeLarge  FontSize = "large"
)

// ColorblindMode is an accessibility color-vision preference.
type ColorblindMode string

// Known colorblind modes.
const (
	ColorblindModeNone         ColorblindMode = "none"
	ColorblindModeProtanopia   ColorblindMode = "protanopia"
	ColorblindModeDeuteranopia ColorblindMode = "deuteranopia"
	ColorblindModeTritanopia   ColorblindMode = "tritanopia"
)

// AccessibilitySettings holds a user's display preferences.
type AccessibilitySettings struct {
	FontSize       FontSize       `json:"fontSize"`
	HighContrast   bool           `json:"highContrast"`
	ColorblindMode ColorblindMode `json:"colorblindMode"`
}

// Validate checks that the settings use known preference values.
func (a AccessibilitySettings) Validate() error {
	switch a.FontSize {
	case FontSizeSmall, FontSizeMedium, FontSizeLarge:
	default:
		return fmt.Errorf("%w: %q", ErrInvalidFontSize, a.FontSize)
	}
	switch a.ColorblindMode {
	case ColorblindModeNone, ColorblindModeProtanopia, ColorblindModeDeuteranopia, ColorblindModeTritanopia:
	default:
		return fmt.Errorf("%w: %q", ErrInvalidColorblindMode, a.ColorblindMode)
	}
	return nil
}

// DefaultAccessibilitySettings returns the settings a new profile starts with.
func DefaultAccessibilitySettings() AccessibilitySettings {
	return AccessibilitySettings{
		FontSize:       FontSizeMedium,
		HighContrast:   false,
		ColorblindMode: ColorblindModeNone,
	}
}

// UserProfile is the onboarding-time snapshot of a learner. It is read-only
// input to recommendation selection and prompt personalization; the decision
// engine never consumes it.
type UserProfile struct {
	ID              uuid.UUID             `json:"id"`
	CreatedAt       time.Time             `json:"createdAt"`
	ExperienceLevel ExperienceLevel       `json:"experienceLevel"`
	FinancialGoals  []string              `json:"financialGoals"`
	RiskComfort     int                   `json:"riskComfort"` // 1-10 scale
	LearningStyle   LearningStyle         `json:"learningStyle"`
	Accessibility   AccessibilitySettings `json:"accessibility"`
}

// NewUserProfile creates a profile from onboarding answers with default
// accessibility settings, validating the inputs.
func NewUserProfile(
	experienceLevel ExperienceLevel,
	financialGoals []string,
	riskComfort int,
	learningStyle LearningStyle,
	now time.Time,
) (*UserProfile, error) {
	profile := &UserProfile{
		ID:              uuid.New(),
		CreatedAt:       now.UTC(),
		ExperienceLevel: experienceLevel,
		FinancialGoals:  financialGoals,
		RiskComfort:     riskComfort,
		LearningStyle:   learningStyle,
		Accessibility:   DefaultAccessibilitySettings(),
	}

	if err := profile.Validate(); err != nil {
		return nil, err
	}

	return profile, nil
}

// Validate checks if the UserProfile has valid data.
func (u *UserProfile) Validate() error {
	if u.ID == uuid.Nil {
		return ErrInvalidID
	}
	switch u.ExperienceLevel {
	case ExperienceBeginner, ExperienceIntermediate, ExperienceAdvanced:
	default:
		return fmt.Errorf("%w: %q", ErrInvalidExperienceLevel, u.ExperienceLevel)
	}
	switch u.LearningStyle {
	case LearningStyleVisual, LearningStyleTextual, LearningStyleInteractive:
	default:
		return fmt.Errorf("%w: %q", ErrInvalidLearningStyle, u.LearningStyle)
	}
	if u.RiskComfort < MinRating || u.RiskComfort > MaxRating {
		return ErrInvalidRiskComfort
	}
	if len(u.FinancialGoals) == 0 {
		return ErrEmptyFinancialGoals
	}
	if err := u.Accessibility.Validate(); err != nil {
		return err
	}
	return nil
}
