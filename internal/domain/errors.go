// Package domain defines the core business entities and errors.
package domain

import "errors"

// Common domain errors used across the application.
var (
	// ErrValidation is returned when a domain entity or request value fails
	// validation. This is often wrapped with a more specific error message.
	ErrValidation = errors.New("validation failed")

	// ErrInvalidID is returned when an ID is malformed or invalid.
	ErrInvalidID = errors.New("invalid ID")

	// ErrInvalidExperienceLevel is returned when an experience level is not
	// one of the known values.
	ErrInvalidExperienceLevel = errors.New("invalid experience level")

	// ErrInvalidLearningStyle is returned when a learning style is not one of
	// the known values.
	ErrInvalidLearningStyle = errors.New("invalid learning style")

	// ErrInvalidRiskComfort is returned when a risk comfort rating is outside
	// the 1-10 scale.
	ErrInvalidRiskComfort = errors.New("risk comfort must be between 1 and 10")

	// ErrEmptyFinancialGoals is returned when an onboarding profile carries no
	// financial goals.
	ErrEmptyFinancialGoals = errors.New("financial goals cannot be empty")

	// ErrInvalidScore is returned when a lesson quiz score is outside the
	// 0-100 range.
	ErrInvalidScore = errors.New("score must be between 0 and 100")

	// ErrInvalidXPAmount is returned when an XP award is negative.
	ErrInvalidXPAmount = errors.New("xp amount cannot be negative")

	// ErrInvalidHealthScore is returned when a financial health score is
	// outside the 0-100 range.
	ErrInvalidHealthScore = errors.New("financial health score must be between 0 and 100")

	// ErrInvalidFontSize is returned when a font size preference is not one of
	// the known values.
	ErrInvalidFontSize = errors.New("invalid font size")

	// ErrInvalidColorblindMode is returned when a colorblind mode preference is
	// not one of the known values.
	ErrInvalidColorblindMode = errors.New("invalid colorblind mode")
)
