package api

import (
	"errors"
	"net/http"

	"github.com/empowermint/empowermint-api/internal/catalog"
	"github.com/empowermint/empowermint-api/internal/domain"
	"github.com/empowermint/empowermint-api/internal/domain/decision"
	"github.com/empowermint/empowermint-api/internal/redact"
	"github.com/empowermint/empowermint-api/internal/service"
	"github.com/empowermint/empowermint-api/internal/store"
)

// MapErrorToStatusCode maps internal errors to appropriate HTTP status codes
// based on the error type. This prevents leaking internal error types or
// messages to clients.
func MapErrorToStatusCode(err error) int {
	switch {
	// Not found errors
	case errors.Is(err, catalog.ErrScenarioNotFound),
		errors.Is(err, catalog.ErrLessonNotFound),
		errors.Is(err, decision.ErrDecisionPointNotFound),
		errors.Is(err, decision.ErrChoiceNotFound),
		errors.Is(err, service.ErrUserNotFound),
		errors.Is(err, service.ErrProgressNotFound),
		errors.Is(err, store.ErrNotFound):
		return http.StatusNotFound

	// Bad request errors
	case errors.Is(err, domain.ErrValidation),
		errors.Is(err, decision.ErrMalformedState),
		errors.Is(err, store.ErrInvalidEntity):
		return http.StatusBadRequest

	// Conflict errors
	case errors.Is(err, store.ErrUserExists),
		errors.Is(err, store.ErrDuplicate):
		return http.StatusConflict

	// Default: internal server error
	default:
		return http.StatusInternalServerError
	}
}

// GetSafeErrorMessage returns a sanitized, user-friendly error message
// based on the error type. This prevents leaking sensitive internal details.
func GetSafeErrorMessage(err error) string {
	if err == nil {
		return "An unexpected error occurred"
	}

	switch {
	// Not found errors
	case errors.Is(err, catalog.ErrScenarioNotFound):
		return "Scenario not found"

	case errors.Is(err, catalog.ErrLessonNotFound):
		return "Lesson not found"

	case errors.Is(err, decision.ErrDecisionPointNotFound):
		return "Decision point not found"

	case errors.Is(err, decision.ErrChoiceNotFound):
		return "Choice not found"

	case errors.Is(err, service.ErrUserNotFound):
		return "User not found"

	case errors.Is(err, service.ErrProgressNotFound):
		return "Progress not found"

	// Bad request errors
	case errors.Is(err, decision.ErrMalformedState):
		return "Scenario state is malformed"

	case errors.Is(err, domain.ErrValidation),
		errors.Is(err, store.ErrInvalidEntity):
		return "Invalid request data"

	// Conflict errors
	case errors.Is(err, store.ErrUserExists):
		return "User already exists"

	// Default case for unknown errors
	default:
		return "An unexpected error occurred"
	}
}

// errorMessage builds the client-facing message for an error. Production
// returns only the sanitized message; development appends the redacted
// underlying detail to ease debugging.
func errorMessage(err error, env string) string {
	msg := GetSafeErrorMessage(err)
	if env == "development" && err != nil && MapErrorToStatusCode(err) >= http.StatusInternalServerError {
		return msg + ": " + redact.Error(err)
	}
	return msg
}
