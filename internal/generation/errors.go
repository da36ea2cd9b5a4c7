package generation

import "errors"

// Common errors returned by the generation package
var (
	// ErrInvalidConfig is returned when the generator configuration is invalid
	ErrInvalidConfig = errors.New("invalid generator configuration")

	// ErrInvalidResponse is used internally when the LLM response is empty or
	// malformed; callers never see it because operations degrade to fallback text.
	ErrInvalidResponse = errors.New("invalid response from language model")
)
