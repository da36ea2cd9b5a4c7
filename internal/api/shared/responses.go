// Package shared provides common HTTP helpers used by all API handlers,
// including JSON response utilities, request decoding and validation, and
// request-scoped context values such as trace IDs.
package shared

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/empowermint/empowermint-api/internal/redact"
)

// ErrorResponse defines the standard error response structure for the API.
type ErrorResponse struct {
	Error   string `json:"error"`
	Code    int    `json:"-"` // Used internally, not included in JSON response
	TraceID string `json:"trace_id,omitempty"`
}

// ResponseOption is a function that modifies response behavior.
type ResponseOption func(*responseOptions)

// responseOptions contains configurable options for response handling.
type responseOptions struct {
	elevatedLogLevel bool
}

// WithElevatedLogLevel forces the error to be logged at ERROR level
// regardless of its status code. Use for client errors that indicate
// suspicious activity or repeated abuse.
func WithElevatedLogLevel() ResponseOption {
	return func(opts *responseOptions) {
		opts.elevatedLogLevel = true
	}
}

// RespondWithJSON writes a JSON response with the given status code and payload.
func RespondWithJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if payload != nil {
		if err := json.NewEncoder(w).Encode(payload); err != nil {
			slog.Error("failed to encode JSON response", "error", err)
		}
	}
}

// RespondWithError writes a standardized JSON error response. The message
// should already be safe for external consumption; internal details belong
// in RespondWithErrorAndLog.
func RespondWithError(w http.ResponseWriter, r *http.Request, status int, message string) {
	resp := ErrorResponse{
		Error:   message,
		Code:    status,
		TraceID: GetTraceID(r.Context()),
	}
	RespondWithJSON(w, status, resp)
}

// RespondWithErrorAndLog logs the internal error with full (redacted) detail
// and writes a sanitized error response to the client. Log level follows the
// status code: 5xx at ERROR, 429 at WARN, other 4xx at DEBUG.
func RespondWithErrorAndLog(w http.ResponseWriter, r *http.Request, logger *slog.Logger, internalErr error, publicMessage string, status int, options ...ResponseOption) {
	opts := &responseOptions{}
	for _, opt := range options {
		opt(opts)
	}

	if logger == nil {
		logger = slog.Default()
	}

	attrs := []any{
		slog.Int("status", status),
		slog.String("path", r.URL.Path),
		slog.String("method", r.Method),
		slog.String("trace_id", GetTraceID(r.Context())),
	}
	if internalErr != nil {
		attrs = append(attrs, slog.String("error", redact.Error(internalErr)))
	}

	switch {
	case opts.elevatedLogLevel || status >= http.StatusInternalServerError:
		logger.Error("request failed", attrs...)
	case status == http.StatusTooManyRequests:
		logger.Warn("request rate limited", attrs...)
	default:
		logger.Debug("request rejected", attrs...)
	}

	RespondWithError(w, r, status, publicMessage)
}
