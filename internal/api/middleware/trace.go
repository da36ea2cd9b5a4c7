// Package middleware provides HTTP middleware for the API server.
package middleware

import (
	"log/slog"
	"net/http"

	"github.com/empowermint/empowermint-api/internal/api/shared"
	"github.com/empowermint/empowermint-api/internal/platform/logger"
)

// TraceMiddleware assigns a trace ID to each request and places a
// request-scoped logger carrying that trace ID into the context, so that
// downstream handlers, services, and stores all log with it attached.
func TraceMiddleware(base *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := shared.SetTraceID(r.Context())
			traceID := shared.GetTraceID(ctx)

			reqLogger := base.With(slog.String("trace_id", traceID))
			ctx = logger.WithLogger(ctx, reqLogger)

			reqLogger.Debug("request started",
				slog.String("method", r.Method),
				slog.String("path", r.URL.Path),
				slog.String("remote_addr", r.RemoteAddr),
			)

			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
