package main

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/empowermint/empowermint-api/internal/api"
	apiMiddleware "github.com/empowermint/empowermint-api/internal/api/middleware"
)

// setupRouter creates the application router with all routes and middleware.
func (app *application) setupRouter() http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(apiMiddleware.TraceMiddleware(app.logger))

	env := app.config.Server.Env

	scenarioHandler := api.NewScenarioHandler(
		app.catalog,
		app.engine,
		app.generator,
		app.progressService,
		app.onboardingService,
		app.logger,
		env,
	)
	lessonHandler := api.NewLessonHandler(app.catalog, app.engine, app.progressService, app.logger, env)
	userHandler := api.NewUserHandler(app.onboardingService, app.progressService, app.logger, env)
	aiHandler := api.NewAIHandler(app.generator, app.logger)

	r.Route("/api", func(r chi.Router) {
		// Scenario catalog and gameplay
		r.Get("/scenarios", scenarioHandler.List)
		r.Get("/scenarios/{id}", scenarioHandler.Get)
		r.Post("/scenarios/{id}/decision", scenarioHandler.MakeDecision)
		r.Post("/scenarios/{id}/complete", scenarioHandler.Complete)

		// Lesson catalog and completion
		r.Get("/lessons", lessonHandler.List)
		r.Get("/lessons/{id}", lessonHandler.Get)
		r.Post("/lessons/{id}/complete", lessonHandler.Complete)

		// Onboarding, profiles, and progress
		r.Post("/onboarding", userHandler.Onboard)
		r.Get("/users/{id}", userHandler.GetProfile)
		r.Put("/users/{id}/accessibility", userHandler.UpdateAccessibility)
		r.Delete("/users/{id}", userHandler.Delete)
		r.Get("/users/{id}/progress", userHandler.GetProgress)

		// Generation-backed helpers
		r.Post("/ai/explain", aiHandler.Explain)
		r.Post("/ai/simulate-wealth", aiHandler.SimulateWealth)
	})

	// Health check endpoint
	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		if _, err := w.Write([]byte("OK")); err != nil {
			app.logger.Error("Failed to write health check response", "error", err)
		}
	})

	return r
}
