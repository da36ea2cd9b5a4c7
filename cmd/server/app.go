package main

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"

	"github.com/empowermint/empowermint-api/internal/catalog"
	"github.com/empowermint/empowermint-api/internal/config"
	"github.com/empowermint/empowermint-api/internal/domain/decision"
	"github.com/empowermint/empowermint-api/internal/generation"
	"github.com/empowermint/empowermint-api/internal/platform/gemini"
	"github.com/empowermint/empowermint-api/internal/platform/logger"
	"github.com/empowermint/empowermint-api/internal/platform/postgres"
	"github.com/empowermint/empowermint-api/internal/service"
)

// application holds the long-lived dependencies of the server process.
type application struct {
	config *config.Config
	logger *slog.Logger
	db     *sql.DB

	catalog           *catalog.Store
	engine            decision.Service
	generator         generation.Generator
	progressService   service.ProgressService
	onboardingService service.OnboardingService
}

// newApplication loads configuration and builds the full dependency graph:
// logger, database (with migrations), catalog, decision engine, generation
// adapter, and the application services.
func newApplication(ctx context.Context) (*application, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}

	appLogger, err := logger.Setup(cfg.Server)
	if err != nil {
		return nil, fmt.Errorf("failed to set up logger: %w", err)
	}

	appLogger.Info("Server configuration loaded",
		slog.Int("port", cfg.Server.Port),
		slog.String("log_level", cfg.Server.LogLevel),
		slog.String("env", cfg.Server.Env))

	db, err := setupDatabase(cfg, appLogger)
	if err != nil {
		return nil, err
	}

	catalogStore, err := catalog.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load content catalog: %w", err)
	}
	appLogger.Info("Content catalog loaded")

	generator, err := gemini.NewGenerator(ctx, appLogger, cfg.LLM)
	if err != nil {
		return nil, fmt.Errorf("failed to create generation adapter: %w", err)
	}

	progressStore := postgres.NewPostgresProgressStore(db, appLogger)
	userStore := postgres.NewPostgresUserProfileStore(db, appLogger)

	progressService, err := service.NewProgressService(progressStore, appLogger)
	if err != nil {
		return nil, fmt.Errorf("failed to create progress service: %w", err)
	}

	onboardingService, err := service.NewOnboardingService(db, userStore, progressStore, catalogStore, appLogger)
	if err != nil {
		return nil, fmt.Errorf("failed to create onboarding service: %w", err)
	}

	return &application{
		config:            cfg,
		logger:            appLogger,
		db:                db,
		catalog:           catalogStore,
		engine:            decision.NewDefaultService(),
		generator:         generator,
		progressService:   progressService,
		onboardingService: onboardingService,
	}, nil
}

// cleanup releases resources held by the application.
func (app *application) cleanup() {
	if app.db != nil {
		if err := app.db.Close(); err != nil {
			app.logger.Error("Failed to close database connection", slog.String("error", err.Error()))
		}
	}
}
