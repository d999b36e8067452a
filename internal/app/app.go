// Package app provides application-level wiring for the catalog service.
package app

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"datamesh/internal/api"
	"datamesh/internal/config"
	"datamesh/internal/middleware"
	"datamesh/internal/repository"
	"datamesh/internal/service/catalog"
)

// Deps holds the external dependencies that main() must provide.
type Deps struct {
	Cfg    *config.Config
	Logger *slog.Logger
}

// App holds the fully-wired application.
type App struct {
	Catalog   *catalog.Service
	Scheduler *catalog.SnapshotScheduler // nil when no schedule configured
	router    http.Handler
	logger    *slog.Logger
}

// New wires the file store, catalog engine, optional seed data, optional
// snapshot scheduler, and the HTTP router from the provided deps.
func New(ctx context.Context, deps Deps) (*App, error) {
	cfg := deps.Cfg

	store, err := repository.NewFileStore(cfg.DataDir, deps.Logger)
	if err != nil {
		return nil, fmt.Errorf("init file store: %w", err)
	}

	svc := catalog.New(store, deps.Logger, cfg.MaxProducts, cfg.MaxLineageEntries)

	if cfg.SeedFile != "" {
		if err := seedCatalog(ctx, svc, cfg.SeedFile); err != nil {
			deps.Logger.Warn("seed catalog failed", "error", err)
		}
	}

	var scheduler *catalog.SnapshotScheduler
	if cfg.SnapshotSchedule != "" {
		scheduler, err = catalog.NewSnapshotScheduler(svc, cfg.SnapshotSchedule, deps.Logger)
		if err != nil {
			return nil, fmt.Errorf("init snapshot scheduler: %w", err)
		}
		scheduler.Start()
	}

	a := &App{
		Catalog:   svc,
		Scheduler: scheduler,
		logger:    deps.Logger.With("component", "app"),
	}
	a.router = buildRouter(cfg, svc, deps.Logger)
	return a, nil
}

// Router returns the fully-assembled HTTP handler.
func (a *App) Router() http.Handler {
	return a.router
}

// Close stops the scheduler and flushes the catalog to disk.
func (a *App) Close(ctx context.Context) error {
	if a.Scheduler != nil {
		a.Scheduler.Stop()
	}
	if err := a.Catalog.Close(ctx); err != nil {
		return fmt.Errorf("close catalog: %w", err)
	}
	a.logger.Info("application shut down cleanly")
	return nil
}

func buildRouter(cfg *config.Config, svc *catalog.Service, logger *slog.Logger) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(chimiddleware.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: cfg.CORSAllowedOrigins,
		AllowedMethods: []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Authorization", "Content-Type", "X-Request-ID"},
		MaxAge:         300,
	}))
	r.Use(middleware.RateLimiter(middleware.RateLimitConfig{
		RequestsPerSecond: cfg.RateLimitRPS,
		Burst:             cfg.RateLimitBurst,
	}))

	auth := middleware.Auth(cfg.APIKey, []byte(cfg.JWTSecret))
	r.Mount("/", api.Routes(api.NewHandler(svc, logger), auth))
	return r
}
