// Package app wires configuration, storage, services, and transport into a
// running HTTP server.
package app

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-co-op/gocron"
	_ "github.com/jackc/pgx/v5/stdlib" // pgx driver for database/sql (goose)
	"github.com/pressly/goose/v3"

	"github.com/ableukhov/linguadeck-backend/internal/adapter/postgres"
	"github.com/ableukhov/linguadeck-backend/internal/adapter/postgres/collection"
	"github.com/ableukhov/linguadeck-backend/internal/adapter/postgres/item"
	"github.com/ableukhov/linguadeck-backend/internal/auth"
	"github.com/ableukhov/linguadeck-backend/internal/config"
	"github.com/ableukhov/linguadeck-backend/internal/domain"
	"github.com/ableukhov/linguadeck-backend/internal/service/assessment"
	"github.com/ableukhov/linguadeck-backend/internal/service/library"
	"github.com/ableukhov/linguadeck-backend/internal/service/review"
	"github.com/ableukhov/linguadeck-backend/internal/transport/middleware"
	"github.com/ableukhov/linguadeck-backend/internal/transport/rest"
	"github.com/ableukhov/linguadeck-backend/migrations"
)

// Run is the application entry point. It loads configuration, connects to
// the database, applies migrations, assembles the services, and serves HTTP
// until ctx is cancelled.
func Run(ctx context.Context) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	logger := NewLogger(cfg.Log)

	logger.Info("starting application",
		slog.String("version", BuildVersion()),
		slog.String("log_level", cfg.Log.Level),
	)

	pool, err := postgres.NewPool(ctx, cfg.Database)
	if err != nil {
		return fmt.Errorf("connect to database: %w", err)
	}
	defer pool.Close()

	if err := runMigrations(ctx, cfg.Database.DSN); err != nil {
		return fmt.Errorf("apply migrations: %w", err)
	}

	// Storage.
	itemRepo := item.New(pool)
	collectionRepo := collection.New(pool)
	txManager := postgres.NewTxManager(pool)

	// Services.
	reviewCfg := review.Config{
		Scheduler:        schedulerConfig(cfg.Review),
		ApplyMaxAttempts: cfg.Review.ApplyMaxAttempts,
		SessionTTL:       cfg.Review.SessionTTL,
	}
	reviewSvc := review.NewService(logger, itemRepo, collectionRepo, reviewCfg)
	librarySvc := library.NewService(logger, itemRepo, collectionRepo, txManager)
	assessmentSvc := assessment.NewService(logger)

	jwtManager := auth.NewJWTManager(cfg.Auth.JWTSecret, cfg.Auth.JWTIssuer, cfg.Auth.AccessTokenTTL)

	// Idle sessions are pruned on a fixed schedule so abandoned decks do
	// not accumulate in memory.
	scheduler := gocron.NewScheduler(time.UTC)
	if _, err := scheduler.Every(cfg.Review.PruneInterval).Do(func() {
		reviewSvc.PruneIdleSessions()
	}); err != nil {
		return fmt.Errorf("schedule session prune: %w", err)
	}
	scheduler.StartAsync()
	defer scheduler.Stop()

	// Transport.
	sessionHandler := rest.NewSessionHandler(reviewSvc, logger)
	collectionHandler := rest.NewCollectionHandler(librarySvc, reviewSvc, logger)
	itemHandler := rest.NewItemHandler(librarySvc, logger)
	assessmentHandler := rest.NewAssessmentHandler(assessmentSvc, logger)
	healthHandler := rest.NewHealthHandler(pool, BuildVersion())

	rateLimiter := middleware.NewRateLimiter(time.Minute)
	defer rateLimiter.Stop()

	api := middleware.Chain(
		middleware.RequestID,
		middleware.Recovery(logger),
		middleware.Logger(logger),
		middleware.CORS(cfg.CORS),
		middleware.Auth(jwtManager),
		rateLimiter.Limit(300),
	)

	mux := http.NewServeMux()

	mux.HandleFunc("GET /health/live", healthHandler.Live)
	mux.HandleFunc("GET /health/ready", healthHandler.Ready)
	mux.HandleFunc("GET /health", healthHandler.Health)

	mux.Handle("GET /v1/sessions/start", api(http.HandlerFunc(sessionHandler.Start)))
	mux.Handle("POST /v1/sessions/{id}/outcomes", api(http.HandlerFunc(sessionHandler.RecordOutcome)))
	mux.Handle("GET /v1/sessions/{id}/summary", api(http.HandlerFunc(sessionHandler.Summary)))
	mux.Handle("POST /v1/sessions/{id}/restart", api(http.HandlerFunc(sessionHandler.Restart)))
	mux.Handle("DELETE /v1/sessions/{id}", api(http.HandlerFunc(sessionHandler.Abandon)))

	mux.Handle("POST /v1/collections", api(http.HandlerFunc(collectionHandler.Create)))
	mux.Handle("GET /v1/collections", api(http.HandlerFunc(collectionHandler.List)))
	mux.Handle("DELETE /v1/collections/{id}", api(http.HandlerFunc(collectionHandler.Delete)))
	mux.Handle("GET /v1/collections/{id}/stats", api(http.HandlerFunc(collectionHandler.Stats)))
	mux.Handle("GET /v1/collections/{id}/due", api(http.HandlerFunc(collectionHandler.Due)))
	mux.Handle("POST /v1/collections/{id}/items", api(http.HandlerFunc(itemHandler.Create)))

	mux.Handle("POST /v1/items/{id}/star", api(http.HandlerFunc(itemHandler.ToggleStar)))
	mux.Handle("DELETE /v1/items/{id}", api(http.HandlerFunc(itemHandler.Delete)))

	mux.Handle("POST /v1/assessment/band", api(http.HandlerFunc(assessmentHandler.Band)))

	srv := &http.Server{
		Addr:         fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port),
		Handler:      mux,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("http server listening", slog.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return fmt.Errorf("http server: %w", err)
	case <-ctx.Done():
	}

	logger.Info("shutting down", slog.Duration("timeout", cfg.Server.ShutdownTimeout))

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}

	return nil
}

// runMigrations applies the embedded goose migrations. goose needs a
// *sql.DB, so a short-lived database/sql connection is used alongside the
// pgx pool.
func runMigrations(ctx context.Context, dsn string) error {
	db, err := sql.Open("pgx", dsn)
	if err != nil {
		return fmt.Errorf("sql.Open: %w", err)
	}
	defer db.Close()

	provider, err := goose.NewProvider(goose.DialectPostgres, db, migrations.FS)
	if err != nil {
		return fmt.Errorf("goose new provider: %w", err)
	}

	if _, err := provider.Up(ctx); err != nil {
		return fmt.Errorf("goose up: %w", err)
	}

	return nil
}

// schedulerConfig maps the validated config intervals onto mastery
// categories, low to high.
func schedulerConfig(cfg config.ReviewConfig) review.SchedulerConfig {
	intervals := cfg.CategoryIntervals
	if len(intervals) != 5 {
		return review.DefaultSchedulerConfig()
	}
	sc := review.DefaultSchedulerConfig()
	sc.RetryInterval = cfg.RetryInterval
	for i, category := range domain.MasteryCategoriesAscending() {
		sc.CategoryIntervals[category] = intervals[i]
	}
	return sc
}
