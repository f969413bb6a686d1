// Command cleanup physically removes soft-deleted collections older than the
// configured retention period, cascading to their items. It is intended to be
// invoked by an external cron job, not as an in-process goroutine.
//
// Exit codes: 0 = success, 1 = error.
package main

import (
	"context"
	"log"
	"log/slog"
	"os"
	"time"

	"github.com/ableukhov/linguadeck-backend/internal/adapter/postgres"
	"github.com/ableukhov/linguadeck-backend/internal/adapter/postgres/collection"
	"github.com/ableukhov/linguadeck-backend/internal/app"
	"github.com/ableukhov/linguadeck-backend/internal/config"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	logger := app.NewLogger(cfg.Log)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
	defer cancel()

	pool, err := postgres.NewPool(ctx, cfg.Database)
	if err != nil {
		logger.Error("connect to database", slog.String("error", err.Error()))
		os.Exit(1)
	}
	defer pool.Close()

	collectionRepo := collection.New(pool)

	cutoff := time.Now().AddDate(0, 0, -cfg.Retention.HardDeleteRetentionDays)

	purged, err := collectionRepo.PurgeDeleted(ctx, cutoff)
	if err != nil {
		logger.Error("purge failed",
			slog.String("error", err.Error()),
			slog.Time("cutoff", cutoff),
		)
		os.Exit(1)
	}

	logger.Info("purge completed",
		slog.Int64("purged", purged),
		slog.Time("cutoff", cutoff),
	)
}
