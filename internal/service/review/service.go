package review

import (
	"context"
	"log/slog"
	"math/rand"
	"time"

	"github.com/google/uuid"

	"github.com/ableukhov/linguadeck-backend/internal/domain"
)

// ---------------------------------------------------------------------------
// Consumer-defined interfaces (private)
// ---------------------------------------------------------------------------

type itemRepo interface {
	GetByID(ctx context.Context, userID, itemID uuid.UUID) (domain.LearnableItem, error)
	ListByCollection(ctx context.Context, userID, collectionID uuid.UUID) ([]domain.LearnableItem, error)
	ListDue(ctx context.Context, userID, collectionID uuid.UUID, now time.Time) ([]domain.LearnableItem, error)
	UpdateMastery(ctx context.Context, userID, itemID uuid.UUID, params domain.MasteryUpdateParams, expectedVersion int) (domain.LearnableItem, error)
	Stats(ctx context.Context, userID, collectionID uuid.UUID, now time.Time) (domain.CollectionStats, error)
}

type collectionRepo interface {
	GetByID(ctx context.Context, userID, collectionID uuid.UUID) (domain.Collection, error)
}

// ---------------------------------------------------------------------------
// Service
// ---------------------------------------------------------------------------

// Config holds the review engine's tunable parameters. Mastery deltas are
// fixed by the outcome policy and deliberately not configurable.
type Config struct {
	Scheduler        SchedulerConfig
	ApplyMaxAttempts int
	SessionTTL       time.Duration
}

// DefaultConfig returns production defaults.
func DefaultConfig() Config {
	return Config{
		Scheduler:        DefaultSchedulerConfig(),
		ApplyMaxAttempts: 3,
		SessionTTL:       2 * time.Hour,
	}
}

// Service implements the review engine: session lifecycle, outcome
// application, and collection aggregation.
type Service struct {
	items       itemRepo
	collections collectionRepo
	store       *sessionStore
	log         *slog.Logger
	cfg         Config

	// now and rnd are injectable for deterministic tests.
	now func() time.Time
	rnd *rand.Rand
}

// NewService creates the review service.
func NewService(log *slog.Logger, items itemRepo, collections collectionRepo, cfg Config) *Service {
	if cfg.ApplyMaxAttempts <= 0 {
		cfg.ApplyMaxAttempts = 3
	}
	if cfg.SessionTTL <= 0 {
		cfg.SessionTTL = 2 * time.Hour
	}
	if cfg.Scheduler.RetryInterval <= 0 {
		cfg.Scheduler = DefaultSchedulerConfig()
	}

	return &Service{
		items:       items,
		collections: collections,
		store:       newSessionStore(),
		log:         log.With("service", "review"),
		cfg:         cfg,
		now:         time.Now,
	}
}

// WithClock overrides the service clock. Test hook.
func (s *Service) WithClock(now func() time.Time) *Service {
	s.now = now
	return s
}

// WithRand overrides the shuffle source. Test hook; also the answer to the
// unseeded-shuffle question — callers needing reproducibility inject a seed.
func (s *Service) WithRand(rnd *rand.Rand) *Service {
	s.rnd = rnd
	return s
}
