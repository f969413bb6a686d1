package testhelper

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/ableukhov/linguadeck-backend/internal/domain"
)

// uniqueSuffix returns a short unique string for generating non-conflicting test data.
func uniqueSuffix() string {
	return uuid.New().String()[:8]
}

// SeedUser creates a user with a unique email. Returns its ID.
func SeedUser(t *testing.T, pool *pgxpool.Pool) uuid.UUID {
	t.Helper()
	ctx := context.Background()

	suffix := uniqueSuffix()
	id := uuid.New()
	now := time.Now().UTC().Truncate(time.Microsecond)

	_, err := pool.Exec(ctx,
		`INSERT INTO users (id, email, name, created_at, updated_at)
		 VALUES ($1, $2, $3, $4, $4)`,
		id, "testuser-"+suffix+"@example.com", "Test User "+suffix, now,
	)
	if err != nil {
		t.Fatalf("testhelper: SeedUser insert: %v", err)
	}
	return id
}

// SeedCollection creates a live collection for the user.
func SeedCollection(t *testing.T, pool *pgxpool.Pool, userID uuid.UUID) domain.Collection {
	t.Helper()
	ctx := context.Background()

	suffix := uniqueSuffix()
	now := time.Now().UTC().Truncate(time.Microsecond)
	c := domain.Collection{
		ID:        uuid.New(),
		UserID:    userID,
		Name:      "Collection " + suffix,
		CreatedAt: now,
		UpdatedAt: now,
	}

	_, err := pool.Exec(ctx,
		`INSERT INTO collections (id, user_id, name, created_at, updated_at)
		 VALUES ($1, $2, $3, $4, $5)`,
		c.ID, c.UserID, c.Name, c.CreatedAt, c.UpdatedAt,
	)
	if err != nil {
		t.Fatalf("testhelper: SeedCollection insert: %v", err)
	}
	return c
}

// ItemOption mutates a seeded item before insertion.
type ItemOption func(*domain.LearnableItem)

// WithMastery sets the seeded item's mastery level.
func WithMastery(level int) ItemOption {
	return func(i *domain.LearnableItem) { i.MasteryLevel = level }
}

// WithNextReview sets the seeded item's next_review_at.
func WithNextReview(at time.Time) ItemOption {
	return func(i *domain.LearnableItem) { i.NextReviewAt = &at }
}

// WithKind sets the seeded item's kind.
func WithKind(kind domain.ItemKind) ItemOption {
	return func(i *domain.LearnableItem) { i.Kind = kind }
}

// WithCreatedAt sets the seeded item's created_at, which fixes its position
// in the collection's deck order.
func WithCreatedAt(at time.Time) ItemOption {
	return func(i *domain.LearnableItem) {
		i.CreatedAt = at
		i.UpdatedAt = at
	}
}

// SeedItem creates a learnable item in the collection. Defaults: vocabulary
// entry, mastery 0, never scheduled, version 1.
func SeedItem(t *testing.T, pool *pgxpool.Pool, userID, collectionID uuid.UUID, opts ...ItemOption) domain.LearnableItem {
	t.Helper()
	ctx := context.Background()

	suffix := uniqueSuffix()
	now := time.Now().UTC().Truncate(time.Microsecond)
	item := domain.LearnableItem{
		ID:           uuid.New(),
		UserID:       userID,
		CollectionID: collectionID,
		Kind:         domain.ItemKindVocabEntry,
		Front:        "front-" + suffix,
		Back:         "back-" + suffix,
		MasteryLevel: 0,
		Version:      1,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	for _, opt := range opts {
		opt(&item)
	}

	_, err := pool.Exec(ctx,
		`INSERT INTO items (id, user_id, collection_id, kind, front, back,
		                    mastery_level, last_reviewed_at, next_review_at,
		                    starred, version, created_at, updated_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)`,
		item.ID, item.UserID, item.CollectionID, string(item.Kind),
		item.Front, item.Back, item.MasteryLevel,
		item.LastReviewedAt, item.NextReviewAt,
		item.Starred, item.Version, item.CreatedAt, item.UpdatedAt,
	)
	if err != nil {
		t.Fatalf("testhelper: SeedItem insert: %v", err)
	}
	return item
}
