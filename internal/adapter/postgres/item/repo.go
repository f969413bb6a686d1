// Package item implements the learnable-item repository using PostgreSQL.
// It owns the items table, including the version-checked mastery update the
// review engine relies on for optimistic concurrency.
package item

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/ableukhov/linguadeck-backend/internal/adapter/postgres"
	"github.com/ableukhov/linguadeck-backend/internal/domain"
)

// psql is the shared builder with PostgreSQL placeholders.
var psql = sq.StatementBuilder.PlaceholderFormat(sq.Dollar)

var itemColumns = []string{
	"id", "user_id", "collection_id", "kind", "front", "back",
	"mastery_level", "last_reviewed_at", "next_review_at",
	"starred", "version", "created_at", "updated_at",
}

// Repo provides learnable-item persistence backed by PostgreSQL.
type Repo struct {
	pool *pgxpool.Pool
}

// New creates a new item repository.
func New(pool *pgxpool.Pool) *Repo {
	return &Repo{pool: pool}
}

// ---------------------------------------------------------------------------
// Reads
// ---------------------------------------------------------------------------

// GetByID returns an item by primary key with user_id filter.
// Returns domain.ErrNotFound if the item does not exist or belongs to
// another user.
func (r *Repo) GetByID(ctx context.Context, userID, itemID uuid.UUID) (domain.LearnableItem, error) {
	query, args, err := psql.Select(itemColumns...).
		From("items").
		Where(sq.Eq{"id": itemID, "user_id": userID}).
		ToSql()
	if err != nil {
		return domain.LearnableItem{}, fmt.Errorf("build query: %w", err)
	}

	q := postgres.QuerierFromCtx(ctx, r.pool)
	item, err := scanItem(q.QueryRow(ctx, query, args...))
	if err != nil {
		return domain.LearnableItem{}, postgres.MapError(err, "item", itemID)
	}
	return item, nil
}

// ListByCollection returns all items of a collection in insertion order.
func (r *Repo) ListByCollection(ctx context.Context, userID, collectionID uuid.UUID) ([]domain.LearnableItem, error) {
	query, args, err := psql.Select(itemColumns...).
		From("items").
		Where(sq.Eq{"user_id": userID, "collection_id": collectionID}).
		OrderBy("created_at", "id").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build query: %w", err)
	}
	return r.list(ctx, query, args, collectionID)
}

// ListDue returns the items of a collection whose next_review_at has passed.
// Items never scheduled (next_review_at IS NULL) are excluded.
func (r *Repo) ListDue(ctx context.Context, userID, collectionID uuid.UUID, now time.Time) ([]domain.LearnableItem, error) {
	query, args, err := psql.Select(itemColumns...).
		From("items").
		Where(sq.Eq{"user_id": userID, "collection_id": collectionID}).
		Where(sq.LtOrEq{"next_review_at": now}).
		OrderBy("next_review_at", "id").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build query: %w", err)
	}
	return r.list(ctx, query, args, collectionID)
}

func (r *Repo) list(ctx context.Context, query string, args []any, collectionID uuid.UUID) ([]domain.LearnableItem, error) {
	q := postgres.QuerierFromCtx(ctx, r.pool)
	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, postgres.MapError(err, "collection", collectionID)
	}
	defer rows.Close()

	var items []domain.LearnableItem
	for rows.Next() {
		item, scanErr := scanItem(rows)
		if scanErr != nil {
			return nil, fmt.Errorf("scan item: %w", scanErr)
		}
		items = append(items, item)
	}
	if err := rows.Err(); err != nil {
		return nil, postgres.MapError(err, "collection", collectionID)
	}
	return items, nil
}

// statsSQL aggregates a whole collection in one round trip. Category
// boundaries here mirror domain.CategoryOf.
const statsSQL = `
SELECT
    count(*)                                              AS total,
    count(*) FILTER (WHERE mastery_level >= 80)           AS mastered,
    count(*) FILTER (WHERE mastery_level >= 20
                       AND mastery_level <  80)           AS learning,
    count(*) FILTER (WHERE mastery_level <  20)           AS new,
    coalesce(avg(mastery_level), 0)                       AS avg_mastery,
    count(*) FILTER (WHERE next_review_at IS NOT NULL
                       AND next_review_at <= $3)          AS due_count
FROM items
WHERE user_id = $1 AND collection_id = $2`

// Stats returns the aggregate mastery view of one collection.
func (r *Repo) Stats(ctx context.Context, userID, collectionID uuid.UUID, now time.Time) (domain.CollectionStats, error) {
	q := postgres.QuerierFromCtx(ctx, r.pool)

	var stats domain.CollectionStats
	err := q.QueryRow(ctx, statsSQL, userID, collectionID, now).Scan(
		&stats.Total,
		&stats.Mastered,
		&stats.Learning,
		&stats.New,
		&stats.AvgMastery,
		&stats.DueCount,
	)
	if err != nil {
		return domain.CollectionStats{}, postgres.MapError(err, "collection", collectionID)
	}
	return stats, nil
}

// ---------------------------------------------------------------------------
// Writes
// ---------------------------------------------------------------------------

// Create inserts a new item. The item starts at mastery 0 and is due
// immediately: next_review_at is set to created_at.
func (r *Repo) Create(ctx context.Context, item domain.LearnableItem) (domain.LearnableItem, error) {
	query, args, err := psql.Insert("items").
		Columns("id", "user_id", "collection_id", "kind", "front", "back",
			"mastery_level", "next_review_at", "starred", "version").
		Values(item.ID, item.UserID, item.CollectionID, string(item.Kind),
			item.Front, item.Back, item.MasteryLevel, item.NextReviewAt,
			item.Starred, item.Version).
		Suffix("RETURNING " + joinColumns(itemColumns)).
		ToSql()
	if err != nil {
		return domain.LearnableItem{}, fmt.Errorf("build query: %w", err)
	}

	q := postgres.QuerierFromCtx(ctx, r.pool)
	created, err := scanItem(q.QueryRow(ctx, query, args...))
	if err != nil {
		return domain.LearnableItem{}, postgres.MapError(err, "item", item.ID)
	}
	return created, nil
}

// UpdateMastery applies a review outcome under optimistic concurrency.
// The UPDATE matches on the expected version; zero affected rows with an
// existing item means a concurrent writer won, reported as domain.ErrConflict.
func (r *Repo) UpdateMastery(ctx context.Context, userID, itemID uuid.UUID, params domain.MasteryUpdateParams, expectedVersion int) (domain.LearnableItem, error) {
	query, args, err := psql.Update("items").
		Set("mastery_level", params.MasteryLevel).
		Set("last_reviewed_at", params.LastReviewedAt).
		Set("next_review_at", params.NextReviewAt).
		Set("version", sq.Expr("version + 1")).
		Set("updated_at", sq.Expr("now()")).
		Where(sq.Eq{"id": itemID, "user_id": userID, "version": expectedVersion}).
		Suffix("RETURNING " + joinColumns(itemColumns)).
		ToSql()
	if err != nil {
		return domain.LearnableItem{}, fmt.Errorf("build query: %w", err)
	}

	q := postgres.QuerierFromCtx(ctx, r.pool)
	updated, err := scanItem(q.QueryRow(ctx, query, args...))
	if err == nil {
		return updated, nil
	}
	if !errors.Is(err, pgx.ErrNoRows) {
		return domain.LearnableItem{}, postgres.MapError(err, "item", itemID)
	}

	// No row matched: either the item is gone or the version moved.
	if _, getErr := r.GetByID(ctx, userID, itemID); getErr != nil {
		return domain.LearnableItem{}, getErr
	}
	return domain.LearnableItem{}, fmt.Errorf("item %s: version %d: %w", itemID, expectedVersion, domain.ErrConflict)
}

// ToggleStar flips the starred flag and returns the new value.
func (r *Repo) ToggleStar(ctx context.Context, userID, itemID uuid.UUID) (bool, error) {
	query, args, err := psql.Update("items").
		Set("starred", sq.Expr("NOT starred")).
		Set("updated_at", sq.Expr("now()")).
		Where(sq.Eq{"id": itemID, "user_id": userID}).
		Suffix("RETURNING starred").
		ToSql()
	if err != nil {
		return false, fmt.Errorf("build query: %w", err)
	}

	q := postgres.QuerierFromCtx(ctx, r.pool)
	var starred bool
	if err := q.QueryRow(ctx, query, args...).Scan(&starred); err != nil {
		return false, postgres.MapError(err, "item", itemID)
	}
	return starred, nil
}

// Delete removes an item. Returns domain.ErrNotFound when nothing matched.
func (r *Repo) Delete(ctx context.Context, userID, itemID uuid.UUID) error {
	query, args, err := psql.Delete("items").
		Where(sq.Eq{"id": itemID, "user_id": userID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("build query: %w", err)
	}

	q := postgres.QuerierFromCtx(ctx, r.pool)
	tag, err := q.Exec(ctx, query, args...)
	if err != nil {
		return postgres.MapError(err, "item", itemID)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("item %s: %w", itemID, domain.ErrNotFound)
	}
	return nil
}

// ---------------------------------------------------------------------------
// Scanning
// ---------------------------------------------------------------------------

func scanItem(row pgx.Row) (domain.LearnableItem, error) {
	var (
		item domain.LearnableItem
		kind string
	)
	err := row.Scan(
		&item.ID,
		&item.UserID,
		&item.CollectionID,
		&kind,
		&item.Front,
		&item.Back,
		&item.MasteryLevel,
		&item.LastReviewedAt,
		&item.NextReviewAt,
		&item.Starred,
		&item.Version,
		&item.CreatedAt,
		&item.UpdatedAt,
	)
	if err != nil {
		return domain.LearnableItem{}, err
	}
	item.Kind = domain.ItemKind(kind)
	return item, nil
}

func joinColumns(cols []string) string {
	return strings.Join(cols, ", ")
}
