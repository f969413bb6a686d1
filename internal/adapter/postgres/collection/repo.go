// Package collection implements the collection repository using PostgreSQL.
// Collections are soft-deleted: deleted_at marks them invisible to all
// reads, and the retention tool hard-deletes them later with their items.
package collection

import (
	"context"
	"fmt"
	"strings"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/ableukhov/linguadeck-backend/internal/adapter/postgres"
	"github.com/ableukhov/linguadeck-backend/internal/domain"
)

var psql = sq.StatementBuilder.PlaceholderFormat(sq.Dollar)

var collectionColumns = []string{
	"id", "user_id", "name", "deleted_at", "created_at", "updated_at",
}

// Repo provides collection persistence backed by PostgreSQL.
type Repo struct {
	pool *pgxpool.Pool
}

// New creates a new collection repository.
func New(pool *pgxpool.Pool) *Repo {
	return &Repo{pool: pool}
}

// GetByID returns a live collection by primary key with user_id filter.
// Soft-deleted collections are reported as domain.ErrNotFound.
func (r *Repo) GetByID(ctx context.Context, userID, collectionID uuid.UUID) (domain.Collection, error) {
	query, args, err := psql.Select(collectionColumns...).
		From("collections").
		Where(sq.Eq{"id": collectionID, "user_id": userID, "deleted_at": nil}).
		ToSql()
	if err != nil {
		return domain.Collection{}, fmt.Errorf("build query: %w", err)
	}

	q := postgres.QuerierFromCtx(ctx, r.pool)
	var c domain.Collection
	err = q.QueryRow(ctx, query, args...).Scan(
		&c.ID, &c.UserID, &c.Name, &c.DeletedAt, &c.CreatedAt, &c.UpdatedAt,
	)
	if err != nil {
		return domain.Collection{}, postgres.MapError(err, "collection", collectionID)
	}
	return c, nil
}

// List returns all live collections of a user, newest first.
func (r *Repo) List(ctx context.Context, userID uuid.UUID) ([]domain.Collection, error) {
	query, args, err := psql.Select(collectionColumns...).
		From("collections").
		Where(sq.Eq{"user_id": userID, "deleted_at": nil}).
		OrderBy("created_at DESC", "id").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build query: %w", err)
	}

	q := postgres.QuerierFromCtx(ctx, r.pool)
	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, postgres.MapError(err, "user", userID)
	}
	defer rows.Close()

	var out []domain.Collection
	for rows.Next() {
		var c domain.Collection
		if err := rows.Scan(&c.ID, &c.UserID, &c.Name, &c.DeletedAt, &c.CreatedAt, &c.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan collection: %w", err)
		}
		out = append(out, c)
	}
	if err := rows.Err(); err != nil {
		return nil, postgres.MapError(err, "user", userID)
	}
	return out, nil
}

// Create inserts a new collection.
func (r *Repo) Create(ctx context.Context, c domain.Collection) (domain.Collection, error) {
	query, args, err := psql.Insert("collections").
		Columns("id", "user_id", "name").
		Values(c.ID, c.UserID, c.Name).
		Suffix("RETURNING " + strings.Join(collectionColumns, ", ")).
		ToSql()
	if err != nil {
		return domain.Collection{}, fmt.Errorf("build query: %w", err)
	}

	q := postgres.QuerierFromCtx(ctx, r.pool)
	var created domain.Collection
	err = q.QueryRow(ctx, query, args...).Scan(
		&created.ID, &created.UserID, &created.Name,
		&created.DeletedAt, &created.CreatedAt, &created.UpdatedAt,
	)
	if err != nil {
		return domain.Collection{}, postgres.MapError(err, "collection", c.ID)
	}
	return created, nil
}

// SoftDelete marks a collection deleted. Idempotent on already-deleted
// collections only in the sense that they look not found.
func (r *Repo) SoftDelete(ctx context.Context, userID, collectionID uuid.UUID) error {
	query, args, err := psql.Update("collections").
		Set("deleted_at", sq.Expr("now()")).
		Set("updated_at", sq.Expr("now()")).
		Where(sq.Eq{"id": collectionID, "user_id": userID, "deleted_at": nil}).
		ToSql()
	if err != nil {
		return fmt.Errorf("build query: %w", err)
	}

	q := postgres.QuerierFromCtx(ctx, r.pool)
	tag, err := q.Exec(ctx, query, args...)
	if err != nil {
		return postgres.MapError(err, "collection", collectionID)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("collection %s: %w", collectionID, domain.ErrNotFound)
	}
	return nil
}

// PurgeDeleted hard-deletes collections soft-deleted before the cutoff.
// Items go with them via ON DELETE CASCADE. Returns the number of
// collections removed. Used by the retention tool.
func (r *Repo) PurgeDeleted(ctx context.Context, cutoff time.Time) (int64, error) {
	query, args, err := psql.Delete("collections").
		Where(sq.NotEq{"deleted_at": nil}).
		Where(sq.Lt{"deleted_at": cutoff}).
		ToSql()
	if err != nil {
		return 0, fmt.Errorf("build query: %w", err)
	}

	q := postgres.QuerierFromCtx(ctx, r.pool)
	tag, err := q.Exec(ctx, query, args...)
	if err != nil {
		return 0, fmt.Errorf("purge deleted collections: %w", err)
	}
	return tag.RowsAffected(), nil
}
