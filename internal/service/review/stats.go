package review

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/ableukhov/linguadeck-backend/internal/domain"
	"github.com/ableukhov/linguadeck-backend/pkg/ctxutil"
)

// CollectionStats returns the aggregate view of one collection's items.
// Pure aggregation over stored mastery; pushed down to the repository as a
// single query.
func (s *Service) CollectionStats(ctx context.Context, collectionID uuid.UUID) (domain.CollectionStats, error) {
	userID, ok := ctxutil.UserIDFromCtx(ctx)
	if !ok {
		return domain.CollectionStats{}, domain.ErrUnauthorized
	}

	if _, err := s.collections.GetByID(ctx, userID, collectionID); err != nil {
		return domain.CollectionStats{}, fmt.Errorf("get collection: %w", err)
	}

	stats, err := s.items.Stats(ctx, userID, collectionID, s.now())
	if err != nil {
		return domain.CollectionStats{}, fmt.Errorf("collection stats: %w", err)
	}
	return stats, nil
}

// DueItems returns the currently due items of a collection, in stored order.
func (s *Service) DueItems(ctx context.Context, collectionID uuid.UUID) ([]domain.LearnableItem, error) {
	userID, ok := ctxutil.UserIDFromCtx(ctx)
	if !ok {
		return nil, domain.ErrUnauthorized
	}

	items, err := s.items.ListDue(ctx, userID, collectionID, s.now())
	if err != nil {
		return nil, fmt.Errorf("list due items: %w", err)
	}
	return items, nil
}
