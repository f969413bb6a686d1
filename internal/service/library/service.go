// Package library manages the learner's content: collections and the
// learnable items inside them. Mastery state is owned by the review
// engine; this service only creates, stars, and removes content.
package library

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/ableukhov/linguadeck-backend/internal/domain"
	"github.com/ableukhov/linguadeck-backend/pkg/ctxutil"
)

type itemRepo interface {
	Create(ctx context.Context, item domain.LearnableItem) (domain.LearnableItem, error)
	ToggleStar(ctx context.Context, userID, itemID uuid.UUID) (bool, error)
	Delete(ctx context.Context, userID, itemID uuid.UUID) error
}

type collectionRepo interface {
	GetByID(ctx context.Context, userID, collectionID uuid.UUID) (domain.Collection, error)
	List(ctx context.Context, userID uuid.UUID) ([]domain.Collection, error)
	Create(ctx context.Context, c domain.Collection) (domain.Collection, error)
	SoftDelete(ctx context.Context, userID, collectionID uuid.UUID) error
}

type txManager interface {
	RunInTx(ctx context.Context, fn func(ctx context.Context) error) error
}

// Service implements collection and item management.
type Service struct {
	items       itemRepo
	collections collectionRepo
	tx          txManager
	log         *slog.Logger
	now         func() time.Time
}

// NewService creates the library service.
func NewService(log *slog.Logger, items itemRepo, collections collectionRepo, tx txManager) *Service {
	return &Service{
		items:       items,
		collections: collections,
		tx:          tx,
		log:         log.With("service", "library"),
		now:         time.Now,
	}
}

// CreateCollection creates an empty collection for the calling user.
func (s *Service) CreateCollection(ctx context.Context, input CreateCollectionInput) (domain.Collection, error) {
	userID, ok := ctxutil.UserIDFromCtx(ctx)
	if !ok {
		return domain.Collection{}, domain.ErrUnauthorized
	}
	if err := input.Validate(); err != nil {
		return domain.Collection{}, err
	}

	created, err := s.collections.Create(ctx, domain.Collection{
		ID:     uuid.New(),
		UserID: userID,
		Name:   input.Name,
	})
	if err != nil {
		return domain.Collection{}, fmt.Errorf("create collection: %w", err)
	}

	s.log.InfoContext(ctx, "collection created",
		slog.String("user_id", userID.String()),
		slog.String("collection_id", created.ID.String()),
	)
	return created, nil
}

// ListCollections returns the calling user's live collections.
func (s *Service) ListCollections(ctx context.Context) ([]domain.Collection, error) {
	userID, ok := ctxutil.UserIDFromCtx(ctx)
	if !ok {
		return nil, domain.ErrUnauthorized
	}
	return s.collections.List(ctx, userID)
}

// DeleteCollection soft-deletes a collection. Its items become unreachable
// immediately and are hard-deleted later by the retention tool.
func (s *Service) DeleteCollection(ctx context.Context, collectionID uuid.UUID) error {
	userID, ok := ctxutil.UserIDFromCtx(ctx)
	if !ok {
		return domain.ErrUnauthorized
	}
	if err := s.collections.SoftDelete(ctx, userID, collectionID); err != nil {
		return fmt.Errorf("delete collection: %w", err)
	}

	s.log.InfoContext(ctx, "collection deleted",
		slog.String("user_id", userID.String()),
		slog.String("collection_id", collectionID.String()),
	)
	return nil
}

// CreateItem adds an item to a collection. New items start at mastery 0 and
// are due immediately. The collection existence check and the insert run in
// one transaction so a concurrent collection delete cannot orphan the item.
func (s *Service) CreateItem(ctx context.Context, input CreateItemInput) (domain.LearnableItem, error) {
	userID, ok := ctxutil.UserIDFromCtx(ctx)
	if !ok {
		return domain.LearnableItem{}, domain.ErrUnauthorized
	}
	if err := input.Validate(); err != nil {
		return domain.LearnableItem{}, err
	}

	now := s.now().UTC()
	item := domain.LearnableItem{
		ID:           uuid.New(),
		UserID:       userID,
		CollectionID: input.CollectionID,
		Kind:         input.Kind,
		Front:        input.Front,
		Back:         input.Back,
		MasteryLevel: domain.MasteryMin,
		NextReviewAt: &now,
		Version:      1,
	}

	var created domain.LearnableItem
	err := s.tx.RunInTx(ctx, func(ctx context.Context) error {
		if _, err := s.collections.GetByID(ctx, userID, input.CollectionID); err != nil {
			return fmt.Errorf("get collection: %w", err)
		}
		var err error
		created, err = s.items.Create(ctx, item)
		return err
	})
	if err != nil {
		return domain.LearnableItem{}, err
	}

	s.log.InfoContext(ctx, "item created",
		slog.String("user_id", userID.String()),
		slog.String("item_id", created.ID.String()),
		slog.String("collection_id", input.CollectionID.String()),
		slog.String("kind", string(input.Kind)),
	)
	return created, nil
}

// ToggleStar flips an item's starred flag and returns the new value.
func (s *Service) ToggleStar(ctx context.Context, itemID uuid.UUID) (bool, error) {
	userID, ok := ctxutil.UserIDFromCtx(ctx)
	if !ok {
		return false, domain.ErrUnauthorized
	}
	starred, err := s.items.ToggleStar(ctx, userID, itemID)
	if err != nil {
		return false, fmt.Errorf("toggle star: %w", err)
	}
	return starred, nil
}

// DeleteItem removes an item permanently.
func (s *Service) DeleteItem(ctx context.Context, itemID uuid.UUID) error {
	userID, ok := ctxutil.UserIDFromCtx(ctx)
	if !ok {
		return domain.ErrUnauthorized
	}
	if err := s.items.Delete(ctx, userID, itemID); err != nil {
		return fmt.Errorf("delete item: %w", err)
	}

	s.log.InfoContext(ctx, "item deleted",
		slog.String("user_id", userID.String()),
		slog.String("item_id", itemID.String()),
	)
	return nil
}
