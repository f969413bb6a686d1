package review

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/ableukhov/linguadeck-backend/internal/domain"
)

// Hand-rolled mocks for the service's consumer-defined interfaces.
// Unset funcs panic so tests fail loudly on unexpected calls.

type itemRepoMock struct {
	GetByIDFunc          func(ctx context.Context, userID, itemID uuid.UUID) (domain.LearnableItem, error)
	ListByCollectionFunc func(ctx context.Context, userID, collectionID uuid.UUID) ([]domain.LearnableItem, error)
	ListDueFunc          func(ctx context.Context, userID, collectionID uuid.UUID, now time.Time) ([]domain.LearnableItem, error)
	UpdateMasteryFunc    func(ctx context.Context, userID, itemID uuid.UUID, params domain.MasteryUpdateParams, expectedVersion int) (domain.LearnableItem, error)
	StatsFunc            func(ctx context.Context, userID, collectionID uuid.UUID, now time.Time) (domain.CollectionStats, error)

	GetByIDCalls       int
	UpdateMasteryCalls int
}

func (m *itemRepoMock) GetByID(ctx context.Context, userID, itemID uuid.UUID) (domain.LearnableItem, error) {
	if m.GetByIDFunc == nil {
		panic("itemRepoMock: unexpected GetByID call")
	}
	m.GetByIDCalls++
	return m.GetByIDFunc(ctx, userID, itemID)
}

func (m *itemRepoMock) ListByCollection(ctx context.Context, userID, collectionID uuid.UUID) ([]domain.LearnableItem, error) {
	if m.ListByCollectionFunc == nil {
		panic("itemRepoMock: unexpected ListByCollection call")
	}
	return m.ListByCollectionFunc(ctx, userID, collectionID)
}

func (m *itemRepoMock) ListDue(ctx context.Context, userID, collectionID uuid.UUID, now time.Time) ([]domain.LearnableItem, error) {
	if m.ListDueFunc == nil {
		panic("itemRepoMock: unexpected ListDue call")
	}
	return m.ListDueFunc(ctx, userID, collectionID, now)
}

func (m *itemRepoMock) UpdateMastery(ctx context.Context, userID, itemID uuid.UUID, params domain.MasteryUpdateParams, expectedVersion int) (domain.LearnableItem, error) {
	if m.UpdateMasteryFunc == nil {
		panic("itemRepoMock: unexpected UpdateMastery call")
	}
	m.UpdateMasteryCalls++
	return m.UpdateMasteryFunc(ctx, userID, itemID, params, expectedVersion)
}

func (m *itemRepoMock) Stats(ctx context.Context, userID, collectionID uuid.UUID, now time.Time) (domain.CollectionStats, error) {
	if m.StatsFunc == nil {
		panic("itemRepoMock: unexpected Stats call")
	}
	return m.StatsFunc(ctx, userID, collectionID, now)
}

type collectionRepoMock struct {
	GetByIDFunc func(ctx context.Context, userID, collectionID uuid.UUID) (domain.Collection, error)
}

func (m *collectionRepoMock) GetByID(ctx context.Context, userID, collectionID uuid.UUID) (domain.Collection, error) {
	if m.GetByIDFunc == nil {
		panic("collectionRepoMock: unexpected GetByID call")
	}
	return m.GetByIDFunc(ctx, userID, collectionID)
}

// memItemRepo is an in-memory item repository with real optimistic
// concurrency semantics, for end-to-end service tests.
type memItemRepo struct {
	items map[uuid.UUID]*domain.LearnableItem
	// failUpdates forces the next n UpdateMastery calls to conflict.
	failUpdates int
}

func newMemItemRepo(items ...domain.LearnableItem) *memItemRepo {
	m := &memItemRepo{items: make(map[uuid.UUID]*domain.LearnableItem, len(items))}
	for i := range items {
		it := items[i]
		m.items[it.ID] = &it
	}
	return m
}

func (m *memItemRepo) GetByID(_ context.Context, userID, itemID uuid.UUID) (domain.LearnableItem, error) {
	it, ok := m.items[itemID]
	if !ok || it.UserID != userID {
		return domain.LearnableItem{}, domain.ErrNotFound
	}
	return *it, nil
}

func (m *memItemRepo) ListByCollection(_ context.Context, userID, collectionID uuid.UUID) ([]domain.LearnableItem, error) {
	var out []domain.LearnableItem
	for _, it := range m.items {
		if it.UserID == userID && it.CollectionID == collectionID {
			out = append(out, *it)
		}
	}
	return out, nil
}

func (m *memItemRepo) ListDue(_ context.Context, userID, collectionID uuid.UUID, now time.Time) ([]domain.LearnableItem, error) {
	var out []domain.LearnableItem
	for _, it := range m.items {
		if it.UserID == userID && it.CollectionID == collectionID && it.IsDue(now) {
			out = append(out, *it)
		}
	}
	return out, nil
}

func (m *memItemRepo) UpdateMastery(_ context.Context, userID, itemID uuid.UUID, params domain.MasteryUpdateParams, expectedVersion int) (domain.LearnableItem, error) {
	it, ok := m.items[itemID]
	if !ok || it.UserID != userID {
		return domain.LearnableItem{}, domain.ErrNotFound
	}
	if m.failUpdates > 0 {
		m.failUpdates--
		it.Version++ // a concurrent writer won the race
		return domain.LearnableItem{}, domain.ErrConflict
	}
	if it.Version != expectedVersion {
		return domain.LearnableItem{}, domain.ErrConflict
	}
	it.MasteryLevel = params.MasteryLevel
	last := params.LastReviewedAt
	next := params.NextReviewAt
	it.LastReviewedAt = &last
	it.NextReviewAt = &next
	it.Version++
	return *it, nil
}

func (m *memItemRepo) Stats(_ context.Context, userID, collectionID uuid.UUID, now time.Time) (domain.CollectionStats, error) {
	var stats domain.CollectionStats
	sum := 0
	for _, it := range m.items {
		if it.UserID != userID || it.CollectionID != collectionID {
			continue
		}
		stats.Total++
		sum += it.MasteryLevel
		switch it.Category() {
		case domain.MasteryCategoryMastered:
			stats.Mastered++
		case domain.MasteryCategoryNew:
			stats.New++
		default:
			stats.Learning++
		}
		if it.IsDue(now) {
			stats.DueCount++
		}
	}
	if stats.Total > 0 {
		stats.AvgMastery = float64(sum) / float64(stats.Total)
	}
	return stats, nil
}

func okCollectionRepo(userID, collectionID uuid.UUID) *collectionRepoMock {
	return &collectionRepoMock{
		GetByIDFunc: func(_ context.Context, uid, cid uuid.UUID) (domain.Collection, error) {
			if uid != userID || cid != collectionID {
				return domain.Collection{}, domain.ErrNotFound
			}
			return domain.Collection{ID: collectionID, UserID: userID, Name: "test"}, nil
		},
	}
}
