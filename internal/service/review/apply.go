package review

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/ableukhov/linguadeck-backend/internal/domain"
)

// applyOutcome is the update applier: the sole writer of mastery level and
// review timestamps. The write is guarded by an optimistic version check;
// a losing concurrent writer gets domain.ErrConflict from the repository,
// re-reads, recomputes the new level against the fresh mastery, and retries
// up to a bounded count. Two near-simultaneous reviews of the same item are
// thus serialized, never merged or dropped.
func (s *Service) applyOutcome(ctx context.Context, userID, itemID uuid.UUID, judgement domain.Judgement, mode domain.ReviewMode, now time.Time) (domain.LearnableItem, int, error) {
	delta, err := DeltaFor(judgement, mode)
	if err != nil {
		return domain.LearnableItem{}, 0, err
	}

	for attempt := 1; attempt <= s.cfg.ApplyMaxAttempts; attempt++ {
		item, err := s.items.GetByID(ctx, userID, itemID)
		if err != nil {
			return domain.LearnableItem{}, 0, fmt.Errorf("get item: %w", err)
		}

		newLevel := domain.ClampMastery(item.MasteryLevel + delta)
		params := domain.MasteryUpdateParams{
			MasteryLevel:   newLevel,
			LastReviewedAt: now,
			NextReviewAt:   s.cfg.Scheduler.NextReviewAt(newLevel, delta, now),
		}

		updated, err := s.items.UpdateMastery(ctx, userID, itemID, params, item.Version)
		if err == nil {
			return updated, delta, nil
		}
		if !errors.Is(err, domain.ErrConflict) {
			return domain.LearnableItem{}, 0, fmt.Errorf("update mastery: %w", err)
		}

		s.log.WarnContext(ctx, "mastery update conflict, retrying",
			slog.String("item_id", itemID.String()),
			slog.Int("attempt", attempt),
		)
	}

	return domain.LearnableItem{}, 0, fmt.Errorf(
		"apply outcome to item %s after %d attempts: %w", itemID, s.cfg.ApplyMaxAttempts, domain.ErrConflict)
}
