package review

import (
	"math/rand"
	"time"

	"github.com/google/uuid"

	"github.com/ableukhov/linguadeck-backend/internal/domain"
)

// SelectDue returns the items whose next review is scheduled at or before
// now, preserving input order.
func SelectDue(items []domain.LearnableItem, now time.Time) []domain.LearnableItem {
	due := make([]domain.LearnableItem, 0, len(items))
	for _, it := range items {
		if it.IsDue(now) {
			due = append(due, it)
		}
	}
	return due
}

// SelectExplicit returns the items whose id is in ids, preserving input
// order. Explicit selection does not require due-ness.
func SelectExplicit(items []domain.LearnableItem, ids []uuid.UUID) []domain.LearnableItem {
	if len(ids) == 0 {
		return nil
	}

	wanted := make(map[uuid.UUID]bool, len(ids))
	for _, id := range ids {
		wanted[id] = true
	}

	picked := make([]domain.LearnableItem, 0, len(ids))
	for _, it := range items {
		if wanted[it.ID] {
			picked = append(picked, it)
		}
	}
	return picked
}

// BuildDeck assembles the session deck from a collection's items.
// An explicit selection takes precedence over due filtering; when neither
// yields anything the whole collection is used (full-deck fallback), so the
// result is empty only for an empty collection.
func BuildDeck(items []domain.LearnableItem, explicitIDs []uuid.UUID, now time.Time) []domain.LearnableItem {
	if deck := SelectExplicit(items, explicitIDs); len(deck) > 0 {
		return deck
	}
	if deck := SelectDue(items, now); len(deck) > 0 {
		return deck
	}
	return items
}

// ShuffleDeck permutes the deck in place using the given source.
// The source is injected so tests can pin a seed; a nil rnd falls back to a
// time-seeded source.
func ShuffleDeck(deck []domain.LearnableItem, rnd *rand.Rand) {
	if rnd == nil {
		rnd = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	rnd.Shuffle(len(deck), func(i, j int) {
		deck[i], deck[j] = deck[j], deck[i]
	})
}
