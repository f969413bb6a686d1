package review

import (
	"math/rand"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/ableukhov/linguadeck-backend/internal/domain"
)

func itemWithDue(due *time.Time) domain.LearnableItem {
	return domain.LearnableItem{ID: uuid.New(), NextReviewAt: due}
}

func TestSelectDue(t *testing.T) {
	t.Parallel()

	now := time.Date(2026, 8, 30, 12, 0, 0, 0, time.UTC)
	justPast := now.Add(-time.Second)
	inAnHour := now.Add(time.Hour)

	overdue := itemWithDue(&justPast)
	dueNow := itemWithDue(&now)
	future := itemWithDue(&inAnHour)
	unscheduled := itemWithDue(nil)

	items := []domain.LearnableItem{overdue, dueNow, future, unscheduled}

	due := SelectDue(items, now)
	if len(due) != 2 {
		t.Fatalf("got %d due items, want 2", len(due))
	}
	// Input order is preserved.
	if due[0].ID != overdue.ID || due[1].ID != dueNow.ID {
		t.Error("due selection should preserve input order")
	}
}

func TestSelectExplicit(t *testing.T) {
	t.Parallel()

	a := itemWithDue(nil)
	b := itemWithDue(nil)
	c := itemWithDue(nil)
	items := []domain.LearnableItem{a, b, c}

	picked := SelectExplicit(items, []uuid.UUID{c.ID, a.ID})
	if len(picked) != 2 {
		t.Fatalf("got %d items, want 2", len(picked))
	}
	// Input order wins over selection order.
	if picked[0].ID != a.ID || picked[1].ID != c.ID {
		t.Error("explicit selection should preserve input order")
	}

	if got := SelectExplicit(items, nil); got != nil {
		t.Errorf("empty id set should select nothing, got %d items", len(got))
	}

	unknown := SelectExplicit(items, []uuid.UUID{uuid.New()})
	if len(unknown) != 0 {
		t.Errorf("unknown ids should select nothing, got %d items", len(unknown))
	}
}

func TestBuildDeck_ExplicitTakesPrecedence(t *testing.T) {
	t.Parallel()

	now := time.Date(2026, 8, 30, 12, 0, 0, 0, time.UTC)
	past := now.Add(-time.Hour)
	future := now.Add(time.Hour)

	due := itemWithDue(&past)
	notDue := itemWithDue(&future)
	items := []domain.LearnableItem{due, notDue}

	// Explicit selection of a non-due item beats due filtering.
	deck := BuildDeck(items, []uuid.UUID{notDue.ID}, now)
	if len(deck) != 1 || deck[0].ID != notDue.ID {
		t.Error("explicit selection should take precedence and not require due-ness")
	}
}

func TestBuildDeck_DueThenFullDeckFallback(t *testing.T) {
	t.Parallel()

	now := time.Date(2026, 8, 30, 12, 0, 0, 0, time.UTC)
	past := now.Add(-time.Hour)
	future := now.Add(time.Hour)

	due := itemWithDue(&past)
	notDue := itemWithDue(&future)

	deck := BuildDeck([]domain.LearnableItem{due, notDue}, nil, now)
	if len(deck) != 1 || deck[0].ID != due.ID {
		t.Error("with no explicit set, the deck should be the due subset")
	}

	// Nothing due: the whole collection is the deck, never an empty session.
	all := []domain.LearnableItem{notDue, itemWithDue(&future)}
	deck = BuildDeck(all, nil, now)
	if len(deck) != 2 {
		t.Errorf("full-deck fallback should return all %d items, got %d", len(all), len(deck))
	}

	// Empty collection stays empty.
	if deck := BuildDeck(nil, nil, now); len(deck) != 0 {
		t.Errorf("empty collection should yield an empty deck, got %d", len(deck))
	}
}

func TestShuffleDeck_DeterministicWithSeed(t *testing.T) {
	t.Parallel()

	build := func() []domain.LearnableItem {
		items := make([]domain.LearnableItem, 10)
		for i := range items {
			items[i] = domain.LearnableItem{ID: uuid.NewSHA1(uuid.NameSpaceOID, []byte{byte(i)})}
		}
		return items
	}

	a := build()
	b := build()
	ShuffleDeck(a, rand.New(rand.NewSource(42)))
	ShuffleDeck(b, rand.New(rand.NewSource(42)))

	for i := range a {
		if a[i].ID != b[i].ID {
			t.Fatal("same seed should produce the same permutation")
		}
	}
}

func TestShuffleDeck_IsPermutation(t *testing.T) {
	t.Parallel()

	items := make([]domain.LearnableItem, 20)
	seen := make(map[uuid.UUID]bool, len(items))
	for i := range items {
		items[i] = domain.LearnableItem{ID: uuid.New()}
		seen[items[i].ID] = true
	}

	ShuffleDeck(items, rand.New(rand.NewSource(7)))

	if len(items) != 20 {
		t.Fatalf("shuffle changed deck size: %d", len(items))
	}
	for _, it := range items {
		if !seen[it.ID] {
			t.Fatal("shuffle introduced an unknown item")
		}
	}
}
