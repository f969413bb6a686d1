package review

import (
	"fmt"
	"math"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/ableukhov/linguadeck-backend/internal/domain"
)

// Tallies counts positive and negative outcomes within one session.
type Tallies struct {
	Positive int
	Negative int
}

// Summary is the result of a completed session.
type Summary struct {
	Positive   int
	Negative   int
	Percentage int
	// FollowUp lists items flagged STILL_LEARNING during a binary pass.
	FollowUp []uuid.UUID
}

// Session is one ordered pass through a deck of items. It is ephemeral:
// held in memory only, destroyed on abandon, expiry, or restart.
//
// State machine: NOT_STARTED → IN_PROGRESS(cursor 0..n-1) → COMPLETE.
// The UI enforces strict sequential progression; the engine defends against
// violations anyway and reports them as errors, never silently.
type Session struct {
	ID           uuid.UUID
	UserID       uuid.UUID
	CollectionID uuid.UUID
	Mode         domain.ReviewMode

	mu        sync.Mutex
	items     []domain.LearnableItem
	cursor    int
	state     domain.SessionState
	outcomes  map[uuid.UUID]int
	followUp  []uuid.UUID
	negatives []uuid.UUID
	tallies   Tallies
	touchedAt time.Time
}

// newSession creates a session over the given deck. The deck must not be
// empty: a zero-item deck is domain.ErrEmptyDeck.
func newSession(userID, collectionID uuid.UUID, mode domain.ReviewMode, items []domain.LearnableItem, now time.Time) (*Session, error) {
	if len(items) == 0 {
		return nil, domain.ErrEmptyDeck
	}

	return &Session{
		ID:           uuid.New(),
		UserID:       userID,
		CollectionID: collectionID,
		Mode:         mode,
		items:        items,
		state:        domain.SessionStateNotStarted,
		outcomes:     make(map[uuid.UUID]int, len(items)),
		touchedAt:    now,
	}, nil
}

// Start transitions the session to IN_PROGRESS with the cursor at 0.
func (s *Session) Start() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.state != domain.SessionStateNotStarted {
		return fmt.Errorf("start in state %s: %w", s.state, domain.ErrSessionState)
	}
	s.state = domain.SessionStateInProgress
	s.cursor = 0
	return nil
}

// State returns the current state.
func (s *Session) State() domain.SessionState {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// Len returns the deck size.
func (s *Session) Len() int { return len(s.items) }

// Current returns the item at the cursor. Valid only while IN_PROGRESS.
func (s *Session) Current() (domain.LearnableItem, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.state != domain.SessionStateInProgress {
		return domain.LearnableItem{}, fmt.Errorf("current in state %s: %w", s.state, domain.ErrSessionState)
	}
	return s.items[s.cursor], nil
}

// CursorItem validates that itemID refers to the item at the cursor and
// returns it. Out-of-order submission is domain.ErrCursorMismatch.
func (s *Session) CursorItem(itemID uuid.UUID) (domain.LearnableItem, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.state != domain.SessionStateInProgress {
		return domain.LearnableItem{}, fmt.Errorf("record outcome in state %s: %w", s.state, domain.ErrSessionState)
	}
	cur := s.items[s.cursor]
	if cur.ID != itemID {
		return domain.LearnableItem{}, fmt.Errorf("expected item %s, got %s: %w", cur.ID, itemID, domain.ErrCursorMismatch)
	}
	return cur, nil
}

// Commit records an applied outcome for the item at the cursor and advances.
// The caller persists the outcome first; a failed write must leave the
// session untouched so the same card can be resubmitted, which is why Commit
// re-validates the cursor instead of trusting CursorItem's earlier answer.
// A positive delta tallies positive; zero or negative tallies negative
// (binary STILL_LEARNING keeps mastery at zero delta yet still needs the
// follow-up pass).
func (s *Session) Commit(itemID uuid.UUID, judgement domain.Judgement, delta int, now time.Time) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.state != domain.SessionStateInProgress {
		return fmt.Errorf("commit in state %s: %w", s.state, domain.ErrSessionState)
	}
	cur := s.items[s.cursor]
	if cur.ID != itemID {
		return fmt.Errorf("expected item %s, got %s: %w", cur.ID, itemID, domain.ErrCursorMismatch)
	}

	s.outcomes[itemID] = delta
	if delta > 0 {
		s.tallies.Positive++
	} else {
		s.tallies.Negative++
		s.negatives = append(s.negatives, itemID)
	}
	if judgement == domain.JudgementStillLearning {
		s.followUp = append(s.followUp, itemID)
	}
	s.touchedAt = now

	if s.cursor+1 < len(s.items) {
		s.cursor++
	} else {
		s.state = domain.SessionStateComplete
	}
	return nil
}

// Tallies returns the per-session counters. Frozen once COMPLETE.
func (s *Session) Tallies() Tallies {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.tallies
}

// Summary returns the session summary. Valid only once COMPLETE.
func (s *Session) Summary() (Summary, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.state != domain.SessionStateComplete {
		return Summary{}, fmt.Errorf("summary in state %s: %w", s.state, domain.ErrSessionState)
	}

	total := s.tallies.Positive + s.tallies.Negative
	pct := 0
	if total > 0 {
		pct = int(math.Round(float64(s.tallies.Positive) / float64(total) * 100))
	}

	followUp := make([]uuid.UUID, len(s.followUp))
	copy(followUp, s.followUp)

	return Summary{
		Positive:   s.tallies.Positive,
		Negative:   s.tallies.Negative,
		Percentage: pct,
		FollowUp:   followUp,
	}, nil
}

// NegativeItems returns the items tallied negative, in their original deck
// order. Used to build the restart deck.
func (s *Session) NegativeItems() ([]domain.LearnableItem, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.state != domain.SessionStateComplete {
		return nil, fmt.Errorf("negatives in state %s: %w", s.state, domain.ErrSessionState)
	}

	neg := make(map[uuid.UUID]bool, len(s.negatives))
	for _, id := range s.negatives {
		neg[id] = true
	}

	var items []domain.LearnableItem
	for _, it := range s.items {
		if neg[it.ID] {
			items = append(items, it)
		}
	}
	return items, nil
}

// idleSince reports whether the session has seen no activity since cutoff.
func (s *Session) idleSince(cutoff time.Time) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.touchedAt.Before(cutoff)
}
