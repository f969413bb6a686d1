package review

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/ableukhov/linguadeck-backend/internal/domain"
	"github.com/ableukhov/linguadeck-backend/pkg/ctxutil"
)

// StartSession builds a deck for the collection and opens a new session
// over it. Deck assembly: explicit selection wins, then due items, then the
// whole collection (full-deck fallback). A collection with zero items is a
// true empty state and fails with domain.ErrEmptyDeck; an unknown collection
// is domain.ErrNotFound.
func (s *Service) StartSession(ctx context.Context, input StartSessionInput) (*Session, error) {
	userID, ok := ctxutil.UserIDFromCtx(ctx)
	if !ok {
		return nil, domain.ErrUnauthorized
	}

	if err := input.Validate(); err != nil {
		return nil, err
	}

	// Existence check first, so "unknown collection" and "empty collection"
	// stay distinguishable.
	if _, err := s.collections.GetByID(ctx, userID, input.CollectionID); err != nil {
		return nil, fmt.Errorf("get collection: %w", err)
	}

	items, err := s.items.ListByCollection(ctx, userID, input.CollectionID)
	if err != nil {
		return nil, fmt.Errorf("list items: %w", err)
	}

	now := s.now()
	deck := BuildDeck(items, input.ItemIDs, now)
	if input.Shuffle {
		ShuffleDeck(deck, s.rnd)
	}

	sess, err := newSession(userID, input.CollectionID, input.Mode, deck, now)
	if err != nil {
		return nil, err
	}
	if err := sess.Start(); err != nil {
		return nil, err
	}
	s.store.put(sess)

	s.log.InfoContext(ctx, "session started",
		slog.String("user_id", userID.String()),
		slog.String("session_id", sess.ID.String()),
		slog.String("collection_id", input.CollectionID.String()),
		slog.String("mode", string(input.Mode)),
		slog.Int("deck_size", sess.Len()),
	)

	return sess, nil
}

// GetSession returns a live session owned by the calling user.
// Sessions of other users are reported as not found, not forbidden.
func (s *Service) GetSession(ctx context.Context, sessionID uuid.UUID) (*Session, error) {
	userID, ok := ctxutil.UserIDFromCtx(ctx)
	if !ok {
		return nil, domain.ErrUnauthorized
	}

	sess, found := s.store.get(sessionID)
	if !found || sess.UserID != userID {
		return nil, fmt.Errorf("session %s: %w", sessionID, domain.ErrNotFound)
	}
	return sess, nil
}

// AbandonSession drops a live session. Idempotent: abandoning an unknown or
// already-dropped session is a noop. Reviews committed per-card stay
// committed.
func (s *Service) AbandonSession(ctx context.Context, sessionID uuid.UUID) error {
	userID, ok := ctxutil.UserIDFromCtx(ctx)
	if !ok {
		return domain.ErrUnauthorized
	}

	sess, found := s.store.get(sessionID)
	if !found || sess.UserID != userID {
		return nil
	}
	s.store.delete(sessionID)

	s.log.InfoContext(ctx, "session abandoned",
		slog.String("user_id", userID.String()),
		slog.String("session_id", sessionID.String()),
	)
	return nil
}

// RestartWithNegatives builds a new session from only the items tallied
// negative in the just-completed session. The old session is dropped.
// Fails with domain.ErrEmptyDeck when every outcome was positive.
func (s *Service) RestartWithNegatives(ctx context.Context, sessionID uuid.UUID) (*Session, error) {
	userID, ok := ctxutil.UserIDFromCtx(ctx)
	if !ok {
		return nil, domain.ErrUnauthorized
	}

	old, err := s.GetSession(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	negatives, err := old.NegativeItems()
	if err != nil {
		return nil, err
	}

	sess, err := newSession(userID, old.CollectionID, old.Mode, negatives, s.now())
	if err != nil {
		return nil, err
	}
	if err := sess.Start(); err != nil {
		return nil, err
	}

	s.store.delete(old.ID)
	s.store.put(sess)

	s.log.InfoContext(ctx, "session restarted with negatives",
		slog.String("user_id", userID.String()),
		slog.String("old_session_id", old.ID.String()),
		slog.String("session_id", sess.ID.String()),
		slog.Int("deck_size", sess.Len()),
	)

	return sess, nil
}

// PruneIdleSessions drops sessions idle longer than the configured TTL.
// Called periodically by the app scheduler.
func (s *Service) PruneIdleSessions() int {
	cutoff := s.now().Add(-s.cfg.SessionTTL)
	n := s.store.pruneIdle(cutoff)
	if n > 0 {
		s.log.Info("pruned idle sessions", slog.Int("count", n), slog.Int("remaining", s.store.len()))
	}
	return n
}
