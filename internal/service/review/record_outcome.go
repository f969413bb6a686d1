package review

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/ableukhov/linguadeck-backend/internal/domain"
	"github.com/ableukhov/linguadeck-backend/pkg/ctxutil"
)

// OutcomeResult is what one committed outcome produces: the updated item,
// the applied delta, and either the next card or the final summary.
type OutcomeResult struct {
	Item  domain.LearnableItem
	Delta int
	State domain.SessionState
	// Next is set while the session is IN_PROGRESS.
	Next *domain.LearnableItem
	// Summary is set once the session is COMPLETE.
	Summary *Summary
}

// RecordOutcome applies one judgement to the item at the session cursor.
//
// The outcome is persisted before the cursor moves: if the write fails the
// cursor stays put and the same card can be resubmitted. The judgement's
// vocabulary is checked against the session mode up front, so an invalid
// judgement never touches stored state.
func (s *Service) RecordOutcome(ctx context.Context, input RecordOutcomeInput) (OutcomeResult, error) {
	userID, ok := ctxutil.UserIDFromCtx(ctx)
	if !ok {
		return OutcomeResult{}, domain.ErrUnauthorized
	}

	if err := input.Validate(); err != nil {
		return OutcomeResult{}, err
	}

	sess, err := s.GetSession(ctx, input.SessionID)
	if err != nil {
		return OutcomeResult{}, err
	}

	if !input.Judgement.IsValidFor(sess.Mode) {
		return OutcomeResult{}, fmt.Errorf("judgement %q in mode %q: %w",
			input.Judgement, sess.Mode, domain.ErrInvalidJudgement)
	}

	if _, err := sess.CursorItem(input.ItemID); err != nil {
		return OutcomeResult{}, err
	}

	now := s.now()
	updated, delta, err := s.applyOutcome(ctx, userID, input.ItemID, input.Judgement, sess.Mode, now)
	if err != nil {
		return OutcomeResult{}, err
	}

	if err := sess.Commit(input.ItemID, input.Judgement, delta, now); err != nil {
		return OutcomeResult{}, err
	}

	s.log.InfoContext(ctx, "outcome recorded",
		slog.String("user_id", userID.String()),
		slog.String("session_id", sess.ID.String()),
		slog.String("item_id", input.ItemID.String()),
		slog.String("judgement", string(input.Judgement)),
		slog.Int("delta", delta),
		slog.Int("mastery", updated.MasteryLevel),
		slog.String("category", string(updated.Category())),
	)

	result := OutcomeResult{Item: updated, Delta: delta, State: sess.State()}
	switch result.State {
	case domain.SessionStateInProgress:
		next, curErr := sess.Current()
		if curErr != nil {
			return OutcomeResult{}, curErr
		}
		result.Next = &next
	case domain.SessionStateComplete:
		summary, sumErr := sess.Summary()
		if sumErr != nil {
			return OutcomeResult{}, sumErr
		}
		result.Summary = &summary
	}

	return result, nil
}

// SessionSummary returns the summary of a completed session.
func (s *Service) SessionSummary(ctx context.Context, sessionID uuid.UUID) (Summary, error) {
	sess, err := s.GetSession(ctx, sessionID)
	if err != nil {
		return Summary{}, err
	}
	return sess.Summary()
}
