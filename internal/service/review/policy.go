// Package review implements the mastery and spaced-repetition engine:
// outcome policy, due selection, session sequencing, and the persistence
// applier with optimistic-concurrency retry.
package review

import (
	"fmt"

	"github.com/ableukhov/linguadeck-backend/internal/domain"
)

// Fixed mastery deltas per judgement. The scale is static by design: this
// engine does not model forgetting-curve intervals.
var gradedDeltas = map[domain.Judgement]int{
	domain.JudgementAgain:   -20,
	domain.JudgementHard:    -10,
	domain.JudgementGood:    +5,
	domain.JudgementEasy:    +15,
	domain.JudgementPerfect: +25,
}

// Binary mode is a lightweight triage pass, not a penalty mechanism:
// STILL_LEARNING flags the item for a follow-up pass but leaves stored
// mastery untouched.
var binaryDeltas = map[domain.Judgement]int{
	domain.JudgementStillLearning: 0,
	domain.JudgementLearned:       +10,
}

// DeltaFor returns the mastery delta for a judgement under the given mode.
// A judgement outside the active mode's vocabulary is a caller-programming
// error reported as domain.ErrInvalidJudgement.
func DeltaFor(judgement domain.Judgement, mode domain.ReviewMode) (int, error) {
	var deltas map[domain.Judgement]int
	switch mode {
	case domain.ReviewModeGraded:
		deltas = gradedDeltas
	case domain.ReviewModeBinary:
		deltas = binaryDeltas
	default:
		return 0, fmt.Errorf("mode %q: %w", mode, domain.ErrInvalidJudgement)
	}

	delta, ok := deltas[judgement]
	if !ok {
		return 0, fmt.Errorf("judgement %q in mode %q: %w", judgement, mode, domain.ErrInvalidJudgement)
	}
	return delta, nil
}

// ApplyOutcome returns the clamped mastery level after applying the
// judgement's delta. Pure; total over each mode's declared vocabulary.
func ApplyOutcome(masteryLevel int, judgement domain.Judgement, mode domain.ReviewMode) (int, error) {
	delta, err := DeltaFor(judgement, mode)
	if err != nil {
		return 0, err
	}
	return domain.ClampMastery(masteryLevel + delta), nil
}
