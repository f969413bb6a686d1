package review

import (
	"time"

	"github.com/ableukhov/linguadeck-backend/internal/domain"
)

// SchedulerConfig holds the interval table used to recompute an item's next
// review time after each outcome.
type SchedulerConfig struct {
	// RetryInterval applies after any non-positive outcome.
	RetryInterval time.Duration
	// CategoryIntervals maps the resulting mastery category to the delay
	// before the item becomes due again.
	CategoryIntervals map[domain.MasteryCategory]time.Duration
}

// DefaultSchedulerConfig returns the built-in interval table.
func DefaultSchedulerConfig() SchedulerConfig {
	return SchedulerConfig{
		RetryInterval: 10 * time.Minute,
		CategoryIntervals: map[domain.MasteryCategory]time.Duration{
			domain.MasteryCategoryNew:       4 * time.Hour,
			domain.MasteryCategoryLearning:  8 * time.Hour,
			domain.MasteryCategoryFamiliar:  24 * time.Hour,
			domain.MasteryCategoryConfident: 72 * time.Hour,
			domain.MasteryCategoryMastered:  168 * time.Hour,
		},
	}
}

// NextReviewAt computes when the item should come due again after a review
// that produced delta and landed on newLevel. Non-positive outcomes come
// back after the short retry interval; positive outcomes are pushed forward
// by an amount growing with the resulting mastery category.
func (c SchedulerConfig) NextReviewAt(newLevel, delta int, now time.Time) time.Time {
	if delta <= 0 {
		return now.Add(c.RetryInterval)
	}

	interval, ok := c.CategoryIntervals[domain.CategoryOf(newLevel)]
	if !ok {
		return now.Add(c.RetryInterval)
	}
	return now.Add(interval)
}
