package config

import (
	"fmt"
	"strings"
	"time"
)

// categoryCount is the number of mastery categories an interval list must cover.
const categoryCount = 5

// Validate performs business-rule validation on the loaded configuration.
// It must be called after loading; Load calls it automatically.
func (c *Config) Validate() error {
	if len(c.Auth.JWTSecret) < 32 {
		return fmt.Errorf("auth.jwt_secret must be at least 32 characters (got %d)", len(c.Auth.JWTSecret))
	}

	if err := c.Review.validate(); err != nil {
		return fmt.Errorf("review: %w", err)
	}

	if c.Retention.HardDeleteRetentionDays < 0 {
		return fmt.Errorf("retention.hard_delete_retention_days must be >= 0 (got %d)", c.Retention.HardDeleteRetentionDays)
	}

	return nil
}

func (r *ReviewConfig) validate() error {
	if r.RetryInterval <= 0 {
		return fmt.Errorf("retry_interval must be > 0 (got %v)", r.RetryInterval)
	}
	if r.SessionTTL <= 0 {
		return fmt.Errorf("session_ttl must be > 0 (got %v)", r.SessionTTL)
	}
	if r.ApplyMaxAttempts <= 0 {
		return fmt.Errorf("apply_max_attempts must be > 0 (got %d)", r.ApplyMaxAttempts)
	}

	intervals, err := ParseIntervals(r.CategoryIntervalsRaw)
	if err != nil {
		return fmt.Errorf("category_intervals: %w", err)
	}
	if len(intervals) != categoryCount {
		return fmt.Errorf("category_intervals: need %d values, got %d", categoryCount, len(intervals))
	}
	r.CategoryIntervals = intervals

	return nil
}

// ParseIntervals parses a comma-separated string of durations (e.g. "4h,8h")
// into a slice of time.Duration. An empty string returns a nil slice.
func ParseIntervals(raw string) ([]time.Duration, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil, nil
	}

	parts := strings.Split(raw, ",")
	out := make([]time.Duration, 0, len(parts))

	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p == "" {
			continue
		}
		d, err := time.ParseDuration(p)
		if err != nil {
			return nil, fmt.Errorf("invalid duration %q: %w", p, err)
		}
		if d <= 0 {
			return nil, fmt.Errorf("duration %q must be > 0", p)
		}
		out = append(out, d)
	}

	return out, nil
}
