package domain

import (
	"time"

	"github.com/google/uuid"
)

// Mastery level scale boundaries.
const (
	MasteryMin = 0
	MasteryMax = 100
)

// LearnableItem is one reviewable piece of content: a vocabulary entry or a
// grammar rule. Mastery fields are written only by the review service;
// Starred is mutated only by an explicit user toggle.
type LearnableItem struct {
	ID             uuid.UUID
	UserID         uuid.UUID
	CollectionID   uuid.UUID
	Kind           ItemKind
	Front          string
	Back           string
	MasteryLevel   int
	LastReviewedAt *time.Time
	NextReviewAt   *time.Time
	Starred        bool
	Version        int
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// IsDue returns true if the item is scheduled for review at the given time.
// Items with no schedule (never enqueued) are not due.
func (i *LearnableItem) IsDue(now time.Time) bool {
	if i.NextReviewAt == nil {
		return false
	}
	return !i.NextReviewAt.After(now)
}

// Category returns the derived mastery bucket for the item's current level.
func (i *LearnableItem) Category() MasteryCategory {
	return CategoryOf(i.MasteryLevel)
}

// ClampMastery clamps a mastery value to the [MasteryMin, MasteryMax] scale.
func ClampMastery(v int) int {
	if v < MasteryMin {
		return MasteryMin
	}
	if v > MasteryMax {
		return MasteryMax
	}
	return v
}

// CategoryOf maps a mastery level to its category. Boundaries are inclusive
// on the lower end and exclusive on the upper end, except the final band
// which is closed at 100. Out-of-range input is clamped first, so the
// function is total over all integers.
func CategoryOf(level int) MasteryCategory {
	level = ClampMastery(level)
	switch {
	case level < 20:
		return MasteryCategoryNew
	case level < 40:
		return MasteryCategoryLearning
	case level < 60:
		return MasteryCategoryFamiliar
	case level < 80:
		return MasteryCategoryConfident
	default:
		return MasteryCategoryMastered
	}
}

// MasteryUpdateParams holds the fields the review engine writes on an item
// after an outcome is applied. No other component writes these fields.
type MasteryUpdateParams struct {
	MasteryLevel   int
	LastReviewedAt time.Time
	NextReviewAt   time.Time
}

// Collection groups learnable items. A collection exclusively owns its items;
// deleting a collection cascades to them.
type Collection struct {
	ID        uuid.UUID
	UserID    uuid.UUID
	Name      string
	DeletedAt *time.Time
	CreatedAt time.Time
	UpdatedAt time.Time
}

// CollectionStats holds the aggregate view of one collection's items.
type CollectionStats struct {
	Total      int
	Mastered   int
	Learning   int
	New        int
	AvgMastery float64
	DueCount   int
}
