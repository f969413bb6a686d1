package review

import (
	"github.com/google/uuid"

	"github.com/ableukhov/linguadeck-backend/internal/domain"
)

// StartSessionInput holds the parameters for starting a review session.
type StartSessionInput struct {
	CollectionID uuid.UUID
	Mode         domain.ReviewMode
	// ItemIDs is an explicit caller-chosen selection. It takes precedence
	// over due filtering and does not require due-ness.
	ItemIDs []uuid.UUID
	Shuffle bool
}

// Validate checks all fields and collects all errors.
func (i *StartSessionInput) Validate() error {
	var errs []domain.FieldError

	if i.CollectionID == uuid.Nil {
		errs = append(errs, domain.FieldError{Field: "collection_id", Message: "required"})
	}
	if !i.Mode.IsValid() {
		errs = append(errs, domain.FieldError{Field: "mode", Message: "must be GRADED or BINARY"})
	}
	if len(i.ItemIDs) > 500 {
		errs = append(errs, domain.FieldError{Field: "selection", Message: "too many (max 500)"})
	}
	for _, id := range i.ItemIDs {
		if id == uuid.Nil {
			errs = append(errs, domain.FieldError{Field: "selection", Message: "contains nil id"})
			break
		}
	}

	if len(errs) > 0 {
		return domain.NewValidationErrors(errs)
	}
	return nil
}

// RecordOutcomeInput holds the parameters for submitting one review outcome.
type RecordOutcomeInput struct {
	SessionID uuid.UUID
	ItemID    uuid.UUID
	Judgement domain.Judgement
}

// Validate checks all fields and collects all errors.
// Judgement vocabulary is checked against the session mode by the service,
// not here, because the mode lives on the session.
func (i *RecordOutcomeInput) Validate() error {
	var errs []domain.FieldError

	if i.SessionID == uuid.Nil {
		errs = append(errs, domain.FieldError{Field: "session_id", Message: "required"})
	}
	if i.ItemID == uuid.Nil {
		errs = append(errs, domain.FieldError{Field: "item_id", Message: "required"})
	}
	if i.Judgement == "" {
		errs = append(errs, domain.FieldError{Field: "judgement", Message: "required"})
	}

	if len(errs) > 0 {
		return domain.NewValidationErrors(errs)
	}
	return nil
}
