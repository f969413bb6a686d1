package library

import (
	"strings"

	"github.com/google/uuid"

	"github.com/ableukhov/linguadeck-backend/internal/domain"
)

const (
	maxNameLen  = 200
	maxFieldLen = 2000
)

// CreateCollectionInput holds the parameters for creating a collection.
type CreateCollectionInput struct {
	Name string
}

// Validate checks all fields and collects all errors.
func (i *CreateCollectionInput) Validate() error {
	var errs []domain.FieldError

	name := strings.TrimSpace(i.Name)
	if name == "" {
		errs = append(errs, domain.FieldError{Field: "name", Message: "required"})
	}
	if len(name) > maxNameLen {
		errs = append(errs, domain.FieldError{Field: "name", Message: "too long (max 200)"})
	}

	if len(errs) > 0 {
		return domain.NewValidationErrors(errs)
	}
	i.Name = name
	return nil
}

// CreateItemInput holds the parameters for adding an item to a collection.
type CreateItemInput struct {
	CollectionID uuid.UUID
	Kind         domain.ItemKind
	Front        string
	Back         string
}

// Validate checks all fields and collects all errors.
func (i *CreateItemInput) Validate() error {
	var errs []domain.FieldError

	if i.CollectionID == uuid.Nil {
		errs = append(errs, domain.FieldError{Field: "collection_id", Message: "required"})
	}
	if !i.Kind.IsValid() {
		errs = append(errs, domain.FieldError{Field: "kind", Message: "must be VOCAB_ENTRY or GRAMMAR_RULE"})
	}
	if strings.TrimSpace(i.Front) == "" {
		errs = append(errs, domain.FieldError{Field: "front", Message: "required"})
	}
	if len(i.Front) > maxFieldLen {
		errs = append(errs, domain.FieldError{Field: "front", Message: "too long (max 2000)"})
	}
	if strings.TrimSpace(i.Back) == "" {
		errs = append(errs, domain.FieldError{Field: "back", Message: "required"})
	}
	if len(i.Back) > maxFieldLen {
		errs = append(errs, domain.FieldError{Field: "back", Message: "too long (max 2000)"})
	}

	if len(errs) > 0 {
		return domain.NewValidationErrors(errs)
	}
	return nil
}
