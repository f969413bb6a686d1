package assessment

import (
	"strings"

	"github.com/ableukhov/linguadeck-backend/internal/domain"
)

const maxSkills = 20

// BandInput holds the per-skill scores to band.
type BandInput struct {
	Scores []SkillScore
}

// Validate checks all fields and collects all errors.
func (i *BandInput) Validate() error {
	var errs []domain.FieldError

	if len(i.Scores) == 0 {
		errs = append(errs, domain.FieldError{Field: "scores", Message: "required"})
	}
	if len(i.Scores) > maxSkills {
		errs = append(errs, domain.FieldError{Field: "scores", Message: "too many (max 20)"})
	}

	seen := make(map[string]struct{}, len(i.Scores))
	for _, sc := range i.Scores {
		skill := strings.TrimSpace(sc.Skill)
		if skill == "" {
			errs = append(errs, domain.FieldError{Field: "skill", Message: "required"})
			continue
		}
		if _, dup := seen[skill]; dup {
			errs = append(errs, domain.FieldError{Field: "skill", Message: "duplicate: " + skill})
		}
		seen[skill] = struct{}{}
	}

	if len(errs) > 0 {
		return domain.NewValidationErrors(errs)
	}
	return nil
}
