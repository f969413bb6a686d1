// Package assessment maps per-skill proficiency scores onto CEFR bands.
// It is a pure computation service: no storage, no external calls.
package assessment

import (
	"context"
	"log/slog"
	"math"

	"github.com/ableukhov/linguadeck-backend/internal/domain"
)

// SkillScore is one skill's aggregate score on the 0-100 scale.
type SkillScore struct {
	Skill string
	Score int
}

// SkillBand pairs a skill with the band its score falls into.
type SkillBand struct {
	Skill string
	Band  domain.ProficiencyBand
}

// Result is the outcome of one banding request.
type Result struct {
	// Overall is the band of the unweighted mean across all skills,
	// rounded half away from zero before lookup.
	Overall  domain.ProficiencyBand
	PerSkill []SkillBand
}

type Service struct {
	log *slog.Logger
}

func NewService(log *slog.Logger) *Service {
	return &Service{log: log.With("service", "assessment")}
}

// Band computes the overall and per-skill CEFR bands for a set of scores.
// Out-of-range scores are clamped, matching the mastery scale semantics.
func (s *Service) Band(ctx context.Context, input BandInput) (Result, error) {
	if err := input.Validate(); err != nil {
		return Result{}, err
	}

	perSkill := make([]SkillBand, 0, len(input.Scores))
	sum := 0
	for _, sc := range input.Scores {
		clamped := domain.ClampMastery(sc.Score)
		sum += clamped
		perSkill = append(perSkill, SkillBand{
			Skill: sc.Skill,
			Band:  domain.BandFor(clamped),
		})
	}

	mean := int(math.Round(float64(sum) / float64(len(input.Scores))))
	overall := domain.BandFor(mean)

	s.log.InfoContext(ctx, "proficiency banded",
		slog.Int("skills", len(input.Scores)),
		slog.Int("mean", mean),
		slog.String("overall", overall.Level.String()),
	)

	return Result{Overall: overall, PerSkill: perSkill}, nil
}
