package rest

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/ableukhov/linguadeck-backend/internal/service/assessment"
)

// assessmentService defines the minimal interface needed by AssessmentHandler.
type assessmentService interface {
	Band(ctx context.Context, input assessment.BandInput) (assessment.Result, error)
}

// AssessmentHandler serves proficiency banding endpoints.
type AssessmentHandler struct {
	svc assessmentService
	log *slog.Logger
}

// NewAssessmentHandler creates an AssessmentHandler.
func NewAssessmentHandler(svc assessmentService, logger *slog.Logger) *AssessmentHandler {
	return &AssessmentHandler{svc: svc, log: logger.With("handler", "assessment")}
}

type bandRequest struct {
	Scores []skillScoreRequest `json:"scores"`
}

type skillScoreRequest struct {
	Skill string `json:"skill"`
	Score int    `json:"score"`
}

type bandResponse struct {
	Overall  bandLevel   `json:"overall"`
	PerSkill []skillBand `json:"perSkill"`
}

type bandLevel struct {
	Level       string `json:"level"`
	Description string `json:"description"`
}

type skillBand struct {
	Skill string    `json:"skill"`
	Band  bandLevel `json:"band"`
}

// Band handles POST /v1/assessment/band.
func (h *AssessmentHandler) Band(w http.ResponseWriter, r *http.Request) {
	var req bandRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	input := assessment.BandInput{Scores: make([]assessment.SkillScore, 0, len(req.Scores))}
	for _, s := range req.Scores {
		input.Scores = append(input.Scores, assessment.SkillScore{Skill: s.Skill, Score: s.Score})
	}

	result, err := h.svc.Band(r.Context(), input)
	if err != nil {
		handleError(r.Context(), h.log, w, err)
		return
	}

	resp := bandResponse{
		Overall: bandLevel{
			Level:       result.Overall.Level.String(),
			Description: result.Overall.Description,
		},
		PerSkill: make([]skillBand, 0, len(result.PerSkill)),
	}
	for _, sb := range result.PerSkill {
		resp.PerSkill = append(resp.PerSkill, skillBand{
			Skill: sb.Skill,
			Band: bandLevel{
				Level:       sb.Band.Level.String(),
				Description: sb.Band.Description,
			},
		})
	}

	writeJSON(w, http.StatusOK, resp)
}
