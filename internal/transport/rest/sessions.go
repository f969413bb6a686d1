package rest

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"strings"

	"github.com/google/uuid"

	"github.com/ableukhov/linguadeck-backend/internal/domain"
	"github.com/ableukhov/linguadeck-backend/internal/service/review"
)

// sessionService defines the minimal interface needed by SessionHandler.
type sessionService interface {
	StartSession(ctx context.Context, input review.StartSessionInput) (*review.Session, error)
	RecordOutcome(ctx context.Context, input review.RecordOutcomeInput) (review.OutcomeResult, error)
	SessionSummary(ctx context.Context, sessionID uuid.UUID) (review.Summary, error)
	RestartWithNegatives(ctx context.Context, sessionID uuid.UUID) (*review.Session, error)
	AbandonSession(ctx context.Context, sessionID uuid.UUID) error
}

// SessionHandler serves the review session endpoints.
type SessionHandler struct {
	svc sessionService
	log *slog.Logger
}

// NewSessionHandler creates a SessionHandler.
func NewSessionHandler(svc sessionService, logger *slog.Logger) *SessionHandler {
	return &SessionHandler{svc: svc, log: logger.With("handler", "sessions")}
}

type outcomeRequest struct {
	ItemID    string `json:"itemId"`
	Judgement string `json:"judgement"`
}

type outcomeResponse struct {
	State   string           `json:"state"`
	Delta   int              `json:"delta"`
	Item    itemResponse     `json:"item"`
	Next    *itemResponse    `json:"next,omitempty"`
	Summary *summaryResponse `json:"summary,omitempty"`
}

// Start handles GET /v1/sessions/start. The deck is chosen by query
// parameters: an explicit selection wins, otherwise due items, otherwise
// the full collection.
func (h *SessionHandler) Start(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	collectionID, err := uuid.Parse(q.Get("collection_id"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid collection_id")
		return
	}

	input := review.StartSessionInput{
		CollectionID: collectionID,
		Mode:         domain.ReviewMode(q.Get("mode")),
		Shuffle:      q.Get("shuffle") == "true",
	}

	if sel := q.Get("selection"); sel != "" {
		for _, raw := range strings.Split(sel, ",") {
			id, err := uuid.Parse(strings.TrimSpace(raw))
			if err != nil {
				writeError(w, http.StatusBadRequest, "invalid selection")
				return
			}
			input.ItemIDs = append(input.ItemIDs, id)
		}
	}

	sess, err := h.svc.StartSession(r.Context(), input)
	if err != nil {
		handleError(r.Context(), h.log, w, err)
		return
	}

	writeJSON(w, http.StatusCreated, toSessionResponse(sess))
}

// RecordOutcome handles POST /v1/sessions/{id}/outcomes.
func (h *SessionHandler) RecordOutcome(w http.ResponseWriter, r *http.Request) {
	sessionID, ok := pathUUID(w, r, "id")
	if !ok {
		return
	}

	var req outcomeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	itemID, err := uuid.Parse(req.ItemID)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid itemId")
		return
	}

	result, err := h.svc.RecordOutcome(r.Context(), review.RecordOutcomeInput{
		SessionID: sessionID,
		ItemID:    itemID,
		Judgement: domain.Judgement(req.Judgement),
	})
	if err != nil {
		handleError(r.Context(), h.log, w, err)
		return
	}

	resp := outcomeResponse{
		State: result.State.String(),
		Delta: result.Delta,
		Item:  toItemResponse(result.Item),
	}
	if result.Next != nil {
		next := toItemResponse(*result.Next)
		resp.Next = &next
	}
	if result.Summary != nil {
		summary := toSummaryResponse(*result.Summary)
		resp.Summary = &summary
	}

	writeJSON(w, http.StatusOK, resp)
}

// Summary handles GET /v1/sessions/{id}/summary.
func (h *SessionHandler) Summary(w http.ResponseWriter, r *http.Request) {
	sessionID, ok := pathUUID(w, r, "id")
	if !ok {
		return
	}

	summary, err := h.svc.SessionSummary(r.Context(), sessionID)
	if err != nil {
		handleError(r.Context(), h.log, w, err)
		return
	}

	writeJSON(w, http.StatusOK, toSummaryResponse(summary))
}

// Restart handles POST /v1/sessions/{id}/restart. The new session covers
// only the items the finished one tallied negative, in original deck order.
func (h *SessionHandler) Restart(w http.ResponseWriter, r *http.Request) {
	sessionID, ok := pathUUID(w, r, "id")
	if !ok {
		return
	}

	sess, err := h.svc.RestartWithNegatives(r.Context(), sessionID)
	if err != nil {
		handleError(r.Context(), h.log, w, err)
		return
	}

	writeJSON(w, http.StatusCreated, toSessionResponse(sess))
}

// Abandon handles DELETE /v1/sessions/{id}. Abandoning a session that is
// already gone is fine; committed reviews are kept either way.
func (h *SessionHandler) Abandon(w http.ResponseWriter, r *http.Request) {
	sessionID, ok := pathUUID(w, r, "id")
	if !ok {
		return
	}

	if err := h.svc.AbandonSession(r.Context(), sessionID); err != nil {
		handleError(r.Context(), h.log, w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
