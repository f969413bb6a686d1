package rest

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/google/uuid"

	"github.com/ableukhov/linguadeck-backend/internal/domain"
	"github.com/ableukhov/linguadeck-backend/internal/service/library"
)

// itemService defines the minimal interface needed by ItemHandler.
type itemService interface {
	CreateItem(ctx context.Context, input library.CreateItemInput) (domain.LearnableItem, error)
	ToggleStar(ctx context.Context, itemID uuid.UUID) (bool, error)
	DeleteItem(ctx context.Context, itemID uuid.UUID) error
}

// ItemHandler serves item endpoints.
type ItemHandler struct {
	svc itemService
	log *slog.Logger
}

// NewItemHandler creates an ItemHandler.
func NewItemHandler(svc itemService, logger *slog.Logger) *ItemHandler {
	return &ItemHandler{svc: svc, log: logger.With("handler", "items")}
}

type createItemRequest struct {
	Kind  string `json:"kind"`
	Front string `json:"front"`
	Back  string `json:"back"`
}

// Create handles POST /v1/collections/{id}/items. New items start at
// mastery zero and are due immediately.
func (h *ItemHandler) Create(w http.ResponseWriter, r *http.Request) {
	collectionID, ok := pathUUID(w, r, "id")
	if !ok {
		return
	}

	var req createItemRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	created, err := h.svc.CreateItem(r.Context(), library.CreateItemInput{
		CollectionID: collectionID,
		Kind:         domain.ItemKind(req.Kind),
		Front:        req.Front,
		Back:         req.Back,
	})
	if err != nil {
		handleError(r.Context(), h.log, w, err)
		return
	}

	writeJSON(w, http.StatusCreated, toItemResponse(created))
}

// ToggleStar handles POST /v1/items/{id}/star.
func (h *ItemHandler) ToggleStar(w http.ResponseWriter, r *http.Request) {
	itemID, ok := pathUUID(w, r, "id")
	if !ok {
		return
	}

	starred, err := h.svc.ToggleStar(r.Context(), itemID)
	if err != nil {
		handleError(r.Context(), h.log, w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]bool{"starred": starred})
}

// Delete handles DELETE /v1/items/{id}.
func (h *ItemHandler) Delete(w http.ResponseWriter, r *http.Request) {
	itemID, ok := pathUUID(w, r, "id")
	if !ok {
		return
	}

	if err := h.svc.DeleteItem(r.Context(), itemID); err != nil {
		handleError(r.Context(), h.log, w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
