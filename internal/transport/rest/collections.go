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

// libraryService defines the minimal interface needed by CollectionHandler.
type libraryService interface {
	CreateCollection(ctx context.Context, input library.CreateCollectionInput) (domain.Collection, error)
	ListCollections(ctx context.Context) ([]domain.Collection, error)
	DeleteCollection(ctx context.Context, collectionID uuid.UUID) error
}

// statsService provides the read-only review views of a collection.
type statsService interface {
	CollectionStats(ctx context.Context, collectionID uuid.UUID) (domain.CollectionStats, error)
	DueItems(ctx context.Context, collectionID uuid.UUID) ([]domain.LearnableItem, error)
}

// CollectionHandler serves collection endpoints.
type CollectionHandler struct {
	svc   libraryService
	stats statsService
	log   *slog.Logger
}

// NewCollectionHandler creates a CollectionHandler.
func NewCollectionHandler(svc libraryService, stats statsService, logger *slog.Logger) *CollectionHandler {
	return &CollectionHandler{svc: svc, stats: stats, log: logger.With("handler", "collections")}
}

type createCollectionRequest struct {
	Name string `json:"name"`
}

type statsResponse struct {
	Total      int     `json:"total"`
	Mastered   int     `json:"mastered"`
	Learning   int     `json:"learning"`
	New        int     `json:"new"`
	AvgMastery float64 `json:"avgMastery"`
	DueCount   int     `json:"dueCount"`
}

// Create handles POST /v1/collections.
func (h *CollectionHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req createCollectionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	created, err := h.svc.CreateCollection(r.Context(), library.CreateCollectionInput{Name: req.Name})
	if err != nil {
		handleError(r.Context(), h.log, w, err)
		return
	}

	writeJSON(w, http.StatusCreated, toCollectionResponse(created))
}

// List handles GET /v1/collections.
func (h *CollectionHandler) List(w http.ResponseWriter, r *http.Request) {
	collections, err := h.svc.ListCollections(r.Context())
	if err != nil {
		handleError(r.Context(), h.log, w, err)
		return
	}

	resp := make([]collectionResponse, 0, len(collections))
	for _, c := range collections {
		resp = append(resp, toCollectionResponse(c))
	}

	writeJSON(w, http.StatusOK, resp)
}

// Delete handles DELETE /v1/collections/{id}. The collection is soft
// deleted; items are purged later by the retention job.
func (h *CollectionHandler) Delete(w http.ResponseWriter, r *http.Request) {
	collectionID, ok := pathUUID(w, r, "id")
	if !ok {
		return
	}

	if err := h.svc.DeleteCollection(r.Context(), collectionID); err != nil {
		handleError(r.Context(), h.log, w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// Stats handles GET /v1/collections/{id}/stats.
func (h *CollectionHandler) Stats(w http.ResponseWriter, r *http.Request) {
	collectionID, ok := pathUUID(w, r, "id")
	if !ok {
		return
	}

	stats, err := h.stats.CollectionStats(r.Context(), collectionID)
	if err != nil {
		handleError(r.Context(), h.log, w, err)
		return
	}

	writeJSON(w, http.StatusOK, statsResponse{
		Total:      stats.Total,
		Mastered:   stats.Mastered,
		Learning:   stats.Learning,
		New:        stats.New,
		AvgMastery: stats.AvgMastery,
		DueCount:   stats.DueCount,
	})
}

// Due handles GET /v1/collections/{id}/due.
func (h *CollectionHandler) Due(w http.ResponseWriter, r *http.Request) {
	collectionID, ok := pathUUID(w, r, "id")
	if !ok {
		return
	}

	items, err := h.stats.DueItems(r.Context(), collectionID)
	if err != nil {
		handleError(r.Context(), h.log, w, err)
		return
	}

	resp := make([]itemResponse, 0, len(items))
	for _, it := range items {
		resp = append(resp, toItemResponse(it))
	}

	writeJSON(w, http.StatusOK, resp)
}
