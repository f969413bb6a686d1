package rest

import (
	"time"

	"github.com/ableukhov/linguadeck-backend/internal/domain"
	"github.com/ableukhov/linguadeck-backend/internal/service/review"
)

type itemResponse struct {
	ID             string     `json:"id"`
	CollectionID   string     `json:"collectionId"`
	Kind           string     `json:"kind"`
	Front          string     `json:"front"`
	Back           string     `json:"back"`
	MasteryLevel   int        `json:"masteryLevel"`
	Category       string     `json:"category"`
	LastReviewedAt *time.Time `json:"lastReviewedAt,omitempty"`
	NextReviewAt   *time.Time `json:"nextReviewAt,omitempty"`
	Starred        bool       `json:"starred"`
}

func toItemResponse(item domain.LearnableItem) itemResponse {
	return itemResponse{
		ID:             item.ID.String(),
		CollectionID:   item.CollectionID.String(),
		Kind:           item.Kind.String(),
		Front:          item.Front,
		Back:           item.Back,
		MasteryLevel:   item.MasteryLevel,
		Category:       item.Category().String(),
		LastReviewedAt: item.LastReviewedAt,
		NextReviewAt:   item.NextReviewAt,
		Starred:        item.Starred,
	}
}

type collectionResponse struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"createdAt"`
}

func toCollectionResponse(c domain.Collection) collectionResponse {
	return collectionResponse{
		ID:        c.ID.String(),
		Name:      c.Name,
		CreatedAt: c.CreatedAt,
	}
}

type sessionResponse struct {
	SessionID string        `json:"sessionId"`
	State     string        `json:"state"`
	Total     int           `json:"total"`
	Item      *itemResponse `json:"item,omitempty"`
}

func toSessionResponse(sess *review.Session) sessionResponse {
	resp := sessionResponse{
		SessionID: sess.ID.String(),
		State:     sess.State().String(),
		Total:     sess.Len(),
	}
	if cur, err := sess.Current(); err == nil {
		item := toItemResponse(cur)
		resp.Item = &item
	}
	return resp
}

type summaryResponse struct {
	Positive   int      `json:"positive"`
	Negative   int      `json:"negative"`
	Percentage int      `json:"percentage"`
	FollowUp   []string `json:"followUp,omitempty"`
}

func toSummaryResponse(s review.Summary) summaryResponse {
	resp := summaryResponse{
		Positive:   s.Positive,
		Negative:   s.Negative,
		Percentage: s.Percentage,
	}
	for _, id := range s.FollowUp {
		resp.FollowUp = append(resp.FollowUp, id.String())
	}
	return resp
}
