// AngelaMos | 2026
// dto.go

package workspace

import (
	"time"

	"github.com/angelamos/workhaven/internal/property"
)

type CreateWorkspaceRequest struct {
	PropertyID    string     `json:"property_id"    validate:"required,uuid"`
	Type          string     `json:"type"           validate:"required,oneof=desk office meeting event"`
	Seats         int        `json:"seats"          validate:"required,gt=0"`
	Price         float64    `json:"price"          validate:"required,gt=0"`
	Term          string     `json:"term"           validate:"required,oneof=hour day week month"`
	Smoking       bool       `json:"smoking"`
	AvailableFrom *time.Time `json:"available_from"`
}

type UpdateWorkspaceRequest struct {
	Type          *string    `json:"type"           validate:"omitempty,oneof=desk office meeting event"`
	Seats         *int       `json:"seats"          validate:"omitempty,gt=0"`
	Price         *float64   `json:"price"          validate:"omitempty,gt=0"`
	Term          *string    `json:"term"           validate:"omitempty,oneof=hour day week month"`
	Smoking       *bool      `json:"smoking"`
	AvailableFrom *time.Time `json:"available_from"`
}

type AddPhotoRequest struct {
	URL string `json:"url" validate:"required,url,max=2048"`
}

type RateRequest struct {
	Value int `json:"value" validate:"required,min=1,max=5"`
}

type ReviewRequest struct {
	Body string `json:"body" validate:"required,min=1,max=2000"`
}

type WorkspaceResponse struct {
	ID            string     `json:"id"`
	PropertyID    string     `json:"property_id"`
	OwnerID       string     `json:"owner_id"`
	Type          string     `json:"type"`
	Seats         int        `json:"seats"`
	Price         float64    `json:"price"`
	Term          string     `json:"term"`
	Smoking       bool       `json:"smoking"`
	AvailableFrom *time.Time `json:"available_from,omitempty"`
	Photos        []string   `json:"photos"`
	CreatedAt     time.Time  `json:"created_at"`
	UpdatedAt     time.Time  `json:"updated_at"`
}

// DiscoveredWorkspace is the discovery projection: the workspace joined to
// its property plus the current rating summary.
type DiscoveredWorkspace struct {
	WorkspaceResponse
	Property property.PropertyResponse `json:"property"`
	Rating   RatingSummary             `json:"rating"`
}

type ReviewResponse struct {
	ID          string    `json:"id"`
	WorkspaceID string    `json:"workspace_id"`
	AuthorID    string    `json:"author_id"`
	Body        string    `json:"body"`
	CreatedAt   time.Time `json:"created_at"`
}

func ToWorkspaceResponse(w *Workspace) WorkspaceResponse {
	photos := w.Photos
	if photos == nil {
		photos = []string{}
	}

	return WorkspaceResponse{
		ID:            w.ID,
		PropertyID:    w.PropertyID,
		OwnerID:       w.OwnerID,
		Type:          w.Type,
		Seats:         w.Seats,
		Price:         w.Price,
		Term:          w.Term,
		Smoking:       w.Smoking,
		AvailableFrom: w.AvailableFrom,
		Photos:        photos,
		CreatedAt:     w.CreatedAt,
		UpdatedAt:     w.UpdatedAt,
	}
}

func ToReviewResponse(r *Review) ReviewResponse {
	return ReviewResponse{
		ID:          r.ID,
		WorkspaceID: r.WorkspaceID,
		AuthorID:    r.AuthorID,
		Body:        r.Body,
		CreatedAt:   r.CreatedAt,
	}
}

func ToReviewResponseList(reviews []Review) []ReviewResponse {
	responses := make([]ReviewResponse, 0, len(reviews))
	for i := range reviews {
		responses = append(responses, ToReviewResponse(&reviews[i]))
	}
	return responses
}
