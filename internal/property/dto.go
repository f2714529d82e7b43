// AngelaMos | 2026
// dto.go

package property

import (
	"time"
)

type CreatePropertyRequest struct {
	Address      string `json:"address"      validate:"required,min=1,max=255"`
	Neighborhood string `json:"neighborhood" validate:"required,min=1,max=100"`
	Sqft         int    `json:"sqft"         validate:"required,gt=0"`
	Parking      bool   `json:"parking"`
	Transit      bool   `json:"transit"`
}

type UpdatePropertyRequest struct {
	Address      *string `json:"address"      validate:"omitempty,min=1,max=255"`
	Neighborhood *string `json:"neighborhood" validate:"omitempty,min=1,max=100"`
	Sqft         *int    `json:"sqft"         validate:"omitempty,gt=0"`
	Parking      *bool   `json:"parking"`
	Transit      *bool   `json:"transit"`
}

type AddPhotoRequest struct {
	URL string `json:"url" validate:"required,url,max=2048"`
}

type PropertyResponse struct {
	ID           string    `json:"id"`
	OwnerID      string    `json:"owner_id"`
	Address      string    `json:"address"`
	Neighborhood string    `json:"neighborhood"`
	Sqft         int       `json:"sqft"`
	Parking      bool      `json:"parking"`
	Transit      bool      `json:"transit"`
	Photos       []string  `json:"photos"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

type ListPropertiesParams struct {
	Page     int
	PageSize int
	OwnerID  string
}

func (p *ListPropertiesParams) Normalize() {
	if p.Page < 1 {
		p.Page = 1
	}
	if p.PageSize < 1 || p.PageSize > 100 {
		p.PageSize = 20
	}
}

func (p ListPropertiesParams) Offset() int {
	return (p.Page - 1) * p.PageSize
}

func ToPropertyResponse(p *Property) PropertyResponse {
	photos := p.Photos
	if photos == nil {
		photos = []string{}
	}

	return PropertyResponse{
		ID:           p.ID,
		OwnerID:      p.OwnerID,
		Address:      p.Address,
		Neighborhood: p.Neighborhood,
		Sqft:         p.Sqft,
		Parking:      p.Parking,
		Transit:      p.Transit,
		Photos:       photos,
		CreatedAt:    p.CreatedAt,
		UpdatedAt:    p.UpdatedAt,
	}
}

func ToPropertyResponseList(properties []Property) []PropertyResponse {
	responses := make([]PropertyResponse, 0, len(properties))
	for i := range properties {
		responses = append(responses, ToPropertyResponse(&properties[i]))
	}
	return responses
}
