// AngelaMos | 2026
// service.go

package property

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/angelamos/workhaven/internal/authz"
	"github.com/angelamos/workhaven/internal/core"
)

// WorkspaceCounter reports how many workspaces are attached to a property.
// A property with attached workspaces cannot be deleted.
type WorkspaceCounter interface {
	CountByProperty(ctx context.Context, propertyID string) (int, error)
}

type Service struct {
	repo       Repository
	workspaces WorkspaceCounter
}

func NewService(repo Repository, workspaces WorkspaceCounter) *Service {
	return &Service{repo: repo, workspaces: workspaces}
}

func (s *Service) Create(
	ctx context.Context,
	caller authz.Identity,
	req CreatePropertyRequest,
) (*Property, error) {
	if caller.IsAnonymous() {
		return nil, fmt.Errorf("create property: %w", core.ErrUnauthorized)
	}

	property := &Property{
		ID:           uuid.New().String(),
		OwnerID:      caller.ID,
		Address:      req.Address,
		Neighborhood: req.Neighborhood,
		Sqft:         req.Sqft,
		Parking:      req.Parking,
		Transit:      req.Transit,
	}

	if err := s.repo.Create(ctx, property); err != nil {
		return nil, err
	}

	return property, nil
}

func (s *Service) Get(ctx context.Context, id string) (*Property, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *Service) Update(
	ctx context.Context,
	caller authz.Identity,
	id string,
	req UpdatePropertyRequest,
) (*Property, error) {
	property, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := authz.Authorize(property.OwnerID, caller); err != nil {
		return nil, err
	}

	if req.Address != nil {
		property.Address = *req.Address
	}
	if req.Neighborhood != nil {
		property.Neighborhood = *req.Neighborhood
	}
	if req.Sqft != nil {
		property.Sqft = *req.Sqft
	}
	if req.Parking != nil {
		property.Parking = *req.Parking
	}
	if req.Transit != nil {
		property.Transit = *req.Transit
	}

	if err := s.repo.Update(ctx, property); err != nil {
		return nil, err
	}

	return property, nil
}

// Delete removes a property unless workspaces still reference it.
func (s *Service) Delete(
	ctx context.Context,
	caller authz.Identity,
	id string,
) error {
	property, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return err
	}

	if err := authz.Authorize(property.OwnerID, caller); err != nil {
		return err
	}

	count, err := s.workspaces.CountByProperty(ctx, id)
	if err != nil {
		return fmt.Errorf("count workspaces: %w", err)
	}

	if count > 0 {
		return fmt.Errorf(
			"delete property: %d workspaces still attached: %w",
			count,
			core.ErrInvalidInput,
		)
	}

	return s.repo.SoftDelete(ctx, id)
}

func (s *Service) AddPhoto(
	ctx context.Context,
	caller authz.Identity,
	id, url string,
) (*Property, error) {
	property, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := authz.Authorize(property.OwnerID, caller); err != nil {
		return nil, err
	}

	if err := s.repo.AddPhoto(ctx, id, url); err != nil {
		return nil, err
	}

	property.Photos = append(property.Photos, url)

	return property, nil
}

func (s *Service) List(
	ctx context.Context,
	params ListPropertiesParams,
) ([]Property, int, error) {
	return s.repo.List(ctx, params)
}
