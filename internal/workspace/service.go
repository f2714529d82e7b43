// AngelaMos | 2026
// service.go

package workspace

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/google/uuid"

	"github.com/angelamos/workhaven/internal/authz"
	"github.com/angelamos/workhaven/internal/core"
	"github.com/angelamos/workhaven/internal/property"
)

// PropertyResolver looks up the property a workspace belongs to.
type PropertyResolver interface {
	Get(ctx context.Context, id string) (*property.Property, error)
}

type Service struct {
	repo       Repository
	properties PropertyResolver
	logger     *slog.Logger
}

func NewService(
	repo Repository,
	properties PropertyResolver,
	logger *slog.Logger,
) *Service {
	return &Service{
		repo:       repo,
		properties: properties,
		logger:     logger,
	}
}

// Create attaches a workspace to a property the caller owns. Ownership is
// copied from the property so later checks need no lookup.
func (s *Service) Create(
	ctx context.Context,
	caller authz.Identity,
	req CreateWorkspaceRequest,
) (*Workspace, error) {
	prop, err := s.properties.Get(ctx, req.PropertyID)
	if err != nil {
		return nil, err
	}

	if err := authz.Authorize(prop.OwnerID, caller); err != nil {
		return nil, err
	}

	workspace := &Workspace{
		ID:            uuid.New().String(),
		PropertyID:    prop.ID,
		OwnerID:       prop.OwnerID,
		Type:          req.Type,
		Seats:         req.Seats,
		Price:         req.Price,
		Term:          req.Term,
		Smoking:       req.Smoking,
		AvailableFrom: req.AvailableFrom,
	}

	if err := s.repo.Create(ctx, workspace); err != nil {
		return nil, err
	}

	return workspace, nil
}

func (s *Service) Get(
	ctx context.Context,
	id string,
) (*DiscoveredWorkspace, error) {
	workspace, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	prop, err := s.properties.Get(ctx, workspace.PropertyID)
	if err != nil {
		return nil, err
	}

	ratings, err := s.repo.ListRatings(ctx, id)
	if err != nil {
		return nil, err
	}

	return &DiscoveredWorkspace{
		WorkspaceResponse: ToWorkspaceResponse(workspace),
		Property:          property.ToPropertyResponse(prop),
		Rating:            Summarize(ratings),
	}, nil
}

func (s *Service) Update(
	ctx context.Context,
	caller authz.Identity,
	id string,
	req UpdateWorkspaceRequest,
) (*Workspace, error) {
	workspace, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := authz.Authorize(workspace.OwnerID, caller); err != nil {
		return nil, err
	}

	if req.Type != nil {
		workspace.Type = *req.Type
	}
	if req.Seats != nil {
		workspace.Seats = *req.Seats
	}
	if req.Price != nil {
		workspace.Price = *req.Price
	}
	if req.Term != nil {
		workspace.Term = *req.Term
	}
	if req.Smoking != nil {
		workspace.Smoking = *req.Smoking
	}
	if req.AvailableFrom != nil {
		workspace.AvailableFrom = req.AvailableFrom
	}

	if err := s.repo.Update(ctx, workspace); err != nil {
		return nil, err
	}

	return workspace, nil
}

func (s *Service) Delete(
	ctx context.Context,
	caller authz.Identity,
	id string,
) error {
	workspace, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return err
	}

	if err := authz.Authorize(workspace.OwnerID, caller); err != nil {
		return err
	}

	return s.repo.SoftDelete(ctx, id)
}

func (s *Service) AddPhoto(
	ctx context.Context,
	caller authz.Identity,
	id, url string,
) (*Workspace, error) {
	workspace, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := authz.Authorize(workspace.OwnerID, caller); err != nil {
		return nil, err
	}

	if err := s.repo.AddPhoto(ctx, id, url); err != nil {
		return nil, err
	}

	workspace.Photos = append(workspace.Photos, url)

	return workspace, nil
}

// Rate records a 1-5 score for a workspace. Repeats from the same rater
// replace the previous value; listing owners cannot rate their own listing.
func (s *Service) Rate(
	ctx context.Context,
	raterID, workspaceID string,
	value int,
) (RatingSummary, error) {
	if raterID == "" {
		return RatingSummary{}, fmt.Errorf(
			"rate workspace: %w",
			core.ErrUnauthorized,
		)
	}

	if value < 1 || value > 5 {
		return RatingSummary{}, fmt.Errorf(
			"rate workspace: value must be between 1 and 5: %w",
			core.ErrInvalidInput,
		)
	}

	workspace, err := s.repo.GetByID(ctx, workspaceID)
	if err != nil {
		return RatingSummary{}, err
	}

	if workspace.OwnerID == raterID {
		return RatingSummary{}, fmt.Errorf(
			"rate workspace: cannot rate your own listing: %w",
			core.ErrForbidden,
		)
	}

	rating := &Rating{
		WorkspaceID: workspaceID,
		RaterID:     raterID,
		Value:       value,
	}

	if err := s.repo.UpsertRating(ctx, rating); err != nil {
		return RatingSummary{}, err
	}

	ratings, err := s.repo.ListRatings(ctx, workspaceID)
	if err != nil {
		return RatingSummary{}, err
	}

	return Summarize(ratings), nil
}

// Review appends a comment to a workspace. Reviews are never edited or
// removed; listing owners cannot review their own listing.
func (s *Service) Review(
	ctx context.Context,
	authorID, workspaceID, body string,
) (*Review, error) {
	if authorID == "" {
		return nil, fmt.Errorf("review workspace: %w", core.ErrUnauthorized)
	}

	body = strings.TrimSpace(body)
	if body == "" {
		return nil, fmt.Errorf(
			"review workspace: body must not be empty: %w",
			core.ErrInvalidInput,
		)
	}

	workspace, err := s.repo.GetByID(ctx, workspaceID)
	if err != nil {
		return nil, err
	}

	if workspace.OwnerID == authorID {
		return nil, fmt.Errorf(
			"review workspace: cannot review your own listing: %w",
			core.ErrForbidden,
		)
	}

	review := &Review{
		ID:          uuid.New().String(),
		WorkspaceID: workspaceID,
		AuthorID:    authorID,
		Body:        body,
	}

	if err := s.repo.AppendReview(ctx, review); err != nil {
		return nil, err
	}

	return review, nil
}

func (s *Service) ListReviews(
	ctx context.Context,
	workspaceID string,
) ([]Review, error) {
	if _, err := s.repo.GetByID(ctx, workspaceID); err != nil {
		return nil, err
	}

	return s.repo.ListReviews(ctx, workspaceID)
}

// Discover runs the two-stage discovery query: workspace criteria in the
// store, then the property join with property criteria and the rating
// summary, then the optional sort. All filters are a single conjunction.
func (s *Service) Discover(
	ctx context.Context,
	query DiscoveryQuery,
) ([]DiscoveredWorkspace, error) {
	candidates, err := s.repo.Find(ctx, query.Workspace)
	if err != nil {
		return nil, err
	}

	results := make([]DiscoveredWorkspace, 0, len(candidates))
	propCache := make(map[string]*property.Property)

	for i := range candidates {
		w := &candidates[i]

		prop, ok := propCache[w.PropertyID]
		if !ok {
			prop, err = s.properties.Get(ctx, w.PropertyID)
			if errors.Is(err, core.ErrNotFound) {
				// Dangling property reference; skip rather than fail the
				// whole query.
				s.logger.Warn("workspace references missing property",
					"workspace_id", w.ID,
					"property_id", w.PropertyID,
				)
				propCache[w.PropertyID] = nil
				continue
			}
			if err != nil {
				return nil, err
			}
			propCache[w.PropertyID] = prop
		}
		if prop == nil {
			continue
		}

		if !matchesProperty(
			query.Property,
			prop.Address,
			prop.Neighborhood,
			prop.Sqft,
			prop.Parking,
			prop.Transit,
		) {
			continue
		}

		ratings, err := s.repo.ListRatings(ctx, w.ID)
		if err != nil {
			return nil, err
		}

		photos, err := s.repo.ListPhotos(ctx, w.ID)
		if err != nil {
			return nil, err
		}
		w.Photos = photos

		results = append(results, DiscoveredWorkspace{
			WorkspaceResponse: ToWorkspaceResponse(w),
			Property:          property.ToPropertyResponse(prop),
			Rating:            Summarize(ratings),
		})
	}

	sortResults(results, query.Sort)

	return results, nil
}

// CountByProperty satisfies the property package's dependency check for
// blocked deletes.
func (s *Service) CountByProperty(
	ctx context.Context,
	propertyID string,
) (int, error) {
	return s.repo.CountByProperty(ctx, propertyID)
}
