// AngelaMos | 2026
// repository.go

package workspace

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/angelamos/workhaven/internal/core"
)

// Criteria holds the workspace-side discovery filters, pushed down to SQL.
// Property-side filters are applied in memory after the join.
type Criteria struct {
	OwnerID       string
	Type          string
	MinSeats      int
	MaxPrice      float64
	Term          string
	Smoking       *bool
	AvailableFrom *time.Time
}

type Repository interface {
	Create(ctx context.Context, workspace *Workspace) error
	GetByID(ctx context.Context, id string) (*Workspace, error)
	Update(ctx context.Context, workspace *Workspace) error
	SoftDelete(ctx context.Context, id string) error
	Find(ctx context.Context, criteria Criteria) ([]Workspace, error)
	CountByProperty(ctx context.Context, propertyID string) (int, error)
	AddPhoto(ctx context.Context, workspaceID, url string) error
	ListPhotos(ctx context.Context, workspaceID string) ([]string, error)
	UpsertRating(ctx context.Context, rating *Rating) error
	ListRatings(ctx context.Context, workspaceID string) ([]Rating, error)
	AppendReview(ctx context.Context, review *Review) error
	ListReviews(ctx context.Context, workspaceID string) ([]Review, error)
}

type repository struct {
	db core.DBTX
}

func NewRepository(db core.DBTX) Repository {
	return &repository{db: db}
}

func (r *repository) Create(ctx context.Context, workspace *Workspace) error {
	query := `
		INSERT INTO workspaces (
			id, property_id, owner_id, type, seats, price, term,
			smoking, available_from
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING created_at, updated_at`

	err := r.db.GetContext(ctx, workspace, query,
		workspace.ID,
		workspace.PropertyID,
		workspace.OwnerID,
		workspace.Type,
		workspace.Seats,
		workspace.Price,
		workspace.Term,
		workspace.Smoking,
		workspace.AvailableFrom,
	)
	if err != nil {
		return fmt.Errorf("create workspace: %w", err)
	}

	return nil
}

func (r *repository) GetByID(
	ctx context.Context,
	id string,
) (*Workspace, error) {
	query := `
		SELECT id, property_id, owner_id, type, seats, price, term, smoking,
		       available_from, created_at, updated_at, deleted_at
		FROM workspaces
		WHERE id = $1 AND deleted_at IS NULL`

	var workspace Workspace
	err := r.db.GetContext(ctx, &workspace, query, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("get workspace: %w", core.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("get workspace: %w", err)
	}

	photos, err := r.ListPhotos(ctx, id)
	if err != nil {
		return nil, err
	}
	workspace.Photos = photos

	return &workspace, nil
}

func (r *repository) Update(ctx context.Context, workspace *Workspace) error {
	query := `
		UPDATE workspaces
		SET type = $2, seats = $3, price = $4, term = $5, smoking = $6,
		    available_from = $7, updated_at = NOW()
		WHERE id = $1 AND deleted_at IS NULL
		RETURNING updated_at`

	err := r.db.GetContext(ctx, &workspace.UpdatedAt, query,
		workspace.ID,
		workspace.Type,
		workspace.Seats,
		workspace.Price,
		workspace.Term,
		workspace.Smoking,
		workspace.AvailableFrom,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return fmt.Errorf("update workspace: %w", core.ErrNotFound)
	}
	if err != nil {
		return fmt.Errorf("update workspace: %w", err)
	}

	return nil
}

func (r *repository) SoftDelete(ctx context.Context, id string) error {
	query := `
		UPDATE workspaces
		SET deleted_at = NOW(), updated_at = NOW()
		WHERE id = $1 AND deleted_at IS NULL`

	result, err := r.db.ExecContext(ctx, query, id)
	if err != nil {
		return fmt.Errorf("delete workspace: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete workspace: %w", err)
	}

	if rows == 0 {
		return fmt.Errorf("delete workspace: %w", core.ErrNotFound)
	}

	return nil
}

// Find applies workspace-side criteria as a conjunction. Ordering is fixed
// to insertion order so in-memory sorting downstream stays stable.
func (r *repository) Find(
	ctx context.Context,
	criteria Criteria,
) ([]Workspace, error) {
	var conditions []string
	var args []any
	argIdx := 1

	conditions = append(conditions, "deleted_at IS NULL")

	if criteria.OwnerID != "" {
		conditions = append(conditions, fmt.Sprintf("owner_id = $%d", argIdx))
		args = append(args, criteria.OwnerID)
		argIdx++
	}

	if criteria.Type != "" {
		conditions = append(conditions, fmt.Sprintf("type = $%d", argIdx))
		args = append(args, criteria.Type)
		argIdx++
	}

	if criteria.MinSeats > 0 {
		conditions = append(conditions, fmt.Sprintf("seats >= $%d", argIdx))
		args = append(args, criteria.MinSeats)
		argIdx++
	}

	if criteria.MaxPrice > 0 {
		conditions = append(conditions, fmt.Sprintf("price <= $%d", argIdx))
		args = append(args, criteria.MaxPrice)
		argIdx++
	}

	if criteria.Term != "" {
		conditions = append(conditions, fmt.Sprintf("term = $%d", argIdx))
		args = append(args, criteria.Term)
		argIdx++
	}

	if criteria.Smoking != nil {
		conditions = append(conditions, fmt.Sprintf("smoking = $%d", argIdx))
		args = append(args, *criteria.Smoking)
		argIdx++
	}

	if criteria.AvailableFrom != nil {
		conditions = append(conditions, fmt.Sprintf(
			"available_from IS NOT NULL AND available_from >= $%d", argIdx))
		args = append(args, *criteria.AvailableFrom)
		argIdx++
	}

	query := fmt.Sprintf(`
		SELECT id, property_id, owner_id, type, seats, price, term, smoking,
		       available_from, created_at, updated_at, deleted_at
		FROM workspaces
		WHERE %s
		ORDER BY created_at, id`,
		strings.Join(conditions, " AND "))

	var workspaces []Workspace
	if err := r.db.SelectContext(ctx, &workspaces, query, args...); err != nil {
		return nil, fmt.Errorf("find workspaces: %w", err)
	}

	return workspaces, nil
}

func (r *repository) CountByProperty(
	ctx context.Context,
	propertyID string,
) (int, error) {
	query := `
		SELECT COUNT(*)
		FROM workspaces
		WHERE property_id = $1 AND deleted_at IS NULL`

	var count int
	if err := r.db.GetContext(ctx, &count, query, propertyID); err != nil {
		return 0, fmt.Errorf("count workspaces: %w", err)
	}

	return count, nil
}

func (r *repository) AddPhoto(
	ctx context.Context,
	workspaceID, url string,
) error {
	query := `
		INSERT INTO workspace_photos (workspace_id, url, position)
		SELECT $1, $2, COALESCE(MAX(position), 0) + 1
		FROM workspace_photos
		WHERE workspace_id = $1`

	_, err := r.db.ExecContext(ctx, query, workspaceID, url)
	if err != nil {
		return fmt.Errorf("add workspace photo: %w", err)
	}

	return nil
}

func (r *repository) ListPhotos(
	ctx context.Context,
	workspaceID string,
) ([]string, error) {
	query := `
		SELECT url
		FROM workspace_photos
		WHERE workspace_id = $1
		ORDER BY position`

	var photos []string
	if err := r.db.SelectContext(ctx, &photos, query, workspaceID); err != nil {
		return nil, fmt.Errorf("list workspace photos: %w", err)
	}

	return photos, nil
}

// UpsertRating applies the one-rating-per-rater rule in a single statement
// so a concurrent repeat from the same rater cannot duplicate.
func (r *repository) UpsertRating(ctx context.Context, rating *Rating) error {
	query := `
		INSERT INTO workspace_ratings (workspace_id, rater_id, value)
		VALUES ($1, $2, $3)
		ON CONFLICT (workspace_id, rater_id)
		DO UPDATE SET value = EXCLUDED.value, updated_at = NOW()
		RETURNING created_at, updated_at`

	err := r.db.GetContext(ctx, rating, query,
		rating.WorkspaceID,
		rating.RaterID,
		rating.Value,
	)
	if err != nil {
		return fmt.Errorf("upsert workspace rating: %w", err)
	}

	return nil
}

func (r *repository) ListRatings(
	ctx context.Context,
	workspaceID string,
) ([]Rating, error) {
	query := `
		SELECT workspace_id, rater_id, value, created_at, updated_at
		FROM workspace_ratings
		WHERE workspace_id = $1
		ORDER BY created_at`

	var ratings []Rating
	if err := r.db.SelectContext(ctx, &ratings, query, workspaceID); err != nil {
		return nil, fmt.Errorf("list workspace ratings: %w", err)
	}

	return ratings, nil
}

func (r *repository) AppendReview(ctx context.Context, review *Review) error {
	query := `
		INSERT INTO workspace_reviews (id, workspace_id, author_id, body)
		VALUES ($1, $2, $3, $4)
		RETURNING created_at`

	err := r.db.GetContext(ctx, &review.CreatedAt, query,
		review.ID,
		review.WorkspaceID,
		review.AuthorID,
		review.Body,
	)
	if err != nil {
		return fmt.Errorf("append workspace review: %w", err)
	}

	return nil
}

func (r *repository) ListReviews(
	ctx context.Context,
	workspaceID string,
) ([]Review, error) {
	query := `
		SELECT id, workspace_id, author_id, body, created_at
		FROM workspace_reviews
		WHERE workspace_id = $1
		ORDER BY created_at, id`

	var reviews []Review
	if err := r.db.SelectContext(ctx, &reviews, query, workspaceID); err != nil {
		return nil, fmt.Errorf("list workspace reviews: %w", err)
	}

	return reviews, nil
}
