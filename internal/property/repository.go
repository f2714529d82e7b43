// AngelaMos | 2026
// repository.go

package property

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/angelamos/workhaven/internal/core"
)

type Repository interface {
	Create(ctx context.Context, property *Property) error
	GetByID(ctx context.Context, id string) (*Property, error)
	Update(ctx context.Context, property *Property) error
	SoftDelete(ctx context.Context, id string) error
	List(
		ctx context.Context,
		params ListPropertiesParams,
	) ([]Property, int, error)
	AddPhoto(ctx context.Context, propertyID, url string) error
	ListPhotos(ctx context.Context, propertyID string) ([]string, error)
}

type repository struct {
	db core.DBTX
}

func NewRepository(db core.DBTX) Repository {
	return &repository{db: db}
}

func (r *repository) Create(ctx context.Context, property *Property) error {
	query := `
		INSERT INTO properties (
			id, owner_id, address, neighborhood, sqft, parking, transit
		) VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING created_at, updated_at`

	err := r.db.GetContext(ctx, property, query,
		property.ID,
		property.OwnerID,
		property.Address,
		property.Neighborhood,
		property.Sqft,
		property.Parking,
		property.Transit,
	)
	if err != nil {
		return fmt.Errorf("create property: %w", err)
	}

	return nil
}

func (r *repository) GetByID(
	ctx context.Context,
	id string,
) (*Property, error) {
	query := `
		SELECT id, owner_id, address, neighborhood, sqft, parking, transit,
		       created_at, updated_at, deleted_at
		FROM properties
		WHERE id = $1 AND deleted_at IS NULL`

	var property Property
	err := r.db.GetContext(ctx, &property, query, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("get property: %w", core.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("get property: %w", err)
	}

	photos, err := r.ListPhotos(ctx, id)
	if err != nil {
		return nil, err
	}
	property.Photos = photos

	return &property, nil
}

func (r *repository) Update(ctx context.Context, property *Property) error {
	query := `
		UPDATE properties
		SET address = $2, neighborhood = $3, sqft = $4, parking = $5,
		    transit = $6, updated_at = NOW()
		WHERE id = $1 AND deleted_at IS NULL
		RETURNING updated_at`

	err := r.db.GetContext(ctx, &property.UpdatedAt, query,
		property.ID,
		property.Address,
		property.Neighborhood,
		property.Sqft,
		property.Parking,
		property.Transit,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return fmt.Errorf("update property: %w", core.ErrNotFound)
	}
	if err != nil {
		return fmt.Errorf("update property: %w", err)
	}

	return nil
}

func (r *repository) SoftDelete(ctx context.Context, id string) error {
	query := `
		UPDATE properties
		SET deleted_at = NOW(), updated_at = NOW()
		WHERE id = $1 AND deleted_at IS NULL`

	result, err := r.db.ExecContext(ctx, query, id)
	if err != nil {
		return fmt.Errorf("delete property: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete property: %w", err)
	}

	if rows == 0 {
		return fmt.Errorf("delete property: %w", core.ErrNotFound)
	}

	return nil
}

func (r *repository) List(
	ctx context.Context,
	params ListPropertiesParams,
) ([]Property, int, error) {
	params.Normalize()

	var conditions []string
	var args []any
	argIdx := 1

	conditions = append(conditions, "deleted_at IS NULL")

	if params.OwnerID != "" {
		conditions = append(conditions, fmt.Sprintf("owner_id = $%d", argIdx))
		args = append(args, params.OwnerID)
		argIdx++
	}

	whereClause := strings.Join(conditions, " AND ")

	countQuery := fmt.Sprintf(
		"SELECT COUNT(*) FROM properties WHERE %s",
		whereClause,
	)
	var total int
	if err := r.db.GetContext(ctx, &total, countQuery, args...); err != nil {
		return nil, 0, fmt.Errorf("count properties: %w", err)
	}

	query := fmt.Sprintf(`
		SELECT id, owner_id, address, neighborhood, sqft, parking, transit,
		       created_at, updated_at, deleted_at
		FROM properties
		WHERE %s
		ORDER BY created_at DESC
		LIMIT $%d OFFSET $%d`,
		whereClause, argIdx, argIdx+1)

	args = append(args, params.PageSize, params.Offset())

	var properties []Property
	if err := r.db.SelectContext(ctx, &properties, query, args...); err != nil {
		return nil, 0, fmt.Errorf("list properties: %w", err)
	}

	return properties, total, nil
}

// AddPhoto appends to the ordered photo list; position is assigned past the
// current maximum so insertion order is preserved.
func (r *repository) AddPhoto(
	ctx context.Context,
	propertyID, url string,
) error {
	query := `
		INSERT INTO property_photos (property_id, url, position)
		SELECT $1, $2, COALESCE(MAX(position), 0) + 1
		FROM property_photos
		WHERE property_id = $1`

	_, err := r.db.ExecContext(ctx, query, propertyID, url)
	if err != nil {
		return fmt.Errorf("add property photo: %w", err)
	}

	return nil
}

func (r *repository) ListPhotos(
	ctx context.Context,
	propertyID string,
) ([]string, error) {
	query := `
		SELECT url
		FROM property_photos
		WHERE property_id = $1
		ORDER BY position`

	var photos []string
	if err := r.db.SelectContext(ctx, &photos, query, propertyID); err != nil {
		return nil, fmt.Errorf("list property photos: %w", err)
	}

	return photos, nil
}
