// AngelaMos | 2026
// repository.go

package admin

import (
	"context"
	"fmt"

	"github.com/angelamos/workhaven/internal/core"
)

// Repository backs the marketplace dashboard with aggregate counts.
type Repository struct {
	db core.DBTX
}

func NewRepository(db core.DBTX) *Repository {
	return &Repository{db: db}
}

func (r *Repository) CountUsers(ctx context.Context) (int, error) {
	return r.count(ctx, "users")
}

func (r *Repository) CountProperties(ctx context.Context) (int, error) {
	return r.count(ctx, "properties")
}

func (r *Repository) CountWorkspaces(ctx context.Context) (int, error) {
	return r.count(ctx, "workspaces")
}

func (r *Repository) count(ctx context.Context, table string) (int, error) {
	// table names come from the fixed callers above, never user input
	query := fmt.Sprintf(
		"SELECT COUNT(*) FROM %s WHERE deleted_at IS NULL",
		table,
	)

	var count int
	if err := r.db.GetContext(ctx, &count, query); err != nil {
		return 0, fmt.Errorf("count %s: %w", table, err)
	}

	return count, nil
}

var _ MarketplaceCounter = (*Repository)(nil)
