// AngelaMos | 2026
// entity.go

package property

import (
	"time"
)

// Property is a physical building that hosts one or more workspaces.
type Property struct {
	ID           string     `db:"id"`
	OwnerID      string     `db:"owner_id"`
	Address      string     `db:"address"`
	Neighborhood string     `db:"neighborhood"`
	Sqft         int        `db:"sqft"`
	Parking      bool       `db:"parking"`
	Transit      bool       `db:"transit"`
	Photos       []string   `db:"-"`
	CreatedAt    time.Time  `db:"created_at"`
	UpdatedAt    time.Time  `db:"updated_at"`
	DeletedAt    *time.Time `db:"deleted_at"`
}

func (p *Property) IsDeleted() bool {
	return p.DeletedAt != nil
}
