// AngelaMos | 2026
// authz.go

package authz

import (
	"fmt"

	"github.com/angelamos/workhaven/internal/core"
)

const RoleAdmin = "admin"

// Identity is the authenticated caller as seen by ownership checks.
type Identity struct {
	ID   string
	Role string
}

func (id Identity) IsAdmin() bool {
	return id.Role == RoleAdmin
}

func (id Identity) IsAnonymous() bool {
	return id.ID == ""
}

// Authorize allows a mutation when the caller owns the record or is an
// admin. Callers must resolve the record first so a missing record surfaces
// as not-found rather than forbidden.
func Authorize(ownerID string, id Identity) error {
	if id.IsAnonymous() {
		return fmt.Errorf("authorize: %w", core.ErrUnauthorized)
	}

	if id.ID == ownerID || id.IsAdmin() {
		return nil
	}

	return fmt.Errorf("authorize: %w", core.ErrForbidden)
}
