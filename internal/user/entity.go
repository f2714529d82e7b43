// AngelaMos | 2026
// entity.go

package user

import (
	"time"
)

type User struct {
	ID           string     `db:"id"`
	Email        string     `db:"email"`
	PasswordHash string     `db:"password_hash"`
	Name         string     `db:"name"`
	Phone        string     `db:"phone"`
	Role         string     `db:"role"`
	TokenVersion int        `db:"token_version"`
	CreatedAt    time.Time  `db:"created_at"`
	UpdatedAt    time.Time  `db:"updated_at"`
	DeletedAt    *time.Time `db:"deleted_at"`
}

func (u *User) IsDeleted() bool {
	return u.DeletedAt != nil
}

func (u *User) IsAdmin() bool {
	return u.Role == RoleAdmin
}

func (u *User) IsOwner() bool {
	return u.Role == RoleOwner
}

const (
	RoleOwner    = "owner"
	RoleSeeker   = "seeker"
	RoleCoworker = "coworker"
	RoleAdmin    = "admin"
)

func ValidRole(role string) bool {
	switch role {
	case RoleOwner, RoleSeeker, RoleCoworker, RoleAdmin:
		return true
	}
	return false
}

// OwnerRating is a 1-5 score given to an owner account. At most one entry
// per (user, rater); a repeat submission replaces the value.
type OwnerRating struct {
	UserID    string    `db:"user_id"`
	RaterID   string    `db:"rater_id"`
	Value     int       `db:"value"`
	CreatedAt time.Time `db:"created_at"`
	UpdatedAt time.Time `db:"updated_at"`
}
