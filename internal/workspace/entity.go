// AngelaMos | 2026
// entity.go

package workspace

import (
	"math"
	"time"
)

const (
	TypeDesk    = "desk"
	TypeOffice  = "office"
	TypeMeeting = "meeting"
	TypeEvent   = "event"
)

const (
	TermHour  = "hour"
	TermDay   = "day"
	TermWeek  = "week"
	TermMonth = "month"
)

// Workspace is a rentable unit inside a property. OwnerID is denormalized
// from the property at creation so ownership checks need no join.
type Workspace struct {
	ID            string     `db:"id"`
	PropertyID    string     `db:"property_id"`
	OwnerID       string     `db:"owner_id"`
	Type          string     `db:"type"`
	Seats         int        `db:"seats"`
	Price         float64    `db:"price"`
	Term          string     `db:"term"`
	Smoking       bool       `db:"smoking"`
	AvailableFrom *time.Time `db:"available_from"`
	Photos        []string   `db:"-"`
	CreatedAt     time.Time  `db:"created_at"`
	UpdatedAt     time.Time  `db:"updated_at"`
	DeletedAt     *time.Time `db:"deleted_at"`
}

func (w *Workspace) IsDeleted() bool {
	return w.DeletedAt != nil
}

// Rating is one rater's current score for a workspace. A repeat rating from
// the same rater replaces the previous row.
type Rating struct {
	WorkspaceID string    `db:"workspace_id"`
	RaterID     string    `db:"rater_id"`
	Value       int       `db:"value"`
	CreatedAt   time.Time `db:"created_at"`
	UpdatedAt   time.Time `db:"updated_at"`
}

// Review is an append-only comment; reviews are never edited or removed.
type Review struct {
	ID          string    `db:"id"`
	WorkspaceID string    `db:"workspace_id"`
	AuthorID    string    `db:"author_id"`
	Body        string    `db:"body"`
	CreatedAt   time.Time `db:"created_at"`
}

type RatingSummary struct {
	Average float64 `json:"average"`
	Count   int     `json:"count"`
}

// Summarize reduces ratings to a mean rounded to two decimals. No ratings
// yields the zero summary, not NaN.
func Summarize(ratings []Rating) RatingSummary {
	if len(ratings) == 0 {
		return RatingSummary{}
	}

	sum := 0
	for _, r := range ratings {
		sum += r.Value
	}

	avg := float64(sum) / float64(len(ratings))
	return RatingSummary{
		Average: math.Round(avg*100) / 100,
		Count:   len(ratings),
	}
}

func ValidType(t string) bool {
	switch t {
	case TypeDesk, TypeOffice, TypeMeeting, TypeEvent:
		return true
	}
	return false
}

func ValidTerm(t string) bool {
	switch t {
	case TermHour, TermDay, TermWeek, TermMonth:
		return true
	}
	return false
}
