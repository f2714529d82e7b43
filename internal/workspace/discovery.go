// AngelaMos | 2026
// discovery.go

package workspace

import (
	"sort"
	"strings"
	"time"
)

// PropertyCriteria are the property-side discovery filters. Substring
// matches are case-insensitive; the rest are exact or lower bounds.
type PropertyCriteria struct {
	Address      string
	Neighborhood string
	MinSqft      int
	Parking      *bool
	Transit      *bool
}

// DiscoveryQuery is the full discovery request: workspace criteria pushed
// to the store, property criteria applied after the join, and an optional
// sort directive.
type DiscoveryQuery struct {
	Workspace Criteria
	Property  PropertyCriteria
	Sort      SortDirective
}

type SortDirective struct {
	Field      string
	Descending bool
}

// Sortable discovery fields. An unrecognized field leaves results in
// insertion order.
const (
	SortPrice  = "price"
	SortDate   = "date"
	SortRating = "rating"
	SortSeats  = "seats"
	SortSqft   = "sqft"
)

// ParseSort splits a directive like "price-desc" into field and direction.
// A bare field name sorts ascending.
func ParseSort(token string) SortDirective {
	token = strings.TrimSpace(token)
	if token == "" {
		return SortDirective{}
	}

	field := token
	descending := false

	if strings.HasSuffix(token, "-desc") {
		field = strings.TrimSuffix(token, "-desc")
		descending = true
	} else if strings.HasSuffix(token, "-asc") {
		field = strings.TrimSuffix(token, "-asc")
	}

	switch field {
	case SortPrice, SortDate, SortRating, SortSeats, SortSqft:
		return SortDirective{Field: field, Descending: descending}
	}

	return SortDirective{}
}

func matchesProperty(c PropertyCriteria, address, neighborhood string, sqft int, parking, transit bool) bool {
	if c.Address != "" &&
		!strings.Contains(
			strings.ToLower(address),
			strings.ToLower(c.Address),
		) {
		return false
	}

	if c.Neighborhood != "" &&
		!strings.Contains(
			strings.ToLower(neighborhood),
			strings.ToLower(c.Neighborhood),
		) {
		return false
	}

	if c.MinSqft > 0 && sqft < c.MinSqft {
		return false
	}

	if c.Parking != nil && parking != *c.Parking {
		return false
	}

	if c.Transit != nil && transit != *c.Transit {
		return false
	}

	return true
}

// sortResults orders discovery results in place. The sort is stable so ties
// keep insertion order, and a zero directive is a no-op.
func sortResults(results []DiscoveredWorkspace, directive SortDirective) {
	if directive.Field == "" {
		return
	}

	less := lessFunc(results, directive.Field)
	if less == nil {
		return
	}

	if directive.Descending {
		asc := less
		less = func(i, j int) bool { return asc(j, i) }
	}

	sort.SliceStable(results, less)
}

func lessFunc(results []DiscoveredWorkspace, field string) func(i, j int) bool {
	switch field {
	case SortPrice:
		return func(i, j int) bool {
			return results[i].Price < results[j].Price
		}
	case SortSeats:
		return func(i, j int) bool {
			return results[i].Seats < results[j].Seats
		}
	case SortSqft:
		return func(i, j int) bool {
			return results[i].Property.Sqft < results[j].Property.Sqft
		}
	case SortDate:
		return func(i, j int) bool {
			return availableKey(results[i].AvailableFrom).
				Before(availableKey(results[j].AvailableFrom))
		}
	case SortRating:
		// Unrated workspaces carry a zero average and sort below any
		// rated one ascending.
		return func(i, j int) bool {
			return results[i].Rating.Average < results[j].Rating.Average
		}
	}
	return nil
}

// availableKey treats a missing availability date as minus-infinity so
// undated workspaces sort before any dated one ascending.
func availableKey(t *time.Time) time.Time {
	if t == nil {
		return time.Time{}
	}
	return *t
}
