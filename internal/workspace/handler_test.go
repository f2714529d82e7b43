// AngelaMos | 2026
// handler_test.go

package workspace

import (
	"net/url"
	"testing"
	"time"
)

func TestParseDiscoveryQuery(t *testing.T) {
	t.Run("full query", func(t *testing.T) {
		values := url.Values{}
		values.Set("type", "desk")
		values.Set("term", "day")
		values.Set("min_seats", "2")
		values.Set("max_price", "50.5")
		values.Set("smoking", "false")
		values.Set("available_from", "2026-03-01")
		values.Set("address", "main")
		values.Set("neighborhood", "downtown")
		values.Set("min_sqft", "400")
		values.Set("parking", "true")
		values.Set("sort", "price-desc")

		query, err := parseDiscoveryQuery(values)
		if err != nil {
			t.Fatalf("parseDiscoveryQuery() error = %v", err)
		}

		ws := query.Workspace
		if ws.Type != TypeDesk || ws.Term != TermDay || ws.MinSeats != 2 {
			t.Errorf("workspace criteria = %+v", ws)
		}
		if ws.MaxPrice != 50.5 {
			t.Errorf("MaxPrice = %v, want 50.5", ws.MaxPrice)
		}
		if ws.Smoking == nil || *ws.Smoking {
			t.Errorf("Smoking = %v, want false", ws.Smoking)
		}
		want := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
		if ws.AvailableFrom == nil || !ws.AvailableFrom.Equal(want) {
			t.Errorf("AvailableFrom = %v, want %v", ws.AvailableFrom, want)
		}

		prop := query.Property
		if prop.Address != "main" || prop.Neighborhood != "downtown" ||
			prop.MinSqft != 400 {
			t.Errorf("property criteria = %+v", prop)
		}
		if prop.Parking == nil || !*prop.Parking {
			t.Errorf("Parking = %v, want true", prop.Parking)
		}
		if prop.Transit != nil {
			t.Errorf("Transit = %v, want nil when absent", prop.Transit)
		}

		if query.Sort.Field != SortPrice || !query.Sort.Descending {
			t.Errorf("Sort = %+v, want price descending", query.Sort)
		}
	})

	t.Run("empty query constrains nothing", func(t *testing.T) {
		query, err := parseDiscoveryQuery(url.Values{})
		if err != nil {
			t.Fatalf("parseDiscoveryQuery() error = %v", err)
		}
		if query.Workspace != (Criteria{}) {
			t.Errorf("workspace criteria = %+v, want zero", query.Workspace)
		}
		if query.Sort != (SortDirective{}) {
			t.Errorf("sort = %+v, want zero", query.Sort)
		}
	})

	t.Run("invalid values rejected", func(t *testing.T) {
		invalid := []url.Values{
			{"min_seats": []string{"two"}},
			{"min_seats": []string{"-1"}},
			{"max_price": []string{"cheap"}},
			{"smoking": []string{"maybe"}},
			{"available_from": []string{"March 1"}},
			{"min_sqft": []string{"big"}},
			{"parking": []string{"yes please"}},
			{"type": []string{"garage"}},
			{"term": []string{"decade"}},
		}

		for _, values := range invalid {
			if _, err := parseDiscoveryQuery(values); err == nil {
				t.Errorf("parseDiscoveryQuery(%v) expected error", values)
			}
		}
	})

	t.Run("unknown sort token ignored", func(t *testing.T) {
		values := url.Values{"sort": []string{"color-desc"}}
		query, err := parseDiscoveryQuery(values)
		if err != nil {
			t.Fatalf("parseDiscoveryQuery() error = %v", err)
		}
		if query.Sort != (SortDirective{}) {
			t.Errorf("Sort = %+v, want zero directive", query.Sort)
		}
	})
}
