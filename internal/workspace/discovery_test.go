// AngelaMos | 2026
// discovery_test.go

package workspace

import (
	"testing"
	"time"
)

func TestParseSort(t *testing.T) {
	tests := []struct {
		name  string
		token string
		want  SortDirective
	}{
		{"empty", "", SortDirective{}},
		{"price ascending", "price", SortDirective{Field: "price"}},
		{"price descending", "price-desc", SortDirective{Field: "price", Descending: true}},
		{"explicit ascending", "seats-asc", SortDirective{Field: "seats"}},
		{"sqft descending", "sqft-desc", SortDirective{Field: "sqft", Descending: true}},
		{"availability date", "date", SortDirective{Field: "date"}},
		{"rating descending", "rating-desc", SortDirective{Field: "rating", Descending: true}},
		{"unknown field", "color", SortDirective{}},
		{"unknown field with direction", "color-desc", SortDirective{}},
		{"whitespace", "  price  ", SortDirective{Field: "price"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ParseSort(tt.token)
			if got != tt.want {
				t.Errorf("ParseSort(%q) = %+v, want %+v", tt.token, got, tt.want)
			}
		})
	}
}

func TestMatchesProperty(t *testing.T) {
	boolPtr := func(b bool) *bool { return &b }

	tests := []struct {
		name     string
		criteria PropertyCriteria
		want     bool
	}{
		{"no criteria matches", PropertyCriteria{}, true},
		{"address substring case-insensitive", PropertyCriteria{Address: "main st"}, true},
		{"address no match", PropertyCriteria{Address: "elm"}, false},
		{"neighborhood substring", PropertyCriteria{Neighborhood: "down"}, true},
		{"neighborhood no match", PropertyCriteria{Neighborhood: "uptown"}, false},
		{"sqft lower bound met", PropertyCriteria{MinSqft: 500}, true},
		{"sqft lower bound not met", PropertyCriteria{MinSqft: 501}, false},
		{"parking exact match", PropertyCriteria{Parking: boolPtr(true)}, true},
		{"parking mismatch", PropertyCriteria{Parking: boolPtr(false)}, false},
		{"transit mismatch", PropertyCriteria{Transit: boolPtr(true)}, false},
		{
			"conjunction fails on one miss",
			PropertyCriteria{Address: "main", MinSqft: 9999},
			false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := matchesProperty(
				tt.criteria,
				"1 Main St",
				"Downtown",
				500,
				true,
				false,
			)
			if got != tt.want {
				t.Errorf("matchesProperty() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestSortResults(t *testing.T) {
	day := func(d int) *time.Time {
		t := time.Date(2026, 1, d, 0, 0, 0, 0, time.UTC)
		return &t
	}

	build := func() []DiscoveredWorkspace {
		return []DiscoveredWorkspace{
			{WorkspaceResponse: WorkspaceResponse{ID: "a", Price: 30, Seats: 2, AvailableFrom: day(3)}, Rating: RatingSummary{Average: 4.5, Count: 2}},
			{WorkspaceResponse: WorkspaceResponse{ID: "b", Price: 10, Seats: 4, AvailableFrom: nil}},
			{WorkspaceResponse: WorkspaceResponse{ID: "c", Price: 30, Seats: 1, AvailableFrom: day(1)}, Rating: RatingSummary{Average: 3, Count: 1}},
			{WorkspaceResponse: WorkspaceResponse{ID: "d", Price: 20, Seats: 4, AvailableFrom: day(2)}, Rating: RatingSummary{Average: 5, Count: 4}},
		}
	}

	ids := func(results []DiscoveredWorkspace) []string {
		out := make([]string, len(results))
		for i, r := range results {
			out[i] = r.ID
		}
		return out
	}

	tests := []struct {
		name      string
		directive SortDirective
		want      []string
	}{
		{"zero directive keeps order", SortDirective{}, []string{"a", "b", "c", "d"}},
		{"price ascending stable ties", SortDirective{Field: "price"}, []string{"b", "d", "a", "c"}},
		{"price descending stable ties", SortDirective{Field: "price", Descending: true}, []string{"a", "c", "d", "b"}},
		{"seats descending", SortDirective{Field: "seats", Descending: true}, []string{"b", "d", "a", "c"}},
		{"missing availability sorts first ascending", SortDirective{Field: "date"}, []string{"b", "c", "d", "a"}},
		{"rating descending, unrated last", SortDirective{Field: "rating", Descending: true}, []string{"d", "a", "c", "b"}},
		{"unknown field keeps order", SortDirective{Field: "color"}, []string{"a", "b", "c", "d"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			results := build()
			sortResults(results, tt.directive)

			got := ids(results)
			for i := range tt.want {
				if got[i] != tt.want[i] {
					t.Fatalf("order = %v, want %v", got, tt.want)
				}
			}
		})
	}
}

func TestSummarize(t *testing.T) {
	tests := []struct {
		name   string
		values []int
		want   RatingSummary
	}{
		{"no ratings yields zero summary", nil, RatingSummary{}},
		{"single rating", []int{5}, RatingSummary{Average: 5, Count: 1}},
		{"mean rounds to two decimals", []int{5, 3, 4}, RatingSummary{Average: 4, Count: 3}},
		{"repeating decimal", []int{5, 5, 4}, RatingSummary{Average: 4.67, Count: 3}},
		{"one third", []int{1, 2, 2}, RatingSummary{Average: 1.67, Count: 3}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ratings := make([]Rating, 0, len(tt.values))
			for _, v := range tt.values {
				ratings = append(ratings, Rating{Value: v})
			}

			got := Summarize(ratings)
			if got != tt.want {
				t.Errorf("Summarize(%v) = %+v, want %+v", tt.values, got, tt.want)
			}
		})
	}
}
