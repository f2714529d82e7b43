// AngelaMos | 2026
// service_test.go

package workspace

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/angelamos/workhaven/internal/authz"
	"github.com/angelamos/workhaven/internal/core"
	"github.com/angelamos/workhaven/internal/property"
)

type fakeRepo struct {
	order   []string
	items   map[string]*Workspace
	ratings map[string]map[string]*Rating
	reviews []Review
	photos  map[string][]string
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{
		items:   make(map[string]*Workspace),
		ratings: make(map[string]map[string]*Rating),
		photos:  make(map[string][]string),
	}
}

func (f *fakeRepo) Create(_ context.Context, w *Workspace) error {
	now := time.Now()
	w.CreatedAt = now
	w.UpdatedAt = now
	cp := *w
	f.items[w.ID] = &cp
	f.order = append(f.order, w.ID)
	return nil
}

func (f *fakeRepo) GetByID(_ context.Context, id string) (*Workspace, error) {
	w, ok := f.items[id]
	if !ok || w.IsDeleted() {
		return nil, fmt.Errorf("get workspace: %w", core.ErrNotFound)
	}
	cp := *w
	cp.Photos = f.photos[id]
	return &cp, nil
}

func (f *fakeRepo) Update(_ context.Context, w *Workspace) error {
	stored, ok := f.items[w.ID]
	if !ok || stored.IsDeleted() {
		return fmt.Errorf("update workspace: %w", core.ErrNotFound)
	}
	w.UpdatedAt = time.Now()
	cp := *w
	f.items[w.ID] = &cp
	return nil
}

func (f *fakeRepo) SoftDelete(_ context.Context, id string) error {
	w, ok := f.items[id]
	if !ok || w.IsDeleted() {
		return fmt.Errorf("delete workspace: %w", core.ErrNotFound)
	}
	now := time.Now()
	w.DeletedAt = &now
	return nil
}

func (f *fakeRepo) Find(_ context.Context, c Criteria) ([]Workspace, error) {
	var out []Workspace
	for _, id := range f.order {
		w := f.items[id]
		if w.IsDeleted() {
			continue
		}
		if c.OwnerID != "" && w.OwnerID != c.OwnerID {
			continue
		}
		if c.Type != "" && w.Type != c.Type {
			continue
		}
		if c.MinSeats > 0 && w.Seats < c.MinSeats {
			continue
		}
		if c.MaxPrice > 0 && w.Price > c.MaxPrice {
			continue
		}
		if c.Term != "" && w.Term != c.Term {
			continue
		}
		if c.Smoking != nil && w.Smoking != *c.Smoking {
			continue
		}
		if c.AvailableFrom != nil {
			if w.AvailableFrom == nil || w.AvailableFrom.Before(*c.AvailableFrom) {
				continue
			}
		}
		out = append(out, *w)
	}
	return out, nil
}

func (f *fakeRepo) CountByProperty(
	_ context.Context,
	propertyID string,
) (int, error) {
	count := 0
	for _, w := range f.items {
		if w.PropertyID == propertyID && !w.IsDeleted() {
			count++
		}
	}
	return count, nil
}

func (f *fakeRepo) AddPhoto(_ context.Context, workspaceID, url string) error {
	f.photos[workspaceID] = append(f.photos[workspaceID], url)
	return nil
}

func (f *fakeRepo) ListPhotos(
	_ context.Context,
	workspaceID string,
) ([]string, error) {
	return f.photos[workspaceID], nil
}

func (f *fakeRepo) UpsertRating(_ context.Context, rating *Rating) error {
	byRater, ok := f.ratings[rating.WorkspaceID]
	if !ok {
		byRater = make(map[string]*Rating)
		f.ratings[rating.WorkspaceID] = byRater
	}

	now := time.Now()
	if existing, ok := byRater[rating.RaterID]; ok {
		existing.Value = rating.Value
		existing.UpdatedAt = now
		rating.CreatedAt = existing.CreatedAt
		rating.UpdatedAt = now
		return nil
	}

	rating.CreatedAt = now
	rating.UpdatedAt = now
	cp := *rating
	byRater[rating.RaterID] = &cp
	return nil
}

func (f *fakeRepo) ListRatings(
	_ context.Context,
	workspaceID string,
) ([]Rating, error) {
	var out []Rating
	for _, r := range f.ratings[workspaceID] {
		out = append(out, *r)
	}
	return out, nil
}

func (f *fakeRepo) AppendReview(_ context.Context, review *Review) error {
	review.CreatedAt = time.Now()
	f.reviews = append(f.reviews, *review)
	return nil
}

func (f *fakeRepo) ListReviews(
	_ context.Context,
	workspaceID string,
) ([]Review, error) {
	var out []Review
	for _, r := range f.reviews {
		if r.WorkspaceID == workspaceID {
			out = append(out, r)
		}
	}
	return out, nil
}

type fakeProperties struct {
	items map[string]*property.Property
}

func (f *fakeProperties) Get(
	_ context.Context,
	id string,
) (*property.Property, error) {
	p, ok := f.items[id]
	if !ok {
		return nil, fmt.Errorf("get property: %w", core.ErrNotFound)
	}
	return p, nil
}

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func testService() (*Service, *fakeRepo, *fakeProperties) {
	repo := newFakeRepo()
	props := &fakeProperties{items: make(map[string]*property.Property)}
	return NewService(repo, props, testLogger()), repo, props
}

func seedProperty(props *fakeProperties, id, ownerID, address, neighborhood string, sqft int, parking, transit bool) {
	props.items[id] = &property.Property{
		ID:           id,
		OwnerID:      ownerID,
		Address:      address,
		Neighborhood: neighborhood,
		Sqft:         sqft,
		Parking:      parking,
		Transit:      transit,
	}
}

func seedWorkspace(t *testing.T, repo *fakeRepo, id, propertyID, ownerID, wsType string, seats int, price float64, term string) {
	t.Helper()
	err := repo.Create(context.Background(), &Workspace{
		ID:         id,
		PropertyID: propertyID,
		OwnerID:    ownerID,
		Type:       wsType,
		Seats:      seats,
		Price:      price,
		Term:       term,
	})
	if err != nil {
		t.Fatalf("seed workspace %s: %v", id, err)
	}
}

func TestServiceCreate(t *testing.T) {
	ctx := context.Background()
	svc, _, props := testService()
	seedProperty(props, "prop-1", "owner-1", "1 Main St", "Downtown", 500, true, false)

	req := CreateWorkspaceRequest{
		PropertyID: "prop-1",
		Type:       TypeDesk,
		Seats:      2,
		Price:      25,
		Term:       TermDay,
	}

	t.Run("owner creates under own property", func(t *testing.T) {
		w, err := svc.Create(ctx, authz.Identity{ID: "owner-1", Role: "owner"}, req)
		if err != nil {
			t.Fatalf("Create() error = %v", err)
		}
		if w.OwnerID != "owner-1" {
			t.Errorf("OwnerID = %q, want owner copied from property", w.OwnerID)
		}
		if w.PropertyID != "prop-1" {
			t.Errorf("PropertyID = %q, want prop-1", w.PropertyID)
		}
	})

	t.Run("non-owner rejected", func(t *testing.T) {
		_, err := svc.Create(ctx, authz.Identity{ID: "other", Role: "owner"}, req)
		if !errors.Is(err, core.ErrForbidden) {
			t.Errorf("Create() error = %v, want ErrForbidden", err)
		}
	})

	t.Run("admin allowed", func(t *testing.T) {
		w, err := svc.Create(ctx, authz.Identity{ID: "root", Role: "admin"}, req)
		if err != nil {
			t.Fatalf("Create() error = %v", err)
		}
		if w.OwnerID != "owner-1" {
			t.Errorf("OwnerID = %q, want property owner even for admin", w.OwnerID)
		}
	})

	t.Run("missing property surfaces not-found", func(t *testing.T) {
		bad := req
		bad.PropertyID = "nope"
		_, err := svc.Create(ctx, authz.Identity{ID: "owner-1", Role: "owner"}, bad)
		if !errors.Is(err, core.ErrNotFound) {
			t.Errorf("Create() error = %v, want ErrNotFound", err)
		}
	})
}

func TestServiceRate(t *testing.T) {
	ctx := context.Background()
	svc, repo, props := testService()
	seedProperty(props, "prop-1", "owner-1", "1 Main St", "Downtown", 500, true, false)
	seedWorkspace(t, repo, "ws-1", "prop-1", "owner-1", TypeDesk, 2, 25, TermDay)

	t.Run("value out of range", func(t *testing.T) {
		for _, v := range []int{0, 6, -1} {
			_, err := svc.Rate(ctx, "rater-1", "ws-1", v)
			if !errors.Is(err, core.ErrInvalidInput) {
				t.Errorf("Rate(value=%d) error = %v, want ErrInvalidInput", v, err)
			}
		}
	})

	t.Run("anonymous rejected", func(t *testing.T) {
		_, err := svc.Rate(ctx, "", "ws-1", 4)
		if !errors.Is(err, core.ErrUnauthorized) {
			t.Errorf("Rate() error = %v, want ErrUnauthorized", err)
		}
	})

	t.Run("owner cannot rate own listing", func(t *testing.T) {
		_, err := svc.Rate(ctx, "owner-1", "ws-1", 4)
		if !errors.Is(err, core.ErrForbidden) {
			t.Errorf("Rate() error = %v, want ErrForbidden", err)
		}
	})

	t.Run("missing workspace", func(t *testing.T) {
		_, err := svc.Rate(ctx, "rater-1", "nope", 4)
		if !errors.Is(err, core.ErrNotFound) {
			t.Errorf("Rate() error = %v, want ErrNotFound", err)
		}
	})

	t.Run("repeat rating replaces not duplicates", func(t *testing.T) {
		summary, err := svc.Rate(ctx, "rater-1", "ws-1", 2)
		if err != nil {
			t.Fatalf("Rate() error = %v", err)
		}
		if summary.Count != 1 || summary.Average != 2 {
			t.Fatalf("summary = %+v, want {2 1}", summary)
		}

		summary, err = svc.Rate(ctx, "rater-1", "ws-1", 5)
		if err != nil {
			t.Fatalf("Rate() error = %v", err)
		}
		if summary.Count != 1 || summary.Average != 5 {
			t.Errorf("summary = %+v, want count unchanged and value replaced", summary)
		}
	})

	t.Run("mean over multiple raters", func(t *testing.T) {
		if _, err := svc.Rate(ctx, "rater-2", "ws-1", 3); err != nil {
			t.Fatalf("Rate() error = %v", err)
		}
		summary, err := svc.Rate(ctx, "rater-3", "ws-1", 4)
		if err != nil {
			t.Fatalf("Rate() error = %v", err)
		}
		if summary.Count != 3 || summary.Average != 4 {
			t.Errorf("summary = %+v, want {4 3} for [5 3 4]", summary)
		}
	})
}

func TestServiceReview(t *testing.T) {
	ctx := context.Background()
	svc, repo, props := testService()
	seedProperty(props, "prop-1", "owner-1", "1 Main St", "Downtown", 500, true, false)
	seedWorkspace(t, repo, "ws-1", "prop-1", "owner-1", TypeDesk, 2, 25, TermDay)

	t.Run("append and list in order", func(t *testing.T) {
		first, err := svc.Review(ctx, "user-1", "ws-1", "great light")
		if err != nil {
			t.Fatalf("Review() error = %v", err)
		}
		second, err := svc.Review(ctx, "user-2", "ws-1", "  quiet floor  ")
		if err != nil {
			t.Fatalf("Review() error = %v", err)
		}
		if second.Body != "quiet floor" {
			t.Errorf("body = %q, want trimmed", second.Body)
		}

		reviews, err := svc.ListReviews(ctx, "ws-1")
		if err != nil {
			t.Fatalf("ListReviews() error = %v", err)
		}
		if len(reviews) != 2 {
			t.Fatalf("len(reviews) = %d, want 2", len(reviews))
		}
		if reviews[0].ID != first.ID || reviews[1].ID != second.ID {
			t.Errorf("reviews out of append order")
		}
	})

	t.Run("repeat author appends rather than replaces", func(t *testing.T) {
		if _, err := svc.Review(ctx, "user-1", "ws-1", "still great"); err != nil {
			t.Fatalf("Review() error = %v", err)
		}
		reviews, _ := svc.ListReviews(ctx, "ws-1")
		if len(reviews) != 3 {
			t.Errorf("len(reviews) = %d, want 3 (append-only)", len(reviews))
		}
	})

	t.Run("blank body rejected", func(t *testing.T) {
		_, err := svc.Review(ctx, "user-1", "ws-1", "   ")
		if !errors.Is(err, core.ErrInvalidInput) {
			t.Errorf("Review() error = %v, want ErrInvalidInput", err)
		}
	})

	t.Run("owner cannot review own listing", func(t *testing.T) {
		_, err := svc.Review(ctx, "owner-1", "ws-1", "nice")
		if !errors.Is(err, core.ErrForbidden) {
			t.Errorf("Review() error = %v, want ErrForbidden", err)
		}
	})

	t.Run("anonymous rejected", func(t *testing.T) {
		_, err := svc.Review(ctx, "", "ws-1", "nice")
		if !errors.Is(err, core.ErrUnauthorized) {
			t.Errorf("Review() error = %v, want ErrUnauthorized", err)
		}
	})

	t.Run("missing workspace", func(t *testing.T) {
		_, err := svc.Review(ctx, "user-1", "nope", "nice")
		if !errors.Is(err, core.ErrNotFound) {
			t.Errorf("Review() error = %v, want ErrNotFound", err)
		}
	})
}

func TestServiceDiscover(t *testing.T) {
	ctx := context.Background()
	svc, repo, props := testService()

	seedProperty(props, "prop-1", "owner-1", "1 Main St", "Downtown", 500, true, false)
	seedProperty(props, "prop-2", "owner-2", "9 Elm Ave", "Riverside", 900, false, true)

	seedWorkspace(t, repo, "ws-1", "prop-1", "owner-1", TypeDesk, 2, 30, TermDay)
	seedWorkspace(t, repo, "ws-2", "prop-1", "owner-1", TypeOffice, 6, 120, TermMonth)
	seedWorkspace(t, repo, "ws-3", "prop-2", "owner-2", TypeDesk, 4, 20, TermDay)
	seedWorkspace(t, repo, "ws-4", "prop-gone", "owner-3", TypeDesk, 2, 10, TermDay)

	ids := func(results []DiscoveredWorkspace) []string {
		out := make([]string, len(results))
		for i, r := range results {
			out[i] = r.ID
		}
		return out
	}

	t.Run("no criteria returns all joined listings", func(t *testing.T) {
		results, err := svc.Discover(ctx, DiscoveryQuery{})
		if err != nil {
			t.Fatalf("Discover() error = %v", err)
		}
		// ws-4 dangles and is skipped, not an error.
		got := ids(results)
		want := []string{"ws-1", "ws-2", "ws-3"}
		if len(got) != len(want) {
			t.Fatalf("ids = %v, want %v", got, want)
		}
		for i := range want {
			if got[i] != want[i] {
				t.Fatalf("ids = %v, want %v", got, want)
			}
		}
	})

	t.Run("workspace and property criteria conjoin", func(t *testing.T) {
		results, err := svc.Discover(ctx, DiscoveryQuery{
			Workspace: Criteria{Type: TypeDesk, MinSeats: 2},
			Property:  PropertyCriteria{Address: "main st"},
		})
		if err != nil {
			t.Fatalf("Discover() error = %v", err)
		}
		if len(results) != 1 || results[0].ID != "ws-1" {
			t.Fatalf("ids = %v, want [ws-1]", ids(results))
		}
		if results[0].Property.Neighborhood != "Downtown" {
			t.Errorf("property not joined into projection")
		}
	})

	t.Run("one failed filter empties the result", func(t *testing.T) {
		results, err := svc.Discover(ctx, DiscoveryQuery{
			Workspace: Criteria{Type: TypeDesk},
			Property:  PropertyCriteria{MinSqft: 5000},
		})
		if err != nil {
			t.Fatalf("Discover() error = %v", err)
		}
		if len(results) != 0 {
			t.Errorf("ids = %v, want empty", ids(results))
		}
	})

	t.Run("price sort descending", func(t *testing.T) {
		results, err := svc.Discover(ctx, DiscoveryQuery{
			Sort: ParseSort("price-desc"),
		})
		if err != nil {
			t.Fatalf("Discover() error = %v", err)
		}
		got := ids(results)
		want := []string{"ws-2", "ws-1", "ws-3"}
		for i := range want {
			if got[i] != want[i] {
				t.Fatalf("ids = %v, want %v", got, want)
			}
		}
	})

	t.Run("rating summaries attach to results", func(t *testing.T) {
		if _, err := svc.Rate(ctx, "rater-1", "ws-3", 5); err != nil {
			t.Fatalf("Rate() error = %v", err)
		}
		if _, err := svc.Rate(ctx, "rater-2", "ws-3", 4); err != nil {
			t.Fatalf("Rate() error = %v", err)
		}

		results, err := svc.Discover(ctx, DiscoveryQuery{
			Workspace: Criteria{OwnerID: "owner-2"},
		})
		if err != nil {
			t.Fatalf("Discover() error = %v", err)
		}
		if len(results) != 1 {
			t.Fatalf("len(results) = %d, want 1", len(results))
		}
		if results[0].Rating.Count != 2 || results[0].Rating.Average != 4.5 {
			t.Errorf("rating = %+v, want {4.5 2}", results[0].Rating)
		}
	})
}

func TestServiceUpdateAuthorization(t *testing.T) {
	ctx := context.Background()
	svc, repo, props := testService()
	seedProperty(props, "prop-1", "owner-1", "1 Main St", "Downtown", 500, true, false)
	seedWorkspace(t, repo, "ws-1", "prop-1", "owner-1", TypeDesk, 2, 25, TermDay)

	newSeats := 4

	t.Run("missing listing reported before forbidden", func(t *testing.T) {
		_, err := svc.Update(ctx, authz.Identity{ID: "stranger", Role: "seeker"}, "nope", UpdateWorkspaceRequest{Seats: &newSeats})
		if !errors.Is(err, core.ErrNotFound) {
			t.Errorf("Update() error = %v, want ErrNotFound", err)
		}
	})

	t.Run("non-owner forbidden", func(t *testing.T) {
		_, err := svc.Update(ctx, authz.Identity{ID: "stranger", Role: "seeker"}, "ws-1", UpdateWorkspaceRequest{Seats: &newSeats})
		if !errors.Is(err, core.ErrForbidden) {
			t.Errorf("Update() error = %v, want ErrForbidden", err)
		}
	})

	t.Run("owner updates named fields only", func(t *testing.T) {
		w, err := svc.Update(ctx, authz.Identity{ID: "owner-1", Role: "owner"}, "ws-1", UpdateWorkspaceRequest{Seats: &newSeats})
		if err != nil {
			t.Fatalf("Update() error = %v", err)
		}
		if w.Seats != 4 || w.Price != 25 || w.Type != TypeDesk {
			t.Errorf("workspace = %+v, want only seats changed", w)
		}
	})

	t.Run("admin bypasses ownership", func(t *testing.T) {
		err := svc.Delete(ctx, authz.Identity{ID: "root", Role: "admin"}, "ws-1")
		if err != nil {
			t.Errorf("Delete() error = %v, want admin allowed", err)
		}
	})
}
