// AngelaMos | 2026
// service_test.go

package property

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/angelamos/workhaven/internal/authz"
	"github.com/angelamos/workhaven/internal/core"
)

type fakeRepo struct {
	items  map[string]*Property
	photos map[string][]string
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{
		items:  make(map[string]*Property),
		photos: make(map[string][]string),
	}
}

func (f *fakeRepo) Create(_ context.Context, p *Property) error {
	now := time.Now()
	p.CreatedAt = now
	p.UpdatedAt = now
	cp := *p
	f.items[p.ID] = &cp
	return nil
}

func (f *fakeRepo) GetByID(_ context.Context, id string) (*Property, error) {
	p, ok := f.items[id]
	if !ok || p.IsDeleted() {
		return nil, fmt.Errorf("get property: %w", core.ErrNotFound)
	}
	cp := *p
	cp.Photos = f.photos[id]
	return &cp, nil
}

func (f *fakeRepo) Update(_ context.Context, p *Property) error {
	stored, ok := f.items[p.ID]
	if !ok || stored.IsDeleted() {
		return fmt.Errorf("update property: %w", core.ErrNotFound)
	}
	p.UpdatedAt = time.Now()
	cp := *p
	f.items[p.ID] = &cp
	return nil
}

func (f *fakeRepo) SoftDelete(_ context.Context, id string) error {
	p, ok := f.items[id]
	if !ok || p.IsDeleted() {
		return fmt.Errorf("delete property: %w", core.ErrNotFound)
	}
	now := time.Now()
	p.DeletedAt = &now
	return nil
}

func (f *fakeRepo) List(
	_ context.Context,
	params ListPropertiesParams,
) ([]Property, int, error) {
	var out []Property
	for _, p := range f.items {
		if p.IsDeleted() {
			continue
		}
		if params.OwnerID != "" && p.OwnerID != params.OwnerID {
			continue
		}
		out = append(out, *p)
	}
	return out, len(out), nil
}

func (f *fakeRepo) AddPhoto(_ context.Context, propertyID, url string) error {
	f.photos[propertyID] = append(f.photos[propertyID], url)
	return nil
}

func (f *fakeRepo) ListPhotos(
	_ context.Context,
	propertyID string,
) ([]string, error) {
	return f.photos[propertyID], nil
}

type fakeCounter struct {
	counts map[string]int
}

func (f *fakeCounter) CountByProperty(
	_ context.Context,
	propertyID string,
) (int, error) {
	return f.counts[propertyID], nil
}

func testService(counts map[string]int) (*Service, *fakeRepo) {
	repo := newFakeRepo()
	if counts == nil {
		counts = map[string]int{}
	}
	return NewService(repo, &fakeCounter{counts: counts}), repo
}

func seed(t *testing.T, repo *fakeRepo, id, ownerID string) {
	t.Helper()
	err := repo.Create(context.Background(), &Property{
		ID:           id,
		OwnerID:      ownerID,
		Address:      "1 Main St",
		Neighborhood: "Downtown",
		Sqft:         500,
	})
	if err != nil {
		t.Fatalf("seed property %s: %v", id, err)
	}
}

func TestServiceDelete(t *testing.T) {
	ctx := context.Background()
	owner := authz.Identity{ID: "owner-1", Role: "owner"}

	t.Run("blocked while workspaces attached", func(t *testing.T) {
		svc, repo := testService(map[string]int{"prop-1": 2})
		seed(t, repo, "prop-1", "owner-1")

		err := svc.Delete(ctx, owner, "prop-1")
		if !errors.Is(err, core.ErrInvalidInput) {
			t.Fatalf("Delete() error = %v, want ErrInvalidInput", err)
		}

		if _, err := repo.GetByID(ctx, "prop-1"); err != nil {
			t.Errorf("property was deleted despite attached workspaces")
		}
	})

	t.Run("allowed once empty", func(t *testing.T) {
		svc, repo := testService(nil)
		seed(t, repo, "prop-1", "owner-1")

		if err := svc.Delete(ctx, owner, "prop-1"); err != nil {
			t.Fatalf("Delete() error = %v", err)
		}

		if _, err := repo.GetByID(ctx, "prop-1"); !errors.Is(err, core.ErrNotFound) {
			t.Errorf("GetByID after delete error = %v, want ErrNotFound", err)
		}
	})

	t.Run("missing record reported before forbidden", func(t *testing.T) {
		svc, _ := testService(nil)

		err := svc.Delete(ctx, authz.Identity{ID: "stranger", Role: "seeker"}, "nope")
		if !errors.Is(err, core.ErrNotFound) {
			t.Errorf("Delete() error = %v, want ErrNotFound", err)
		}
	})

	t.Run("non-owner forbidden", func(t *testing.T) {
		svc, repo := testService(nil)
		seed(t, repo, "prop-1", "owner-1")

		err := svc.Delete(ctx, authz.Identity{ID: "stranger", Role: "owner"}, "prop-1")
		if !errors.Is(err, core.ErrForbidden) {
			t.Errorf("Delete() error = %v, want ErrForbidden", err)
		}
	})

	t.Run("admin may delete", func(t *testing.T) {
		svc, repo := testService(nil)
		seed(t, repo, "prop-1", "owner-1")

		if err := svc.Delete(ctx, authz.Identity{ID: "root", Role: "admin"}, "prop-1"); err != nil {
			t.Errorf("Delete() error = %v, want admin allowed", err)
		}
	})
}

func TestServiceUpdate(t *testing.T) {
	ctx := context.Background()
	svc, repo := testService(nil)
	seed(t, repo, "prop-1", "owner-1")

	newAddr := "2 Side St"
	newSqft := 800

	t.Run("partial update touches named fields only", func(t *testing.T) {
		p, err := svc.Update(
			ctx,
			authz.Identity{ID: "owner-1", Role: "owner"},
			"prop-1",
			UpdatePropertyRequest{Address: &newAddr, Sqft: &newSqft},
		)
		if err != nil {
			t.Fatalf("Update() error = %v", err)
		}
		if p.Address != "2 Side St" || p.Sqft != 800 {
			t.Errorf("property = %+v, want address and sqft updated", p)
		}
		if p.Neighborhood != "Downtown" {
			t.Errorf("neighborhood changed unexpectedly")
		}
	})

	t.Run("non-owner forbidden", func(t *testing.T) {
		_, err := svc.Update(
			ctx,
			authz.Identity{ID: "stranger", Role: "owner"},
			"prop-1",
			UpdatePropertyRequest{Address: &newAddr},
		)
		if !errors.Is(err, core.ErrForbidden) {
			t.Errorf("Update() error = %v, want ErrForbidden", err)
		}
	})
}

func TestServiceCreate(t *testing.T) {
	ctx := context.Background()
	svc, _ := testService(nil)

	t.Run("anonymous rejected", func(t *testing.T) {
		_, err := svc.Create(ctx, authz.Identity{}, CreatePropertyRequest{
			Address:      "1 Main St",
			Neighborhood: "Downtown",
			Sqft:         500,
		})
		if !errors.Is(err, core.ErrUnauthorized) {
			t.Errorf("Create() error = %v, want ErrUnauthorized", err)
		}
	})

	t.Run("caller becomes owner", func(t *testing.T) {
		p, err := svc.Create(
			ctx,
			authz.Identity{ID: "owner-1", Role: "owner"},
			CreatePropertyRequest{
				Address:      "1 Main St",
				Neighborhood: "Downtown",
				Sqft:         500,
				Parking:      true,
			},
		)
		if err != nil {
			t.Fatalf("Create() error = %v", err)
		}
		if p.OwnerID != "owner-1" {
			t.Errorf("OwnerID = %q, want caller id", p.OwnerID)
		}
		if p.ID == "" {
			t.Errorf("ID not assigned")
		}
	})
}

func TestServiceAddPhoto(t *testing.T) {
	ctx := context.Background()
	svc, repo := testService(nil)
	seed(t, repo, "prop-1", "owner-1")

	owner := authz.Identity{ID: "owner-1", Role: "owner"}

	p, err := svc.AddPhoto(ctx, owner, "prop-1", "https://cdn.example.com/a.jpg")
	if err != nil {
		t.Fatalf("AddPhoto() error = %v", err)
	}
	if len(p.Photos) != 1 {
		t.Fatalf("len(photos) = %d, want 1", len(p.Photos))
	}

	p, err = svc.AddPhoto(ctx, owner, "prop-1", "https://cdn.example.com/b.jpg")
	if err != nil {
		t.Fatalf("AddPhoto() error = %v", err)
	}
	if len(p.Photos) != 2 || p.Photos[1] != "https://cdn.example.com/b.jpg" {
		t.Errorf("photos = %v, want append in order", p.Photos)
	}

	_, err = svc.AddPhoto(
		ctx,
		authz.Identity{ID: "stranger", Role: "seeker"},
		"prop-1",
		"https://cdn.example.com/c.jpg",
	)
	if !errors.Is(err, core.ErrForbidden) {
		t.Errorf("AddPhoto() error = %v, want ErrForbidden", err)
	}
}
