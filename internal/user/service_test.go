// AngelaMos | 2026
// service_test.go

package user

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/angelamos/workhaven/internal/core"
)

type fakeRepo struct {
	items   map[string]*User
	byEmail map[string]string
	ratings map[string]map[string]*OwnerRating
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{
		items:   make(map[string]*User),
		byEmail: make(map[string]string),
		ratings: make(map[string]map[string]*OwnerRating),
	}
}

func (f *fakeRepo) Create(_ context.Context, u *User) error {
	if _, ok := f.byEmail[u.Email]; ok {
		return fmt.Errorf("create user: %w", core.ErrDuplicateKey)
	}
	now := time.Now()
	u.CreatedAt = now
	u.UpdatedAt = now
	cp := *u
	f.items[u.ID] = &cp
	f.byEmail[u.Email] = u.ID
	return nil
}

func (f *fakeRepo) GetByID(_ context.Context, id string) (*User, error) {
	u, ok := f.items[id]
	if !ok || u.IsDeleted() {
		return nil, fmt.Errorf("get user: %w", core.ErrNotFound)
	}
	cp := *u
	return &cp, nil
}

func (f *fakeRepo) GetByEmail(_ context.Context, email string) (*User, error) {
	id, ok := f.byEmail[email]
	if !ok {
		return nil, fmt.Errorf("get user by email: %w", core.ErrNotFound)
	}
	return f.GetByID(context.Background(), id)
}

func (f *fakeRepo) Update(_ context.Context, u *User) error {
	stored, ok := f.items[u.ID]
	if !ok || stored.IsDeleted() {
		return fmt.Errorf("update user: %w", core.ErrNotFound)
	}
	cp := *u
	f.items[u.ID] = &cp
	return nil
}

func (f *fakeRepo) UpdatePassword(_ context.Context, id, hash string) error {
	u, ok := f.items[id]
	if !ok || u.IsDeleted() {
		return fmt.Errorf("update password: %w", core.ErrNotFound)
	}
	u.PasswordHash = hash
	return nil
}

func (f *fakeRepo) IncrementTokenVersion(_ context.Context, id string) error {
	u, ok := f.items[id]
	if !ok || u.IsDeleted() {
		return fmt.Errorf("increment token version: %w", core.ErrNotFound)
	}
	u.TokenVersion++
	return nil
}

func (f *fakeRepo) SoftDelete(_ context.Context, id string) error {
	u, ok := f.items[id]
	if !ok || u.IsDeleted() {
		return fmt.Errorf("delete user: %w", core.ErrNotFound)
	}
	now := time.Now()
	u.DeletedAt = &now
	return nil
}

func (f *fakeRepo) List(
	_ context.Context,
	params ListUsersParams,
) ([]User, int, error) {
	var out []User
	for _, u := range f.items {
		if u.IsDeleted() {
			continue
		}
		if params.Role != "" && u.Role != params.Role {
			continue
		}
		out = append(out, *u)
	}
	return out, len(out), nil
}

func (f *fakeRepo) ExistsByEmail(_ context.Context, email string) (bool, error) {
	_, ok := f.byEmail[email]
	return ok, nil
}

func (f *fakeRepo) UpsertOwnerRating(
	_ context.Context,
	rating *OwnerRating,
) error {
	byRater, ok := f.ratings[rating.UserID]
	if !ok {
		byRater = make(map[string]*OwnerRating)
		f.ratings[rating.UserID] = byRater
	}

	now := time.Now()
	if existing, ok := byRater[rating.RaterID]; ok {
		existing.Value = rating.Value
		existing.UpdatedAt = now
		return nil
	}

	rating.CreatedAt = now
	rating.UpdatedAt = now
	cp := *rating
	byRater[rating.RaterID] = &cp
	return nil
}

func (f *fakeRepo) ListOwnerRatings(
	_ context.Context,
	userID string,
) ([]OwnerRating, error) {
	var out []OwnerRating
	for _, r := range f.ratings[userID] {
		out = append(out, *r)
	}
	return out, nil
}

func seedUser(t *testing.T, repo *fakeRepo, id, role string) {
	t.Helper()
	err := repo.Create(context.Background(), &User{
		ID:    id,
		Email: id + "@example.com",
		Name:  id,
		Role:  role,
	})
	if err != nil {
		t.Fatalf("seed user %s: %v", id, err)
	}
}

func TestServiceCreate(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name    string
		role    string
		wantErr error
	}{
		{"owner allowed", RoleOwner, nil},
		{"seeker allowed", RoleSeeker, nil},
		{"coworker allowed", RoleCoworker, nil},
		{"admin rejected", RoleAdmin, core.ErrInvalidInput},
		{"unknown role rejected", "landlord", core.ErrInvalidInput},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := NewService(newFakeRepo())

			info, err := svc.Create(
				ctx,
				"User@Example.com",
				"hash",
				"User",
				"555-0100",
				tt.role,
			)
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Errorf("Create() error = %v, want %v", err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("Create() error = %v", err)
			}
			if info.Email != "user@example.com" {
				t.Errorf("email = %q, want lowercased", info.Email)
			}
			if info.Role != tt.role {
				t.Errorf("role = %q, want %q", info.Role, tt.role)
			}
		})
	}
}

func TestServiceRateOwner(t *testing.T) {
	ctx := context.Background()
	repo := newFakeRepo()
	svc := NewService(repo)

	seedUser(t, repo, "owner-1", RoleOwner)
	seedUser(t, repo, "seeker-1", RoleSeeker)

	t.Run("target must be an owner account", func(t *testing.T) {
		_, err := svc.RateOwner(ctx, "seeker-1", "owner-1", 4)
		if !errors.Is(err, core.ErrInvalidInput) {
			t.Errorf("RateOwner() error = %v, want ErrInvalidInput", err)
		}
	})

	t.Run("self rating forbidden", func(t *testing.T) {
		_, err := svc.RateOwner(ctx, "owner-1", "owner-1", 4)
		if !errors.Is(err, core.ErrForbidden) {
			t.Errorf("RateOwner() error = %v, want ErrForbidden", err)
		}
	})

	t.Run("value bounds", func(t *testing.T) {
		for _, v := range []int{0, 6} {
			_, err := svc.RateOwner(ctx, "owner-1", "seeker-1", v)
			if !errors.Is(err, core.ErrInvalidInput) {
				t.Errorf("RateOwner(value=%d) error = %v, want ErrInvalidInput", v, err)
			}
		}
	})

	t.Run("repeat replaces and summary rounds", func(t *testing.T) {
		summary, err := svc.RateOwner(ctx, "owner-1", "seeker-1", 2)
		if err != nil {
			t.Fatalf("RateOwner() error = %v", err)
		}
		if summary.Count != 1 || summary.Average != 2 {
			t.Fatalf("summary = %+v, want {2 1}", summary)
		}

		summary, err = svc.RateOwner(ctx, "owner-1", "seeker-1", 5)
		if err != nil {
			t.Fatalf("RateOwner() error = %v", err)
		}
		if summary.Count != 1 || summary.Average != 5 {
			t.Fatalf("summary = %+v, want replaced value", summary)
		}

		seedUser(t, repo, "seeker-2", RoleSeeker)
		seedUser(t, repo, "seeker-3", RoleSeeker)
		if _, err := svc.RateOwner(ctx, "owner-1", "seeker-2", 5); err != nil {
			t.Fatalf("RateOwner() error = %v", err)
		}
		summary, err = svc.RateOwner(ctx, "owner-1", "seeker-3", 4)
		if err != nil {
			t.Fatalf("RateOwner() error = %v", err)
		}
		if summary.Count != 3 || summary.Average != 4.67 {
			t.Errorf("summary = %+v, want {4.67 3} for [5 5 4]", summary)
		}
	})
}

func TestServiceOwnerRatingSummaryEmpty(t *testing.T) {
	ctx := context.Background()
	repo := newFakeRepo()
	svc := NewService(repo)
	seedUser(t, repo, "owner-1", RoleOwner)

	summary, err := svc.OwnerRatingSummary(ctx, "owner-1")
	if err != nil {
		t.Fatalf("OwnerRatingSummary() error = %v", err)
	}
	if summary.Count != 0 || summary.Average != 0 {
		t.Errorf("summary = %+v, want zero value for no ratings", summary)
	}
}

func TestServiceGetProfile(t *testing.T) {
	ctx := context.Background()
	repo := newFakeRepo()
	svc := NewService(repo)

	seedUser(t, repo, "owner-1", RoleOwner)
	seedUser(t, repo, "seeker-1", RoleSeeker)

	t.Run("owner profile carries rating summary", func(t *testing.T) {
		if _, err := svc.RateOwner(ctx, "owner-1", "seeker-1", 5); err != nil {
			t.Fatalf("RateOwner() error = %v", err)
		}

		profile, err := svc.GetProfile(ctx, "owner-1")
		if err != nil {
			t.Fatalf("GetProfile() error = %v", err)
		}
		if profile.OwnerRating == nil {
			t.Fatal("OwnerRating = nil, want summary for owner account")
		}
		if profile.OwnerRating.Count != 1 {
			t.Errorf("rating count = %d, want 1", profile.OwnerRating.Count)
		}
	})

	t.Run("non-owner profile has no summary", func(t *testing.T) {
		profile, err := svc.GetProfile(ctx, "seeker-1")
		if err != nil {
			t.Fatalf("GetProfile() error = %v", err)
		}
		if profile.OwnerRating != nil {
			t.Errorf("OwnerRating = %+v, want nil for seeker", profile.OwnerRating)
		}
	})
}

func TestServiceCanDeleteUser(t *testing.T) {
	ctx := context.Background()
	repo := newFakeRepo()
	svc := NewService(repo)

	seedUser(t, repo, "admin-1", RoleAdmin)
	seedUser(t, repo, "admin-2", RoleAdmin)
	seedUser(t, repo, "seeker-1", RoleSeeker)

	t.Run("self delete allowed", func(t *testing.T) {
		if err := svc.CanDeleteUser(ctx, "seeker-1", "seeker-1"); err != nil {
			t.Errorf("CanDeleteUser() error = %v", err)
		}
	})

	t.Run("admin may delete others", func(t *testing.T) {
		if err := svc.CanDeleteUser(ctx, "admin-1", "seeker-1"); err != nil {
			t.Errorf("CanDeleteUser() error = %v", err)
		}
	})

	t.Run("admin may not delete admin", func(t *testing.T) {
		err := svc.CanDeleteUser(ctx, "admin-1", "admin-2")
		if !errors.Is(err, core.ErrForbidden) {
			t.Errorf("CanDeleteUser() error = %v, want ErrForbidden", err)
		}
	})

	t.Run("non-admin may not delete others", func(t *testing.T) {
		err := svc.CanDeleteUser(ctx, "seeker-1", "admin-1")
		if !errors.Is(err, core.ErrForbidden) {
			t.Errorf("CanDeleteUser() error = %v, want ErrForbidden", err)
		}
	})
}
