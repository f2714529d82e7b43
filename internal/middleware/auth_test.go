// AngelaMos | 2026
// auth_test.go

package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/angelamos/workhaven/internal/authz"
)

func TestExtractToken(t *testing.T) {
	tests := []struct {
		name   string
		header string
		want   string
	}{
		{"no header", "", ""},
		{"bearer token", "Bearer abc123", "abc123"},
		{"lowercase scheme", "bearer abc123", "abc123"},
		{"wrong scheme", "Basic abc123", ""},
		{"missing token", "Bearer", ""},
		{"trailing space trimmed", "Bearer abc123 ", "abc123"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := httptest.NewRequest(http.MethodGet, "/", nil)
			if tt.header != "" {
				r.Header.Set("Authorization", tt.header)
			}

			if got := ExtractToken(r); got != tt.want {
				t.Errorf("ExtractToken() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestRequireRole(t *testing.T) {
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	tests := []struct {
		name       string
		role       string
		allowed    []string
		wantStatus int
	}{
		{"matching role passes", "owner", []string{"owner"}, http.StatusOK},
		{"one of several passes", "admin", []string{"owner", "admin"}, http.StatusOK},
		{"wrong role forbidden", "seeker", []string{"owner"}, http.StatusForbidden},
		{"no role unauthorized", "", []string{"owner"}, http.StatusUnauthorized},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := httptest.NewRequest(http.MethodGet, "/", nil)
			if tt.role != "" {
				ctx := context.WithValue(r.Context(), UserIDKey, "u1")
				ctx = context.WithValue(ctx, UserRoleKey, tt.role)
				r = r.WithContext(ctx)
			}

			w := httptest.NewRecorder()
			RequireRole(tt.allowed...)(next).ServeHTTP(w, r)

			if w.Code != tt.wantStatus {
				t.Errorf("status = %d, want %d", w.Code, tt.wantStatus)
			}
		})
	}
}

func TestGetIdentity(t *testing.T) {
	ctx := context.WithValue(context.Background(), UserIDKey, "u1")
	ctx = context.WithValue(ctx, UserRoleKey, authz.RoleAdmin)

	id := GetIdentity(ctx)
	if id.ID != "u1" || !id.IsAdmin() {
		t.Errorf("GetIdentity() = %+v, want admin u1", id)
	}

	anon := GetIdentity(context.Background())
	if !anon.IsAnonymous() {
		t.Errorf("GetIdentity() on empty context = %+v, want anonymous", anon)
	}
}
