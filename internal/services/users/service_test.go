package users

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"prize-portal-service/internal/api"
	"prize-portal-service/internal/domain"
)

func newTestService(t *testing.T, handler http.HandlerFunc) *Service {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return NewService(api.New(api.Config{BaseURL: srv.URL}), nil)
}

func TestMeNormalizesProfile(t *testing.T) {
	svc := newTestService(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/users/me" {
			t.Fatalf("unexpected path %s", r.URL.Path)
		}
		_, _ = w.Write([]byte(`{"success":true,"data":{"user":{
			"_id":"u1","email":"ada@example.com",
			"first_name":"Ada","last_name":"Lovelace",
			"role":"nonsense","verified":"true"
		}}}`))
	})

	user, err := svc.Me(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if user.Name != "Ada Lovelace" {
		t.Fatalf("name = %q", user.Name)
	}
	if user.Role != domain.RoleUser {
		t.Fatalf("unrecognized role must default, got %q", user.Role)
	}
	if !user.IsVerified || !user.IsActive {
		t.Fatalf("flags: %+v", user)
	}
}

func TestAdminListFiltersAndPaginates(t *testing.T) {
	svc := newTestService(t, func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		if r.URL.Path != "/admin/users" || q.Get("role") != "admin" || q.Get("page") != "3" {
			t.Fatalf("unexpected request %s %v", r.URL.Path, q)
		}
		_, _ = w.Write([]byte(`{"success":true,"data":{"users":[{"_id":"u2","isActive":false}]},"meta":{"pagination":{"page":3,"totalPages":5,"totalCount":99}}}`))
	})

	result, err := svc.AdminList(context.Background(), domain.RoleAdmin, "", 3, 20)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(result.Users) != 1 {
		t.Fatalf("expected 1 user, got %d", len(result.Users))
	}
	if result.Users[0].IsActive {
		t.Fatal("explicit isActive:false must survive")
	}
	if result.Pagination.TotalCount != 99 {
		t.Fatalf("pagination: %+v", result.Pagination)
	}
}

func TestAdminSetActive(t *testing.T) {
	svc := newTestService(t, func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPatch || r.URL.Path != "/admin/users/u3" {
			t.Fatalf("unexpected request %s %s", r.Method, r.URL.Path)
		}
		_, _ = w.Write([]byte(`{"success":true,"data":{"user":{"_id":"u3","isActive":false}}}`))
	})

	user, err := svc.AdminSetActive(context.Background(), "u3", false)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if user.IsActive {
		t.Fatal("expected deactivated user")
	}
}

func TestMeMissingPayload(t *testing.T) {
	svc := newTestService(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"success":true,"data":{}}`))
	})

	_, err := svc.Me(context.Background())
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}
