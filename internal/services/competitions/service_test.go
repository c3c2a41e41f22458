package competitions

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

func TestListSendsFilterQuery(t *testing.T) {
	featured := true
	minPrice := 1.5

	svc := newTestService(t, func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		if q.Get("category") != "Tech" || q.Get("status") != "active" {
			t.Fatalf("unexpected query %v", q)
		}
		if q.Get("minPrice") != "1.5" || q.Get("featured") != "true" {
			t.Fatalf("unexpected query %v", q)
		}
		if q.Get("search") != "car" || q.Get("page") != "2" || q.Get("limit") != "12" {
			t.Fatalf("unexpected query %v", q)
		}
		_, _ = w.Write([]byte(`{"success":true,"data":{"competitions":[{"_id":"c1","title":"Prize"}]},"meta":{"pagination":{"page":2,"totalPages":4,"totalCount":40}}}`))
	})

	result, err := svc.List(context.Background(), ListParams{
		Category: "Tech",
		Status:   domain.StatusActive,
		MinPrice: &minPrice,
		Featured: &featured,
		Search:   "car",
		Page:     2,
		PageSize: 12,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(result.Competitions) != 1 || result.Competitions[0].ID != "c1" {
		t.Fatalf("unexpected competitions %+v", result.Competitions)
	}
	if result.Pagination.Page != 2 || result.Pagination.TotalCount != 40 {
		t.Fatalf("unexpected pagination %+v", result.Pagination)
	}
}

func TestListBareArrayPayload(t *testing.T) {
	svc := newTestService(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`[{"_id":"c1"},{"_id":"c2"}]`))
	})

	result, err := svc.List(context.Background(), ListParams{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(result.Competitions) != 2 {
		t.Fatalf("expected 2 competitions, got %d", len(result.Competitions))
	}
	if result.Pagination.Page != 1 {
		t.Fatalf("page should default to 1, got %d", result.Pagination.Page)
	}
}

func TestListEmptyPayload(t *testing.T) {
	svc := newTestService(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"success":true,"data":{}}`))
	})

	result, err := svc.List(context.Background(), ListParams{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(result.Competitions) != 0 {
		t.Fatalf("expected no competitions, got %+v", result.Competitions)
	}
}

func TestGetWrappedAndBare(t *testing.T) {
	svc := newTestService(t, func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/competitions/wrapped":
			_, _ = w.Write([]byte(`{"success":true,"data":{"competition":{"_id":"c1","title":"Wrapped"}}}`))
		case "/competitions/bare":
			_, _ = w.Write([]byte(`{"_id":"c2","title":"Bare"}`))
		default:
			http.NotFound(w, r)
		}
	})

	wrapped, err := svc.Get(context.Background(), "wrapped")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if wrapped.Title != "Wrapped" {
		t.Fatalf("title = %q", wrapped.Title)
	}

	bare, err := svc.Get(context.Background(), "bare")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if bare.ID != "c2" || bare.Title != "Bare" {
		t.Fatalf("unexpected competition %+v", bare)
	}
}

func TestGetMissingPayload(t *testing.T) {
	svc := newTestService(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"success":true,"data":{}}`))
	})

	_, err := svc.Get(context.Background(), "ghost")
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestFeatured(t *testing.T) {
	svc := newTestService(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/competitions/featured" {
			t.Fatalf("unexpected path %s", r.URL.Path)
		}
		_, _ = w.Write([]byte(`{"success":true,"data":{"competitions":[{"_id":"f1","featured":true}]}}`))
	})

	featured, err := svc.Featured(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(featured) != 1 || !featured[0].Featured {
		t.Fatalf("unexpected featured %+v", featured)
	}
}
