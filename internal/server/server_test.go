package server

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"prize-portal-service/internal/config"
)

func testConfig(t *testing.T) config.Config {
	t.Helper()
	return config.Config{
		Port: "0",
		API: config.APIConfig{
			BaseURL: "http://127.0.0.1:1", // never dialled in these tests
			Timeout: time.Second,
		},
		Refresh: config.RefreshConfig{Enabled: false, Interval: time.Hour},
		Persist: config.PersistConfig{Path: t.TempDir()},
	}
}

func TestNewWiresHandler(t *testing.T) {
	srv := New(testConfig(t), nil)

	rec := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/healthz", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("healthz = %d", rec.Code)
	}
}

func TestReadyWhenRefreshDisabled(t *testing.T) {
	srv := New(testConfig(t), nil)

	rec := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/readyz", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("readyz = %d, want ready when the refresher is disabled", rec.Code)
	}
}

func TestNotReadyBeforeFirstRefresh(t *testing.T) {
	cfg := testConfig(t)
	cfg.Refresh.Enabled = true
	srv := New(cfg, nil)

	rec := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/readyz", nil))
	if rec.Code != http.StatusServiceUnavailable {
		t.Fatalf("readyz = %d, want 503 before the first successful refresh", rec.Code)
	}
}

func TestRunShutsDownOnCancel(t *testing.T) {
	srv := New(testConfig(t), nil)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		srv.Run(ctx, cancel)
		close(done)
	}()

	time.Sleep(50 * time.Millisecond)
	cancel()

	select {
	case <-done:
	case <-time.After(5 * time.Second):
		t.Fatal("Run did not return after cancellation")
	}
}

func TestMetricsEndpointMounted(t *testing.T) {
	cfg := testConfig(t)
	cfg.Metrics.Enabled = true
	srv := New(cfg, nil)

	rec := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("metrics = %d", rec.Code)
	}
}
