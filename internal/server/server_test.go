package server

import (
	"context"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"fortuna-data-service/internal/config"
	"fortuna-data-service/internal/metrics"
	"fortuna-data-service/internal/testutil"
)

func fixtureConfig() config.Config {
	return config.Config{
		Port:         "0",
		Provider:     "fixture",
		Timezone:     "UTC",
		RolloverCron: "5 0 0 * * *",
		Auth:         config.AuthConfig{Token: "token"},
		Metrics:      config.MetricsConfig{Enabled: false},
	}
}

func TestNewBuildsWorkingHandler(t *testing.T) {
	logger, _ := testutil.NewBufferLogger()
	srv, err := New(fixtureConfig(), logger)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	rr := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rr, httptest.NewRequest("GET", "/health", nil))
	if rr.Code != http.StatusOK {
		t.Fatalf("expected 200 from /health, got %d", rr.Code)
	}
}

func TestNewServesFixtureFortunes(t *testing.T) {
	logger, _ := testutil.NewBufferLogger()
	srv, err := New(fixtureConfig(), logger)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	rr := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rr, httptest.NewRequest("GET", "/fortune/today", nil))
	if rr.Code != http.StatusAccepted && rr.Code != http.StatusOK {
		t.Fatalf("expected 202 or 200, got %d", rr.Code)
	}
}

func TestNewWithoutAdminTokenHidesAdminRoutes(t *testing.T) {
	logger, _ := testutil.NewBufferLogger()
	srv, err := New(fixtureConfig(), logger)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	rr := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rr, httptest.NewRequest("POST", "/admin/refresh", nil))
	if rr.Code != http.StatusNotFound {
		t.Fatalf("expected admin routes unregistered, got %d", rr.Code)
	}
}

func TestNewWithSQLiteTokenStore(t *testing.T) {
	logger, _ := testutil.NewBufferLogger()
	cfg := fixtureConfig()
	cfg.AdminToken = "admin-secret"
	cfg.Auth = config.AuthConfig{
		DBPath:    filepath.Join(t.TempDir(), "auth.db"),
		Namespace: "fortuna",
	}

	srv, err := New(cfg, logger)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if srv.tokenStore == nil {
		t.Fatalf("expected a sqlite token store")
	}
	defer srv.tokenStore.Close()

	// With no stored token, fortune requests fail as auth-required.
	rr := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rr, httptest.NewRequest("GET", "/fortune/today", nil))
	if rr.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 without a stored token, got %d", rr.Code)
	}

	// Store one through the admin surface; the next request proceeds.
	req := httptest.NewRequest("POST", "/admin/token", nil)
	req.Header.Set("Authorization", "Bearer admin-secret")
	req.Body = http.NoBody
	rr = httptest.NewRecorder()
	srv.Handler().ServeHTTP(rr, req)
	if rr.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for an empty token body, got %d", rr.Code)
	}
}

func TestRunShutsDownOnContextCancel(t *testing.T) {
	logger, _ := testutil.NewBufferLogger()
	srv, err := New(fixtureConfig(), logger)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		srv.Run(ctx, cancel)
		close(done)
	}()

	cancel()
	select {
	case <-done:
	case <-time.After(5 * time.Second):
		t.Fatalf("server did not shut down")
	}
}

func TestBuildMetricsFallsBackOnSetupError(t *testing.T) {
	orig := metricsSetup
	metricsSetup = func(ctx context.Context, cfg metrics.TelemetryConfig) (*metrics.Recorder, http.Handler, func(context.Context) error, error) {
		return nil, nil, nil, context.DeadlineExceeded
	}
	defer func() { metricsSetup = orig }()

	logger, buf := testutil.NewBufferLogger()
	recorder, metricsSrv, stop := buildMetrics(fixtureConfig(), logger)
	if recorder == nil {
		t.Fatalf("expected a fallback recorder")
	}
	if metricsSrv != nil || stop != nil {
		t.Fatalf("expected no metrics server on setup failure")
	}
	if buf.Len() == 0 {
		t.Fatalf("expected a warning log")
	}
}
