package http

import (
	nethttp "net/http"
	"net/http/httptest"
	"testing"
	"time"

	"fortuna-data-service/internal/app/fortunes"
	"fortuna-data-service/internal/app/images"
	"fortuna-data-service/internal/app/profile"
	"fortuna-data-service/internal/auth"
	"fortuna-data-service/internal/fortune"
	"fortuna-data-service/internal/http/handlers"
	"fortuna-data-service/internal/testutil"
)

func newTestRouter(t *testing.T, withAdmin bool) nethttp.Handler {
	t.Helper()
	provider := &testutil.FakeProvider{}
	tokens := auth.Static{Value: "token"}
	clock := testutil.NowAt(testutil.MustParseRFC3339("2025-03-01T10:00:00Z"))
	store := fortune.NewStore(fortune.Options{Provider: provider, Tokens: tokens, Clock: clock})
	fortuneSvc := fortunes.NewService(store, clock, time.UTC)
	handler := handlers.NewHandler(
		fortuneSvc,
		profile.NewService(provider, tokens, nil),
		images.NewService(provider, tokens, nil),
		nil, nil,
	)
	var admin *handlers.AdminHandler
	if withAdmin {
		admin = handlers.NewAdminHandler(fortuneSvc, nil, nil, "admin-secret", nil)
	}
	return NewRouter(handler, admin)
}

func TestRouterRoutes(t *testing.T) {
	router := newTestRouter(t, true)

	cases := []struct {
		method string
		path   string
		expect int
	}{
		{"GET", "/health", nethttp.StatusOK},
		{"GET", "/ready", nethttp.StatusOK},
		{"GET", "/fortune/today", nethttp.StatusAccepted},
		{"GET", "/fortune/tomorrow", nethttp.StatusAccepted},
		{"GET", "/profile", nethttp.StatusOK},
		{"GET", "/images", nethttp.StatusOK},
		{"POST", "/admin/refresh", nethttp.StatusUnauthorized},
		{"GET", "/nope", nethttp.StatusNotFound},
	}
	for _, tc := range cases {
		rr := httptest.NewRecorder()
		router.ServeHTTP(rr, httptest.NewRequest(tc.method, tc.path, nil))
		if rr.Code != tc.expect {
			t.Fatalf("%s %s: expected %d, got %d", tc.method, tc.path, tc.expect, rr.Code)
		}
	}
}

func TestRouterWithoutAdmin(t *testing.T) {
	router := newTestRouter(t, false)

	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, httptest.NewRequest("POST", "/admin/refresh", nil))
	if rr.Code != nethttp.StatusNotFound {
		t.Fatalf("expected admin routes unregistered, got %d", rr.Code)
	}
}
