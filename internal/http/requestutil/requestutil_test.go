package requestutil

import (
	"net/http/httptest"
	"testing"
)

func TestSanitizeRequestIDKeepsValidIDs(t *testing.T) {
	cases := []string{"abc123", "req-42", "a_b-C"}
	for _, id := range cases {
		if got := SanitizeRequestID(id); got != id {
			t.Fatalf("expected %q kept, got %q", id, got)
		}
	}
}

func TestSanitizeRequestIDReplacesInvalidIDs(t *testing.T) {
	cases := []string{"", "has space", "bad/slash", "way" + string(make([]byte, 70))}
	for _, id := range cases {
		got := SanitizeRequestID(id)
		if got == id || got == "" {
			t.Fatalf("expected a fresh id for %q, got %q", id, got)
		}
	}
}

func TestNewRequestIDIsUnique(t *testing.T) {
	if NewRequestID() == NewRequestID() {
		t.Fatalf("expected distinct ids")
	}
}

func TestClientIPPrefersForwardedFor(t *testing.T) {
	r := httptest.NewRequest("GET", "/", nil)
	r.RemoteAddr = "10.0.0.1:1234"
	if got := ClientIP(r); got != "10.0.0.1:1234" {
		t.Fatalf("expected remote addr, got %q", got)
	}

	r.Header.Set("X-Forwarded-For", "203.0.113.5, 10.0.0.1")
	if got := ClientIP(r); got != "203.0.113.5" {
		t.Fatalf("expected first forwarded hop, got %q", got)
	}
}

func TestBoolParam(t *testing.T) {
	for _, v := range []string{"1", "true", "TRUE", "yes", " true "} {
		if !BoolParam(v) {
			t.Fatalf("expected %q to read true", v)
		}
	}
	for _, v := range []string{"", "0", "false", "no", "maybe"} {
		if BoolParam(v) {
			t.Fatalf("expected %q to read false", v)
		}
	}
}
