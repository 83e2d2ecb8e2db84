package config

import (
	"testing"
	"time"
)

func TestOverrideString(t *testing.T) {
	target := "before"
	overrideString(&target, "CONFIG_TEST_UNSET")
	if target != "before" {
		t.Fatalf("unset env should not override, got %s", target)
	}

	t.Setenv("CONFIG_TEST_STR", "after")
	overrideString(&target, "CONFIG_TEST_STR")
	if target != "after" {
		t.Fatalf("expected override, got %s", target)
	}
}

func TestOverrideBool(t *testing.T) {
	cases := []struct {
		raw  string
		from bool
		want bool
	}{
		{"1", false, true},
		{"true", false, true},
		{"YES", false, true},
		{"0", true, false},
		{"False", true, false},
		{"no", true, false},
		{"maybe", true, true},
		{"", false, false},
	}
	for _, tc := range cases {
		target := tc.from
		t.Setenv("CONFIG_TEST_BOOL", tc.raw)
		overrideBool(&target, "CONFIG_TEST_BOOL")
		if target != tc.want {
			t.Fatalf("raw %q: got %v, want %v", tc.raw, target, tc.want)
		}
	}
}

func TestOverrideDuration(t *testing.T) {
	target := time.Minute

	t.Setenv("CONFIG_TEST_DUR", "bogus")
	overrideDuration(&target, "CONFIG_TEST_DUR")
	if target != time.Minute {
		t.Fatalf("invalid duration should keep previous value")
	}

	t.Setenv("CONFIG_TEST_DUR", "-5s")
	overrideDuration(&target, "CONFIG_TEST_DUR")
	if target != time.Minute {
		t.Fatalf("non-positive duration should keep previous value")
	}

	t.Setenv("CONFIG_TEST_DUR", "90s")
	overrideDuration(&target, "CONFIG_TEST_DUR")
	if target != 90*time.Second {
		t.Fatalf("expected 90s, got %v", target)
	}
}
