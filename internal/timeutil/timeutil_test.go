package timeutil

import (
	"testing"
	"time"
)

func TestParseAndFormatDate(t *testing.T) {
	parsed, err := ParseDate("2025-03-01")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got := FormatDate(parsed); got != "2025-03-01" {
		t.Fatalf("round trip mismatch: %s", got)
	}

	if _, err := ParseDate("03/01/2025"); err == nil {
		t.Fatalf("expected error for non-canonical layout")
	}
}

func TestTodayAndTomorrowRespectLocation(t *testing.T) {
	seoul, err := time.LoadLocation("Asia/Seoul")
	if err != nil {
		t.Fatalf("load location: %v", err)
	}

	// 20:00 UTC on March 1 is already March 2 in Seoul.
	now := time.Date(2025, 3, 1, 20, 0, 0, 0, time.UTC)

	if got := Today(now, time.UTC); got != "2025-03-01" {
		t.Fatalf("utc today = %s", got)
	}
	if got := Today(now, seoul); got != "2025-03-02" {
		t.Fatalf("seoul today = %s", got)
	}
	if got := Tomorrow(now, seoul); got != "2025-03-03" {
		t.Fatalf("seoul tomorrow = %s", got)
	}
	if got := Today(now, nil); got != "2025-03-01" {
		t.Fatalf("nil location should default to UTC, got %s", got)
	}
}

func TestSameDay(t *testing.T) {
	morning := time.Date(2025, 3, 1, 0, 30, 0, 0, time.UTC)
	evening := time.Date(2025, 3, 1, 23, 30, 0, 0, time.UTC)
	nextDay := time.Date(2025, 3, 2, 0, 1, 0, 0, time.UTC)

	if !SameDay(morning, evening, time.UTC) {
		t.Fatalf("expected same calendar day")
	}
	if SameDay(evening, nextDay, time.UTC) {
		t.Fatalf("expected day rollover to split days")
	}
}

func TestBeforeDay(t *testing.T) {
	now := time.Date(2025, 3, 2, 9, 0, 0, 0, time.UTC)

	if !BeforeDay("2025-03-01", now, time.UTC) {
		t.Fatalf("yesterday should be before today")
	}
	if BeforeDay("2025-03-02", now, time.UTC) {
		t.Fatalf("today is not before today")
	}
	if BeforeDay("2025-03-03", now, time.UTC) {
		t.Fatalf("tomorrow is not before today")
	}
	if BeforeDay("garbage", now, time.UTC) {
		t.Fatalf("unparseable dates should not be evicted")
	}
}
