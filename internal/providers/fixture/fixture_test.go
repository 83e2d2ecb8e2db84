package fixture

import (
	"context"
	"reflect"
	"testing"

	"fortuna-data-service/internal/domain"
)

func TestFetchFortuneDeterministic(t *testing.T) {
	p := New()
	key := domain.FortuneKey{Date: "2025-03-01", Variant: domain.VariantToday}

	first, err := p.FetchFortune(context.Background(), key, "")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	second, err := p.FetchFortune(context.Background(), key, "")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !reflect.DeepEqual(first, second) {
		t.Fatalf("same key must yield the same reading")
	}
	if first.Date != key.Date {
		t.Fatalf("expected date %s, got %s", key.Date, first.Date)
	}
}

func TestFetchFortuneVariantsDiffer(t *testing.T) {
	p := New()
	today, _ := p.FetchFortune(context.Background(), domain.FortuneKey{Date: "2025-03-01", Variant: domain.VariantToday}, "")
	tomorrow, _ := p.FetchFortune(context.Background(), domain.FortuneKey{Date: "2025-03-01", Variant: domain.VariantTomorrow}, "")
	if reflect.DeepEqual(today.Score, tomorrow.Score) {
		t.Fatalf("today and tomorrow readings should differ")
	}
}

func TestFetchFortuneHasAllLuckPeriods(t *testing.T) {
	p := New()
	fortune, err := p.FetchFortune(context.Background(), domain.FortuneKey{Date: "2025-07-14", Variant: domain.VariantToday}, "")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	for _, period := range domain.LuckPeriods {
		if _, ok := fortune.Score.LuckPeriod(period); !ok {
			t.Fatalf("missing luck period %s", period)
		}
	}
	if fortune.Overall < 40 || fortune.Overall > 100 {
		t.Fatalf("overall score out of range: %d", fortune.Overall)
	}
}

func TestFetchFortuneRejectsBadKey(t *testing.T) {
	p := New()
	if _, err := p.FetchFortune(context.Background(), domain.FortuneKey{Date: "nope", Variant: domain.VariantToday}, ""); err == nil {
		t.Fatalf("expected error for invalid date")
	}
	if _, err := p.FetchFortune(context.Background(), domain.FortuneKey{Date: "2025-03-01", Variant: "yesterday"}, ""); err == nil {
		t.Fatalf("expected error for invalid variant")
	}
}

func TestFetchProfile(t *testing.T) {
	p := New()
	profile, err := p.FetchProfile(context.Background(), "")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if profile.Nickname != "fixture" {
		t.Fatalf("unexpected nickname %q", profile.Nickname)
	}
	if profile.Saju.Daily.TwoLetters == "" {
		t.Fatalf("expected daily pillar to be populated")
	}
}

func TestFetchImages(t *testing.T) {
	p := New()
	refs, err := p.FetchImages(context.Background(), "2025-03-01", "")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(refs) < 1 || len(refs) > 3 {
		t.Fatalf("expected between 1 and 3 refs, got %d", len(refs))
	}
	again, _ := p.FetchImages(context.Background(), "2025-03-01", "")
	if !reflect.DeepEqual(refs, again) {
		t.Fatalf("same date must yield the same refs")
	}
}
