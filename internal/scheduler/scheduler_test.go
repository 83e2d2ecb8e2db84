package scheduler

import (
	"context"
	"testing"
	"time"

	"fortuna-data-service/internal/domain"
	"fortuna-data-service/internal/testutil"
)

type stubStore struct {
	evictions int
	lastNow   time.Time
}

func (s *stubStore) EvictStale(now time.Time) int {
	s.evictions++
	s.lastNow = now
	return 2
}

type stubRequester struct {
	variants []domain.Variant
}

func (s *stubRequester) Request(ctx context.Context, variant domain.Variant, force bool) (domain.FortuneKey, error) {
	_ = ctx
	_ = force
	s.variants = append(s.variants, variant)
	return domain.FortuneKey{Date: "2025-03-02", Variant: variant}, nil
}

func TestRunOnceEvictsWithClockTime(t *testing.T) {
	store := &stubStore{}
	at := testutil.MustParseRFC3339("2025-03-02T00:00:05Z")
	j := New(store, nil, Config{}, testutil.NowAt(at), nil, nil)

	j.RunOnce(context.Background())

	if store.evictions != 1 {
		t.Fatalf("expected one eviction pass, got %d", store.evictions)
	}
	if !store.lastNow.Equal(at) {
		t.Fatalf("expected the janitor clock, got %v", store.lastNow)
	}
}

func TestRunOncePrefetchesBothVariants(t *testing.T) {
	store := &stubStore{}
	requests := &stubRequester{}
	j := New(store, requests, Config{Prefetch: true}, nil, nil, nil)

	j.RunOnce(context.Background())

	if len(requests.variants) != 2 {
		t.Fatalf("expected two prefetches, got %d", len(requests.variants))
	}
	if requests.variants[0] != domain.VariantToday || requests.variants[1] != domain.VariantTomorrow {
		t.Fatalf("unexpected prefetch order: %v", requests.variants)
	}
}

func TestRunOnceSkipsPrefetchWhenDisabled(t *testing.T) {
	store := &stubStore{}
	requests := &stubRequester{}
	j := New(store, requests, Config{Prefetch: false}, nil, nil, nil)

	j.RunOnce(context.Background())

	if len(requests.variants) != 0 {
		t.Fatalf("expected no prefetches, got %v", requests.variants)
	}
}

func TestStartRejectsBadCronSpec(t *testing.T) {
	j := New(&stubStore{}, nil, Config{CronSpec: "not a cron line"}, nil, nil, nil)
	if err := j.Start(); err == nil {
		t.Fatalf("expected an error for a bad cron spec")
	}
}

func TestStartAndStop(t *testing.T) {
	j := New(&stubStore{}, nil, Config{}, nil, nil, nil)
	if err := j.Start(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	j.Stop(ctx)
}
