package profile

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"fortuna-data-service/internal/auth"
	"fortuna-data-service/internal/domain"
	"fortuna-data-service/internal/providers"
	"fortuna-data-service/internal/testutil"
)

func TestGetCachesAfterFirstFetch(t *testing.T) {
	provider := &testutil.FakeProvider{Profile: domain.Profile{Nickname: "haeun"}}
	calls := 0
	provider.ProfileFn = func(ctx context.Context, token string) (domain.Profile, error) {
		calls++
		return domain.Profile{Nickname: "haeun"}, nil
	}
	svc := NewService(provider, auth.Static{Value: "token"}, nil)

	for i := 0; i < 3; i++ {
		got, err := svc.Get(context.Background())
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if got.Nickname != "haeun" {
			t.Fatalf("unexpected profile %+v", got)
		}
	}
	if calls != 1 {
		t.Fatalf("expected a single fetch, got %d", calls)
	}
}

func TestGetFailureIsNotCached(t *testing.T) {
	var fail atomic.Bool
	fail.Store(true)
	provider := &testutil.FakeProvider{
		ProfileFn: func(ctx context.Context, token string) (domain.Profile, error) {
			if fail.Load() {
				return domain.Profile{}, &providers.TransportError{Err: errors.New("down")}
			}
			return domain.Profile{Nickname: "haeun"}, nil
		},
	}
	svc := NewService(provider, auth.Static{Value: "token"}, nil)

	if _, err := svc.Get(context.Background()); err == nil {
		t.Fatalf("expected first fetch to fail")
	}
	fail.Store(false)
	got, err := svc.Get(context.Background())
	if err != nil {
		t.Fatalf("expected retry to succeed, got %v", err)
	}
	if got.Nickname != "haeun" {
		t.Fatalf("unexpected profile %+v", got)
	}
}

func TestGetWithoutTokenFailsWithoutFetching(t *testing.T) {
	fetched := false
	provider := &testutil.FakeProvider{
		ProfileFn: func(ctx context.Context, token string) (domain.Profile, error) {
			fetched = true
			return domain.Profile{}, nil
		},
	}
	svc := NewService(provider, auth.Static{}, nil)

	_, err := svc.Get(context.Background())
	if _, ok := providers.AsAuthRequiredError(err); !ok {
		t.Fatalf("expected an auth-required error, got %v", err)
	}
	if fetched {
		t.Fatalf("provider must not be contacted without a token")
	}
}

func TestConcurrentFirstCallsShareOneFetch(t *testing.T) {
	release := make(chan struct{})
	var calls atomic.Int32
	provider := &testutil.FakeProvider{
		ProfileFn: func(ctx context.Context, token string) (domain.Profile, error) {
			calls.Add(1)
			<-release
			return domain.Profile{Nickname: "haeun"}, nil
		},
	}
	svc := NewService(provider, auth.Static{Value: "token"}, nil)

	var wg sync.WaitGroup
	for i := 0; i < 4; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if _, err := svc.Get(context.Background()); err != nil {
				t.Errorf("unexpected error: %v", err)
			}
		}()
	}
	// Let the goroutines pile up on the shared call before releasing it.
	for calls.Load() == 0 {
		time.Sleep(time.Millisecond)
	}
	close(release)
	wg.Wait()

	if calls.Load() != 1 {
		t.Fatalf("expected one shared fetch, got %d", calls.Load())
	}
}

func TestInvalidateForcesRefetch(t *testing.T) {
	calls := 0
	provider := &testutil.FakeProvider{
		ProfileFn: func(ctx context.Context, token string) (domain.Profile, error) {
			calls++
			return domain.Profile{Nickname: "haeun"}, nil
		},
	}
	svc := NewService(provider, auth.Static{Value: "token"}, nil)

	svc.Get(context.Background())
	svc.Invalidate()
	svc.Get(context.Background())

	if calls != 2 {
		t.Fatalf("expected refetch after invalidate, got %d calls", calls)
	}
}
