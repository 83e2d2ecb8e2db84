package testutil

import (
	"context"
	"sync/atomic"

	"fortuna-data-service/internal/domain"
)

// FakeProvider is a scriptable DataProvider for tests. Unset hooks fall
// back to the struct's fixed values. FortuneCalls counts FetchFortune
// invocations and is safe to read concurrently.
type FakeProvider struct {
	Fortune domain.Fortune
	Profile domain.Profile
	Images  []domain.ImageRef
	Err     error

	FortuneFn func(ctx context.Context, key domain.FortuneKey, token string) (domain.Fortune, error)
	ProfileFn func(ctx context.Context, token string) (domain.Profile, error)
	ImagesFn  func(ctx context.Context, date string, token string) ([]domain.ImageRef, error)

	fortuneCalls atomic.Int32
}

func (p *FakeProvider) FetchFortune(ctx context.Context, key domain.FortuneKey, token string) (domain.Fortune, error) {
	p.fortuneCalls.Add(1)
	if p.FortuneFn != nil {
		return p.FortuneFn(ctx, key, token)
	}
	if p.Err != nil {
		return domain.Fortune{}, p.Err
	}
	f := p.Fortune
	if f.Date == "" {
		f.Date = key.Date
	}
	return f, nil
}

func (p *FakeProvider) FetchProfile(ctx context.Context, token string) (domain.Profile, error) {
	if p.ProfileFn != nil {
		return p.ProfileFn(ctx, token)
	}
	if p.Err != nil {
		return domain.Profile{}, p.Err
	}
	return p.Profile, nil
}

func (p *FakeProvider) FetchImages(ctx context.Context, date string, token string) ([]domain.ImageRef, error) {
	if p.ImagesFn != nil {
		return p.ImagesFn(ctx, date, token)
	}
	if p.Err != nil {
		return nil, p.Err
	}
	return p.Images, nil
}

// FortuneCalls reports how many times FetchFortune ran.
func (p *FakeProvider) FortuneCalls() int {
	return int(p.fortuneCalls.Load())
}
