// Package fortunes resolves "today" and "tomorrow" requests against the
// wall clock and drives the fortune state store.
package fortunes

import (
	"context"
	"time"

	"fortuna-data-service/internal/domain"
	"fortuna-data-service/internal/fortune"
	"fortuna-data-service/internal/timeutil"
)

// StateStore is the slice of the fortune store the service needs.
type StateStore interface {
	Request(ctx context.Context, key domain.FortuneKey, force bool) error
	State(key domain.FortuneKey) fortune.State
	Subscribe(key domain.FortuneKey, fn func(key domain.FortuneKey, state fortune.State)) *fortune.Subscription
	ClearError(key domain.FortuneKey)
	Invalidate(key domain.FortuneKey)
}

// Service maps variants onto dated cache keys. The key's date is always
// the current calendar date in the configured timezone; the variant says
// which reading of that date is wanted.
type Service struct {
	store StateStore
	clock func() time.Time
	loc   *time.Location
}

// NewService constructs a Service. A nil clock defaults to time.Now; a
// nil location defaults to UTC.
func NewService(store StateStore, clock func() time.Time, loc *time.Location) *Service {
	if clock == nil {
		clock = time.Now
	}
	if loc == nil {
		loc = time.UTC
	}
	return &Service{store: store, clock: clock, loc: loc}
}

// KeyFor returns the cache key a variant resolves to right now.
func (s *Service) KeyFor(variant domain.Variant) domain.FortuneKey {
	return domain.FortuneKey{
		Date:    timeutil.Today(s.clock(), s.loc),
		Variant: variant,
	}
}

// Request resolves the variant to a key and asks the store for it. The
// resolved key is returned so callers can watch it.
func (s *Service) Request(ctx context.Context, variant domain.Variant, force bool) (domain.FortuneKey, error) {
	key := s.KeyFor(variant)
	if err := s.store.Request(ctx, key, force); err != nil {
		return domain.FortuneKey{}, err
	}
	return key, nil
}

// State returns the current state for a variant's resolved key.
func (s *Service) State(variant domain.Variant) (domain.FortuneKey, fortune.State) {
	key := s.KeyFor(variant)
	return key, s.store.State(key)
}

// Watch subscribes to a variant's resolved key.
func (s *Service) Watch(variant domain.Variant, fn func(key domain.FortuneKey, state fortune.State)) (domain.FortuneKey, *fortune.Subscription) {
	key := s.KeyFor(variant)
	return key, s.store.Subscribe(key, fn)
}

// ClearError acknowledges a failure on a variant's resolved key.
func (s *Service) ClearError(variant domain.Variant) {
	s.store.ClearError(s.KeyFor(variant))
}

// Invalidate drops a variant's resolved slot.
func (s *Service) Invalidate(variant domain.Variant) {
	s.store.Invalidate(s.KeyFor(variant))
}

// RequestKey asks the store for an explicit key, for callers that pin a
// date instead of resolving it from the clock.
func (s *Service) RequestKey(ctx context.Context, key domain.FortuneKey, force bool) error {
	return s.store.Request(ctx, key, force)
}

// StateOf reads the state of an explicit key.
func (s *Service) StateOf(key domain.FortuneKey) fortune.State {
	return s.store.State(key)
}

// WatchKey subscribes to an explicit key.
func (s *Service) WatchKey(key domain.FortuneKey, fn func(key domain.FortuneKey, state fortune.State)) *fortune.Subscription {
	return s.store.Subscribe(key, fn)
}
