// Package profile serves the user's stored birth saju, cached for the
// lifetime of the process.
package profile

import (
	"context"
	"log/slog"
	"sync"

	"fortuna-data-service/internal/auth"
	"fortuna-data-service/internal/domain"
	"fortuna-data-service/internal/logging"
	"fortuna-data-service/internal/providers"
)

type call struct {
	done    chan struct{}
	profile domain.Profile
	err     error
}

// Service fetches the profile once and serves it from memory after that.
// Concurrent first calls share a single fetch. Birth data only changes
// through an explicit profile edit, which goes through Invalidate.
type Service struct {
	provider providers.ProfileProvider
	tokens   auth.TokenProvider
	logger   *slog.Logger

	mu      sync.Mutex
	cached  *domain.Profile
	pending *call
}

func NewService(provider providers.ProfileProvider, tokens auth.TokenProvider, logger *slog.Logger) *Service {
	return &Service{provider: provider, tokens: tokens, logger: logger}
}

// Get returns the profile, fetching it on first use. Failures are not
// cached; the next call retries.
func (s *Service) Get(ctx context.Context) (domain.Profile, error) {
	s.mu.Lock()
	if s.cached != nil {
		profile := *s.cached
		s.mu.Unlock()
		return profile, nil
	}
	if s.pending != nil {
		c := s.pending
		s.mu.Unlock()
		select {
		case <-c.done:
			return c.profile, c.err
		case <-ctx.Done():
			return domain.Profile{}, ctx.Err()
		}
	}
	c := &call{done: make(chan struct{})}
	s.pending = c
	s.mu.Unlock()

	c.profile, c.err = s.fetch(ctx)

	s.mu.Lock()
	s.pending = nil
	if c.err == nil {
		cached := c.profile
		s.cached = &cached
	}
	s.mu.Unlock()
	close(c.done)

	return c.profile, c.err
}

// Invalidate drops the cached profile so the next Get refetches.
func (s *Service) Invalidate() {
	s.mu.Lock()
	s.cached = nil
	s.mu.Unlock()
	logging.Info(s.logger, "profile cache invalidated")
}

func (s *Service) fetch(ctx context.Context) (domain.Profile, error) {
	token, err := s.tokens.Token(ctx)
	if err != nil {
		return domain.Profile{}, &providers.AuthRequiredError{}
	}
	return s.provider.FetchProfile(ctx, token)
}
