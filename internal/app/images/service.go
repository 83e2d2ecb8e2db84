// Package images binds a date's uploaded chakra images to the fixed
// display grid the client renders.
package images

import (
	"context"
	"log/slog"

	"fortuna-data-service/internal/auth"
	"fortuna-data-service/internal/domain"
	"fortuna-data-service/internal/providers"
)

// SlotCount is how many grid slots the client renders per day.
const SlotCount = 4

// Service fetches image refs and trims them to the grid. No caching:
// uploads can land at any time, so every read goes upstream.
type Service struct {
	provider providers.ImageProvider
	tokens   auth.TokenProvider
	logger   *slog.Logger
}

func NewService(provider providers.ImageProvider, tokens auth.TokenProvider, logger *slog.Logger) *Service {
	return &Service{provider: provider, tokens: tokens, logger: logger}
}

// Grid returns the date's images bound to at most SlotCount slots, newest
// refs first as the upstream orders them.
func (s *Service) Grid(ctx context.Context, date string) (domain.ImageGrid, error) {
	token, err := s.tokens.Token(ctx)
	if err != nil {
		return domain.ImageGrid{}, &providers.AuthRequiredError{}
	}

	refs, err := s.provider.FetchImages(ctx, date, token)
	if err != nil {
		return domain.ImageGrid{}, err
	}
	if len(refs) > SlotCount {
		refs = refs[:SlotCount]
	}
	return domain.ImageGrid{Date: date, Slots: refs}, nil
}
