package providers

import (
	"context"

	"fortuna-data-service/internal/domain"
)

// FortuneProvider defines how a day's fortune is fetched and normalized.
// The key's date is a YYYY-MM-DD string; the variant selects the today or
// tomorrow reading. Implementations own their own timeout and surface the
// typed failures in errors.go; they never retry on their own.
type FortuneProvider interface {
	FetchFortune(ctx context.Context, key domain.FortuneKey, token string) (domain.Fortune, error)
}

// ProfileProvider fetches the user's stored birth saju.
type ProfileProvider interface {
	FetchProfile(ctx context.Context, token string) (domain.Profile, error)
}

// ImageProvider fetches the chakra images uploaded for a date. Callers
// bind the result to a fixed number of display slots; implementations may
// return fewer or more refs than the slot count.
type ImageProvider interface {
	FetchImages(ctx context.Context, date string, token string) ([]domain.ImageRef, error)
}

// DataProvider combines all provider capabilities.
type DataProvider interface {
	FortuneProvider
	ProfileProvider
	ImageProvider
}
