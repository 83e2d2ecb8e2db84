package providers

import (
	"context"
	"log/slog"
	"time"

	"fortuna-data-service/internal/domain"
	"fortuna-data-service/internal/logging"
	"fortuna-data-service/internal/metrics"
)

// instrumentedProvider wraps a DataProvider with fetch metrics and
// logging. It adds no behavior to the fetch itself: no retries, no
// caching; the store owns that policy.
type instrumentedProvider struct {
	inner    DataProvider
	name     string
	logger   *slog.Logger
	recorder *metrics.Recorder
}

// NewInstrumentedProvider decorates the given provider with metrics and logs.
func NewInstrumentedProvider(inner DataProvider, name string, logger *slog.Logger, recorder *metrics.Recorder) DataProvider {
	return &instrumentedProvider{
		inner:    inner,
		name:     name,
		logger:   logger,
		recorder: recorder,
	}
}

func (p *instrumentedProvider) FetchFortune(ctx context.Context, key domain.FortuneKey, token string) (domain.Fortune, error) {
	start := time.Now()
	fortune, err := p.inner.FetchFortune(ctx, key, token)
	p.observe(ctx, "fortune fetch", time.Since(start), err,
		slog.String(logging.FieldDate, key.Date),
		slog.String(logging.FieldVariant, string(key.Variant)),
	)
	return fortune, err
}

func (p *instrumentedProvider) FetchProfile(ctx context.Context, token string) (domain.Profile, error) {
	start := time.Now()
	profile, err := p.inner.FetchProfile(ctx, token)
	p.observe(ctx, "profile fetch", time.Since(start), err)
	return profile, err
}

func (p *instrumentedProvider) FetchImages(ctx context.Context, date string, token string) ([]domain.ImageRef, error) {
	start := time.Now()
	refs, err := p.inner.FetchImages(ctx, date, token)
	p.observe(ctx, "images fetch", time.Since(start), err,
		slog.String(logging.FieldDate, date),
	)
	return refs, err
}

func (p *instrumentedProvider) observe(ctx context.Context, op string, elapsed time.Duration, err error, attrs ...any) {
	if p.recorder != nil {
		p.recorder.RecordFetch(p.name, elapsed, err)
	}

	logger := logging.FromContext(ctx, p.logger)
	if logger == nil {
		return
	}
	attrs = append(attrs,
		slog.String(logging.FieldProvider, p.name),
		slog.Int64(logging.FieldDurationMS, elapsed.Milliseconds()),
	)
	if err == nil {
		logger.Info(op+" ok", attrs...)
		return
	}
	// Malformed payloads indicate a contract break, not a flaky network.
	if _, ok := AsMalformedResponseError(err); ok {
		logger.Error(op+" returned malformed payload", append(attrs, "error", err)...)
		return
	}
	logger.Warn(op+" failed", append(attrs, "error", err)...)
}
