package server

import (
	"log/slog"

	"fortuna-data-service/internal/config"
	"fortuna-data-service/internal/metrics"
	"fortuna-data-service/internal/providers"
	"fortuna-data-service/internal/providers/fixture"
	"fortuna-data-service/internal/providers/fortuna"
)

// buildProvider selects the backend by configuration and wraps it with
// fetch instrumentation. Unknown names fall back to the fixture provider
// so a typo degrades to deterministic local data instead of a crash.
func buildProvider(cfg config.Config, logger *slog.Logger, recorder *metrics.Recorder) providers.DataProvider {
	name, base := selectProvider(cfg, logger)
	return providers.NewInstrumentedProvider(base, name, logger, recorder)
}

func selectProvider(cfg config.Config, logger *slog.Logger) (string, providers.DataProvider) {
	switch cfg.Provider {
	case fortuna.ProviderName:
		return fortuna.ProviderName, fortuna.NewClient(fortuna.Config{
			BaseURL: cfg.Fortuna.BaseURL,
			Timeout: cfg.Fortuna.Timeout,
		})
	case fixture.ProviderName:
		return fixture.ProviderName, fixture.New()
	default:
		if logger != nil {
			logger.Warn("unknown provider, using fixture", slog.String("provider", cfg.Provider))
		}
		return fixture.ProviderName, fixture.New()
	}
}
