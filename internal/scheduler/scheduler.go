// Package scheduler runs the day-rollover janitor: shortly after
// midnight it evicts stale fortune slots and optionally warms the new
// day's readings.
package scheduler

import (
	"context"
	"log/slog"
	"time"

	"github.com/robfig/cron/v3"

	"fortuna-data-service/internal/domain"
	"fortuna-data-service/internal/logging"
)

// Store is the eviction surface of the fortune store.
type Store interface {
	EvictStale(now time.Time) int
}

// Requester resolves a variant and starts a fetch for it.
type Requester interface {
	Request(ctx context.Context, variant domain.Variant, force bool) (domain.FortuneKey, error)
}

// Config controls the janitor schedule.
type Config struct {
	// CronSpec is a six-field cron expression (with seconds). The
	// default fires at 00:00:05 local time, just past the rollover.
	CronSpec string
	// Prefetch warms today's and tomorrow's readings after eviction.
	Prefetch bool
}

const defaultCronSpec = "5 0 0 * * *"

// Janitor owns the cron loop. Construct with New, then Start; RunOnce is
// exposed for the admin trigger and for tests.
type Janitor struct {
	store    Store
	requests Requester
	cfg      Config
	clock    func() time.Time
	logger   *slog.Logger
	cron     *cron.Cron
}

func New(store Store, requests Requester, cfg Config, clock func() time.Time, loc *time.Location, logger *slog.Logger) *Janitor {
	if cfg.CronSpec == "" {
		cfg.CronSpec = defaultCronSpec
	}
	if clock == nil {
		clock = time.Now
	}
	if loc == nil {
		loc = time.UTC
	}
	return &Janitor{
		store:    store,
		requests: requests,
		cfg:      cfg,
		clock:    clock,
		logger:   logger,
		cron:     cron.New(cron.WithSeconds(), cron.WithLocation(loc)),
	}
}

// Start schedules the janitor. It fails only on an invalid cron spec.
func (j *Janitor) Start() error {
	if _, err := j.cron.AddFunc(j.cfg.CronSpec, func() {
		j.RunOnce(context.Background())
	}); err != nil {
		return err
	}
	j.cron.Start()
	logging.Info(j.logger, "rollover janitor started", "cron", j.cfg.CronSpec)
	return nil
}

// Stop halts the schedule and waits for a running tick to finish.
func (j *Janitor) Stop(ctx context.Context) {
	done := j.cron.Stop().Done()
	select {
	case <-done:
	case <-ctx.Done():
	}
	logging.Info(j.logger, "rollover janitor stopped")
}

// RunOnce performs one janitor pass: evict, then optionally prefetch.
func (j *Janitor) RunOnce(ctx context.Context) {
	now := j.clock()
	evicted := j.store.EvictStale(now)
	logging.Info(j.logger, "rollover pass completed", logging.FieldCount, evicted)

	if !j.cfg.Prefetch || j.requests == nil {
		return
	}
	for _, variant := range []domain.Variant{domain.VariantToday, domain.VariantTomorrow} {
		if _, err := j.requests.Request(ctx, variant, false); err != nil {
			logging.Warn(j.logger, "rollover prefetch failed",
				logging.FieldVariant, string(variant), "error", err)
		}
	}
}
