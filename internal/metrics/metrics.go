package metrics

import (
	"sync"
	"time"
)

type providerStats struct {
	fetches     int
	errors      int
	lastLatency time.Duration
}

type storeStats struct {
	cacheHits     int
	dedupJoins    int
	staleDiscards int
	evictions     int
}

// Recorder captures lightweight, in-memory metrics about fetches and the
// fortune store, mirroring them to OpenTelemetry when configured. The
// in-memory side keeps tests and readiness checks independent of an
// exporter.
type Recorder struct {
	mu    sync.Mutex
	stats map[string]*providerStats
	store storeStats
	otel  *otelInstruments
}

func NewRecorder() *Recorder {
	return newRecorder(nil)
}

func newRecorder(otel *otelInstruments) *Recorder {
	return &Recorder{
		stats: make(map[string]*providerStats),
		otel:  otel,
	}
}

// RecordFetch counts one provider fetch and its outcome.
func (r *Recorder) RecordFetch(provider string, duration time.Duration, err error) {
	if r == nil {
		return
	}

	r.mu.Lock()
	stats := r.ensureStats(provider)
	stats.fetches++
	stats.lastLatency = duration
	if err != nil {
		stats.errors++
	}
	r.mu.Unlock()

	if r.otel != nil {
		r.otel.recordFetch(provider, duration, err)
	}
}

// RecordCacheHit counts a request served from the same-day cache.
func (r *Recorder) RecordCacheHit(variant string) {
	if r == nil {
		return
	}
	r.mu.Lock()
	r.store.cacheHits++
	r.mu.Unlock()
	if r.otel != nil {
		r.otel.recordCacheHit(variant)
	}
}

// RecordDedupJoin counts a request that joined an in-flight fetch.
func (r *Recorder) RecordDedupJoin(variant string) {
	if r == nil {
		return
	}
	r.mu.Lock()
	r.store.dedupJoins++
	r.mu.Unlock()
	if r.otel != nil {
		r.otel.recordDedupJoin(variant)
	}
}

// RecordStaleDiscard counts a completion dropped by the initiation-order rule.
func (r *Recorder) RecordStaleDiscard() {
	if r == nil {
		return
	}
	r.mu.Lock()
	r.store.staleDiscards++
	r.mu.Unlock()
	if r.otel != nil {
		r.otel.recordStaleDiscard()
	}
}

// RecordEvictions counts entries dropped on day rollover.
func (r *Recorder) RecordEvictions(n int) {
	if r == nil || n <= 0 {
		return
	}
	r.mu.Lock()
	r.store.evictions += n
	r.mu.Unlock()
	if r.otel != nil {
		r.otel.recordEvictions(n)
	}
}

// RecordHTTPRequest tracks basic HTTP metrics.
func (r *Recorder) RecordHTTPRequest(method, path string, status int, duration time.Duration) {
	if r == nil || r.otel == nil {
		return
	}
	r.otel.recordHTTPRequest(method, path, status, duration)
}

// FetchCalls returns the total fetches recorded for a provider.
func (r *Recorder) FetchCalls(provider string) int {
	return r.ProviderSnapshot(provider).Fetches
}

// FetchErrors returns the total failed fetches recorded for a provider.
func (r *Recorder) FetchErrors(provider string) int {
	return r.ProviderSnapshot(provider).Errors
}

// CacheHits returns the total same-day cache hits.
func (r *Recorder) CacheHits() int { return r.StoreSnapshot().CacheHits }

// DedupJoins returns the total in-flight joins.
func (r *Recorder) DedupJoins() int { return r.StoreSnapshot().DedupJoins }

// StaleDiscards returns the total discarded stale completions.
func (r *Recorder) StaleDiscards() int { return r.StoreSnapshot().StaleDiscards }

// Evictions returns the total rollover evictions.
func (r *Recorder) Evictions() int { return r.StoreSnapshot().Evictions }

// ProviderSnapshot is a copy of the per-provider counters.
type ProviderSnapshot struct {
	Fetches     int
	Errors      int
	LastLatency time.Duration
}

func (r *Recorder) ProviderSnapshot(provider string) ProviderSnapshot {
	if r == nil {
		return ProviderSnapshot{}
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if stats, ok := r.stats[provider]; ok && stats != nil {
		return ProviderSnapshot{Fetches: stats.fetches, Errors: stats.errors, LastLatency: stats.lastLatency}
	}
	return ProviderSnapshot{}
}

// StoreSnapshot is a copy of the store-level counters.
type StoreSnapshot struct {
	CacheHits     int
	DedupJoins    int
	StaleDiscards int
	Evictions     int
}

func (r *Recorder) StoreSnapshot() StoreSnapshot {
	if r == nil {
		return StoreSnapshot{}
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	return StoreSnapshot{
		CacheHits:     r.store.cacheHits,
		DedupJoins:    r.store.dedupJoins,
		StaleDiscards: r.store.staleDiscards,
		Evictions:     r.store.evictions,
	}
}

// ensureStats must be called with r.mu held.
func (r *Recorder) ensureStats(provider string) *providerStats {
	stats, ok := r.stats[provider]
	if !ok {
		stats = &providerStats{}
		r.stats[provider] = stats
	}
	return stats
}
