// Package fortune holds the state store at the center of the service: it
// caches one fortune per calendar day and variant, deduplicates concurrent
// fetches, and publishes lifecycle states to subscribers.
package fortune

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sort"
	"sync"
	"time"

	"fortuna-data-service/internal/auth"
	"fortuna-data-service/internal/domain"
	"fortuna-data-service/internal/logging"
	"fortuna-data-service/internal/metrics"
	"fortuna-data-service/internal/providers"
	"fortuna-data-service/internal/timeutil"
)

type observer func(key domain.FortuneKey, state State)

type notification struct {
	key   domain.FortuneKey
	state State
	fns   []observer
}

// Options configures a Store. Provider and Tokens are required; the rest
// default to sane values.
type Options struct {
	Provider providers.FortuneProvider
	Tokens   auth.TokenProvider
	Logger   *slog.Logger
	Recorder *metrics.Recorder

	// Clock and Location drive the calendar-day cache rule. They default
	// to time.Now and UTC.
	Clock    func() time.Time
	Location *time.Location
}

// Store caches fortunes keyed by date and variant.
//
// Concurrency rules, in order of precedence:
//   - a cached success fetched on the current calendar day is served
//     without touching the provider;
//   - a non-forced request while a fetch is in flight joins it instead of
//     starting another;
//   - a forced request always starts a new fetch and supersedes any fetch
//     already in flight for the key: the superseded completion is
//     discarded when it arrives.
//
// Subscribers are notified of state transitions in the order the
// transitions were applied. Callbacks run without any Store lock held, so
// they may call back into the Store, including Request.
type Store struct {
	provider providers.FortuneProvider
	tokens   auth.TokenProvider
	logger   *slog.Logger
	recorder *metrics.Recorder
	clock    func() time.Time
	loc      *time.Location

	mu       sync.Mutex
	entries  map[domain.FortuneKey]*entry
	inflight map[domain.FortuneKey]uint64
	seq      uint64
	subs     map[domain.FortuneKey]map[uint64]observer
	nextSub  uint64
	pending  []notification

	// notifyMu serializes callback delivery so subscribers observe
	// transitions in publish order.
	notifyMu sync.Mutex
}

// NewStore constructs a store. It panics if Provider or Tokens is nil;
// both are wiring mistakes, not runtime conditions.
func NewStore(opts Options) *Store {
	if opts.Provider == nil {
		panic("fortune: store requires a provider")
	}
	if opts.Tokens == nil {
		panic("fortune: store requires a token provider")
	}
	clock := opts.Clock
	if clock == nil {
		clock = time.Now
	}
	loc := opts.Location
	if loc == nil {
		loc = time.UTC
	}
	return &Store{
		provider: opts.Provider,
		tokens:   opts.Tokens,
		logger:   opts.Logger,
		recorder: opts.Recorder,
		clock:    clock,
		loc:      loc,
		entries:  make(map[domain.FortuneKey]*entry),
		inflight: make(map[domain.FortuneKey]uint64),
		subs:     make(map[domain.FortuneKey]map[uint64]observer),
	}
}

// Subscription is a handle for one observer registration.
type Subscription struct {
	store *Store
	key   domain.FortuneKey
	id    uint64
}

// Cancel removes the observer. Safe to call more than once. A callback
// already dequeued for delivery may still fire after Cancel returns.
func (s *Subscription) Cancel() {
	if s == nil || s.store == nil {
		return
	}
	s.store.mu.Lock()
	if set, ok := s.store.subs[s.key]; ok {
		delete(set, s.id)
		if len(set) == 0 {
			delete(s.store.subs, s.key)
		}
	}
	s.store.mu.Unlock()
	s.store = nil
}

// Subscribe registers fn for state changes on key and immediately replays
// the current state to it. Subscribers are independent: cancelling one
// never affects another, and subscribing never triggers a fetch.
func (s *Store) Subscribe(key domain.FortuneKey, fn func(key domain.FortuneKey, state State)) *Subscription {
	s.mu.Lock()
	s.nextSub++
	id := s.nextSub
	set, ok := s.subs[key]
	if !ok {
		set = make(map[uint64]observer)
		s.subs[key] = set
	}
	set[id] = fn
	// Replay goes through the queue so it cannot overtake a transition
	// that is already pending delivery.
	s.pending = append(s.pending, notification{key: key, state: s.stateLocked(key), fns: []observer{fn}})
	s.mu.Unlock()
	s.flush()
	return &Subscription{store: s, key: key, id: id}
}

// State returns the current state of a slot. Unknown keys report Idle.
func (s *Store) State(key domain.FortuneKey) State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.stateLocked(key)
}

// Request asks for the fortune identified by key. force bypasses both the
// same-day cache and the in-flight join and starts a fresh fetch.
//
// The call returns once the slot is Loading (or served from cache); the
// fetch itself runs on a detached context, so cancelling ctx after
// Request returns does not abort it.
func (s *Store) Request(ctx context.Context, key domain.FortuneKey, force bool) error {
	if _, err := timeutil.ParseDate(key.Date); err != nil {
		return fmt.Errorf("invalid fortune date %q", key.Date)
	}
	if !key.Variant.Valid() {
		return fmt.Errorf("invalid fortune variant %q", key.Variant)
	}

	now := s.clock()

	s.mu.Lock()
	e := s.ensureEntryLocked(key)
	if !force {
		if e.state.Status == StatusSuccess && timeutil.SameDay(e.state.FetchedAt, now, s.loc) {
			// Republish so a caller waiting on its observer still hears
			// back even though nothing changed.
			s.enqueueLocked(key, e.state)
			s.mu.Unlock()
			s.flush()
			s.recorder.RecordCacheHit(string(key.Variant))
			logging.Info(s.logger, "fortune served from cache", logging.FieldKey, key.String())
			return nil
		}
		if _, running := s.inflight[key]; running {
			s.mu.Unlock()
			s.recorder.RecordDedupJoin(string(key.Variant))
			logging.Info(s.logger, "fortune request joined in-flight fetch", logging.FieldKey, key.String())
			return nil
		}
	}

	s.seq++
	fetchSeq := s.seq
	if prev, running := s.inflight[key]; running {
		logging.Info(s.logger, "forced refresh superseded in-flight fetch",
			logging.FieldKey, key.String(), "superseded_seq", prev)
	}
	s.inflight[key] = fetchSeq
	e.initSeq = fetchSeq
	e.state = State{Status: StatusLoading, Fortune: e.state.Fortune, FetchedAt: e.state.FetchedAt}
	s.enqueueLocked(key, e.state)
	s.mu.Unlock()
	s.flush()

	// The credential check is synchronous so a signed-out user fails
	// fast and deterministically, before any goroutine is spawned. Only
	// an absent token reads as auth-required; a broken token store is a
	// fault of its own, not a sign-in prompt.
	token, err := s.tokens.Token(ctx)
	if err != nil {
		if errors.Is(err, auth.ErrNoToken) {
			s.complete(key, fetchSeq, domain.Fortune{}, &providers.AuthRequiredError{})
		} else {
			s.complete(key, fetchSeq, domain.Fortune{}, providers.Classify("credentials", err))
		}
		return nil
	}

	fetchCtx := context.WithoutCancel(ctx)
	go func() {
		fortune, fetchErr := s.provider.FetchFortune(fetchCtx, key, token)
		s.complete(key, fetchSeq, fortune, fetchErr)
	}()
	return nil
}

// ClearError acknowledges a failure: a Failed slot returns to Idle,
// keeping whatever fortune it still holds. Other statuses are untouched.
func (s *Store) ClearError(key domain.FortuneKey) {
	s.mu.Lock()
	e, ok := s.entries[key]
	if !ok || e.state.Status != StatusFailed {
		s.mu.Unlock()
		return
	}
	e.state = State{Status: StatusIdle, Fortune: e.state.Fortune, FetchedAt: e.state.FetchedAt}
	s.enqueueLocked(key, e.state)
	s.mu.Unlock()
	s.flush()
}

// Invalidate drops a slot entirely, without notifying subscribers. Any
// in-flight fetch for the key is orphaned and its completion discarded.
func (s *Store) Invalidate(key domain.FortuneKey) {
	s.mu.Lock()
	delete(s.entries, key)
	delete(s.inflight, key)
	s.mu.Unlock()
}

// EvictStale silently removes slots that can no longer be served: keys
// dated before now's calendar day, and successes fetched on an earlier
// day. Returns the number of slots removed.
func (s *Store) EvictStale(now time.Time) int {
	s.mu.Lock()
	var evicted []domain.FortuneKey
	for key, e := range s.entries {
		if timeutil.BeforeDay(key.Date, now, s.loc) {
			evicted = append(evicted, key)
			continue
		}
		if e.state.Status == StatusSuccess && !timeutil.SameDay(e.state.FetchedAt, now, s.loc) {
			evicted = append(evicted, key)
		}
	}
	for _, key := range evicted {
		delete(s.entries, key)
		delete(s.inflight, key)
	}
	s.mu.Unlock()

	if len(evicted) > 0 {
		s.recorder.RecordEvictions(len(evicted))
		logging.Info(s.logger, "stale fortune slots evicted", logging.FieldCount, len(evicted))
	}
	return len(evicted)
}

// Keys returns the keys currently held, in no particular order.
func (s *Store) Keys() []domain.FortuneKey {
	s.mu.Lock()
	defer s.mu.Unlock()
	keys := make([]domain.FortuneKey, 0, len(s.entries))
	for key := range s.entries {
		keys = append(keys, key)
	}
	return keys
}

func (s *Store) complete(key domain.FortuneKey, fetchSeq uint64, fortune domain.Fortune, fetchErr error) {
	now := s.clock()

	s.mu.Lock()
	current, running := s.inflight[key]
	if !running || current != fetchSeq {
		s.mu.Unlock()
		s.recorder.RecordStaleDiscard()
		logging.Info(s.logger, "stale fortune completion discarded", logging.FieldKey, key.String())
		return
	}
	delete(s.inflight, key)

	e := s.ensureEntryLocked(key)
	if fetchErr != nil {
		e.state = State{Status: StatusFailed, Fortune: e.state.Fortune, Err: fetchErr, FetchedAt: e.state.FetchedAt}
	} else {
		received := fortune
		e.state = State{Status: StatusSuccess, Fortune: &received, FetchedAt: now}
	}
	s.enqueueLocked(key, e.state)
	s.mu.Unlock()
	s.flush()
}

// stateLocked must be called with s.mu held.
func (s *Store) stateLocked(key domain.FortuneKey) State {
	if e, ok := s.entries[key]; ok {
		return e.state
	}
	return State{Status: StatusIdle}
}

// ensureEntryLocked must be called with s.mu held.
func (s *Store) ensureEntryLocked(key domain.FortuneKey) *entry {
	e, ok := s.entries[key]
	if !ok {
		e = &entry{state: State{Status: StatusIdle}}
		s.entries[key] = e
	}
	return e
}

// enqueueLocked snapshots the key's observers and queues a delivery. Must
// be called with s.mu held; delivery happens later in flush.
func (s *Store) enqueueLocked(key domain.FortuneKey, state State) {
	set := s.subs[key]
	if len(set) == 0 {
		return
	}
	ids := make([]uint64, 0, len(set))
	for id := range set {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	fns := make([]observer, 0, len(ids))
	for _, id := range ids {
		fns = append(fns, set[id])
	}
	s.pending = append(s.pending, notification{key: key, state: state, fns: fns})
}

// flush drains the pending queue in FIFO order. TryLock keeps delivery
// single-flight: if another goroutine is already draining, it will pick
// up whatever was just enqueued, and a callback that re-enters the Store
// leaves its notification for the outer drain instead of deadlocking.
//
// After releasing notifyMu the queue is re-checked: a publisher can
// enqueue in the window between the drain seeing the queue empty and the
// lock release, and its own TryLock will have failed.
func (s *Store) flush() {
	for {
		if !s.notifyMu.TryLock() {
			return
		}
		s.drainPending()
		s.notifyMu.Unlock()

		s.mu.Lock()
		again := len(s.pending) > 0
		s.mu.Unlock()
		if !again {
			return
		}
	}
}

func (s *Store) drainPending() {
	for {
		s.mu.Lock()
		if len(s.pending) == 0 {
			s.mu.Unlock()
			return
		}
		next := s.pending[0]
		s.pending = s.pending[1:]
		s.mu.Unlock()

		for _, fn := range next.fns {
			fn(next.key, next.state)
		}
	}
}
