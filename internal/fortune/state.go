package fortune

import (
	"time"

	"fortuna-data-service/internal/domain"
)

// Status is the lifecycle phase of one cache slot.
type Status string

const (
	// StatusIdle means nothing has been requested yet, or a failure was
	// acknowledged and cleared.
	StatusIdle Status = "idle"
	// StatusLoading means a fetch is underway for the slot.
	StatusLoading Status = "loading"
	// StatusSuccess means the slot holds a fortune fetched today.
	StatusSuccess Status = "success"
	// StatusFailed means the most recent fetch ended in an error.
	StatusFailed Status = "failed"
)

// State is what subscribers observe for a slot. Fortune may be non-nil in
// any status: Loading and Failed keep the previously fetched data so the
// UI can keep showing it while a refresh runs or fails.
type State struct {
	Status  Status
	Fortune *domain.Fortune
	Err     error

	// FetchedAt is when Fortune was received, zero if Fortune is nil.
	// A success is only served from cache while FetchedAt is still on
	// the current calendar day.
	FetchedAt time.Time
}

// entry is one cache slot. initSeq identifies the fetch currently allowed
// to publish a completion; completions from earlier fetches are discarded.
type entry struct {
	state   State
	initSeq uint64
}
