// Package eventstore keeps the append-only log of comparison events and
// serves consistent snapshots of it.
//
// The ranking engine recomputes standings from the full per-category log
// on every read, so the store needs no ordered index: just an append path
// and a copy-on-read snapshot.
package eventstore

import (
	"context"

	"github.com/moveboard/moveboard/internal/domain/model"
)

// Event is the record type held by the store.
// Using the model.Event type for consistency with the ingestion path.
type Event = model.Event

// Store provides append and snapshot access to the comparison log.
type Store interface {
	// Append accepts one event into the log. Events are immutable once
	// accepted; there is no update or delete.
	Append(ctx context.Context, e Event) error

	// List returns a snapshot copy of the events recorded for a
	// category. Mutating the returned slice does not affect the log.
	List(ctx context.Context, category string) ([]Event, error)

	// Count returns the number of events across all categories.
	Count(ctx context.Context) int
}
