// Package dedupe tracks comparison event ids for idempotency.
//
// The append path gives no idempotency guarantee of its own: a retried
// POST would double-count a judgment and skew the tallies, so every event
// id passes through here before it is enqueued.
package dedupe

import (
	"context"
	"sync"
	"sync/atomic"
)

// Deduper records seen event ids to ensure at-most-once ingestion.
type Deduper interface {
	// SeenAndRecord atomically checks whether id was seen and records it
	// if not. Returns true if id was already seen.
	SeenAndRecord(ctx context.Context, id string) bool

	// Unrecord removes an id from the seen set so the event can be
	// retried. Only used when an event was marked seen but failed to be
	// enqueued (backpressure).
	Unrecord(ctx context.Context, id string)

	Size() int64
}

// inMemoryDeduper keeps a bounded set of ids with FIFO eviction: once the
// cap is reached the oldest recorded id is forgotten first. With
// maxSize <= 0 the set is unbounded.
type inMemoryDeduper struct {
	mu      sync.Mutex
	seen    map[string]struct{}
	order   []string // insertion order, only maintained in bounded mode
	maxSize int
	size    atomic.Int64
}

// NewInMemoryDeduper creates a deduper with configuration options.
func NewInMemoryDeduper(opts ...Option) Deduper {
	d := &inMemoryDeduper{
		maxSize: 50_000,
	}
	for _, opt := range opts {
		opt(d)
	}
	d.seen = make(map[string]struct{})
	return d
}

func (d *inMemoryDeduper) SeenAndRecord(ctx context.Context, id string) bool {
	d.mu.Lock()
	defer d.mu.Unlock()

	if _, ok := d.seen[id]; ok {
		return true
	}

	if d.maxSize > 0 {
		for len(d.seen) >= d.maxSize && len(d.order) > 0 {
			oldest := d.order[0]
			d.order = d.order[1:]
			if _, ok := d.seen[oldest]; ok {
				delete(d.seen, oldest)
				d.size.Add(-1)
			}
		}
		d.order = append(d.order, id)
	}
	d.seen[id] = struct{}{}
	d.size.Add(1)
	return false
}

func (d *inMemoryDeduper) Unrecord(ctx context.Context, id string) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if _, ok := d.seen[id]; !ok {
		return
	}
	delete(d.seen, id)
	d.size.Add(-1)
	// The stale entry in d.order is tolerated; eviction re-checks the map.
}

func (d *inMemoryDeduper) Size() int64 {
	return d.size.Load()
}
