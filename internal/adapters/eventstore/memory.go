package eventstore

import (
	"context"
	"sync"

	"github.com/moveboard/moveboard/pkg/metrics"
)

const defaultCategoryCapacity = 1024

// MemoryStore implements Store with per-category slices guarded by a
// single RWMutex. Concurrent appenders from different sessions need no
// further coordination: readers always get a snapshot taken under the
// lock.
type MemoryStore struct {
	mu         sync.RWMutex
	byCategory map[string][]Event
	total      int

	initialCapacity int
}

// NewMemoryStore creates an empty in-memory event store.
func NewMemoryStore(opts ...Option) *MemoryStore {
	s := &MemoryStore{
		byCategory:      make(map[string][]Event),
		initialCapacity: defaultCategoryCapacity,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Append accepts one event into the log.
func (s *MemoryStore) Append(ctx context.Context, e Event) error {
	if e.EventID == "" || e.Category == "" {
		return ErrInvalidEvent
	}
	if e.ItemA == e.ItemB {
		return ErrSelfComparison
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	log, ok := s.byCategory[e.Category]
	if !ok {
		log = make([]Event, 0, s.initialCapacity)
	}
	s.byCategory[e.Category] = append(log, e)
	s.total++
	metrics.UpdateEventLogSize(s.total)
	return nil
}

// List returns a snapshot copy of one category's events in append order.
func (s *MemoryStore) List(ctx context.Context, category string) ([]Event, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	log := s.byCategory[category]
	out := make([]Event, len(log))
	copy(out, log)
	return out, nil
}

// Count returns the number of events across all categories.
func (s *MemoryStore) Count(ctx context.Context) int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.total
}
