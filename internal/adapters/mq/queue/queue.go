// Package queue provides the ingestion buffer between the HTTP surface
// and the workers that append comparison events to the log.
//
// The in-memory bounded queue gives the service backpressure: when it
// fills up, submissions are refused instead of piling onto the log.
package queue

import (
	"context"
	"sync"

	"github.com/moveboard/moveboard/internal/domain/model"
	"github.com/moveboard/moveboard/pkg/metrics"
)

// Default queue configuration constants.
const (
	defaultQueueCapacity = 10000
	defaultBufferSize    = 10000
)

// Event represents the payload type flowing through the queue.
// Using the model.Event type for type safety.
type Event = model.Event

// Queue provides non-blocking enqueue and channel-based dequeue semantics.
type Queue interface {
	// Enqueue adds a comparison event to the queue.
	// Returns false if the queue is full and the event was not enqueued.
	Enqueue(ctx context.Context, e Event) bool

	// Dequeue returns a channel that will receive events as they become available.
	// The channel will be closed when the queue is closed.
	Dequeue(ctx context.Context) <-chan Event

	// Len returns the current number of queued events.
	Len(ctx context.Context) int

	// Close gracefully shuts down the queue.
	// After closing, no new events can be enqueued and the dequeue channel will be closed.
	Close() error

	// IsClosed returns true if the queue has been closed.
	IsClosed() bool
}

// InMemoryQueue implements Queue using a buffered channel.
type InMemoryQueue struct {
	events     chan Event
	capacity   int
	bufferSize int

	mu     sync.RWMutex
	closed bool
}

// NewInMemoryQueue creates a new in-memory queue with configuration options.
func NewInMemoryQueue(opts ...Option) *InMemoryQueue {
	q := &InMemoryQueue{
		capacity:   defaultQueueCapacity,
		bufferSize: defaultBufferSize,
	}

	for _, opt := range opts {
		opt(q)
	}

	// The buffer can never exceed the advertised capacity.
	if q.bufferSize > q.capacity {
		q.bufferSize = q.capacity
	}

	q.events = make(chan Event, q.bufferSize)

	metrics.UpdateQueueCapacity(q.capacity)
	metrics.UpdateQueueSize(0)
	metrics.UpdateQueueUtilization(0.0)

	return q
}

// Enqueue adds a comparison event to the queue.
func (q *InMemoryQueue) Enqueue(ctx context.Context, e Event) bool { //nolint:gocritic // hugeParam: Event must be passed by value for channel semantics
	q.mu.RLock()
	defer q.mu.RUnlock()

	if q.closed {
		metrics.RecordQueueEnqueueError()
		metrics.RecordErrorByComponent("queue", "closed")
		return false
	}

	if len(q.events) >= q.capacity {
		metrics.RecordQueueEnqueueError()
		metrics.RecordErrorByComponent("queue", "capacity_exceeded")
		return false
	}

	select {
	case q.events <- e:
		metrics.RecordQueueEnqueue()
		q.publishSize()
		return true
	case <-ctx.Done():
		metrics.RecordQueueEnqueueError()
		metrics.RecordErrorByComponent("queue", "context_cancelled")
		return false
	default:
		metrics.RecordQueueEnqueueError()
		metrics.RecordErrorByComponent("queue", "queue_full")
		return false
	}
}

// Dequeue returns a channel that will receive events as they become available.
func (q *InMemoryQueue) Dequeue(ctx context.Context) <-chan Event {
	dequeueChan := make(chan Event)
	go func() {
		defer close(dequeueChan)
		for event := range q.events {
			select {
			case dequeueChan <- event:
				metrics.RecordQueueDequeue()
				q.publishSize()
			case <-ctx.Done():
				return
			}
		}
	}()
	return dequeueChan
}

// Len returns the current number of queued events.
func (q *InMemoryQueue) Len(ctx context.Context) int {
	size := len(q.events)
	q.publishSize()
	return size
}

// Close gracefully shuts down the queue.
func (q *InMemoryQueue) Close() error {
	q.mu.Lock()
	defer q.mu.Unlock()

	if q.closed {
		return nil
	}

	close(q.events)
	q.closed = true

	return nil
}

// IsClosed returns true if the queue has been closed.
func (q *InMemoryQueue) IsClosed() bool {
	q.mu.RLock()
	defer q.mu.RUnlock()
	return q.closed
}

func (q *InMemoryQueue) publishSize() {
	size := len(q.events)
	metrics.UpdateQueueSize(size)
	metrics.UpdateQueueUtilization(float64(size) / float64(q.capacity))
}
