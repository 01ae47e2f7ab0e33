// Package worker defines worker contracts for asynchronous ingestion of
// comparison events into the log.
package worker

import (
	"context"
	"fmt"
	"runtime"
	"strconv"
	"time"

	"github.com/moveboard/moveboard/internal/domain/model"
	"github.com/moveboard/moveboard/pkg/logger"
	"github.com/moveboard/moveboard/pkg/metrics"
)

// Default worker configuration constants.
const (
	defaultWorkerMultiplier = 4 // multiplier for runtime.NumCPU()
	workerShutdownTimeout   = 5 * time.Second
	poolShutdownTimeout     = 30 * time.Second
)

// Event abstracts what workers read off the queue.
// Using the model.Event type for consistency.
type Event = model.Event

// Appender appends validated comparison events to the log.
type Appender interface {
	Append(ctx context.Context, e Event) error
}

// Resolver reports whether an item id exists in a category.
type Resolver interface {
	Resolve(id, category string) bool
}

// Queue defines how workers receive events.
type Queue interface {
	Dequeue(ctx context.Context) <-chan Event
}

// Worker processes comparison events and appends them using the provided interfaces.
type Worker interface {
	// Run starts the worker loop until ctx is canceled.
	Run(ctx context.Context)

	// Shutdown gracefully stops the worker.
	// It will process any remaining events before stopping.
	Shutdown(ctx context.Context) error
}

// InMemoryWorker implements Worker for processing comparison events.
type InMemoryWorker struct {
	queue    Queue
	resolver Resolver
	appender Appender
	name     string

	// Shutdown control
	shutdown chan struct{}
	done     chan struct{}

	// Logging
	logger logger.Logger
}

// NewInMemoryWorker creates a new worker with configuration options.
func NewInMemoryWorker(queue Queue, resolver Resolver, appender Appender, opts ...Option) *InMemoryWorker {
	w := &InMemoryWorker{
		queue:    queue,
		resolver: resolver,
		appender: appender,
		name:     "worker",
		shutdown: make(chan struct{}),
		done:     make(chan struct{}),
		logger:   logger.Get().Named("worker"),
	}

	for _, opt := range opts {
		opt(w)
	}

	if w.name != "worker" {
		w.logger = w.logger.Named(w.name)
	}

	return w
}

// Run starts the worker loop.
func (w *InMemoryWorker) Run(ctx context.Context) {
	defer close(w.done)

	eventChan := w.queue.Dequeue(ctx)
	for {
		select {
		case <-ctx.Done():
			return
		case <-w.shutdown:
			return
		case event, ok := <-eventChan:
			if !ok {
				// Channel closed, worker should stop
				return
			}

			if err := w.processEvent(ctx, event); err != nil {
				w.logger.Error(ctx, "error processing comparison", logger.Error(err))
			}
		}
	}
}

// Shutdown gracefully stops the worker.
func (w *InMemoryWorker) Shutdown(ctx context.Context) error {
	close(w.shutdown)

	select {
	case <-w.done:
		return nil
	case <-ctx.Done():
		w.logger.Warn(ctx, "shutdown timed out")
		return fmt.Errorf("shutdown timed out: %w", ctx.Err())
	}
}

// processEvent validates a single comparison against the catalog and
// appends it to the log. Events that reference unknown moves are dropped,
// they would otherwise distort the standings of known moves.
func (w *InMemoryWorker) processEvent(ctx context.Context, event Event) error { //nolint:gocritic // hugeParam: Event must be passed by value for channel semantics
	if !w.resolver.Resolve(event.ItemA, event.Category) {
		metrics.RecordUnknownItem()
		metrics.RecordErrorByComponent("worker", "unknown_item")
		w.logger.Debug(ctx, "dropping comparison with unknown item",
			logger.String("eventID", event.EventID),
			logger.String("item", event.ItemA),
			logger.String("category", event.Category),
		)
		return nil
	}
	if !w.resolver.Resolve(event.ItemB, event.Category) {
		metrics.RecordUnknownItem()
		metrics.RecordErrorByComponent("worker", "unknown_item")
		w.logger.Debug(ctx, "dropping comparison with unknown item",
			logger.String("eventID", event.EventID),
			logger.String("item", event.ItemB),
			logger.String("category", event.Category),
		)
		return nil
	}

	if err := w.appender.Append(ctx, event); err != nil {
		metrics.RecordComparisonRejected()
		metrics.RecordErrorByComponent("worker", "append_error")
		w.logger.Error(ctx, "append failed for comparison",
			logger.String("eventID", event.EventID),
			logger.Error(err),
		)
		return fmt.Errorf("failed to append event %s: %w", event.EventID, err)
	}

	metrics.RecordComparisonProcessed()
	return nil
}

// Pool manages multiple workers.
type Pool struct {
	workers []*InMemoryWorker

	// Shutdown control
	shutdown chan struct{}

	queue Queue

	// Logging
	logger logger.Logger
}

// NewPool creates a new worker pool.
func NewPool(workerCount int, queue Queue, resolver Resolver, appender Appender) *Pool {
	if workerCount < 1 {
		workerCount = runtime.NumCPU() * defaultWorkerMultiplier
	}

	pool := &Pool{
		workers:  make([]*InMemoryWorker, workerCount),
		shutdown: make(chan struct{}),
		queue:    queue,
		logger:   logger.Get().Named("worker-pool"),
	}

	for i := 0; i < workerCount; i++ {
		pool.workers[i] = NewInMemoryWorker(
			queue,
			resolver,
			appender,
			WithName("worker-"+strconv.Itoa(i)),
		)
	}

	metrics.UpdateWorkerCount(workerCount)

	return pool
}

// Start starts all workers in the pool.
func (p *Pool) Start(ctx context.Context) {
	for _, worker := range p.workers {
		go worker.Run(ctx)
	}
}

// Size returns the number of workers in the pool.
func (p *Pool) Size() int {
	return len(p.workers)
}

// Stop gracefully stops all workers.
func (p *Pool) Stop() {
	close(p.shutdown)

	for _, worker := range p.workers {
		select {
		case <-worker.done:
		case <-time.After(workerShutdownTimeout):
		}
	}
}

// Shutdown gracefully shuts down the entire worker pool.
func (p *Pool) Shutdown(ctx context.Context) error {
	// Close the queue first so workers drain the backlog and exit.
	if closer, ok := p.queue.(interface{ Close() error }); ok {
		if err := closer.Close(); err != nil {
			p.logger.Error(ctx, "error closing queue", logger.Error(err))
		}
	}

	shutdownCtx, cancel := context.WithTimeout(ctx, poolShutdownTimeout)
	defer cancel()

	for i, worker := range p.workers {
		select {
		case <-worker.done:
		case <-shutdownCtx.Done():
			p.logger.Warn(ctx, "worker shutdown timed out", logger.Int("worker_id", i))
		}
	}

	return nil
}
