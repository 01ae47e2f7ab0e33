package worker_test

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/moveboard/moveboard/internal/adapters/mq/worker"
	"github.com/moveboard/moveboard/internal/domain/model"
	"github.com/moveboard/moveboard/pkg/logger"
	. "github.com/smartystreets/goconvey/convey"
)

type stubQueue struct {
	events chan worker.Event
}

func newStubQueue(events ...worker.Event) *stubQueue {
	q := &stubQueue{events: make(chan worker.Event, len(events)+1)}
	for _, e := range events {
		q.events <- e
	}
	close(q.events)
	return q
}

func (q *stubQueue) Dequeue(ctx context.Context) <-chan worker.Event {
	return q.events
}

type stubResolver struct {
	known map[string]bool
}

func (r *stubResolver) Resolve(id, category string) bool {
	return r.known[category+"/"+id]
}

type stubAppender struct {
	mu       sync.Mutex
	appended []worker.Event
	err      error
}

func (a *stubAppender) Append(ctx context.Context, e worker.Event) error {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.err != nil {
		return a.err
	}
	a.appended = append(a.appended, e)
	return nil
}

func (a *stubAppender) events() []worker.Event {
	a.mu.Lock()
	defer a.mu.Unlock()
	out := make([]worker.Event, len(a.appended))
	copy(out, a.appended)
	return out
}

func comparison(id, a, b string) worker.Event {
	return model.Event{
		EventID:  id,
		ItemA:    a,
		ItemB:    b,
		Outcome:  model.OutcomeAWins,
		Category: "jab",
		TS:       time.Now().UTC(),
	}
}

func TestWorker(t *testing.T) {
	if err := logger.Init(); err != nil {
		t.Fatal(err)
	}

	resolver := &stubResolver{known: map[string]bool{
		"jab/mario-jab-1": true,
		"jab/fox-jab-1":   true,
	}}

	Convey("Given a worker over a queue of comparisons", t, func() {
		appender := &stubAppender{}
		q := newStubQueue(
			comparison("1", "mario-jab-1", "fox-jab-1"),
			comparison("2", "mario-jab-1", "ganon-jab-1"), // unknown item
			comparison("3", "fox-jab-1", "mario-jab-1"),
		)
		w := worker.NewInMemoryWorker(q, resolver, appender, worker.WithName("test-worker"))

		Convey("When the worker drains the queue", func() {
			ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
			defer cancel()
			w.Run(ctx)

			Convey("Then only fully resolvable events are appended, in order", func() {
				got := appender.events()
				So(got, ShouldHaveLength, 2)
				So(got[0].EventID, ShouldEqual, "1")
				So(got[1].EventID, ShouldEqual, "3")
			})
		})
	})

	Convey("Given an appender that fails", t, func() {
		appender := &stubAppender{err: errors.New("log unavailable")}
		q := newStubQueue(comparison("1", "mario-jab-1", "fox-jab-1"))
		w := worker.NewInMemoryWorker(q, resolver, appender)

		Convey("When the worker processes the event", func() {
			ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
			defer cancel()

			Convey("Then the failure does not stop the loop", func() {
				So(func() { w.Run(ctx) }, ShouldNotPanic)
				So(appender.events(), ShouldBeEmpty)
			})
		})
	})
}

func TestPool(t *testing.T) {
	if err := logger.Init(); err != nil {
		t.Fatal(err)
	}

	resolver := &stubResolver{known: map[string]bool{
		"jab/mario-jab-1": true,
		"jab/fox-jab-1":   true,
	}}

	Convey("Given a pool of workers", t, func() {
		appender := &stubAppender{}
		events := make([]worker.Event, 0, 50)
		for i := 0; i < 50; i++ {
			events = append(events, comparison(fmt.Sprintf("e-%d", i), "mario-jab-1", "fox-jab-1"))
		}
		q := newStubQueue(events...)
		p := worker.NewPool(4, q, resolver, appender)
		So(p.Size(), ShouldEqual, 4)

		Convey("When the pool runs until the queue is drained", func() {
			ctx, cancel := context.WithCancel(context.Background())
			defer cancel()
			p.Start(ctx)

			So(p.Shutdown(ctx), ShouldBeNil)

			Convey("Then every event was appended exactly once", func() {
				So(appender.events(), ShouldHaveLength, 50)
			})
		})
	})

	Convey("Given a pool with a non-positive worker count", t, func() {
		q := newStubQueue()
		p := worker.NewPool(0, q, resolver, &stubAppender{})

		Convey("Then it falls back to a CPU-derived size", func() {
			So(p.Size(), ShouldBeGreaterThan, 0)
		})
	})
}
