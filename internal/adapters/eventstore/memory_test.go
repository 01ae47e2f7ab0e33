package eventstore_test

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/moveboard/moveboard/internal/adapters/eventstore"
	"github.com/moveboard/moveboard/internal/domain/model"
	. "github.com/smartystreets/goconvey/convey"
)

func event(id, a, b, category string) model.Event {
	return model.Event{
		EventID:  id,
		ItemA:    a,
		ItemB:    b,
		Outcome:  model.OutcomeAWins,
		Category: category,
		TS:       time.Now().UTC(),
	}
}

func TestMemoryStore(t *testing.T) {
	Convey("Given an empty store", t, func() {
		s := eventstore.NewMemoryStore()
		ctx := context.Background()

		Convey("When appending events across categories", func() {
			So(s.Append(ctx, event("1", "mario-jab", "fox-jab", "jab")), ShouldBeNil)
			So(s.Append(ctx, event("2", "fox-jab", "kirby-jab", "jab")), ShouldBeNil)
			So(s.Append(ctx, event("3", "mario-fsmash", "fox-fsmash", "smash")), ShouldBeNil)

			Convey("Then List filters by category in append order", func() {
				jabs, err := s.List(ctx, "jab")
				So(err, ShouldBeNil)
				So(jabs, ShouldHaveLength, 2)
				So(jabs[0].EventID, ShouldEqual, "1")
				So(jabs[1].EventID, ShouldEqual, "2")
			})

			Convey("Then Count spans all categories", func() {
				So(s.Count(ctx), ShouldEqual, 3)
			})

			Convey("Then an unknown category lists empty without error", func() {
				got, err := s.List(ctx, "up-b")
				So(err, ShouldBeNil)
				So(got, ShouldBeEmpty)
			})
		})

		Convey("When listing, the snapshot is detached from the log", func() {
			So(s.Append(ctx, event("1", "a", "b", "jab")), ShouldBeNil)
			snap, err := s.List(ctx, "jab")
			So(err, ShouldBeNil)

			snap[0].EventID = "mutated"

			fresh, err := s.List(ctx, "jab")
			So(err, ShouldBeNil)
			So(fresh[0].EventID, ShouldEqual, "1")
		})

		Convey("When appending a malformed event", func() {
			Convey("Then a missing id is rejected", func() {
				e := event("", "a", "b", "jab")
				So(s.Append(ctx, e), ShouldWrap, eventstore.ErrInvalidEvent)
			})

			Convey("Then a missing category is rejected", func() {
				e := event("1", "a", "b", "")
				So(s.Append(ctx, e), ShouldWrap, eventstore.ErrInvalidEvent)
			})

			Convey("Then a self-comparison is rejected", func() {
				e := event("1", "a", "a", "jab")
				So(s.Append(ctx, e), ShouldWrap, eventstore.ErrSelfComparison)
			})
		})
	})
}

func TestMemoryStoreConcurrency(t *testing.T) {
	Convey("Given concurrent appenders and readers", t, func() {
		s := eventstore.NewMemoryStore(eventstore.WithInitialCapacity(64))
		ctx := context.Background()

		Convey("When twenty goroutines append fifty events each", func() {
			var wg sync.WaitGroup
			for g := 0; g < 20; g++ {
				wg.Add(1)
				go func(g int) {
					defer wg.Done()
					for i := 0; i < 50; i++ {
						id := fmt.Sprintf("%d-%d", g, i)
						_ = s.Append(ctx, event(id, "a", "b", "jab"))
						_, _ = s.List(ctx, "jab")
					}
				}(g)
			}
			wg.Wait()

			Convey("Then the log holds every event", func() {
				So(s.Count(ctx), ShouldEqual, 1000)
				jabs, err := s.List(ctx, "jab")
				So(err, ShouldBeNil)
				So(jabs, ShouldHaveLength, 1000)
			})
		})
	})
}
