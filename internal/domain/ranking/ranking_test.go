package ranking_test

import (
	"math"
	"testing"
	"time"

	"github.com/moveboard/moveboard/internal/domain/model"
	"github.com/moveboard/moveboard/internal/domain/ranking"
	. "github.com/smartystreets/goconvey/convey"
)

func jabItems(ids ...string) []ranking.Item {
	items := make([]ranking.Item, len(ids))
	for i, id := range ids {
		items[i] = ranking.Item{ID: id, Category: "jab"}
	}
	return items
}

func jabEvent(a, b string, outcome model.Outcome) ranking.Event {
	return model.Event{
		EventID:  a + "-vs-" + b,
		ItemA:    a,
		ItemB:    b,
		Outcome:  outcome,
		Category: "jab",
		TS:       time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC),
	}
}

func standingByID(entries []ranking.Standing, id string) ranking.Standing {
	for _, s := range entries {
		if s.ItemID == id {
			return s
		}
	}
	return ranking.Standing{}
}

func TestConfidence(t *testing.T) {
	Convey("Given the logistic confidence curve", t, func() {
		Convey("Then confidence(10) is exactly 0.5", func() {
			So(ranking.Confidence(10), ShouldEqual, 0.5)
		})

		Convey("Then confidence(0) is 1/(1+e^5)", func() {
			So(ranking.Confidence(0), ShouldAlmostEqual, 1.0/(1.0+math.Exp(5)), 1e-12)
		})

		Convey("Then it is strictly increasing in n", func() {
			prev := ranking.Confidence(0)
			for n := 1; n <= 100; n++ {
				cur := ranking.Confidence(n)
				So(cur, ShouldBeGreaterThan, prev)
				prev = cur
			}
		})

		Convey("Then it approaches 1 for large n", func() {
			So(ranking.Confidence(1000), ShouldBeGreaterThan, 0.999)
		})
	})
}

func TestCompute_NeutralPrior(t *testing.T) {
	Convey("Given a non-empty item list and zero events for the category", t, func() {
		items := []ranking.Item{
			{ID: "mario-up-b", Category: "up-b"},
			{ID: "fox-up-b", Category: "up-b"},
			{ID: "kirby-up-b", Category: "up-b"},
		}

		Convey("When computing standings", func() {
			got := ranking.Compute(items, nil, "up-b")

			Convey("Then the insufficient-data flag is set", func() {
				So(got.InsufficientData, ShouldBeTrue)
			})

			Convey("And every move carries the neutral prior", func() {
				So(got.Entries, ShouldHaveLength, 3)
				for _, s := range got.Entries {
					So(s.Score, ShouldEqual, 0.5)
					So(s.Wins, ShouldEqual, 0)
					So(s.Total, ShouldEqual, 0)
					So(s.WinRate, ShouldEqual, 0)
					So(s.Confidence, ShouldEqual, 0)
				}
			})
		})

		Convey("When the global log only holds other categories", func() {
			events := []ranking.Event{jabEvent("x", "y", model.OutcomeAWins)}
			got := ranking.Compute(items, events, "up-b")

			Convey("Then it is still insufficient data", func() {
				So(got.InsufficientData, ShouldBeTrue)
			})
		})
	})
}

func TestCompute_ConcreteScenario(t *testing.T) {
	Convey("Given X, Y, Z in category jab with X>Y, X>Y, Y>Z", t, func() {
		items := jabItems("x", "y", "z")
		events := []ranking.Event{
			jabEvent("x", "y", model.OutcomeAWins),
			jabEvent("x", "y", model.OutcomeAWins),
			jabEvent("y", "z", model.OutcomeAWins),
		}

		got := ranking.Compute(items, events, "jab")

		Convey("Then tallies match the event log", func() {
			x := standingByID(got.Entries, "x")
			y := standingByID(got.Entries, "y")
			z := standingByID(got.Entries, "z")

			So(x.Total, ShouldEqual, 2)
			So(x.Wins, ShouldEqual, 2)
			So(x.WinRate, ShouldEqual, 1.0)

			So(y.Total, ShouldEqual, 3)
			So(y.Wins, ShouldEqual, 1)
			So(y.WinRate, ShouldAlmostEqual, 1.0/3.0, 1e-12)

			So(z.Total, ShouldEqual, 1)
			So(z.Wins, ShouldEqual, 0)
			So(z.WinRate, ShouldEqual, 0)
		})

		Convey("Then the rescaled scores pin X to 1 and Z to 0 with Y strictly between", func() {
			x := standingByID(got.Entries, "x")
			y := standingByID(got.Entries, "y")
			z := standingByID(got.Entries, "z")

			So(x.Score, ShouldEqual, 1.0)
			So(z.Score, ShouldEqual, 0.0)
			So(y.Score, ShouldBeGreaterThan, 0.0)
			So(y.Score, ShouldBeLessThan, 1.0)
		})

		Convey("Then the flag is clear and opponents are tracked", func() {
			So(got.InsufficientData, ShouldBeFalse)
			So(standingByID(got.Entries, "y").Opponents, ShouldEqual, 2)
			So(standingByID(got.Entries, "x").Opponents, ShouldEqual, 1)
		})
	})
}

func TestCompute_Determinism(t *testing.T) {
	Convey("Given a fixed snapshot of items and events", t, func() {
		items := jabItems("a", "b", "c", "d", "e")
		events := []ranking.Event{
			jabEvent("a", "b", model.OutcomeAWins),
			jabEvent("b", "c", model.OutcomeTie),
			jabEvent("c", "d", model.OutcomeBWins),
			jabEvent("d", "e", model.OutcomeAWins),
			jabEvent("e", "a", model.OutcomeTie),
			jabEvent("a", "c", model.OutcomeAWins),
		}

		Convey("When computing standings repeatedly", func() {
			first := ranking.Compute(items, events, "jab")

			Convey("Then every run is bit-identical", func() {
				for i := 0; i < 50; i++ {
					again := ranking.Compute(items, events, "jab")
					So(again.Entries, ShouldResemble, first.Entries)
				}
			})
		})

		Convey("Then every score stays inside [0,1]", func() {
			got := ranking.Compute(items, events, "jab")
			for _, s := range got.Entries {
				So(s.Score, ShouldBeGreaterThanOrEqualTo, 0)
				So(s.Score, ShouldBeLessThanOrEqualTo, 1)
			}
		})
	})
}

func TestCompute_TieSymmetry(t *testing.T) {
	Convey("Given two moves with a single tie between them", t, func() {
		items := jabItems("a", "b")
		events := []ranking.Event{jabEvent("a", "b", model.OutcomeTie)}

		got := ranking.Compute(items, events, "jab")
		a := standingByID(got.Entries, "a")
		b := standingByID(got.Entries, "b")

		Convey("Then both tallies are identical", func() {
			So(a.Wins, ShouldEqual, 0.5)
			So(b.Wins, ShouldEqual, 0.5)
			So(a.Total, ShouldEqual, 1)
			So(b.Total, ShouldEqual, 1)
		})

		Convey("Then both final scores are identical", func() {
			// Equal seeds form a degenerate range, so no rescale applies.
			So(a.Score, ShouldEqual, b.Score)
		})
	})
}

func TestCompute_SkipsDanglingEvents(t *testing.T) {
	Convey("Given events that reference unknown move ids", t, func() {
		items := jabItems("a", "b")
		events := []ranking.Event{
			jabEvent("a", "ghost", model.OutcomeAWins),
			jabEvent("ghost", "b", model.OutcomeAWins),
			jabEvent("a", "b", model.OutcomeAWins),
		}

		got := ranking.Compute(items, events, "jab")

		Convey("Then dangling events contribute nothing, not even to the known side", func() {
			a := standingByID(got.Entries, "a")
			b := standingByID(got.Entries, "b")
			So(a.Total, ShouldEqual, 1)
			So(a.Wins, ShouldEqual, 1)
			So(b.Total, ShouldEqual, 1)
			So(b.Wins, ShouldEqual, 0)
		})

		Convey("Then no standing is fabricated for the unknown id", func() {
			So(got.Entries, ShouldHaveLength, 2)
		})
	})

	Convey("Given a self-comparison event", t, func() {
		items := jabItems("a", "b")
		events := []ranking.Event{
			{EventID: "bad", ItemA: "a", ItemB: "a", Outcome: model.OutcomeAWins, Category: "jab"},
		}

		got := ranking.Compute(items, events, "jab")

		Convey("Then it is skipped and the category stays without data", func() {
			So(got.InsufficientData, ShouldBeTrue)
			So(standingByID(got.Entries, "a").Total, ShouldEqual, 0)
		})
	})
}

func TestCompute_DegenerateRange(t *testing.T) {
	Convey("Given a category where every scored move shares the same seed", t, func() {
		Convey("When the only event is a tie", func() {
			tied := []ranking.Event{jabEvent("a", "b", model.OutcomeTie)}
			got := ranking.Compute(jabItems("a", "b", "c"), tied, "jab")

			Convey("Then rescale is skipped and seeds survive as-is", func() {
				a := standingByID(got.Entries, "a")
				b := standingByID(got.Entries, "b")
				c := standingByID(got.Entries, "c")
				So(a.Score, ShouldEqual, b.Score)
				So(a.Score, ShouldBeGreaterThan, 0)
				So(a.Score, ShouldBeLessThan, 1)
				So(c.Score, ShouldEqual, 0.5)
			})
		})
	})
}

func TestPredictOutcome(t *testing.T) {
	Convey("Given two standings with raw tallies", t, func() {
		Convey("When one win rate dominates", func() {
			a := ranking.Standing{ItemID: "a", WinRate: 0.9, Total: 10}
			b := ranking.Standing{ItemID: "b", WinRate: 0.2, Total: 8}
			p := ranking.PredictOutcome(a, b)

			Convey("Then A is the predicted winner", func() {
				So(p.Winner, ShouldEqual, "a")
				So(p.ScoreA, ShouldAlmostEqual, 0.9/1.1, 1e-12)
				So(p.ScoreB, ShouldAlmostEqual, 1-0.9/1.1, 1e-12)
			})

			Convey("And confidence uses the combined total", func() {
				So(p.Confidence, ShouldEqual, ranking.Confidence(18))
			})
		})

		Convey("When both win rates are zero", func() {
			p := ranking.PredictOutcome(
				ranking.Standing{ItemID: "a"},
				ranking.Standing{ItemID: "b"},
			)

			Convey("Then both scores default to 0.5 with no winner", func() {
				So(p.ScoreA, ShouldEqual, 0.5)
				So(p.ScoreB, ShouldEqual, 0.5)
				So(p.Winner, ShouldBeEmpty)
			})
		})

		Convey("When the gap sits inside the tolerance band", func() {
			// 0.55 vs 0.45: |diff| = 0.1, not strictly greater.
			a := ranking.Standing{ItemID: "a", WinRate: 0.55, Total: 4}
			b := ranking.Standing{ItemID: "b", WinRate: 0.45, Total: 4}
			p := ranking.PredictOutcome(a, b)

			Convey("Then there is no clear prediction", func() {
				So(p.Winner, ShouldBeEmpty)
			})
		})

		Convey("When the gap sits just outside the tolerance band", func() {
			a := ranking.Standing{ItemID: "a", WinRate: 0.6, Total: 4}
			b := ranking.Standing{ItemID: "b", WinRate: 0.4, Total: 4}
			p := ranking.PredictOutcome(a, b)

			Convey("Then a winner is named", func() {
				So(p.Winner, ShouldEqual, "a")
			})
		})
	})
}
