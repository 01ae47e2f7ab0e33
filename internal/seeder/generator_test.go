package seeder

import (
	"testing"

	"github.com/moveboard/moveboard/internal/adapters/catalog"
	. "github.com/smartystreets/goconvey/convey"
)

func testMoves() []catalog.Move {
	return []catalog.Move{
		{ID: "fox-jab-1", Type: "jab", SafetyRating: 2.0, ComboPotential: 3.0, FrameEfficiency: 0.3},
		{ID: "mario-jab-1", Type: "jab", SafetyRating: 0.5, ComboPotential: 1.0, FrameEfficiency: 0.1},
		{ID: "kirby-jab-1", Type: "jab", SafetyRating: -2.0, ComboPotential: 0.1, FrameEfficiency: 0.05},
	}
}

func TestGenerateComparisons(t *testing.T) {
	Convey("Given a category of moves", t, func() {
		moves := testMoves()

		Convey("When generating comparisons", func() {
			events := generateComparisons(moves, "jab", 200)

			Convey("Then every event is well formed", func() {
				So(events, ShouldHaveLength, 200)
				known := map[string]bool{"fox-jab-1": true, "mario-jab-1": true, "kirby-jab-1": true}
				ids := map[string]bool{}
				for _, e := range events {
					So(e.EventID, ShouldNotBeEmpty)
					So(ids[e.EventID], ShouldBeFalse)
					ids[e.EventID] = true
					So(e.ItemA, ShouldNotEqual, e.ItemB)
					So(known[e.ItemA], ShouldBeTrue)
					So(known[e.ItemB], ShouldBeTrue)
					So(e.Category, ShouldEqual, "jab")
					So(e.Outcome, ShouldBeIn, "a_wins", "b_wins", "tie")
				}
			})
		})
	})
}

func TestBiasedOutcome(t *testing.T) {
	Convey("Given a strong and a weak move", t, func() {
		moves := testMoves()
		strong, weak := moves[0], moves[2]

		Convey("When sampling many outcomes", func() {
			wins := 0
			const samples = 500
			for i := 0; i < samples; i++ {
				if biasedOutcome(strong, weak) == "a_wins" {
					wins++
				}
			}

			Convey("Then the strong move wins the clear majority", func() {
				So(wins, ShouldBeGreaterThan, samples/2)
			})
		})
	})
}

func TestQualityFloor(t *testing.T) {
	Convey("Given a move with hopeless frame data", t, func() {
		m := catalog.Move{ID: "dud", SafetyRating: -10, ComboPotential: 0, FrameEfficiency: 0}

		Convey("Then its quality is clamped above zero", func() {
			So(quality(m), ShouldEqual, 0.05)
		})
	})
}
