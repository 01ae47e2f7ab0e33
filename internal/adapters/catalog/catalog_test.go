package catalog_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/moveboard/moveboard/internal/adapters/catalog"
	. "github.com/smartystreets/goconvey/convey"
)

const sampleBundle = `{
  "metadata": {"version": "4.0.0"},
  "characters": {
    "mario": [
      {"id": "mario-jab-1", "name": "Jab 1", "type": "Jab",
       "startupFrames": 2, "endLag": 15, "damage": 2.2, "onShieldLag": -2, "shieldStun": 2},
      {"id": "mario-fsmash", "name": "Forward Smash", "type": "smash",
       "startupFrames": 15, "endLag": 35, "damage": 17.5, "onShieldLag": -20, "shieldStun": 8}
    ],
    "fox": [
      {"id": "fox-jab-1", "name": "Jab 1", "type": "jab",
       "startupFrames": 2, "endLag": 12, "damage": 1.8, "onShieldLag": -1, "shieldStun": 2}
    ]
  }
}`

func TestParse(t *testing.T) {
	Convey("Given a well-formed data bundle", t, func() {
		p, err := catalog.Parse([]byte(sampleBundle))
		So(err, ShouldBeNil)

		Convey("Then moves are indexed by category with normalized type", func() {
			jabs, err := p.Items("jab")
			So(err, ShouldBeNil)
			So(jabs, ShouldHaveLength, 2)
			So(jabs[0].ID, ShouldEqual, "fox-jab-1") // sorted by id
			So(jabs[1].ID, ShouldEqual, "mario-jab-1")
		})

		Convey("Then the character is filled from the bundle key", func() {
			m, ok := p.Lookup("mario-fsmash")
			So(ok, ShouldBeTrue)
			So(m.Character, ShouldEqual, "mario")
		})

		Convey("Then categories are listed sorted", func() {
			So(p.Categories(), ShouldResemble, []string{"jab", "smash"})
			So(p.Count(), ShouldEqual, 3)
		})

		Convey("Then an unknown category yields ErrNoCatalog", func() {
			_, err := p.Items("up-b")
			So(err, ShouldWrap, catalog.ErrNoCatalog)
		})

		Convey("Then Resolve checks both id and category", func() {
			So(p.Resolve("mario-jab-1", "jab"), ShouldBeTrue)
			So(p.Resolve("mario-jab-1", "smash"), ShouldBeFalse)
			So(p.Resolve("nobody", "jab"), ShouldBeFalse)
		})

		Convey("Then ranking items carry id and category only", func() {
			items, err := p.RankingItems("smash")
			So(err, ShouldBeNil)
			So(items, ShouldHaveLength, 1)
			So(items[0].ID, ShouldEqual, "mario-fsmash")
			So(items[0].Category, ShouldEqual, "smash")
		})
	})

	Convey("Given a bundle with no characters", t, func() {
		_, err := catalog.Parse([]byte(`{"characters": {}}`))

		Convey("Then parsing fails with ErrEmptyBundle", func() {
			So(err, ShouldWrap, catalog.ErrEmptyBundle)
		})
	})

	Convey("Given a bundle with a duplicated move id", t, func() {
		dup := `{"characters": {"mario": [
			{"id": "m1", "type": "jab", "startupFrames": 2},
			{"id": "m1", "type": "jab", "startupFrames": 3}
		]}}`
		_, err := catalog.Parse([]byte(dup))

		Convey("Then parsing fails with ErrDuplicateMove", func() {
			So(err, ShouldWrap, catalog.ErrDuplicateMove)
		})
	})

	Convey("Given malformed JSON", t, func() {
		_, err := catalog.Parse([]byte(`{"characters":`))

		Convey("Then parsing fails", func() {
			So(err, ShouldNotBeNil)
		})
	})
}

func TestDerivedFields(t *testing.T) {
	Convey("Given a parsed bundle", t, func() {
		p, err := catalog.Parse([]byte(sampleBundle))
		So(err, ShouldBeNil)

		Convey("When looking at an attacking move", func() {
			m, ok := p.Lookup("mario-jab-1")
			So(ok, ShouldBeTrue)

			Convey("Then total frames default to startup plus endlag", func() {
				So(m.TotalFrames, ShouldEqual, 17)
			})

			Convey("Then safety rating folds in startup and endlag", func() {
				// -2 - 2*0.1 - 15*0.05 = -2.95
				So(m.SafetyRating, ShouldAlmostEqual, -2.95, 1e-9)
			})

			Convey("Then combo potential stays non-negative", func() {
				// 2.2*0.5 + 2*0.3 - 2*0.2 = 1.3
				So(m.ComboPotential, ShouldAlmostEqual, 1.3, 1e-9)
			})

			Convey("Then kill power uses the jab multiplier", func() {
				// 2.2 * 0.7
				So(m.KillPowerIndex, ShouldAlmostEqual, 1.54, 1e-9)
			})

			Convey("Then frame efficiency is damage per frame", func() {
				// 2.2 / 17 rounded to 3 places
				So(m.FrameEfficiency, ShouldAlmostEqual, 0.129, 1e-9)
			})
		})

		Convey("When looking at a smash attack", func() {
			m, ok := p.Lookup("mario-fsmash")
			So(ok, ShouldBeTrue)

			Convey("Then the smash kill-power multiplier applies", func() {
				// 17.5 * 1.5
				So(m.KillPowerIndex, ShouldAlmostEqual, 26.25, 1e-9)
			})
		})
	})
}

func TestLoad(t *testing.T) {
	Convey("Given a bundle file on disk", t, func() {
		dir := t.TempDir()
		path := filepath.Join(dir, "bundle.json")
		So(os.WriteFile(path, []byte(sampleBundle), 0o600), ShouldBeNil)

		Convey("When loading it", func() {
			p, err := catalog.Load(context.Background(), path)

			Convey("Then the provider is ready", func() {
				So(err, ShouldBeNil)
				So(p.Count(), ShouldEqual, 3)
			})
		})

		Convey("When the path does not exist", func() {
			_, err := catalog.Load(context.Background(), filepath.Join(dir, "missing.json"))

			Convey("Then loading fails", func() {
				So(err, ShouldNotBeNil)
			})
		})
	})
}
