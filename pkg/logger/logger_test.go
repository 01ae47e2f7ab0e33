package logger_test

import (
	"context"
	"log/slog"
	"testing"

	"github.com/moveboard/moveboard/pkg/logger"
	. "github.com/smartystreets/goconvey/convey"
)

func TestLogger(t *testing.T) {
	Convey("Given an initialized global logger", t, func() {
		So(logger.Init(), ShouldBeNil)
		ctx := context.Background()

		Convey("When logging at each level", func() {
			l := logger.Get()

			Convey("Then no call panics", func() {
				So(func() {
					l.Debug(ctx, "debug message", logger.String("k", "v"))
					l.Info(ctx, "info message", logger.Int("n", 3))
					l.Warn(ctx, "warn message", logger.Float64("f", 1.5))
					l.Error(ctx, "error message", logger.Bool("b", true))
				}, ShouldNotPanic)
			})
		})

		Convey("When deriving a named logger", func() {
			named := logger.Named("worker")

			Convey("Then it is usable independently", func() {
				So(named, ShouldNotBeNil)
				So(func() { named.Info(ctx, "hello") }, ShouldNotPanic)
			})
		})

		Convey("When setting the level from a string", func() {
			Convey("Then known levels parse", func() {
				So(logger.SetLevelString("debug"), ShouldBeNil)
				So(logger.SetLevelString("WARN"), ShouldBeNil)
				So(logger.SetLevelString("warning"), ShouldBeNil)
				So(logger.SetLevelString("error"), ShouldBeNil)
				So(logger.SetLevelString(""), ShouldBeNil)
			})

			Convey("Then unknown levels are rejected", func() {
				So(logger.SetLevelString("verbose"), ShouldNotBeNil)
			})

			logger.SetLevel(slog.LevelInfo)
		})
	})
}
