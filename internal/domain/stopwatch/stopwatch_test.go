package stopwatch_test

import (
	"testing"
	"time"

	"github.com/perceptlab/syntrial/internal/domain/stopwatch"
	. "github.com/smartystreets/goconvey/convey"
)

func TestStopwatch(t *testing.T) {
	Convey("Given a fresh stopwatch", t, func() {
		sw := stopwatch.New()

		Convey("Then elapsed is zero before any start", func() {
			So(sw.Elapsed(), ShouldEqual, 0)
			So(sw.ElapsedMS(), ShouldEqual, 0)
		})

		Convey("When started", func() {
			sw.Start()

			Convey("Then elapsed is non-negative and non-decreasing", func() {
				first := sw.Elapsed()
				time.Sleep(5 * time.Millisecond)
				second := sw.Elapsed()
				So(first, ShouldBeGreaterThanOrEqualTo, 0)
				So(second, ShouldBeGreaterThanOrEqualTo, first)
			})

			Convey("And restarting resets rather than accumulates", func() {
				time.Sleep(20 * time.Millisecond)
				sw.Start()
				So(sw.Elapsed(), ShouldBeLessThan, 20*time.Millisecond)
			})
		})
	})
}
