package screening_test

import (
	"testing"
	"time"

	"github.com/perceptlab/syntrial/internal/domain/screening"
	. "github.com/smartystreets/goconvey/convey"
)

// tickingClock advances by a fixed step on every read.
type tickingClock struct {
	at   time.Time
	step time.Duration
}

func (c *tickingClock) now() time.Time {
	c.at = c.at.Add(c.step)
	return c.at
}

func TestStepTimer(t *testing.T) {
	Convey("Given a step timer with a deterministic clock", t, func() {
		clock := &tickingClock{
			at:   time.Date(2026, 1, 15, 10, 0, 0, 0, time.UTC),
			step: time.Second,
		}
		timer := screening.NewStepTimer(screening.WithTimerNow(clock.now))

		Convey("Then durations are absent before any step starts", func() {
			_, ok := timer.StepDuration(1)
			So(ok, ShouldBeFalse)
			_, ok = timer.TotalDuration()
			So(ok, ShouldBeFalse)
			So(timer.ActiveStep(), ShouldEqual, -1)
		})

		Convey("When a step runs to completion", func() {
			timer.StartStep(1) // t+1s
			timer.CompleteStep(1) // t+2s

			Convey("Then its duration is end minus start", func() {
				d, ok := timer.StepDuration(1)
				So(ok, ShouldBeTrue)
				So(d, ShouldEqual, time.Second)
			})
		})

		Convey("When a step is open", func() {
			timer.StartStep(2)

			Convey("Then its duration grows with now", func() {
				d1, ok := timer.StepDuration(2)
				So(ok, ShouldBeTrue)
				d2, _ := timer.StepDuration(2)
				So(d2, ShouldBeGreaterThan, d1)
			})
		})

		Convey("When a step is revisited", func() {
			timer.StartStep(3) // start recorded
			timer.CompleteStep(3)
			before, _ := timer.StepDuration(3)
			timer.StartStep(3) // idempotent, keeps original start

			Convey("Then the original start instant is kept", func() {
				after, _ := timer.StepDuration(3)
				So(after, ShouldEqual, before)
				So(timer.ActiveStep(), ShouldEqual, 3)
			})
		})

		Convey("When several steps have run", func() {
			timer.StartStep(1)
			timer.CompleteStep(1)
			timer.StartStep(2)

			Convey("Then total duration is measured from the first start", func() {
				total, ok := timer.TotalDuration()
				So(ok, ShouldBeTrue)
				So(total, ShouldBeGreaterThan, 0)
			})

			Convey("And reset clears everything", func() {
				timer.Reset()
				_, ok := timer.TotalDuration()
				So(ok, ShouldBeFalse)
				_, ok = timer.StepDuration(1)
				So(ok, ShouldBeFalse)
				So(timer.ActiveStep(), ShouldEqual, -1)
			})
		})

		Convey("When completing a step that never started", func() {
			timer.CompleteStep(9)

			Convey("Then the call is ignored", func() {
				_, ok := timer.StepDuration(9)
				So(ok, ShouldBeFalse)
			})
		})
	})
}
