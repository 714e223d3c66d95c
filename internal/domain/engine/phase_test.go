package engine

import (
	"testing"

	. "github.com/smartystreets/goconvey/convey"
)

func TestPhase_TransitionTable(t *testing.T) {
	Convey("Given the phase transition table", t, func() {
		Convey("Then intro can reach practice, testing, and done", func() {
			So(PhaseIntro.canTransition(PhasePractice), ShouldBeTrue)
			So(PhaseIntro.canTransition(PhaseTesting), ShouldBeTrue)
			So(PhaseIntro.canTransition(PhaseDone), ShouldBeTrue)
		})

		Convey("Then practice can never fall back to intro", func() {
			So(PhasePractice.canTransition(PhaseIntro), ShouldBeFalse)
			So(PhasePractice.canTransition(PhaseTesting), ShouldBeTrue)
		})

		Convey("Then testing only reaches done", func() {
			So(PhaseTesting.canTransition(PhaseDone), ShouldBeTrue)
			So(PhaseTesting.canTransition(PhaseTesting), ShouldBeFalse)
			So(PhaseTesting.canTransition(PhaseIntro), ShouldBeFalse)
		})

		Convey("Then done is terminal", func() {
			So(PhaseDone.canTransition(PhaseIntro), ShouldBeFalse)
			So(PhaseDone.canTransition(PhasePractice), ShouldBeFalse)
			So(PhaseDone.canTransition(PhaseTesting), ShouldBeFalse)
			So(PhaseDone.canTransition(PhaseDone), ShouldBeFalse)
		})
	})
}

func TestPhase_Properties(t *testing.T) {
	Convey("Given the four phases", t, func() {
		Convey("Then only testing records responses", func() {
			So(PhaseTesting.Recording(), ShouldBeTrue)
			So(PhasePractice.Recording(), ShouldBeFalse)
			So(PhaseIntro.Recording(), ShouldBeFalse)
			So(PhaseDone.Recording(), ShouldBeFalse)
		})

		Convey("Then only practice and testing accept trial operations", func() {
			So(PhasePractice.active(), ShouldBeTrue)
			So(PhaseTesting.active(), ShouldBeTrue)
			So(PhaseIntro.active(), ShouldBeFalse)
			So(PhaseDone.active(), ShouldBeFalse)
		})

		Convey("Then names are stable for logs and payloads", func() {
			So(PhaseIntro.String(), ShouldEqual, "intro")
			So(PhasePractice.String(), ShouldEqual, "practice")
			So(PhaseTesting.String(), ShouldEqual, "testing")
			So(PhaseDone.String(), ShouldEqual, "done")
			So(Phase(99).String(), ShouldEqual, "unknown")
		})
	})
}
