package analysis_test

import (
	"testing"

	"github.com/perceptlab/syntrial/internal/domain/analysis"
	. "github.com/smartystreets/goconvey/convey"
)

func TestParseHex(t *testing.T) {
	Convey("Given hex color strings", t, func() {
		Convey("When parsing a six-digit value with a hash", func() {
			r, g, b, ok := analysis.ParseHex("#ff00aa")
			So(ok, ShouldBeTrue)
			So(r, ShouldEqual, 255)
			So(g, ShouldEqual, 0)
			So(b, ShouldEqual, 170)
		})

		Convey("When parsing without a hash", func() {
			r, g, b, ok := analysis.ParseHex("0A141E")
			So(ok, ShouldBeTrue)
			So(r, ShouldEqual, 10)
			So(g, ShouldEqual, 20)
			So(b, ShouldEqual, 30)
		})

		Convey("When parsing shorthand", func() {
			r, g, b, ok := analysis.ParseHex("f0a")
			So(ok, ShouldBeTrue)
			So(r, ShouldEqual, 255)
			So(g, ShouldEqual, 0)
			So(b, ShouldEqual, 170)
		})

		Convey("When parsing garbage", func() {
			_, _, _, ok := analysis.ParseHex("not-a-color")
			So(ok, ShouldBeFalse)
			_, _, _, ok = analysis.ParseHex("")
			So(ok, ShouldBeFalse)
			_, _, _, ok = analysis.ParseHex("12345")
			So(ok, ShouldBeFalse)
		})
	})
}

func TestRGBToLuv(t *testing.T) {
	Convey("Given reference colors", t, func() {
		Convey("Then black maps to the Luv origin", func() {
			luv := analysis.RGBToLuv(0, 0, 0)
			So(luv.L, ShouldAlmostEqual, 0, 1e-9)
			So(luv.U, ShouldAlmostEqual, 0, 1e-9)
			So(luv.V, ShouldAlmostEqual, 0, 1e-9)
		})

		Convey("Then white lands at L* close to 100 with near-zero chroma", func() {
			luv := analysis.RGBToLuv(255, 255, 255)
			So(luv.L, ShouldAlmostEqual, 100, 0.01)
			So(luv.U, ShouldAlmostEqual, 0, 0.05)
			So(luv.V, ShouldAlmostEqual, 0, 0.05)
		})

		Convey("Then identical colors are at distance zero", func() {
			a := analysis.RGBToLuv(120, 40, 200)
			b := analysis.RGBToLuv(120, 40, 200)
			So(a.Distance(b), ShouldEqual, 0)
		})

		Convey("Then dissimilar colors are farther apart than similar ones", func() {
			red := analysis.RGBToLuv(255, 0, 0)
			nearRed := analysis.RGBToLuv(250, 10, 10)
			blue := analysis.RGBToLuv(0, 0, 255)
			So(red.Distance(blue), ShouldBeGreaterThan, red.Distance(nearRed))
		})
	})
}
