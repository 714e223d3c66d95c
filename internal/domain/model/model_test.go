package model_test

import (
	"testing"

	"github.com/perceptlab/syntrial/internal/domain/model"
	. "github.com/smartystreets/goconvey/convey"
)

func TestPickEvent_Color(t *testing.T) {
	Convey("Given a pick event with surface coordinates", t, func() {
		pick := model.PickEvent{R: 10, G: 20, B: 30, Hex: "0A141E", X: 412, Y: 96}

		Convey("When extracting the color", func() {
			c := pick.Color()

			Convey("Then only the color channels are retained", func() {
				So(c, ShouldResemble, model.Color{R: 10, G: 20, B: 30, Hex: "0A141E"})
			})
		})
	})
}
