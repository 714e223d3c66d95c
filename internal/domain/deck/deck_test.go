package deck_test

import (
	"math/rand"
	"testing"

	"github.com/perceptlab/syntrial/internal/domain/deck"
	. "github.com/smartystreets/goconvey/convey"
)

func TestBuild_Completeness(t *testing.T) {
	Convey("Given a stimulus list and a repeat count", t, func() {
		items := []string{"A", "B", "C", "D", "E"}
		repeats := 3

		Convey("When building a deck", func() {
			entries := deck.Build(items, repeats)

			Convey("Then the deck has len(items)*repeats entries", func() {
				So(len(entries), ShouldEqual, len(items)*repeats)
			})

			Convey("And every repetition covers the item multiset exactly", func() {
				for rep := 1; rep <= repeats; rep++ {
					counts := make(map[string]int)
					for _, e := range entries {
						if e.Trial == rep {
							counts[e.Stimulus]++
						}
					}
					So(len(counts), ShouldEqual, len(items))
					for _, item := range items {
						So(counts[item], ShouldEqual, 1)
					}
				}
			})

			Convey("And item ids are 1-based positions within each repetition", func() {
				seen := make(map[int][]int)
				for _, e := range entries {
					seen[e.Trial] = append(seen[e.Trial], e.ItemID)
				}
				for rep := 1; rep <= repeats; rep++ {
					So(seen[rep], ShouldResemble, []int{1, 2, 3, 4, 5})
				}
			})
		})
	})
}

func TestBuild_DegenerateInputs(t *testing.T) {
	Convey("Given degenerate inputs", t, func() {
		Convey("When items are empty", func() {
			So(deck.Build(nil, 5), ShouldBeEmpty)
		})

		Convey("When repeats is zero", func() {
			So(deck.Build([]string{"A", "B"}, 0), ShouldBeEmpty)
		})

		Convey("When repeats is negative", func() {
			So(deck.Build([]string{"A", "B"}, -3), ShouldBeEmpty)
		})
	})
}

func TestBuild_IndependentShuffles(t *testing.T) {
	Convey("Given a deterministic random source", t, func() {
		rng := rand.New(rand.NewSource(7))
		items := []string{"A", "B", "C", "D", "E", "F", "G", "H", "I", "J"}

		Convey("When building many repetitions", func() {
			entries := deck.Build(items, 20, deck.WithRand(rng))

			orders := make(map[int][]string)
			for _, e := range entries {
				orders[e.Trial] = append(orders[e.Trial], e.Stimulus)
			}

			Convey("Then not every repetition shares repetition 1's order", func() {
				identical := 0
				for rep := 2; rep <= 20; rep++ {
					same := true
					for i := range orders[1] {
						if orders[rep][i] != orders[1][i] {
							same = false
							break
						}
					}
					if same {
						identical++
					}
				}
				// 19 independent 10-item shuffles all matching the first is
				// beyond astronomically unlikely.
				So(identical, ShouldBeLessThan, 19)
			})
		})
	})
}

func TestBuild_Deterministic(t *testing.T) {
	Convey("Given two builds with the same seed", t, func() {
		items := []string{"do", "re", "mi", "fa", "sol"}

		first := deck.Build(items, 4, deck.WithRand(rand.New(rand.NewSource(99))))
		second := deck.Build(items, 4, deck.WithRand(rand.New(rand.NewSource(99))))

		Convey("Then the decks are identical", func() {
			So(second, ShouldResemble, first)
		})
	})
}
