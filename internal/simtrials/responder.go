package simtrials

import (
	"crypto/rand"
	"fmt"
	"math/big"

	"github.com/perceptlab/syntrial/internal/domain/model"
)

// Constants for random number generation.
const (
	randomFloatDivisor  = 1000000
	colorChannelRange   = 256
	jitterRange         = 24 // +/- channel jitter for consistent responders
	noExperienceDivisor = 12 // roughly 1 in 12 trials reports no experience
)

// Reaction time distribution in milliseconds.
const (
	reactionBaseMS  = 400
	reactionRangeMS = 2200
)

// getRandomFloat returns a random float64 between 0.0 and 1.0 using crypto/rand.
func getRandomFloat() float64 {
	n, _ := rand.Int(rand.Reader, big.NewInt(randomFloatDivisor))
	return float64(n.Int64()) / float64(randomFloatDivisor)
}

// randomInt returns a random int in [0, n).
func randomInt(n int) int {
	v, _ := rand.Int(rand.Reader, big.NewInt(int64(n)))
	return int(v.Int64())
}

// responder simulates one participant's color associations. Each stimulus
// gets a stable base color; picks jitter around it so that stored batches
// produce plausible consistency scores.
type responder struct {
	associations map[string]model.Color
	consistent   bool
}

// newResponder creates a responder. Consistent responders behave like
// synesthetes; inconsistent ones pick fresh random colors every trial.
func newResponder(consistent bool) *responder {
	return &responder{
		associations: make(map[string]model.Color),
		consistent:   consistent,
	}
}

// pick returns the pick event for a stimulus, or false for a
// no-experience report.
func (r *responder) pick(stimulus string) (model.PickEvent, bool) {
	if randomInt(noExperienceDivisor) == 0 {
		return model.PickEvent{}, false
	}

	if !r.consistent {
		return randomPick(), true
	}

	base, ok := r.associations[stimulus]
	if !ok {
		base = model.Color{
			R: uint8(randomInt(colorChannelRange)),
			G: uint8(randomInt(colorChannelRange)),
			B: uint8(randomInt(colorChannelRange)),
		}
		r.associations[stimulus] = base
	}

	c := model.Color{
		R: jitterChannel(base.R),
		G: jitterChannel(base.G),
		B: jitterChannel(base.B),
	}
	return pickFromColor(c), true
}

// reactionTimeMS samples a plausible per-trial reaction time.
func (r *responder) reactionTimeMS() int64 {
	return int64(reactionBaseMS + getRandomFloat()*reactionRangeMS)
}

func jitterChannel(v uint8) uint8 {
	delta := randomInt(2*jitterRange+1) - jitterRange
	out := int(v) + delta
	if out < 0 {
		out = 0
	}
	if out > 255 {
		out = 255
	}
	return uint8(out)
}

func randomPick() model.PickEvent {
	return pickFromColor(model.Color{
		R: uint8(randomInt(colorChannelRange)),
		G: uint8(randomInt(colorChannelRange)),
		B: uint8(randomInt(colorChannelRange)),
	})
}

func pickFromColor(c model.Color) model.PickEvent {
	return model.PickEvent{
		R:   c.R,
		G:   c.G,
		B:   c.B,
		Hex: fmt.Sprintf("%02X%02X%02X", c.R, c.G, c.B),
		X:   randomInt(400),
		Y:   randomInt(400),
	}
}
