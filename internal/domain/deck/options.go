// Package deck builds randomized, repeated stimulus presentation orders.
package deck

import "math/rand"

// Option applies a configuration option to a Build call.
type Option func(*builder)

// WithRand sets the random source used for shuffling. Tests use this to make
// presentation orders deterministic.
func WithRand(rng *rand.Rand) Option {
	return func(b *builder) {
		if rng != nil {
			b.rng = rng
		}
	}
}
