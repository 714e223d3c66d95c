// Package deck builds randomized, repeated stimulus presentation orders.
package deck

import (
	"math/rand"
	"time"

	"github.com/perceptlab/syntrial/internal/domain/model"
)

// builder holds the configurable parts of a Build call.
type builder struct {
	rng *rand.Rand
}

// Build expands a list of stimulus identifiers into a deck of
// len(items) * repeats entries. Each repetition is an independently shuffled
// copy of items; Trial is the repetition number and ItemID the 1-based
// position within that repetition. Negative or zero repeats and empty item
// lists clamp to an empty deck.
func Build(items []string, repeats int, opts ...Option) []model.DeckEntry {
	b := &builder{
		rng: rand.New(rand.NewSource(time.Now().UnixNano())), //nolint:gosec // presentation order, not security
	}
	for _, opt := range opts {
		opt(b)
	}

	if repeats < 0 {
		repeats = 0
	}
	if len(items) == 0 {
		repeats = 0
	}

	entries := make([]model.DeckEntry, 0, len(items)*repeats)
	for rep := 1; rep <= repeats; rep++ {
		order := make([]string, len(items))
		copy(order, items)
		b.rng.Shuffle(len(order), func(i, j int) {
			order[i], order[j] = order[j], order[i]
		})
		for pos, stimulus := range order {
			entries = append(entries, model.DeckEntry{
				Stimulus: stimulus,
				Trial:    rep,
				ItemID:   pos + 1,
			})
		}
	}
	return entries
}
