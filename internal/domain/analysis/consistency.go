package analysis

import (
	"context"

	"github.com/perceptlab/syntrial/internal/domain/model"
)

// StimulusConsistency is the per-stimulus aggregate: how far apart the
// participant's repeated color choices for one stimulus sit in Luv space.
// Lower distances mean more consistent associations.
type StimulusConsistency struct {
	Stimulus     string  `json:"stimulus"`
	ColorTrials  int     `json:"color_trials"`
	MeanDistance float64 `json:"mean_distance"`
}

// Report aggregates consistency over one or more batches.
type Report struct {
	PerStimulus []StimulusConsistency `json:"per_stimulus"`
	// Score is the mean of per-stimulus mean pairwise distances across all
	// stimuli with at least two colored responses. Zero when nothing scored.
	Score         float64 `json:"score"`
	ScoredStimuli int     `json:"scored_stimuli"`
}

// Consistency computes a report over response records. No-experience
// responses carry no color and are excluded from distance computation but
// still counted per stimulus presentation.
func Consistency(responses []model.ResponseRecord) Report {
	byStimulus := make(map[string][]Luv)
	var order []string
	for _, rec := range responses {
		if rec.SelectedColor == nil {
			continue
		}
		c := rec.SelectedColor
		if _, seen := byStimulus[rec.Stimulus]; !seen {
			order = append(order, rec.Stimulus)
		}
		byStimulus[rec.Stimulus] = append(byStimulus[rec.Stimulus], RGBToLuv(c.R, c.G, c.B))
	}

	var report Report
	var sum float64
	for _, stimulus := range order {
		colors := byStimulus[stimulus]
		sc := StimulusConsistency{Stimulus: stimulus, ColorTrials: len(colors)}
		if len(colors) >= 2 {
			sc.MeanDistance = meanPairwiseDistance(colors)
			sum += sc.MeanDistance
			report.ScoredStimuli++
		}
		report.PerStimulus = append(report.PerStimulus, sc)
	}
	if report.ScoredStimuli > 0 {
		report.Score = sum / float64(report.ScoredStimuli)
	}
	return report
}

// meanPairwiseDistance averages the Luv distance over all unordered pairs.
func meanPairwiseDistance(colors []Luv) float64 {
	var sum float64
	var pairs int
	for i := 0; i < len(colors); i++ {
		for j := i + 1; j < len(colors); j++ {
			sum += colors[i].Distance(colors[j])
			pairs++
		}
	}
	if pairs == 0 {
		return 0
	}
	return sum / float64(pairs)
}

// MeanReactionMS averages reaction times over a record list.
func MeanReactionMS(responses []model.ResponseRecord) float64 {
	if len(responses) == 0 {
		return 0
	}
	var sum int64
	for _, rec := range responses {
		sum += rec.ReactionTimeMS
	}
	return float64(sum) / float64(len(responses))
}

// Summarizer reduces a batch to its stored summary. It satisfies the
// worker's analysis dependency.
type Summarizer struct{}

// NewSummarizer creates a batch summarizer.
func NewSummarizer() *Summarizer {
	return &Summarizer{}
}

// Summarize computes the persisted roll-up for one batch.
func (s *Summarizer) Summarize(_ context.Context, batch model.Batch) (model.BatchSummary, error) {
	report := Consistency(batch.Responses)
	return model.BatchSummary{
		BatchID:        batch.BatchID,
		TestType:       batch.TestType,
		TrialCount:     len(batch.Responses),
		MeanReactionMS: MeanReactionMS(batch.Responses),
		Consistency:    report.Score,
		CompletedAt:    batch.CompletedAt,
	}, nil
}
