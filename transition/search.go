// Package transition finds the best point to leave one track and enter the
// next, and picks the transition style to use there.
package transition

import (
	"fmt"

	"github.com/aminorkey/segue"
	"github.com/aminorkey/segue/beat"
	"github.com/aminorkey/segue/structure"
	"github.com/aminorkey/segue/track"
)

// Strategy selects the pair-scoring formula.
type Strategy string

const (
	// StrategySmooth penalizes loudness discontinuity across the
	// transition alongside tempo stretch.
	StrategySmooth Strategy = "smooth"

	// StrategyHype ignores loudness discontinuity: a jump into a drop is
	// the point. Drop entries are only eligible under this strategy.
	StrategyHype Strategy = "hype"
)

// Weights scales the terms of the pair score.
type Weights struct {
	Exit    float64 `json:"exit"`
	Entry   float64 `json:"entry"`
	Energy  float64 `json:"energy"`  // smooth only
	Stretch float64 `json:"stretch"`
}

// DefaultWeights returns evenly balanced scoring weights.
func DefaultWeights() Weights {
	return Weights{Exit: 1.0, Entry: 1.0, Energy: 1.0, Stretch: 1.0}
}

// SearchParams configures the transition point search.
type SearchParams struct {
	Strategy Strategy `json:"strategy"`
	Weights  Weights  `json:"weights"`
}

// DefaultSearchParams returns a smooth-strategy search with default weights.
func DefaultSearchParams() SearchParams {
	return SearchParams{Strategy: StrategySmooth, Weights: DefaultWeights()}
}

// Candidate is one possible exit or entry point, weighted by how musically
// strong that boundary is. Candidates are transient: they exist only while
// a pair is being searched.
type Candidate struct {
	Time  float64         `json:"time_sec"`
	Label structure.Label `json:"label"`
	Score float64         `json:"score"`
}

// Exit preference weights over segment boundaries in the outgoing track.
const (
	exitChorusEndWeight = 1.0
	exitDropEndWeight   = 1.0
	exitBreakWeight     = 0.8
	exitVerseEndWeight  = 0.4
)

// Entry preference weights over canonical moments in the incoming track.
const (
	entryDropWeight    = 1.0
	entryIntroWeight   = 0.8
	entryBuildupWeight = 0.8
)

// ExitCandidates collects the segment boundaries of the outgoing track
// worth leaving on: ends of choruses and drops, starts of breaks, ends of
// verses. All other boundaries are ignored.
func ExitCandidates(segments []structure.Segment) []Candidate {
	candidates := make([]Candidate, 0, len(segments))
	for _, seg := range segments {
		switch seg.Label {
		case structure.LabelChorus:
			candidates = append(candidates, Candidate{Time: seg.End, Label: seg.Label, Score: exitChorusEndWeight})
		case structure.LabelDrop:
			candidates = append(candidates, Candidate{Time: seg.End, Label: seg.Label, Score: exitDropEndWeight})
		case structure.LabelBreak:
			candidates = append(candidates, Candidate{Time: seg.Start, Label: seg.Label, Score: exitBreakWeight})
		case structure.LabelVerse:
			candidates = append(candidates, Candidate{Time: seg.End, Label: seg.Label, Score: exitVerseEndWeight})
		}
	}
	return candidates
}

// EntryCandidates collects the canonical moments of the incoming track
// worth landing on. The beat drop is only offered to the hype strategy;
// intro and buildup entries serve both.
func EntryCandidates(moments structure.KeyMoments, strategy Strategy) []Candidate {
	candidates := make([]Candidate, 0, 3)
	if moments.Beatdrop.Present && strategy == StrategyHype {
		candidates = append(candidates, Candidate{Time: moments.Beatdrop.At, Label: structure.LabelDrop, Score: entryDropWeight})
	}
	if moments.Intro.Present {
		candidates = append(candidates, Candidate{Time: moments.Intro.At, Label: structure.LabelIntro, Score: entryIntroWeight})
	}
	if moments.Buildup.Present {
		candidates = append(candidates, Candidate{Time: moments.Buildup.At, Label: structure.LabelBuildup, Score: entryBuildupWeight})
	}
	return candidates
}

// Point is the winning exit/entry pair of a search.
type Point struct {
	ExitTime   float64         `json:"exit_time_sec"`
	EntryTime  float64         `json:"entry_time_sec"`
	ExitLabel  structure.Label `json:"exit_label"`
	EntryLabel structure.Label `json:"entry_label"`
	Score      float64         `json:"score"`

	// EnergyJump is the signed loudness change across the transition,
	// incoming minus outgoing, over the scoring windows.
	EnergyJump float64 `json:"energy_jump"`
}

// FindPoint scores every exit x entry pair between two tracks and returns
// the best one under the configured strategy.
//
// Each pair is scored as weighted exit preference plus entry preference,
// minus the loudness discontinuity between the last two bars of the
// outgoing track and the first two bars of the incoming one (smooth
// strategy only), minus the tempo stretch the pair demands. Ties go to the
// earliest exit time.
func FindPoint(a, b *track.Analysis, stretchPct float64, params SearchParams) (Point, error) {
	exits := ExitCandidates(a.Segments)
	if len(exits) == 0 {
		return Point{}, fmt.Errorf("%w: no usable exit boundaries in track %q", segue.ErrAnalysis, a.ID)
	}
	entries := EntryCandidates(b.Moments, params.Strategy)
	if len(entries) == 0 {
		return Point{}, fmt.Errorf("%w: no usable entry moments in track %q", segue.ErrAnalysis, b.ID)
	}

	w := params.Weights
	twoBarsA := 2 * beat.BarPeriod(a.BPM)
	twoBarsB := 2 * beat.BarPeriod(b.BPM)

	var best Point
	found := false
	for _, exit := range exits {
		exitRMS := a.Energy.WindowMean(exit.Time-twoBarsA, exit.Time)
		for _, entry := range entries {
			entryRMS := b.Energy.WindowMean(entry.Time, entry.Time+twoBarsB)
			energyPenalty := entryRMS - exitRMS
			if energyPenalty < 0 {
				energyPenalty = -energyPenalty
			}

			score := w.Exit*exit.Score + w.Entry*entry.Score - w.Stretch*stretchPct
			if params.Strategy == StrategySmooth {
				score -= w.Energy * energyPenalty
			}

			if !found || score > best.Score {
				best = Point{
					ExitTime:   exit.Time,
					EntryTime:  entry.Time,
					ExitLabel:  exit.Label,
					EntryLabel: entry.Label,
					Score:      score,
					EnergyJump: entryRMS - exitRMS,
				}
				found = true
			}
		}
	}

	return best, nil
}
