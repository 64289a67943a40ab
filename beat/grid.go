// Package beat snaps transition times onto downbeats and computes the
// phase shift that bar-aligns two tracks.
package beat

import (
	"fmt"
	"math"

	"github.com/aminorkey/segue"
)

// BeatsPerBar is fixed at 4: the planner assumes 4/4 time.
const BeatsPerBar = 4

// Grid is a track's beat timestamps in ascending order, as supplied by the
// analysis provider. The first beat is taken to be a downbeat.
type Grid []float64

// Downbeats returns every BeatsPerBar-th beat, starting from the first.
func (g Grid) Downbeats() []float64 {
	downs := make([]float64, 0, len(g)/BeatsPerBar+1)
	for i := 0; i < len(g); i += BeatsPerBar {
		downs = append(downs, g[i])
	}
	return downs
}

// NearestDownbeat snaps t to the closest downbeat by absolute distance,
// preferring the earlier one on an exact tie.
func (g Grid) NearestDownbeat(t float64) (float64, error) {
	downs := g.Downbeats()
	if len(downs) == 0 {
		return 0, fmt.Errorf("%w: beat grid is empty, cannot snap %.2fs", segue.ErrAnalysis, t)
	}

	best := downs[0]
	bestDist := math.Abs(t - best)
	for _, d := range downs[1:] {
		if dist := math.Abs(t - d); dist < bestDist {
			best = d
			bestDist = dist
		}
	}
	return best, nil
}

// Period returns the beat period in seconds for a tempo.
func Period(bpm float64) float64 {
	return 60 / bpm
}

// BarPeriod returns the length of one bar in seconds for a tempo.
func BarPeriod(bpm float64) float64 {
	return BeatsPerBar * Period(bpm)
}

// Alignment is a transition time pair snapped onto each track's downbeats,
// plus the shift the renderer must apply to the incoming track so its
// downbeat lands on the outgoing track's.
type Alignment struct {
	ExitTime    float64 `json:"exit_time_sec"`
	EntryTime   float64 `json:"entry_time_sec"`
	PhaseOffset float64 `json:"phase_offset_sec"`
}

// Align snaps a proposed exit time in the outgoing track and entry time in
// the incoming track to their nearest downbeats and computes the phase
// offset between the two bar positions. bpmBNorm must already be on the
// outgoing track's time-scale (tempo.Normalize).
func Align(exit float64, gridA Grid, bpmA float64, entry float64, gridB Grid, bpmBNorm float64) (Alignment, error) {
	if bpmA <= 0 || bpmBNorm <= 0 {
		return Alignment{}, fmt.Errorf("%w: non-positive bpm (%g, %g)", segue.ErrAnalysis, bpmA, bpmBNorm)
	}

	alignedA, err := gridA.NearestDownbeat(exit)
	if err != nil {
		return Alignment{}, fmt.Errorf("outgoing track: %w", err)
	}
	alignedB, err := gridB.NearestDownbeat(entry)
	if err != nil {
		return Alignment{}, fmt.Errorf("incoming track: %w", err)
	}

	return Alignment{
		ExitTime:    alignedA,
		EntryTime:   alignedB,
		PhaseOffset: math.Mod(alignedA, BarPeriod(bpmA)) - math.Mod(alignedB, BarPeriod(bpmBNorm)),
	}, nil
}
