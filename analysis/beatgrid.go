package analysis

import (
	"math"

	"github.com/aminorkey/segue/beat"
)

// BeatGrid lays a fixed-period grid at the estimated tempo and phase-locks
// it to the onset envelope: every envelope-resolution phase inside the
// first beat period is tried, and the phase whose grid points collect the
// most onset energy wins.
func (a *Analyzer) BeatGrid(samples []float64, sampleRate int) (beat.Grid, error) {
	bpm, err := a.Tempo(samples, sampleRate)
	if err != nil {
		return nil, err
	}
	envelope, hopSec, err := a.onsetEnvelope(samples, sampleRate)
	if err != nil {
		return nil, err
	}

	period := beat.Period(bpm)
	duration := float64(len(samples)) / float64(sampleRate)

	phaseSteps := int(period / hopSec)
	if phaseSteps < 1 {
		phaseSteps = 1
	}

	bestPhase := 0.0
	bestScore := math.Inf(-1)
	for k := 0; k < phaseSteps; k++ {
		phase := float64(k) * hopSec
		score := 0.0
		for t := phase; t < duration; t += period {
			idx := int(math.Round(t / hopSec))
			if idx >= 0 && idx < len(envelope) {
				score += envelope[idx]
			}
		}
		if score > bestScore {
			bestScore = score
			bestPhase = phase
		}
	}

	var grid beat.Grid
	for t := bestPhase; t < duration; t += period {
		grid = append(grid, t)
	}
	return grid, nil
}
