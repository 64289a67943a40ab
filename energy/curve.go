// Package energy holds the RMS loudness curve of a track and the window
// statistics the transition search runs over it.
package energy

import (
	"gonum.org/v1/gonum/stat"
)

// Sample is one point of a track's loudness curve.
type Sample struct {
	Time float64 `json:"time_sec"`
	RMS  float64 `json:"rms"`
}

// Curve is a track's RMS loudness over time, ordered by ascending time.
type Curve []Sample

// WindowMean returns the mean RMS of the samples with from <= Time <= to,
// or 0 when the window holds no samples.
func (c Curve) WindowMean(from, to float64) float64 {
	values := make([]float64, 0, 16)
	for _, s := range c {
		if s.Time >= from && s.Time <= to {
			values = append(values, s.RMS)
		}
	}
	if len(values) == 0 {
		return 0
	}
	return stat.Mean(values, nil)
}

// FirstIn returns the earliest sample with from <= Time < to.
func (c Curve) FirstIn(from, to float64) (Sample, bool) {
	for _, s := range c {
		if s.Time >= from && s.Time < to {
			return s, true
		}
	}
	return Sample{}, false
}

// LargestRise returns the time at which the curve climbs the most between
// consecutive samples, the signature of a drop hitting. Ties go to the
// earliest rise. Needs at least two samples.
func (c Curve) LargestRise() (float64, bool) {
	if len(c) < 2 {
		return 0, false
	}

	bestIdx := 0
	bestRise := c[1].RMS - c[0].RMS
	for i := 1; i < len(c)-1; i++ {
		if rise := c[i+1].RMS - c[i].RMS; rise > bestRise {
			bestRise = rise
			bestIdx = i
		}
	}
	return c[bestIdx].Time, true
}
