// Package tempo scores tempo compatibility between two tracks, tolerating
// half-time and double-time relationships so a 90/180 BPM pair is not
// misjudged as unmixable.
package tempo

import (
	"fmt"
	"math"

	"github.com/aminorkey/segue"
)

// Limits holds the hand-tuned mixing conventions. The defaults are the
// values DJs commonly work to; they are exposed for tuning rather than
// hard-coded.
type Limits struct {
	// MaxDelta is the hard cap on effective BPM difference. Pairs beyond
	// it are reported incompatible.
	MaxDelta float64 `json:"max_delta_bpm"`

	// SafeStretch is the largest tempo-stretch fraction considered
	// inaudible enough for blended transitions.
	SafeStretch float64 `json:"safe_stretch"`

	// DoubleBelow and HalveAbove bound the band, as multiples of the
	// reference BPM, outside which the other track is re-scaled to the
	// reference time-scale.
	DoubleBelow float64 `json:"double_below"`
	HalveAbove  float64 `json:"halve_above"`
}

// DefaultLimits returns the standard mixing conventions: 15 BPM cap, 6%
// safe stretch, re-scaling outside 0.75x..1.33x.
func DefaultLimits() Limits {
	return Limits{
		MaxDelta:    15,
		SafeStretch: 0.06,
		DoubleBelow: 0.75,
		HalveAbove:  1.33,
	}
}

// Result describes how two tempos relate after half/double-time handling.
type Result struct {
	DeltaEff    float64 `json:"delta_eff_bpm"`    // effective BPM difference
	NormalizedB float64 `json:"normalized_b_bpm"` // bpmB re-scaled to A's time-scale
	StretchPct  float64 `json:"stretch_pct"`      // fraction B must stretch to match A
	SafeStretch bool    `json:"safe_stretch"`     // StretchPct within Limits.SafeStretch
	Compatible  bool    `json:"compatible"`       // DeltaEff within Limits.MaxDelta
}

// EffectiveDelta returns the BPM difference after allowing either track to
// be heard at half or double time. Symmetric in its arguments.
func EffectiveDelta(bpmA, bpmB float64) float64 {
	return math.Min(
		math.Abs(bpmA-bpmB),
		math.Min(math.Abs(bpmA-2*bpmB), math.Abs(2*bpmA-bpmB)),
	)
}

// Normalize re-scales bpmB onto bpmA's time-scale: doubled when it sits
// below limits.DoubleBelow of the reference, halved above limits.HalveAbove,
// otherwise unchanged.
func Normalize(bpmA, bpmB float64, limits Limits) float64 {
	switch {
	case bpmB < limits.DoubleBelow*bpmA:
		return bpmB * 2
	case bpmB > limits.HalveAbove*bpmA:
		return bpmB / 2
	default:
		return bpmB
	}
}

// Compare scores the tempo relationship between two tracks. The result is
// always populated; when the effective delta exceeds limits.MaxDelta the
// returned error wraps segue.ErrIncompatiblePair so callers can report the
// pair and fall back, rather than treating it as fatal.
func Compare(bpmA, bpmB float64, limits Limits) (Result, error) {
	if bpmA <= 0 || bpmB <= 0 {
		return Result{}, fmt.Errorf("%w: non-positive bpm (%g, %g)", segue.ErrAnalysis, bpmA, bpmB)
	}

	normB := Normalize(bpmA, bpmB, limits)
	res := Result{
		DeltaEff:    EffectiveDelta(bpmA, bpmB),
		NormalizedB: normB,
		StretchPct:  math.Abs(bpmA/normB - 1),
	}
	res.SafeStretch = res.StretchPct <= limits.SafeStretch
	res.Compatible = res.DeltaEff <= limits.MaxDelta

	if !res.Compatible {
		return res, fmt.Errorf("%w: effective bpm delta %.2f exceeds cap %.2f",
			segue.ErrIncompatiblePair, res.DeltaEff, limits.MaxDelta)
	}
	return res, nil
}
