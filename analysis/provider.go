// Package analysis extracts per-track primitives from raw mono sample
// buffers: tempo, chroma, beat grid, energy curve and a coarse structural
// segmentation. It implements the Provider interface the planner consumes,
// so the library is usable end-to-end without external analysis tooling.
package analysis

import (
	"github.com/aminorkey/segue/beat"
	"github.com/aminorkey/segue/energy"
	"github.com/aminorkey/segue/structure"
	"github.com/aminorkey/segue/tonal"
)

// Provider supplies the per-track analysis primitives the planner needs.
// Implementations take mono samples at a known rate; multi-channel sources
// are downmixed by the caller.
type Provider interface {
	// Tempo estimates the track tempo in BPM.
	Tempo(samples []float64, sampleRate int) (float64, error)

	// Chroma returns the track's 12-bin pitch class profile.
	Chroma(samples []float64, sampleRate int) (tonal.ChromaVector, error)

	// Segments returns an ordered structural segmentation.
	Segments(samples []float64, sampleRate int) ([]structure.Segment, error)

	// BeatGrid returns ordered beat timestamps locked to the track's pulse.
	BeatGrid(samples []float64, sampleRate int) (beat.Grid, error)

	// EnergyCurve returns the track's RMS loudness over time.
	EnergyCurve(samples []float64, sampleRate int) (energy.Curve, error)
}
