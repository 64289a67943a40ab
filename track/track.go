// Package track bundles the per-track analysis primitives the planner
// consumes: tempo, key, structure, beats and loudness.
package track

import (
	"fmt"

	"github.com/aminorkey/segue"
	"github.com/aminorkey/segue/beat"
	"github.com/aminorkey/segue/energy"
	"github.com/aminorkey/segue/structure"
	"github.com/aminorkey/segue/tonal"
)

// Analysis is everything the planner knows about one track. It is produced
// once by an analysis provider and treated as immutable afterwards.
type Analysis struct {
	// ID identifies the track in logs and per-pair reports. Free-form,
	// typically a filename.
	ID string `json:"id,omitempty"`

	SampleRate int                  `json:"sample_rate"`
	BPM        float64              `json:"bpm"`
	Key        tonal.KeyEstimate    `json:"key"`
	Segments   []structure.Segment  `json:"segments"`
	Moments    structure.KeyMoments `json:"moments"`
	Beats      beat.Grid            `json:"beats"`
	Energy     energy.Curve         `json:"energy"`
}

// Validate checks the analysis is usable for planning.
func (a *Analysis) Validate() error {
	if a.SampleRate <= 0 {
		return fmt.Errorf("%w: sample rate %d", segue.ErrAnalysis, a.SampleRate)
	}
	if a.BPM <= 0 {
		return fmt.Errorf("%w: bpm %g", segue.ErrAnalysis, a.BPM)
	}
	if err := structure.ValidateSegments(a.Segments); err != nil {
		return err
	}
	return nil
}
