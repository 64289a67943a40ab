package transition

import (
	"fmt"

	"github.com/aminorkey/segue"
	"github.com/aminorkey/segue/structure"
)

// Plan is the finished decision for one track pair: where to leave, where
// to land, what effect to run and for how long. It is created once per
// pair and handed straight to the renderer; nothing persists it.
type Plan struct {
	ExitTime      float64 `json:"exit_time_sec"`
	EntryTime     float64 `json:"entry_time_sec"`
	Type          Type    `json:"type"`
	DurationBeats int     `json:"duration_beats"`

	// BPMRef is the tempo the transition clock runs at, taken from the
	// outgoing track.
	BPMRef float64 `json:"bpm_ref"`

	// PhaseOffset is the shift the renderer applies to the incoming
	// track so its downbeat lands on the outgoing track's.
	PhaseOffset float64 `json:"phase_offset_sec"`

	// Metrics that led to the choice, kept for the caller's logging.
	ExitLabel  structure.Label `json:"exit_label"`
	EntryLabel structure.Label `json:"entry_label"`
	EnergyJump float64         `json:"energy_jump"`
	Score      float64         `json:"score"`
	Reason     string          `json:"reason"`
}

// Duration returns the transition length in seconds at the reference tempo.
func (p *Plan) Duration() float64 {
	return float64(p.DurationBeats) * 60 / p.BPMRef
}

// Validate checks the plan can drive a renderer.
func (p *Plan) Validate() error {
	if p.BPMRef <= 0 {
		return fmt.Errorf("%w: plan has non-positive reference bpm %g", segue.ErrRender, p.BPMRef)
	}
	if p.DurationBeats <= 0 {
		return fmt.Errorf("%w: plan has non-positive duration %d beats", segue.ErrRender, p.DurationBeats)
	}
	if p.ExitTime < 0 || p.EntryTime < 0 {
		return fmt.Errorf("%w: plan has negative transition time (%g, %g)", segue.ErrRender, p.ExitTime, p.EntryTime)
	}
	switch p.Type {
	case TypeCrossfade, TypeReverbTail, TypeLowCutFilter, TypeLowCutEchoSlam:
	default:
		return fmt.Errorf("%w: unknown transition type %q", segue.ErrRender, p.Type)
	}
	return nil
}
