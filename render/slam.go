package render

import (
	"fmt"

	"github.com/aminorkey/segue"
)

// SlamParams tunes the low-cut echo slam. The defaults are hand-tuned; the
// cutoff climbs toward CutoffCeilingHz in Steps stages but never reaches it.
type SlamParams struct {
	Steps           int     `json:"steps"`
	CutoffCeilingHz float64 `json:"cutoff_ceiling_hz"`
	MinCutoffHz     float64 `json:"min_cutoff_hz"` // below this, skip filtering
	EchoDelaySec    float64 `json:"echo_delay_sec"`
	EchoDecay       float64 `json:"echo_decay"`
}

// DefaultSlamParams returns the tuned slam constants.
func DefaultSlamParams() SlamParams {
	return SlamParams{
		Steps:           8,
		CutoffCeilingHz: 200,
		MinCutoffHz:     20,
		EchoDelaySec:    0.3,
		EchoDecay:       0.4,
	}
}

// LowCutEchoSlam renders a bass-cut slam from the outgoing buffer into the
// incoming one. Over the transition window the outgoing tail loses its low
// end in stages as a high-pass cutoff sweeps up, an echo tap smears what
// remains, and the incoming head rises clean underneath on an equal-power
// blend. The result is peak-normalized.
func LowCutEchoSlam(a, b *Buffer, exitSec, entrySec, windowSec float64, p SlamParams) (*Buffer, error) {
	if p.Steps < 1 {
		return nil, fmt.Errorf("%w: slam needs at least one filter step, got %d", segue.ErrRender, p.Steps)
	}

	cut, err := cutForTransition(a, b, exitSec, entrySec, windowSec)
	if err != nil {
		return nil, err
	}

	stepSize := cut.window / p.Steps
	if stepSize < 1 {
		return nil, fmt.Errorf("%w: transition window of %d samples cannot hold %d filter steps",
			segue.ErrRender, cut.window, p.Steps)
	}

	for ch := range cut.tailA {
		tail := cut.tailA[ch]
		for i := 0; i < p.Steps; i++ {
			start := i * stepSize
			end := start + stepSize
			if i == p.Steps-1 {
				end = cut.window
			}

			cutoff := float64(i) / float64(p.Steps) * p.CutoffCeilingHz
			if cutoff <= p.MinCutoffHz {
				continue
			}
			// Fresh filter state per chunk keeps each stage's cut
			// independent of the previous one.
			hp := NewButterworthHighpass(a.SampleRate, cutoff)
			hp.ProcessBuffer(tail[start:end])
		}
		addEcho(tail, a.SampleRate, p.EchoDelaySec, p.EchoDecay)
	}

	blended := blendEqualPower(cut.tailA, cut.headB, cut.window)
	out := cut.assemble(a.SampleRate, blended)
	out.PeakNormalize()
	return out, nil
}
