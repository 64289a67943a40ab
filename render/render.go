package render

import (
	"fmt"

	"github.com/aminorkey/segue"
	"github.com/aminorkey/segue/transition"
)

// Render applies a transition plan to the outgoing and incoming buffers and
// returns the mixed output, using default slam parameters for the low-cut
// styles.
func Render(plan *transition.Plan, a, b *Buffer) (*Buffer, error) {
	return RenderWithParams(plan, a, b, DefaultSlamParams())
}

// RenderWithParams is Render with caller-supplied slam parameters. The
// incoming entry is shifted by the plan's phase offset so its downbeat
// lands on the outgoing track's grid.
//
// Crossfade and reverb tail plans run the equal-power crossfade engine;
// low-cut plans run the slam engine, without the echo tap for the plain
// low-cut filter style.
func RenderWithParams(plan *transition.Plan, a, b *Buffer, slam SlamParams) (*Buffer, error) {
	if err := plan.Validate(); err != nil {
		return nil, err
	}

	window := plan.Duration()
	entry := plan.EntryTime + plan.PhaseOffset

	switch plan.Type {
	case transition.TypeCrossfade, transition.TypeReverbTail:
		return Crossfade(a, b, plan.ExitTime, entry, window)
	case transition.TypeLowCutFilter:
		slam.EchoDecay = 0
		return LowCutEchoSlam(a, b, plan.ExitTime, entry, window, slam)
	case transition.TypeLowCutEchoSlam:
		return LowCutEchoSlam(a, b, plan.ExitTime, entry, window, slam)
	default:
		return nil, fmt.Errorf("%w: no engine for transition type %q", segue.ErrRender, plan.Type)
	}
}
