package segue

import "errors"

// Sentinel errors shared across subpackages. Raise sites wrap these with
// fmt.Errorf("%w: ...") so callers can classify failures with errors.Is
// while still seeing the operands that caused them.
var (
	// ErrAnalysis marks degenerate analysis input: a malformed or zero
	// chroma vector, an empty segment list. Recoverable: the affected
	// estimate is returned with zero confidence or absent moments.
	ErrAnalysis = errors.New("analysis failed")

	// ErrInvalidKeyCode marks a malformed Camelot code (letter outside
	// A/B or number outside 1..12). Aborts compatibility scoring for the
	// pair that carried it.
	ErrInvalidKeyCode = errors.New("invalid camelot key code")

	// ErrIncompatiblePair marks a track pair whose effective BPM delta
	// exceeds the configured hard limit. Reported, not fatal: the caller
	// may force a fallback style or skip the pair.
	ErrIncompatiblePair = errors.New("incompatible track pair")

	// ErrRender marks a rendering failure: a transition window longer
	// than a source buffer, or mismatched sample rates. No partial mix is
	// produced.
	ErrRender = errors.New("render failed")
)
