// Package segue plans and renders DJ-style transitions between pairs of
// music tracks.
//
// Given per-track analysis primitives (tempo, an averaged chroma vector,
// labeled structural segments, a beat grid and an RMS energy curve), the
// library scores harmonic and tempo compatibility, locates the musically
// best exit point in the outgoing track and entry point in the incoming
// track, picks a transition style through a deterministic rule chain, and
// renders the chosen effect into a single output buffer.
//
// The pipeline is synchronous and pure: every call maps inputs to outputs
// with no shared mutable state, so independent track pairs can be evaluated
// concurrently by the caller. Feature extraction is pluggable through the
// analysis.Provider interface; analysis.Analyzer is a built-in provider that
// works directly from raw sample buffers.
//
// Subpackages:
//
//   - camelot: harmonic compatibility on the Camelot wheel
//   - tonal: key estimation from chroma vectors
//   - tempo: BPM compatibility with half/double-time handling
//   - structure: canonical key moments from labeled segments
//   - beat: downbeat snapping and phase alignment
//   - energy: RMS energy curves
//   - track: per-track analysis record
//   - transition: transition point search and style selection
//   - render: crossfade and low-cut echo-slam renderers
//   - analysis: built-in feature extraction
//   - mix: the end-to-end engine
package segue
