package structure

import (
	"github.com/aminorkey/segue/energy"
)

// Moment is a timestamp that may legitimately be absent. A present moment
// at 0.0 is a valid detection, never conflated with a missing one.
type Moment struct {
	At      float64 `json:"at_sec"`
	Present bool    `json:"present"`
}

// momentAt wraps a detected timestamp.
func momentAt(t float64) Moment {
	return Moment{At: t, Present: true}
}

// KeyMoments are the six canonical moments of one track, in fixed order.
type KeyMoments struct {
	Intro    Moment `json:"intro"`
	Verse    Moment `json:"verse"`
	Buildup  Moment `json:"buildup"`
	Beatdrop Moment `json:"beatdrop"`
	Chorus   Moment `json:"chorus"`
	Outro    Moment `json:"outro"`
}

// NamedMoment pairs a canonical moment with its display name.
type NamedMoment struct {
	Name   string `json:"name"`
	Moment Moment `json:"moment"`
}

// List returns the six moments in their fixed canonical order, for
// logging and display.
func (m KeyMoments) List() []NamedMoment {
	return []NamedMoment{
		{"Intro", m.Intro},
		{"Verse", m.Verse},
		{"Buildup", m.Buildup},
		{"Beatdrop", m.Beatdrop},
		{"Chorus", m.Chorus},
		{"Outro", m.Outro},
	}
}

// ExtractorParams configures key moment extraction.
type ExtractorParams struct {
	// BuildupWindowSec is how far back from the beat drop the energy
	// curve is searched for the buildup's onset.
	BuildupWindowSec float64 `json:"buildup_window_sec"`
}

// DefaultExtractorParams returns the standard 16 second buildup window.
func DefaultExtractorParams() ExtractorParams {
	return ExtractorParams{BuildupWindowSec: 16}
}

// Extractor reduces a raw segment list plus the track's energy curve to
// KeyMoments.
type Extractor struct {
	params ExtractorParams
}

// NewExtractor creates an extractor with default parameters.
func NewExtractor() *Extractor {
	return NewExtractorWithParams(DefaultExtractorParams())
}

// NewExtractorWithParams creates an extractor with custom parameters.
func NewExtractorWithParams(params ExtractorParams) *Extractor {
	return &Extractor{params: params}
}

// Extract determines the six canonical moments of a track.
//
// Intro, Verse, Chorus and Outro are the start of the first segment with
// the matching label. Beatdrop is the start of the first drop-labeled
// segment when one exists, otherwise the start of the first chorus segment
// immediately preceded by a verse, prechorus or intro segment. Buildup,
// when a drop exists, is the earliest energy sample inside the window
// ending at the drop, falling back to max(0, drop-window) when the curve
// has no coverage there. Anything not found is reported absent.
func (e *Extractor) Extract(segments []Segment, curve energy.Curve) (KeyMoments, error) {
	if err := ValidateSegments(segments); err != nil {
		return KeyMoments{}, err
	}

	var moments KeyMoments
	if t, ok := firstOf(segments, LabelIntro); ok {
		moments.Intro = momentAt(t)
	}
	if t, ok := firstOf(segments, LabelVerse); ok {
		moments.Verse = momentAt(t)
	}
	if t, ok := firstOf(segments, LabelChorus); ok {
		moments.Chorus = momentAt(t)
	}
	if t, ok := firstOf(segments, LabelOutro); ok {
		moments.Outro = momentAt(t)
	}

	if drop, ok := findBeatDrop(segments); ok {
		moments.Beatdrop = momentAt(drop)
		moments.Buildup = momentAt(e.findBuildup(curve, drop))
	}

	return moments, nil
}

func firstOf(segments []Segment, label Label) (float64, bool) {
	for _, seg := range segments {
		if seg.Label == label {
			return seg.Start, true
		}
	}
	return 0, false
}

// findBeatDrop returns the start of the first segment labeled drop
// outright, or failing that the start of the first chorus whose immediate
// predecessor is a verse, prechorus or intro. Only the first qualifying
// transition counts.
func findBeatDrop(segments []Segment) (float64, bool) {
	for _, seg := range segments {
		if seg.Label == LabelDrop {
			return seg.Start, true
		}
	}
	for i, seg := range segments {
		if seg.Label != LabelChorus || i == 0 {
			continue
		}
		switch segments[i-1].Label {
		case LabelVerse, LabelPreChorus, LabelIntro:
			return seg.Start, true
		}
	}
	return 0, false
}

func (e *Extractor) findBuildup(curve energy.Curve, drop float64) float64 {
	if s, ok := curve.FirstIn(drop-e.params.BuildupWindowSec, drop); ok {
		return s.Time
	}
	return max(0, drop-e.params.BuildupWindowSec)
}

// EstimateDropFromEnergy guesses a beat drop directly from the loudness
// curve as the point of steepest RMS climb. A fallback for tracks whose
// segment labels carry no verse-to-chorus transition.
func EstimateDropFromEnergy(curve energy.Curve) (float64, bool) {
	return curve.LargestRise()
}
