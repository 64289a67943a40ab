// Package structure reduces a track's labeled structural segments to the
// six canonical key moments transitions are planned around: Intro, Verse,
// Buildup, Beatdrop, Chorus and Outro.
package structure

import (
	"fmt"

	"github.com/aminorkey/segue"
)

// Label names a structural segment class.
type Label string

const (
	LabelIntro     Label = "intro"
	LabelVerse     Label = "verse"
	LabelPreChorus Label = "prechorus"
	LabelChorus    Label = "chorus"
	LabelBreak     Label = "break"
	LabelBuildup   Label = "buildup"
	LabelDrop      Label = "drop"
	LabelOutro     Label = "outro"
)

// KnownLabel reports whether l is one of the segment classes the planner
// understands.
func KnownLabel(l Label) bool {
	switch l {
	case LabelIntro, LabelVerse, LabelPreChorus, LabelChorus,
		LabelBreak, LabelBuildup, LabelDrop, LabelOutro:
		return true
	}
	return false
}

// Segment is one labeled span of a track. Segments are ordered by start
// time; they may leave small gaps but never overlap.
type Segment struct {
	Label Label   `json:"label"`
	Start float64 `json:"start_sec"`
	End   float64 `json:"end_sec"`
}

// ValidateSegments checks ordering and span invariants over a track's
// segment list. An empty list wraps segue.ErrAnalysis since no moments can
// be extracted from it.
func ValidateSegments(segments []Segment) error {
	if len(segments) == 0 {
		return fmt.Errorf("%w: empty segment list", segue.ErrAnalysis)
	}
	for i, seg := range segments {
		if seg.Start < 0 {
			return fmt.Errorf("%w: segment %d starts at %.2fs, before zero", segue.ErrAnalysis, i, seg.Start)
		}
		if seg.End <= seg.Start {
			return fmt.Errorf("%w: segment %d spans %.2fs..%.2fs", segue.ErrAnalysis, i, seg.Start, seg.End)
		}
		if i > 0 {
			if seg.Start < segments[i-1].Start {
				return fmt.Errorf("%w: segment %d out of order", segue.ErrAnalysis, i)
			}
			if seg.Start < segments[i-1].End {
				return fmt.Errorf("%w: segment %d overlaps its predecessor", segue.ErrAnalysis, i)
			}
		}
	}
	return nil
}
