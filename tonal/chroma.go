// Package tonal estimates the musical key of a track from its averaged
// chroma vector by template matching against Krumhansl-Schmuckler key
// profiles, and maps the winning key onto the Camelot wheel.
package tonal

import (
	"fmt"

	"github.com/aminorkey/segue"
)

// NumPitchClasses is the number of chroma bins, one per semitone C..B.
const NumPitchClasses = 12

// ChromaVector holds one energy per pitch class, index 0 = C through
// index 11 = B, averaged over the length of a track.
type ChromaVector []float64

// Validate checks the vector has exactly twelve non-negative bins.
func (c ChromaVector) Validate() error {
	if len(c) != NumPitchClasses {
		return fmt.Errorf("%w: chroma vector has %d bins, need %d", segue.ErrAnalysis, len(c), NumPitchClasses)
	}
	for i, v := range c {
		if v < 0 {
			return fmt.Errorf("%w: chroma bin %d is negative (%g)", segue.ErrAnalysis, i, v)
		}
	}
	return nil
}

// IsZero reports whether every bin is zero, which makes cosine similarity
// undefined.
func (c ChromaVector) IsZero() bool {
	for _, v := range c {
		if v != 0 {
			return false
		}
	}
	return true
}
