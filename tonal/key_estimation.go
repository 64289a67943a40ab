package tonal

import (
	"fmt"

	"gonum.org/v1/gonum/floats"

	"github.com/aminorkey/segue"
	"github.com/aminorkey/segue/camelot"
)

// Krumhansl-Schmuckler key profiles: the relative weight of each pitch
// class in major and minor keys, indexed C..B. Fixed reference data,
// never mutated.
var (
	majorProfile = [NumPitchClasses]float64{
		6.35, 2.23, 3.48, 2.33, 4.38, 4.09, 2.52, 5.19, 2.39, 3.66, 2.29, 2.88,
	}
	minorProfile = [NumPitchClasses]float64{
		6.33, 2.68, 3.52, 5.38, 2.60, 3.53, 2.54, 4.75, 3.98, 2.69, 3.34, 3.17,
	}
)

var pitchClasses = [NumPitchClasses]string{
	"C", "C#", "D", "D#", "E", "F", "F#", "G", "G#", "A", "A#", "B",
}

// KeyEstimate is the detected key of one track.
type KeyEstimate struct {
	KeyName    string       `json:"key_name"` // e.g. "A minor"
	Quality    string       `json:"quality"`  // "major" or "minor"
	Camelot    camelot.Code `json:"camelot"`
	Confidence float64      `json:"confidence"`

	// AlternateKey carries a second candidate when its score came within
	// EstimatorParams.AlternateRatio of the winner, empty otherwise.
	AlternateKey        string  `json:"alternate_key,omitempty"`
	AlternateConfidence float64 `json:"alternate_confidence,omitempty"`
}

// EstimatorParams configures key estimation.
type EstimatorParams struct {
	// AlternateRatio is the fraction of the best score a runner-up must
	// reach to be reported as an alternate key. Zero disables alternates.
	AlternateRatio float64 `json:"alternate_ratio"`
}

// DefaultEstimatorParams returns the standard estimation configuration.
func DefaultEstimatorParams() EstimatorParams {
	return EstimatorParams{AlternateRatio: 0.9}
}

// Estimator matches averaged chroma vectors against all 24 rotated key
// profiles and reports the best fit.
type Estimator struct {
	params EstimatorParams
}

// NewEstimator creates an estimator with default parameters.
func NewEstimator() *Estimator {
	return NewEstimatorWithParams(DefaultEstimatorParams())
}

// NewEstimatorWithParams creates an estimator with custom parameters.
func NewEstimatorWithParams(params EstimatorParams) *Estimator {
	return &Estimator{params: params}
}

type keyCandidate struct {
	name    string
	quality string
	score   float64
}

// Estimate returns the best-matching key for an averaged chroma vector.
//
// Each of the 12 roots is tried by rotating the major and minor profiles
// so the root's weights line up with that pitch class, scoring cosine
// similarity against the chroma. The single best candidate wins; ties go
// to the earliest candidate in root order C..B, major before minor. A
// degenerate chroma (wrong size, negative or all-zero bins) yields a
// zero-confidence estimate and an error wrapping segue.ErrAnalysis.
func (e *Estimator) Estimate(chroma ChromaVector) (KeyEstimate, error) {
	if err := chroma.Validate(); err != nil {
		return KeyEstimate{}, err
	}
	if chroma.IsZero() {
		return KeyEstimate{}, fmt.Errorf("%w: chroma vector is all zeros, cosine similarity undefined", segue.ErrAnalysis)
	}

	candidates := make([]keyCandidate, 0, 2*NumPitchClasses)
	for i, pitch := range pitchClasses {
		candidates = append(candidates,
			keyCandidate{
				name:    pitch + " major",
				quality: "major",
				score:   cosineSimilarity(chroma, rotateProfile(majorProfile, i)),
			},
			keyCandidate{
				name:    pitch + " minor",
				quality: "minor",
				score:   cosineSimilarity(chroma, rotateProfile(minorProfile, i)),
			})
	}

	best := 0
	for i, c := range candidates {
		if c.score > candidates[best].score {
			best = i
		}
	}

	code, err := camelot.FromKeyName(candidates[best].name)
	if err != nil {
		return KeyEstimate{}, err
	}

	estimate := KeyEstimate{
		KeyName:    candidates[best].name,
		Quality:    candidates[best].quality,
		Camelot:    code,
		Confidence: candidates[best].score,
	}

	if e.params.AlternateRatio > 0 {
		second := -1
		for i, c := range candidates {
			if i == best {
				continue
			}
			if second < 0 || c.score > candidates[second].score {
				second = i
			}
		}
		if second >= 0 && candidates[second].score >= e.params.AlternateRatio*candidates[best].score {
			estimate.AlternateKey = candidates[second].name
			estimate.AlternateConfidence = candidates[second].score
		}
	}

	return estimate, nil
}

// rotateProfile shifts a profile left by steps semitones so each root can
// be tried against the same chroma ordering.
func rotateProfile(profile [NumPitchClasses]float64, steps int) []float64 {
	rotated := make([]float64, NumPitchClasses)
	for i := range rotated {
		rotated[i] = profile[(i+steps)%NumPitchClasses]
	}
	return rotated
}

func cosineSimilarity(a, b []float64) float64 {
	magnitude := floats.Norm(a, 2) * floats.Norm(b, 2)
	if magnitude == 0 {
		return 0
	}
	return floats.Dot(a, b) / magnitude
}
