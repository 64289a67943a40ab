package tonal

import (
	"errors"
	"math"
	"testing"

	"github.com/aminorkey/segue"
	"github.com/aminorkey/segue/camelot"
)

func almost(a, b, tol float64) bool {
	return math.Abs(a-b) <= tol
}

// A chroma equal to a key's own rotated profile must detect that key with
// confidence 1, for all 24 keys.
func TestEstimateRecoversAllKeys(t *testing.T) {
	est := NewEstimator()

	for i, pitch := range pitchClasses {
		for _, tc := range []struct {
			profile [NumPitchClasses]float64
			quality string
		}{
			{majorProfile, "major"},
			{minorProfile, "minor"},
		} {
			wantName := pitch + " " + tc.quality
			t.Run(wantName, func(t *testing.T) {
				chroma := ChromaVector(rotateProfile(tc.profile, i))

				got, err := est.Estimate(chroma)
				if err != nil {
					t.Fatalf("Estimate: %v", err)
				}
				if got.KeyName != wantName {
					t.Fatalf("KeyName = %q, want %q", got.KeyName, wantName)
				}
				if got.Quality != tc.quality {
					t.Errorf("Quality = %q, want %q", got.Quality, tc.quality)
				}
				if !almost(got.Confidence, 1.0, 1e-9) {
					t.Errorf("Confidence = %v, want 1.0", got.Confidence)
				}

				wantCode, err := camelot.FromKeyName(wantName)
				if err != nil {
					t.Fatalf("FromKeyName(%q): %v", wantName, err)
				}
				if got.Camelot != wantCode {
					t.Errorf("Camelot = %v, want %v", got.Camelot, wantCode)
				}
			})
		}
	}
}

func TestEstimateSingleBinChroma(t *testing.T) {
	est := NewEstimator()

	chroma := make(ChromaVector, NumPitchClasses)
	chroma[0] = 1.0 // pure C energy

	got, err := est.Estimate(chroma)
	if err != nil {
		t.Fatalf("Estimate: %v", err)
	}
	if got.KeyName != "C major" {
		t.Fatalf("KeyName = %q, want C major", got.KeyName)
	}
	if got.Camelot != (camelot.Code{Number: 8, Letter: "B"}) {
		t.Errorf("Camelot = %v, want 8B", got.Camelot)
	}
	if !almost(got.Confidence, 0.4948, 1e-3) {
		t.Errorf("Confidence = %v, want about 0.4948", got.Confidence)
	}
}

func TestEstimateAlternateKey(t *testing.T) {
	est := NewEstimator()

	// The C-major template's runner-up scores well within 90% of the
	// winner, so the default params must report it.
	chroma := ChromaVector(rotateProfile(majorProfile, 0))
	got, err := est.Estimate(chroma)
	if err != nil {
		t.Fatalf("Estimate: %v", err)
	}
	if got.AlternateKey != "D# minor" {
		t.Fatalf("AlternateKey = %q, want D# minor", got.AlternateKey)
	}
	if !almost(got.AlternateConfidence, 0.9634, 1e-3) {
		t.Errorf("AlternateConfidence = %v, want about 0.9634", got.AlternateConfidence)
	}

	// Ratio 0 disables alternate reporting entirely.
	off := NewEstimatorWithParams(EstimatorParams{AlternateRatio: 0})
	got, err = off.Estimate(chroma)
	if err != nil {
		t.Fatalf("Estimate: %v", err)
	}
	if got.AlternateKey != "" {
		t.Errorf("AlternateKey = %q, want empty with ratio 0", got.AlternateKey)
	}

	// A stricter ratio rejects the single-bin runner-up (ratio ~0.95).
	strict := NewEstimatorWithParams(EstimatorParams{AlternateRatio: 0.99})
	single := make(ChromaVector, NumPitchClasses)
	single[0] = 1.0
	got, err = strict.Estimate(single)
	if err != nil {
		t.Fatalf("Estimate: %v", err)
	}
	if got.AlternateKey != "" {
		t.Errorf("AlternateKey = %q, want empty at ratio 0.99", got.AlternateKey)
	}
}

func TestEstimateDegenerateChroma(t *testing.T) {
	est := NewEstimator()

	tests := []struct {
		name   string
		chroma ChromaVector
	}{
		{"zero vector", make(ChromaVector, NumPitchClasses)},
		{"too short", make(ChromaVector, 5)},
		{"too long", make(ChromaVector, 13)},
		{"nil", nil},
		{"negative bin", ChromaVector{1, 2, 3, -1, 5, 6, 7, 8, 9, 10, 11, 12}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := est.Estimate(tt.chroma)
			if err == nil {
				t.Fatalf("expected error, got %+v", got)
			}
			if !errors.Is(err, segue.ErrAnalysis) {
				t.Errorf("error %v is not ErrAnalysis", err)
			}
			if got.Confidence != 0 {
				t.Errorf("Confidence = %v, want 0 on failure", got.Confidence)
			}
			if got.KeyName != "" {
				t.Errorf("KeyName = %q, want empty on failure", got.KeyName)
			}
		})
	}
}

func TestChromaVectorIsZero(t *testing.T) {
	if !make(ChromaVector, NumPitchClasses).IsZero() {
		t.Error("all-zero vector should report IsZero")
	}
	c := make(ChromaVector, NumPitchClasses)
	c[7] = 0.001
	if c.IsZero() {
		t.Error("vector with energy should not report IsZero")
	}
}
