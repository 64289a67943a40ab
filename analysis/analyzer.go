package analysis

import (
	"fmt"

	"github.com/aminorkey/segue"
)

// Params holds the frame geometry and band limits for the built-in
// analyzer. Frame sizes are in samples, band limits in Hz.
type Params struct {
	ChromaFrameSize int     `json:"chroma_frame_size"`
	ChromaHopSize   int     `json:"chroma_hop_size"`
	OnsetFrameSize  int     `json:"onset_frame_size"`
	OnsetHopSize    int     `json:"onset_hop_size"`
	EnergyFrameSize int     `json:"energy_frame_size"`
	EnergyHopSize   int     `json:"energy_hop_size"`
	MinFreqHz       float64 `json:"min_freq_hz"`
	MaxFreqHz       float64 `json:"max_freq_hz"`
	TuningHz        float64 `json:"tuning_hz"` // A4 reference
	MinBPM          float64 `json:"min_bpm"`
	MaxBPM          float64 `json:"max_bpm"`

	// Segmentation heuristic knobs.
	SmoothingFrames int     `json:"smoothing_frames"`
	MinSegmentSec   float64 `json:"min_segment_sec"`
	DropSkewSec     float64 `json:"drop_skew_sec"`
}

// DefaultParams returns the standard analyzer geometry.
func DefaultParams() Params {
	return Params{
		ChromaFrameSize: 4096,
		ChromaHopSize:   1024,
		OnsetFrameSize:  1024,
		OnsetHopSize:    512,
		EnergyFrameSize: 2048,
		EnergyHopSize:   1024,
		MinFreqHz:       80.0,
		MaxFreqHz:       8000.0,
		TuningHz:        440.0,
		MinBPM:          60.0,
		MaxBPM:          180.0,
		SmoothingFrames: 15,
		MinSegmentSec:   4.0,
		DropSkewSec:     2.0,
	}
}

// Analyzer is the built-in Provider. It is stateless: every method is a
// pure function of its inputs, safe to share across goroutines.
type Analyzer struct {
	params Params
}

// NewAnalyzer creates an analyzer with default parameters.
func NewAnalyzer() *Analyzer {
	return NewAnalyzerWithParams(DefaultParams())
}

// NewAnalyzerWithParams creates an analyzer with custom parameters.
func NewAnalyzerWithParams(params Params) *Analyzer {
	return &Analyzer{params: params}
}

// Params returns the analyzer's configuration.
func (a *Analyzer) Params() Params {
	return a.params
}

func checkSignal(samples []float64, sampleRate, minLen int) error {
	if sampleRate <= 0 {
		return fmt.Errorf("%w: non-positive sample rate %d", segue.ErrAnalysis, sampleRate)
	}
	if len(samples) < minLen {
		return fmt.Errorf("%w: signal of %d samples is shorter than one %d sample frame",
			segue.ErrAnalysis, len(samples), minLen)
	}
	return nil
}
