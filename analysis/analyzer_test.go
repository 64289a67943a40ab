package analysis

import (
	"errors"
	"math"
	"testing"

	"github.com/aminorkey/segue"
	"github.com/aminorkey/segue/structure"
)

var _ Provider = (*Analyzer)(nil)

// sine synthesizes a steady tone.
func sine(rate int, freq, seconds, amp float64) []float64 {
	n := int(seconds * float64(rate))
	out := make([]float64, n)
	for i := range out {
		out[i] = amp * math.Sin(2*math.Pi*freq*float64(i)/float64(rate))
	}
	return out
}

// tiledTone repeats one 32-sample sine cycle for the given duration. The
// cycle divides the analysis hop, so every full frame inside the block sees
// identical samples and the RMS plateau is exactly flat.
func tiledTone(rate int, seconds, amp float64) []float64 {
	cycle := make([]float64, 32)
	for i := range cycle {
		cycle[i] = math.Sin(2 * math.Pi * float64(i) / 32)
	}
	out := make([]float64, int(seconds*float64(rate)))
	for i := range out {
		out[i] = amp * cycle[i%32]
	}
	return out
}

// clickTrain synthesizes short 1 kHz bursts at a fixed tempo. At rate 20480
// the onset hop is exactly 25 ms, so a 0.6s click period lands on the frame
// lattice with no quantization error.
func clickTrain(rate int, bpm, seconds, phase float64) []float64 {
	out := make([]float64, int(seconds*float64(rate)))
	period := 60.0 / bpm
	burst := int(0.02 * float64(rate))
	for t := phase; t < seconds; t += period {
		start := int(t * float64(rate))
		for i := 0; i < burst && start+i < len(out); i++ {
			out[start+i] = math.Sin(2 * math.Pi * 1000 * float64(i) / float64(rate))
		}
	}
	return out
}

func TestChromaPureTone(t *testing.T) {
	const rate = 44100
	a := NewAnalyzer()

	chroma, err := a.Chroma(sine(rate, 440, 2, 0.8), rate)
	if err != nil {
		t.Fatalf("Chroma: %v", err)
	}
	if len(chroma) != 12 {
		t.Fatalf("chroma has %d bins, want 12", len(chroma))
	}

	// 440 Hz is pitch class A, bin 9 in C..B order.
	best := 0
	for i, v := range chroma {
		if v > chroma[best] {
			best = i
		}
	}
	if best != 9 {
		t.Errorf("dominant pitch class = %d, want 9 (A); chroma %v", best, chroma)
	}
	if chroma[9] < 0.9 {
		t.Errorf("chroma[A] = %v, want nearly all of the unit mass", chroma[9])
	}

	sum := 0.0
	for _, v := range chroma {
		sum += v
	}
	if math.Abs(sum-1) > 1e-9 {
		t.Errorf("chroma mass = %v, want 1", sum)
	}
}

func TestChromaTooShort(t *testing.T) {
	a := NewAnalyzer()
	if _, err := a.Chroma(make([]float64, 1000), 44100); !errors.Is(err, segue.ErrAnalysis) {
		t.Errorf("error %v is not ErrAnalysis", err)
	}
	if _, err := a.Chroma(sine(44100, 440, 1, 0.5), 0); !errors.Is(err, segue.ErrAnalysis) {
		t.Errorf("zero rate: error %v is not ErrAnalysis", err)
	}
}

func TestTempoClickTrain(t *testing.T) {
	const rate = 20480
	a := NewAnalyzer()

	bpm, err := a.Tempo(clickTrain(rate, 100, 10, 0), rate)
	if err != nil {
		t.Fatalf("Tempo: %v", err)
	}
	if math.Abs(bpm-100) > 5 {
		t.Errorf("tempo = %v BPM, want 100 within 5", bpm)
	}
}

func TestTempoSilence(t *testing.T) {
	a := NewAnalyzer()
	if _, err := a.Tempo(make([]float64, 22050*4), 22050); !errors.Is(err, segue.ErrAnalysis) {
		t.Errorf("error %v is not ErrAnalysis", err)
	}
}

func TestBeatGridLocksToClicks(t *testing.T) {
	const rate = 20480
	const phase = 0.25
	a := NewAnalyzer()
	signal := clickTrain(rate, 100, 10, phase)

	grid, err := a.BeatGrid(signal, rate)
	if err != nil {
		t.Fatalf("BeatGrid: %v", err)
	}
	if len(grid) < 15 || len(grid) > 19 {
		t.Fatalf("grid has %d beats over 10s at ~100 BPM, want about 17", len(grid))
	}

	// The grid is a fixed-period lattice.
	period := grid[1] - grid[0]
	for i := 1; i < len(grid); i++ {
		if math.Abs((grid[i]-grid[i-1])-period) > 1e-9 {
			t.Fatalf("grid spacing varies at beat %d", i)
		}
	}

	// An onset frame starts up to one analysis window before the click it
	// contains, so beats may sit early by frameSize/rate (50 ms here).
	const tolerance = 0.08
	for _, beatTime := range grid {
		nearest := math.Inf(1)
		for click := phase; click < 10; click += 0.6 {
			if d := math.Abs(beatTime - click); d < nearest {
				nearest = d
			}
		}
		if nearest > tolerance {
			t.Fatalf("beat at %.3fs is %.3fs from the nearest click", beatTime, nearest)
		}
	}
}

func TestEnergyCurveShape(t *testing.T) {
	const rate = 8000
	a := NewAnalyzer()

	quiet := make([]float64, 2*rate)
	loud := sine(rate, 200, 2, 0.8)
	signal := append(quiet, loud...)

	curve, err := a.EnergyCurve(signal, rate)
	if err != nil {
		t.Fatalf("EnergyCurve: %v", err)
	}

	p := a.Params()
	wantLen := (len(signal)-p.EnergyFrameSize)/p.EnergyHopSize + 1
	if len(curve) != wantLen {
		t.Errorf("curve has %d samples, want %d", len(curve), wantLen)
	}
	for i := 1; i < len(curve); i++ {
		if curve[i].Time <= curve[i-1].Time {
			t.Fatalf("curve times not increasing at %d", i)
		}
	}

	quietMean := curve.WindowMean(0, 1)
	loudMean := curve.WindowMean(2.5, 3.5)
	if loudMean <= quietMean+0.1 {
		t.Errorf("loud half mean %v vs quiet half %v: no contrast", loudMean, quietMean)
	}
}

func TestSegmentsFollowLoudness(t *testing.T) {
	const rate = 8000
	a := NewAnalyzer()

	// Quiet open, medium body, loud stretch from 17s to 31s, quiet tail.
	// The flat plateaus pin both percentile thresholds to plateau values,
	// leaving no frames on the wrong side of a band boundary.
	signal := tiledTone(rate, 10, 0.05)
	signal = append(signal, tiledTone(rate, 7, 0.3)...)
	signal = append(signal, tiledTone(rate, 14, 0.9)...)
	signal = append(signal, tiledTone(rate, 9, 0.05)...)

	segments, err := a.Segments(signal, rate)
	if err != nil {
		t.Fatalf("Segments: %v", err)
	}
	if err := structure.ValidateSegments(segments); err != nil {
		t.Fatalf("ValidateSegments: %v", err)
	}
	if len(segments) != 4 {
		t.Fatalf("got %d segments, want intro, verse, chorus, outro: %+v", len(segments), segments)
	}

	if segments[0].Label != structure.LabelIntro {
		t.Errorf("first segment = %s, want intro", segments[0].Label)
	}
	if segments[1].Label != structure.LabelVerse {
		t.Errorf("second segment = %s, want verse", segments[1].Label)
	}
	// The steepest rise sits at the 17s step; whether the loud run's start
	// lands within the drop skew of it decides chorus versus drop.
	if segments[2].Label != structure.LabelChorus && segments[2].Label != structure.LabelDrop {
		t.Errorf("loud segment = %s, want chorus or drop", segments[2].Label)
	}
	last := segments[3]
	if last.Label != structure.LabelOutro {
		t.Errorf("last segment = %s, want outro", last.Label)
	}

	// Smoothing defers band flips by up to half the averaging window.
	if math.Abs(segments[2].Start-17) > 2.5 {
		t.Errorf("loud body starts at %v, want near 17", segments[2].Start)
	}
	if math.Abs(segments[2].End-31) > 2.5 {
		t.Errorf("loud body ends at %v, want near 31", segments[2].End)
	}
	if math.Abs(last.End-40) > 0.5 {
		t.Errorf("segmentation ends at %v, want 40", last.End)
	}
}

func TestSegmentsTooShort(t *testing.T) {
	a := NewAnalyzer()
	if _, err := a.Segments(make([]float64, 100), 8000); !errors.Is(err, segue.ErrAnalysis) {
		t.Errorf("error %v is not ErrAnalysis", err)
	}
}
