package energy

import (
	"math"
	"testing"
)

func testCurve() Curve {
	return Curve{
		{Time: 0.0, RMS: 0.10},
		{Time: 1.0, RMS: 0.20},
		{Time: 2.0, RMS: 0.30},
		{Time: 3.0, RMS: 0.80}, // biggest rise lands here (0.3 -> 0.8)
		{Time: 4.0, RMS: 0.70},
		{Time: 5.0, RMS: 0.60},
	}
}

func TestWindowMean(t *testing.T) {
	c := testCurve()

	tests := []struct {
		from, to, want float64
	}{
		{0, 2, 0.20},    // inclusive both ends: 0.1, 0.2, 0.3
		{1, 1, 0.20},    // single sample
		{3, 5, 0.70},    // 0.8, 0.7, 0.6
		{10, 20, 0},     // no coverage
		{-5, -1, 0},     // before the curve
	}

	for _, tt := range tests {
		if got := c.WindowMean(tt.from, tt.to); math.Abs(got-tt.want) > 1e-12 {
			t.Errorf("WindowMean(%v, %v) = %v, want %v", tt.from, tt.to, got, tt.want)
		}
	}

	if got := Curve(nil).WindowMean(0, 100); got != 0 {
		t.Errorf("empty curve WindowMean = %v, want 0", got)
	}
}

func TestFirstIn(t *testing.T) {
	c := testCurve()

	s, ok := c.FirstIn(1.5, 4.5)
	if !ok || s.Time != 2.0 {
		t.Errorf("FirstIn(1.5, 4.5) = %+v, %v; want sample at 2.0", s, ok)
	}

	// Half-open window: the upper bound is excluded.
	if _, ok := c.FirstIn(5.0, 5.0); ok {
		t.Error("FirstIn over an empty half-open window should miss")
	}
	s, ok = c.FirstIn(5.0, 6.0)
	if !ok || s.Time != 5.0 {
		t.Errorf("FirstIn(5.0, 6.0) = %+v, %v; want sample at 5.0", s, ok)
	}

	if _, ok := c.FirstIn(20, 30); ok {
		t.Error("FirstIn beyond the curve should miss")
	}
}

func TestLargestRise(t *testing.T) {
	at, ok := testCurve().LargestRise()
	if !ok {
		t.Fatal("LargestRise on a populated curve should succeed")
	}
	// The rise is measured at the sample before the jump.
	if at != 2.0 {
		t.Errorf("LargestRise = %v, want 2.0", at)
	}

	if _, ok := (Curve{{Time: 0, RMS: 1}}).LargestRise(); ok {
		t.Error("LargestRise needs at least two samples")
	}

	// Equal rises: the earliest wins. Quarter steps stay exact in floats.
	flat := Curve{{0, 0.25}, {1, 0.5}, {2, 0.75}, {3, 1.0}}
	at, _ = flat.LargestRise()
	if at != 0 {
		t.Errorf("LargestRise tie = %v, want 0 (earliest)", at)
	}
}
