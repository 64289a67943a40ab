package render

import (
	"math"

	"gonum.org/v1/gonum/floats"
)

// equalPowerCurves returns complementary quarter-cycle cosine and sine fade
// curves of n samples. Their squares sum to one at every point, so a blend
// of two equally loud signals holds perceived loudness steady.
func equalPowerCurves(n int) (fadeOut, fadeIn []float64) {
	fadeOut = make([]float64, n)
	fadeIn = make([]float64, n)
	if n == 1 {
		fadeOut[0] = 1
		return fadeOut, fadeIn
	}
	for i := 0; i < n; i++ {
		t := float64(i) / float64(n-1) * math.Pi / 2
		fadeOut[i] = math.Cos(t)
		fadeIn[i] = math.Sin(t)
	}
	return fadeOut, fadeIn
}

// blendEqualPower fades aTail out against bHead fading in and returns their
// sum. Both inputs are modified in place and must be the same shape.
func blendEqualPower(aTail, bHead [][]float64, n int) [][]float64 {
	fadeOut, fadeIn := equalPowerCurves(n)
	out := make([][]float64, len(aTail))
	for c := range aTail {
		floats.Mul(aTail[c], fadeOut)
		floats.Mul(bHead[c], fadeIn)
		floats.Add(aTail[c], bHead[c])
		out[c] = aTail[c]
	}
	return out
}
