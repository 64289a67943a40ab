package analysis

import (
	"math"

	"github.com/aminorkey/segue/energy"
)

// EnergyCurve computes the RMS loudness envelope, one sample per hop.
func (a *Analyzer) EnergyCurve(samples []float64, sampleRate int) (energy.Curve, error) {
	p := a.params
	if err := checkSignal(samples, sampleRate, p.EnergyFrameSize); err != nil {
		return nil, err
	}

	frame, hop := p.EnergyFrameSize, p.EnergyHopSize
	numFrames := (len(samples)-frame)/hop + 1
	curve := make(energy.Curve, numFrames)
	for i := 0; i < numFrames; i++ {
		start := i * hop
		sumSquares := 0.0
		for _, s := range samples[start : start+frame] {
			sumSquares += s * s
		}
		curve[i] = energy.Sample{
			Time: float64(start) / float64(sampleRate),
			RMS:  math.Sqrt(sumSquares / float64(frame)),
		}
	}
	return curve, nil
}
