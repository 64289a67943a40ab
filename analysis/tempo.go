package analysis

import (
	"fmt"

	"github.com/aminorkey/segue"
)

// Tempo estimates BPM from the onset envelope: spectral flux over short
// frames, autocorrelated, strongest periodicity inside the configured BPM
// band. Half/double-time reconciliation between two tracks is the tempo
// package's job, not this one's.
func (a *Analyzer) Tempo(samples []float64, sampleRate int) (float64, error) {
	envelope, hopSec, err := a.onsetEnvelope(samples, sampleRate)
	if err != nil {
		return 0, err
	}

	autocorr := autocorrelate(envelope, len(envelope)/2)
	if autocorr == nil {
		return 0, fmt.Errorf("%w: onset envelope carries no energy", segue.ErrAnalysis)
	}

	minLag := int(60.0 / a.params.MaxBPM / hopSec)
	if minLag < 1 {
		minLag = 1
	}
	maxLag := int(60.0 / a.params.MinBPM / hopSec)
	if maxLag > len(autocorr)-2 {
		maxLag = len(autocorr) - 2
	}
	if maxLag <= minLag {
		return 0, fmt.Errorf("%w: signal too short to resolve %g..%g BPM",
			segue.ErrAnalysis, a.params.MinBPM, a.params.MaxBPM)
	}

	bestLag := 0
	bestVal := 0.0
	for lag := minLag; lag <= maxLag; lag++ {
		if autocorr[lag] > autocorr[lag-1] && autocorr[lag] > autocorr[lag+1] && autocorr[lag] > bestVal {
			bestVal = autocorr[lag]
			bestLag = lag
		}
	}
	if bestLag == 0 {
		return 0, fmt.Errorf("%w: no periodic onset structure in %g..%g BPM",
			segue.ErrAnalysis, a.params.MinBPM, a.params.MaxBPM)
	}

	return 60.0 / (float64(bestLag) * hopSec), nil
}

// onsetEnvelope returns the spectral flux envelope and its sample period.
func (a *Analyzer) onsetEnvelope(samples []float64, sampleRate int) ([]float64, float64, error) {
	p := a.params
	if err := checkSignal(samples, sampleRate, p.OnsetFrameSize); err != nil {
		return nil, 0, err
	}

	spec, err := computeSTFT(samples, sampleRate, p.OnsetFrameSize, p.OnsetHopSize)
	if err != nil {
		return nil, 0, err
	}

	flux := spectralFlux(spec.magnitude)
	if len(flux) == 0 {
		return nil, 0, fmt.Errorf("%w: signal too short for an onset envelope", segue.ErrAnalysis)
	}
	return flux, spec.hopSec, nil
}

// autocorrelate computes the lag-normalized autocorrelation of the signal,
// scaled so lag zero equals one. Returns nil for an all-zero signal.
func autocorrelate(signal []float64, maxLag int) []float64 {
	if maxLag > len(signal) {
		maxLag = len(signal)
	}
	if maxLag < 1 {
		return nil
	}

	autocorr := make([]float64, maxLag)
	for lag := 0; lag < maxLag; lag++ {
		sum := 0.0
		count := 0
		for i := 0; i < len(signal)-lag; i++ {
			sum += signal[i] * signal[i+lag]
			count++
		}
		if count > 0 {
			autocorr[lag] = sum / float64(count)
		}
	}

	if autocorr[0] <= 0 {
		return nil
	}
	for i := range autocorr {
		autocorr[i] /= autocorr[0]
	}
	return autocorr
}
