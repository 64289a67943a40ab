package analysis

import (
	"math"

	"github.com/aminorkey/segue/tonal"
)

// Chroma computes the track's pitch class profile: an STFT magnitude
// spectrogram folded onto 12 semitone bins by nearest MIDI note, each frame
// normalized to unit sum, then averaged across frames.
func (a *Analyzer) Chroma(samples []float64, sampleRate int) (tonal.ChromaVector, error) {
	p := a.params
	if err := checkSignal(samples, sampleRate, p.ChromaFrameSize); err != nil {
		return nil, err
	}

	spec, err := computeSTFT(samples, sampleRate, p.ChromaFrameSize, p.ChromaHopSize)
	if err != nil {
		return nil, err
	}

	mapping := a.chromaMapping(spec.freqBins, spec.freqResolution)

	mean := make([]float64, tonal.NumPitchClasses)
	frame := make([]float64, tonal.NumPitchClasses)
	for t := range spec.magnitude {
		for i := range frame {
			frame[i] = 0
		}
		for f, bin := range mapping {
			if bin < 0 {
				continue
			}
			mag := spec.magnitude[t][f]
			frame[bin] += mag * mag
		}

		total := 0.0
		for _, e := range frame {
			total += e
		}
		if total < 1e-10 {
			continue // silent frame contributes nothing
		}
		for i, e := range frame {
			mean[i] += e / total
		}
	}

	for i := range mean {
		mean[i] /= float64(spec.frames)
	}
	return tonal.ChromaVector(mean), nil
}

// chromaMapping assigns each FFT bin to a pitch class, or -1 outside the
// configured band.
func (a *Analyzer) chromaMapping(freqBins int, freqResolution float64) []int {
	mapping := make([]int, freqBins)
	for f := range mapping {
		freq := float64(f) * freqResolution
		if freq < a.params.MinFreqHz || freq > a.params.MaxFreqHz {
			mapping[f] = -1
			continue
		}
		// MIDI note number: 69 + 12*log2(f/tuning), A4 = 69.
		midi := 69.0 + 12.0*math.Log2(freq/a.params.TuningHz)
		bin := int(math.Round(midi)) % tonal.NumPitchClasses
		if bin < 0 {
			bin += tonal.NumPitchClasses
		}
		mapping[f] = bin
	}
	return mapping
}
