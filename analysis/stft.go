package analysis

import (
	"fmt"
	"math"
	"math/cmplx"
	"runtime"
	"sync"

	"github.com/mjibson/go-dsp/fft"
	"github.com/mjibson/go-dsp/window"

	"github.com/aminorkey/segue"
)

// spectrogram is a time x frequency magnitude matrix with its geometry.
type spectrogram struct {
	magnitude [][]float64
	freqBins  int
	frames    int

	freqResolution float64 // Hz per bin
	hopSec         float64 // seconds per frame step
}

// computeSTFT slices the signal into Hann-windowed frames and returns the
// magnitude spectrogram of their positive frequencies. Frames are
// independent, so they are fanned out across workers; every worker writes
// disjoint rows, keeping the result deterministic.
func computeSTFT(samples []float64, sampleRate, frameSize, hopSize int) (*spectrogram, error) {
	if frameSize <= 0 || hopSize <= 0 {
		return nil, fmt.Errorf("%w: frame size %d and hop size %d must be positive",
			segue.ErrAnalysis, frameSize, hopSize)
	}
	numFrames := (len(samples)-frameSize)/hopSize + 1
	if numFrames < 1 {
		return nil, fmt.Errorf("%w: signal of %d samples is shorter than one %d sample frame",
			segue.ErrAnalysis, len(samples), frameSize)
	}

	freqBins := frameSize/2 + 1
	magnitude := make([][]float64, numFrames)
	for i := range magnitude {
		magnitude[i] = make([]float64, freqBins)
	}

	hann := window.Hann(frameSize)

	workers := min(runtime.NumCPU(), numFrames)
	jobs := make(chan int, numFrames)

	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			frame := make([]float64, frameSize)
			for idx := range jobs {
				start := idx * hopSize
				copy(frame, samples[start:start+frameSize])
				for i := range frame {
					frame[i] *= hann[i]
				}
				spectrum := fft.FFTReal(frame)
				for i := 0; i < freqBins; i++ {
					magnitude[idx][i] = cmplx.Abs(spectrum[i])
				}
			}
		}()
	}
	for idx := 0; idx < numFrames; idx++ {
		jobs <- idx
	}
	close(jobs)
	wg.Wait()

	return &spectrogram{
		magnitude:      magnitude,
		freqBins:       freqBins,
		frames:         numFrames,
		freqResolution: float64(sampleRate) / float64(frameSize),
		hopSec:         float64(hopSize) / float64(sampleRate),
	}, nil
}

// spectralFlux measures frame-to-frame spectral change, counting only
// energy increases. The result has one value per frame transition.
func spectralFlux(magnitude [][]float64) []float64 {
	if len(magnitude) < 2 {
		return nil
	}
	flux := make([]float64, len(magnitude)-1)
	for t := 1; t < len(magnitude); t++ {
		sum := 0.0
		for f := range magnitude[t] {
			diff := magnitude[t][f] - magnitude[t-1][f]
			if diff > 0 {
				sum += diff * diff
			}
		}
		flux[t-1] = math.Sqrt(sum)
	}
	return flux
}
