package render

import "math"

// HighpassFilter is a single biquad high-pass section built from the
// cookbook formulas in Robert Bristow-Johnson's "Cookbook formulae for
// audio EQ biquad filter coefficients".
// Reference: https://webaudio.github.io/Audio-EQ-Cookbook/audio-eq-cookbook.html
type HighpassFilter struct {
	sampleRate int
	cutoffFreq float64
	qFactor    float64

	// Biquad coefficients, normalized so a0 == 1
	b0, b1, b2 float64
	a1, a2     float64

	// Direct form II delay line
	w1, w2 float64
}

// NewHighpassFilter creates a biquad high-pass section at the given cutoff
// and quality factor.
func NewHighpassFilter(sampleRate int, cutoffFreq, qFactor float64) *HighpassFilter {
	hf := &HighpassFilter{
		sampleRate: sampleRate,
		cutoffFreq: cutoffFreq,
		qFactor:    qFactor,
	}
	hf.computeCoefficients()
	return hf
}

func (hf *HighpassFilter) computeCoefficients() {
	// Normalize frequency: w0 = 2*pi*f0/Fs
	w0 := 2.0 * math.Pi * hf.cutoffFreq / float64(hf.sampleRate)

	// Prevent numerical issues at Nyquist
	if w0 >= math.Pi {
		w0 = math.Pi * 0.99
	}

	cosW0 := math.Cos(w0)
	sinW0 := math.Sin(w0)
	alpha := sinW0 / (2.0 * hf.qFactor)

	// Highpass coefficients (cookbook formula)
	b0 := (1.0 + cosW0) / 2.0
	b1 := -(1.0 + cosW0)
	b2 := (1.0 + cosW0) / 2.0
	a0 := 1.0 + alpha
	a1 := -2.0 * cosW0
	a2 := 1.0 - alpha

	hf.b0 = b0 / a0
	hf.b1 = b1 / a0
	hf.b2 = b2 / a0
	hf.a1 = a1 / a0
	hf.a2 = a2 / a0
}

// Process applies the filter to a single sample using the direct form II
// difference equation.
func (hf *HighpassFilter) Process(input float64) float64 {
	w := input - hf.a1*hf.w1 - hf.a2*hf.w2
	output := hf.b0*w + hf.b1*hf.w1 + hf.b2*hf.w2
	hf.w2 = hf.w1
	hf.w1 = w
	return output
}

// ProcessBuffer applies the filter to a buffer of samples in place.
func (hf *HighpassFilter) ProcessBuffer(samples []float64) {
	for i, s := range samples {
		samples[i] = hf.Process(s)
	}
}

// Reset clears the delay line. Call between discontinuous segments.
func (hf *HighpassFilter) Reset() {
	hf.w1, hf.w2 = 0.0, 0.0
}

// Response returns the magnitude response at the given frequency.
func (hf *HighpassFilter) Response(frequency float64) float64 {
	w := 2.0 * math.Pi * frequency / float64(hf.sampleRate)

	cosW := math.Cos(w)
	sinW := math.Sin(w)
	cos2W := math.Cos(2 * w)
	sin2W := math.Sin(2 * w)

	numReal := hf.b0 + hf.b1*cosW + hf.b2*cos2W
	numImag := -hf.b1*sinW - hf.b2*sin2W
	denReal := 1.0 + hf.a1*cosW + hf.a2*cos2W
	denImag := -hf.a1*sinW - hf.a2*sin2W

	denMagSq := denReal*denReal + denImag*denImag
	hReal := (numReal*denReal + numImag*denImag) / denMagSq
	hImag := (numImag*denReal - numReal*denImag) / denMagSq

	return math.Sqrt(hReal*hReal + hImag*hImag)
}

// Fourth-order Butterworth pole quality factors, one per cascaded section.
var butterworthQ = [2]float64{
	1.0 / (2.0 * math.Cos(math.Pi/8.0)),   // 0.5412
	1.0 / (2.0 * math.Cos(3*math.Pi/8.0)), // 1.3066
}

// ButterworthHighpass is a fourth-order Butterworth high-pass filter
// realized as two cascaded biquad sections, maximally flat above cutoff.
type ButterworthHighpass struct {
	sections [2]*HighpassFilter
}

// NewButterworthHighpass creates a fourth-order high-pass at the cutoff.
func NewButterworthHighpass(sampleRate int, cutoffFreq float64) *ButterworthHighpass {
	bw := &ButterworthHighpass{}
	for i, q := range butterworthQ {
		bw.sections[i] = NewHighpassFilter(sampleRate, cutoffFreq, q)
	}
	return bw
}

// Process applies both sections to a single sample.
func (bw *ButterworthHighpass) Process(input float64) float64 {
	out := input
	for _, sec := range bw.sections {
		out = sec.Process(out)
	}
	return out
}

// ProcessBuffer applies the filter to a buffer of samples in place.
func (bw *ButterworthHighpass) ProcessBuffer(samples []float64) {
	for i, s := range samples {
		samples[i] = bw.Process(s)
	}
}

// Reset clears both sections' delay lines.
func (bw *ButterworthHighpass) Reset() {
	for _, sec := range bw.sections {
		sec.Reset()
	}
}

// Response returns the cascade's magnitude response at the given frequency.
func (bw *ButterworthHighpass) Response(frequency float64) float64 {
	mag := 1.0
	for _, sec := range bw.sections {
		mag *= sec.Response(frequency)
	}
	return mag
}
