// Package render applies a transition plan to two raw sample buffers and
// produces the mixed output waveform.
//
// Two engines cover the four plan styles: an equal-power crossfade (also
// serving reverb tail plans) and a low-cut echo slam (also serving plain
// low-cut plans, with the echo disabled). Every render is a pure function
// of its inputs; failures abort the whole render, no partial mix is ever
// returned.
package render

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/floats"

	"github.com/aminorkey/segue"
)

// Buffer holds per-channel float samples at a single sample rate. Channels
// must stay the same length; the renderer treats them independently.
type Buffer struct {
	SampleRate int
	Channels   [][]float64
}

// NewBuffer allocates a silent buffer.
func NewBuffer(sampleRate, channels, length int) *Buffer {
	chs := make([][]float64, channels)
	for i := range chs {
		chs[i] = make([]float64, length)
	}
	return &Buffer{SampleRate: sampleRate, Channels: chs}
}

// FromMono wraps a single channel of samples.
func FromMono(sampleRate int, samples []float64) *Buffer {
	return &Buffer{SampleRate: sampleRate, Channels: [][]float64{samples}}
}

// NumChannels returns the channel count.
func (b *Buffer) NumChannels() int { return len(b.Channels) }

// Len returns the per-channel sample count.
func (b *Buffer) Len() int {
	if len(b.Channels) == 0 {
		return 0
	}
	return len(b.Channels[0])
}

// Duration returns the buffer length in seconds.
func (b *Buffer) Duration() float64 {
	if b.SampleRate <= 0 {
		return 0
	}
	return float64(b.Len()) / float64(b.SampleRate)
}

// Validate checks the buffer is usable as a render source.
func (b *Buffer) Validate() error {
	if b.SampleRate <= 0 {
		return fmt.Errorf("%w: buffer has non-positive sample rate %d", segue.ErrRender, b.SampleRate)
	}
	if len(b.Channels) == 0 {
		return fmt.Errorf("%w: buffer has no channels", segue.ErrRender)
	}
	n := len(b.Channels[0])
	for i, ch := range b.Channels {
		if len(ch) != n {
			return fmt.Errorf("%w: channel %d has %d samples, channel 0 has %d", segue.ErrRender, i, len(ch), n)
		}
	}
	return nil
}

// slice copies the sample range [from, to) out of every channel.
func (b *Buffer) slice(from, to int) [][]float64 {
	out := make([][]float64, len(b.Channels))
	for i, ch := range b.Channels {
		seg := make([]float64, to-from)
		copy(seg, ch[from:to])
		out[i] = seg
	}
	return out
}

// Peak returns the largest absolute sample value across all channels.
func (b *Buffer) Peak() float64 {
	peak := 0.0
	for _, ch := range b.Channels {
		if len(ch) == 0 {
			continue
		}
		if p := floats.Norm(ch, math.Inf(1)); p > peak {
			peak = p
		}
	}
	return peak
}

// PeakNormalize scales the buffer in place so the loudest sample sits at
// full scale. A silent buffer is left untouched.
func (b *Buffer) PeakNormalize() {
	peak := b.Peak()
	if peak == 0 {
		return
	}
	for _, ch := range b.Channels {
		floats.Scale(1/peak, ch)
	}
}

// samplesAt converts a time in seconds to a sample index, truncating.
func samplesAt(sampleRate int, sec float64) int {
	return int(sec * float64(sampleRate))
}

// checkPair validates that two buffers can be mixed together.
func checkPair(a, b *Buffer) error {
	if err := a.Validate(); err != nil {
		return err
	}
	if err := b.Validate(); err != nil {
		return err
	}
	if a.SampleRate != b.SampleRate {
		return fmt.Errorf("%w: sample rates differ (%d vs %d), resample before rendering",
			segue.ErrRender, a.SampleRate, b.SampleRate)
	}
	if a.NumChannels() != b.NumChannels() {
		return fmt.Errorf("%w: channel counts differ (%d vs %d)",
			segue.ErrRender, a.NumChannels(), b.NumChannels())
	}
	return nil
}
