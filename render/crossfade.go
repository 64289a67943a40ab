package render

import (
	"fmt"

	"github.com/aminorkey/segue"
)

// cutPair carves the two source buffers around a transition window. The
// outgoing track keeps [0, exit+window) and fades over its last window
// samples; the incoming track starts window samples before its entry so it
// reaches full level exactly on the entry moment.
type cutPair struct {
	headA   [][]float64 // outgoing, untouched
	tailA   [][]float64 // outgoing, length window, to be processed
	headB   [][]float64 // incoming, length window, to be processed
	tailB   [][]float64 // incoming, untouched
	window  int         // samples
	samples int         // total output length
}

func cutForTransition(a, b *Buffer, exitSec, entrySec, windowSec float64) (*cutPair, error) {
	if err := checkPair(a, b); err != nil {
		return nil, err
	}
	if exitSec < 0 {
		return nil, fmt.Errorf("%w: negative exit time %g", segue.ErrRender, exitSec)
	}
	if windowSec <= 0 {
		return nil, fmt.Errorf("%w: non-positive transition window %g", segue.ErrRender, windowSec)
	}

	rate := a.SampleRate
	window := samplesAt(rate, windowSec)
	if window < 1 {
		return nil, fmt.Errorf("%w: transition window %gs is shorter than one sample", segue.ErrRender, windowSec)
	}

	cutA := samplesAt(rate, exitSec+windowSec)
	if cutA > a.Len() {
		return nil, fmt.Errorf("%w: transition window ends %d samples past the outgoing buffer (%d)",
			segue.ErrRender, cutA-a.Len(), a.Len())
	}
	if cutA < window {
		return nil, fmt.Errorf("%w: outgoing buffer too short for a %d sample window", segue.ErrRender, window)
	}

	startB := samplesAt(rate, entrySec-windowSec)
	if startB < 0 {
		startB = 0
	}
	if startB+window > b.Len() {
		return nil, fmt.Errorf("%w: transition window ends %d samples past the incoming buffer (%d)",
			segue.ErrRender, startB+window-b.Len(), b.Len())
	}

	return &cutPair{
		headA:   a.slice(0, cutA-window),
		tailA:   a.slice(cutA-window, cutA),
		headB:   b.slice(startB, startB+window),
		tailB:   b.slice(startB+window, b.Len()),
		window:  window,
		samples: cutA + b.Len() - startB - window,
	}, nil
}

// assemble concatenates the untouched outgoing head, the blended window and
// the untouched incoming tail into one buffer.
func (c *cutPair) assemble(sampleRate int, blended [][]float64) *Buffer {
	out := NewBuffer(sampleRate, len(c.headA), 0)
	for ch := range c.headA {
		mixed := make([]float64, 0, c.samples)
		mixed = append(mixed, c.headA[ch]...)
		mixed = append(mixed, blended[ch]...)
		mixed = append(mixed, c.tailB[ch]...)
		out.Channels[ch] = mixed
	}
	return out
}

// Crossfade renders an equal-power crossfade from the outgoing buffer into
// the incoming one. The outgoing track plays windowSec past its exit while
// fading out; the incoming track fades in over the windowSec leading up to
// its entry. The result is peak-normalized.
func Crossfade(a, b *Buffer, exitSec, entrySec, windowSec float64) (*Buffer, error) {
	cut, err := cutForTransition(a, b, exitSec, entrySec, windowSec)
	if err != nil {
		return nil, err
	}

	blended := blendEqualPower(cut.tailA, cut.headB, cut.window)
	out := cut.assemble(a.SampleRate, blended)
	out.PeakNormalize()
	return out, nil
}
