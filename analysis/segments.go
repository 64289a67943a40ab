package analysis

import (
	"sort"

	"gonum.org/v1/gonum/stat"

	"github.com/aminorkey/segue/energy"
	"github.com/aminorkey/segue/structure"
)

// Loudness bands for the segmentation heuristic.
const (
	bandQuiet = iota
	bandMid
	bandLoud
)

// run is a stretch of consecutive energy frames in the same loudness band.
type run struct {
	band int
	from int // inclusive frame index
	to   int // exclusive frame index
}

// Segments labels the track's structure from its loudness alone: the
// smoothed RMS curve is split at its 40th and 75th percentiles into quiet,
// mid and loud stretches, which become intro, verse, chorus, break and
// outro spans. A chorus whose start coincides with the steepest energy
// rise is relabeled as the drop.
//
// This is a deliberately rough stand-in for a structural segmentation
// model; callers with better segments feed them to the planner directly.
func (a *Analyzer) Segments(samples []float64, sampleRate int) ([]structure.Segment, error) {
	curve, err := a.EnergyCurve(samples, sampleRate)
	if err != nil {
		return nil, err
	}

	smoothed := smoothCurve(curve, a.params.SmoothingFrames)
	low, high := loudnessThresholds(smoothed)

	runs := classifyRuns(smoothed, low, high)
	frameDur := float64(a.params.EnergyHopSize) / float64(sampleRate)
	minFrames := int(a.params.MinSegmentSec / frameDur)
	if minFrames < 1 {
		minFrames = 1
	}
	runs = mergeShortRuns(runs, minFrames)

	duration := float64(len(samples)) / float64(sampleRate)
	segments := labelRuns(runs, smoothed, duration)

	if drop, ok := structure.EstimateDropFromEnergy(smoothed); ok {
		markDrop(segments, drop, a.params.DropSkewSec)
	}

	if err := structure.ValidateSegments(segments); err != nil {
		return nil, err
	}
	return segments, nil
}

// smoothCurve applies a centered moving average over the RMS values.
func smoothCurve(curve energy.Curve, windowFrames int) energy.Curve {
	if windowFrames <= 1 {
		return curve
	}
	half := windowFrames / 2
	out := make(energy.Curve, len(curve))
	for i := range curve {
		sum := 0.0
		count := 0
		for j := i - half; j <= i+half; j++ {
			if j >= 0 && j < len(curve) {
				sum += curve[j].RMS
				count++
			}
		}
		out[i] = energy.Sample{Time: curve[i].Time, RMS: sum / float64(count)}
	}
	return out
}

// loudnessThresholds returns the 40th and 75th percentile RMS values.
func loudnessThresholds(curve energy.Curve) (low, high float64) {
	values := make([]float64, len(curve))
	for i, s := range curve {
		values[i] = s.RMS
	}
	sort.Float64s(values)
	low = stat.Quantile(0.40, stat.Empirical, values, nil)
	high = stat.Quantile(0.75, stat.Empirical, values, nil)
	return low, high
}

func classifyRuns(curve energy.Curve, low, high float64) []run {
	var runs []run
	for i, s := range curve {
		// Inclusive bounds so a flat plateau sitting exactly on its own
		// quantile still lands in the outer band.
		band := bandMid
		switch {
		case s.RMS >= high:
			band = bandLoud
		case s.RMS <= low:
			band = bandQuiet
		}
		if len(runs) > 0 && runs[len(runs)-1].band == band {
			runs[len(runs)-1].to = i + 1
			continue
		}
		runs = append(runs, run{band: band, from: i, to: i + 1})
	}
	return runs
}

// mergeShortRuns absorbs runs shorter than minFrames into their left
// neighbor (or right neighbor for the first run), then re-coalesces equal
// bands, until every run is long enough.
func mergeShortRuns(runs []run, minFrames int) []run {
	for len(runs) > 1 {
		merged := false
		for i, r := range runs {
			if r.to-r.from >= minFrames {
				continue
			}
			if i == 0 {
				runs[1].from = runs[0].from
				runs = runs[1:]
			} else {
				runs[i-1].to = r.to
				runs = append(runs[:i], runs[i+1:]...)
			}
			runs = coalesce(runs)
			merged = true
			break
		}
		if !merged {
			break
		}
	}
	return runs
}

func coalesce(runs []run) []run {
	out := runs[:0]
	for _, r := range runs {
		if len(out) > 0 && out[len(out)-1].band == r.band {
			out[len(out)-1].to = r.to
			continue
		}
		out = append(out, r)
	}
	return out
}

// labelRuns turns loudness runs into labeled segments covering the whole
// track. The first run is always the intro and the last the outro, as in
// boundary-based segmenters; interior runs are labeled by band.
func labelRuns(runs []run, curve energy.Curve, duration float64) []structure.Segment {
	segments := make([]structure.Segment, 0, len(runs))
	for i, r := range runs {
		var label structure.Label
		switch {
		case i == 0:
			label = structure.LabelIntro
		case i == len(runs)-1:
			label = structure.LabelOutro
		case r.band == bandLoud:
			label = structure.LabelChorus
		case r.band == bandMid:
			label = structure.LabelVerse
		default:
			label = structure.LabelBreak
		}

		start := curve[r.from].Time
		end := duration
		if r.to < len(curve) {
			end = curve[r.to].Time
		}
		segments = append(segments, structure.Segment{Label: label, Start: start, End: end})
	}
	return segments
}

// markDrop relabels the chorus whose start sits within skewSec of the
// steepest energy rise.
func markDrop(segments []structure.Segment, drop, skewSec float64) {
	for i, seg := range segments {
		if seg.Label != structure.LabelChorus {
			continue
		}
		diff := seg.Start - drop
		if diff < 0 {
			diff = -diff
		}
		if diff <= skewSec {
			segments[i].Label = structure.LabelDrop
			return
		}
	}
}
