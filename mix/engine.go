// Package mix orchestrates the pipeline for one track pair: score harmonic
// and tempo compatibility, find the transition point, snap it to the beat,
// pick a style and render the mixed output. It is the only package that
// logs; the packages it composes stay pure.
package mix

import (
	"errors"
	"fmt"

	"github.com/aminorkey/segue"
	"github.com/aminorkey/segue/analysis"
	"github.com/aminorkey/segue/beat"
	"github.com/aminorkey/segue/camelot"
	"github.com/aminorkey/segue/logging"
	"github.com/aminorkey/segue/render"
	"github.com/aminorkey/segue/structure"
	"github.com/aminorkey/segue/tempo"
	"github.com/aminorkey/segue/tonal"
	"github.com/aminorkey/segue/track"
	"github.com/aminorkey/segue/transition"
)

// Evaluation is the compatibility verdict for one ordered pair: the
// Camelot score with its DJ-facing advice, and the tempo relationship.
type Evaluation struct {
	KeyScore      float64        `json:"key_score"`
	KeyCompatible bool           `json:"key_compatible"`
	Advice        camelot.Advice `json:"advice"`
	Tempo         tempo.Result   `json:"tempo"`
}

// Result is the output of a full pipeline run for one pair.
type Result struct {
	Evaluation *Evaluation      `json:"evaluation"`
	Plan       *transition.Plan `json:"plan"`
	Output     *render.Buffer   `json:"-"`
}

// PairReport is one entry of a sequence walk. Err is set when the pair
// failed; Evaluation may still be populated alongside it, most usefully
// for incompatible-tempo pairs.
type PairReport struct {
	FromID     string           `json:"from_id"`
	ToID       string           `json:"to_id"`
	Evaluation *Evaluation      `json:"evaluation,omitempty"`
	Plan       *transition.Plan `json:"plan,omitempty"`
	Err        error            `json:"-"`
}

// Engine runs the planning pipeline under one configuration. It holds no
// per-pair state; one engine serves any number of pairs.
type Engine struct {
	config    *Config
	provider  analysis.Provider
	estimator *tonal.Estimator
	extractor *structure.Extractor
	logger    logging.Logger
}

// NewEngine creates an engine backed by the built-in analysis provider.
// A nil config selects defaults.
func NewEngine(config *Config) *Engine {
	return NewEngineWithProvider(config, nil)
}

// NewEngineWithProvider creates an engine with a caller-supplied analysis
// provider. A nil provider selects the built-in analyzer.
func NewEngineWithProvider(config *Config, provider analysis.Provider) *Engine {
	if config == nil {
		config = DefaultConfig()
	}
	if provider == nil {
		provider = analysis.NewAnalyzerWithParams(config.Analysis)
	}

	return &Engine{
		config:    config,
		provider:  provider,
		estimator: tonal.NewEstimatorWithParams(config.Estimator),
		extractor: structure.NewExtractorWithParams(config.Extractor),
		logger: logging.WithFields(logging.Fields{
			"component": "mix_engine",
		}),
	}
}

// Analyze runs every analysis primitive on a raw mono buffer and assembles
// the per-track view the planner consumes.
//
// Degenerate chroma and failed moment extraction are recoverable: the
// track keeps a zero-confidence key or absent moments and planning
// continues. Any other primitive failing fails the track.
func (e *Engine) Analyze(id string, samples []float64, sampleRate int) (*track.Analysis, error) {
	bpm, err := e.provider.Tempo(samples, sampleRate)
	if err != nil {
		return nil, fmt.Errorf("track %q: tempo: %w", id, err)
	}
	segments, err := e.provider.Segments(samples, sampleRate)
	if err != nil {
		return nil, fmt.Errorf("track %q: segments: %w", id, err)
	}
	grid, err := e.provider.BeatGrid(samples, sampleRate)
	if err != nil {
		return nil, fmt.Errorf("track %q: beat grid: %w", id, err)
	}
	curve, err := e.provider.EnergyCurve(samples, sampleRate)
	if err != nil {
		return nil, fmt.Errorf("track %q: energy curve: %w", id, err)
	}

	var key tonal.KeyEstimate
	chroma, err := e.provider.Chroma(samples, sampleRate)
	if err == nil {
		key, err = e.estimator.Estimate(chroma)
	}
	if err != nil {
		e.logger.Warn("key estimation failed, keeping zero confidence", logging.Fields{
			"track": id,
			"error": err.Error(),
		})
		key = tonal.KeyEstimate{}
	}

	moments, err := e.extractor.Extract(segments, curve)
	if err != nil {
		e.logger.Warn("moment extraction failed, keeping moments absent", logging.Fields{
			"track": id,
			"error": err.Error(),
		})
		moments = structure.KeyMoments{}
	}

	return &track.Analysis{
		ID:         id,
		SampleRate: sampleRate,
		BPM:        bpm,
		Key:        key,
		Segments:   segments,
		Moments:    moments,
		Beats:      grid,
		Energy:     curve,
	}, nil
}

// Evaluate scores harmonic and tempo compatibility for an ordered pair.
//
// The evaluation is returned populated even when the tempos are
// incompatible; the error then wraps segue.ErrIncompatiblePair and the
// caller decides whether to reject the pair or force a fallback.
func (e *Engine) Evaluate(a, b *track.Analysis) (*Evaluation, error) {
	advice, err := camelot.AdviceFor(a.Key.Camelot, b.Key.Camelot)
	if err != nil {
		return nil, fmt.Errorf("pair %q -> %q: %w", a.ID, b.ID, err)
	}

	tempoRes, tempoErr := tempo.Compare(a.BPM, b.BPM, e.config.Tempo)
	eval := &Evaluation{
		KeyScore:      advice.Score,
		KeyCompatible: advice.Score >= camelot.CompatibleScore,
		Advice:        advice,
		Tempo:         tempoRes,
	}

	e.logger.Debug("pair evaluated", logging.Fields{
		"from":        a.ID,
		"to":          b.ID,
		"key_score":   eval.KeyScore,
		"delta_eff":   tempoRes.DeltaEff,
		"stretch_pct": tempoRes.StretchPct,
		"advice":      advice.Strategy,
	})

	if tempoErr != nil {
		if errors.Is(tempoErr, segue.ErrIncompatiblePair) {
			return eval, fmt.Errorf("pair %q -> %q: %w", a.ID, b.ID, tempoErr)
		}
		return nil, fmt.Errorf("pair %q -> %q: %w", a.ID, b.ID, tempoErr)
	}
	return eval, nil
}

// plan turns an evaluation into a concrete transition plan.
func (e *Engine) plan(a, b *track.Analysis, eval *Evaluation) (*transition.Plan, error) {
	point, err := transition.FindPoint(a, b, eval.Tempo.StretchPct, e.config.Search)
	if err != nil {
		return nil, fmt.Errorf("pair %q -> %q: %w", a.ID, b.ID, err)
	}

	align, err := beat.Align(point.ExitTime, a.Beats, a.BPM, point.EntryTime, b.Beats, eval.Tempo.NormalizedB)
	if err != nil {
		return nil, fmt.Errorf("pair %q -> %q: %w", a.ID, b.ID, err)
	}

	choice := transition.SelectStyle(transition.StyleInputs{
		DeltaEffBPM: eval.Tempo.DeltaEff,
		StretchPct:  eval.Tempo.StretchPct,
		KeyScore:    eval.KeyScore,
		EntryLabel:  point.EntryLabel,
		EnergyJump:  point.EnergyJump,
	}, e.config.Thresholds)

	plan := &transition.Plan{
		ExitTime:      align.ExitTime,
		EntryTime:     align.EntryTime,
		Type:          choice.Type,
		DurationBeats: choice.DurationBeats,
		BPMRef:        a.BPM,
		PhaseOffset:   align.PhaseOffset,
		ExitLabel:     point.ExitLabel,
		EntryLabel:    point.EntryLabel,
		EnergyJump:    point.EnergyJump,
		Score:         point.Score,
		Reason:        choice.Reason,
	}

	e.logger.Info("transition planned", logging.Fields{
		"from":   a.ID,
		"to":     b.ID,
		"type":   string(plan.Type),
		"beats":  plan.DurationBeats,
		"exit":   plan.ExitTime,
		"entry":  plan.EntryTime,
		"reason": plan.Reason,
	})
	return plan, nil
}

// planPair validates, evaluates and plans one pair.
func (e *Engine) planPair(a, b *track.Analysis) (*Evaluation, *transition.Plan, error) {
	if a == nil || b == nil {
		return nil, nil, fmt.Errorf("%w: nil track analysis", segue.ErrAnalysis)
	}
	if err := a.Validate(); err != nil {
		return nil, nil, fmt.Errorf("track %q: %w", a.ID, err)
	}
	if err := b.Validate(); err != nil {
		return nil, nil, fmt.Errorf("track %q: %w", b.ID, err)
	}

	eval, err := e.Evaluate(a, b)
	if err != nil {
		return eval, nil, err
	}
	plan, err := e.plan(a, b, eval)
	if err != nil {
		return eval, nil, err
	}
	return eval, plan, nil
}

// PlanTransition evaluates a pair and decides where, how and for how long
// to transition. Incompatible pairs are not forced into a fallback style
// here; the error reports them and the caller chooses.
func (e *Engine) PlanTransition(a, b *track.Analysis) (*transition.Plan, error) {
	_, plan, err := e.planPair(a, b)
	return plan, err
}

// RenderTransition applies a plan to the raw outgoing and incoming buffers
// under the engine's slam parameters. Rendering is all-or-nothing: on
// error no buffer is returned.
func (e *Engine) RenderTransition(plan *transition.Plan, a, b *render.Buffer) (*render.Buffer, error) {
	return render.RenderWithParams(plan, a, b, e.config.Slam)
}

// Mix runs the full pipeline for one pair: evaluate, plan, render.
func (e *Engine) Mix(a, b *track.Analysis, bufA, bufB *render.Buffer) (*Result, error) {
	eval, plan, err := e.planPair(a, b)
	if err != nil {
		e.logger.Error(err, "pair failed", logging.Fields{"from": trackID(a), "to": trackID(b)})
		return nil, err
	}

	out, err := e.RenderTransition(plan, bufA, bufB)
	if err != nil {
		e.logger.Error(err, "render failed", logging.Fields{"from": a.ID, "to": b.ID})
		return nil, err
	}

	return &Result{Evaluation: eval, Plan: plan, Output: out}, nil
}

// EvaluateSequence plans every adjacent pair of an already-ordered track
// list. Pairs are isolated: a failure lands in its pair's report and the
// walk continues. The engine never reorders tracks.
func (e *Engine) EvaluateSequence(tracks []*track.Analysis) []PairReport {
	if len(tracks) < 2 {
		return nil
	}

	reports := make([]PairReport, 0, len(tracks)-1)
	for i := 0; i+1 < len(tracks); i++ {
		a, b := tracks[i], tracks[i+1]
		report := PairReport{FromID: trackID(a), ToID: trackID(b)}
		report.Evaluation, report.Plan, report.Err = e.planPair(a, b)
		if report.Err != nil {
			e.logger.Error(report.Err, "pair failed, continuing", logging.Fields{
				"from": report.FromID,
				"to":   report.ToID,
			})
		}
		reports = append(reports, report)
	}
	return reports
}

func trackID(t *track.Analysis) string {
	if t == nil {
		return ""
	}
	return t.ID
}
