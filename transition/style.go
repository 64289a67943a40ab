package transition

import (
	"math"

	"github.com/aminorkey/segue/structure"
)

// Type names a transition effect.
type Type string

const (
	TypeCrossfade      Type = "crossfade"
	TypeReverbTail     Type = "reverb_tail"
	TypeLowCutFilter   Type = "low_cut_filter"
	TypeLowCutEchoSlam Type = "low_cut_echo_slam"
)

// Thresholds are the hand-tuned decision constants for style selection.
// The defaults preserve the conventional values; they are exposed for
// tuning, not meant to be derived.
type Thresholds struct {
	GreatBPM    float64 `json:"great_bpm"`    // delta considered negligible
	GoodBPM     float64 `json:"good_bpm"`     // delta still blendable
	SafeStretch float64 `json:"safe_stretch"` // stretch fraction safe to blend
	GoodKey     float64 `json:"good_key"`     // key score safe to blend
	ClashKey    float64 `json:"clash_key"`    // key score below this clashes
	BigJump     float64 `json:"big_jump"`     // loudness jump too big to hide
}

// DefaultThresholds returns the conventional decision constants.
func DefaultThresholds() Thresholds {
	return Thresholds{
		GreatBPM:    2,
		GoodBPM:     6,
		SafeStretch: 0.06,
		GoodKey:     0.7,
		ClashKey:    0.6,
		BigJump:     0.15,
	}
}

// StyleInputs are the pair metrics the selector decides over.
type StyleInputs struct {
	DeltaEffBPM float64         `json:"delta_eff_bpm"`
	StretchPct  float64         `json:"stretch_pct"`
	KeyScore    float64         `json:"key_score"`
	EntryLabel  structure.Label `json:"entry_label"`
	EnergyJump  float64         `json:"energy_jump"`
}

// Choice is the selected style with its duration and the reason it won.
type Choice struct {
	Type          Type   `json:"type"`
	DurationBeats int    `json:"duration_beats"`
	Reason        string `json:"reason"`
}

// SelectStyle maps pair metrics to a transition style through an ordered
// rule chain; the first matching rule wins. A harmonic clash is checked
// before any stretch rule so clashing keys are always masked behind a
// filter, never slammed together.
func SelectStyle(in StyleInputs, th Thresholds) Choice {
	jump := math.Abs(in.EnergyJump)

	switch {
	case in.DeltaEffBPM <= th.GreatBPM && in.KeyScore >= th.GoodKey && jump <= th.BigJump:
		return Choice{TypeCrossfade, 16, "tempos, keys and loudness all line up"}

	case in.KeyScore < th.ClashKey:
		return Choice{TypeLowCutFilter, 8, "keys clash, mask the overlap behind a low cut"}

	case in.StretchPct <= th.SafeStretch && in.KeyScore >= th.GoodKey &&
		(in.EntryLabel == structure.LabelIntro || in.EntryLabel == structure.LabelVerse):
		return Choice{TypeReverbTail, 8, "gentle entry with safe stretch, let the tail ring"}

	case in.StretchPct > th.SafeStretch || in.DeltaEffBPM > th.GoodBPM ||
		in.EntryLabel == structure.LabelDrop || jump > th.BigJump:
		return Choice{TypeLowCutEchoSlam, 4, "too far apart to blend, cut the bass and slam"}

	default:
		return Choice{TypeReverbTail, 8, "nothing special either way, default tail"}
	}
}
