package transition

import (
	"testing"

	"github.com/aminorkey/segue/structure"
)

func TestSelectStyle(t *testing.T) {
	th := DefaultThresholds()

	tests := []struct {
		name      string
		in        StyleInputs
		wantType  Type
		wantBeats int
	}{
		{
			name: "aligned pair crossfades long",
			in: StyleInputs{
				DeltaEffBPM: 1, StretchPct: 0.01, KeyScore: 0.9,
				EntryLabel: structure.LabelIntro, EnergyJump: 0.05,
			},
			wantType: TypeCrossfade, wantBeats: 16,
		},
		{
			name: "clashing keys hide behind a low cut",
			in: StyleInputs{
				DeltaEffBPM: 1, StretchPct: 0.02, KeyScore: 0.4,
				EntryLabel: structure.LabelIntro, EnergyJump: 0.05,
			},
			wantType: TypeLowCutFilter, wantBeats: 8,
		},
		{
			name: "stretched drop entry slams",
			in: StyleInputs{
				DeltaEffBPM: 4, StretchPct: 0.10, KeyScore: 0.8,
				EntryLabel: structure.LabelDrop, EnergyJump: 0.1,
			},
			wantType: TypeLowCutEchoSlam, wantBeats: 4,
		},
		{
			name: "clash outranks stretch",
			in: StyleInputs{
				DeltaEffBPM: 4, StretchPct: 0.20, KeyScore: 0.4,
				EntryLabel: structure.LabelDrop, EnergyJump: 0.3,
			},
			wantType: TypeLowCutFilter, wantBeats: 8,
		},
		{
			name: "gentle intro entry rings out",
			in: StyleInputs{
				DeltaEffBPM: 4, StretchPct: 0.03, KeyScore: 0.8,
				EntryLabel: structure.LabelIntro, EnergyJump: 0.05,
			},
			wantType: TypeReverbTail, wantBeats: 8,
		},
		{
			name: "gentle verse entry rings out",
			in: StyleInputs{
				DeltaEffBPM: 4, StretchPct: 0.03, KeyScore: 0.8,
				EntryLabel: structure.LabelVerse, EnergyJump: 0.05,
			},
			wantType: TypeReverbTail, wantBeats: 8,
		},
		{
			name: "unsafe stretch alone forces the slam",
			in: StyleInputs{
				DeltaEffBPM: 3, StretchPct: 0.10, KeyScore: 0.8,
				EntryLabel: structure.LabelBuildup, EnergyJump: 0.05,
			},
			wantType: TypeLowCutEchoSlam, wantBeats: 4,
		},
		{
			name: "wide tempo gap alone forces the slam",
			in: StyleInputs{
				DeltaEffBPM: 8, StretchPct: 0.05, KeyScore: 0.8,
				EntryLabel: structure.LabelBuildup, EnergyJump: 0.05,
			},
			wantType: TypeLowCutEchoSlam, wantBeats: 4,
		},
		{
			name: "drop entry alone forces the slam",
			in: StyleInputs{
				DeltaEffBPM: 3, StretchPct: 0.02, KeyScore: 0.8,
				EntryLabel: structure.LabelDrop, EnergyJump: 0.05,
			},
			wantType: TypeLowCutEchoSlam, wantBeats: 4,
		},
		{
			name: "big loudness jump alone forces the slam",
			in: StyleInputs{
				DeltaEffBPM: 3, StretchPct: 0.02, KeyScore: 0.8,
				EntryLabel: structure.LabelBuildup, EnergyJump: 0.3,
			},
			wantType: TypeLowCutEchoSlam, wantBeats: 4,
		},
		{
			name: "loudness jump is judged by magnitude",
			in: StyleInputs{
				DeltaEffBPM: 1, StretchPct: 0.01, KeyScore: 0.9,
				EntryLabel: structure.LabelIntro, EnergyJump: -0.05,
			},
			wantType: TypeCrossfade, wantBeats: 16,
		},
		{
			name: "negative jump past the limit still slams",
			in: StyleInputs{
				DeltaEffBPM: 3, StretchPct: 0.02, KeyScore: 0.8,
				EntryLabel: structure.LabelBuildup, EnergyJump: -0.3,
			},
			wantType: TypeLowCutEchoSlam, wantBeats: 4,
		},
		{
			name: "unremarkable pair falls back to the tail",
			in: StyleInputs{
				DeltaEffBPM: 3, StretchPct: 0.05, KeyScore: 0.65,
				EntryLabel: structure.LabelBuildup, EnergyJump: 0.10,
			},
			wantType: TypeReverbTail, wantBeats: 8,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := SelectStyle(tt.in, th)
			if got.Type != tt.wantType {
				t.Errorf("SelectStyle(%+v).Type = %s, want %s", tt.in, got.Type, tt.wantType)
			}
			if got.DurationBeats != tt.wantBeats {
				t.Errorf("SelectStyle(%+v).DurationBeats = %d, want %d", tt.in, got.DurationBeats, tt.wantBeats)
			}
			if got.Reason == "" {
				t.Errorf("SelectStyle(%+v) has empty reason", tt.in)
			}
		})
	}
}

func TestSelectStyleBoundaries(t *testing.T) {
	th := DefaultThresholds()

	// Exactly at the thresholds: delta 2 and jump 0.15 still crossfade,
	// stretch 0.06 is still safe, key 0.6 does not clash.
	atEdge := StyleInputs{
		DeltaEffBPM: 2, StretchPct: 0.06, KeyScore: 0.7,
		EntryLabel: structure.LabelIntro, EnergyJump: 0.15,
	}
	if got := SelectStyle(atEdge, th); got.Type != TypeCrossfade {
		t.Errorf("at-threshold inputs chose %s, want %s", got.Type, TypeCrossfade)
	}

	justClash := StyleInputs{
		DeltaEffBPM: 2, StretchPct: 0.06, KeyScore: 0.59,
		EntryLabel: structure.LabelIntro, EnergyJump: 0.15,
	}
	if got := SelectStyle(justClash, th); got.Type != TypeLowCutFilter {
		t.Errorf("just-clashing keys chose %s, want %s", got.Type, TypeLowCutFilter)
	}

	keyAtClashEdge := StyleInputs{
		DeltaEffBPM: 3, StretchPct: 0.05, KeyScore: 0.6,
		EntryLabel: structure.LabelBuildup, EnergyJump: 0.05,
	}
	if got := SelectStyle(keyAtClashEdge, th); got.Type != TypeReverbTail {
		t.Errorf("key exactly at clash threshold chose %s, want %s", got.Type, TypeReverbTail)
	}
}
