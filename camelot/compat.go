package camelot

// CompatibleScore is the minimum wheel score considered harmonically safe
// for blended transitions.
const CompatibleScore = 0.6

// Distance returns the circular wheel distance between two codes, 0..6.
// Symmetric: Distance(a, b) == Distance(b, a).
func Distance(a, b Code) (int, error) {
	if err := a.Validate(); err != nil {
		return 0, err
	}
	if err := b.Validate(); err != nil {
		return 0, err
	}

	rawDiff := a.Number - b.Number
	if rawDiff < 0 {
		rawDiff = -rawDiff
	}
	if circular := 12 - rawDiff; circular < rawDiff {
		return circular, nil
	}
	return rawDiff, nil
}

// Score rates harmonic compatibility between two codes, 1.0 perfect down
// to 0.0 clashing. The rules are ordered by specificity and the first match
// wins:
//
//	same code                    1.0
//	relative major/minor         0.9
//	adjacent, same ring          0.8
//	adjacent, ring switch        0.6
//	two steps around the wheel   0.3
//	anything further             0.0
func Score(a, b Code) (float64, error) {
	circDiff, err := Distance(a, b)
	if err != nil {
		return 0, err
	}
	sameLetter := a.Letter == b.Letter

	switch {
	case circDiff == 0 && sameLetter:
		return 1.0, nil
	case circDiff == 0 && !sameLetter:
		return 0.9, nil
	case circDiff == 1 && sameLetter:
		return 0.8, nil
	case circDiff == 1 && !sameLetter:
		return 0.6, nil
	case circDiff == 2:
		return 0.3, nil
	default:
		return 0.0, nil
	}
}

// Compatible reports whether two codes score at least CompatibleScore.
func Compatible(a, b Code) (bool, error) {
	score, err := Score(a, b)
	if err != nil {
		return false, err
	}
	return score >= CompatibleScore, nil
}

// Advice is a DJ-facing summary of how to handle a key pairing.
type Advice struct {
	From     Code    `json:"from"`
	To       Code    `json:"to"`
	Score    float64 `json:"score"`
	Strategy string  `json:"strategy"`
}

// AdviceFor explains the recommended transition strategy for a key pairing
// in plain language, alongside the numeric score.
func AdviceFor(a, b Code) (Advice, error) {
	score, err := Score(a, b)
	if err != nil {
		return Advice{}, err
	}

	var strategy string
	switch {
	case score >= 0.8:
		strategy = "Smooth harmonic crossfade recommended."
	case score >= 0.6:
		strategy = "Harmonic blend possible. Use short crossfade."
	case score >= 0.3:
		strategy = "Harmonic clash likely. Transition during percussion-only section."
	default:
		strategy = "Keys are incompatible. Use hard cut at drop or echo-out transition."
	}

	return Advice{From: a, To: b, Score: score, Strategy: strategy}, nil
}
