package render

// addEcho mixes a single delayed tap of the signal back into itself, in
// place. The tap arrives delaySec later at decay times the original level.
// A delay longer than the signal, or a zero decay, leaves it unchanged.
func addEcho(samples []float64, sampleRate int, delaySec, decay float64) {
	if decay == 0 || delaySec <= 0 {
		return
	}
	delay := samplesAt(sampleRate, delaySec)
	if delay <= 0 || delay >= len(samples) {
		return
	}
	// Walk backwards so the tap reads pre-echo values.
	for i := len(samples) - 1; i >= delay; i-- {
		samples[i] += samples[i-delay] * decay
	}
}
