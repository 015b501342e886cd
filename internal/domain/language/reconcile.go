package language

// Reconcile combines the acoustic (Whisper) detection with an optional
// text-based (GPT) detection into one decision. textDetected is empty for
// tiers without the secondary detector. Both inputs must already be members
// of the closed set; validate at the boundary before calling.
//
// The user's configured pair is a strong prior: a detector hit inside the
// pair wins over one outside it, and between two out-of-pair guesses the
// text detector is trusted as the better general-purpose signal.
func Reconcile(audioDetected, textDetected Language, pair Pair) Language {
	if textDetected == "" {
		return audioDetected
	}
	if audioDetected == textDetected {
		return audioDetected
	}
	if pair.Contains(textDetected) && !pair.Contains(audioDetected) {
		return textDetected
	}
	if pair.Contains(audioDetected) && !pair.Contains(textDetected) {
		return audioDetected
	}
	return textDetected
}

// ResolveTarget returns the pair member to translate into. A source outside
// the pair deterministically falls back to primary; lowConfidence flags that
// outcome for observability, it never fails the request.
func ResolveTarget(source Language, pair Pair) (target Language, lowConfidence bool) {
	switch source {
	case pair.Primary:
		return pair.Secondary, false
	case pair.Secondary:
		return pair.Primary, false
	default:
		return pair.Primary, true
	}
}
