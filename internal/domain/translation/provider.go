package translation

import (
	"context"

	"github.com/voxlate/voxlate/internal/domain/language"
)

// Transcription is the raw output of the speech-to-text step.
// DetectedLanguage is the acoustic best guess, already normalized into
// the closed language set; Recognized is false when the raw detector
// output fell outside the set and the default was substituted.
type Transcription struct {
	Text             string
	DetectedLanguage language.Language
	Recognized       bool
}

// Provider is the external speech/translation compute capability.
// Implementations must honor context cancellation on every call; the
// orchestrator propagates timeouts through it.
type Provider interface {
	// Transcribe converts audio to text. A non-empty hint constrains the
	// recognizer to that language and improves accuracy.
	Transcribe(ctx context.Context, audio []byte, hint language.Language) (*Transcription, error)

	// DetectLanguage classifies text into one of the candidate languages.
	DetectLanguage(ctx context.Context, text string, candidates []language.Language) (language.Language, error)

	// Translate converts text between two supported languages.
	Translate(ctx context.Context, text string, from, to language.Language) (string, error)

	// Synthesize renders text as speech audio. Not part of the translate
	// pipeline; exposed through its own endpoint.
	Synthesize(ctx context.Context, text string, lang language.Language) ([]byte, error)
}
