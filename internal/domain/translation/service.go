package translation

import (
	"context"

	"github.com/voxlate/voxlate/internal/domain/language"
)

// TierFlags gates the pipeline steps a subscription tier is entitled to.
type TierFlags struct {
	AutoLanguageDetection bool
	BackTranslation       bool
}

// Service defines the interface for the translation orchestrator
type Service interface {
	// TranslateAuto runs the automatic-detection pipeline (premium path):
	// transcribe, optionally detect from text, reconcile, resolve target,
	// translate, optionally back-translate.
	TranslateAuto(ctx context.Context, audio []byte, pair language.Pair, flags TierFlags) (*Result, error)

	// TranslateManual runs the pre-declared-language pipeline (free path):
	// transcribe with the declared language as hint, then translate.
	// Back-translation is never performed on this path.
	TranslateManual(ctx context.Context, audio []byte, from, to language.Language) (*Result, error)
}
