package translation

import (
	"time"

	"github.com/voxlate/voxlate/internal/domain/language"
)

// Detection methods
const (
	MethodWhisperOnly = "whisper"
	MethodReconciled  = "whisper+gpt"
	MethodManual      = "manual"
)

// Result is the outcome of one translation pipeline run. It is ephemeral:
// the caller decides whether to commit quota and persist an Exchange.
type Result struct {
	OriginalText    string            `json:"original_text"`
	SourceLanguage  language.Language `json:"source_language"`
	TranslatedText  string            `json:"translated_text"`
	TargetLanguage  language.Language `json:"target_language"`
	BackTranslation string            `json:"back_translation,omitempty"`

	// Raw detector outputs, attached for transparency.
	AudioDetected language.Language `json:"audio_detected"`
	TextDetected  language.Language `json:"text_detected,omitempty"`

	DetectionMethod string `json:"detection_method"`
	LowConfidence   bool   `json:"low_confidence"`
	Premium         bool   `json:"premium"`
	TokensUsed      int64  `json:"tokens_used"`
}

// Exchange is the persisted record of one completed translation.
type Exchange struct {
	ID              string            `json:"id"`
	UserID          int64             `json:"user_id"`
	OriginalText    string            `json:"original_text"`
	SourceLanguage  language.Language `json:"source_language"`
	TranslatedText  string            `json:"translated_text"`
	TargetLanguage  language.Language `json:"target_language"`
	BackTranslation string            `json:"back_translation,omitempty"`
	DetectionMethod string            `json:"detection_method"`
	TokensUsed      int64             `json:"tokens_used"`
	CreatedAt       time.Time         `json:"created_at"`
}

// Token estimation constants. An estimate is roughly one token per four
// characters; translated text is weighted double because it passes through
// the model twice (completion plus context). The surcharge covers the GPT
// detection and back-translation calls on the premium path.
const (
	charsPerToken        = 4
	outputWeight         = 2
	requestOverhead      = 50
	premiumPassSurcharge = 10
)

// EstimateTokens computes the deterministic token cost of a pipeline run.
// It is strictly increasing in both text lengths and strictly greater when
// the premium detection/back-translation pass ran.
func EstimateTokens(originalText, translatedText string, premiumPass bool) int64 {
	cost := ceilDiv(len(originalText), charsPerToken) +
		outputWeight*ceilDiv(len(translatedText), charsPerToken) +
		requestOverhead
	if premiumPass {
		cost += premiumPassSurcharge
	}
	return int64(cost)
}

// DefaultEstimate is the up-front cost used for the quota check before the
// actual text lengths are known.
const DefaultEstimate = 150

func ceilDiv(n, d int) int {
	return (n + d - 1) / d
}
