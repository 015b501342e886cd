package dto

import (
	"time"

	"github.com/voxlate/voxlate/internal/domain/translation"
)

// TranslateResponse is the outcome of one voice translation
type TranslateResponse struct {
	ID              string `json:"id"`
	OriginalText    string `json:"originalText"`
	SourceLanguage  string `json:"sourceLanguage"`
	TranslatedText  string `json:"translatedText"`
	TargetLanguage  string `json:"targetLanguage"`
	BackTranslation string `json:"backTranslation,omitempty"`
	DetectionMethod string `json:"detectionMethod"`
	LowConfidence   bool   `json:"lowConfidence,omitempty"`
	TokensUsed      int64  `json:"tokensUsed"`
}

// NewTranslateResponse converts a pipeline result and its persisted
// exchange ID to the API representation.
func NewTranslateResponse(id string, res *translation.Result) *TranslateResponse {
	return &TranslateResponse{
		ID:              id,
		OriginalText:    res.OriginalText,
		SourceLanguage:  string(res.SourceLanguage),
		TranslatedText:  res.TranslatedText,
		TargetLanguage:  string(res.TargetLanguage),
		BackTranslation: res.BackTranslation,
		DetectionMethod: res.DetectionMethod,
		LowConfidence:   res.LowConfidence,
		TokensUsed:      res.TokensUsed,
	}
}

// ExchangeDTO is one history entry
type ExchangeDTO struct {
	ID              string    `json:"id"`
	OriginalText    string    `json:"originalText"`
	SourceLanguage  string    `json:"sourceLanguage"`
	TranslatedText  string    `json:"translatedText"`
	TargetLanguage  string    `json:"targetLanguage"`
	BackTranslation string    `json:"backTranslation,omitempty"`
	DetectionMethod string    `json:"detectionMethod"`
	TokensUsed      int64     `json:"tokensUsed"`
	CreatedAt       time.Time `json:"createdAt"`
}

// NewExchangeDTO converts a persisted exchange to the API representation
func NewExchangeDTO(e *translation.Exchange) *ExchangeDTO {
	return &ExchangeDTO{
		ID:              e.ID,
		OriginalText:    e.OriginalText,
		SourceLanguage:  string(e.SourceLanguage),
		TranslatedText:  e.TranslatedText,
		TargetLanguage:  string(e.TargetLanguage),
		BackTranslation: e.BackTranslation,
		DetectionMethod: e.DetectionMethod,
		TokensUsed:      e.TokensUsed,
		CreatedAt:       e.CreatedAt,
	}
}

// SynthesizeRequest converts text to speech
type SynthesizeRequest struct {
	Text     string `json:"text" validate:"required,max=4096"`
	Language string `json:"language" validate:"required,len=2"`
}
