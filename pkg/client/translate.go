package client

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"time"
)

// Translation is the outcome of one voice translation request
type Translation struct {
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

// Exchange is one persisted translation history entry
type Exchange struct {
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

// HistoryPage is a page of translation history
type HistoryPage struct {
	Data       []Exchange `json:"data"`
	Page       int        `json:"page"`
	PageSize   int        `json:"page_size"`
	TotalItems int64      `json:"total_items"`
	TotalPages int        `json:"total_pages"`
}

// Translate uploads recorded audio for transcription and translation
func (c *Client) Translate(ctx context.Context, filename string, audio []byte) (*Translation, error) {
	var result Translation
	if err := c.doMultipart(ctx, "/api/v1/translate", "audio", filename, audio, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// TranslateFile reads an audio file from disk and translates it
func (c *Client) TranslateFile(ctx context.Context, path string) (*Translation, error) {
	audio, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read audio file: %w", err)
	}
	return c.Translate(ctx, filepath.Base(path), audio)
}

// History returns the user's translation history, newest first
func (c *Client) History(ctx context.Context, page, pageSize int) (*HistoryPage, error) {
	path := fmt.Sprintf("/api/v1/translations?page=%d&page_size=%d", page, pageSize)

	var result HistoryPage
	if err := c.doRequest(ctx, http.MethodGet, path, nil, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// Synthesize converts text to speech and returns the encoded audio
func (c *Client) Synthesize(ctx context.Context, text, languageCode string) ([]byte, error) {
	req := map[string]string{"text": text, "language": languageCode}
	return c.doRaw(ctx, http.MethodPost, "/api/v1/synthesize", req)
}
