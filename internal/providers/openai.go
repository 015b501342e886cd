// Package providers contains adapters for external compute capabilities.
package providers

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"strings"

	openai "github.com/sashabaranov/go-openai"

	"github.com/voxlate/voxlate/internal/config"
	"github.com/voxlate/voxlate/internal/domain/language"
	"github.com/voxlate/voxlate/internal/domain/translation"
	"github.com/voxlate/voxlate/internal/pkg/logger"
)

// OpenAIProvider implements translation.Provider on the OpenAI API:
// Whisper for speech-to-text, chat completions for text language
// detection and translation, and the speech endpoint for synthesis.
type OpenAIProvider struct {
	client             *openai.Client
	transcriptionModel string
	completionModel    string
	speechModel        string
	logger             *logger.Logger
}

// NewOpenAIProvider creates a provider from configuration
func NewOpenAIProvider(cfg config.OpenAIConfig, log *logger.Logger) *OpenAIProvider {
	return &OpenAIProvider{
		client:             openai.NewClient(cfg.APIKey),
		transcriptionModel: cfg.TranscriptionModel,
		completionModel:    cfg.CompletionModel,
		speechModel:        cfg.SpeechModel,
		logger:             log,
	}
}

// Transcribe converts audio to text via Whisper. The verbose response
// format carries Whisper's own language guess, which is normalized into
// the closed set before it leaves this package.
func (p *OpenAIProvider) Transcribe(ctx context.Context, audio []byte, hint language.Language) (*translation.Transcription, error) {
	req := openai.AudioRequest{
		Model:    p.transcriptionModel,
		FilePath: "voice.ogg",
		Reader:   bytes.NewReader(audio),
		Format:   openai.AudioResponseFormatVerboseJSON,
	}
	if hint != "" {
		req.Language = string(hint)
	}

	resp, err := p.client.CreateTranscription(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("whisper transcription: %w", err)
	}

	detected, recognized := language.FromWhisper(resp.Language)
	if !recognized {
		p.logger.Warnf("Unknown Whisper language %q, defaulting to %s", resp.Language, detected)
	}

	return &translation.Transcription{
		Text:             resp.Text,
		DetectedLanguage: detected,
		Recognized:       recognized,
	}, nil
}

// DetectLanguage classifies text into one of the candidate languages using
// a constrained GPT prompt. An answer outside the candidate set is a
// detector error and falls back to the first candidate.
func (p *OpenAIProvider) DetectLanguage(ctx context.Context, text string, candidates []language.Language) (language.Language, error) {
	if len(candidates) == 0 {
		candidates = language.All()
	}

	names := make([]string, 0, len(candidates))
	for _, c := range candidates {
		if info, ok := language.GetInfo(c); ok {
			names = append(names, fmt.Sprintf("%s (%s)", c, info.Name))
		} else {
			names = append(names, string(c))
		}
	}

	resp, err := p.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: p.completionModel,
		Messages: []openai.ChatCompletionMessage{
			{
				Role: openai.ChatMessageRoleSystem,
				Content: fmt.Sprintf("You are a language detection expert. Analyze the given text and determine which language it is written in. "+
					"Respond with ONLY the language code from this list: %s. If unsure, respond with the most likely language code.",
					strings.Join(names, ", ")),
			},
			{
				Role:    openai.ChatMessageRoleUser,
				Content: fmt.Sprintf("Detect the language of this text: %q", text),
			},
		},
		Temperature: 0.1,
		MaxTokens:   10,
	})
	if err != nil {
		return "", fmt.Errorf("gpt language detection: %w", err)
	}
	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("gpt language detection: empty response")
	}

	answer := strings.ToLower(strings.TrimSpace(resp.Choices[0].Message.Content))
	// The model occasionally echoes more than the bare code.
	code := strings.Fields(answer)
	if len(code) > 0 {
		answer = code[0]
	}

	detected := language.Language(answer)
	for _, c := range candidates {
		if detected == c {
			return detected, nil
		}
	}

	p.logger.Warnf("GPT returned out-of-candidate language %q, falling back to %s", answer, candidates[0])
	return candidates[0], nil
}

// Translate converts text between two supported languages.
func (p *OpenAIProvider) Translate(ctx context.Context, text string, from, to language.Language) (string, error) {
	resp, err := p.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: p.completionModel,
		Messages: []openai.ChatCompletionMessage{
			{
				Role: openai.ChatMessageRoleSystem,
				Content: fmt.Sprintf("You are a professional translator. Translate the following text from %s to %s. "+
					"Return only the translation without any additional text or explanations.", from, to),
			},
			{
				Role:    openai.ChatMessageRoleUser,
				Content: text,
			},
		},
		Temperature: 0.1,
		MaxTokens:   1000,
	})
	if err != nil {
		return "", fmt.Errorf("gpt translation %s->%s: %w", from, to, err)
	}
	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("gpt translation %s->%s: empty response", from, to)
	}

	return strings.TrimSpace(resp.Choices[0].Message.Content), nil
}

// Synthesize renders text as speech audio.
func (p *OpenAIProvider) Synthesize(ctx context.Context, text string, lang language.Language) ([]byte, error) {
	resp, err := p.client.CreateSpeech(ctx, openai.CreateSpeechRequest{
		Model: openai.SpeechModel(p.speechModel),
		Input: text,
		Voice: openai.VoiceAlloy,
		Speed: 1.0,
	})
	if err != nil {
		return nil, fmt.Errorf("speech synthesis (%s): %w", lang, err)
	}
	defer resp.Close()

	audio, err := io.ReadAll(resp)
	if err != nil {
		return nil, fmt.Errorf("speech synthesis (%s): reading audio: %w", lang, err)
	}
	return audio, nil
}
