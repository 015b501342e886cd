package services

import (
	"context"
	"time"

	"github.com/voxlate/voxlate/internal/domain/language"
	"github.com/voxlate/voxlate/internal/domain/translation"
	"github.com/voxlate/voxlate/internal/pkg/errors"
	"github.com/voxlate/voxlate/internal/pkg/logger"
	"github.com/voxlate/voxlate/internal/pkg/metrics"
)

// Pipeline step names surfaced on external compute failures so callers
// can clean up without committing quota.
const (
	StepTranscribe    = "transcribe"
	StepDetect        = "detect_language"
	StepTranslate     = "translate"
	StepBackTranslate = "back_translate"
)

// TranslationService implements translation.Service. Each request runs
// its steps strictly sequentially and propagates the caller's context
// into every external compute call; a cancelled request fails before any
// quota is committed.
type TranslationService struct {
	provider translation.Provider
	logger   *logger.Logger
}

// NewTranslationService creates a new translation orchestrator
func NewTranslationService(provider translation.Provider, log *logger.Logger) translation.Service {
	return &TranslationService{
		provider: provider,
		logger:   log,
	}
}

// TranslateAuto runs the automatic-detection pipeline: transcribe, detect
// from text when the tier is entitled to the second signal, reconcile the
// two signals, resolve the target from the pair, translate, and
// back-translate when the tier is entitled to verification.
func (s *TranslationService) TranslateAuto(ctx context.Context, audio []byte, pair language.Pair, flags translation.TierFlags) (*translation.Result, error) {
	if err := pair.Validate(); err != nil {
		return nil, errors.BadRequest(err.Error())
	}

	start := time.Now()
	method := translation.MethodWhisperOnly
	if flags.AutoLanguageDetection {
		method = translation.MethodReconciled
	}

	tr, err := s.provider.Transcribe(ctx, audio, "")
	if err != nil {
		return nil, s.fail(method, StepTranscribe, start, err)
	}
	audioDetected := tr.DetectedLanguage

	var textDetected language.Language
	if flags.AutoLanguageDetection {
		candidates := []language.Language{pair.Primary, pair.Secondary}
		textDetected, err = s.provider.DetectLanguage(ctx, tr.Text, candidates)
		if err != nil {
			return nil, s.fail(method, StepDetect, start, err)
		}
	}

	source := language.Reconcile(audioDetected, textDetected, pair)
	target, lowConfidence := language.ResolveTarget(source, pair)
	if lowConfidence {
		metrics.RecordLowConfidenceResolution()
		s.logger.WithFields(map[string]interface{}{
			"detected": source,
			"pair":     pair,
			"target":   target,
		}).Warn("Detected language outside configured pair, defaulting to primary")
	}

	translated, err := s.provider.Translate(ctx, tr.Text, source, target)
	if err != nil {
		return nil, s.fail(method, StepTranslate, start, err)
	}

	var backTranslation string
	if flags.BackTranslation {
		backTranslation, err = s.provider.Translate(ctx, translated, target, source)
		if err != nil {
			return nil, s.fail(method, StepBackTranslate, start, err)
		}
	}

	premiumPass := flags.AutoLanguageDetection || flags.BackTranslation
	result := &translation.Result{
		OriginalText:    tr.Text,
		SourceLanguage:  source,
		TranslatedText:  translated,
		TargetLanguage:  target,
		BackTranslation: backTranslation,
		AudioDetected:   audioDetected,
		TextDetected:    textDetected,
		DetectionMethod: method,
		LowConfidence:   lowConfidence,
		Premium:         premiumPass,
		TokensUsed:      translation.EstimateTokens(tr.Text, translated, premiumPass),
	}

	metrics.RecordTranslation(method, "ok", time.Since(start))
	s.logger.WithFields(map[string]interface{}{
		"method": method,
		"source": source,
		"target": target,
		"tokens": result.TokensUsed,
	}).Info("Translation pipeline finished")

	return result, nil
}

// TranslateManual runs the pre-declared-language pipeline for users
// without the automatic-detection entitlement. The declared language is
// passed to the transcriber as a hint; no detection or back-translation
// step runs.
func (s *TranslationService) TranslateManual(ctx context.Context, audio []byte, from, to language.Language) (*translation.Result, error) {
	if !language.IsSupported(from) {
		return nil, errors.UnsupportedLanguage(string(from))
	}
	if !language.IsSupported(to) {
		return nil, errors.UnsupportedLanguage(string(to))
	}

	start := time.Now()

	tr, err := s.provider.Transcribe(ctx, audio, from)
	if err != nil {
		return nil, s.fail(translation.MethodManual, StepTranscribe, start, err)
	}

	translated, err := s.provider.Translate(ctx, tr.Text, from, to)
	if err != nil {
		return nil, s.fail(translation.MethodManual, StepTranslate, start, err)
	}

	result := &translation.Result{
		OriginalText:    tr.Text,
		SourceLanguage:  from,
		TranslatedText:  translated,
		TargetLanguage:  to,
		AudioDetected:   from,
		DetectionMethod: translation.MethodManual,
		TokensUsed:      translation.EstimateTokens(tr.Text, translated, false),
	}

	metrics.RecordTranslation(translation.MethodManual, "ok", time.Since(start))
	s.logger.WithFields(map[string]interface{}{
		"from":   from,
		"to":     to,
		"tokens": result.TokensUsed,
	}).Info("Manual translation pipeline finished")

	return result, nil
}

func (s *TranslationService) fail(method, step string, start time.Time, err error) *errors.AppError {
	metrics.RecordTranslation(method, "error", time.Since(start))
	metrics.RecordComputeFailure(step)
	s.logger.WithFields(map[string]interface{}{
		"method": method,
		"step":   step,
	}).ErrorWithErr(err, "Translation pipeline step failed")
	return errors.ExternalCompute(step, err)
}
