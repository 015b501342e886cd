package services

import (
	"context"
	"errors"
	"testing"

	"github.com/voxlate/voxlate/internal/domain/language"
	"github.com/voxlate/voxlate/internal/domain/translation"
	apperrors "github.com/voxlate/voxlate/internal/pkg/errors"
	"github.com/voxlate/voxlate/internal/testutil"
)

func defaultPair() language.Pair {
	return language.Pair{Primary: language.Ukrainian, Secondary: language.English}
}

func TestTranslationService_TranslateAuto(t *testing.T) {
	tests := []struct {
		name       string
		provider   *testutil.FakeProvider
		flags      translation.TierFlags
		wantSource language.Language
		wantTarget language.Language
		wantMethod string
		wantLowCon bool
		wantBack   bool
	}{
		{
			name: "free tier uses audio detection only",
			provider: &testutil.FakeProvider{
				TranscribedText: "привіт світ",
				AudioLanguage:   language.Ukrainian,
			},
			flags:      translation.TierFlags{},
			wantSource: language.Ukrainian,
			wantTarget: language.English,
			wantMethod: translation.MethodWhisperOnly,
		},
		{
			name: "premium reconciles two agreeing detectors",
			provider: &testutil.FakeProvider{
				TranscribedText: "hello there",
				AudioLanguage:   language.English,
				TextLanguage:    language.English,
			},
			flags:      translation.TierFlags{AutoLanguageDetection: true, BackTranslation: true},
			wantSource: language.English,
			wantTarget: language.Ukrainian,
			wantMethod: translation.MethodReconciled,
			wantBack:   true,
		},
		{
			name: "pair membership breaks detector disagreement",
			provider: &testutil.FakeProvider{
				TranscribedText: "привіт",
				AudioLanguage:   language.Russian,
				TextLanguage:    language.Ukrainian,
			},
			flags:      translation.TierFlags{AutoLanguageDetection: true},
			wantSource: language.Ukrainian,
			wantTarget: language.English,
			wantMethod: translation.MethodReconciled,
		},
		{
			name: "source outside pair falls back to primary target",
			provider: &testutil.FakeProvider{
				TranscribedText: "გამარჯობა",
				AudioLanguage:   language.Georgian,
				TextLanguage:    language.Georgian,
			},
			flags:      translation.TierFlags{AutoLanguageDetection: true},
			wantSource: language.Georgian,
			wantTarget: language.Ukrainian,
			wantMethod: translation.MethodReconciled,
			wantLowCon: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := NewTranslationService(tt.provider, testLogger())

			got, err := svc.TranslateAuto(context.Background(), []byte("ogg"), defaultPair(), tt.flags)
			if err != nil {
				t.Fatalf("TranslateAuto() error = %v", err)
			}

			if got.SourceLanguage != tt.wantSource {
				t.Errorf("TranslateAuto() source = %v, want %v", got.SourceLanguage, tt.wantSource)
			}
			if got.TargetLanguage != tt.wantTarget {
				t.Errorf("TranslateAuto() target = %v, want %v", got.TargetLanguage, tt.wantTarget)
			}
			if got.DetectionMethod != tt.wantMethod {
				t.Errorf("TranslateAuto() method = %v, want %v", got.DetectionMethod, tt.wantMethod)
			}
			if got.LowConfidence != tt.wantLowCon {
				t.Errorf("TranslateAuto() low confidence = %v, want %v", got.LowConfidence, tt.wantLowCon)
			}
			if (got.BackTranslation != "") != tt.wantBack {
				t.Errorf("TranslateAuto() back translation = %q, want present=%v", got.BackTranslation, tt.wantBack)
			}
			if got.TokensUsed <= 0 {
				t.Errorf("TranslateAuto() tokens = %v, want positive", got.TokensUsed)
			}

			if !tt.flags.AutoLanguageDetection && tt.provider.DetectCalls != 0 {
				t.Errorf("TranslateAuto() ran %d detection calls without entitlement", tt.provider.DetectCalls)
			}
			if tt.flags.AutoLanguageDetection && tt.provider.DetectCalls != 1 {
				t.Errorf("TranslateAuto() detection calls = %d, want 1", tt.provider.DetectCalls)
			}
		})
	}
}

func TestTranslationService_TranslateAuto_PremiumCostsMore(t *testing.T) {
	mk := func() *testutil.FakeProvider {
		return &testutil.FakeProvider{
			TranscribedText: "the same utterance",
			AudioLanguage:   language.English,
			TextLanguage:    language.English,
		}
	}

	free := mk()
	freeSvc := NewTranslationService(free, testLogger())
	freeRes, err := freeSvc.TranslateAuto(context.Background(), []byte("ogg"), defaultPair(), translation.TierFlags{})
	if err != nil {
		t.Fatalf("TranslateAuto() free error = %v", err)
	}

	prem := mk()
	premSvc := NewTranslationService(prem, testLogger())
	premRes, err := premSvc.TranslateAuto(context.Background(), []byte("ogg"), defaultPair(),
		translation.TierFlags{AutoLanguageDetection: true, BackTranslation: true})
	if err != nil {
		t.Fatalf("TranslateAuto() premium error = %v", err)
	}

	if premRes.TokensUsed <= freeRes.TokensUsed {
		t.Errorf("premium tokens = %v, want greater than free %v", premRes.TokensUsed, freeRes.TokensUsed)
	}
}

func TestTranslationService_TranslateAuto_StepFailures(t *testing.T) {
	boom := errors.New("upstream down")

	tests := []struct {
		name     string
		provider *testutil.FakeProvider
		flags    translation.TierFlags
	}{
		{
			name:     "transcription fails",
			provider: &testutil.FakeProvider{TranscribeError: boom},
		},
		{
			name: "detection fails",
			provider: &testutil.FakeProvider{
				TranscribedText: "hello",
				AudioLanguage:   language.English,
				DetectError:     boom,
			},
			flags: translation.TierFlags{AutoLanguageDetection: true},
		},
		{
			name: "translation fails",
			provider: &testutil.FakeProvider{
				TranscribedText: "hello",
				AudioLanguage:   language.English,
				TranslateError:  boom,
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := NewTranslationService(tt.provider, testLogger())

			_, err := svc.TranslateAuto(context.Background(), []byte("ogg"), defaultPair(), tt.flags)
			if err == nil {
				t.Fatal("TranslateAuto() expected error")
			}

			var appErr *apperrors.AppError
			if !errors.As(err, &appErr) {
				t.Fatalf("TranslateAuto() error type = %T, want *AppError", err)
			}
			if appErr.Code != apperrors.ErrCodeExternalCompute {
				t.Errorf("TranslateAuto() code = %v, want %v", appErr.Code, apperrors.ErrCodeExternalCompute)
			}
			if !errors.Is(err, boom) {
				t.Error("TranslateAuto() does not wrap the underlying failure")
			}
		})
	}
}

func TestTranslationService_TranslateManual(t *testing.T) {
	provider := &testutil.FakeProvider{
		TranscribedText: "selamat pagi",
		AudioLanguage:   language.Indonesian,
	}
	svc := NewTranslationService(provider, testLogger())

	got, err := svc.TranslateManual(context.Background(), []byte("ogg"), language.Indonesian, language.Ukrainian)
	if err != nil {
		t.Fatalf("TranslateManual() error = %v", err)
	}

	if provider.LastHint != language.Indonesian {
		t.Errorf("TranslateManual() hint = %v, want id", provider.LastHint)
	}
	if provider.DetectCalls != 0 {
		t.Errorf("TranslateManual() detection calls = %d, want 0", provider.DetectCalls)
	}
	if len(provider.TranslateCalls) != 1 || provider.TranslateCalls[0] != "id>uk" {
		t.Errorf("TranslateManual() translate calls = %v, want [id>uk]", provider.TranslateCalls)
	}
	if got.DetectionMethod != translation.MethodManual {
		t.Errorf("TranslateManual() method = %v, want %v", got.DetectionMethod, translation.MethodManual)
	}
	if got.BackTranslation != "" {
		t.Errorf("TranslateManual() back translation = %q, want empty", got.BackTranslation)
	}
}

func TestTranslationService_TranslateManual_UnsupportedLanguage(t *testing.T) {
	svc := NewTranslationService(&testutil.FakeProvider{}, testLogger())

	tests := []struct {
		name string
		from language.Language
		to   language.Language
	}{
		{name: "unknown source", from: "xx", to: language.English},
		{name: "unknown target", from: language.English, to: "zz"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.TranslateManual(context.Background(), []byte("ogg"), tt.from, tt.to)
			if err == nil {
				t.Fatal("TranslateManual() expected error")
			}
			var appErr *apperrors.AppError
			if !errors.As(err, &appErr) || appErr.Code != apperrors.ErrCodeUnsupportedLanguage {
				t.Errorf("TranslateManual() error = %v, want %v", err, apperrors.ErrCodeUnsupportedLanguage)
			}
		})
	}
}
