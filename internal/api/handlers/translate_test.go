package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/voxlate/voxlate/internal/api/middleware"
	"github.com/voxlate/voxlate/internal/config"
	"github.com/voxlate/voxlate/internal/domain/language"
	"github.com/voxlate/voxlate/internal/domain/user"
	"github.com/voxlate/voxlate/internal/pkg/logger"
	"github.com/voxlate/voxlate/internal/services"
	"github.com/voxlate/voxlate/internal/testutil"
)

type translateFixture struct {
	handler      *TranslateHandler
	userRepo     *testutil.MockUserRepository
	exchangeRepo *testutil.MockExchangeRepository
	provider     *testutil.FakeProvider
	user         *user.User
}

func newTranslateFixture(t *testing.T, tier string) *translateFixture {
	t.Helper()

	log := logger.New(logger.Config{Level: "error", Format: "json"})
	userRepo := testutil.NewMockUserRepository()
	exchangeRepo := testutil.NewMockExchangeRepository()
	provider := &testutil.FakeProvider{
		TranscribedText: "привіт",
		AudioLanguage:   language.Ukrainian,
		TextLanguage:    language.Ukrainian,
	}

	u := &user.User{
		Email:     "voice@example.com",
		Languages: language.DefaultPair(),
		Tier:      tier,
		Usage: user.TokenUsage{
			LastDailyReset:   time.Now(),
			LastMonthlyReset: time.Now(),
		},
		VoiceSession: user.VoiceSession{State: user.SessionIdle},
	}
	if err := userRepo.Create(context.Background(), u); err != nil {
		t.Fatalf("failed to seed user: %v", err)
	}

	cfg := &config.Config{
		Server: config.ServerConfig{MaxAudioBytes: 1 << 20},
		Quota: config.QuotaConfig{
			FreeDaily:      10000,
			FreeMonthly:    100000,
			PremiumDaily:   100000,
			PremiumMonthly: 1000000,
		},
		Premium: config.PremiumFeatures{
			AutoLanguageDetection: true,
			BackTranslation:       true,
		},
		Session: config.SessionConfig{TTL: 5 * time.Minute},
	}

	locks := services.NewUserLocks()
	handler := NewTranslateHandler(
		services.NewTranslationService(provider, log),
		services.NewUserService(userRepo, locks, log),
		services.NewQuotaService(userRepo, cfg.Quota, locks, log),
		services.NewSessionService(userRepo, cfg.Session.TTL, locks, log),
		exchangeRepo,
		cfg,
		log,
	)

	return &translateFixture{
		handler:      handler,
		userRepo:     userRepo,
		exchangeRepo: exchangeRepo,
		provider:     provider,
		user:         u,
	}
}

func audioRequest(t *testing.T, userID int64, fields map[string]string) *http.Request {
	t.Helper()

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	part, err := mw.CreateFormFile("audio", "voice.ogg")
	if err != nil {
		t.Fatalf("failed to build upload: %v", err)
	}
	if _, err := part.Write([]byte("fake-ogg-bytes")); err != nil {
		t.Fatalf("failed to build upload: %v", err)
	}
	for k, v := range fields {
		if err := mw.WriteField(k, v); err != nil {
			t.Fatalf("failed to build upload: %v", err)
		}
	}
	mw.Close()

	req := httptest.NewRequest(http.MethodPost, "/api/v1/translate", &buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	return req.WithContext(context.WithValue(req.Context(), middleware.UserIDKey, userID))
}

func TestTranslateHandler_FreeRequiresSelection(t *testing.T) {
	f := newTranslateFixture(t, user.TierFree)

	rr := httptest.NewRecorder()
	f.handler.Translate(rr, audioRequest(t, f.user.ID, nil))

	if rr.Code != http.StatusConflict {
		t.Fatalf("handler returned wrong status code: got %v want %v", rr.Code, http.StatusConflict)
	}

	var response struct {
		Success bool `json:"success"`
		Error   struct {
			Code string `json:"code"`
		} `json:"error"`
	}
	if err := json.NewDecoder(rr.Body).Decode(&response); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if response.Error.Code != "LANGUAGE_SELECTION_REQUIRED" {
		t.Errorf("error code = %q, want %q", response.Error.Code, "LANGUAGE_SELECTION_REQUIRED")
	}

	stored, _ := f.userRepo.GetByID(context.Background(), f.user.ID)
	if stored.VoiceSession.State != user.SessionAwaitingSelection {
		t.Errorf("session state = %q, want %q", stored.VoiceSession.State, user.SessionAwaitingSelection)
	}
	if f.provider.TranscribeCalls != 0 {
		t.Errorf("Transcribe called %d times before selection", f.provider.TranscribeCalls)
	}
}

func TestTranslateHandler_FreeArmedSession(t *testing.T) {
	f := newTranslateFixture(t, user.TierFree)

	f.user.VoiceSession = user.VoiceSession{
		State:            user.SessionArmed,
		SelectedLanguage: language.Ukrainian,
		ExpiresAt:        time.Now().Add(4 * time.Minute),
	}
	f.userRepo.Update(context.Background(), f.user)

	rr := httptest.NewRecorder()
	f.handler.Translate(rr, audioRequest(t, f.user.ID, nil))

	if rr.Code != http.StatusOK {
		t.Fatalf("handler returned wrong status code: got %v want %v, body %s", rr.Code, http.StatusOK, rr.Body.String())
	}

	var response struct {
		Data struct {
			DetectionMethod string `json:"detectionMethod"`
			TargetLanguage  string `json:"targetLanguage"`
			TokensUsed      int64  `json:"tokensUsed"`
		} `json:"data"`
	}
	if err := json.NewDecoder(rr.Body).Decode(&response); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if response.Data.DetectionMethod != "manual" {
		t.Errorf("detectionMethod = %q, want %q", response.Data.DetectionMethod, "manual")
	}
	if response.Data.TargetLanguage != "en" {
		t.Errorf("targetLanguage = %q, want %q", response.Data.TargetLanguage, "en")
	}

	// The armed selection is single-use and the cost is committed.
	stored, _ := f.userRepo.GetByID(context.Background(), f.user.ID)
	if stored.VoiceSession.State != user.SessionIdle {
		t.Errorf("session state after attempt = %q, want %q", stored.VoiceSession.State, user.SessionIdle)
	}
	if stored.Usage.DailyUsed != response.Data.TokensUsed {
		t.Errorf("daily used = %d, want %d", stored.Usage.DailyUsed, response.Data.TokensUsed)
	}
	if len(f.exchangeRepo.Exchanges) != 1 {
		t.Errorf("stored exchanges = %d, want 1", len(f.exchangeRepo.Exchanges))
	}
}

func TestTranslateHandler_FreeExplicitDirection(t *testing.T) {
	f := newTranslateFixture(t, user.TierFree)

	rr := httptest.NewRecorder()
	f.handler.Translate(rr, audioRequest(t, f.user.ID, map[string]string{
		"from": "ka",
		"to":   "en",
	}))

	if rr.Code != http.StatusOK {
		t.Fatalf("handler returned wrong status code: got %v want %v, body %s", rr.Code, http.StatusOK, rr.Body.String())
	}
	if got := f.provider.TranslateCalls; len(got) != 1 || got[0] != "ka>en" {
		t.Errorf("translate calls = %v, want [ka>en]", got)
	}
	if f.provider.DetectCalls != 0 {
		t.Errorf("DetectLanguage called %d times on manual path", f.provider.DetectCalls)
	}
}

func TestTranslateHandler_ExplicitDirectionMustDiffer(t *testing.T) {
	f := newTranslateFixture(t, user.TierFree)

	rr := httptest.NewRecorder()
	f.handler.Translate(rr, audioRequest(t, f.user.ID, map[string]string{
		"from": "uk",
		"to":   "uk",
	}))

	if rr.Code != http.StatusBadRequest {
		t.Fatalf("handler returned wrong status code: got %v want %v", rr.Code, http.StatusBadRequest)
	}
	if f.provider.TranscribeCalls != 0 {
		t.Errorf("Transcribe called %d times for a degenerate direction", f.provider.TranscribeCalls)
	}
}

func TestTranslateHandler_ExpiredPremiumFallsBackToFree(t *testing.T) {
	f := newTranslateFixture(t, user.TierPremium)

	expires := time.Now().Add(time.Hour)
	f.user.TierExpires = &expires
	f.userRepo.Update(context.Background(), f.user)
	f.handler.now = func() time.Time { return expires.Add(time.Minute) }

	rr := httptest.NewRecorder()
	f.handler.Translate(rr, audioRequest(t, f.user.ID, nil))

	if rr.Code != http.StatusConflict {
		t.Fatalf("handler returned wrong status code: got %v want %v", rr.Code, http.StatusConflict)
	}
	if f.provider.TranscribeCalls != 0 {
		t.Errorf("Transcribe called %d times on the lapsed-premium path", f.provider.TranscribeCalls)
	}
}

func TestTranslateHandler_PremiumAutoPipeline(t *testing.T) {
	f := newTranslateFixture(t, user.TierPremium)

	rr := httptest.NewRecorder()
	f.handler.Translate(rr, audioRequest(t, f.user.ID, nil))

	if rr.Code != http.StatusOK {
		t.Fatalf("handler returned wrong status code: got %v want %v, body %s", rr.Code, http.StatusOK, rr.Body.String())
	}

	var response struct {
		Data struct {
			DetectionMethod string `json:"detectionMethod"`
			BackTranslation string `json:"backTranslation"`
		} `json:"data"`
	}
	if err := json.NewDecoder(rr.Body).Decode(&response); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if response.Data.DetectionMethod != "whisper+gpt" {
		t.Errorf("detectionMethod = %q, want %q", response.Data.DetectionMethod, "whisper+gpt")
	}
	if response.Data.BackTranslation == "" {
		t.Error("expected a back-translation on the premium pipeline")
	}
	if f.provider.DetectCalls != 1 {
		t.Errorf("DetectLanguage calls = %d, want 1", f.provider.DetectCalls)
	}
}

func TestTranslateHandler_QuotaExceeded(t *testing.T) {
	f := newTranslateFixture(t, user.TierFree)

	f.user.Usage.DailyUsed = 10000
	f.userRepo.Update(context.Background(), f.user)

	rr := httptest.NewRecorder()
	f.handler.Translate(rr, audioRequest(t, f.user.ID, map[string]string{
		"from": "uk",
		"to":   "en",
	}))

	if rr.Code != http.StatusTooManyRequests {
		t.Fatalf("handler returned wrong status code: got %v want %v", rr.Code, http.StatusTooManyRequests)
	}
	if f.provider.TranscribeCalls != 0 {
		t.Errorf("Transcribe called %d times after quota rejection", f.provider.TranscribeCalls)
	}
}

func TestTranslateHandler_PipelineFailureCommitsNothing(t *testing.T) {
	f := newTranslateFixture(t, user.TierFree)
	f.provider.TranscribeError = context.DeadlineExceeded

	rr := httptest.NewRecorder()
	f.handler.Translate(rr, audioRequest(t, f.user.ID, map[string]string{
		"from": "uk",
		"to":   "en",
	}))

	if rr.Code != http.StatusBadGateway {
		t.Fatalf("handler returned wrong status code: got %v want %v", rr.Code, http.StatusBadGateway)
	}

	stored, _ := f.userRepo.GetByID(context.Background(), f.user.ID)
	if stored.Usage.DailyUsed != 0 {
		t.Errorf("daily used after failed pipeline = %d, want 0", stored.Usage.DailyUsed)
	}
	if len(f.exchangeRepo.Exchanges) != 0 {
		t.Errorf("stored exchanges after failed pipeline = %d, want 0", len(f.exchangeRepo.Exchanges))
	}
}
