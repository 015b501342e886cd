package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/voxlate/voxlate/internal/api/middleware"
	"github.com/voxlate/voxlate/internal/api/dto"
	"github.com/voxlate/voxlate/internal/domain/language"
	"github.com/voxlate/voxlate/internal/domain/translation"
	"github.com/voxlate/voxlate/internal/pkg/errors"
	"github.com/voxlate/voxlate/internal/pkg/logger"
	"github.com/voxlate/voxlate/internal/pkg/utils"
	"github.com/voxlate/voxlate/internal/pkg/validator"
)

// SynthesizeHandler converts translated text back to speech
type SynthesizeHandler struct {
	provider  translation.Provider
	logger    *logger.Logger
	validator *validator.Validator
}

// NewSynthesizeHandler creates a new synthesize handler
func NewSynthesizeHandler(provider translation.Provider, log *logger.Logger, val *validator.Validator) *SynthesizeHandler {
	return &SynthesizeHandler{
		provider:  provider,
		logger:    log,
		validator: val,
	}
}

// Synthesize returns MP3 audio for the given text
func (h *SynthesizeHandler) Synthesize(w http.ResponseWriter, r *http.Request) {
	if _, ok := middleware.GetUserID(r); !ok {
		utils.WriteError(w, errors.Unauthorized("User not authenticated"))
		return
	}

	var req dto.SynthesizeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.WriteError(w, errors.BadRequest("Invalid request body"))
		return
	}
	if validationErrs := h.validator.Validate(req); len(validationErrs) > 0 {
		utils.WriteError(w, errors.ValidationError("Validation failed", validationErrs))
		return
	}

	lang, err := language.Parse(req.Language)
	if err != nil {
		utils.WriteError(w, errors.UnsupportedLanguage(req.Language))
		return
	}

	audio, err := h.provider.Synthesize(r.Context(), req.Text, lang)
	if err != nil {
		h.logger.ErrorWithErr(err, "Speech synthesis failed")
		utils.WriteError(w, errors.ExternalCompute("synthesize", err))
		return
	}

	w.Header().Set("Content-Type", "audio/mpeg")
	w.WriteHeader(http.StatusOK)
	w.Write(audio)
}
