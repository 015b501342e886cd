package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/voxlate/voxlate/internal/api/dto"
	"github.com/voxlate/voxlate/internal/api/middleware"
	"github.com/voxlate/voxlate/internal/domain/language"
	"github.com/voxlate/voxlate/internal/pkg/errors"
	"github.com/voxlate/voxlate/internal/pkg/logger"
	"github.com/voxlate/voxlate/internal/pkg/utils"
	"github.com/voxlate/voxlate/internal/pkg/validator"
	"github.com/voxlate/voxlate/internal/services"
)

// SessionHandler handles voice session requests
type SessionHandler struct {
	sessionService *services.SessionService
	logger         *logger.Logger
	validator      *validator.Validator
}

// NewSessionHandler creates a new session handler
func NewSessionHandler(sessionService *services.SessionService, log *logger.Logger, val *validator.Validator) *SessionHandler {
	return &SessionHandler{
		sessionService: sessionService,
		logger:         log,
		validator:      val,
	}
}

// SelectLanguage arms the voice session with a dictation language
func (h *SessionHandler) SelectLanguage(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r)
	if !ok {
		utils.WriteError(w, errors.Unauthorized("User not authenticated"))
		return
	}

	var req dto.SelectLanguageRequest
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

	if err := h.sessionService.SelectLanguage(r.Context(), userID, lang); err != nil {
		writeServiceError(w, err)
		return
	}

	sess, err := h.sessionService.State(r.Context(), userID)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	utils.WriteSuccess(w, http.StatusOK, dto.NewSessionResponse(sess))
}

// Get returns the current voice session state
func (h *SessionHandler) Get(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r)
	if !ok {
		utils.WriteError(w, errors.Unauthorized("User not authenticated"))
		return
	}

	sess, err := h.sessionService.State(r.Context(), userID)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	utils.WriteSuccess(w, http.StatusOK, dto.NewSessionResponse(sess))
}

// Clear cancels the voice session
func (h *SessionHandler) Clear(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r)
	if !ok {
		utils.WriteError(w, errors.Unauthorized("User not authenticated"))
		return
	}

	if err := h.sessionService.Clear(r.Context(), userID); err != nil {
		writeServiceError(w, err)
		return
	}
	utils.WriteSuccessWithMessage(w, http.StatusOK, "Voice session cleared", nil)
}
