package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/voxlate/voxlate/internal/api/dto"
	"github.com/voxlate/voxlate/internal/api/middleware"
	"github.com/voxlate/voxlate/internal/domain/language"
	"github.com/voxlate/voxlate/internal/domain/user"
	"github.com/voxlate/voxlate/internal/pkg/errors"
	"github.com/voxlate/voxlate/internal/pkg/logger"
	"github.com/voxlate/voxlate/internal/pkg/utils"
	"github.com/voxlate/voxlate/internal/pkg/validator"
)

// SettingsHandler handles language pair configuration
type SettingsHandler struct {
	userService user.Service
	logger      *logger.Logger
	validator   *validator.Validator
}

// NewSettingsHandler creates a new settings handler
func NewSettingsHandler(userService user.Service, log *logger.Logger, val *validator.Validator) *SettingsHandler {
	return &SettingsHandler{
		userService: userService,
		logger:      log,
		validator:   val,
	}
}

// ListLanguages returns the supported language catalog and the user's
// current pair
func (h *SettingsHandler) ListLanguages(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r)
	if !ok {
		utils.WriteError(w, errors.Unauthorized("User not authenticated"))
		return
	}

	u, err := h.userService.GetByID(r.Context(), userID)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	supported := make([]dto.LanguageDTO, 0)
	for _, info := range language.AllInfo() {
		supported = append(supported, dto.LanguageDTO{
			Code: string(info.Code),
			Name: info.Name,
			Flag: info.Flag,
		})
	}

	utils.WriteSuccess(w, http.StatusOK, map[string]interface{}{
		"supported": supported,
		"pair":      dto.NewLanguagePairDTO(u.Languages),
	})
}

// SetLanguages replaces the user's language pair
func (h *SettingsHandler) SetLanguages(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r)
	if !ok {
		utils.WriteError(w, errors.Unauthorized("User not authenticated"))
		return
	}

	var req dto.SetLanguagesRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.WriteError(w, errors.BadRequest("Invalid request body"))
		return
	}
	if validationErrs := h.validator.Validate(req); len(validationErrs) > 0 {
		utils.WriteError(w, errors.ValidationError("Validation failed", validationErrs))
		return
	}

	primary, err := language.Parse(req.Primary)
	if err != nil {
		utils.WriteError(w, errors.UnsupportedLanguage(req.Primary))
		return
	}
	secondary, err := language.Parse(req.Secondary)
	if err != nil {
		utils.WriteError(w, errors.UnsupportedLanguage(req.Secondary))
		return
	}

	u, err := h.userService.SetLanguages(r.Context(), userID,
		language.Pair{Primary: primary, Secondary: secondary})
	if err != nil {
		writeServiceError(w, err)
		return
	}
	utils.WriteSuccess(w, http.StatusOK, dto.NewLanguagePairDTO(u.Languages))
}

// SwapLanguages exchanges the pair's primary and secondary members
func (h *SettingsHandler) SwapLanguages(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r)
	if !ok {
		utils.WriteError(w, errors.Unauthorized("User not authenticated"))
		return
	}

	u, err := h.userService.SwapLanguages(r.Context(), userID)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	utils.WriteSuccess(w, http.StatusOK, dto.NewLanguagePairDTO(u.Languages))
}
