package handlers

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/voxlate/voxlate/internal/api/dto"
	"github.com/voxlate/voxlate/internal/api/middleware"
	"github.com/voxlate/voxlate/internal/domain/translation"
	"github.com/voxlate/voxlate/internal/domain/user"
	"github.com/voxlate/voxlate/internal/pkg/errors"
	"github.com/voxlate/voxlate/internal/pkg/logger"
	"github.com/voxlate/voxlate/internal/pkg/utils"
	"github.com/voxlate/voxlate/internal/pkg/validator"
	"github.com/voxlate/voxlate/internal/services"
)

// AccountHandler handles quota, stats and subscription requests
type AccountHandler struct {
	userService  user.Service
	quotaService *services.QuotaService
	exchangeRepo translation.Repository
	logger       *logger.Logger
	validator    *validator.Validator
}

// NewAccountHandler creates a new account handler
func NewAccountHandler(
	userService user.Service,
	quotaService *services.QuotaService,
	exchangeRepo translation.Repository,
	log *logger.Logger,
	val *validator.Validator,
) *AccountHandler {
	return &AccountHandler{
		userService:  userService,
		quotaService: quotaService,
		exchangeRepo: exchangeRepo,
		logger:       log,
		validator:    val,
	}
}

// Limits returns the current quota state without consuming tokens
func (h *AccountHandler) Limits(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r)
	if !ok {
		utils.WriteError(w, errors.Unauthorized("User not authenticated"))
		return
	}

	rem, err := h.quotaService.Snapshot(r.Context(), userID)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	utils.WriteSuccess(w, http.StatusOK, rem)
}

// Stats returns lifetime translation statistics
func (h *AccountHandler) Stats(w http.ResponseWriter, r *http.Request) {
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

	_, stored, err := h.exchangeRepo.ListByUser(r.Context(), userID, 1, 0)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	utils.WriteSuccess(w, http.StatusOK, dto.StatsResponse{
		TotalTranslations: u.Stats.TotalTranslations,
		TotalTokensUsed:   u.Usage.TotalUsed,
		StoredExchanges:   stored,
	})
}

// Upgrade switches the user to the premium tier
func (h *AccountHandler) Upgrade(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r)
	if !ok {
		utils.WriteError(w, errors.Unauthorized("User not authenticated"))
		return
	}

	var req dto.UpgradeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.WriteError(w, errors.BadRequest("Invalid request body"))
		return
	}
	if validationErrs := h.validator.Validate(req); len(validationErrs) > 0 {
		utils.WriteError(w, errors.ValidationError("Validation failed", validationErrs))
		return
	}

	expires := time.Now().AddDate(0, req.Months, 0)
	u, err := h.userService.UpgradeTier(r.Context(), userID, &expires)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	h.logger.WithFields(map[string]interface{}{
		"user_id": userID,
		"months":  req.Months,
	}).Info("Subscription upgraded")

	utils.WriteSuccess(w, http.StatusOK, dto.NewUserDTO(u))
}
