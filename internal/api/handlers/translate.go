package handlers

import (
	"io"
	"net/http"
	"time"

	"github.com/voxlate/voxlate/internal/api/dto"
	"github.com/voxlate/voxlate/internal/api/middleware"
	"github.com/voxlate/voxlate/internal/config"
	"github.com/voxlate/voxlate/internal/domain/language"
	"github.com/voxlate/voxlate/internal/domain/translation"
	"github.com/voxlate/voxlate/internal/domain/user"
	"github.com/voxlate/voxlate/internal/pkg/errors"
	"github.com/voxlate/voxlate/internal/pkg/logger"
	"github.com/voxlate/voxlate/internal/pkg/utils"
	"github.com/voxlate/voxlate/internal/services"
)

// TranslateHandler handles voice translation requests
type TranslateHandler struct {
	translationService translation.Service
	userService        user.Service
	quotaService       *services.QuotaService
	sessionService     *services.SessionService
	exchangeRepo       translation.Repository
	config             *config.Config
	logger             *logger.Logger
	now                func() time.Time
}

// NewTranslateHandler creates a new translate handler
func NewTranslateHandler(
	translationService translation.Service,
	userService user.Service,
	quotaService *services.QuotaService,
	sessionService *services.SessionService,
	exchangeRepo translation.Repository,
	cfg *config.Config,
	log *logger.Logger,
) *TranslateHandler {
	return &TranslateHandler{
		translationService: translationService,
		userService:        userService,
		quotaService:       quotaService,
		sessionService:     sessionService,
		exchangeRepo:       exchangeRepo,
		config:             cfg,
		logger:             log,
		now:                time.Now,
	}
}

// Translate accepts a voice message and runs the translation pipeline.
// Premium users get automatic language detection; free users must have
// armed their voice session with a dictation language first, and get
// routed to selection (409) when they have not.
func (h *TranslateHandler) Translate(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r)
	if !ok {
		utils.WriteError(w, errors.Unauthorized("User not authenticated"))
		return
	}
	ctx := r.Context()

	u, err := h.userService.GetByID(ctx, userID)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	audio, appErr := h.readAudio(w, r)
	if appErr != nil {
		utils.WriteError(w, appErr)
		return
	}

	// Quota pre-check with the flat estimate; the actual cost is
	// committed after the pipeline succeeds.
	allowed, rem, err := h.quotaService.CanConsume(ctx, userID, translation.DefaultEstimate)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	if !allowed {
		utils.WriteError(w, errors.QuotaExceeded(rem))
		return
	}

	premium := u.IsPremium(h.now())
	var result *translation.Result

	if premium {
		flags := translation.TierFlags{
			AutoLanguageDetection: h.config.Premium.AutoLanguageDetection,
			BackTranslation:       h.config.Premium.BackTranslation,
		}
		result, err = h.translationService.TranslateAuto(ctx, audio, u.Languages, flags)
	} else if from, to := r.FormValue("from"), r.FormValue("to"); from != "" && to != "" {
		// Explicit direction in the form bypasses the voice session.
		src, perr := language.Parse(from)
		if perr != nil {
			utils.WriteError(w, errors.UnsupportedLanguage(from))
			return
		}
		dst, perr := language.Parse(to)
		if perr != nil {
			utils.WriteError(w, errors.UnsupportedLanguage(to))
			return
		}
		if src == dst {
			utils.WriteError(w, errors.BadRequest("Source and target languages must differ"))
			return
		}
		result, err = h.translationService.TranslateManual(ctx, audio, src, dst)
	} else {
		armed, selected, serr := h.sessionService.IsArmed(ctx, userID)
		if serr != nil {
			writeServiceError(w, serr)
			return
		}
		if !armed {
			// Remember the pending audio intent so the client can route
			// the user to language selection and retry.
			if merr := h.sessionService.MarkAwaiting(ctx, userID); merr != nil {
				writeServiceError(w, merr)
				return
			}
			utils.WriteError(w, errors.SelectionRequired("Select a dictation language before sending voice messages").
				WithDetails(dto.NewLanguagePairDTO(u.Languages)))
			return
		}

		target := u.Languages.Primary
		if selected == u.Languages.Primary {
			target = u.Languages.Secondary
		}
		result, err = h.translationService.TranslateManual(ctx, audio, selected, target)
	}

	// The armed selection is single-use: it is consumed by the attempt,
	// successful or not.
	if cerr := h.sessionService.Clear(ctx, userID); cerr != nil {
		h.logger.ErrorWithErr(cerr, "Failed to clear voice session")
	}

	if err != nil {
		writeServiceError(w, err)
		return
	}

	if err := h.quotaService.Commit(ctx, userID, result.TokensUsed); err != nil {
		h.logger.ErrorWithErr(err, "Failed to commit token usage")
	}

	exchange := &translation.Exchange{
		UserID:          userID,
		OriginalText:    result.OriginalText,
		SourceLanguage:  result.SourceLanguage,
		TranslatedText:  result.TranslatedText,
		TargetLanguage:  result.TargetLanguage,
		BackTranslation: result.BackTranslation,
		DetectionMethod: result.DetectionMethod,
		TokensUsed:      result.TokensUsed,
	}
	if err := h.exchangeRepo.Create(ctx, exchange); err != nil {
		h.logger.ErrorWithErr(err, "Failed to persist exchange")
	}
	if err := h.userService.RecordTranslation(ctx, userID); err != nil {
		h.logger.ErrorWithErr(err, "Failed to record translation stats")
	}

	utils.WriteSuccess(w, http.StatusOK, dto.NewTranslateResponse(exchange.ID, result))
}

// History returns the user's translation history, newest first
func (h *TranslateHandler) History(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r)
	if !ok {
		utils.WriteError(w, errors.Unauthorized("User not authenticated"))
		return
	}

	params := utils.ParsePaginationParams(r)
	exchanges, total, err := h.exchangeRepo.ListByUser(r.Context(), userID, params.PageSize, params.Offset)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	items := make([]*dto.ExchangeDTO, 0, len(exchanges))
	for _, e := range exchanges {
		items = append(items, dto.NewExchangeDTO(e))
	}

	utils.WriteSuccess(w, http.StatusOK,
		utils.NewPaginatedResponse(items, params.Page, params.PageSize, total))
}

func (h *TranslateHandler) readAudio(w http.ResponseWriter, r *http.Request) ([]byte, *errors.AppError) {
	r.Body = http.MaxBytesReader(w, r.Body, h.config.Server.MaxAudioBytes)

	if err := r.ParseMultipartForm(h.config.Server.MaxAudioBytes); err != nil {
		return nil, errors.BadRequest("Audio upload too large or malformed")
	}

	file, _, err := r.FormFile("audio")
	if err != nil {
		return nil, errors.BadRequest("Missing audio file field")
	}
	defer file.Close()

	audio, err := io.ReadAll(file)
	if err != nil {
		return nil, errors.BadRequest("Failed to read audio upload")
	}
	if len(audio) == 0 {
		return nil, errors.BadRequest("Empty audio upload")
	}
	return audio, nil
}
