package toggle_blocked_date

import (
	"errors"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-CafeOrderService/internal/api/handlers"
	"github.com/m04kA/SMC-CafeOrderService/internal/api/middleware"
	"github.com/m04kA/SMC-CafeOrderService/internal/domain"
	"github.com/m04kA/SMC-CafeOrderService/internal/service/settings"
	"github.com/m04kA/SMC-CafeOrderService/internal/service/settings/models"
)

const (
	msgInvalidDate   = "invalid date format, expected YYYY-MM-DD"
	msgMissingUserID = "missing user id"
	msgForbidden     = "access denied"
)

type Handler struct {
	service SettingsService
	logger  Logger
}

func NewHandler(service SettingsService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle POST /api/v1/admin/settings/blocked-dates/{date}/toggle
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.logger.Warn("POST /admin/settings/blocked-dates/{date}/toggle - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	dateStr := mux.Vars(r)["date"]
	date, err := domain.ParseCalendarDate(dateStr)
	if err != nil {
		h.logger.Warn("POST /admin/settings/blocked-dates/{date}/toggle - Invalid date: %v", err)
		handlers.RespondBadRequest(w, msgInvalidDate)
		return
	}

	result, err := h.service.ToggleBlockedDate(r.Context(), &models.ToggleBlockedDateRequest{
		UserID: userID,
		Date:   date,
	})
	if err != nil {
		switch {
		case errors.Is(err, settings.ErrAccessDenied):
			h.logger.Warn("POST /admin/settings/blocked-dates/{date}/toggle - Access denied: user_id=%s", userID)
			handlers.RespondForbidden(w, msgForbidden)

		case errors.Is(err, settings.ErrInvalidInput):
			handlers.RespondBadRequest(w, msgInvalidDate)

		default:
			h.logger.Error("POST /admin/settings/blocked-dates/{date}/toggle - Failed to toggle date: date=%s, error=%v",
				dateStr, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /admin/settings/blocked-dates/{date}/toggle - Date toggled: date=%s, blocked=%t, user_id=%s",
		result.Date, result.IsBlocked, userID)
	handlers.RespondJSON(w, http.StatusOK, result)
}
