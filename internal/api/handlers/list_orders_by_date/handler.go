package list_orders_by_date

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-CafeOrderService/internal/api/handlers"
	"github.com/m04kA/SMC-CafeOrderService/internal/api/middleware"
	"github.com/m04kA/SMC-CafeOrderService/internal/domain"
	"github.com/m04kA/SMC-CafeOrderService/internal/service/orders"
	"github.com/m04kA/SMC-CafeOrderService/internal/service/orders/models"
)

const (
	msgMissingDate   = "date is required"
	msgInvalidDate   = "invalid date format, expected YYYY-MM-DD"
	msgMissingUserID = "missing user id"
	msgForbidden     = "access denied"
)

type Handler struct {
	service OrderService
	logger  Logger
}

func NewHandler(service OrderService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle GET /api/v1/admin/orders?date=YYYY-MM-DD
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.logger.Warn("GET /admin/orders - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	dateStr := r.URL.Query().Get("date")
	if dateStr == "" {
		handlers.RespondBadRequest(w, msgMissingDate)
		return
	}
	date, err := domain.ParseCalendarDate(dateStr)
	if err != nil {
		h.logger.Warn("GET /admin/orders - Invalid date: %v", err)
		handlers.RespondBadRequest(w, msgInvalidDate)
		return
	}

	result, err := h.service.ListByDate(r.Context(), &models.ListByDateRequest{UserID: userID, Date: date})
	if err != nil {
		switch {
		case errors.Is(err, orders.ErrAccessDenied):
			h.logger.Warn("GET /admin/orders - Access denied: user_id=%s", userID)
			handlers.RespondForbidden(w, msgForbidden)

		case errors.Is(err, orders.ErrInvalidInput):
			handlers.RespondBadRequest(w, msgInvalidDate)

		default:
			h.logger.Error("GET /admin/orders - Failed to list orders: date=%s, error=%v", dateStr, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /admin/orders - Orders retrieved successfully: date=%s, count=%d", dateStr, result.Total)
	handlers.RespondJSON(w, http.StatusOK, result)
}
