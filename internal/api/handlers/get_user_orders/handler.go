package get_user_orders

import (
	"net/http"

	"github.com/m04kA/SMC-CafeOrderService/internal/api/handlers"
	"github.com/m04kA/SMC-CafeOrderService/internal/api/middleware"
)

const msgMissingUserID = "missing user id"

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

// Handle GET /api/v1/users/me/orders
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.logger.Warn("GET /users/me/orders - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	result, err := h.service.GetUserOrders(r.Context(), userID)
	if err != nil {
		h.logger.Error("GET /users/me/orders - Failed to get orders: user_id=%s, error=%v", userID, err)
		handlers.RespondInternalError(w)
		return
	}

	h.logger.Info("GET /users/me/orders - Orders retrieved successfully: user_id=%s, count=%d", userID, result.Total)
	handlers.RespondJSON(w, http.StatusOK, result)
}
