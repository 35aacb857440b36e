package update_payment_status

import (
	"errors"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-CafeOrderService/internal/api/handlers"
	"github.com/m04kA/SMC-CafeOrderService/internal/api/middleware"
	"github.com/m04kA/SMC-CafeOrderService/internal/service/orders"
	"github.com/m04kA/SMC-CafeOrderService/internal/service/orders/models"
)

const (
	msgInvalidRequestBody = "invalid request body"
	msgMissingUserID      = "missing user id"
	msgNotFound           = "order not found"
	msgForbidden          = "access denied"
	msgInvalidStatus      = "paymentStatus must be completed or failed"
	msgStatusFinal        = "payment status is already final"
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

// Handle PATCH /api/v1/admin/orders/{orderId}/payment-status
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	orderID := mux.Vars(r)["orderId"]

	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.logger.Warn("PATCH /admin/orders/{id}/payment-status - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	var req models.UpdatePaymentStatusRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PATCH /admin/orders/{id}/payment-status - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}
	req.UserID = userID

	result, err := h.service.UpdatePaymentStatus(r.Context(), orderID, &req)
	if err != nil {
		switch {
		case errors.Is(err, orders.ErrAccessDenied):
			h.logger.Warn("PATCH /admin/orders/{id}/payment-status - Access denied: user_id=%s", userID)
			handlers.RespondForbidden(w, msgForbidden)

		case errors.Is(err, orders.ErrOrderNotFound):
			h.logger.Warn("PATCH /admin/orders/{id}/payment-status - Order not found: order_id=%s", orderID)
			handlers.RespondNotFound(w, msgNotFound)

		case errors.Is(err, orders.ErrInvalidStatus):
			h.logger.Warn("PATCH /admin/orders/{id}/payment-status - Invalid status: order_id=%s, status=%s",
				orderID, req.Status)
			handlers.RespondBadRequest(w, msgInvalidStatus)

		case errors.Is(err, orders.ErrStatusFinal):
			h.logger.Warn("PATCH /admin/orders/{id}/payment-status - Status final: order_id=%s", orderID)
			handlers.RespondConflict(w, msgStatusFinal)

		default:
			h.logger.Error("PATCH /admin/orders/{id}/payment-status - Failed to update: order_id=%s, error=%v",
				orderID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("PATCH /admin/orders/{id}/payment-status - Status updated: order_id=%s, status=%s",
		orderID, result.PaymentStatus)
	handlers.RespondJSON(w, http.StatusOK, result)
}
