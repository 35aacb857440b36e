package place_order

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-CafeOrderService/internal/api/handlers"
	"github.com/m04kA/SMC-CafeOrderService/internal/api/middleware"
	placeOrder "github.com/m04kA/SMC-CafeOrderService/internal/usecase/place_order"
)

const (
	msgInvalidRequestBody = "invalid request body"
	msgInvalidPickup      = "invalid pickup date or time, expected YYYY-MM-DD and HH:MM"
	msgMissingUserID      = "missing user id"
	msgEmptyCart          = "your cart is empty"
	msgInvalidItems       = "cart contains invalid items"
	msgInvalidSlot        = "selected time is not a collection slot"
	msgDateOutOfWindow    = "selected date is not available for collection"
	msgDateBlocked        = "the café is closed for collections on this date"
	msgTooLateToBook      = "this collection time is too soon, please choose a later slot"
	msgInvalidOrder       = "invalid order"
	msgSlotUnavailable    = "this time slot is no longer available, please choose another"
	msgBookingFailed      = "we could not place your order, please try again"
)

type Handler struct {
	useCase PlaceOrderUseCase
	logger  Logger
}

func NewHandler(useCase PlaceOrderUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/orders
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.logger.Warn("POST /orders - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	var req PlaceOrderRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /orders - Invalid request body: user_id=%s, error=%v", userID, err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	useCaseReq, err := req.ToUseCaseRequest(userID, middleware.GetUserEmail(r.Context()))
	if err != nil {
		h.logger.Warn("POST /orders - Failed to parse pickup: user_id=%s, error=%v", userID, err)
		handlers.RespondBadRequest(w, msgInvalidPickup)
		return
	}

	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		switch {
		case errors.Is(err, placeOrder.ErrValidation):
			h.logger.Warn("POST /orders - Validation failed: user_id=%s, error=%v", userID, err)
			handlers.RespondBadRequest(w, validationMessage(err))

		case errors.Is(err, placeOrder.ErrSlotUnavailable):
			h.logger.Warn("POST /orders - Slot unavailable: user_id=%s, slot=%s %s",
				userID, req.PickupDate, req.PickupTime)
			handlers.RespondConflict(w, msgSlotUnavailable)

		case errors.Is(err, placeOrder.ErrBookingFailed):
			h.logger.Error("POST /orders - Booking failed: user_id=%s, slot=%s %s, error=%v",
				userID, req.PickupDate, req.PickupTime, err)
			handlers.RespondServiceUnavailable(w, msgBookingFailed)

		default:
			h.logger.Error("POST /orders - Failed to place order: user_id=%s, error=%v", userID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /orders - Order placed successfully: order_id=%s, user_id=%s, slot=%s %s",
		result.OrderID, userID, result.PickupDate, result.PickupTime)
	handlers.RespondJSON(w, http.StatusCreated, FromUseCaseResponse(result))
}

func validationMessage(err error) string {
	switch {
	case errors.Is(err, placeOrder.ErrEmptyCart):
		return msgEmptyCart
	case errors.Is(err, placeOrder.ErrTooManyItems), errors.Is(err, placeOrder.ErrInvalidItem):
		return msgInvalidItems
	case errors.Is(err, placeOrder.ErrInvalidSlot):
		return msgInvalidSlot
	case errors.Is(err, placeOrder.ErrDateOutOfWindow):
		return msgDateOutOfWindow
	case errors.Is(err, placeOrder.ErrDateBlocked):
		return msgDateBlocked
	case errors.Is(err, placeOrder.ErrTooLateToBook):
		return msgTooLateToBook
	default:
		return msgInvalidOrder
	}
}
