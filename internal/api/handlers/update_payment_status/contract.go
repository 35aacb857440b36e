package update_payment_status

import (
	"context"

	"github.com/m04kA/SMC-CafeOrderService/internal/service/orders/models"
)

type OrderService interface {
	UpdatePaymentStatus(ctx context.Context, orderID string, req *models.UpdatePaymentStatusRequest) (*models.OrderResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
