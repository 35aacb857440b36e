package list_orders_by_date

import (
	"context"

	"github.com/m04kA/SMC-CafeOrderService/internal/service/orders/models"
)

type OrderService interface {
	ListByDate(ctx context.Context, req *models.ListByDateRequest) (*models.OrderListResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
