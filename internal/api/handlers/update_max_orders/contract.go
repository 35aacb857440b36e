package update_max_orders

import (
	"context"

	"github.com/m04kA/SMC-CafeOrderService/internal/service/settings/models"
)

type SettingsService interface {
	UpdateMaxOrdersPerSlot(ctx context.Context, req *models.UpdateMaxOrdersRequest) (*models.SettingsResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
