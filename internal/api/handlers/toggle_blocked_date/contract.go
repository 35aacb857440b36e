package toggle_blocked_date

import (
	"context"

	"github.com/m04kA/SMC-CafeOrderService/internal/service/settings/models"
)

type SettingsService interface {
	ToggleBlockedDate(ctx context.Context, req *models.ToggleBlockedDateRequest) (*models.ToggleBlockedDateResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
