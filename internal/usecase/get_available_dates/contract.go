package get_available_dates

import (
	"context"
	"time"

	"github.com/m04kA/SMC-CafeOrderService/internal/domain"
)

// SettingsProvider настройки (создаются с дефолтными значениями при первом чтении)
type SettingsProvider interface {
	Get(ctx context.Context) (*domain.Settings, error)
}

// TimeProvider интерфейс для получения текущего времени (для тестирования)
type TimeProvider interface {
	Now() time.Time
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// RealTimeProvider реальный провайдер времени для production
type RealTimeProvider struct{}

func (p *RealTimeProvider) Now() time.Time {
	return time.Now()
}
