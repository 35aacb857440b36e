package get_available_slots

import (
	"context"
	"time"

	"github.com/m04kA/SMC-CafeOrderService/internal/domain"
)

// SettingsProvider настройки (создаются с дефолтными значениями при первом чтении)
type SettingsProvider interface {
	Get(ctx context.Context) (*domain.Settings, error)
}

// BookingCounter счетчики слотов
type BookingCounter interface {
	// GetBookingCounts возвращает счетчики слотов даты, ключ - TimeSlot.Key
	GetBookingCounts(ctx context.Context, date domain.CalendarDate) (map[string]int, error)
}

// TimeProvider интерфейс для получения текущего времени (для тестирования)
type TimeProvider interface {
	Now() time.Time
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// RealTimeProvider реальный провайдер времени для production
type RealTimeProvider struct{}

// Now возвращает текущее время
func (p *RealTimeProvider) Now() time.Time {
	return time.Now()
}
