package place_order

import (
	"context"
	"time"

	"github.com/m04kA/SMC-CafeOrderService/internal/domain"
)

// SettingsRepository интерфейс репозитория настроек
type SettingsRepository interface {
	Get(ctx context.Context) (*domain.Settings, error)
}

// BookingStore счетчики слотов и заказы
// Reserve должен быть атомарным условным инкрементом (domain.ErrSlotFull при count >= max)
type BookingStore interface {
	GetBookingCount(ctx context.Context, slot domain.TimeSlot) (int, error)
	Reserve(ctx context.Context, slot domain.TimeSlot, maxOrdersPerSlot int) error
	CreateOrder(ctx context.Context, order *domain.Order) (*domain.Order, error)
}

// TransactionManager интерфейс для управления транзакциями
// IsTransactional = false означает, что Reserve и CreateOrder фиксируются независимо
type TransactionManager interface {
	Do(ctx context.Context, fn func(ctx context.Context) error) error
	IsTransactional() bool
}

// OutcomeRecorder метрики исходов оформления заказа
type OutcomeRecorder interface {
	RecordBookingOutcome(outcome string)
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

type nopRecorder struct{}

func (nopRecorder) RecordBookingOutcome(string) {}
