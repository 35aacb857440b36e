package orders

import (
	"context"

	"github.com/m04kA/SMC-CafeOrderService/internal/domain"
)

// OrderRepository интерфейс репозитория заказов
type OrderRepository interface {
	GetOrderByID(ctx context.Context, id string) (*domain.Order, error)
	GetOrdersByUser(ctx context.Context, userID string) ([]*domain.Order, error)
	GetOrdersByDate(ctx context.Context, date domain.CalendarDate) ([]*domain.Order, error)
	// UpdatePaymentStatus меняет статус, только если текущий равен from
	UpdatePaymentStatus(ctx context.Context, id string, from, to domain.PaymentStatus) (*domain.Order, error)
}

// AdminChecker проверка прав администратора
type AdminChecker interface {
	IsAdmin(userID string) bool
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
