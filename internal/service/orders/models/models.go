package models

import (
	"errors"
	"time"

	"github.com/m04kA/SMC-CafeOrderService/internal/domain"
)

var (
	// ErrInvalidStatus возвращается при некорректном статусе оплаты
	ErrInvalidStatus = errors.New("invalid payment status")
)

// Request модели

// UpdatePaymentStatusRequest запрос на изменение статуса оплаты
type UpdatePaymentStatusRequest struct {
	UserID string `json:"-"`
	Status string `json:"paymentStatus"`
}

// ListByDateRequest запрос заказов на дату выдачи (для кухни)
type ListByDateRequest struct {
	UserID string
	Date   domain.CalendarDate
}

// Response модели

// OrderItemResponse позиция заказа
type OrderItemResponse struct {
	ProductID string  `json:"productId,omitempty"`
	Name      string  `json:"name"`
	Price     float64 `json:"price"`
	Quantity  int     `json:"quantity"`
}

// OrderResponse ответ с данными заказа
type OrderResponse struct {
	ID            string              `json:"id"`
	Items         []OrderItemResponse `json:"items"`
	Total         float64             `json:"total"`
	PickupDate    string              `json:"pickupDate"` // "2024-06-01"
	PickupTime    string              `json:"pickupTime"` // "11:00"
	UserID        string              `json:"userId"`
	UserEmail     string              `json:"userEmail,omitempty"`
	PaymentStatus string              `json:"paymentStatus"`
	CreatedAt     time.Time           `json:"createdAt"`
}

// OrderListResponse список заказов
type OrderListResponse struct {
	Orders []OrderResponse `json:"orders"`
	Total  int             `json:"total"`
}

// Конвертеры

// ToDomainPaymentStatus конвертирует строку в domain.PaymentStatus
func ToDomainPaymentStatus(status string) (domain.PaymentStatus, error) {
	s := domain.PaymentStatus(status)
	if !s.IsValid() {
		return "", ErrInvalidStatus
	}
	return s, nil
}

// FromDomainOrder конвертирует domain.Order в OrderResponse
func FromDomainOrder(o *domain.Order) *OrderResponse {
	items := make([]OrderItemResponse, len(o.Items))
	for i, item := range o.Items {
		items[i] = OrderItemResponse{
			ProductID: item.ProductID,
			Name:      item.Name,
			Price:     item.Price,
			Quantity:  item.Quantity,
		}
	}

	return &OrderResponse{
		ID:            o.ID,
		Items:         items,
		Total:         o.Total,
		PickupDate:    o.PickupDate.String(),
		PickupTime:    o.PickupTime.String(),
		UserID:        o.UserID,
		UserEmail:     o.UserEmail,
		PaymentStatus: string(o.PaymentStatus),
		CreatedAt:     o.CreatedAt,
	}
}

// FromDomainOrderList конвертирует список заказов
func FromDomainOrderList(orders []*domain.Order) *OrderListResponse {
	result := make([]OrderResponse, len(orders))
	for i, o := range orders {
		result[i] = *FromDomainOrder(o)
	}
	return &OrderListResponse{Orders: result, Total: len(result)}
}
