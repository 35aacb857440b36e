package place_order

import (
	"time"

	"github.com/m04kA/SMC-CafeOrderService/internal/domain"
	"github.com/m04kA/SMC-CafeOrderService/pkg/types"
)

// Request входные данные для оформления заказа
type Request struct {
	UserID     string
	UserEmail  string
	PickupDate domain.CalendarDate
	PickupTime types.TimeString
	Items      []Item
}

// Item позиция корзины
type Item struct {
	ProductID string
	Name      string
	Price     float64
	Quantity  int
}

// Response созданный заказ
type Response struct {
	OrderID       string
	Items         []Item
	Total         float64
	PickupDate    domain.CalendarDate
	PickupTime    types.TimeString
	UserID        string
	UserEmail     string
	PaymentStatus string
	CreatedAt     time.Time
}
