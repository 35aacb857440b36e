package place_order

import (
	"time"

	"github.com/m04kA/SMC-CafeOrderService/internal/domain"
	placeOrder "github.com/m04kA/SMC-CafeOrderService/internal/usecase/place_order"
	"github.com/m04kA/SMC-CafeOrderService/pkg/types"
)

// PlaceOrderRequest HTTP request model
type PlaceOrderRequest struct {
	PickupDate string        `json:"pickupDate"` // "2024-06-01"
	PickupTime string        `json:"pickupTime"` // "11:00"
	Items      []ItemRequest `json:"items"`
}

type ItemRequest struct {
	ProductID string  `json:"productId,omitempty"`
	Name      string  `json:"name"`
	Price     float64 `json:"price"`
	Quantity  int     `json:"quantity"`
}

// OrderResponse HTTP response model
type OrderResponse struct {
	ID            string        `json:"id"`
	Items         []ItemRequest `json:"items"`
	Total         float64       `json:"total"`
	PickupDate    string        `json:"pickupDate"`
	PickupTime    string        `json:"pickupTime"`
	UserID        string        `json:"userId"`
	UserEmail     string        `json:"userEmail,omitempty"`
	PaymentStatus string        `json:"paymentStatus"`
	CreatedAt     string        `json:"createdAt"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case (с парсингом даты и времени)
func (r *PlaceOrderRequest) ToUseCaseRequest(userID, email string) (*placeOrder.Request, error) {
	date, err := domain.ParseCalendarDate(r.PickupDate)
	if err != nil {
		return nil, err
	}
	pickupTime, err := types.NewTimeStringFromString(r.PickupTime)
	if err != nil {
		return nil, err
	}

	items := make([]placeOrder.Item, 0, len(r.Items))
	for _, it := range r.Items {
		items = append(items, placeOrder.Item{
			ProductID: it.ProductID,
			Name:      it.Name,
			Price:     it.Price,
			Quantity:  it.Quantity,
		})
	}

	return &placeOrder.Request{
		UserID:     userID,
		UserEmail:  email,
		PickupDate: date,
		PickupTime: pickupTime,
		Items:      items,
	}, nil
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *placeOrder.Response) *OrderResponse {
	items := make([]ItemRequest, 0, len(resp.Items))
	for _, it := range resp.Items {
		items = append(items, ItemRequest{
			ProductID: it.ProductID,
			Name:      it.Name,
			Price:     it.Price,
			Quantity:  it.Quantity,
		})
	}
	return &OrderResponse{
		ID:            resp.OrderID,
		Items:         items,
		Total:         resp.Total,
		PickupDate:    resp.PickupDate.String(),
		PickupTime:    resp.PickupTime.String(),
		UserID:        resp.UserID,
		UserEmail:     resp.UserEmail,
		PaymentStatus: resp.PaymentStatus,
		CreatedAt:     resp.CreatedAt.Format(time.RFC3339),
	}
}
