package domain

import (
	"math"
	"time"

	"github.com/m04kA/SMC-CafeOrderService/pkg/types"
)

// PaymentStatus represents the payment state of an order
type PaymentStatus string

const (
	PaymentPending   PaymentStatus = "pending"
	PaymentCompleted PaymentStatus = "completed"
	PaymentFailed    PaymentStatus = "failed"
)

// IsValid returns true for a known status
func (s PaymentStatus) IsValid() bool {
	switch s {
	case PaymentPending, PaymentCompleted, PaymentFailed:
		return true
	}
	return false
}

// OrderItem is one cart line denormalized into the order
type OrderItem struct {
	ProductID string
	Name      string
	Price     float64
	Quantity  int
}

// Subtotal returns price * quantity
func (i OrderItem) Subtotal() float64 {
	return i.Price * float64(i.Quantity)
}

// Order is created only after a successful slot reservation and is immutable
// thereafter except for PaymentStatus.
type Order struct {
	ID            string
	Items         []OrderItem
	Total         float64
	PickupDate    CalendarDate
	PickupTime    types.TimeString
	UserID        string
	UserEmail     string
	PaymentStatus PaymentStatus
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// Slot returns the collection slot reserved by the order
func (o *Order) Slot() TimeSlot {
	return TimeSlot{Date: o.PickupDate, Time: o.PickupTime}
}

// CanTransitionTo returns true if payment status may move to next.
// Only pending orders can change; completed and failed are terminal.
func (o *Order) CanTransitionTo(next PaymentStatus) bool {
	if o.PaymentStatus != PaymentPending {
		return false
	}
	return next == PaymentCompleted || next == PaymentFailed
}

// IsPaymentFinal returns true when payment status is terminal
func (o *Order) IsPaymentFinal() bool {
	return o.PaymentStatus == PaymentCompleted || o.PaymentStatus == PaymentFailed
}

// CalculateTotal sums item subtotals rounded to cents
func CalculateTotal(items []OrderItem) float64 {
	var total float64
	for _, item := range items {
		total += item.Subtotal()
	}
	return math.Round(total*100) / 100
}
