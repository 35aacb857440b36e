package place_order

import (
	"fmt"
	"math"
	"time"

	"github.com/m04kA/SMC-CafeOrderService/internal/domain"
	"github.com/m04kA/SMC-CafeOrderService/internal/slots"
)

// validateRequest проверяет запрос без обращения к хранилищу
func validateRequest(req *Request, now time.Time, loc *time.Location) error {
	if req.UserID == "" {
		return ErrMissingUser
	}

	if len(req.UserEmail) > domain.MaxEmailLength {
		return fmt.Errorf("%w: email is too long", ErrMissingUser)
	}

	if err := validateItems(req.Items); err != nil {
		return err
	}

	if req.PickupDate.IsZero() {
		return fmt.Errorf("%w: pickup date is required", ErrDateOutOfWindow)
	}

	if !slots.IsOnGrid(req.PickupTime) {
		return fmt.Errorf("%w: %q", ErrInvalidSlot, string(req.PickupTime))
	}

	if !slots.InWindow(req.PickupDate, now, loc) {
		return fmt.Errorf("%w: %s", ErrDateOutOfWindow, req.PickupDate)
	}

	slot := domain.TimeSlot{Date: req.PickupDate, Time: req.PickupTime}
	if !slots.PassesLeadTime(slot, now, loc) {
		return fmt.Errorf("%w: %s", ErrTooLateToBook, slot.Key())
	}

	return nil
}

// validateItems проверяет позиции корзины
func validateItems(items []Item) error {
	if len(items) == 0 {
		return ErrEmptyCart
	}

	if len(items) > domain.MaxItemsPerOrder {
		return fmt.Errorf("%w: at most %d lines", ErrTooManyItems, domain.MaxItemsPerOrder)
	}

	for i, item := range items {
		if item.Name == "" {
			return fmt.Errorf("%w: line %d has no name", ErrInvalidItem, i)
		}
		if item.Quantity <= 0 || item.Quantity > domain.MaxQuantityPerItem {
			return fmt.Errorf("%w: line %d quantity must be in 1..%d", ErrInvalidItem, i, domain.MaxQuantityPerItem)
		}
		if item.Price < 0 || math.IsNaN(item.Price) || math.IsInf(item.Price, 0) {
			return fmt.Errorf("%w: line %d price must be non-negative", ErrInvalidItem, i)
		}
	}

	return nil
}

func toDomainItems(items []Item) []domain.OrderItem {
	result := make([]domain.OrderItem, len(items))
	for i, item := range items {
		result[i] = domain.OrderItem{
			ProductID: item.ProductID,
			Name:      item.Name,
			Price:     item.Price,
			Quantity:  item.Quantity,
		}
	}
	return result
}

func fromDomainItems(items []domain.OrderItem) []Item {
	result := make([]Item, len(items))
	for i, item := range items {
		result[i] = Item{
			ProductID: item.ProductID,
			Name:      item.Name,
			Price:     item.Price,
			Quantity:  item.Quantity,
		}
	}
	return result
}
