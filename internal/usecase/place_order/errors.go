package place_order

import (
	"errors"
	"fmt"
)

var (
	// ErrValidation базовая ошибка валидации: запрос отклонён до обращения к счетчикам слотов
	ErrValidation = errors.New("place_order: validation failed")

	// ErrSlotUnavailable слот заполнен; пользователь должен выбрать другой слот, корзина сохраняется
	ErrSlotUnavailable = errors.New("place_order: slot is not available")

	// ErrBookingFailed временный сбой хранилища; повторить можно с той же корзиной и слотом
	ErrBookingFailed = errors.New("place_order: booking failed, please try again")

	// ErrInconsistentCommit инкремент слота зафиксирован, а заказ нет. Требует ручной сверки
	ErrInconsistentCommit = fmt.Errorf("%w: slot reserved without order", ErrBookingFailed)
)

// Ошибки валидации
var (
	ErrMissingUser     = fmt.Errorf("%w: user is required", ErrValidation)
	ErrEmptyCart       = fmt.Errorf("%w: cart is empty", ErrValidation)
	ErrTooManyItems    = fmt.Errorf("%w: too many items", ErrValidation)
	ErrInvalidItem     = fmt.Errorf("%w: invalid item", ErrValidation)
	ErrInvalidSlot     = fmt.Errorf("%w: time is not a collection slot", ErrValidation)
	ErrDateOutOfWindow = fmt.Errorf("%w: date is outside the booking window", ErrValidation)
	ErrDateBlocked     = fmt.Errorf("%w: date is blocked", ErrValidation)
	ErrTooLateToBook   = fmt.Errorf("%w: slot is within the lead time", ErrValidation)
)

// errOrderNotCreated слот уже зарезервирован, заказ не записан
var errOrderNotCreated = errors.New("place_order: order not created")
