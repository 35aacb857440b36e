package orders

import "errors"

var (
	// ErrOrderNotFound возвращается, когда заказ не найден
	ErrOrderNotFound = errors.New("orders: order not found")

	// ErrAccessDenied возвращается, когда у пользователя нет прав доступа
	ErrAccessDenied = errors.New("orders: access denied")

	// ErrInvalidStatus возвращается при попытке установить недопустимый статус оплаты
	ErrInvalidStatus = errors.New("orders: invalid payment status")

	// ErrStatusFinal возвращается, когда статус оплаты уже окончательный
	ErrStatusFinal = errors.New("orders: payment status is final")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("orders: invalid input data")

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("orders: internal error")
)
