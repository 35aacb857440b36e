package get_available_slots

import "errors"

var (
	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("get_available_slots: invalid input data")

	// ErrDateOutOfWindow дата в прошлом или дальше окна бронирования
	ErrDateOutOfWindow = errors.New("get_available_slots: date is outside the booking window")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("get_available_slots: internal error")
)
