package get_available_dates

import "github.com/m04kA/SMC-CafeOrderService/internal/domain"

// Response окно бронирования: 14 дней начиная с сегодняшнего
type Response struct {
	Dates []domain.AvailableDate
}
