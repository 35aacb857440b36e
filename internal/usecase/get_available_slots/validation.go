package get_available_slots

import (
	"fmt"
	"time"

	"github.com/m04kA/SMC-CafeOrderService/internal/slots"
)

// validateRequest валидирует входные данные запроса
func validateRequest(req *Request, now time.Time, loc *time.Location) error {
	// Проверяем, что дата указана
	if req.Date.IsZero() {
		return fmt.Errorf("%w: date is required", ErrInvalidInput)
	}

	// Дата должна попадать в окно [сегодня, сегодня+13]
	if !slots.InWindow(req.Date, now, loc) {
		return fmt.Errorf("%w: %s", ErrDateOutOfWindow, req.Date)
	}

	return nil
}
