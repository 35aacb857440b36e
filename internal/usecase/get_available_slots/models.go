package get_available_slots

import (
	"github.com/m04kA/SMC-CafeOrderService/internal/domain"
	"github.com/m04kA/SMC-CafeOrderService/pkg/types"
)

// Request модель запроса на получение доступных слотов
type Request struct {
	Date domain.CalendarDate
}

// Response модель ответа со списком слотов даты
// Доступность - подсказка для UI; окончательная проверка выполняется при оформлении заказа
type Response struct {
	Date             domain.CalendarDate
	IsBlocked        bool
	MaxOrdersPerSlot int
	Slots            []Slot
}

// Slot модель временного слота
type Slot struct {
	Time         types.TimeString // Время выдачи (например, "10:45")
	IsSelectable bool
	Booked       int // Количество заказов на слот
	Remaining    int // Количество свободных мест
}
