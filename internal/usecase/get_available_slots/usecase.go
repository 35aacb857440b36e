package get_available_slots

import (
	"context"
	"fmt"
	"time"

	"github.com/m04kA/SMC-CafeOrderService/internal/slots"
)

// UseCase use case для получения доступных слотов выдачи
type UseCase struct {
	settings     SettingsProvider
	counter      BookingCounter
	location     *time.Location
	timeProvider TimeProvider
	logger       Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	settings SettingsProvider,
	counter BookingCounter,
	location *time.Location,
	logger Logger,
) *UseCase {
	return &UseCase{
		settings:     settings,
		counter:      counter,
		location:     location,
		timeProvider: &RealTimeProvider{},
		logger:       logger,
	}
}

// Execute выполняет use case получения доступных слотов
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("GetAvailableSlots: date=%s", req.Date)

	// 1. Получаем текущее время
	now := uc.timeProvider.Now()

	// 2. Валидация входных данных
	if err := validateRequest(req, now, uc.location); err != nil {
		uc.logger.Warn("GetAvailableSlots: validation failed: %v", err)
		return nil, err
	}

	// 3. Получаем настройки
	settings, err := uc.settings.Get(ctx)
	if err != nil {
		uc.logger.Error("GetAvailableSlots: failed to get settings: %v", err)
		return nil, fmt.Errorf("%w: failed to get settings: %v", ErrInternal, err)
	}

	// 4. Генерируем слоты с учетом времени на подготовку
	generated := slots.GenerateSlots(req.Date, now, uc.location)

	// 5. Заблокированная дата: слоты показываем, но выбрать нельзя. Счетчики не нужны
	isBlocked := !slots.IsDateSelectable(req.Date, settings.BlockedDates)

	counts := map[string]int{}
	if !isBlocked && len(generated) > 0 {
		counts, err = uc.counter.GetBookingCounts(ctx, req.Date)
		if err != nil {
			uc.logger.Error("GetAvailableSlots: failed to get booking counts: %v", err)
			return nil, fmt.Errorf("%w: failed to get booking counts: %v", ErrInternal, err)
		}
	}

	// 6. Вычисляем доступность для каждого слота
	availability := slots.Availability(req.Date, generated, settings, counts)

	result := make([]Slot, len(availability))
	selectable := 0
	for i, a := range availability {
		result[i] = Slot{
			Time:         a.Slot.Time,
			IsSelectable: a.IsSelectable,
			Booked:       a.Booked,
			Remaining:    a.Remaining,
		}
		if a.IsSelectable {
			selectable++
		}
	}

	uc.logger.Info("GetAvailableSlots: generated %d slots (%d selectable) for date=%s",
		len(result), selectable, req.Date)

	return &Response{
		Date:             req.Date,
		IsBlocked:        isBlocked,
		MaxOrdersPerSlot: settings.MaxOrdersPerSlot,
		Slots:            result,
	}, nil
}
