package get_available_dates

import (
	"context"
	"fmt"
	"time"

	"github.com/m04kA/SMC-CafeOrderService/internal/domain"
	"github.com/m04kA/SMC-CafeOrderService/internal/slots"
)

// UseCase use case для получения дат, доступных для выдачи заказа
type UseCase struct {
	settings     SettingsProvider
	location     *time.Location
	timeProvider TimeProvider
	logger       Logger
}

func NewUseCase(settings SettingsProvider, location *time.Location, logger Logger) *UseCase {
	return &UseCase{
		settings:     settings,
		location:     location,
		timeProvider: &RealTimeProvider{},
		logger:       logger,
	}
}

// Execute возвращает окно бронирования; заблокированные даты помечаются невыбираемыми
// Сегодня остается в окне, даже если все слоты уже прошли
func (uc *UseCase) Execute(ctx context.Context) (*Response, error) {
	settings, err := uc.settings.Get(ctx)
	if err != nil {
		uc.logger.Error("GetAvailableDates: failed to get settings: %v", err)
		return nil, fmt.Errorf("%w: failed to get settings: %v", ErrInternal, err)
	}

	now := uc.timeProvider.Now()
	window := slots.WindowDates(now, uc.location)

	dates := make([]domain.AvailableDate, len(window))
	for i, d := range window {
		dates[i] = domain.AvailableDate{
			Date:         d,
			IsSelectable: slots.IsDateSelectable(d, settings.BlockedDates),
			IsToday:      i == 0,
		}
	}

	uc.logger.Info("GetAvailableDates: %s..%s, %d blocked dates configured",
		window[0], window[len(window)-1], len(settings.BlockedDates))

	return &Response{Dates: dates}, nil
}
