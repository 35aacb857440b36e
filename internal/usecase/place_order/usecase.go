package place_order

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-CafeOrderService/internal/domain"
	"github.com/m04kA/SMC-CafeOrderService/pkg/metrics"
)

// UseCase use case оформления заказа на слот выдачи
type UseCase struct {
	settingsRepo SettingsRepository
	bookingStore BookingStore
	txManager    TransactionManager
	recorder     OutcomeRecorder
	location     *time.Location
	timeout      time.Duration
	timeProvider TimeProvider
	newID        func() string
	logger       Logger
}

// NewUseCase создает новый экземпляр use case
// recorder может быть nil, если метрики выключены
func NewUseCase(
	settingsRepo SettingsRepository,
	bookingStore BookingStore,
	txManager TransactionManager,
	recorder OutcomeRecorder,
	location *time.Location,
	timeout time.Duration,
	logger Logger,
) *UseCase {
	if recorder == nil {
		recorder = nopRecorder{}
	}
	return &UseCase{
		settingsRepo: settingsRepo,
		bookingStore: bookingStore,
		txManager:    txManager,
		recorder:     recorder,
		location:     location,
		timeout:      timeout,
		timeProvider: &RealTimeProvider{},
		newID:        uuid.NewString,
		logger:       logger,
	}
}

// Execute проверяет доступность слота и резервирует его вместе с созданием заказа
// Reserve и CreateOrder выполняются в одной транзакции. Предварительная проверка счетчика
// только подсказка: вместимость гарантирует условный инкремент Reserve, в том числе без транзакций
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	slot := domain.TimeSlot{Date: req.PickupDate, Time: req.PickupTime}
	uc.logger.Info("PlaceOrder: user=%s, slot=%s, items=%d", req.UserID, slot.Key(), len(req.Items))

	// 1. Валидация входных данных
	now := uc.timeProvider.Now()
	if err := validateRequest(req, now, uc.location); err != nil {
		uc.logger.Warn("PlaceOrder: validation failed: %v", err)
		uc.recorder.RecordBookingOutcome(metrics.OutcomeValidation)
		return nil, err
	}

	ctx, cancel := context.WithTimeout(ctx, uc.timeout)
	defer cancel()

	var (
		result   *domain.Order
		reserved bool
	)

	// 2. Проверка и резервирование в одной транзакции
	err := uc.txManager.Do(ctx, func(txCtx context.Context) error {
		reserved = false

		// 2.1. Актуальные настройки (не доверяем тому, что видел клиент)
		settings, err := uc.settingsRepo.Get(txCtx)
		if err != nil && !errors.Is(err, domain.ErrSettingsNotFound) {
			uc.logger.Error("PlaceOrder: failed to get settings: %v", err)
			return fmt.Errorf("%w: failed to get settings: %w", ErrBookingFailed, err)
		}
		if settings == nil {
			settings = domain.DefaultSettings()
			uc.logger.Info("PlaceOrder: settings not created yet, using defaults")
		}

		// 2.2. Заблокированная дата
		if settings.IsBlocked(slot.Date) {
			return fmt.Errorf("%w: %s", ErrDateBlocked, slot.Date)
		}

		// 2.3. Перечитываем счетчик слота
		count, err := uc.bookingStore.GetBookingCount(txCtx, slot)
		if err != nil {
			uc.logger.Error("PlaceOrder: failed to get booking count for %s: %v", slot.Key(), err)
			return fmt.Errorf("%w: failed to get booking count: %w", ErrBookingFailed, err)
		}

		if count >= settings.MaxOrdersPerSlot {
			uc.logger.Warn("PlaceOrder: slot %s not available, %d/%d taken",
				slot.Key(), count, settings.MaxOrdersPerSlot)
			return ErrSlotUnavailable
		}

		// 2.4. Условный инкремент
		if err := uc.bookingStore.Reserve(txCtx, slot, settings.MaxOrdersPerSlot); err != nil {
			if errors.Is(err, domain.ErrSlotFull) {
				uc.logger.Warn("PlaceOrder: slot %s filled concurrently", slot.Key())
				return ErrSlotUnavailable
			}
			uc.logger.Error("PlaceOrder: failed to reserve slot %s: %v", slot.Key(), err)
			return fmt.Errorf("%w: failed to reserve slot: %w", ErrBookingFailed, err)
		}
		reserved = true

		uc.logger.Info("PlaceOrder: slot %s reserved, %d/%d taken",
			slot.Key(), count+1, settings.MaxOrdersPerSlot)

		// 2.5. Заказ
		items := toDomainItems(req.Items)
		order := &domain.Order{
			ID:            uc.newID(),
			Items:         items,
			Total:         domain.CalculateTotal(items),
			PickupDate:    slot.Date,
			PickupTime:    slot.Time,
			UserID:        req.UserID,
			UserEmail:     req.UserEmail,
			PaymentStatus: domain.PaymentPending,
			CreatedAt:     now,
			UpdatedAt:     now,
		}

		created, err := uc.bookingStore.CreateOrder(txCtx, order)
		if err != nil {
			return fmt.Errorf("%w: %w: %w", ErrBookingFailed, errOrderNotCreated, err)
		}

		result = created
		return nil
	})

	if err != nil {
		return nil, uc.classify(err, slot, req.UserID, reserved)
	}

	uc.recorder.RecordBookingOutcome(metrics.OutcomeBooked)
	uc.logger.Info("PlaceOrder: successfully created order id=%s for slot %s", result.ID, slot.Key())

	return &Response{
		OrderID:       result.ID,
		Items:         fromDomainItems(result.Items),
		Total:         result.Total,
		PickupDate:    result.PickupDate,
		PickupTime:    result.PickupTime,
		UserID:        result.UserID,
		UserEmail:     result.UserEmail,
		PaymentStatus: string(result.PaymentStatus),
		CreatedAt:     result.CreatedAt,
	}, nil
}

// classify сводит ошибку транзакции к одной из ошибок use case и пишет метрику
func (uc *UseCase) classify(err error, slot domain.TimeSlot, userID string, reserved bool) error {
	switch {
	case errors.Is(err, ErrValidation):
		uc.logger.Warn("PlaceOrder: validation failed: %v", err)
		uc.recorder.RecordBookingOutcome(metrics.OutcomeValidation)
		return err

	case errors.Is(err, ErrSlotUnavailable):
		uc.recorder.RecordBookingOutcome(metrics.OutcomeSlotUnavailable)
		return err

	case reserved && errors.Is(err, errOrderNotCreated) && !uc.txManager.IsTransactional():
		// Инкремент уже виден другим, заказа нет. Не откатываем: сверка вручную
		uc.logger.Error("PlaceOrder: INCONSISTENT COMMIT slot=%s user=%s: counter incremented, order not persisted: %v",
			slot.Key(), userID, err)
		uc.recorder.RecordBookingOutcome(metrics.OutcomeInconsistent)
		return fmt.Errorf("%w: slot=%s user=%s: %v", ErrInconsistentCommit, slot.Key(), userID, err)

	default:
		uc.logger.Error("PlaceOrder: booking failed for slot %s: %v", slot.Key(), err)
		uc.recorder.RecordBookingOutcome(metrics.OutcomeFailed)
		if errors.Is(err, ErrBookingFailed) {
			return err
		}
		return fmt.Errorf("%w: %v", ErrBookingFailed, err)
	}
}
