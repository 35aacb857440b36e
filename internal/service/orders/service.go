package orders

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/SMC-CafeOrderService/internal/domain"
	"github.com/m04kA/SMC-CafeOrderService/internal/service/orders/models"
)

// Service сервис для чтения заказов и смены статуса оплаты
// Заказы создаются только через place_order
type Service struct {
	orderRepo OrderRepository
	admins    AdminChecker
	logger    Logger
}

// NewService создает новый экземпляр сервиса заказов
func NewService(orderRepo OrderRepository, admins AdminChecker, logger Logger) *Service {
	return &Service{
		orderRepo: orderRepo,
		admins:    admins,
		logger:    logger,
	}
}

// GetByID получает заказ по ID
// Пользователь видит только свой заказ, администратор любой
func (s *Service) GetByID(ctx context.Context, id string, userID string) (*models.OrderResponse, error) {
	s.logger.Info("GetByID: fetching order id=%s for user=%s", id, userID)

	order, err := s.orderRepo.GetOrderByID(ctx, id)
	if err != nil {
		if errors.Is(err, domain.ErrOrderNotFound) {
			s.logger.Warn("GetByID: order id=%s not found", id)
			return nil, ErrOrderNotFound
		}
		s.logger.Error("GetByID: repository error for order id=%s: %v", id, err)
		return nil, fmt.Errorf("%w: GetByID - repository error: %v", ErrInternal, err)
	}

	if order.UserID != userID && !s.admins.IsAdmin(userID) {
		s.logger.Warn("GetByID: access denied for user=%s to order id=%s", userID, id)
		return nil, ErrAccessDenied
	}

	return models.FromDomainOrder(order), nil
}

// GetUserOrders получает историю заказов пользователя, новые первыми
func (s *Service) GetUserOrders(ctx context.Context, userID string) (*models.OrderListResponse, error) {
	s.logger.Info("GetUserOrders: fetching orders for user=%s", userID)

	if userID == "" {
		return nil, fmt.Errorf("%w: user is required", ErrInvalidInput)
	}

	orders, err := s.orderRepo.GetOrdersByUser(ctx, userID)
	if err != nil {
		s.logger.Error("GetUserOrders: repository error for user=%s: %v", userID, err)
		return nil, fmt.Errorf("%w: GetUserOrders - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("GetUserOrders: successfully fetched %d orders for user=%s", len(orders), userID)
	return models.FromDomainOrderList(orders), nil
}

// ListByDate заказы на дату выдачи по времени слота
// Доступно только администраторам
func (s *Service) ListByDate(ctx context.Context, req *models.ListByDateRequest) (*models.OrderListResponse, error) {
	s.logger.Info("ListByDate: fetching orders for date=%s, user=%s", req.Date, req.UserID)

	if !s.admins.IsAdmin(req.UserID) {
		s.logger.Warn("ListByDate: user=%s is not an admin", req.UserID)
		return nil, ErrAccessDenied
	}

	if req.Date.IsZero() {
		return nil, fmt.Errorf("%w: date is required", ErrInvalidInput)
	}

	orders, err := s.orderRepo.GetOrdersByDate(ctx, req.Date)
	if err != nil {
		s.logger.Error("ListByDate: repository error for date=%s: %v", req.Date, err)
		return nil, fmt.Errorf("%w: ListByDate - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("ListByDate: successfully fetched %d orders for date=%s", len(orders), req.Date)
	return models.FromDomainOrderList(orders), nil
}

// UpdatePaymentStatus переводит оплату из pending в completed или failed
// Доступно только администраторам; окончательные статусы не меняются
func (s *Service) UpdatePaymentStatus(ctx context.Context, orderID string, req *models.UpdatePaymentStatusRequest) (*models.OrderResponse, error) {
	s.logger.Info("UpdatePaymentStatus: updating order id=%s to status=%s by user=%s",
		orderID, req.Status, req.UserID)

	// Проверяем права доступа
	if !s.admins.IsAdmin(req.UserID) {
		s.logger.Warn("UpdatePaymentStatus: user=%s is not an admin", req.UserID)
		return nil, ErrAccessDenied
	}

	// Валидируем статус
	next, err := models.ToDomainPaymentStatus(req.Status)
	if err != nil {
		s.logger.Warn("UpdatePaymentStatus: invalid status=%s for order id=%s", req.Status, orderID)
		return nil, fmt.Errorf("%w: %q", ErrInvalidStatus, req.Status)
	}

	// Получаем заказ
	order, err := s.orderRepo.GetOrderByID(ctx, orderID)
	if err != nil {
		if errors.Is(err, domain.ErrOrderNotFound) {
			s.logger.Warn("UpdatePaymentStatus: order id=%s not found", orderID)
			return nil, ErrOrderNotFound
		}
		s.logger.Error("UpdatePaymentStatus: repository error for order id=%s: %v", orderID, err)
		return nil, fmt.Errorf("%w: UpdatePaymentStatus - repository error: %v", ErrInternal, err)
	}

	// Проверяем допустимость перехода
	if order.IsPaymentFinal() {
		s.logger.Warn("UpdatePaymentStatus: order id=%s already %s", orderID, order.PaymentStatus)
		return nil, ErrStatusFinal
	}
	if !order.CanTransitionTo(next) {
		return nil, fmt.Errorf("%w: %s -> %s", ErrInvalidStatus, order.PaymentStatus, next)
	}

	// Обновляем статус (условно: если его успели изменить, получим конфликт)
	updated, err := s.orderRepo.UpdatePaymentStatus(ctx, orderID, order.PaymentStatus, next)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrOrderNotFound):
			return nil, ErrOrderNotFound
		case errors.Is(err, domain.ErrPaymentStatusConflict):
			s.logger.Warn("UpdatePaymentStatus: order id=%s changed concurrently", orderID)
			return nil, ErrStatusFinal
		}
		s.logger.Error("UpdatePaymentStatus: repository error for order id=%s: %v", orderID, err)
		return nil, fmt.Errorf("%w: UpdatePaymentStatus - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("UpdatePaymentStatus: successfully updated order id=%s to status=%s", orderID, next)
	return models.FromDomainOrder(updated), nil
}
