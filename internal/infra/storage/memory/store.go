package memory

import (
	"context"
	"sort"
	"strings"
	"sync"

	"github.com/m04kA/SMC-CafeOrderService/internal/domain"
)

// Store in-memory реализация хранилища настроек, счетчиков слотов и заказов
// Используется драйвером storage.driver = "memory" и в тестах
// Каждая операция атомарна; между операциями транзакций нет
type Store struct {
	mu       sync.RWMutex
	settings *domain.Settings
	counts   map[string]int
	orders   map[string]*domain.Order
	sequence []string // id заказов в порядке создания
}

// NewStore создает пустое хранилище
func NewStore() *Store {
	return &Store{
		counts: make(map[string]int),
		orders: make(map[string]*domain.Order),
	}
}

// Get возвращает копию настроек или domain.ErrSettingsNotFound
func (s *Store) Get(ctx context.Context) (*domain.Settings, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.settings == nil {
		return nil, domain.ErrSettingsNotFound
	}
	return s.settings.Clone(), nil
}

// Save сохраняет настройки (last writer wins)
func (s *Store) Save(ctx context.Context, settings *domain.Settings) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	s.settings = settings.Clone()
	s.settings.Normalize()
	return nil
}

// InitDefaults сохраняет defaults, если настроек еще нет, и возвращает текущие
func (s *Store) InitDefaults(ctx context.Context, defaults *domain.Settings) (*domain.Settings, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.settings == nil {
		s.settings = defaults.Clone()
		s.settings.Normalize()
	}
	return s.settings.Clone(), nil
}

// GetBookingCount возвращает число заказов на слот
func (s *Store) GetBookingCount(ctx context.Context, slot domain.TimeSlot) (int, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.counts[slot.Key()], nil
}

// GetBookingCounts возвращает ненулевые счетчики слотов даты
func (s *Store) GetBookingCounts(ctx context.Context, date domain.CalendarDate) (map[string]int, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()

	prefix := date.String() + " "
	result := make(map[string]int)
	for key, count := range s.counts {
		if strings.HasPrefix(key, prefix) && count > 0 {
			result[key] = count
		}
	}
	return result, nil
}

// Reserve увеличивает счетчик слота, если он меньше max, иначе domain.ErrSlotFull
func (s *Store) Reserve(ctx context.Context, slot domain.TimeSlot, maxOrdersPerSlot int) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	key := slot.Key()
	if s.counts[key] >= maxOrdersPerSlot {
		return domain.ErrSlotFull
	}
	s.counts[key]++
	return nil
}

// CreateOrder сохраняет копию заказа
func (s *Store) CreateOrder(ctx context.Context, order *domain.Order) (*domain.Order, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	stored := cloneOrder(order)
	s.orders[stored.ID] = stored
	s.sequence = append(s.sequence, stored.ID)
	return cloneOrder(stored), nil
}

// GetOrderByID возвращает заказ или domain.ErrOrderNotFound
func (s *Store) GetOrderByID(ctx context.Context, id string) (*domain.Order, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()

	order, ok := s.orders[id]
	if !ok {
		return nil, domain.ErrOrderNotFound
	}
	return cloneOrder(order), nil
}

// GetOrdersByUser заказы пользователя, новые первыми
func (s *Store) GetOrdersByUser(ctx context.Context, userID string) ([]*domain.Order, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()

	result := make([]*domain.Order, 0)
	for i := len(s.sequence) - 1; i >= 0; i-- {
		order := s.orders[s.sequence[i]]
		if order.UserID == userID {
			result = append(result, cloneOrder(order))
		}
	}
	return result, nil
}

// GetOrdersByDate заказы на дату выдачи, по времени выдачи
func (s *Store) GetOrdersByDate(ctx context.Context, date domain.CalendarDate) ([]*domain.Order, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()

	result := make([]*domain.Order, 0)
	for _, id := range s.sequence {
		order := s.orders[id]
		if order.PickupDate.Equal(date) {
			result = append(result, cloneOrder(order))
		}
	}
	sort.SliceStable(result, func(i, j int) bool {
		return result[i].PickupTime.IsBefore(result[j].PickupTime)
	})
	return result, nil
}

// UpdatePaymentStatus меняет статус, только если текущий равен from
func (s *Store) UpdatePaymentStatus(ctx context.Context, id string, from, to domain.PaymentStatus) (*domain.Order, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	order, ok := s.orders[id]
	if !ok {
		return nil, domain.ErrOrderNotFound
	}
	if order.PaymentStatus != from {
		return nil, domain.ErrPaymentStatusConflict
	}
	order.PaymentStatus = to
	return cloneOrder(order), nil
}

func cloneOrder(o *domain.Order) *domain.Order {
	c := *o
	c.Items = append([]domain.OrderItem{}, o.Items...)
	return &c
}
