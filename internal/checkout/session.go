// Package checkout оформление заказа на стороне покупателя: выбор слота,
// отправка заказа и реакция на результат
package checkout

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/m04kA/SMC-CafeOrderService/internal/client"
)

// State состояние оформления заказа
type State string

const (
	StateCartNonEmpty State = "cart_non_empty"
	StateSlotSelected State = "slot_selected"
	StateBooking      State = "booking"
	StateBooked       State = "booked"
	StateSlotRejected State = "slot_rejected"
	StateBookingError State = "booking_error"
)

var (
	ErrEmptyCart         = errors.New("checkout: cart is empty")
	ErrInvalidTransition = errors.New("checkout: action not allowed in current state")
	ErrSubmitInProgress  = errors.New("checkout: order is already being placed")
	ErrNoSlot            = errors.New("checkout: no slot selected")
)

// Booker отправляет заказ (client.Client)
type Booker interface {
	PlaceOrder(ctx context.Context, req *client.PlaceOrderRequest) (*client.Order, error)
}

// допустимые переходы между состояниями
var transitions = map[State][]State{
	StateCartNonEmpty: {StateSlotSelected},
	StateSlotSelected: {StateSlotSelected, StateBooking},
	StateBooking:      {StateBooked, StateSlotRejected, StateBookingError},
	StateSlotRejected: {StateSlotSelected},
	StateBookingError: {StateSlotSelected, StateBooking},
}

func canTransition(from, to State) bool {
	for _, s := range transitions[from] {
		if s == to {
			return true
		}
	}
	return false
}

// Session оформление одной корзины, безопасно для конкурентного использования
type Session struct {
	mu      sync.Mutex
	booker  Booker
	state   State
	cart    []client.Item
	date    string
	time    string
	order   *client.Order
	lastErr error
}

// NewSession начинает оформление непустой корзины
func NewSession(booker Booker, cart []client.Item) (*Session, error) {
	if len(cart) == 0 {
		return nil, ErrEmptyCart
	}
	return &Session{
		booker: booker,
		state:  StateCartNonEmpty,
		cart:   append([]client.Item(nil), cart...),
	}, nil
}

// SelectSlot выбирает дату (YYYY-MM-DD) и время (HH:MM) выдачи
func (s *Session) SelectSlot(date, tod string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !canTransition(s.state, StateSlotSelected) {
		return fmt.Errorf("%w: select slot in %s", ErrInvalidTransition, s.state)
	}
	s.date, s.time = date, tod
	s.lastErr = nil
	s.setState(StateSlotSelected)
	return nil
}

// Submit отправляет заказ. Повторный Submit, пока первый не завершился,
// возвращает ErrSubmitInProgress без обращения к API
func (s *Session) Submit(ctx context.Context) (*client.Order, error) {
	req, err := s.begin()
	if err != nil {
		return nil, err
	}

	order, err := s.booker.PlaceOrder(ctx, req)

	s.mu.Lock()
	defer s.mu.Unlock()

	switch {
	case err == nil:
		s.order = order
		s.cart = nil
		s.lastErr = nil
		s.setState(StateBooked)
		return order, nil

	case errors.Is(err, client.ErrSlotUnavailable), errors.Is(err, client.ErrSlotRejected):
		// Слот надо выбрать заново, корзина сохраняется
		s.date, s.time = "", ""
		s.lastErr = err
		s.setState(StateSlotRejected)
		return nil, err

	default:
		// Корзина и слот сохраняются для повтора; ошибки корзины сюда же, слот при этом валиден
		s.lastErr = err
		s.setState(StateBookingError)
		return nil, err
	}
}

func (s *Session) begin() (*client.PlaceOrderRequest, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.state == StateBooking {
		return nil, ErrSubmitInProgress
	}
	if !canTransition(s.state, StateBooking) {
		return nil, fmt.Errorf("%w: submit in %s", ErrInvalidTransition, s.state)
	}
	if s.date == "" || s.time == "" {
		return nil, ErrNoSlot
	}

	s.setState(StateBooking)
	return &client.PlaceOrderRequest{
		PickupDate: s.date,
		PickupTime: s.time,
		Items:      append([]client.Item(nil), s.cart...),
	}, nil
}

func (s *Session) setState(state State) {
	s.state = state
}

// State текущее состояние
func (s *Session) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// Cart копия корзины; пустая после успешного заказа
func (s *Session) Cart() []client.Item {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]client.Item(nil), s.cart...)
}

// Slot выбранные дата и время, пустые, если слот не выбран
func (s *Session) Slot() (date, tod string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.date, s.time
}

// Order оформленный заказ или nil
func (s *Session) Order() *client.Order {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.order
}

// LastError ошибка последней неудачной отправки
func (s *Session) LastError() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastErr
}
