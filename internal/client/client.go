// Package client HTTP клиент API заказов кафе
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
)

const (
	headerUserID    = "X-User-ID"
	headerUserEmail = "X-User-Email"

	inFlightMessage = "an order is already being placed"
)

// Ответы 400, относящиеся к выбранному слоту, а не к корзине
var slotRejectionMessages = map[string]struct{}{
	"invalid pickup date or time, expected YYYY-MM-DD and HH:MM":   {},
	"selected time is not a collection slot":                       {},
	"selected date is not available for collection":                {},
	"the café is closed for collections on this date":              {},
	"this collection time is too soon, please choose a later slot": {},
}

var (
	// ErrValidation запрос отклонен как невалидный (400)
	ErrValidation = errors.New("client: request rejected")

	// ErrSlotRejected невалидны дата или время выдачи (400); корзина при этом в порядке
	ErrSlotRejected = fmt.Errorf("%w: pickup slot rejected", ErrValidation)

	// ErrSlotUnavailable выбранный слот заполнен (409)
	ErrSlotUnavailable = errors.New("client: slot unavailable")

	// ErrOrderInFlight другой заказ этого пользователя еще оформляется (409)
	ErrOrderInFlight = errors.New("client: order already in flight")

	// ErrBookingFailed временный сбой, тот же заказ можно повторить (503)
	ErrBookingFailed = errors.New("client: booking failed")

	// ErrRateLimited слишком много запросов (429)
	ErrRateLimited = errors.New("client: rate limited")

	// ErrUnexpected любой другой ответ не 2xx или сбой транспорта
	ErrUnexpected = errors.New("client: unexpected response")
)

// Client обращается к API от имени одного пользователя
type Client struct {
	baseURL    string
	userID     string
	userEmail  string
	httpClient *http.Client
}

// New создает клиента для baseURL (например "http://localhost:8080")
func New(baseURL, userID, userEmail string) *Client {
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		userID:     userID,
		userEmail:  userEmail,
		httpClient: &http.Client{Timeout: 10 * time.Second},
	}
}

// WithHTTPClient заменяет http.Client
func (c *Client) WithHTTPClient(hc *http.Client) *Client {
	c.httpClient = hc
	return c
}

// AvailableDate день окна бронирования
type AvailableDate struct {
	Date         string `json:"date"`
	IsSelectable bool   `json:"isSelectable"`
	IsToday      bool   `json:"isToday"`
}

// Slot слот выдачи и его текущая заполненность
type Slot struct {
	Time         string `json:"time"`
	IsSelectable bool   `json:"isSelectable"`
	Booked       int    `json:"booked"`
	Remaining    int    `json:"remaining"`
}

// Slots доступность слотов одной даты
type Slots struct {
	Date             string `json:"date"`
	IsBlocked        bool   `json:"isBlocked"`
	MaxOrdersPerSlot int    `json:"maxOrdersPerSlot"`
	Slots            []Slot `json:"slots"`
}

// Item позиция корзины
type Item struct {
	ProductID string  `json:"productId,omitempty"`
	Name      string  `json:"name"`
	Price     float64 `json:"price"`
	Quantity  int     `json:"quantity"`
}

// PlaceOrderRequest тело POST /orders
type PlaceOrderRequest struct {
	PickupDate string `json:"pickupDate"`
	PickupTime string `json:"pickupTime"`
	Items      []Item `json:"items"`
}

// Order оформленный заказ
type Order struct {
	ID            string  `json:"id"`
	Items         []Item  `json:"items"`
	Total         float64 `json:"total"`
	PickupDate    string  `json:"pickupDate"`
	PickupTime    string  `json:"pickupTime"`
	UserID        string  `json:"userId"`
	UserEmail     string  `json:"userEmail,omitempty"`
	PaymentStatus string  `json:"paymentStatus"`
	CreatedAt     string  `json:"createdAt"`
}

// GetAvailableDates окно бронирования
func (c *Client) GetAvailableDates(ctx context.Context) ([]AvailableDate, error) {
	var resp struct {
		Dates []AvailableDate `json:"dates"`
	}
	if err := c.do(ctx, http.MethodGet, "/api/v1/dates", nil, &resp); err != nil {
		return nil, err
	}
	return resp.Dates, nil
}

// GetAvailableSlots доступность слотов даты (YYYY-MM-DD)
func (c *Client) GetAvailableSlots(ctx context.Context, date string) (*Slots, error) {
	var resp Slots
	path := "/api/v1/slots?date=" + url.QueryEscape(date)
	if err := c.do(ctx, http.MethodGet, path, nil, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// PlaceOrder бронирует слот и создает заказ
func (c *Client) PlaceOrder(ctx context.Context, req *PlaceOrderRequest) (*Order, error) {
	var resp Order
	if err := c.do(ctx, http.MethodPost, "/api/v1/orders", req, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// GetMyOrders заказы пользователя, новые первыми
func (c *Client) GetMyOrders(ctx context.Context) ([]Order, error) {
	var resp struct {
		Orders []Order `json:"orders"`
	}
	if err := c.do(ctx, http.MethodGet, "/api/v1/users/me/orders", nil, &resp); err != nil {
		return nil, err
	}
	return resp.Orders, nil
}

type errorBody struct {
	Error string `json:"error"`
}

func (c *Client) do(ctx context.Context, method, path string, body, out any) error {
	var reader io.Reader = http.NoBody
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("%w: encode request: %v", ErrUnexpected, err)
		}
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return fmt.Errorf("%w: build request: %v", ErrUnexpected, err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set(headerUserID, c.userID)
	if c.userEmail != "" {
		req.Header.Set(headerUserEmail, c.userEmail)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrUnexpected, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		if out == nil {
			return nil
		}
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			return fmt.Errorf("%w: decode response: %v", ErrUnexpected, err)
		}
		return nil
	}

	var eb errorBody
	_ = json.NewDecoder(io.LimitReader(resp.Body, 64<<10)).Decode(&eb)
	return statusError(resp.StatusCode, eb.Error)
}

func statusError(status int, message string) error {
	var base error
	switch status {
	case http.StatusBadRequest:
		if _, ok := slotRejectionMessages[message]; ok {
			base = ErrSlotRejected
		} else {
			base = ErrValidation
		}
	case http.StatusConflict:
		if message == inFlightMessage {
			base = ErrOrderInFlight
		} else {
			base = ErrSlotUnavailable
		}
	case http.StatusTooManyRequests:
		base = ErrRateLimited
	case http.StatusServiceUnavailable:
		base = ErrBookingFailed
	default:
		base = ErrUnexpected
	}
	if message == "" {
		return fmt.Errorf("%w: status %d", base, status)
	}
	return fmt.Errorf("%w: %s", base, message)
}
