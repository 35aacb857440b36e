package client

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPlaceOrder_SendsUserAndBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/api/v1/orders", r.URL.Path)
		assert.Equal(t, "alice", r.Header.Get(headerUserID))
		assert.Equal(t, "alice@example.com", r.Header.Get(headerUserEmail))

		var req PlaceOrderRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "2024-06-01", req.PickupDate)

		w.WriteHeader(http.StatusCreated)
		_ = json.NewEncoder(w).Encode(Order{ID: "o1", PickupDate: req.PickupDate, PickupTime: req.PickupTime, PaymentStatus: "pending"})
	}))
	defer srv.Close()

	c := New(srv.URL+"/", "alice", "alice@example.com")
	order, err := c.PlaceOrder(context.Background(), &PlaceOrderRequest{
		PickupDate: "2024-06-01",
		PickupTime: "11:00",
		Items:      []Item{{Name: "Latte", Price: 3.2, Quantity: 1}},
	})

	require.NoError(t, err)
	assert.Equal(t, "o1", order.ID)
	assert.Equal(t, "pending", order.PaymentStatus)
}

func TestErrorMapping(t *testing.T) {
	tests := []struct {
		name    string
		status  int
		message string
		want    error
	}{
		{name: "validation", status: http.StatusBadRequest, message: "your cart is empty", want: ErrValidation},
		{name: "blocked date", status: http.StatusBadRequest, message: "the café is closed for collections on this date", want: ErrSlotRejected},
		{name: "lead time", status: http.StatusBadRequest, message: "this collection time is too soon, please choose a later slot", want: ErrSlotRejected},
		{name: "slot full", status: http.StatusConflict, message: "this time slot is no longer available", want: ErrSlotUnavailable},
		{name: "in flight", status: http.StatusConflict, message: inFlightMessage, want: ErrOrderInFlight},
		{name: "rate limited", status: http.StatusTooManyRequests, want: ErrRateLimited},
		{name: "unavailable", status: http.StatusServiceUnavailable, message: "please try again", want: ErrBookingFailed},
		{name: "internal", status: http.StatusInternalServerError, want: ErrUnexpected},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
				if tt.message != "" {
					_ = json.NewEncoder(w).Encode(errorBody{Error: tt.message})
				}
			}))
			defer srv.Close()

			_, err := New(srv.URL, "alice", "").PlaceOrder(context.Background(), &PlaceOrderRequest{})
			assert.ErrorIs(t, err, tt.want)
		})
	}
}

func TestStatusError_CartAndSlotValidation(t *testing.T) {
	cart := statusError(http.StatusBadRequest, "cart contains invalid items")
	assert.ErrorIs(t, cart, ErrValidation)
	assert.NotErrorIs(t, cart, ErrSlotRejected)

	slot := statusError(http.StatusBadRequest, "selected time is not a collection slot")
	assert.ErrorIs(t, slot, ErrSlotRejected)
	assert.ErrorIs(t, slot, ErrValidation)
}

func TestGetAvailableSlots(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "2024-06-01", r.URL.Query().Get("date"))
		_ = json.NewEncoder(w).Encode(Slots{
			Date:  "2024-06-01",
			Slots: []Slot{{Time: "10:45", IsSelectable: true, Remaining: 3}},
		})
	}))
	defer srv.Close()

	slots, err := New(srv.URL, "alice", "").GetAvailableSlots(context.Background(), "2024-06-01")
	require.NoError(t, err)
	require.Len(t, slots.Slots, 1)
	assert.Equal(t, "10:45", slots.Slots[0].Time)
}

func TestGetAvailableDates(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"dates":[{"date":"2024-06-01","isSelectable":true,"isToday":true}]}`))
	}))
	defer srv.Close()

	dates, err := New(srv.URL, "alice", "").GetAvailableDates(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []AvailableDate{{Date: "2024-06-01", IsSelectable: true, IsToday: true}}, dates)
}
