package place_order

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-CafeOrderService/internal/api/middleware"
	"github.com/m04kA/SMC-CafeOrderService/internal/domain"
	placeOrder "github.com/m04kA/SMC-CafeOrderService/internal/usecase/place_order"
	"github.com/m04kA/SMC-CafeOrderService/pkg/logger"
)

type mockUseCase struct{ mock.Mock }

func (m *mockUseCase) Execute(ctx context.Context, req *placeOrder.Request) (*placeOrder.Response, error) {
	args := m.Called(ctx, req)
	resp, _ := args.Get(0).(*placeOrder.Response)
	return resp, args.Error(1)
}

const body = `{"pickupDate":"2024-06-01","pickupTime":"11:00","items":[{"name":"Latte","price":3.2,"quantity":2}]}`

func serve(t *testing.T, uc PlaceOrderUseCase, payload string) *httptest.ResponseRecorder {
	t.Helper()
	h := NewHandler(uc, logger.NewWithWriter(io.Discard, "info"))

	req := httptest.NewRequest(http.MethodPost, "/api/v1/orders", strings.NewReader(payload))
	req.Header.Set(middleware.HeaderUserID, "alice")
	req.Header.Set(middleware.HeaderUserEmail, "alice@example.com")

	rec := httptest.NewRecorder()
	middleware.Auth(http.HandlerFunc(h.Handle)).ServeHTTP(rec, req)
	return rec
}

func TestHandle_Created(t *testing.T) {
	date, _ := domain.ParseCalendarDate("2024-06-01")
	uc := &mockUseCase{}
	uc.On("Execute", mock.Anything, mock.MatchedBy(func(r *placeOrder.Request) bool {
		return r.UserID == "alice" && r.UserEmail == "alice@example.com" &&
			r.PickupDate == date && r.PickupTime == "11:00" && len(r.Items) == 1
	})).Return(&placeOrder.Response{
		OrderID:       "order-1",
		Items:         []placeOrder.Item{{Name: "Latte", Price: 3.2, Quantity: 2}},
		Total:         6.4,
		PickupDate:    date,
		PickupTime:    "11:00",
		UserID:        "alice",
		PaymentStatus: "pending",
		CreatedAt:     time.Date(2024, 5, 31, 12, 0, 0, 0, time.UTC),
	}, nil)

	rec := serve(t, uc, body)

	require.Equal(t, http.StatusCreated, rec.Code)
	var resp OrderResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "order-1", resp.ID)
	assert.Equal(t, "2024-06-01", resp.PickupDate)
	assert.Equal(t, "pending", resp.PaymentStatus)
	uc.AssertExpectations(t)
}

func TestHandle_ErrorMapping(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantMsg    string
	}{
		{name: "empty cart", err: placeOrder.ErrEmptyCart, wantStatus: http.StatusBadRequest, wantMsg: msgEmptyCart},
		{name: "blocked", err: placeOrder.ErrDateBlocked, wantStatus: http.StatusBadRequest, wantMsg: msgDateBlocked},
		{name: "too late", err: placeOrder.ErrTooLateToBook, wantStatus: http.StatusBadRequest, wantMsg: msgTooLateToBook},
		{name: "slot full", err: placeOrder.ErrSlotUnavailable, wantStatus: http.StatusConflict, wantMsg: msgSlotUnavailable},
		{name: "store failure", err: fmt.Errorf("%w: timeout", placeOrder.ErrBookingFailed), wantStatus: http.StatusServiceUnavailable, wantMsg: msgBookingFailed},
		{name: "inconsistent", err: placeOrder.ErrInconsistentCommit, wantStatus: http.StatusServiceUnavailable, wantMsg: msgBookingFailed},
		{name: "unknown", err: fmt.Errorf("boom"), wantStatus: http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			uc := &mockUseCase{}
			uc.On("Execute", mock.Anything, mock.Anything).Return(nil, tt.err)

			rec := serve(t, uc, body)

			assert.Equal(t, tt.wantStatus, rec.Code)
			if tt.wantMsg != "" {
				assert.JSONEq(t, fmt.Sprintf(`{"error":%q}`, tt.wantMsg), rec.Body.String())
			}
		})
	}
}

func TestHandle_BadInput(t *testing.T) {
	tests := []struct {
		name    string
		payload string
		wantMsg string
	}{
		{name: "malformed json", payload: `{"pickupDate":`, wantMsg: msgInvalidRequestBody},
		{name: "bad date", payload: `{"pickupDate":"01/06/2024","pickupTime":"11:00","items":[]}`, wantMsg: msgInvalidPickup},
		{name: "bad time", payload: `{"pickupDate":"2024-06-01","pickupTime":"eleven","items":[]}`, wantMsg: msgInvalidPickup},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			uc := &mockUseCase{}
			rec := serve(t, uc, tt.payload)

			assert.Equal(t, http.StatusBadRequest, rec.Code)
			assert.JSONEq(t, fmt.Sprintf(`{"error":%q}`, tt.wantMsg), rec.Body.String())
			uc.AssertNotCalled(t, "Execute", mock.Anything, mock.Anything)
		})
	}
}
