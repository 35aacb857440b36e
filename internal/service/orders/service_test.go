package orders

import (
	"context"
	"io"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-CafeOrderService/internal/domain"
	"github.com/m04kA/SMC-CafeOrderService/internal/infra/storage/memory"
	"github.com/m04kA/SMC-CafeOrderService/internal/service/access"
	"github.com/m04kA/SMC-CafeOrderService/internal/service/orders/models"
	"github.com/m04kA/SMC-CafeOrderService/pkg/logger"
)

func seed(t *testing.T) (*Service, domain.CalendarDate) {
	t.Helper()
	store := memory.NewStore()
	date, err := domain.ParseCalendarDate("2024-06-01")
	require.NoError(t, err)

	for _, o := range []*domain.Order{
		{ID: "o1", UserID: "alice", PickupDate: date, PickupTime: "12:00", PaymentStatus: domain.PaymentPending, CreatedAt: time.Now()},
		{ID: "o2", UserID: "bob", PickupDate: date, PickupTime: "11:00", PaymentStatus: domain.PaymentPending, CreatedAt: time.Now()},
		{ID: "o3", UserID: "alice", PickupDate: date.AddDays(1), PickupTime: "11:00", PaymentStatus: domain.PaymentCompleted, CreatedAt: time.Now()},
	} {
		_, err := store.CreateOrder(context.Background(), o)
		require.NoError(t, err)
	}

	svc := NewService(store, access.NewAdmins([]string{"admin"}), logger.NewWithWriter(io.Discard, "info"))
	return svc, date
}

func TestGetByID_Access(t *testing.T) {
	svc, _ := seed(t)
	ctx := context.Background()

	order, err := svc.GetByID(ctx, "o1", "alice")
	require.NoError(t, err)
	assert.Equal(t, "2024-06-01", order.PickupDate)

	_, err = svc.GetByID(ctx, "o1", "admin")
	assert.NoError(t, err)

	_, err = svc.GetByID(ctx, "o1", "bob")
	assert.ErrorIs(t, err, ErrAccessDenied)

	_, err = svc.GetByID(ctx, "missing", "alice")
	assert.ErrorIs(t, err, ErrOrderNotFound)
}

func TestGetUserOrders(t *testing.T) {
	svc, _ := seed(t)

	resp, err := svc.GetUserOrders(context.Background(), "alice")
	require.NoError(t, err)
	assert.Equal(t, 2, resp.Total)
	assert.Equal(t, "o3", resp.Orders[0].ID)
}

func TestListByDate(t *testing.T) {
	svc, date := seed(t)

	resp, err := svc.ListByDate(context.Background(), &models.ListByDateRequest{UserID: "admin", Date: date})
	require.NoError(t, err)
	require.Equal(t, 2, resp.Total)
	assert.Equal(t, "11:00", resp.Orders[0].PickupTime)

	_, err = svc.ListByDate(context.Background(), &models.ListByDateRequest{UserID: "alice", Date: date})
	assert.ErrorIs(t, err, ErrAccessDenied)
}

func TestUpdatePaymentStatus(t *testing.T) {
	tests := []struct {
		name    string
		user    string
		order   string
		status  string
		wantErr error
	}{
		{name: "pending to completed", user: "admin", order: "o1", status: "completed"},
		{name: "pending to failed", user: "admin", order: "o2", status: "failed"},
		{name: "completed is final", user: "admin", order: "o3", status: "failed", wantErr: ErrStatusFinal},
		{name: "back to pending", user: "admin", order: "o1", status: "pending", wantErr: ErrInvalidStatus},
		{name: "unknown status", user: "admin", order: "o1", status: "refunded", wantErr: ErrInvalidStatus},
		{name: "not admin", user: "alice", order: "o1", status: "completed", wantErr: ErrAccessDenied},
		{name: "missing order", user: "admin", order: "nope", status: "completed", wantErr: ErrOrderNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, _ := seed(t)

			resp, err := svc.UpdatePaymentStatus(context.Background(), tt.order, &models.UpdatePaymentStatusRequest{
				UserID: tt.user,
				Status: tt.status,
			})

			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.status, resp.PaymentStatus)
		})
	}
}
