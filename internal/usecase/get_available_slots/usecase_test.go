package get_available_slots

import (
	"context"
	"errors"
	"io"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-CafeOrderService/internal/domain"
	"github.com/m04kA/SMC-CafeOrderService/internal/infra/storage/memory"
	"github.com/m04kA/SMC-CafeOrderService/pkg/logger"
	"github.com/m04kA/SMC-CafeOrderService/pkg/types"
)

type fixedClock struct{ now time.Time }

func (c fixedClock) Now() time.Time { return c.now }

type failingCounter struct{}

func (failingCounter) GetBookingCounts(context.Context, domain.CalendarDate) (map[string]int, error) {
	return nil, errors.New("unavailable")
}

func setup(t *testing.T, now time.Time) (*UseCase, *memory.Store) {
	t.Helper()
	loc, err := time.LoadLocation("Europe/London")
	require.NoError(t, err)

	store := memory.NewStore()
	settings := domain.DefaultSettings()
	settings.MaxOrdersPerSlot = 2
	require.NoError(t, store.Save(context.Background(), settings))

	uc := NewUseCase(store, store, loc, logger.NewWithWriter(io.Discard, "info"))
	uc.timeProvider = fixedClock{now: now.In(loc)}
	return uc, store
}

func date(t *testing.T, s string) domain.CalendarDate {
	t.Helper()
	d, err := domain.ParseCalendarDate(s)
	require.NoError(t, err)
	return d
}

func TestExecute_MarksFullSlots(t *testing.T) {
	uc, store := setup(t, time.Date(2024, 5, 31, 11, 0, 0, 0, time.UTC))
	ctx := context.Background()

	full := domain.TimeSlot{Date: date(t, "2024-06-01"), Time: "11:00"}
	require.NoError(t, store.Reserve(ctx, full, 2))
	require.NoError(t, store.Reserve(ctx, full, 2))
	half := domain.TimeSlot{Date: date(t, "2024-06-01"), Time: "11:15"}
	require.NoError(t, store.Reserve(ctx, half, 2))

	resp, err := uc.Execute(ctx, &Request{Date: date(t, "2024-06-01")})
	require.NoError(t, err)

	require.Len(t, resp.Slots, 19)
	assert.False(t, resp.IsBlocked)
	assert.Equal(t, 2, resp.MaxOrdersPerSlot)

	byTime := map[types.TimeString]Slot{}
	for _, s := range resp.Slots {
		byTime[s.Time] = s
	}
	assert.False(t, byTime["11:00"].IsSelectable)
	assert.Equal(t, 0, byTime["11:00"].Remaining)
	assert.True(t, byTime["11:15"].IsSelectable)
	assert.Equal(t, 1, byTime["11:15"].Remaining)
	assert.True(t, byTime["10:45"].IsSelectable)
}

func TestExecute_TodayAppliesLeadTime(t *testing.T) {
	// 14:00 BST
	uc, _ := setup(t, time.Date(2024, 6, 1, 13, 0, 0, 0, time.UTC))

	resp, err := uc.Execute(context.Background(), &Request{Date: date(t, "2024-06-01")})
	require.NoError(t, err)

	require.NotEmpty(t, resp.Slots)
	assert.Equal(t, types.TimeString("14:30"), resp.Slots[0].Time)
}

func TestExecute_BlockedDate(t *testing.T) {
	uc, store := setup(t, time.Date(2024, 5, 31, 11, 0, 0, 0, time.UTC))
	ctx := context.Background()

	settings, err := store.Get(ctx)
	require.NoError(t, err)
	settings.ToggleBlockedDate(date(t, "2024-06-01"))
	require.NoError(t, store.Save(ctx, settings))

	resp, err := uc.Execute(ctx, &Request{Date: date(t, "2024-06-01")})
	require.NoError(t, err)

	assert.True(t, resp.IsBlocked)
	for _, s := range resp.Slots {
		assert.False(t, s.IsSelectable)
	}
}

func TestExecute_OutsideWindow(t *testing.T) {
	uc, _ := setup(t, time.Date(2024, 5, 31, 11, 0, 0, 0, time.UTC))

	_, err := uc.Execute(context.Background(), &Request{Date: date(t, "2024-05-30")})
	assert.ErrorIs(t, err, ErrDateOutOfWindow)

	_, err = uc.Execute(context.Background(), &Request{Date: date(t, "2024-06-14")})
	assert.ErrorIs(t, err, ErrDateOutOfWindow)

	_, err = uc.Execute(context.Background(), &Request{})
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestExecute_CounterFailure(t *testing.T) {
	uc, _ := setup(t, time.Date(2024, 5, 31, 11, 0, 0, 0, time.UTC))
	uc.counter = failingCounter{}

	_, err := uc.Execute(context.Background(), &Request{Date: date(t, "2024-06-01")})
	assert.ErrorIs(t, err, ErrInternal)
}
