package domain

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-CafeOrderService/pkg/types"
)

func mustDate(t *testing.T, s string) CalendarDate {
	t.Helper()
	d, err := ParseCalendarDate(s)
	require.NoError(t, err)
	return d
}

func TestCalendarDate_ParseAndCompare(t *testing.T) {
	d := mustDate(t, "2024-06-01")

	assert.Equal(t, "2024-06-01", d.String())
	assert.True(t, d.Before(mustDate(t, "2024-06-02")))
	assert.True(t, d.After(mustDate(t, "2024-05-31")))
	assert.True(t, d.Equal(mustDate(t, "2024-06-01")))

	_, err := ParseCalendarDate("2024-02-30")
	assert.ErrorIs(t, err, ErrInvalidDate)
}

func TestCalendarDate_AddDaysCrossesMonth(t *testing.T) {
	assert.Equal(t, "2024-07-02", mustDate(t, "2024-06-28").AddDays(4).String())
	assert.Equal(t, "2023-12-31", mustDate(t, "2024-01-01").AddDays(-1).String())
}

func TestNewCalendarDate_UsesLocation(t *testing.T) {
	london, err := time.LoadLocation("Europe/London")
	require.NoError(t, err)

	// 23:30 UTC on 1 June is 00:30 on 2 June in London (BST)
	instant := time.Date(2024, 6, 1, 23, 30, 0, 0, time.UTC)

	assert.Equal(t, "2024-06-01", NewCalendarDate(instant, time.UTC).String())
	assert.Equal(t, "2024-06-02", NewCalendarDate(instant, london).String())
}

func TestCalendarDate_At(t *testing.T) {
	london, err := time.LoadLocation("Europe/London")
	require.NoError(t, err)

	at, err := mustDate(t, "2024-06-01").At("11:00", london)
	require.NoError(t, err)
	assert.Equal(t, time.Date(2024, 6, 1, 10, 0, 0, 0, time.UTC), at.UTC())

	_, err = mustDate(t, "2024-06-01").At("bad", london)
	assert.ErrorIs(t, err, types.ErrInvalidTimeString)
}

func TestCalendarDate_JSON(t *testing.T) {
	data, err := json.Marshal(struct {
		Date CalendarDate `json:"date"`
	}{Date: mustDate(t, "2024-06-01")})
	require.NoError(t, err)
	assert.JSONEq(t, `{"date":"2024-06-01"}`, string(data))
}

func TestSlotKey(t *testing.T) {
	slot := TimeSlot{Date: mustDate(t, "2024-06-01"), Time: "11:00"}
	assert.Equal(t, "2024-06-01 11:00", slot.Key())

	parsed, err := ParseSlotKey(slot.Key())
	require.NoError(t, err)
	assert.Equal(t, slot, parsed)

	_, err = ParseSlotKey("2024-06-01T11:00")
	assert.ErrorIs(t, err, ErrInvalidSlotKey)
}

func TestSettings_ToggleBlockedDate(t *testing.T) {
	s := DefaultSettings()
	date := mustDate(t, "2024-06-01")

	assert.False(t, s.IsBlocked(date))

	assert.True(t, s.ToggleBlockedDate(date))
	assert.True(t, s.IsBlocked(date))

	assert.False(t, s.ToggleBlockedDate(date))
	assert.False(t, s.IsBlocked(date))
	assert.Empty(t, s.BlockedDates)
}

func TestSettings_NormalizeSortsAndDedups(t *testing.T) {
	s := &Settings{BlockedDates: []CalendarDate{
		mustDate(t, "2024-06-03"),
		mustDate(t, "2024-06-01"),
		mustDate(t, "2024-06-03"),
	}}

	s.Normalize()

	assert.Equal(t, []CalendarDate{mustDate(t, "2024-06-01"), mustDate(t, "2024-06-03")}, s.BlockedDates)
}

func TestSettings_CloneIsIndependent(t *testing.T) {
	s := DefaultSettings()
	s.ToggleBlockedDate(mustDate(t, "2024-06-01"))

	c := s.Clone()
	c.ToggleBlockedDate(mustDate(t, "2024-06-02"))

	assert.Len(t, s.BlockedDates, 1)
	assert.Len(t, c.BlockedDates, 2)
}

func TestOrder_CanTransitionTo(t *testing.T) {
	tests := []struct {
		from PaymentStatus
		to   PaymentStatus
		want bool
	}{
		{PaymentPending, PaymentCompleted, true},
		{PaymentPending, PaymentFailed, true},
		{PaymentPending, PaymentPending, false},
		{PaymentCompleted, PaymentFailed, false},
		{PaymentFailed, PaymentCompleted, false},
	}

	for _, tt := range tests {
		t.Run(string(tt.from)+"->"+string(tt.to), func(t *testing.T) {
			o := &Order{PaymentStatus: tt.from}
			assert.Equal(t, tt.want, o.CanTransitionTo(tt.to))
		})
	}
}

func TestCalculateTotal(t *testing.T) {
	items := []OrderItem{
		{Name: "Flat White", Price: 3.2, Quantity: 2},
		{Name: "Carrot Cake", Price: 4.15, Quantity: 1},
	}
	assert.Equal(t, 10.55, CalculateTotal(items))
}
