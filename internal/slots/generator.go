package slots

import (
	"time"

	"github.com/m04kA/SMC-CafeOrderService/internal/domain"
	"github.com/m04kA/SMC-CafeOrderService/pkg/types"
)

// Grid returns every slot start time of a business day, 10:45 through 15:15
func Grid() []types.TimeString {
	open, _ := domain.OpeningTime.Minutes()
	closing, _ := domain.ClosingTime.Minutes()

	grid := make([]types.TimeString, 0, (closing-open)/domain.SlotStepMinutes+1)
	for m := open; m < closing; m += domain.SlotStepMinutes {
		tod, _ := types.NewTimeStringFromMinutes(m)
		grid = append(grid, tod)
	}
	return grid
}

// IsOnGrid reports whether tod is one of the business-day slot start times
func IsOnGrid(tod types.TimeString) bool {
	minutes, err := tod.Minutes()
	if err != nil {
		return false
	}
	open, _ := domain.OpeningTime.Minutes()
	closing, _ := domain.ClosingTime.Minutes()
	if minutes < open || minutes >= closing {
		return false
	}
	return (minutes-open)%domain.SlotStepMinutes == 0
}

// PassesLeadTime reports whether slot starts strictly after now plus the lead time.
// All arithmetic happens in loc.
func PassesLeadTime(slot domain.TimeSlot, now time.Time, loc *time.Location) bool {
	start, err := slot.Date.At(slot.Time, loc)
	if err != nil {
		return false
	}
	return start.After(now.Add(domain.LeadTimeMinutes * time.Minute))
}

// GenerateSlots returns the bookable slots of date as seen at instant now.
// Future dates get the full grid, today gets only slots past the lead time,
// past dates get an empty result. The result is never nil.
func GenerateSlots(date domain.CalendarDate, now time.Time, loc *time.Location) []domain.TimeSlot {
	result := make([]domain.TimeSlot, 0, 19)

	if date.Before(domain.NewCalendarDate(now, loc)) {
		return result
	}

	for _, tod := range Grid() {
		slot := domain.TimeSlot{Date: date, Time: tod}
		if PassesLeadTime(slot, now, loc) {
			result = append(result, slot)
		}
	}
	return result
}

// WindowDates returns the booking window: BookingWindowDays consecutive days starting today in loc
func WindowDates(now time.Time, loc *time.Location) []domain.CalendarDate {
	today := domain.NewCalendarDate(now, loc)
	dates := make([]domain.CalendarDate, domain.BookingWindowDays)
	for i := range dates {
		dates[i] = today.AddDays(i)
	}
	return dates
}

// InWindow reports whether date falls inside the booking window
func InWindow(date domain.CalendarDate, now time.Time, loc *time.Location) bool {
	today := domain.NewCalendarDate(now, loc)
	last := today.AddDays(domain.BookingWindowDays - 1)
	return !date.Before(today) && !date.After(last)
}
