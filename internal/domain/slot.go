package domain

import (
	"errors"
	"fmt"
	"strings"

	"github.com/m04kA/SMC-CafeOrderService/pkg/types"
)

// ErrInvalidSlotKey is returned when a persisted slot key cannot be parsed
var ErrInvalidSlotKey = errors.New("domain: invalid slot key")

// TimeSlot is a 15-minute collection window on a given date. Two slots are
// identical iff date and time of day match.
type TimeSlot struct {
	Date CalendarDate
	Time types.TimeString
}

// Key identifies the slot in persistent storage: "YYYY-MM-DD HH:MM"
func (s TimeSlot) Key() string {
	return s.Date.String() + " " + string(s.Time)
}

func (s TimeSlot) String() string {
	return s.Key()
}

// ParseSlotKey is the inverse of Key
func ParseSlotKey(key string) (TimeSlot, error) {
	datePart, timePart, ok := strings.Cut(key, " ")
	if !ok {
		return TimeSlot{}, fmt.Errorf("%w: %q", ErrInvalidSlotKey, key)
	}
	date, err := ParseCalendarDate(datePart)
	if err != nil {
		return TimeSlot{}, fmt.Errorf("%w: %q", ErrInvalidSlotKey, key)
	}
	tod, err := types.NewTimeStringFromString(timePart)
	if err != nil {
		return TimeSlot{}, fmt.Errorf("%w: %q", ErrInvalidSlotKey, key)
	}
	return TimeSlot{Date: date, Time: tod}, nil
}

// SlotAvailability is derived at query time and never persisted
type SlotAvailability struct {
	Slot         TimeSlot
	IsSelectable bool
	Booked       int
	Remaining    int
}

// AvailableDate is one entry of the booking window
type AvailableDate struct {
	Date         CalendarDate
	IsSelectable bool
	IsToday      bool
}
