package domain

import (
	"database/sql/driver"
	"errors"
	"fmt"
	"time"

	"github.com/m04kA/SMC-CafeOrderService/pkg/types"
)

// ErrInvalidDate is returned when a string is not a YYYY-MM-DD calendar date
var ErrInvalidDate = errors.New("domain: invalid calendar date")

// CalendarDate identifies one business day. It carries no time of day and no
// timezone; equality is by calendar day.
type CalendarDate struct {
	Year  int
	Month time.Month
	Day   int
}

// NewCalendarDate returns the calendar day of t as observed in loc
func NewCalendarDate(t time.Time, loc *time.Location) CalendarDate {
	y, m, d := t.In(loc).Date()
	return CalendarDate{Year: y, Month: m, Day: d}
}

// ParseCalendarDate parses YYYY-MM-DD
func ParseCalendarDate(s string) (CalendarDate, error) {
	t, err := time.Parse(DateFormat, s)
	if err != nil {
		return CalendarDate{}, fmt.Errorf("%w: %q", ErrInvalidDate, s)
	}
	y, m, d := t.Date()
	return CalendarDate{Year: y, Month: m, Day: d}, nil
}

func (d CalendarDate) String() string {
	return fmt.Sprintf("%04d-%02d-%02d", d.Year, int(d.Month), d.Day)
}

func (d CalendarDate) IsZero() bool {
	return d == CalendarDate{}
}

// At combines the date with a time of day in loc
func (d CalendarDate) At(tod types.TimeString, loc *time.Location) (time.Time, error) {
	minutes, err := tod.Minutes()
	if err != nil {
		return time.Time{}, err
	}
	return time.Date(d.Year, d.Month, d.Day, minutes/60, minutes%60, 0, 0, loc), nil
}

// AddDays moves the date by n calendar days
func (d CalendarDate) AddDays(n int) CalendarDate {
	t := time.Date(d.Year, d.Month, d.Day+n, 0, 0, 0, 0, time.UTC)
	y, m, day := t.Date()
	return CalendarDate{Year: y, Month: m, Day: day}
}

func (d CalendarDate) Before(other CalendarDate) bool {
	return d.compare(other) < 0
}

func (d CalendarDate) After(other CalendarDate) bool {
	return d.compare(other) > 0
}

func (d CalendarDate) Equal(other CalendarDate) bool {
	return d == other
}

func (d CalendarDate) compare(other CalendarDate) int {
	switch {
	case d.Year != other.Year:
		return d.Year - other.Year
	case d.Month != other.Month:
		return int(d.Month) - int(other.Month)
	default:
		return d.Day - other.Day
	}
}

// MarshalText encodes the date as YYYY-MM-DD (JSON, BSON keys)
func (d CalendarDate) MarshalText() ([]byte, error) {
	return []byte(d.String()), nil
}

func (d *CalendarDate) UnmarshalText(text []byte) error {
	parsed, err := ParseCalendarDate(string(text))
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}

// Scan implements sql.Scanner. PostgreSQL DATE arrives as time.Time at UTC midnight
func (d *CalendarDate) Scan(value interface{}) error {
	switch v := value.(type) {
	case time.Time:
		y, m, day := v.Date()
		*d = CalendarDate{Year: y, Month: m, Day: day}
		return nil
	case string:
		return d.UnmarshalText([]byte(v))
	case []byte:
		return d.UnmarshalText(v)
	default:
		return fmt.Errorf("%w: cannot scan %T", ErrInvalidDate, value)
	}
}

// Value implements driver.Valuer
func (d CalendarDate) Value() (driver.Value, error) {
	return d.String(), nil
}
