package domain

import (
	"sort"
	"time"
)

// Settings is the process-wide singleton configured by admins
type Settings struct {
	MaxOrdersPerSlot int
	BlockedDates     []CalendarDate // kept sorted, no duplicates
	UpdatedAt        time.Time
}

// DefaultSettings returns the values created lazily on first read
func DefaultSettings() *Settings {
	return &Settings{
		MaxOrdersPerSlot: DefaultMaxOrdersPerSlot,
		BlockedDates:     []CalendarDate{},
	}
}

// IsBlocked returns true if date is an admin-designated closed day
func (s *Settings) IsBlocked(date CalendarDate) bool {
	for _, d := range s.BlockedDates {
		if d.Equal(date) {
			return true
		}
	}
	return false
}

// ToggleBlockedDate flips membership of date and reports whether it is now blocked
func (s *Settings) ToggleBlockedDate(date CalendarDate) bool {
	for i, d := range s.BlockedDates {
		if d.Equal(date) {
			s.BlockedDates = append(s.BlockedDates[:i:i], s.BlockedDates[i+1:]...)
			return false
		}
	}
	s.BlockedDates = append(s.BlockedDates, date)
	s.Normalize()
	return true
}

// Normalize sorts blocked dates and drops duplicates
func (s *Settings) Normalize() {
	if s.BlockedDates == nil {
		s.BlockedDates = []CalendarDate{}
		return
	}
	sort.Slice(s.BlockedDates, func(i, j int) bool {
		return s.BlockedDates[i].Before(s.BlockedDates[j])
	})
	out := s.BlockedDates[:0]
	for i, d := range s.BlockedDates {
		if i > 0 && d.Equal(out[len(out)-1]) {
			continue
		}
		out = append(out, d)
	}
	s.BlockedDates = out
}

// BlockedSet returns blocked dates as a set
func (s *Settings) BlockedSet() map[CalendarDate]struct{} {
	set := make(map[CalendarDate]struct{}, len(s.BlockedDates))
	for _, d := range s.BlockedDates {
		set[d] = struct{}{}
	}
	return set
}

// Clone returns a deep copy
func (s *Settings) Clone() *Settings {
	c := *s
	c.BlockedDates = append([]CalendarDate{}, s.BlockedDates...)
	return &c
}
