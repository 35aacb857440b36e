package domain

import "github.com/m04kA/SMC-CafeOrderService/pkg/types"

// Business hours and slot grid. Fixed business rules, not configuration.
const (
	OpeningTime     types.TimeString = "10:45"
	ClosingTime     types.TimeString = "15:30" // exclusive: the last slot starts before this
	SlotStepMinutes                  = 15
	LeadTimeMinutes                  = 15
)

// BookingWindowDays number of consecutive days, starting today, offered for collection
const BookingWindowDays = 14

// Default settings values
const (
	DefaultMaxOrdersPerSlot = 3
)

// Business validation constants
const (
	MinOrdersPerSlot   = 1
	MaxOrdersPerSlot   = 100
	MaxItemsPerOrder   = 50
	MaxQuantityPerItem = 99
	MaxEmailLength     = 254
)

// Time format constants
const (
	TimeFormat = "15:04"      // HH:MM
	DateFormat = "2006-01-02" // YYYY-MM-DD
)
