package slots

import "github.com/m04kA/SMC-CafeOrderService/internal/domain"

// IsDateSelectable is false iff date is one of blockedDates
func IsDateSelectable(date domain.CalendarDate, blockedDates []domain.CalendarDate) bool {
	for _, d := range blockedDates {
		if d.Equal(date) {
			return false
		}
	}
	return true
}

// FilterSlots marks each slot selectable iff its booking count is strictly
// below maxOrdersPerSlot. counts is keyed by TimeSlot.Key; a missing key means zero.
func FilterSlots(slots []domain.TimeSlot, counts map[string]int, maxOrdersPerSlot int) []domain.SlotAvailability {
	result := make([]domain.SlotAvailability, len(slots))

	for i, slot := range slots {
		booked := counts[slot.Key()]

		remaining := maxOrdersPerSlot - booked
		if remaining < 0 {
			remaining = 0
		}

		result[i] = domain.SlotAvailability{
			Slot:         slot,
			IsSelectable: booked < maxOrdersPerSlot,
			Booked:       booked,
			Remaining:    remaining,
		}
	}

	return result
}

// Availability combines the generator and the policy for one date.
// A blocked date yields no selectable slots.
func Availability(
	date domain.CalendarDate,
	generated []domain.TimeSlot,
	settings *domain.Settings,
	counts map[string]int,
) []domain.SlotAvailability {
	result := FilterSlots(generated, counts, settings.MaxOrdersPerSlot)
	if IsDateSelectable(date, settings.BlockedDates) {
		return result
	}
	for i := range result {
		result[i].IsSelectable = false
	}
	return result
}
