package domain

import "errors"

// Storage contract errors. Every storage driver reports these sentinels so
// callers do not depend on a concrete backend.
var (
	// ErrSettingsNotFound means the settings singleton has not been created yet
	ErrSettingsNotFound = errors.New("storage: settings not found")

	// ErrSlotFull is returned by Reserve when the conditional increment found the slot at capacity
	ErrSlotFull = errors.New("storage: slot is full")

	// ErrOrderNotFound is returned when no order has the requested id
	ErrOrderNotFound = errors.New("storage: order not found")

	// ErrPaymentStatusConflict is returned when the stored status no longer matches the expected one
	ErrPaymentStatusConflict = errors.New("storage: payment status changed concurrently")
)
