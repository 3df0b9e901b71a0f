// Package store persists application state as named slots holding
// JSON-encoded values, the same layout the POS keeps on disk between runs.
// Every module receives a Store by injection; nothing reaches for storage
// through package-level state.
package store

// Slot names. The set of slots and the shape of their values is part of the
// import/export contract.
const (
	SlotOrders          = "orders"
	SlotLastOrderNumber = "lastOrderNumber"
	SlotMenu            = "menu"
	SlotInventory       = "inventory"
	SlotWasteLog        = "wasteLog"
	SlotWasteCategories = "wasteCategories"
	SlotPreferences     = "systemPreferences"
	SlotQuickNotes      = "quickNotes"
)

// Store is the named-slot persistence contract.
type Store interface {
	// Load unmarshals the slot value into v. A missing slot leaves v at its
	// zero value and returns nil. Malformed content returns an error wrapping
	// apperr.ErrLoadFailure; callers are expected to continue with an empty
	// collection.
	Load(slot string, v interface{}) error

	// Save marshals v and overwrites the slot.
	Save(slot string, v interface{}) error

	// Clear removes the slot entirely.
	Clear(slot string) error

	// ReplaceAll overwrites every given slot in a single transaction. Either
	// all slots are written or none are.
	ReplaceAll(slots map[string]interface{}) error

	// NextCounter increments and returns the integer counter kept in the slot,
	// starting from 1 when the slot is empty.
	NextCounter(slot string) (int, error)

	// ResetCounter overwrites the counter slot with n.
	ResetCounter(slot string, n int) error

	Close() error
}
