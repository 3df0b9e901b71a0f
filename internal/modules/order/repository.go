package order

import "context"

// Repository defines data access for the order collection. Every mutation in
// the service reads the whole collection, transforms it, and writes it back,
// so the contract is deliberately coarse.
type Repository interface {
	// LoadAll returns the full historical order list, oldest first. Malformed
	// persisted data degrades to an empty list rather than an error.
	LoadAll(ctx context.Context) ([]Order, error)

	// SaveAll overwrites the full historical order list.
	SaveAll(ctx context.Context, orders []Order) error

	// NextID returns the next order number from the persisted counter.
	NextID(ctx context.Context) (int, error)

	// ResetIDCounter rewinds the persisted counter to n, so the next order
	// gets n+1.
	ResetIDCounter(ctx context.Context, n int) error
}
