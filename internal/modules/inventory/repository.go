package inventory

import "context"

// Repository defines data access for stock records.
type Repository interface {
	// LoadAll returns every stock record. Malformed persisted data degrades to
	// an empty list.
	LoadAll(ctx context.Context) ([]Item, error)

	// SaveAll overwrites the stock records.
	SaveAll(ctx context.Context, items []Item) error
}
