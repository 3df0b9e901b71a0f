package menu

import "context"

// Repository defines data access for the menu registry.
type Repository interface {
	// LoadAll returns every menu item. Malformed persisted data degrades to an
	// empty registry.
	LoadAll(ctx context.Context) ([]MenuItem, error)

	// SaveAll overwrites the registry.
	SaveAll(ctx context.Context, items []MenuItem) error
}
