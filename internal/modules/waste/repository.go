package waste

import "context"

// Repository defines data access for waste categories and the waste log.
type Repository interface {
	// LoadCategories returns the category registry. Malformed persisted data
	// degrades to an empty registry.
	LoadCategories(ctx context.Context) ([]Category, error)

	// SaveCategories overwrites the category registry.
	SaveCategories(ctx context.Context, categories []Category) error

	// LoadLog returns the full waste log, oldest first.
	LoadLog(ctx context.Context) ([]Entry, error)

	// SaveLog overwrites the waste log. The service only ever appends.
	SaveLog(ctx context.Context, entries []Entry) error
}
