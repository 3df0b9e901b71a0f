package settings

import "context"

// Repository persists the preferences block and the quick-note list.
type Repository interface {
	LoadPreferences(ctx context.Context) (Preferences, bool, error)
	SavePreferences(ctx context.Context, p Preferences) error
	LoadNotes(ctx context.Context) ([]string, error)
	SaveNotes(ctx context.Context, notes []string) error
}
