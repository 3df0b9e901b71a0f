package settings

import (
	"context"
	"errors"
	"log"

	"github.com/cuppanote/cuppa-backend/internal/apperr"
	"github.com/cuppanote/cuppa-backend/internal/store"
)

type slotRepo struct{ store store.Store }

// NewSlotRepository returns a Repository backed by the named-slot store.
func NewSlotRepository(s store.Store) Repository { return &slotRepo{store: s} }

func (r *slotRepo) LoadPreferences(ctx context.Context) (Preferences, bool, error) {
	var p *Preferences
	err := r.store.Load(store.SlotPreferences, &p)
	if errors.Is(err, apperr.ErrLoadFailure) {
		log.Printf("WARN preferences slot unreadable, using defaults: %v", err)
		return Preferences{}, false, nil
	}
	if err != nil {
		return Preferences{}, false, err
	}
	if p == nil {
		return Preferences{}, false, nil
	}
	return *p, true, nil
}

func (r *slotRepo) SavePreferences(ctx context.Context, p Preferences) error {
	return r.store.Save(store.SlotPreferences, p)
}

func (r *slotRepo) LoadNotes(ctx context.Context) ([]string, error) {
	var notes []string
	err := r.store.Load(store.SlotQuickNotes, &notes)
	if errors.Is(err, apperr.ErrLoadFailure) {
		log.Printf("WARN quick notes slot unreadable, starting empty: %v", err)
		return []string{}, nil
	}
	if err != nil {
		return nil, err
	}
	if notes == nil {
		notes = []string{}
	}
	return notes, nil
}

func (r *slotRepo) SaveNotes(ctx context.Context, notes []string) error {
	return r.store.Save(store.SlotQuickNotes, notes)
}
