package menu

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

func (r *slotRepo) LoadAll(ctx context.Context) ([]MenuItem, error) {
	var items []MenuItem
	err := r.store.Load(store.SlotMenu, &items)
	if errors.Is(err, apperr.ErrLoadFailure) {
		log.Printf("WARN menu slot unreadable, starting empty: %v", err)
		return []MenuItem{}, nil
	}
	if err != nil {
		return nil, err
	}
	if items == nil {
		items = []MenuItem{}
	}
	return items, nil
}

func (r *slotRepo) SaveAll(ctx context.Context, items []MenuItem) error {
	return r.store.Save(store.SlotMenu, items)
}
