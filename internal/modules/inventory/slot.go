package inventory

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

func (r *slotRepo) LoadAll(ctx context.Context) ([]Item, error) {
	var items []Item
	err := r.store.Load(store.SlotInventory, &items)
	if errors.Is(err, apperr.ErrLoadFailure) {
		log.Printf("WARN inventory slot unreadable, starting empty: %v", err)
		return []Item{}, nil
	}
	if err != nil {
		return nil, err
	}
	if items == nil {
		items = []Item{}
	}
	return items, nil
}

func (r *slotRepo) SaveAll(ctx context.Context, items []Item) error {
	return r.store.Save(store.SlotInventory, items)
}
