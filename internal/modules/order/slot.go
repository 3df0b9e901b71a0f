package order

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

func (r *slotRepo) LoadAll(ctx context.Context) ([]Order, error) {
	var orders []Order
	err := r.store.Load(store.SlotOrders, &orders)
	if errors.Is(err, apperr.ErrLoadFailure) {
		// Non-fatal: continue with an empty collection.
		log.Printf("WARN orders slot unreadable, starting empty: %v", err)
		return []Order{}, nil
	}
	if err != nil {
		return nil, err
	}
	if orders == nil {
		orders = []Order{}
	}
	return orders, nil
}

func (r *slotRepo) SaveAll(ctx context.Context, orders []Order) error {
	return r.store.Save(store.SlotOrders, orders)
}

func (r *slotRepo) NextID(ctx context.Context) (int, error) {
	return r.store.NextCounter(store.SlotLastOrderNumber)
}

func (r *slotRepo) ResetIDCounter(ctx context.Context, n int) error {
	return r.store.ResetCounter(store.SlotLastOrderNumber, n)
}
