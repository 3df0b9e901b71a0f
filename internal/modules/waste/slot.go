package waste

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

func (r *slotRepo) LoadCategories(ctx context.Context) ([]Category, error) {
	var categories []Category
	err := r.store.Load(store.SlotWasteCategories, &categories)
	if errors.Is(err, apperr.ErrLoadFailure) {
		log.Printf("WARN waste categories slot unreadable, starting empty: %v", err)
		return []Category{}, nil
	}
	if err != nil {
		return nil, err
	}
	if categories == nil {
		categories = []Category{}
	}
	return categories, nil
}

func (r *slotRepo) SaveCategories(ctx context.Context, categories []Category) error {
	return r.store.Save(store.SlotWasteCategories, categories)
}

func (r *slotRepo) LoadLog(ctx context.Context) ([]Entry, error) {
	var entries []Entry
	err := r.store.Load(store.SlotWasteLog, &entries)
	if errors.Is(err, apperr.ErrLoadFailure) {
		log.Printf("WARN waste log slot unreadable, starting empty: %v", err)
		return []Entry{}, nil
	}
	if err != nil {
		return nil, err
	}
	if entries == nil {
		entries = []Entry{}
	}
	return entries, nil
}

func (r *slotRepo) SaveLog(ctx context.Context, entries []Entry) error {
	return r.store.Save(store.SlotWasteLog, entries)
}
