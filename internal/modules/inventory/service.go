package inventory

import (
	"context"
	"fmt"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/google/uuid"

	"github.com/cuppanote/cuppa-backend/internal/apperr"
)

// Service defines inventory business logic.
type Service interface {
	Create(ctx context.Context, req UpsertItemRequest) (*ItemView, error)
	Update(ctx context.Context, id string, req UpsertItemRequest) (*ItemView, error)

	// Restock sets the on-hand quantity and stamps the restock time.
	Restock(ctx context.Context, id string, req RestockRequest) (*ItemView, error)

	Delete(ctx context.Context, id string) error
	List(ctx context.Context) ([]ItemView, error)

	// LowStockReport lists items at or below their minimum threshold with a
	// human-readable restock age.
	LowStockReport(ctx context.Context) ([]LowStockAlert, error)
}

type service struct {
	repo Repository
	now  func() time.Time
}

// NewService creates a new inventory service.
func NewService(repo Repository) Service {
	return &service{repo: repo, now: time.Now}
}

func (s *service) Create(ctx context.Context, req UpsertItemRequest) (*ItemView, error) {
	if err := validate(req); err != nil {
		return nil, err
	}
	items, err := s.repo.LoadAll(ctx)
	if err != nil {
		return nil, err
	}

	item := Item{
		ID:            uuid.New(),
		Name:          req.Name,
		Category:      req.Category,
		Quantity:      req.Quantity,
		Unit:          req.Unit,
		MinThreshold:  req.MinThreshold,
		MaxThreshold:  req.MaxThreshold,
		UnitCost:      req.UnitCost,
		LastRestocked: s.now(),
		Supplier:      req.Supplier,
		Location:      req.Location,
		Notes:         req.Notes,
	}
	items = append(items, item)
	if err := s.repo.SaveAll(ctx, items); err != nil {
		return nil, err
	}
	return view(item), nil
}

func (s *service) Update(ctx context.Context, id string, req UpsertItemRequest) (*ItemView, error) {
	if err := validate(req); err != nil {
		return nil, err
	}
	return s.mutate(ctx, id, func(it *Item) {
		it.Name = req.Name
		it.Category = req.Category
		it.Quantity = req.Quantity
		it.Unit = req.Unit
		it.MinThreshold = req.MinThreshold
		it.MaxThreshold = req.MaxThreshold
		it.UnitCost = req.UnitCost
		it.Supplier = req.Supplier
		it.Location = req.Location
		it.Notes = req.Notes
	})
}

func (s *service) Restock(ctx context.Context, id string, req RestockRequest) (*ItemView, error) {
	if req.Quantity < 0 {
		return nil, fmt.Errorf("%w: quantity cannot be negative", apperr.ErrValidation)
	}
	return s.mutate(ctx, id, func(it *Item) {
		it.Quantity = req.Quantity
		it.LastRestocked = s.now()
	})
}

func (s *service) Delete(ctx context.Context, id string) error {
	items, err := s.repo.LoadAll(ctx)
	if err != nil {
		return err
	}
	for i := range items {
		if items[i].ID.String() == id {
			items = append(items[:i], items[i+1:]...)
			return s.repo.SaveAll(ctx, items)
		}
	}
	return fmt.Errorf("inventory item %s: %w", id, apperr.ErrNotFound)
}

func (s *service) List(ctx context.Context) ([]ItemView, error) {
	items, err := s.repo.LoadAll(ctx)
	if err != nil {
		return nil, err
	}
	views := make([]ItemView, 0, len(items))
	for _, it := range items {
		views = append(views, *view(it))
	}
	return views, nil
}

func (s *service) LowStockReport(ctx context.Context) ([]LowStockAlert, error) {
	items, err := s.repo.LoadAll(ctx)
	if err != nil {
		return nil, err
	}
	alerts := []LowStockAlert{}
	for _, it := range items {
		if !it.LowStock() {
			continue
		}
		alerts = append(alerts, LowStockAlert{
			Item:         it,
			RestockedAgo: humanize.Time(it.LastRestocked),
		})
	}
	return alerts, nil
}

func (s *service) mutate(ctx context.Context, id string, fn func(*Item)) (*ItemView, error) {
	items, err := s.repo.LoadAll(ctx)
	if err != nil {
		return nil, err
	}
	for i := range items {
		if items[i].ID.String() != id {
			continue
		}
		fn(&items[i])
		if err := s.repo.SaveAll(ctx, items); err != nil {
			return nil, err
		}
		return view(items[i]), nil
	}
	return nil, fmt.Errorf("inventory item %s: %w", id, apperr.ErrNotFound)
}

func view(it Item) *ItemView {
	return &ItemView{Item: it, LowStock: it.LowStock()}
}

func validate(req UpsertItemRequest) error {
	if req.Name == "" {
		return fmt.Errorf("%w: name is required", apperr.ErrValidation)
	}
	if req.Category == "" {
		return fmt.Errorf("%w: category is required", apperr.ErrValidation)
	}
	if req.Unit == "" {
		return fmt.Errorf("%w: unit is required", apperr.ErrValidation)
	}
	if req.Quantity < 0 {
		return fmt.Errorf("%w: quantity cannot be negative", apperr.ErrValidation)
	}
	if req.MinThreshold < 0 || req.MaxThreshold < 0 {
		return fmt.Errorf("%w: thresholds cannot be negative", apperr.ErrValidation)
	}
	if req.MaxThreshold > 0 && req.MinThreshold > req.MaxThreshold {
		return fmt.Errorf("%w: min threshold exceeds max threshold", apperr.ErrValidation)
	}
	return nil
}
