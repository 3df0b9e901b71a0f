package menu

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/cuppanote/cuppa-backend/internal/apperr"
)

// Service defines menu registry business logic.
type Service interface {
	Create(ctx context.Context, req UpsertItemRequest) (*MenuItem, error)
	Update(ctx context.Context, id string, req UpsertItemRequest) (*MenuItem, error)
	Delete(ctx context.Context, id string) error
	List(ctx context.Context, category string) ([]MenuItem, error)

	// Seed installs the default coffee menu when the registry is empty.
	Seed(ctx context.Context) error
}

type service struct {
	repo Repository
}

// NewService creates a new menu service.
func NewService(repo Repository) Service { return &service{repo: repo} }

func (s *service) Create(ctx context.Context, req UpsertItemRequest) (*MenuItem, error) {
	if err := validate(req); err != nil {
		return nil, err
	}
	items, err := s.repo.LoadAll(ctx)
	if err != nil {
		return nil, err
	}
	for _, it := range items {
		if strings.EqualFold(it.Name, req.Name) {
			return nil, fmt.Errorf("%w: menu item %q already exists", apperr.ErrValidation, req.Name)
		}
	}

	item := MenuItem{
		ID:        uuid.New(),
		Name:      req.Name,
		Price:     req.Price,
		Category:  req.Category,
		Available: true,
		CreatedAt: nowUTC(),
		UpdatedAt: nowUTC(),
	}
	if req.Available != nil {
		item.Available = *req.Available
	}

	items = append(items, item)
	if err := s.repo.SaveAll(ctx, items); err != nil {
		return nil, err
	}
	return &item, nil
}

func (s *service) Update(ctx context.Context, id string, req UpsertItemRequest) (*MenuItem, error) {
	if err := validate(req); err != nil {
		return nil, err
	}
	items, err := s.repo.LoadAll(ctx)
	if err != nil {
		return nil, err
	}
	for i := range items {
		if items[i].ID.String() != id {
			continue
		}
		items[i].Name = req.Name
		items[i].Price = req.Price
		items[i].Category = req.Category
		if req.Available != nil {
			items[i].Available = *req.Available
		}
		items[i].UpdatedAt = nowUTC()
		if err := s.repo.SaveAll(ctx, items); err != nil {
			return nil, err
		}
		return &items[i], nil
	}
	return nil, fmt.Errorf("menu item %s: %w", id, apperr.ErrNotFound)
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
	return fmt.Errorf("menu item %s: %w", id, apperr.ErrNotFound)
}

func (s *service) List(ctx context.Context, category string) ([]MenuItem, error) {
	items, err := s.repo.LoadAll(ctx)
	if err != nil {
		return nil, err
	}
	if category == "" {
		return items, nil
	}
	filtered := make([]MenuItem, 0, len(items))
	for _, it := range items {
		if strings.EqualFold(it.Category, category) {
			filtered = append(filtered, it)
		}
	}
	return filtered, nil
}

func (s *service) Seed(ctx context.Context) error {
	items, err := s.repo.LoadAll(ctx)
	if err != nil {
		return err
	}
	if len(items) > 0 {
		return nil
	}
	return s.repo.SaveAll(ctx, defaultMenu())
}

func validate(req UpsertItemRequest) error {
	if req.Name == "" {
		return fmt.Errorf("%w: name is required", apperr.ErrValidation)
	}
	if req.Category == "" {
		return fmt.Errorf("%w: category is required", apperr.ErrValidation)
	}
	if req.Price < 0 {
		return fmt.Errorf("%w: price cannot be negative", apperr.ErrValidation)
	}
	return nil
}
