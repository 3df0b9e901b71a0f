package waste

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/cuppanote/cuppa-backend/internal/apperr"
)

// Service defines waste tracking business logic.
type Service interface {
	CreateCategory(ctx context.Context, req CreateCategoryRequest) (*Category, error)
	ListCategories(ctx context.Context) ([]Category, error)
	DeleteCategory(ctx context.Context, id string) error

	// Log appends a waste entry, pricing it from the category's current
	// average cost.
	Log(ctx context.Context, req LogEntryRequest) (*Entry, error)

	// List returns waste entries, optionally bounded to an inclusive range.
	List(ctx context.Context, from, to *time.Time) ([]Entry, error)

	// CostForPeriod sums entry costs over an inclusive range.
	CostForPeriod(ctx context.Context, from, to time.Time) (*PeriodCost, error)
}

type service struct {
	repo Repository
	now  func() time.Time
}

// NewService creates a new waste service.
func NewService(repo Repository) Service {
	return &service{repo: repo, now: time.Now}
}

func (s *service) CreateCategory(ctx context.Context, req CreateCategoryRequest) (*Category, error) {
	if req.Name == "" {
		return nil, fmt.Errorf("%w: name is required", apperr.ErrValidation)
	}
	if req.AverageCost < 0 {
		return nil, fmt.Errorf("%w: average cost cannot be negative", apperr.ErrValidation)
	}
	categories, err := s.repo.LoadCategories(ctx)
	if err != nil {
		return nil, err
	}
	for _, c := range categories {
		if strings.EqualFold(c.Name, req.Name) {
			return nil, fmt.Errorf("%w: category %q already exists", apperr.ErrValidation, req.Name)
		}
	}

	category := Category{ID: uuid.New(), Name: req.Name, AverageCost: req.AverageCost}
	categories = append(categories, category)
	if err := s.repo.SaveCategories(ctx, categories); err != nil {
		return nil, err
	}
	return &category, nil
}

func (s *service) ListCategories(ctx context.Context) ([]Category, error) {
	return s.repo.LoadCategories(ctx)
}

func (s *service) DeleteCategory(ctx context.Context, id string) error {
	categories, err := s.repo.LoadCategories(ctx)
	if err != nil {
		return err
	}
	for i := range categories {
		if categories[i].ID.String() == id {
			categories = append(categories[:i], categories[i+1:]...)
			return s.repo.SaveCategories(ctx, categories)
		}
	}
	return fmt.Errorf("waste category %s: %w", id, apperr.ErrNotFound)
}

func (s *service) Log(ctx context.Context, req LogEntryRequest) (*Entry, error) {
	if req.ItemName == "" {
		return nil, fmt.Errorf("%w: item_name is required", apperr.ErrValidation)
	}
	if req.Quantity < 1 {
		return nil, fmt.Errorf("%w: quantity must be at least 1", apperr.ErrValidation)
	}

	category, err := s.findCategory(ctx, req.Category)
	if err != nil {
		return nil, err
	}

	entry := Entry{
		ID:        uuid.New(),
		ItemName:  req.ItemName,
		Category:  category.Name,
		Quantity:  req.Quantity,
		Timestamp: s.now(),
		Cost:      round2(float64(req.Quantity) * category.AverageCost),
		Notes:     req.Notes,
	}

	entries, err := s.repo.LoadLog(ctx)
	if err != nil {
		return nil, err
	}
	entries = append(entries, entry)
	if err := s.repo.SaveLog(ctx, entries); err != nil {
		return nil, err
	}
	return &entry, nil
}

func (s *service) List(ctx context.Context, from, to *time.Time) ([]Entry, error) {
	entries, err := s.repo.LoadLog(ctx)
	if err != nil {
		return nil, err
	}
	if from == nil && to == nil {
		return entries, nil
	}
	filtered := []Entry{}
	for _, e := range entries {
		if from != nil && e.Timestamp.Before(*from) {
			continue
		}
		if to != nil && e.Timestamp.After(*to) {
			continue
		}
		filtered = append(filtered, e)
	}
	return filtered, nil
}

func (s *service) CostForPeriod(ctx context.Context, from, to time.Time) (*PeriodCost, error) {
	entries, err := s.List(ctx, &from, &to)
	if err != nil {
		return nil, err
	}
	cost := PeriodCost{From: from, To: to, Entries: len(entries)}
	for _, e := range entries {
		cost.TotalCost += e.Cost
	}
	cost.TotalCost = round2(cost.TotalCost)
	return &cost, nil
}

func (s *service) findCategory(ctx context.Context, name string) (*Category, error) {
	if name == "" {
		return nil, fmt.Errorf("%w: category is required", apperr.ErrValidation)
	}
	categories, err := s.repo.LoadCategories(ctx)
	if err != nil {
		return nil, err
	}
	for i := range categories {
		if strings.EqualFold(categories[i].Name, name) {
			return &categories[i], nil
		}
	}
	return nil, fmt.Errorf("waste category %q: %w", name, apperr.ErrNotFound)
}

func round2(v float64) float64 {
	return float64(int(v*100+0.5)) / 100
}
