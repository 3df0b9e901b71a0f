package report

import (
	"context"
	"time"

	"github.com/cuppanote/cuppa-backend/internal/modules/order"
)

// Source provides the historical order collection the reports read. The
// reporting engine never mutates it.
type Source interface {
	LoadAll(ctx context.Context) ([]order.Order, error)
}

// Query names a reporting window plus optional filters, as received from the
// HTTP layer.
type Query struct {
	Range    string
	Start    string
	End      string
	Category string
	Customer string
	Search   string
}

// Service resolves queries against the order source and runs the pure
// aggregation functions.
type Service interface {
	Summary(ctx context.Context, q Query) (*Summary, error)
	Daily(ctx context.Context, q Query) ([]TrendPoint, error)
	TopItems(ctx context.Context, q Query) ([]TopItem, error)
	Categories(ctx context.Context, q Query) ([]CategorySales, error)
	Hourly(ctx context.Context, q Query) ([24]int, error)
	ExportCSV(ctx context.Context, q Query) ([]byte, error)
}

type service struct {
	src Source
	now func() time.Time
}

// NewService creates a new reporting service.
func NewService(src Source) Service {
	return &service{src: src, now: time.Now}
}

func (s *service) resolve(ctx context.Context, q Query) ([]order.Order, Window, Filters, error) {
	w, err := ResolveWindow(q.Range, s.now(), q.Start, q.End)
	if err != nil {
		return nil, Window{}, Filters{}, err
	}
	orders, err := s.src.LoadAll(ctx)
	if err != nil {
		return nil, Window{}, Filters{}, err
	}
	f := Filters{Category: q.Category, Customer: q.Customer, Query: q.Search}
	return orders, w, f, nil
}

func (s *service) Summary(ctx context.Context, q Query) (*Summary, error) {
	orders, w, f, err := s.resolve(ctx, q)
	if err != nil {
		return nil, err
	}
	return &Summary{
		Window:          w,
		Metrics:         Reduce(Filter(orders, w, f)),
		SalesGrowthRate: SalesGrowthRate(orders, w, f),
	}, nil
}

func (s *service) Daily(ctx context.Context, q Query) ([]TrendPoint, error) {
	orders, w, f, err := s.resolve(ctx, q)
	if err != nil {
		return nil, err
	}
	return Trends(DailySeries(Filter(orders, w, f), w)), nil
}

func (s *service) TopItems(ctx context.Context, q Query) ([]TopItem, error) {
	orders, w, f, err := s.resolve(ctx, q)
	if err != nil {
		return nil, err
	}
	return TopItems(Filter(orders, w, f)), nil
}

func (s *service) Categories(ctx context.Context, q Query) ([]CategorySales, error) {
	orders, w, f, err := s.resolve(ctx, q)
	if err != nil {
		return nil, err
	}
	return Reduce(Filter(orders, w, f)).SalesByCategory, nil
}

func (s *service) Hourly(ctx context.Context, q Query) ([24]int, error) {
	orders, w, f, err := s.resolve(ctx, q)
	if err != nil {
		return [24]int{}, err
	}
	return Reduce(Filter(orders, w, f)).OrdersByHour, nil
}

func (s *service) ExportCSV(ctx context.Context, q Query) ([]byte, error) {
	orders, w, f, err := s.resolve(ctx, q)
	if err != nil {
		return nil, err
	}
	return ExportCSV(Filter(orders, w, f), w)
}
