package order

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/cuppanote/cuppa-backend/internal/apperr"
)

// Service defines the order lifecycle business logic. Every transition is
// guarded here so the same invariants hold whether the caller is the HTTP
// layer, a test, or a script.
type Service interface {
	// Place validates the request, computes totals and queue time, assigns the
	// next order number, and persists the order as Pending.
	Place(ctx context.Context, req PlaceOrderRequest) (*Order, error)

	// Get retrieves a single order, active or historical.
	Get(ctx context.Context, id int) (*Order, error)

	// ListActive returns the working list sorted by the given key,
	// descending unless ascending is set. Ties keep input order.
	ListActive(ctx context.Context, sortBy string, ascending bool) ([]Order, error)

	// ListHistory returns the full historical list, cancelled and cleared
	// orders included, in stored order.
	ListHistory(ctx context.Context) ([]Order, error)

	// Start moves a pending order into preparation and records its start time.
	Start(ctx context.Context, id int) (*Order, error)

	// Complete finishes an order. Preparation time is derived from the start
	// time when one was recorded, and left unset otherwise.
	Complete(ctx context.Context, id int) (*Order, error)

	// Cancel rejects a pending order. The order stays in history.
	Cancel(ctx context.Context, id int) error

	// Modify edits items or customer fields of a pending order and recomputes
	// the total.
	Modify(ctx context.Context, id int, req ModifyOrderRequest) (*Order, error)

	// UpdateNotes replaces the annotation. Allowed in any status.
	UpdateNotes(ctx context.Context, id int, notes string) (*Order, error)

	// RecordLeadInterest stores the sales-lead flag. Writable exactly once.
	RecordLeadInterest(ctx context.Context, id int, interested bool) (*Order, error)

	// ClearAll marks every active order Cleared and reports how many were
	// affected. History is untouched; this is a visibility operation.
	ClearAll(ctx context.Context) (int, error)

	// ResetIDs reassigns ids 1..N across the whole collection based on the
	// current display order. Destroys external references to old ids.
	ResetIDs(ctx context.Context, req ResetIDsRequest) ([]Order, error)
}

type service struct {
	repo Repository
	now  func() time.Time
}

// NewService creates a new order service.
func NewService(repo Repository) Service {
	return &service{repo: repo, now: time.Now}
}

// validTransitions defines the allowed status state machine. Cleared is only
// reachable through the bulk ClearAll action, never a per-order transition.
var validTransitions = map[Status][]Status{
	StatusPending:    {StatusInProgress, StatusCompleted, StatusCancelled},
	StatusInProgress: {StatusCompleted},
	StatusCompleted:  {},
	StatusCancelled:  {},
	StatusCleared:    {},
}

func canTransition(from, to Status) bool {
	for _, s := range validTransitions[from] {
		if s == to {
			return true
		}
	}
	return false
}

func (s *service) Place(ctx context.Context, req PlaceOrderRequest) (*Order, error) {
	if req.FirstName == "" {
		return nil, fmt.Errorf("%w: first_name is required", apperr.ErrValidation)
	}
	items, err := buildItems(req.Items)
	if err != nil {
		return nil, err
	}

	now := s.now()
	queueTime := 0
	if req.QueuedAt != nil {
		if secs := int(now.Sub(*req.QueuedAt).Seconds()); secs > 0 {
			queueTime = secs
		}
	}

	id, err := s.repo.NextID(ctx)
	if err != nil {
		return nil, fmt.Errorf("assign order number: %w", err)
	}

	o := Order{
		ID:              id,
		CustomerName:    displayName(req.FirstName, req.LastName),
		Status:          StatusPending,
		Timestamp:       now,
		Items:           items,
		Total:           orderTotal(items, req.IsComplimentary),
		IsComplimentary: req.IsComplimentary,
		QueueTime:       queueTime,
		Notes:           req.Notes,
	}

	orders, err := s.repo.LoadAll(ctx)
	if err != nil {
		return nil, err
	}
	orders = append(orders, o)
	if err := s.repo.SaveAll(ctx, orders); err != nil {
		return nil, fmt.Errorf("persist order: %w", err)
	}
	return &o, nil
}

func (s *service) Get(ctx context.Context, id int) (*Order, error) {
	orders, err := s.repo.LoadAll(ctx)
	if err != nil {
		return nil, err
	}
	for i := range orders {
		if orders[i].ID == id {
			return &orders[i], nil
		}
	}
	return nil, fmt.Errorf("order %d: %w", id, apperr.ErrNotFound)
}

func (s *service) ListActive(ctx context.Context, sortBy string, ascending bool) ([]Order, error) {
	orders, err := s.repo.LoadAll(ctx)
	if err != nil {
		return nil, err
	}
	var active []Order
	for _, o := range orders {
		if o.Active() {
			active = append(active, o)
		}
	}
	sortOrders(active, sortBy, ascending)
	return active, nil
}

func (s *service) ListHistory(ctx context.Context) ([]Order, error) {
	return s.repo.LoadAll(ctx)
}

func (s *service) Start(ctx context.Context, id int) (*Order, error) {
	return s.mutate(ctx, id, func(o *Order) error {
		if !canTransition(o.Status, StatusInProgress) {
			return fmt.Errorf("%w: cannot start order in status %s", apperr.ErrPrecondition, o.Status)
		}
		now := s.now()
		o.Status = StatusInProgress
		o.StartTime = &now
		return nil
	})
}

func (s *service) Complete(ctx context.Context, id int) (*Order, error) {
	return s.mutate(ctx, id, func(o *Order) error {
		if !canTransition(o.Status, StatusCompleted) {
			return fmt.Errorf("%w: cannot complete order in status %s", apperr.ErrPrecondition, o.Status)
		}
		if o.StartTime != nil {
			secs := int(s.now().Sub(*o.StartTime).Seconds())
			if secs < 0 {
				secs = 0
			}
			o.PreparationTime = &secs
		}
		o.Status = StatusCompleted
		return nil
	})
}

func (s *service) Cancel(ctx context.Context, id int) error {
	_, err := s.mutate(ctx, id, func(o *Order) error {
		if o.Status != StatusPending {
			return fmt.Errorf("%w: only pending orders can be cancelled (current: %s)", apperr.ErrPrecondition, o.Status)
		}
		o.Status = StatusCancelled
		return nil
	})
	return err
}

func (s *service) Modify(ctx context.Context, id int, req ModifyOrderRequest) (*Order, error) {
	return s.mutate(ctx, id, func(o *Order) error {
		if o.Status != StatusPending {
			return fmt.Errorf("%w: only pending orders can be modified (current: %s)", apperr.ErrPrecondition, o.Status)
		}
		if req.Items != nil {
			items, err := buildItems(req.Items)
			if err != nil {
				return err
			}
			o.Items = items
			o.Total = orderTotal(items, o.IsComplimentary)
		}
		if req.FirstName != "" {
			o.CustomerName = displayName(req.FirstName, req.LastName)
		}
		return nil
	})
}

func (s *service) UpdateNotes(ctx context.Context, id int, notes string) (*Order, error) {
	return s.mutate(ctx, id, func(o *Order) error {
		o.Notes = notes
		return nil
	})
}

func (s *service) RecordLeadInterest(ctx context.Context, id int, interested bool) (*Order, error) {
	return s.mutate(ctx, id, func(o *Order) error {
		if o.LeadInterest != nil {
			return fmt.Errorf("%w: lead interest already recorded", apperr.ErrPrecondition)
		}
		o.LeadInterest = &interested
		return nil
	})
}

func (s *service) ClearAll(ctx context.Context) (int, error) {
	orders, err := s.repo.LoadAll(ctx)
	if err != nil {
		return 0, err
	}
	cleared := 0
	for i := range orders {
		if orders[i].Active() {
			orders[i].Status = StatusCleared
			cleared++
		}
	}
	if cleared == 0 {
		return 0, nil
	}
	if err := s.repo.SaveAll(ctx, orders); err != nil {
		return 0, err
	}
	return cleared, nil
}

func (s *service) ResetIDs(ctx context.Context, req ResetIDsRequest) ([]Order, error) {
	orders, err := s.repo.LoadAll(ctx)
	if err != nil {
		return nil, err
	}

	var active, inactive []Order
	for _, o := range orders {
		if o.Active() {
			active = append(active, o)
		} else {
			inactive = append(inactive, o)
		}
	}
	sortOrders(active, req.SortBy, req.Ascending)
	sortOrders(inactive, SortByTimestamp, false)

	renumbered := append(active, inactive...)
	for i := range renumbered {
		renumbered[i].ID = i + 1
	}

	if err := s.repo.SaveAll(ctx, renumbered); err != nil {
		return nil, err
	}
	if err := s.repo.ResetIDCounter(ctx, len(renumbered)); err != nil {
		return nil, err
	}
	return renumbered, nil
}

// mutate loads the collection, applies fn to the order with the given id, and
// writes the whole collection back. Single-writer semantics per request.
func (s *service) mutate(ctx context.Context, id int, fn func(*Order) error) (*Order, error) {
	orders, err := s.repo.LoadAll(ctx)
	if err != nil {
		return nil, err
	}
	for i := range orders {
		if orders[i].ID != id {
			continue
		}
		if err := fn(&orders[i]); err != nil {
			return nil, err
		}
		if err := s.repo.SaveAll(ctx, orders); err != nil {
			return nil, fmt.Errorf("persist order %d: %w", id, err)
		}
		return &orders[i], nil
	}
	return nil, fmt.Errorf("order %d: %w", id, apperr.ErrNotFound)
}

func buildItems(reqs []ItemRequest) ([]OrderItem, error) {
	if len(reqs) == 0 {
		return nil, fmt.Errorf("%w: order must contain at least one item", apperr.ErrValidation)
	}
	items := make([]OrderItem, 0, len(reqs))
	for _, ir := range reqs {
		if ir.Name == "" {
			return nil, fmt.Errorf("%w: item name is required", apperr.ErrValidation)
		}
		if ir.Category == "" {
			return nil, fmt.Errorf("%w: item category is required for %q", apperr.ErrValidation, ir.Name)
		}
		if ir.Quantity < 1 {
			return nil, fmt.Errorf("%w: quantity must be at least 1 for %q", apperr.ErrValidation, ir.Name)
		}
		if ir.Price < 0 {
			return nil, fmt.Errorf("%w: price cannot be negative for %q", apperr.ErrValidation, ir.Name)
		}
		items = append(items, OrderItem{
			Name:     ir.Name,
			Quantity: ir.Quantity,
			Price:    ir.Price,
			Category: ir.Category,
		})
	}
	return items, nil
}

// orderTotal applies the complimentary rule: the nominal item total still
// exists on the cart side, but the persisted total carries zero revenue.
func orderTotal(items []OrderItem, complimentary bool) float64 {
	if complimentary {
		return 0
	}
	return itemTotal(items)
}

// sortOrders sorts in place, descending by default. The stable sort keeps
// input order on ties; there is no secondary key.
func sortOrders(orders []Order, sortBy string, ascending bool) {
	key := func(o Order) float64 {
		switch sortBy {
		case SortByPrepTime:
			if o.PreparationTime == nil {
				return 0
			}
			return float64(*o.PreparationTime)
		case SortByQueueTime:
			return float64(o.QueueTime)
		default:
			return float64(o.Timestamp.UnixNano())
		}
	}
	sort.SliceStable(orders, func(i, j int) bool {
		if ascending {
			return key(orders[i]) < key(orders[j])
		}
		return key(orders[i]) > key(orders[j])
	})
}
