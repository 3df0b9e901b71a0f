package inventory

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/cuppanote/cuppa-backend/internal/apperr"
	"github.com/cuppanote/cuppa-backend/internal/store"
)

func newTestService(t *testing.T) *service {
	t.Helper()
	return NewService(NewSlotRepository(store.NewMemory())).(*service)
}

var beansReq = UpsertItemRequest{
	Name:         "Espresso Beans",
	Category:     "Coffee",
	Quantity:     12,
	Unit:         "kg",
	MinThreshold: 5,
	MaxThreshold: 25,
	UnitCost:     18.50,
	Supplier:     "Roastery North",
}

func TestLowStockIsDerivedOnRead(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	created, err := svc.Create(ctx, beansReq)
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if created.LowStock {
		t.Error("12kg against a 5kg threshold should not be low stock")
	}

	// Dropping the quantity to the threshold flips the derived flag.
	low, err := svc.Restock(ctx, created.ID.String(), RestockRequest{Quantity: 5})
	if err != nil {
		t.Fatalf("Restock: %v", err)
	}
	if !low.LowStock {
		t.Error("quantity equal to threshold should read as low stock")
	}

	alerts, err := svc.LowStockReport(ctx)
	if err != nil {
		t.Fatalf("LowStockReport: %v", err)
	}
	if len(alerts) != 1 || alerts[0].Name != "Espresso Beans" {
		t.Errorf("alerts = %v, want the beans", alerts)
	}
	if alerts[0].RestockedAgo == "" {
		t.Error("alert should carry a humanized restock age")
	}
}

func TestRestockStampsTime(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	created, err := svc.Create(ctx, beansReq)
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	restockedAt := time.Date(2026, 4, 1, 7, 0, 0, 0, time.UTC)
	svc.now = func() time.Time { return restockedAt }

	item, err := svc.Restock(ctx, created.ID.String(), RestockRequest{Quantity: 20})
	if err != nil {
		t.Fatalf("Restock: %v", err)
	}
	if item.Quantity != 20 {
		t.Errorf("Quantity = %v, want 20", item.Quantity)
	}
	if !item.LastRestocked.Equal(restockedAt) {
		t.Errorf("LastRestocked = %v, want %v", item.LastRestocked, restockedAt)
	}
}

func TestCreateValidation(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*UpsertItemRequest)
	}{
		{"missingName", func(r *UpsertItemRequest) { r.Name = "" }},
		{"missingCategory", func(r *UpsertItemRequest) { r.Category = "" }},
		{"missingUnit", func(r *UpsertItemRequest) { r.Unit = "" }},
		{"negativeQuantity", func(r *UpsertItemRequest) { r.Quantity = -1 }},
		{"minAboveMax", func(r *UpsertItemRequest) { r.MinThreshold = 30 }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := newTestService(t)
			req := beansReq
			tt.mutate(&req)
			if _, err := svc.Create(context.Background(), req); !errors.Is(err, apperr.ErrValidation) {
				t.Errorf("expected ErrValidation, got %v", err)
			}
		})
	}
}

func TestDeleteUnknownItem(t *testing.T) {
	svc := newTestService(t)
	err := svc.Delete(context.Background(), "b51d266b-23b5-46d6-b5c8-7e1de23e6e6f")
	if !errors.Is(err, apperr.ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}
