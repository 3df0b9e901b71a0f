package backup

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/cuppanote/cuppa-backend/internal/apperr"
	"github.com/cuppanote/cuppa-backend/internal/modules/order"
	"github.com/cuppanote/cuppa-backend/internal/store"
)

func TestExportIncludesLiveState(t *testing.T) {
	st := store.NewMemory()
	orders := []order.Order{
		{ID: 1, CustomerName: "Ada L.", Status: order.StatusCompleted, Total: 4.5,
			Timestamp: time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)},
	}
	if err := st.Save(store.SlotOrders, orders); err != nil {
		t.Fatalf("Save: %v", err)
	}
	if err := st.ResetCounter(store.SlotLastOrderNumber, 1); err != nil {
		t.Fatalf("ResetCounter: %v", err)
	}

	svc := NewService(st)
	b, err := svc.Export(context.Background())
	if err != nil {
		t.Fatalf("Export: %v", err)
	}

	if b.Version != BundleVersion {
		t.Errorf("version = %d, want %d", b.Version, BundleVersion)
	}
	if b.LastOrderNumber != 1 {
		t.Errorf("lastOrderNumber = %d, want 1", b.LastOrderNumber)
	}
	var got []order.Order
	if err := json.Unmarshal(b.Orders, &got); err != nil {
		t.Fatalf("orders payload: %v", err)
	}
	if len(got) != 1 || got[0].CustomerName != "Ada L." {
		t.Errorf("orders = %+v", got)
	}
}

func TestExportEmptyStore(t *testing.T) {
	svc := NewService(store.NewMemory())

	b, err := svc.Export(context.Background())
	if err != nil {
		t.Fatalf("Export: %v", err)
	}
	if string(b.Orders) != "[]" {
		t.Errorf("orders payload = %s, want []", b.Orders)
	}
	if b.LastOrderNumber != 0 {
		t.Errorf("lastOrderNumber = %d, want 0", b.LastOrderNumber)
	}
}

func TestImportReplacesSlots(t *testing.T) {
	st := store.NewMemory()
	svc := NewService(st)

	data := []byte(`{
		"version": 1,
		"orders": [{"id": 7, "customerName": "Ben K.", "status": "Completed", "total": 3.25, "timestamp": "2026-03-01T09:00:00Z", "items": []}],
		"lastOrderNumber": 7,
		"preferences": {"darkMode": true, "currency": "EUR"}
	}`)

	result, err := svc.Import(context.Background(), data)
	if err != nil {
		t.Fatalf("Import: %v", err)
	}
	if result.Orders != 1 || result.LastOrderNumber != 7 {
		t.Errorf("result = %+v", result)
	}

	var orders []order.Order
	if err := st.Load(store.SlotOrders, &orders); err != nil {
		t.Fatalf("Load: %v", err)
	}
	if len(orders) != 1 || orders[0].ID != 7 {
		t.Errorf("orders = %+v", orders)
	}

	// The next placed order continues from the imported counter.
	n, err := st.NextCounter(store.SlotLastOrderNumber)
	if err != nil {
		t.Fatalf("NextCounter: %v", err)
	}
	if n != 8 {
		t.Errorf("next id = %d, want 8", n)
	}
}

func TestImportDerivesCounterWhenAbsent(t *testing.T) {
	svc := NewService(store.NewMemory())

	data := []byte(`{"orders": [{"id": 3, "customerName": "Ada L.", "status": "Pending", "timestamp": "2026-03-01T09:00:00Z", "items": []}, {"id": 9, "customerName": "Ben K.", "status": "Completed", "timestamp": "2026-03-01T10:00:00Z", "items": []}]}`)

	result, err := svc.Import(context.Background(), data)
	if err != nil {
		t.Fatalf("Import: %v", err)
	}
	if result.LastOrderNumber != 9 {
		t.Errorf("lastOrderNumber = %d, want highest imported id 9", result.LastOrderNumber)
	}
}

func TestImportRejectsBadBundlesWithoutTouchingSlots(t *testing.T) {
	cases := []struct {
		name string
		data string
	}{
		{"not json", `{broken`},
		{"missing orders key", `{"version": 1, "lastOrderNumber": 3}`},
		{"orders wrong shape", `{"orders": {"id": 1}}`},
		{"malformed preferences", `{"orders": [], "preferences": "dark"}`},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			st := store.NewMemory()
			live := []order.Order{{ID: 1, CustomerName: "Ada L.", Status: order.StatusPending,
				Timestamp: time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)}}
			if err := st.Save(store.SlotOrders, live); err != nil {
				t.Fatalf("Save: %v", err)
			}

			svc := NewService(st)
			if _, err := svc.Import(context.Background(), []byte(tc.data)); !errors.Is(err, apperr.ErrImportFormat) {
				t.Fatalf("err = %v, want ErrImportFormat", err)
			}

			var orders []order.Order
			if err := st.Load(store.SlotOrders, &orders); err != nil {
				t.Fatalf("Load: %v", err)
			}
			if len(orders) != 1 || orders[0].CustomerName != "Ada L." {
				t.Errorf("live orders were touched: %+v", orders)
			}
		})
	}
}

func TestExportImportRoundTrip(t *testing.T) {
	src := store.NewMemory()
	orders := []order.Order{
		{ID: 1, CustomerName: "Ada L.", Status: order.StatusCompleted, Total: 4.5,
			Timestamp: time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)},
		{ID: 2, CustomerName: "Ben K.", Status: order.StatusPending, Total: 3,
			Timestamp: time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)},
	}
	if err := src.Save(store.SlotOrders, orders); err != nil {
		t.Fatalf("Save: %v", err)
	}
	if err := src.ResetCounter(store.SlotLastOrderNumber, 2); err != nil {
		t.Fatalf("ResetCounter: %v", err)
	}

	b, err := NewService(src).Export(context.Background())
	if err != nil {
		t.Fatalf("Export: %v", err)
	}
	data, err := json.Marshal(b)
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}

	dst := store.NewMemory()
	result, err := NewService(dst).Import(context.Background(), data)
	if err != nil {
		t.Fatalf("Import: %v", err)
	}
	if result.Orders != 2 || result.LastOrderNumber != 2 {
		t.Errorf("result = %+v", result)
	}
}
