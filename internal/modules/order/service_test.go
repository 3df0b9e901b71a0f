package order

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/cuppanote/cuppa-backend/internal/apperr"
	"github.com/cuppanote/cuppa-backend/internal/store"
)

func newTestService(t *testing.T) (*service, store.Store) {
	t.Helper()
	st := store.NewMemory()
	svc := NewService(NewSlotRepository(st)).(*service)
	return svc, st
}

func fixedClock(t time.Time) func() time.Time {
	return func() time.Time { return t }
}

var basePlaceReq = PlaceOrderRequest{
	FirstName: "Ada",
	LastName:  "Lovelace",
	Items: []ItemRequest{
		{Name: "Latte", Quantity: 2, Price: 4.50, Category: "Coffee"},
		{Name: "Croissant", Quantity: 1, Price: 3.25, Category: "Pastry"},
	},
}

func TestPlaceOrder(t *testing.T) {
	svc, _ := newTestService(t)
	now := time.Date(2026, 3, 14, 9, 30, 0, 0, time.UTC)
	svc.now = fixedClock(now)

	queued := now.Add(-90 * time.Second)
	req := basePlaceReq
	req.QueuedAt = &queued

	o, err := svc.Place(context.Background(), req)
	if err != nil {
		t.Fatalf("Place: %v", err)
	}
	if o.ID != 1 {
		t.Errorf("ID = %d, want 1", o.ID)
	}
	if o.CustomerName != "Ada L." {
		t.Errorf("CustomerName = %q, want %q", o.CustomerName, "Ada L.")
	}
	if o.Status != StatusPending {
		t.Errorf("Status = %q, want Pending", o.Status)
	}
	if o.Total != 12.25 {
		t.Errorf("Total = %v, want 12.25", o.Total)
	}
	if o.QueueTime != 90 {
		t.Errorf("QueueTime = %d, want 90", o.QueueTime)
	}
	if o.PreparationTime != nil {
		t.Errorf("PreparationTime should be unset at creation")
	}

	// Order numbers are monotonically assigned from the persisted counter.
	second, err := svc.Place(context.Background(), basePlaceReq)
	if err != nil {
		t.Fatalf("Place second: %v", err)
	}
	if second.ID != 2 {
		t.Errorf("second ID = %d, want 2", second.ID)
	}
}

func TestPlaceComplimentaryOrderHasZeroTotal(t *testing.T) {
	svc, _ := newTestService(t)
	req := basePlaceReq
	req.IsComplimentary = true

	o, err := svc.Place(context.Background(), req)
	if err != nil {
		t.Fatalf("Place: %v", err)
	}
	if o.Total != 0 {
		t.Errorf("complimentary Total = %v, want 0", o.Total)
	}
	if !o.IsComplimentary {
		t.Error("IsComplimentary not retained")
	}
}

func TestPlaceValidation(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*PlaceOrderRequest)
	}{
		{"missingFirstName", func(r *PlaceOrderRequest) { r.FirstName = "" }},
		{"noItems", func(r *PlaceOrderRequest) { r.Items = nil }},
		{"missingItemName", func(r *PlaceOrderRequest) { r.Items[0].Name = "" }},
		{"missingCategory", func(r *PlaceOrderRequest) { r.Items[0].Category = "" }},
		{"zeroQuantity", func(r *PlaceOrderRequest) { r.Items[0].Quantity = 0 }},
		{"negativePrice", func(r *PlaceOrderRequest) { r.Items[0].Price = -1 }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, _ := newTestService(t)
			req := basePlaceReq
			req.Items = append([]ItemRequest(nil), basePlaceReq.Items...)
			tt.mutate(&req)
			if _, err := svc.Place(context.Background(), req); !errors.Is(err, apperr.ErrValidation) {
				t.Errorf("expected ErrValidation, got %v", err)
			}
		})
	}
}

func TestQueueTimeNeverNegative(t *testing.T) {
	svc, _ := newTestService(t)
	now := time.Date(2026, 3, 14, 9, 0, 0, 0, time.UTC)
	svc.now = fixedClock(now)

	future := now.Add(time.Minute)
	req := basePlaceReq
	req.QueuedAt = &future

	o, err := svc.Place(context.Background(), req)
	if err != nil {
		t.Fatalf("Place: %v", err)
	}
	if o.QueueTime != 0 {
		t.Errorf("QueueTime = %d, want 0 for a queued-at in the future", o.QueueTime)
	}
}

func TestStartRecordsStartTime(t *testing.T) {
	svc, _ := newTestService(t)
	placed, _ := svc.Place(context.Background(), basePlaceReq)

	started := time.Date(2026, 3, 14, 9, 35, 0, 0, time.UTC)
	svc.now = fixedClock(started)

	o, err := svc.Start(context.Background(), placed.ID)
	if err != nil {
		t.Fatalf("Start: %v", err)
	}
	if o.Status != StatusInProgress {
		t.Errorf("Status = %q, want In Progress", o.Status)
	}
	if o.StartTime == nil || !o.StartTime.Equal(started) {
		t.Errorf("StartTime = %v, want %v", o.StartTime, started)
	}

	// Starting twice is a precondition failure.
	if _, err := svc.Start(context.Background(), placed.ID); !errors.Is(err, apperr.ErrPrecondition) {
		t.Errorf("second Start: expected ErrPrecondition, got %v", err)
	}
}

func TestCompleteDerivesPreparationTime(t *testing.T) {
	svc, _ := newTestService(t)
	placed, _ := svc.Place(context.Background(), basePlaceReq)

	started := time.Date(2026, 3, 14, 9, 35, 0, 0, time.UTC)
	svc.now = fixedClock(started)
	if _, err := svc.Start(context.Background(), placed.ID); err != nil {
		t.Fatalf("Start: %v", err)
	}

	svc.now = fixedClock(started.Add(4*time.Minute + 20*time.Second))
	o, err := svc.Complete(context.Background(), placed.ID)
	if err != nil {
		t.Fatalf("Complete: %v", err)
	}
	if o.Status != StatusCompleted {
		t.Errorf("Status = %q, want Completed", o.Status)
	}
	if o.PreparationTime == nil || *o.PreparationTime != 260 {
		t.Errorf("PreparationTime = %v, want 260", o.PreparationTime)
	}

	// Completed is terminal.
	if _, err := svc.Complete(context.Background(), placed.ID); !errors.Is(err, apperr.ErrPrecondition) {
		t.Errorf("second Complete: expected ErrPrecondition, got %v", err)
	}
}

func TestCompleteWithoutStartLeavesPrepTimeUnset(t *testing.T) {
	svc, _ := newTestService(t)
	placed, _ := svc.Place(context.Background(), basePlaceReq)

	o, err := svc.Complete(context.Background(), placed.ID)
	if err != nil {
		t.Fatalf("Complete: %v", err)
	}
	if o.PreparationTime != nil {
		t.Errorf("PreparationTime = %v, want unset without a start time", *o.PreparationTime)
	}
}

func TestCancelOnlyFromPending(t *testing.T) {
	svc, _ := newTestService(t)
	placed, _ := svc.Place(context.Background(), basePlaceReq)
	if _, err := svc.Start(context.Background(), placed.ID); err != nil {
		t.Fatalf("Start: %v", err)
	}

	if err := svc.Cancel(context.Background(), placed.ID); !errors.Is(err, apperr.ErrPrecondition) {
		t.Fatalf("expected ErrPrecondition, got %v", err)
	}
	// No state change on rejection.
	o, _ := svc.Get(context.Background(), placed.ID)
	if o.Status != StatusInProgress {
		t.Errorf("Status after rejected cancel = %q, want In Progress", o.Status)
	}
}

func TestCancelKeepsOrderInHistory(t *testing.T) {
	svc, _ := newTestService(t)
	placed, _ := svc.Place(context.Background(), basePlaceReq)

	if err := svc.Cancel(context.Background(), placed.ID); err != nil {
		t.Fatalf("Cancel: %v", err)
	}

	active, _ := svc.ListActive(context.Background(), "", false)
	if len(active) != 0 {
		t.Errorf("active list has %d orders, want 0", len(active))
	}
	history, _ := svc.ListHistory(context.Background())
	if len(history) != 1 || history[0].Status != StatusCancelled {
		t.Errorf("history = %+v, want one cancelled order", history)
	}
}

func TestModifyRecomputesTotal(t *testing.T) {
	svc, _ := newTestService(t)
	placed, _ := svc.Place(context.Background(), basePlaceReq)

	o, err := svc.Modify(context.Background(), placed.ID, ModifyOrderRequest{
		Items: []ItemRequest{{Name: "Espresso", Quantity: 3, Price: 2.80, Category: "Coffee"}},
	})
	if err != nil {
		t.Fatalf("Modify: %v", err)
	}
	if o.Total != 8.40 {
		t.Errorf("Total = %v, want 8.40", o.Total)
	}
	if len(o.Items) != 1 {
		t.Errorf("items = %d, want 1", len(o.Items))
	}
}

func TestModifyRejectedAfterStart(t *testing.T) {
	svc, _ := newTestService(t)
	placed, _ := svc.Place(context.Background(), basePlaceReq)
	if _, err := svc.Start(context.Background(), placed.ID); err != nil {
		t.Fatalf("Start: %v", err)
	}

	_, err := svc.Modify(context.Background(), placed.ID, ModifyOrderRequest{
		Items: []ItemRequest{{Name: "Espresso", Quantity: 1, Price: 2.80, Category: "Coffee"}},
	})
	if !errors.Is(err, apperr.ErrPrecondition) {
		t.Errorf("expected ErrPrecondition, got %v", err)
	}
}

func TestNotesEditableInAnyStatus(t *testing.T) {
	svc, _ := newTestService(t)
	placed, _ := svc.Place(context.Background(), basePlaceReq)
	if _, err := svc.Complete(context.Background(), placed.ID); err != nil {
		t.Fatalf("Complete: %v", err)
	}

	o, err := svc.UpdateNotes(context.Background(), placed.ID, "oat milk next time")
	if err != nil {
		t.Fatalf("UpdateNotes: %v", err)
	}
	if o.Notes != "oat milk next time" {
		t.Errorf("Notes = %q", o.Notes)
	}
}

func TestLeadInterestWritableOnce(t *testing.T) {
	svc, _ := newTestService(t)
	placed, _ := svc.Place(context.Background(), basePlaceReq)

	o, err := svc.RecordLeadInterest(context.Background(), placed.ID, true)
	if err != nil {
		t.Fatalf("RecordLeadInterest: %v", err)
	}
	if o.LeadInterest == nil || !*o.LeadInterest {
		t.Errorf("LeadInterest = %v, want true", o.LeadInterest)
	}

	if _, err := svc.RecordLeadInterest(context.Background(), placed.ID, false); !errors.Is(err, apperr.ErrPrecondition) {
		t.Errorf("second write: expected ErrPrecondition, got %v", err)
	}
}

func TestClearAllIsVisibilityOnly(t *testing.T) {
	svc, _ := newTestService(t)
	first, _ := svc.Place(context.Background(), basePlaceReq)
	if _, err := svc.Complete(context.Background(), first.ID); err != nil {
		t.Fatalf("Complete: %v", err)
	}
	second, _ := svc.Place(context.Background(), basePlaceReq)
	if err := svc.Cancel(context.Background(), second.ID); err != nil {
		t.Fatalf("Cancel: %v", err)
	}
	if _, err := svc.Place(context.Background(), basePlaceReq); err != nil {
		t.Fatalf("Place: %v", err)
	}

	cleared, err := svc.ClearAll(context.Background())
	if err != nil {
		t.Fatalf("ClearAll: %v", err)
	}
	if cleared != 2 {
		t.Errorf("cleared = %d, want 2 (cancelled order untouched)", cleared)
	}

	active, _ := svc.ListActive(context.Background(), "", false)
	if len(active) != 0 {
		t.Errorf("active after clear = %d, want 0", len(active))
	}
	history, _ := svc.ListHistory(context.Background())
	if len(history) != 3 {
		t.Errorf("history after clear = %d, want 3", len(history))
	}
	for _, o := range history {
		if o.ID == second.ID {
			if o.Status != StatusCancelled {
				t.Errorf("cancelled order rewritten to %q by clear", o.Status)
			}
		} else if o.Status != StatusCleared {
			t.Errorf("order %d status = %q, want Cleared", o.ID, o.Status)
		}
	}
}

func TestResetIDsFollowsDisplayOrder(t *testing.T) {
	svc, st := newTestService(t)

	// Seed directly: active list displayed as [id 7, id 3] (timestamp desc).
	t1 := time.Date(2026, 3, 10, 8, 0, 0, 0, time.UTC)
	t2 := t1.Add(time.Hour)
	seed := []Order{
		{ID: 3, CustomerName: "Bea", Status: StatusPending, Timestamp: t1},
		{ID: 7, CustomerName: "Cal", Status: StatusPending, Timestamp: t2},
	}
	if err := st.Save(store.SlotOrders, seed); err != nil {
		t.Fatalf("seed: %v", err)
	}

	renumbered, err := svc.ResetIDs(context.Background(), ResetIDsRequest{})
	if err != nil {
		t.Fatalf("ResetIDs: %v", err)
	}
	if len(renumbered) != 2 {
		t.Fatalf("len = %d, want 2", len(renumbered))
	}
	if renumbered[0].CustomerName != "Cal" || renumbered[0].ID != 1 {
		t.Errorf("first = %s id %d, want Cal id 1", renumbered[0].CustomerName, renumbered[0].ID)
	}
	if renumbered[1].CustomerName != "Bea" || renumbered[1].ID != 2 {
		t.Errorf("second = %s id %d, want Bea id 2", renumbered[1].CustomerName, renumbered[1].ID)
	}

	// Counter rewound: the next order continues from the dense sequence.
	next, err := svc.Place(context.Background(), basePlaceReq)
	if err != nil {
		t.Fatalf("Place: %v", err)
	}
	if next.ID != 3 {
		t.Errorf("next ID = %d, want 3", next.ID)
	}
}

func TestListActiveSorting(t *testing.T) {
	svc, st := newTestService(t)

	prep := func(n int) *int { return &n }
	t0 := time.Date(2026, 3, 10, 8, 0, 0, 0, time.UTC)
	seed := []Order{
		{ID: 1, Status: StatusCompleted, Timestamp: t0, QueueTime: 30, PreparationTime: prep(120)},
		{ID: 2, Status: StatusCompleted, Timestamp: t0.Add(time.Minute), QueueTime: 90, PreparationTime: prep(60)},
		{ID: 3, Status: StatusPending, Timestamp: t0.Add(2 * time.Minute), QueueTime: 90},
	}
	if err := st.Save(store.SlotOrders, seed); err != nil {
		t.Fatalf("seed: %v", err)
	}

	tests := []struct {
		name      string
		sortBy    string
		ascending bool
		wantIDs   []int
	}{
		{"defaultTimestampDesc", "", false, []int{3, 2, 1}},
		{"timestampAsc", SortByTimestamp, true, []int{1, 2, 3}},
		{"prepTimeDesc", SortByPrepTime, false, []int{1, 2, 3}},
		// Equal queue times keep input order; no secondary key.
		{"queueTimeDescStableTie", SortByQueueTime, false, []int{2, 3, 1}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := svc.ListActive(context.Background(), tt.sortBy, tt.ascending)
			if err != nil {
				t.Fatalf("ListActive: %v", err)
			}
			if len(got) != len(tt.wantIDs) {
				t.Fatalf("len = %d, want %d", len(got), len(tt.wantIDs))
			}
			for i, want := range tt.wantIDs {
				if got[i].ID != want {
					t.Errorf("position %d: id %d, want %d", i, got[i].ID, want)
				}
			}
		})
	}
}

func TestMalformedOrdersSlotFallsBackToEmpty(t *testing.T) {
	st := store.NewMemory()
	repo := NewSlotRepository(st)
	if err := st.Save(store.SlotQuickNotes, "x"); err != nil {
		t.Fatalf("Save: %v", err)
	}
	type corruptible interface{ Corrupt(string) }
	st.(corruptible).Corrupt(store.SlotOrders)

	orders, err := repo.LoadAll(context.Background())
	if err != nil {
		t.Fatalf("LoadAll: %v", err)
	}
	if len(orders) != 0 {
		t.Errorf("expected empty fallback, got %d orders", len(orders))
	}
}
