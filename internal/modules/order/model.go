package order

import (
	"fmt"
	"strings"
	"time"
)

// Status represents the lifecycle state of an order.
type Status string

const (
	StatusPending    Status = "Pending"
	StatusInProgress Status = "In Progress"
	StatusCompleted  Status = "Completed"
	StatusCancelled  Status = "Cancelled"
	StatusCleared    Status = "Cleared"
)

// Sort keys accepted by the order listing. Each sorts descending by default.
const (
	SortByTimestamp = "timestamp"
	SortByPrepTime  = "preparation_time"
	SortByQueueTime = "queue_time"
)

// Order is a single customer order. The JSON field names are the persisted
// slot contract and must not change.
type Order struct {
	ID              int         `json:"id"`
	CustomerName    string      `json:"customerName"`
	Status          Status      `json:"status"`
	Timestamp       time.Time   `json:"timestamp"`
	StartTime       *time.Time  `json:"startTime,omitempty"`
	Items           []OrderItem `json:"items"`
	Total           float64     `json:"total"`
	IsComplimentary bool        `json:"isComplimentary"`
	QueueTime       int         `json:"queueTime"`
	PreparationTime *int        `json:"preparationTime,omitempty"`
	LeadInterest    *bool       `json:"leadInterest,omitempty"`
	Notes           string      `json:"notes,omitempty"`
}

// Active reports whether the order still belongs to the working list.
// Cancelled and cleared orders stay in history for reporting only.
func (o *Order) Active() bool {
	return o.Status != StatusCancelled && o.Status != StatusCleared
}

// OrderItem is a single line item. Insertion order is display order.
type OrderItem struct {
	Name     string  `json:"name"`
	Quantity int     `json:"quantity"`
	Price    float64 `json:"price"`
	Category string  `json:"category"`
}

// PlaceOrderRequest is the payload for creating a new order.
type PlaceOrderRequest struct {
	FirstName       string        `json:"first_name"`
	LastName        string        `json:"last_name,omitempty"`
	Items           []ItemRequest `json:"items"`
	IsComplimentary bool          `json:"is_complimentary,omitempty"`
	QueuedAt        *time.Time    `json:"queued_at,omitempty"`
	Notes           string        `json:"notes,omitempty"`
}

// ItemRequest describes one line item of a place or modify request.
type ItemRequest struct {
	Name     string  `json:"name"`
	Quantity int     `json:"quantity"`
	Price    float64 `json:"price"`
	Category string  `json:"category"`
}

// ModifyOrderRequest edits a pending order. Nil items leaves the line items
// untouched; an empty first name keeps the current customer.
type ModifyOrderRequest struct {
	FirstName string        `json:"first_name,omitempty"`
	LastName  string        `json:"last_name,omitempty"`
	Items     []ItemRequest `json:"items,omitempty"`
}

// UpdateNotesRequest replaces the free-text annotation on an order.
type UpdateNotesRequest struct {
	Notes string `json:"notes"`
}

// LeadInterestRequest records the one-shot sales-lead flag.
type LeadInterestRequest struct {
	Interested bool `json:"interested"`
}

// ResetIDsRequest carries the display order in effect when the reset was
// requested, so ids land in the order the operator sees on screen.
type ResetIDsRequest struct {
	SortBy    string `json:"sort_by,omitempty"`
	Ascending bool   `json:"ascending,omitempty"`
}

// displayName builds the customer display string: first name plus last initial.
func displayName(first, last string) string {
	first = strings.TrimSpace(first)
	last = strings.TrimSpace(last)
	if last == "" {
		return first
	}
	return fmt.Sprintf("%s %s.", first, strings.ToUpper(last[:1]))
}

// itemTotal sums price times quantity across items, rounded to cents.
func itemTotal(items []OrderItem) float64 {
	var sum float64
	for _, it := range items {
		sum += it.Price * float64(it.Quantity)
	}
	return round2(sum)
}

func round2(v float64) float64 {
	return float64(int(v*100+0.5)) / 100
}
