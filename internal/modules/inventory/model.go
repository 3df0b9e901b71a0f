package inventory

import (
	"time"

	"github.com/google/uuid"
)

// Item is a stock record for one ingredient or supply. Low stock is derived
// from quantity and threshold on every read and never stored.
type Item struct {
	ID            uuid.UUID `json:"id"`
	Name          string    `json:"name"`
	Category      string    `json:"category"`
	Quantity      float64   `json:"quantity"`
	Unit          string    `json:"unit"`
	MinThreshold  float64   `json:"minThreshold"`
	MaxThreshold  float64   `json:"maxThreshold"`
	UnitCost      float64   `json:"unitCost"`
	LastRestocked time.Time `json:"lastRestocked"`
	Supplier      string    `json:"supplier,omitempty"`
	Location      string    `json:"location,omitempty"`
	Notes         string    `json:"notes,omitempty"`
}

// LowStock reports whether the item is at or below its minimum threshold.
func (i *Item) LowStock() bool { return i.Quantity <= i.MinThreshold }

// ItemView is an Item plus its derived fields, the shape every read returns.
type ItemView struct {
	Item
	LowStock bool `json:"lowStock"`
}

// LowStockAlert is one line of the low-stock report.
type LowStockAlert struct {
	Item
	RestockedAgo string `json:"restockedAgo"`
}

// UpsertItemRequest creates or updates a stock record.
type UpsertItemRequest struct {
	Name         string  `json:"name"`
	Category     string  `json:"category"`
	Quantity     float64 `json:"quantity"`
	Unit         string  `json:"unit"`
	MinThreshold float64 `json:"min_threshold"`
	MaxThreshold float64 `json:"max_threshold"`
	UnitCost     float64 `json:"unit_cost"`
	Supplier     string  `json:"supplier,omitempty"`
	Location     string  `json:"location,omitempty"`
	Notes        string  `json:"notes,omitempty"`
}

// RestockRequest sets the on-hand quantity after a delivery.
type RestockRequest struct {
	Quantity float64 `json:"quantity"`
}
