package waste

import (
	"time"

	"github.com/google/uuid"
)

// Category groups waste entries and carries the average unit cost used to
// price entries at logging time.
type Category struct {
	ID          uuid.UUID `json:"id"`
	Name        string    `json:"name"`
	AverageCost float64   `json:"averageCost"`
}

// Entry is one append-only waste log line. Cost is quantity times the
// category's average cost, fixed when the entry is written; later category
// price changes never rewrite history.
type Entry struct {
	ID        uuid.UUID `json:"id"`
	ItemName  string    `json:"itemName"`
	Category  string    `json:"category"`
	Quantity  int       `json:"quantity"`
	Timestamp time.Time `json:"timestamp"`
	Cost      float64   `json:"cost"`
	Notes     string    `json:"notes,omitempty"`
}

// CreateCategoryRequest registers a waste category.
type CreateCategoryRequest struct {
	Name        string  `json:"name"`
	AverageCost float64 `json:"average_cost"`
}

// LogEntryRequest appends a waste entry.
type LogEntryRequest struct {
	ItemName string `json:"item_name"`
	Category string `json:"category"`
	Quantity int    `json:"quantity"`
	Notes    string `json:"notes,omitempty"`
}

// PeriodCost is the summed waste cost over a date range.
type PeriodCost struct {
	From      time.Time `json:"from"`
	To        time.Time `json:"to"`
	Entries   int       `json:"entries"`
	TotalCost float64   `json:"totalCost"`
}
