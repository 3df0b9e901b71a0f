package menu

import (
	"time"

	"github.com/google/uuid"
)

// MenuItem is an orderable product on the menu.
type MenuItem struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	Price     float64   `json:"price"`
	Category  string    `json:"category"`
	Available bool      `json:"available"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// UpsertItemRequest creates or updates a menu item.
type UpsertItemRequest struct {
	Name      string   `json:"name"`
	Price     float64  `json:"price"`
	Category  string   `json:"category"`
	Available *bool    `json:"available,omitempty"`
}
