package menu

import (
	"time"

	"github.com/google/uuid"
)

// defaultMenu is the starter catalog for a fresh install. Prices are the
// counter defaults and fully editable afterwards.
func defaultMenu() []MenuItem {
	now := time.Now().UTC()
	entries := []struct {
		name     string
		price    float64
		category string
	}{
		{"Espresso", 2.80, "Coffee"},
		{"Americano", 3.20, "Coffee"},
		{"Latte", 4.50, "Coffee"},
		{"Cappuccino", 4.20, "Coffee"},
		{"Flat White", 4.40, "Coffee"},
		{"Mocha", 4.80, "Coffee"},
		{"Cold Brew", 4.00, "Cold Drinks"},
		{"Iced Latte", 4.70, "Cold Drinks"},
		{"Chai Latte", 4.30, "Tea"},
		{"English Breakfast", 3.00, "Tea"},
		{"Croissant", 3.25, "Pastry"},
		{"Banana Bread", 3.75, "Pastry"},
	}

	items := make([]MenuItem, 0, len(entries))
	for _, e := range entries {
		items = append(items, MenuItem{
			ID:        uuid.New(),
			Name:      e.name,
			Price:     e.price,
			Category:  e.category,
			Available: true,
			CreatedAt: now,
			UpdatedAt: now,
		})
	}
	return items
}

func nowUTC() time.Time { return time.Now().UTC() }
