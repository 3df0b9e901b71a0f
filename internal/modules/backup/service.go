package backup

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/cuppanote/cuppa-backend/internal/apperr"
	"github.com/cuppanote/cuppa-backend/internal/modules/inventory"
	"github.com/cuppanote/cuppa-backend/internal/modules/order"
	"github.com/cuppanote/cuppa-backend/internal/modules/settings"
	"github.com/cuppanote/cuppa-backend/internal/store"
)

// Service exports and imports the full slot state as one JSON document.
type Service interface {
	Export(ctx context.Context) (*Bundle, error)
	Import(ctx context.Context, data []byte) (*ImportResult, error)
}

type service struct {
	store store.Store
	now   func() time.Time
}

// NewService creates a new backup service over the slot store.
func NewService(st store.Store) Service {
	return &service{store: st, now: time.Now}
}

func (s *service) Export(ctx context.Context) (*Bundle, error) {
	b := &Bundle{
		Version:    BundleVersion,
		ExportedAt: s.now().UTC(),
	}

	if err := s.store.Load(store.SlotOrders, &b.Orders); err != nil {
		return nil, err
	}
	if b.Orders == nil {
		b.Orders = json.RawMessage("[]")
	}
	if err := s.store.Load(store.SlotLastOrderNumber, &b.LastOrderNumber); err != nil {
		return nil, err
	}
	if err := s.store.Load(store.SlotPreferences, &b.Preferences); err != nil {
		return nil, err
	}
	if err := s.store.Load(store.SlotInventory, &b.Inventory); err != nil {
		return nil, err
	}
	return b, nil
}

// Import validates the document before anything is written. A bundle without
// an orders key, or with malformed payloads, leaves every slot untouched.
func (s *service) Import(ctx context.Context, data []byte) (*ImportResult, error) {
	var keys map[string]json.RawMessage
	if err := json.Unmarshal(data, &keys); err != nil {
		return nil, fmt.Errorf("%w: not a JSON object: %v", apperr.ErrImportFormat, err)
	}
	rawOrders, ok := keys["orders"]
	if !ok {
		return nil, fmt.Errorf("%w: missing orders key", apperr.ErrImportFormat)
	}

	var orders []order.Order
	if err := json.Unmarshal(rawOrders, &orders); err != nil {
		return nil, fmt.Errorf("%w: orders: %v", apperr.ErrImportFormat, err)
	}

	lastNumber := 0
	if raw, ok := keys["lastOrderNumber"]; ok {
		if err := json.Unmarshal(raw, &lastNumber); err != nil {
			return nil, fmt.Errorf("%w: lastOrderNumber: %v", apperr.ErrImportFormat, err)
		}
	} else {
		for _, o := range orders {
			if o.ID > lastNumber {
				lastNumber = o.ID
			}
		}
	}

	slots := map[string]interface{}{
		store.SlotOrders:          orders,
		store.SlotLastOrderNumber: lastNumber,
	}

	if raw, ok := keys["preferences"]; ok {
		var p settings.Preferences
		if err := json.Unmarshal(raw, &p); err != nil {
			return nil, fmt.Errorf("%w: preferences: %v", apperr.ErrImportFormat, err)
		}
		slots[store.SlotPreferences] = p
	}
	if raw, ok := keys["inventory"]; ok {
		var items []inventory.Item
		if err := json.Unmarshal(raw, &items); err != nil {
			return nil, fmt.Errorf("%w: inventory: %v", apperr.ErrImportFormat, err)
		}
		slots[store.SlotInventory] = items
	}

	if err := s.store.ReplaceAll(slots); err != nil {
		return nil, err
	}
	return &ImportResult{
		Orders:          len(orders),
		LastOrderNumber: lastNumber,
		SlotsReplaced:   len(slots),
	}, nil
}
