package backup

import (
	"encoding/json"
	"time"
)

// BundleVersion is written into every export and accepted on import.
const BundleVersion = 1

// Bundle is the import/export document. Slot payloads stay as raw JSON so a
// round-trip preserves them byte for byte.
type Bundle struct {
	Version         int             `json:"version"`
	ExportedAt      time.Time       `json:"exportedAt"`
	Orders          json.RawMessage `json:"orders"`
	LastOrderNumber int             `json:"lastOrderNumber"`
	Preferences     json.RawMessage `json:"preferences,omitempty"`
	Inventory       json.RawMessage `json:"inventory,omitempty"`
}

// ImportResult summarizes what an accepted import wrote.
type ImportResult struct {
	Orders          int `json:"orders"`
	LastOrderNumber int `json:"lastOrderNumber"`
	SlotsReplaced   int `json:"slotsReplaced"`
}
