package store

import (
	"encoding/json"
	"fmt"
	"strconv"
	"sync"

	"github.com/cuppanote/cuppa-backend/internal/apperr"
)

// memoryStore holds slots as raw JSON in a map. It backs service tests and
// makes a usable throwaway store when no database path is configured.
type memoryStore struct {
	mu    sync.Mutex
	slots map[string]string
}

// NewMemory returns an empty in-memory slot store.
func NewMemory() Store {
	return &memoryStore{slots: make(map[string]string)}
}

func (m *memoryStore) Load(slot string, v interface{}) error {
	m.mu.Lock()
	raw, ok := m.slots[slot]
	m.mu.Unlock()
	if !ok {
		return nil
	}
	if err := json.Unmarshal([]byte(raw), v); err != nil {
		return fmt.Errorf("slot %q: %w: %v", slot, apperr.ErrLoadFailure, err)
	}
	return nil
}

func (m *memoryStore) Save(slot string, v interface{}) error {
	raw, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("marshal slot %q: %w", slot, err)
	}
	m.mu.Lock()
	m.slots[slot] = string(raw)
	m.mu.Unlock()
	return nil
}

func (m *memoryStore) Clear(slot string) error {
	m.mu.Lock()
	delete(m.slots, slot)
	m.mu.Unlock()
	return nil
}

func (m *memoryStore) ReplaceAll(slots map[string]interface{}) error {
	encoded := make(map[string]string, len(slots))
	for slot, v := range slots {
		raw, err := json.Marshal(v)
		if err != nil {
			return fmt.Errorf("marshal slot %q: %w", slot, err)
		}
		encoded[slot] = string(raw)
	}
	m.mu.Lock()
	for slot, raw := range encoded {
		m.slots[slot] = raw
	}
	m.mu.Unlock()
	return nil
}

func (m *memoryStore) NextCounter(slot string) (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	n := 0
	if raw, ok := m.slots[slot]; ok {
		var err error
		if n, err = strconv.Atoi(raw); err != nil {
			return 0, fmt.Errorf("counter %q: %w: %v", slot, apperr.ErrLoadFailure, err)
		}
	}
	n++
	m.slots[slot] = strconv.Itoa(n)
	return n, nil
}

func (m *memoryStore) ResetCounter(slot string, n int) error {
	m.mu.Lock()
	m.slots[slot] = strconv.Itoa(n)
	m.mu.Unlock()
	return nil
}

// Corrupt overwrites a slot with non-JSON content. Test hook for the
// malformed-data fallback path.
func (m *memoryStore) Corrupt(slot string) {
	m.mu.Lock()
	m.slots[slot] = "{not json"
	m.mu.Unlock()
}

func (m *memoryStore) Close() error { return nil }
