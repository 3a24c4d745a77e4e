package store

import (
	"context"
	"maps"
	"slices"
	"sync"

	"github.com/0dillon/HNG1/internal/ir"
)

// Memory is a map-backed store guarded by a single RWMutex.
//
// Reads (Get, List, Count) share the lock. Create and Delete take it
// exclusively, so a reader never observes a half-inserted record and the
// duplicate check in Create cannot race another Create.
type Memory struct {
	mu      sync.RWMutex
	records map[string]ir.StringRecord
	order   []string // ids in insertion order
}

// NewMemory creates an empty in-memory store.
func NewMemory() *Memory {
	return &Memory{
		records: make(map[string]ir.StringRecord),
	}
}

// Create inserts rec unless a record with the same ID exists.
// Returns the stored record and whether it was newly inserted.
func (m *Memory) Create(_ context.Context, rec ir.StringRecord) (ir.StringRecord, bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if existing, ok := m.records[rec.ID]; ok {
		return existing, false, nil
	}

	// Own the frequency map so later caller writes cannot reach stored state.
	rec.Properties.CharacterFrequencyMap = maps.Clone(rec.Properties.CharacterFrequencyMap)
	if rec.Properties.CharacterFrequencyMap == nil {
		rec.Properties.CharacterFrequencyMap = map[string]int{}
	}

	m.records[rec.ID] = rec
	m.order = append(m.order, rec.ID)
	return rec, true, nil
}

// Get retrieves a record by id.
// Returns ErrNotFound if no record has that id.
func (m *Memory) Get(_ context.Context, id string) (ir.StringRecord, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	rec, ok := m.records[id]
	if !ok {
		return ir.StringRecord{}, ErrNotFound
	}
	return rec, nil
}

// List returns every record in insertion order.
func (m *Memory) List(_ context.Context) ([]ir.StringRecord, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	out := make([]ir.StringRecord, 0, len(m.order))
	for _, id := range m.order {
		out = append(out, m.records[id])
	}
	return out, nil
}

// Delete removes the record with the given id.
// Returns ErrNotFound if no record has that id.
func (m *Memory) Delete(_ context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.records[id]; !ok {
		return ErrNotFound
	}
	delete(m.records, id)
	if i := slices.Index(m.order, id); i >= 0 {
		m.order = slices.Delete(m.order, i, i+1)
	}
	return nil
}

// Count returns the number of stored records.
func (m *Memory) Count(_ context.Context) (int, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.records), nil
}

// Close is a no-op; it lets Memory stand in wherever a *Store is closed.
func (m *Memory) Close() error {
	return nil
}
