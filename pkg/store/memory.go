package store

import (
	"context"
	"slices"
	"strings"
	"sync"

	"github.com/matzehuels/svgstack/pkg/record"
)

// Memory is an in-memory [Store]. It is safe for concurrent use.
type Memory struct {
	mu      sync.RWMutex
	records map[string]memoryEntry
}

type memoryEntry struct {
	id  string
	rec record.Record
}

// NewMemory creates an empty in-memory store.
func NewMemory() *Memory {
	return &Memory{records: make(map[string]memoryEntry)}
}

func (m *Memory) Put(ctx context.Context, rec *record.Record) (string, error) {
	if err := validate(rec); err != nil {
		return "", err
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	id := NewID()
	if old, ok := m.records[rec.Name]; ok {
		id = old.id
	}
	m.records[rec.Name] = memoryEntry{id: id, rec: rec.Clone()}
	return id, nil
}

func (m *Memory) Get(ctx context.Context, name string) (*record.Record, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	e, ok := m.records[name]
	if !ok {
		return nil, notFound(name)
	}
	rec := e.rec.Clone()
	return &rec, nil
}

func (m *Memory) List(ctx context.Context, tag string) ([]record.Record, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	var out []record.Record
	for _, e := range m.records {
		if hasTag(e.rec, tag) {
			out = append(out, e.rec.Clone())
		}
	}
	slices.SortFunc(out, func(a, b record.Record) int { return strings.Compare(a.Name, b.Name) })
	return out, nil
}

func (m *Memory) Delete(ctx context.Context, name string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.records[name]; !ok {
		return notFound(name)
	}
	delete(m.records, name)
	return nil
}

func (m *Memory) Close() error { return nil }

var _ Store = (*Memory)(nil)
