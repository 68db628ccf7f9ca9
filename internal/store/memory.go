package store

import (
	"context"
	"sync"
)

// MemoryRemote is a map-backed RemoteCollection. It backs the service
// tests and can stand in for the document store during local
// development. Setting Err makes every call fail with that error,
// simulating an unreachable remote.
type MemoryRemote[T Record] struct {
	mu      sync.Mutex
	records map[string]T
	order   []string

	Err error
}

// NewMemoryRemote returns an empty in-memory remote collection.
func NewMemoryRemote[T Record]() *MemoryRemote[T] {
	return &MemoryRemote[T]{records: make(map[string]T)}
}

func (m *MemoryRemote[T]) Get(ctx context.Context, id string) (T, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	var zero T
	if m.Err != nil {
		return zero, m.Err
	}
	rec, ok := m.records[id]
	if !ok {
		return zero, ErrNotFound
	}
	return rec, nil
}

func (m *MemoryRemote[T]) Set(ctx context.Context, rec T) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.Err != nil {
		return m.Err
	}
	id := rec.RecordID()
	if _, ok := m.records[id]; !ok {
		m.order = append(m.order, id)
	}
	m.records[id] = rec
	return nil
}

func (m *MemoryRemote[T]) List(ctx context.Context) ([]T, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.Err != nil {
		return nil, m.Err
	}
	out := make([]T, 0, len(m.order))
	for _, id := range m.order {
		out = append(out, m.records[id])
	}
	return out, nil
}
