// ABOUTME: In-memory record store for a single entity type
// ABOUTME: Keeps insertion order and hands out decoded copies on every read
package store

import (
	"context"
	"sync"

	"github.com/google/uuid"
	"github.com/harperreed/crmview/models"
)

// Memory is a mutex-guarded RecordStore. Listings search, sort and page in
// memory; without a sort field records keep insertion order.
type Memory[T any] struct {
	kind models.Kind[T]
	opts options

	mu      sync.RWMutex
	records map[uuid.UUID][]byte
	order   []uuid.UUID
}

// NewMemory creates an empty store for kind.
func NewMemory[T any](kind models.Kind[T], opts ...Option) *Memory[T] {
	return &Memory[T]{
		kind:    kind,
		opts:    buildOptions(opts),
		records: make(map[uuid.UUID][]byte),
	}
}

func (m *Memory[T]) List(ctx context.Context, params models.ListParams) (models.Page[T], error) {
	if err := ctx.Err(); err != nil {
		return models.Page[T]{}, err
	}

	m.mu.RLock()
	defer m.mu.RUnlock()

	all := make([]T, 0, len(m.order))
	for _, id := range m.order {
		rec, err := decode(m.kind, m.records[id])
		if err != nil {
			return models.Page[T]{}, err
		}
		all = append(all, rec)
	}

	return m.kind.Query(all, params), nil
}

func (m *Memory[T]) Get(ctx context.Context, id uuid.UUID) (T, error) {
	var zero T
	if err := ctx.Err(); err != nil {
		return zero, err
	}

	m.mu.RLock()
	defer m.mu.RUnlock()

	data, ok := m.records[id]
	if !ok {
		return zero, notFound(m.kind, id)
	}
	return decode(m.kind, data)
}

func (m *Memory[T]) Create(ctx context.Context, rec T) (T, error) {
	var zero T
	if err := ctx.Err(); err != nil {
		return zero, err
	}

	id := uuid.New()
	m.kind.Assign(&rec, id, m.opts.now())

	data, err := encode(m.kind, rec)
	if err != nil {
		return zero, err
	}

	m.mu.Lock()
	m.records[id] = data
	m.order = append(m.order, id)
	m.mu.Unlock()

	return decode(m.kind, data)
}

func (m *Memory[T]) Update(ctx context.Context, id uuid.UUID, apply func(*T) error) (T, error) {
	var zero T
	if err := ctx.Err(); err != nil {
		return zero, err
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	data, ok := m.records[id]
	if !ok {
		return zero, notFound(m.kind, id)
	}

	rec, err := decode(m.kind, data)
	if err != nil {
		return zero, err
	}
	if err := apply(&rec); err != nil {
		return zero, err
	}
	m.kind.Touch(&rec, m.opts.now())

	data, err = encode(m.kind, rec)
	if err != nil {
		return zero, err
	}
	m.records[id] = data

	return decode(m.kind, data)
}

func (m *Memory[T]) Delete(ctx context.Context, id uuid.UUID) (bool, error) {
	if err := ctx.Err(); err != nil {
		return false, err
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.records[id]; !ok {
		return false, nil
	}
	delete(m.records, id)
	for i, existing := range m.order {
		if existing == id {
			m.order = append(m.order[:i], m.order[i+1:]...)
			break
		}
	}
	return true, nil
}
