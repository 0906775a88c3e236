package repository

import "sync"

// KeyFunc extracts the storage key of an entity.
type KeyFunc[ID comparable, E any] func(*E) ID

// Memory is a map-backed Repository. It preserves insertion order for
// GetAll and pagination, and is the reference implementation of the
// storage contract.
type Memory[ID comparable, E any] struct {
	mu       sync.RWMutex
	items    map[ID]E
	order    []ID
	key      KeyFunc[ID, E]
	page     int
	pageSize int
}

// NewMemory creates an empty in-memory repository using key to identify
// entities.
func NewMemory[ID comparable, E any](key KeyFunc[ID, E]) *Memory[ID, E] {
	return &Memory[ID, E]{items: make(map[ID]E), key: key}
}

func (m *Memory[ID, E]) IsEmpty() (bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.items) == 0, nil
}

func (m *Memory[ID, E]) Size() (int, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.items), nil
}

func (m *Memory[ID, E]) GetAll() ([]E, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]E, 0, len(m.order))
	for _, id := range m.order {
		out = append(out, m.items[id])
	}
	return out, nil
}

func (m *Memory[ID, E]) GetOne(id ID) (*E, error) {
	var zero ID
	if id == zero {
		return nil, ErrInvalidArgument
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	if e, ok := m.items[id]; ok {
		return &e, nil
	}
	return nil, nil
}

func (m *Memory[ID, E]) Save(e *E) (*E, error) {
	if e == nil {
		return nil, ErrInvalidArgument
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	id := m.key(e)
	if existing, ok := m.items[id]; ok {
		return &existing, nil
	}
	m.items[id] = *e
	m.order = append(m.order, id)
	return nil, nil
}

func (m *Memory[ID, E]) Delete(id ID) (*E, error) {
	var zero ID
	if id == zero {
		return nil, ErrInvalidArgument
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	e, ok := m.items[id]
	if !ok {
		return nil, nil
	}
	delete(m.items, id)
	for i, other := range m.order {
		if other == id {
			m.order = append(m.order[:i], m.order[i+1:]...)
			break
		}
	}
	return &e, nil
}

func (m *Memory[ID, E]) Update(e *E) (*E, error) {
	if e == nil {
		return nil, ErrInvalidArgument
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	id := m.key(e)
	old, ok := m.items[id]
	if !ok {
		return nil, nil
	}
	m.items[id] = *e
	return &old, nil
}

func (m *Memory[ID, E]) SetPage(page int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.page = page
}

func (m *Memory[ID, E]) SetPageSize(size int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.pageSize = size
}

func (m *Memory[ID, E]) GetItemsOnPage() ([]E, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if m.pageSize <= 0 {
		out := make([]E, 0, len(m.order))
		for _, id := range m.order {
			out = append(out, m.items[id])
		}
		return out, nil
	}
	page := m.page
	if page < 0 {
		page = 0
	}
	start := page * m.pageSize
	if start >= len(m.order) {
		return nil, nil
	}
	end := start + m.pageSize
	if end > len(m.order) {
		end = len(m.order)
	}
	out := make([]E, 0, end-start)
	for _, id := range m.order[start:end] {
		out = append(out, m.items[id])
	}
	return out, nil
}
