package store

import (
	"context"
	"sort"
	"sync"
)

// Memory is an in-process Store. Keys are listed in sorted order.
type Memory struct {
	mu     sync.RWMutex
	hashes map[string]map[string]string
	closed bool
}

var _ Store = (*Memory)(nil)

// NewMemory returns an empty store.
func NewMemory() *Memory {
	return &Memory{hashes: make(map[string]map[string]string)}
}

func (m *Memory) Exists(ctx context.Context, key string) (bool, error) {
	if err := m.check(ctx); err != nil {
		return false, err
	}

	m.mu.RLock()
	defer m.mu.RUnlock()

	_, ok := m.hashes[key]

	return ok, nil
}

func (m *Memory) WriteFields(ctx context.Context, key string, fields map[string]string) error {
	if err := m.check(ctx); err != nil {
		return err
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	h := m.hash(key)
	for k, v := range fields {
		h[k] = v
	}

	return nil
}

func (m *Memory) WriteField(ctx context.Context, key, field, value string) error {
	if err := m.check(ctx); err != nil {
		return err
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	m.hash(key)[field] = value

	return nil
}

func (m *Memory) ReadFields(ctx context.Context, key string) (map[string]string, error) {
	if err := m.check(ctx); err != nil {
		return nil, err
	}

	m.mu.RLock()
	defer m.mu.RUnlock()

	out := make(map[string]string, len(m.hashes[key]))
	for k, v := range m.hashes[key] {
		out[k] = v
	}

	return out, nil
}

func (m *Memory) Delete(ctx context.Context, key string) error {
	if err := m.check(ctx); err != nil {
		return err
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	delete(m.hashes, key)

	return nil
}

func (m *Memory) ListKeys(ctx context.Context) ([]string, error) {
	if err := m.check(ctx); err != nil {
		return nil, err
	}

	m.mu.RLock()
	defer m.mu.RUnlock()

	keys := make([]string, 0, len(m.hashes))
	for k := range m.hashes {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	return keys, nil
}

func (m *Memory) Close() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.closed = true

	return nil
}

// hash returns the field map for key, creating it. Callers hold the write lock.
func (m *Memory) hash(key string) map[string]string {
	h, ok := m.hashes[key]
	if !ok {
		h = make(map[string]string)
		m.hashes[key] = h
	}

	return h
}

func (m *Memory) check(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	m.mu.RLock()
	defer m.mu.RUnlock()

	if m.closed {
		return ErrClosed
	}

	return nil
}
