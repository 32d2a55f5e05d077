package store

import (
	"context"
	"sort"
	"strings"
	"sync"
)

// MemoryKV is a KV held in a map
type MemoryKV struct {
	mu   sync.RWMutex
	data map[string]string
}

// NewMemoryKV creates an empty in-memory store
func NewMemoryKV() *MemoryKV {
	return &MemoryKV{data: make(map[string]string)}
}

func (m *MemoryKV) Get(ctx context.Context, key string) (string, bool, error) {
	if err := ctx.Err(); err != nil {
		return "", false, err
	}
	m.mu.RLock()
	defer m.mu.RUnlock()

	value, ok := m.data[key]
	return value, ok, nil
}

func (m *MemoryKV) Set(ctx context.Context, key, value string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()

	m.data[key] = value
	return nil
}

func (m *MemoryKV) Delete(ctx context.Context, key string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()

	delete(m.data, key)
	return nil
}

func (m *MemoryKV) Keys(ctx context.Context, prefix string) ([]string, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	m.mu.RLock()
	defer m.mu.RUnlock()

	keys := make([]string, 0, len(m.data))
	for k := range m.data {
		if strings.HasPrefix(k, prefix) {
			keys = append(keys, k)
		}
	}
	sort.Strings(keys)
	return keys, nil
}

func (m *MemoryKV) Batch(ctx context.Context, fn func(w Writer) error) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()

	staged := &memoryBatch{sets: make(map[string]string), deletes: make(map[string]struct{})}
	if err := fn(staged); err != nil {
		return err
	}

	for k := range staged.deletes {
		delete(m.data, k)
	}
	for k, v := range staged.sets {
		m.data[k] = v
	}
	return nil
}

func (m *MemoryKV) Close() error {
	return nil
}

type memoryBatch struct {
	sets    map[string]string
	deletes map[string]struct{}
}

func (b *memoryBatch) Set(key, value string) error {
	delete(b.deletes, key)
	b.sets[key] = value
	return nil
}

func (b *memoryBatch) Delete(key string) error {
	delete(b.sets, key)
	b.deletes[key] = struct{}{}
	return nil
}
