package store

import (
	"context"
	"sort"
	"strings"
	"sync"

	"menuhub/pkg/models"
)

// MemoryStore keeps the menu in maps. STORE_DRIVER=memory selects it; the
// API server then seeds it from the converted menu.json.
type MemoryStore struct {
	mu         sync.RWMutex
	categories map[string]models.AppCategory
	items      map[string]models.AppItem
}

func NewMemory() *MemoryStore {
	return &MemoryStore{
		categories: make(map[string]models.AppCategory),
		items:      make(map[string]models.AppItem),
	}
}

func (m *MemoryStore) UpsertCategory(_ context.Context, c models.AppCategory) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.categories[c.ID] = c
	return nil
}

func (m *MemoryStore) UpsertItem(_ context.Context, it models.AppItem) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.items[it.ID] = it
	return nil
}

func (m *MemoryStore) ListCategories(_ context.Context) ([]models.AppCategory, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	out := make([]models.AppCategory, 0, len(m.categories))
	for _, c := range m.categories {
		out = append(out, c)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Order != out[j].Order {
			return out[i].Order < out[j].Order
		}
		return out[i].ID < out[j].ID
	})
	return out, nil
}

func (m *MemoryStore) ListItems(_ context.Context, q ItemQuery) ([]models.AppItem, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	kw := strings.ToLower(strings.TrimSpace(q.Q))
	var out []models.AppItem
	for _, it := range m.items {
		if q.CategoryID != "" && it.CategoryID != q.CategoryID {
			continue
		}
		if kw != "" && !nameContains(it.Names, kw) {
			continue
		}
		out = append(out, it)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Order != out[j].Order {
			return out[i].Order < out[j].Order
		}
		return out[i].ID < out[j].ID
	})

	if q.Limit > 0 {
		start := min(max(q.Offset, 0), len(out))
		end := min(start+q.Limit, len(out))
		out = out[start:end]
	}
	return out, nil
}

func nameContains(n models.LocalizedNames, kw string) bool {
	for _, s := range []string{n.AR, n.TR, n.EN} {
		if strings.Contains(strings.ToLower(s), kw) {
			return true
		}
	}
	return false
}

func (m *MemoryStore) GetItem(_ context.Context, id string) (*models.AppItem, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	it, ok := m.items[id]
	if !ok {
		return nil, ErrNotFound
	}
	return &it, nil
}

func (m *MemoryStore) UpdateItemPrice(_ context.Context, id string, price float64, updatedAt string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	it, ok := m.items[id]
	if !ok {
		return ErrNotFound
	}
	it.Price = price
	it.UpdatedAt = updatedAt
	m.items[id] = it
	return nil
}

func (m *MemoryStore) Close() error { return nil }
