package catalog

import (
	"context"
	"sort"
	"sync"

	"github.com/wooplugin/gswc/internal/domain"
)

type MemoryCatalog struct {
	mu       sync.RWMutex
	products map[uint64]domain.Product
}

func NewMemoryCatalog(seed ...domain.Product) *MemoryCatalog {
	c := &MemoryCatalog{
		products: make(map[uint64]domain.Product, len(seed)),
	}
	for _, p := range seed {
		c.products[p.ID] = p
	}
	return c
}

func (c *MemoryCatalog) Upsert(p domain.Product) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.products[p.ID] = p
}

func (c *MemoryCatalog) FindProducts(ctx context.Context, q Query) ([]domain.Product, error) {
	_ = ctx

	c.mu.RLock()
	defer c.mu.RUnlock()

	out := make([]domain.Product, 0, len(c.products))
	for _, p := range c.products {
		if p.Kind == domain.KindVariation {
			continue
		}
		if q.Status != "" && p.Status != q.Status {
			continue
		}
		if q.InStockOnly && !p.InStock {
			continue
		}
		if intersects(p.CategoryIDs, q.ExcludeCategoryIDs) {
			continue
		}
		if intersects(p.TagIDs, q.ExcludeTagIDs) {
			continue
		}
		out = append(out, p)
	}

	// Newest first; id desc breaks created_at ties so ordering is stable.
	sort.Slice(out, func(i, j int) bool {
		if !out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].CreatedAt.After(out[j].CreatedAt)
		}
		return out[i].ID > out[j].ID
	})

	if q.Limit > 0 && q.Limit < len(out) {
		out = out[:q.Limit]
	}

	return out, nil
}

func (c *MemoryCatalog) GetProduct(ctx context.Context, id uint64) (domain.Product, bool, error) {
	_ = ctx

	c.mu.RLock()
	defer c.mu.RUnlock()

	p, ok := c.products[id]
	return p, ok, nil
}

func intersects(have []uint64, exclude []uint64) bool {
	if len(have) == 0 || len(exclude) == 0 {
		return false
	}
	for _, h := range have {
		for _, e := range exclude {
			if h == e {
				return true
			}
		}
	}
	return false
}
