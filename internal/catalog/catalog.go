package catalog

import (
	"context"

	"github.com/wooplugin/gswc/internal/domain"
)

type Query struct {
	// Status filters on publication status ("" = any).
	Status string

	// InStockOnly drops products that are not currently in stock.
	InStockOnly bool

	// Products carrying any of these category/tag term ids are excluded.
	// Both sets applied together behave as an AND of two NOT IN filters.
	ExcludeCategoryIDs []uint64
	ExcludeTagIDs      []uint64

	// Limit caps the result size. 0 = unbounded.
	Limit int
}

type Catalog interface {
	// FindProducts returns top-level products (variations are never returned
	// at the top level), newest first. Ordering is deterministic for a fixed
	// catalog snapshot.
	FindProducts(ctx context.Context, q Query) ([]domain.Product, error)

	GetProduct(ctx context.Context, id uint64) (domain.Product, bool, error)
}
