package feed

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/wooplugin/gswc/internal/catalog"
	"github.com/wooplugin/gswc/internal/domain"
)

// SelectProducts queries the catalog under the configured filters and then
// applies the price-range filter in-process (the catalog query layer does
// not support range filtering). Variable products come back as-is;
// expansion into variants happens at emission time.
func SelectProducts(ctx context.Context, cat catalog.Catalog, set Settings) ([]domain.Product, error) {
	q := catalog.Query{
		Status:             domain.StatusPublish,
		InStockOnly:        !set.IncludeOutOfStock,
		ExcludeCategoryIDs: set.ExcludeCategoryIDs,
		ExcludeTagIDs:      set.ExcludeTagIDs,
		Limit:              set.Limit,
	}

	products, err := cat.FindProducts(ctx, q)
	if err != nil {
		return nil, err
	}

	if set.MinPrice == "" && set.MaxPrice == "" {
		return products, nil
	}

	var min, max decimal.Decimal
	if set.MinPrice != "" {
		min = ParseAmount(set.MinPrice)
	}
	if set.MaxPrice != "" {
		max = ParseAmount(set.MaxPrice)
	}

	out := make([]domain.Product, 0, len(products))
	for _, p := range products {
		price := ParseAmount(p.Price)

		if set.MinPrice != "" && price.LessThan(min) {
			continue
		}
		if set.MaxPrice != "" && price.GreaterThan(max) {
			continue
		}

		out = append(out, p)
	}

	return out, nil
}
