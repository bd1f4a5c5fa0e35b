package catalog

import (
	"encoding/json"
	"os"
	"sort"
	"strings"

	"github.com/wooplugin/gswc/internal/domain"
)

type SnapshotResult struct {
	Products []domain.Product

	// Keys present in the snapshot that the product model does not know.
	// Surfaced as a warning so a bad export is noticed, never an error.
	UnknownKeys []string
}

// LoadSnapshot reads a JSON array of products used to seed the memory
// catalog backend.
func LoadSnapshot(path string) (SnapshotResult, error) {
	body, err := os.ReadFile(path)
	if err != nil {
		return SnapshotResult{}, err
	}
	return ParseSnapshot(body)
}

func ParseSnapshot(body []byte) (SnapshotResult, error) {
	var rawItems []map[string]json.RawMessage
	if err := json.Unmarshal(body, &rawItems); err != nil {
		return SnapshotResult{}, err
	}

	known := knownProductKeys()
	unknown := make(map[string]struct{})

	products := make([]domain.Product, 0, len(rawItems))
	for _, item := range rawItems {
		var p domain.Product

		for key := range item {
			kk := strings.TrimSpace(key)
			if _, ok := known[kk]; !ok && kk != "" {
				unknown[kk] = struct{}{}
			}
		}

		unmarshalIfPresent(item, "id", &p.ID)
		unmarshalIfPresent(item, "sku", &p.SKU)

		unmarshalIfPresent(item, "name", &p.Name)
		unmarshalIfPresent(item, "description", &p.Description)
		unmarshalIfPresent(item, "short_description", &p.ShortDescription)

		unmarshalIfPresent(item, "permalink", &p.Permalink)
		unmarshalIfPresent(item, "image_link", &p.ImageLink)
		unmarshalIfPresent(item, "gallery_image_links", &p.GalleryImageLinks)

		unmarshalIfPresent(item, "price", &p.Price)
		unmarshalIfPresent(item, "regular_price", &p.RegularPrice)
		unmarshalIfPresent(item, "sale_price", &p.SalePrice)

		unmarshalIfPresent(item, "in_stock", &p.InStock)
		unmarshalIfPresent(item, "purchasable", &p.Purchasable)

		unmarshalIfPresent(item, "weight", &p.Weight)
		unmarshalIfPresent(item, "global_unique_id", &p.GlobalUniqueID)

		unmarshalIfPresent(item, "status", &p.Status)

		unmarshalIfPresent(item, "category_ids", &p.CategoryIDs)
		unmarshalIfPresent(item, "category_names", &p.CategoryNames)
		unmarshalIfPresent(item, "tag_ids", &p.TagIDs)

		unmarshalIfPresent(item, "kind", &p.Kind)
		unmarshalIfPresent(item, "child_ids", &p.ChildIDs)

		unmarshalIfPresent(item, "created_at", &p.CreatedAt)

		if p.Status == "" {
			p.Status = domain.StatusPublish
		}
		if p.Kind == "" {
			p.Kind = domain.KindSimple
		}

		products = append(products, p)
	}

	return SnapshotResult{
		Products:    products,
		UnknownKeys: setToSortedSlice(unknown),
	}, nil
}

func knownProductKeys() map[string]struct{} {
	return map[string]struct{}{
		"id":                  {},
		"sku":                 {},
		"name":                {},
		"description":         {},
		"short_description":   {},
		"permalink":           {},
		"image_link":          {},
		"gallery_image_links": {},
		"price":               {},
		"regular_price":       {},
		"sale_price":          {},
		"in_stock":            {},
		"purchasable":         {},
		"weight":              {},
		"global_unique_id":    {},
		"status":              {},
		"category_ids":        {},
		"category_names":      {},
		"tag_ids":             {},
		"kind":                {},
		"child_ids":           {},
		"created_at":          {},
	}
}

func unmarshalIfPresent[T any](obj map[string]json.RawMessage, key string, dst *T) {
	raw, ok := obj[key]
	if !ok {
		return
	}
	_ = json.Unmarshal(raw, dst) // malformed values surface later as missing fields
}

func setToSortedSlice(set map[string]struct{}) []string {
	if len(set) == 0 {
		return []string{}
	}

	out := make([]string, 0, len(set))
	for k := range set {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}
