package domain

import "time"

type ProductKind string

const (
	KindSimple    ProductKind = "simple"
	KindVariable  ProductKind = "variable"
	KindVariation ProductKind = "variation"
)

const StatusPublish = "publish"

// Product is the read model the feed consumes. Prices and weight are kept as
// decimal strings; an empty string means the product does not carry the value.
type Product struct {
	ID  uint64 `json:"id"`
	SKU string `json:"sku,omitempty"`

	Name             string `json:"name"`
	Description      string `json:"description,omitempty"`
	ShortDescription string `json:"short_description,omitempty"`

	Permalink string `json:"permalink"`

	ImageLink         string   `json:"image_link,omitempty"`
	GalleryImageLinks []string `json:"gallery_image_links,omitempty"`

	Price        string `json:"price,omitempty"`
	RegularPrice string `json:"regular_price,omitempty"`
	SalePrice    string `json:"sale_price,omitempty"`

	InStock     bool `json:"in_stock"`
	Purchasable bool `json:"purchasable"`

	Weight string `json:"weight,omitempty"`

	// The platform's built-in global trade item number, when set.
	GlobalUniqueID string `json:"global_unique_id,omitempty"`

	Status string `json:"status"`

	CategoryIDs   []uint64 `json:"category_ids,omitempty"`
	CategoryNames []string `json:"category_names,omitempty"`
	TagIDs        []uint64 `json:"tag_ids,omitempty"`

	Kind     ProductKind `json:"kind"`
	ChildIDs []uint64    `json:"child_ids,omitempty"`

	CreatedAt time.Time `json:"created_at"`
}
