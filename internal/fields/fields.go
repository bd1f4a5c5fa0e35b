// Package fields owns the Google Shopping product attributes (GTIN, MPN,
// brand, condition, identifier_exists) stored as per-product metadata, and
// resolves their effective values.
package fields

import (
	"context"
	"errors"
	"fmt"

	"github.com/wooplugin/gswc/internal/catalog"
)

// MetaPrefix namespaces our keys inside the shared product metadata store.
const MetaPrefix = "_gswc_"

const (
	FieldGTIN             = "gtin"
	FieldMPN              = "mpn"
	FieldBrand            = "brand"
	FieldCondition        = "condition"
	FieldIdentifierExists = "identifier_exists"
)

type Kind string

const (
	KindText   Kind = "text"
	KindSelect Kind = "select"
)

type Definition struct {
	Key     string   `json:"key"`
	Label   string   `json:"label"`
	Kind    Kind     `json:"kind"`
	Options []string `json:"options,omitempty"` // select only; "" means "use default"
}

var Definitions = []Definition{
	{Key: FieldGTIN, Label: "GTIN", Kind: KindText},
	{Key: FieldMPN, Label: "MPN", Kind: KindText},
	{Key: FieldBrand, Label: "Brand", Kind: KindText},
	{Key: FieldCondition, Label: "Condition", Kind: KindSelect, Options: []string{"", "new", "refurbished", "used"}},
	{Key: FieldIdentifierExists, Label: "Identifier exists", Kind: KindSelect, Options: []string{"", "yes", "no"}},
}

var ErrUnknownField = errors.New("unknown field")

func Lookup(key string) (Definition, bool) {
	for _, d := range Definitions {
		if d.Key == key {
			return d, true
		}
	}
	return Definition{}, false
}

func Validate(key string, value string) error {
	def, ok := Lookup(key)
	if !ok {
		return fmt.Errorf("%w: %s", ErrUnknownField, key)
	}

	switch def.Kind {
	case KindText:
		return nil
	case KindSelect:
		for _, o := range def.Options {
			if value == o {
				return nil
			}
		}
		return fmt.Errorf("field %s: invalid option %q", key, value)
	default:
		return fmt.Errorf("field %s has unhandled kind %q", key, def.Kind)
	}
}

func MetaKey(field string) string {
	return MetaPrefix + field
}

// MetaStore is per-(product, key) string metadata. Get returns "" for
// absent keys; absence and explicitly-empty are not distinguished.
type MetaStore interface {
	Get(ctx context.Context, productID uint64, metaKey string) (string, error)
	Set(ctx context.Context, productID uint64, metaKey string, value string) error
}

type Resolver struct {
	Meta    MetaStore
	Catalog catalog.Catalog
}

// Resolve returns the effective value of a field for a product. An empty
// GTIN falls back to the platform's built-in global trade item number;
// every other field has no fallback.
func (r Resolver) Resolve(ctx context.Context, productID uint64, field string) (string, error) {
	if r.Meta == nil {
		return "", errors.New("fields resolver: meta store is nil")
	}

	v, err := r.Meta.Get(ctx, productID, MetaKey(field))
	if err != nil {
		return "", err
	}

	if v == "" && field == FieldGTIN && r.Catalog != nil {
		p, ok, err := r.Catalog.GetProduct(ctx, productID)
		if err != nil {
			return "", err
		}
		if ok {
			return p.GlobalUniqueID, nil
		}
	}

	return v, nil
}

// AllFields returns every defined field's effective value, keyed by field
// name. Used by the admin/export surface, not the feed path.
func (r Resolver) AllFields(ctx context.Context, productID uint64) (map[string]string, error) {
	out := make(map[string]string, len(Definitions))
	for _, d := range Definitions {
		v, err := r.Resolve(ctx, productID, d.Key)
		if err != nil {
			return nil, err
		}
		out[d.Key] = v
	}
	return out, nil
}
