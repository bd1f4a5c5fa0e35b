package settings

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// Setting keys. The feed_* keys are the feed configuration surface; the two
// run-record keys hold the stats of the last successful generation.
const (
	KeyFeedEnabled           = "feed_enabled"
	KeyFeedStoreName         = "feed_store_name"
	KeyFeedDefaultBrand      = "feed_default_brand"
	KeyFeedDefaultCondition  = "feed_default_condition"
	KeyFeedIncludeOutOfStock = "feed_include_outofstock"
	KeyFeedExcludeCategories = "feed_exclude_categories"
	KeyFeedExcludeTags       = "feed_exclude_tags"
	KeyFeedMinPrice          = "feed_min_price"
	KeyFeedMaxPrice          = "feed_max_price"
	KeyFeedLimit             = "feed_limit"
	KeyFeedTitlePrefix       = "feed_title_prefix"
	KeyFeedTitleSuffix       = "feed_title_suffix"
	KeyFeedDescPrefix        = "feed_desc_prefix"
	KeyFeedDescSuffix        = "feed_desc_suffix"

	KeyFeedLastGenerated = "feed_last_generated"
	KeyFeedProductCount  = "feed_product_count"
)

type Kind string

const (
	KindText        Kind = "text"
	KindSelect      Kind = "select"
	KindMultiSelect Kind = "multiselect"
	KindNumber      Kind = "number"
	KindToggle      Kind = "toggle"
)

type Definition struct {
	Key     string   `json:"key"`
	Kind    Kind     `json:"kind"`
	Default string   `json:"default"`
	Options []string `json:"options,omitempty"` // select only
}

var Definitions = []Definition{
	{Key: KeyFeedEnabled, Kind: KindToggle, Default: "yes"},
	{Key: KeyFeedStoreName, Kind: KindText, Default: ""},
	{Key: KeyFeedDefaultBrand, Kind: KindText, Default: ""},
	{Key: KeyFeedDefaultCondition, Kind: KindSelect, Default: "new", Options: []string{"new", "refurbished", "used"}},
	{Key: KeyFeedIncludeOutOfStock, Kind: KindToggle, Default: "no"},
	{Key: KeyFeedExcludeCategories, Kind: KindMultiSelect, Default: ""},
	{Key: KeyFeedExcludeTags, Kind: KindMultiSelect, Default: ""},
	{Key: KeyFeedMinPrice, Kind: KindNumber, Default: ""},
	{Key: KeyFeedMaxPrice, Kind: KindNumber, Default: ""},
	{Key: KeyFeedLimit, Kind: KindNumber, Default: "0"},
	{Key: KeyFeedTitlePrefix, Kind: KindText, Default: ""},
	{Key: KeyFeedTitleSuffix, Kind: KindText, Default: ""},
	{Key: KeyFeedDescPrefix, Kind: KindText, Default: ""},
	{Key: KeyFeedDescSuffix, Kind: KindText, Default: ""},
	{Key: KeyFeedLastGenerated, Kind: KindNumber, Default: "0"},
	{Key: KeyFeedProductCount, Kind: KindNumber, Default: "0"},
}

var ErrUnknownKey = errors.New("unknown setting")

func Lookup(key string) (Definition, bool) {
	for _, d := range Definitions {
		if d.Key == key {
			return d, true
		}
	}
	return Definition{}, false
}

// Validate checks a value against its definition. The kind set is closed;
// every kind is handled explicitly.
func Validate(key string, value string) error {
	def, ok := Lookup(key)
	if !ok {
		return fmt.Errorf("%w: %s", ErrUnknownKey, key)
	}

	switch def.Kind {
	case KindText:
		return nil

	case KindToggle:
		if value != "yes" && value != "no" {
			return fmt.Errorf("setting %s must be yes or no, got %q", key, value)
		}
		return nil

	case KindSelect:
		for _, o := range def.Options {
			if value == o {
				return nil
			}
		}
		return fmt.Errorf("setting %s: invalid option %q", key, value)

	case KindNumber:
		if value == "" {
			return nil
		}
		if _, err := strconv.ParseFloat(value, 64); err != nil {
			return fmt.Errorf("setting %s must be numeric, got %q", key, value)
		}
		return nil

	case KindMultiSelect:
		if _, err := ParseIDList(value); err != nil {
			return fmt.Errorf("setting %s must be a comma-separated id list, got %q", key, value)
		}
		return nil

	default:
		return fmt.Errorf("setting %s has unhandled kind %q", key, def.Kind)
	}
}

// ParseIDList parses a comma-separated id list ("3,17,42"). Empty input and
// empty segments are tolerated.
func ParseIDList(s string) ([]uint64, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, nil
	}

	parts := strings.Split(s, ",")
	out := make([]uint64, 0, len(parts))
	for _, part := range parts {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		id, err := strconv.ParseUint(part, 10, 64)
		if err != nil {
			return nil, err
		}
		out = append(out, id)
	}
	return out, nil
}

// FormatIDList is the inverse of ParseIDList.
func FormatIDList(ids []uint64) string {
	if len(ids) == 0 {
		return ""
	}
	parts := make([]string, len(ids))
	for i, id := range ids {
		parts[i] = strconv.FormatUint(id, 10)
	}
	return strings.Join(parts, ",")
}
