package feed

import (
	"context"
	"strconv"

	"github.com/wooplugin/gswc/internal/settings"
)

// Site is the platform-level context the feed needs: who the store is and
// how it prices and weighs things. Comes from service configuration.
type Site struct {
	Name       string
	URL        string
	Currency   string
	WeightUnit string
}

// Settings is the typed view of the feed configuration the generator and
// channels consume on every run.
type Settings struct {
	Enabled bool

	StoreName        string
	DefaultBrand     string
	DefaultCondition string

	IncludeOutOfStock  bool
	ExcludeCategoryIDs []uint64
	ExcludeTagIDs      []uint64

	// Decimal strings; empty = unbounded on that side.
	MinPrice string
	MaxPrice string

	// 0 = unlimited.
	Limit int

	TitlePrefix string
	TitleSuffix string
	DescPrefix  string
	DescSuffix  string

	SiteName   string
	SiteURL    string
	Currency   string
	WeightUnit string
}

func LoadSettings(ctx context.Context, store settings.Store, site Site) (Settings, error) {
	get := func(key string) (string, error) {
		return settings.GetDefault(ctx, store, key)
	}

	var set Settings
	var err error

	var enabled string
	if enabled, err = get(settings.KeyFeedEnabled); err != nil {
		return Settings{}, err
	}
	set.Enabled = enabled == "yes"

	if set.StoreName, err = get(settings.KeyFeedStoreName); err != nil {
		return Settings{}, err
	}
	if set.DefaultBrand, err = get(settings.KeyFeedDefaultBrand); err != nil {
		return Settings{}, err
	}
	if set.DefaultCondition, err = get(settings.KeyFeedDefaultCondition); err != nil {
		return Settings{}, err
	}

	var outOfStock string
	if outOfStock, err = get(settings.KeyFeedIncludeOutOfStock); err != nil {
		return Settings{}, err
	}
	set.IncludeOutOfStock = outOfStock == "yes"

	var cats string
	if cats, err = get(settings.KeyFeedExcludeCategories); err != nil {
		return Settings{}, err
	}
	set.ExcludeCategoryIDs, _ = settings.ParseIDList(cats)

	var tags string
	if tags, err = get(settings.KeyFeedExcludeTags); err != nil {
		return Settings{}, err
	}
	set.ExcludeTagIDs, _ = settings.ParseIDList(tags)

	if set.MinPrice, err = get(settings.KeyFeedMinPrice); err != nil {
		return Settings{}, err
	}
	if set.MaxPrice, err = get(settings.KeyFeedMaxPrice); err != nil {
		return Settings{}, err
	}

	var limit string
	if limit, err = get(settings.KeyFeedLimit); err != nil {
		return Settings{}, err
	}
	set.Limit, _ = strconv.Atoi(limit)
	if set.Limit < 0 {
		set.Limit = 0
	}

	if set.TitlePrefix, err = get(settings.KeyFeedTitlePrefix); err != nil {
		return Settings{}, err
	}
	if set.TitleSuffix, err = get(settings.KeyFeedTitleSuffix); err != nil {
		return Settings{}, err
	}
	if set.DescPrefix, err = get(settings.KeyFeedDescPrefix); err != nil {
		return Settings{}, err
	}
	if set.DescSuffix, err = get(settings.KeyFeedDescSuffix); err != nil {
		return Settings{}, err
	}

	set.SiteName = site.Name
	set.SiteURL = site.URL
	set.Currency = site.Currency
	set.WeightUnit = site.WeightUnit
	if set.WeightUnit == "" {
		set.WeightUnit = "kg"
	}

	return set, nil
}
