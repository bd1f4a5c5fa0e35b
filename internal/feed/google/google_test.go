package google

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/wooplugin/gswc/internal/catalog"
	"github.com/wooplugin/gswc/internal/domain"
	"github.com/wooplugin/gswc/internal/feed"
	"github.com/wooplugin/gswc/internal/fields"
)

func newTestChannel(cat *catalog.MemoryCatalog, meta *fields.MemoryMetaStore) Channel {
	return Channel{
		Catalog: cat,
		Fields: fields.Resolver{
			Meta:    meta,
			Catalog: cat,
		},
	}
}

func baseSettings() feed.Settings {
	return feed.Settings{
		StoreName:        "Acme Store",
		DefaultBrand:     "Acme",
		DefaultCondition: "new",
		SiteName:         "acme.test",
		SiteURL:          "https://acme.test",
		Currency:         "USD",
		WeightUnit:       "kg",
	}
}

func TestBuild_GoldenDocument(t *testing.T) {
	cat := catalog.NewMemoryCatalog(domain.Product{
		ID:          10,
		SKU:         "SKU-1",
		Name:        "Widget",
		Description: "A widget.",
		Permalink:   "https://acme.test/p/widget",
		ImageLink:   "https://acme.test/img/widget.jpg",
		Price:       "19.99",
		InStock:     true,
		Status:      domain.StatusPublish,
		Kind:        domain.KindSimple,
	})
	meta := fields.NewMemoryMetaStore()
	if err := meta.Set(context.Background(), 10, fields.MetaKey(fields.FieldGTIN), "1234567890123"); err != nil {
		t.Fatalf("seed meta: %v", err)
	}

	ch := newTestChannel(cat, meta)

	products, err := cat.FindProducts(context.Background(), catalog.Query{Status: domain.StatusPublish})
	if err != nil {
		t.Fatalf("find products: %v", err)
	}

	res, err := ch.Build(context.Background(), products, baseSettings())
	if err != nil {
		t.Fatalf("build failed: %v", err)
	}
	if res.Count != 1 {
		t.Fatalf("count = %d", res.Count)
	}

	want := `<?xml version="1.0" encoding="UTF-8"?>
<rss version="2.0" xmlns:g="http://base.google.com/ns/1.0">
  <channel>
    <title>Acme Store</title>
    <link>https://acme.test</link>
    <description>` + generatorDescription + `</description>
    <item>
      <g:id>SKU-1</g:id>
      <title>Widget</title>
      <link>https://acme.test/p/widget</link>
      <description>A widget.</description>
      <g:image_link>https://acme.test/img/widget.jpg</g:image_link>
      <g:price>19.99 USD</g:price>
      <g:availability>in_stock</g:availability>
      <g:condition>new</g:condition>
      <g:brand>Acme</g:brand>
      <g:gtin>1234567890123</g:gtin>
    </item>
  </channel>
</rss>
`
	if string(res.XML) != want {
		t.Fatalf("document mismatch:\n--- got ---\n%s\n--- want ---\n%s", res.XML, want)
	}
}

func TestBuild_Deterministic(t *testing.T) {
	cat := catalog.NewMemoryCatalog(
		domain.Product{ID: 1, SKU: "A", Name: "A", Permalink: "https://acme.test/a", Price: "1.00", InStock: true, Status: domain.StatusPublish, Kind: domain.KindSimple},
		domain.Product{ID: 2, SKU: "B", Name: "B", Permalink: "https://acme.test/b", Price: "2.00", InStock: true, Status: domain.StatusPublish, Kind: domain.KindSimple},
	)
	ch := newTestChannel(cat, fields.NewMemoryMetaStore())

	products, err := cat.FindProducts(context.Background(), catalog.Query{Status: domain.StatusPublish})
	if err != nil {
		t.Fatalf("find products: %v", err)
	}

	first, err := ch.Build(context.Background(), products, baseSettings())
	if err != nil {
		t.Fatalf("build failed: %v", err)
	}
	second, err := ch.Build(context.Background(), products, baseSettings())
	if err != nil {
		t.Fatalf("build failed: %v", err)
	}

	if !bytes.Equal(first.XML, second.XML) {
		t.Fatalf("same inputs must produce identical bytes")
	}
}

func TestBuild_ChannelTitleFallsBackToSiteName(t *testing.T) {
	cat := catalog.NewMemoryCatalog()
	ch := newTestChannel(cat, fields.NewMemoryMetaStore())

	set := baseSettings()
	set.StoreName = ""

	res, err := ch.Build(context.Background(), nil, set)
	if err != nil {
		t.Fatalf("build failed: %v", err)
	}
	if !strings.Contains(string(res.XML), "<title>acme.test</title>") {
		t.Fatalf("expected site name title, got:\n%s", res.XML)
	}
}

func TestBuild_VariableProductExpandsToPurchasableVariants(t *testing.T) {
	cat := catalog.NewMemoryCatalog(
		domain.Product{
			ID:       100,
			SKU:      "PARENT",
			Name:     "Shirt",
			Kind:     domain.KindVariable,
			Status:   domain.StatusPublish,
			InStock:  true,
			ChildIDs: []uint64{101, 102, 103, 104},
		},
		domain.Product{ID: 101, SKU: "SHIRT-S", Name: "Shirt S", Price: "15.00", InStock: true, Purchasable: true, Status: domain.StatusPublish, Kind: domain.KindVariation},
		domain.Product{ID: 102, SKU: "SHIRT-M", Name: "Shirt M", Price: "15.00", InStock: true, Purchasable: false, Status: domain.StatusPublish, Kind: domain.KindVariation},
		domain.Product{ID: 103, SKU: "SHIRT-L", Name: "Shirt L", Price: "15.00", InStock: true, Purchasable: true, Status: domain.StatusPublish, Kind: domain.KindVariation},
		// 104 does not exist in the catalog on purpose.
	)
	ch := newTestChannel(cat, fields.NewMemoryMetaStore())

	parent, _, err := cat.GetProduct(context.Background(), 100)
	if err != nil {
		t.Fatalf("get parent: %v", err)
	}

	res, err := ch.Build(context.Background(), []domain.Product{parent}, baseSettings())
	if err != nil {
		t.Fatalf("build failed: %v", err)
	}

	// Two purchasable variants emitted, not the parent, not the
	// unpurchasable or missing ones.
	if res.Count != 2 {
		t.Fatalf("count = %d, want 2", res.Count)
	}

	doc := string(res.XML)
	if strings.Contains(doc, "<g:id>PARENT</g:id>") {
		t.Fatalf("parent must not appear in the feed")
	}
	if !strings.Contains(doc, "<g:id>SHIRT-S</g:id>") || !strings.Contains(doc, "<g:id>SHIRT-L</g:id>") {
		t.Fatalf("expected purchasable variants, got:\n%s", doc)
	}
	if strings.Contains(doc, "SHIRT-M") {
		t.Fatalf("unpurchasable variant must be skipped")
	}
}

func TestBuildItem_IDFallsBackToProductID(t *testing.T) {
	ch := newTestChannel(catalog.NewMemoryCatalog(), fields.NewMemoryMetaStore())

	it := ch.buildItem(context.Background(), domain.Product{ID: 42, Name: "NoSKU"}, baseSettings())
	if it.ID != "42" {
		t.Fatalf("id = %q", it.ID)
	}
}

func TestBuildItem_SalePriceRequiresStrictDiscount(t *testing.T) {
	ch := newTestChannel(catalog.NewMemoryCatalog(), fields.NewMemoryMetaStore())
	set := baseSettings()

	cases := []struct {
		name     string
		p        domain.Product
		wantSale string
	}{
		{"below regular", domain.Product{ID: 1, Price: "15.00", RegularPrice: "20.00", SalePrice: "15.00"}, "15.00 USD"},
		{"equal to regular", domain.Product{ID: 2, Price: "20.00", RegularPrice: "20.00", SalePrice: "20.00"}, ""},
		{"above regular", domain.Product{ID: 3, Price: "25.00", RegularPrice: "20.00", SalePrice: "25.00"}, ""},
		{"zero sale", domain.Product{ID: 4, Price: "20.00", RegularPrice: "20.00", SalePrice: ""}, ""},
	}
	for _, c := range cases {
		it := ch.buildItem(context.Background(), c.p, set)
		if it.SalePrice != c.wantSale {
			t.Fatalf("%s: sale_price = %q, want %q", c.name, it.SalePrice, c.wantSale)
		}
	}
}

func TestBuildItem_ZeroPriceSuppressesPriceAndSale(t *testing.T) {
	ch := newTestChannel(catalog.NewMemoryCatalog(), fields.NewMemoryMetaStore())

	it := ch.buildItem(context.Background(), domain.Product{ID: 1, Price: "", SalePrice: "5.00", RegularPrice: "10.00"}, baseSettings())
	if it.Price != "" || it.SalePrice != "" {
		t.Fatalf("price = %q sale = %q, both must be empty", it.Price, it.SalePrice)
	}
}

func TestBuildItem_IdentifierExists(t *testing.T) {
	cases := []struct {
		name  string
		gtin  string
		mpn   string
		value string // stored identifier_exists
		want  string // emitted value; "" = omitted
	}{
		{"explicit no wins over identifiers", "1234567890123", "MPN-1", "no", "false"},
		{"explicit no without identifiers", "", "", "no", "false"},
		{"explicit yes without identifiers", "", "", "yes", ""},
		{"unset without identifiers", "", "", "", "false"},
		{"unset with gtin", "1234567890123", "", "", ""},
		{"unset with mpn", "", "MPN-1", "", ""},
	}

	for _, c := range cases {
		cat := catalog.NewMemoryCatalog(domain.Product{ID: 1, Kind: domain.KindSimple, Status: domain.StatusPublish})
		meta := fields.NewMemoryMetaStore()
		ctx := context.Background()

		if c.gtin != "" {
			_ = meta.Set(ctx, 1, fields.MetaKey(fields.FieldGTIN), c.gtin)
		}
		if c.mpn != "" {
			_ = meta.Set(ctx, 1, fields.MetaKey(fields.FieldMPN), c.mpn)
		}
		if c.value != "" {
			_ = meta.Set(ctx, 1, fields.MetaKey(fields.FieldIdentifierExists), c.value)
		}

		ch := newTestChannel(cat, meta)

		p, _, _ := cat.GetProduct(ctx, 1)
		it := ch.buildItem(ctx, p, baseSettings())
		if it.IdentifierExists != c.want {
			t.Fatalf("%s: identifier_exists = %q, want %q", c.name, it.IdentifierExists, c.want)
		}
	}
}

func TestBuildItem_GTINFallsBackToGlobalUniqueID(t *testing.T) {
	cat := catalog.NewMemoryCatalog(domain.Product{
		ID:             7,
		Kind:           domain.KindSimple,
		Status:         domain.StatusPublish,
		GlobalUniqueID: "0009876543210",
	})
	ch := newTestChannel(cat, fields.NewMemoryMetaStore())

	p, _, _ := cat.GetProduct(context.Background(), 7)
	it := ch.buildItem(context.Background(), p, baseSettings())

	if it.GTIN != "0009876543210" {
		t.Fatalf("gtin = %q", it.GTIN)
	}
	// The fallback counts as an identifier.
	if it.IdentifierExists != "" {
		t.Fatalf("identifier_exists = %q, want omitted", it.IdentifierExists)
	}
}

func TestBuildItem_AdditionalImagesCappedAtTen(t *testing.T) {
	gallery := make([]string, 14)
	for i := range gallery {
		gallery[i] = "https://acme.test/img/" + string(rune('a'+i)) + ".jpg"
	}

	ch := newTestChannel(catalog.NewMemoryCatalog(), fields.NewMemoryMetaStore())
	it := ch.buildItem(context.Background(), domain.Product{ID: 1, GalleryImageLinks: gallery}, baseSettings())

	if len(it.AdditionalImageLinks) != 10 {
		t.Fatalf("additional images = %d, want 10", len(it.AdditionalImageLinks))
	}
	if it.AdditionalImageLinks[0] != gallery[0] || it.AdditionalImageLinks[9] != gallery[9] {
		t.Fatalf("gallery order must be preserved")
	}
}

func TestBuildItem_DescriptionFallbackAndTruncation(t *testing.T) {
	ch := newTestChannel(catalog.NewMemoryCatalog(), fields.NewMemoryMetaStore())
	set := baseSettings()

	it := ch.buildItem(context.Background(), domain.Product{ID: 1, ShortDescription: "<b>Short</b> one"}, set)
	if it.Description != "Short one" {
		t.Fatalf("description = %q", it.Description)
	}

	// Truncation runs after affixes, so the suffix can be clipped.
	set.DescSuffix = "SUFFIX"
	long := strings.Repeat("x", maxDescriptionRunes)
	it = ch.buildItem(context.Background(), domain.Product{ID: 1, Description: long}, set)

	if len([]rune(it.Description)) != maxDescriptionRunes {
		t.Fatalf("description length = %d", len([]rune(it.Description)))
	}
	if strings.HasSuffix(it.Description, "SUFFIX") {
		t.Fatalf("suffix should have been clipped by truncation")
	}
}

func TestBuildItem_TitleAffixesAndMarkupStrip(t *testing.T) {
	ch := newTestChannel(catalog.NewMemoryCatalog(), fields.NewMemoryMetaStore())
	set := baseSettings()
	set.TitlePrefix = "NEW:"
	set.TitleSuffix = "| Acme"

	it := ch.buildItem(context.Background(), domain.Product{ID: 1, Name: "<em>Widget</em> &amp; Co"}, set)
	if it.Title != "NEW: Widget & Co | Acme" {
		t.Fatalf("title = %q", it.Title)
	}
}

func TestBuildItem_CategoryBreadcrumbAndWeight(t *testing.T) {
	ch := newTestChannel(catalog.NewMemoryCatalog(), fields.NewMemoryMetaStore())

	it := ch.buildItem(context.Background(), domain.Product{
		ID:            1,
		CategoryNames: []string{"Clothing", "Shirts", "T-Shirts"},
		Weight:        "0.25",
	}, baseSettings())

	if it.ProductType != "Clothing > Shirts > T-Shirts" {
		t.Fatalf("product_type = %q", it.ProductType)
	}
	if it.ShippingWeight != "0.25 kg" {
		t.Fatalf("shipping_weight = %q", it.ShippingWeight)
	}
}

func TestBuildItem_BrandAndConditionDefaults(t *testing.T) {
	cat := catalog.NewMemoryCatalog(domain.Product{ID: 1, Kind: domain.KindSimple, Status: domain.StatusPublish})
	meta := fields.NewMemoryMetaStore()
	ch := newTestChannel(cat, meta)
	ctx := context.Background()

	p, _, _ := cat.GetProduct(ctx, 1)

	it := ch.buildItem(ctx, p, baseSettings())
	if it.Brand != "Acme" || it.Condition != "new" {
		t.Fatalf("brand = %q condition = %q", it.Brand, it.Condition)
	}

	// Per-product values win over the defaults.
	_ = meta.Set(ctx, 1, fields.MetaKey(fields.FieldBrand), "OtherBrand")
	_ = meta.Set(ctx, 1, fields.MetaKey(fields.FieldCondition), "used")

	it = ch.buildItem(ctx, p, baseSettings())
	if it.Brand != "OtherBrand" || it.Condition != "used" {
		t.Fatalf("brand = %q condition = %q", it.Brand, it.Condition)
	}
}

func TestBuildItem_OutOfStockAvailability(t *testing.T) {
	ch := newTestChannel(catalog.NewMemoryCatalog(), fields.NewMemoryMetaStore())

	it := ch.buildItem(context.Background(), domain.Product{ID: 1, InStock: false}, baseSettings())
	if it.Availability != "out_of_stock" {
		t.Fatalf("availability = %q", it.Availability)
	}
}
