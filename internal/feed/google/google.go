// Package google builds the Google Merchant Center RSS feed document.
package google

import (
	"context"
	"encoding/xml"
	"strconv"
	"strings"

	"github.com/wooplugin/gswc/internal/catalog"
	"github.com/wooplugin/gswc/internal/domain"
	"github.com/wooplugin/gswc/internal/feed"
	"github.com/wooplugin/gswc/internal/fields"
)

const (
	googleNamespace = "http://base.google.com/ns/1.0"

	maxAdditionalImages = 10
	maxDescriptionRunes = 5000

	generatorDescription = "GTIN Product Feed for Google Shopping - This product feed is created with the GTIN Product Feed for Google Shopping plugin by WooPlugin. For support visit https://wooplugin.pro"
)

type Channel struct {
	Catalog catalog.Catalog
	Fields  fields.Resolver
}

func (c Channel) Name() string { return "google" }

type rssDoc struct {
	XMLName  xml.Name `xml:"rss"`
	Version  string   `xml:"version,attr"`
	GoogleNS string   `xml:"xmlns:g,attr"`
	Channel  channelDoc
}

type channelDoc struct {
	XMLName     xml.Name `xml:"channel"`
	Title       string   `xml:"title"`
	Link        string   `xml:"link"`
	Description string   `xml:"description"`
	Items       []Item   `xml:"item"`
}

// Build serializes the product sequence into the feed document. Output is a
// pure function of its inputs: same products and settings, same bytes.
func (c Channel) Build(ctx context.Context, products []domain.Product, set feed.Settings) (feed.BuildResult, error) {
	title := set.StoreName
	if title == "" {
		title = set.SiteName
	}

	doc := rssDoc{
		Version:  "2.0",
		GoogleNS: googleNamespace,
		Channel: channelDoc{
			Title:       title,
			Link:        set.SiteURL,
			Description: generatorDescription,
		},
	}

	for _, p := range products {
		c.appendItems(ctx, &doc.Channel, p, set)
	}

	body, err := xml.MarshalIndent(doc, "", "  ")
	if err != nil {
		return feed.BuildResult{}, err
	}

	out := make([]byte, 0, len(xml.Header)+len(body)+1)
	out = append(out, xml.Header...)
	out = append(out, body...)
	out = append(out, '\n')

	return feed.BuildResult{XML: out, Count: len(doc.Channel.Items)}, nil
}

// appendItems emits one item per concrete purchasable product. Variable
// products are expanded into their purchasable variants; the parent itself
// is never represented in the feed. Unresolvable variants are skipped
// silently, like every other per-product omission.
func (c Channel) appendItems(ctx context.Context, ch *channelDoc, p domain.Product, set feed.Settings) {
	if p.Kind == domain.KindVariable {
		for _, childID := range p.ChildIDs {
			variant, ok, err := c.Catalog.GetProduct(ctx, childID)
			if err != nil || !ok {
				continue
			}
			if !variant.Purchasable {
				continue
			}
			ch.Items = append(ch.Items, c.buildItem(ctx, variant, set))
		}
		return
	}

	ch.Items = append(ch.Items, c.buildItem(ctx, p, set))
}

func (c Channel) buildItem(ctx context.Context, p domain.Product, set feed.Settings) Item {
	gtin := c.resolve(ctx, p.ID, fields.FieldGTIN)
	mpn := c.resolve(ctx, p.ID, fields.FieldMPN)
	identifierExists := c.resolve(ctx, p.ID, fields.FieldIdentifierExists)

	brand := c.resolve(ctx, p.ID, fields.FieldBrand)
	if brand == "" {
		brand = set.DefaultBrand
	}

	condition := c.resolve(ctx, p.ID, fields.FieldCondition)
	if condition == "" {
		condition = set.DefaultCondition
	}

	var it Item

	it.ID = p.SKU
	if it.ID == "" {
		it.ID = strconv.FormatUint(p.ID, 10)
	}

	it.Title = feed.ApplyAffixes(feed.StripMarkup(p.Name), set.TitlePrefix, set.TitleSuffix)
	it.Link = p.Permalink

	desc := p.Description
	if desc == "" {
		desc = p.ShortDescription
	}
	desc = feed.ApplyAffixes(feed.StripMarkup(desc), set.DescPrefix, set.DescSuffix)
	it.Description = feed.TruncateRunes(desc, maxDescriptionRunes)

	it.ImageLink = p.ImageLink
	if n := len(p.GalleryImageLinks); n > 0 {
		if n > maxAdditionalImages {
			n = maxAdditionalImages
		}
		it.AdditionalImageLinks = append(it.AdditionalImageLinks, p.GalleryImageLinks[:n]...)
	}

	price := feed.ParseAmount(p.Price)
	if !price.IsZero() {
		it.Price = feed.FormatPrice(price, set.Currency)

		sale := feed.ParseAmount(p.SalePrice)
		regular := feed.ParseAmount(p.RegularPrice)
		if !sale.IsZero() && sale.LessThan(regular) {
			it.SalePrice = feed.FormatPrice(sale, set.Currency)
		}
	}

	if p.InStock {
		it.Availability = "in_stock"
	} else {
		it.Availability = "out_of_stock"
	}

	it.Condition = condition
	it.Brand = brand
	it.GTIN = gtin
	it.MPN = mpn

	// Explicit "no" always wins; explicit "yes" suppresses the flag even
	// with no identifiers; unset with no identifiers means "false".
	if identifierExists == "no" || (gtin == "" && mpn == "" && identifierExists != "yes") {
		it.IdentifierExists = "false"
	}

	if len(p.CategoryNames) > 0 {
		it.ProductType = strings.Join(p.CategoryNames, " > ")
	}

	if p.Weight != "" {
		it.ShippingWeight = p.Weight + " " + set.WeightUnit
	}

	return it
}

// resolve swallows resolver errors: a field that cannot be read is treated
// as unset, never fatal for the run.
func (c Channel) resolve(ctx context.Context, productID uint64, field string) string {
	v, err := c.Fields.Resolve(ctx, productID, field)
	if err != nil {
		return ""
	}
	return v
}
