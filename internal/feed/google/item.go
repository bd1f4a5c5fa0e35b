package google

// Item is one feed entry. Field order is document order; tags with
// omitempty are presence-conditional per Google's feed rules.
type Item struct {
	ID                   string   `xml:"g:id"`
	Title                string   `xml:"title"`
	Link                 string   `xml:"link"`
	Description          string   `xml:"description,omitempty"`
	ImageLink            string   `xml:"g:image_link,omitempty"`
	AdditionalImageLinks []string `xml:"g:additional_image_link,omitempty"`
	Price                string   `xml:"g:price,omitempty"` // "19.99 USD"
	SalePrice            string   `xml:"g:sale_price,omitempty"`
	Availability         string   `xml:"g:availability"`
	Condition            string   `xml:"g:condition"`
	Brand                string   `xml:"g:brand,omitempty"`
	GTIN                 string   `xml:"g:gtin,omitempty"`
	MPN                  string   `xml:"g:mpn,omitempty"`
	IdentifierExists     string   `xml:"g:identifier_exists,omitempty"` // only ever "false"
	ProductType          string   `xml:"g:product_type,omitempty"`
	ShippingWeight       string   `xml:"g:shipping_weight,omitempty"`
}
