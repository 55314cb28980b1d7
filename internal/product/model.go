// Package product derives the storefront product view from the catalog and
// configuration records. Products are computed on every read and never
// persisted; everything in this package is a pure transformation over
// already-fetched inputs.
package product

import (
	"github.com/shopspring/decimal"

	"github.com/dcastanog/pcforge/internal/component"
)

// Type is the product variant tag.
type Type string

const (
	TypeConfiguration Type = "configuration"
	TypeComponent     Type = "component"
	TypePeripheral    Type = "peripheral"
)

type Ratings struct {
	Average float64 `json:"average"`
	Count   int     `json:"count"`
}

// Placeholder ratings. These are fixed stand-in numbers, not aggregates of
// real review data; callers must not read them as signal. Replace once a
// reviews source exists.
var (
	PlaceholderConfigurationRatings = Ratings{Average: 4.5, Count: 15}
	PlaceholderComponentRatings     = Ratings{Average: 4.3, Count: 18}
	PlaceholderPeripheralRatings    = Ratings{Average: 4.2, Count: 12}
)

// ConfigurationStock is the flat stock reported for configuration products.
// It is a stand-in carried over as-is; it is NOT min(component stocks).
const ConfigurationStock = 10

// ComponentLine is one entry of a configuration product's breakdown.
type ComponentLine struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Category string `json:"category"`
	Price    string `json:"price"`
	Quantity int    `json:"quantity"`
}

// Product is the normalized view served to the storefront. Exactly one of
// the variant-specific field groups is set, per Type.
// swagger:model Product
type Product struct {
	ID          string `json:"id"`
	Type        Type   `json:"type"`
	Name        string `json:"name"`
	Description string `json:"description"`
	// Prices stay strings end to end (NUMERIC in Postgres); arithmetic goes
	// through shopspring/decimal.
	Price         string  `json:"price"`
	DiscountPrice *string `json:"discountPrice"`
	ImageURL      *string `json:"imageUrl"`
	Stock         int     `json:"stock"`
	Ratings       Ratings `json:"ratings"`

	LongDescription string `json:"longDescription,omitempty"`

	// Component / peripheral variants only. Specifications is always set for
	// those variants (an empty object when the row has no sub-record) and
	// absent for configurations.
	Category       string           `json:"category,omitempty"`
	Specifications *component.Attrs `json:"specifications,omitempty"`

	// Configuration variant only.
	Components []ComponentLine `json:"components,omitempty"`

	Related []Product `json:"related,omitempty"`
}

// EffectivePrice is the price filters and sorts operate on: the discount
// price when present, the base price otherwise. The bool is false when the
// stored string is not a valid number.
func (p *Product) EffectivePrice() (decimal.Decimal, bool) {
	s := p.Price
	if p.DiscountPrice != nil {
		s = *p.DiscountPrice
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Decimal{}, false
	}
	return d, true
}
