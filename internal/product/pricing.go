package product

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/dcastanog/pcforge/internal/configuration"
)

// templateDiscountRate is the flat discount applied to publicly listed
// template configurations.
var templateDiscountRate = decimal.NewFromFloat(0.9)

// ConfigurationDiscount derives the visible discount price of a
// configuration: round(totalPrice * 0.9, 2) for public templates, absent for
// private templates and for user builds. Rounding is half-up to two
// decimals (shopspring rounds half away from zero, which is half-up for
// positive prices). Seed prices tend to end in .99 but that is a seeding
// convention, nothing here assumes it.
func ConfigurationDiscount(cfg *configuration.Configuration) (*string, error) {
	if !cfg.IsTemplate || !cfg.IsPublic {
		return nil, nil
	}
	total, err := decimal.NewFromString(cfg.TotalPrice)
	if err != nil {
		return nil, fmt.Errorf("configuration %s: bad total price %q: %w", cfg.ID, cfg.TotalPrice, err)
	}
	s := total.Mul(templateDiscountRate).Round(2).StringFixed(2)
	return &s, nil
}

// LineTotal recomputes a denormalized configuration total from its lines.
// It runs at create/update time only; totals are not refreshed when
// component prices drift afterwards.
func LineTotal(items []configuration.Item) (string, error) {
	total := decimal.Zero
	for _, it := range items {
		price, err := decimal.NewFromString(it.Price)
		if err != nil {
			return "", fmt.Errorf("component %s: bad price %q: %w", it.ComponentID, it.Price, err)
		}
		total = total.Add(price.Mul(decimal.NewFromInt(int64(it.Quantity))))
	}
	return total.StringFixed(2), nil
}
