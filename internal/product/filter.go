package product

import (
	"regexp"
	"sort"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
)

// SortKey selects the list ordering. Unknown keys keep the input order.
type SortKey string

const (
	SortPriceAsc  SortKey = "price_asc"
	SortPriceDesc SortKey = "price_desc"
	SortName      SortKey = "name"
	SortRating    SortKey = "rating"
)

// State is the filter input derived from the request query. The engine
// itself is stateless; callers own and mutate this between calls.
type State struct {
	Search   string
	Tags     []string
	Category string // active category slug; selects the tag predicate table
	MinPrice *decimal.Decimal
	MaxPrice *decimal.Decimal
	Sort     SortKey
}

// Apply filters and sorts a product list in memory. Search, tags and price
// range combine with AND; within the tag dimension a product passes if any
// one active tag matches. Ordering is preserved except under an explicit
// sort, which is stable.
func Apply(products []Product, st State) []Product {
	q := strings.ToLower(strings.TrimSpace(st.Search))

	out := make([]Product, 0, len(products))
	for i := range products {
		p := &products[i]
		if q != "" && !matchesSearch(p, q) {
			continue
		}
		if len(st.Tags) > 0 && !matchesAnyTag(p, st.Category, st.Tags) {
			continue
		}
		if !withinPrice(p, st.MinPrice, st.MaxPrice) {
			continue
		}
		out = append(out, products[i])
	}
	sortProducts(out, st.Sort)
	return out
}

// matchesSearch is a case-insensitive substring check over name and
// description, plus specification values for components/peripherals and
// contained component names for configurations. Any hit counts.
func matchesSearch(p *Product, q string) bool {
	if strings.Contains(strings.ToLower(p.Name), q) ||
		strings.Contains(strings.ToLower(p.Description), q) {
		return true
	}
	if p.Specifications != nil {
		for _, at := range *p.Specifications {
			if strings.Contains(strings.ToLower(at.Value), q) {
				return true
			}
		}
	}
	for _, line := range p.Components {
		if strings.Contains(strings.ToLower(line.Name), q) {
			return true
		}
	}
	return false
}

func withinPrice(p *Product, min, max *decimal.Decimal) bool {
	if min == nil && max == nil {
		return true
	}
	d, ok := p.EffectivePrice()
	if !ok {
		return false
	}
	if min != nil && d.LessThan(*min) {
		return false
	}
	if max != nil && d.GreaterThan(*max) {
		return false
	}
	return true
}

type predicate func(*Product) bool

// categoryTags holds the per-category tag predicate tables. The substrings
// are intentionally the exact heuristics the storefront has always used
// (fuzzy as they are); the table isolates them so call sites survive a
// later move to structured attribute comparisons. A tag missing from its
// category's table matches nothing.
var categoryTags = map[string]map[string]predicate{
	"cpu": {
		"i9":      nameTag("i9"),
		"i7":      nameTag("i7"),
		"i5":      nameTag("i5"),
		"i3":      nameTag("i3"),
		"ryzen 9": nameTag("ryzen 9"),
		"ryzen 7": nameTag("ryzen 7"),
		"ryzen 5": nameTag("ryzen 5"),
	},
	"gpu": {
		"rtx 40": nameTag("rtx 40"),
		"rtx 30": nameTag("rtx 30"),
		"gtx":    nameTag("gtx"),
		"radeon": nameTag("radeon"),
	},
	"psu": {
		"under 500w": wattBucket(0, 500),
		"500w-750w":  wattBucket(500, 750),
		"750w-1000w": wattBucket(750, 1000),
		"1000w+":     wattBucket(1000, 0),
	},
	"case":        formFactorTags(),
	"motherboard": formFactorTags(),
	"cooling": {
		"air":    specTag("air"),
		"liquid": anyOf(specTag("liquid"), specTag("aio")),
		"120mm":  radiatorTag(120),
		"240mm":  radiatorTag(240),
		"360mm":  radiatorTag(360),
	},
}

func matchesAnyTag(p *Product, category string, tags []string) bool {
	table := categoryTags[category]
	for _, tag := range tags {
		tag = strings.ToLower(strings.TrimSpace(tag))
		if tag == "" {
			continue
		}
		pred, ok := table[tag]
		if !ok {
			// unrecognized tag for this category: fail closed
			continue
		}
		if pred(p) {
			return true
		}
	}
	return false
}

func nameTag(sub string) predicate {
	return func(p *Product) bool {
		return strings.Contains(strings.ToLower(p.Name), sub)
	}
}

// specTag matches a substring against the name or any specification value.
func specTag(sub string) predicate {
	return func(p *Product) bool {
		if strings.Contains(strings.ToLower(p.Name), sub) {
			return true
		}
		if p.Specifications != nil {
			for _, at := range *p.Specifications {
				if strings.Contains(strings.ToLower(at.Value), sub) {
					return true
				}
			}
		}
		return false
	}
}

func anyOf(preds ...predicate) predicate {
	return func(p *Product) bool {
		for _, pred := range preds {
			if pred(p) {
				return true
			}
		}
		return false
	}
}

func formFactorTags() map[string]predicate {
	return map[string]predicate{
		"atx":   specTag("atx"),
		"m-atx": anyOf(specTag("m-atx"), specTag("micro-atx"), specTag("matx")),
		"itx":   anyOf(specTag("itx"), specTag("mini-itx")),
	}
}

// wattRe captures the digits immediately preceding a "w" suffix in a
// product name ("... 850W" -> 850).
var wattRe = regexp.MustCompile(`(\d+)w`)

// wattBucket matches PSUs whose extracted wattage is in [min, max); max 0
// means unbounded.
func wattBucket(min, max int) predicate {
	return func(p *Product) bool {
		m := wattRe.FindStringSubmatch(strings.ToLower(p.Name))
		if m == nil {
			return false
		}
		w, err := strconv.Atoi(m[1])
		if err != nil {
			return false
		}
		if w < min {
			return false
		}
		return max == 0 || w < max
	}
}

func radiatorTag(size int) predicate {
	sub := strconv.Itoa(size)
	return func(p *Product) bool {
		if p.Specifications != nil {
			if v, ok := p.Specifications.Get("Radiator Size"); ok {
				return strings.Contains(v, sub)
			}
		}
		return strings.Contains(strings.ToLower(p.Name), sub+"mm")
	}
}

func sortProducts(ps []Product, key SortKey) {
	price := func(i int) decimal.Decimal {
		d, ok := ps[i].EffectivePrice()
		if !ok {
			return decimal.Zero
		}
		return d
	}
	switch key {
	case SortPriceAsc:
		sort.SliceStable(ps, func(i, j int) bool { return price(i).LessThan(price(j)) })
	case SortPriceDesc:
		sort.SliceStable(ps, func(i, j int) bool { return price(j).LessThan(price(i)) })
	case SortName:
		sort.SliceStable(ps, func(i, j int) bool { return ps[i].Name < ps[j].Name })
	case SortRating:
		sort.SliceStable(ps, func(i, j int) bool { return ps[i].Ratings.Average > ps[j].Ratings.Average })
	}
	// unknown keys keep the input order
}
