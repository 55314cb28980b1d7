package product

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"github.com/dcastanog/pcforge/internal/component"
)

func attrsp(attrs component.Attrs) *component.Attrs { return &attrs }

func gpuProduct(id, name, price string) Product {
	return Product{
		ID: id, Type: TypeComponent, Name: name, Price: price,
		Category: "Graphics Cards", Ratings: PlaceholderComponentRatings,
		Specifications: attrsp(component.Attrs{
			{Label: "Brand", Value: "ASUS"},
			{Label: "Memory", Value: "24 GB"},
		}),
	}
}

func ids(ps []Product) []string {
	out := make([]string, 0, len(ps))
	for _, p := range ps {
		out = append(out, p.ID)
	}
	return out
}

func TestSearchMatchesNameSubstring(t *testing.T) {
	products := []Product{
		gpuProduct("g1", "ASUS ROG Strix RTX 4090", "1999.99"),
		gpuProduct("g2", "Sapphire Radeon RX 7900 XTX", "949.99"),
	}
	got := Apply(products, State{Search: "rtx"})
	require.Equal(t, []string{"g1"}, ids(got))
}

func TestSearchMatchesSpecValuesAndComponentNames(t *testing.T) {
	comp := gpuProduct("g1", "Mystery card", "500.00")
	comp.Specifications = attrsp(component.Attrs{{Label: "Memory Type", Value: "GDDR6X"}})

	cfg := Product{
		ID: "t1", Type: TypeConfiguration, Name: "Creator Build", Price: "2000.00",
		Components: []ComponentLine{{ID: "c1", Name: "Intel Core i9-13900K", Quantity: 1}},
	}

	products := []Product{comp, cfg}
	require.Equal(t, []string{"g1"}, ids(Apply(products, State{Search: "gddr6"})))
	require.Equal(t, []string{"t1"}, ids(Apply(products, State{Search: "i9-13900"})))
	require.Empty(t, Apply(products, State{Search: "threadripper"}))
}

func TestTagsOrWithinDimensionAndAcrossDimensions(t *testing.T) {
	p1 := Product{ID: "p1", Type: TypeComponent, Name: "Intel Core i9-13900K", Price: "589.99"}
	p2 := Product{ID: "p2", Type: TypeComponent, Name: "AMD Ryzen 9 7950X", Price: "699.99"}
	p3 := Product{ID: "p3", Type: TypeComponent, Name: "Intel Core i5-13600K", Price: "319.99"}
	products := []Product{p1, p2, p3}

	// OR within tags: p1 matches only "i9", p2 only "ryzen 9" -> both pass
	st := State{Category: "cpu", Tags: []string{"i9", "ryzen 9"}}
	require.Equal(t, []string{"p1", "p2"}, ids(Apply(products, st)))

	// AND across dimensions: a price cap that excludes p2 removes only p2
	max := decimal.RequireFromString("600.00")
	st.MaxPrice = &max
	require.Equal(t, []string{"p1"}, ids(Apply(products, st)))
}

func TestUnknownTagFailsClosed(t *testing.T) {
	products := []Product{
		{ID: "p1", Type: TypeComponent, Name: "Intel Core i9-13900K", Price: "589.99"},
	}
	require.Empty(t, Apply(products, State{Category: "cpu", Tags: []string{"pentium"}}))
	// a tag that exists for another category is still unknown here
	require.Empty(t, Apply(products, State{Category: "gpu", Tags: []string{"i9"}}))
}

func TestPSUWattageBuckets(t *testing.T) {
	rm1000 := Product{ID: "p1", Type: TypeComponent, Name: "Corsair RM1000x 1000W", Price: "189.99"}
	rm850 := Product{ID: "p2", Type: TypeComponent, Name: "Corsair RM850x 850W", Price: "149.99"}
	noWatt := Product{ID: "p3", Type: TypeComponent, Name: "Corsair mystery PSU", Price: "99.99"}
	products := []Product{rm1000, rm850, noWatt}

	require.Equal(t, []string{"p1"}, ids(Apply(products, State{Category: "psu", Tags: []string{"1000w+"}})))
	require.Equal(t, []string{"p2"}, ids(Apply(products, State{Category: "psu", Tags: []string{"750w-1000w"}})))
	// no extractable wattage never matches a bucket
	require.Empty(t, Apply([]Product{noWatt}, State{Category: "psu", Tags: []string{"under 500w"}}))
}

func TestFormFactorTagChecksSpecifications(t *testing.T) {
	board := Product{
		ID: "m1", Type: TypeComponent, Name: "ROG Strix B650E-I", Price: "289.99",
		Specifications: attrsp(component.Attrs{{Label: "Form Factor", Value: "Mini-ITX"}}),
	}
	require.Equal(t, []string{"m1"}, ids(Apply([]Product{board}, State{Category: "motherboard", Tags: []string{"itx"}})))
	require.Empty(t, Apply([]Product{board}, State{Category: "motherboard", Tags: []string{"m-atx"}}))
}

func TestCoolingTags(t *testing.T) {
	aio := Product{
		ID: "c1", Type: TypeComponent, Name: "Kraken Elite", Price: "249.99",
		Specifications: attrsp(component.Attrs{{Label: "Type", Value: "Liquid"}, {Label: "Radiator Size", Value: "360 mm"}}),
	}
	air := Product{
		ID: "c2", Type: TypeComponent, Name: "NH-D15", Price: "109.99",
		Specifications: attrsp(component.Attrs{{Label: "Type", Value: "Air"}}),
	}
	products := []Product{aio, air}
	require.Equal(t, []string{"c1"}, ids(Apply(products, State{Category: "cooling", Tags: []string{"liquid"}})))
	require.Equal(t, []string{"c2"}, ids(Apply(products, State{Category: "cooling", Tags: []string{"air"}})))
	require.Equal(t, []string{"c1"}, ids(Apply(products, State{Category: "cooling", Tags: []string{"360mm"}})))
}

func TestPriceRangeInclusiveOnEffectivePrice(t *testing.T) {
	discounted := "450.00"
	products := []Product{
		{ID: "p1", Name: "A", Price: "500.00", DiscountPrice: &discounted},
		{ID: "p2", Name: "B", Price: "500.00"},
		{ID: "p3", Name: "C", Price: "650.00"},
	}

	min := decimal.RequireFromString("450.00")
	max := decimal.RequireFromString("500.00")
	// both bounds inclusive; p1 filters on its discount price, not base price
	got := Apply(products, State{MinPrice: &min, MaxPrice: &max})
	require.Equal(t, []string{"p1", "p2"}, ids(got))
}

func TestSortStableAndFailOpenToInputOrder(t *testing.T) {
	products := []Product{
		{ID: "b", Name: "Beta", Price: "100.00"},
		{ID: "a1", Name: "Alpha", Price: "50.00"},
		{ID: "a2", Name: "Alpha", Price: "75.00"},
	}

	byName := Apply(products, State{Sort: SortName})
	// equal names keep their relative input order
	require.Equal(t, []string{"a1", "a2", "b"}, ids(byName))

	asc := Apply(products, State{Sort: SortPriceAsc})
	require.Equal(t, []string{"a1", "a2", "b"}, ids(asc))

	desc := Apply(products, State{Sort: SortPriceDesc})
	require.Equal(t, []string{"b", "a2", "a1"}, ids(desc))

	// unknown sort keys keep the input order
	unknown := Apply(products, State{Sort: SortKey("popularity")})
	require.Equal(t, []string{"b", "a1", "a2"}, ids(unknown))
}

func TestSortRatingDescStable(t *testing.T) {
	products := []Product{
		{ID: "low", Name: "Low", Price: "1.00", Ratings: Ratings{Average: 4.2, Count: 12}},
		{ID: "high", Name: "High", Price: "1.00", Ratings: Ratings{Average: 4.5, Count: 15}},
		{ID: "low2", Name: "Low2", Price: "1.00", Ratings: Ratings{Average: 4.2, Count: 12}},
	}
	got := Apply(products, State{Sort: SortRating})
	require.Equal(t, []string{"high", "low", "low2"}, ids(got))
}

func TestApplyDoesNotMutateInput(t *testing.T) {
	products := []Product{
		{ID: "b", Name: "Beta", Price: "100.00"},
		{ID: "a", Name: "Alpha", Price: "50.00"},
	}
	_ = Apply(products, State{Sort: SortName})
	require.Equal(t, []string{"b", "a"}, ids(products))
}
