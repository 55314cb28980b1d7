package product

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/dcastanog/pcforge/internal/component"
	"github.com/dcastanog/pcforge/internal/configuration"
)

func strp(s string) *string { return &s }
func intp(i int) *int       { return &i }
func boolp(b bool) *bool    { return &b }

// slice-backed fakes so related selections come back in a fixed order

type fakeComponents struct {
	items  []component.Component
	getErr error
}

func (f *fakeComponents) GetByID(_ context.Context, id string) (*component.Component, error) {
	if f.getErr != nil {
		return nil, f.getErr
	}
	for i := range f.items {
		if f.items[i].ID == id {
			cp := f.items[i]
			return &cp, nil
		}
	}
	return nil, component.ErrNotFound
}

func (f *fakeComponents) RelatedInCategory(_ context.Context, categoryID, excludeID string, limit int) ([]component.Component, error) {
	var out []component.Component
	for i := range f.items {
		if len(out) == limit {
			break
		}
		if f.items[i].CategoryID == categoryID && f.items[i].ID != excludeID {
			out = append(out, f.items[i])
		}
	}
	return out, nil
}

type fakeConfigurations struct{ items []configuration.Configuration }

func (f *fakeConfigurations) find(id string, template bool) (*configuration.Configuration, error) {
	for i := range f.items {
		if f.items[i].ID == id && f.items[i].IsTemplate == template {
			cp := f.items[i]
			return &cp, nil
		}
	}
	return nil, configuration.ErrNotFound
}

func (f *fakeConfigurations) TemplateByID(_ context.Context, id string) (*configuration.Configuration, error) {
	return f.find(id, true)
}

func (f *fakeConfigurations) UserByID(_ context.Context, id string) (*configuration.Configuration, error) {
	return f.find(id, false)
}

func (f *fakeConfigurations) RelatedTemplates(_ context.Context, excludeID string, limit int) ([]configuration.Configuration, error) {
	var out []configuration.Configuration
	for i := range f.items {
		if len(out) == limit {
			break
		}
		c := f.items[i]
		if c.IsTemplate && c.IsPublic && c.ID != excludeID {
			out = append(out, c)
		}
	}
	return out, nil
}

func cpuComponent(id, name string) component.Component {
	return component.Component{
		ID:         id,
		Name:       name,
		Price:      "589.99",
		Stock:      7,
		CategoryID: "cat-cpu",
		Category:   &component.Category{ID: "cat-cpu", Name: "Processors", Slug: "cpu", Type: "component"},
		Spec: &component.CPUSpec{
			Brand: strp("Intel"), Cores: intp(24), Socket: strp("LGA1700"),
		},
	}
}

func TestFromComponentFamilyFromCategoryOnly(t *testing.T) {
	// the populated sub-record never decides the family; only category.type does
	c := component.Component{
		ID: "k1", Name: "Odd row", Price: "49.99", CategoryID: "cat-x",
		Category: &component.Category{ID: "cat-x", Name: "Weird", Slug: "keyboard", Type: "component"},
		Spec:     &component.KeyboardSpec{Brand: strp("Ducky")},
	}
	p, err := FromComponent(&c)
	require.NoError(t, err)
	require.Equal(t, TypeComponent, p.Type)
	require.Equal(t, PlaceholderComponentRatings, p.Ratings)

	c.Category.Type = "peripheral"
	p, err = FromComponent(&c)
	require.NoError(t, err)
	require.Equal(t, TypePeripheral, p.Type)
	require.Equal(t, PlaceholderPeripheralRatings, p.Ratings)
}

func TestFromComponentUnknownCategoryTypeFails(t *testing.T) {
	c := cpuComponent("c1", "Intel Core i9-13900K")
	c.Category.Type = "gadget"
	_, err := FromComponent(&c)
	require.Error(t, err)
}

func TestFromComponentDiscountPassthrough(t *testing.T) {
	c := cpuComponent("c1", "Intel Core i9-13900K")
	p, err := FromComponent(&c)
	require.NoError(t, err)
	require.Nil(t, p.DiscountPrice)

	c.DiscountPrice = strp("549.99")
	p, err = FromComponent(&c)
	require.NoError(t, err)
	require.NotNil(t, p.DiscountPrice)
	require.Equal(t, "549.99", *p.DiscountPrice)
}

func TestFromConfigurationBreakdownAndPlaceholders(t *testing.T) {
	cfg := configuration.Configuration{
		ID: "t1", Name: "Creator Build", TotalPrice: "2000.00",
		IsTemplate: true, IsPublic: true,
		Items: []configuration.Item{
			{ComponentID: "c1", Name: "Intel Core i9-13900K", Category: "Processors", Price: "589.99", Quantity: 1},
			{ComponentID: "r1", Name: "Vengeance 32GB", Category: "Memory", Price: "104.50", Quantity: 2},
		},
	}
	p, err := FromConfiguration(&cfg)
	require.NoError(t, err)
	require.Equal(t, TypeConfiguration, p.Type)
	require.Equal(t, "2000.00", p.Price)
	require.Equal(t, "1800.00", *p.DiscountPrice)
	require.Equal(t, ConfigurationStock, p.Stock)
	require.Equal(t, PlaceholderConfigurationRatings, p.Ratings)
	require.Equal(t, []ComponentLine{
		{ID: "c1", Name: "Intel Core i9-13900K", Category: "Processors", Price: "589.99", Quantity: 1},
		{ID: "r1", Name: "Vengeance 32GB", Category: "Memory", Price: "104.50", Quantity: 2},
	}, p.Components)
	// configurations have no spec sub-record and must not serialize the key
	require.Nil(t, p.Specifications)
	body, err := json.Marshal(p)
	require.NoError(t, err)
	require.NotContains(t, string(body), `"specifications"`)
}

func TestFromComponentSpecificationsAlwaysPresent(t *testing.T) {
	c := cpuComponent("c1", "Intel Core i9-13900K")
	p, err := FromComponent(&c)
	require.NoError(t, err)
	require.NotNil(t, p.Specifications)
	require.NotEmpty(t, *p.Specifications)

	// a row without a sub-record still carries an empty spec object
	c.Spec = nil
	p, err = FromComponent(&c)
	require.NoError(t, err)
	require.NotNil(t, p.Specifications)
	body, err := json.Marshal(p)
	require.NoError(t, err)
	require.Contains(t, string(body), `"specifications":{}`)
}

func TestFromComponentLongDescription(t *testing.T) {
	c := cpuComponent("c1", "Intel Core i9-13900K")
	p, err := FromComponent(&c)
	require.NoError(t, err)
	require.Empty(t, p.LongDescription)

	c.LongDescription = strp("Raptor Lake flagship with 24 cores.")
	p, err = FromComponent(&c)
	require.NoError(t, err)
	require.Equal(t, "Raptor Lake flagship with 24 cores.", p.LongDescription)
}

func TestResolveProbesTablesInOrder(t *testing.T) {
	components := &fakeComponents{items: []component.Component{cpuComponent("c1", "Intel Core i9-13900K")}}
	configurations := &fakeConfigurations{items: []configuration.Configuration{
		{ID: "t1", Name: "Template", TotalPrice: "1000.00", IsTemplate: true, IsPublic: true},
		{ID: "u1", Name: "My build", TotalPrice: "700.00", IsTemplate: false, Status: configuration.StatusDraft},
	}}
	r := NewResolver(components, configurations)

	p, err := r.Resolve(context.Background(), "t1")
	require.NoError(t, err)
	require.Equal(t, TypeConfiguration, p.Type)
	require.Equal(t, "900.00", *p.DiscountPrice)

	p, err = r.Resolve(context.Background(), "c1")
	require.NoError(t, err)
	require.Equal(t, TypeComponent, p.Type)

	p, err = r.Resolve(context.Background(), "u1")
	require.NoError(t, err)
	require.Equal(t, TypeConfiguration, p.Type)
	require.Nil(t, p.DiscountPrice)

	_, err = r.Resolve(context.Background(), "nope")
	require.ErrorIs(t, err, ErrNotFound)
}

func TestResolvePropagatesStorageErrors(t *testing.T) {
	// a failing lookup is not a miss: the error must reach the caller
	// instead of collapsing into ErrNotFound
	dbErr := fmt.Errorf("component c1: %w", errors.New("numeric field overflow"))
	components := &fakeComponents{getErr: dbErr}
	r := NewResolver(components, &fakeConfigurations{})

	_, err := r.Resolve(context.Background(), "c1")
	require.Error(t, err)
	require.NotErrorIs(t, err, ErrNotFound)
	require.ErrorContains(t, err, "numeric field overflow")
}

func TestResolveComponentRelatedSameCategoryExcludingSelf(t *testing.T) {
	components := &fakeComponents{items: []component.Component{
		cpuComponent("c1", "Intel Core i9-13900K"),
		cpuComponent("c2", "Intel Core i7-13700K"),
		cpuComponent("c3", "AMD Ryzen 9 7950X"),
		cpuComponent("c4", "AMD Ryzen 7 7800X3D"),
		cpuComponent("c5", "Intel Core i5-13600K"),
	}}
	r := NewResolver(components, &fakeConfigurations{})

	p, err := r.Resolve(context.Background(), "c1")
	require.NoError(t, err)
	require.Len(t, p.Related, 3)
	for _, rel := range p.Related {
		require.NotEqual(t, "c1", rel.ID)
		require.Equal(t, "Processors", rel.Category)
	}
}

func TestResolveTemplateRelatedTemplatesOnly(t *testing.T) {
	configurations := &fakeConfigurations{items: []configuration.Configuration{
		{ID: "t1", Name: "A", TotalPrice: "1000.00", IsTemplate: true, IsPublic: true},
		{ID: "t2", Name: "B", TotalPrice: "1200.00", IsTemplate: true, IsPublic: true},
		{ID: "u1", Name: "Mine", TotalPrice: "800.00", IsTemplate: false},
	}}
	r := NewResolver(&fakeComponents{}, configurations)

	p, err := r.Resolve(context.Background(), "t1")
	require.NoError(t, err)
	require.Len(t, p.Related, 1)
	require.Equal(t, "t2", p.Related[0].ID)

	// user builds carry no related sample
	p, err = r.Resolve(context.Background(), "u1")
	require.NoError(t, err)
	require.Empty(t, p.Related)
}

func TestNormalizeIsIdempotent(t *testing.T) {
	components := &fakeComponents{items: []component.Component{
		cpuComponent("c1", "Intel Core i9-13900K"),
		cpuComponent("c2", "Intel Core i7-13700K"),
	}}
	r := NewResolver(components, &fakeConfigurations{})

	first, err := r.Resolve(context.Background(), "c1")
	require.NoError(t, err)
	second, err := r.Resolve(context.Background(), "c1")
	require.NoError(t, err)
	require.Equal(t, first, second)
}
