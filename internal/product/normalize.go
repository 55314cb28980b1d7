package product

import (
	"context"
	"errors"
	"fmt"

	"github.com/dcastanog/pcforge/internal/component"
	"github.com/dcastanog/pcforge/internal/configuration"
)

// ErrNotFound is returned when an id matches no entity in any of the three
// lookup tables. It is a value, not a failure; handlers map it to 404.
var ErrNotFound = errors.New("product not found")

// relatedLimit caps the related-products sample attached to detail views.
const relatedLimit = 3

// ComponentSource is the slice of the component repository the resolver
// needs. *component.PGRepo satisfies it.
type ComponentSource interface {
	GetByID(ctx context.Context, id string) (*component.Component, error)
	RelatedInCategory(ctx context.Context, categoryID, excludeID string, limit int) ([]component.Component, error)
}

// ConfigurationSource is the slice of the configuration repository the
// resolver needs. *configuration.PGRepo satisfies it.
type ConfigurationSource interface {
	TemplateByID(ctx context.Context, id string) (*configuration.Configuration, error)
	UserByID(ctx context.Context, id string) (*configuration.Configuration, error)
	RelatedTemplates(ctx context.Context, excludeID string, limit int) ([]configuration.Configuration, error)
}

// FromComponent normalizes a catalog row into a product. The variant tag
// comes from the category type alone, never from which sub-record the row
// carries; an unknown category type is a data-integrity error.
func FromComponent(c *component.Component) (*Product, error) {
	if c.Category == nil {
		return nil, fmt.Errorf("component %s: category not joined", c.ID)
	}
	family, err := component.ParseFamily(c.Category.Type)
	if err != nil {
		return nil, fmt.Errorf("component %s: %w", c.ID, err)
	}

	// a missing sub-record is valid data: the product just has an empty
	// specifications object, never an absent key
	specs := c.Attributes()
	if specs == nil {
		specs = component.Attrs{}
	}
	p := &Product{
		ID:             c.ID,
		Name:           c.Name,
		Description:    c.Description,
		Price:          c.Price,
		DiscountPrice:  c.DiscountPrice, // stored discount, passed through verbatim
		ImageURL:       c.ImageURL,
		Stock:          c.Stock,
		Category:       c.Category.Name,
		Specifications: &specs,
	}
	if c.LongDescription != nil {
		p.LongDescription = *c.LongDescription
	}
	switch family {
	case component.FamilyComponent:
		p.Type = TypeComponent
		p.Ratings = PlaceholderComponentRatings
	case component.FamilyPeripheral:
		p.Type = TypePeripheral
		p.Ratings = PlaceholderPeripheralRatings
	}
	return p, nil
}

// FromConfiguration normalizes a template or user build into a product.
func FromConfiguration(cfg *configuration.Configuration) (*Product, error) {
	discount, err := ConfigurationDiscount(cfg)
	if err != nil {
		return nil, err
	}
	lines := make([]ComponentLine, 0, len(cfg.Items))
	for _, it := range cfg.Items {
		lines = append(lines, ComponentLine{
			ID:       it.ComponentID,
			Name:     it.Name,
			Category: it.Category,
			Price:    it.Price,
			Quantity: it.Quantity,
		})
	}
	return &Product{
		ID:            cfg.ID,
		Type:          TypeConfiguration,
		Name:          cfg.Name,
		Description:   cfg.Description,
		Price:         cfg.TotalPrice,
		DiscountPrice: discount,
		Stock:         ConfigurationStock,
		Ratings:       PlaceholderConfigurationRatings,
		Components:    lines,
	}, nil
}

// Resolver looks an id up across the three source tables and normalizes the
// first match.
type Resolver struct {
	components     ComponentSource
	configurations ConfigurationSource
}

func NewResolver(components ComponentSource, configurations ConfigurationSource) *Resolver {
	return &Resolver{components: components, configurations: configurations}
}

// Resolve probes template configurations, then catalog components, then
// user configurations, and returns the first match with its related sample
// attached. No match in any table yields ErrNotFound.
//
// The sequential probe exists for callers that only hold an id; anything
// that already knows the entity kind should use ResolveComponent or
// ResolveConfiguration directly.
func (r *Resolver) Resolve(ctx context.Context, id string) (*Product, error) {
	cfg, err := r.configurations.TemplateByID(ctx, id)
	switch {
	case err == nil:
		return r.configurationProduct(ctx, cfg)
	case !errors.Is(err, configuration.ErrNotFound):
		return nil, err
	}

	c, err := r.components.GetByID(ctx, id)
	switch {
	case err == nil:
		return r.ResolveComponent(ctx, c)
	case !errors.Is(err, component.ErrNotFound):
		return nil, err
	}

	cfg, err = r.configurations.UserByID(ctx, id)
	switch {
	case err == nil:
		return r.configurationProduct(ctx, cfg)
	case !errors.Is(err, configuration.ErrNotFound):
		return nil, err
	}
	return nil, ErrNotFound
}

// ResolveComponent normalizes a fetched component and attaches up to three
// items from the same category, excluding the component itself. The sample
// is arbitrary, not ranked.
func (r *Resolver) ResolveComponent(ctx context.Context, c *component.Component) (*Product, error) {
	p, err := FromComponent(c)
	if err != nil {
		return nil, err
	}
	siblings, err := r.components.RelatedInCategory(ctx, c.CategoryID, c.ID, relatedLimit)
	if err != nil {
		return nil, err
	}
	for i := range siblings {
		rp, err := FromComponent(&siblings[i])
		if err != nil {
			return nil, err
		}
		p.Related = append(p.Related, *rp)
	}
	return p, nil
}

// ResolveConfiguration normalizes a fetched configuration; only templates
// get a related-templates sample.
func (r *Resolver) ResolveConfiguration(ctx context.Context, cfg *configuration.Configuration) (*Product, error) {
	return r.configurationProduct(ctx, cfg)
}

func (r *Resolver) configurationProduct(ctx context.Context, cfg *configuration.Configuration) (*Product, error) {
	p, err := FromConfiguration(cfg)
	if err != nil {
		return nil, err
	}
	if !cfg.IsTemplate {
		return p, nil
	}
	related, err := r.configurations.RelatedTemplates(ctx, cfg.ID, relatedLimit)
	if err != nil {
		return nil, err
	}
	for i := range related {
		rp, err := FromConfiguration(&related[i])
		if err != nil {
			return nil, err
		}
		p.Related = append(p.Related, *rp)
	}
	return p, nil
}
