package component

import (
	"encoding/json"
	"fmt"
	"time"
)

// Family is the product family a category belongs to. It is stored on the
// category row and is the only thing that decides how a component is
// normalized; the component's own fields are never inspected for this.
type Family string

const (
	FamilyComponent  Family = "component"
	FamilyPeripheral Family = "peripheral"
)

// ParseFamily validates the category type discriminator. An unknown value is
// a data-integrity error, never coerced to a default.
func ParseFamily(s string) (Family, error) {
	switch Family(s) {
	case FamilyComponent, FamilyPeripheral:
		return Family(s), nil
	}
	return "", fmt.Errorf("unknown category type %q", s)
}

type Category struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	Slug string `json:"slug"`
	// Type is "component" or "peripheral"; see ParseFamily.
	Type string `json:"type"`
}

type Component struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
	// LongDescription is the optional product-page copy shown under the
	// specifications table.
	LongDescription *string `json:"long_description,omitempty"`
	// We store prices as strings to avoid rounding errors (NUMERIC in Postgres)
	Price         string    `json:"price"`
	DiscountPrice *string   `json:"discount_price,omitempty"`
	ImageURL      *string   `json:"image_url,omitempty"`
	Stock         int       `json:"stock"`
	CategoryID    string    `json:"category_id"`
	Category      *Category `json:"category,omitempty"`
	// Spec is the single category-specific sub-record, or nil when the row
	// has none. The repo builds it with DecodeSpec so a component can never
	// carry two populated sub-records.
	Spec      Spec      `json:"spec,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// HTTPError represents a standard error in JSON.
// swagger:model
type HTTPError struct {
	// Error message
	// example: not found
	Error string `json:"error"`
}

// CreateComponentRequest payload of creation.
// swagger:model CreateComponentRequest
type CreateComponentRequest struct {
	Name            string          `json:"name"             example:"Intel Core i9-13900K"`
	Description     string          `json:"description"      example:"24-core desktop CPU"`
	LongDescription *string         `json:"long_description"`
	Price           string          `json:"price"            example:"589.99"`
	DiscountPrice   *string         `json:"discount_price"   example:"549.99"`
	ImageURL        *string         `json:"image_url"`
	Stock           int             `json:"stock"            example:"12"`
	CategoryID      string          `json:"category_id"`
	Spec            json.RawMessage `json:"spec"`
}

// UpdateComponentRequest payload of partial update.
// swagger:model UpdateComponentRequest
type UpdateComponentRequest struct {
	Name          string  `json:"name"`
	Description   string  `json:"description"`
	Price         string  `json:"price"`
	DiscountPrice *string `json:"discount_price"`
	Stock         *int    `json:"stock"`
}
