package configuration

import "time"

// Build statuses for user-owned configurations. Templates don't move through
// this lifecycle; their status stays DRAFT.
const (
	StatusDraft     = "DRAFT"
	StatusSubmitted = "SUBMITTED"
	StatusApproved  = "APPROVED"
	StatusRejected  = "REJECTED"
)

type Configuration struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
	// TotalPrice is denormalized: sum of line price × quantity at the time of
	// the last create/update. It is not recomputed when component prices
	// change afterwards. NUMERIC -> string.
	TotalPrice string    `json:"total_price"`
	IsTemplate bool      `json:"is_template"`
	IsPublic   bool      `json:"is_public"`
	Status     string    `json:"status"`
	Items      []Item    `json:"items,omitempty"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

// Item is one line of a configuration, joined with the current component
// name, category and price on read. Position keeps the build order stable.
type Item struct {
	ComponentID string `json:"component_id"`
	Name        string `json:"name"`
	Category    string `json:"category"`
	Price       string `json:"price"`
	Quantity    int    `json:"quantity"`
	Position    int    `json:"position"`
}

// CreateConfigurationItem payload of one line.
// swagger:model CreateConfigurationItem
type CreateConfigurationItem struct {
	ComponentID string `json:"component_id" example:"4e7d4e5c-5cb9-4a3f-9f21-7e1a4f9f2b2a"`
	Quantity    int    `json:"quantity"     example:"2"`
}

// CreateConfigurationRequest payload of creation.
// swagger:model CreateConfigurationRequest
type CreateConfigurationRequest struct {
	Name        string                    `json:"name"        example:"Starter Gaming Build"`
	Description string                    `json:"description" example:"1080p on a budget"`
	IsTemplate  bool                      `json:"is_template"`
	IsPublic    bool                      `json:"is_public"`
	Items       []CreateConfigurationItem `json:"items"`
}

// UpdateStatusRequest payload of a status transition.
// swagger:model UpdateStatusRequest
type UpdateStatusRequest struct {
	Status string `json:"status" example:"SUBMITTED"`
}
