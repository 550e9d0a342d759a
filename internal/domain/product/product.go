// Package product defines the tenant-scoped catalog product model.
package product

import (
	"fmt"
	"time"

	"github.com/modaflow/backend/internal/domain"
)

// DefaultMinQuantity is the wholesale floor applied when a product does
// not declare its own minimum order quantity.
const DefaultMinQuantity = 10

// Product is a catalog entry owned by exactly one tenant. Stock is
// informational only and is never decremented by the order flow.
type Product struct {
	ID          string    `json:"id"`
	TenantID    string    `json:"tenantId"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	Price       float64   `json:"price"`
	Category    string    `json:"category"`
	Images      []string  `json:"images"`
	Sizes       []string  `json:"sizes"`
	Stock       int       `json:"stock"`
	MinQuantity int       `json:"minQuantity"`
	Active      bool      `json:"active"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// CreateRequest holds the fields accepted when creating a product.
type CreateRequest struct {
	TenantID    string   `json:"tenantId"`
	Name        string   `json:"name"`
	Description string   `json:"description"`
	Price       float64  `json:"price"`
	Category    string   `json:"category"`
	Images      []string `json:"images"`
	Sizes       []string `json:"sizes"`
	Stock       int      `json:"stock"`
	MinQuantity int      `json:"minQuantity"`
}

// Validate checks required fields and normalizes defaults in place.
func (r *CreateRequest) Validate() error {
	if r.TenantID == "" {
		return fmt.Errorf("tenantId is required: %w", domain.ErrValidation)
	}
	if len(r.Name) < 2 {
		return fmt.Errorf("name must be at least 2 characters: %w", domain.ErrValidation)
	}
	if r.Price <= 0 {
		return fmt.Errorf("price must be positive: %w", domain.ErrValidation)
	}
	if r.Stock < 0 {
		return fmt.Errorf("stock must not be negative: %w", domain.ErrValidation)
	}
	if r.MinQuantity < 0 {
		return fmt.Errorf("minQuantity must be positive: %w", domain.ErrValidation)
	}
	if r.MinQuantity == 0 {
		r.MinQuantity = DefaultMinQuantity
	}
	return nil
}

// UpdateRequest is a partial patch of product fields. Pointer fields
// distinguish "absent" from "set to zero value".
type UpdateRequest struct {
	Name        *string  `json:"name,omitempty"`
	Description *string  `json:"description,omitempty"`
	Price       *float64 `json:"price,omitempty"`
	Category    *string  `json:"category,omitempty"`
	Images      []string `json:"images,omitempty"`
	Sizes       []string `json:"sizes,omitempty"`
	Stock       *int     `json:"stock,omitempty"`
	MinQuantity *int     `json:"minQuantity,omitempty"`
}

// Validate checks only the fields present in the patch.
func (r *UpdateRequest) Validate() error {
	if r.Name != nil && len(*r.Name) < 2 {
		return fmt.Errorf("name must be at least 2 characters: %w", domain.ErrValidation)
	}
	if r.Price != nil && *r.Price <= 0 {
		return fmt.Errorf("price must be positive: %w", domain.ErrValidation)
	}
	if r.Stock != nil && *r.Stock < 0 {
		return fmt.Errorf("stock must not be negative: %w", domain.ErrValidation)
	}
	if r.MinQuantity != nil && *r.MinQuantity <= 0 {
		return fmt.Errorf("minQuantity must be positive: %w", domain.ErrValidation)
	}
	return nil
}

// Apply copies the present patch fields onto p. TenantID is immutable.
func (r *UpdateRequest) Apply(p *Product) {
	if r.Name != nil {
		p.Name = *r.Name
	}
	if r.Description != nil {
		p.Description = *r.Description
	}
	if r.Price != nil {
		p.Price = *r.Price
	}
	if r.Category != nil {
		p.Category = *r.Category
	}
	if r.Images != nil {
		p.Images = r.Images
	}
	if r.Sizes != nil {
		p.Sizes = r.Sizes
	}
	if r.Stock != nil {
		p.Stock = *r.Stock
	}
	if r.MinQuantity != nil {
		p.MinQuantity = *r.MinQuantity
	}
}

// Filter narrows catalog listings. Zero values mean "no constraint".
type Filter struct {
	Category string
	MinPrice *float64
	MaxPrice *float64
	Search   string
}
