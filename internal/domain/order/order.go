// Package order defines the order workflow domain: persisted orders,
// the client-local cart, and checkout confirmation projections.
package order

import (
	"crypto/rand"
	"fmt"
	"time"

	"github.com/modaflow/backend/internal/domain"
)

// Status is the order lifecycle state. Any status may be set from any
// other status; no transition graph is enforced.
type Status string

const (
	StatusPending   Status = "PENDING"
	StatusPaid      Status = "PAID"
	StatusShipped   Status = "SHIPPED"
	StatusDelivered Status = "DELIVERED"
	StatusCancelled Status = "CANCELLED"
)

// ValidStatuses is the set of all order statuses.
var ValidStatuses = map[Status]bool{
	StatusPending:   true,
	StatusPaid:      true,
	StatusShipped:   true,
	StatusDelivered: true,
	StatusCancelled: true,
}

// Item is a single order line. Price is a snapshot of the product price
// at order time and is deliberately decoupled from later price changes.
type Item struct {
	ProductID string  `json:"productId"`
	Quantity  int     `json:"quantity"`
	Price     float64 `json:"price"`
}

// Order is a persisted bulk request. Total is computed once at creation
// from the submitted item prices and never recomputed.
type Order struct {
	ID            string    `json:"id"`
	Code          string    `json:"code"`
	TenantID      string    `json:"tenantId"`
	CustomerName  string    `json:"customerName"`
	CustomerEmail string    `json:"customerEmail,omitempty"`
	CustomerPhone string    `json:"customerPhone,omitempty"`
	Total         float64   `json:"total"`
	Status        Status    `json:"status"`
	Items         []Item    `json:"items"`
	CreatedAt     time.Time `json:"createdAt"`
}

// CreateRequest holds the checkout submission.
type CreateRequest struct {
	TenantID      string `json:"tenantId"`
	CustomerName  string `json:"customerName"`
	CustomerEmail string `json:"customerEmail,omitempty"`
	CustomerPhone string `json:"customerPhone,omitempty"`
	Items         []Item `json:"items"`
}

// Validate checks the request shape. Catalog-level rules (product
// existence, minimum quantities) are checked separately against a
// catalog snapshot.
func (r *CreateRequest) Validate() error {
	if r.TenantID == "" {
		return fmt.Errorf("tenantId is required: %w", domain.ErrValidation)
	}
	if len(r.CustomerName) < 2 {
		return fmt.Errorf("customerName must be at least 2 characters: %w", domain.ErrValidation)
	}
	if len(r.Items) == 0 {
		return fmt.Errorf("order must contain at least one item: %w", domain.ErrValidation)
	}
	for _, it := range r.Items {
		if it.ProductID == "" {
			return fmt.Errorf("item productId is required: %w", domain.ErrValidation)
		}
		if it.Quantity <= 0 {
			return fmt.Errorf("item quantity must be positive: %w", domain.ErrValidation)
		}
		if it.Price <= 0 {
			return fmt.Errorf("item price must be positive: %w", domain.ErrValidation)
		}
	}
	return nil
}

// Total sums price x quantity over the given items.
func Total(items []Item) float64 {
	var sum float64
	for _, it := range items {
		sum += it.Price * float64(it.Quantity)
	}
	return sum
}

const codeAlphabet = "0123456789ABCDEFGHIJKLMNOPQRSTUVWXYZ"

// NewCode returns a short human-legible request code (REQ-XXXXXX),
// distinct from the order's storage key.
func NewCode() string {
	b := make([]byte, 6)
	_, _ = rand.Read(b)
	for i := range b {
		b[i] = codeAlphabet[int(b[i])%len(codeAlphabet)]
	}
	return "REQ-" + string(b)
}
