// Package tenant defines the storefront tenant domain model.
package tenant

import (
	"fmt"
	"net/mail"
	"regexp"
	"time"

	"github.com/modaflow/backend/internal/domain"
)

// CheckoutMode selects the confirmation channel for a placed order.
type CheckoutMode string

const (
	CheckoutWhatsApp CheckoutMode = "WHATSAPP"
	CheckoutPix      CheckoutMode = "PIX"
)

// ValidCheckoutModes is the set of supported checkout modes.
var ValidCheckoutModes = map[CheckoutMode]bool{
	CheckoutWhatsApp: true,
	CheckoutPix:      true,
}

// Tenant is an independent wholesale storefront with its own branding,
// catalog and checkout configuration.
type Tenant struct {
	ID             string       `json:"id"`
	Name           string       `json:"name"`
	Slug           string       `json:"slug"`
	LogoURL        string       `json:"logoUrl,omitempty"`
	PrimaryColor   string       `json:"primaryColor"`
	SecondaryColor string       `json:"secondaryColor"`
	Categories     []string     `json:"categories"`
	MenuItems      []string     `json:"menuItems"`
	CheckoutMode   CheckoutMode `json:"checkoutMode"`
	PixKey         string       `json:"pixKey,omitempty"`
	About          string       `json:"about,omitempty"`
	ContactEmail   string       `json:"contactEmail,omitempty"`
	Phone          string       `json:"phone,omitempty"`
	WhatsApp       string       `json:"whatsapp,omitempty"`
	Address        string       `json:"address,omitempty"`
	HeroTitle      string       `json:"heroTitle,omitempty"`
	HeroSubtitle   string       `json:"heroSubtitle,omitempty"`
	HeroImageURL   string       `json:"heroImageUrl,omitempty"`
	Active         bool         `json:"active"`
	CreatedAt      time.Time    `json:"createdAt"`
	UpdatedAt      time.Time    `json:"updatedAt"`
}

var (
	slugRegex  = regexp.MustCompile(`^[a-z0-9-]{2,64}$`)
	colorRegex = regexp.MustCompile(`^#[0-9A-Fa-f]{6}$`)
)

// CreateRequest holds the fields accepted when creating a tenant.
// Branding fields left empty fall back to platform defaults.
type CreateRequest struct {
	Name           string       `json:"name"`
	Slug           string       `json:"slug"`
	LogoURL        string       `json:"logoUrl"`
	PrimaryColor   string       `json:"primaryColor"`
	SecondaryColor string       `json:"secondaryColor"`
	Categories     []string     `json:"categories"`
	MenuItems      []string     `json:"menuItems"`
	CheckoutMode   CheckoutMode `json:"checkoutMode"`
	PixKey         string       `json:"pixKey"`
	About          string       `json:"about"`
	ContactEmail   string       `json:"contactEmail"`
	Phone          string       `json:"phone"`
	WhatsApp       string       `json:"whatsapp"`
	Address        string       `json:"address"`
	HeroTitle      string       `json:"heroTitle"`
	HeroSubtitle   string       `json:"heroSubtitle"`
	HeroImageURL   string       `json:"heroImageUrl"`
}

// Validate checks required fields and normalizes defaults in place.
func (r *CreateRequest) Validate() error {
	if len(r.Name) < 2 {
		return fmt.Errorf("name must be at least 2 characters: %w", domain.ErrValidation)
	}
	if !slugRegex.MatchString(r.Slug) {
		return fmt.Errorf("slug %q must be lowercase letters, digits or hyphens: %w", r.Slug, domain.ErrValidation)
	}
	if r.PrimaryColor == "" {
		r.PrimaryColor = "#6366f1"
	}
	if r.SecondaryColor == "" {
		r.SecondaryColor = "#f59e0b"
	}
	if !colorRegex.MatchString(r.PrimaryColor) || !colorRegex.MatchString(r.SecondaryColor) {
		return fmt.Errorf("colors must be #RRGGBB hex values: %w", domain.ErrValidation)
	}
	if r.CheckoutMode == "" {
		r.CheckoutMode = CheckoutWhatsApp
	}
	if !ValidCheckoutModes[r.CheckoutMode] {
		return fmt.Errorf("checkoutMode must be WHATSAPP or PIX: %w", domain.ErrValidation)
	}
	if r.ContactEmail != "" {
		if _, err := mail.ParseAddress(r.ContactEmail); err != nil {
			return fmt.Errorf("invalid contactEmail: %w", domain.ErrValidation)
		}
	}
	return nil
}

// UpdateRequest is a partial patch of tenant fields. Pointer fields
// distinguish "absent" from "set to zero value".
type UpdateRequest struct {
	Name           *string       `json:"name,omitempty"`
	LogoURL        *string       `json:"logoUrl,omitempty"`
	PrimaryColor   *string       `json:"primaryColor,omitempty"`
	SecondaryColor *string       `json:"secondaryColor,omitempty"`
	Categories     []string      `json:"categories,omitempty"`
	MenuItems      []string      `json:"menuItems,omitempty"`
	CheckoutMode   *CheckoutMode `json:"checkoutMode,omitempty"`
	PixKey         *string       `json:"pixKey,omitempty"`
	About          *string       `json:"about,omitempty"`
	ContactEmail   *string       `json:"contactEmail,omitempty"`
	Phone          *string       `json:"phone,omitempty"`
	WhatsApp       *string       `json:"whatsapp,omitempty"`
	Address        *string       `json:"address,omitempty"`
	HeroTitle      *string       `json:"heroTitle,omitempty"`
	HeroSubtitle   *string       `json:"heroSubtitle,omitempty"`
	HeroImageURL   *string       `json:"heroImageUrl,omitempty"`
}

// Validate checks only the fields present in the patch.
func (r *UpdateRequest) Validate() error {
	if r.Name != nil && len(*r.Name) < 2 {
		return fmt.Errorf("name must be at least 2 characters: %w", domain.ErrValidation)
	}
	if r.PrimaryColor != nil && !colorRegex.MatchString(*r.PrimaryColor) {
		return fmt.Errorf("primaryColor must be a #RRGGBB hex value: %w", domain.ErrValidation)
	}
	if r.SecondaryColor != nil && !colorRegex.MatchString(*r.SecondaryColor) {
		return fmt.Errorf("secondaryColor must be a #RRGGBB hex value: %w", domain.ErrValidation)
	}
	if r.CheckoutMode != nil && !ValidCheckoutModes[*r.CheckoutMode] {
		return fmt.Errorf("checkoutMode must be WHATSAPP or PIX: %w", domain.ErrValidation)
	}
	if r.ContactEmail != nil && *r.ContactEmail != "" {
		if _, err := mail.ParseAddress(*r.ContactEmail); err != nil {
			return fmt.Errorf("invalid contactEmail: %w", domain.ErrValidation)
		}
	}
	return nil
}

// Apply copies the present patch fields onto t. The slug is immutable.
func (r *UpdateRequest) Apply(t *Tenant) {
	if r.Name != nil {
		t.Name = *r.Name
	}
	if r.LogoURL != nil {
		t.LogoURL = *r.LogoURL
	}
	if r.PrimaryColor != nil {
		t.PrimaryColor = *r.PrimaryColor
	}
	if r.SecondaryColor != nil {
		t.SecondaryColor = *r.SecondaryColor
	}
	if r.Categories != nil {
		t.Categories = r.Categories
	}
	if r.MenuItems != nil {
		t.MenuItems = r.MenuItems
	}
	if r.CheckoutMode != nil {
		t.CheckoutMode = *r.CheckoutMode
	}
	if r.PixKey != nil {
		t.PixKey = *r.PixKey
	}
	if r.About != nil {
		t.About = *r.About
	}
	if r.ContactEmail != nil {
		t.ContactEmail = *r.ContactEmail
	}
	if r.Phone != nil {
		t.Phone = *r.Phone
	}
	if r.WhatsApp != nil {
		t.WhatsApp = *r.WhatsApp
	}
	if r.Address != nil {
		t.Address = *r.Address
	}
	if r.HeroTitle != nil {
		t.HeroTitle = *r.HeroTitle
	}
	if r.HeroSubtitle != nil {
		t.HeroSubtitle = *r.HeroSubtitle
	}
	if r.HeroImageURL != nil {
		t.HeroImageURL = *r.HeroImageURL
	}
}
