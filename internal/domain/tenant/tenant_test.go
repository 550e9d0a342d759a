package tenant

import (
	"errors"
	"testing"

	"github.com/modaflow/backend/internal/domain"
)

func TestCreateRequestValidateDefaults(t *testing.T) {
	req := CreateRequest{Name: "Aura Minimalist", Slug: "aura-minimalist"}
	if err := req.Validate(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if req.PrimaryColor != "#6366f1" {
		t.Fatalf("expected default primary color, got %q", req.PrimaryColor)
	}
	if req.SecondaryColor != "#f59e0b" {
		t.Fatalf("expected default secondary color, got %q", req.SecondaryColor)
	}
	if req.CheckoutMode != CheckoutWhatsApp {
		t.Fatalf("expected default WHATSAPP mode, got %q", req.CheckoutMode)
	}
}

func TestCreateRequestValidateRejects(t *testing.T) {
	tests := []struct {
		name string
		req  CreateRequest
	}{
		{"short name", CreateRequest{Name: "A", Slug: "aura"}},
		{"uppercase slug", CreateRequest{Name: "Aura", Slug: "Aura"}},
		{"slug with spaces", CreateRequest{Name: "Aura", Slug: "aura shop"}},
		{"bad color", CreateRequest{Name: "Aura", Slug: "aura", PrimaryColor: "blue"}},
		{"bad checkout mode", CreateRequest{Name: "Aura", Slug: "aura", CheckoutMode: "CASH"}},
		{"bad contact email", CreateRequest{Name: "Aura", Slug: "aura", ContactEmail: "nope"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := tt.req.Validate(); !errors.Is(err, domain.ErrValidation) {
				t.Fatalf("expected validation error, got %v", err)
			}
		})
	}
}

func TestUpdateRequestApplyKeepsSlug(t *testing.T) {
	tn := Tenant{ID: "t1", Name: "Aura", Slug: "aura-minimalist", PrimaryColor: "#6366f1"}

	name := "Aura Studio"
	color := "#112233"
	mode := CheckoutPix
	pix := "aura@pix.example"
	req := UpdateRequest{Name: &name, PrimaryColor: &color, CheckoutMode: &mode, PixKey: &pix}

	if err := req.Validate(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	req.Apply(&tn)

	if tn.Name != "Aura Studio" || tn.PrimaryColor != "#112233" {
		t.Fatalf("patch not applied: %+v", tn)
	}
	if tn.CheckoutMode != CheckoutPix || tn.PixKey != "aura@pix.example" {
		t.Fatalf("checkout patch not applied: %+v", tn)
	}
	if tn.Slug != "aura-minimalist" {
		t.Fatalf("slug must be immutable, got %q", tn.Slug)
	}
}

func TestUpdateRequestValidatePartial(t *testing.T) {
	bad := "not-a-color"
	req := UpdateRequest{SecondaryColor: &bad}
	if err := req.Validate(); !errors.Is(err, domain.ErrValidation) {
		t.Fatalf("expected validation error, got %v", err)
	}

	// Absent fields are not validated.
	if err := (&UpdateRequest{}).Validate(); err != nil {
		t.Fatalf("empty patch must validate, got %v", err)
	}
}
