package order

import (
	"strings"
	"testing"

	"github.com/modaflow/backend/internal/domain/tenant"
)

func TestBuildConfirmationWhatsApp(t *testing.T) {
	o := &Order{
		Code:  "REQ-AB12CD",
		Total: 3890.00,
		Items: []Item{{ProductID: "p1", Quantity: 10, Price: 389.00}},
	}
	tn := &tenant.Tenant{CheckoutMode: tenant.CheckoutWhatsApp, WhatsApp: "5511999999999"}

	conf := BuildConfirmation(o, tn, map[string]string{"p1": "Linen Slip Dress"})

	if conf.Mode != tenant.CheckoutWhatsApp {
		t.Fatalf("expected WHATSAPP mode, got %s", conf.Mode)
	}
	wantMsg := "Bulk Request REQ-AB12CD\n\n📦 Linen Slip Dress (10 units)\n\nTotal: $3890.00"
	if conf.Message != wantMsg {
		t.Fatalf("message mismatch:\nwant %q\ngot  %q", wantMsg, conf.Message)
	}
	if !strings.HasPrefix(conf.WhatsAppURL, "https://wa.me/5511999999999?text=") {
		t.Fatalf("unexpected url: %s", conf.WhatsAppURL)
	}
	if strings.Contains(conf.WhatsAppURL, "+") {
		t.Fatal("spaces must be %20-encoded, not +")
	}
	if !strings.Contains(conf.WhatsAppURL, "Bulk%20Request%20REQ-AB12CD") {
		t.Fatalf("message not percent-encoded into url: %s", conf.WhatsAppURL)
	}
	if conf.PixKey != "" {
		t.Fatal("whatsapp confirmation must not carry a pix key")
	}
}

func TestBuildConfirmationWhatsAppUnknownProductFallsBackToID(t *testing.T) {
	o := &Order{Code: "REQ-XYZ123", Total: 100, Items: []Item{{ProductID: "p9", Quantity: 10, Price: 10}}}
	tn := &tenant.Tenant{CheckoutMode: tenant.CheckoutWhatsApp, WhatsApp: "551188887777"}

	conf := BuildConfirmation(o, tn, nil)
	if !strings.Contains(conf.Message, "📦 p9 (10 units)") {
		t.Fatalf("expected id fallback in message, got %q", conf.Message)
	}
}

func TestBuildConfirmationPix(t *testing.T) {
	o := &Order{Code: "REQ-AB12CD", Total: 250.50}
	tn := &tenant.Tenant{CheckoutMode: tenant.CheckoutPix, PixKey: "aura@pix.example", WhatsApp: "5511999999999"}

	conf := BuildConfirmation(o, tn, nil)

	if conf.Mode != tenant.CheckoutPix {
		t.Fatalf("expected PIX mode, got %s", conf.Mode)
	}
	if conf.PixKey != "aura@pix.example" {
		t.Fatalf("expected pix key, got %q", conf.PixKey)
	}
	if conf.Total != 250.50 {
		t.Fatalf("expected total 250.50, got %.2f", conf.Total)
	}
	if conf.WhatsAppURL != "" || conf.Message != "" {
		t.Fatal("pix confirmation must not carry a whatsapp link")
	}
}
