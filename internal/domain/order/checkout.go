package order

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/modaflow/backend/internal/domain/tenant"
)

// Confirmation is the artifact handed back after checkout: a WhatsApp
// deep link or PIX payment instructions, depending on the tenant's
// checkout mode. It is a pure projection of the order and the tenant
// configuration and never changes what was persisted.
type Confirmation struct {
	Mode        tenant.CheckoutMode `json:"mode"`
	WhatsAppURL string              `json:"whatsappUrl,omitempty"`
	Message     string              `json:"message,omitempty"`
	PixKey      string              `json:"pixKey,omitempty"`
	Total       float64             `json:"total"`
}

// BuildConfirmation renders the checkout confirmation for o using the
// tenant's checkout configuration. productNames maps product id to
// display name for the itemized message; ids without a name fall back
// to the id itself.
func BuildConfirmation(o *Order, t *tenant.Tenant, productNames map[string]string) Confirmation {
	if t.CheckoutMode == tenant.CheckoutPix {
		return Confirmation{
			Mode:   tenant.CheckoutPix,
			PixKey: t.PixKey,
			Total:  o.Total,
		}
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Bulk Request %s\n\n", o.Code)
	for _, it := range o.Items {
		name := productNames[it.ProductID]
		if name == "" {
			name = it.ProductID
		}
		fmt.Fprintf(&b, "📦 %s (%d units)\n", name, it.Quantity)
	}
	fmt.Fprintf(&b, "\nTotal: $%.2f", o.Total)
	msg := b.String()

	return Confirmation{
		Mode:        tenant.CheckoutWhatsApp,
		Message:     msg,
		WhatsAppURL: "https://wa.me/" + t.WhatsApp + "?text=" + percentEncode(msg),
		Total:       o.Total,
	}
}

// percentEncode escapes a message for a wa.me text parameter. Spaces
// become %20 rather than "+" so the link works outside form contexts.
func percentEncode(s string) string {
	return strings.ReplaceAll(url.QueryEscape(s), "+", "%20")
}
