package order

import "github.com/modaflow/backend/internal/domain/product"

// CartItem is a product snapshot plus the requested quantity. The
// quantity never drops below the product's minimum order quantity.
type CartItem struct {
	Product  product.Product `json:"product"`
	Quantity int             `json:"quantity"`
}

// Cart is the client-local, ephemeral session state that aggregates
// selected products before checkout. It is serializable, passed by
// reference, and never persisted; a reload discards it.
type Cart struct {
	Items []CartItem `json:"items"`
	Open  bool       `json:"open"`
}

// NewCart returns an empty, closed cart.
func NewCart() *Cart {
	return &Cart{}
}

func (c *Cart) find(productID string) int {
	for i := range c.Items {
		if c.Items[i].Product.ID == productID {
			return i
		}
	}
	return -1
}

// Add puts a product in the cart, accumulating the quantity when the
// product is already present. The resulting quantity is clamped up to
// the product's minimum. A successful add opens the cart view.
func (c *Cart) Add(p product.Product, quantity int) {
	if i := c.find(p.ID); i >= 0 {
		c.Items[i].Quantity += quantity
		if c.Items[i].Quantity < c.Items[i].Product.MinQuantity {
			c.Items[i].Quantity = c.Items[i].Product.MinQuantity
		}
	} else {
		if quantity < p.MinQuantity {
			quantity = p.MinQuantity
		}
		c.Items = append(c.Items, CartItem{Product: p, Quantity: quantity})
	}
	c.Open = true
}

// UpdateQuantity sets the quantity for a cart line, silently raising a
// too-low request to the product's minimum. Unknown ids are ignored.
func (c *Cart) UpdateQuantity(productID string, quantity int) {
	i := c.find(productID)
	if i < 0 {
		return
	}
	if quantity < c.Items[i].Product.MinQuantity {
		quantity = c.Items[i].Product.MinQuantity
	}
	c.Items[i].Quantity = quantity
}

// Remove deletes a cart line. Removing an absent id is a no-op.
func (c *Cart) Remove(productID string) {
	if i := c.find(productID); i >= 0 {
		c.Items = append(c.Items[:i], c.Items[i+1:]...)
	}
}

// Empty reports whether the cart has no lines.
func (c *Cart) Empty() bool {
	return len(c.Items) == 0
}

// Total sums price x quantity over the cart lines.
func (c *Cart) Total() float64 {
	var sum float64
	for _, it := range c.Items {
		sum += it.Product.Price * float64(it.Quantity)
	}
	return sum
}

// Checkout builds an order draft from the cart contents. It returns
// ok=false for an empty cart. The cart itself is left untouched; call
// Complete once the draft has been accepted downstream.
func (c *Cart) Checkout(tenantID, customerName string) (CreateRequest, bool) {
	if c.Empty() {
		return CreateRequest{}, false
	}
	items := make([]Item, 0, len(c.Items))
	for _, it := range c.Items {
		items = append(items, Item{
			ProductID: it.Product.ID,
			Quantity:  it.Quantity,
			Price:     it.Product.Price,
		})
	}
	return CreateRequest{
		TenantID:     tenantID,
		CustomerName: customerName,
		Items:        items,
	}, true
}

// Complete clears the cart and closes the cart view after a draft has
// been successfully submitted.
func (c *Cart) Complete() {
	c.Items = nil
	c.Open = false
}

// ProductNames maps product id to display name for the cart contents,
// used when rendering checkout confirmations.
func (c *Cart) ProductNames() map[string]string {
	names := make(map[string]string, len(c.Items))
	for _, it := range c.Items {
		names[it.Product.ID] = it.Product.Name
	}
	return names
}
