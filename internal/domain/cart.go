package domain

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// CartItem is one product line in the session cart. A cart holds at most one
// line per product; adds for an existing product merge into it.
type CartItem struct {
	ProductID uuid.UUID       `json:"product_id"`
	Product   ProductSnapshot `json:"product"`
	Quantity  int             `json:"quantity"`
}

// Cart is the per-session, locally persisted collection of line items. It is
// mutated by exactly one writer (the session's request path), so it carries no
// locking. IsOpen is a UI visibility flag and is never persisted.
type Cart struct {
	Items  []CartItem `json:"items"`
	IsOpen bool       `json:"-"`
}

// AddItem merges quantity into an existing line for the product or appends a
// new line. Quantities below one are treated as one. Adding also makes the
// cart visible.
func (c *Cart) AddItem(productID uuid.UUID, product ProductSnapshot, quantity int) {
	if quantity < 1 {
		quantity = 1
	}
	for i := range c.Items {
		if c.Items[i].ProductID == productID {
			c.Items[i].Quantity += quantity
			c.IsOpen = true
			return
		}
	}
	c.Items = append(c.Items, CartItem{
		ProductID: productID,
		Product:   product,
		Quantity:  quantity,
	})
	c.IsOpen = true
}

// RemoveItem drops the line for the product. Removing a product that is not
// in the cart is a no-op, not an error.
func (c *Cart) RemoveItem(productID uuid.UUID) {
	for i := range c.Items {
		if c.Items[i].ProductID == productID {
			c.Items = append(c.Items[:i], c.Items[i+1:]...)
			return
		}
	}
}

// UpdateQuantity replaces the quantity for the product's line. A quantity of
// zero or below removes the line. Unknown products are a no-op.
func (c *Cart) UpdateQuantity(productID uuid.UUID, quantity int) {
	if quantity <= 0 {
		c.RemoveItem(productID)
		return
	}
	for i := range c.Items {
		if c.Items[i].ProductID == productID {
			c.Items[i].Quantity = quantity
			return
		}
	}
}

// Clear empties the cart unconditionally.
func (c *Cart) Clear() {
	c.Items = nil
}

// Total recomputes the cart total on every call. Lines without a known unit
// price contribute zero.
func (c *Cart) Total() decimal.Decimal {
	return ItemsTotal(c.Items)
}

// ItemCount is the sum of quantities across all lines.
func (c *Cart) ItemCount() int {
	n := 0
	for i := range c.Items {
		n += c.Items[i].Quantity
	}
	return n
}

func (c *Cart) IsEmpty() bool { return len(c.Items) == 0 }

// Visibility toggles affect the UI flag only, never the items.

func (c *Cart) Open()   { c.IsOpen = true }
func (c *Cart) Close()  { c.IsOpen = false }
func (c *Cart) Toggle() { c.IsOpen = !c.IsOpen }

// ItemsTotal sums unit price times quantity over the given lines, treating a
// missing unit price as zero.
func ItemsTotal(items []CartItem) decimal.Decimal {
	total := decimal.Zero
	for i := range items {
		price := items[i].Product.UnitPrice
		if price == nil {
			continue
		}
		total = total.Add(price.Mul(decimal.NewFromInt(int64(items[i].Quantity))))
	}
	return total
}
