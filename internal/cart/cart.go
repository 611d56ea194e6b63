package cart

import "hallever/internal/domain"

// Item is one cart line. Price is snapshotted when the line is added and only
// changes through ReconcilePrices.
type Item struct {
	ProductID string  `json:"id"`
	Name      string  `json:"name"`
	Price     float64 `json:"price"`
	Quantity  int     `json:"quantity"`
	Image     string  `json:"image,omitempty"`
	Wattage   string  `json:"wattage,omitempty"`
	Category  string  `json:"category,omitempty"`
}

// Cart holds the guest cart lines. The zero value is the canonical empty
// cart. Totals are always derived from the lines, never stored.
type Cart struct {
	Items []Item `json:"items"`
}

// Empty reports whether the cart has no lines.
func (c *Cart) Empty() bool { return len(c.Items) == 0 }

// Add merges an item into the cart. An existing line for the same product id
// has its quantity incremented; otherwise a new line is appended with the
// item's snapshot price. Quantities below 1 are treated as 1.
func (c *Cart) Add(item Item, qty int) {
	if qty < 1 {
		qty = 1
	}
	for i := range c.Items {
		if c.Items[i].ProductID == item.ProductID {
			c.Items[i].Quantity += qty
			return
		}
	}
	item.Quantity = qty
	c.Items = append(c.Items, item)
}

// UpdateQuantity sets a line's quantity directly. It does not clamp; callers
// keep q >= 1 and use Decrement for the remove-below-one path. Returns false
// when no line matches id.
func (c *Cart) UpdateQuantity(id string, q int) bool {
	for i := range c.Items {
		if c.Items[i].ProductID == id {
			c.Items[i].Quantity = q
			return true
		}
	}
	return false
}

// Decrement lowers a line's quantity by one, removing the line when it would
// drop below 1. Removing the only line leaves the empty cart.
func (c *Cart) Decrement(id string) {
	for i := range c.Items {
		if c.Items[i].ProductID == id {
			if c.Items[i].Quantity <= 1 {
				c.Items = append(c.Items[:i], c.Items[i+1:]...)
			} else {
				c.Items[i].Quantity--
			}
			return
		}
	}
}

// Remove deletes a line. Returns false when no line matches id.
func (c *Cart) Remove(id string) bool {
	for i := range c.Items {
		if c.Items[i].ProductID == id {
			c.Items = append(c.Items[:i], c.Items[i+1:]...)
			return true
		}
	}
	return false
}

// Clear empties the cart.
func (c *Cart) Clear() { c.Items = nil }

// ReconcilePrices refreshes the snapshot price of every line whose product id
// appears in the catalog. Quantity and line order are untouched; lines with
// no catalog match keep their snapshot.
func (c *Cart) ReconcilePrices(catalog []*domain.Product) {
	prices := make(map[string]float64, len(catalog))
	for _, p := range catalog {
		prices[p.ID] = p.Price
	}
	for i := range c.Items {
		if price, ok := prices[c.Items[i].ProductID]; ok {
			c.Items[i].Price = price
		}
	}
}

// TotalItems returns the sum of line quantities.
func (c *Cart) TotalItems() int {
	var n int
	for _, item := range c.Items {
		n += item.Quantity
	}
	return n
}

// TotalAmount returns the sum of price*quantity over the lines.
func (c *Cart) TotalAmount() float64 {
	var total float64
	for _, item := range c.Items {
		total += item.Price * float64(item.Quantity)
	}
	return total
}

// OrderLines converts the cart lines into order line items for checkout.
func (c *Cart) OrderLines() []domain.OrderLine {
	lines := make([]domain.OrderLine, 0, len(c.Items))
	for _, item := range c.Items {
		lines = append(lines, domain.OrderLine{
			ProductID: item.ProductID,
			Name:      item.Name,
			Price:     item.Price,
			Quantity:  item.Quantity,
			Wattage:   item.Wattage,
			Image:     item.Image,
		})
	}
	return lines
}
