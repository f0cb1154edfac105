package models

import (
	"github.com/shopspring/decimal"
)

// CartItem represents one purchasable line in the shopping cart: a ticket
// category of an event with a quantity. A cart holds at most one item per
// (event, category) pair.
type CartItem struct {
	EventID      string          `json:"eventId"`
	EventName    string          `json:"eventName"`
	EventDate    string          `json:"eventDate"`
	EventImage   string          `json:"eventImage,omitempty"`
	ZoneID       int             `json:"zoneId"`
	ZoneName     string          `json:"zoneName"`
	CategoryID   int             `json:"categoryId"`
	CategoryName string          `json:"categoryName"`
	Price        decimal.Decimal `json:"price"`
	Quantity     int             `json:"quantity"`
}

// Subtotal returns price * quantity for this line.
func (i CartItem) Subtotal() decimal.Decimal {
	return i.Price.Mul(decimal.NewFromInt(int64(i.Quantity)))
}

// Cart is the ordered collection of selected ticket lines for one browser
// session. Mutating methods keep the (eventId, categoryId) uniqueness
// invariant; persistence is handled by the owning CartStore.
type Cart struct {
	Items []CartItem `json:"items"`
}

// AddItem adds quantity tickets of the given line to the cart. If a line with
// the same (eventId, categoryId) already exists its quantity is incremented,
// otherwise the line is appended. Quantity must be positive; availability
// clamping against seat counts is the caller's responsibility.
func (c *Cart) AddItem(item CartItem, quantity int) error {
	if quantity <= 0 {
		return &ValidationError{Field: "quantity", Message: "quantity must be positive"}
	}

	for i := range c.Items {
		if c.Items[i].EventID == item.EventID && c.Items[i].CategoryID == item.CategoryID {
			c.Items[i].Quantity += quantity
			return nil
		}
	}

	item.Quantity = quantity
	c.Items = append(c.Items, item)
	return nil
}

// UpdateQuantity sets the quantity of the line matching categoryID. A quantity
// of zero or less removes the line. Unknown category IDs are a no-op.
func (c *Cart) UpdateQuantity(categoryID, quantity int) {
	if quantity <= 0 {
		c.RemoveItem(categoryID)
		return
	}

	for i := range c.Items {
		if c.Items[i].CategoryID == categoryID {
			c.Items[i].Quantity = quantity
			return
		}
	}
}

// RemoveItem deletes the line matching categoryID; no-op if absent.
func (c *Cart) RemoveItem(categoryID int) {
	for i := range c.Items {
		if c.Items[i].CategoryID == categoryID {
			c.Items = append(c.Items[:i], c.Items[i+1:]...)
			return
		}
	}
}

// Clear empties the cart.
func (c *Cart) Clear() {
	c.Items = nil
}

// IsEmpty reports whether the cart has no lines.
func (c *Cart) IsEmpty() bool {
	return len(c.Items) == 0
}

// TotalItems returns the sum of all line quantities.
func (c *Cart) TotalItems() int {
	total := 0
	for _, item := range c.Items {
		total += item.Quantity
	}
	return total
}

// TotalPrice returns the sum of price * quantity over all lines.
func (c *Cart) TotalPrice() decimal.Decimal {
	total := decimal.Zero
	for _, item := range c.Items {
		total = total.Add(item.Subtotal())
	}
	return total
}
