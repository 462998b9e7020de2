package cart

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/atelier-ng/atelier-backend/pkg/types"
)

// Item is one cart line. Price and title are snapshotted at add time so later
// catalog edits do not change what the customer saw.
type Item struct {
	ID           string              `json:"id"`
	ProductID    uuid.UUID           `json:"product_id"`
	Title        string              `json:"title"`
	Price        int                 `json:"price"`
	Size         string              `json:"size"`
	Quantity     int                 `json:"quantity"`
	Image        *string             `json:"image,omitempty"`
	IsBespoke    bool                `json:"is_bespoke"`
	Measurements *types.Measurements `json:"measurements,omitempty"`
}

// Cart is the mutable per-session cart state. None of its operations can
// fail; invalid input is normalized rather than rejected.
type Cart struct {
	Items []Item `json:"items"`
	Open  bool   `json:"open"`
}

// New returns an empty cart.
func New() *Cart {
	return &Cart{Items: []Item{}}
}

// StockItemID derives the deterministic line id for a stock-mode item.
// Repeated adds of the same product+size collapse onto this id.
func StockItemID(productID uuid.UUID, size string) string {
	return fmt.Sprintf("%s:%s:stock", productID, size)
}

// BespokeItemID derives a unique line id for a bespoke item. The timestamp
// suffix keeps every bespoke add distinct: measurements can differ per order,
// so they are never merged.
func BespokeItemID(productID uuid.UUID, size string, now time.Time) string {
	return fmt.Sprintf("%s:%s:bespoke:%d", productID, size, now.UnixNano())
}

// AddItem inserts the candidate line. Stock-mode lines with a matching id get
// their quantities summed; bespoke lines always append. Opens the cart panel.
func (c *Cart) AddItem(candidate Item) {
	if candidate.Quantity < 1 {
		candidate.Quantity = 1
	}

	now := time.Now()
	if candidate.IsBespoke {
		candidate.ID = BespokeItemID(candidate.ProductID, candidate.Size, now)
		c.Items = append(c.Items, candidate)
		c.Open = true
		return
	}

	candidate.ID = StockItemID(candidate.ProductID, candidate.Size)
	for i := range c.Items {
		if c.Items[i].ID == candidate.ID {
			c.Items[i].Quantity += candidate.Quantity
			c.Open = true
			return
		}
	}
	c.Items = append(c.Items, candidate)
	c.Open = true
}

// RemoveItem deletes the line with the given id; no-op if absent.
func (c *Cart) RemoveItem(id string) {
	for i := range c.Items {
		if c.Items[i].ID == id {
			c.Items = append(c.Items[:i], c.Items[i+1:]...)
			return
		}
	}
}

// UpdateQuantity overwrites the line's quantity. A quantity of zero or less
// removes the line.
func (c *Cart) UpdateQuantity(id string, quantity int) {
	if quantity <= 0 {
		c.RemoveItem(id)
		return
	}
	for i := range c.Items {
		if c.Items[i].ID == id {
			c.Items[i].Quantity = quantity
			return
		}
	}
}

// Clear empties the item list unconditionally.
func (c *Cart) Clear() {
	c.Items = []Item{}
}

// OpenPanel marks the cart panel visible.
func (c *Cart) OpenPanel() { c.Open = true }

// ClosePanel marks the cart panel hidden.
func (c *Cart) ClosePanel() { c.Open = false }

// TogglePanel flips the panel flag.
func (c *Cart) TogglePanel() { c.Open = !c.Open }

// TotalItems sums the quantities across all lines.
func (c *Cart) TotalItems() int {
	total := 0
	for _, item := range c.Items {
		total += item.Quantity
	}
	return total
}

// TotalAmount sums price times quantity across all lines.
func (c *Cart) TotalAmount() int {
	total := 0
	for _, item := range c.Items {
		total += item.Price * item.Quantity
	}
	return total
}

// HasBespokeItems reports whether any line is bespoke.
func (c *Cart) HasBespokeItems() bool {
	for _, item := range c.Items {
		if item.IsBespoke {
			return true
		}
	}
	return false
}

// Find returns the line with the given id, or nil.
func (c *Cart) Find(id string) *Item {
	for i := range c.Items {
		if c.Items[i].ID == id {
			return &c.Items[i]
		}
	}
	return nil
}
