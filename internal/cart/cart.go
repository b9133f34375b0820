package cart

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Cart is the session-local collection of priced lines a customer builds
// before checkout. It is never persisted on its own; checkout snapshots it
// into an order. Mutations keep insertion order so quotes render stably.
type Cart struct {
	lines []Line
}

// AddLine appends a product or, when a line for the same product already
// exists, increments its quantity. Quantities below one default to one.
// Stock is not checked here: availability is enforced only at checkout.
func (c *Cart) AddLine(productID uuid.UUID, name string, unitPriceSatang, qty int) {
	if qty < 1 {
		qty = 1
	}
	for i := range c.lines {
		if c.lines[i].ProductID == productID {
			c.lines[i].Qty += qty
			return
		}
	}
	c.lines = append(c.lines, Line{
		ProductID:       productID,
		Name:            name,
		UnitPriceSatang: unitPriceSatang,
		Qty:             qty,
	})
}

// SetQuantity replaces a line's quantity. A quantity of zero or less removes
// the line; an unknown product id is a no-op.
func (c *Cart) SetQuantity(productID uuid.UUID, qty int) {
	if qty <= 0 {
		c.RemoveLine(productID)
		return
	}
	for i := range c.lines {
		if c.lines[i].ProductID == productID {
			c.lines[i].Qty = qty
			return
		}
	}
}

// RemoveLine drops the line for the product id. Removing an absent line is
// a no-op.
func (c *Cart) RemoveLine(productID uuid.UUID) {
	for i := range c.lines {
		if c.lines[i].ProductID == productID {
			c.lines = append(c.lines[:i], c.lines[i+1:]...)
			return
		}
	}
}

// Clear empties the cart. Checkout calls this only after the order has been
// persisted.
func (c *Cart) Clear() {
	c.lines = nil
}

// Lines returns a copy of the current lines.
func (c *Cart) Lines() []Line {
	out := make([]Line, len(c.lines))
	copy(out, c.lines)
	return out
}

// ItemCount is the total quantity across all lines.
func (c *Cart) ItemCount() int {
	count := 0
	for _, line := range c.lines {
		count += line.Qty
	}
	return count
}

// Totals recomputes the money amounts from the current lines. Nothing is
// cached; every call derives fresh values.
func (c *Cart) Totals(taxRatePercent decimal.Decimal) (Totals, error) {
	return ComputeTotals(c.lines, taxRatePercent)
}
