// Package cart implements the client-held working set of a sale in
// progress. A cart never performs I/O: its stock snapshots are allowed to go
// stale between add and checkout, and are reconciled against authoritative
// stock only by the checkout engine.
package cart

import (
	"github.com/dukapos/dukapos-api/internal/domain/entity"
	"github.com/google/uuid"
)

// AddResult reports the outcome of adding a product to the cart
type AddResult int

const (
	// Added means the line was created or its quantity increased
	Added AddResult = iota
	// StockLimitReached means the line was already at the stock snapshot cap
	// and the add was a no-op
	StockLimitReached
)

// Line is one {product, quantity} pair with price and stock snapshots taken
// at add time
type Line struct {
	ProductID     uuid.UUID `json:"product_id"`
	ProductName   string    `json:"product_name"`
	Quantity      int       `json:"quantity"`
	UnitCost      int64     `json:"unit_cost"`          // cents, snapshot
	UnitPrice     int64     `json:"unit_selling_price"` // cents, snapshot
	StockSnapshot int       `json:"stock_snapshot"`
}

// Cart is a mutable, ordered set of lines with at most one line per product.
// It is held by a single caller and is not safe for concurrent use.
type Cart struct {
	lines []Line
	index map[uuid.UUID]int
}

// New creates an empty cart
func New() *Cart {
	return &Cart{index: make(map[uuid.UUID]int)}
}

// Add merges qty units of product into the cart, capped at the product's
// stock snapshot. Adding to a line already at the cap is a no-op and reports
// StockLimitReached. qty values below 1 are treated as 1.
func (c *Cart) Add(product *entity.Product, qty int) AddResult {
	if qty < 1 {
		qty = 1
	}
	if i, ok := c.index[product.ID]; ok {
		line := &c.lines[i]
		if line.Quantity >= line.StockSnapshot {
			return StockLimitReached
		}
		line.Quantity += qty
		if line.Quantity > line.StockSnapshot {
			line.Quantity = line.StockSnapshot
		}
		return Added
	}
	if product.Stock < 1 {
		return StockLimitReached
	}
	if qty > product.Stock {
		qty = product.Stock
	}
	c.index[product.ID] = len(c.lines)
	c.lines = append(c.lines, Line{
		ProductID:     product.ID,
		ProductName:   product.Name,
		Quantity:      qty,
		UnitCost:      product.CostPrice,
		UnitPrice:     product.SellingPrice,
		StockSnapshot: product.Stock,
	})
	return Added
}

// SetQuantity sets the quantity of an existing line, clamped to
// [1, stock snapshot]. A qty of zero or less removes the line. Setting the
// quantity of an absent product is a no-op.
func (c *Cart) SetQuantity(productID uuid.UUID, qty int) {
	i, ok := c.index[productID]
	if !ok {
		return
	}
	if qty <= 0 {
		c.Remove(productID)
		return
	}
	line := &c.lines[i]
	if qty > line.StockSnapshot {
		qty = line.StockSnapshot
	}
	line.Quantity = qty
}

// Remove deletes the line for productID unconditionally
func (c *Cart) Remove(productID uuid.UUID) {
	i, ok := c.index[productID]
	if !ok {
		return
	}
	c.lines = append(c.lines[:i], c.lines[i+1:]...)
	delete(c.index, productID)
	for j := i; j < len(c.lines); j++ {
		c.index[c.lines[j].ProductID] = j
	}
}

// Clear empties the cart. Called after a successful checkout or an explicit
// cancel.
func (c *Cart) Clear() {
	c.lines = nil
	c.index = make(map[uuid.UUID]int)
}

// Lines returns the cart lines in insertion order. The returned slice is a
// copy; mutating it does not affect the cart.
func (c *Cart) Lines() []Line {
	out := make([]Line, len(c.lines))
	copy(out, c.lines)
	return out
}

// Len returns the number of lines in the cart
func (c *Cart) Len() int {
	return len(c.lines)
}

// Subtotal returns the cart total in cents based on the snapshot prices,
// before any discount. Display only; authoritative totals are computed by
// the checkout engine from current prices.
func (c *Cart) Subtotal() int64 {
	var total int64
	for _, line := range c.lines {
		total += line.UnitPrice * int64(line.Quantity)
	}
	return total
}
