// Package cart implements the per-session shopping cart and its
// reconciliation against the inventory store.
//
// A Cart holds product snapshots, not references. The snapshots go stale
// whenever stock changes; Reconcile brings them back in line so that every
// line satisfies 1 <= quantity <= product.Stock.
package cart

import (
	"github.com/fekuna/omnipos-storefront-service/internal/model"
	"github.com/shopspring/decimal"
)

// TaxRate is applied to the subtotal.
var TaxRate = decimal.RequireFromString("0.10")

type Totals struct {
	Subtotal decimal.Decimal `json:"subtotal"`
	Tax      decimal.Decimal `json:"tax"`
	Total    decimal.Decimal `json:"total"`
}

// DisplayTotals is Totals rounded to cents.
type DisplayTotals struct {
	Subtotal string `json:"subtotal"`
	Tax      string `json:"tax"`
	Total    string `json:"total"`
}

func (t Totals) Display() DisplayTotals {
	return DisplayTotals{
		Subtotal: t.Subtotal.StringFixed(2),
		Tax:      t.Tax.StringFixed(2),
		Total:    t.Total.StringFixed(2),
	}
}

func ComputeTotals(lines []model.CartLine) Totals {
	subtotal := decimal.Zero
	for _, l := range lines {
		subtotal = subtotal.Add(l.LineTotal())
	}
	tax := subtotal.Mul(TaxRate)
	return Totals{
		Subtotal: subtotal,
		Tax:      tax,
		Total:    subtotal.Add(tax),
	}
}

type Cart struct {
	lines []model.CartLine
}

func New() *Cart {
	return &Cart{}
}

func (c *Cart) indexOf(productID string) int {
	for i, l := range c.lines {
		if l.Product.ID == productID {
			return i
		}
	}
	return -1
}

// Add merges quantity into the line for p, or appends a new line. The
// result is clamped to p.Stock and the snapshot is replaced by p.
func (c *Cart) Add(p model.Product, quantity int) {
	if i := c.indexOf(p.ID); i >= 0 {
		c.lines[i].Product = p
		c.lines[i].Quantity = min(c.lines[i].Quantity+quantity, p.Stock)
		if c.lines[i].Quantity < 1 {
			c.lines = append(c.lines[:i], c.lines[i+1:]...)
		}
		return
	}

	q := min(quantity, p.Stock)
	if q < 1 {
		return
	}
	c.lines = append(c.lines, model.CartLine{Product: p, Quantity: q})
}

// Remove drops the line for productID. Absent ids are ignored.
func (c *Cart) Remove(productID string) {
	if i := c.indexOf(productID); i >= 0 {
		c.lines = append(c.lines[:i], c.lines[i+1:]...)
	}
}

// SetQuantity overwrites the quantity as given. Callers clamp.
func (c *Cart) SetQuantity(productID string, quantity int) {
	if i := c.indexOf(productID); i >= 0 {
		c.lines[i].Quantity = quantity
	}
}

// Reconcile refreshes every snapshot from current and returns how many
// lines were changed or dropped. Lines whose product is missing from
// current, or has no stock left, are dropped.
func (c *Cart) Reconcile(current []model.Product) int {
	byID := make(map[string]model.Product, len(current))
	for _, p := range current {
		byID[p.ID] = p
	}

	changed := 0
	kept := c.lines[:0]
	for _, l := range c.lines {
		p, ok := byID[l.Product.ID]
		if !ok || p.Stock <= 0 {
			changed++
			continue
		}
		q := min(l.Quantity, p.Stock)
		if q != l.Quantity || p.Stock != l.Product.Stock || !p.Price.Equal(l.Product.Price) || p.Name != l.Product.Name {
			changed++
		}
		kept = append(kept, model.CartLine{Product: p, Quantity: q})
	}
	// zero the tail so dropped snapshots are not retained
	for i := len(kept); i < len(c.lines); i++ {
		c.lines[i] = model.CartLine{}
	}
	c.lines = kept
	return changed
}

func (c *Cart) Clear() {
	c.lines = nil
}

// Lines returns a copy in insertion order.
func (c *Cart) Lines() []model.CartLine {
	out := make([]model.CartLine, len(c.lines))
	copy(out, c.lines)
	return out
}

// Line returns the line for productID.
func (c *Cart) Line(productID string) (model.CartLine, bool) {
	if i := c.indexOf(productID); i >= 0 {
		return c.lines[i], true
	}
	return model.CartLine{}, false
}

func (c *Cart) Len() int {
	return len(c.lines)
}

// ItemCount is the sum of all quantities.
func (c *Cart) ItemCount() int {
	n := 0
	for _, l := range c.lines {
		n += l.Quantity
	}
	return n
}

func (c *Cart) Totals() Totals {
	return ComputeTotals(c.lines)
}
