package model

import "github.com/shopspring/decimal"

// CartLine pairs a product snapshot with a quantity. The snapshot is a copy,
// so it goes stale when the inventory changes until the cart is reconciled.
type CartLine struct {
	Product  Product `json:"product"`
	Quantity int     `json:"quantity"`
}

func (l CartLine) LineTotal() decimal.Decimal {
	return l.Product.Price.Mul(decimal.NewFromInt(int64(l.Quantity)))
}
