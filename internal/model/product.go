package model

import "github.com/shopspring/decimal"

type Product struct {
	BaseModel
	Name        string          `db:"name" json:"name"`
	Price       decimal.Decimal `db:"price" json:"price"`
	ImageURL    string          `db:"image_url" json:"image_url"`
	Stock       int             `db:"stock" json:"stock"`
	Description *string         `db:"description" json:"description,omitempty"`
}

// InStock reports whether at least one unit can be sold.
func (p Product) InStock() bool {
	return p.Stock > 0
}
