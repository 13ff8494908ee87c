package model

import "time"

type StockReason string

const (
	ReasonLoadout        StockReason = "loadout"
	ReasonReturn         StockReason = "return"
	ReasonDamage         StockReason = "damage"
	ReasonAdjustment     StockReason = "adjustment"
	ReasonClosingBalance StockReason = "closing-balance"
)

func (r StockReason) Valid() bool {
	switch r {
	case ReasonLoadout, ReasonReturn, ReasonDamage, ReasonAdjustment, ReasonClosingBalance:
		return true
	}
	return false
}

type Shift string

const (
	ShiftDay     Shift = "day"
	ShiftNight   Shift = "night"
	ShiftWeekend Shift = "weekend"
)

func (s Shift) Valid() bool {
	switch s {
	case ShiftDay, ShiftNight, ShiftWeekend:
		return true
	}
	return false
}

// StockUpdate is one ledger entry. NewBalance is always CurrentBalance +
// UpdateQuantity; entries are never modified once appended.
type StockUpdate struct {
	ID             string      `db:"id" json:"id"`
	ProductID      string      `db:"product_id" json:"product_id"`
	ProductName    string      `db:"product_name" json:"product_name"`
	CurrentBalance int         `db:"current_balance" json:"current_balance"`
	UpdateQuantity int         `db:"update_quantity" json:"update_quantity"`
	NewBalance     int         `db:"new_balance" json:"new_balance"`
	Reason         StockReason `db:"reason" json:"reason"`
	Date           time.Time   `db:"date" json:"date"`
	Shift          Shift       `db:"shift" json:"shift"`
	UpdatedBy      string      `db:"updated_by" json:"updated_by"`
	UpdatedAt      time.Time   `db:"updated_at" json:"updated_at"`
}
