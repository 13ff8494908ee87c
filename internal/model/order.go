package model

import (
	"time"

	"github.com/shopspring/decimal"
)

type OrderStatus string

const (
	OrderStatusPending    OrderStatus = "pending"
	OrderStatusProcessing OrderStatus = "processing"
	OrderStatusCompleted  OrderStatus = "completed"
	OrderStatusCancelled  OrderStatus = "cancelled"
)

func (s OrderStatus) Valid() bool {
	switch s {
	case OrderStatusPending, OrderStatusProcessing, OrderStatusCompleted, OrderStatusCancelled:
		return true
	}
	return false
}

type Order struct {
	ID            string          `db:"id" json:"id"`
	Items         []CartLine      `db:"-" json:"items"`
	Total         decimal.Decimal `db:"total" json:"total"`
	Status        OrderStatus     `db:"status" json:"status"`
	Date          time.Time       `db:"date" json:"date"`
	PaymentMethod string          `db:"payment_method" json:"payment_method"`
	CustomerName  *string         `db:"customer_name" json:"customer_name,omitempty"`
	CustomerEmail *string         `db:"customer_email" json:"customer_email,omitempty"`
}

// PaymentInfo holds the card fields collected at checkout. They are checked
// for shape only and never persisted.
type PaymentInfo struct {
	CardholderName string `json:"cardholder_name"`
	CardNumber     string `json:"card_number"`
	ExpiryDate     string `json:"expiry_date"`
	CVV            string `json:"cvv"`
}
