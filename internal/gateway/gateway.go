// Package gateway holds the remote collaborators the storefront waits on:
// the card processor and the stock system of record. Both are simulated
// with a configurable delay.
package gateway

import (
	"context"
	"time"

	"github.com/fekuna/omnipos-storefront-service/internal/model"
	"github.com/shopspring/decimal"
)

type PaymentRequest struct {
	OrderID string
	Amount  decimal.Decimal
	Card    model.PaymentInfo
}

type PaymentReceipt struct {
	Reference  string
	Amount     decimal.Decimal
	ApprovedAt time.Time
}

// PaymentGateway charges a card. Implementations must honour ctx
// cancellation.
type PaymentGateway interface {
	Charge(ctx context.Context, req *PaymentRequest) (*PaymentReceipt, error)
}

// StockCommitter acknowledges a stock update before it is applied locally.
type StockCommitter interface {
	Commit(ctx context.Context, update *model.StockUpdate) error
}
