package gateway

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/fekuna/omnipos-storefront-service/internal/model"
	"github.com/fekuna/omnipos-storefront-service/pkg/logger"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// DeclinedCardNumber is always refused by SimulatedPayments.
const DeclinedCardNumber = "4000000000000002"

var ErrCardDeclined = errors.New("card declined by issuer")

func wait(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}

type SimulatedPayments struct {
	Delay  time.Duration
	logger logger.ZapLogger
}

func NewSimulatedPayments(delay time.Duration, log logger.ZapLogger) *SimulatedPayments {
	return &SimulatedPayments{Delay: delay, logger: log}
}

func (g *SimulatedPayments) Charge(ctx context.Context, req *PaymentRequest) (*PaymentReceipt, error) {
	if err := wait(ctx, g.Delay); err != nil {
		return nil, err
	}

	card := strings.Join(strings.Fields(req.Card.CardNumber), "")
	if card == DeclinedCardNumber {
		g.logger.Warn("Payment declined", zap.String("order_id", req.OrderID))
		return nil, ErrCardDeclined
	}

	receipt := &PaymentReceipt{
		Reference:  "PAY-" + uuid.NewString(),
		Amount:     req.Amount,
		ApprovedAt: time.Now(),
	}
	g.logger.Info("Payment approved",
		zap.String("order_id", req.OrderID),
		zap.String("amount", req.Amount.StringFixed(2)),
		zap.String("reference", receipt.Reference),
	)
	return receipt, nil
}

type SimulatedStockCommitter struct {
	Delay  time.Duration
	logger logger.ZapLogger
}

func NewSimulatedStockCommitter(delay time.Duration, log logger.ZapLogger) *SimulatedStockCommitter {
	return &SimulatedStockCommitter{Delay: delay, logger: log}
}

func (c *SimulatedStockCommitter) Commit(ctx context.Context, update *model.StockUpdate) error {
	if err := wait(ctx, c.Delay); err != nil {
		return err
	}
	c.logger.Debug("Stock update acknowledged",
		zap.String("update_id", update.ID),
		zap.String("product_id", update.ProductID),
	)
	return nil
}
