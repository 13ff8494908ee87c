package gateway

import (
	"context"
	"testing"
	"time"

	"github.com/fekuna/omnipos-storefront-service/internal/model"
	"github.com/fekuna/omnipos-storefront-service/pkg/logger"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSimulatedPayments(t *testing.T) {
	g := NewSimulatedPayments(0, logger.NewNop())

	t.Run("Approves", func(t *testing.T) {
		receipt, err := g.Charge(context.Background(), &PaymentRequest{
			OrderID: "ORD-x",
			Amount:  decimal.RequireFromString("87.98"),
			Card:    model.PaymentInfo{CardNumber: "4242 4242 4242 4242"},
		})
		require.NoError(t, err)
		assert.True(t, receipt.Amount.Equal(decimal.RequireFromString("87.98")))
		assert.Contains(t, receipt.Reference, "PAY-")
	})

	t.Run("DeclinesTestCard", func(t *testing.T) {
		_, err := g.Charge(context.Background(), &PaymentRequest{
			Card: model.PaymentInfo{CardNumber: "4000 0000 0000 0002"},
		})
		require.ErrorIs(t, err, ErrCardDeclined)
	})

	t.Run("HonoursCancellation", func(t *testing.T) {
		slow := NewSimulatedPayments(time.Hour, logger.NewNop())
		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		_, err := slow.Charge(ctx, &PaymentRequest{})
		require.ErrorIs(t, err, context.Canceled)
	})
}

func TestSimulatedStockCommitter(t *testing.T) {
	c := NewSimulatedStockCommitter(time.Millisecond, logger.NewNop())
	require.NoError(t, c.Commit(context.Background(), &model.StockUpdate{ID: "STK-1"}))

	ctx, cancel := context.WithTimeout(context.Background(), time.Millisecond)
	defer cancel()
	slow := NewSimulatedStockCommitter(time.Hour, logger.NewNop())
	require.ErrorIs(t, slow.Commit(ctx, &model.StockUpdate{}), context.DeadlineExceeded)
}
