// Package mocks provides testify mocks of the gateway capabilities.
package mocks

import (
	"context"

	"github.com/fekuna/omnipos-storefront-service/internal/gateway"
	"github.com/fekuna/omnipos-storefront-service/internal/model"
	"github.com/stretchr/testify/mock"
)

type PaymentGateway struct {
	mock.Mock
}

func (m *PaymentGateway) Charge(ctx context.Context, req *gateway.PaymentRequest) (*gateway.PaymentReceipt, error) {
	args := m.Called(ctx, req)
	receipt, _ := args.Get(0).(*gateway.PaymentReceipt)
	return receipt, args.Error(1)
}

type StockCommitter struct {
	mock.Mock
}

func (m *StockCommitter) Commit(ctx context.Context, update *model.StockUpdate) error {
	return m.Called(ctx, update).Error(0)
}
