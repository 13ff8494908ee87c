package listener

import (
	"context"

	"github.com/fekuna/omnipos-storefront-service/internal/cart"
	"github.com/fekuna/omnipos-storefront-service/internal/model"
	"github.com/fekuna/omnipos-storefront-service/pkg/event"
	"github.com/fekuna/omnipos-storefront-service/pkg/logger"
	"go.uber.org/zap"
)

// InventoryListener keeps carts in line with the inventory store.
type InventoryListener struct {
	uc     cart.UseCase
	logger logger.ZapLogger
}

func NewInventoryListener(uc cart.UseCase, logger logger.ZapLogger) *InventoryListener {
	return &InventoryListener{
		uc:     uc,
		logger: logger,
	}
}

func (l *InventoryListener) Register(bus *event.Bus) {
	l.logger.Info("Registering cart inventory listener")
	bus.Listen(model.EventInventoryChanged, l.handle)
}

func (l *InventoryListener) handle(ctx context.Context, payload any) {
	changed, ok := payload.(model.InventoryChanged)
	if !ok {
		l.logger.Warn("Unexpected inventory event payload")
		return
	}

	if err := l.uc.ReconcileAll(ctx); err != nil {
		l.logger.Error("Failed to reconcile carts",
			zap.String("product_id", changed.ProductID),
			zap.String("source", changed.Source),
			zap.Error(err),
		)
	}
}
