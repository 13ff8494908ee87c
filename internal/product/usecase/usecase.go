package usecase

import (
	"context"
	"time"

	"github.com/fekuna/omnipos-storefront-service/internal/model"
	"github.com/fekuna/omnipos-storefront-service/internal/product"
	"github.com/fekuna/omnipos-storefront-service/internal/product/dto"
	"github.com/fekuna/omnipos-storefront-service/pkg/event"
	"github.com/fekuna/omnipos-storefront-service/pkg/logger"
	"go.uber.org/zap"
)

type productUseCase struct {
	repo   product.Repository
	bus    *event.Bus
	logger logger.ZapLogger
}

func NewProductUseCase(repo product.Repository, bus *event.Bus, log logger.ZapLogger) product.UseCase {
	return &productUseCase{
		repo:   repo,
		bus:    bus,
		logger: log,
	}
}

func (uc *productUseCase) GetProduct(ctx context.Context, id string) (*model.Product, error) {
	p, err := uc.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, model.ErrProductNotFound
	}
	return p, nil
}

func (uc *productUseCase) ListProducts(ctx context.Context, filters *dto.ProductFilters) ([]model.Product, int, error) {
	return uc.repo.FindAll(ctx, filters)
}

func (uc *productUseCase) SetStock(ctx context.Context, productID string, stock int) (*model.Product, error) {
	if stock < 0 {
		return nil, model.ErrNegativeStock
	}

	if err := uc.repo.UpdateStock(ctx, productID, stock, time.Now()); err != nil {
		return nil, err
	}

	p, err := uc.GetProduct(ctx, productID)
	if err != nil {
		return nil, err
	}

	uc.logger.Info("Stock updated",
		zap.String("product_id", p.ID),
		zap.String("product_name", p.Name),
		zap.Int("stock", p.Stock),
	)

	uc.bus.Fire(ctx, model.EventInventoryChanged, model.InventoryChanged{
		ProductID: p.ID,
		Stock:     p.Stock,
		Source:    "set_stock",
	})

	return p, nil
}
