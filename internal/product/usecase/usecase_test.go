package usecase_test

import (
	"context"
	"testing"

	"github.com/fekuna/omnipos-storefront-service/internal/catalog"
	"github.com/fekuna/omnipos-storefront-service/internal/database/dbtest"
	"github.com/fekuna/omnipos-storefront-service/internal/model"
	orderRepo "github.com/fekuna/omnipos-storefront-service/internal/order/repository"
	productRepo "github.com/fekuna/omnipos-storefront-service/internal/product/repository"
	"github.com/fekuna/omnipos-storefront-service/internal/product/usecase"
	"github.com/fekuna/omnipos-storefront-service/pkg/event"
	"github.com/fekuna/omnipos-storefront-service/pkg/logger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSetStock(t *testing.T) {
	db := dbtest.New(t)
	ctx := context.Background()
	repo := productRepo.NewSQLiteRepository(db)
	require.NoError(t, catalog.Seed(ctx, repo, orderRepo.NewSQLiteRepository(db)))

	bus := event.NewBus()
	var fired []model.InventoryChanged
	bus.Listen(model.EventInventoryChanged, func(_ context.Context, payload any) {
		fired = append(fired, payload.(model.InventoryChanged))
	})
	uc := usecase.NewProductUseCase(repo, bus, logger.NewNop())

	p, err := uc.SetStock(ctx, "3", 10)
	require.NoError(t, err)
	assert.Equal(t, 10, p.Stock)
	require.Len(t, fired, 1)
	assert.Equal(t, model.InventoryChanged{ProductID: "3", Stock: 10, Source: "set_stock"}, fired[0])

	_, err = uc.SetStock(ctx, "3", -1)
	require.ErrorIs(t, err, model.ErrNegativeStock)

	_, err = uc.SetStock(ctx, "404", 1)
	require.ErrorIs(t, err, model.ErrProductNotFound)
	assert.Len(t, fired, 1)

	_, err = uc.GetProduct(ctx, "404")
	require.ErrorIs(t, err, model.ErrProductNotFound)
}
