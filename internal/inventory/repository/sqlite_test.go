package repository_test

import (
	"context"
	"testing"
	"time"

	"github.com/fekuna/omnipos-storefront-service/internal/catalog"
	"github.com/fekuna/omnipos-storefront-service/internal/database/dbtest"
	"github.com/fekuna/omnipos-storefront-service/internal/inventory/dto"
	"github.com/fekuna/omnipos-storefront-service/internal/inventory/repository"
	"github.com/fekuna/omnipos-storefront-service/internal/model"
	orderRepo "github.com/fekuna/omnipos-storefront-service/internal/order/repository"
	productRepo "github.com/fekuna/omnipos-storefront-service/internal/product/repository"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func entry(id, productID string, current, delta int) *model.StockUpdate {
	return &model.StockUpdate{
		ID:             id,
		ProductID:      productID,
		ProductName:    "USB-C Hub Adapter",
		CurrentBalance: current,
		UpdateQuantity: delta,
		NewBalance:     current + delta,
		Reason:         model.ReasonAdjustment,
		Date:           time.Date(2024, 3, 25, 0, 0, 0, 0, time.UTC),
		Shift:          model.ShiftDay,
		UpdatedBy:      "Store Manager",
		UpdatedAt:      time.Now(),
	}
}

func TestAppendWithStock(t *testing.T) {
	db := dbtest.New(t)
	ctx := context.Background()
	products := productRepo.NewSQLiteRepository(db)
	require.NoError(t, catalog.Seed(ctx, products, orderRepo.NewSQLiteRepository(db)))
	repo := repository.NewSQLiteRepository(db)

	t.Run("AppliesBoth", func(t *testing.T) {
		require.NoError(t, repo.AppendWithStock(ctx, entry("STK-1", "4", 8, -5)))

		p, _ := products.FindByID(ctx, "4")
		assert.Equal(t, 3, p.Stock)

		updates, total, err := repo.ListUpdates(ctx, &dto.UpdateFilters{ProductID: "4"})
		require.NoError(t, err)
		assert.Equal(t, 1, total)
		assert.Equal(t, "STK-1", updates[0].ID)
		assert.Equal(t, "2024-03-25", updates[0].Date.Format("2006-01-02"))
	})

	t.Run("NegativeWritesNothing", func(t *testing.T) {
		err := repo.AppendWithStock(ctx, entry("STK-2", "4", 3, -4))
		require.ErrorIs(t, err, model.ErrNegativeStock)

		_, total, _ := repo.ListUpdates(ctx, nil)
		assert.Equal(t, 1, total)
	})

	t.Run("UnknownProductWritesNothing", func(t *testing.T) {
		err := repo.AppendWithStock(ctx, entry("STK-3", "404", 1, 1))
		require.ErrorIs(t, err, model.ErrProductNotFound)
	})

	t.Run("NewestFirst", func(t *testing.T) {
		require.NoError(t, repo.AppendWithStock(ctx, entry("STK-4", "4", 3, 2)))
		updates, _, err := repo.ListUpdates(ctx, &dto.UpdateFilters{PageSize: 1})
		require.NoError(t, err)
		require.Len(t, updates, 1)
		assert.Equal(t, "STK-4", updates[0].ID)
	})
}
