package repository_test

import (
	"context"
	"testing"
	"time"

	"github.com/fekuna/omnipos-storefront-service/internal/catalog"
	"github.com/fekuna/omnipos-storefront-service/internal/database/dbtest"
	"github.com/fekuna/omnipos-storefront-service/internal/model"
	"github.com/fekuna/omnipos-storefront-service/internal/order/dto"
	"github.com/fekuna/omnipos-storefront-service/internal/order/repository"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateAndFind(t *testing.T) {
	db := dbtest.New(t)
	repo := repository.NewSQLiteRepository(db)
	ctx := context.Background()

	p := catalog.Products()[1]
	email := "jane@example.com"
	o := &model.Order{
		ID:            "ORD-test",
		Items:         []model.CartLine{{Product: p, Quantity: 2}},
		Total:         decimal.RequireFromString("599.98"),
		Status:        model.OrderStatusPending,
		Date:          time.Date(2024, 4, 1, 10, 0, 0, 0, time.UTC),
		PaymentMethod: "**** 4242",
		CustomerEmail: &email,
	}
	require.NoError(t, repo.Create(ctx, o))

	got, err := repo.FindByID(ctx, "ORD-test")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.True(t, got.Total.Equal(o.Total))
	assert.Equal(t, model.OrderStatusPending, got.Status)
	assert.True(t, got.Date.Equal(o.Date))
	assert.Nil(t, got.CustomerName)
	require.NotNil(t, got.CustomerEmail)
	assert.Equal(t, email, *got.CustomerEmail)

	require.Len(t, got.Items, 1)
	assert.Equal(t, p.Name, got.Items[0].Product.Name)
	assert.True(t, got.Items[0].Product.Price.Equal(p.Price))
	assert.Equal(t, 2, got.Items[0].Quantity)

	missing, err := repo.FindByID(ctx, "ORD-404")
	require.NoError(t, err)
	assert.Nil(t, missing)
}

func TestDuplicateOrderIsRolledBack(t *testing.T) {
	db := dbtest.New(t)
	repo := repository.NewSQLiteRepository(db)
	ctx := context.Background()

	o := catalog.Orders()[0]
	require.NoError(t, repo.Create(ctx, &o))
	require.Error(t, repo.Create(ctx, &o))

	var items int
	require.NoError(t, db.Get(&items, `SELECT count(*) FROM order_items WHERE order_id = ?`, o.ID))
	assert.Equal(t, len(o.Items), items)
}

func TestFindAllPaging(t *testing.T) {
	db := dbtest.New(t)
	repo := repository.NewSQLiteRepository(db)
	ctx := context.Background()
	for _, o := range catalog.Orders() {
		require.NoError(t, repo.Create(ctx, &o))
	}

	orders, total, err := repo.FindAll(ctx, &dto.OrderFilters{Page: 1, PageSize: 2})
	require.NoError(t, err)
	assert.Equal(t, 3, total)
	require.Len(t, orders, 2)
	assert.Equal(t, "ORD-003", orders[0].ID)
	assert.Equal(t, "ORD-002", orders[1].ID)
	assert.Len(t, orders[0].Items, 2)
}
