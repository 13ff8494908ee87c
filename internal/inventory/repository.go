package inventory

import (
	"context"

	"github.com/fekuna/omnipos-storefront-service/internal/inventory/dto"
	"github.com/fekuna/omnipos-storefront-service/internal/model"
)

type Repository interface {
	// AppendWithStock sets the product stock to update.NewBalance and appends
	// update to the ledger in one transaction.
	AppendWithStock(ctx context.Context, update *model.StockUpdate) error
	ListUpdates(ctx context.Context, filters *dto.UpdateFilters) ([]model.StockUpdate, int, error)
}
