package inventory

import (
	"context"

	"github.com/fekuna/omnipos-storefront-service/internal/inventory/dto"
	"github.com/fekuna/omnipos-storefront-service/internal/model"
)

type UseCase interface {
	// ProposeUpdate validates the form and returns the record it would
	// commit. Nothing is written.
	ProposeUpdate(ctx context.Context, input *dto.ProposeUpdateInput) (*model.StockUpdate, error)
	// CommitUpdate applies a proposed record. It has no guard against being
	// called twice with the same record; use the session flow for that.
	CommitUpdate(ctx context.Context, update *model.StockUpdate) (*model.StockUpdate, error)
	ListUpdates(ctx context.Context, filters *dto.UpdateFilters) ([]model.StockUpdate, int, error)

	SubmitStockUpdate(ctx context.Context, sessionID string, input *dto.ProposeUpdateInput) (*FlowView, error)
	ConfirmStockUpdate(ctx context.Context, sessionID string) (*model.StockUpdate, error)
	CancelStockUpdate(ctx context.Context, sessionID string) (*FlowView, error)
	GetStockUpdateFlow(ctx context.Context, sessionID string) (*FlowView, error)
}
