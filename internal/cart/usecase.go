package cart

import (
	"context"

	"github.com/fekuna/omnipos-storefront-service/internal/model"
)

// View is a cart as returned to callers.
type View struct {
	SessionID string           `json:"session_id"`
	Items     []model.CartLine `json:"items"`
	ItemCount int              `json:"item_count"`
	Totals    Totals           `json:"totals"`
}

type UseCase interface {
	GetCart(ctx context.Context, sessionID string) (*View, error)
	AddToCart(ctx context.Context, sessionID, productID string, quantity int) (*View, error)
	RemoveFromCart(ctx context.Context, sessionID, productID string) (*View, error)
	UpdateQuantity(ctx context.Context, sessionID, productID string, quantity int) (*View, error)
	ChangeQuantity(ctx context.Context, sessionID, productID string, delta int) (*View, error)
	ClearCart(ctx context.Context, sessionID string) error

	// Snapshot returns a copy of the session's lines.
	Snapshot(ctx context.Context, sessionID string) ([]model.CartLine, error)
	Reconcile(ctx context.Context, sessionID string) (*View, error)
	ReconcileAll(ctx context.Context) error
}
