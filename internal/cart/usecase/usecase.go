package usecase

import (
	"context"
	"sync"

	"github.com/fekuna/omnipos-storefront-service/internal/cart"
	"github.com/fekuna/omnipos-storefront-service/internal/model"
	"github.com/fekuna/omnipos-storefront-service/internal/product"
	"github.com/fekuna/omnipos-storefront-service/internal/product/dto"
	"github.com/fekuna/omnipos-storefront-service/pkg/logger"
	"go.uber.org/zap"
)

type cartUseCase struct {
	products product.UseCase
	logger   logger.ZapLogger

	mu       sync.Mutex
	sessions map[string]*cart.Cart
}

func NewCartUseCase(products product.UseCase, log logger.ZapLogger) cart.UseCase {
	return &cartUseCase{
		products: products,
		logger:   log,
		sessions: map[string]*cart.Cart{},
	}
}

// session must be called with mu held.
func (uc *cartUseCase) session(sessionID string) *cart.Cart {
	c, ok := uc.sessions[sessionID]
	if !ok {
		c = cart.New()
		uc.sessions[sessionID] = c
	}
	return c
}

func view(sessionID string, c *cart.Cart) *cart.View {
	return &cart.View{
		SessionID: sessionID,
		Items:     c.Lines(),
		ItemCount: c.ItemCount(),
		Totals:    c.Totals(),
	}
}

func (uc *cartUseCase) GetCart(ctx context.Context, sessionID string) (*cart.View, error) {
	uc.mu.Lock()
	defer uc.mu.Unlock()
	return view(sessionID, uc.session(sessionID)), nil
}

func (uc *cartUseCase) AddToCart(ctx context.Context, sessionID, productID string, quantity int) (*cart.View, error) {
	// 1. Validate request
	if quantity < 1 {
		return nil, model.ErrInvalidQuantity
	}

	// 2. Check current stock
	p, err := uc.products.GetProduct(ctx, productID)
	if err != nil {
		return nil, err
	}
	if !p.InStock() {
		return nil, model.ErrOutOfStock
	}
	if quantity > p.Stock {
		return nil, model.ErrInsufficientStock
	}

	// 3. Merge into the cart
	uc.mu.Lock()
	defer uc.mu.Unlock()

	c := uc.session(sessionID)
	c.Add(*p, quantity)

	line, _ := c.Line(productID)
	uc.logger.Debug("Added to cart",
		zap.String("session_id", sessionID),
		zap.String("product_id", productID),
		zap.Int("requested", quantity),
		zap.Int("line_quantity", line.Quantity),
	)
	return view(sessionID, c), nil
}

func (uc *cartUseCase) RemoveFromCart(ctx context.Context, sessionID, productID string) (*cart.View, error) {
	uc.mu.Lock()
	defer uc.mu.Unlock()

	c := uc.session(sessionID)
	c.Remove(productID)
	return view(sessionID, c), nil
}

func clamp(q, stock int) int {
	return max(1, min(q, stock))
}

func (uc *cartUseCase) UpdateQuantity(ctx context.Context, sessionID, productID string, quantity int) (*cart.View, error) {
	uc.mu.Lock()
	defer uc.mu.Unlock()

	c := uc.session(sessionID)
	if line, ok := c.Line(productID); ok {
		c.SetQuantity(productID, clamp(quantity, line.Product.Stock))
	}
	return view(sessionID, c), nil
}

func (uc *cartUseCase) ChangeQuantity(ctx context.Context, sessionID, productID string, delta int) (*cart.View, error) {
	uc.mu.Lock()
	defer uc.mu.Unlock()

	c := uc.session(sessionID)
	if line, ok := c.Line(productID); ok {
		c.SetQuantity(productID, clamp(line.Quantity+delta, line.Product.Stock))
	}
	return view(sessionID, c), nil
}

func (uc *cartUseCase) ClearCart(ctx context.Context, sessionID string) error {
	uc.mu.Lock()
	defer uc.mu.Unlock()

	uc.session(sessionID).Clear()
	return nil
}

func (uc *cartUseCase) Snapshot(ctx context.Context, sessionID string) ([]model.CartLine, error) {
	uc.mu.Lock()
	defer uc.mu.Unlock()

	if c, ok := uc.sessions[sessionID]; ok {
		return c.Lines(), nil
	}
	return []model.CartLine{}, nil
}

func (uc *cartUseCase) currentProducts(ctx context.Context) ([]model.Product, error) {
	products, _, err := uc.products.ListProducts(ctx, &dto.ProductFilters{})
	return products, err
}

func (uc *cartUseCase) Reconcile(ctx context.Context, sessionID string) (*cart.View, error) {
	products, err := uc.currentProducts(ctx)
	if err != nil {
		return nil, err
	}

	uc.mu.Lock()
	defer uc.mu.Unlock()

	c := uc.session(sessionID)
	if n := c.Reconcile(products); n > 0 {
		uc.logger.Info("Cart reconciled", zap.String("session_id", sessionID), zap.Int("changed_lines", n))
	}
	return view(sessionID, c), nil
}

func (uc *cartUseCase) ReconcileAll(ctx context.Context) error {
	products, err := uc.currentProducts(ctx)
	if err != nil {
		return err
	}

	uc.mu.Lock()
	defer uc.mu.Unlock()

	for id, c := range uc.sessions {
		if n := c.Reconcile(products); n > 0 {
			uc.logger.Info("Cart reconciled", zap.String("session_id", id), zap.Int("changed_lines", n))
		}
	}
	return nil
}
