package usecase

import (
	"context"
	"errors"
	"math"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/fekuna/omnipos-storefront-service/internal/gateway"
	"github.com/fekuna/omnipos-storefront-service/internal/inventory"
	"github.com/fekuna/omnipos-storefront-service/internal/inventory/dto"
	"github.com/fekuna/omnipos-storefront-service/internal/model"
	"github.com/fekuna/omnipos-storefront-service/internal/product"
	"github.com/fekuna/omnipos-storefront-service/pkg/event"
	"github.com/fekuna/omnipos-storefront-service/pkg/logger"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

const dateLayout = "2006-01-02"

type inventoryUseCase struct {
	repo      inventory.Repository
	products  product.UseCase
	committer gateway.StockCommitter
	bus       *event.Bus
	logger    logger.ZapLogger

	mu    sync.Mutex
	flows map[string]*inventory.Flow
}

func NewInventoryUseCase(
	repo inventory.Repository,
	products product.UseCase,
	committer gateway.StockCommitter,
	bus *event.Bus,
	log logger.ZapLogger,
) inventory.UseCase {
	return &inventoryUseCase{
		repo:      repo,
		products:  products,
		committer: committer,
		bus:       bus,
		logger:    log,
		flows:     map[string]*inventory.Flow{},
	}
}

func (uc *inventoryUseCase) ProposeUpdate(ctx context.Context, input *dto.ProposeUpdateInput) (*model.StockUpdate, error) {
	verr := model.NewValidationError()

	// 1. Product
	var p *model.Product
	if strings.TrimSpace(input.ProductID) == "" {
		verr.Add("product", "Please select a product")
	} else {
		found, err := uc.products.GetProduct(ctx, input.ProductID)
		switch {
		case errors.Is(err, model.ErrProductNotFound):
			verr.Add("product", "Please select a product")
		case err != nil:
			return nil, err
		default:
			p = found
		}
	}

	// 2. Quantity
	raw := strings.TrimSpace(input.Quantity)
	delta, convErr := strconv.Atoi(raw)
	switch {
	case raw == "":
		verr.Add("quantity", "Please enter update quantity")
	case convErr != nil:
		verr.Add("quantity", "Please enter a valid number")
	case p != nil && delta < -p.Stock:
		verr.Add("quantity", "Update would result in negative stock balance")
	case p != nil && delta > math.MaxInt-p.Stock:
		verr.Add("quantity", "Please enter a valid number")
	}

	// 3. Reason, date, shift
	reason := model.StockReason(input.Reason)
	if input.Reason == "" {
		verr.Add("reason", "Please select a reason")
	} else if !reason.Valid() {
		verr.Add("reason", "Please select a valid reason")
	}

	date, dateErr := time.Parse(dateLayout, strings.TrimSpace(input.Date))
	if strings.TrimSpace(input.Date) == "" {
		verr.Add("date", "Please select a date")
	} else if dateErr != nil {
		verr.Add("date", "Please enter a valid date (YYYY-MM-DD)")
	}

	shift := model.Shift(input.Shift)
	if shift == "" {
		shift = model.ShiftDay
	}
	if !shift.Valid() {
		verr.Add("shift", "Please select a valid shift")
	}

	if err := verr.OrNil(); err != nil {
		return nil, err
	}

	return &model.StockUpdate{
		ProductID:      p.ID,
		ProductName:    p.Name,
		CurrentBalance: p.Stock,
		UpdateQuantity: delta,
		NewBalance:     p.Stock + delta,
		Reason:         reason,
		Date:           date,
		Shift:          shift,
		UpdatedBy:      input.UpdatedBy,
		UpdatedAt:      time.Now(),
	}, nil
}

func (uc *inventoryUseCase) CommitUpdate(ctx context.Context, update *model.StockUpdate) (*model.StockUpdate, error) {
	rec := *update
	rec.ID = "STK-" + uuid.New().String()
	rec.NewBalance = rec.CurrentBalance + rec.UpdateQuantity
	if rec.NewBalance < 0 {
		return nil, model.ErrNegativeStock
	}

	// 1. Remote acknowledgement
	if err := uc.committer.Commit(ctx, &rec); err != nil {
		return nil, err
	}

	// 2. Stock and ledger, atomically
	rec.UpdatedAt = time.Now()
	if err := uc.repo.AppendWithStock(ctx, &rec); err != nil {
		return nil, err
	}

	uc.logger.Info("Stock update committed",
		zap.String("update_id", rec.ID),
		zap.String("product_id", rec.ProductID),
		zap.Int("current_balance", rec.CurrentBalance),
		zap.Int("update_quantity", rec.UpdateQuantity),
		zap.Int("new_balance", rec.NewBalance),
		zap.String("reason", string(rec.Reason)),
		zap.String("updated_by", rec.UpdatedBy),
	)

	// 3. Notify carts
	uc.bus.Fire(ctx, model.EventInventoryChanged, model.InventoryChanged{
		ProductID: rec.ProductID,
		Stock:     rec.NewBalance,
		Source:    "stock_update",
	})

	return &rec, nil
}

func (uc *inventoryUseCase) ListUpdates(ctx context.Context, filters *dto.UpdateFilters) ([]model.StockUpdate, int, error) {
	return uc.repo.ListUpdates(ctx, filters)
}

// flow must be called with mu held.
func (uc *inventoryUseCase) flow(sessionID string) *inventory.Flow {
	f, ok := uc.flows[sessionID]
	if !ok {
		f = inventory.NewFlow()
		uc.flows[sessionID] = f
	}
	return f
}

func (uc *inventoryUseCase) SubmitStockUpdate(ctx context.Context, sessionID string, input *dto.ProposeUpdateInput) (*inventory.FlowView, error) {
	rec, err := uc.ProposeUpdate(ctx, input)

	uc.mu.Lock()
	defer uc.mu.Unlock()

	f := uc.flow(sessionID)
	if err := f.Submit(rec, err); err != nil {
		return f.View(), err
	}
	return f.View(), nil
}

func (uc *inventoryUseCase) ConfirmStockUpdate(ctx context.Context, sessionID string) (*model.StockUpdate, error) {
	uc.mu.Lock()
	f := uc.flow(sessionID)
	pending, err := f.BeginConfirm()
	uc.mu.Unlock()
	if err != nil {
		return nil, err
	}

	// Once started, a commit runs to completion even if the caller goes away.
	ctx = context.WithoutCancel(ctx)
	committed, err := uc.CommitUpdate(ctx, pending)

	uc.mu.Lock()
	f.Finish(committed, err)
	uc.mu.Unlock()

	if err != nil {
		uc.logger.Warn("Stock update confirm failed",
			zap.String("session_id", sessionID),
			zap.String("product_id", pending.ProductID),
			zap.Error(err),
		)
		return nil, err
	}
	return committed, nil
}

func (uc *inventoryUseCase) CancelStockUpdate(ctx context.Context, sessionID string) (*inventory.FlowView, error) {
	uc.mu.Lock()
	defer uc.mu.Unlock()

	f := uc.flow(sessionID)
	if err := f.Cancel(); err != nil {
		return f.View(), err
	}
	return f.View(), nil
}

func (uc *inventoryUseCase) GetStockUpdateFlow(ctx context.Context, sessionID string) (*inventory.FlowView, error) {
	uc.mu.Lock()
	defer uc.mu.Unlock()
	return uc.flow(sessionID).View(), nil
}
