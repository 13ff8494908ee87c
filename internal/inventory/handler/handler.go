package handler

import (
	"context"
	"time"

	"github.com/fekuna/omnipos-storefront-service/internal/grpcerr"
	"github.com/fekuna/omnipos-storefront-service/internal/inventory"
	"github.com/fekuna/omnipos-storefront-service/internal/inventory/dto"
	"github.com/fekuna/omnipos-storefront-service/internal/model"
	"github.com/fekuna/omnipos-storefront-service/internal/session"
	"github.com/fekuna/omnipos-storefront-service/pkg/logger"
	"github.com/fekuna/omnipos-storefront-service/pkg/rpc"
	"go.uber.org/zap"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
)

const ServiceName = "omnipos.storefront.v1.StockService"

type StockUpdatePayload struct {
	ID             string `json:"id,omitempty"`
	ProductID      string `json:"product_id"`
	ProductName    string `json:"product_name"`
	CurrentBalance int    `json:"current_balance"`
	UpdateQuantity int    `json:"update_quantity"`
	NewBalance     int    `json:"new_balance"`
	Reason         string `json:"reason"`
	Date           string `json:"date"`
	Shift          string `json:"shift"`
	UpdatedBy      string `json:"updated_by"`
	UpdatedAt      string `json:"updated_at"`
}

func mapStockUpdate(u *model.StockUpdate) *StockUpdatePayload {
	if u == nil {
		return nil
	}
	return &StockUpdatePayload{
		ID:             u.ID,
		ProductID:      u.ProductID,
		ProductName:    u.ProductName,
		CurrentBalance: u.CurrentBalance,
		UpdateQuantity: u.UpdateQuantity,
		NewBalance:     u.NewBalance,
		Reason:         string(u.Reason),
		Date:           u.Date.Format(time.DateOnly),
		Shift:          string(u.Shift),
		UpdatedBy:      u.UpdatedBy,
		UpdatedAt:      u.UpdatedAt.Format(time.RFC3339),
	}
}

type FlowResponse struct {
	State         string              `json:"state"`
	Pending       *StockUpdatePayload `json:"pending,omitempty"`
	Errors        map[string]string   `json:"errors,omitempty"`
	LastCommitted *StockUpdatePayload `json:"last_committed,omitempty"`
}

func mapFlow(v *inventory.FlowView) *FlowResponse {
	return &FlowResponse{
		State:         string(v.State),
		Pending:       mapStockUpdate(v.Pending),
		Errors:        v.Errors,
		LastCommitted: mapStockUpdate(v.LastCommitted),
	}
}

type SubmitStockUpdateRequest struct {
	ProductID string `json:"product_id"`
	Quantity  string `json:"quantity"`
	Reason    string `json:"reason"`
	Date      string `json:"date"`
	Shift     string `json:"shift"`
}

type ConfirmStockUpdateRequest struct{}

type CancelStockUpdateRequest struct{}

type GetStockUpdateFlowRequest struct{}

type StockUpdateResponse struct {
	Update *StockUpdatePayload `json:"update"`
}

type ListStockUpdatesRequest struct {
	ProductID string `json:"product_id"`
	Page      int    `json:"page"`
	PageSize  int    `json:"page_size"`
}

type ListStockUpdatesResponse struct {
	Updates []*StockUpdatePayload `json:"updates"`
	Total   int                   `json:"total"`
}

type StockServiceServer interface {
	SubmitStockUpdate(context.Context, *SubmitStockUpdateRequest) (*FlowResponse, error)
	ConfirmStockUpdate(context.Context, *ConfirmStockUpdateRequest) (*StockUpdateResponse, error)
	CancelStockUpdate(context.Context, *CancelStockUpdateRequest) (*FlowResponse, error)
	GetStockUpdateFlow(context.Context, *GetStockUpdateFlowRequest) (*FlowResponse, error)
	ListStockUpdates(context.Context, *ListStockUpdatesRequest) (*ListStockUpdatesResponse, error)
}

var ServiceDesc = grpc.ServiceDesc{
	ServiceName: ServiceName,
	HandlerType: (*StockServiceServer)(nil),
	Methods: []grpc.MethodDesc{
		rpc.UnaryMethod(ServiceName, "SubmitStockUpdate", StockServiceServer.SubmitStockUpdate),
		rpc.UnaryMethod(ServiceName, "ConfirmStockUpdate", StockServiceServer.ConfirmStockUpdate),
		rpc.UnaryMethod(ServiceName, "CancelStockUpdate", StockServiceServer.CancelStockUpdate),
		rpc.UnaryMethod(ServiceName, "GetStockUpdateFlow", StockServiceServer.GetStockUpdateFlow),
		rpc.UnaryMethod(ServiceName, "ListStockUpdates", StockServiceServer.ListStockUpdates),
	},
	Streams:  []grpc.StreamDesc{},
	Metadata: "omnipos/storefront/v1/stock.proto",
}

type InventoryHandler struct {
	uc       inventory.UseCase
	operator string
	logger   logger.ZapLogger
}

// NewInventoryHandler records operator as the actor when a caller sends no
// user name.
func NewInventoryHandler(uc inventory.UseCase, operator string, log logger.ZapLogger) *InventoryHandler {
	return &InventoryHandler{
		uc:       uc,
		operator: operator,
		logger:   log,
	}
}

func (h *InventoryHandler) fail(msg string, err error) error {
	if grpcerr.Code(err) == codes.Internal {
		h.logger.Error(msg, zap.Error(err))
	}
	return grpcerr.ToStatus(err)
}

func (h *InventoryHandler) SubmitStockUpdate(ctx context.Context, req *SubmitStockUpdateRequest) (*FlowResponse, error) {
	view, err := h.uc.SubmitStockUpdate(ctx, session.GetSessionID(ctx), &dto.ProposeUpdateInput{
		ProductID: req.ProductID,
		Quantity:  req.Quantity,
		Reason:    req.Reason,
		Date:      req.Date,
		Shift:     req.Shift,
		UpdatedBy: session.GetActor(ctx, h.operator),
	})
	if err != nil {
		return nil, h.fail("failed to submit stock update", err)
	}
	return mapFlow(view), nil
}

func (h *InventoryHandler) ConfirmStockUpdate(ctx context.Context, _ *ConfirmStockUpdateRequest) (*StockUpdateResponse, error) {
	u, err := h.uc.ConfirmStockUpdate(ctx, session.GetSessionID(ctx))
	if err != nil {
		return nil, h.fail("failed to confirm stock update", err)
	}
	return &StockUpdateResponse{Update: mapStockUpdate(u)}, nil
}

func (h *InventoryHandler) CancelStockUpdate(ctx context.Context, _ *CancelStockUpdateRequest) (*FlowResponse, error) {
	view, err := h.uc.CancelStockUpdate(ctx, session.GetSessionID(ctx))
	if err != nil {
		return nil, h.fail("failed to cancel stock update", err)
	}
	return mapFlow(view), nil
}

func (h *InventoryHandler) GetStockUpdateFlow(ctx context.Context, _ *GetStockUpdateFlowRequest) (*FlowResponse, error) {
	view, err := h.uc.GetStockUpdateFlow(ctx, session.GetSessionID(ctx))
	if err != nil {
		return nil, h.fail("failed to get stock update flow", err)
	}
	return mapFlow(view), nil
}

func (h *InventoryHandler) ListStockUpdates(ctx context.Context, req *ListStockUpdatesRequest) (*ListStockUpdatesResponse, error) {
	updates, total, err := h.uc.ListUpdates(ctx, &dto.UpdateFilters{
		ProductID: req.ProductID,
		Page:      req.Page,
		PageSize:  req.PageSize,
	})
	if err != nil {
		return nil, h.fail("failed to list stock updates", err)
	}

	resp := &ListStockUpdatesResponse{
		Updates: make([]*StockUpdatePayload, 0, len(updates)),
		Total:   total,
	}
	for i := range updates {
		resp.Updates = append(resp.Updates, mapStockUpdate(&updates[i]))
	}
	return resp, nil
}

func Register(srv *rpc.Server, h *InventoryHandler) {
	srv.Register(&ServiceDesc, h)
}

var _ StockServiceServer = (*InventoryHandler)(nil)
