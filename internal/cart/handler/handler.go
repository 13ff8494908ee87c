package handler

import (
	"context"

	"github.com/fekuna/omnipos-storefront-service/internal/cart"
	"github.com/fekuna/omnipos-storefront-service/internal/grpcerr"
	"github.com/fekuna/omnipos-storefront-service/internal/model"
	productH "github.com/fekuna/omnipos-storefront-service/internal/product/handler"
	"github.com/fekuna/omnipos-storefront-service/internal/session"
	"github.com/fekuna/omnipos-storefront-service/pkg/logger"
	"github.com/fekuna/omnipos-storefront-service/pkg/rpc"
	"go.uber.org/zap"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
)

const ServiceName = "omnipos.storefront.v1.CartService"

type CartLinePayload struct {
	Product   *productH.ProductPayload `json:"product"`
	Quantity  int                      `json:"quantity"`
	LineTotal string                   `json:"line_total"`
}

func MapLines(lines []model.CartLine) []*CartLinePayload {
	out := make([]*CartLinePayload, 0, len(lines))
	for i := range lines {
		out = append(out, &CartLinePayload{
			Product:   productH.MapProduct(&lines[i].Product),
			Quantity:  lines[i].Quantity,
			LineTotal: lines[i].LineTotal().StringFixed(2),
		})
	}
	return out
}

type CartResponse struct {
	SessionID string             `json:"session_id"`
	Items     []*CartLinePayload `json:"items"`
	ItemCount int                `json:"item_count"`
	Subtotal  string             `json:"subtotal"`
	Tax       string             `json:"tax"`
	Total     string             `json:"total"`
}

func mapCart(v *cart.View) *CartResponse {
	display := v.Totals.Display()
	return &CartResponse{
		SessionID: v.SessionID,
		Items:     MapLines(v.Items),
		ItemCount: v.ItemCount,
		Subtotal:  display.Subtotal,
		Tax:       display.Tax,
		Total:     display.Total,
	}
}

type GetCartRequest struct{}

type AddItemRequest struct {
	ProductID string `json:"product_id"`
	Quantity  int    `json:"quantity"`
}

type RemoveItemRequest struct {
	ProductID string `json:"product_id"`
}

type UpdateQuantityRequest struct {
	ProductID string `json:"product_id"`
	Quantity  int    `json:"quantity"`
}

type ChangeQuantityRequest struct {
	ProductID string `json:"product_id"`
	Delta     int    `json:"delta"`
}

type ClearCartRequest struct{}

type CartServiceServer interface {
	GetCart(context.Context, *GetCartRequest) (*CartResponse, error)
	AddItem(context.Context, *AddItemRequest) (*CartResponse, error)
	RemoveItem(context.Context, *RemoveItemRequest) (*CartResponse, error)
	UpdateQuantity(context.Context, *UpdateQuantityRequest) (*CartResponse, error)
	ChangeQuantity(context.Context, *ChangeQuantityRequest) (*CartResponse, error)
	ClearCart(context.Context, *ClearCartRequest) (*CartResponse, error)
}

var ServiceDesc = grpc.ServiceDesc{
	ServiceName: ServiceName,
	HandlerType: (*CartServiceServer)(nil),
	Methods: []grpc.MethodDesc{
		rpc.UnaryMethod(ServiceName, "GetCart", CartServiceServer.GetCart),
		rpc.UnaryMethod(ServiceName, "AddItem", CartServiceServer.AddItem),
		rpc.UnaryMethod(ServiceName, "RemoveItem", CartServiceServer.RemoveItem),
		rpc.UnaryMethod(ServiceName, "UpdateQuantity", CartServiceServer.UpdateQuantity),
		rpc.UnaryMethod(ServiceName, "ChangeQuantity", CartServiceServer.ChangeQuantity),
		rpc.UnaryMethod(ServiceName, "ClearCart", CartServiceServer.ClearCart),
	},
	Streams:  []grpc.StreamDesc{},
	Metadata: "omnipos/storefront/v1/cart.proto",
}

type CartHandler struct {
	uc     cart.UseCase
	logger logger.ZapLogger
}

func NewCartHandler(uc cart.UseCase, log logger.ZapLogger) *CartHandler {
	return &CartHandler{
		uc:     uc,
		logger: log,
	}
}

func (h *CartHandler) respond(v *cart.View, err error) (*CartResponse, error) {
	if err != nil {
		if grpcerr.Code(err) == codes.Internal {
			h.logger.Error("cart operation failed", zap.Error(err))
		}
		return nil, grpcerr.ToStatus(err)
	}
	return mapCart(v), nil
}

func (h *CartHandler) GetCart(ctx context.Context, _ *GetCartRequest) (*CartResponse, error) {
	return h.respond(h.uc.GetCart(ctx, session.GetSessionID(ctx)))
}

func (h *CartHandler) AddItem(ctx context.Context, req *AddItemRequest) (*CartResponse, error) {
	if req.ProductID == "" {
		return nil, grpcerr.InvalidArgument("product_id is required")
	}
	return h.respond(h.uc.AddToCart(ctx, session.GetSessionID(ctx), req.ProductID, req.Quantity))
}

func (h *CartHandler) RemoveItem(ctx context.Context, req *RemoveItemRequest) (*CartResponse, error) {
	return h.respond(h.uc.RemoveFromCart(ctx, session.GetSessionID(ctx), req.ProductID))
}

func (h *CartHandler) UpdateQuantity(ctx context.Context, req *UpdateQuantityRequest) (*CartResponse, error) {
	return h.respond(h.uc.UpdateQuantity(ctx, session.GetSessionID(ctx), req.ProductID, req.Quantity))
}

func (h *CartHandler) ChangeQuantity(ctx context.Context, req *ChangeQuantityRequest) (*CartResponse, error) {
	return h.respond(h.uc.ChangeQuantity(ctx, session.GetSessionID(ctx), req.ProductID, req.Delta))
}

func (h *CartHandler) ClearCart(ctx context.Context, _ *ClearCartRequest) (*CartResponse, error) {
	sessionID := session.GetSessionID(ctx)
	if err := h.uc.ClearCart(ctx, sessionID); err != nil {
		return h.respond(nil, err)
	}
	return h.respond(h.uc.GetCart(ctx, sessionID))
}

func Register(srv *rpc.Server, h *CartHandler) {
	srv.Register(&ServiceDesc, h)
}

var _ CartServiceServer = (*CartHandler)(nil)
