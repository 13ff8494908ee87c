package handler

import (
	"context"
	"time"

	cartH "github.com/fekuna/omnipos-storefront-service/internal/cart/handler"
	"github.com/fekuna/omnipos-storefront-service/internal/grpcerr"
	"github.com/fekuna/omnipos-storefront-service/internal/model"
	"github.com/fekuna/omnipos-storefront-service/internal/order"
	"github.com/fekuna/omnipos-storefront-service/internal/order/dto"
	"github.com/fekuna/omnipos-storefront-service/internal/session"
	"github.com/fekuna/omnipos-storefront-service/pkg/logger"
	"github.com/fekuna/omnipos-storefront-service/pkg/rpc"
	"go.uber.org/zap"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
)

const ServiceName = "omnipos.storefront.v1.OrderService"

type OrderPayload struct {
	ID            string                   `json:"id"`
	Items         []*cartH.CartLinePayload `json:"items"`
	Total         string                   `json:"total"`
	Status        string                   `json:"status"`
	Date          string                   `json:"date"`
	PaymentMethod string                   `json:"payment_method"`
	CustomerName  *string                  `json:"customer_name,omitempty"`
	CustomerEmail *string                  `json:"customer_email,omitempty"`
}

func mapOrder(o *model.Order) *OrderPayload {
	return &OrderPayload{
		ID:            o.ID,
		Items:         cartH.MapLines(o.Items),
		Total:         o.Total.StringFixed(2),
		Status:        string(o.Status),
		Date:          o.Date.Format(time.DateOnly),
		PaymentMethod: o.PaymentMethod,
		CustomerName:  o.CustomerName,
		CustomerEmail: o.CustomerEmail,
	}
}

type CheckoutRequest struct {
	CardholderName string `json:"cardholder_name"`
	CardNumber     string `json:"card_number"`
	ExpiryDate     string `json:"expiry_date"`
	CVV            string `json:"cvv"`
	CustomerName   string `json:"customer_name"`
	CustomerEmail  string `json:"customer_email"`
}

type OrderResponse struct {
	Order *OrderPayload `json:"order"`
}

type ListOrdersRequest struct {
	Search   string `json:"search"`
	Status   string `json:"status"`
	Page     int    `json:"page"`
	PageSize int    `json:"page_size"`
}

type ListOrdersResponse struct {
	Orders []*OrderPayload `json:"orders"`
	Total  int             `json:"total"`
}

type GetOrderRequest struct {
	ID string `json:"id"`
}

type OrderServiceServer interface {
	Checkout(context.Context, *CheckoutRequest) (*OrderResponse, error)
	ListOrders(context.Context, *ListOrdersRequest) (*ListOrdersResponse, error)
	GetOrder(context.Context, *GetOrderRequest) (*OrderResponse, error)
}

var ServiceDesc = grpc.ServiceDesc{
	ServiceName: ServiceName,
	HandlerType: (*OrderServiceServer)(nil),
	Methods: []grpc.MethodDesc{
		rpc.UnaryMethod(ServiceName, "Checkout", OrderServiceServer.Checkout),
		rpc.UnaryMethod(ServiceName, "ListOrders", OrderServiceServer.ListOrders),
		rpc.UnaryMethod(ServiceName, "GetOrder", OrderServiceServer.GetOrder),
	},
	Streams:  []grpc.StreamDesc{},
	Metadata: "omnipos/storefront/v1/order.proto",
}

type OrderHandler struct {
	uc     order.UseCase
	logger logger.ZapLogger
}

func NewOrderHandler(uc order.UseCase, log logger.ZapLogger) *OrderHandler {
	return &OrderHandler{
		uc:     uc,
		logger: log,
	}
}

func (h *OrderHandler) fail(msg string, err error) error {
	if grpcerr.Code(err) == codes.Internal {
		h.logger.Error(msg, zap.Error(err))
	}
	return grpcerr.ToStatus(err)
}

func (h *OrderHandler) Checkout(ctx context.Context, req *CheckoutRequest) (*OrderResponse, error) {
	o, err := h.uc.Checkout(ctx, &dto.CheckoutInput{
		SessionID: session.GetSessionID(ctx),
		Payment: model.PaymentInfo{
			CardholderName: req.CardholderName,
			CardNumber:     req.CardNumber,
			ExpiryDate:     req.ExpiryDate,
			CVV:            req.CVV,
		},
		CustomerName:  req.CustomerName,
		CustomerEmail: req.CustomerEmail,
	})
	if err != nil {
		return nil, h.fail("failed to checkout", err)
	}
	return &OrderResponse{Order: mapOrder(o)}, nil
}

func (h *OrderHandler) ListOrders(ctx context.Context, req *ListOrdersRequest) (*ListOrdersResponse, error) {
	orders, total, err := h.uc.ListOrders(ctx, &dto.OrderFilters{
		SearchQuery: req.Search,
		Status:      model.OrderStatus(req.Status),
		Page:        req.Page,
		PageSize:    req.PageSize,
	})
	if err != nil {
		return nil, h.fail("failed to list orders", err)
	}

	resp := &ListOrdersResponse{
		Orders: make([]*OrderPayload, 0, len(orders)),
		Total:  total,
	}
	for i := range orders {
		resp.Orders = append(resp.Orders, mapOrder(&orders[i]))
	}
	return resp, nil
}

func (h *OrderHandler) GetOrder(ctx context.Context, req *GetOrderRequest) (*OrderResponse, error) {
	if req.ID == "" {
		return nil, grpcerr.InvalidArgument("id is required")
	}
	o, err := h.uc.GetOrder(ctx, req.ID)
	if err != nil {
		return nil, h.fail("failed to get order", err)
	}
	return &OrderResponse{Order: mapOrder(o)}, nil
}

func Register(srv *rpc.Server, h *OrderHandler) {
	srv.Register(&ServiceDesc, h)
}

var _ OrderServiceServer = (*OrderHandler)(nil)
