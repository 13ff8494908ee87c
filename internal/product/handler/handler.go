package handler

import (
	"context"

	"github.com/fekuna/omnipos-storefront-service/internal/grpcerr"
	"github.com/fekuna/omnipos-storefront-service/internal/model"
	"github.com/fekuna/omnipos-storefront-service/internal/product"
	"github.com/fekuna/omnipos-storefront-service/internal/product/dto"
	"github.com/fekuna/omnipos-storefront-service/pkg/logger"
	"github.com/fekuna/omnipos-storefront-service/pkg/rpc"
	"go.uber.org/zap"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
)

const ServiceName = "omnipos.storefront.v1.CatalogService"

type ProductPayload struct {
	ID          string  `json:"id"`
	Name        string  `json:"name"`
	Price       string  `json:"price"`
	ImageURL    string  `json:"image_url"`
	Stock       int     `json:"stock"`
	InStock     bool    `json:"in_stock"`
	Description *string `json:"description,omitempty"`
}

func MapProduct(p *model.Product) *ProductPayload {
	return &ProductPayload{
		ID:          p.ID,
		Name:        p.Name,
		Price:       p.Price.StringFixed(2),
		ImageURL:    p.ImageURL,
		Stock:       p.Stock,
		InStock:     p.InStock(),
		Description: p.Description,
	}
}

type ListProductsRequest struct {
	Search      string `json:"search"`
	InStockOnly bool   `json:"in_stock_only"`
	Page        int    `json:"page"`
	PageSize    int    `json:"page_size"`
}

type ListProductsResponse struct {
	Products []*ProductPayload `json:"products"`
	Total    int               `json:"total"`
}

type GetProductRequest struct {
	ID string `json:"id"`
}

type SetStockRequest struct {
	ID    string `json:"id"`
	Stock int    `json:"stock"`
}

type ProductResponse struct {
	Product *ProductPayload `json:"product"`
}

type CatalogServiceServer interface {
	ListProducts(context.Context, *ListProductsRequest) (*ListProductsResponse, error)
	GetProduct(context.Context, *GetProductRequest) (*ProductResponse, error)
	SetStock(context.Context, *SetStockRequest) (*ProductResponse, error)
}

var ServiceDesc = grpc.ServiceDesc{
	ServiceName: ServiceName,
	HandlerType: (*CatalogServiceServer)(nil),
	Methods: []grpc.MethodDesc{
		rpc.UnaryMethod(ServiceName, "ListProducts", CatalogServiceServer.ListProducts),
		rpc.UnaryMethod(ServiceName, "GetProduct", CatalogServiceServer.GetProduct),
		rpc.UnaryMethod(ServiceName, "SetStock", CatalogServiceServer.SetStock),
	},
	Streams:  []grpc.StreamDesc{},
	Metadata: "omnipos/storefront/v1/catalog.proto",
}

type ProductHandler struct {
	uc     product.UseCase
	logger logger.ZapLogger
}

func NewProductHandler(uc product.UseCase, log logger.ZapLogger) *ProductHandler {
	return &ProductHandler{
		uc:     uc,
		logger: log,
	}
}

func (h *ProductHandler) ListProducts(ctx context.Context, req *ListProductsRequest) (*ListProductsResponse, error) {
	products, total, err := h.uc.ListProducts(ctx, &dto.ProductFilters{
		SearchQuery: req.Search,
		InStockOnly: req.InStockOnly,
		Page:        req.Page,
		PageSize:    req.PageSize,
	})
	if err != nil {
		h.logger.Error("failed to list products", zap.Error(err))
		return nil, grpcerr.ToStatus(err)
	}

	resp := &ListProductsResponse{
		Products: make([]*ProductPayload, 0, len(products)),
		Total:    total,
	}
	for i := range products {
		resp.Products = append(resp.Products, MapProduct(&products[i]))
	}
	return resp, nil
}

func (h *ProductHandler) GetProduct(ctx context.Context, req *GetProductRequest) (*ProductResponse, error) {
	if req.ID == "" {
		return nil, grpcerr.InvalidArgument("id is required")
	}

	p, err := h.uc.GetProduct(ctx, req.ID)
	if err != nil {
		return nil, grpcerr.ToStatus(err)
	}
	return &ProductResponse{Product: MapProduct(p)}, nil
}

// SetStock overwrites a product's stock level. Carts holding the product are
// reconciled before it returns.
func (h *ProductHandler) SetStock(ctx context.Context, req *SetStockRequest) (*ProductResponse, error) {
	if req.ID == "" {
		return nil, grpcerr.InvalidArgument("id is required")
	}

	p, err := h.uc.SetStock(ctx, req.ID, req.Stock)
	if err != nil {
		if grpcerr.Code(err) == codes.Internal {
			h.logger.Error("failed to set stock", zap.String("product_id", req.ID), zap.Error(err))
		}
		return nil, grpcerr.ToStatus(err)
	}
	return &ProductResponse{Product: MapProduct(p)}, nil
}

// Register adds the catalog service to srv.
func Register(srv *rpc.Server, h *ProductHandler) {
	srv.Register(&ServiceDesc, h)
}

var _ CatalogServiceServer = (*ProductHandler)(nil)
