// Package app assembles the storefront from configuration: storage,
// use cases, the event bus and the transports.
package app

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/fekuna/omnipos-storefront-service/config"
	"github.com/fekuna/omnipos-storefront-service/internal/cart"
	cartH "github.com/fekuna/omnipos-storefront-service/internal/cart/handler"
	cartListener "github.com/fekuna/omnipos-storefront-service/internal/cart/listener"
	cartUC "github.com/fekuna/omnipos-storefront-service/internal/cart/usecase"
	"github.com/fekuna/omnipos-storefront-service/internal/catalog"
	"github.com/fekuna/omnipos-storefront-service/internal/database"
	"github.com/fekuna/omnipos-storefront-service/internal/gateway"
	"github.com/fekuna/omnipos-storefront-service/internal/inventory"
	invH "github.com/fekuna/omnipos-storefront-service/internal/inventory/handler"
	invRepo "github.com/fekuna/omnipos-storefront-service/internal/inventory/repository"
	invUC "github.com/fekuna/omnipos-storefront-service/internal/inventory/usecase"
	"github.com/fekuna/omnipos-storefront-service/internal/order"
	orderH "github.com/fekuna/omnipos-storefront-service/internal/order/handler"
	orderRepo "github.com/fekuna/omnipos-storefront-service/internal/order/repository"
	orderUC "github.com/fekuna/omnipos-storefront-service/internal/order/usecase"
	"github.com/fekuna/omnipos-storefront-service/internal/product"
	prodH "github.com/fekuna/omnipos-storefront-service/internal/product/handler"
	prodRepo "github.com/fekuna/omnipos-storefront-service/internal/product/repository"
	prodUC "github.com/fekuna/omnipos-storefront-service/internal/product/usecase"
	"github.com/fekuna/omnipos-storefront-service/pkg/database/sqlite"
	"github.com/fekuna/omnipos-storefront-service/pkg/event"
	"github.com/fekuna/omnipos-storefront-service/pkg/logger"
	"github.com/fekuna/omnipos-storefront-service/pkg/ops"
	"github.com/fekuna/omnipos-storefront-service/pkg/rpc"
	"github.com/jmoiron/sqlx"
	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"
)

type App struct {
	DB  *sqlx.DB
	Bus *event.Bus

	Products product.UseCase
	Carts    cart.UseCase
	Orders   order.UseCase
	Stock    inventory.UseCase

	GRPC *rpc.Server
	Ops  http.Handler

	logger logger.ZapLogger
}

type options struct {
	payments  gateway.PaymentGateway
	committer gateway.StockCommitter
	gatherer  prometheus.Gatherer
}

type Option func(*options)

// WithPaymentGateway replaces the simulated card processor.
func WithPaymentGateway(g gateway.PaymentGateway) Option {
	return func(o *options) { o.payments = g }
}

// WithStockCommitter replaces the simulated stock system.
func WithStockCommitter(c gateway.StockCommitter) Option {
	return func(o *options) { o.committer = c }
}

func WithGatherer(g prometheus.Gatherer) Option {
	return func(o *options) { o.gatherer = g }
}

func New(ctx context.Context, cfg *config.Config, log logger.ZapLogger, opts ...Option) (*App, error) {
	o := &options{
		payments:  gateway.NewSimulatedPayments(cfg.Storefront.PaymentDelay, log),
		committer: gateway.NewSimulatedStockCommitter(cfg.Storefront.StockCommitDelay, log),
		gatherer:  prometheus.DefaultGatherer,
	}
	for _, opt := range opts {
		opt(o)
	}

	// 1. Storage
	db, err := sqlite.NewSQLite(&sqlite.Config{
		DSN:             cfg.Storage.DSN,
		MaxOpenConns:    cfg.Storage.MaxOpenConns,
		MaxIdleConns:    cfg.Storage.MaxIdleConns,
		ConnMaxLifetime: time.Duration(cfg.Storage.ConnMaxLifetime) * time.Second,
		ConnMaxIdleTime: time.Duration(cfg.Storage.ConnMaxIdleTime) * time.Second,
	})
	if err != nil {
		return nil, err
	}
	if err := database.Migrate(ctx, db); err != nil {
		db.Close()
		return nil, err
	}

	// 2. Repositories
	productRepo := prodRepo.NewSQLiteRepository(db)
	ordersRepo := orderRepo.NewSQLiteRepository(db)
	stockRepo := invRepo.NewSQLiteRepository(db)

	if cfg.Storefront.SeedCatalog {
		if err := catalog.Seed(ctx, productRepo, ordersRepo); err != nil {
			db.Close()
			return nil, fmt.Errorf("seed catalog: %w", err)
		}
		log.Info("Catalog seeded", zap.Int("products", len(catalog.Products())), zap.Int("orders", len(catalog.Orders())))
	}

	// 3. UseCases
	bus := event.NewBus()
	products := prodUC.NewProductUseCase(productRepo, bus, log)
	carts := cartUC.NewCartUseCase(products, log)
	orders := orderUC.NewOrderUseCase(ordersRepo, carts, o.payments, log)
	stock := invUC.NewInventoryUseCase(stockRepo, products, o.committer, bus, log)

	// 4. Listeners
	cartListener.NewInventoryListener(carts, log).Register(bus)

	// 5. Transports
	srv := rpc.NewServer(log)
	prodH.Register(srv, prodH.NewProductHandler(products, log))
	cartH.Register(srv, cartH.NewCartHandler(carts, log))
	orderH.Register(srv, orderH.NewOrderHandler(orders, log))
	invH.Register(srv, invH.NewInventoryHandler(stock, cfg.Storefront.Operator, log))

	router := ops.NewRouter(o.gatherer, map[string]ops.Check{
		"database": db.PingContext,
	})

	return &App{
		DB:       db,
		Bus:      bus,
		Products: products,
		Carts:    carts,
		Orders:   orders,
		Stock:    stock,
		GRPC:     srv,
		Ops:      router,
		logger:   log,
	}, nil
}

// Close stops the gRPC server and releases storage. The in-memory data is
// gone afterwards.
func (a *App) Close() error {
	a.GRPC.Stop()
	a.Bus.Flush()
	return a.DB.Close()
}
