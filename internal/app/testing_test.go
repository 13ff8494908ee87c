package app

import (
	"context"
	"fmt"
	"net"
	"testing"

	"github.com/fekuna/omnipos-storefront-service/config"
	"github.com/fekuna/omnipos-storefront-service/internal/session"
	"github.com/fekuna/omnipos-storefront-service/pkg/logger"
	"github.com/fekuna/omnipos-storefront-service/pkg/rpc"
	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials/insecure"
	"google.golang.org/grpc/metadata"
	"google.golang.org/grpc/test/bufconn"
)

func testConfig() *config.Config {
	cfg := config.LoadEnv()
	cfg.Storage.DSN = fmt.Sprintf("file:app-%s?mode=memory&cache=shared", uuid.New().String())
	cfg.Storefront.PaymentDelay = 0
	cfg.Storefront.StockCommitDelay = 0
	cfg.Storefront.Operator = "Store Manager"
	cfg.Storefront.SeedCatalog = true
	return cfg
}

// harness runs an App behind an in-memory listener.
type harness struct {
	app  *App
	conn *grpc.ClientConn
}

func newHarness(opts ...Option) (*harness, func(), error) {
	opts = append([]Option{WithGatherer(prometheus.NewRegistry())}, opts...)
	a, err := New(context.Background(), testConfig(), logger.NewNop(), opts...)
	if err != nil {
		return nil, nil, fmt.Errorf("build app: %w", err)
	}

	lis := bufconn.Listen(1024 * 1024)
	go func() { _ = a.GRPC.Serve(lis) }()

	conn, err := grpc.NewClient("passthrough:///bufnet",
		grpc.WithContextDialer(func(ctx context.Context, _ string) (net.Conn, error) {
			return lis.DialContext(ctx)
		}),
		grpc.WithTransportCredentials(insecure.NewCredentials()),
	)
	if err != nil {
		a.Close()
		return nil, nil, fmt.Errorf("dial: %w", err)
	}

	return &harness{app: a, conn: conn}, func() {
		conn.Close()
		a.Close()
	}, nil
}

func startHarness(tb testing.TB, opts ...Option) (*harness, func()) {
	tb.Helper()
	h, stop, err := newHarness(opts...)
	if err != nil {
		tb.Fatal(err)
	}
	return h, stop
}

func as(ctx context.Context, sessionID, user string) context.Context {
	pairs := []string{session.SessionHeader, sessionID}
	if user != "" {
		pairs = append(pairs, session.UserHeader, user)
	}
	return metadata.AppendToOutgoingContext(ctx, pairs...)
}

func call[Resp any](ctx context.Context, h *harness, service, method string, req any) (*Resp, error) {
	return rpc.Invoke[Resp](ctx, h.conn, "/"+service+"/"+method, req)
}
