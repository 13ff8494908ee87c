package main

import (
	"context"
	"errors"
	"log"
	"net"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/fekuna/omnipos-storefront-service/config"
	"github.com/fekuna/omnipos-storefront-service/internal/app"
	"github.com/fekuna/omnipos-storefront-service/pkg/logger"
	"github.com/joho/godotenv"
	"go.uber.org/zap"
)

func listenAddr(port string) string {
	if !strings.Contains(port, ":") {
		return ":" + port
	}
	return port
}

func main() {
	// 1. Load Configuration
	_ = godotenv.Load() // Load .env file if it exists
	cfg := config.LoadEnv()

	// 2. Initialize Logger
	logConfig := &logger.ZapLoggerConfig{
		IsDevelopment:     false,
		Encoding:          cfg.Logger.Encoding,
		Level:             cfg.Logger.Level,
		DisableCaller:     cfg.Logger.DisableCaller,
		DisableStacktrace: cfg.Logger.DisableStacktrace,
	}
	if cfg.IsDevelopment() {
		logConfig.IsDevelopment = true
	} else if logConfig.Encoding == "console" {
		logConfig.Encoding = "json"
	}

	appLogger := logger.NewZapLogger(logConfig)
	defer appLogger.Sync()

	// 3. Build the storefront
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	storefront, err := app.New(ctx, cfg, appLogger)
	if err != nil {
		appLogger.Fatal("Could not start storefront", zap.Error(err))
	}

	// 4. Start gRPC Server
	port := listenAddr(cfg.Server.GRPCPort)
	lis, err := net.Listen("tcp", port)
	if err != nil {
		log.Fatalf("failed to listen: %v", err)
	}

	appLogger.Info("Starting gRPC server", zap.String("port", port))
	go func() {
		if err := storefront.GRPC.Serve(lis); err != nil {
			appLogger.Fatal("failed to serve", zap.Error(err))
		}
	}()

	// 5. Start ops HTTP server
	opsServer := &http.Server{
		Addr:              listenAddr(cfg.Server.HTTPPort),
		Handler:           storefront.Ops,
		ReadHeaderTimeout: 5 * time.Second,
	}
	appLogger.Info("Starting ops HTTP server", zap.String("addr", opsServer.Addr))
	go func() {
		if err := opsServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			appLogger.Fatal("failed to serve ops", zap.Error(err))
		}
	}()

	// Graceful Shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	appLogger.Info("Shutting down server...")
	shutdownCtx, shutdownCancel := context.WithTimeout(ctx, 10*time.Second)
	defer shutdownCancel()
	if err := opsServer.Shutdown(shutdownCtx); err != nil {
		appLogger.Warn("ops server shutdown", zap.Error(err))
	}
	if err := storefront.Close(); err != nil {
		appLogger.Warn("storefront close", zap.Error(err))
	}
	appLogger.Info("Server stopped")
}
