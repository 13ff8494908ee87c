package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestLoadEnv(t *testing.T) {
	t.Run("Defaults", func(t *testing.T) {
		cfg := LoadEnv()

		require.Equal(t, ":8083", cfg.Server.GRPCPort)
		require.Equal(t, 2*time.Second, cfg.Storefront.PaymentDelay)
		require.Equal(t, 1500*time.Millisecond, cfg.Storefront.StockCommitDelay)
		require.Equal(t, 1, cfg.Storage.MaxOpenConns)
		require.Contains(t, cfg.Storage.DSN, "mode=memory")
		require.True(t, cfg.Storefront.SeedCatalog)
	})

	t.Run("Overrides", func(t *testing.T) {
		t.Setenv("APP_ENV", "production")
		t.Setenv("PAYMENT_DELAY_MS", "10")
		t.Setenv("SEED_CATALOG", "false")
		t.Setenv("STOREFRONT_OPERATOR", "Night Clerk")

		cfg := LoadEnv()

		require.False(t, cfg.IsDevelopment())
		require.Equal(t, 10*time.Millisecond, cfg.Storefront.PaymentDelay)
		require.False(t, cfg.Storefront.SeedCatalog)
		require.Equal(t, "Night Clerk", cfg.Storefront.Operator)
	})

	t.Run("MalformedNumbersFallBack", func(t *testing.T) {
		t.Setenv("STOCK_COMMIT_DELAY_MS", "soon")
		t.Setenv("LOGGER_DISABLE_CALLER", "maybe")

		cfg := LoadEnv()

		require.Equal(t, 1500*time.Millisecond, cfg.Storefront.StockCommitDelay)
		require.False(t, cfg.Logger.DisableCaller)
	})
}
