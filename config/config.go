package config

import (
	"os"
	"strconv"
	"strings"
	"time"
)

type Config struct {
	Server     ServerConfig
	Logger     LoggerConfig
	Storage    StorageConfig
	Storefront StorefrontConfig
}

type ServerConfig struct {
	AppEnv   string
	GRPCPort string
	HTTPPort string
}

type LoggerConfig struct {
	Level             string
	Encoding          string
	DisableCaller     bool
	DisableStacktrace bool
}

// StorageConfig points at an in-memory SQLite database by default, so nothing
// outlives the process.
type StorageConfig struct {
	DSN             string
	MaxOpenConns    int
	MaxIdleConns    int
	ConnMaxLifetime int
	ConnMaxIdleTime int
}

type StorefrontConfig struct {
	PaymentDelay     time.Duration
	StockCommitDelay time.Duration
	Operator         string
	SeedCatalog      bool
}

func LoadEnv() *Config {
	return &Config{
		Server: ServerConfig{
			AppEnv:   getEnv("APP_ENV", "dev"),
			GRPCPort: getEnv("GRPC_PORT", ":8083"),
			HTTPPort: getEnv("HTTP_PORT", ":9093"),
		},
		Logger: LoggerConfig{
			Level:             getEnv("LOGGER_LEVEL", "debug"),
			Encoding:          getEnv("LOGGER_ENCODING", "console"),
			DisableCaller:     getEnvBool("LOGGER_DISABLE_CALLER", false),
			DisableStacktrace: getEnvBool("LOGGER_DISABLE_STACKTRACE", true),
		},
		Storage: StorageConfig{
			DSN:             getEnv("STORAGE_DSN", "file:storefront?mode=memory&cache=shared"),
			MaxOpenConns:    getEnvInt("STORAGE_MAX_OPEN_CONNS", 1),
			MaxIdleConns:    getEnvInt("STORAGE_MAX_IDLE_CONNS", 1),
			ConnMaxLifetime: getEnvInt("STORAGE_CONN_MAX_LIFETIME", 0),
			ConnMaxIdleTime: getEnvInt("STORAGE_CONN_MAX_IDLE_TIME", 0),
		},
		Storefront: StorefrontConfig{
			PaymentDelay:     time.Duration(getEnvInt("PAYMENT_DELAY_MS", 2000)) * time.Millisecond,
			StockCommitDelay: time.Duration(getEnvInt("STOCK_COMMIT_DELAY_MS", 1500)) * time.Millisecond,
			Operator:         getEnv("STOREFRONT_OPERATOR", "Store Manager"),
			SeedCatalog:      getEnvBool("SEED_CATALOG", true),
		},
	}
}

func (c *Config) IsDevelopment() bool {
	switch strings.ToLower(c.Server.AppEnv) {
	case "dev", "development", "local":
		return true
	}
	return false
}

func getEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok {
		return value
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	if value, ok := os.LookupEnv(key); ok {
		if i, err := strconv.Atoi(value); err == nil {
			return i
		}
	}
	return fallback
}

func getEnvBool(key string, fallback bool) bool {
	if value, ok := os.LookupEnv(key); ok {
		if b, err := strconv.ParseBool(value); err == nil {
			return b
		}
	}
	return fallback
}
