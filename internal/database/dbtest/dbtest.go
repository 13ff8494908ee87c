// Package dbtest opens an isolated, migrated in-memory database per test.
package dbtest

import (
	"context"
	"fmt"
	"testing"

	"github.com/fekuna/omnipos-storefront-service/internal/database"
	"github.com/fekuna/omnipos-storefront-service/pkg/database/sqlite"
	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
)

func New(tb testing.TB) *sqlx.DB {
	tb.Helper()

	db, err := sqlite.NewSQLite(&sqlite.Config{
		DSN:          fmt.Sprintf("file:test-%s?mode=memory&cache=shared", uuid.New().String()),
		MaxOpenConns: 1,
		MaxIdleConns: 1,
	})
	if err != nil {
		tb.Fatalf("open test database: %v", err)
	}
	tb.Cleanup(func() { db.Close() })

	if err := database.Migrate(context.Background(), db); err != nil {
		tb.Fatalf("migrate test database: %v", err)
	}
	return db
}
