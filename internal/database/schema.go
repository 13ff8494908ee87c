package database

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
)

var schema = []string{
	`CREATE TABLE IF NOT EXISTS products (
        seq         INTEGER PRIMARY KEY AUTOINCREMENT,
        id          TEXT NOT NULL UNIQUE,
        name        TEXT NOT NULL,
        price       TEXT NOT NULL,
        image_url   TEXT NOT NULL DEFAULT '',
        stock       INTEGER NOT NULL CHECK (stock >= 0),
        description TEXT,
        created_at  TIMESTAMP NOT NULL,
        updated_at  TIMESTAMP NOT NULL
    )`,
	`CREATE TABLE IF NOT EXISTS orders (
        seq            INTEGER PRIMARY KEY AUTOINCREMENT,
        id             TEXT NOT NULL UNIQUE,
        total          TEXT NOT NULL,
        status         TEXT NOT NULL,
        date           TIMESTAMP NOT NULL,
        payment_method TEXT NOT NULL,
        customer_name  TEXT,
        customer_email TEXT
    )`,
	`CREATE TABLE IF NOT EXISTS order_items (
        order_id            TEXT NOT NULL REFERENCES orders(id),
        line_no             INTEGER NOT NULL,
        product_id          TEXT NOT NULL,
        product_name        TEXT NOT NULL,
        product_price       TEXT NOT NULL,
        product_image_url   TEXT NOT NULL DEFAULT '',
        product_stock       INTEGER NOT NULL,
        product_description TEXT,
        quantity            INTEGER NOT NULL,
        PRIMARY KEY (order_id, line_no)
    )`,
	`CREATE TABLE IF NOT EXISTS stock_updates (
        seq             INTEGER PRIMARY KEY AUTOINCREMENT,
        id              TEXT NOT NULL UNIQUE,
        product_id      TEXT NOT NULL REFERENCES products(id),
        product_name    TEXT NOT NULL,
        current_balance INTEGER NOT NULL,
        update_quantity INTEGER NOT NULL,
        new_balance     INTEGER NOT NULL,
        reason          TEXT NOT NULL,
        date            TIMESTAMP NOT NULL,
        shift           TEXT NOT NULL,
        updated_by      TEXT NOT NULL,
        updated_at      TIMESTAMP NOT NULL
    )`,
	`CREATE INDEX IF NOT EXISTS idx_stock_updates_product ON stock_updates (product_id)`,
}

// Migrate creates the storefront tables. It is idempotent.
func Migrate(ctx context.Context, db *sqlx.DB) error {
	for i, stmt := range schema {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("migration %d: %w", i, err)
		}
	}
	return nil
}
