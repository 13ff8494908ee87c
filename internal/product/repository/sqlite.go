package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/fekuna/omnipos-storefront-service/internal/model"
	"github.com/fekuna/omnipos-storefront-service/internal/product/dto"
	"github.com/jmoiron/sqlx"
)

const productColumns = `id, name, price, image_url, stock, description, created_at, updated_at`

type SQLiteRepository struct {
	DB *sqlx.DB
}

func NewSQLiteRepository(db *sqlx.DB) *SQLiteRepository {
	return &SQLiteRepository{DB: db}
}

func (r *SQLiteRepository) Create(ctx context.Context, p *model.Product) error {
	query := `
        INSERT INTO products (` + productColumns + `)
        VALUES (:id, :name, :price, :image_url, :stock, :description, :created_at, :updated_at)
    `
	_, err := r.DB.NamedExecContext(ctx, query, p)
	return err
}

func (r *SQLiteRepository) FindByID(ctx context.Context, id string) (*model.Product, error) {
	var p model.Product
	query := `SELECT ` + productColumns + ` FROM products WHERE id = ? LIMIT 1`
	err := r.DB.GetContext(ctx, &p, query, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &p, nil
}

func (r *SQLiteRepository) FindAll(ctx context.Context, f *dto.ProductFilters) ([]model.Product, int, error) {
	if f == nil {
		f = &dto.ProductFilters{}
	}

	conditions := []string{}
	args := []interface{}{}

	if q := strings.TrimSpace(f.SearchQuery); q != "" {
		like := "%" + strings.ToLower(q) + "%"
		conditions = append(conditions, "(LOWER(name) LIKE ? OR LOWER(COALESCE(description, '')) LIKE ?)")
		args = append(args, like, like)
	}
	if f.InStockOnly {
		conditions = append(conditions, "stock > 0")
	}

	whereClause := ""
	if len(conditions) > 0 {
		whereClause = " WHERE " + strings.Join(conditions, " AND ")
	}

	var count int
	if err := r.DB.GetContext(ctx, &count, "SELECT count(*) FROM products"+whereClause, args...); err != nil {
		return nil, 0, err
	}

	// Catalog order is insertion order.
	query := "SELECT " + productColumns + " FROM products" + whereClause + " ORDER BY seq ASC"
	if f.PageSize > 0 {
		page := f.Page
		if page < 1 {
			page = 1
		}
		query += fmt.Sprintf(" LIMIT %d OFFSET %d", f.PageSize, (page-1)*f.PageSize)
	}

	products := []model.Product{}
	if err := r.DB.SelectContext(ctx, &products, query, args...); err != nil {
		return nil, 0, err
	}
	return products, count, nil
}

func (r *SQLiteRepository) UpdateStock(ctx context.Context, id string, stock int, at time.Time) error {
	return UpdateStockTx(ctx, r.DB, id, stock, at)
}

// UpdateStockTx runs the stock write on any sqlx executor, so callers can
// make it part of a wider transaction.
func UpdateStockTx(ctx context.Context, exec sqlx.ExecerContext, id string, stock int, at time.Time) error {
	if stock < 0 {
		return model.ErrNegativeStock
	}

	res, err := exec.ExecContext(ctx, `UPDATE products SET stock = ?, updated_at = ? WHERE id = ?`, stock, at, id)
	if err != nil {
		return fmt.Errorf("failed to update stock: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return model.ErrProductNotFound
	}
	return nil
}
