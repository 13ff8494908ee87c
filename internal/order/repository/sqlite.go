package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/fekuna/omnipos-storefront-service/internal/model"
	"github.com/fekuna/omnipos-storefront-service/internal/order/dto"
	"github.com/jmoiron/sqlx"
	"github.com/shopspring/decimal"
)

const orderColumns = `id, total, status, date, payment_method, customer_name, customer_email`

// orderItemRow is the frozen product snapshot of one order line.
type orderItemRow struct {
	OrderID            string          `db:"order_id"`
	LineNo             int             `db:"line_no"`
	ProductID          string          `db:"product_id"`
	ProductName        string          `db:"product_name"`
	ProductPrice       decimal.Decimal `db:"product_price"`
	ProductImageURL    string          `db:"product_image_url"`
	ProductStock       int             `db:"product_stock"`
	ProductDescription *string         `db:"product_description"`
	Quantity           int             `db:"quantity"`
}

func (row orderItemRow) toLine() model.CartLine {
	return model.CartLine{
		Product: model.Product{
			BaseModel:   model.BaseModel{ID: row.ProductID},
			Name:        row.ProductName,
			Price:       row.ProductPrice,
			ImageURL:    row.ProductImageURL,
			Stock:       row.ProductStock,
			Description: row.ProductDescription,
		},
		Quantity: row.Quantity,
	}
}

type SQLiteRepository struct {
	DB *sqlx.DB
}

func NewSQLiteRepository(db *sqlx.DB) *SQLiteRepository {
	return &SQLiteRepository{DB: db}
}

func (r *SQLiteRepository) Create(ctx context.Context, o *model.Order) error {
	tx, err := r.DB.BeginTxx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	// 1. Order header
	insertOrder := `
        INSERT INTO orders (` + orderColumns + `)
        VALUES (:id, :total, :status, :date, :payment_method, :customer_name, :customer_email)
    `
	if _, err := tx.NamedExecContext(ctx, insertOrder, o); err != nil {
		return fmt.Errorf("failed to insert order: %w", err)
	}

	// 2. Item snapshots
	insertItem := `
        INSERT INTO order_items (
            order_id, line_no, product_id, product_name, product_price,
            product_image_url, product_stock, product_description, quantity
        )
        VALUES (
            :order_id, :line_no, :product_id, :product_name, :product_price,
            :product_image_url, :product_stock, :product_description, :quantity
        )
    `
	for i, item := range o.Items {
		row := orderItemRow{
			OrderID:            o.ID,
			LineNo:             i,
			ProductID:          item.Product.ID,
			ProductName:        item.Product.Name,
			ProductPrice:       item.Product.Price,
			ProductImageURL:    item.Product.ImageURL,
			ProductStock:       item.Product.Stock,
			ProductDescription: item.Product.Description,
			Quantity:           item.Quantity,
		}
		if _, err := tx.NamedExecContext(ctx, insertItem, row); err != nil {
			return fmt.Errorf("failed to insert order item: %w", err)
		}
	}

	return tx.Commit()
}

func (r *SQLiteRepository) FindByID(ctx context.Context, id string) (*model.Order, error) {
	var o model.Order
	query := `SELECT ` + orderColumns + ` FROM orders WHERE id = ? LIMIT 1`
	if err := r.DB.GetContext(ctx, &o, query, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}

	orders := []model.Order{o}
	if err := r.attachItems(ctx, orders); err != nil {
		return nil, err
	}
	return &orders[0], nil
}

func (r *SQLiteRepository) FindAll(ctx context.Context, f *dto.OrderFilters) ([]model.Order, int, error) {
	if f == nil {
		f = &dto.OrderFilters{}
	}

	conditions := []string{}
	args := []interface{}{}

	if q := strings.TrimSpace(f.SearchQuery); q != "" {
		like := "%" + strings.ToLower(q) + "%"
		conditions = append(conditions, `(LOWER(id) LIKE ? OR EXISTS (
            SELECT 1 FROM order_items oi WHERE oi.order_id = orders.id AND LOWER(oi.product_name) LIKE ?
        ))`)
		args = append(args, like, like)
	}
	if f.Status != "" {
		conditions = append(conditions, "status = ?")
		args = append(args, string(f.Status))
	}

	whereClause := ""
	if len(conditions) > 0 {
		whereClause = " WHERE " + strings.Join(conditions, " AND ")
	}

	var count int
	if err := r.DB.GetContext(ctx, &count, "SELECT count(*) FROM orders"+whereClause, args...); err != nil {
		return nil, 0, err
	}

	// History is newest-first.
	query := "SELECT " + orderColumns + " FROM orders" + whereClause + " ORDER BY seq DESC"
	if f.PageSize > 0 {
		page := f.Page
		if page < 1 {
			page = 1
		}
		query += fmt.Sprintf(" LIMIT %d OFFSET %d", f.PageSize, (page-1)*f.PageSize)
	}

	orders := []model.Order{}
	if err := r.DB.SelectContext(ctx, &orders, query, args...); err != nil {
		return nil, 0, err
	}
	if err := r.attachItems(ctx, orders); err != nil {
		return nil, 0, err
	}
	return orders, count, nil
}

func (r *SQLiteRepository) attachItems(ctx context.Context, orders []model.Order) error {
	if len(orders) == 0 {
		return nil
	}

	ids := make([]string, len(orders))
	for i, o := range orders {
		ids[i] = o.ID
	}

	query, args, err := sqlx.In(`
        SELECT * FROM order_items
        WHERE order_id IN (?)
        ORDER BY order_id, line_no
    `, ids)
	if err != nil {
		return err
	}
	query = r.DB.Rebind(query)

	var rows []orderItemRow
	if err := r.DB.SelectContext(ctx, &rows, query, args...); err != nil {
		return err
	}

	byOrder := make(map[string][]model.CartLine, len(orders))
	for _, row := range rows {
		byOrder[row.OrderID] = append(byOrder[row.OrderID], row.toLine())
	}
	for i := range orders {
		orders[i].Items = byOrder[orders[i].ID]
		if orders[i].Items == nil {
			orders[i].Items = []model.CartLine{}
		}
	}
	return nil
}
