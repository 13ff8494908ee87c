package repository

import (
	"context"
	"fmt"
	"strings"

	"github.com/fekuna/omnipos-storefront-service/internal/inventory/dto"
	"github.com/fekuna/omnipos-storefront-service/internal/model"
	productRepo "github.com/fekuna/omnipos-storefront-service/internal/product/repository"
	"github.com/jmoiron/sqlx"
)

const updateColumns = `id, product_id, product_name, current_balance, update_quantity, new_balance,
        reason, date, shift, updated_by, updated_at`

type SQLiteRepository struct {
	DB *sqlx.DB
}

func NewSQLiteRepository(db *sqlx.DB) *SQLiteRepository {
	return &SQLiteRepository{DB: db}
}

func (r *SQLiteRepository) AppendWithStock(ctx context.Context, u *model.StockUpdate) error {
	tx, err := r.DB.BeginTxx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	// 1. Product stock
	if err := productRepo.UpdateStockTx(ctx, tx, u.ProductID, u.NewBalance, u.UpdatedAt); err != nil {
		return err
	}

	// 2. Ledger entry
	query := `
        INSERT INTO stock_updates (` + updateColumns + `)
        VALUES (:id, :product_id, :product_name, :current_balance, :update_quantity, :new_balance,
                :reason, :date, :shift, :updated_by, :updated_at)
    `
	if _, err := tx.NamedExecContext(ctx, query, u); err != nil {
		return fmt.Errorf("failed to append stock update: %w", err)
	}

	return tx.Commit()
}

func (r *SQLiteRepository) ListUpdates(ctx context.Context, f *dto.UpdateFilters) ([]model.StockUpdate, int, error) {
	if f == nil {
		f = &dto.UpdateFilters{}
	}

	conditions := []string{}
	args := []interface{}{}

	if f.ProductID != "" {
		conditions = append(conditions, "product_id = ?")
		args = append(args, f.ProductID)
	}

	whereClause := ""
	if len(conditions) > 0 {
		whereClause = " WHERE " + strings.Join(conditions, " AND ")
	}

	var count int
	if err := r.DB.GetContext(ctx, &count, "SELECT count(*) FROM stock_updates"+whereClause, args...); err != nil {
		return nil, 0, err
	}

	query := "SELECT " + updateColumns + " FROM stock_updates" + whereClause + " ORDER BY seq DESC"
	if f.PageSize > 0 {
		page := f.Page
		if page < 1 {
			page = 1
		}
		query += fmt.Sprintf(" LIMIT %d OFFSET %d", f.PageSize, (page-1)*f.PageSize)
	}

	updates := []model.StockUpdate{}
	if err := r.DB.SelectContext(ctx, &updates, query, args...); err != nil {
		return nil, 0, err
	}
	return updates, count, nil
}
