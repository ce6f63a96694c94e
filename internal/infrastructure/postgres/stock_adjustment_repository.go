package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/Arikan-Bt/CWI-New-sub002/internal/domain/entity"
	"github.com/Arikan-Bt/CWI-New-sub002/internal/domain/repository"
)

var _ repository.StockAdjustmentRepository = (*StockAdjustmentRepo)(nil)

// StockAdjustmentRepo PostgreSQL implementation (usable with pool or tx).
type StockAdjustmentRepo struct {
	q Querier
}

// NewStockAdjustmentRepository builds the adapter. Pass pool or tx (Querier).
func NewStockAdjustmentRepository(q Querier) *StockAdjustmentRepo {
	return &StockAdjustmentRepo{q: q}
}

// Create persists the adjustment header.
func (r *StockAdjustmentRepo) Create(a *entity.StockAdjustment) error {
	if a.ID == "" {
		a.ID = uuid.New().String()
	}
	query := `
		INSERT INTO stock_adjustments (id, date, description, created_at)
		VALUES ($1, $2, $3, $4)`
	_, err := r.q.Exec(context.Background(), query, a.ID, a.Date, nullIfEmpty(a.Description), a.CreatedAt)
	if err != nil {
		return fmt.Errorf("create stock adjustment: %w", err)
	}
	return nil
}

// CreateItem persists one corrected line.
func (r *StockAdjustmentRepo) CreateItem(it *entity.StockAdjustmentItem) error {
	if it.ID == "" {
		it.ID = uuid.New().String()
	}
	query := `
		INSERT INTO stock_adjustment_items
			(id, adjustment_id, product_id, warehouse_id, old_quantity, new_quantity,
			 price, currency, shelf_number, pack_list, receiving_no, supplier)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)`
	_, err := r.q.Exec(context.Background(), query,
		it.ID, it.AdjustmentID, it.ProductID, it.WarehouseID, it.OldQuantity, it.NewQuantity,
		it.Price, nullIfEmpty(it.Currency), nullIfEmpty(it.ShelfNumber),
		nullIfEmpty(it.PackList), nullIfEmpty(it.ReceivingNo), nullIfEmpty(it.Supplier),
	)
	if err != nil {
		return fmt.Errorf("create stock adjustment item: %w", err)
	}
	return nil
}

// GetByID returns one header, nil when absent.
func (r *StockAdjustmentRepo) GetByID(id string) (*entity.StockAdjustment, error) {
	query := `SELECT id, date, description, created_at FROM stock_adjustments WHERE id = $1`
	var a entity.StockAdjustment
	var desc *string
	err := r.q.QueryRow(context.Background(), query, id).Scan(&a.ID, &a.Date, &desc, &a.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get stock adjustment: %w", err)
	}
	if desc != nil {
		a.Description = *desc
	}
	return &a, nil
}

// GetItemsByAdjustmentID returns the lines of one adjustment in insert order.
func (r *StockAdjustmentRepo) GetItemsByAdjustmentID(adjustmentID string) ([]*entity.StockAdjustmentItem, error) {
	query := `
		SELECT id, adjustment_id, product_id, warehouse_id, old_quantity, new_quantity,
		       price, currency, shelf_number, pack_list, receiving_no, supplier
		FROM stock_adjustment_items WHERE adjustment_id = $1 ORDER BY id`
	rows, err := r.q.Query(context.Background(), query, adjustmentID)
	if err != nil {
		return nil, fmt.Errorf("list stock adjustment items: %w", err)
	}
	defer rows.Close()

	var out []*entity.StockAdjustmentItem
	for rows.Next() {
		var it entity.StockAdjustmentItem
		var currency, shelf, pack, recvNo, supplier *string
		if err := rows.Scan(
			&it.ID, &it.AdjustmentID, &it.ProductID, &it.WarehouseID, &it.OldQuantity, &it.NewQuantity,
			&it.Price, &currency, &shelf, &pack, &recvNo, &supplier,
		); err != nil {
			return nil, fmt.Errorf("scan stock adjustment item: %w", err)
		}
		if currency != nil {
			it.Currency = *currency
		}
		if shelf != nil {
			it.ShelfNumber = *shelf
		}
		if pack != nil {
			it.PackList = *pack
		}
		if recvNo != nil {
			it.ReceivingNo = *recvNo
		}
		if supplier != nil {
			it.Supplier = *supplier
		}
		out = append(out, &it)
	}
	return out, rows.Err()
}
