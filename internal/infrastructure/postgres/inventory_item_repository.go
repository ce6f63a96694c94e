package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"

	"github.com/Arikan-Bt/CWI-New-sub002/internal/domain/entity"
	"github.com/Arikan-Bt/CWI-New-sub002/internal/domain/repository"
)

var _ repository.InventoryItemRepository = (*InventoryItemRepo)(nil)

// InventoryItemRepo PostgreSQL implementation (usable with pool or tx).
type InventoryItemRepo struct {
	q Querier
}

// NewInventoryItemRepository builds the adapter. Pass pool or tx (Querier).
func NewInventoryItemRepository(q Querier) *InventoryItemRepo {
	return &InventoryItemRepo{q: q}
}

const inventoryItemColumns = "product_id, warehouse_id, on_hand, reserved, shelf_number, updated_at"

func scanInventoryItem(row pgx.Row) (*entity.InventoryItem, error) {
	var it entity.InventoryItem
	var shelf *string
	err := row.Scan(&it.ProductID, &it.WarehouseID, &it.OnHand, &it.Reserved, &shelf, &it.UpdatedAt)
	if err != nil {
		return nil, err
	}
	if shelf != nil {
		it.ShelfNumber = *shelf
	}
	return &it, nil
}

// Get returns the current position, or a zero-quantity item when no row exists.
func (r *InventoryItemRepo) Get(productID, warehouseID string) (*entity.InventoryItem, error) {
	query := `
		SELECT ` + inventoryItemColumns + `
		FROM inventory_items WHERE product_id = $1 AND warehouse_id = $2`
	it, err := scanInventoryItem(r.q.QueryRow(context.Background(), query, productID, warehouseID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return emptyItem(productID, warehouseID), nil
		}
		return nil, fmt.Errorf("get inventory item: %w", err)
	}
	return it, nil
}

// GetForUpdate reads the position holding a row lock (SELECT ... FOR UPDATE).
// A missing row still reads as zero; the lock then materializes on insert.
func (r *InventoryItemRepo) GetForUpdate(productID, warehouseID string) (*entity.InventoryItem, error) {
	query := `
		SELECT ` + inventoryItemColumns + `
		FROM inventory_items WHERE product_id = $1 AND warehouse_id = $2
		FOR UPDATE`
	it, err := scanInventoryItem(r.q.QueryRow(context.Background(), query, productID, warehouseID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return emptyItem(productID, warehouseID), nil
		}
		return nil, fmt.Errorf("get inventory item for update: %w", err)
	}
	return it, nil
}

// Upsert inserts or updates the position for (product, warehouse).
func (r *InventoryItemRepo) Upsert(item *entity.InventoryItem) error {
	query := `
		INSERT INTO inventory_items (product_id, warehouse_id, on_hand, reserved, shelf_number, updated_at)
		VALUES ($1, $2, $3, $4, $5, now())
		ON CONFLICT (product_id, warehouse_id)
		DO UPDATE SET on_hand = EXCLUDED.on_hand, reserved = EXCLUDED.reserved,
			shelf_number = COALESCE(EXCLUDED.shelf_number, inventory_items.shelf_number),
			updated_at = now()`
	_, err := r.q.Exec(context.Background(), query,
		item.ProductID, item.WarehouseID, item.OnHand, item.Reserved, nullIfEmpty(item.ShelfNumber),
	)
	if err != nil {
		return fmt.Errorf("upsert inventory item: %w", err)
	}
	return nil
}

// List returns positions filtered by product and/or warehouse (empty = any).
func (r *InventoryItemRepo) List(productID, warehouseID string, limit, offset int) ([]*entity.InventoryItem, error) {
	query := `
		SELECT ` + inventoryItemColumns + `
		FROM inventory_items
		WHERE ($1 = '' OR product_id = $1) AND ($2 = '' OR warehouse_id = $2)
		ORDER BY product_id, warehouse_id
		LIMIT $3 OFFSET $4`
	rows, err := r.q.Query(context.Background(), query, productID, warehouseID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list inventory items: %w", err)
	}
	defer rows.Close()

	var items []*entity.InventoryItem
	for rows.Next() {
		it, err := scanInventoryItem(rows)
		if err != nil {
			return nil, fmt.Errorf("scan inventory item: %w", err)
		}
		items = append(items, it)
	}
	return items, rows.Err()
}

func emptyItem(productID, warehouseID string) *entity.InventoryItem {
	return &entity.InventoryItem{
		ProductID:   productID,
		WarehouseID: warehouseID,
		OnHand:      decimal.Zero,
		Reserved:    decimal.Zero,
	}
}
