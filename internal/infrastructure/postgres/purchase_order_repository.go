package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/Arikan-Bt/CWI-New-sub002/internal/domain/entity"
	"github.com/Arikan-Bt/CWI-New-sub002/internal/domain/repository"
)

var _ repository.PurchaseOrderRepository = (*PurchaseOrderRepo)(nil)

// PurchaseOrderRepo PostgreSQL implementation (usable with pool or tx).
// Orders and ordered quantities are master data here; only the received
// counters are written.
type PurchaseOrderRepo struct {
	q Querier
}

// NewPurchaseOrderRepository builds the adapter. Pass pool or tx (Querier).
func NewPurchaseOrderRepository(q Querier) *PurchaseOrderRepo {
	return &PurchaseOrderRepo{q: q}
}

// GetByID returns one order header, nil when absent.
func (r *PurchaseOrderRepo) GetByID(id string) (*entity.PurchaseOrder, error) {
	query := `SELECT id, vendor_id, order_no, date, created_at FROM purchase_orders WHERE id = $1`
	var po entity.PurchaseOrder
	err := r.q.QueryRow(context.Background(), query, id).Scan(
		&po.ID, &po.VendorID, &po.OrderNo, &po.Date, &po.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get purchase order: %w", err)
	}
	return &po, nil
}

const purchaseOrderItemColumns = "id, purchase_order_id, product_id, ordered_quantity, received_quantity, unit_price"

// GetItem returns one order line with a row lock, nil when absent. The lock
// keeps concurrent receipts from both reading the same received counter.
func (r *PurchaseOrderRepo) GetItem(itemID string) (*entity.PurchaseOrderItem, error) {
	query := `SELECT ` + purchaseOrderItemColumns + ` FROM purchase_order_items WHERE id = $1 FOR UPDATE`
	var it entity.PurchaseOrderItem
	err := r.q.QueryRow(context.Background(), query, itemID).Scan(
		&it.ID, &it.PurchaseOrderID, &it.ProductID, &it.OrderedQuantity, &it.ReceivedQuantity, &it.UnitPrice,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get purchase order item: %w", err)
	}
	return &it, nil
}

// GetItemsByOrderID returns the lines of one order.
func (r *PurchaseOrderRepo) GetItemsByOrderID(orderID string) ([]*entity.PurchaseOrderItem, error) {
	query := `SELECT ` + purchaseOrderItemColumns + ` FROM purchase_order_items WHERE purchase_order_id = $1 ORDER BY id`
	rows, err := r.q.Query(context.Background(), query, orderID)
	if err != nil {
		return nil, fmt.Errorf("list purchase order items: %w", err)
	}
	defer rows.Close()

	var out []*entity.PurchaseOrderItem
	for rows.Next() {
		var it entity.PurchaseOrderItem
		if err := rows.Scan(
			&it.ID, &it.PurchaseOrderID, &it.ProductID, &it.OrderedQuantity, &it.ReceivedQuantity, &it.UnitPrice,
		); err != nil {
			return nil, fmt.Errorf("scan purchase order item: %w", err)
		}
		out = append(out, &it)
	}
	return out, rows.Err()
}

// UpdateItemReceived writes the cumulative received counter.
func (r *PurchaseOrderRepo) UpdateItemReceived(item *entity.PurchaseOrderItem) error {
	query := `UPDATE purchase_order_items SET received_quantity = $2 WHERE id = $1`
	tag, err := r.q.Exec(context.Background(), query, item.ID, item.ReceivedQuantity)
	if err != nil {
		return fmt.Errorf("update received quantity: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("update received quantity: item %s not found", item.ID)
	}
	return nil
}
