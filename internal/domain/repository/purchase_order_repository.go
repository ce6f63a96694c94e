package repository

import "github.com/Arikan-Bt/CWI-New-sub002/internal/domain/entity"

// PurchaseOrderRepository is the persistence port for purchase orders (DIP).
// Reconciliation only ever writes the items' received counters.
type PurchaseOrderRepository interface {
	GetByID(id string) (*entity.PurchaseOrder, error)
	GetItem(itemID string) (*entity.PurchaseOrderItem, error)
	GetItemsByOrderID(orderID string) ([]*entity.PurchaseOrderItem, error)
	UpdateItemReceived(item *entity.PurchaseOrderItem) error
}
