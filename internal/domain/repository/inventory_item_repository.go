package repository

import "github.com/Arikan-Bt/CWI-New-sub002/internal/domain/entity"

// InventoryItemRepository is the persistence port for per-warehouse stock
// positions (DIP). Missing rows read as zero quantities.
type InventoryItemRepository interface {
	Get(productID, warehouseID string) (*entity.InventoryItem, error)
	// GetForUpdate reads the row holding a row lock (SELECT ... FOR UPDATE)
	// so concurrent writers to the same (product, warehouse) serialize.
	GetForUpdate(productID, warehouseID string) (*entity.InventoryItem, error)
	Upsert(item *entity.InventoryItem) error
	List(productID, warehouseID string, limit, offset int) ([]*entity.InventoryItem, error)
}
