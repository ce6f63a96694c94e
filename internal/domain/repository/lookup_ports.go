package repository

import (
	"context"

	"github.com/Arikan-Bt/CWI-New-sub002/internal/domain/entity"
)

// ProductRef is the slim identity a reconciler needs per resolved SKU.
type ProductRef struct {
	ID   string
	Name string
}

// ProductCatalogLookup batch-resolves normalized SKUs to product identities.
// Keys of the returned map are the normalized SKUs that matched; unmatched
// SKUs are simply absent.
type ProductCatalogLookup interface {
	ResolveBySKU(ctx context.Context, skus []string) (map[string]ProductRef, error)
}

// WarehouseDirectory batch-resolves warehouse labels and exposes default
// warehouse resolution. Labels match Name or Code, case-insensitively.
type WarehouseDirectory interface {
	ResolveByNameOrCode(ctx context.Context, labels []string) (map[string]string, error)
	// DefaultWarehouseID resolves the default chain: explicit default flag,
	// then first active warehouse.
	DefaultWarehouseID(ctx context.Context) (string, error)
	List(ctx context.Context, limit, offset int) ([]*entity.Warehouse, error)
}
