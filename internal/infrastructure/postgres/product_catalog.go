package postgres

import (
	"context"
	"fmt"
	"strings"

	"github.com/Arikan-Bt/CWI-New-sub002/internal/domain/repository"
)

var _ repository.ProductCatalogLookup = (*ProductCatalog)(nil)

// ProductCatalog resolves SKUs against the products table. Read-only: the
// catalog is master data owned elsewhere.
type ProductCatalog struct {
	q Querier
}

// NewProductCatalog builds the adapter. Pass pool or tx (Querier).
func NewProductCatalog(q Querier) *ProductCatalog {
	return &ProductCatalog{q: q}
}

// ResolveBySKU batch-resolves normalized SKUs in one round trip. Unmatched
// SKUs are absent from the map; matching is exact on UPPER(sku).
func (c *ProductCatalog) ResolveBySKU(ctx context.Context, skus []string) (map[string]repository.ProductRef, error) {
	out := make(map[string]repository.ProductRef, len(skus))
	if len(skus) == 0 {
		return out, nil
	}
	query := `
		SELECT UPPER(TRIM(sku)), id, name
		FROM products
		WHERE UPPER(TRIM(sku)) = ANY($1)`
	upper := make([]string, 0, len(skus))
	for _, s := range skus {
		upper = append(upper, strings.ToUpper(strings.TrimSpace(s)))
	}
	rows, err := c.q.Query(ctx, query, upper)
	if err != nil {
		return nil, fmt.Errorf("resolve products by sku: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var sku string
		var ref repository.ProductRef
		if err := rows.Scan(&sku, &ref.ID, &ref.Name); err != nil {
			return nil, fmt.Errorf("scan product ref: %w", err)
		}
		out[sku] = ref
	}
	return out, rows.Err()
}
