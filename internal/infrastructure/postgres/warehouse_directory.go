package postgres

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"

	"github.com/Arikan-Bt/CWI-New-sub002/internal/domain"
	"github.com/Arikan-Bt/CWI-New-sub002/internal/domain/entity"
	"github.com/Arikan-Bt/CWI-New-sub002/internal/domain/repository"
)

var _ repository.WarehouseDirectory = (*WarehouseDirectory)(nil)

// WarehouseDirectory resolves warehouse labels against the warehouses table.
// Read-only master data. fallbackID is the configured last resort of the
// default chain (explicit default flag, then first active, then fallbackID);
// it may be empty, in which case an empty directory is an error.
type WarehouseDirectory struct {
	q          Querier
	fallbackID string
}

// NewWarehouseDirectory builds the adapter. Pass pool or tx (Querier).
func NewWarehouseDirectory(q Querier, fallbackID string) *WarehouseDirectory {
	return &WarehouseDirectory{q: q, fallbackID: fallbackID}
}

// ResolveByNameOrCode matches labels case-insensitively against warehouse
// name or code, one round trip. Unmatched labels are absent from the map.
func (d *WarehouseDirectory) ResolveByNameOrCode(ctx context.Context, labels []string) (map[string]string, error) {
	out := make(map[string]string, len(labels))
	if len(labels) == 0 {
		return out, nil
	}
	lower := make([]string, 0, len(labels))
	for _, l := range labels {
		lower = append(lower, strings.ToLower(strings.TrimSpace(l)))
	}
	query := `
		SELECT LOWER(TRIM(name)), LOWER(TRIM(code)), id
		FROM warehouses
		WHERE LOWER(TRIM(name)) = ANY($1) OR LOWER(TRIM(code)) = ANY($1)`
	rows, err := d.q.Query(ctx, query, lower)
	if err != nil {
		return nil, fmt.Errorf("resolve warehouses: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var name, code, id string
		if err := rows.Scan(&name, &code, &id); err != nil {
			return nil, fmt.Errorf("scan warehouse: %w", err)
		}
		// Key the map by whichever label the caller asked with.
		for _, l := range lower {
			if l == name || l == code {
				out[l] = id
			}
		}
	}
	return out, rows.Err()
}

// DefaultWarehouseID resolves the default chain in one query: the explicit
// default flag wins, then the first active warehouse. The configured
// fallback id applies only when the table yields nothing.
func (d *WarehouseDirectory) DefaultWarehouseID(ctx context.Context) (string, error) {
	query := `
		SELECT id FROM warehouses
		WHERE is_default = true OR is_active = true
		ORDER BY is_default DESC, created_at ASC
		LIMIT 1`
	var id string
	err := d.q.QueryRow(ctx, query).Scan(&id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			if d.fallbackID != "" {
				return d.fallbackID, nil
			}
			return "", fmt.Errorf("%w: no default warehouse", domain.ErrNotFound)
		}
		return "", fmt.Errorf("resolve default warehouse: %w", err)
	}
	return id, nil
}

// List returns warehouses for read-only display.
func (d *WarehouseDirectory) List(ctx context.Context, limit, offset int) ([]*entity.Warehouse, error) {
	query := `
		SELECT id, name, code, is_default, is_active, created_at
		FROM warehouses ORDER BY name LIMIT $1 OFFSET $2`
	rows, err := d.q.Query(ctx, query, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list warehouses: %w", err)
	}
	defer rows.Close()

	var out []*entity.Warehouse
	for rows.Next() {
		var w entity.Warehouse
		if err := rows.Scan(&w.ID, &w.Name, &w.Code, &w.IsDefault, &w.IsActive, &w.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan warehouse: %w", err)
		}
		out = append(out, &w)
	}
	return out, rows.Err()
}
