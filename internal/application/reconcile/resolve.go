package reconcile

import (
	"context"
	"strings"

	"github.com/Arikan-Bt/CWI-New-sub002/internal/domain/repository"
)

// NormalizeSKU trims and upper-cases a product code. Lookup maps are keyed
// the same way; matching is exact after normalization, never fuzzy.
func NormalizeSKU(code string) string {
	return strings.ToUpper(strings.TrimSpace(code))
}

// NormalizeLabel trims and lower-cases a warehouse label for case-insensitive
// name/code matching.
func NormalizeLabel(label string) string {
	return strings.ToLower(strings.TrimSpace(label))
}

// WarehouseResolution is the per-request warehouse context: the pre-fetched
// label map plus the default warehouse, resolved once up front and threaded
// through the batch instead of re-queried per row.
type WarehouseResolution struct {
	byLabel   map[string]string
	defaultID string
}

// Resolve matches a label against the pre-fetched map. Empty labels and
// misses both land on the default warehouse; ok reports whether the label
// itself matched (callers warn on a miss, silently default on empty).
func (r *WarehouseResolution) Resolve(label string) (id string, ok bool) {
	if strings.TrimSpace(label) == "" {
		return r.defaultID, true
	}
	if id, found := r.byLabel[NormalizeLabel(label)]; found {
		return id, true
	}
	return r.defaultID, false
}

// DefaultID returns the request's default warehouse.
func (r *WarehouseResolution) DefaultID() string {
	return r.defaultID
}

// ResolveWarehouses batch-resolves the distinct labels of a request and the
// default warehouse in two round trips.
func ResolveWarehouses(ctx context.Context, dir repository.WarehouseDirectory, labels []string) (*WarehouseResolution, error) {
	distinct := make([]string, 0, len(labels))
	seen := make(map[string]struct{}, len(labels))
	for _, l := range labels {
		n := NormalizeLabel(l)
		if n == "" {
			continue
		}
		if _, dup := seen[n]; dup {
			continue
		}
		seen[n] = struct{}{}
		distinct = append(distinct, n)
	}

	byLabel := map[string]string{}
	if len(distinct) > 0 {
		m, err := dir.ResolveByNameOrCode(ctx, distinct)
		if err != nil {
			return nil, err
		}
		byLabel = m
	}

	defaultID, err := dir.DefaultWarehouseID(ctx)
	if err != nil {
		return nil, err
	}
	return &WarehouseResolution{byLabel: byLabel, defaultID: defaultID}, nil
}
