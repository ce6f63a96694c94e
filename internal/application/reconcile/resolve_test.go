package reconcile_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Arikan-Bt/CWI-New-sub002/internal/application/reconcile"
)

func TestNormalizeSKU(t *testing.T) {
	assert.Equal(t, "ABC123", reconcile.NormalizeSKU("  abc123 "))
	assert.Equal(t, "ABC123", reconcile.NormalizeSKU("ABC123"))
	assert.Equal(t, "", reconcile.NormalizeSKU("   "))
}

func TestNormalizeLabel(t *testing.T) {
	assert.Equal(t, "main depot", reconcile.NormalizeLabel(" Main Depot "))
	assert.Equal(t, "wh2", reconcile.NormalizeLabel("WH2"))
}

func TestResolveWarehouses(t *testing.T) {
	dir := &memDirectory{
		byLabel:   map[string]string{"main depot": "wh-1", "wh2": "wh-2"},
		defaultID: "wh-default",
	}
	res, err := reconcile.ResolveWarehouses(context.Background(), dir,
		[]string{"Main Depot", " main depot ", "WH2", "", "unknown"})
	require.NoError(t, err)

	id, ok := res.Resolve("Main Depot")
	assert.True(t, ok)
	assert.Equal(t, "wh-1", id)

	id, ok = res.Resolve("wh2")
	assert.True(t, ok)
	assert.Equal(t, "wh-2", id)

	// Empty label defaults without counting as a miss.
	id, ok = res.Resolve("   ")
	assert.True(t, ok)
	assert.Equal(t, "wh-default", id)

	// Unknown label defaults but reports the miss for the caller's warning.
	id, ok = res.Resolve("unknown")
	assert.False(t, ok)
	assert.Equal(t, "wh-default", id)

	assert.Equal(t, "wh-default", res.DefaultID())
}
