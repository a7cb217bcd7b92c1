package collab

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeSupplierFile(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "suppliers.json")
	data := `{
		"SUP001": {"name": "Acme", "status": "approved", "rating": 4.7, "max_order_value": 500000},
		"SUP004": {"name": "Rapid", "status": "pending", "rating": 3.1, "max_order_value": 75000}
	}`
	require.NoError(t, os.WriteFile(path, []byte(data), 0o644))
	return path
}

func TestValidateSupplier(t *testing.T) {
	dir, err := NewSupplierDirectory(writeSupplierFile(t))
	require.NoError(t, err)
	ctx := context.Background()

	r, err := dir.ValidateSupplier(ctx, "SUP001")
	require.NoError(t, err)
	assert.True(t, r.Bool("valid"))
	assert.Equal(t, "Supplier SUP001 validated successfully", r.Message())

	r, err = dir.ValidateSupplier(ctx, "SUP404")
	require.NoError(t, err)
	assert.False(t, r.Bool("valid"))
	assert.Equal(t, "Supplier SUP404 not found", r.Message())

	r, err = dir.ValidateSupplier(ctx, "SUP004")
	require.NoError(t, err)
	assert.False(t, r.Bool("valid"))
	assert.Equal(t, "Supplier SUP004 is not approved (status: pending)", r.Message())
}

func TestCheckCapacity(t *testing.T) {
	dir, err := NewSupplierDirectory(writeSupplierFile(t))
	require.NoError(t, err)
	ctx := context.Background()

	r, err := dir.CheckCapacity(ctx, "SUP001", 100000)
	require.NoError(t, err)
	assert.True(t, r.Bool("capacity_ok"))
	assert.Equal(t, 500000.0, r.Float("max_capacity"))
	assert.Equal(t, 100000.0, r.Float("requested"))

	r, err = dir.CheckCapacity(ctx, "SUP001", 600000)
	require.NoError(t, err)
	assert.False(t, r.Bool("capacity_ok"))

	// Exactly at the limit is within capacity.
	r, err = dir.CheckCapacity(ctx, "SUP001", 500000)
	require.NoError(t, err)
	assert.True(t, r.Bool("capacity_ok"))

	r, err = dir.CheckCapacity(ctx, "SUP404", 100)
	require.NoError(t, err)
	assert.False(t, r.Bool("capacity_ok"))
	assert.Equal(t, 0.0, r.Float("max_capacity"))
}

func TestNewSupplierDirectoryMissingFile(t *testing.T) {
	_, err := NewSupplierDirectory(filepath.Join(t.TempDir(), "missing.json"))
	assert.Error(t, err)
}
