package collab

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeBudgetFile(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "budgets.json")
	data := `{
		"IT": {"name": "Information Technology", "allocated": 100000, "spent": 40000, "reserved": 10000, "fiscal_year": "2026"}
	}`
	require.NoError(t, os.WriteFile(path, []byte(data), 0o644))
	return path
}

func TestCheckAvailability(t *testing.T) {
	ledger, err := NewBudgetLedger(writeBudgetFile(t), zerolog.Nop())
	require.NoError(t, err)
	ctx := context.Background()

	// 100000 - 40000 - 10000 = 50000 available.
	r, err := ledger.CheckAvailability(ctx, "IT", 50000)
	require.NoError(t, err)
	assert.True(t, r.Bool("available"))
	assert.Equal(t, 50000.0, r.Float("amount_available"))

	r, err = ledger.CheckAvailability(ctx, "IT", 50001)
	require.NoError(t, err)
	assert.False(t, r.Bool("available"))

	r, err = ledger.CheckAvailability(ctx, "LEGAL", 100)
	require.NoError(t, err)
	assert.False(t, r.Bool("available"))
	assert.Equal(t, "Department LEGAL budget not found", r.Message())
}

func TestReserveMutatesAndPersists(t *testing.T) {
	path := writeBudgetFile(t)
	ledger, err := NewBudgetLedger(path, zerolog.Nop())
	require.NoError(t, err)
	ctx := context.Background()

	r, err := ledger.Reserve(ctx, "IT", 20000, "PO-1")
	require.NoError(t, err)
	assert.True(t, r.Bool("reserved"))
	assert.Equal(t, 30000.0, r.Float("new_reserved_total"))

	// Availability shrinks accordingly.
	check, err := ledger.CheckAvailability(ctx, "IT", 30001)
	require.NoError(t, err)
	assert.False(t, check.Bool("available"))

	// A fresh ledger sees the persisted reservation.
	reloaded, err := NewBudgetLedger(path, zerolog.Nop())
	require.NoError(t, err)
	check, err = reloaded.CheckAvailability(ctx, "IT", 30000)
	require.NoError(t, err)
	assert.True(t, check.Bool("available"))
	assert.Equal(t, 30000.0, check.Float("amount_available"))
}

func TestReserveRejectsOverdraft(t *testing.T) {
	ledger, err := NewBudgetLedger(writeBudgetFile(t), zerolog.Nop())
	require.NoError(t, err)

	r, err := ledger.Reserve(context.Background(), "IT", 60000, "PO-2")
	require.NoError(t, err)
	assert.False(t, r.Bool("reserved"))
	assert.Contains(t, r.Message(), "Insufficient budget")
}

func TestRelease(t *testing.T) {
	ledger, err := NewBudgetLedger(writeBudgetFile(t), zerolog.Nop())
	require.NoError(t, err)
	ctx := context.Background()

	r, err := ledger.Release(ctx, "IT", 5000, "PO-3")
	require.NoError(t, err)
	assert.True(t, r.Bool("released"))
	assert.Equal(t, 5000.0, r.Float("new_reserved_total"))

	// Only 5000 reserved now; releasing more is refused.
	r, err = ledger.Release(ctx, "IT", 6000, "PO-3")
	require.NoError(t, err)
	assert.False(t, r.Bool("released"))
	assert.Contains(t, r.Message(), "only $5000.00 reserved")
}
