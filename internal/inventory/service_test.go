package inventory

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/openbooks-dev/openbooks/internal/model"
	"github.com/openbooks-dev/openbooks/internal/store"
	"github.com/openbooks-dev/openbooks/internal/store/memory"
)

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func setup(t *testing.T) (*Service, model.InventoryItem, model.Warehouse) {
	t.Helper()
	svc := NewService(memory.New())

	item, err := svc.AddItem("WID-1", "Widget", dec("9.99"), dec("10"))
	require.NoError(t, err)
	wh, err := svc.AddWarehouse("Main", "Pune", "")
	require.NoError(t, err)
	return svc, item, wh
}

func TestAddItemValidation(t *testing.T) {
	svc, _, _ := setup(t)

	_, err := svc.AddItem("", "No SKU", dec("1.00"), decimal.Zero)
	require.Error(t, err)

	_, err = svc.AddItem("WID-2", "  ", dec("1.00"), decimal.Zero)
	require.Error(t, err)

	_, err = svc.AddItem("WID-2", "Negative", dec("-1.00"), decimal.Zero)
	require.Error(t, err)

	_, err = svc.AddItem("wid-1", "Duplicate SKU", dec("1.00"), decimal.Zero)
	require.Error(t, err, "SKU comparison is case-insensitive")
}

func TestAdjustUpdatesStockAndLedger(t *testing.T) {
	svc, item, wh := setup(t)

	res, err := svc.Adjust(item.ID, wh.ID, dec("5"), "purchase")
	require.NoError(t, err)
	assert.True(t, res.NewQuantity.Equal(dec("5")))
	assert.False(t, res.Negative)

	res, err = svc.Adjust(item.ID, wh.ID, dec("-2"), "sale")
	require.NoError(t, err)
	assert.True(t, res.NewQuantity.Equal(dec("3")))

	got, err := svc.ItemBySKU("WID-1")
	require.NoError(t, err)
	assert.True(t, got.Stock[wh.ID].Equal(dec("3")))

	ledger, err := svc.LedgerFor(item.ID)
	require.NoError(t, err)
	require.Len(t, ledger, 2)
	assert.Equal(t, "purchase", ledger[0].Reference)
	assert.True(t, ledger[1].QuantityDelta.Equal(dec("-2")))
}

func TestAdjustAllowsNegativeStock(t *testing.T) {
	svc, item, wh := setup(t)

	// Oversell: no floor, but the result is flagged.
	res, err := svc.Adjust(item.ID, wh.ID, dec("-4"), "oversell")
	require.NoError(t, err)
	assert.True(t, res.Negative)
	assert.True(t, res.NewQuantity.Equal(dec("-4")))

	ledger, err := svc.LedgerFor(item.ID)
	require.NoError(t, err)
	require.Len(t, ledger, 1, "the adjustment was recorded, not blocked")
}

func TestAdjustUnknownTargets(t *testing.T) {
	svc, item, wh := setup(t)

	_, err := svc.Adjust("missing", wh.ID, dec("1"), "x")
	assert.ErrorIs(t, err, store.ErrNotFound)

	_, err = svc.Adjust(item.ID, "missing", dec("1"), "x")
	assert.ErrorIs(t, err, store.ErrNotFound)

	_, err = svc.Adjust(item.ID, wh.ID, decimal.Zero, "x")
	require.Error(t, err, "zero delta is meaningless")
}

func TestLedgerSurvivesItemDeletion(t *testing.T) {
	svc, item, wh := setup(t)

	_, err := svc.Adjust(item.ID, wh.ID, dec("5"), "purchase")
	require.NoError(t, err)

	require.NoError(t, svc.repo.DeleteItem(item.ID))

	ledger, err := svc.LedgerFor(item.ID)
	require.NoError(t, err)
	require.Len(t, ledger, 1, "audit trail outlives the item")
}
