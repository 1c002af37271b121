package memory

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/openbooks-dev/openbooks/internal/model"
	"github.com/openbooks-dev/openbooks/internal/store"
)

func TestAccountsCRUD(t *testing.T) {
	s := New()

	require.NoError(t, s.SaveAccount(model.Account{ID: 1010, Name: "Cash", Type: model.AccountTypeAsset, System: true}))
	require.NoError(t, s.SaveAccount(model.Account{ID: 5020, Name: "Software", Type: model.AccountTypeExpense}))

	accts, err := s.ListAccounts()
	require.NoError(t, err)
	require.Len(t, accts, 2)
	assert.Equal(t, 1010, accts[0].ID, "sorted by ID")

	err = s.DeleteAccount(1010)
	assert.ErrorIs(t, err, store.ErrSystemAccount)

	require.NoError(t, s.DeleteAccount(5020))
	err = s.DeleteAccount(5020)
	assert.ErrorIs(t, err, store.ErrNotFound)
}

func TestEntrySnapshotIsolation(t *testing.T) {
	s := New()
	entry := model.JournalEntry{
		ID:   "2025-01-001",
		Date: time.Date(2025, 1, 15, 0, 0, 0, 0, time.UTC),
		Lines: []model.JournalLine{
			{ID: "2025-01-001a", AccountID: 1010, Debit: decimal.NewFromInt(100)},
			{ID: "2025-01-001b", AccountID: 4010, Credit: decimal.NewFromInt(100)},
		},
	}
	require.NoError(t, s.AppendEntry(entry))

	// Mutating a returned snapshot must not leak into the store.
	got, err := s.ListEntries()
	require.NoError(t, err)
	got[0].Lines[0].AccountID = 9999

	again, err := s.ListEntries()
	require.NoError(t, err)
	assert.Equal(t, 1010, again[0].Lines[0].AccountID)
}

func TestStockLedgerAppendOrder(t *testing.T) {
	s := New()
	for i, ref := range []string{"first", "second", "third"} {
		require.NoError(t, s.AppendStockLedger(model.StockLedgerEntry{
			ID:            ref,
			Date:          time.Date(2025, 1, 1+i, 0, 0, 0, 0, time.UTC),
			QuantityDelta: decimal.NewFromInt(int64(i)),
			Reference:     ref,
		}))
	}
	ledger, err := s.ListStockLedger()
	require.NoError(t, err)
	require.Len(t, ledger, 3)
	assert.Equal(t, "first", ledger[0].Reference)
	assert.Equal(t, "third", ledger[2].Reference)
}

func TestItemStockMapIsolation(t *testing.T) {
	s := New()
	require.NoError(t, s.SaveItem(model.InventoryItem{
		ID:    "it1",
		SKU:   "WID-1",
		Stock: map[string]decimal.Decimal{"wh1": decimal.NewFromInt(5)},
	}))

	items, err := s.ListItems()
	require.NoError(t, err)
	items[0].Stock["wh1"] = decimal.NewFromInt(-100)

	again, err := s.ListItems()
	require.NoError(t, err)
	assert.True(t, again[0].Stock["wh1"].Equal(decimal.NewFromInt(5)))
}

func TestSettingsSingleton(t *testing.T) {
	s := New()
	set, err := s.Settings()
	require.NoError(t, err)
	assert.Empty(t, set.Profile.Name)

	require.NoError(t, s.SaveSettings(model.DefaultSettings("Acme")))
	set, err = s.Settings()
	require.NoError(t, err)
	assert.Equal(t, "Acme", set.Profile.Name)
	assert.Equal(t, "USD", set.Preferences.Currency)
}
