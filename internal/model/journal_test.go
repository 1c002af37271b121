package model

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestLineEntryGroup(t *testing.T) {
	tests := []struct {
		lineID string
		want   string
	}{
		{"2025-01-001a", "2025-01-001"},
		{"2025-01-001b", "2025-01-001"},
		{"2025-01-001", "2025-01-001"},
		{"2025-12-099abc", "2025-12-099"},
		{"", ""},
	}
	for _, tt := range tests {
		line := JournalLine{ID: tt.lineID}
		assert.Equal(t, tt.want, line.EntryGroup(), "EntryGroup(%q)", tt.lineID)
	}
}

func TestEntryTotals(t *testing.T) {
	entry := JournalEntry{
		Lines: []JournalLine{
			{Debit: decimal.RequireFromString("60.00")},
			{Debit: decimal.RequireFromString("40.00")},
			{Credit: decimal.RequireFromString("100.00")},
		},
	}
	assert.True(t, entry.TotalDebit().Equal(decimal.RequireFromString("100.00")))
	assert.True(t, entry.TotalCredit().Equal(decimal.RequireFromString("100.00")))
}

func TestTotalStock(t *testing.T) {
	item := InventoryItem{
		Stock: map[string]decimal.Decimal{
			"wh1": decimal.NewFromInt(5),
			"wh2": decimal.NewFromInt(-2),
		},
	}
	assert.True(t, item.TotalStock().Equal(decimal.NewFromInt(3)))

	item.ReorderPoint = decimal.NewFromInt(10)
	assert.True(t, item.BelowReorderPoint())

	item.ReorderPoint = decimal.Zero
	assert.False(t, item.BelowReorderPoint(), "zero reorder point disables the check")
}
