package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// Warehouse is a stock location.
type Warehouse struct {
	ID       string
	Name     string
	Location string
	Manager  string
}

// InventoryItem is a stocked product. Stock holds per-warehouse
// quantities keyed by warehouse ID; the total is derived.
type InventoryItem struct {
	ID           string
	SKU          string
	Name         string
	UnitPrice    decimal.Decimal
	Stock        map[string]decimal.Decimal
	ReorderPoint decimal.Decimal
}

// TotalStock sums quantities across all warehouses.
func (i InventoryItem) TotalStock() decimal.Decimal {
	total := decimal.Zero
	for _, qty := range i.Stock {
		total = total.Add(qty)
	}
	return total
}

// BelowReorderPoint reports whether total stock has fallen to or below
// the reorder point. A zero reorder point disables the check.
func (i InventoryItem) BelowReorderPoint() bool {
	if i.ReorderPoint.IsZero() {
		return false
	}
	return i.TotalStock().LessThanOrEqual(i.ReorderPoint)
}

// StockLedgerEntry is one row in the append-only stock audit trail.
// Deltas are signed; negative stock is representable (the ledger
// preserves what happened, it does not enforce a floor).
type StockLedgerEntry struct {
	ID            string
	ItemID        string
	WarehouseID   string
	Date          time.Time
	QuantityDelta decimal.Decimal
	Reference     string
}
