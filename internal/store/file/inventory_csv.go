package file

import (
	"encoding/csv"
	"fmt"
	"io"
	"sort"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/openbooks-dev/openbooks/internal/model"
)

const (
	itemNumFields  = 6
	itemColID      = 0
	itemColSKU     = 1
	itemColName    = 2
	itemColPrice   = 3
	itemColReorder = 4
	itemColStock   = 5
)

var itemHeader = []string{"item_id", "sku", "name", "unit_price", "reorder_point", "stock"}

const (
	whNumFields   = 4
	whColID       = 0
	whColName     = 1
	whColLocation = 2
	whColManager  = 3
)

var whHeader = []string{"warehouse_id", "name", "location", "manager"}

// StockLedgerHeader is the CSV header for stock-ledger.csv.
const StockLedgerHeader = "ledger_id,item_id,warehouse_id,date,quantity_delta,reference"

const (
	slNumFields  = 6
	slDateFormat = time.RFC3339
	slColID      = 0
	slColItemID  = 1
	slColWhID    = 2
	slColDate    = 3
	slColDelta   = 4
	slColRef     = 5
)

// ReadItems reads items.csv.
func ReadItems(r io.Reader) ([]model.InventoryItem, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = itemNumFields

	records, err := cr.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("reading items CSV: %w", err)
	}

	if len(records) == 0 {
		return nil, nil
	}

	var items []model.InventoryItem
	for i, rec := range records[1:] {
		item, err := UnmarshalItem(rec)
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", i+2, err)
		}
		items = append(items, item)
	}
	return items, nil
}

// WriteItems writes items.csv.
func WriteItems(w io.Writer, items []model.InventoryItem) error {
	cw := csv.NewWriter(w)
	defer cw.Flush()

	if err := cw.Write(itemHeader); err != nil {
		return fmt.Errorf("writing header: %w", err)
	}

	for i, item := range items {
		if err := cw.Write(MarshalItem(item)); err != nil {
			return fmt.Errorf("writing row %d: %w", i+2, err)
		}
	}
	return cw.Error()
}

// MarshalItem converts an InventoryItem to a CSV row. Per-warehouse
// stock is packed as "warehouseID=qty" pairs joined by semicolons.
func MarshalItem(item model.InventoryItem) []string {
	row := make([]string, itemNumFields)
	row[itemColID] = item.ID
	row[itemColSKU] = item.SKU
	row[itemColName] = item.Name
	row[itemColPrice] = item.UnitPrice.StringFixed(2)
	if !item.ReorderPoint.IsZero() {
		row[itemColReorder] = item.ReorderPoint.String()
	}

	pairs := make([]string, 0, len(item.Stock))
	for whID, qty := range item.Stock {
		pairs = append(pairs, whID+"="+qty.String())
	}
	// Deterministic output for diff-friendly files.
	sort.Strings(pairs)
	row[itemColStock] = strings.Join(pairs, ";")
	return row
}

// UnmarshalItem converts a CSV row to an InventoryItem.
func UnmarshalItem(record []string) (model.InventoryItem, error) {
	if len(record) != itemNumFields {
		return model.InventoryItem{}, fmt.Errorf("expected %d fields, got %d", itemNumFields, len(record))
	}

	price, err := decimal.NewFromString(record[itemColPrice])
	if err != nil {
		return model.InventoryItem{}, fmt.Errorf("parsing unit_price %q: %w", record[itemColPrice], err)
	}

	var reorder decimal.Decimal
	if record[itemColReorder] != "" {
		reorder, err = decimal.NewFromString(record[itemColReorder])
		if err != nil {
			return model.InventoryItem{}, fmt.Errorf("parsing reorder_point %q: %w", record[itemColReorder], err)
		}
	}

	stock := make(map[string]decimal.Decimal)
	if record[itemColStock] != "" {
		for _, pair := range strings.Split(record[itemColStock], ";") {
			whID, qtyStr, ok := strings.Cut(pair, "=")
			if !ok {
				return model.InventoryItem{}, fmt.Errorf("invalid stock pair %q", pair)
			}
			qty, err := decimal.NewFromString(qtyStr)
			if err != nil {
				return model.InventoryItem{}, fmt.Errorf("parsing stock qty %q: %w", qtyStr, err)
			}
			stock[whID] = qty
		}
	}

	return model.InventoryItem{
		ID:           record[itemColID],
		SKU:          record[itemColSKU],
		Name:         record[itemColName],
		UnitPrice:    price,
		ReorderPoint: reorder,
		Stock:        stock,
	}, nil
}

// ReadWarehouses reads warehouses.csv.
func ReadWarehouses(r io.Reader) ([]model.Warehouse, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = whNumFields

	records, err := cr.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("reading warehouses CSV: %w", err)
	}

	if len(records) == 0 {
		return nil, nil
	}

	var warehouses []model.Warehouse
	for _, rec := range records[1:] {
		warehouses = append(warehouses, model.Warehouse{
			ID:       rec[whColID],
			Name:     rec[whColName],
			Location: rec[whColLocation],
			Manager:  rec[whColManager],
		})
	}
	return warehouses, nil
}

// WriteWarehouses writes warehouses.csv.
func WriteWarehouses(w io.Writer, warehouses []model.Warehouse) error {
	cw := csv.NewWriter(w)
	defer cw.Flush()

	if err := cw.Write(whHeader); err != nil {
		return fmt.Errorf("writing header: %w", err)
	}

	for i, wh := range warehouses {
		row := make([]string, whNumFields)
		row[whColID] = wh.ID
		row[whColName] = wh.Name
		row[whColLocation] = wh.Location
		row[whColManager] = wh.Manager
		if err := cw.Write(row); err != nil {
			return fmt.Errorf("writing row %d: %w", i+2, err)
		}
	}
	return cw.Error()
}

// ReadStockLedger reads stock-ledger.csv.
func ReadStockLedger(r io.Reader) ([]model.StockLedgerEntry, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = slNumFields

	records, err := cr.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("reading stock ledger CSV: %w", err)
	}

	if len(records) == 0 {
		return nil, nil
	}

	var entries []model.StockLedgerEntry
	for i, rec := range records[1:] {
		e, err := UnmarshalStockLedgerEntry(rec)
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", i+2, err)
		}
		entries = append(entries, e)
	}
	return entries, nil
}

// AppendStockLedgerEntries appends entries to a stock-ledger.csv writer
// (no header).
func AppendStockLedgerEntries(w io.Writer, entries []model.StockLedgerEntry) error {
	cw := csv.NewWriter(w)
	defer cw.Flush()

	for i, e := range entries {
		if err := cw.Write(MarshalStockLedgerEntry(e)); err != nil {
			return fmt.Errorf("writing row %d: %w", i, err)
		}
	}
	return cw.Error()
}

// MarshalStockLedgerEntry converts a StockLedgerEntry to a CSV row.
func MarshalStockLedgerEntry(e model.StockLedgerEntry) []string {
	row := make([]string, slNumFields)
	row[slColID] = e.ID
	row[slColItemID] = e.ItemID
	row[slColWhID] = e.WarehouseID
	row[slColDate] = e.Date.Format(slDateFormat)
	row[slColDelta] = e.QuantityDelta.String()
	row[slColRef] = e.Reference
	return row
}

// UnmarshalStockLedgerEntry converts a CSV row to a StockLedgerEntry.
func UnmarshalStockLedgerEntry(record []string) (model.StockLedgerEntry, error) {
	if len(record) != slNumFields {
		return model.StockLedgerEntry{}, fmt.Errorf("expected %d fields, got %d", slNumFields, len(record))
	}

	date, err := time.Parse(slDateFormat, record[slColDate])
	if err != nil {
		return model.StockLedgerEntry{}, fmt.Errorf("parsing date %q: %w", record[slColDate], err)
	}

	delta, err := decimal.NewFromString(record[slColDelta])
	if err != nil {
		return model.StockLedgerEntry{}, fmt.Errorf("parsing quantity_delta %q: %w", record[slColDelta], err)
	}

	return model.StockLedgerEntry{
		ID:            record[slColID],
		ItemID:        record[slColItemID],
		WarehouseID:   record[slColWhID],
		Date:          date,
		QuantityDelta: delta,
		Reference:     record[slColRef],
	}, nil
}
