// Package inventory manages stocked items, warehouses, and the
// append-only stock ledger that audits every quantity change.
package inventory

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/openbooks-dev/openbooks/internal/model"
	"github.com/openbooks-dev/openbooks/internal/store"
)

// Service provides inventory business logic over a repository.
type Service struct {
	repo store.Repository
	now  func() time.Time
}

// NewService creates an inventory Service.
func NewService(repo store.Repository) *Service {
	return &Service{repo: repo, now: time.Now}
}

// AddItem validates and stores a new inventory item.
func (s *Service) AddItem(sku, name string, unitPrice, reorderPoint decimal.Decimal) (model.InventoryItem, error) {
	if strings.TrimSpace(name) == "" {
		return model.InventoryItem{}, fmt.Errorf("item name is required")
	}
	if strings.TrimSpace(sku) == "" {
		return model.InventoryItem{}, fmt.Errorf("item SKU is required")
	}
	if unitPrice.IsNegative() {
		return model.InventoryItem{}, fmt.Errorf("unit price must not be negative")
	}

	items, err := s.repo.ListItems()
	if err != nil {
		return model.InventoryItem{}, err
	}
	for _, existing := range items {
		if strings.EqualFold(existing.SKU, sku) {
			return model.InventoryItem{}, fmt.Errorf("SKU %q already in use", sku)
		}
	}

	item := model.InventoryItem{
		ID:           uuid.NewString(),
		SKU:          sku,
		Name:         name,
		UnitPrice:    unitPrice,
		ReorderPoint: reorderPoint,
		Stock:        make(map[string]decimal.Decimal),
	}
	if err := s.repo.SaveItem(item); err != nil {
		return model.InventoryItem{}, fmt.Errorf("saving item: %w", err)
	}
	return item, nil
}

// AddWarehouse validates and stores a new warehouse.
func (s *Service) AddWarehouse(name, location, manager string) (model.Warehouse, error) {
	if strings.TrimSpace(name) == "" {
		return model.Warehouse{}, fmt.Errorf("warehouse name is required")
	}
	w := model.Warehouse{
		ID:       uuid.NewString(),
		Name:     name,
		Location: location,
		Manager:  manager,
	}
	if err := s.repo.SaveWarehouse(w); err != nil {
		return model.Warehouse{}, fmt.Errorf("saving warehouse: %w", err)
	}
	return w, nil
}

// ItemBySKU finds an item by its SKU, case-insensitively.
func (s *Service) ItemBySKU(sku string) (model.InventoryItem, error) {
	items, err := s.repo.ListItems()
	if err != nil {
		return model.InventoryItem{}, err
	}
	for _, item := range items {
		if strings.EqualFold(item.SKU, sku) {
			return item, nil
		}
	}
	return model.InventoryItem{}, fmt.Errorf("item %q: %w", sku, store.ErrNotFound)
}

// AdjustResult reports the outcome of a stock adjustment.
type AdjustResult struct {
	Entry       model.StockLedgerEntry
	NewQuantity decimal.Decimal
	// Negative is set when the warehouse quantity dropped below zero.
	// The adjustment is still applied: the ledger records what
	// happened rather than blocking on a floor.
	Negative bool
}

// Adjust applies a signed quantity delta to one item's stock at one
// warehouse and appends a stock ledger entry for the change.
func (s *Service) Adjust(itemID, warehouseID string, delta decimal.Decimal, reference string) (AdjustResult, error) {
	if delta.IsZero() {
		return AdjustResult{}, fmt.Errorf("delta must be non-zero")
	}

	item, err := s.item(itemID)
	if err != nil {
		return AdjustResult{}, err
	}
	if err := s.checkWarehouse(warehouseID); err != nil {
		return AdjustResult{}, err
	}

	if item.Stock == nil {
		item.Stock = make(map[string]decimal.Decimal)
	}
	newQty := item.Stock[warehouseID].Add(delta)
	item.Stock[warehouseID] = newQty

	if err := s.repo.SaveItem(item); err != nil {
		return AdjustResult{}, fmt.Errorf("saving item: %w", err)
	}

	entry := model.StockLedgerEntry{
		ID:            uuid.NewString(),
		ItemID:        itemID,
		WarehouseID:   warehouseID,
		Date:          s.now().UTC(),
		QuantityDelta: delta,
		Reference:     reference,
	}
	if err := s.repo.AppendStockLedger(entry); err != nil {
		return AdjustResult{}, fmt.Errorf("appending stock ledger: %w", err)
	}

	return AdjustResult{
		Entry:       entry,
		NewQuantity: newQty,
		Negative:    newQty.IsNegative(),
	}, nil
}

// LedgerFor returns the stock ledger entries for one item, in append
// order. Entries survive item deletion; callers label unknown items
// with a placeholder.
func (s *Service) LedgerFor(itemID string) ([]model.StockLedgerEntry, error) {
	all, err := s.repo.ListStockLedger()
	if err != nil {
		return nil, err
	}
	var out []model.StockLedgerEntry
	for _, e := range all {
		if e.ItemID == itemID {
			out = append(out, e)
		}
	}
	return out, nil
}

func (s *Service) item(itemID string) (model.InventoryItem, error) {
	items, err := s.repo.ListItems()
	if err != nil {
		return model.InventoryItem{}, err
	}
	for _, item := range items {
		if item.ID == itemID {
			return item, nil
		}
	}
	return model.InventoryItem{}, fmt.Errorf("item %s: %w", itemID, store.ErrNotFound)
}

func (s *Service) checkWarehouse(warehouseID string) error {
	warehouses, err := s.repo.ListWarehouses()
	if err != nil {
		return err
	}
	for _, w := range warehouses {
		if w.ID == warehouseID {
			return nil
		}
	}
	return fmt.Errorf("warehouse %s: %w", warehouseID, store.ErrNotFound)
}
