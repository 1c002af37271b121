// Package memory is an in-memory Repository used by tests and by
// commands that operate on ad-hoc data without a books directory.
package memory

import (
	"sort"
	"sync"

	"github.com/shopspring/decimal"

	"github.com/openbooks-dev/openbooks/internal/model"
	"github.com/openbooks-dev/openbooks/internal/store"
)

// Store implements store.Repository over process-local maps.
type Store struct {
	mu          sync.RWMutex
	accounts    map[int]model.Account
	entries     map[string]model.JournalEntry
	parties     map[string]model.Party
	items       map[string]model.InventoryItem
	warehouses  map[string]model.Warehouse
	stockLedger []model.StockLedgerEntry
	invoices    map[string]model.Invoice
	settings    model.Settings
}

// New creates an empty Store.
func New() *Store {
	return &Store{
		accounts:   make(map[int]model.Account),
		entries:    make(map[string]model.JournalEntry),
		parties:    make(map[string]model.Party),
		items:      make(map[string]model.InventoryItem),
		warehouses: make(map[string]model.Warehouse),
		invoices:   make(map[string]model.Invoice),
	}
}

// ListAccounts returns all accounts sorted by ID.
func (s *Store) ListAccounts() ([]model.Account, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]model.Account, 0, len(s.accounts))
	for _, a := range s.accounts {
		out = append(out, a)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

// SaveAccount inserts or replaces an account.
func (s *Store) SaveAccount(a model.Account) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.accounts[a.ID] = a
	return nil
}

// DeleteAccount removes an account. System accounts are refused.
func (s *Store) DeleteAccount(id int) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	a, ok := s.accounts[id]
	if !ok {
		return store.ErrNotFound
	}
	if a.System {
		return store.ErrSystemAccount
	}
	delete(s.accounts, id)
	return nil
}

// ListEntries returns all journal entries sorted by ID.
func (s *Store) ListEntries() ([]model.JournalEntry, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]model.JournalEntry, 0, len(s.entries))
	for _, e := range s.entries {
		out = append(out, copyEntry(e))
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

// AppendEntry adds a journal entry.
func (s *Store) AppendEntry(e model.JournalEntry) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.entries[e.ID] = copyEntry(e)
	return nil
}

// DeleteEntry removes a journal entry by ID.
func (s *Store) DeleteEntry(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.entries[id]; !ok {
		return store.ErrNotFound
	}
	delete(s.entries, id)
	return nil
}

// ListParties returns all parties sorted by name.
func (s *Store) ListParties() ([]model.Party, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]model.Party, 0, len(s.parties))
	for _, p := range s.parties {
		out = append(out, p)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

// SaveParty inserts or replaces a party.
func (s *Store) SaveParty(p model.Party) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.parties[p.ID] = p
	return nil
}

// DeleteParty removes a party by ID.
func (s *Store) DeleteParty(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.parties[id]; !ok {
		return store.ErrNotFound
	}
	delete(s.parties, id)
	return nil
}

// ListItems returns all inventory items sorted by SKU.
func (s *Store) ListItems() ([]model.InventoryItem, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]model.InventoryItem, 0, len(s.items))
	for _, i := range s.items {
		out = append(out, copyItem(i))
	}
	sort.Slice(out, func(i, j int) bool { return out[i].SKU < out[j].SKU })
	return out, nil
}

// SaveItem inserts or replaces an inventory item.
func (s *Store) SaveItem(i model.InventoryItem) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.items[i.ID] = copyItem(i)
	return nil
}

// DeleteItem removes an inventory item by ID.
func (s *Store) DeleteItem(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.items[id]; !ok {
		return store.ErrNotFound
	}
	delete(s.items, id)
	return nil
}

// ListWarehouses returns all warehouses sorted by name.
func (s *Store) ListWarehouses() ([]model.Warehouse, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]model.Warehouse, 0, len(s.warehouses))
	for _, w := range s.warehouses {
		out = append(out, w)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

// SaveWarehouse inserts or replaces a warehouse.
func (s *Store) SaveWarehouse(w model.Warehouse) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.warehouses[w.ID] = w
	return nil
}

// DeleteWarehouse removes a warehouse by ID.
func (s *Store) DeleteWarehouse(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.warehouses[id]; !ok {
		return store.ErrNotFound
	}
	delete(s.warehouses, id)
	return nil
}

// ListStockLedger returns the stock ledger in append order.
func (s *Store) ListStockLedger() ([]model.StockLedgerEntry, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]model.StockLedgerEntry, len(s.stockLedger))
	copy(out, s.stockLedger)
	return out, nil
}

// AppendStockLedger appends one stock ledger entry.
func (s *Store) AppendStockLedger(e model.StockLedgerEntry) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.stockLedger = append(s.stockLedger, e)
	return nil
}

// ListInvoices returns all invoices sorted by date then ID.
func (s *Store) ListInvoices() ([]model.Invoice, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]model.Invoice, 0, len(s.invoices))
	for _, inv := range s.invoices {
		out = append(out, copyInvoice(inv))
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].Date.Equal(out[j].Date) {
			return out[i].Date.Before(out[j].Date)
		}
		return out[i].ID < out[j].ID
	})
	return out, nil
}

// SaveInvoice inserts or replaces an invoice.
func (s *Store) SaveInvoice(inv model.Invoice) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.invoices[inv.ID] = copyInvoice(inv)
	return nil
}

// DeleteInvoice removes an invoice by ID.
func (s *Store) DeleteInvoice(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.invoices[id]; !ok {
		return store.ErrNotFound
	}
	delete(s.invoices, id)
	return nil
}

// Settings returns the singleton settings record.
func (s *Store) Settings() (model.Settings, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.settings, nil
}

// SaveSettings replaces the singleton settings record.
func (s *Store) SaveSettings(settings model.Settings) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.settings = settings
	return nil
}

func copyEntry(e model.JournalEntry) model.JournalEntry {
	lines := make([]model.JournalLine, len(e.Lines))
	copy(lines, e.Lines)
	e.Lines = lines
	return e
}

func copyItem(i model.InventoryItem) model.InventoryItem {
	stock := make(map[string]decimal.Decimal, len(i.Stock))
	for k, v := range i.Stock {
		stock[k] = v
	}
	i.Stock = stock
	return i
}

func copyInvoice(inv model.Invoice) model.Invoice {
	lines := make([]model.InvoiceLine, len(inv.Lines))
	copy(lines, inv.Lines)
	inv.Lines = lines
	return inv
}
