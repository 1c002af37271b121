// Package file is the CSV-backed Repository. A books directory holds
// openbooks.yaml plus per-entity CSV files; the journal is sharded by
// month and the stock ledger is append-only.
package file

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"

	"github.com/openbooks-dev/openbooks/internal/config"
	"github.com/openbooks-dev/openbooks/internal/id"
	"github.com/openbooks-dev/openbooks/internal/model"
	"github.com/openbooks-dev/openbooks/internal/store"
)

// Store implements store.Repository over a books directory.
type Store struct {
	root string
}

// New creates a Store rooted at dir. The directory need not exist yet;
// Init creates the layout.
func New(dir string) *Store {
	return &Store{root: dir}
}

// Root returns the books directory.
func (s *Store) Root() string {
	return s.root
}

// Init creates the books directory layout.
func (s *Store) Init() error {
	dirs := []string{
		"accounts",
		"journal",
		"parties",
		"inventory",
		"invoices",
		"exports",
	}
	for _, d := range dirs {
		if err := os.MkdirAll(filepath.Join(s.root, d), 0o755); err != nil {
			return fmt.Errorf("creating directory %s: %w", d, err)
		}
	}
	return nil
}

func (s *Store) accountsPath() string {
	return filepath.Join(s.root, "accounts", "chart-of-accounts.csv")
}

func (s *Store) journalMonthPath(year, month int) string {
	return filepath.Join(s.root, "journal", fmt.Sprintf("%04d", year), fmt.Sprintf("%02d", month), "journal.csv")
}

func (s *Store) partiesPath() string {
	return filepath.Join(s.root, "parties", "parties.csv")
}

func (s *Store) itemsPath() string {
	return filepath.Join(s.root, "inventory", "items.csv")
}

func (s *Store) warehousesPath() string {
	return filepath.Join(s.root, "inventory", "warehouses.csv")
}

func (s *Store) stockLedgerPath() string {
	return filepath.Join(s.root, "inventory", "stock-ledger.csv")
}

func (s *Store) invoicesPath() string {
	return filepath.Join(s.root, "invoices", "invoices.csv")
}

func (s *Store) invoiceLinesPath() string {
	return filepath.Join(s.root, "invoices", "invoice-lines.csv")
}

func (s *Store) configPath() string {
	return filepath.Join(s.root, "openbooks.yaml")
}

// ListAccounts reads the chart of accounts. A missing file is an empty
// chart, not an error.
func (s *Store) ListAccounts() ([]model.Account, error) {
	f, err := os.Open(s.accountsPath())
	if errors.Is(err, fs.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("opening chart of accounts: %w", err)
	}
	defer f.Close()

	accts, err := ReadAccounts(f)
	if err != nil {
		return nil, fmt.Errorf("reading chart of accounts: %w", err)
	}
	return accts, nil
}

// SaveAccount inserts or replaces an account and rewrites the chart.
func (s *Store) SaveAccount(a model.Account) error {
	accts, err := s.ListAccounts()
	if err != nil {
		return err
	}

	replaced := false
	for i := range accts {
		if accts[i].ID == a.ID {
			accts[i] = a
			replaced = true
			break
		}
	}
	if !replaced {
		accts = append(accts, a)
		sort.Slice(accts, func(i, j int) bool { return accts[i].ID < accts[j].ID })
	}
	return s.writeAccounts(accts)
}

// DeleteAccount removes an account. System accounts are refused.
// Historical journal lines referencing the account are left untouched.
func (s *Store) DeleteAccount(id int) error {
	accts, err := s.ListAccounts()
	if err != nil {
		return err
	}

	idx := -1
	for i := range accts {
		if accts[i].ID == id {
			idx = i
			break
		}
	}
	if idx < 0 {
		return store.ErrNotFound
	}
	if accts[idx].System {
		return store.ErrSystemAccount
	}
	return s.writeAccounts(append(accts[:idx], accts[idx+1:]...))
}

func (s *Store) writeAccounts(accts []model.Account) error {
	path := s.accountsPath()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("creating accounts dir: %w", err)
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating chart of accounts file: %w", err)
	}
	defer f.Close()

	if err := WriteAccounts(f, accts); err != nil {
		return fmt.Errorf("writing chart of accounts: %w", err)
	}
	return nil
}

// ListEntries reads every month's journal.csv, oldest first.
func (s *Store) ListEntries() ([]model.JournalEntry, error) {
	journalDir := filepath.Join(s.root, "journal")
	years, err := os.ReadDir(journalDir)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("reading journal dir: %w", err)
	}

	var entries []model.JournalEntry
	for _, y := range years {
		if !y.IsDir() {
			continue
		}
		months, err := os.ReadDir(filepath.Join(journalDir, y.Name()))
		if err != nil {
			return nil, fmt.Errorf("reading journal year %s: %w", y.Name(), err)
		}
		for _, m := range months {
			if !m.IsDir() {
				continue
			}
			path := filepath.Join(journalDir, y.Name(), m.Name(), "journal.csv")
			monthEntries, err := s.readJournalFile(path)
			if err != nil {
				return nil, err
			}
			entries = append(entries, monthEntries...)
		}
	}
	return entries, nil
}

func (s *Store) readJournalFile(path string) ([]model.JournalEntry, error) {
	f, err := os.Open(path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("opening journal %s: %w", path, err)
	}
	defer f.Close()

	rows, err := ReadJournalRows(f)
	if err != nil {
		return nil, fmt.Errorf("reading journal %s: %w", path, err)
	}
	return GroupRows(rows), nil
}

// AppendEntry appends an entry to its month's journal.csv, creating
// the directory and header if the month is new.
func (s *Store) AppendEntry(e model.JournalEntry) error {
	path := s.journalMonthPath(e.Date.Year(), int(e.Date.Month()))
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("creating journal dir: %w", err)
	}

	isNew := false
	if _, err := os.Stat(path); errors.Is(err, fs.ErrNotExist) {
		isNew = true
	}

	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_APPEND, 0o644)
	if err != nil {
		return fmt.Errorf("opening journal: %w", err)
	}
	defer f.Close()

	if isNew {
		if _, err := fmt.Fprintln(f, JournalHeader); err != nil {
			return fmt.Errorf("writing header: %w", err)
		}
	}

	if err := AppendJournalEntry(f, e); err != nil {
		return fmt.Errorf("appending entry: %w", err)
	}
	return nil
}

// DeleteEntry removes an entry by ID, rewriting its month's file.
func (s *Store) DeleteEntry(entryID string) error {
	year, month, _, err := id.ParseEntryID(entryID)
	if err != nil {
		return err
	}

	path := s.journalMonthPath(year, month)
	entries, err := s.readJournalFile(path)
	if err != nil {
		return err
	}

	kept := entries[:0]
	found := false
	for _, e := range entries {
		if e.ID == entryID {
			found = true
			continue
		}
		kept = append(kept, e)
	}
	if !found {
		return store.ErrNotFound
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("rewriting journal: %w", err)
	}
	defer f.Close()

	if err := WriteJournalRows(f, kept); err != nil {
		return fmt.Errorf("rewriting journal: %w", err)
	}
	return nil
}

// ListParties reads parties.csv.
func (s *Store) ListParties() ([]model.Party, error) {
	f, err := os.Open(s.partiesPath())
	if errors.Is(err, fs.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("opening parties: %w", err)
	}
	defer f.Close()

	parties, err := ReadParties(f)
	if err != nil {
		return nil, fmt.Errorf("reading parties: %w", err)
	}
	return parties, nil
}

// SaveParty inserts or replaces a party and rewrites parties.csv.
func (s *Store) SaveParty(p model.Party) error {
	parties, err := s.ListParties()
	if err != nil {
		return err
	}

	replaced := false
	for i := range parties {
		if parties[i].ID == p.ID {
			parties[i] = p
			replaced = true
			break
		}
	}
	if !replaced {
		parties = append(parties, p)
	}
	return s.writeParties(parties)
}

// DeleteParty removes a party by ID.
func (s *Store) DeleteParty(id string) error {
	parties, err := s.ListParties()
	if err != nil {
		return err
	}

	idx := -1
	for i := range parties {
		if parties[i].ID == id {
			idx = i
			break
		}
	}
	if idx < 0 {
		return store.ErrNotFound
	}
	return s.writeParties(append(parties[:idx], parties[idx+1:]...))
}

func (s *Store) writeParties(parties []model.Party) error {
	path := s.partiesPath()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("creating parties dir: %w", err)
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating parties file: %w", err)
	}
	defer f.Close()

	if err := WriteParties(f, parties); err != nil {
		return fmt.Errorf("writing parties: %w", err)
	}
	return nil
}

// ListItems reads items.csv.
func (s *Store) ListItems() ([]model.InventoryItem, error) {
	f, err := os.Open(s.itemsPath())
	if errors.Is(err, fs.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("opening items: %w", err)
	}
	defer f.Close()

	items, err := ReadItems(f)
	if err != nil {
		return nil, fmt.Errorf("reading items: %w", err)
	}
	return items, nil
}

// SaveItem inserts or replaces an inventory item and rewrites items.csv.
func (s *Store) SaveItem(item model.InventoryItem) error {
	items, err := s.ListItems()
	if err != nil {
		return err
	}

	replaced := false
	for i := range items {
		if items[i].ID == item.ID {
			items[i] = item
			replaced = true
			break
		}
	}
	if !replaced {
		items = append(items, item)
	}
	return s.writeItems(items)
}

// DeleteItem removes an inventory item by ID.
func (s *Store) DeleteItem(id string) error {
	items, err := s.ListItems()
	if err != nil {
		return err
	}

	idx := -1
	for i := range items {
		if items[i].ID == id {
			idx = i
			break
		}
	}
	if idx < 0 {
		return store.ErrNotFound
	}
	return s.writeItems(append(items[:idx], items[idx+1:]...))
}

func (s *Store) writeItems(items []model.InventoryItem) error {
	path := s.itemsPath()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("creating inventory dir: %w", err)
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating items file: %w", err)
	}
	defer f.Close()

	if err := WriteItems(f, items); err != nil {
		return fmt.Errorf("writing items: %w", err)
	}
	return nil
}

// ListWarehouses reads warehouses.csv.
func (s *Store) ListWarehouses() ([]model.Warehouse, error) {
	f, err := os.Open(s.warehousesPath())
	if errors.Is(err, fs.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("opening warehouses: %w", err)
	}
	defer f.Close()

	warehouses, err := ReadWarehouses(f)
	if err != nil {
		return nil, fmt.Errorf("reading warehouses: %w", err)
	}
	return warehouses, nil
}

// SaveWarehouse inserts or replaces a warehouse.
func (s *Store) SaveWarehouse(w model.Warehouse) error {
	warehouses, err := s.ListWarehouses()
	if err != nil {
		return err
	}

	replaced := false
	for i := range warehouses {
		if warehouses[i].ID == w.ID {
			warehouses[i] = w
			replaced = true
			break
		}
	}
	if !replaced {
		warehouses = append(warehouses, w)
	}
	return s.writeWarehouses(warehouses)
}

// DeleteWarehouse removes a warehouse by ID.
func (s *Store) DeleteWarehouse(id string) error {
	warehouses, err := s.ListWarehouses()
	if err != nil {
		return err
	}

	idx := -1
	for i := range warehouses {
		if warehouses[i].ID == id {
			idx = i
			break
		}
	}
	if idx < 0 {
		return store.ErrNotFound
	}
	return s.writeWarehouses(append(warehouses[:idx], warehouses[idx+1:]...))
}

func (s *Store) writeWarehouses(warehouses []model.Warehouse) error {
	path := s.warehousesPath()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("creating inventory dir: %w", err)
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating warehouses file: %w", err)
	}
	defer f.Close()

	if err := WriteWarehouses(f, warehouses); err != nil {
		return fmt.Errorf("writing warehouses: %w", err)
	}
	return nil
}

// ListStockLedger reads the append-only stock ledger.
func (s *Store) ListStockLedger() ([]model.StockLedgerEntry, error) {
	f, err := os.Open(s.stockLedgerPath())
	if errors.Is(err, fs.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("opening stock ledger: %w", err)
	}
	defer f.Close()

	entries, err := ReadStockLedger(f)
	if err != nil {
		return nil, fmt.Errorf("reading stock ledger: %w", err)
	}
	return entries, nil
}

// AppendStockLedger appends one entry to stock-ledger.csv, creating
// the file and header on first write. Existing rows are never touched.
func (s *Store) AppendStockLedger(e model.StockLedgerEntry) error {
	path := s.stockLedgerPath()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("creating inventory dir: %w", err)
	}

	isNew := false
	if _, err := os.Stat(path); errors.Is(err, fs.ErrNotExist) {
		isNew = true
	}

	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_APPEND, 0o644)
	if err != nil {
		return fmt.Errorf("opening stock ledger: %w", err)
	}
	defer f.Close()

	if isNew {
		if _, err := fmt.Fprintln(f, StockLedgerHeader); err != nil {
			return fmt.Errorf("writing header: %w", err)
		}
	}

	if err := AppendStockLedgerEntries(f, []model.StockLedgerEntry{e}); err != nil {
		return fmt.Errorf("appending stock ledger entry: %w", err)
	}
	return nil
}

// ListInvoices reads invoices.csv and invoice-lines.csv.
func (s *Store) ListInvoices() ([]model.Invoice, error) {
	headers, err := openOrEmpty(s.invoicesPath())
	if err != nil {
		return nil, fmt.Errorf("opening invoices: %w", err)
	}
	defer headers.Close()

	lines, err := openOrEmpty(s.invoiceLinesPath())
	if err != nil {
		return nil, fmt.Errorf("opening invoice lines: %w", err)
	}
	defer lines.Close()

	invoices, err := ReadInvoices(headers, lines)
	if err != nil {
		return nil, fmt.Errorf("reading invoices: %w", err)
	}
	return invoices, nil
}

// SaveInvoice inserts or replaces an invoice and rewrites both files.
func (s *Store) SaveInvoice(inv model.Invoice) error {
	invoices, err := s.ListInvoices()
	if err != nil {
		return err
	}

	replaced := false
	for i := range invoices {
		if invoices[i].ID == inv.ID {
			invoices[i] = inv
			replaced = true
			break
		}
	}
	if !replaced {
		invoices = append(invoices, inv)
	}
	return s.writeInvoices(invoices)
}

// DeleteInvoice removes an invoice by ID.
func (s *Store) DeleteInvoice(id string) error {
	invoices, err := s.ListInvoices()
	if err != nil {
		return err
	}

	idx := -1
	for i := range invoices {
		if invoices[i].ID == id {
			idx = i
			break
		}
	}
	if idx < 0 {
		return store.ErrNotFound
	}
	return s.writeInvoices(append(invoices[:idx], invoices[idx+1:]...))
}

func (s *Store) writeInvoices(invoices []model.Invoice) error {
	if err := os.MkdirAll(filepath.Dir(s.invoicesPath()), 0o755); err != nil {
		return fmt.Errorf("creating invoices dir: %w", err)
	}

	headers, err := os.Create(s.invoicesPath())
	if err != nil {
		return fmt.Errorf("creating invoices file: %w", err)
	}
	defer headers.Close()

	lines, err := os.Create(s.invoiceLinesPath())
	if err != nil {
		return fmt.Errorf("creating invoice lines file: %w", err)
	}
	defer lines.Close()

	if err := WriteInvoices(headers, lines, invoices); err != nil {
		return fmt.Errorf("writing invoices: %w", err)
	}
	return nil
}

// Settings maps the business and preferences sections of
// openbooks.yaml onto the Settings record.
func (s *Store) Settings() (model.Settings, error) {
	cfg, err := config.Load(s.configPath())
	if errors.Is(err, fs.ErrNotExist) {
		return model.Settings{}, nil
	}
	if err != nil {
		return model.Settings{}, err
	}
	return model.Settings{
		Profile: model.Profile{
			Name:  cfg.Business.Name,
			Email: cfg.Business.Email,
			GSTIN: cfg.Business.GSTIN,
		},
		Preferences: model.Preferences{
			Currency:   cfg.Preferences.Currency,
			DateFormat: cfg.Preferences.DateFormat,
		},
	}, nil
}

// SaveSettings writes the settings record back into openbooks.yaml,
// preserving the sections it does not own.
func (s *Store) SaveSettings(settings model.Settings) error {
	cfg, err := config.Load(s.configPath())
	if errors.Is(err, fs.ErrNotExist) {
		cfg = config.Default(settings.Profile.Name)
	} else if err != nil {
		return err
	}

	cfg.Business.Name = settings.Profile.Name
	cfg.Business.Email = settings.Profile.Email
	cfg.Business.GSTIN = settings.Profile.GSTIN
	cfg.Preferences.Currency = settings.Preferences.Currency
	cfg.Preferences.DateFormat = settings.Preferences.DateFormat

	return config.Save(s.configPath(), cfg)
}

func openOrEmpty(path string) (*os.File, error) {
	f, err := os.Open(path)
	if errors.Is(err, fs.ErrNotExist) {
		return os.Open(os.DevNull)
	}
	return f, err
}
