// Package store defines the repository contract the computation
// services depend on. Implementations (memory, file) own persistence;
// services receive a Repository and operate on the snapshots it
// returns.
package store

import (
	"errors"

	"github.com/openbooks-dev/openbooks/internal/model"
)

var (
	// ErrNotFound is returned when a record does not exist.
	ErrNotFound = errors.New("not found")
	// ErrSystemAccount is returned when deleting a seeded account.
	ErrSystemAccount = errors.New("system accounts cannot be deleted")
)

// Repository is the data-store collaborator. List methods return
// snapshots the caller may keep; mutating a returned slice or map must
// not affect the store.
type Repository interface {
	// Chart of accounts.
	ListAccounts() ([]model.Account, error)
	SaveAccount(model.Account) error
	DeleteAccount(id int) error

	// Journal. Entries are append-only apart from deletion.
	ListEntries() ([]model.JournalEntry, error)
	AppendEntry(model.JournalEntry) error
	DeleteEntry(id string) error

	// Parties (customers and vendors).
	ListParties() ([]model.Party, error)
	SaveParty(model.Party) error
	DeleteParty(id string) error

	// Inventory.
	ListItems() ([]model.InventoryItem, error)
	SaveItem(model.InventoryItem) error
	DeleteItem(id string) error
	ListWarehouses() ([]model.Warehouse, error)
	SaveWarehouse(model.Warehouse) error
	DeleteWarehouse(id string) error

	// Stock ledger is strictly append-only.
	ListStockLedger() ([]model.StockLedgerEntry, error)
	AppendStockLedger(model.StockLedgerEntry) error

	// Invoices.
	ListInvoices() ([]model.Invoice, error)
	SaveInvoice(model.Invoice) error
	DeleteInvoice(id string) error

	// Settings singleton.
	Settings() (model.Settings, error)
	SaveSettings(model.Settings) error
}
