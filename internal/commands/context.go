// Package commands wires the CLI surface: cobra commands over the
// CSV-backed store and the domain services.
package commands

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"

	"github.com/openbooks-dev/openbooks/internal/config"
	"github.com/openbooks-dev/openbooks/internal/export"
	"github.com/openbooks-dev/openbooks/internal/gitops"
	"github.com/openbooks-dev/openbooks/internal/model"
	"github.com/openbooks-dev/openbooks/internal/store"
	"github.com/openbooks-dev/openbooks/internal/store/file"
)

const dateLayout = "2006-01-02"

// app bundles the open books directory with its configuration.
type app struct {
	dir   string
	store *file.Store
	cfg   *config.Config
}

// openBooks opens an initialized books directory.
func openBooks(cmd *cobra.Command) (*app, error) {
	dir, err := cmd.Flags().GetString("dir")
	if err != nil {
		return nil, err
	}
	absDir, err := filepath.Abs(dir)
	if err != nil {
		return nil, fmt.Errorf("resolving path: %w", err)
	}

	cfg, err := config.Load(filepath.Join(absDir, "openbooks.yaml"))
	if err != nil {
		return nil, fmt.Errorf("%s is not a books directory (run 'openbooks init'): %w", absDir, err)
	}
	return &app{dir: absDir, store: file.New(absDir), cfg: cfg}, nil
}

func (a *app) formatter() export.Formatter {
	return export.NewFormatter(a.cfg.Preferences.Currency, a.cfg.Preferences.DateFormat)
}

// autoCommit commits the books directory after a mutation when
// configured to. Failures warn instead of failing the command: the
// books change already happened.
func (a *app) autoCommit(message string) {
	if !a.cfg.Git.AutoCommit {
		return
	}
	if _, err := gitops.AutoCommit(a.dir, message, a.cfg.Git.AuthorName, a.cfg.Git.AuthorEmail); err != nil {
		fmt.Fprintf(os.Stderr, "warning: auto-commit failed: %v\n", err)
	}
}

// parseDate parses an ISO date. Empty input returns the zero time.
func parseDate(s string) (time.Time, error) {
	if s == "" {
		return time.Time{}, nil
	}
	t, err := time.Parse(dateLayout, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q (want YYYY-MM-DD)", s)
	}
	return t, nil
}

// parsePosting parses an "ACCOUNT=AMOUNT" flag value.
func parsePosting(s string) (int, decimal.Decimal, error) {
	acct, amt, ok := strings.Cut(s, "=")
	if !ok {
		return 0, decimal.Zero, fmt.Errorf("invalid posting %q (want ACCOUNT=AMOUNT)", s)
	}
	var accountID int
	if _, err := fmt.Sscanf(strings.TrimSpace(acct), "%d", &accountID); err != nil {
		return 0, decimal.Zero, fmt.Errorf("invalid account in %q: %w", s, err)
	}
	amount, err := decimal.NewFromString(strings.TrimSpace(amt))
	if err != nil {
		return 0, decimal.Zero, fmt.Errorf("invalid amount in %q: %w", s, err)
	}
	return accountID, amount, nil
}

// findParty resolves a party by ID or (case-insensitive) name.
func findParty(parties []model.Party, ref string) (model.Party, error) {
	for _, p := range parties {
		if p.ID == ref || strings.EqualFold(p.Name, ref) {
			return p, nil
		}
	}
	return model.Party{}, fmt.Errorf("party %q: %w", ref, store.ErrNotFound)
}

// findWarehouse resolves a warehouse by ID or (case-insensitive) name.
func findWarehouse(warehouses []model.Warehouse, ref string) (model.Warehouse, error) {
	for _, w := range warehouses {
		if w.ID == ref || strings.EqualFold(w.Name, ref) {
			return w, nil
		}
	}
	return model.Warehouse{}, fmt.Errorf("warehouse %q: %w", ref, store.ErrNotFound)
}

// findInvoice resolves an invoice by ID or assigned number.
func findInvoice(invoices []model.Invoice, ref string) (model.Invoice, error) {
	for _, inv := range invoices {
		if inv.ID == ref || (inv.Number != "" && strings.EqualFold(inv.Number, ref)) {
			return inv, nil
		}
	}
	return model.Invoice{}, fmt.Errorf("invoice %q: %w", ref, store.ErrNotFound)
}
