package reports

import (
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"github.com/openbooks-dev/openbooks/internal/journal"
	"github.com/openbooks-dev/openbooks/internal/model"
)

// LedgerRow is one posting against the account, with the running
// balance after it.
type LedgerRow struct {
	Date        time.Time
	EntryID     string
	LineID      string
	Reference   string
	Description string
	Debit       decimal.Decimal
	Credit      decimal.Decimal
	Balance     decimal.Decimal
}

// LedgerReport is the chronological running-balance view of one
// account.
type LedgerReport struct {
	AccountID   int
	AccountName string
	Rows        []LedgerRow
	Closing     decimal.Decimal
}

// Ledger derives the per-account ledger from entries. Entries are
// ordered by date ascending; same-date entries keep document order
// (stable sort). The builder iterates raw entries, so it works for
// accounts that have since been deleted — the name resolver supplies
// the placeholder label in that case.
func Ledger(entries []model.JournalEntry, names journal.AccountNamer, accountID int) LedgerReport {
	sorted := make([]model.JournalEntry, len(entries))
	copy(sorted, entries)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Date.Before(sorted[j].Date)
	})

	report := LedgerReport{
		AccountID:   accountID,
		AccountName: names.Name(accountID),
	}

	running := decimal.Zero
	for _, e := range sorted {
		for _, line := range e.Lines {
			if line.AccountID != accountID {
				continue
			}
			running = running.Add(line.Amount())
			report.Rows = append(report.Rows, LedgerRow{
				Date:        e.Date,
				EntryID:     e.ID,
				LineID:      line.ID,
				Reference:   e.Reference,
				Description: line.Description,
				Debit:       line.Debit,
				Credit:      line.Credit,
				Balance:     running,
			})
		}
	}
	report.Closing = running
	return report
}
