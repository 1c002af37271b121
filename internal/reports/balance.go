// Package reports derives financial statements from the journal.
// Every builder is a pure function over snapshots: entries in, view
// objects out, nothing persisted.
package reports

import (
	"github.com/shopspring/decimal"

	"github.com/openbooks-dev/openbooks/internal/model"
)

// Balances folds journal entries into per-account signed balances:
// sum of (debit - credit) across every line referencing the account.
// No date filtering happens here; callers pre-filter. Accounts with no
// activity are simply absent, which consumers treat as zero.
func Balances(entries []model.JournalEntry) map[int]decimal.Decimal {
	balances := make(map[int]decimal.Decimal)
	for _, e := range entries {
		for _, line := range e.Lines {
			balances[line.AccountID] = balances[line.AccountID].Add(line.Amount())
		}
	}
	return balances
}
