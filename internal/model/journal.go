package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// JournalLine is a single row in journal.csv (one side of a double-entry).
type JournalLine struct {
	ID          string // "YYYY-MM-NNNx" where x = a,b,c...
	AccountID   int
	Description string
	Debit       decimal.Decimal // zero if credit side
	Credit      decimal.Decimal // zero if debit side
}

// Amount returns the signed movement of the line: debit minus credit.
func (l JournalLine) Amount() decimal.Decimal {
	return l.Debit.Sub(l.Credit)
}

// EntryGroup returns the base entry ID (without line suffix).
// "2025-01-001a" -> "2025-01-001"
func (l JournalLine) EntryGroup() string {
	id := l.ID
	i := len(id)
	for i > 0 && id[i-1] >= 'a' && id[i-1] <= 'z' {
		i--
	}
	return id[:i]
}

// JournalEntry is a balanced set of lines posted on one date.
// Entries are immutable once posted; the only mutation is deletion.
type JournalEntry struct {
	ID        string // "YYYY-MM-NNN"
	Date      time.Time
	Reference string
	Narration string
	Lines     []JournalLine
}

// TotalDebit sums the debit side of all lines.
func (e JournalEntry) TotalDebit() decimal.Decimal {
	total := decimal.Zero
	for _, l := range e.Lines {
		total = total.Add(l.Debit)
	}
	return total
}

// TotalCredit sums the credit side of all lines.
func (e JournalEntry) TotalCredit() decimal.Decimal {
	total := decimal.Zero
	for _, l := range e.Lines {
		total = total.Add(l.Credit)
	}
	return total
}

// MonthKey buckets the entry by calendar month, e.g. "2025-01".
func (e JournalEntry) MonthKey() string {
	return e.Date.Format("2006-01")
}
