package journal

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/openbooks-dev/openbooks/internal/model"
)

// BalanceTolerance is the largest debit/credit mismatch accepted when
// posting an entry.
var BalanceTolerance = decimal.RequireFromString("0.01")

// ValidationError describes a single invariant violation.
type ValidationError struct {
	Invariant   int
	EntryID     string
	Description string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("invariant %d [%s]: %s", e.Invariant, e.EntryID, e.Description)
}

// AccountChecker tests whether an account ID exists in the chart of accounts.
type AccountChecker interface {
	Exists(id int) bool
}

// ValidateEntry enforces 5 invariants on an entry before posting.
func ValidateEntry(e model.JournalEntry, accounts AccountChecker) []ValidationError {
	var errs []ValidationError

	// Invariant 1: At least one line.
	if len(e.Lines) == 0 {
		errs = append(errs, ValidationError{
			Invariant:   1,
			EntryID:     e.ID,
			Description: "entry has no lines",
		})
	}

	// Invariant 5: Entry has a date.
	if e.Date.IsZero() {
		errs = append(errs, ValidationError{
			Invariant:   5,
			EntryID:     e.ID,
			Description: "entry has no date",
		})
	}

	// Invariant 2: Entry balances (|sum(debits) - sum(credits)| <= tolerance).
	diff := e.TotalDebit().Sub(e.TotalCredit()).Abs()
	if diff.GreaterThan(BalanceTolerance) {
		errs = append(errs, ValidationError{
			Invariant:   2,
			EntryID:     e.ID,
			Description: fmt.Sprintf("debits (%s) != credits (%s)", e.TotalDebit().StringFixed(2), e.TotalCredit().StringFixed(2)),
		})
	}

	for _, line := range e.Lines {
		// Invariant 3: Non-negative amounts.
		if line.Debit.IsNegative() || line.Credit.IsNegative() {
			errs = append(errs, ValidationError{
				Invariant:   3,
				EntryID:     line.ID,
				Description: "debit and credit must not be negative",
			})
		}

		// Invariant 4: Valid account references.
		if !accounts.Exists(line.AccountID) {
			errs = append(errs, ValidationError{
				Invariant:   4,
				EntryID:     line.ID,
				Description: fmt.Sprintf("unknown account %d", line.AccountID),
			})
		}
	}

	return errs
}
