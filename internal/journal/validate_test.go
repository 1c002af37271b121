package journal

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/openbooks-dev/openbooks/internal/model"
)

func balancedEntry() model.JournalEntry {
	return model.JournalEntry{
		ID:   "2025-01-001",
		Date: date(2025, 1, 15),
		Lines: []model.JournalLine{
			{ID: "2025-01-001a", AccountID: 1010, Debit: dec("100.00")},
			{ID: "2025-01-001b", AccountID: 4010, Credit: dec("100.00")},
		},
	}
}

func TestValidateEntry_OK(t *testing.T) {
	errs := ValidateEntry(balancedEntry(), newMockAccounts(1010, 4010))
	assert.Empty(t, errs)
}

func TestValidateEntry_NoLines(t *testing.T) {
	e := balancedEntry()
	e.Lines = nil
	errs := ValidateEntry(e, newMockAccounts(1010, 4010))
	require.Len(t, errs, 1)
	assert.Equal(t, 1, errs[0].Invariant)
}

func TestValidateEntry_Unbalanced(t *testing.T) {
	e := balancedEntry()
	e.Lines[1].Credit = dec("98.00")
	errs := ValidateEntry(e, newMockAccounts(1010, 4010))
	require.Len(t, errs, 1)
	assert.Equal(t, 2, errs[0].Invariant)
	assert.Contains(t, errs[0].Description, "debits (100.00) != credits (98.00)")
}

func TestValidateEntry_ToleranceBoundary(t *testing.T) {
	// Exactly one cent off is still acceptable; two cents is not.
	e := balancedEntry()
	e.Lines[1].Credit = dec("99.99")
	assert.Empty(t, ValidateEntry(e, newMockAccounts(1010, 4010)))

	e.Lines[1].Credit = dec("99.98")
	errs := ValidateEntry(e, newMockAccounts(1010, 4010))
	require.Len(t, errs, 1)
	assert.Equal(t, 2, errs[0].Invariant)
}

func TestValidateEntry_NegativeAmount(t *testing.T) {
	e := balancedEntry()
	e.Lines[0].Debit = dec("-100.00")
	e.Lines[1].Credit = dec("-100.00")
	errs := ValidateEntry(e, newMockAccounts(1010, 4010))
	require.Len(t, errs, 2)
	for _, ve := range errs {
		assert.Equal(t, 3, ve.Invariant)
	}
}

func TestValidateEntry_UnknownAccount(t *testing.T) {
	e := balancedEntry()
	errs := ValidateEntry(e, newMockAccounts(1010))
	require.Len(t, errs, 1)
	assert.Equal(t, 4, errs[0].Invariant)
	assert.Contains(t, errs[0].Description, "unknown account 4010")
}

func TestValidateEntry_NoDate(t *testing.T) {
	e := balancedEntry()
	e.Date = time.Time{}
	errs := ValidateEntry(e, newMockAccounts(1010, 4010))
	require.Len(t, errs, 1)
	assert.Equal(t, 5, errs[0].Invariant)
}

func TestValidateEntry_MultipleViolations(t *testing.T) {
	e := model.JournalEntry{
		ID:   "2025-01-002",
		Date: date(2025, 1, 20),
		Lines: []model.JournalLine{
			{ID: "2025-01-002a", AccountID: 9999, Debit: dec("50.00")},
		},
	}
	errs := ValidateEntry(e, newMockAccounts(1010))
	require.Len(t, errs, 2, "unbalanced and unknown account")
}
