package reports

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/openbooks-dev/openbooks/internal/accounts"
	"github.com/openbooks-dev/openbooks/internal/model"
)

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func date(y, m, d int) time.Time {
	return time.Date(y, time.Month(m), d, 0, 0, 0, 0, time.UTC)
}

func testChart() *accounts.Chart {
	return accounts.NewChart([]model.Account{
		{ID: 1020, Name: "Bank", Type: model.AccountTypeAsset},
		{ID: 2100, Name: "Accounts Payable", Type: model.AccountTypeLiability},
		{ID: 3010, Name: "Owner's Equity", Type: model.AccountTypeEquity},
		{ID: 4010, Name: "Sales Revenue", Type: model.AccountTypeRevenue},
		{ID: 5100, Name: "Rent", Type: model.AccountTypeExpense},
	})
}

// entry builds a two-line balanced entry: debit one account, credit another.
func entry(entryID string, d time.Time, debitAcct, creditAcct int, amount string) model.JournalEntry {
	return model.JournalEntry{
		ID:   entryID,
		Date: d,
		Lines: []model.JournalLine{
			{ID: entryID + "a", AccountID: debitAcct, Debit: dec(amount)},
			{ID: entryID + "b", AccountID: creditAcct, Credit: dec(amount)},
		},
	}
}

func TestBalances(t *testing.T) {
	entries := []model.JournalEntry{
		entry("2025-01-001", date(2025, 1, 10), 1020, 4010, "100.00"),
		entry("2025-01-002", date(2025, 1, 12), 5100, 1020, "40.00"),
	}

	balances := Balances(entries)
	assert.True(t, balances[1020].Equal(dec("60.00")))
	assert.True(t, balances[4010].Equal(dec("-100.00")))
	assert.True(t, balances[5100].Equal(dec("40.00")))

	_, present := balances[9999]
	assert.False(t, present, "untouched accounts are absent, not zero")
}

func TestBalances_Empty(t *testing.T) {
	assert.Empty(t, Balances(nil))
}

// A single sale: revenue credited 100, bank debited 100. P&L revenue
// is 100, balance sheet assets are 100, net profit is 100.
func TestSignConventionRoundTrip(t *testing.T) {
	chart := testChart()
	entries := []model.JournalEntry{
		entry("2025-01-001", date(2025, 1, 10), 1020, 4010, "100.00"),
	}

	pnl := ProfitAndLoss(entries, chart, date(2025, 1, 1), date(2025, 1, 31))
	assert.True(t, pnl.RevenueTotal.Equal(dec("100.00")))
	assert.True(t, pnl.ExpenseTotal.IsZero())
	assert.True(t, pnl.NetProfit.Equal(dec("100.00")))
	assert.True(t, pnl.GrossProfit.Equal(pnl.NetProfit))

	bs := BalanceSheet(entries, chart, date(2025, 1, 1), date(2025, 1, 31))
	assert.True(t, bs.AssetTotal.Equal(dec("100.00")))
	assert.True(t, bs.LiabilityTotal.IsZero())
	assert.True(t, bs.EquityTotal.IsZero())
	assert.True(t, bs.NetProfit.Equal(dec("100.00")))
	assert.True(t, bs.Balanced(), "assets == liabilities + equity + net profit")
}

func TestProfitAndLoss_Mixed(t *testing.T) {
	chart := testChart()
	entries := []model.JournalEntry{
		entry("2025-01-001", date(2025, 1, 5), 1020, 4010, "1500.00"),
		entry("2025-01-002", date(2025, 1, 6), 5100, 1020, "800.00"),
	}

	pnl := ProfitAndLoss(entries, chart, date(2025, 1, 1), date(2025, 1, 31))
	assert.True(t, pnl.RevenueTotal.Equal(dec("1500.00")))
	assert.True(t, pnl.ExpenseTotal.Equal(dec("800.00")))
	assert.True(t, pnl.NetProfit.Equal(dec("700.00")))
}

func TestProfitAndLoss_NoEntries(t *testing.T) {
	pnl := ProfitAndLoss(nil, testChart(), date(2025, 1, 1), date(2025, 1, 31))
	assert.True(t, pnl.RevenueTotal.IsZero())
	assert.True(t, pnl.ExpenseTotal.IsZero())
	assert.True(t, pnl.NetProfit.IsZero())
	require.Len(t, pnl.Revenue, 1, "accounts still listed with zero amounts")
}

func TestTrialBalanceTotalsAlwaysEqual(t *testing.T) {
	chart := testChart()
	entries := []model.JournalEntry{
		entry("2025-01-001", date(2025, 1, 5), 1020, 4010, "1500.00"),
		entry("2025-01-002", date(2025, 1, 6), 5100, 1020, "800.00"),
		entry("2025-01-003", date(2025, 1, 7), 1020, 3010, "5000.00"),
	}

	tb := TrialBalance(entries, chart, date(2025, 1, 1), date(2025, 1, 31))
	assert.True(t, tb.DebitTotal.Equal(tb.CreditTotal),
		"debit total %s != credit total %s", tb.DebitTotal, tb.CreditTotal)

	byID := make(map[int]TrialBalanceRow)
	for _, row := range tb.Rows {
		byID[row.AccountID] = row
	}
	assert.True(t, byID[1020].Debit.Equal(dec("5700.00")))
	assert.True(t, byID[1020].Credit.IsZero())
	assert.True(t, byID[4010].Credit.Equal(dec("1500.00")))
	assert.True(t, byID[4010].Debit.IsZero())
}

func TestTrialBalance_Empty(t *testing.T) {
	tb := TrialBalance(nil, testChart(), time.Time{}, time.Time{})
	assert.True(t, tb.DebitTotal.IsZero())
	assert.True(t, tb.CreditTotal.IsZero())
}

func TestLedgerRunningBalance(t *testing.T) {
	// d1 < d2 < d3 touching the same account: (100,0), (0,40), (0,10).
	entries := []model.JournalEntry{
		entry("2025-01-001", date(2025, 1, 1), 1020, 4010, "100.00"),
		entry("2025-01-002", date(2025, 1, 2), 5100, 1020, "40.00"),
		entry("2025-01-003", date(2025, 1, 3), 5100, 1020, "10.00"),
	}

	ledger := Ledger(entries, testChart(), 1020)
	require.Len(t, ledger.Rows, 3)
	assert.True(t, ledger.Rows[0].Balance.Equal(dec("100.00")))
	assert.True(t, ledger.Rows[1].Balance.Equal(dec("60.00")))
	assert.True(t, ledger.Rows[2].Balance.Equal(dec("50.00")))
	assert.True(t, ledger.Closing.Equal(dec("50.00")))
	assert.Equal(t, "Bank", ledger.AccountName)
}

func TestLedger_StableWithinSameDate(t *testing.T) {
	d := date(2025, 1, 15)
	entries := []model.JournalEntry{
		entry("2025-01-001", d, 1020, 4010, "10.00"),
		entry("2025-01-002", d, 1020, 4010, "20.00"),
		entry("2025-01-003", d, 1020, 4010, "30.00"),
	}

	ledger := Ledger(entries, testChart(), 1020)
	require.Len(t, ledger.Rows, 3)
	assert.Equal(t, "2025-01-001", ledger.Rows[0].EntryID, "document order kept on date ties")
	assert.Equal(t, "2025-01-003", ledger.Rows[2].EntryID)
	assert.True(t, ledger.Rows[2].Balance.Equal(dec("60.00")))
}

// Deleting an account must not break report rendering: its activity
// drops out of the typed statements, while the ledger view still
// iterates raw entries and labels the account with the placeholder.
func TestOrphanedAccountHandling(t *testing.T) {
	// Chart without account 4010 (deleted after posting).
	chart := accounts.NewChart([]model.Account{
		{ID: 1020, Name: "Bank", Type: model.AccountTypeAsset},
	})
	entries := []model.JournalEntry{
		entry("2025-01-001", date(2025, 1, 10), 1020, 4010, "100.00"),
	}

	pnl := ProfitAndLoss(entries, chart, date(2025, 1, 1), date(2025, 1, 31))
	assert.True(t, pnl.RevenueTotal.IsZero(), "orphaned revenue vanishes from the P&L")

	bs := BalanceSheet(entries, chart, date(2025, 1, 1), date(2025, 1, 31))
	assert.True(t, bs.AssetTotal.Equal(dec("100.00")))
	assert.False(t, bs.Balanced(), "dropped activity surfaces in the balance check")
	assert.True(t, bs.OutOfBalance.Equal(dec("100.00")))

	ledger := Ledger(entries, chart, 4010)
	require.Len(t, ledger.Rows, 1, "raw ledger still shows the orphaned line")
	assert.Equal(t, accounts.PlaceholderName, ledger.AccountName)
	assert.True(t, ledger.Closing.Equal(dec("-100.00")))
}
