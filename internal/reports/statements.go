package reports

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/openbooks-dev/openbooks/internal/accounts"
	"github.com/openbooks-dev/openbooks/internal/journal"
	"github.com/openbooks-dev/openbooks/internal/model"
)

// AccountAmount is one account's contribution to a report section,
// already sign-normalized for display.
type AccountAmount struct {
	AccountID int
	Code      string
	Name      string
	Amount    decimal.Decimal
}

// ProfitAndLossReport is the derived P&L statement.
type ProfitAndLossReport struct {
	From, To     time.Time
	Revenue      []AccountAmount
	Expenses     []AccountAmount
	RevenueTotal decimal.Decimal
	ExpenseTotal decimal.Decimal
	GrossProfit  decimal.Decimal
	NetProfit    decimal.Decimal
}

// displayAmount normalizes a raw balance for display: debit-normal
// accounts keep their sign, credit-normal accounts are negated.
func displayAmount(a model.Account, balance decimal.Decimal) decimal.Decimal {
	if a.Type.DebitNormal() {
		return balance
	}
	return balance.Neg()
}

// ProfitAndLoss derives a P&L from pre-filtered entries. Revenue
// accounts are credit-normal, so their amount is the negated balance;
// expense accounts carry their balance as-is. With no COGS distinction
// in the chart, gross profit mirrors net profit.
func ProfitAndLoss(entries []model.JournalEntry, chart *accounts.Chart, from, to time.Time) ProfitAndLossReport {
	balances := Balances(entries)

	report := ProfitAndLossReport{From: from, To: to}
	for _, a := range chart.ByType(model.AccountTypeRevenue) {
		amount := displayAmount(a, balances[a.ID])
		report.Revenue = append(report.Revenue, AccountAmount{AccountID: a.ID, Code: a.Code, Name: a.Name, Amount: amount})
		report.RevenueTotal = report.RevenueTotal.Add(amount)
	}
	for _, a := range chart.ByType(model.AccountTypeExpense) {
		amount := displayAmount(a, balances[a.ID])
		report.Expenses = append(report.Expenses, AccountAmount{AccountID: a.ID, Code: a.Code, Name: a.Name, Amount: amount})
		report.ExpenseTotal = report.ExpenseTotal.Add(amount)
	}

	report.NetProfit = report.RevenueTotal.Sub(report.ExpenseTotal)
	report.GrossProfit = report.NetProfit
	return report
}

// BalanceSheetReport is the derived balance sheet.
type BalanceSheetReport struct {
	From, To       time.Time
	Assets         []AccountAmount
	Liabilities    []AccountAmount
	Equity         []AccountAmount
	AssetTotal     decimal.Decimal
	LiabilityTotal decimal.Decimal
	EquityTotal    decimal.Decimal
	// NetProfit is the period's P&L result, carried so consumers can
	// check the accounting equation without a retained-earnings close.
	NetProfit decimal.Decimal
	// OutOfBalance = assets - (liabilities + equity + net profit).
	// Zero for a self-consistent ledger; non-zero usually means
	// activity against deleted accounts has dropped out of the typed
	// sections.
	OutOfBalance decimal.Decimal
}

// Balanced reports whether the accounting equation holds within the
// posting tolerance.
func (r BalanceSheetReport) Balanced() bool {
	return r.OutOfBalance.Abs().LessThanOrEqual(journal.BalanceTolerance)
}

// BalanceSheet derives a balance sheet from pre-filtered entries.
// Assets keep their raw debit-normal balance; liabilities and equity
// are negated to display credit-normal.
func BalanceSheet(entries []model.JournalEntry, chart *accounts.Chart, from, to time.Time) BalanceSheetReport {
	balances := Balances(entries)

	report := BalanceSheetReport{From: from, To: to}
	for _, a := range chart.ByType(model.AccountTypeAsset) {
		amount := displayAmount(a, balances[a.ID])
		report.Assets = append(report.Assets, AccountAmount{AccountID: a.ID, Code: a.Code, Name: a.Name, Amount: amount})
		report.AssetTotal = report.AssetTotal.Add(amount)
	}
	for _, a := range chart.ByType(model.AccountTypeLiability) {
		amount := displayAmount(a, balances[a.ID])
		report.Liabilities = append(report.Liabilities, AccountAmount{AccountID: a.ID, Code: a.Code, Name: a.Name, Amount: amount})
		report.LiabilityTotal = report.LiabilityTotal.Add(amount)
	}
	for _, a := range chart.ByType(model.AccountTypeEquity) {
		amount := displayAmount(a, balances[a.ID])
		report.Equity = append(report.Equity, AccountAmount{AccountID: a.ID, Code: a.Code, Name: a.Name, Amount: amount})
		report.EquityTotal = report.EquityTotal.Add(amount)
	}

	report.NetProfit = ProfitAndLoss(entries, chart, from, to).NetProfit
	report.OutOfBalance = report.AssetTotal.
		Sub(report.LiabilityTotal).
		Sub(report.EquityTotal).
		Sub(report.NetProfit)
	return report
}

// TrialBalanceRow is one account's net position.
type TrialBalanceRow struct {
	AccountID int
	Code      string
	Name      string
	Type      model.AccountType
	Debit     decimal.Decimal
	Credit    decimal.Decimal
}

// TrialBalanceReport lists every account's net debit or credit
// position. Because each entry balances individually, the two totals
// always match.
type TrialBalanceReport struct {
	From, To    time.Time
	Rows        []TrialBalanceRow
	DebitTotal  decimal.Decimal
	CreditTotal decimal.Decimal
}

// TrialBalance derives a trial balance from pre-filtered entries.
func TrialBalance(entries []model.JournalEntry, chart *accounts.Chart, from, to time.Time) TrialBalanceReport {
	balances := Balances(entries)

	report := TrialBalanceReport{From: from, To: to}
	for _, a := range chart.All() {
		balance := balances[a.ID]
		row := TrialBalanceRow{AccountID: a.ID, Code: a.Code, Name: a.Name, Type: a.Type}
		if balance.IsPositive() {
			row.Debit = balance
		} else {
			row.Credit = balance.Neg()
		}
		report.Rows = append(report.Rows, row)
		report.DebitTotal = report.DebitTotal.Add(row.Debit)
		report.CreditTotal = report.CreditTotal.Add(row.Credit)
	}
	return report
}
