package export

import (
	"fmt"
	"time"

	"github.com/openbooks-dev/openbooks/internal/dashboard"
	"github.com/openbooks-dev/openbooks/internal/reports"
)

func (f Formatter) periodTitle(name string, from, to time.Time) string {
	switch {
	case !from.IsZero() && !to.IsZero():
		return fmt.Sprintf("%s (%s to %s)", name, from.Format(f.DateFormat), to.Format(f.DateFormat))
	case !from.IsZero():
		return fmt.Sprintf("%s (from %s)", name, from.Format(f.DateFormat))
	case !to.IsZero():
		return fmt.Sprintf("%s (through %s)", name, to.Format(f.DateFormat))
	default:
		return name
	}
}

// ProfitAndLossTable renders a P&L as a section-per-row table.
func (f Formatter) ProfitAndLossTable(r reports.ProfitAndLossReport) Table {
	t := Table{
		Title:   f.periodTitle("Profit & Loss", r.From, r.To),
		Columns: []string{"Section", "Code", "Account", "Amount"},
	}
	for _, a := range r.Revenue {
		t.Rows = append(t.Rows, []string{"Revenue", a.Code, a.Name, f.Money(a.Amount)})
	}
	t.Rows = append(t.Rows, []string{"Revenue", "", "Total Revenue", f.Money(r.RevenueTotal)})
	for _, a := range r.Expenses {
		t.Rows = append(t.Rows, []string{"Expenses", a.Code, a.Name, f.Money(a.Amount)})
	}
	t.Rows = append(t.Rows, []string{"Expenses", "", "Total Expenses", f.Money(r.ExpenseTotal)})
	t.Footer = []string{"", "", "Net Profit", f.Money(r.NetProfit)}
	return t
}

// BalanceSheetTable renders a balance sheet. An out-of-balance sheet
// gets an extra warning row so the discrepancy is never silent.
func (f Formatter) BalanceSheetTable(r reports.BalanceSheetReport) Table {
	t := Table{
		Title:   f.periodTitle("Balance Sheet", r.From, r.To),
		Columns: []string{"Section", "Code", "Account", "Amount"},
	}
	for _, a := range r.Assets {
		t.Rows = append(t.Rows, []string{"Assets", a.Code, a.Name, f.Money(a.Amount)})
	}
	t.Rows = append(t.Rows, []string{"Assets", "", "Total Assets", f.Money(r.AssetTotal)})
	for _, a := range r.Liabilities {
		t.Rows = append(t.Rows, []string{"Liabilities", a.Code, a.Name, f.Money(a.Amount)})
	}
	t.Rows = append(t.Rows, []string{"Liabilities", "", "Total Liabilities", f.Money(r.LiabilityTotal)})
	for _, a := range r.Equity {
		t.Rows = append(t.Rows, []string{"Equity", a.Code, a.Name, f.Money(a.Amount)})
	}
	t.Rows = append(t.Rows,
		[]string{"Equity", "", "Total Equity", f.Money(r.EquityTotal)},
		[]string{"Equity", "", "Net Profit", f.Money(r.NetProfit)},
	)
	if !r.Balanced() {
		t.Rows = append(t.Rows, []string{"Warning", "", "Out of balance", f.Money(r.OutOfBalance)})
	}
	t.Footer = []string{"", "", "Total Assets", f.Money(r.AssetTotal)}
	return t
}

// TrialBalanceTable renders a trial balance with matching debit and
// credit totals in the footer.
func (f Formatter) TrialBalanceTable(r reports.TrialBalanceReport) Table {
	t := Table{
		Title:   f.periodTitle("Trial Balance", r.From, r.To),
		Columns: []string{"Code", "Account", "Type", "Debit", "Credit"},
	}
	for _, row := range r.Rows {
		t.Rows = append(t.Rows, []string{
			row.Code, row.Name, string(row.Type), f.Money(row.Debit), f.Money(row.Credit),
		})
	}
	t.Footer = []string{"", "Totals", "", f.Money(r.DebitTotal), f.Money(r.CreditTotal)}
	return t
}

// LedgerTable renders a single account's running-balance ledger.
func (f Formatter) LedgerTable(r reports.LedgerReport) Table {
	t := Table{
		Title:   fmt.Sprintf("Ledger: %s (account %d)", r.AccountName, r.AccountID),
		Columns: []string{"Date", "Entry", "Reference", "Description", "Debit", "Credit", "Balance"},
	}
	for _, row := range r.Rows {
		t.Rows = append(t.Rows, []string{
			row.Date.Format(f.DateFormat), row.EntryID, row.Reference, row.Description,
			f.Money(row.Debit), f.Money(row.Credit), f.Money(row.Balance),
		})
	}
	t.Footer = []string{"", "", "", "Closing", "", "", f.Money(r.Closing)}
	return t
}

// DashboardTable renders the per-month revenue/expense/profit series.
func (f Formatter) DashboardTable(m dashboard.Metrics) Table {
	t := Table{
		Title:   "Monthly Performance",
		Columns: []string{"Month", "Revenue", "Expenses", "Profit"},
	}
	for _, month := range m.Months {
		t.Rows = append(t.Rows, []string{
			month.Month, f.Money(month.Revenue), f.Money(month.Expense), f.Money(month.Profit),
		})
	}
	t.Footer = []string{"Total", f.Money(m.Revenue), f.Money(m.Expense), f.Money(m.Profit)}
	return t
}
