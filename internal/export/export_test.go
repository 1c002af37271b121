package export

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/openbooks-dev/openbooks/internal/reports"
)

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func TestMoneyFormatting(t *testing.T) {
	f := NewFormatter("USD", "")
	assert.Equal(t, "$1,234.50", f.Money(dec("1234.50")))
	assert.Equal(t, "-$10.00", f.Money(dec("-10")))

	inr := NewFormatter("INR", "")
	assert.Contains(t, inr.Money(dec("100")), "100.00")

	unknown := NewFormatter("ZZZ", "")
	assert.Equal(t, "99.90", unknown.Money(dec("99.9")))
}

func TestWriteCSV(t *testing.T) {
	table := Table{
		Columns: []string{"Code", "Amount"},
		Rows:    [][]string{{"4010", "$100.00"}},
		Footer:  []string{"Total", "$100.00"},
	}

	var buf bytes.Buffer
	require.NoError(t, WriteCSV(&buf, table))

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 3)
	assert.Equal(t, "Code,Amount", lines[0])
	assert.Equal(t, "4010,$100.00", lines[1])
	assert.Equal(t, "Total,$100.00", lines[2])
}

func TestWriteText(t *testing.T) {
	table := Table{
		Title:   "Trial Balance",
		Columns: []string{"Code", "Amount"},
		Rows:    [][]string{{"4010", "$100.00"}},
	}

	var buf bytes.Buffer
	require.NoError(t, WriteText(&buf, table))
	out := buf.String()
	assert.Contains(t, out, "Trial Balance")
	assert.Contains(t, out, "4010")
}

func TestSaveCSV(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "exports", "pnl.csv")

	written, err := SaveCSV(path, Table{Columns: []string{"a"}, Rows: [][]string{{"1"}}})
	require.NoError(t, err)

	data, err := os.ReadFile(written)
	require.NoError(t, err)
	assert.Equal(t, "a\n1\n", string(data))
}

func TestBalanceSheetTableWarnsWhenUnbalanced(t *testing.T) {
	f := NewFormatter("USD", "2006-01-02")

	balanced := reports.BalanceSheetReport{
		AssetTotal: dec("100"), NetProfit: dec("100"),
		OutOfBalance: decimal.Zero,
	}
	table := f.BalanceSheetTable(balanced)
	for _, row := range table.Rows {
		assert.NotEqual(t, "Warning", row[0])
	}

	skewed := reports.BalanceSheetReport{
		AssetTotal:   dec("100"),
		OutOfBalance: dec("100"),
	}
	table = f.BalanceSheetTable(skewed)
	var warned bool
	for _, row := range table.Rows {
		if row[0] == "Warning" {
			warned = true
			assert.Equal(t, "$100.00", row[3])
		}
	}
	assert.True(t, warned, "unbalanced sheet must carry a warning row")
}

func TestTrialBalanceTableFooterTotals(t *testing.T) {
	f := NewFormatter("USD", "2006-01-02")
	r := reports.TrialBalanceReport{
		Rows: []reports.TrialBalanceRow{
			{Code: "1020", Name: "Bank", Type: "asset", Debit: dec("100")},
			{Code: "4010", Name: "Sales Revenue", Type: "revenue", Credit: dec("100")},
		},
		DebitTotal:  dec("100"),
		CreditTotal: dec("100"),
	}

	table := f.TrialBalanceTable(r)
	require.Len(t, table.Rows, 2)
	assert.Equal(t, []string{"", "Totals", "", "$100.00", "$100.00"}, table.Footer)
}

func TestPeriodTitle(t *testing.T) {
	f := NewFormatter("USD", "2006-01-02")
	from := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	to := time.Date(2025, 3, 31, 0, 0, 0, 0, time.UTC)

	assert.Equal(t, "Profit & Loss", f.periodTitle("Profit & Loss", time.Time{}, time.Time{}))
	assert.Equal(t, "Profit & Loss (from 2025-01-01)", f.periodTitle("Profit & Loss", from, time.Time{}))
	assert.Equal(t, "Profit & Loss (2025-01-01 to 2025-03-31)", f.periodTitle("Profit & Loss", from, to))
}
