package commands

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// run executes the CLI in-process and returns combined output.
func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	root := NewRootCommand()
	var buf bytes.Buffer
	root.SetOut(&buf)
	root.SetErr(&buf)
	root.SetArgs(args)
	err := root.Execute()
	return buf.String(), err
}

// initBooks initializes a books directory without git so tests stay
// hermetic.
func initBooks(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	_, err := run(t, "init", dir, "--name", "Test Biz", "--no-git")
	require.NoError(t, err)
	return dir
}

func TestInitCreatesStructure(t *testing.T) {
	dir := initBooks(t)

	for _, d := range []string{"accounts", "journal", "parties", "inventory", "invoices", "exports"} {
		info, err := os.Stat(filepath.Join(dir, d))
		require.NoError(t, err, "directory %s should exist", d)
		assert.True(t, info.IsDir())
	}

	data, err := os.ReadFile(filepath.Join(dir, "openbooks.yaml"))
	require.NoError(t, err)
	assert.Contains(t, string(data), "name: Test Biz")
}

func TestInitSeedsChart(t *testing.T) {
	dir := initBooks(t)

	out, err := run(t, "account", "list", "-d", dir)
	require.NoError(t, err)
	assert.Contains(t, out, "Cash")
	assert.Contains(t, out, "Sales Revenue")
}

func TestAccountAddAndRemove(t *testing.T) {
	dir := initBooks(t)

	_, err := run(t, "account", "add", "-d", dir,
		"--id", "5400", "--name", "Marketing", "--type", "expense", "--code", "5400")
	require.NoError(t, err)

	out, err := run(t, "account", "list", "-d", dir)
	require.NoError(t, err)
	assert.Contains(t, out, "Marketing")

	_, err = run(t, "account", "rm", "5400", "-d", dir)
	require.NoError(t, err)

	out, err = run(t, "account", "list", "-d", dir)
	require.NoError(t, err)
	assert.NotContains(t, out, "Marketing")
}

func TestAccountRemoveSystemRefused(t *testing.T) {
	dir := initBooks(t)

	_, err := run(t, "account", "rm", "1010", "-d", dir)
	require.Error(t, err)
}

func TestPostAndTrialBalance(t *testing.T) {
	dir := initBooks(t)

	out, err := run(t, "post", "-d", dir,
		"--date", "2025-04-01", "--memo", "April rent",
		"--debit", "5100=1200", "--credit", "1020=1200")
	require.NoError(t, err)
	assert.Contains(t, out, "Posted entry 2025-04-001")

	out, err = run(t, "report", "trial-balance", "-d", dir)
	require.NoError(t, err)
	assert.Contains(t, out, "Rent")
	assert.Contains(t, out, "$1,200.00")
}

func TestPostUnbalancedRefused(t *testing.T) {
	dir := initBooks(t)

	_, err := run(t, "post", "-d", dir,
		"--date", "2025-04-01", "--memo", "oops",
		"--debit", "5100=1200", "--credit", "1020=1100")
	require.Error(t, err)

	out, err := run(t, "entries", "list", "-d", dir)
	require.NoError(t, err)
	assert.NotContains(t, out, "oops")
}

func TestEntriesSearchAndRemove(t *testing.T) {
	dir := initBooks(t)

	_, err := run(t, "post", "-d", dir,
		"--date", "2025-04-01", "--memo", "April rent",
		"--debit", "5100=1200", "--credit", "1020=1200")
	require.NoError(t, err)
	_, err = run(t, "post", "-d", dir,
		"--date", "2025-04-02", "--memo", "Cash sale",
		"--debit", "1010=500", "--credit", "4010=500")
	require.NoError(t, err)

	out, err := run(t, "entries", "search", "rent", "-d", dir)
	require.NoError(t, err)
	assert.Contains(t, out, "2025-04-001")
	assert.NotContains(t, out, "2025-04-002")

	_, err = run(t, "entries", "rm", "2025-04-001", "-d", dir)
	require.NoError(t, err)

	out, err = run(t, "entries", "list", "-d", dir)
	require.NoError(t, err)
	assert.NotContains(t, out, "April rent")
	assert.Contains(t, out, "Cash sale")
}

func TestReportCSVExport(t *testing.T) {
	dir := initBooks(t)

	_, err := run(t, "post", "-d", dir,
		"--date", "2025-04-02", "--memo", "Cash sale",
		"--debit", "1010=500", "--credit", "4010=500")
	require.NoError(t, err)

	csvPath := filepath.Join(dir, "exports", "pnl.csv")
	out, err := run(t, "report", "pnl", "-d", dir, "--csv", csvPath)
	require.NoError(t, err)
	assert.Contains(t, out, "Exported to")

	data, err := os.ReadFile(csvPath)
	require.NoError(t, err)
	assert.Contains(t, string(data), "Sales Revenue")
	assert.Contains(t, string(data), "Net Profit")
}

func TestBalanceSheetWarnsAfterAccountRemoval(t *testing.T) {
	dir := initBooks(t)

	_, err := run(t, "account", "add", "-d", dir,
		"--id", "4100", "--name", "Consulting", "--type", "revenue")
	require.NoError(t, err)
	_, err = run(t, "post", "-d", dir,
		"--date", "2025-04-02", "--memo", "Consulting gig",
		"--debit", "1020=900", "--credit", "4100=900")
	require.NoError(t, err)
	_, err = run(t, "account", "rm", "4100", "-d", dir)
	require.NoError(t, err)

	out, err := run(t, "report", "balance-sheet", "-d", dir)
	require.NoError(t, err)
	assert.Contains(t, out, "out of balance")
}

func TestPartyLifecycle(t *testing.T) {
	dir := initBooks(t)

	_, err := run(t, "party", "add", "-d", dir, "--name", "Globex", "--kind", "customer", "--terms", "30")
	require.NoError(t, err)
	_, err = run(t, "party", "add", "-d", dir, "--name", "Initech", "--kind", "vendor")
	require.NoError(t, err)

	out, err := run(t, "party", "list", "-d", dir, "--kind", "customer")
	require.NoError(t, err)
	assert.Contains(t, out, "Globex")
	assert.NotContains(t, out, "Initech")

	_, err = run(t, "party", "rm", "Globex", "-d", dir)
	require.NoError(t, err)

	out, err = run(t, "party", "list", "-d", dir)
	require.NoError(t, err)
	assert.NotContains(t, out, "Globex")
}

func TestInventoryLifecycle(t *testing.T) {
	dir := initBooks(t)

	_, err := run(t, "inventory", "add-item", "-d", dir,
		"--sku", "WIDGET-01", "--name", "Widget", "--price", "50", "--reorder", "5")
	require.NoError(t, err)
	_, err = run(t, "inventory", "add-warehouse", "-d", dir, "--name", "Main", "--location", "Springfield")
	require.NoError(t, err)

	_, err = run(t, "inventory", "adjust", "-d", dir,
		"--sku", "WIDGET-01", "--warehouse", "Main", "--qty", "3", "--ref", "PO-1")
	require.NoError(t, err)

	out, err := run(t, "inventory", "list", "-d", dir)
	require.NoError(t, err)
	assert.Contains(t, out, "WIDGET-01")
	assert.Contains(t, out, "LOW", "3 on hand is below the reorder point of 5")

	out, err = run(t, "inventory", "ledger", "WIDGET-01", "-d", dir)
	require.NoError(t, err)
	assert.Contains(t, out, "PO-1")
}

func TestInvoiceLifecycle(t *testing.T) {
	dir := initBooks(t)

	_, err := run(t, "party", "add", "-d", dir, "--name", "Globex", "--kind", "customer", "--terms", "30")
	require.NoError(t, err)
	_, err = run(t, "inventory", "add-item", "-d", dir,
		"--sku", "WIDGET-01", "--name", "Widget", "--price", "50")
	require.NoError(t, err)
	_, err = run(t, "inventory", "add-warehouse", "-d", dir, "--name", "Main")
	require.NoError(t, err)
	_, err = run(t, "inventory", "adjust", "-d", dir,
		"--sku", "WIDGET-01", "--warehouse", "Main", "--qty", "10", "--ref", "PO-1")
	require.NoError(t, err)

	out, err := run(t, "invoice", "create", "-d", dir,
		"--customer", "Globex", "--warehouse", "Main", "--line", "WIDGET-01:2:10:18")
	require.NoError(t, err)
	assert.Contains(t, out, "$106.20")
	invoiceID := strings.Fields(out)[3]

	out, err = run(t, "invoice", "issue", invoiceID, "-d", dir)
	require.NoError(t, err)
	assert.Contains(t, out, "INV-")

	out, err = run(t, "inventory", "list", "-d", dir)
	require.NoError(t, err)
	assert.Contains(t, out, "8", "issuing deducts invoiced stock")

	_, err = run(t, "invoice", "pay", invoiceID, "-d", dir)
	require.NoError(t, err)

	out, err = run(t, "invoice", "list", "-d", dir)
	require.NoError(t, err)
	assert.Contains(t, out, "paid")
}

func TestDashboard(t *testing.T) {
	dir := initBooks(t)

	_, err := run(t, "post", "-d", dir,
		"--date", "2025-04-02", "--memo", "Cash sale",
		"--debit", "1010=400", "--credit", "4010=400")
	require.NoError(t, err)
	_, err = run(t, "post", "-d", dir,
		"--date", "2025-04-05", "--memo", "Rent",
		"--debit", "5100=100", "--credit", "1010=100")
	require.NoError(t, err)

	out, err := run(t, "dashboard", "-d", dir)
	require.NoError(t, err)
	assert.Contains(t, out, "2025-04")
	assert.Contains(t, out, "Profit margin: 75.0%")
	assert.Contains(t, out, "Recent Entries")
}

func TestSettingsShowAndSet(t *testing.T) {
	dir := initBooks(t)

	out, err := run(t, "settings", "show", "-d", dir)
	require.NoError(t, err)
	assert.Contains(t, out, "Test Biz")
	assert.Contains(t, out, "USD")

	_, err = run(t, "settings", "set", "-d", dir, "--currency", "EUR", "--email", "hi@testbiz.dev")
	require.NoError(t, err)

	out, err = run(t, "settings", "show", "-d", dir)
	require.NoError(t, err)
	assert.Contains(t, out, "EUR")
	assert.Contains(t, out, "hi@testbiz.dev")
	assert.Contains(t, out, "Test Biz", "unset fields keep their value")
}

func TestUninitializedDirRefused(t *testing.T) {
	dir := t.TempDir()
	_, err := run(t, "account", "list", "-d", dir)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "openbooks init")
}
