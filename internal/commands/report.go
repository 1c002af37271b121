package commands

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/openbooks-dev/openbooks/internal/accounts"
	"github.com/openbooks-dev/openbooks/internal/export"
	"github.com/openbooks-dev/openbooks/internal/journal"
	"github.com/openbooks-dev/openbooks/internal/model"
	"github.com/openbooks-dev/openbooks/internal/reports"
)

func newReportCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "report",
		Short: "Derive financial reports from the journal",
	}
	cmd.AddCommand(
		newPnlCommand(),
		newBalanceSheetCommand(),
		newTrialBalanceCommand(),
		newLedgerCommand(),
	)
	return cmd
}

// reportInputs loads what every report needs: the chart and the
// date-filtered entries.
func reportInputs(cmd *cobra.Command, fromStr, toStr string) (*app, *accounts.Chart, []model.JournalEntry, *reportPeriod, error) {
	a, err := openBooks(cmd)
	if err != nil {
		return nil, nil, nil, nil, err
	}
	from, err := parseDate(fromStr)
	if err != nil {
		return nil, nil, nil, nil, err
	}
	to, err := parseDate(toStr)
	if err != nil {
		return nil, nil, nil, nil, err
	}

	chart, err := accounts.NewService(a.store).Snapshot()
	if err != nil {
		return nil, nil, nil, nil, err
	}
	entries, err := journal.NewService(a.store, chart).All()
	if err != nil {
		return nil, nil, nil, nil, err
	}
	entries = journal.FilterByDateRange(entries, from, to)
	return a, chart, entries, &reportPeriod{from: from, to: to}, nil
}

type reportPeriod struct {
	from, to time.Time
}

// render writes the table as text, or saves it as CSV when a path was
// given.
func render(cmd *cobra.Command, table export.Table, csvPath string) error {
	if csvPath == "" {
		return export.WriteText(cmd.OutOrStdout(), table)
	}
	written, err := export.SaveCSV(csvPath, table)
	if err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Exported to %s\n", written)
	return nil
}

func newPnlCommand() *cobra.Command {
	var fromStr, toStr, csvPath string

	cmd := &cobra.Command{
		Use:   "pnl",
		Short: "Profit and loss statement",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			a, chart, entries, period, err := reportInputs(cmd, fromStr, toStr)
			if err != nil {
				return err
			}
			r := reports.ProfitAndLoss(entries, chart, period.from, period.to)
			return render(cmd, a.formatter().ProfitAndLossTable(r), csvPath)
		},
	}
	addReportFlags(cmd, &fromStr, &toStr, &csvPath)
	return cmd
}

func newBalanceSheetCommand() *cobra.Command {
	var fromStr, toStr, csvPath string

	cmd := &cobra.Command{
		Use:   "balance-sheet",
		Short: "Balance sheet",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			a, chart, entries, period, err := reportInputs(cmd, fromStr, toStr)
			if err != nil {
				return err
			}
			r := reports.BalanceSheet(entries, chart, period.from, period.to)
			if err := render(cmd, a.formatter().BalanceSheetTable(r), csvPath); err != nil {
				return err
			}
			if !r.Balanced() {
				fmt.Fprintf(cmd.ErrOrStderr(),
					"warning: balance sheet is out of balance by %s (activity against removed accounts?)\n",
					a.formatter().Money(r.OutOfBalance))
			}
			return nil
		},
	}
	addReportFlags(cmd, &fromStr, &toStr, &csvPath)
	return cmd
}

func newTrialBalanceCommand() *cobra.Command {
	var fromStr, toStr, csvPath string

	cmd := &cobra.Command{
		Use:   "trial-balance",
		Short: "Trial balance",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			a, chart, entries, period, err := reportInputs(cmd, fromStr, toStr)
			if err != nil {
				return err
			}
			r := reports.TrialBalance(entries, chart, period.from, period.to)
			return render(cmd, a.formatter().TrialBalanceTable(r), csvPath)
		},
	}
	addReportFlags(cmd, &fromStr, &toStr, &csvPath)
	return cmd
}

func newLedgerCommand() *cobra.Command {
	var fromStr, toStr, csvPath string

	cmd := &cobra.Command{
		Use:   "ledger <account-id>",
		Short: "Running-balance ledger for one account",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var accountID int
			if _, err := fmt.Sscanf(args[0], "%d", &accountID); err != nil {
				return fmt.Errorf("invalid account ID %q", args[0])
			}

			a, chart, entries, _, err := reportInputs(cmd, fromStr, toStr)
			if err != nil {
				return err
			}
			r := reports.Ledger(entries, chart, accountID)
			return render(cmd, a.formatter().LedgerTable(r), csvPath)
		},
	}
	addReportFlags(cmd, &fromStr, &toStr, &csvPath)
	return cmd
}

func addReportFlags(cmd *cobra.Command, from, to, csvPath *string) {
	cmd.Flags().StringVar(from, "from", "", "start date (YYYY-MM-DD, inclusive)")
	cmd.Flags().StringVar(to, "to", "", "end date (YYYY-MM-DD, inclusive)")
	cmd.Flags().StringVar(csvPath, "csv", "", "export to a CSV file instead of printing")
}
