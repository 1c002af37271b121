package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/openbooks-dev/openbooks/internal/accounts"
	"github.com/openbooks-dev/openbooks/internal/dashboard"
	"github.com/openbooks-dev/openbooks/internal/export"
	"github.com/openbooks-dev/openbooks/internal/journal"
)

func newDashboardCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "dashboard",
		Short: "Business overview: monthly series, totals, and recent activity",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := openBooks(cmd)
			if err != nil {
				return err
			}

			chart, err := accounts.NewService(a.store).Snapshot()
			if err != nil {
				return err
			}
			entries, err := journal.NewService(a.store, chart).All()
			if err != nil {
				return err
			}

			metrics := dashboard.Build(entries, chart)
			f := a.formatter()
			out := cmd.OutOrStdout()

			if err := export.WriteText(out, f.DashboardTable(metrics)); err != nil {
				return err
			}
			fmt.Fprintf(out, "\nProfit margin: %s%%\n", metrics.MarginPercent.StringFixed(1))

			if len(metrics.RecentEntries) > 0 {
				recent := export.Table{
					Title:   "Recent Entries",
					Columns: []string{"Date", "Entry", "Narration", "Amount"},
				}
				for _, e := range metrics.RecentEntries {
					recent.Rows = append(recent.Rows, []string{
						e.Date.Format(f.DateFormat), e.ID, e.Narration, f.Money(e.TotalDebit()),
					})
				}
				fmt.Fprintln(out)
				if err := export.WriteText(out, recent); err != nil {
					return err
				}
			}
			return nil
		},
	}
}
