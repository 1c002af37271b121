package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/openbooks-dev/openbooks/internal/accounts"
	"github.com/openbooks-dev/openbooks/internal/export"
	"github.com/openbooks-dev/openbooks/internal/journal"
	"github.com/openbooks-dev/openbooks/internal/model"
)

func newEntriesCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "entries",
		Short: "List, search, and remove journal entries",
	}
	cmd.AddCommand(newEntriesListCommand(), newEntriesSearchCommand(), newEntriesRemoveCommand())
	return cmd
}

func newEntriesListCommand() *cobra.Command {
	var fromStr, toStr string

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List journal entries",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := openBooks(cmd)
			if err != nil {
				return err
			}
			from, err := parseDate(fromStr)
			if err != nil {
				return err
			}
			to, err := parseDate(toStr)
			if err != nil {
				return err
			}

			entries, err := journal.NewService(a.store, nil).All()
			if err != nil {
				return err
			}
			entries = journal.FilterByDateRange(entries, from, to)

			chart, err := accounts.NewService(a.store).Snapshot()
			if err != nil {
				return err
			}
			return export.WriteText(cmd.OutOrStdout(), entriesTable(a, chart, entries))
		},
	}

	cmd.Flags().StringVar(&fromStr, "from", "", "start date (YYYY-MM-DD, inclusive)")
	cmd.Flags().StringVar(&toStr, "to", "", "end date (YYYY-MM-DD, inclusive)")
	return cmd
}

func newEntriesSearchCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "search <query>",
		Short: "Search entries by reference, narration, description, or account name",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := openBooks(cmd)
			if err != nil {
				return err
			}

			entries, err := journal.NewService(a.store, nil).All()
			if err != nil {
				return err
			}
			chart, err := accounts.NewService(a.store).Snapshot()
			if err != nil {
				return err
			}

			matched := journal.Search(entries, chart, args[0])
			return export.WriteText(cmd.OutOrStdout(), entriesTable(a, chart, matched))
		},
	}
}

func newEntriesRemoveCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "rm <entry-id>",
		Short: "Remove a journal entry",
		Long:  "Remove an entry by ID. Entries have no edit path; correct a mistake by removing and re-posting.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := openBooks(cmd)
			if err != nil {
				return err
			}

			if err := journal.NewService(a.store, nil).Delete(args[0]); err != nil {
				return err
			}

			a.autoCommit("entries: remove " + args[0])
			fmt.Fprintf(cmd.OutOrStdout(), "Removed entry %s\n", args[0])
			return nil
		},
	}
}

// entriesTable renders entries one journal line per row.
func entriesTable(a *app, names journal.AccountNamer, entries []model.JournalEntry) export.Table {
	f := a.formatter()
	table := export.Table{
		Columns: []string{"Date", "Entry", "Reference", "Account", "Description", "Debit", "Credit"},
	}
	for _, e := range entries {
		for _, line := range e.Lines {
			table.Rows = append(table.Rows, []string{
				e.Date.Format(f.DateFormat), e.ID, e.Reference,
				names.Name(line.AccountID), line.Description,
				f.Money(line.Debit), f.Money(line.Credit),
			})
		}
	}
	return table
}
