package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/openbooks-dev/openbooks/internal/accounts"
	"github.com/openbooks-dev/openbooks/internal/export"
	"github.com/openbooks-dev/openbooks/internal/model"
)

func newAccountCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "account",
		Short: "Manage the chart of accounts",
	}
	cmd.AddCommand(newAccountAddCommand(), newAccountListCommand(), newAccountRemoveCommand())
	return cmd
}

func newAccountAddCommand() *cobra.Command {
	var (
		accountID   int
		name        string
		code        string
		accountType string
		description string
	)

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Add an account",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := openBooks(cmd)
			if err != nil {
				return err
			}

			account := model.Account{
				ID:          accountID,
				Name:        name,
				Code:        code,
				Type:        model.AccountType(accountType),
				Description: description,
			}
			if err := accounts.NewService(a.store).Create(account); err != nil {
				return err
			}

			a.autoCommit(fmt.Sprintf("account: add %d %s", accountID, name))
			fmt.Fprintf(cmd.OutOrStdout(), "Added account %d (%s)\n", accountID, name)
			return nil
		},
	}

	cmd.Flags().IntVar(&accountID, "id", 0, "numeric account ID (required)")
	_ = cmd.MarkFlagRequired("id")
	cmd.Flags().StringVar(&name, "name", "", "account name (required)")
	_ = cmd.MarkFlagRequired("name")
	cmd.Flags().StringVar(&code, "code", "", "account code shown on reports")
	cmd.Flags().StringVar(&accountType, "type", "", "asset, liability, equity, revenue, or expense (required)")
	_ = cmd.MarkFlagRequired("type")
	cmd.Flags().StringVar(&description, "desc", "", "description")

	return cmd
}

func newAccountListCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List the chart of accounts",
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

			table := export.Table{
				Title:   "Chart of Accounts",
				Columns: []string{"ID", "Code", "Name", "Type", "Description"},
			}
			for _, acct := range chart.All() {
				table.Rows = append(table.Rows, []string{
					fmt.Sprintf("%d", acct.ID), acct.Code, acct.Name, string(acct.Type), acct.Description,
				})
			}
			return export.WriteText(cmd.OutOrStdout(), table)
		},
	}
}

func newAccountRemoveCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "rm <account-id>",
		Short: "Remove an account",
		Long: "Remove an account from the chart. System accounts are refused. " +
			"Journal entries referencing the account are kept; reports label them as removed.",
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := openBooks(cmd)
			if err != nil {
				return err
			}

			var accountID int
			if _, err := fmt.Sscanf(args[0], "%d", &accountID); err != nil {
				return fmt.Errorf("invalid account ID %q", args[0])
			}

			if err := accounts.NewService(a.store).Delete(accountID); err != nil {
				return err
			}

			a.autoCommit(fmt.Sprintf("account: remove %d", accountID))
			fmt.Fprintf(cmd.OutOrStdout(), "Removed account %d\n", accountID)
			return nil
		},
	}
}
