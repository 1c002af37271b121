package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/openbooks-dev/openbooks/internal/export"
	"github.com/openbooks-dev/openbooks/internal/model"
	"github.com/openbooks-dev/openbooks/internal/party"
)

func newPartyCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "party",
		Short: "Manage customers and vendors",
	}
	cmd.AddCommand(newPartyAddCommand(), newPartyListCommand(), newPartyRemoveCommand())
	return cmd
}

func newPartyAddCommand() *cobra.Command {
	var (
		name    string
		kind    string
		email   string
		phone   string
		gstin   string
		address string
		terms   int
	)

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Add a customer or vendor",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := openBooks(cmd)
			if err != nil {
				return err
			}

			p, err := party.NewService(a.store).Create(model.Party{
				Name:           name,
				Kind:           model.PartyKind(kind),
				Email:          email,
				Phone:          phone,
				GSTIN:          gstin,
				Address:        address,
				CreditTermDays: terms,
			})
			if err != nil {
				return err
			}

			a.autoCommit(fmt.Sprintf("party: add %s %s", p.Kind, p.Name))
			fmt.Fprintf(cmd.OutOrStdout(), "Added %s %s\n", p.Kind, p.Name)
			return nil
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "party name (required)")
	_ = cmd.MarkFlagRequired("name")
	cmd.Flags().StringVar(&kind, "kind", "customer", "customer or vendor")
	cmd.Flags().StringVar(&email, "email", "", "email")
	cmd.Flags().StringVar(&phone, "phone", "", "phone")
	cmd.Flags().StringVar(&gstin, "gstin", "", "tax registration number")
	cmd.Flags().StringVar(&address, "address", "", "address")
	cmd.Flags().IntVar(&terms, "terms", 0, "credit term days for invoice due dates")

	return cmd
}

func newPartyListCommand() *cobra.Command {
	var kind string

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List parties",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := openBooks(cmd)
			if err != nil {
				return err
			}

			svc := party.NewService(a.store)
			var parties []model.Party
			switch kind {
			case "":
				parties, err = svc.All()
			case string(model.PartyCustomer):
				parties, err = svc.Customers()
			case string(model.PartyVendor):
				parties, err = svc.Vendors()
			default:
				return fmt.Errorf("invalid kind %q (want customer or vendor)", kind)
			}
			if err != nil {
				return err
			}

			table := export.Table{
				Title:   "Parties",
				Columns: []string{"Name", "Kind", "Email", "Phone", "Terms"},
			}
			for _, p := range parties {
				table.Rows = append(table.Rows, []string{
					p.Name, string(p.Kind), p.Email, p.Phone, fmt.Sprintf("%d", p.CreditTermDays),
				})
			}
			return export.WriteText(cmd.OutOrStdout(), table)
		},
	}

	cmd.Flags().StringVar(&kind, "kind", "", "filter by kind: customer or vendor")
	return cmd
}

func newPartyRemoveCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "rm <party>",
		Short: "Remove a party by name or ID",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := openBooks(cmd)
			if err != nil {
				return err
			}

			parties, err := a.store.ListParties()
			if err != nil {
				return err
			}
			p, err := findParty(parties, args[0])
			if err != nil {
				return err
			}

			if err := party.NewService(a.store).Delete(p.ID); err != nil {
				return err
			}

			a.autoCommit("party: remove " + p.Name)
			fmt.Fprintf(cmd.OutOrStdout(), "Removed %s %s\n", p.Kind, p.Name)
			return nil
		},
	}
}
