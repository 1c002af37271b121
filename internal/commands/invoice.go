package commands

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"

	"github.com/openbooks-dev/openbooks/internal/export"
	"github.com/openbooks-dev/openbooks/internal/inventory"
	"github.com/openbooks-dev/openbooks/internal/invoice"
	"github.com/openbooks-dev/openbooks/internal/party"
)

func newInvoiceCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "invoice",
		Short: "Create, issue, and settle customer invoices",
	}
	cmd.AddCommand(
		newInvoiceCreateCommand(),
		newInvoiceIssueCommand(),
		newInvoicePayCommand(),
		newInvoiceListCommand(),
	)
	return cmd
}

func newInvoiceCreateCommand() *cobra.Command {
	var (
		customer  string
		dateStr   string
		dueStr    string
		warehouse string
		lineSpecs []string
	)

	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create a draft invoice",
		Long: "Create a draft invoice. Each --line is SKU:QTY[:DISCOUNT%[:TAX%]]; " +
			"the unit price and description come from the item.",
		Example: `  openbooks invoice create --customer "Globex" --due 2025-05-01 \
    --warehouse "Main" --line WIDGET-01:2:10:18`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := openBooks(cmd)
			if err != nil {
				return err
			}

			parties, err := a.store.ListParties()
			if err != nil {
				return err
			}
			cust, err := findParty(parties, customer)
			if err != nil {
				return err
			}

			warehouseID := ""
			if warehouse != "" {
				warehouses, err := a.store.ListWarehouses()
				if err != nil {
					return err
				}
				w, err := findWarehouse(warehouses, warehouse)
				if err != nil {
					return err
				}
				warehouseID = w.ID
			}

			date := time.Now()
			if dateStr != "" {
				if date, err = parseDate(dateStr); err != nil {
					return err
				}
			}
			due, err := parseDate(dueStr)
			if err != nil {
				return err
			}
			if due.IsZero() && cust.CreditTermDays > 0 {
				due = date.AddDate(0, 0, cust.CreditTermDays)
			}

			inv := inventory.NewService(a.store)
			params := invoice.CreateParams{
				Date:       date,
				DueDate:    due,
				CustomerID: cust.ID,
			}
			for _, spec := range lineSpecs {
				lp, err := parseInvoiceLine(inv, spec, warehouseID)
				if err != nil {
					return err
				}
				params.Lines = append(params.Lines, lp)
			}

			created, err := invoice.NewService(a.store, nil).Create(params)
			if err != nil {
				return err
			}

			a.autoCommit("invoice: create draft for " + cust.Name)
			fmt.Fprintf(cmd.OutOrStdout(), "Created draft invoice %s for %s, total %s\n",
				created.ID, cust.Name, a.formatter().Money(created.Total))
			return nil
		},
	}

	cmd.Flags().StringVar(&customer, "customer", "", "customer name or ID (required)")
	_ = cmd.MarkFlagRequired("customer")
	cmd.Flags().StringVar(&dateStr, "date", "", "invoice date (YYYY-MM-DD, default today)")
	cmd.Flags().StringVar(&dueStr, "due", "", "due date (YYYY-MM-DD, default from customer credit terms)")
	cmd.Flags().StringVar(&warehouse, "warehouse", "", "warehouse to ship from")
	cmd.Flags().StringArrayVar(&lineSpecs, "line", nil, "line as SKU:QTY[:DISCOUNT%[:TAX%]] (repeatable, required)")
	_ = cmd.MarkFlagRequired("line")

	return cmd
}

// parseInvoiceLine resolves a SKU:QTY[:DISCOUNT%[:TAX%]] spec against
// the item catalog.
func parseInvoiceLine(inv *inventory.Service, spec, warehouseID string) (invoice.LineParams, error) {
	parts := strings.Split(spec, ":")
	if len(parts) < 2 || len(parts) > 4 {
		return invoice.LineParams{}, fmt.Errorf("invalid line %q (want SKU:QTY[:DISCOUNT%%[:TAX%%]])", spec)
	}

	item, err := inv.ItemBySKU(parts[0])
	if err != nil {
		return invoice.LineParams{}, err
	}
	qty, err := decimal.NewFromString(parts[1])
	if err != nil {
		return invoice.LineParams{}, fmt.Errorf("invalid quantity in %q: %w", spec, err)
	}

	lp := invoice.LineParams{
		ItemID:      item.ID,
		Description: item.Name,
		Quantity:    qty,
		UnitPrice:   item.UnitPrice,
		WarehouseID: warehouseID,
	}
	if len(parts) > 2 {
		if lp.DiscountPercent, err = decimal.NewFromString(parts[2]); err != nil {
			return invoice.LineParams{}, fmt.Errorf("invalid discount in %q: %w", spec, err)
		}
	}
	if len(parts) > 3 {
		if lp.TaxRatePercent, err = decimal.NewFromString(parts[3]); err != nil {
			return invoice.LineParams{}, fmt.Errorf("invalid tax rate in %q: %w", spec, err)
		}
	}
	return lp, nil
}

// stockBridge adapts the inventory service to the invoice service's
// stock hook, surfacing negative-stock warnings on stderr.
type stockBridge struct {
	inv  *inventory.Service
	warn io.Writer
}

func (b stockBridge) Adjust(itemID, warehouseID string, delta decimal.Decimal, reference string) error {
	res, err := b.inv.Adjust(itemID, warehouseID, delta, reference)
	if err != nil {
		return err
	}
	if res.Negative {
		fmt.Fprintf(b.warn, "warning: stock went negative (%s on hand) after %s\n",
			res.NewQuantity, reference)
	}
	return nil
}

func newInvoiceIssueCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "issue <invoice>",
		Short: "Issue a draft invoice, assigning its number and deducting stock",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := openBooks(cmd)
			if err != nil {
				return err
			}

			invoices, err := a.store.ListInvoices()
			if err != nil {
				return err
			}
			target, err := findInvoice(invoices, args[0])
			if err != nil {
				return err
			}

			adjuster := stockBridge{inv: inventory.NewService(a.store), warn: cmd.ErrOrStderr()}
			svc := invoice.NewService(a.store, adjuster)
			issued, err := svc.Issue(target.ID)
			if err != nil {
				return err
			}

			a.autoCommit("invoice: issue " + issued.Number)
			fmt.Fprintf(cmd.OutOrStdout(), "Issued invoice %s, total %s\n",
				issued.Number, a.formatter().Money(issued.Total))
			return nil
		},
	}
}

func newInvoicePayCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "pay <invoice>",
		Short: "Mark an issued invoice as paid",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := openBooks(cmd)
			if err != nil {
				return err
			}

			invoices, err := a.store.ListInvoices()
			if err != nil {
				return err
			}
			target, err := findInvoice(invoices, args[0])
			if err != nil {
				return err
			}

			paid, err := invoice.NewService(a.store, nil).MarkPaid(target.ID)
			if err != nil {
				return err
			}

			label := paid.Number
			if label == "" {
				label = paid.ID
			}
			a.autoCommit("invoice: pay " + label)
			fmt.Fprintf(cmd.OutOrStdout(), "Invoice %s marked paid\n", label)
			return nil
		},
	}
}

func newInvoiceListCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List invoices",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := openBooks(cmd)
			if err != nil {
				return err
			}

			svc := invoice.NewService(a.store, nil)
			changed, err := svc.RefreshOverdue(time.Now())
			if err != nil {
				return err
			}
			if len(changed) > 0 {
				a.autoCommit(fmt.Sprintf("invoice: mark %d overdue", len(changed)))
			}

			invoices, err := svc.All()
			if err != nil {
				return err
			}

			parties := party.NewService(a.store)
			f := a.formatter()
			table := export.Table{
				Title:   "Invoices",
				Columns: []string{"Number", "Date", "Due", "Customer", "Total", "Status"},
			}
			for _, inv := range invoices {
				number := inv.Number
				if number == "" {
					number = inv.ID
				}
				due := ""
				if !inv.DueDate.IsZero() {
					due = inv.DueDate.Format(f.DateFormat)
				}
				table.Rows = append(table.Rows, []string{
					number, inv.Date.Format(f.DateFormat), due,
					parties.NameFor(inv.CustomerID), f.Money(inv.Total), string(inv.Status),
				})
			}
			return export.WriteText(cmd.OutOrStdout(), table)
		},
	}
}
