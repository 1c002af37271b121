package commands

import (
	"fmt"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"

	"github.com/openbooks-dev/openbooks/internal/export"
	"github.com/openbooks-dev/openbooks/internal/inventory"
)

func newInventoryCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "inventory",
		Short: "Manage stocked items and warehouses",
	}
	cmd.AddCommand(
		newInventoryAddItemCommand(),
		newInventoryAddWarehouseCommand(),
		newInventoryAdjustCommand(),
		newInventoryListCommand(),
		newInventoryLedgerCommand(),
	)
	return cmd
}

func newInventoryAddItemCommand() *cobra.Command {
	var (
		sku      string
		name     string
		priceStr string
		reorder  string
	)

	cmd := &cobra.Command{
		Use:   "add-item",
		Short: "Add an inventory item",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := openBooks(cmd)
			if err != nil {
				return err
			}

			price, err := decimal.NewFromString(priceStr)
			if err != nil {
				return fmt.Errorf("invalid price %q: %w", priceStr, err)
			}
			reorderPoint := decimal.Zero
			if reorder != "" {
				if reorderPoint, err = decimal.NewFromString(reorder); err != nil {
					return fmt.Errorf("invalid reorder point %q: %w", reorder, err)
				}
			}

			item, err := inventory.NewService(a.store).AddItem(sku, name, price, reorderPoint)
			if err != nil {
				return err
			}

			a.autoCommit("inventory: add item " + item.SKU)
			fmt.Fprintf(cmd.OutOrStdout(), "Added item %s (%s)\n", item.SKU, item.Name)
			return nil
		},
	}

	cmd.Flags().StringVar(&sku, "sku", "", "stock keeping unit (required)")
	_ = cmd.MarkFlagRequired("sku")
	cmd.Flags().StringVar(&name, "name", "", "item name (required)")
	_ = cmd.MarkFlagRequired("name")
	cmd.Flags().StringVar(&priceStr, "price", "", "unit price (required)")
	_ = cmd.MarkFlagRequired("price")
	cmd.Flags().StringVar(&reorder, "reorder", "", "reorder point (0 disables the low-stock flag)")

	return cmd
}

func newInventoryAddWarehouseCommand() *cobra.Command {
	var name, location, manager string

	cmd := &cobra.Command{
		Use:   "add-warehouse",
		Short: "Add a warehouse",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := openBooks(cmd)
			if err != nil {
				return err
			}

			w, err := inventory.NewService(a.store).AddWarehouse(name, location, manager)
			if err != nil {
				return err
			}

			a.autoCommit("inventory: add warehouse " + w.Name)
			fmt.Fprintf(cmd.OutOrStdout(), "Added warehouse %s\n", w.Name)
			return nil
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "warehouse name (required)")
	_ = cmd.MarkFlagRequired("name")
	cmd.Flags().StringVar(&location, "location", "", "location")
	cmd.Flags().StringVar(&manager, "manager", "", "manager")

	return cmd
}

func newInventoryAdjustCommand() *cobra.Command {
	var (
		sku       string
		warehouse string
		qtyStr    string
		reference string
	)

	cmd := &cobra.Command{
		Use:   "adjust",
		Short: "Apply a signed stock adjustment",
		Long: "Apply a signed quantity delta to one item at one warehouse. " +
			"Adjustments below zero are applied and flagged, not blocked.",
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := openBooks(cmd)
			if err != nil {
				return err
			}

			qty, err := decimal.NewFromString(qtyStr)
			if err != nil {
				return fmt.Errorf("invalid quantity %q: %w", qtyStr, err)
			}

			svc := inventory.NewService(a.store)
			item, err := svc.ItemBySKU(sku)
			if err != nil {
				return err
			}
			warehouses, err := a.store.ListWarehouses()
			if err != nil {
				return err
			}
			w, err := findWarehouse(warehouses, warehouse)
			if err != nil {
				return err
			}

			res, err := svc.Adjust(item.ID, w.ID, qty, reference)
			if err != nil {
				return err
			}

			a.autoCommit(fmt.Sprintf("inventory: adjust %s by %s", item.SKU, qty))
			fmt.Fprintf(cmd.OutOrStdout(), "Adjusted %s at %s by %s, now %s\n",
				item.SKU, w.Name, qty, res.NewQuantity)
			if res.Negative {
				fmt.Fprintf(cmd.ErrOrStderr(), "warning: stock for %s at %s is negative\n", item.SKU, w.Name)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&sku, "sku", "", "item SKU (required)")
	_ = cmd.MarkFlagRequired("sku")
	cmd.Flags().StringVar(&warehouse, "warehouse", "", "warehouse name or ID (required)")
	_ = cmd.MarkFlagRequired("warehouse")
	cmd.Flags().StringVar(&qtyStr, "qty", "", "signed quantity delta (required)")
	_ = cmd.MarkFlagRequired("qty")
	cmd.Flags().StringVar(&reference, "ref", "", "reference, e.g. a purchase order")

	return cmd
}

func newInventoryLedgerCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "ledger <sku>",
		Short: "Show the stock ledger for one item",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := openBooks(cmd)
			if err != nil {
				return err
			}

			svc := inventory.NewService(a.store)
			item, err := svc.ItemBySKU(args[0])
			if err != nil {
				return err
			}
			entries, err := svc.LedgerFor(item.ID)
			if err != nil {
				return err
			}

			f := a.formatter()
			table := export.Table{
				Title:   fmt.Sprintf("Stock Ledger: %s (%s)", item.SKU, item.Name),
				Columns: []string{"Date", "Warehouse", "Delta", "Reference"},
			}
			for _, e := range entries {
				table.Rows = append(table.Rows, []string{
					e.Date.Format(f.DateFormat), e.WarehouseID, e.QuantityDelta.String(), e.Reference,
				})
			}
			return export.WriteText(cmd.OutOrStdout(), table)
		},
	}
}

func newInventoryListCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List inventory items with stock on hand",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := openBooks(cmd)
			if err != nil {
				return err
			}

			items, err := a.store.ListItems()
			if err != nil {
				return err
			}

			f := a.formatter()
			table := export.Table{
				Title:   "Inventory",
				Columns: []string{"SKU", "Name", "Price", "On Hand", "Reorder", "Status"},
			}
			for _, item := range items {
				status := ""
				if item.BelowReorderPoint() {
					status = "LOW"
				}
				table.Rows = append(table.Rows, []string{
					item.SKU, item.Name, f.Money(item.UnitPrice),
					item.TotalStock().String(), item.ReorderPoint.String(), status,
				})
			}
			return export.WriteText(cmd.OutOrStdout(), table)
		},
	}
}
