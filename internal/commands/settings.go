package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/openbooks-dev/openbooks/internal/export"
)

func newSettingsCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "settings",
		Short: "Show or update the business profile and preferences",
	}
	cmd.AddCommand(newSettingsShowCommand(), newSettingsSetCommand())
	return cmd
}

func newSettingsShowCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Show current settings",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := openBooks(cmd)
			if err != nil {
				return err
			}

			settings, err := a.store.Settings()
			if err != nil {
				return err
			}

			table := export.Table{
				Title:   "Settings",
				Columns: []string{"Key", "Value"},
				Rows: [][]string{
					{"business.name", settings.Profile.Name},
					{"business.email", settings.Profile.Email},
					{"business.gstin", settings.Profile.GSTIN},
					{"preferences.currency", settings.Preferences.Currency},
					{"preferences.date_format", settings.Preferences.DateFormat},
				},
			}
			return export.WriteText(cmd.OutOrStdout(), table)
		},
	}
}

func newSettingsSetCommand() *cobra.Command {
	var (
		name       string
		email      string
		gstin      string
		currency   string
		dateFormat string
	)

	cmd := &cobra.Command{
		Use:   "set",
		Short: "Update settings; unset flags keep their current value",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := openBooks(cmd)
			if err != nil {
				return err
			}

			settings, err := a.store.Settings()
			if err != nil {
				return err
			}

			if cmd.Flags().Changed("name") {
				settings.Profile.Name = name
			}
			if cmd.Flags().Changed("email") {
				settings.Profile.Email = email
			}
			if cmd.Flags().Changed("gstin") {
				settings.Profile.GSTIN = gstin
			}
			if cmd.Flags().Changed("currency") {
				settings.Preferences.Currency = currency
			}
			if cmd.Flags().Changed("date-format") {
				settings.Preferences.DateFormat = dateFormat
			}

			if err := a.store.SaveSettings(settings); err != nil {
				return err
			}

			a.autoCommit("settings: update")
			fmt.Fprintln(cmd.OutOrStdout(), "Settings updated")
			return nil
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "business name")
	cmd.Flags().StringVar(&email, "email", "", "business email")
	cmd.Flags().StringVar(&gstin, "gstin", "", "tax registration number")
	cmd.Flags().StringVar(&currency, "currency", "", "ISO currency code, e.g. USD")
	cmd.Flags().StringVar(&dateFormat, "date-format", "", "Go date layout for display")

	return cmd
}
