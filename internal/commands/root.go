package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/openbooks-dev/openbooks/internal/buildinfo"
)

// NewRootCommand creates the root CLI command with all subcommands registered.
func NewRootCommand() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:     "openbooks",
		Short:   "Small business double-entry accounting",
		Version: fmt.Sprintf("%s (commit: %s, built: %s)", buildinfo.Version, buildinfo.Commit, buildinfo.Date),
		CompletionOptions: cobra.CompletionOptions{
			DisableDefaultCmd: true,
		},
		SilenceUsage: true,
	}

	rootCmd.PersistentFlags().StringP("dir", "d", ".", "books directory")

	rootCmd.AddCommand(
		newInitCommand(),
		newAccountCommand(),
		newPostCommand(),
		newEntriesCommand(),
		newReportCommand(),
		newDashboardCommand(),
		newInvoiceCommand(),
		newInventoryCommand(),
		newPartyCommand(),
		newSettingsCommand(),
	)

	return rootCmd
}
