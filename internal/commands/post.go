package commands

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/openbooks-dev/openbooks/internal/accounts"
	"github.com/openbooks-dev/openbooks/internal/journal"
)

func newPostCommand() *cobra.Command {
	var (
		dateStr   string
		reference string
		narration string
		debits    []string
		credits   []string
	)

	cmd := &cobra.Command{
		Use:   "post",
		Short: "Post a balanced journal entry",
		Example: `  openbooks post --date 2025-04-01 --memo "April rent" \
    --debit 5100=1200 --credit 1020=1200`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := openBooks(cmd)
			if err != nil {
				return err
			}

			date := time.Now()
			if dateStr != "" {
				if date, err = parseDate(dateStr); err != nil {
					return err
				}
			}

			params := journal.PostParams{
				Date:      date,
				Reference: reference,
				Narration: narration,
			}
			for _, d := range debits {
				accountID, amount, err := parsePosting(d)
				if err != nil {
					return err
				}
				params.Lines = append(params.Lines, journal.LineParams{
					AccountID: accountID, Description: narration, Debit: amount,
				})
			}
			for _, c := range credits {
				accountID, amount, err := parsePosting(c)
				if err != nil {
					return err
				}
				params.Lines = append(params.Lines, journal.LineParams{
					AccountID: accountID, Description: narration, Credit: amount,
				})
			}

			chart, err := accounts.NewService(a.store).Snapshot()
			if err != nil {
				return err
			}
			entryID, err := journal.NewService(a.store, chart).Post(params)
			if err != nil {
				return err
			}

			a.autoCommit("post: " + entryID)
			fmt.Fprintf(cmd.OutOrStdout(), "Posted entry %s\n", entryID)
			return nil
		},
	}

	cmd.Flags().StringVar(&dateStr, "date", "", "entry date (YYYY-MM-DD, default today)")
	cmd.Flags().StringVar(&reference, "ref", "", "external reference")
	cmd.Flags().StringVar(&narration, "memo", "", "narration")
	cmd.Flags().StringArrayVar(&debits, "debit", nil, "debit posting as ACCOUNT=AMOUNT (repeatable)")
	cmd.Flags().StringArrayVar(&credits, "credit", nil, "credit posting as ACCOUNT=AMOUNT (repeatable)")

	return cmd
}
