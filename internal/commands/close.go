package commands

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/cleared-dev/bookkeeper/internal/model"
)

func newCloseCommand(opts *globalOptions) *cobra.Command {
	var dryRun bool

	cmd := &cobra.Command{
		Use:   "close <exercise>",
		Short: "Close the books: zero revenue and expenses into retained earnings and book income tax",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return opts.withBook(cmd.Context(), !dryRun, func(b *book) error {
				var sum *model.ClosingSummary
				var err error
				if dryRun {
					sum, err = b.svc.PlanClose(args[0])
				} else {
					sum, err = b.svc.Close(args[0])
				}
				if err != nil {
					return err
				}
				printClosing(cmd.OutOrStdout(), args[0], sum, dryRun)
				return nil
			})
		},
	}

	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "print the closing policies without recording them")
	return cmd
}

func printClosing(w io.Writer, exercise string, sum *model.ClosingSummary, dryRun bool) {
	if dryRun {
		fmt.Fprintf(w, "Closing plan for %s (not recorded)\n", exercise)
	} else {
		fmt.Fprintf(w, "Closed %s\n", exercise)
	}
	fmt.Fprintf(w, "  Revenue:           %s\n", sum.RevenueTotal.StringFixed(2))
	fmt.Fprintf(w, "  Expenses:          %s\n", sum.ExpensesTotal.StringFixed(2))
	fmt.Fprintf(w, "  Income Before Tax: %s\n", sum.PreTaxIncome.StringFixed(2))
	fmt.Fprintf(w, "  Income Tax:        %s\n", sum.IncomeTax.StringFixed(2))
	fmt.Fprintf(w, "  Policies:          %d\n", len(sum.Policies))
	for _, p := range sum.Policies {
		fmt.Fprintf(w, "\n%s\n", p)
	}
}
