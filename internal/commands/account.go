package commands

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/cleared-dev/bookkeeper/internal/accounts"
	"github.com/cleared-dev/bookkeeper/internal/model"
)

func newAccountCommand(opts *globalOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "account",
		Short: "Manage the accounts of an exercise",
	}
	cmd.AddCommand(newAccountAddCommand(opts))
	cmd.AddCommand(newAccountListCommand(opts))
	cmd.AddCommand(newAccountImportCommand(opts))
	return cmd
}

func newAccountAddCommand(opts *globalOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "add <exercise> <account-id> <name>",
		Short: "Open an account; the first digit of its 6-digit ID selects the statement",
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			return opts.withBook(cmd.Context(), true, func(b *book) error {
				accountID, err := b.svc.AddAccount(args[0], args[1], args[2])
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Added account %d to %s\n", accountID, args[0])
				return nil
			})
		},
	}
}

func newAccountListCommand(opts *globalOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "list <exercise>",
		Short: "List the accounts of an exercise",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return opts.withBook(cmd.Context(), false, func(b *book) error {
				e, err := b.svc.Exercise(args[0])
				if err != nil {
					return err
				}
				for _, line := range e.AllAccounts() {
					fmt.Fprintln(cmd.OutOrStdout(), line)
				}
				return nil
			})
		},
	}
}

func newAccountImportCommand(opts *globalOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "import <exercise> <chart.csv>",
		Short: "Open every account of a chart-of-accounts CSV (account_id,account_name)",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			chart, err := accounts.Load(args[1])
			if err != nil {
				return err
			}
			return opts.withBook(cmd.Context(), true, func(b *book) error {
				n, err := b.svc.ImportChart(args[0], chart)
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Imported %d accounts into %s\n", n, args[0])
				printChartSummary(cmd.OutOrStdout(), chart)
				return nil
			})
		},
	}
}

// printChartSummary prints how many chart accounts land in each statement.
func printChartSummary(w io.Writer, chart *accounts.Chart) {
	for _, kind := range model.StatementKinds {
		if n := len(chart.ByStatement(kind)); n > 0 {
			fmt.Fprintf(w, "  %-13s %d\n", kind.String()+":", n)
		}
	}
}
