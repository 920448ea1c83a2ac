package commands

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/cleared-dev/bookkeeper/internal/model"
)

var errEquationBroken = errors.New("accounting equation does not hold")

func newReportCommand(opts *globalOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "report",
		Short: "Print financial reports",
	}
	cmd.AddCommand(newReportCommandFor(opts, "balance-sheet", "Print the balance sheet", func(e *model.Exercise) (string, error) {
		return e.BalanceSheet().String(), nil
	}))
	cmd.AddCommand(newReportCommandFor(opts, "income-statement", "Print the income statement", func(e *model.Exercise) (string, error) {
		return e.IncomeStatement().String(), nil
	}))
	cmd.AddCommand(newReportCommandFor(opts, "equation", "Check Assets = Liabilities + Common Stock + Revenue - Expenses", equationReport))
	return cmd
}

func newReportCommandFor(opts *globalOptions, use, short string, render func(*model.Exercise) (string, error)) *cobra.Command {
	return &cobra.Command{
		Use:   use + " <exercise>",
		Short: short,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return opts.withBook(cmd.Context(), false, func(b *book) error {
				e, err := b.svc.Exercise(args[0])
				if err != nil {
					return err
				}
				text, err := render(e)
				fmt.Fprintln(cmd.OutOrStdout(), text)
				return err
			})
		},
	}
}

func equationReport(e *model.Exercise) (string, error) {
	bs := e.BalanceSheet()
	line := fmt.Sprintf("Assets %s = Liabilities %s + Common Stock %s + Net Income %s",
		bs.Assets.StringFixed(2), bs.Liabilities.StringFixed(2), bs.CommonStock.StringFixed(2), bs.NetIncome.StringFixed(2))
	if !e.CheckAccountingEquation() {
		return line, fmt.Errorf("%w in %s", errEquationBroken, e.Name())
	}
	return line + "\nAccounting equation holds", nil
}
