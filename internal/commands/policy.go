package commands

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/cleared-dev/bookkeeper/internal/journal"
)

func newPolicyCommand(opts *globalOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "policy",
		Short: "Record and list policies (journal entries)",
	}
	cmd.AddCommand(newPolicyAddCommand(opts))
	cmd.AddCommand(newPolicyListCommand(opts))
	cmd.AddCommand(newPolicyExportCommand(opts))
	cmd.AddCommand(newPolicyImportCommand(opts))
	return cmd
}

func newPolicyAddCommand(opts *globalOptions) *cobra.Command {
	var params journal.AddPolicyParams

	cmd := &cobra.Command{
		Use:   "add <exercise>",
		Short: "Record a balanced policy",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return opts.withBook(cmd.Context(), true, func(b *book) error {
				p, err := b.svc.AddPolicy(args[0], params)
				if err != nil {
					return err
				}
				fmt.Fprintln(cmd.OutOrStdout(), p.String())
				return nil
			})
		},
	}

	cmd.Flags().StringVar(&params.Description, "description", "", "policy description")
	cmd.Flags().StringVar(&params.CreditAmount, "credit-amount", "", "amount credited")
	cmd.Flags().StringVar(&params.CreditAccount, "credit-account", "", "6-digit account credited")
	cmd.Flags().StringVar(&params.DebitAmount, "debit-amount", "", "amount debited")
	cmd.Flags().StringVar(&params.DebitAccount, "debit-account", "", "6-digit account debited")
	return cmd
}

func newPolicyListCommand(opts *globalOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "list <exercise>",
		Short: "Print every policy of an exercise",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return opts.withBook(cmd.Context(), false, func(b *book) error {
				e, err := b.svc.Exercise(args[0])
				if err != nil {
					return err
				}
				for _, p := range e.Policies() {
					fmt.Fprintln(cmd.OutOrStdout(), p.String())
				}
				return nil
			})
		},
	}
}

func newPolicyExportCommand(opts *globalOptions) *cobra.Command {
	var outPath string

	cmd := &cobra.Command{
		Use:   "export <exercise>",
		Short: "Write the policy log as CSV",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return opts.withBook(cmd.Context(), false, func(b *book) error {
				if outPath == "" {
					return b.svc.ExportPolicies(args[0], cmd.OutOrStdout())
				}
				f, err := os.Create(outPath)
				if err != nil {
					return fmt.Errorf("creating %s: %w", outPath, err)
				}
				defer f.Close()
				if err := b.svc.ExportPolicies(args[0], f); err != nil {
					return err
				}
				return f.Close()
			})
		},
	}

	cmd.Flags().StringVarP(&outPath, "out", "o", "", "output file (default stdout)")
	return cmd
}

func newPolicyImportCommand(opts *globalOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "import <exercise> <policies.csv>",
		Short: "Record every policy of an exported policy log",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := os.Open(args[1])
			if err != nil {
				return fmt.Errorf("opening %s: %w", args[1], err)
			}
			defer f.Close()

			return opts.withBook(cmd.Context(), true, func(b *book) error {
				n, err := b.svc.ImportPolicies(args[0], f)
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Imported %d policies into %s\n", n, args[0])
				return nil
			})
		},
	}
}
