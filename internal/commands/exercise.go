package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/cleared-dev/bookkeeper/internal/accounts"
)

func newExerciseCommand(opts *globalOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "exercise",
		Short: "Manage exercises (accounting periods)",
	}
	cmd.AddCommand(newExerciseNewCommand(opts))
	cmd.AddCommand(newExerciseListCommand(opts))
	cmd.AddCommand(newExerciseShowCommand(opts))
	return cmd
}

func newExerciseNewCommand(opts *globalOptions) *cobra.Command {
	var defaultChart bool

	cmd := &cobra.Command{
		Use:   "new <name>",
		Short: "Open a new exercise",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return opts.withBook(cmd.Context(), true, func(b *book) error {
				e, err := b.svc.NewExercise(args[0])
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Created exercise %s (%s)\n", e.Name(), e.ID())

				if !defaultChart {
					return nil
				}
				chart, err := accounts.NewChart(accounts.DefaultChart())
				if err != nil {
					return err
				}
				n, err := b.svc.ImportChart(e.Name(), chart)
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Added %d accounts\n", n)
				printChartSummary(cmd.OutOrStdout(), chart)
				return nil
			})
		},
	}

	cmd.Flags().BoolVar(&defaultChart, "default-chart", false, "seed the exercise with the default chart of accounts")
	return cmd
}

func newExerciseListCommand(opts *globalOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List exercises",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return opts.withBook(cmd.Context(), false, func(b *book) error {
				out := cmd.OutOrStdout()
				exercises := b.svc.Exercises()
				if len(exercises) == 0 {
					fmt.Fprintln(out, "No exercises")
					return nil
				}
				for _, e := range exercises {
					status := "open"
					if e.Closed() {
						status = "closed"
					}
					fmt.Fprintf(out, "%-16s %-6s %3d accounts %4d policies  %s\n",
						e.Name(), status, len(e.AllAccounts()), len(e.Policies()), e.CreatedAt().Format("2006-01-02"))
				}
				return nil
			})
		},
	}
}

func newExerciseShowCommand(opts *globalOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "show <name>",
		Short: "Print an exercise with its statements and policies",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return opts.withBook(cmd.Context(), false, func(b *book) error {
				e, err := b.svc.Exercise(args[0])
				if err != nil {
					return err
				}
				fmt.Fprintln(cmd.OutOrStdout(), e.String())
				return nil
			})
		},
	}
}
