package commands

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/cleared-dev/bookkeeper/internal/accounts"
	"github.com/cleared-dev/bookkeeper/internal/config"
	"github.com/cleared-dev/bookkeeper/internal/store"
)

// ChartFileName is the chart of accounts written by init.
const ChartFileName = "chart-of-accounts.csv"

func newInitCommand(opts *globalOptions) *cobra.Command {
	var name string
	var backend string

	cmd := &cobra.Command{
		Use:   "init [directory]",
		Short: "Initialize a new bookkeeping project",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			dir := "."
			if len(args) > 0 {
				dir = args[0]
			}

			absDir, err := filepath.Abs(dir)
			if err != nil {
				return fmt.Errorf("resolving path: %w", err)
			}

			if err := runInit(cmd.Context(), opts, absDir, name, backend); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Initialized bookkeeping project for %s at %s\n", name, absDir)
			return nil
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "business name (required)")
	_ = cmd.MarkFlagRequired("name")
	cmd.Flags().StringVar(&backend, "backend", config.BackendFile, "book storage: file or sqlite")

	return cmd
}

func runInit(ctx context.Context, opts *globalOptions, dir, name, backend string) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("creating directory %s: %w", dir, err)
	}

	cfgPath := filepath.Join(dir, config.FileName)
	if _, err := os.Stat(cfgPath); err == nil {
		return fmt.Errorf("%s already exists", cfgPath)
	} else if !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("checking config: %w", err)
	}

	// Write bookkeeper.yaml.
	cfg := config.Default(name)
	cfg.Book.Backend = backend
	if backend == config.BackendSQLite {
		cfg.Book.Path = "book.db"
	}
	if err := cfg.Validate(); err != nil {
		return err
	}
	if err := config.Save(cfgPath, cfg); err != nil {
		return fmt.Errorf("writing config: %w", err)
	}

	// Write the starter chart of accounts.
	chart, err := accounts.NewChart(accounts.DefaultChart())
	if err != nil {
		return err
	}
	if err := chart.Save(filepath.Join(dir, ChartFileName)); err != nil {
		return err
	}

	// Write an empty book.
	logger := opts.logger()
	defer logger.Sync()
	repo, err := store.Open(cfg.Book.Backend, filepath.Join(dir, cfg.Book.Path), logger)
	if err != nil {
		return err
	}
	defer repo.Close()
	if err := repo.Save(ctx, nil); err != nil {
		return fmt.Errorf("writing book: %w", err)
	}
	return nil
}
