package commands

import (
	"context"
	"fmt"
	"path/filepath"

	"go.uber.org/zap"

	"github.com/cleared-dev/bookkeeper/internal/config"
	"github.com/cleared-dev/bookkeeper/internal/journal"
	"github.com/cleared-dev/bookkeeper/internal/logging"
	"github.com/cleared-dev/bookkeeper/internal/store"
)

// book is an opened project: its config, the loaded book and the
// repository it came from.
type book struct {
	cfg    *config.Config
	svc    *journal.Service
	repo   store.Repository
	logger *zap.Logger
}

func (o *globalOptions) logger() *zap.Logger {
	logger, err := logging.New(o.verbose)
	if err != nil {
		return zap.NewNop()
	}
	return logger
}

// openBook loads the config and the book it points to. The book path is
// relative to the config file.
func (o *globalOptions) openBook(ctx context.Context) (*book, error) {
	logger := o.logger()

	cfg, err := config.Load(o.configPath)
	if err != nil {
		return nil, err
	}
	rules, err := cfg.ClosingRules()
	if err != nil {
		return nil, err
	}

	path := cfg.Book.Path
	if !filepath.IsAbs(path) {
		path = filepath.Join(filepath.Dir(o.configPath), path)
	}
	repo, err := store.Open(cfg.Book.Backend, path, logger)
	if err != nil {
		return nil, err
	}

	svc := journal.NewService(repo, cfg.Business.Name, rules, logger)
	if err := svc.Open(ctx); err != nil {
		repo.Close()
		return nil, err
	}
	logger.Debug("opened book", zap.String("config", o.configPath), zap.String("backend", cfg.Book.Backend), zap.String("path", path))
	return &book{cfg: cfg, svc: svc, repo: repo, logger: logger}, nil
}

func (b *book) close() {
	if err := b.repo.Close(); err != nil {
		b.logger.Warn("closing book", zap.Error(err))
	}
	_ = b.logger.Sync()
}

// withBook opens the book, runs fn and, when save is set and fn succeeded,
// writes the book back.
func (o *globalOptions) withBook(ctx context.Context, save bool, fn func(b *book) error) error {
	b, err := o.openBook(ctx)
	if err != nil {
		return err
	}
	defer b.close()

	if err := fn(b); err != nil {
		return err
	}
	if save {
		if err := b.svc.Save(ctx); err != nil {
			return fmt.Errorf("writing book: %w", err)
		}
	}
	return nil
}
