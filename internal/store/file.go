package store

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"go.uber.org/zap"
	"gopkg.in/yaml.v3"

	"github.com/cleared-dev/bookkeeper/internal/model"
)

// FileStore keeps the book in one YAML file.
type FileStore struct {
	path   string
	logger *zap.Logger
}

type snapshot struct {
	Exercises []model.ExerciseState `yaml:"exercises"`
}

// NewFileStore creates a FileStore for path.
func NewFileStore(path string, logger *zap.Logger) *FileStore {
	return &FileStore{path: path, logger: logger}
}

// Load reads the snapshot.
func (s *FileStore) Load(ctx context.Context) ([]*model.Exercise, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	data, err := os.ReadFile(s.path)
	if errors.Is(err, fs.ErrNotExist) {
		s.logger.Warn("book snapshot not found, starting empty", zap.String("path", s.path))
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("reading book %s: %w", s.path, err)
	}

	var snap snapshot
	if err := yaml.Unmarshal(data, &snap); err != nil {
		s.logger.Warn("book snapshot unreadable, starting empty", zap.String("path", s.path), zap.Error(err))
		return nil, nil
	}
	exercises, err := restore(snap.Exercises)
	if err != nil {
		s.logger.Warn("book snapshot corrupt, starting empty", zap.String("path", s.path), zap.Error(err))
		return nil, nil
	}
	s.logger.Debug("loaded book", zap.String("path", s.path), zap.Int("exercises", len(exercises)))
	return exercises, nil
}

// Save replaces the snapshot. The file is written next to the target and
// renamed into place.
func (s *FileStore) Save(ctx context.Context, exercises []*model.Exercise) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	data, err := yaml.Marshal(snapshot{Exercises: states(exercises)})
	if err != nil {
		return fmt.Errorf("marshaling book: %w", err)
	}

	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("creating book dir: %w", err)
	}
	tmp, err := os.CreateTemp(dir, ".book-*.yaml")
	if err != nil {
		return fmt.Errorf("creating temp book: %w", err)
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return fmt.Errorf("writing book: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("closing book: %w", err)
	}
	if err := os.Rename(tmp.Name(), s.path); err != nil {
		return fmt.Errorf("replacing book %s: %w", s.path, err)
	}
	s.logger.Debug("saved book", zap.String("path", s.path), zap.Int("exercises", len(exercises)))
	return nil
}

// Close is a no-op.
func (s *FileStore) Close() error { return nil }
