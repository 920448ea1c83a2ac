// Package store persists the whole book, every exercise with its full state,
// as a single snapshot.
package store

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/cleared-dev/bookkeeper/internal/config"
	"github.com/cleared-dev/bookkeeper/internal/model"
)

// Repository loads and saves the book snapshot. Load never fails because the
// snapshot is missing or unreadable; it returns an empty book instead.
type Repository interface {
	Load(ctx context.Context) ([]*model.Exercise, error)
	Save(ctx context.Context, exercises []*model.Exercise) error
	Close() error
}

var (
	_ Repository = (*FileStore)(nil)
	_ Repository = (*SQLiteStore)(nil)
)

// Open returns the repository for a configured backend.
func Open(backend, path string, logger *zap.Logger) (Repository, error) {
	switch backend {
	case config.BackendFile:
		return NewFileStore(path, logger), nil
	case config.BackendSQLite:
		return OpenSQLite(path, logger)
	default:
		return nil, fmt.Errorf("unknown book backend %q", backend)
	}
}

func states(exercises []*model.Exercise) []model.ExerciseState {
	out := make([]model.ExerciseState, 0, len(exercises))
	for _, e := range exercises {
		out = append(out, e.State())
	}
	return out
}

// restore rebuilds every exercise. A single bad exercise invalidates the
// whole snapshot.
func restore(sts []model.ExerciseState) ([]*model.Exercise, error) {
	out := make([]*model.Exercise, 0, len(sts))
	for i, st := range sts {
		e, err := model.RestoreExercise(st)
		if err != nil {
			return nil, fmt.Errorf("exercise %d (%s): %w", i, st.Name, err)
		}
		out = append(out, e)
	}
	return out, nil
}
