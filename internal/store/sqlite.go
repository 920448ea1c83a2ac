package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/mattn/go-sqlite3"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"

	"github.com/cleared-dev/bookkeeper/internal/model"
)

const schema = `
CREATE TABLE IF NOT EXISTS exercises (
	id       TEXT PRIMARY KEY,
	position INTEGER NOT NULL,
	name     TEXT NOT NULL,
	state    TEXT NOT NULL,
	saved_at TIMESTAMP NOT NULL
)`

// SQLiteStore keeps the book in a SQLite database, one row per exercise.
// Each row holds the exercise state as a YAML document.
type SQLiteStore struct {
	db     *sql.DB
	logger *zap.Logger

	// schemaErr is set when the file could not be read as a database.
	schemaErr error
}

// OpenSQLite opens (or creates) the database file at path.
func OpenSQLite(path string, logger *zap.Logger) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("opening book database %s: %w", path, err)
	}
	s, err := NewSQLiteStore(db, logger)
	if err != nil {
		db.Close()
		return nil, err
	}
	return s, nil
}

// NewSQLiteStore wraps an open database and creates the schema if needed.
// A file that is not a readable database is kept as is: Load reports an
// empty book and Save fails.
func NewSQLiteStore(db *sql.DB, logger *zap.Logger) (*SQLiteStore, error) {
	s := &SQLiteStore{db: db, logger: logger}
	if _, err := db.Exec(schema); err != nil {
		if !isCorrupt(err) {
			return nil, fmt.Errorf("creating book schema: %w", err)
		}
		s.schemaErr = err
	}
	return s, nil
}

// isCorrupt reports whether err means the database file itself is damaged.
func isCorrupt(err error) bool {
	var se sqlite3.Error
	if !errors.As(err, &se) {
		return false
	}
	return se.Code == sqlite3.ErrNotADB || se.Code == sqlite3.ErrCorrupt
}

// Load reads every exercise in saved order.
func (s *SQLiteStore) Load(ctx context.Context) ([]*model.Exercise, error) {
	if s.schemaErr != nil {
		s.logger.Warn("book database unreadable, starting empty", zap.Error(s.schemaErr))
		return nil, nil
	}
	rows, err := s.db.QueryContext(ctx, `SELECT id, state FROM exercises ORDER BY position`)
	if isCorrupt(err) {
		s.logger.Warn("book database corrupt, starting empty", zap.Error(err))
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("querying exercises: %w", err)
	}
	defer rows.Close()

	var sts []model.ExerciseState
	for rows.Next() {
		var id, doc string
		if err := rows.Scan(&id, &doc); err != nil {
			return nil, fmt.Errorf("scanning exercise: %w", err)
		}
		var st model.ExerciseState
		if err := yaml.Unmarshal([]byte(doc), &st); err != nil {
			s.logger.Warn("book row unreadable, starting empty", zap.String("id", id), zap.Error(err))
			return nil, nil
		}
		sts = append(sts, st)
	}
	if err := rows.Err(); err != nil {
		if isCorrupt(err) {
			s.logger.Warn("book database corrupt, starting empty", zap.Error(err))
			return nil, nil
		}
		return nil, fmt.Errorf("iterating exercises: %w", err)
	}

	exercises, err := restore(sts)
	if err != nil {
		s.logger.Warn("book database corrupt, starting empty", zap.Error(err))
		return nil, nil
	}
	s.logger.Debug("loaded book", zap.Int("exercises", len(exercises)))
	return exercises, nil
}

// Save replaces every row in a single transaction.
func (s *SQLiteStore) Save(ctx context.Context, exercises []*model.Exercise) error {
	if s.schemaErr != nil {
		return fmt.Errorf("book database is unreadable, not overwriting it: %w", s.schemaErr)
	}
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM exercises`); err != nil {
		return fmt.Errorf("clearing exercises: %w", err)
	}

	savedAt := time.Now().UTC()
	for i, st := range states(exercises) {
		doc, err := yaml.Marshal(st)
		if err != nil {
			return fmt.Errorf("marshaling exercise %s: %w", st.Name, err)
		}
		_, err = tx.ExecContext(ctx,
			`INSERT INTO exercises (id, position, name, state, saved_at) VALUES (?, ?, ?, ?, ?)`,
			st.ID, i, st.Name, string(doc), savedAt)
		if err != nil {
			return fmt.Errorf("inserting exercise %s: %w", st.Name, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing book: %w", err)
	}
	s.logger.Debug("saved book", zap.Int("exercises", len(exercises)))
	return nil
}

// Close closes the database.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}
