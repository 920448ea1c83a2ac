package accounts

import (
	"fmt"
	"os"

	"github.com/cleared-dev/bookkeeper/internal/model"
)

// Chart provides lookup over a chart of accounts.
type Chart struct {
	entries []Entry
}

// NewChart creates a Chart. Every account must route to a statement and
// appear once.
func NewChart(entries []Entry) (*Chart, error) {
	seen := make(map[int]bool, len(entries))
	for _, e := range entries {
		if _, err := model.StatementFor(e.ID); err != nil {
			return nil, fmt.Errorf("account %d: %w", e.ID, err)
		}
		if seen[e.ID] {
			return nil, fmt.Errorf("account %d: %w", e.ID, model.ErrDuplicateAccount)
		}
		seen[e.ID] = true
	}
	return &Chart{entries: entries}, nil
}

// Load reads a chart-of-accounts CSV file.
func Load(path string) (*Chart, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening chart of accounts: %w", err)
	}
	defer f.Close()

	entries, err := ReadAccounts(f)
	if err != nil {
		return nil, fmt.Errorf("reading chart of accounts: %w", err)
	}
	return NewChart(entries)
}

// All returns all accounts in file order.
func (c *Chart) All() []Entry {
	return c.entries
}

// ByStatement returns the accounts that route to kind.
func (c *Chart) ByStatement(kind model.StatementKind) []Entry {
	var result []Entry
	for _, e := range c.entries {
		if k, err := model.StatementFor(e.ID); err == nil && k == kind {
			result = append(result, e)
		}
	}
	return result
}

// Save writes the chart to path.
func (c *Chart) Save(path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating chart of accounts file: %w", err)
	}
	defer f.Close()

	if err := WriteAccounts(f, c.entries); err != nil {
		return fmt.Errorf("writing chart of accounts: %w", err)
	}
	return f.Close()
}
