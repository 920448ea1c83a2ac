package accounts

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/cleared-dev/bookkeeper/internal/id"
)

// Header is the CSV header of a chart of accounts.
const Header = "account_id,account_name"

const (
	numFields = 2
	colID     = 0
	colName   = 1
)

// Entry is one account of a chart: the ID that routes it to a statement and
// its display name.
type Entry struct {
	ID   int
	Name string
}

// ReadAccounts reads a chart-of-accounts CSV.
func ReadAccounts(r io.Reader) ([]Entry, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = numFields

	records, err := cr.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("reading accounts CSV: %w", err)
	}

	if len(records) == 0 {
		return nil, nil
	}

	var entries []Entry
	for i, rec := range records[1:] {
		e, err := UnmarshalAccount(rec)
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", i+2, err)
		}
		entries = append(entries, e)
	}
	return entries, nil
}

// WriteAccounts writes a chart-of-accounts CSV.
func WriteAccounts(w io.Writer, entries []Entry) error {
	cw := csv.NewWriter(w)

	if err := cw.Write(strings.Split(Header, ",")); err != nil {
		return fmt.Errorf("writing header: %w", err)
	}

	for i, e := range entries {
		if err := cw.Write(MarshalAccount(e)); err != nil {
			return fmt.Errorf("writing row %d: %w", i+2, err)
		}
	}
	cw.Flush()
	return cw.Error()
}

// MarshalAccount converts an Entry to a CSV row.
func MarshalAccount(e Entry) []string {
	row := make([]string, numFields)
	row[colID] = strconv.Itoa(e.ID)
	row[colName] = e.Name
	return row
}

// UnmarshalAccount converts a CSV row to an Entry.
func UnmarshalAccount(record []string) (Entry, error) {
	if len(record) != numFields {
		return Entry{}, fmt.Errorf("expected %d fields, got %d", numFields, len(record))
	}

	accountID, err := id.ParseAccountID(record[colID])
	if err != nil {
		return Entry{}, fmt.Errorf("parsing account_id: %w", err)
	}

	name := strings.TrimSpace(record[colName])
	if name == "" {
		return Entry{}, fmt.Errorf("account %d has no name", accountID)
	}

	return Entry{ID: accountID, Name: name}, nil
}
