package journal

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/cleared-dev/bookkeeper/internal/id"
	"github.com/cleared-dev/bookkeeper/internal/model"
)

// Header is the CSV header of an exported policy log.
const Header = "entry_id,date,account_id,description,debit,credit"

const (
	numFields  = 6
	dateFormat = "2006-01-02"
	colEntryID = 0
	colDate    = 1
	colAcctID  = 2
	colDesc    = 3
	colDebit   = 4
	colCredit  = 5
)

// Leg indices within a policy entry.
const (
	creditLeg = 0
	debitLeg  = 1
)

// Leg is one row of the policy log: a single movement of a policy. Side
// names the amount column the row fills; it is empty when a row read from
// CSV fills both or neither.
type Leg struct {
	EntryID     string
	Date        time.Time
	AccountID   int
	Description string
	Side        model.Side
	Debit       decimal.Decimal
	Credit      decimal.Decimal
}

// EntryGroup returns the policy entry ID without the leg suffix.
func (l Leg) EntryGroup() string {
	return id.EntryGroup(l.EntryID)
}

// PolicyLegs flattens a complete policy into its credit leg (a) and debit
// leg (b).
func PolicyLegs(exercise string, p *model.Policy) []Leg {
	entryID := id.FormatEntryID(exercise, p.Invoice())
	date := p.CreatedAt()

	var legs []Leg
	if m, ok := p.Credit(); ok {
		legs = append(legs, Leg{
			EntryID:     id.FormatLegID(entryID, creditLeg),
			Date:        date,
			AccountID:   m.AccountID(),
			Description: p.Description(),
			Side:        model.SideCredit,
			Credit:      m.Quantity(),
		})
	}
	if m, ok := p.Debit(); ok {
		legs = append(legs, Leg{
			EntryID:     id.FormatLegID(entryID, debitLeg),
			Date:        date,
			AccountID:   m.AccountID(),
			Description: p.Description(),
			Side:        model.SideDebit,
			Debit:       m.Quantity(),
		})
	}
	return legs
}

// BuildPolicies groups validated legs back into policies, in file order.
// Policies are numbered from firstInvoice.
func BuildPolicies(legs []Leg, firstInvoice int) ([]*model.Policy, error) {
	groups := make(map[string][]Leg)
	var groupOrder []string
	for _, leg := range legs {
		g := leg.EntryGroup()
		if _, seen := groups[g]; !seen {
			groupOrder = append(groupOrder, g)
		}
		groups[g] = append(groups[g], leg)
	}

	policies := make([]*model.Policy, 0, len(groupOrder))
	for i, g := range groupOrder {
		var credit, debit *model.Movement
		var desc string
		for _, leg := range groups[g] {
			if desc == "" {
				desc = leg.Description
			}
			switch leg.Side {
			case model.SideCredit:
				m := model.Credit(leg.AccountID, leg.Credit)
				credit = &m
			case model.SideDebit:
				m := model.Debit(leg.AccountID, leg.Debit)
				debit = &m
			}
		}
		if credit == nil || debit == nil {
			return nil, fmt.Errorf("entry %s: %w", g, model.ErrIncompletePolicy)
		}
		p, err := model.NewPolicy(firstInvoice+i, desc, *credit, *debit)
		if err != nil {
			return nil, fmt.Errorf("entry %s: %w", g, err)
		}
		policies = append(policies, p)
	}
	return policies, nil
}

// ReadLegs reads all legs from a policy log reader.
func ReadLegs(r io.Reader) ([]Leg, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = numFields

	records, err := cr.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("reading policy CSV: %w", err)
	}

	if len(records) == 0 {
		return nil, nil
	}

	// Skip header row.
	var legs []Leg
	for i, rec := range records[1:] {
		leg, err := UnmarshalLeg(rec)
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", i+2, err)
		}
		legs = append(legs, leg)
	}
	return legs, nil
}

// WriteLegs writes legs to a policy log writer (including header).
func WriteLegs(w io.Writer, legs []Leg) error {
	cw := csv.NewWriter(w)

	if err := cw.Write(strings.Split(Header, ",")); err != nil {
		return fmt.Errorf("writing header: %w", err)
	}

	for i, leg := range legs {
		if err := cw.Write(MarshalLeg(leg)); err != nil {
			return fmt.Errorf("writing row %d: %w", i+2, err)
		}
	}
	cw.Flush()
	return cw.Error()
}

// MarshalLeg converts a Leg to a CSV row ([]string).
func MarshalLeg(leg Leg) []string {
	row := make([]string, numFields)
	row[colEntryID] = leg.EntryID
	row[colDate] = leg.Date.Format(dateFormat)
	row[colAcctID] = strconv.Itoa(leg.AccountID)
	row[colDesc] = leg.Description

	// Zero amounts are written on their own side so the row keeps its side.
	if leg.Side == model.SideDebit || !leg.Debit.IsZero() {
		row[colDebit] = leg.Debit.StringFixed(2)
	}
	if leg.Side == model.SideCredit || !leg.Credit.IsZero() {
		row[colCredit] = leg.Credit.StringFixed(2)
	}
	return row
}

// UnmarshalLeg converts a CSV row to a Leg.
func UnmarshalLeg(record []string) (Leg, error) {
	if len(record) != numFields {
		return Leg{}, fmt.Errorf("expected %d fields, got %d", numFields, len(record))
	}

	date, err := time.Parse(dateFormat, record[colDate])
	if err != nil {
		return Leg{}, fmt.Errorf("parsing date %q: %w", record[colDate], err)
	}

	accountID, err := id.ParseAccountID(record[colAcctID])
	if err != nil {
		return Leg{}, fmt.Errorf("parsing account_id: %w", err)
	}

	var debit, credit decimal.Decimal
	var side model.Side
	hasDebit := record[colDebit] != ""
	hasCredit := record[colCredit] != ""
	switch {
	case hasDebit && !hasCredit:
		side = model.SideDebit
	case hasCredit && !hasDebit:
		side = model.SideCredit
	}

	if hasDebit {
		debit, err = decimal.NewFromString(record[colDebit])
		if err != nil {
			return Leg{}, fmt.Errorf("parsing debit %q: %w", record[colDebit], err)
		}
	}

	if hasCredit {
		credit, err = decimal.NewFromString(record[colCredit])
		if err != nil {
			return Leg{}, fmt.Errorf("parsing credit %q: %w", record[colCredit], err)
		}
	}

	return Leg{
		EntryID:     record[colEntryID],
		Date:        date,
		AccountID:   accountID,
		Description: record[colDesc],
		Side:        side,
		Debit:       debit,
		Credit:      credit,
	}, nil
}
