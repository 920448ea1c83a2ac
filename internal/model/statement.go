package model

import (
	"fmt"
	"slices"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/cleared-dev/bookkeeper/internal/id"
)

// StatementKind identifies one of the five fixed statements of an exercise.
// Its value is the leading digit of the account IDs it holds.
type StatementKind int

const (
	Assets StatementKind = iota + 1
	Liabilities
	CommonStock
	Revenue
	Expenses
)

// StatementKinds lists the statements in book order.
var StatementKinds = []StatementKind{Assets, Liabilities, CommonStock, Revenue, Expenses}

var statementDefs = map[StatementKind]struct {
	name   string
	nature Nature
}{
	Assets:      {"Assets", NatureDebtor},
	Liabilities: {"Liabilities", NatureCreditor},
	CommonStock: {"Common Stock", NatureCreditor},
	Revenue:     {"Revenue", NatureCreditor},
	Expenses:    {"Expenses", NatureDebtor},
}

func (k StatementKind) String() string {
	if d, ok := statementDefs[k]; ok {
		return d.name
	}
	return fmt.Sprintf("StatementKind(%d)", int(k))
}

// Nature returns the fixed nature of the statement kind.
func (k StatementKind) Nature() Nature {
	return statementDefs[k].nature
}

// StatementFor routes an account ID to its statement by its leading digit.
func StatementFor(accountID int) (StatementKind, error) {
	n, ok := id.StatementNumber(accountID)
	if !ok {
		return 0, fmt.Errorf("%w: account ID %d", ErrUnroutableAccount, accountID)
	}
	return StatementKind(n), nil
}

// Statement groups accounts sharing one nature.
type Statement struct {
	kind     StatementKind
	accounts map[int]*Account
	order    []int // insertion order of account IDs
}

// StatementView is the read-only surface of a Statement.
type StatementView interface {
	Kind() StatementKind
	Name() string
	Nature() Nature
	Balance() decimal.Decimal
	Accounts() []AccountView
	Account(id int) (AccountView, bool)
	Len() int
	String() string
}

var _ StatementView = (*Statement)(nil)

// NewStatement creates an empty statement of the given kind.
func NewStatement(kind StatementKind) *Statement {
	return &Statement{kind: kind, accounts: make(map[int]*Account)}
}

func (s *Statement) Kind() StatementKind { return s.kind }
func (s *Statement) Name() string        { return s.kind.String() }
func (s *Statement) Nature() Nature      { return s.kind.Nature() }
func (s *Statement) Len() int            { return len(s.order) }

// AddAccount creates an account with the statement's nature.
func (s *Statement) AddAccount(accountID int, name string) error {
	if _, ok := s.accounts[accountID]; ok {
		return fmt.Errorf("%w: %d in %s", ErrDuplicateAccount, accountID, s.Name())
	}
	s.accounts[accountID] = newAccount(accountID, name, s.Nature())
	s.order = append(s.order, accountID)
	return nil
}

// RecordMovement records m on the account it names.
func (s *Statement) RecordMovement(m Movement) error {
	if err := s.checkMovement(m); err != nil {
		return err
	}
	return s.accounts[m.accountID].Record(m)
}

// checkMovement reports whether RecordMovement would accept m, without mutating.
func (s *Statement) checkMovement(m Movement) error {
	if _, ok := s.accounts[m.accountID]; !ok {
		return fmt.Errorf("%w: %d in %s", ErrUnknownAccount, m.accountID, s.Name())
	}
	if !m.side.Valid() {
		return fmt.Errorf("%w: %q", ErrInvalidMovementSide, string(m.side))
	}
	return nil
}

// Balance sums the account balances, adding those on the statement's nature
// and subtracting the rest.
func (s *Statement) Balance() decimal.Decimal {
	total := decimal.Zero
	for _, accountID := range s.order {
		total = total.Add(s.accounts[accountID].Balance().Signed(s.Nature()))
	}
	return total
}

// Accounts returns the accounts in insertion order.
func (s *Statement) Accounts() []AccountView {
	views := make([]AccountView, 0, len(s.order))
	for _, accountID := range s.order {
		views = append(views, s.accounts[accountID])
	}
	return views
}

// Account returns the account with the given ID.
func (s *Statement) Account(accountID int) (AccountView, bool) {
	a, ok := s.accounts[accountID]
	if !ok {
		return nil, false
	}
	return a, true
}

func (s *Statement) String() string {
	var b strings.Builder
	b.WriteString(banner("STATEMENT", 27))
	fmt.Fprintf(&b, "  Name: %s\n", s.Name())
	fmt.Fprintf(&b, "  Nature: %s\n", s.Nature())
	fmt.Fprintf(&b, "  Balance: %s\n", formatMoney(s.Balance()))

	ids := slices.Sorted(slices.Values(s.order))
	if len(ids) > 0 {
		b.WriteString("  Accounts:\n")
	}
	for _, accountID := range ids {
		fmt.Fprintf(&b, "%s\n", s.accounts[accountID])
	}
	b.WriteString(strings.Repeat("=", 64))
	return b.String()
}
