package model

import (
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Exercise is one accounting period of a company: five fixed statements and
// the log of recorded policies. It moves from open to closed once, on CloseBook.
type Exercise struct {
	id          string
	companyName string
	name        string
	createdAt   time.Time
	statements  map[StatementKind]*Statement
	policies    []*Policy
	rules       ClosingRules
	closed      bool
}

// Option configures an Exercise at construction.
type Option func(*Exercise)

// WithClosingRules overrides DefaultClosingRules.
func WithClosingRules(r ClosingRules) Option {
	return func(e *Exercise) {
		e.rules = r
	}
}

// NewExercise creates an open exercise with empty statements.
func NewExercise(companyName, name string, opts ...Option) *Exercise {
	e := &Exercise{
		id:          uuid.NewString(),
		companyName: companyName,
		name:        name,
		createdAt:   now(),
		statements:  make(map[StatementKind]*Statement, len(StatementKinds)),
		rules:       DefaultClosingRules(),
	}
	for _, kind := range StatementKinds {
		e.statements[kind] = NewStatement(kind)
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

func (e *Exercise) ID() string             { return e.id }
func (e *Exercise) CompanyName() string    { return e.companyName }
func (e *Exercise) Name() string           { return e.name }
func (e *Exercise) CreatedAt() time.Time   { return e.createdAt }
func (e *Exercise) Closed() bool           { return e.closed }
func (e *Exercise) Rules() ClosingRules    { return e.rules }
func (e *Exercise) NextPolicyInvoice() int { return len(e.policies) + 1 }

// Statement returns a read-only view of one statement.
func (e *Exercise) Statement(kind StatementKind) StatementView {
	return e.statements[kind]
}

// Statements returns read-only views of all statements in book order.
func (e *Exercise) Statements() []StatementView {
	views := make([]StatementView, 0, len(StatementKinds))
	for _, kind := range StatementKinds {
		views = append(views, e.statements[kind])
	}
	return views
}

// Policies returns the policy log in recording order.
func (e *Exercise) Policies() []*Policy {
	return slices.Clone(e.policies)
}

// AddAccount adds an account to the statement selected by the ID's leading digit.
func (e *Exercise) AddAccount(accountID int, name string) error {
	if e.closed {
		return fmt.Errorf("%w: %s", ErrExerciseClosed, e.name)
	}
	s, err := e.route(accountID)
	if err != nil {
		return err
	}
	return s.AddAccount(accountID, name)
}

// HasAccount reports whether accountID exists in its statement.
func (e *Exercise) HasAccount(accountID int) bool {
	s, err := e.route(accountID)
	if err != nil {
		return false
	}
	_, ok := s.accounts[accountID]
	return ok
}

// Account looks up an account across the exercise.
func (e *Exercise) Account(accountID int) (AccountView, bool) {
	s, err := e.route(accountID)
	if err != nil {
		return nil, false
	}
	return s.Account(accountID)
}

// RecordPolicy routes both movements of p to their accounts and appends p to
// the log. Both routes are validated before either movement is applied.
func (e *Exercise) RecordPolicy(p *Policy) error {
	if e.closed {
		return fmt.Errorf("%w: %s", ErrExerciseClosed, e.name)
	}
	if p == nil || !p.Complete() {
		return ErrIncompletePolicy
	}
	credit, debit := *p.credit, *p.debit

	cs, err := e.route(credit.accountID)
	if err != nil {
		return fmt.Errorf("credit: %w", err)
	}
	ds, err := e.route(debit.accountID)
	if err != nil {
		return fmt.Errorf("debit: %w", err)
	}
	if err := cs.checkMovement(credit); err != nil {
		return fmt.Errorf("credit: %w", err)
	}
	if err := ds.checkMovement(debit); err != nil {
		return fmt.Errorf("debit: %w", err)
	}

	if err := cs.RecordMovement(credit); err != nil {
		return fmt.Errorf("credit: %w", err)
	}
	if err := ds.RecordMovement(debit); err != nil {
		return fmt.Errorf("debit: %w", err)
	}
	e.policies = append(e.policies, p)
	return nil
}

// AllAccounts lists every account as "account_id — name", in statement order
// then insertion order.
func (e *Exercise) AllAccounts() []string {
	var out []string
	for _, kind := range StatementKinds {
		for _, a := range e.statements[kind].Accounts() {
			out = append(out, fmt.Sprintf("%d — %s", a.ID(), a.Name()))
		}
	}
	return out
}

// CheckAccountingEquation reports whether
// Assets == Liabilities + Common Stock + Revenue - Expenses.
func (e *Exercise) CheckAccountingEquation() bool {
	right := e.balance(Liabilities).
		Add(e.balance(CommonStock)).
		Add(e.balance(Revenue)).
		Sub(e.balance(Expenses))
	return e.balance(Assets).Equal(right)
}

func (e *Exercise) route(accountID int) (*Statement, error) {
	kind, err := StatementFor(accountID)
	if err != nil {
		return nil, err
	}
	return e.statements[kind], nil
}

func (e *Exercise) String() string {
	var b strings.Builder
	b.WriteString(banner("EXERCISE", 29))
	fmt.Fprintf(&b, "  Company Name: %s\n", e.companyName)
	fmt.Fprintf(&b, "  Name: %s\n", e.name)
	fmt.Fprintf(&b, "  Exercise: %s\n", e.createdAt.Format("2006"))
	if e.closed {
		b.WriteString("  Status: Closed\n")
	}
	b.WriteString("  Statements:\n")
	for _, kind := range StatementKinds {
		fmt.Fprintf(&b, "\n%s\n", e.statements[kind])
	}
	if len(e.policies) > 0 {
		b.WriteString("  \nPolicies:\n")
	}
	for _, p := range e.policies {
		fmt.Fprintf(&b, "\n%s\n", p)
	}
	b.WriteString(strings.Repeat("=", 66))
	return b.String()
}
