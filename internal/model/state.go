package model

import (
	"fmt"
	"slices"
	"time"

	"github.com/shopspring/decimal"
)

// ExerciseState is the plain, serializable form of an Exercise.
type ExerciseState struct {
	ID          string           `yaml:"id"`
	CompanyName string           `yaml:"company_name"`
	Name        string           `yaml:"name"`
	CreatedAt   time.Time        `yaml:"created_at"`
	Closed      bool             `yaml:"closed"`
	Closing     ClosingState     `yaml:"closing"`
	Statements  []StatementState `yaml:"statements"`
	Policies    []PolicyState    `yaml:"policies,omitempty"`
}

// ClosingState is the serializable form of ClosingRules.
type ClosingState struct {
	RetainedEarningsID   int    `yaml:"retained_earnings_id"`
	RetainedEarningsName string `yaml:"retained_earnings_name"`
	IncomeTaxPayableID   int    `yaml:"income_tax_payable_id"`
	IncomeTaxPayableName string `yaml:"income_tax_payable_name"`
	IncomeTaxRate        string `yaml:"income_tax_rate"`
}

// StatementState holds a statement's accounts in insertion order.
type StatementState struct {
	Name     string         `yaml:"name"`
	Accounts []AccountState `yaml:"accounts,omitempty"`
}

// AccountState holds an account and its movements in insertion order.
type AccountState struct {
	ID      int             `yaml:"id"`
	Name    string          `yaml:"name"`
	Credits []MovementState `yaml:"credits,omitempty"`
	Debits  []MovementState `yaml:"debits,omitempty"`
}

// MovementState is the serializable form of a Movement. Quantities are
// decimal strings so no precision is lost.
type MovementState struct {
	AccountID int    `yaml:"account_id"`
	Quantity  string `yaml:"quantity"`
	Side      string `yaml:"side"`
}

// PolicyState is the serializable form of a complete Policy.
type PolicyState struct {
	Invoice     int           `yaml:"invoice"`
	Description string        `yaml:"description"`
	CreatedAt   time.Time     `yaml:"created_at"`
	Credit      MovementState `yaml:"credit"`
	Debit       MovementState `yaml:"debit"`
}

// State returns the full state of the exercise.
func (e *Exercise) State() ExerciseState {
	st := ExerciseState{
		ID:          e.id,
		CompanyName: e.companyName,
		Name:        e.name,
		CreatedAt:   e.createdAt,
		Closed:      e.closed,
		Closing: ClosingState{
			RetainedEarningsID:   e.rules.RetainedEarningsID,
			RetainedEarningsName: e.rules.RetainedEarningsName,
			IncomeTaxPayableID:   e.rules.IncomeTaxPayableID,
			IncomeTaxPayableName: e.rules.IncomeTaxPayableName,
			IncomeTaxRate:        e.rules.IncomeTaxRate.String(),
		},
	}

	for _, kind := range StatementKinds {
		s := e.statements[kind]
		ss := StatementState{Name: s.Name()}
		for _, accountID := range s.order {
			a := s.accounts[accountID]
			ss.Accounts = append(ss.Accounts, AccountState{
				ID:      a.id,
				Name:    a.name,
				Credits: movementStates(a.credits),
				Debits:  movementStates(a.debits),
			})
		}
		st.Statements = append(st.Statements, ss)
	}

	for _, p := range e.policies {
		st.Policies = append(st.Policies, PolicyState{
			Invoice:     p.invoice,
			Description: p.description,
			CreatedAt:   p.createdAt,
			Credit:      movementState(*p.credit),
			Debit:       movementState(*p.debit),
		})
	}
	return st
}

// RestoreExercise rebuilds an exercise from its state. Account movements are
// restored as stored; policies are restored into the log without being
// routed again.
func RestoreExercise(st ExerciseState) (*Exercise, error) {
	rate, err := decimal.NewFromString(st.Closing.IncomeTaxRate)
	if err != nil {
		return nil, fmt.Errorf("parsing income tax rate %q: %w", st.Closing.IncomeTaxRate, err)
	}
	e := NewExercise(st.CompanyName, st.Name, WithClosingRules(ClosingRules{
		RetainedEarningsID:   st.Closing.RetainedEarningsID,
		RetainedEarningsName: st.Closing.RetainedEarningsName,
		IncomeTaxPayableID:   st.Closing.IncomeTaxPayableID,
		IncomeTaxPayableName: st.Closing.IncomeTaxPayableName,
		IncomeTaxRate:        rate,
	}))
	if st.ID != "" {
		e.id = st.ID
	}
	e.createdAt = st.CreatedAt

	if len(st.Statements) != len(StatementKinds) {
		return nil, fmt.Errorf("expected %d statements, got %d", len(StatementKinds), len(st.Statements))
	}
	for i, kind := range StatementKinds {
		ss := st.Statements[i]
		if ss.Name != kind.String() {
			return nil, fmt.Errorf("statement %d: expected %q, got %q", i+1, kind.String(), ss.Name)
		}
		s := e.statements[kind]
		for _, as := range ss.Accounts {
			if routed, err := StatementFor(as.ID); err != nil || routed != kind {
				return nil, fmt.Errorf("account %d does not belong to %s", as.ID, kind)
			}
			if err := s.AddAccount(as.ID, as.Name); err != nil {
				return nil, err
			}
			a := s.accounts[as.ID]
			for _, ms := range slices.Concat(as.Credits, as.Debits) {
				m, err := ms.movement()
				if err != nil {
					return nil, fmt.Errorf("account %d: %w", as.ID, err)
				}
				if err := a.Record(m); err != nil {
					return nil, err
				}
			}
		}
	}

	for _, ps := range st.Policies {
		credit, err := ps.Credit.movement()
		if err != nil {
			return nil, fmt.Errorf("policy %d credit: %w", ps.Invoice, err)
		}
		debit, err := ps.Debit.movement()
		if err != nil {
			return nil, fmt.Errorf("policy %d debit: %w", ps.Invoice, err)
		}
		p, err := NewPolicy(ps.Invoice, ps.Description, credit, debit)
		if err != nil {
			return nil, fmt.Errorf("policy %d: %w", ps.Invoice, err)
		}
		p.createdAt = ps.CreatedAt
		e.policies = append(e.policies, p)
	}

	e.closed = st.Closed
	return e, nil
}

func movementState(m Movement) MovementState {
	return MovementState{
		AccountID: m.accountID,
		Quantity:  m.quantity.String(),
		Side:      string(m.side),
	}
}

func movementStates(ms []Movement) []MovementState {
	if len(ms) == 0 {
		return nil
	}
	out := make([]MovementState, len(ms))
	for i, m := range ms {
		out[i] = movementState(m)
	}
	return out
}

func (ms MovementState) movement() (Movement, error) {
	q, err := decimal.NewFromString(ms.Quantity)
	if err != nil {
		return Movement{}, fmt.Errorf("parsing quantity %q: %w", ms.Quantity, err)
	}
	return NewMovement(ms.AccountID, q, Side(ms.Side)), nil
}
