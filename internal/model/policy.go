package model

import (
	"fmt"
	"strings"
	"time"
)

// now is replaced in tests that need fixed timestamps.
var now = time.Now

// Policy is one journal entry: a credit and a debit of the same quantity on
// two different accounts. Each side can be set exactly once.
type Policy struct {
	invoice     int
	description string
	createdAt   time.Time
	credit      *Movement
	debit       *Movement
}

// NewDraftPolicy creates a policy with neither side set. The invoice is
// assigned by the caller, normally from Exercise.NextPolicyInvoice.
func NewDraftPolicy(invoice int, description string) *Policy {
	return &Policy{
		invoice:     invoice,
		description: description,
		createdAt:   now(),
	}
}

// NewPolicy creates a complete policy from both movements.
func NewPolicy(invoice int, description string, credit, debit Movement) (*Policy, error) {
	p := NewDraftPolicy(invoice, description)
	if err := p.SetCredit(credit); err != nil {
		return nil, err
	}
	if err := p.SetDebit(debit); err != nil {
		return nil, err
	}
	return p, nil
}

func (p *Policy) Invoice() int         { return p.invoice }
func (p *Policy) Description() string  { return p.description }
func (p *Policy) CreatedAt() time.Time { return p.createdAt }

// Complete reports whether both sides are set.
func (p *Policy) Complete() bool {
	return p.credit != nil && p.debit != nil
}

// Credit returns the credit movement, if set.
func (p *Policy) Credit() (Movement, bool) {
	if p.credit == nil {
		return Movement{}, false
	}
	return *p.credit, true
}

// Debit returns the debit movement, if set.
func (p *Policy) Debit() (Movement, bool) {
	if p.debit == nil {
		return Movement{}, false
	}
	return *p.debit, true
}

// SetCredit sets the credit side. m must be a credit movement.
func (p *Policy) SetCredit(m Movement) error {
	if p.credit != nil {
		return fmt.Errorf("%w: credit of policy %d", ErrPolicySideSet, p.invoice)
	}
	if m.side != SideCredit {
		return fmt.Errorf("%w: credit side given a %s movement", ErrInvalidMovementSide, m.side)
	}
	if err := checkPair(m, p.debit); err != nil {
		return err
	}
	p.credit = &m
	return nil
}

// SetDebit sets the debit side. m must be a debit movement.
func (p *Policy) SetDebit(m Movement) error {
	if p.debit != nil {
		return fmt.Errorf("%w: debit of policy %d", ErrPolicySideSet, p.invoice)
	}
	if m.side != SideDebit {
		return fmt.Errorf("%w: debit side given a %s movement", ErrInvalidMovementSide, m.side)
	}
	if err := checkPair(m, p.credit); err != nil {
		return err
	}
	p.debit = &m
	return nil
}

// checkPair enforces the balance law and distinct accounts against the
// opposite side, when it is already set.
func checkPair(m Movement, other *Movement) error {
	if other == nil {
		return nil
	}
	if !m.quantity.Equal(other.quantity) {
		return fmt.Errorf("%w: %s vs %s", ErrUnbalancedPolicy, m.quantity.StringFixed(2), other.quantity.StringFixed(2))
	}
	if m.accountID == other.accountID {
		return fmt.Errorf("%w: %d", ErrSelfReferencingPolicy, m.accountID)
	}
	return nil
}

func (p *Policy) String() string {
	var b strings.Builder
	b.WriteString(banner("POLICY", 27))
	fmt.Fprintf(&b, "  Invoice:      %d\n", p.invoice)
	fmt.Fprintf(&b, "  Description: %q\n", p.description)
	fmt.Fprintf(&b, "  Date:         %s\n", p.createdAt.Format("Monday January 02 2006"))
	b.WriteString("  Movements:\n")
	if p.credit != nil {
		fmt.Fprintf(&b, "    %s\n", *p.credit)
	}
	if p.debit != nil {
		fmt.Fprintf(&b, "    %s\n", *p.debit)
	}
	b.WriteString(strings.Repeat("=", 60))
	return b.String()
}
