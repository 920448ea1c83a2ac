package model

import (
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
)

// ClosingRules names the accounts and rate used to close an exercise.
type ClosingRules struct {
	RetainedEarningsID   int
	RetainedEarningsName string
	IncomeTaxPayableID   int
	IncomeTaxPayableName string
	IncomeTaxRate        decimal.Decimal
}

// DefaultClosingRules returns Retained Earnings 300100, Income Tax Payable
// 200100 and a 30% income tax rate.
func DefaultClosingRules() ClosingRules {
	return ClosingRules{
		RetainedEarningsID:   300100,
		RetainedEarningsName: "Retained Earnings",
		IncomeTaxPayableID:   200100,
		IncomeTaxPayableName: "Income Tax Payable",
		IncomeTaxRate:        decimal.RequireFromString("0.30"),
	}
}

// Validate checks that retained earnings routes to Common Stock, income tax
// payable routes to Liabilities and the rate is within [0, 1].
func (r ClosingRules) Validate() error {
	if kind, err := StatementFor(r.RetainedEarningsID); err != nil || kind != CommonStock {
		return fmt.Errorf("retained earnings account %d must belong to %s", r.RetainedEarningsID, CommonStock)
	}
	if kind, err := StatementFor(r.IncomeTaxPayableID); err != nil || kind != Liabilities {
		return fmt.Errorf("income tax payable account %d must belong to %s", r.IncomeTaxPayableID, Liabilities)
	}
	if r.IncomeTaxRate.IsNegative() || r.IncomeTaxRate.GreaterThan(decimal.NewFromInt(1)) {
		return fmt.Errorf("income tax rate %s must be between 0 and 1", r.IncomeTaxRate)
	}
	return nil
}

// IncomeTax applies the rate to a pre-tax income. Losses owe no tax.
func (r ClosingRules) IncomeTax(preTax decimal.Decimal) decimal.Decimal {
	if !preTax.IsPositive() {
		return decimal.Zero
	}
	return preTax.Mul(r.IncomeTaxRate).Round(2)
}

// ClosingSummary describes the closing entries of an exercise.
type ClosingSummary struct {
	RevenueTotal  decimal.Decimal
	ExpensesTotal decimal.Decimal
	PreTaxIncome  decimal.Decimal
	IncomeTax     decimal.Decimal
	Policies      []*Policy
}

// PlanClose computes the closing policies without mutating the exercise.
// Every revenue and expense account with a non-zero balance is zeroed against
// retained earnings, and a positive pre-tax income is charged income tax.
// Accounts with a zero balance produce no policy.
func (e *Exercise) PlanClose() (*ClosingSummary, error) {
	if e.closed {
		return nil, fmt.Errorf("%w: %s", ErrExerciseClosed, e.name)
	}
	r := e.rules
	if err := r.Validate(); err != nil {
		return nil, fmt.Errorf("closing rules: %w", err)
	}

	sum := &ClosingSummary{
		RevenueTotal:  decimal.Zero,
		ExpensesTotal: decimal.Zero,
	}
	invoice := e.NextPolicyInvoice()
	add := func(description string, credit, debit Movement) error {
		p, err := NewPolicy(invoice, description, credit, debit)
		if err != nil {
			return fmt.Errorf("closing policy %d: %w", invoice, err)
		}
		sum.Policies = append(sum.Policies, p)
		invoice++
		return nil
	}

	for _, a := range e.statements[Revenue].Accounts() {
		bal := a.Balance()
		if bal.Quantity.IsZero() {
			continue
		}
		desc := fmt.Sprintf("Close revenue %d %s", a.ID(), a.Name())
		var err error
		if bal.Side == SideCredit {
			err = add(desc, Credit(r.RetainedEarningsID, bal.Quantity), Debit(a.ID(), bal.Quantity))
		} else {
			err = add(desc, Credit(a.ID(), bal.Quantity), Debit(r.RetainedEarningsID, bal.Quantity))
		}
		if err != nil {
			return nil, err
		}
		sum.RevenueTotal = sum.RevenueTotal.Add(bal.Signed(NatureCreditor))
	}

	for _, a := range e.statements[Expenses].Accounts() {
		bal := a.Balance()
		if bal.Quantity.IsZero() {
			continue
		}
		desc := fmt.Sprintf("Close expense %d %s", a.ID(), a.Name())
		var err error
		if bal.Side == SideDebit {
			err = add(desc, Credit(a.ID(), bal.Quantity), Debit(r.RetainedEarningsID, bal.Quantity))
		} else {
			err = add(desc, Credit(r.RetainedEarningsID, bal.Quantity), Debit(a.ID(), bal.Quantity))
		}
		if err != nil {
			return nil, err
		}
		sum.ExpensesTotal = sum.ExpensesTotal.Add(bal.Signed(NatureDebtor))
	}

	sum.PreTaxIncome = sum.RevenueTotal.Sub(sum.ExpensesTotal)
	sum.IncomeTax = r.IncomeTax(sum.PreTaxIncome)
	if sum.IncomeTax.IsPositive() {
		desc := fmt.Sprintf("Income tax %s%% on %s", r.IncomeTaxRate.Shift(2).String(), sum.PreTaxIncome.StringFixed(2))
		if err := add(desc, Credit(r.IncomeTaxPayableID, sum.IncomeTax), Debit(r.RetainedEarningsID, sum.IncomeTax)); err != nil {
			return nil, err
		}
	}
	return sum, nil
}

// CloseBook records the closing plan and marks the exercise closed. The
// retained earnings and income tax payable accounts are created if missing.
// A closed exercise rejects further accounts, policies and closes.
func (e *Exercise) CloseBook() (*ClosingSummary, error) {
	sum, err := e.PlanClose()
	if err != nil {
		return nil, err
	}

	if err := e.ensureAccount(e.rules.RetainedEarningsID, e.rules.RetainedEarningsName); err != nil {
		return nil, err
	}
	if sum.IncomeTax.IsPositive() {
		if err := e.ensureAccount(e.rules.IncomeTaxPayableID, e.rules.IncomeTaxPayableName); err != nil {
			return nil, err
		}
	}

	for _, p := range sum.Policies {
		if err := e.RecordPolicy(p); err != nil {
			return nil, fmt.Errorf("recording closing policy %d: %w", p.Invoice(), err)
		}
	}
	e.closed = true
	return sum, nil
}

// ensureAccount adds an account, treating an existing one as success.
func (e *Exercise) ensureAccount(accountID int, name string) error {
	err := e.AddAccount(accountID, name)
	if errors.Is(err, ErrDuplicateAccount) {
		return nil
	}
	return err
}
