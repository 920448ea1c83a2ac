package journal

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/cleared-dev/bookkeeper/internal/id"
	"github.com/cleared-dev/bookkeeper/internal/model"
)

// ValidationError describes a single rejected input field or ledger row.
type ValidationError struct {
	Field   string
	EntryID string
	Message string
}

func (e ValidationError) Error() string {
	if e.EntryID != "" {
		return fmt.Sprintf("%s [%s]: %s", e.Field, e.EntryID, e.Message)
	}
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// ValidationErrors aggregates every problem found in one input.
type ValidationErrors []ValidationError

func (es ValidationErrors) Error() string {
	msgs := make([]string, len(es))
	for i, e := range es {
		msgs[i] = e.Error()
	}
	return "validation failed: " + strings.Join(msgs, "; ")
}

// err returns nil when nothing was collected so callers can return it directly.
func (es ValidationErrors) err() error {
	if len(es) == 0 {
		return nil
	}
	return es
}

// AccountChecker tests whether an account ID exists in an exercise.
type AccountChecker interface {
	HasAccount(id int) bool
}

// PolicyInput is a validated policy request.
type PolicyInput struct {
	Description   string
	CreditAmount  decimal.Decimal
	CreditAccount int
	DebitAmount   decimal.Decimal
	DebitAccount  int
}

// ValidatePolicyParams checks raw policy input: a non-empty description,
// non-negative numeric amounts in cents and 6-digit account IDs. Balance and routing
// are left to the ledger.
func ValidatePolicyParams(p AddPolicyParams) (PolicyInput, error) {
	var errs ValidationErrors
	in := PolicyInput{Description: strings.TrimSpace(p.Description)}

	if in.Description == "" {
		errs = append(errs, ValidationError{Field: "description", Message: "is empty"})
	}

	var err error
	if in.CreditAmount, err = parseAmount(p.CreditAmount); err != nil {
		errs = append(errs, ValidationError{Field: "credit amount", Message: err.Error()})
	}
	if in.DebitAmount, err = parseAmount(p.DebitAmount); err != nil {
		errs = append(errs, ValidationError{Field: "debit amount", Message: err.Error()})
	}
	if in.CreditAccount, err = id.ParseAccountID(p.CreditAccount); err != nil {
		errs = append(errs, ValidationError{Field: "credit account", Message: err.Error()})
	}
	if in.DebitAccount, err = id.ParseAccountID(p.DebitAccount); err != nil {
		errs = append(errs, ValidationError{Field: "debit account", Message: err.Error()})
	}
	return in, errs.err()
}

// ValidateAccountParams checks a raw account ID and name.
func ValidateAccountParams(rawID, name string) (int, string, error) {
	var errs ValidationErrors
	accountID, err := id.ParseAccountID(rawID)
	if err != nil {
		errs = append(errs, ValidationError{Field: "account id", Message: err.Error()})
	}
	name = strings.TrimSpace(name)
	if name == "" {
		errs = append(errs, ValidationError{Field: "name", Message: "is empty"})
	}
	return accountID, name, errs.err()
}

func parseAmount(s string) (decimal.Decimal, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return decimal.Zero, fmt.Errorf("is empty")
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero, fmt.Errorf("%q is not a number", s)
	}
	if d.IsNegative() {
		return decimal.Zero, fmt.Errorf("%s is negative", s)
	}
	if !isCents(d) {
		return decimal.Zero, fmt.Errorf("%s has more than 2 decimal places", s)
	}
	return d, nil
}

// isCents reports whether d has at most 2 decimal places.
func isCents(d decimal.Decimal) bool {
	return d.Round(2).Equal(d)
}

// ValidateLegs checks an imported policy log before anything is recorded:
// each entry has exactly one credit leg and one debit leg of equal amount,
// every leg fills exactly one amount column with a non-negative amount of at
// most 2 decimal places, every account exists, and entry invoices run 1..N without gaps.
func ValidateLegs(legs []Leg, accounts AccountChecker) []ValidationError {
	var errs []ValidationError

	groups := make(map[string][]Leg)
	var groupOrder []string
	for _, leg := range legs {
		g := leg.EntryGroup()
		if _, seen := groups[g]; !seen {
			groupOrder = append(groupOrder, g)
		}
		groups[g] = append(groups[g], leg)
	}

	for _, g := range groupOrder {
		var credits, debits int
		totalDebit := decimal.Zero
		totalCredit := decimal.Zero
		for _, leg := range groups[g] {
			switch leg.Side {
			case model.SideCredit:
				credits++
			case model.SideDebit:
				debits++
			}
			totalDebit = totalDebit.Add(leg.Debit)
			totalCredit = totalCredit.Add(leg.Credit)
		}
		if credits != 1 || debits != 1 {
			errs = append(errs, ValidationError{
				Field:   "entry",
				EntryID: g,
				Message: fmt.Sprintf("needs one credit and one debit leg, got %d and %d", credits, debits),
			})
		}
		if !totalDebit.Equal(totalCredit) {
			errs = append(errs, ValidationError{
				Field:   "entry",
				EntryID: g,
				Message: fmt.Sprintf("debits (%s) != credits (%s)", totalDebit.StringFixed(2), totalCredit.StringFixed(2)),
			})
		}
	}

	for _, leg := range legs {
		if !leg.Side.Valid() {
			errs = append(errs, ValidationError{
				Field:   "amount",
				EntryID: leg.EntryID,
				Message: "leg must have exactly one of debit or credit",
			})
		}

		for _, amt := range []decimal.Decimal{leg.Debit, leg.Credit} {
			if amt.IsNegative() {
				errs = append(errs, ValidationError{
					Field:   "amount",
					EntryID: leg.EntryID,
					Message: fmt.Sprintf("%s is negative", amt),
				})
			}
			if !isCents(amt) {
				errs = append(errs, ValidationError{
					Field:   "amount",
					EntryID: leg.EntryID,
					Message: fmt.Sprintf("%s has more than 2 decimal places", amt),
				})
			}
		}

		if !accounts.HasAccount(leg.AccountID) {
			errs = append(errs, ValidationError{
				Field:   "account",
				EntryID: leg.EntryID,
				Message: fmt.Sprintf("unknown account %d", leg.AccountID),
			})
		}
	}

	invoices := make(map[int]bool)
	for _, g := range groupOrder {
		_, invoice, err := id.ParseEntryID(g)
		if err != nil {
			errs = append(errs, ValidationError{
				Field:   "entry",
				EntryID: g,
				Message: fmt.Sprintf("invalid entry ID: %v", err),
			})
			continue
		}
		if invoices[invoice] {
			errs = append(errs, ValidationError{
				Field:   "entry",
				EntryID: g,
				Message: fmt.Sprintf("duplicate invoice %d", invoice),
			})
		}
		invoices[invoice] = true
	}
	for i := 1; i <= len(invoices); i++ {
		if !invoices[i] {
			errs = append(errs, ValidationError{
				Field:   "entry",
				EntryID: fmt.Sprintf("invoice %d", i),
				Message: fmt.Sprintf("missing invoice %d in 1..%d", i, len(invoices)),
			})
		}
	}

	return errs
}
