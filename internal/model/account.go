package model

import (
	"fmt"
	"slices"
	"strings"

	"github.com/shopspring/decimal"
)

// Account accumulates the movements recorded against one account ID.
// Movements are append-only.
type Account struct {
	id      int
	name    string
	nature  Nature
	credits []Movement
	debits  []Movement
}

// AccountView is the read-only surface of an Account.
type AccountView interface {
	ID() int
	Name() string
	Nature() Nature
	Credits() []Movement
	Debits() []Movement
	Balance() Balance
	String() string
}

var _ AccountView = (*Account)(nil)

func newAccount(id int, name string, nature Nature) *Account {
	return &Account{id: id, name: name, nature: nature}
}

func (a *Account) ID() int        { return a.id }
func (a *Account) Name() string   { return a.name }
func (a *Account) Nature() Nature { return a.nature }

// Credits returns the credit movements in insertion order.
func (a *Account) Credits() []Movement { return slices.Clone(a.credits) }

// Debits returns the debit movements in insertion order.
func (a *Account) Debits() []Movement { return slices.Clone(a.debits) }

// Record appends m to the credits or debits depending on its side.
func (a *Account) Record(m Movement) error {
	if m.accountID != a.id {
		return fmt.Errorf("%w: movement for %d recorded on %d", ErrAccountMismatch, m.accountID, a.id)
	}
	switch m.side {
	case SideCredit:
		a.credits = append(a.credits, m)
	case SideDebit:
		a.debits = append(a.debits, m)
	default:
		return fmt.Errorf("%w: %q", ErrInvalidMovementSide, string(m.side))
	}
	return nil
}

// Balance nets credits against debits. A zero balance is tagged with the
// account's own nature.
func (a *Account) Balance() Balance {
	credit := sumQuantities(a.credits)
	debit := sumQuantities(a.debits)

	switch credit.Cmp(debit) {
	case 1:
		return Balance{Quantity: credit.Sub(debit), Side: SideCredit}
	case -1:
		return Balance{Quantity: debit.Sub(credit), Side: SideDebit}
	default:
		return Balance{Quantity: decimal.Zero, Side: a.nature.Side()}
	}
}

func (a *Account) String() string {
	var b strings.Builder
	b.WriteString(banner("ACCOUNT", 27))
	fmt.Fprintf(&b, "  Name: %s\n", a.name)
	fmt.Fprintf(&b, "  ID: %d\n", a.id)
	fmt.Fprintf(&b, "  Balance: %s\n", formatMoney(a.Balance().Signed(a.nature)))
	if len(a.credits) > 0 {
		b.WriteString("  Credits:\n")
	}
	for _, m := range a.credits {
		fmt.Fprintf(&b, "    %s\n", m)
	}
	if len(a.debits) > 0 {
		b.WriteString("  Debits:\n")
	}
	for _, m := range a.debits {
		fmt.Fprintf(&b, "    %s\n", m)
	}
	b.WriteString(strings.Repeat("=", 62))
	return b.String()
}

func sumQuantities(ms []Movement) decimal.Decimal {
	total := decimal.Zero
	for _, m := range ms {
		total = total.Add(m.quantity)
	}
	return total
}

// banner returns a title line padded with pad '=' on each side.
func banner(title string, pad int) string {
	return strings.Repeat("=", pad) + title + strings.Repeat("=", pad) + "\n"
}
