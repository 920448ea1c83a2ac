package model

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// Side tags a movement as a debit or a credit.
type Side string

const (
	SideDebit  Side = "D"
	SideCredit Side = "C"
)

// ParseSide normalizes a side indicator. "d", "debit", "c" and "credit" are
// accepted in any case; anything else is returned upper-cased and fails Valid.
func ParseSide(s string) Side {
	switch v := strings.ToUpper(strings.TrimSpace(s)); v {
	case "D", "DEBIT":
		return SideDebit
	case "C", "CREDIT":
		return SideCredit
	default:
		return Side(v)
	}
}

// Valid reports whether s is SideDebit or SideCredit.
func (s Side) Valid() bool {
	return s == SideDebit || s == SideCredit
}

func (s Side) String() string {
	switch s {
	case SideDebit:
		return "Debit"
	case SideCredit:
		return "Credit"
	default:
		return string(s)
	}
}

// Nature is the side on which an account or statement normally carries its balance.
type Nature string

const (
	NatureDebtor   Nature = "D"
	NatureCreditor Nature = "C"
)

// Side returns the movement side that increases a balance of this nature.
func (n Nature) Side() Side {
	return Side(n)
}

func (n Nature) String() string {
	if n == NatureDebtor {
		return "Debtor"
	}
	return "Creditor"
}

// Movement is a single debit or credit of a quantity against one account.
// It is immutable once constructed.
type Movement struct {
	accountID int
	quantity  decimal.Decimal
	side      Side
}

// NewMovement creates a movement. The side is normalized but not validated.
func NewMovement(accountID int, quantity decimal.Decimal, side Side) Movement {
	return Movement{
		accountID: accountID,
		quantity:  quantity,
		side:      ParseSide(string(side)),
	}
}

// Debit is shorthand for NewMovement(accountID, quantity, SideDebit).
func Debit(accountID int, quantity decimal.Decimal) Movement {
	return NewMovement(accountID, quantity, SideDebit)
}

// Credit is shorthand for NewMovement(accountID, quantity, SideCredit).
func Credit(accountID int, quantity decimal.Decimal) Movement {
	return NewMovement(accountID, quantity, SideCredit)
}

func (m Movement) AccountID() int            { return m.accountID }
func (m Movement) Quantity() decimal.Decimal { return m.quantity }
func (m Movement) Side() Side                { return m.side }

func (m Movement) String() string {
	return fmt.Sprintf("Account: %d, Quantity: %s, Type: %s", m.accountID, formatMoney(m.quantity), m.side)
}

// Balance is a non-negative quantity tagged with the side it sits on.
type Balance struct {
	Quantity decimal.Decimal
	Side     Side
}

// Signed returns the quantity, negated when the balance sits opposite to nature.
func (b Balance) Signed(nature Nature) decimal.Decimal {
	if b.Side == nature.Side() {
		return b.Quantity
	}
	return b.Quantity.Neg()
}

// formatMoney renders an amount as "$1234.50" or "-$1234.50".
func formatMoney(d decimal.Decimal) string {
	if d.IsNegative() {
		return "-$" + d.Neg().StringFixed(2)
	}
	return "$" + d.StringFixed(2)
}
