package model

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// BalanceSheet is the position of an exercise in pre-close form: net income
// not yet closed into retained earnings is shown inside equity.
type BalanceSheet struct {
	CompanyName          string
	Exercise             string
	Assets               decimal.Decimal
	Liabilities          decimal.Decimal
	CommonStock          decimal.Decimal
	NetIncome            decimal.Decimal
	Equity               decimal.Decimal
	LiabilitiesAndEquity decimal.Decimal
}

// Balanced reports whether assets equal liabilities plus equity.
func (b BalanceSheet) Balanced() bool {
	return b.Assets.Equal(b.LiabilitiesAndEquity)
}

func (b BalanceSheet) String() string {
	var sb strings.Builder
	sb.WriteString(banner("BALANCE SHEET", 24))
	fmt.Fprintf(&sb, "  %s - %s\n", b.CompanyName, b.Exercise)
	writeLine(&sb, "Assets", b.Assets)
	writeLine(&sb, "Liabilities", b.Liabilities)
	writeLine(&sb, "Common Stock", b.CommonStock)
	writeLine(&sb, "Net Income", b.NetIncome)
	writeLine(&sb, "Total Equity", b.Equity)
	writeLine(&sb, "Liabilities + Equity", b.LiabilitiesAndEquity)
	if b.Balanced() {
		sb.WriteString("  Accounting equation holds\n")
	} else {
		fmt.Fprintf(&sb, "  Accounting equation does NOT hold (difference %s)\n", formatMoney(b.Assets.Sub(b.LiabilitiesAndEquity)))
	}
	sb.WriteString(strings.Repeat("=", 61))
	return sb.String()
}

// IncomeStatement is the result of an exercise before closing.
type IncomeStatement struct {
	CompanyName   string
	Exercise      string
	Revenue       decimal.Decimal
	Expenses      decimal.Decimal
	PreTaxIncome  decimal.Decimal
	IncomeTaxRate decimal.Decimal
	IncomeTax     decimal.Decimal
	NetIncome     decimal.Decimal
}

func (s IncomeStatement) String() string {
	var sb strings.Builder
	sb.WriteString(banner("INCOME STATEMENT", 22))
	fmt.Fprintf(&sb, "  %s - %s\n", s.CompanyName, s.Exercise)
	writeLine(&sb, "Revenue", s.Revenue)
	writeLine(&sb, "Expenses", s.Expenses.Neg())
	writeLine(&sb, "Income Before Tax", s.PreTaxIncome)
	writeLine(&sb, fmt.Sprintf("Income Tax (%s%%)", s.IncomeTaxRate.Shift(2)), s.IncomeTax.Neg())
	writeLine(&sb, "Net Income", s.NetIncome)
	sb.WriteString(strings.Repeat("=", 60))
	return sb.String()
}

// BalanceSheet reads the five statement balances.
func (e *Exercise) BalanceSheet() BalanceSheet {
	b := BalanceSheet{
		CompanyName: e.companyName,
		Exercise:    e.name,
		Assets:      e.balance(Assets),
		Liabilities: e.balance(Liabilities),
		CommonStock: e.balance(CommonStock),
		NetIncome:   e.balance(Revenue).Sub(e.balance(Expenses)),
	}
	b.Equity = b.CommonStock.Add(b.NetIncome)
	b.LiabilitiesAndEquity = b.Liabilities.Add(b.Equity)
	return b
}

// IncomeStatement reads revenue and expenses and applies the exercise's
// income tax rate.
func (e *Exercise) IncomeStatement() IncomeStatement {
	s := IncomeStatement{
		CompanyName:   e.companyName,
		Exercise:      e.name,
		Revenue:       e.balance(Revenue),
		Expenses:      e.balance(Expenses),
		IncomeTaxRate: e.rules.IncomeTaxRate,
	}
	s.PreTaxIncome = s.Revenue.Sub(s.Expenses)
	s.IncomeTax = e.rules.IncomeTax(s.PreTaxIncome)
	s.NetIncome = s.PreTaxIncome.Sub(s.IncomeTax)
	return s
}

func (e *Exercise) balance(kind StatementKind) decimal.Decimal {
	return e.statements[kind].Balance()
}

func writeLine(sb *strings.Builder, label string, amount decimal.Decimal) {
	fmt.Fprintf(sb, "  %-24s %14s\n", label+":", formatMoney(amount))
}
