package model

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
)

func dec(s string) decimal.Decimal {
	d, _ := decimal.NewFromString(s)
	return d
}

// assertDec compares decimals by value, ignoring exponent.
func assertDec(t *testing.T, want string, got decimal.Decimal) {
	t.Helper()
	require.True(t, dec(want).Equal(got), "want %s, got %s", want, got.String())
}

func mustPolicy(t *testing.T, invoice int, desc string, creditAcct, debitAcct int, amount string) *Policy {
	t.Helper()
	p, err := NewPolicy(invoice, desc, Credit(creditAcct, dec(amount)), Debit(debitAcct, dec(amount)))
	require.NoError(t, err)
	return p
}

func record(t *testing.T, e *Exercise, desc string, creditAcct, debitAcct int, amount string) {
	t.Helper()
	require.NoError(t, e.RecordPolicy(mustPolicy(t, e.NextPolicyInvoice(), desc, creditAcct, debitAcct, amount)))
}
