package model

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewPolicy_Balanced(t *testing.T) {
	p, err := NewPolicy(1, "Buy supplies", Credit(100100, dec("100")), Debit(500100, dec("100")))
	require.NoError(t, err)
	assert.True(t, p.Complete())
	assert.Equal(t, 1, p.Invoice())
	assert.Equal(t, "Buy supplies", p.Description())

	c, ok := p.Credit()
	require.True(t, ok)
	assert.Equal(t, 100100, c.AccountID())
	d, ok := p.Debit()
	require.True(t, ok)
	assert.Equal(t, 500100, d.AccountID())
}

func TestNewPolicy_Unbalanced(t *testing.T) {
	_, err := NewPolicy(1, "x", Credit(100100, dec("100")), Debit(500100, dec("99")))
	assert.ErrorIs(t, err, ErrUnbalancedPolicy)
}

func TestNewPolicy_SameAccount(t *testing.T) {
	_, err := NewPolicy(1, "x", Credit(100100, dec("100")), Debit(100100, dec("100")))
	assert.ErrorIs(t, err, ErrSelfReferencingPolicy)
}

func TestNewPolicy_EqualValueDifferentScale(t *testing.T) {
	_, err := NewPolicy(1, "x", Credit(100100, dec("100")), Debit(500100, dec("100.00")))
	assert.NoError(t, err)
}

func TestPolicySetters_DebitFirst(t *testing.T) {
	p := NewDraftPolicy(3, "x")
	assert.False(t, p.Complete())

	require.NoError(t, p.SetDebit(Debit(500100, dec("10"))))
	assert.False(t, p.Complete())

	err := p.SetCredit(Credit(100100, dec("11")))
	require.ErrorIs(t, err, ErrUnbalancedPolicy)
	_, ok := p.Credit()
	assert.False(t, ok, "rejected credit must not be stored")

	require.NoError(t, p.SetCredit(Credit(100100, dec("10"))))
	assert.True(t, p.Complete())
}

func TestPolicySetters_SecondSetFails(t *testing.T) {
	p := NewDraftPolicy(1, "x")
	require.NoError(t, p.SetCredit(Credit(100100, dec("10"))))

	err := p.SetCredit(Credit(100200, dec("10")))
	require.ErrorIs(t, err, ErrPolicySideSet)

	c, _ := p.Credit()
	assert.Equal(t, 100100, c.AccountID(), "first credit is kept")

	require.NoError(t, p.SetDebit(Debit(500100, dec("10"))))
	assert.ErrorIs(t, p.SetDebit(Debit(500200, dec("10"))), ErrPolicySideSet)
}

func TestPolicySetters_WrongSide(t *testing.T) {
	p := NewDraftPolicy(1, "x")
	assert.ErrorIs(t, p.SetCredit(Debit(100100, dec("10"))), ErrInvalidMovementSide)
	assert.ErrorIs(t, p.SetDebit(Credit(100100, dec("10"))), ErrInvalidMovementSide)
	assert.False(t, p.Complete())
}

func TestPolicyString(t *testing.T) {
	orig := now
	now = func() time.Time { return time.Date(2025, 3, 7, 9, 0, 0, 0, time.UTC) }
	defer func() { now = orig }()

	p := mustPolicy(t, 4, "Office rent", 100100, 500100, "1200")
	s := p.String()
	assert.Contains(t, s, "  Invoice:      4\n")
	assert.Contains(t, s, "  Description: \"Office rent\"\n")
	assert.Contains(t, s, "  Date:         Friday March 07 2025\n")
	assert.Contains(t, s, "    Account: 100100, Quantity: $1200.00, Type: Credit\n")
	assert.Contains(t, s, "    Account: 500100, Quantity: $1200.00, Type: Debit\n")
}
