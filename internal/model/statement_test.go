package model

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStatementFor(t *testing.T) {
	tests := []struct {
		accountID int
		want      StatementKind
	}{
		{100100, Assets},
		{200100, Liabilities},
		{300100, CommonStock},
		{400100, Revenue},
		{500100, Expenses},
	}
	for _, tt := range tests {
		got, err := StatementFor(tt.accountID)
		require.NoError(t, err)
		assert.Equal(t, tt.want, got)
	}

	for _, bad := range []int{0, 99999, 600100, 900000} {
		_, err := StatementFor(bad)
		assert.ErrorIs(t, err, ErrUnroutableAccount, "account %d", bad)
	}
}

func TestStatementKinds(t *testing.T) {
	tests := []struct {
		kind   StatementKind
		name   string
		nature Nature
	}{
		{Assets, "Assets", NatureDebtor},
		{Liabilities, "Liabilities", NatureCreditor},
		{CommonStock, "Common Stock", NatureCreditor},
		{Revenue, "Revenue", NatureCreditor},
		{Expenses, "Expenses", NatureDebtor},
	}
	for _, tt := range tests {
		s := NewStatement(tt.kind)
		assert.Equal(t, tt.name, s.Name())
		assert.Equal(t, tt.nature, s.Nature())
	}
}

func TestStatementAddAccount(t *testing.T) {
	s := NewStatement(Assets)
	require.NoError(t, s.AddAccount(100100, "Cash"))
	require.NoError(t, s.AddAccount(100200, "Bank"))

	a, ok := s.Account(100100)
	require.True(t, ok)
	assert.Equal(t, "Cash", a.Name())
	assert.Equal(t, NatureDebtor, a.Nature())
	assert.Equal(t, 2, s.Len())
}

func TestStatementAddAccount_Duplicate(t *testing.T) {
	s := NewStatement(Liabilities)
	require.NoError(t, s.AddAccount(200100, "Accounts Payable"))
	require.NoError(t, s.RecordMovement(Credit(200100, dec("10"))))

	err := s.AddAccount(200100, "Other")
	require.ErrorIs(t, err, ErrDuplicateAccount)

	assert.Equal(t, 1, s.Len())
	a, _ := s.Account(200100)
	assert.Equal(t, "Accounts Payable", a.Name())
	assert.Len(t, a.Credits(), 1)
}

func TestStatementRecordMovement(t *testing.T) {
	s := NewStatement(Assets)
	require.NoError(t, s.AddAccount(100100, "Cash"))

	require.NoError(t, s.RecordMovement(Debit(100100, dec("25"))))

	err := s.RecordMovement(Debit(100999, dec("25")))
	assert.ErrorIs(t, err, ErrUnknownAccount)

	err = s.RecordMovement(NewMovement(100100, dec("25"), Side("Z")))
	assert.ErrorIs(t, err, ErrInvalidMovementSide)

	a, _ := s.Account(100100)
	assert.Len(t, a.Debits(), 1)
	assert.Empty(t, a.Credits())
}

func TestStatementBalance(t *testing.T) {
	s := NewStatement(Assets)
	require.NoError(t, s.AddAccount(100100, "Cash"))
	require.NoError(t, s.AddAccount(100200, "Bank"))
	require.NoError(t, s.AddAccount(100300, "Overdrawn"))

	require.NoError(t, s.RecordMovement(Debit(100100, dec("500"))))
	require.NoError(t, s.RecordMovement(Debit(100200, dec("120.50"))))
	require.NoError(t, s.RecordMovement(Credit(100200, dec("20.50"))))
	require.NoError(t, s.RecordMovement(Credit(100300, dec("75"))))

	// 500 + 100 - 75
	assertDec(t, "525", s.Balance())

	// The statement balance is the nature-signed sum of its accounts.
	sum := dec("0")
	for _, a := range s.Accounts() {
		sum = sum.Add(a.Balance().Signed(s.Nature()))
	}
	assertDec(t, sum.String(), s.Balance())
}

func TestStatementAccountsInsertionOrder(t *testing.T) {
	s := NewStatement(Expenses)
	for _, id := range []int{500300, 500100, 500200} {
		require.NoError(t, s.AddAccount(id, "x"))
	}
	var ids []int
	for _, a := range s.Accounts() {
		ids = append(ids, a.ID())
	}
	assert.Equal(t, []int{500300, 500100, 500200}, ids)
}

func TestStatementString(t *testing.T) {
	s := NewStatement(Revenue)
	require.NoError(t, s.AddAccount(400200, "Services"))
	require.NoError(t, s.AddAccount(400100, "Sales"))
	require.NoError(t, s.RecordMovement(Debit(400100, dec("15"))))

	out := s.String()
	assert.Contains(t, out, "  Name: Revenue\n")
	assert.Contains(t, out, "  Nature: Creditor\n")
	assert.Contains(t, out, "  Balance: -$15.00\n")
	// Accounts are rendered sorted by ID.
	assert.Less(t, strings.Index(out, "ID: 400100"), strings.Index(out, "ID: 400200"))
}

