package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestExercise(t *testing.T, accounts map[int]string) *Exercise {
	t.Helper()
	e := NewExercise("Acme", "FY1")
	for id, name := range accounts {
		require.NoError(t, e.AddAccount(id, name))
	}
	return e
}

func TestNewExercise(t *testing.T) {
	e := NewExercise("Acme", "FY1")
	assert.NotEmpty(t, e.ID())
	assert.Equal(t, "Acme", e.CompanyName())
	assert.Equal(t, "FY1", e.Name())
	assert.False(t, e.Closed())
	assert.Equal(t, 1, e.NextPolicyInvoice())

	var names []string
	for _, s := range e.Statements() {
		names = append(names, s.Name())
		assert.Zero(t, s.Len())
	}
	assert.Equal(t, []string{"Assets", "Liabilities", "Common Stock", "Revenue", "Expenses"}, names)
}

func TestExerciseAddAccount_Routing(t *testing.T) {
	e := NewExercise("Acme", "FY1")
	require.NoError(t, e.AddAccount(100100, "Cash"))
	require.NoError(t, e.AddAccount(400100, "Sales"))

	_, ok := e.Statement(Assets).Account(100100)
	assert.True(t, ok)
	_, ok = e.Statement(Revenue).Account(400100)
	assert.True(t, ok)
	_, ok = e.Statement(Assets).Account(400100)
	assert.False(t, ok)

	assert.ErrorIs(t, e.AddAccount(600100, "Nowhere"), ErrUnroutableAccount)
	assert.ErrorIs(t, e.AddAccount(42, "Nowhere"), ErrUnroutableAccount)
	assert.ErrorIs(t, e.AddAccount(100100, "Cash again"), ErrDuplicateAccount)
}

func TestExerciseRecordPolicy(t *testing.T) {
	e := newTestExercise(t, map[int]string{100100: "Cash", 200100: "Accounts Payable"})

	p := mustPolicy(t, e.NextPolicyInvoice(), "Buy on credit", 200100, 100100, "500")
	require.NoError(t, e.RecordPolicy(p))

	assertDec(t, "500", e.Statement(Assets).Balance())
	assertDec(t, "500", e.Statement(Liabilities).Balance())
	assert.True(t, e.CheckAccountingEquation())

	cash, _ := e.Account(100100)
	assert.Equal(t, SideDebit, cash.Balance().Side)
	payable, _ := e.Account(200100)
	assert.Equal(t, SideCredit, payable.Balance().Side)

	require.Len(t, e.Policies(), 1)
	assert.Equal(t, 2, e.NextPolicyInvoice())
}

func TestExerciseRecordPolicy_Incomplete(t *testing.T) {
	e := newTestExercise(t, map[int]string{100100: "Cash", 200100: "AP"})

	p := NewDraftPolicy(1, "half")
	require.NoError(t, p.SetCredit(Credit(200100, dec("5"))))

	assert.ErrorIs(t, e.RecordPolicy(p), ErrIncompletePolicy)
	assert.ErrorIs(t, e.RecordPolicy(nil), ErrIncompletePolicy)
	assert.Empty(t, e.Policies())
}

func TestExerciseRecordPolicy_Atomic(t *testing.T) {
	tests := []struct {
		name       string
		creditAcct int
		debitAcct  int
		wantErr    error
	}{
		{"unknown debit account", 200100, 100999, ErrUnknownAccount},
		{"unknown credit account", 200999, 100100, ErrUnknownAccount},
		{"unroutable debit account", 200100, 900100, ErrUnroutableAccount},
		{"unroutable credit account", 700100, 100100, ErrUnroutableAccount},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := newTestExercise(t, map[int]string{100100: "Cash", 200100: "AP"})
			p := mustPolicy(t, 1, "bad", tt.creditAcct, tt.debitAcct, "10")

			err := e.RecordPolicy(p)
			require.ErrorIs(t, err, tt.wantErr)

			for _, id := range []int{100100, 200100} {
				a, _ := e.Account(id)
				assert.Empty(t, a.Credits(), "account %d credits", id)
				assert.Empty(t, a.Debits(), "account %d debits", id)
			}
			assert.Empty(t, e.Policies())
		})
	}
}

func TestExerciseAllAccounts(t *testing.T) {
	e := NewExercise("Acme", "FY1")
	require.NoError(t, e.AddAccount(500100, "Rent"))
	require.NoError(t, e.AddAccount(100200, "Bank"))
	require.NoError(t, e.AddAccount(100100, "Cash"))
	require.NoError(t, e.AddAccount(300200, "Owner's Capital"))

	got := e.AllAccounts()
	assert.Equal(t, []string{
		"100200 — Bank",
		"100100 — Cash",
		"300200 — Owner's Capital",
		"500100 — Rent",
	}, got)

	total := 0
	for _, s := range e.Statements() {
		total += s.Len()
	}
	assert.Len(t, got, total)
}

func TestExerciseAccountingEquation_ManyPolicies(t *testing.T) {
	e := newTestExercise(t, map[int]string{
		100100: "Cash",
		100200: "Receivables",
		200200: "Accounts Payable",
		300200: "Owner's Capital",
		400100: "Sales",
		500100: "Rent",
		500200: "Salaries",
	})

	record(t, e, "Capital contribution", 300200, 100100, "10000")
	record(t, e, "Cash sale", 400100, 100100, "2500.10")
	record(t, e, "Credit sale", 400100, 100200, "799.90")
	record(t, e, "Rent", 100100, 500100, "1200")
	record(t, e, "Salaries on credit", 200200, 500200, "900.33")
	record(t, e, "Collect receivable", 100200, 100100, "400")
	record(t, e, "Pay supplier", 100100, 200200, "500")
	record(t, e, "Sales return", 100100, 400100, "0.10")

	assert.True(t, e.CheckAccountingEquation())
	assert.Len(t, e.Policies(), 8)
}

func TestExerciseString(t *testing.T) {
	e := newTestExercise(t, map[int]string{100100: "Cash", 300200: "Capital"})
	record(t, e, "Contribution", 300200, 100100, "50")

	s := e.String()
	assert.Contains(t, s, "=============================EXERCISE=============================")
	assert.Contains(t, s, "  Company Name: Acme\n")
	assert.Contains(t, s, "  Name: FY1\n")
	assert.Contains(t, s, "Policies:\n")
	assert.Contains(t, s, "\"Contribution\"")
}
