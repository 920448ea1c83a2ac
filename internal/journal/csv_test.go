package journal

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cleared-dev/bookkeeper/internal/model"
)

func TestLegRoundTrip(t *testing.T) {
	legs := balancedEntry(1, 400100, 100100, "1234.50")
	legs[0].Description = `Sale, "big" one`
	legs[1].Description = legs[0].Description

	var buf bytes.Buffer
	require.NoError(t, WriteLegs(&buf, legs))

	got, err := ReadLegs(&buf)
	require.NoError(t, err)
	require.Len(t, got, 2)
	for i := range legs {
		assert.Equal(t, legs[i].EntryID, got[i].EntryID)
		assert.True(t, legs[i].Date.Equal(got[i].Date))
		assert.Equal(t, legs[i].AccountID, got[i].AccountID)
		assert.Equal(t, legs[i].Description, got[i].Description)
		assert.Equal(t, legs[i].Side, got[i].Side)
		assert.True(t, legs[i].Debit.Equal(got[i].Debit))
		assert.True(t, legs[i].Credit.Equal(got[i].Credit))
	}
}

func TestMarshalLeg(t *testing.T) {
	leg := Leg{
		EntryID:     "FY2025-001a",
		Date:        time.Date(2025, 3, 7, 14, 0, 0, 0, time.UTC),
		AccountID:   400100,
		Description: "Sale",
		Credit:      dec("1000"),
	}
	assert.Equal(t, []string{"FY2025-001a", "2025-03-07", "400100", "Sale", "", "1000.00"}, MarshalLeg(leg))
}

func TestMarshalLeg_ZeroAmountKeepsSide(t *testing.T) {
	legs := balancedEntry(1, 400100, 100100, "0")
	assert.Equal(t, []string{"FY2025-001a", "2025-01-15", "400100", "entry", "", "0.00"}, MarshalLeg(legs[0]))
	assert.Equal(t, []string{"FY2025-001b", "2025-01-15", "100100", "entry", "0.00", ""}, MarshalLeg(legs[1]))

	got, err := UnmarshalLeg(MarshalLeg(legs[1]))
	require.NoError(t, err)
	assert.Equal(t, model.SideDebit, got.Side)
	assert.True(t, got.Debit.IsZero())
}

func TestUnmarshalLeg_Side(t *testing.T) {
	tests := []struct {
		name          string
		debit, credit string
		want          model.Side
	}{
		{"debit", "1.00", "", model.SideDebit},
		{"credit", "", "1.00", model.SideCredit},
		{"both", "1.00", "1.00", ""},
		{"neither", "", "", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			leg, err := UnmarshalLeg([]string{"FY2025-001a", "2025-03-07", "400100", "Sale", tt.debit, tt.credit})
			require.NoError(t, err)
			assert.Equal(t, tt.want, leg.Side)
		})
	}
}

func TestUnmarshalLeg_Errors(t *testing.T) {
	tests := []struct {
		name    string
		record  []string
		wantMsg string
	}{
		{"field count", []string{"FY2025-001a"}, "expected 6 fields"},
		{"date", []string{"FY2025-001a", "03/07/2025", "400100", "Sale", "", "1"}, "parsing date"},
		{"account", []string{"FY2025-001a", "2025-03-07", "4001", "Sale", "", "1"}, "parsing account_id"},
		{"debit", []string{"FY2025-001a", "2025-03-07", "400100", "Sale", "x", ""}, "parsing debit"},
		{"credit", []string{"FY2025-001a", "2025-03-07", "400100", "Sale", "", "x"}, "parsing credit"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := UnmarshalLeg(tt.record)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantMsg)
		})
	}
}

func TestReadLegs_Empty(t *testing.T) {
	legs, err := ReadLegs(strings.NewReader(""))
	require.NoError(t, err)
	assert.Empty(t, legs)
}

func TestReadLegs_RowNumber(t *testing.T) {
	input := Header + "\n" +
		"FY2025-001a,2025-01-15,400100,Sale,,10.00\n" +
		"FY2025-001b,2025-01-15,100100,Sale,bad,\n"
	_, err := ReadLegs(strings.NewReader(input))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "row 3")
}

func TestPolicyLegs(t *testing.T) {
	p, err := model.NewPolicy(7, "Rent", model.Credit(100100, dec("300")), model.Debit(500100, dec("300")))
	require.NoError(t, err)

	legs := PolicyLegs("FY2025", p)
	require.Len(t, legs, 2)

	assert.Equal(t, "FY2025-007a", legs[0].EntryID)
	assert.Equal(t, 100100, legs[0].AccountID)
	assert.Equal(t, model.SideCredit, legs[0].Side)
	assert.True(t, legs[0].Credit.Equal(dec("300")))
	assert.True(t, legs[0].Debit.IsZero())

	assert.Equal(t, "FY2025-007b", legs[1].EntryID)
	assert.Equal(t, 500100, legs[1].AccountID)
	assert.Equal(t, model.SideDebit, legs[1].Side)
	assert.True(t, legs[1].Debit.Equal(dec("300")))
	assert.Equal(t, "Rent", legs[1].Description)
}

func TestBuildPolicies(t *testing.T) {
	legs := balancedEntry(1, 400100, 100100, "10")
	// Debit leg first is fine.
	second := balancedEntry(2, 100100, 500100, "4")
	legs = append(legs, second[1], second[0])

	policies, err := BuildPolicies(legs, 5)
	require.NoError(t, err)
	require.Len(t, policies, 2)

	assert.Equal(t, 5, policies[0].Invoice())
	assert.Equal(t, 6, policies[1].Invoice())

	credit, ok := policies[1].Credit()
	require.True(t, ok)
	assert.Equal(t, 100100, credit.AccountID())
	debit, ok := policies[1].Debit()
	require.True(t, ok)
	assert.Equal(t, 500100, debit.AccountID())
}

func TestBuildPolicies_Errors(t *testing.T) {
	_, err := BuildPolicies(balancedEntry(1, 400100, 100100, "10")[:1], 1)
	assert.ErrorIs(t, err, model.ErrIncompletePolicy)

	_, err = BuildPolicies(balancedEntry(1, 100100, 100100, "10"), 1)
	assert.ErrorIs(t, err, model.ErrSelfReferencingPolicy)
}
