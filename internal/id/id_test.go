package id

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStatementNumber(t *testing.T) {
	tests := []struct {
		accountID int
		want      int
		wantOK    bool
	}{
		{100100, 1, true},
		{199999, 1, true},
		{200100, 2, true},
		{300100, 3, true},
		{400250, 4, true},
		{500100, 5, true},
		{599999, 5, true},
		{99999, 0, false},
		{600000, 0, false},
		{0, 0, false},
		{-100100, 0, false},
	}
	for _, tt := range tests {
		got, ok := StatementNumber(tt.accountID)
		assert.Equal(t, tt.wantOK, ok, "StatementNumber(%d) ok", tt.accountID)
		assert.Equal(t, tt.want, got, "StatementNumber(%d)", tt.accountID)
	}
}

func TestParseAccountID(t *testing.T) {
	got, err := ParseAccountID("100100")
	require.NoError(t, err)
	assert.Equal(t, 100100, got)

	got, err = ParseAccountID(" 500300 ")
	require.NoError(t, err)
	assert.Equal(t, 500300, got)
}

func TestParseAccountID_Errors(t *testing.T) {
	tests := []struct {
		input   string
		wantMsg string
	}{
		{"", "empty"},
		{"abc123", "not numeric"},
		{"-10010", "not numeric"},
		{"10010", "6 digits"},
		{"1001000", "6 digits"},
	}
	for _, tt := range tests {
		_, err := ParseAccountID(tt.input)
		require.Error(t, err, "input: %q", tt.input)
		assert.Contains(t, err.Error(), tt.wantMsg, "input: %q", tt.input)
	}
}

func TestFormatEntryID(t *testing.T) {
	tests := []struct {
		exercise string
		invoice  int
		want     string
	}{
		{"FY2025", 1, "FY2025-001"},
		{"FY2025", 99, "FY2025-099"},
		{"FY2025", 1234, "FY2025-1234"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, FormatEntryID(tt.exercise, tt.invoice))
	}
}

func TestFormatLegID(t *testing.T) {
	tests := []struct {
		entryID string
		leg     int
		want    string
	}{
		{"FY2025-001", 0, "FY2025-001a"},
		{"FY2025-001", 1, "FY2025-001b"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, FormatLegID(tt.entryID, tt.leg))
	}
}

func TestParseEntryID(t *testing.T) {
	tests := []struct {
		input        string
		wantExercise string
		wantInvoice  int
	}{
		{"FY2025-001", "FY2025", 1},
		{"FY2025-099b", "FY2025", 99},
		{"Q1-2025-012a", "Q1-2025", 12},
	}
	for _, tt := range tests {
		exercise, invoice, err := ParseEntryID(tt.input)
		require.NoError(t, err, "input: %s", tt.input)
		assert.Equal(t, tt.wantExercise, exercise)
		assert.Equal(t, tt.wantInvoice, invoice)
	}
}

func TestParseEntryID_Errors(t *testing.T) {
	badInputs := []string{
		"",
		"noinvoice",
		"-001",
		"FY2025-",
		"FY2025-xyz1",
		"FY2025-000",
	}
	for _, input := range badInputs {
		_, _, err := ParseEntryID(input)
		assert.Error(t, err, "expected error for input: %s", input)
	}
}

func TestEntryGroup(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"FY2025-001a", "FY2025-001"},
		{"FY2025-001b", "FY2025-001"},
		{"FY2025-001", "FY2025-001"},
		{"", ""},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, EntryGroup(tt.input))
	}
}
