package id

import (
	"fmt"
	"strconv"
	"strings"
)

// AccountDigits is the conventional length of an account ID.
const AccountDigits = 6

// statementDivisor extracts the leading digit of a 6-digit account ID.
const statementDivisor = 100000

// Statement numbers, in book order.
const (
	FirstStatement = 1
	LastStatement  = 5
)

// StatementNumber returns the 1-based statement number an account ID routes to.
// 100100 -> 1, 400250 -> 4. ok is false when the leading digit selects no statement.
func StatementNumber(accountID int) (n int, ok bool) {
	n = accountID / statementDivisor
	if accountID < 0 || n < FirstStatement || n > LastStatement {
		return 0, false
	}
	return n, true
}

// ParseAccountID parses a user-supplied account ID. It must be exactly six
// ASCII digits.
func ParseAccountID(s string) (int, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, fmt.Errorf("account ID is empty")
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return 0, fmt.Errorf("account ID %q is not numeric (0-9)", s)
		}
	}
	if len(s) != AccountDigits {
		return 0, fmt.Errorf("account ID %q must have %d digits", s, AccountDigits)
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0, fmt.Errorf("parsing account ID %q: %w", s, err)
	}
	return n, nil
}

// FormatEntryID returns a policy entry ID like "FY2025-001".
func FormatEntryID(exercise string, invoice int) string {
	return fmt.Sprintf("%s-%03d", exercise, invoice)
}

// FormatLegID returns a leg ID like "FY2025-001a" (leg 0='a', 1='b', etc.).
func FormatLegID(entryID string, leg int) string {
	return entryID + string(rune('a'+leg))
}

// ParseEntryID parses "FY2025-001" into the exercise name and invoice number.
// The exercise name may itself contain dashes; the invoice is the last segment.
func ParseEntryID(id string) (exercise string, invoice int, err error) {
	// Strip any leg suffix (trailing lowercase letters).
	base := EntryGroup(id)

	i := strings.LastIndex(base, "-")
	if i <= 0 || i == len(base)-1 {
		return "", 0, fmt.Errorf("invalid entry ID format: %q", id)
	}

	invoice, err = strconv.Atoi(base[i+1:])
	if err != nil {
		return "", 0, fmt.Errorf("invalid invoice in entry ID %q: %w", id, err)
	}
	if invoice < 1 {
		return "", 0, fmt.Errorf("invalid invoice in entry ID %q: must be positive", id)
	}

	return base[:i], invoice, nil
}

// EntryGroup strips the leg suffix from a leg ID.
// "FY2025-001a" -> "FY2025-001"
func EntryGroup(legID string) string {
	if len(legID) == 0 {
		return ""
	}
	i := len(legID)
	for i > 0 && legID[i-1] >= 'a' && legID[i-1] <= 'z' {
		i--
	}
	return legID[:i]
}
