package model

import "errors"

var (
	// ErrAccountMismatch is returned when a movement is recorded on an account
	// other than the one it names.
	ErrAccountMismatch = errors.New("movement account does not match account")

	// ErrDuplicateAccount is returned when an account ID already exists in its statement.
	ErrDuplicateAccount = errors.New("account already exists")

	// ErrUnknownAccount is returned when a movement names an account that does not exist.
	ErrUnknownAccount = errors.New("account does not exist")

	// ErrUnroutableAccount is returned when an account ID's leading digit selects no statement.
	ErrUnroutableAccount = errors.New("account does not belong to any statement")

	// ErrInvalidMovementSide is returned for a movement that is neither a debit nor a credit.
	ErrInvalidMovementSide = errors.New("invalid movement side")

	// ErrUnbalancedPolicy is returned when a policy's credit and debit quantities differ.
	ErrUnbalancedPolicy = errors.New("credit and debit are not balanced")

	// ErrSelfReferencingPolicy is returned when a policy credits and debits the same account.
	ErrSelfReferencingPolicy = errors.New("credit and debit accounts can not be the same")

	// ErrIncompletePolicy is returned when a policy is recorded without both sides set.
	ErrIncompletePolicy = errors.New("policy must have both a credit and a debit")

	// ErrPolicySideSet is returned when a policy side that is already set is set again.
	ErrPolicySideSet = errors.New("policy side already set")

	// ErrExerciseClosed is returned when a closed exercise is mutated.
	ErrExerciseClosed = errors.New("exercise is closed")
)
