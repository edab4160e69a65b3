package domain

import "errors"

// Core error taxonomy. Every failure is deterministic; callers match with errors.Is.
var (
	// ErrInvalidTable reports a malformed bracket table.
	ErrInvalidTable = errors.New("invalid bracket table")
	// ErrInvalidIncome reports a negative income handed to the bracket evaluator.
	ErrInvalidIncome = errors.New("invalid income")
	// ErrInvalidInput reports a negative or non-numeric salary amount.
	ErrInvalidInput = errors.New("invalid input")
	// ErrUnknownAgeCategory reports an age bracket key outside the modelled set.
	ErrUnknownAgeCategory = errors.New("unknown age category")
	// ErrUnknownRegime reports a regime or regime selection outside the modelled set.
	ErrUnknownRegime = errors.New("unknown tax regime")
)
