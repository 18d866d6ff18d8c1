package types

import "errors"

// Validation error constants.
var (
	// ErrInvalidNumberSet is returned when a candidate set has the wrong
	// cardinality, an out-of-range value, or a duplicate value.
	ErrInvalidNumberSet = errors.New("invalid number set")

	// ErrInvalidFixedSubset is returned when a fixed subset has more than
	// MaxFixedSize numbers, an out-of-range value, or a duplicate value.
	ErrInvalidFixedSubset = errors.New("invalid fixed subset")
)
