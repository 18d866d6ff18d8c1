package model

import (
	"time"

	"github.com/google/uuid"

	"github.com/stevillis/megasena/internal/domain/types"
)

// Guess is a stored number set: either a committed real bet or a mere
// suggestion. Committed is the only field mutable after creation.
type Guess struct {
	ID        uuid.UUID         `json:"id"`
	Numbers   types.NumberSet   `json:"numbers"`
	Fixed     types.FixedSubset `json:"fixed"`
	Committed bool              `json:"committed"`
	CreatedAt time.Time         `json:"created_at"`
}

// NewGuess assembles a Guess with a fresh id. Numbers must already embed
// fixed; generators guarantee that by construction.
func NewGuess(numbers types.NumberSet, fixed types.FixedSubset, committed bool, createdAt time.Time) Guess {
	return Guess{
		ID:        uuid.New(),
		Numbers:   numbers,
		Fixed:     fixed,
		Committed: committed,
		CreatedAt: createdAt,
	}
}
