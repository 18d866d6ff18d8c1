// Package repository defines the draw and guess store contracts and errors.
package repository

import (
	"context"

	"github.com/google/uuid"

	"github.com/stevillis/megasena/internal/domain/model"
)

// Order selects the contest ordering of DrawStore.List results.
type Order int

// Contest orderings for DrawStore.List.
const (
	// OrderAsc returns draws from the oldest contest to the newest.
	OrderAsc Order = iota
	// OrderDesc returns draws from the newest contest to the oldest.
	OrderDesc
)

// Filter narrows DrawStore.List results. Zero values impose no restriction.
type Filter struct {
	// FromContest bounds the contest range from below when positive.
	FromContest int
	// ToContest bounds the contest range from above when positive.
	ToContest int
	// YearEndOnly keeps only year-end special draws.
	YearEndOnly bool
	// Order selects ascending or descending contest order.
	Order Order
	// Limit caps the number of returned draws when positive.
	Limit int
}

// GuessFilter narrows GuessStore.List results.
type GuessFilter struct {
	// Committed filters by the committed flag when non-nil.
	Committed *bool
}

// DrawStore provides read/write access to the official draw history.
type DrawStore interface {
	// Put stores a new draw.
	// Returns ErrDuplicateContest if the contest is already present.
	Put(ctx context.Context, draw model.Draw) error

	// Replace stores a draw, overwriting any existing draw for the same
	// contest.
	Replace(ctx context.Context, draw model.Draw) error

	// Get returns the draw for a contest.
	// Returns ErrNotFound if the contest is unknown.
	Get(ctx context.Context, contest int) (model.Draw, error)

	// List returns draws matching the filter in the requested contest order.
	List(ctx context.Context, filter Filter) ([]model.Draw, error)

	// MaxContest returns the highest stored contest number, 0 when empty.
	MaxContest(ctx context.Context) (int, error)

	// Count returns the number of stored draws.
	Count(ctx context.Context) (int, error)

	// Close releases store resources.
	Close() error
}

// GuessStore provides read/write access to generated guesses.
type GuessStore interface {
	// Add stores a guess.
	Add(ctx context.Context, guess model.Guess) error

	// Get returns the guess with the given id.
	// Returns ErrNotFound if the id is unknown.
	Get(ctx context.Context, id uuid.UUID) (model.Guess, error)

	// List returns guesses matching the filter ordered by creation time.
	List(ctx context.Context, filter GuessFilter) ([]model.Guess, error)

	// SetCommitted flips the committed flag of a stored guess.
	// Returns ErrNotFound if the id is unknown.
	SetCommitted(ctx context.Context, id uuid.UUID, committed bool) error

	// Count returns the number of stored guesses.
	Count(ctx context.Context) (int, error)

	// Close releases store resources.
	Close() error
}
