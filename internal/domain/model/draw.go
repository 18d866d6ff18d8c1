// Package model contains domain models passed between layers.
package model

import (
	"fmt"
	"time"

	"github.com/stevillis/megasena/internal/domain/types"
)

// Mega da Virada started with the 2009 year-end contest.
const firstSpecialYear = 2009

// Draw represents one official lottery contest. Draws are immutable once
// created and the history is append-only.
type Draw struct {
	Contest        int             `json:"contest"`
	Date           time.Time       `json:"date"`
	Numbers        types.NumberSet `json:"numbers"`
	YearEndSpecial bool            `json:"year_end_special"`
}

// NewDraw builds a Draw, deriving the year-end special flag from the date.
// It fails with ErrInvalidContest when contest is not a positive integer.
func NewDraw(contest int, date time.Time, numbers types.NumberSet) (Draw, error) {
	if contest < 1 {
		return Draw{}, fmt.Errorf("%w: %d", ErrInvalidContest, contest)
	}
	return Draw{
		Contest:        contest,
		Date:           date,
		Numbers:        numbers,
		YearEndSpecial: IsYearEndSpecial(date),
	}, nil
}

// IsYearEndSpecial reports whether date falls on a Mega da Virada edition:
// December 31st of 2009 or later.
func IsYearEndSpecial(date time.Time) bool {
	return date.Month() == time.December && date.Day() == 31 && date.Year() >= firstSpecialYear
}
