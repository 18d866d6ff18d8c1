package model

import (
	"fmt"

	"github.com/stevillis/megasena/internal/domain/types"
)

// MatchResult scores one guess against one draw. Ephemeral query output,
// never persisted.
type MatchResult struct {
	Contest int        `json:"contest"`
	Hits    int        `json:"hits"`
	Tier    types.Tier `json:"tier"`
}

// FrequencyReport maps each number to how often it was drawn across the
// evaluated subset. Draws is the denominator; it is zero for an empty
// subset, so callers must guard percentage derivations.
type FrequencyReport struct {
	Counts map[int]int `json:"counts"`
	Draws  int         `json:"draws"`
}

// ComboFrequencyReport maps each k-combination, keyed canonically
// (e.g. "04-23-42"), to how often it appeared across the evaluated subset.
type ComboFrequencyReport struct {
	K      int            `json:"k"`
	Counts map[string]int `json:"counts"`
	Draws  int            `json:"draws"`
}

// RankedNumber is one row of a per-number frequency ranking.
type RankedNumber struct {
	Number int `json:"number"`
	Count  int `json:"count"`
}

// RankedCombo is one row of a combination frequency ranking.
type RankedCombo struct {
	Combo string `json:"combo"`
	Count int    `json:"count"`
}

// DrawMatch is one draw-search result: the draw plus which of the queried
// numbers it contains.
type DrawMatch struct {
	Draw    Draw  `json:"draw"`
	Matched []int `json:"matched"`
}

// GuessCheck scores one stored guess against one official draw.
type GuessCheck struct {
	Guess Guess      `json:"guess"`
	Hits  int        `json:"hits"`
	Tier  types.Tier `json:"tier"`
}

// RowError reports one rejected import row. It implements error so row
// failures can be logged and wrapped like any other error while still being
// collected inside an ImportReport.
type RowError struct {
	Row    int    `json:"row"`
	Reason string `json:"reason"`
}

// Error implements the error interface.
func (e RowError) Error() string {
	return fmt.Sprintf("row %d: %s", e.Row, e.Reason)
}

// ImportReport summarizes a tabular draw import. Imports succeed partially:
// malformed rows land in Errors without aborting the run.
type ImportReport struct {
	Added    int        `json:"added"`
	Skipped  int        `json:"skipped"`
	Replaced int        `json:"replaced"`
	Errors   []RowError `json:"errors"`
}

// Rows returns how many source rows the report accounts for.
func (r ImportReport) Rows() int {
	return r.Added + r.Skipped + r.Replaced + len(r.Errors)
}

// SyncReport summarizes a result synchronization run over a contest range.
type SyncReport struct {
	From   int `json:"from"`
	To     int `json:"to"`
	Added  int `json:"added"`
	Failed int `json:"failed"`
}
